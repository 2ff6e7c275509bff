package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "bows", Coalesce("", "bows", "boxes"))
	assert.Equal(t, float32(15), Coalesce(0, float32(15)))
	assert.Equal(t, 0, Coalesce(0, 0))
	assert.Equal(t, 3, Coalesce(0, 3, 4))
	assert.Equal(t, "", Coalesce[string]())
}

func TestPositiveOr(t *testing.T) {
	assert.Equal(t, 3, PositiveOr(3, 7))
	assert.Equal(t, 7, PositiveOr(0, 7))
	assert.Equal(t, 7, PositiveOr(-2, 7))
	assert.Equal(t, float32(0.5), PositiveOr(float32(-0.1), 0.5))
	assert.Equal(t, float32(0.5), PositiveOr(math32.NaN(), 0.5))
}
