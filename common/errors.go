package common

import "errors"

// ErrInvalidConfig is wrapped by every construction-time validation failure.
// Match it with errors.Is.
var ErrInvalidConfig = errors.New("invalid configuration")
