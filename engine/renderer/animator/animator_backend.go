package animator

// AnimatorBackendType identifies the interpolation regime used by an Animator.
type AnimatorBackendType int

const (
	// BackendTypeInstance is the per-element regime: each rigid instance lerps its own
	// position toward the active endpoint at its group's weight.
	BackendTypeInstance AnimatorBackendType = iota

	// BackendTypeFoliage is the shared-progress regime: one scalar relaxes toward 0 or 1
	// and the render stage blends static endpoint buffers with it.
	BackendTypeFoliage
)

// String returns a short label used in logs.
func (t AnimatorBackendType) String() string {
	switch t {
	case BackendTypeInstance:
		return "instance"
	case BackendTypeFoliage:
		return "foliage"
	}
	return "unknown"
}
