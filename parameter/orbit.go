package parameter

// Label ring geometry in dial units (dial radius = 1)
const (
	OrbitInnerRadius   = 0.78
	OrbitOuterRadius   = 0.92
	OrbitLetterSpacing = 0.045
	OrbitGap           = 0.02
)
