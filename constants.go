package epicycles

// Sample count limits for curve resampling
const (
	minSampleCount = 1     // Minimum resampled points per curve
	maxSampleCount = 10000 // Maximum resampled points per curve
)

// Contour tracing limits
const (
	minContourSamples = 1 // Minimum time steps per traced period
)

// Default configuration values
const (
	defaultSampleCount    = 100  // Resampled points per curve
	defaultContourSamples = 2000 // Time steps per traced period
)
