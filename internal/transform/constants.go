package transform

// Memory accounting constants
const (
	// Size of complex128 in bytes, for MemoryUsage estimates
	bytesPerComplex128 = 16
)
