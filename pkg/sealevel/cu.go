package sealevel

// default compute unit costs charged on entry to a native program
const (
	CUTokenProgramDefaultComputeUnits = 3000
)
