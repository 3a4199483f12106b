package shared

import "fmt"

var (
	// Lifecycle errors
	ErrAlreadyRunning = fmt.Errorf("renderer already running")
	ErrNoSurface      = fmt.Errorf("no drawing surface")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
	ErrUnknownTheme  = fmt.Errorf("unknown theme")

	// Audio errors
	ErrUnsupportedAudio = fmt.Errorf("unsupported audio file type")

	// Input validation errors
	ErrInvalidFlag = fmt.Errorf("invalid flag value")
)
