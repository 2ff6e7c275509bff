package common

// Key codes delivered by the window's key callback.
// Printable keys use their uppercase ASCII values. The window translates special keys
// into the codes below.
const (
	KeyQ     = 81  // Q key (ASCII)
	KeyR     = 82  // R key (ASCII)
	KeyP     = 80  // P key (ASCII)
	KeySpace = 32  // Spacebar (ASCII)
	KeyPlus  = 43  // '+' (ASCII)
	KeyMinus = 45  // '-' (ASCII)
	KeyEqual = 61  // '=' (ASCII), unshifted '+'
	KeyEnter = 257 // Enter / Return
	KeyEsc   = 256 // Escape
	KeyRight = 262 // Right arrow
	KeyLeft  = 263 // Left arrow
	KeyDown  = 264 // Down arrow
	KeyUp    = 265 // Up arrow
	KeyCtrlC = 3   // Ctrl-C (ETX)
)
