package common

// Key codes delivered by the window key callback. They match GLFW key codes,
// which use ASCII values for printable keys.
const (
	KeySpace = 32  // toggles formed/scattered
	KeyF     = 70  // forces formed
	KeyS     = 83  // forces scattered
	KeyR     = 82  // resets the camera rig
	KeyH     = 72  // toggles hand tracking from the cursor
	KeyP     = 80  // toggles profiling output
	KeyEsc   = 256 // quits
)
