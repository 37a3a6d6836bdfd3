package common

// Key codes bound by the orbit viewer. Values are GLFW key codes: printable keys use their
// ASCII code, everything else sits above 255.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key

// View presets: front, back, right, left, top, bottom.
const (
	Key1 = 49
	Key2 = 50
	Key3 = 51
	Key4 = 52
	Key5 = 53
	Key6 = 54
)

// Camera commands.
const (
	KeyF     = 70 // fit the scene bounds
	KeyB     = 66 // save state
	KeySpace = 32 // reset to the saved state
	KeyX     = 88 // normalize rotations
)

// Keyboard truck, dolly and elevate. Shift applies the fast multiplier.
const (
	KeyW          = 87
	KeyA          = 65
	KeyS          = 83
	KeyD          = 68
	KeyQ          = 81
	KeyE          = 69
	KeyLeftShift  = 340
	KeyRightShift = 344
)
