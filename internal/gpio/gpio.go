// Package gpio provides access to the wake button line with hardware
// abstraction. The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Button reads the wake button state.
type Button interface {
	// Pressed returns true while the button is held. The raw line is
	// active-low: raw 0 = pressed.
	Pressed() (bool, error)

	// Close releases GPIO resources.
	Close() error
}

// Defaults for the wake button line (BCM numbering).
const (
	DefaultChip = "gpiochip0"
	DefaultPin  = 4
)
