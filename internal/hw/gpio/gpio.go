package gpio

import (
	"github.com/aidenreynolds-dev/assistive-navigation-device/internal/debug"
)

// Level represents the logical state of a GPIO pin.
type Level bool

const (
	Low  Level = false
	High Level = true
)

// Driver defines the abstract interface for controlling GPIOs.
// This allows plugging in a real Raspberry Pi implementation
// or a mock for development on PC.
type Driver interface {
	// SetupInput configures a pin as input. With pullUp, the pin
	// reads High while idle and Low when pulled to ground (pressed).
	SetupInput(pin int, pullUp bool) error
	// SetupOutput configures a pin as output, initially Low.
	SetupOutput(pin int) error
	Write(pin int, level Level) error
	Read(pin int) (Level, error)
	Close() error
}

// MockDriver is a test implementation that simply logs actions.
// Used for development on PC or testing. Inputs read High, which
// for a pull-up button means "not pressed".
type MockDriver struct{}

// NewDriver creates a GPIO driver based on the chosen mode.
// If mock is true, returns a MockDriver (for dev/test).
// If mock is false, returns a real RPiDriver (for Raspberry Pi).
func NewDriver(mock bool) (Driver, error) {
	if mock {
		debug.Info("Using MOCK GPIO driver (development mode)")
		return &MockDriver{}, nil
	}
	return NewRPiRealDriver()
}

func (m *MockDriver) SetupInput(pin int, pullUp bool) error {
	debug.GPIO("SetupInput", pin, pullUp)
	return nil
}

func (m *MockDriver) SetupOutput(pin int) error {
	debug.GPIO("SetupOutput", pin, nil)
	return nil
}

func (m *MockDriver) Write(pin int, level Level) error {
	debug.GPIO("Write", pin, level)
	return nil
}

func (m *MockDriver) Read(pin int) (Level, error) {
	debug.GPIO("Read", pin, nil)
	return High, nil
}

func (m *MockDriver) Close() error {
	debug.Trace("GPIO Close (mock)")
	return nil
}
