package haptic

import (
	"sync"
	"time"

	"github.com/aidenreynolds-dev/assistive-navigation-device/internal/debug"
	"github.com/aidenreynolds-dev/assistive-navigation-device/internal/hw/gpio"
)

// Config holds the hardware configuration for the vibration motor.
type Config struct {
	Pin     int
	Ack     time.Duration // press acknowledgment pulse
	Success time.Duration // analysis succeeded pulse
	Failure time.Duration // capture/analysis failed pulse
}

// Motor drives a vibration motor with timed pulses. Pulses are
// serialized under a mutex so an acknowledgment pulse from the button
// handler never overlaps an outcome pulse from the processor.
type Motor struct {
	mu   sync.Mutex
	gpio gpio.Driver
	cfg  Config
}

// NewMotor creates a vibration motor controller. The pin is configured
// as output and forced Low.
func NewMotor(g gpio.Driver, cfg Config) *Motor {
	_ = g.SetupOutput(cfg.Pin)
	_ = g.Write(cfg.Pin, gpio.Low)

	if cfg.Ack <= 0 {
		cfg.Ack = 200 * time.Millisecond
	}
	if cfg.Success <= 0 {
		cfg.Success = 500 * time.Millisecond
	}
	if cfg.Failure <= 0 {
		cfg.Failure = time.Second
	}

	return &Motor{
		gpio: g,
		cfg:  cfg,
	}
}

// Pulse drives the motor High, holds for the given duration, then
// forces it Low again. Blocking: feedback must be perceptible before
// the caller proceeds. The pin is forced Low even if the High write
// failed, so the motor can never be left running.
func (m *Motor) Pulse(d time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	debug.Printf("Haptic: pulse %v on pin %d", d, m.cfg.Pin)

	err := m.gpio.Write(m.cfg.Pin, gpio.High)
	if err == nil {
		time.Sleep(d)
	}
	if werr := m.gpio.Write(m.cfg.Pin, gpio.Low); err == nil {
		err = werr
	}
	return err
}

// Ack signals press acknowledgment (short pulse).
func (m *Motor) Ack() error { return m.Pulse(m.cfg.Ack) }

// Success signals a completed analysis (medium pulse).
func (m *Motor) Success() error { return m.Pulse(m.cfg.Success) }

// Failure signals a failed cycle (long pulse).
func (m *Motor) Failure() error { return m.Pulse(m.cfg.Failure) }

// Off forces the motor Low. Called during shutdown.
func (m *Motor) Off() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gpio.Write(m.cfg.Pin, gpio.Low)
}
