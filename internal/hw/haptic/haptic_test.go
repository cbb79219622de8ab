package haptic

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aidenreynolds-dev/assistive-navigation-device/internal/hw/gpio"
)

// recordingDriver records GPIO calls for verification.
type recordingDriver struct {
	mu     sync.Mutex
	writes []gpio.Level
	failHi bool
}

func (d *recordingDriver) SetupInput(pin int, pullUp bool) error { return nil }
func (d *recordingDriver) SetupOutput(pin int) error             { return nil }

func (d *recordingDriver) Write(pin int, level gpio.Level) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failHi && level == gpio.High {
		return errors.New("write failed")
	}
	d.writes = append(d.writes, level)
	return nil
}

func (d *recordingDriver) Read(pin int) (gpio.Level, error) { return gpio.Low, nil }
func (d *recordingDriver) Close() error                     { return nil }

func (d *recordingDriver) levels() []gpio.Level {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]gpio.Level(nil), d.writes...)
}

func newTestMotor(drv *recordingDriver) *Motor {
	return NewMotor(drv, Config{
		Pin:     5,
		Ack:     time.Microsecond,
		Success: time.Microsecond,
		Failure: time.Microsecond,
	})
}

func TestMotor_InitializedLow(t *testing.T) {
	drv := &recordingDriver{}
	newTestMotor(drv)

	levels := drv.levels()
	if len(levels) == 0 || levels[0] != gpio.Low {
		t.Errorf("motor pin should be forced Low at construction, writes: %v", levels)
	}
}

func TestMotor_PulseHighThenLow(t *testing.T) {
	drv := &recordingDriver{}
	m := newTestMotor(drv)
	drv.writes = nil // reset after init

	if err := m.Pulse(time.Microsecond); err != nil {
		t.Fatalf("Pulse: %v", err)
	}

	levels := drv.levels()
	if len(levels) != 2 || levels[0] != gpio.High || levels[1] != gpio.Low {
		t.Errorf("expected [High, Low], got %v", levels)
	}
}

func TestMotor_PulseDuration(t *testing.T) {
	drv := &recordingDriver{}
	m := newTestMotor(drv)

	start := time.Now()
	if err := m.Pulse(20 * time.Millisecond); err != nil {
		t.Fatalf("Pulse: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("pulse returned after %v, want >= 20ms", elapsed)
	}
}

func TestMotor_PulseForcesLowOnWriteError(t *testing.T) {
	drv := &recordingDriver{failHi: true}
	m := newTestMotor(drv)
	drv.writes = nil

	if err := m.Pulse(time.Microsecond); err == nil {
		t.Error("expected error when High write fails, got nil")
	}

	levels := drv.levels()
	if len(levels) != 1 || levels[0] != gpio.Low {
		t.Errorf("pin must still be forced Low after failed High write, writes: %v", levels)
	}
}

func TestMotor_NamedPulses(t *testing.T) {
	drv := &recordingDriver{}
	m := newTestMotor(drv)
	drv.writes = nil

	if err := m.Ack(); err != nil {
		t.Errorf("Ack: %v", err)
	}
	if err := m.Success(); err != nil {
		t.Errorf("Success: %v", err)
	}
	if err := m.Failure(); err != nil {
		t.Errorf("Failure: %v", err)
	}

	// Three pulses = three High/Low pairs
	levels := drv.levels()
	if len(levels) != 6 {
		t.Fatalf("expected 6 writes, got %d: %v", len(levels), levels)
	}
	for i := 0; i < 6; i += 2 {
		if levels[i] != gpio.High || levels[i+1] != gpio.Low {
			t.Errorf("pulse %d: got %v/%v, want High/Low", i/2, levels[i], levels[i+1])
		}
	}
}

func TestMotor_ConcurrentPulsesNeverOverlap(t *testing.T) {
	drv := &recordingDriver{}
	m := newTestMotor(drv)
	drv.writes = nil

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Pulse(time.Microsecond)
		}()
	}
	wg.Wait()

	// Serialized pulses always alternate High, Low, High, Low...
	levels := drv.levels()
	if len(levels) != 16 {
		t.Fatalf("expected 16 writes, got %d", len(levels))
	}
	for i, l := range levels {
		want := gpio.Low
		if i%2 == 0 {
			want = gpio.High
		}
		if l != want {
			t.Fatalf("write %d = %v, want %v (overlapping pulses?)", i, l, want)
		}
	}
}

func TestMotor_Off(t *testing.T) {
	drv := &recordingDriver{}
	m := newTestMotor(drv)
	drv.writes = nil

	if err := m.Off(); err != nil {
		t.Fatalf("Off: %v", err)
	}
	levels := drv.levels()
	if len(levels) != 1 || levels[0] != gpio.Low {
		t.Errorf("Off should write a single Low, got %v", levels)
	}
}
