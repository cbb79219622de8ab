package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aidenreynolds-dev/assistive-navigation-device/internal/debug"
	"github.com/aidenreynolds-dev/assistive-navigation-device/internal/hw/camera"
)

// Describer turns a captured image into a short description.
// Implemented by vision.Client; tests plug in fakes.
type Describer interface {
	Describe(ctx context.Context, path string) (string, error)
}

// Speaker renders text as audible speech. Fire-and-forget: it must not
// block the processor from polling for the next task.
type Speaker interface {
	Say(text string)
}

// Signaler drives the outcome haptics. Implemented by haptic.Motor.
type Signaler interface {
	Success() error
	Failure() error
}

// Config holds the processor's runtime parameters.
type Config struct {
	ImagePath    string        // fixed capture slot, overwritten each cycle
	PollInterval time.Duration // idle polling interval
}

// Processor is the single consumer loop: it drains the queue and runs
// the capture -> analyze -> speak sequence for each task, signaling
// the outcome on the vibration motor. A failing or panicking service
// call ends the cycle, never the loop.
type Processor struct {
	queue  *Queue
	camera camera.Camera
	vision Describer
	speech Speaker
	haptic Signaler
	cfg    Config

	mu              sync.Mutex
	state           State
	processed       uint64
	failed          uint64
	lastDescription string
	lastError       string
}

// Snapshot is a point-in-time view of the processor for the status
// endpoint.
type Snapshot struct {
	State           State
	QueueDepth      int
	Processed       uint64
	Failed          uint64
	LastDescription string
	LastError       string
}

// NewProcessor wires the consumer loop to its collaborators.
func NewProcessor(q *Queue, cam camera.Camera, v Describer, s Speaker, h Signaler, cfg Config) *Processor {
	if cfg.ImagePath == "" {
		cfg.ImagePath = "captured_image.jpg"
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 100 * time.Millisecond
	}
	return &Processor{
		queue:  q,
		camera: cam,
		vision: v,
		speech: s,
		haptic: h,
		cfg:    cfg,
		state:  StateIdle,
	}
}

// Run polls the queue until ctx is cancelled. Polling instead of
// blocking keeps the loop responsive to shutdown at the cost of up to
// one poll interval of latency.
func (p *Processor) Run(ctx context.Context) error {
	debug.Info("Processor: running (poll interval %v)", p.cfg.PollInterval)

	for {
		t, ok := p.queue.TryDequeue()
		if !ok {
			select {
			case <-ctx.Done():
				debug.Info("Processor: stopped")
				return ctx.Err()
			case <-time.After(p.cfg.PollInterval):
			}
			continue
		}

		select {
		case <-ctx.Done():
			debug.Info("Processor: stopped, dropping pending task")
			return ctx.Err()
		default:
		}

		p.processOne(ctx, t)
	}
}

// processOne runs a single task. A panic inside a service call is
// converted into a failed cycle so the loop survives and the motor is
// never left high (Pulse forces the pin low itself).
func (p *Processor) processOne(ctx context.Context, t Task) {
	defer func() {
		if r := recover(); r != nil {
			p.fail(fmt.Errorf("task panic: %v", r))
		}
	}()

	switch t.Kind {
	case KindCapture:
		p.runCapture(ctx)
	default:
		debug.Error(fmt.Errorf("unknown task kind %q, dropped", t.Kind))
	}
}

func (p *Processor) runCapture(ctx context.Context) {
	p.setState(StateCapturing)
	if err := p.camera.Capture(ctx, p.cfg.ImagePath); err != nil {
		p.fail(fmt.Errorf("%w: %v", ErrCapture, err))
		return
	}

	p.setState(StateAnalyzing)
	desc, err := p.vision.Describe(ctx, p.cfg.ImagePath)
	if err != nil {
		p.fail(fmt.Errorf("%w: %v", ErrAnalysis, err))
		return
	}

	p.setState(StateSpeaking)
	// Success pulse first: the haptic outcome must be perceptible
	// before (and regardless of) the speech pipeline.
	if err := p.haptic.Success(); err != nil {
		debug.Error(fmt.Errorf("success pulse: %w", err))
	}
	p.speech.Say(desc)

	p.mu.Lock()
	p.processed++
	p.lastDescription = desc
	p.mu.Unlock()

	debug.Info("Processor: cycle complete: %s", desc)
	p.setState(StateIdle)
}

// fail signals the failure haptic, records the error, and returns the
// processor to idle. The task is discarded; no retry.
func (p *Processor) fail(err error) {
	debug.Error(err)
	p.setState(StateFailed)

	p.mu.Lock()
	p.failed++
	p.lastError = err.Error()
	p.mu.Unlock()

	if herr := p.haptic.Failure(); herr != nil {
		debug.Error(fmt.Errorf("failure pulse: %w", herr))
	}
	p.setState(StateIdle)
}

func (p *Processor) setState(s State) {
	p.mu.Lock()
	from := p.state
	p.state = s
	p.mu.Unlock()
	debug.State(string(from), string(s))
}

// Snapshot returns a consistent view of the processor state and
// counters for the status endpoint.
func (p *Processor) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{
		State:           p.state,
		QueueDepth:      p.queue.Len(),
		Processed:       p.processed,
		Failed:          p.failed,
		LastDescription: p.lastDescription,
		LastError:       p.lastError,
	}
}
