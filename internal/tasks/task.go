package tasks

import (
	"errors"
	"time"
)

// Kind tags a task. There is a single variant today; the tag keeps the
// queue open to other trigger sources later.
type Kind string

// KindCapture is a "process one capture cycle" task.
const KindCapture Kind = "capture"

// Task is one unit of work: process a single capture cycle. Created by
// the button handler, consumed exactly once by the processor, then
// discarded. There is no retry and no requeue; pressing the button
// again is the user's retry.
type Task struct {
	Kind      Kind
	CreatedAt time.Time
}

// NewCapture creates a capture task stamped with the current time.
func NewCapture() Task {
	return Task{Kind: KindCapture, CreatedAt: time.Now()}
}

// State is the processor's position in the current cycle.
type State string

const (
	StateIdle      State = "idle"
	StateCapturing State = "capturing"
	StateAnalyzing State = "analyzing"
	StateSpeaking  State = "speaking"
	StateFailed    State = "failed"
)

// Error kinds for a failed cycle. Speech errors are logged only and
// never carry one of these: by the time we speak, analysis succeeded.
var (
	ErrCapture  = errors.New("capture failed")
	ErrAnalysis = errors.New("analysis failed")
)
