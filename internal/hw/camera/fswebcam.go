package camera

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/aidenreynolds-dev/assistive-navigation-device/internal/debug"
)

// Fswebcam is a Camera implementation that shells out to the fswebcam
// utility to grab a frame from a USB webcam.
type Fswebcam struct {
	resolution string // e.g. "640x480"
	skipFrames int    // frames discarded before capture (sensor warm-up)
}

// NewFswebcam creates an fswebcam-backed camera.
func NewFswebcam(resolution string, skipFrames int) *Fswebcam {
	return &Fswebcam{
		resolution: resolution,
		skipFrames: skipFrames,
	}
}

// args builds the fswebcam argument list for a capture to path.
func (f *Fswebcam) args(path string) []string {
	return []string{
		"-r", f.resolution,
		"-S", strconv.Itoa(f.skipFrames),
		"--no-banner",
		path,
	}
}

// Capture runs fswebcam and waits for it to exit. A non-zero exit or a
// missing binary is reported as an error; stderr is folded into it.
func (f *Fswebcam) Capture(ctx context.Context, path string) error {
	args := f.args(path)
	debug.Printf("Camera: fswebcam %v", args)

	cmd := exec.CommandContext(ctx, "fswebcam", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("fswebcam: %w (output: %s)", err, out)
	}

	debug.Live("Camera: image captured to %s", path)
	return nil
}
