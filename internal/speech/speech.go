package speech

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/aidenreynolds-dev/assistive-navigation-device/internal/debug"
)

// quotes is stripped from spoken text so it survives any shell-style
// invocation downstream.
var quotes = strings.NewReplacer(`"`, "", `'`, "")

// Sanitize strips quote characters from text before speaking.
func Sanitize(text string) string {
	return quotes.Replace(text)
}

// Espeak renders text as audible speech by piping espeak into aplay.
type Espeak struct {
	audioDevice string // ALSA device for aplay, e.g. "plughw:2,0"
}

// NewEspeak creates an espeak-backed speaker targeting the given ALSA
// output device.
func NewEspeak(audioDevice string) *Espeak {
	return &Espeak{audioDevice: audioDevice}
}

// Say speaks the text. Fire-and-forget: the pipeline is started and
// then waited on in a background goroutine, so audio may still be
// playing after Say returns. Failures are logged, never propagated;
// by the time we speak, the analysis already succeeded.
func (e *Espeak) Say(text string) {
	safe := Sanitize(text)

	espeak := exec.Command("espeak", safe, "--stdout")
	aplay := exec.Command("aplay", "-D", e.audioDevice)

	pipe, err := espeak.StdoutPipe()
	if err != nil {
		debug.Error(fmt.Errorf("speech: pipe: %w", err))
		return
	}
	aplay.Stdin = pipe

	if err := espeak.Start(); err != nil {
		debug.Error(fmt.Errorf("speech: start espeak: %w", err))
		return
	}
	if err := aplay.Start(); err != nil {
		debug.Error(fmt.Errorf("speech: start aplay: %w", err))
		_ = espeak.Process.Kill()
		_ = espeak.Wait()
		return
	}

	debug.Live("Speaking: %s", safe)

	go func() {
		if err := espeak.Wait(); err != nil {
			debug.Error(fmt.Errorf("speech: espeak: %w", err))
		}
		if err := aplay.Wait(); err != nil {
			debug.Error(fmt.Errorf("speech: aplay: %w", err))
		}
	}()
}
