package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// HardwareConfig holds the GPIO wiring for the button and the
// vibration motor (BCM pin numbers).
type HardwareConfig struct {
	ButtonPin      int `yaml:"button_pin"`       // push button input (internal pull-up, pressed = LOW)
	VibrationPin   int `yaml:"vibration_pin"`    // vibration motor output
	DebounceMs     int `yaml:"debounce_ms"`      // quiet window after an accepted press
	PollIntervalMs int `yaml:"poll_interval_ms"` // button sampling interval
}

// CameraConfig describes how images are captured.
// Type selects a concrete implementation (e.g., "fswebcam").
type CameraConfig struct {
	Type       string `yaml:"type"`        // e.g., "fswebcam"
	Resolution string `yaml:"resolution"`  // e.g., "640x480"
	SkipFrames int    `yaml:"skip_frames"` // frames discarded before capture (sensor warm-up)
	ImagePath  string `yaml:"image_path"`  // fixed capture slot, overwritten each cycle
}

// AnalysisConfig describes the remote vision model call.
// The API key comes from the OPENAI_API_KEY environment variable,
// never from this file.
type AnalysisConfig struct {
	Model           string `yaml:"model"`             // vision-capable model id
	Prompt          string `yaml:"prompt"`            // instruction sent with each image
	MaxOutputTokens int    `yaml:"max_output_tokens"` // response cap
}

// SpeechConfig describes the audio output pipeline.
type SpeechConfig struct {
	AudioDevice string `yaml:"audio_device"` // ALSA device for aplay, e.g. "plughw:2,0"
}

// FeedbackConfig holds the haptic pulse durations in milliseconds.
type FeedbackConfig struct {
	AckMs     int `yaml:"ack_ms"`     // press acknowledgment
	SuccessMs int `yaml:"success_ms"` // analysis succeeded
	FailureMs int `yaml:"failure_ms"` // capture or analysis failed
}

// DefaultsConfig contains generic runtime parameters.
type DefaultsConfig struct {
	QueuePollMs int  `yaml:"queue_poll_ms"` // processor idle polling interval
	DebugLevel  int  `yaml:"debug_level"`   // debug level 0-4 (0=off, 1=info, 2=live, 3=verbose, 4=trace)
	MockGPIO    bool `yaml:"mock_gpio"`     // use mock GPIO (true=dev/test, false=real Raspberry Pi)
}

// Config aggregates all application configuration.
type Config struct {
	Hardware HardwareConfig `yaml:"hardware"`
	Camera   CameraConfig   `yaml:"camera"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Speech   SpeechConfig   `yaml:"speech"`
	Feedback FeedbackConfig `yaml:"feedback"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

var resolutionRe = regexp.MustCompile(`^\d+x\d+$`)

// Load reads a YAML file and returns the configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	// Basic validation
	if cfg.Hardware.ButtonPin <= 0 {
		return nil, fmt.Errorf("hardware.button_pin is required")
	}
	if cfg.Hardware.VibrationPin <= 0 {
		return nil, fmt.Errorf("hardware.vibration_pin is required")
	}
	if cfg.Hardware.ButtonPin == cfg.Hardware.VibrationPin {
		return nil, fmt.Errorf("hardware.button_pin and hardware.vibration_pin must differ, both are %d", cfg.Hardware.ButtonPin)
	}
	if cfg.Camera.Type == "" {
		return nil, fmt.Errorf("camera.type is required")
	}
	if cfg.Camera.Resolution != "" && !resolutionRe.MatchString(cfg.Camera.Resolution) {
		return nil, fmt.Errorf("camera.resolution must look like 640x480, got %q", cfg.Camera.Resolution)
	}

	// Default values
	if cfg.Hardware.DebounceMs <= 0 {
		cfg.Hardware.DebounceMs = 500 // quiet window after an accepted press
	}
	if cfg.Hardware.PollIntervalMs <= 0 {
		cfg.Hardware.PollIntervalMs = 10
	}
	if cfg.Camera.Resolution == "" {
		cfg.Camera.Resolution = "640x480"
	}
	if cfg.Camera.SkipFrames < 0 {
		return nil, fmt.Errorf("camera.skip_frames must be >= 0, got %d", cfg.Camera.SkipFrames)
	}
	if cfg.Camera.SkipFrames == 0 {
		cfg.Camera.SkipFrames = 2 // first frames are often under-exposed
	}
	if cfg.Camera.ImagePath == "" {
		cfg.Camera.ImagePath = "captured_image.jpg"
	}
	if cfg.Analysis.Model == "" {
		cfg.Analysis.Model = "gpt-5-nano"
	}
	if cfg.Analysis.Prompt == "" {
		cfg.Analysis.Prompt = "Describe what's visible in one short sentence (<= 15 words)."
	}
	if cfg.Analysis.MaxOutputTokens <= 0 {
		cfg.Analysis.MaxOutputTokens = 256
	}
	if cfg.Speech.AudioDevice == "" {
		cfg.Speech.AudioDevice = "plughw:2,0"
	}
	if cfg.Feedback.AckMs <= 0 {
		cfg.Feedback.AckMs = 200
	}
	if cfg.Feedback.SuccessMs <= 0 {
		cfg.Feedback.SuccessMs = 500
	}
	if cfg.Feedback.FailureMs <= 0 {
		cfg.Feedback.FailureMs = 1000
	}
	if cfg.Defaults.QueuePollMs <= 0 {
		cfg.Defaults.QueuePollMs = 100
	}

	return &cfg, nil
}

// Debounce returns the button quiet window duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Hardware.DebounceMs) * time.Millisecond
}

// ButtonPollInterval returns the button sampling interval.
func (c *Config) ButtonPollInterval() time.Duration {
	return time.Duration(c.Hardware.PollIntervalMs) * time.Millisecond
}

// QueuePollInterval returns the processor idle polling interval.
func (c *Config) QueuePollInterval() time.Duration {
	return time.Duration(c.Defaults.QueuePollMs) * time.Millisecond
}

// AckPulse returns the press acknowledgment pulse duration.
func (c *Config) AckPulse() time.Duration {
	return time.Duration(c.Feedback.AckMs) * time.Millisecond
}

// SuccessPulse returns the success pulse duration.
func (c *Config) SuccessPulse() time.Duration {
	return time.Duration(c.Feedback.SuccessMs) * time.Millisecond
}

// FailurePulse returns the failure pulse duration.
func (c *Config) FailurePulse() time.Duration {
	return time.Duration(c.Feedback.FailureMs) * time.Millisecond
}
