package camera

import (
	"fmt"

	"github.com/aidenreynolds-dev/assistive-navigation-device/internal/config"
)

// FromConfig selects a camera implementation based on configuration.
func FromConfig(cfg *config.Config) (Camera, error) {
	switch cfg.Camera.Type {
	case "fswebcam":
		return NewFswebcam(cfg.Camera.Resolution, cfg.Camera.SkipFrames), nil
	default:
		return nil, fmt.Errorf("unsupported camera type: %s", cfg.Camera.Type)
	}
}
