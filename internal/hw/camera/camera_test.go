package camera

import (
	"reflect"
	"testing"

	"github.com/aidenreynolds-dev/assistive-navigation-device/internal/config"
)

func TestFswebcam_Args(t *testing.T) {
	cam := NewFswebcam("640x480", 2)

	got := cam.args("captured_image.jpg")
	want := []string{"-r", "640x480", "-S", "2", "--no-banner", "captured_image.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("args = %v, want %v", got, want)
	}
}

func TestFswebcam_ArgsCustom(t *testing.T) {
	cam := NewFswebcam("1280x720", 5)

	got := cam.args("/tmp/shot.jpg")
	want := []string{"-r", "1280x720", "-S", "5", "--no-banner", "/tmp/shot.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("args = %v, want %v", got, want)
	}
}

func TestFswebcam_ImplementsCamera(t *testing.T) {
	var _ Camera = NewFswebcam("640x480", 2) // compile-time check
}

func TestFromConfig_Fswebcam(t *testing.T) {
	cfg := &config.Config{}
	cfg.Camera.Type = "fswebcam"
	cfg.Camera.Resolution = "640x480"
	cfg.Camera.SkipFrames = 2

	cam, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if _, ok := cam.(*Fswebcam); !ok {
		t.Errorf("FromConfig returned %T, want *Fswebcam", cam)
	}
}

func TestFromConfig_UnknownType(t *testing.T) {
	cfg := &config.Config{}
	cfg.Camera.Type = "polaroid"

	if _, err := FromConfig(cfg); err == nil {
		t.Error("expected error for unknown camera type, got nil")
	}
}
