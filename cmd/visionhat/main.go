package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/aidenreynolds-dev/assistive-navigation-device/internal/config"
	"github.com/aidenreynolds-dev/assistive-navigation-device/internal/debug"
	"github.com/aidenreynolds-dev/assistive-navigation-device/internal/hw/button"
	"github.com/aidenreynolds-dev/assistive-navigation-device/internal/hw/camera"
	"github.com/aidenreynolds-dev/assistive-navigation-device/internal/hw/gpio"
	"github.com/aidenreynolds-dev/assistive-navigation-device/internal/hw/haptic"
	"github.com/aidenreynolds-dev/assistive-navigation-device/internal/speech"
	"github.com/aidenreynolds-dev/assistive-navigation-device/internal/tasks"
	"github.com/aidenreynolds-dev/assistive-navigation-device/internal/vision"
	"github.com/aidenreynolds-dev/assistive-navigation-device/internal/web"
)

func main() {
	// CLI flags
	webPort := &webPortFlag{defaultPort: 8080}
	flag.Var(webPort, "web", "start status server on port; -web= for default 8080, -web 8980 for custom port")
	cfgPath := flag.String("config", filepath.Join("configs", "default.yaml"), "path to config file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Load configuration
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	// The single secret: the vision API key, from the environment.
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatalf("OPENAI_API_KEY is not set")
	}

	// Initialize debug system
	debug.Init(cfg.Defaults.DebugLevel)
	debug.Section("Initialization")
	debug.Value("Config path", *cfgPath)
	debug.Value("Debug level", cfg.Defaults.DebugLevel)

	// Initialize GPIO driver
	debug.Value("Mock GPIO", cfg.Defaults.MockGPIO)
	gpioDriver, err := gpio.NewDriver(cfg.Defaults.MockGPIO)
	if err != nil {
		log.Fatalf("init GPIO failed: %v", err)
	}
	defer func() {
		if err := gpioDriver.Close(); err != nil {
			log.Printf("closing GPIO driver failed: %v", err)
		}
	}()

	// Vibration motor; forced low again on shutdown, before the
	// driver releases the pins.
	motor := haptic.NewMotor(gpioDriver, haptic.Config{
		Pin:     cfg.Hardware.VibrationPin,
		Ack:     cfg.AckPulse(),
		Success: cfg.SuccessPulse(),
		Failure: cfg.FailurePulse(),
	})
	defer func() {
		if err := motor.Off(); err != nil {
			log.Printf("forcing vibration motor low failed: %v", err)
		}
	}()
	debug.Value("Vibration pin", cfg.Hardware.VibrationPin)

	// Camera
	cam, err := camera.FromConfig(cfg)
	if err != nil {
		log.Fatalf("init camera failed: %v", err)
	}
	debug.Value("Camera type", cfg.Camera.Type)
	debug.Value("Resolution", cfg.Camera.Resolution)
	debug.Value("Image path", cfg.Camera.ImagePath)

	// External services
	analyzer := vision.NewClient(apiKey, cfg.Analysis.Model, cfg.Analysis.Prompt, cfg.Analysis.MaxOutputTokens)
	speaker := speech.NewEspeak(cfg.Speech.AudioDevice)
	debug.Value("Vision model", cfg.Analysis.Model)
	debug.Value("Audio device", cfg.Speech.AudioDevice)

	// Task pipeline
	queue := tasks.NewQueue()
	processor := tasks.NewProcessor(queue, cam, analyzer, speaker, motor, tasks.Config{
		ImagePath:    cfg.Camera.ImagePath,
		PollInterval: cfg.QueuePollInterval(),
	})

	// Press path shared by the physical button and POST /press: quick
	// tactile acknowledgment, then exactly one queued task. Never the
	// service calls themselves; this runs on the watcher goroutine.
	press := func() {
		if err := motor.Ack(); err != nil {
			debug.Error(fmt.Errorf("ack pulse: %w", err))
		}
		queue.Enqueue(tasks.NewCapture())
		debug.Press(queue.Len())
	}

	// Button watcher
	watcher := button.NewWatcher(gpioDriver, button.Config{
		Pin:          cfg.Hardware.ButtonPin,
		Debounce:     cfg.Debounce(),
		PollInterval: cfg.ButtonPollInterval(),
	})
	watcher.OnPress(press)
	go func() {
		if err := watcher.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("button watcher stopped: %v", err)
			cancel()
		}
	}()
	debug.Value("Button pin", cfg.Hardware.ButtonPin)
	debug.Value("Debounce", cfg.Debounce())

	// Optional status server
	if port := webPort.port(); port > 0 {
		broadcaster := web.NewStatusBroadcaster()
		debug.SetOutput(io.MultiWriter(os.Stdout, web.BroadcastWriter(broadcaster)))

		srv := web.NewServer(fmt.Sprintf(":%d", port), broadcaster, press, processor.Snapshot)
		go func() {
			if err := srv.Run(ctx); err != nil {
				log.Printf("web server: %v", err)
			}
		}()
	}

	debug.Info("Setup complete. Waiting for button press...")

	if err := processor.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("processor: %v", err)
	}
	debug.Info("Shutting down")
}

// webPortFlag implements flag.Value for -web: 0 = disabled, -web= or -web 8080 → 8080, -web 8980 → 8980.
type webPortFlag struct {
	val         int
	defaultPort int
}

func (w *webPortFlag) String() string {
	if w.val == 0 {
		return "0"
	}
	return strconv.Itoa(w.val)
}

func (w *webPortFlag) Set(s string) error {
	if s == "" {
		w.val = w.defaultPort
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if v <= 0 || v > 65535 {
		return fmt.Errorf("port must be 1-65535, got %d", v)
	}
	w.val = v
	return nil
}

func (w *webPortFlag) port() int { return w.val }
