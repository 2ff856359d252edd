// Command smartcam watches a video stream, confirms sustained motion,
// and fans alerts out to the configured notification channels.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/varley/smartcam/internal/alarm"
	"github.com/varley/smartcam/internal/camera"
	"github.com/varley/smartcam/internal/logic"
	"github.com/varley/smartcam/internal/notify"
	"github.com/varley/smartcam/internal/snapshot"
	"github.com/varley/smartcam/internal/status"
	"github.com/varley/smartcam/internal/vision"
	"github.com/varley/smartcam/internal/web"
)

// tickInterval drives the frame loop well above any admissible sample
// rate; the rate limiter does the actual pacing.
const tickInterval = 5 * time.Millisecond

// shutdownGrace bounds how long outstanding alert deliveries may hold
// up process exit.
const shutdownGrace = 3 * time.Second

type config struct {
	Source   string
	Window   int
	Cooldown time.Duration
	MaxFPS   float64
	MinArea  float64
	SaveDir  string
	HTTPAddr string

	WebhookURL     string
	TelegramToken  string
	TelegramChatID string
	DiscordURL     string
	MQTTBroker     string
	NATSURL        string

	AlarmPin int
	NoAlarm  bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.Source, "source", envDefault("SMARTCAM_SOURCE", ""), "MJPEG stream URL or directory of JPEG frames (required)")
	flag.IntVar(&cfg.Window, "window", 5, "Consecutive motion frames required to confirm an event")
	flag.DurationVar(&cfg.Cooldown, "cooldown", envDuration("SMARTCAM_COOLDOWN", 20*time.Second), "Minimum interval between alerts")
	flag.Float64Var(&cfg.MaxFPS, "max-fps", 8, "Process at most this many frames per second")
	flag.Float64Var(&cfg.MinArea, "min-area", 0.01, "Fraction of the view that must change to count as motion")
	flag.StringVar(&cfg.SaveDir, "save-dir", "events", "Where to save event snapshots")
	flag.StringVar(&cfg.HTTPAddr, "http", ":8080", "HTTP status address (empty to disable)")
	flag.StringVar(&cfg.WebhookURL, "webhook-url", envDefault("WEBHOOK_URL", ""), "Generic webhook URL (empty to disable)")
	flag.StringVar(&cfg.TelegramToken, "telegram-token", envDefault("TELEGRAM_TOKEN", ""), "Telegram bot token")
	flag.StringVar(&cfg.TelegramChatID, "telegram-chat-id", envDefault("TELEGRAM_CHAT_ID", ""), "Telegram chat ID")
	flag.StringVar(&cfg.DiscordURL, "discord-webhook", envDefault("DISCORD_WEBHOOK_URL", ""), "Discord webhook URL (empty to disable)")
	flag.StringVar(&cfg.MQTTBroker, "mqtt-broker", envDefault("MQTT_BROKER", ""), "MQTT broker address (empty to disable)")
	flag.StringVar(&cfg.NATSURL, "nats-url", envDefault("NATS_URL", ""), "NATS server URL (empty to disable)")
	flag.IntVar(&cfg.AlarmPin, "alarm-pin", -1, "GPIO pin for a siren (negative uses the terminal bell)")
	flag.BoolVar(&cfg.NoAlarm, "no-alarm", false, "Disable the local alarm")
	debug := flag.Bool("debug", envBool("DEBUG", false), "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})))

	if err := run(cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func (c config) validate() error {
	if c.Source == "" {
		return errors.New("source is required (-source or SMARTCAM_SOURCE)")
	}
	if c.Window < 1 {
		return fmt.Errorf("window must be at least 1, got %d", c.Window)
	}
	if c.Cooldown < 0 {
		return fmt.Errorf("cooldown must not be negative, got %v", c.Cooldown)
	}
	if c.MaxFPS <= 0 {
		return fmt.Errorf("max-fps must be positive, got %v", c.MaxFPS)
	}
	if c.MinArea <= 0 || c.MinArea > 1 {
		return fmt.Errorf("min-area must be in (0,1], got %v", c.MinArea)
	}
	return nil
}

func run(cfg config) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	// The one fatal I/O path: a camera that cannot be opened.
	src, err := openSource(cfg.Source)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer src.Close()

	tracker := status.NewTracker(time.Now(), status.Config{
		Window:   cfg.Window,
		Cooldown: cfg.Cooldown,
		MaxFPS:   cfg.MaxFPS,
		MinArea:  cfg.MinArea,
		Source:   cfg.Source,
		SaveDir:  cfg.SaveDir,
		HTTPAddr: cfg.HTTPAddr,
	})

	channels, closers := buildChannels(cfg)
	defer closeAll(closers)

	dispatcher := notify.NewDispatcher(snapshot.NewDir(cfg.SaveDir), tracker, channels...)

	if cfg.HTTPAddr != "" {
		srv := web.New(cfg.HTTPAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("http server error", "err", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		slog.Info("http status server listening", "addr", cfg.HTTPAddr)
	}

	slog.Info("started",
		"source", cfg.Source,
		"window", cfg.Window,
		"cooldown", cfg.Cooldown,
		"max_fps", cfg.MaxFPS,
		"channels", len(channels))

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	err = runLoop(src, vision.NewDiffAnalyzer(cfg.MinArea),
		logic.NewDebouncer(cfg.Window),
		logic.NewCooldownGate(cfg.Cooldown),
		logic.NewRateLimiter(cfg.MaxFPS),
		dispatcher, tracker, time.Now, ticker.C, sigCh)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	dispatcher.Shutdown(ctx)

	return err
}

// runLoop is the sequential frame-processing loop. It is the sole owner
// of the debouncer, gate, and limiter state; dispatch happens on
// goroutines the dispatcher manages and never feeds back in.
func runLoop(src camera.Source, analyzer vision.Analyzer, deb *logic.Debouncer, gate *logic.CooldownGate, limit *logic.RateLimiter, dispatcher *notify.Dispatcher, tracker *status.Tracker, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	for {
		select {
		case s := <-sig:
			slog.Info("shutting down", "signal", s)
			return nil

		case <-tick:
			t := now()
			if !limit.Admit(t) {
				tracker.RateSkipped()
				continue
			}

			frame, err := src.NextFrame()
			if err != nil {
				slog.Warn("frame grab failed, retrying", "err", err)
				tracker.SourceError()
				continue
			}
			tracker.FrameRead()

			motion, err := analyzer.Analyze(frame)
			if err != nil {
				// An unjudgeable frame says nothing about motion;
				// skip it rather than recording a negative.
				slog.Warn("frame analysis failed, skipping sample", "err", err)
				tracker.AnalyzerError()
				continue
			}
			if motion {
				tracker.MotionFrame()
			}

			if !deb.Offer(motion) {
				continue
			}
			if !gate.Allow(t) {
				slog.Debug("confirmation suppressed by cooldown")
				tracker.Suppressed()
				continue
			}
			gate.Accept(t)

			ev := dispatcher.Dispatch(frame.Data, t)
			slog.Info("motion confirmed", "event", ev.ID, "frame", frame.Seq)
		}
	}
}

// openSource picks the frame source by the shape of the flag: a URL
// means a live MJPEG stream, anything else a directory of frames.
func openSource(source string) (camera.Source, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return camera.NewMJPEGSource(source)
	}
	return camera.NewReplaySource(source)
}

// buildChannels assembles the channel set from the config. HTTP
// channels are always present and decide enablement themselves; the bus
// channels and the alarm only exist when configured. The returned
// closers release broker connections and GPIO lines on exit.
func buildChannels(cfg config) ([]notify.Channel, []io.Closer) {
	channels := []notify.Channel{
		&notify.Webhook{URL: cfg.WebhookURL},
		&notify.Telegram{Token: cfg.TelegramToken, ChatID: cfg.TelegramChatID},
		&notify.Discord{URL: cfg.DiscordURL},
	}
	var closers []io.Closer

	if cfg.MQTTBroker != "" {
		mq := notify.NewMQTT(cfg.MQTTBroker)
		channels = append(channels, mq)
		closers = append(closers, mq)
	}

	if cfg.NATSURL != "" {
		nc, err := notify.NewNATS(cfg.NATSURL)
		if err != nil {
			slog.Warn("nats channel unavailable", "err", err)
		} else {
			channels = append(channels, nc)
			closers = append(closers, nc)
		}
	}

	if !cfg.NoAlarm {
		sounder, closer := buildSounder(cfg.AlarmPin)
		if closer != nil {
			closers = append(closers, closer)
		}
		channels = append(channels, notify.NewAlarm(sounder))
	}

	return channels, closers
}

// buildSounder selects the siren when a pin is configured, falling back
// to the terminal bell when the hardware is unavailable.
func buildSounder(pin int) (notify.Sounder, io.Closer) {
	if pin < 0 {
		return &alarm.Bell{}, nil
	}
	siren, err := alarm.NewSiren(pin)
	if err != nil {
		slog.Warn("gpio siren unavailable, using terminal bell", "pin", pin, "err", err)
		return &alarm.Bell{}, nil
	}
	return siren, siren
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		if err := c.Close(); err != nil {
			slog.Warn("close failed", "err", err)
		}
	}
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "1" || v == "true" || v == "TRUE" || v == "yes" || v == "on"
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return fallback
}
