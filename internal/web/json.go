package web

import (
	"encoding/json"
	"time"

	"github.com/varley/smartcam/internal/status"
)

// StatusJSON is the JSON representation of the daemon status.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	UptimeSeconds int64                  `json:"uptime_seconds"`
	StartTime     string                 `json:"start_time"`
	Timestamp     string                 `json:"timestamp"`
	Counters      CountersJSON           `json:"counters"`
	Channels      map[string]ChannelJSON `json:"channels"`
	Events        []EventJSON            `json:"recent_events"`
	Config        ConfigJSON             `json:"config"`
}

// CountersJSON is the JSON representation of the pipeline counters.
type CountersJSON struct {
	FramesRead     uint64 `json:"frames_read"`
	RateSkipped    uint64 `json:"rate_skipped"`
	SourceErrors   uint64 `json:"source_errors"`
	AnalyzerErrors uint64 `json:"analyzer_errors"`
	MotionFrames   uint64 `json:"motion_frames"`
	Suppressed     uint64 `json:"cooldown_suppressed"`
	Dispatched     uint64 `json:"events_dispatched"`
}

// ChannelJSON is the JSON representation of one channel's tallies.
type ChannelJSON struct {
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

// EventJSON is the JSON representation of a retained event.
type EventJSON struct {
	ID       string            `json:"id"`
	Time     string            `json:"time"`
	Message  string            `json:"message"`
	Snapshot string            `json:"snapshot,omitempty"`
	Outcomes map[string]string `json:"outcomes"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	Window     int     `json:"window"`
	CooldownMs int64   `json:"cooldown_ms"`
	MaxFPS     float64 `json:"max_fps"`
	MinArea    float64 `json:"min_area"`
	Source     string  `json:"source"`
	SaveDir    string  `json:"save_dir"`
	HTTPAddr   string  `json:"http_addr"`
}

func formatJSON(snap status.Snapshot) []byte {
	inner := StatusInner{
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Counters: CountersJSON{
			FramesRead:     snap.Counters.FramesRead,
			RateSkipped:    snap.Counters.RateSkipped,
			SourceErrors:   snap.Counters.SourceErrors,
			AnalyzerErrors: snap.Counters.AnalyzerErrors,
			MotionFrames:   snap.Counters.MotionFrames,
			Suppressed:     snap.Counters.Suppressed,
			Dispatched:     snap.Counters.Dispatched,
		},
		Channels: make(map[string]ChannelJSON, len(snap.Channels)),
		Config: ConfigJSON{
			Window:     snap.Config.Window,
			CooldownMs: snap.Config.Cooldown.Milliseconds(),
			MaxFPS:     snap.Config.MaxFPS,
			MinArea:    snap.Config.MinArea,
			Source:     snap.Config.Source,
			SaveDir:    snap.Config.SaveDir,
			HTTPAddr:   snap.Config.HTTPAddr,
		},
	}

	for name, tally := range snap.Channels {
		inner.Channels[name] = ChannelJSON{
			Delivered: tally.Delivered,
			Failed:    tally.Failed,
			Skipped:   tally.Skipped,
		}
	}

	// Newest first: the interesting event is the latest one.
	for i := len(snap.Events) - 1; i >= 0; i-- {
		rec := snap.Events[i]
		inner.Events = append(inner.Events, EventJSON{
			ID:       rec.ID,
			Time:     rec.Time.UTC().Format(time.RFC3339),
			Message:  rec.Message,
			Snapshot: rec.SnapshotPath,
			Outcomes: rec.Outcomes,
		})
	}

	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}
