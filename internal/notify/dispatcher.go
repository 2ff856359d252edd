package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/varley/smartcam/internal/snapshot"
)

// Dispatcher turns an accepted motion event into a message plus
// snapshot and delivers it to every channel concurrently. Dispatch
// returns as soon as the fan-out goroutines are launched; the
// frame-processing loop never waits on delivery.
type Dispatcher struct {
	store    snapshot.Store
	channels []Channel
	observer Observer
	log      *slog.Logger
	wg       sync.WaitGroup
}

// NewDispatcher creates a dispatcher persisting snapshots to store and
// reporting outcomes to obs. A nil obs discards them.
func NewDispatcher(store snapshot.Store, obs Observer, channels ...Channel) *Dispatcher {
	if obs == nil {
		obs = NopObserver{}
	}
	return &Dispatcher{
		store:    store,
		channels: channels,
		observer: obs,
		log:      slog.Default().With("component", "dispatcher"),
	}
}

// Dispatch builds the event for a confirmed motion at t, saves the
// snapshot, and starts one delivery goroutine per channel. A snapshot
// save failure is logged and the event proceeds without a path — the
// alert still carries the in-memory JPEG.
func (d *Dispatcher) Dispatch(jpeg []byte, t time.Time) Event {
	path, err := d.store.Save(jpeg, t)
	if err != nil {
		d.log.Warn("snapshot save failed", "err", err)
		path = ""
	}

	ev := Event{
		ID:           uuid.NewString(),
		Time:         t,
		Message:      "Motion detected at " + t.Format("2006-01-02 15:04:05"),
		Snapshot:     jpeg,
		SnapshotPath: path,
	}

	d.observer.EventDispatched(ev)
	d.log.Info("dispatching event", "event", ev.ID, "snapshot", path, "channels", len(d.channels))

	for _, ch := range d.channels {
		d.wg.Add(1)
		go func(ch Channel) {
			defer d.wg.Done()
			d.send(ch, ev)
		}(ch)
	}
	return ev
}

// send runs one channel's delivery attempt and reports the outcome.
// Errors stop here: they are logged and counted, never propagated.
func (d *Dispatcher) send(ch Channel, ev Event) {
	err := ch.Send(context.Background(), ev)

	out := Outcome{Channel: ch.Name()}
	switch {
	case err == nil:
		out.Status = Delivered
		d.log.Info("alert delivered", "channel", ch.Name(), "event", ev.ID)
	case errors.Is(err, ErrDisabled):
		out.Status = Skipped
		d.log.Debug("channel disabled", "channel", ch.Name(), "event", ev.ID)
	default:
		out.Status = Failed
		out.Err = err
		d.log.Warn("alert failed", "channel", ch.Name(), "event", ev.ID, "err", err)
	}
	d.observer.ChannelOutcome(ev, out)
}

// Shutdown waits for in-flight deliveries until ctx expires, then
// abandons them. An event whose dispatch was still outstanding at
// shutdown carries no delivery guarantee.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		d.log.Warn("abandoning in-flight deliveries", "err", ctx.Err())
		return ctx.Err()
	}
}
