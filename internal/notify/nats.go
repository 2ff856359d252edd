package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSSubject is the subject motion events are published to.
const NATSSubject = "smartcam.events"

// NATS publishes events to a NATS server for home-lab automation.
type NATS struct {
	nc      *nats.Conn
	subject string
}

// NewNATS creates a channel connected to the given server. The
// connection retries failed initial connects and never gives up on
// reconnects, so construction only fails on an unusable URL.
func NewNATS(url string) (*NATS, error) {
	log := slog.Default().With("component", "nats")

	nc, err := nats.Connect(
		url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.RetryOnFailedConnect(true),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("disconnected", "err", err)
				return
			}
			log.Warn("disconnected")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			log.Info("reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	return &NATS{nc: nc, subject: NATSSubject}, nil
}

func (n *NATS) Name() string { return "nats" }

func (n *NATS) Enabled() bool { return true }

// Send publishes the event payload to the subject.
func (n *NATS) Send(ctx context.Context, ev Event) error {
	payload, err := FormatPayload(ev)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}
	if err := n.nc.Publish(n.subject, payload); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// Close drains the connection, flushing anything still buffered.
func (n *NATS) Close() error {
	return n.nc.Drain()
}
