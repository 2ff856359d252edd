package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// MQTTTopic is the topic motion events are published to.
const MQTTTopic = "security/smartcam/events"

// MQTT publishes events to an MQTT broker for smart-home consumers.
// The client auto-reconnects; a publish while disconnected simply fails
// for that event and the next one tries again.
type MQTT struct {
	client paho.Client
	topic  string
}

// NewMQTT creates a channel connected to the given broker. The initial
// connect is retried in the background, so a broker that is down at
// startup delays delivery rather than failing construction.
func NewMQTT(broker string) *MQTT {
	log := slog.Default().With("component", "mqtt")

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("smartcam").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	opts.OnConnect = func(paho.Client) {
		log.Info("connected to broker", "broker", broker)
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Warn("connection lost, will reconnect", "broker", broker, "err", err)
	}

	client := paho.NewClient(opts)
	client.Connect()

	return &MQTT{client: client, topic: MQTTTopic}
}

func (m *MQTT) Name() string { return "mqtt" }

func (m *MQTT) Enabled() bool { return true }

// Send publishes the event payload at QoS 1.
func (m *MQTT) Send(ctx context.Context, ev Event) error {
	payload, err := FormatPayload(ev)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}

	token := m.client.Publish(m.topic, 1, false, payload)
	if !token.WaitTimeout(textTimeout) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// Close disconnects from the broker, allowing a short grace period for
// an in-flight publish.
func (m *MQTT) Close() error {
	m.client.Disconnect(1000)
	return nil
}
