package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"study-planner/internal/model"
	"study-planner/pkg/log"
)

// Config holds NATS configuration
type Config struct {
	URL            string        // NATS server URL (e.g., "nats://nats:4222")
	StreamName     string        // JetStream stream name (default: "PLANNER")
	Timeout        time.Duration // Connection timeout
	ConsumerPrefix string        // Prefix for durable consumer names
	MaxAge         time.Duration // Stream retention
}

// NatsBus publishes and consumes planner events over NATS JetStream.
type NatsBus struct {
	l              log.Logger
	conn           *nats.Conn
	js             nats.JetStreamContext
	streamName     string
	consumerPrefix string
	maxAge         time.Duration

	mu            sync.Mutex
	subscriptions map[string]*nats.Subscription
}

// NewNatsBus connects to NATS and ensures the planner stream exists.
func NewNatsBus(l log.Logger, cfg Config) (*NatsBus, error) {
	if cfg.URL == "" {
		cfg.URL = nats.DefaultURL
	}
	if cfg.StreamName == "" {
		cfg.StreamName = "PLANNER"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxAge == 0 {
		cfg.MaxAge = 24 * time.Hour
	}

	ctx := context.Background()
	nc, err := nats.Connect(cfg.URL,
		nats.Timeout(cfg.Timeout),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				l.Warnf(ctx, "eventbus: NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			l.Infof(ctx, "eventbus: NATS reconnected to %s", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	b := &NatsBus{
		l:              l,
		conn:           nc,
		js:             js,
		streamName:     cfg.StreamName,
		consumerPrefix: cfg.ConsumerPrefix,
		maxAge:         cfg.MaxAge,
		subscriptions:  make(map[string]*nats.Subscription),
	}
	if err := b.ensureStream(ctx); err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to ensure stream: %w", err)
	}

	l.Infof(ctx, "eventbus: connected to NATS at %s with stream %s", cfg.URL, cfg.StreamName)
	return b, nil
}

func (b *NatsBus) ensureStream(ctx context.Context) error {
	streamConfig := &nats.StreamConfig{
		Name:      b.streamName,
		Subjects:  []string{subjectRoot + ".>"},
		Retention: nats.LimitsPolicy,
		MaxAge:    b.maxAge,
		Storage:   nats.FileStorage,
		Replicas:  1,
		Discard:   nats.DiscardOld,
	}

	if _, err := b.js.StreamInfo(b.streamName); err != nil {
		if _, err := b.js.AddStream(streamConfig); err != nil {
			return fmt.Errorf("failed to create stream: %w", err)
		}
		b.l.Infof(ctx, "eventbus: created stream %s", b.streamName)
		return nil
	}
	if _, err := b.js.UpdateStream(streamConfig); err != nil {
		return fmt.Errorf("failed to update stream: %w", err)
	}
	return nil
}

// Publish implements Publisher.
func (b *NatsBus) Publish(ctx context.Context, event model.PlannerEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	subject := Subject(event.Kind, event.UserID)
	if _, err := b.js.Publish(subject, data, nats.Context(ctx)); err != nil {
		return fmt.Errorf("failed to publish event to %s: %w", subject, err)
	}
	return nil
}

// Subscribe implements Subscriber with a durable consumer per event kind.
func (b *NatsBus) Subscribe(kind model.EventKind, handler Handler) error {
	subject := Wildcard(kind)
	durable := b.consumerPrefix + "planner-" + strings.ReplaceAll(string(kind), ".", "-")

	sub, err := b.js.Subscribe(subject, func(msg *nats.Msg) {
		ctx := context.Background()
		var event model.PlannerEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			// Redelivery cannot fix a malformed payload.
			b.l.Errorf(ctx, "eventbus.Subscribe: unmarshal %s: %v", msg.Subject, err)
			_ = msg.Term()
			return
		}
		if err := handler(ctx, event); err != nil {
			b.l.Warnf(ctx, "eventbus.Subscribe: handler %s: %v", msg.Subject, err)
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable(durable),
		nats.AckExplicit(),
		nats.MaxDeliver(3),
		nats.AckWait(2*time.Minute),
	)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}

	b.mu.Lock()
	b.subscriptions[subject] = sub
	b.mu.Unlock()
	b.l.Infof(context.Background(), "eventbus: subscribed to %s with consumer %s", subject, durable)
	return nil
}

// Health reports whether the connection is usable.
func (b *NatsBus) Health() error {
	if b.conn.IsClosed() {
		return fmt.Errorf("NATS connection is closed")
	}
	if !b.conn.IsConnected() {
		return fmt.Errorf("NATS is not connected")
	}
	return nil
}

// Close drains subscriptions and closes the connection.
func (b *NatsBus) Close() error {
	b.mu.Lock()
	for subject, sub := range b.subscriptions {
		_ = sub.Unsubscribe()
		delete(b.subscriptions, subject)
	}
	b.mu.Unlock()
	b.conn.Close()
	return nil
}
