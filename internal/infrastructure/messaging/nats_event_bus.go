package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"chefe_local/internal/domain/entities"
	"chefe_local/internal/usecase/interfaces"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	subjectPrefix   = "orders"
	defaultMaxAge   = 24 * time.Hour
	duplicateWindow = 2 * time.Minute
)

// NATSEventBus carries order events over NATS JetStream. Each order has its own
// subject, orders.<id>.events, inside one stream.
type NATSEventBus struct {
	conn   *nats.Conn
	js     jetstream.JetStream
	stream string
}

type NATSEventBusConfig struct {
	URL        string
	StreamName string
	Timeout    time.Duration
	MaxAge     time.Duration
}

var (
	_ interfaces.IEventPublisher  = (*NATSEventBus)(nil)
	_ interfaces.IEventSubscriber = (*NATSEventBus)(nil)
)

// NewNATSEventBus connects and ensures the stream exists.
func NewNATSEventBus(ctx context.Context, cfg NATSEventBusConfig) (*NATSEventBus, error) {
	conn, err := nats.Connect(cfg.URL,
		nats.Name("chefe-local-api"),
		nats.Timeout(cfg.Timeout),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = defaultMaxAge
	}
	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:       cfg.StreamName,
		Subjects:   []string{subjectPrefix + ".>"},
		MaxAge:     maxAge,
		Duplicates: duplicateWindow,
	})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create/update stream %s: %w", cfg.StreamName, err)
	}
	log.Printf("[events][nats] stream ready stream=%s url=%s", cfg.StreamName, cfg.URL)

	return &NATSEventBus{conn: conn, js: js, stream: cfg.StreamName}, nil
}

// Publish sends event with its id as Nats-Msg-Id, so a retried publish is
// stored once by the server.
func (b *NATSEventBus) Publish(ctx context.Context, event entities.OrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := b.js.Publish(ctx, subjectFor(event.OrderID), data, jetstream.WithMsgID(event.ID)); err != nil {
		return fmt.Errorf("failed to publish to stream: %w", err)
	}
	return nil
}

// Subscribe delivers new events of orderID to handler until the returned
// cancel func is called or ctx is done.
func (b *NATSEventBus) Subscribe(ctx context.Context, orderID string, handler func(entities.OrderEvent)) (func(), error) {
	consumer, err := b.js.OrderedConsumer(ctx, b.stream, jetstream.OrderedConsumerConfig{
		FilterSubjects: []string{subjectFor(orderID)},
		DeliverPolicy:  jetstream.DeliverNewPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	cc, err := consumer.Consume(func(msg jetstream.Msg) {
		event, err := decodeEvent(msg.Data())
		if err != nil {
			log.Printf("[events][nats] drop malformed event subject=%s err=%v", msg.Subject(), err)
			return
		}
		handler(event)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to consume: %w", err)
	}

	stop := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			cc.Stop()
		case <-stop:
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			cc.Stop()
		})
	}, nil
}

func (b *NATSEventBus) Close() error {
	if err := b.conn.Drain(); err != nil {
		b.conn.Close()
		return err
	}
	return nil
}

func subjectFor(orderID string) string {
	// NATS subject tokens cannot hold dots or wildcards.
	r := strings.NewReplacer(".", "_", "*", "_", ">", "_", " ", "_")
	return subjectPrefix + "." + r.Replace(orderID) + ".events"
}

func decodeEvent(data []byte) (entities.OrderEvent, error) {
	var event entities.OrderEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return entities.OrderEvent{}, err
	}
	if event.OrderID == "" {
		return entities.OrderEvent{}, fmt.Errorf("event without order_id")
	}
	return event, nil
}
