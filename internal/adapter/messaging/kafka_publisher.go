package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/rl1809/rocket-cart/internal/core/domain"
)

const DefaultTopic = "rocketcart.cart.changed"

// CartChangedEvent is the payload published after every cart commit. It
// carries the full cart, like the stored snapshot.
type CartChangedEvent struct {
	SessionID string           `json:"session_id"`
	Items     []domain.Product `json:"items"`
	ItemCount int              `json:"item_count"`
	Total     decimal.Decimal  `json:"total"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaCartPublisher publishes cart changes keyed by session id, so all events
// of one session land on the same partition in order.
type KafkaCartPublisher struct {
	writer    messageWriter
	sessionID string
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewKafkaCartPublisher(brokers []string, topic, sessionID string, log logrus.FieldLogger) *KafkaCartPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireAll,
		MaxAttempts:            3,
		WriteBackoffMin:        100 * time.Millisecond,
		WriteBackoffMax:        time.Second,
	}
	return newPublisher(writer, sessionID, log)
}

func newPublisher(w messageWriter, sessionID string, log logrus.FieldLogger) *KafkaCartPublisher {
	return &KafkaCartPublisher{
		writer:    w,
		sessionID: sessionID,
		log:       log,
		now:       time.Now,
	}
}

func (p *KafkaCartPublisher) Publish(ctx context.Context, cart domain.Cart) error {
	items := []domain.Product(cart)
	if items == nil {
		items = []domain.Product{}
	}

	data, err := json.Marshal(CartChangedEvent{
		SessionID: p.sessionID,
		Items:     items,
		ItemCount: cart.ItemCount(),
		Total:     cart.Total(),
		UpdatedAt: p.now().UTC(),
	})
	if err != nil {
		return errors.Wrap(err, "marshal cart event")
	}

	msg := kafka.Message{
		Key:   []byte(p.sessionID),
		Value: data,
	}
	return errors.Wrap(p.writer.WriteMessages(ctx, msg), "write cart event")
}

// OnCartChanged is a cart listener. Publish failures are logged and dropped;
// the cart itself is already committed.
func (p *KafkaCartPublisher) OnCartChanged(ctx context.Context, cart domain.Cart) {
	if err := p.Publish(ctx, cart); err != nil {
		p.log.WithError(err).WithField("session_id", p.sessionID).Error("failed to publish cart event")
		return
	}
	p.log.WithField("items", len(cart)).Debug("cart event published")
}

func (p *KafkaCartPublisher) Close() error {
	return p.writer.Close()
}
