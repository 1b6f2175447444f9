package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Manoj-V07/Gadgetory/logger"
	"github.com/Manoj-V07/Gadgetory/models"
)

// Publisher announces finalized orders to interested consumers. Publishing is
// best-effort: a failed publish never rolls back a placed order.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, order *models.Order) error
	Close()
}

type OrderCreatedEvent struct {
	OrderID    string  `json:"order_id"`
	UserID     string  `json:"user_id"`
	TotalPrice float64 `json:"total_price"`
	CreatedAt  string  `json:"created_at"`
}

type NatsPublisher struct {
	nc     *nats.Conn
	logger *logger.Logger
}

func NewNatsPublisher(url string, log *logger.Logger) (*NatsPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("Gadgetory API"),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NatsPublisher{nc: nc, logger: log}, nil
}

func (p *NatsPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	event := OrderCreatedEvent{
		OrderID:    order.OrderID,
		UserID:     order.UserID,
		TotalPrice: order.TotalPrice,
		CreatedAt:  order.CreatedAt.Format(time.RFC3339),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.nc.Publish("order.created", data); err != nil {
		return fmt.Errorf("failed to publish order.created: %w", err)
	}
	if err := p.nc.FlushTimeout(2 * time.Second); err != nil {
		return fmt.Errorf("failed to flush NATS connection: %w", err)
	}

	p.logger.Info("Published order.created event", "order_id", order.OrderID)
	return nil
}

func (p *NatsPublisher) Close() {
	if p.nc != nil && p.nc.IsConnected() {
		p.nc.Close()
		p.logger.Info("NATS connection closed")
	}
}

// Connect dials NATS with retries, falling back to a no-op publisher so the
// API keeps serving when the broker is unavailable or unconfigured.
func Connect(url string, log *logger.Logger) Publisher {
	if url == "" {
		log.Info("NATS URL not set, event publishing disabled")
		return NoopPublisher{}
	}

	for i := 0; i < 3; i++ {
		publisher, err := NewNatsPublisher(url, log)
		if err == nil {
			log.Info("Connected to NATS", "url", url)
			return publisher
		}
		log.Warn("Failed to connect to NATS, retrying...", "attempt", i+1, "error", err)
		time.Sleep(2 * time.Second)
	}

	log.Warn("Could not reach NATS, continuing without event publishing", "url", url)
	return NoopPublisher{}
}

type NoopPublisher struct{}

func (NoopPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	return nil
}

func (NoopPublisher) Close() {}
