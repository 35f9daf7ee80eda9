package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Apurer/retail-pos/internal/domains/sales/domain"
	"github.com/Apurer/retail-pos/internal/domains/sales/ports"
	"github.com/Apurer/retail-pos/internal/platform/kafka"
)

var (
	_ ports.EventPublisher = (*KafkaPublisher)(nil)
	_ ports.EventPublisher = NoopPublisher{}
)

const eventTypeSaleCompleted = "sale.completed"

// KafkaPublisher writes sale events as JSON keyed by order id.
type KafkaPublisher struct {
	producer kafka.Producer
	topic    string
}

func NewKafkaPublisher(producer kafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) PublishSaleCompleted(ctx context.Context, event domain.SaleCompleted) error {
	payload, err := json.Marshal(toSaleCompletedMessage(event))
	if err != nil {
		return fmt.Errorf("marshal sale completed: %w", err)
	}
	err = p.producer.Produce(ctx, kafka.Message{
		Topic: p.topic,
		Key:   strconv.FormatInt(event.OrderID, 10),
		Headers: map[string]string{
			"event-type":   eventTypeSaleCompleted,
			"content-type": "application/json",
		},
		Payload: payload,
	})
	if err != nil {
		return fmt.Errorf("produce sale completed: %w", err)
	}
	return nil
}

// NoopPublisher drops events; used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishSaleCompleted(context.Context, domain.SaleCompleted) error {
	return nil
}

type saleCompletedMessage struct {
	OrderID      int64             `json:"order_id"`
	CartID       string            `json:"cart_id"`
	CustomerName string            `json:"customer_name"`
	Total        string            `json:"total"`
	Lines        []saleLineMessage `json:"lines"`
	OccurredAt   time.Time         `json:"occurred_at"`
}

type saleLineMessage struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int32  `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

func toSaleCompletedMessage(event domain.SaleCompleted) saleCompletedMessage {
	lines := make([]saleLineMessage, 0, len(event.Lines))
	for _, l := range event.Lines {
		lines = append(lines, saleLineMessage{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.StringFixed(2),
			LineTotal: l.LineTotal.StringFixed(2),
		})
	}
	return saleCompletedMessage{
		OrderID:      event.OrderID,
		CartID:       event.CartID,
		CustomerName: event.CustomerName,
		Total:        event.Total.StringFixed(2),
		Lines:        lines,
		OccurredAt:   event.OccurredAt.UTC(),
	}
}
