package wiring

import (
	"context"
	"log/slog"

	"github.com/Apurer/retail-pos/internal/config"
	salesmessaging "github.com/Apurer/retail-pos/internal/domains/sales/adapters/messaging"
	salesports "github.com/Apurer/retail-pos/internal/domains/sales/ports"
	"github.com/Apurer/retail-pos/internal/platform/kafka"
)

// NewPublisher connects the sale.completed publisher to Kafka, or drops events when no broker
// is configured or reachable. Checkout never depends on the broker being up.
func NewPublisher(ctx context.Context, cfg config.Kafka, logger *slog.Logger) (salesports.EventPublisher, func()) {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Enabled() {
		logger.Info("KAFKA_ADDRESSES not set, sale events are not published")
		return salesmessaging.NoopPublisher{}, func() {}
	}
	producer, err := kafka.NewProducer(ctx, cfg)
	if err != nil {
		logger.Warn("kafka unavailable, sale events are not published", slog.String("error", err.Error()))
		return salesmessaging.NoopPublisher{}, func() {}
	}
	logger.Info("sale events published to kafka", slog.String("topic", cfg.Topic), slog.Any("brokers", cfg.Addresses))
	return salesmessaging.NewKafkaPublisher(producer, cfg.Topic), producer.Close
}
