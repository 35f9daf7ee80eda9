package config

// Kafka configures the sale event producer. No addresses disables publishing.
type Kafka struct {
	Addresses []string `env:"KAFKA_ADDRESSES" envSeparator:","`
	Topic     string   `env:"KAFKA_SALES_TOPIC" envDefault:"pos.sale.completed"`
}

func (k Kafka) Enabled() bool {
	return len(k.Addresses) > 0
}
