package rabbitmq_common

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Config - общие параметры подключения к RabbitMQ
type Config struct {
	URL string
}

// Validate проверяет, что URL задан и разбирается как AMQP URI
func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("rabbitmq: URL is required")
	}
	if _, err := amqp.ParseURI(c.URL); err != nil {
		return fmt.Errorf("rabbitmq: invalid URL: %w", err)
	}
	return nil
}
