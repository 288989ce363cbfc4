package rabbitmq_producer

import (
	"context"
	"fmt"
	"sync"

	"property-client/pkg/rabbitmq/rabbitmq_common"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PublisherConfig - параметры публикации
type PublisherConfig struct {
	rabbitmq_common.Config
	ExchangeName       string // пустая строка - default exchange
	ExchangeType       string // direct, fanout, topic, headers
	DurableExchange    bool
	AutoDeleteExchange bool
	InternalExchange   bool
	ExchangeArgs       amqp.Table

	// если false, обменник должен уже существовать
	DeclareExchangeIfMissing bool

	Logger rabbitmq_common.Logger
}

func (c PublisherConfig) validate() error {
	if err := c.Config.Validate(); err != nil {
		return fmt.Errorf("invalid base config: %w", err)
	}
	if c.DeclareExchangeIfMissing && c.ExchangeName == "" && c.ExchangeType != "" {
		return fmt.Errorf("producer: exchange name is required if ExchangeType is specified and DeclareExchangeIfMissing is true")
	}
	if c.DeclareExchangeIfMissing && c.ExchangeType == "" && c.ExchangeName != "" {
		return fmt.Errorf("producer: exchange type is required if ExchangeName is specified and DeclareExchangeIfMissing is true")
	}
	return nil
}

// Publisher публикует сообщения в один обменник.
// Закрытый канал переоткрывается при следующей публикации.
type Publisher struct {
	config  PublisherConfig
	manager *rabbitmq_common.ConnectionManager

	mu      sync.Mutex
	channel *amqp.Channel

	Logger rabbitmq_common.Logger
}

func NewPublisher(cfg PublisherConfig, manager *rabbitmq_common.ConnectionManager) (*Publisher, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if manager == nil {
		return nil, fmt.Errorf("producer: connection manager is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = rabbitmq_common.NewNoopLogger()
	}

	p := &Publisher{config: cfg, manager: manager, Logger: logger}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := p.channelLocked(); err != nil {
		return nil, err
	}

	p.Logger.Debug("Producer: channel opened", "exchange", cfg.ExchangeName)
	return p, nil
}

// channelLocked возвращает открытый канал, при необходимости открывая новый и объявляя обменник
func (p *Publisher) channelLocked() (*amqp.Channel, error) {
	if p.channel != nil && !p.channel.IsClosed() {
		return p.channel, nil
	}

	_, ch, err := p.manager.GetChannel()
	if err != nil {
		return nil, fmt.Errorf("producer: failed to get channel from manager: %w", err)
	}

	if p.config.DeclareExchangeIfMissing && p.config.ExchangeName != "" {
		p.Logger.Debug("Declaring exchange",
			"name", p.config.ExchangeName,
			"type", p.config.ExchangeType,
		)
		err = ch.ExchangeDeclare(
			p.config.ExchangeName,
			p.config.ExchangeType,
			p.config.DurableExchange,
			p.config.AutoDeleteExchange,
			p.config.InternalExchange,
			false, // no-wait
			p.config.ExchangeArgs,
		)
		if err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("producer: failed to declare exchange '%s': %w", p.config.ExchangeName, err)
		}
	}

	p.channel = ch
	return ch, nil
}

// Publish публикует сообщение с ключом routingKey
func (p *Publisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channelLocked()
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(
		ctx,
		p.config.ExchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("producer: failed to publish message: %w", err)
	}
	return nil
}

// Close закрывает канал; соединение принадлежит ConnectionManager
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil {
		return nil
	}
	err := p.channel.Close()
	p.channel = nil
	if err != nil {
		p.Logger.Error(err, "Producer: error closing channel")
		return err
	}
	p.Logger.Info("Producer closed")
	return nil
}
