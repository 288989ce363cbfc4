package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"property-client/internal/constants"
	"property-client/internal/contextkeys"
	"property-client/internal/core/domain"
	"property-client/internal/core/port"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MessagePublisher - то, что нужно адаптеру от rabbitmq_producer.Publisher
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

var _ port.PropertyEventsPort = (*PropertyEventsPublisher)(nil)

// PropertyEventsPublisher - реализация PropertyEventsPort для RabbitMQ
type PropertyEventsPublisher struct {
	producer       MessagePublisher
	publishTimeout time.Duration
}

func NewPropertyEventsPublisher(producer MessagePublisher) (*PropertyEventsPublisher, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	return &PropertyEventsPublisher{
		producer:       producer,
		publishTimeout: 10 * time.Second,
	}, nil
}

// RoutingKeyFor возвращает ключ маршрутизации для типа изменения
func RoutingKeyFor(changeType domain.PropertyChangeType) (string, error) {
	switch changeType {
	case domain.PropertyCreated:
		return constants.RoutingKeyPropertyCreated, nil
	case domain.PropertyUpdated:
		return constants.RoutingKeyPropertyUpdated, nil
	case domain.PropertyDeleted:
		return constants.RoutingKeyPropertyDeleted, nil
	default:
		return "", fmt.Errorf("rabbitmq adapter: unknown property change type %q", changeType)
	}
}

func (a *PropertyEventsPublisher) PublishPropertyChanged(ctx context.Context, event domain.PropertyChangedEvent) error {
	routingKey, err := RoutingKeyFor(event.Type)
	if err != nil {
		return err
	}

	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PropertyEventsPublisher",
		"routing_key": routingKey,
		"property_id": event.PropertyID,
	})

	body, err := json.Marshal(event)
	if err != nil {
		adapterLogger.Error("Failed to marshal property event", err, nil)
		return fmt.Errorf("failed to marshal property event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Headers:      make(amqp.Table),
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers[constants.HeaderTraceID] = traceID
	}

	// событие публикуется и после того, как HTTP-запрос пользователя завершился
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.publishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish property event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish %s event for property %d: %w", event.Type, event.PropertyID, err)
	}

	adapterLogger.Debug("Property event published", nil)
	return nil
}
