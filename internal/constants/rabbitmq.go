package constants

// Обменник событий об изменении объектов
const (
	DefaultPropertyEventsExchange = "property_events"
	PropertyEventsExchangeType    = "direct"
)

// Ключи маршрутизации
const (
	RoutingKeyPropertyCreated = "property.created"
	RoutingKeyPropertyUpdated = "property.updated"
	RoutingKeyPropertyDeleted = "property.deleted"
)

// HeaderTraceID - заголовок AMQP-сообщения с trace id
const HeaderTraceID = "x-trace-id"
