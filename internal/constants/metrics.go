package constants

// MetricsNamespace - префикс всех метрик клиента
const MetricsNamespace = "property_client"
