package rabbitmq_common

import (
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultReconnectInterval - как часто проверяется закрытое соединение
const DefaultReconnectInterval = 10 * time.Second

// ConnectionManager держит одно соединение RabbitMQ и переподключается в фоне
type ConnectionManager struct {
	url        string
	connection *amqp.Connection
	mutex      sync.RWMutex
	Logger     Logger

	reconnectInterval time.Duration
	done              chan struct{}
	closeOnce         sync.Once
}

// NewConnectionManager подключается сразу; ошибка первого подключения возвращается вызывающему
func NewConnectionManager(cfg Config, logger Logger) (*ConnectionManager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = NewNoopLogger()
	}

	m := &ConnectionManager{
		url:               cfg.URL,
		Logger:            logger,
		reconnectInterval: DefaultReconnectInterval,
		done:              make(chan struct{}),
	}

	if _, err := m.getConnection(); err != nil {
		logger.Error(err, "Initial connection failed")
		return nil, fmt.Errorf("initial connection failed: %w", err)
	}
	go m.handleReconnect()

	return m, nil
}

// getConnection возвращает живое соединение или устанавливает новое
func (m *ConnectionManager) getConnection() (*amqp.Connection, error) {
	m.mutex.RLock()
	if m.connection != nil && !m.connection.IsClosed() {
		conn := m.connection
		m.mutex.RUnlock()
		return conn, nil
	}
	m.mutex.RUnlock()

	m.mutex.Lock()
	defer m.mutex.Unlock()

	// другой поток мог уже переподключиться
	if m.connection != nil && !m.connection.IsClosed() {
		return m.connection, nil
	}

	m.Logger.Debug("ConnectionManager: Connecting...")
	conn, err := amqp.Dial(m.url)
	if err != nil {
		return nil, fmt.Errorf("ConnectionManager: failed to dial RabbitMQ: %w", err)
	}
	m.connection = conn
	m.Logger.Debug("ConnectionManager: Connected successfully")
	return m.connection, nil
}

// GetChannel открывает новый канал на общем соединении
func (m *ConnectionManager) GetChannel() (*amqp.Connection, *amqp.Channel, error) {
	conn, err := m.getConnection()
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return conn, nil, fmt.Errorf("ConnectionManager: failed to open a channel: %w", err)
	}
	return conn, ch, nil
}

func (m *ConnectionManager) handleReconnect() {
	ticker := time.NewTicker(m.reconnectInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
		}

		m.mutex.RLock()
		healthy := m.connection == nil || !m.connection.IsClosed()
		m.mutex.RUnlock()
		if healthy {
			continue
		}

		m.Logger.Warn("ConnectionManager: Detected closed connection, reconnecting")
		if _, err := m.getConnection(); err != nil {
			m.Logger.Error(err, "ConnectionManager: Reconnect failed")
		}
	}
}

// Close останавливает переподключение и закрывает соединение
func (m *ConnectionManager) Close() error {
	m.closeOnce.Do(func() { close(m.done) })

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.connection == nil || m.connection.IsClosed() {
		m.Logger.Debug("ConnectionManager: Connection was already closed or not established")
		return nil
	}

	m.Logger.Debug("ConnectionManager: Closing the connection...")
	if err := m.connection.Close(); err != nil {
		m.Logger.Error(err, "ConnectionManager: Failed to close connection properly")
		return err
	}
	m.Logger.Debug("ConnectionManager: Connection closed")
	return nil
}
