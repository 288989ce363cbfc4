package fluentlogger

import (
	"errors"
	"fmt"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

const defaultTimeout = 3 * time.Second

// Config - параметры подключения к Fluent Bit
type Config struct {
	Host      string
	Port      int
	TagPrefix string // префикс тегов всех записей приложения
	Timeout   time.Duration
}

func (c Config) validate() error {
	if c.TagPrefix == "" {
		return errors.New("fluent tag prefix is required")
	}
	if c.Host == "" {
		return errors.New("fluent host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid fluent port %d", c.Port)
	}
	return nil
}

// NewClient создает асинхронный клиент Fluent Bit.
// Соединение устанавливается при первой отправке, поэтому недоступный
// Fluent Bit не мешает запуску; записи копятся в буфере клиента.
func NewClient(cfg Config) (*fluent.Fluent, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client, err := fluent.New(fluent.Config{
		FluentHost:   cfg.Host,
		FluentPort:   cfg.Port,
		TagPrefix:    cfg.TagPrefix,
		Timeout:      timeout,
		WriteTimeout: timeout,
		Async:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fluent client: %w", err)
	}
	return client, nil
}
