package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Представления клиента
const (
	UIWeb      = "web"
	UITerminal = "terminal"
)

type PropertyAPIConfig struct {
	URL     string
	Timeout time.Duration
}

type WebConfig struct {
	Port               string
	CORSAllowedOrigins []string
}

// RabbitMQConfig - публикация событий об изменениях; пустой URL отключает ее
type RabbitMQConfig struct {
	URL      string
	Exchange string
}

func (c RabbitMQConfig) Enabled() bool {
	return c.URL != ""
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName      string
	UI           string
	MessageTTL   time.Duration
	PropertyAPI  PropertyAPIConfig
	Web          WebConfig
	RabbitMQ     RabbitMQConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// LoadConfig загружает конфигурацию из .env (если он есть) и переменных окружения
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath...)
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: Could not load .env file (path: %v): %v. Using environment only.\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "property-client")

	cfg.UI = strings.ToLower(getEnvAsString("CLIENT_UI", UIWeb))
	if cfg.UI != UIWeb && cfg.UI != UITerminal {
		return nil, fmt.Errorf("CLIENT_UI must be %q or %q, got %q", UIWeb, UITerminal, cfg.UI)
	}

	cfg.MessageTTL = getEnvAsDuration("MESSAGE_TTL", 4*time.Second)

	cfg.PropertyAPI.URL = getEnvAsString("PROPERTY_API_URL", "http://localhost:8080/api/properties")
	if cfg.PropertyAPI.URL == "" {
		return nil, fmt.Errorf("PROPERTY_API_URL must not be empty")
	}
	cfg.PropertyAPI.Timeout = getEnvAsDuration("PROPERTY_API_TIMEOUT", 10*time.Second)

	cfg.Web.Port = getEnvAsString("PORT", "3000")
	cfg.Web.CORSAllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"})

	cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
	cfg.RabbitMQ.Exchange = getEnvAsString("RABBITMQ_EXCHANGE", "property_events")

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt читает переменную как int; некорректное значение логируется и заменяется значением по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	val, err := time.ParseDuration(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Environment variable %s (value: %s) is not a positive duration. Using default value: %s\n", key, valStr, defaultValue)
		return defaultValue
	}
	return val
}

// getEnvAsList читает список через запятую, пустые элементы отбрасываются
func getEnvAsList(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(valStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
