package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"

	logger_adapter "property-client/internal/adapters/logger"
	"property-client/internal/adapters/metrics"
	"property-client/internal/adapters/property_api_client"
	rabbitmq_adapter "property-client/internal/adapters/rabbitmq"
	"property-client/internal/adapters/terminal"
	"property-client/internal/adapters/web"
	"property-client/internal/configs"
	"property-client/internal/constants"
	"property-client/internal/core/port"
	"property-client/internal/core/usecase"
	fluentlogger "property-client/pkg/fluent_logger"
	"property-client/pkg/rabbitmq/rabbitmq_common"
	"property-client/pkg/rabbitmq/rabbitmq_producer"
)

const shutdownTimeout = 10 * time.Second

// App - собранное приложение: контроллер и одно из представлений
type App struct {
	config *configs.AppConfig
	logger port.LoggerPort

	client    *usecase.PropertyClient
	webServer *web.Server
	runner    *terminal.Runner

	publisher    *rabbitmq_producer.Publisher
	rabbitMgr    *rabbitmq_common.ConnectionManager
	fluentClient *fluent.Fluent
}

// NewApp читает конфигурацию и собирает все компоненты
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	app := &App{config: appConfig}

	// инициализация логеров
	// в терминальном режиме stdout занят интерфейсом, поэтому лог идет в stderr
	var logOutput io.Writer = os.Stdout
	if appConfig.UI == configs.UITerminal {
		logOutput = os.Stderr
	}
	activeLoggers := []port.LoggerPort{
		logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
			Writer:   logOutput,
			Level:    logger_adapter.ParseLevel(appConfig.StdoutLogger.Level),
			UseColor: true,
		}),
	}

	if appConfig.FluentBit.Enabled {
		app.fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}
		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(app.fluentClient, logger_adapter.ParseLevel(appConfig.FluentBit.Level))
		if err != nil {
			app.fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiLoggerAdapter(activeLoggers...)
	if err != nil {
		app.closeResources()
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}
	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName, "ui": appConfig.UI})
	app.logger = baseLogger.WithFields(port.Fields{"component": "app"})
	app.logger.Debug("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	collector := metrics.NewCollector(constants.MetricsNamespace)

	// исходящие адаптеры
	api := property_api_client.NewClient(appConfig.PropertyAPI.URL, appConfig.PropertyAPI.Timeout, collector)
	app.logger.Debug("Property API client initialized", port.Fields{"base_url": appConfig.PropertyAPI.URL})

	var events port.PropertyEventsPort
	if appConfig.RabbitMQ.Enabled() {
		publisher, err := app.initEventsPublisher(baseLogger)
		if err != nil {
			// события - дополнение, без брокера клиент работает
			app.logger.Warn("Property events disabled: RabbitMQ unavailable", port.Fields{"error": err.Error()})
		} else {
			events = publisher
		}
	}

	// контроллер и представление
	switch appConfig.UI {
	case configs.UITerminal:
		driver := terminal.NewSurveyDriver(os.Stdout)
		view := terminal.NewView(os.Stdout, driver)
		app.client = usecase.NewPropertyClient(api, view, view, events, appConfig.MessageTTL)
		app.runner = terminal.NewRunner(app.client, view, driver, baseLogger.WithFields(port.Fields{"component": "terminal"}), collector)
	default:
		view := web.NewWebView()
		app.client = usecase.NewPropertyClient(api, view, view, events, appConfig.MessageTTL)
		handlers, err := web.NewPropertyHandlers(app.client, view, collector, appConfig.MessageTTL)
		if err != nil {
			app.closeResources()
			return nil, err
		}
		router := web.NewRouter(handlers, baseLogger, collector, appConfig.Web.CORSAllowedOrigins)
		app.webServer = web.NewServer(appConfig.Web.Port, router, baseLogger.WithFields(port.Fields{"component": "web"}))
	}
	app.logger.Debug("Controller initialized", port.Fields{"message_ttl": appConfig.MessageTTL.String()})

	return app, nil
}

func (a *App) initEventsPublisher(baseLogger port.LoggerPort) (*rabbitmq_adapter.PropertyEventsPublisher, error) {
	bridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq"}))

	manager, err := rabbitmq_common.NewConnectionManager(rabbitmq_common.Config{URL: a.config.RabbitMQ.URL}, bridge)
	if err != nil {
		return nil, err
	}

	publisher, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		Config:                   rabbitmq_common.Config{URL: a.config.RabbitMQ.URL},
		ExchangeName:             a.config.RabbitMQ.Exchange,
		ExchangeType:             constants.PropertyEventsExchangeType,
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   bridge,
	}, manager)
	if err != nil {
		manager.Close()
		return nil, fmt.Errorf("failed to create rabbitmq publisher: %w", err)
	}

	events, err := rabbitmq_adapter.NewPropertyEventsPublisher(publisher)
	if err != nil {
		publisher.Close()
		manager.Close()
		return nil, err
	}

	a.rabbitMgr = manager
	a.publisher = publisher
	a.logger.Info("Property events publisher initialized", port.Fields{"exchange": a.config.RabbitMQ.Exchange})
	return events, nil
}

// Run запускает выбранное представление и ждет сигнала завершения
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer a.closeResources()

	a.logger.Info("Application is starting...", nil)

	if a.runner != nil {
		err := a.runner.Run(ctx)
		a.logger.Info("Terminal session finished", nil)
		return err
	}
	return a.runWeb(ctx)
}

func (a *App) runWeb(ctx context.Context) error {
	initCtx, cancel := context.WithTimeout(ctx, a.config.PropertyAPI.Timeout)
	if err := a.client.Init(initCtx); err != nil {
		// страница откроется с сообщением об ошибке, загрузку можно повторить
		a.logger.Warn("Initial properties load failed", port.Fields{"error": err.Error()})
	}
	cancel()

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- a.webServer.Start()
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("Shutdown signal received", nil)
	case err := <-serverErrors:
		if err != nil {
			return err
		}
		return nil
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := a.webServer.Stop(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("web server shutdown failed: %w", err)
	}
	a.logger.Info("Web server shut down gracefully", nil)
	return nil
}

// closeResources закрывает все, что было открыто в NewApp; безопасно вызывать несколько раз
func (a *App) closeResources() {
	if a.client != nil {
		a.client.Close()
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error("Error closing rabbitmq publisher", err, nil)
		}
		a.publisher = nil
	}
	if a.rabbitMgr != nil {
		if err := a.rabbitMgr.Close(); err != nil {
			a.logger.Error("Error closing rabbitmq connection", err, nil)
		}
		a.rabbitMgr = nil
	}
	if a.logger != nil {
		a.logger.Info("Application shut down gracefully.", nil)
	}
	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Error closing fluent client: %v\n", err)
		}
		a.fluentClient = nil
	}
}
