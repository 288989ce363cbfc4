package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"property-client/internal/adapters/metrics"
	core_ports "property-client/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Server struct {
	httpServer *http.Server
	logger     core_ports.LoggerPort
}

// NewRouter собирает маршруты web-представления
func NewRouter(handlers *PropertyHandlers, baseLogger core_ports.LoggerPort, collector *metrics.Collector, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(MetricsMiddleware(collector))
	r.Use(LoggerMiddleware(baseLogger))
	r.Use(middleware.Recoverer)

	r.Get("/", handlers.HandleIndex)
	r.Get("/healthz", handlers.HandleHealth)
	r.Method(http.MethodGet, "/metrics", collector.Handler())

	r.Post("/properties", handlers.HandleSubmit)
	r.Route("/properties/{id}", func(r chi.Router) {
		r.Post("/edit", handlers.HandleStartEdit)
		r.Get("/delete", handlers.HandleConfirmDelete)
		r.Post("/delete", handlers.HandleDelete)
	})
	r.Post("/form/cancel", handlers.HandleCancelEdit)
	r.Post("/filters", handlers.HandleApplyFilters)
	r.Post("/filters/clear", handlers.HandleClearFilters)
	r.Post("/pages/prev", handlers.HandlePrevPage)
	r.Post("/pages/next", handlers.HandleNextPage)
	r.Post("/refresh", handlers.HandleRefresh)

	r.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "X-Trace-ID"},
			ExposedHeaders: []string{"X-Trace-ID"},
			MaxAge:         300,
		}))
		r.Get("/state", handlers.HandleState)
		r.Options("/state", func(w http.ResponseWriter, r *http.Request) {})
	})

	return r
}

func NewServer(port string, handler http.Handler, baseLogger core_ports.LoggerPort) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger,
	}
}

// Start запускает HTTP-сервер и блокируется до Stop
func (s *Server) Start() error {
	s.logger.Info("Starting web view server", core_ports.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping web view server...", nil)
	return s.httpServer.Shutdown(ctx)
}
