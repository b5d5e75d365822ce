package http

import (
	"SalesBoard-Backend/internal/repository"
	"SalesBoard-Backend/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// Server HTTP сервер с обработчиками
type Server struct {
	webhookHandler *WebhookHandler
	healthHandler  *HealthHandler
	log            *zap.Logger
}

// NewServer создает новый HTTP сервер
func NewServer(storage repository.Storage, interpreter *service.Interpreter, log *zap.Logger) *Server {
	return &Server{
		webhookHandler: NewWebhookHandler(interpreter, log),
		healthHandler:  NewHealthHandler(storage, log),
		log:            log,
	}
}

// SetupRoutes настраивает маршруты
func (s *Server) SetupRoutes() http.Handler {
	mux := http.NewServeMux()

	// Health checks
	mux.HandleFunc("/health", s.healthHandler.Health)
	mux.HandleFunc("/ready", s.healthHandler.Ready)

	// Чат шлет callback на корневой путь
	mux.HandleFunc("/", s.webhookHandler.Handle)

	return mux
}
