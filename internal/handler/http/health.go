package http

import (
	"SalesBoard-Backend/internal/repository"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HealthHandler обработчик health checks
type HealthHandler struct {
	storage repository.Storage
	log     *zap.Logger
}

// NewHealthHandler создает новый health handler
func NewHealthHandler(storage repository.Storage, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		storage: storage,
		log:     log,
	}
}

// HealthResponse структура ответа health check
type HealthResponse struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	StorageStatus string    `json:"storage_status"`
	Uptime        string    `json:"uptime,omitempty"`
}

var startTime = time.Now()

// Health основной health check endpoint
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Пробный запрос к хранилищу: любая ошибка кроме "не найдено"
	// означает проблемы с базой.
	storageStatus := "healthy"
	_, err := h.storage.GetStats(ctx, "health-check-non-existent")
	if err != nil && !errors.Is(err, repository.ErrRecordNotFound) {
		storageStatus = "unhealthy"
		h.log.Error("storage health check failed", zap.Error(err))
	}

	status := "healthy"
	statusCode := http.StatusOK
	if storageStatus == "unhealthy" {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:        status,
		Timestamp:     time.Now(),
		StorageStatus: storageStatus,
		Uptime:        time.Since(startTime).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error("failed to encode health response", zap.Error(err))
	}
}

// Ready readiness check endpoint
func (h *HealthHandler) Ready(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ready"}); err != nil {
		h.log.Error("failed to encode ready response", zap.Error(err))
	}
}
