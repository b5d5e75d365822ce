package http

import (
	"SalesBoard-Backend/internal/domain"
	"SalesBoard-Backend/internal/service"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// WebhookHandler принимает callback-запросы от чата.
type WebhookHandler struct {
	interpreter *service.Interpreter
	log         *zap.Logger
}

// NewWebhookHandler создает новый webhook handler
func NewWebhookHandler(interpreter *service.Interpreter, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		interpreter: interpreter,
		log:         log,
	}
}

// groupMeCallback — входящий JSON от GroupMe. Нужны только имя
// отправителя, текст и тип отправителя; остальные поля игнорируются.
type groupMeCallback struct {
	Name string `json:"name"`
	// Указатель отличает отсутствующее поле от пустого сообщения.
	Text       *string `json:"text"`
	SenderType string  `json:"sender_type"`
	GroupID    string  `json:"group_id"`
	UserID     string  `json:"user_id"`
}

// Handle handles POST / (the chat callback URL).
//
// Контракт подтверждения: любое разобранное сообщение, включая
// нераспознанные команды, получает 200 "ok". Ошибки пользователя уходят
// ответами в чат, и только отказ хранилища превращается в 5xx.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload groupMeCallback
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.log.Error("invalid webhook payload", zap.Error(err))
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	if payload.Name == "" || payload.Text == nil {
		h.log.Warn("webhook payload without sender name or text")
		http.Error(w, "Missing sender name or text", http.StatusBadRequest)
		return
	}

	// GroupMe присылает в callback и сообщения самого бота — пропускаем
	// их, иначе бот реагировал бы на собственные ответы.
	if payload.SenderType == "bot" {
		h.ack(w)
		return
	}

	h.log.Info("received chat message",
		zap.String("sender", payload.Name),
		zap.String("group_id", payload.GroupID))

	msg := domain.InboundMessage{
		SenderName: payload.Name,
		Text:       *payload.Text,
	}

	if err := h.interpreter.HandleMessage(r.Context(), msg); err != nil {
		h.log.Error("failed to handle message", zap.String("sender", payload.Name), zap.Error(err))
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.ack(w)
}

func (h *WebhookHandler) ack(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		h.log.Error("failed to write acknowledgement", zap.Error(err))
	}
}
