package notifier

import (
	"SalesBoard-Backend/internal/config"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// GroupMeNotifier постит сообщения от имени бота через bot-post API.
type GroupMeNotifier struct {
	botID      string
	apiURL     string
	log        *zap.Logger
	httpClient *http.Client
}

// botPostRequest — тело запроса bot-post API.
type botPostRequest struct {
	BotID string `json:"bot_id"`
	Text  string `json:"text"`
}

// New creates a new GroupMe notifier.
func New(cfg *config.Bot, log *zap.Logger) *GroupMeNotifier {
	return &GroupMeNotifier{
		botID:      cfg.BotID,
		apiURL:     cfg.APIURL,
		log:        log,
		httpClient: &http.Client{Timeout: cfg.SendTimeout},
	}
}

// Send отправляет текст в канал. Возвращает ошибку при сетевом сбое или
// не-2xx ответе; вызывающая сторона решает, фатальна ли она (нет).
func (n *GroupMeNotifier) Send(ctx context.Context, text string) error {
	body, err := json.Marshal(botPostRequest{
		BotID: n.botID,
		Text:  text,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal bot post request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create bot post request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post bot message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("bot post API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	n.log.Debug("bot message posted", zap.Int("length", len(text)))
	return nil
}
