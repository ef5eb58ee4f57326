package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/supportdesk/helpdesk-service/internal/config"
)

const sendTimeout = 5 * time.Second

// Telegram posts notifications to a chat through the Bot API. Sends are
// best-effort: every failure is logged and swallowed so the triggering
// operation never blocks or fails on notification trouble.
type Telegram struct {
	token  string
	chatID string
	client *http.Client
	logger *zap.Logger
}

// NewTelegram builds the notifier. An empty bot token disables it.
func NewTelegram(cfg config.TelegramConfig, logger *zap.Logger) *Telegram {
	return &Telegram{
		token:  cfg.BotToken,
		chatID: cfg.ChatID,
		client: &http.Client{Timeout: sendTimeout},
		logger: logger,
	}
}

// Enabled reports whether a bot token is configured.
func (t *Telegram) Enabled() bool {
	return strings.TrimSpace(t.token) != ""
}

// Send delivers one HTML-formatted message. Errors are logged, never returned.
func (t *Telegram) Send(ctx context.Context, text string) {
	if !t.Enabled() {
		return
	}

	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.token)
	form := url.Values{
		"chat_id":                  {t.chatID},
		"text":                     {text},
		"parse_mode":               {"HTML"},
		"disable_web_page_preview": {"true"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		t.logger.Warn("telegram request build failed", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Warn("telegram send failed", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		t.logger.Warn("telegram send rejected", zap.Int("status", resp.StatusCode))
	}
}
