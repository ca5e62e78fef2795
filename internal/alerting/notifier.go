package alerting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Notification carries the context of one price alert.
type Notification struct {
	ASIN          string
	Title         string
	Bucket        time.Time
	CurrentPrice  decimal.Decimal
	PreviousPrice *decimal.Decimal
	ChangePct     *decimal.Decimal
	PriceFloor    decimal.Decimal
	Direction     string
	SourceSlot    string
}

// Notifier delivers price alerts.
type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
}

// TelegramNotifier pushes messages through the Telegram Bot API.
type TelegramNotifier struct {
	botToken string
	chatID   string
	baseURL  string
	client   *http.Client
	logger   zerolog.Logger
}

// NewTelegramNotifier constructs a Telegram notifier.
func NewTelegramNotifier(botToken, chatID, baseURL string, timeout time.Duration, logger zerolog.Logger) *TelegramNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if baseURL == "" {
		baseURL = "https://api.telegram.org"
	}

	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: timeout},
		logger:   logger.With().Str("component", "alert_telegram").Logger(),
	}
}

// Notify posts the rendered message via the sendMessage API.
func (n *TelegramNotifier) Notify(ctx context.Context, note Notification) error {
	payload := map[string]string{
		"chat_id": n.chatID,
		"text":    renderMessage(note),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram responded with status %d", resp.StatusCode)
	}

	var result struct {
		OK bool `json:"ok"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err == nil {
		if !result.OK {
			return fmt.Errorf("telegram returned ok=false")
		}
	}

	n.logger.Info().Str("asin", note.ASIN).
		Str("direction", note.Direction).
		Msg("alert delivered (telegram)")
	return nil
}

func renderMessage(note Notification) string {
	builder := strings.Builder{}
	builder.WriteString("[Price Alert]\n")
	builder.WriteString(fmt.Sprintf("ASIN: %s\n", note.ASIN))
	if note.Title != "" {
		builder.WriteString(fmt.Sprintf("Title: %s\n", note.Title))
	}
	builder.WriteString(fmt.Sprintf("Checked: %s UTC\n", note.Bucket.UTC().Format(time.RFC3339)))
	builder.WriteString(fmt.Sprintf("Current price: %s (%s)\n", note.CurrentPrice.StringFixed(2), note.SourceSlot))
	if note.PreviousPrice != nil {
		builder.WriteString(fmt.Sprintf("Previous price: %s\n", note.PreviousPrice.StringFixed(2)))
	}
	if note.ChangePct != nil {
		builder.WriteString(fmt.Sprintf("Change: %s%%\n", note.ChangePct.StringFixed(2)))
	}
	if !note.PriceFloor.IsZero() {
		builder.WriteString(fmt.Sprintf("Floor: %s\n", note.PriceFloor.StringFixed(2)))
	}
	builder.WriteString(fmt.Sprintf("Direction: %s\n", note.Direction))
	return builder.String()
}

var _ Notifier = (*TelegramNotifier)(nil)
