package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxMessageLen is Telegram's hard cap per sendMessage call. A funnel report
// for a template with many stages can run past it and would be rejected by
// the API, so outgoing text is cut to fit first.
const maxMessageLen = 4096

const defaultRetries = 3

// TelegramNotifier delivers performance reports, focus digests, and goal
// summaries to the agent's chat. All messages are HTML-formatted by the
// formatters in this package.
type TelegramNotifier struct {
	BotToken string
	ChatID   string
	Retries  int
	Client   *http.Client
}

// NewTelegramNotifier creates a notifier with optional proxy support.
// retries bounds delivery attempts per report; values <= 0 use the default.
func NewTelegramNotifier(botToken, chatID, proxyURL string, retries int) *TelegramNotifier {
	if retries <= 0 {
		retries = defaultRetries
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &TelegramNotifier{
		BotToken: botToken,
		ChatID:   chatID,
		Retries:  retries,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

// Send delivers one message to the configured chat, cut to Telegram's limit.
func (t *TelegramNotifier) Send(text string) error {
	apiURL := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.BotToken)
	payload := map[string]string{
		"chat_id":    t.ChatID,
		"text":       truncateReport(text),
		"parse_mode": "HTML",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	resp, err := t.Client.Post(apiURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// SendReport delivers a formatted report, retrying with exponential backoff
// up to the configured number of attempts.
func (t *TelegramNotifier) SendReport(ctx context.Context, text string) error {
	var lastErr error
	for i := 0; i <= t.Retries; i++ {
		if err := t.Send(text); err != nil {
			lastErr = err
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Printf("[WARN] report delivery failed (attempt %d/%d): %v, retrying in %v", i+1, t.Retries+1, err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("report not delivered after %d attempts: %w", t.Retries+1, lastErr)
}

// truncateReport keeps a message under the Telegram length cap, cutting at
// the last whole line so a stage row is never split mid-entry.
func truncateReport(text string) string {
	if len(text) <= maxMessageLen {
		return text
	}
	const marker = "\n…"
	cut := text[:maxMessageLen-len(marker)]
	if i := strings.LastIndexByte(cut, '\n'); i > 0 {
		cut = cut[:i]
	}
	return cut + marker
}
