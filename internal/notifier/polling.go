package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"time"
)

// CommandHandler resolves a canonical bot command to a reply message.
type CommandHandler func(command string) string

// commandAliases maps the Portuguese shortcuts agents type in chat to the
// canonical slash commands the scheduler understands.
var commandAliases = map[string]string{
	"relatório": "/report",
	"relatorio": "/report",
	"meta":      "/goal",
	"foco":      "/focus",
	"ajuda":     "/help",
}

// canonicalCommand normalizes chat input to a bot command. Plain conversation
// that is neither a slash command nor a known shortcut is not addressed to
// the bot and reports false.
func canonicalCommand(text string) (string, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if cmd, ok := commandAliases[text]; ok {
		return cmd, true
	}
	if strings.HasPrefix(text, "/") {
		// group chats address commands as "/report@SalesRadarBot"
		if i := strings.IndexByte(text, '@'); i > 0 {
			text = text[:i]
		}
		return text, true
	}
	return "", false
}

type chatUpdate struct {
	UpdateID int `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
	} `json:"message"`
}

// StartPolling long-polls the chat for agent commands and feeds canonical
// ones to the handler. Non-command chatter is ignored so the bot stays quiet
// in a shared team chat. Blocks until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	apiURL := fmt.Sprintf("https://api.telegram.org/bot%s/getUpdates", t.BotToken)
	offset := 0

	log.Printf("[INFO] command polling started")
	for {
		select {
		case <-ctx.Done():
			log.Printf("[INFO] command polling stopped")
			return
		default:
		}

		reqURL := fmt.Sprintf("%s?offset=%d&timeout=25", apiURL, offset)
		resp, err := t.Client.Get(reqURL)
		if err != nil {
			log.Printf("[WARN] poll updates: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			log.Printf("[WARN] read updates: %v", err)
			continue
		}

		var result struct {
			OK     bool         `json:"ok"`
			Result []chatUpdate `json:"result"`
		}
		if err := json.Unmarshal(body, &result); err != nil || !result.OK {
			log.Printf("[WARN] decode updates: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}

		for _, update := range result.Result {
			offset = update.UpdateID + 1
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			cmd, ok := canonicalCommand(update.Message.Text)
			if !ok {
				continue
			}
			log.Printf("[INFO] agent command: %s", cmd)
			if reply := handler(cmd); reply != "" {
				if err := t.Send(reply); err != nil {
					log.Printf("[ERROR] send command reply: %v", err)
				}
			}
		}
	}
}
