package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const telegramAPI = "https://api.telegram.org"

// maxMessageLen is Telegram's limit on a single message's text.
const maxMessageLen = 4096

// TelegramNotifier sends messages via the Telegram Bot API.
type TelegramNotifier struct {
	BotToken string
	ChatID   string
	APIBase  string
	Client   *http.Client
	Logger   *zap.Logger
}

// NewTelegramNotifier creates a notifier with optional proxy support.
func NewTelegramNotifier(botToken, chatID, proxyURL string, logger *zap.Logger) *TelegramNotifier {
	if logger == nil {
		logger = zap.NewNop()
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
		APIBase:  telegramAPI,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		Logger: logger,
	}
}

func (t *TelegramNotifier) method(name string) string {
	return fmt.Sprintf("%s/bot%s/%s", t.APIBase, t.BotToken, name)
}

// Send sends an HTML message to the configured chat. Text over Telegram's
// length limit is split on line boundaries.
func (t *TelegramNotifier) Send(ctx context.Context, text string) error {
	for _, part := range splitMessage(text, maxMessageLen) {
		if err := t.sendOne(ctx, part); err != nil {
			return err
		}
	}
	return nil
}

func (t *TelegramNotifier) sendOne(ctx context.Context, text string) error {
	payload := map[string]any{
		"chat_id":                  t.ChatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.method("sendMessage"), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
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

// SendWithRetry sends a message with exponential backoff retry. Each part
// of a split message is retried on its own, so parts already delivered are
// not sent twice.
func (t *TelegramNotifier) SendWithRetry(ctx context.Context, text string, maxRetries int) error {
	parts := splitMessage(text, maxMessageLen)
	for n, part := range parts {
		if err := t.sendPartWithRetry(ctx, part, maxRetries); err != nil {
			return fmt.Errorf("part %d/%d: %w", n+1, len(parts), err)
		}
	}
	return nil
}

func (t *TelegramNotifier) sendPartWithRetry(ctx context.Context, part string, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		err := t.sendOne(ctx, part)
		if err == nil {
			return nil
		}
		lastErr = err
		if i == maxRetries {
			break
		}
		backoff := retryBase << uint(i)
		t.Logger.Warn("telegram send failed",
			zap.Int("attempt", i+1),
			zap.Int("attempts", maxRetries+1),
			zap.Duration("backoff", backoff),
			zap.Error(err))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}

// retryBase is the first backoff delay; tests shorten it.
var retryBase = time.Second

// splitTags are the formatting tags a message part may leave open. A part
// that ends inside one gets the closing tag appended and the next part
// reopens it.
var splitTags = []string{"pre", "code", "b", "i"}

// splitMessage cuts text into chunks of at most limit bytes, preferring
// line breaks. Tags from splitTags stay balanced in every chunk.
func splitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}
	var parts []string
	var open []string
	for text != "" {
		prefix := openingTags(open)
		budget := limit - len(prefix)
		if len(open) > 0 || strings.ContainsRune(text, '<') {
			budget -= closeReserve
		}
		if budget <= 0 {
			budget = limit
		}
		if len(text) <= budget {
			parts = append(parts, prefix+text)
			break
		}
		cut := strings.LastIndexByte(text[:budget], '\n')
		if cut <= 0 {
			cut = budget
			for cut > 0 && !utf8Start(text[cut]) {
				cut--
			}
			if cut == 0 {
				cut = budget
			}
		}
		chunk := text[:cut]
		text = text[cut:]
		if len(text) > 0 && text[0] == '\n' {
			text = text[1:]
		}
		open = trackTags(open, chunk)
		parts = append(parts, prefix+chunk+closingTags(open))
	}
	return parts
}

// closeReserve is the room kept at the end of a chunk for closing every
// tag in splitTags.
var closeReserve = len(closingTags(splitTags))

// trackTags updates the stack of open tags with those opened and closed
// in chunk.
func trackTags(open []string, chunk string) []string {
	open = append([]string(nil), open...)
	for i := 0; i < len(chunk); i++ {
		if chunk[i] != '<' {
			continue
		}
		for _, tag := range splitTags {
			switch {
			case strings.HasPrefix(chunk[i:], "<"+tag+">"):
				open = append(open, tag)
			case strings.HasPrefix(chunk[i:], "</"+tag+">"):
				for j := len(open) - 1; j >= 0; j-- {
					if open[j] == tag {
						open = append(open[:j], open[j+1:]...)
						break
					}
				}
			}
		}
	}
	return open
}

func openingTags(open []string) string {
	var b strings.Builder
	for _, tag := range open {
		b.WriteString("<" + tag + ">")
	}
	return b.String()
}

func closingTags(open []string) string {
	var b strings.Builder
	for i := len(open) - 1; i >= 0; i-- {
		b.WriteString("</" + open[i] + ">")
	}
	return b.String()
}

func utf8Start(b byte) bool { return b&0xC0 != 0x80 }
