package bot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	gosync "sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// maxDownloadSize bounds attachment downloads (Telegram's own bot limit).
const maxDownloadSize = 20 << 20

// Telegram is the long-polling Telegram transport.
type Telegram struct {
	api         *tgbotapi.BotAPI
	pollTimeout int
	httpClient  *http.Client
}

var _ Sender = (*Telegram)(nil)

// NewTelegram authenticates with token and returns the transport.
func NewTelegram(token string, pollTimeoutSec int) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connecting to telegram: %w", err)
	}
	if pollTimeoutSec <= 0 {
		pollTimeoutSec = 60
	}
	slog.Info("telegram bot authorized", "username", api.Self.UserName)
	return &Telegram{
		api:         api,
		pollTimeout: pollTimeoutSec,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// Reply sends text to the chat of to, as a reply to it.
func (t *Telegram) Reply(_ context.Context, to *Message, text string) error {
	m := tgbotapi.NewMessage(to.ChatID, text)
	m.ReplyToMessageID = to.ID
	if _, err := t.api.Send(m); err != nil {
		return fmt.Errorf("sending message: %w", err)
	}
	return nil
}

// Download fetches the content of f.
func (t *Telegram) Download(ctx context.Context, f File) ([]byte, error) {
	url, err := t.api.GetFileDirectURL(f.ID)
	if err != nil {
		return nil, fmt.Errorf("resolving file %s: %w", f.Name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", f.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading %s: unexpected status %d", f.Name, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Name, err)
	}
	return data, nil
}

// Run receives updates until ctx is cancelled and hands every message to
// h. Each message is handled on its own goroutine; Run waits for them
// before returning.
func (t *Telegram) Run(ctx context.Context, h *Handler) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = t.pollTimeout
	updates := t.api.GetUpdatesChan(u)

	var wg gosync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			t.api.StopReceivingUpdates()
			return nil
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			if upd.Message == nil {
				continue
			}
			msg := convertMessage(upd.Message)
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := h.Handle(ctx, msg); err != nil {
					slog.ErrorContext(ctx, "handling message failed", "chat_id", msg.ChatID, "error", err)
				}
			}()
		}
	}
}

// convertMessage maps a Telegram message onto Message. Captions count as
// text; the largest photo size is used.
func convertMessage(m *tgbotapi.Message) *Message {
	out := &Message{ID: m.MessageID, Text: m.Text}
	if m.Chat != nil {
		out.ChatID = m.Chat.ID
	}
	if m.From != nil {
		out.From = User{
			ID:        m.From.ID,
			Username:  m.From.UserName,
			FirstName: m.From.FirstName,
			LastName:  m.From.LastName,
		}
	}
	if out.Text == "" {
		out.Text = m.Caption
	}

	switch {
	case m.Document != nil:
		name := m.Document.FileName
		if name == "" {
			name = m.Document.FileUniqueID
		}
		out.File = &File{ID: m.Document.FileID, Name: name}
	case len(m.Photo) > 0:
		p := m.Photo[len(m.Photo)-1]
		out.File = &File{ID: p.FileID, Name: "photo_" + p.FileUniqueID + ".jpg"}
	}

	if m.ReplyToMessage != nil {
		out.ReplyTo = convertMessage(m.ReplyToMessage)
	}
	return out
}
