package bot

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in   string
		want Command
		ok   bool
	}{
		{"/task Fix bug", Command{Name: "task", Args: "Fix bug"}, true},
		{"/Task@JiraBot  Fix bug ", Command{Name: "task", Args: "Fix bug"}, true},
		{"/task\nline one\nline two", Command{Name: "task", Args: "line one\nline two"}, true},
		{"/help", Command{Name: "help"}, true},
		{"hello /task", Command{}, false},
		{"/", Command{}, false},
		{"/@bot", Command{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseCommand(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestUser_DisplayName(t *testing.T) {
	assert.Equal(t, "alice", User{Username: "alice", FirstName: "Alice"}.DisplayName())
	assert.Equal(t, "Alice", User{FirstName: "Alice"}.DisplayName())
}

func TestConvertMessage(t *testing.T) {
	m := &tgbotapi.Message{
		MessageID: 7,
		From:      &tgbotapi.User{ID: 11, UserName: "bob", FirstName: "Bob"},
		Chat:      &tgbotapi.Chat{ID: -100},
		Caption:   "/task Broken layout",
		Photo: []tgbotapi.PhotoSize{
			{FileID: "small", FileUniqueID: "s"},
			{FileID: "large", FileUniqueID: "l"},
		},
		ReplyToMessage: &tgbotapi.Message{
			MessageID: 6,
			Text:      "see attached",
			Document:  &tgbotapi.Document{FileID: "doc", FileName: "log.txt"},
		},
	}

	got := convertMessage(m)
	assert.Equal(t, 7, got.ID)
	assert.Equal(t, int64(-100), got.ChatID)
	assert.Equal(t, User{ID: 11, Username: "bob", FirstName: "Bob"}, got.From)
	assert.Equal(t, "/task Broken layout", got.Text)
	assert.Equal(t, &File{ID: "large", Name: "photo_l.jpg"}, got.File)
	require.NotNil(t, got.ReplyTo)
	assert.Equal(t, "see attached", got.ReplyTo.Text)
	assert.Equal(t, &File{ID: "doc", Name: "log.txt"}, got.ReplyTo.File)
}
