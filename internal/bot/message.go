// Package bot implements the chat commands on top of a transport-neutral
// message model.
package bot

import (
	"strings"
)

// User is the sender of a message.
type User struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

// DisplayName returns the username, or the first name when it is unset.
func (u User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return u.FirstName
}

// File references a document or photo attached to a message.
type File struct {
	ID   string
	Name string
}

// Message is one incoming chat message. Text holds the caption for media
// messages.
type Message struct {
	ID      int
	ChatID  int64
	From    User
	Text    string
	File    *File
	ReplyTo *Message
}

// Command is a parsed "/name args" message.
type Command struct {
	Name string
	Args string
}

// ParseCommand splits a command message. A "@botname" suffix on the command
// is dropped and the name is lower-cased. Args keep their line breaks.
func ParseCommand(text string) (Command, bool) {
	text = strings.TrimLeft(text, " \t")
	if !strings.HasPrefix(text, "/") {
		return Command{}, false
	}

	head, rest := text, ""
	if i := strings.IndexAny(text, " \t\n"); i >= 0 {
		head, rest = text[:i], text[i+1:]
	}

	name := strings.TrimPrefix(head, "/")
	if at := strings.IndexByte(name, '@'); at >= 0 {
		name = name[:at]
	}
	if name == "" {
		return Command{}, false
	}
	return Command{Name: strings.ToLower(name), Args: strings.TrimSpace(rest)}, true
}
