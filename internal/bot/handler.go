package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nhle/taskbot/internal/crossref"
	"github.com/nhle/taskbot/internal/logger"
	"github.com/nhle/taskbot/internal/model"
	"github.com/nhle/taskbot/internal/params"
	"github.com/nhle/taskbot/internal/store"
	"github.com/nhle/taskbot/internal/task"
)

// Sender delivers replies and fetches attached files.
type Sender interface {
	Reply(ctx context.Context, to *Message, text string) error
	Download(ctx context.Context, f File) ([]byte, error)
}

// TaskParser turns /task arguments into a request or a diagnostic.
type TaskParser interface {
	Parse(ctx context.Context, text string) params.Result
}

// TaskSubmitter creates the issue for a parsed request.
type TaskSubmitter interface {
	Submit(ctx context.Context, req *model.TaskRequest, attachments []model.Attachment) (*task.Submission, error)
}

// Commenter adds comments to existing issues.
type Commenter interface {
	AddComment(ctx context.Context, key, body string) error
	IssueURL(key string) string
}

// Deps are the collaborators of a Handler.
type Deps struct {
	Sender    Sender
	Parser    TaskParser
	Submitter TaskSubmitter
	Commenter Commenter
	Links     store.LinkStore
	Access    *Access
}

// Handler dispatches chat commands.
type Handler struct {
	Deps
	projectKey string
}

// NewHandler creates a Handler. projectKey qualifies bare issue numbers.
func NewHandler(deps Deps, projectKey string) *Handler {
	if deps.Access == nil {
		deps.Access = NewAccess(nil)
	}
	return &Handler{Deps: deps, projectKey: strings.ToUpper(projectKey)}
}

// Handle processes one message. Messages that are not commands, and
// unknown commands, are ignored. The returned error is a delivery failure;
// every other failure is reported to the chat.
func (h *Handler) Handle(ctx context.Context, msg *Message) error {
	cmd, ok := ParseCommand(msg.Text)
	if !ok {
		return nil
	}
	ctx = logger.WithFields(ctx, logger.Fields{ChatID: msg.ChatID, UserID: msg.From.ID, Command: cmd.Name})

	switch cmd.Name {
	case "start":
		return h.reply(ctx, msg, startText)
	case "help":
		return h.reply(ctx, msg, helpText)
	case "userinfo":
		return h.userInfo(ctx, msg)
	case "task":
		return h.restricted(ctx, msg, "create Jira tasks", func() error { return h.createTask(ctx, msg, cmd.Args) })
	case "comment":
		return h.restricted(ctx, msg, "comment on Jira tasks", func() error { return h.comment(ctx, msg, cmd.Args) })
	case "link":
		return h.restricted(ctx, msg, "manage links", func() error { return h.link(ctx, msg, cmd.Args) })
	case "unlink":
		return h.restricted(ctx, msg, "manage links", func() error { return h.unlink(ctx, msg, cmd.Args) })
	case "links":
		return h.listLinks(ctx, msg, cmd.Args)
	case "admin":
		return h.restricted(ctx, msg, "", func() error { return h.admin(ctx, msg) })
	default:
		slog.DebugContext(ctx, "ignoring unknown command")
		return nil
	}
}

func (h *Handler) reply(ctx context.Context, msg *Message, text string) error {
	if err := h.Sender.Reply(ctx, msg, text); err != nil {
		slog.ErrorContext(ctx, "sending reply failed", "error", err)
		return fmt.Errorf("replying to message %d: %w", msg.ID, err)
	}
	return nil
}

func (h *Handler) restricted(ctx context.Context, msg *Message, action string, fn func() error) error {
	if h.Access.Allowed(msg.From) {
		return fn()
	}
	slog.WarnContext(ctx, "unauthorized access attempt", "username", msg.From.Username)
	if action == "" {
		return h.reply(ctx, msg, "❌ Access denied.")
	}
	return h.reply(ctx, msg, fmt.Sprintf(
		"❌ Access denied. You are not authorized to %s.\nContact administrator to get access.", action))
}

func (h *Handler) createTask(ctx context.Context, msg *Message, args string) error {
	if args == "" {
		return h.reply(ctx, msg, taskUsageText)
	}

	res := h.Parser.Parse(ctx, args)
	if res.ShouldStop() {
		return h.reply(ctx, msg, res.Diagnostic)
	}
	req := res.Request

	quoted := ""
	if msg.ReplyTo != nil {
		quoted = msg.ReplyTo.Text
	}
	task.Describe(req, msg.From.DisplayName(), quoted)

	kind := strings.ToLower(req.IssueType)
	if err := h.reply(ctx, msg, fmt.Sprintf("Creating Jira %s...", kind)); err != nil {
		return err
	}

	sub, err := h.Submitter.Submit(ctx, req, h.attachments(ctx, msg))
	if err != nil {
		slog.ErrorContext(ctx, "task creation failed", "error", err)
		return h.reply(ctx, msg, fmt.Sprintf(
			"❌ Failed to create Jira %s. Please check the bot configuration and try again.", kind))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ Jira %s created successfully!\n\n📋 Task Key: %s\n🔗 URL: %s", kind, sub.Key, sub.URL)
	for _, w := range sub.Warnings {
		b.WriteString("\n" + w)
	}
	return h.reply(ctx, msg, b.String())
}

// attachments downloads the files of msg and of the message it replies to.
// Download failures are logged and skipped.
func (h *Handler) attachments(ctx context.Context, msg *Message) []model.Attachment {
	var files []File
	if msg.File != nil {
		files = append(files, *msg.File)
	}
	if msg.ReplyTo != nil && msg.ReplyTo.File != nil {
		files = append(files, *msg.ReplyTo.File)
	}

	var out []model.Attachment
	for _, f := range files {
		data, err := h.Sender.Download(ctx, f)
		if err != nil {
			slog.WarnContext(ctx, "downloading attachment failed", "file", f.Name, "error", err)
			continue
		}
		out = append(out, model.Attachment{Filename: f.Name, Data: data})
	}
	return out
}

func (h *Handler) comment(ctx context.Context, msg *Message, args string) error {
	ref, body, _ := strings.Cut(args, " ")
	body = strings.TrimSpace(body)
	key, ok := crossref.IssueKey(ref, h.projectKey)
	if !ok || body == "" {
		return h.reply(ctx, msg, "❌ Usage: /comment <ISSUE-KEY> <text>")
	}

	if err := h.Commenter.AddComment(ctx, key, body); err != nil {
		slog.ErrorContext(ctx, "adding comment failed", "issue_key", key, "error", err)
		return h.reply(ctx, msg, fmt.Sprintf("❌ Failed to add a comment to %s.", key))
	}
	return h.reply(ctx, msg, fmt.Sprintf("💬 Comment added to %s\n🔗 %s", key, h.Commenter.IssueURL(key)))
}

// linkArgs parses "<message_ref> <issue>".
func (h *Handler) linkArgs(args string) (string, string, bool) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return "", "", false
	}
	key, ok := crossref.IssueKey(fields[1], h.projectKey)
	return fields[0], key, ok
}

func (h *Handler) link(ctx context.Context, msg *Message, args string) error {
	ref, key, ok := h.linkArgs(args)
	if !ok {
		return h.reply(ctx, msg, "❌ Usage: /link <message_ref> <ISSUE-KEY>")
	}

	_, err := h.Links.InsertLink(ctx, ref, key)
	switch {
	case err == nil:
		return h.reply(ctx, msg, fmt.Sprintf("🔗 Linked %s to %s", ref, key))
	case errors.Is(err, store.ErrDuplicateLink):
		return h.reply(ctx, msg, fmt.Sprintf("ℹ️ %s is already linked to %s", ref, key))
	case errors.Is(err, store.ErrInvalidMessageRef):
		return h.reply(ctx, msg, "❌ The message reference must be a UUID.")
	default:
		slog.ErrorContext(ctx, "storing link failed", "error", err)
		return h.reply(ctx, msg, "❌ Failed to store the link. Please try again later.")
	}
}

func (h *Handler) unlink(ctx context.Context, msg *Message, args string) error {
	ref, key, ok := h.linkArgs(args)
	if !ok {
		return h.reply(ctx, msg, "❌ Usage: /unlink <message_ref> <ISSUE-KEY>")
	}

	err := h.Links.DeleteLink(ctx, ref, key)
	switch {
	case err == nil:
		return h.reply(ctx, msg, fmt.Sprintf("✂️ Unlinked %s from %s", ref, key))
	case errors.Is(err, store.ErrLinkNotFound):
		return h.reply(ctx, msg, fmt.Sprintf("ℹ️ %s is not linked to %s", ref, key))
	case errors.Is(err, store.ErrInvalidMessageRef):
		return h.reply(ctx, msg, "❌ The message reference must be a UUID.")
	default:
		slog.ErrorContext(ctx, "deleting link failed", "error", err)
		return h.reply(ctx, msg, "❌ Failed to delete the link. Please try again later.")
	}
}

func (h *Handler) listLinks(ctx context.Context, msg *Message, args string) error {
	ref := strings.TrimSpace(args)
	if ref == "" {
		return h.reply(ctx, msg, "❌ Usage: /links <message_ref>")
	}

	keys, err := h.Links.KeysByMessageRef(ctx, ref)
	if errors.Is(err, store.ErrInvalidMessageRef) {
		return h.reply(ctx, msg, "❌ The message reference must be a UUID.")
	}
	if err != nil {
		slog.ErrorContext(ctx, "listing links failed", "error", err)
		return h.reply(ctx, msg, "❌ Failed to read links. Please try again later.")
	}
	if len(keys) == 0 {
		return h.reply(ctx, msg, fmt.Sprintf("ℹ️ No Jira issues linked to %s", ref))
	}

	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = fmt.Sprintf("• %s %s", k, h.Commenter.IssueURL(k))
	}
	return h.reply(ctx, msg, fmt.Sprintf("🔗 Linked issues:\n%s", strings.Join(lines, "\n")))
}

func (h *Handler) userInfo(ctx context.Context, msg *Message) error {
	u := msg.From
	username := u.Username
	if username == "" {
		username = "Not set"
	}
	access := "Not authorized"
	if h.Access.Allowed(u) {
		access = "Authorized"
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)

	return h.reply(ctx, msg, fmt.Sprintf(
		"👤 User Information:\n\n🆔 User ID: %d\n👤 Username: @%s\n📛 Name: %s\n✅ Access: %s",
		u.ID, username, name, access))
}

func (h *Handler) admin(ctx context.Context, msg *Message) error {
	entries := h.Access.Entries()
	display := "No restrictions (all users allowed)"
	if len(entries) > 0 {
		display = strings.Join(entries, ", ")
	}
	return h.reply(ctx, msg, fmt.Sprintf(
		"🔧 Admin Information:\n\n👥 Allowed Users: %s\n📊 Total Allowed: %d", display, len(entries)))
}
