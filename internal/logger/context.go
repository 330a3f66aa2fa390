package logger

import "context"

type contextKey string

const fieldsKey contextKey = "log_fields"

// Fields are attached to every record logged with a context carrying them.
type Fields struct {
	ChatID   int64
	UserID   int64
	Command  string
	IssueKey string
}

// WithFields merges f into the fields of ctx. Zero values keep the
// existing ones.
func WithFields(ctx context.Context, f Fields) context.Context {
	merged := FieldsFrom(ctx)
	if f.ChatID != 0 {
		merged.ChatID = f.ChatID
	}
	if f.UserID != 0 {
		merged.UserID = f.UserID
	}
	if f.Command != "" {
		merged.Command = f.Command
	}
	if f.IssueKey != "" {
		merged.IssueKey = f.IssueKey
	}
	return context.WithValue(ctx, fieldsKey, merged)
}

// FieldsFrom returns the fields of ctx, or zero Fields.
func FieldsFrom(ctx context.Context) Fields {
	if f, ok := ctx.Value(fieldsKey).(Fields); ok {
		return f
	}
	return Fields{}
}
