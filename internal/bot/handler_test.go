package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/taskbot/internal/model"
	"github.com/nhle/taskbot/internal/params"
	"github.com/nhle/taskbot/internal/task"
	"github.com/nhle/taskbot/internal/testutil"
)

type fakeSender struct {
	replies []string
	files   map[string][]byte
}

func (f *fakeSender) Reply(_ context.Context, _ *Message, text string) error {
	f.replies = append(f.replies, text)
	return nil
}

func (f *fakeSender) Download(_ context.Context, file File) ([]byte, error) {
	data, ok := f.files[file.ID]
	if !ok {
		return nil, errors.New("no such file")
	}
	return data, nil
}

func (f *fakeSender) last() string {
	if len(f.replies) == 0 {
		return ""
	}
	return f.replies[len(f.replies)-1]
}

type fakeParser struct {
	result params.Result
	inputs []string
}

func (f *fakeParser) Parse(_ context.Context, text string) params.Result {
	f.inputs = append(f.inputs, text)
	return f.result
}

type fakeSubmitter struct {
	err         error
	warnings    []string
	req         *model.TaskRequest
	attachments []model.Attachment
}

func (f *fakeSubmitter) Submit(_ context.Context, req *model.TaskRequest, atts []model.Attachment) (*task.Submission, error) {
	f.req, f.attachments = req, atts
	if f.err != nil {
		return nil, f.err
	}
	return &task.Submission{Key: "AAI-9", URL: "https://jira/browse/AAI-9", Warnings: f.warnings}, nil
}

type fakeCommenter struct {
	comments map[string]string
}

func (f *fakeCommenter) AddComment(_ context.Context, key, body string) error {
	if f.comments == nil {
		f.comments = map[string]string{}
	}
	f.comments[key] = body
	return nil
}

func (f *fakeCommenter) IssueURL(key string) string { return "https://jira/browse/" + key }

type fixture struct {
	h         *Handler
	sender    *fakeSender
	parser    *fakeParser
	submitter *fakeSubmitter
	commenter *fakeCommenter
}

func newFixture(t *testing.T, allowed ...string) *fixture {
	t.Helper()
	f := &fixture{
		sender:    &fakeSender{files: map[string][]byte{}},
		parser:    &fakeParser{},
		submitter: &fakeSubmitter{},
		commenter: &fakeCommenter{},
	}
	f.h = NewHandler(Deps{
		Sender:    f.sender,
		Parser:    f.parser,
		Submitter: f.submitter,
		Commenter: f.commenter,
		Links:     testutil.NewTestStore(t),
		Access:    NewAccess(allowed),
	}, "aai")
	return f
}

func (f *fixture) send(t *testing.T, msg *Message) {
	t.Helper()
	require.NoError(t, f.h.Handle(context.Background(), msg))
}

func textMsg(text string) *Message {
	return &Message{ID: 1, ChatID: 5, From: User{ID: 77, Username: "alice", FirstName: "Alice"}, Text: text}
}

const ref = "3f2b8c1e-6a4d-4c1b-9e7a-1d2c3b4a5f60"

func TestHandle_IgnoresPlainText(t *testing.T) {
	f := newFixture(t)
	f.send(t, textMsg("just chatting"))
	f.send(t, textMsg("/unknown"))
	assert.Empty(t, f.sender.replies)
}

func TestTask_Usage(t *testing.T) {
	f := newFixture(t)
	f.send(t, textMsg("/task"))
	assert.Contains(t, f.sender.last(), "Please provide a task description")
	assert.Empty(t, f.parser.inputs)
}

func TestTask_DiagnosticIsSentVerbatim(t *testing.T) {
	f := newFixture(t)
	f.parser.result = params.Result{Diagnostic: "❌ No close match found for component 'x'"}

	f.send(t, textMsg("/task Fix component: x"))

	assert.Equal(t, []string{"❌ No close match found for component 'x'"}, f.sender.replies)
	assert.Nil(t, f.submitter.req)
	assert.Equal(t, []string{"Fix component: x"}, f.parser.inputs)
}

func TestTask_Success(t *testing.T) {
	f := newFixture(t)
	f.parser.result = params.Result{Request: &model.TaskRequest{Summary: "Fix", IssueType: "Bug"}}
	f.submitter.warnings = []string{"⚠️ Could not attach a.png."}

	f.send(t, textMsg("/task Fix type: bug"))

	require.Len(t, f.sender.replies, 2)
	assert.Equal(t, "Creating Jira bug...", f.sender.replies[0])
	assert.Contains(t, f.sender.replies[1], "✅ Jira bug created successfully!")
	assert.Contains(t, f.sender.replies[1], "AAI-9")
	assert.Contains(t, f.sender.replies[1], "⚠️ Could not attach a.png.")
	assert.Equal(t, "Created via Telegram bot by user alice", f.submitter.req.Description)
}

func TestTask_CaptionAndReplyAttachments(t *testing.T) {
	f := newFixture(t)
	f.parser.result = params.Result{Request: &model.TaskRequest{Summary: "Fix", IssueType: "Story", Description: "Steps"}}
	f.sender.files["photo"] = []byte("png")
	f.sender.files["doc"] = []byte("log")

	msg := textMsg("/task Fix")
	msg.File = &File{ID: "photo", Name: "photo.jpg"}
	msg.ReplyTo = &Message{Text: "original report", File: &File{ID: "doc", Name: "log.txt"}}
	f.send(t, msg)

	require.Len(t, f.submitter.attachments, 2)
	assert.Equal(t, "photo.jpg", f.submitter.attachments[0].Filename)
	assert.Equal(t, []byte("log"), f.submitter.attachments[1].Data)
	assert.Contains(t, f.submitter.req.Description, "original report")
	assert.Contains(t, f.submitter.req.Description, "Steps")
}

func TestTask_SkipsFailedDownloads(t *testing.T) {
	f := newFixture(t)
	f.parser.result = params.Result{Request: &model.TaskRequest{Summary: "Fix", IssueType: "Story"}}

	msg := textMsg("/task Fix")
	msg.File = &File{ID: "missing", Name: "x.bin"}
	f.send(t, msg)

	assert.Empty(t, f.submitter.attachments)
	assert.Contains(t, f.sender.last(), "created successfully")
}

func TestTask_SubmitFailure(t *testing.T) {
	f := newFixture(t)
	f.parser.result = params.Result{Request: &model.TaskRequest{Summary: "Fix", IssueType: "Story"}}
	f.submitter.err = errors.New("jira down")

	f.send(t, textMsg("/task Fix"))
	assert.Contains(t, f.sender.last(), "❌ Failed to create Jira story")
}

func TestTask_AccessDenied(t *testing.T) {
	f := newFixture(t, "bob")

	f.send(t, textMsg("/task Fix"))
	assert.Contains(t, f.sender.last(), "Access denied")
	assert.Empty(t, f.parser.inputs)

	f.send(t, textMsg("/admin"))
	assert.Equal(t, "❌ Access denied.", f.sender.last())
}

func TestComment(t *testing.T) {
	f := newFixture(t)

	f.send(t, textMsg("/comment 12 deployed to staging"))
	assert.Equal(t, "deployed to staging", f.commenter.comments["AAI-12"])
	assert.Contains(t, f.sender.last(), "Comment added to AAI-12")

	f.send(t, textMsg("/comment AAI-12"))
	assert.Contains(t, f.sender.last(), "Usage: /comment")
}

func TestLinkLifecycle(t *testing.T) {
	f := newFixture(t)

	f.send(t, textMsg("/link "+ref+" 5"))
	assert.Contains(t, f.sender.last(), "Linked "+ref+" to AAI-5")

	f.send(t, textMsg("/link "+ref+" aai-5"))
	assert.Contains(t, f.sender.last(), "already linked")

	f.send(t, textMsg("/links "+ref))
	assert.Contains(t, f.sender.last(), "• AAI-5 https://jira/browse/AAI-5")

	f.send(t, textMsg("/unlink "+ref+" AAI-5"))
	assert.Contains(t, f.sender.last(), "Unlinked")

	f.send(t, textMsg("/unlink "+ref+" AAI-5"))
	assert.Contains(t, f.sender.last(), "is not linked")

	f.send(t, textMsg("/links "+ref))
	assert.Contains(t, f.sender.last(), "No Jira issues linked")
}

func TestLink_InvalidRef(t *testing.T) {
	f := newFixture(t)

	f.send(t, textMsg("/link not-a-uuid AAI-1"))
	assert.Contains(t, f.sender.last(), "must be a UUID")

	f.send(t, textMsg("/link only-one-arg"))
	assert.Contains(t, f.sender.last(), "Usage: /link")
}

func TestUserInfoAndAdmin(t *testing.T) {
	f := newFixture(t, "alice", "42")

	f.send(t, textMsg("/userinfo"))
	assert.Contains(t, f.sender.last(), "🆔 User ID: 77")
	assert.Contains(t, f.sender.last(), "@alice")
	assert.Contains(t, f.sender.last(), "Authorized")

	f.send(t, textMsg("/admin"))
	assert.Contains(t, f.sender.last(), "alice, 42")
	assert.Contains(t, f.sender.last(), "Total Allowed: 2")
}

func TestStartAndHelp(t *testing.T) {
	f := newFixture(t)
	f.send(t, textMsg("/start"))
	f.send(t, textMsg("/help@JiraBot"))
	require.Len(t, f.sender.replies, 2)
	assert.Contains(t, f.sender.replies[1], "/comment")
}
