package crossref

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJiraKeys(t *testing.T) {
	assert.Equal(t, []string{"AAI-1", "OPS-22"}, ExtractJiraKeys("see AAI-1, OPS-22 and AAI-1 again"))
	assert.Nil(t, ExtractJiraKeys("nothing here"))
}

func TestIsJiraKey(t *testing.T) {
	assert.True(t, IsJiraKey("AAI-1020"))
	assert.False(t, IsJiraKey("AAI-1020 extra"))
	assert.False(t, IsJiraKey("aai-1020"))
	assert.False(t, IsJiraKey(""))
}

func TestIssueKey(t *testing.T) {
	tests := []struct {
		name   string
		ref    string
		want   string
		wantOK bool
	}{
		{name: "digits", ref: "123", want: "AAI-123", wantOK: true},
		{name: "full key", ref: "OPS-7", want: "OPS-7", wantOK: true},
		{name: "lower case key", ref: "ops-7", want: "OPS-7", wantOK: true},
		{name: "browse url", ref: "https://jira.example.com/browse/OPS-7", want: "OPS-7", wantOK: true},
		{name: "garbage", ref: "yesterday", wantOK: false},
		{name: "empty", ref: "  ", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := IssueKey(tt.ref, "AAI")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
