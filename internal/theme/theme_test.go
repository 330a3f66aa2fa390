package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPanel_SkipsEmptyValues(t *testing.T) {
	out := Panel("Request", []Field{
		{Label: "Summary", Value: "Fix login"},
		{Label: "Sprint", Value: ""},
	})

	assert.Contains(t, out, "Request")
	assert.Contains(t, out, "Fix login")
	assert.NotContains(t, out, "Sprint")
}
