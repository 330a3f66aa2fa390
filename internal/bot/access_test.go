package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccess_EmptyAllowsEveryone(t *testing.T) {
	a := NewAccess([]string{"", "  "})
	assert.False(t, a.Restricted())
	assert.True(t, a.Allowed(User{ID: 1}))
}

func TestAccess_ByNameAndID(t *testing.T) {
	a := NewAccess([]string{"@Alice", "123456"})

	assert.True(t, a.Allowed(User{Username: "alice"}))
	assert.True(t, a.Allowed(User{ID: 123456, Username: "someone"}))
	assert.False(t, a.Allowed(User{ID: 42, Username: "mallory"}))
	assert.False(t, a.Allowed(User{}))
	assert.Equal(t, []string{"@Alice", "123456"}, a.Entries())
}
