package credential

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore map[string]string

func (m memStore) Get(key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m memStore) Set(key, value string) error {
	m[key] = value
	return nil
}

func (m memStore) Delete(key string) error {
	delete(m, key)
	return nil
}

type brokenStore struct{ memStore }

func (brokenStore) Get(string) (string, error) { return "", errors.New("dbus down") }

func TestFill(t *testing.T) {
	s := memStore{KeyJiraToken: "from-ring", KeyTelegramToken: "tg-ring"}
	jira, tg := "", "from-config"

	require.NoError(t, Fill(s, map[string]*string{KeyJiraToken: &jira, KeyTelegramToken: &tg}))
	assert.Equal(t, "from-ring", jira)
	assert.Equal(t, "from-config", tg)
}

func TestFill_MissingIsNotAnError(t *testing.T) {
	v := ""
	require.NoError(t, Fill(memStore{}, map[string]*string{KeyJiraToken: &v}))
	assert.Empty(t, v)
}

func TestFill_BackendError(t *testing.T) {
	v := ""
	assert.Error(t, Fill(brokenStore{}, map[string]*string{KeyJiraToken: &v}))
}
