// Package credential keeps bot and tracker tokens in the system keyring.
package credential

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "taskbot"

// Keyring entry names.
const (
	KeyTelegramToken = "telegram-token"
	KeyJiraToken     = "jira-token"
)

// ErrNotFound is returned when no credential is stored under a key.
var ErrNotFound = errors.New("credential not found")

// Store reads and writes named secrets.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Keyring is a Store over the platform keyring.
type Keyring struct {
	cfg keyring.Config
}

// NewKeyring returns a Store backed by the first available platform
// keyring, falling back to an encrypted file under dir.
func NewKeyring(dir string) *Keyring {
	return &Keyring{cfg: keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  dir,
		FilePasswordFunc:         keyring.FixedStringPrompt("taskbot-file-key"),
		KeychainTrustApplication: true,
	}}
}

// DefaultDir is the file backend location.
const DefaultDir = "~/.config/taskbot/credentials"

func (k *Keyring) open() (keyring.Keyring, error) {
	ring, err := keyring.Open(k.cfg)
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Get retrieves a credential value by key.
func (k *Keyring) Get(key string) (string, error) {
	ring, err := k.open()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}

	return string(item.Data), nil
}

// Set stores a credential value by key.
func (k *Keyring) Set(key, value string) error {
	ring, err := k.open()
	if err != nil {
		return err
	}

	if err := ring.Set(keyring.Item{Key: key, Data: []byte(value)}); err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}
	return nil
}

// Delete removes a credential by key.
func (k *Keyring) Delete(key string) error {
	ring, err := k.open()
	if err != nil {
		return err
	}

	if err := ring.Remove(key); err != nil {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}
	return nil
}

// Fill sets every empty *dst to the credential stored under its key.
// Missing entries are left empty; other keyring failures are returned.
func Fill(s Store, fields map[string]*string) error {
	for key, dst := range fields {
		if *dst != "" {
			continue
		}
		v, err := s.Get(key)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		*dst = v
	}
	return nil
}
