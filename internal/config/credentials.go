package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/quikcommit/qc/internal/output"
)

// CredentialsFile holds the API key inside Dir().
const CredentialsFile = "credentials"

// APIKey returns the API key: $QC_API_KEY first, then the credentials file.
// Returns "" when neither is set.
func (s *Store) APIKey() string {
	if key := strings.TrimSpace(os.Getenv("QC_API_KEY")); key != "" {
		return key
	}
	data, err := os.ReadFile(filepath.Join(s.dir, CredentialsFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SaveAPIKey stores key in the credentials file (0600, directory 0700).
func (s *Store) SaveAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return output.NewUserError("API key must not be empty")
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return output.NewSystemErrorWithCause("failed to create config directory", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, CredentialsFile), []byte(key), 0o600); err != nil {
		return output.NewSystemErrorWithCause("failed to write credentials", err)
	}
	return nil
}

// ClearAPIKey deletes the credentials file. Returns false if none existed.
func (s *Store) ClearAPIKey() (bool, error) {
	err := os.Remove(filepath.Join(s.dir, CredentialsFile))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, output.NewSystemErrorWithCause("failed to remove credentials", err)
	}
	return true, nil
}

// MaskKey shows only the last four characters of a key.
func MaskKey(key string) string {
	if len(key) <= 4 {
		return "..." + key
	}
	return "..." + key[len(key)-4:]
}
