package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// Credentials holds the single AI-provider credential. An empty APIKey
// means unset. LastValidated is stamped only on a successful validation.
type Credentials struct {
	APIKey        string     `json:"apiKey"`
	IsValid       bool       `json:"isValid"`
	LastValidated *time.Time `json:"lastValidated,omitempty"`
}

// FileCredentialStore persists the provider credential as its own JSON
// document, independent of the task data file. It performs no network I/O
// itself: validation truth is supplied by the caller after consulting the
// completion client.
//
// It uses an afero.Fs for filesystem operations. Use afero.NewOsFs() for
// real filesystem operations, or afero.NewMemMapFs() for testing.
type FileCredentialStore struct {
	fs       afero.Fs
	filePath string
	creds    Credentials
}

// NewCredentialStore creates a credential store backed by the given
// filesystem and file path, loading any persisted record.
func NewCredentialStore(fs afero.Fs, filePath string) (*FileCredentialStore, error) {
	s := &FileCredentialStore{fs: fs, filePath: filePath}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewDefaultCredentialStore creates a credential store on the real
// filesystem.
func NewDefaultCredentialStore(filePath string) (*FileCredentialStore, error) {
	return NewCredentialStore(afero.NewOsFs(), filePath)
}

func (s *FileCredentialStore) load() error {
	exists, err := afero.Exists(s.fs, s.filePath)
	if err != nil {
		return fmt.Errorf("failed to check credentials file %s: %w", s.filePath, err)
	}
	if !exists {
		s.creds = Credentials{}
		return nil
	}
	data, err := afero.ReadFile(s.fs, s.filePath)
	if err != nil {
		return fmt.Errorf("failed to read credentials file %s: %w", s.filePath, err)
	}
	if len(data) == 0 {
		s.creds = Credentials{}
		return nil
	}
	if err := json.Unmarshal(data, &s.creds); err != nil {
		return fmt.Errorf("failed to parse credentials file %s: %w", s.filePath, err)
	}
	return nil
}

func (s *FileCredentialStore) save() error {
	data, err := json.MarshalIndent(s.creds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}
	dir := filepath.Dir(s.filePath)
	if dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	// The key is a secret; keep the file owner-readable only.
	if err := afero.WriteFile(s.fs, s.filePath, data, os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write credentials file %s: %w", s.filePath, err)
	}
	return nil
}

// Credentials returns the current credential record.
func (s *FileCredentialStore) Credentials() Credentials {
	return s.creds
}

// SetAPIKey replaces the stored key. The validity flag is left as-is; the
// caller decides when to re-validate.
func (s *FileCredentialStore) SetAPIKey(key string) error {
	s.creds.APIKey = key
	return s.save()
}

// MarkValidated records the outcome of a validation attempt. The
// LastValidated timestamp moves only when the attempt succeeded.
func (s *FileCredentialStore) MarkValidated(isValid bool) error {
	s.creds.IsValid = isValid
	if isValid {
		now := time.Now().UTC()
		s.creds.LastValidated = &now
	}
	return s.save()
}

// Clear resets the credential to the unset state.
func (s *FileCredentialStore) Clear() error {
	s.creds = Credentials{}
	return s.save()
}
