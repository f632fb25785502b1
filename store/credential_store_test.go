package store

import (
	"testing"

	"github.com/spf13/afero"
)

func newTestCredentialStore(t *testing.T) *FileCredentialStore {
	t.Helper()
	s, err := NewCredentialStore(afero.NewMemMapFs(), "/data/credentials.json")
	if err != nil {
		t.Fatalf("NewCredentialStore failed: %v", err)
	}
	return s
}

func TestCredentialsStartEmpty(t *testing.T) {
	s := newTestCredentialStore(t)

	creds := s.Credentials()
	if creds.APIKey != "" || creds.IsValid || creds.LastValidated != nil {
		t.Errorf("expected empty credentials, got %+v", creds)
	}
}

func TestSetAPIKeyPersists(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := NewCredentialStore(fs, "/data/credentials.json")
	if err != nil {
		t.Fatalf("NewCredentialStore failed: %v", err)
	}

	if err := s.SetAPIKey("sk-or-test-abc123"); err != nil {
		t.Fatalf("SetAPIKey failed: %v", err)
	}

	reloaded, err := NewCredentialStore(fs, "/data/credentials.json")
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Credentials().APIKey != "sk-or-test-abc123" {
		t.Errorf("key not persisted: %+v", reloaded.Credentials())
	}
}

func TestMarkValidatedStampsOnlyOnSuccess(t *testing.T) {
	s := newTestCredentialStore(t)
	if err := s.SetAPIKey("sk-or-test"); err != nil {
		t.Fatalf("SetAPIKey failed: %v", err)
	}

	if err := s.MarkValidated(false); err != nil {
		t.Fatalf("MarkValidated(false) failed: %v", err)
	}
	creds := s.Credentials()
	if creds.IsValid {
		t.Error("expected IsValid false after a failed validation")
	}
	if creds.LastValidated != nil {
		t.Error("LastValidated must not move on a failed validation")
	}

	if err := s.MarkValidated(true); err != nil {
		t.Fatalf("MarkValidated(true) failed: %v", err)
	}
	creds = s.Credentials()
	if !creds.IsValid {
		t.Error("expected IsValid true after a successful validation")
	}
	if creds.LastValidated == nil {
		t.Error("LastValidated must be stamped on a successful validation")
	}
}

func TestSetAPIKeyKeepsValidityFlag(t *testing.T) {
	s := newTestCredentialStore(t)
	if err := s.SetAPIKey("first"); err != nil {
		t.Fatalf("SetAPIKey failed: %v", err)
	}
	if err := s.MarkValidated(true); err != nil {
		t.Fatalf("MarkValidated failed: %v", err)
	}

	// Replacing the key leaves validity to the caller to refresh.
	if err := s.SetAPIKey("second"); err != nil {
		t.Fatalf("SetAPIKey failed: %v", err)
	}
	creds := s.Credentials()
	if creds.APIKey != "second" {
		t.Errorf("expected new key, got %s", creds.APIKey)
	}
	if !creds.IsValid {
		t.Error("SetAPIKey must not reset IsValid")
	}
}

func TestClearResetsEverything(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := NewCredentialStore(fs, "/data/credentials.json")
	if err != nil {
		t.Fatalf("NewCredentialStore failed: %v", err)
	}
	if err := s.SetAPIKey("sk-or-test"); err != nil {
		t.Fatalf("SetAPIKey failed: %v", err)
	}
	if err := s.MarkValidated(true); err != nil {
		t.Fatalf("MarkValidated failed: %v", err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	creds := s.Credentials()
	if creds.APIKey != "" || creds.IsValid || creds.LastValidated != nil {
		t.Errorf("expected cleared credentials, got %+v", creds)
	}

	reloaded, err := NewCredentialStore(fs, "/data/credentials.json")
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Credentials().APIKey != "" {
		t.Error("clear not persisted")
	}
}
