package client

import (
	"os"
	"path/filepath"
	"testing"

	"vendorhub/internal/models"
)

func TestSessionStorePersistsLogin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store := NewSessionStore(path)
	user := &models.Vendor{Name: "Asha Stores", Email: "asha@example.com"}
	if err := store.SetAuthenticated("token-abc", user); err != nil {
		t.Fatal(err)
	}

	reloaded := NewSessionStore(path).Current()
	if !reloaded.IsAuthenticated {
		t.Error("expected persisted session to be authenticated")
	}
	if reloaded.Token != "token-abc" {
		t.Errorf("token = %q, want token-abc", reloaded.Token)
	}
	if reloaded.User == nil || reloaded.User.Email != "asha@example.com" {
		t.Errorf("user not persisted: %+v", reloaded.User)
	}
}

func TestSessionStoreClearOnLogout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store := NewSessionStore(path)
	if err := store.SetAuthenticated("token-abc", nil); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatal(err)
	}

	reloaded := NewSessionStore(path).Current()
	if reloaded.IsAuthenticated {
		t.Error("expected session to be cleared")
	}
	if reloaded.Token != "" {
		t.Errorf("token = %q, want empty", reloaded.Token)
	}
}

func TestSessionStoreFallsBackOnCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	sess := NewSessionStore(path).Current()
	if sess.IsAuthenticated || sess.Token != "" || sess.User != nil {
		t.Errorf("corrupt file should yield an empty session, got %+v", sess)
	}
}

func TestSessionStoreRejectsAuthenticatedWithoutToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(`{"isAuthenticated":true}`), 0o600); err != nil {
		t.Fatal(err)
	}

	sess := NewSessionStore(path).Current()
	if sess.IsAuthenticated {
		t.Error("authenticated flag without a token should be dropped")
	}
}

func TestSessionStoreMissingFileIsEmpty(t *testing.T) {
	sess := NewSessionStore(filepath.Join(t.TempDir(), "nope.json")).Current()
	if sess.IsAuthenticated || sess.Token != "" {
		t.Errorf("missing file should yield an empty session, got %+v", sess)
	}
}
