package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/secureauth/webclient/internal/core/domain"
)

func testSession() domain.Session {
	return domain.Session{
		Token: "tok123",
		User:  &domain.User{ID: "u_1", Email: "alice@example.com", Username: "alice"},
	}
}

func TestFileStore_SaveLoadErase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.json")
	store := NewFileStore(path)
	ctx := context.Background()

	if err := store.Save(ctx, testSession()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, ok, err := store.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load failed: ok=%v err=%v", ok, err)
	}
	if got.Token != "tok123" || got.User == nil || got.User.Email != "alice@example.com" {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	if err := store.Erase(ctx); err != nil {
		t.Fatalf("erase failed: %v", err)
	}
	if _, ok, err := store.Load(ctx); err != nil || ok {
		t.Fatalf("expected empty after erase: ok=%v err=%v", ok, err)
	}
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

	_, ok, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("missing file is not an error: %v", err)
	}
	if ok {
		t.Fatalf("missing file must report no stored session")
	}
}

func TestFileStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, _, err := NewFileStore(path).Load(context.Background())
	if err == nil {
		t.Fatalf("expected decode error for corrupt file")
	}
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)
	ctx := context.Background()

	if err := store.Save(ctx, testSession()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second := domain.Session{
		Token: "tok456",
		User:  &domain.User{ID: "u_2", Email: "bob@example.com", Username: "bob"},
	}
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	got, ok, err := store.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load failed: ok=%v err=%v", ok, err)
	}
	if got.Token != "tok456" || got.User.Username != "bob" {
		t.Fatalf("expected second session, got %+v", got)
	}
}

func TestFileStore_EraseAbsentIsNoop(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
	if err := store.Erase(context.Background()); err != nil {
		t.Fatalf("erasing an absent session must not fail: %v", err)
	}
}

func TestFileStore_NoLeftoverTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "session.json"))

	if err := store.Save(context.Background(), testSession()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "session.json" {
		t.Fatalf("unexpected directory contents: %v", entries)
	}
}
