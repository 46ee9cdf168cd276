package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/ventureboard/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "nested", "ventureboard.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLoadBeforeInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	err := store.Load()
	if !errors.Is(err, models.ErrNotInitialized) {
		t.Errorf("Load() error = %v, want ErrNotInitialized", err)
	}
}

func TestInitCreatesSchema(t *testing.T) {
	store := newTestStore(t)

	for _, table := range []string{"settings", "investments", "loans", "skills", "daily_tasks", "productivity_entries", "pomodoro_sessions"} {
		exists, err := store.TableExists(table)
		if err != nil {
			t.Fatalf("TableExists(%s) error = %v", table, err)
		}
		if !exists {
			t.Errorf("table %s does not exist after Init", table)
		}
	}

	current, pending, err := store.SchemaStatus()
	if err != nil {
		t.Fatalf("SchemaStatus() error = %v", err)
	}
	if current < 1 || pending != 0 {
		t.Errorf("SchemaStatus() = (%d, %d), want current >= 1 and nothing pending", current, pending)
	}
}

func TestInitIsRepeatable(t *testing.T) {
	store := newTestStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	settings.CurrencySymbol = "Rs"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}
	store.Close()

	if err := store.Init(); err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	got, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if got.CurrencySymbol != "Rs" {
		t.Errorf("CurrencySymbol = %q, want existing value kept", got.CurrencySymbol)
	}
}

func TestLoadAfterInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ventureboard.db")
	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	store.Close()

	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer reopened.Close()
	if reopened.GetDB() == nil {
		t.Error("GetDB() = nil after Load")
	}
	if reopened.GetConfigPath() != path {
		t.Errorf("GetConfigPath() = %q, want %q", reopened.GetConfigPath(), path)
	}
}
