package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "ventureboard.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE expenses (id TEXT PRIMARY KEY, amount TEXT)`,
		`INSERT INTO expenses (id, amount) VALUES ('e1', '100'), ('e2', '250')`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to seed test database: %v", err)
		}
	}
	return dbPath
}

func countRows(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM expenses").Scan(&n); err != nil {
		t.Fatalf("failed to count rows in %s: %v", path, err)
	}
	return n
}

// fixedClock returns a clock that advances one minute per call.
func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(time.Minute)
		return t
	}
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, 0)

	path, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if filepath.Dir(path) != mgr.Dir() {
		t.Errorf("backup written to %s, want inside %s", path, mgr.Dir())
	}
	if got := countRows(t, path); got != 2 {
		t.Errorf("backup has %d rows, want 2", got)
	}
}

func TestCreateMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"), 0)
	if _, err := mgr.Create(); err == nil {
		t.Error("Create() error = nil for missing database")
	}
}

func TestCreateSameSecond(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, 0)
	stamp := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return stamp }

	first, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second, err := mgr.Create()
	if err != nil {
		t.Fatalf("second Create() error = %v", err)
	}
	if first == second {
		t.Fatalf("Create() reused %s", first)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != 2 || backups[0].Path != second {
		t.Errorf("List() = %+v, want the counter-suffixed backup first", backups)
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, 3)
	mgr.now = fixedClock(time.Date(2024, 6, 1, 8, 0, 0, 0, time.Local))

	var created []string
	for i := 0; i < 5; i++ {
		path, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create() #%d error = %v", i, err)
		}
		created = append(created, path)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("List() = %d backups, want 3", len(backups))
	}
	for i, b := range backups {
		if want := created[len(created)-1-i]; b.Path != want {
			t.Errorf("backup %d = %s, want %s", i, b.Path, want)
		}
	}
	if _, err := os.Stat(created[0]); !os.IsNotExist(err) {
		t.Errorf("oldest backup %s still exists", created[0])
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, 0)
	if err := os.MkdirAll(mgr.Dir(), 0700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "ventureboard-latest.db", "ventureboard-20240601-120000-x.db"} {
		if err := os.WriteFile(filepath.Join(mgr.Dir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("List() = %+v, want none", backups)
	}
}

func TestListWithoutDirectory(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "vb.db"), 0)
	backups, err := mgr.List()
	if err != nil || len(backups) != 0 {
		t.Errorf("List() = (%v, %v), want empty", backups, err)
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, 0)
	mgr.now = fixedClock(time.Date(2024, 6, 1, 8, 0, 0, 0, time.Local))

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("DELETE FROM expenses"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	if _, err := mgr.Restore(filepath.Base(backupPath)); err == nil {
		t.Fatal("Restore() with a bare name should fail, callers resolve it first")
	}

	safety, err := mgr.Restore(mgr.Resolve(filepath.Base(backupPath)))
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if got := countRows(t, dbPath); got != 2 {
		t.Errorf("restored database has %d rows, want 2", got)
	}
	if safety == "" {
		t.Fatal("Restore() did not return a safety backup")
	}
	if got := countRows(t, safety); got != 0 {
		t.Errorf("safety backup has %d rows, want 0", got)
	}
}

func TestRestoreInvalidBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, 0)

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("definitely not sqlite, padded to look like a real file header"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(bogus); err == nil {
		t.Error("Restore() error = nil for invalid backup")
	}
	if got := countRows(t, dbPath); got != 2 {
		t.Errorf("database changed after failed restore: %d rows", got)
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name        string
		wantOK      bool
		wantCounter int
	}{
		{"ventureboard-20240601-120000.db", true, 0},
		{"ventureboard-20240601-120000-3.db", true, 3},
		{"ventureboard-20240601-1200.db", false, 0},
		{"ventureboard-20240601-120000-0.db", false, 0},
		{"other-20240601-120000.db", false, 0},
		{"ventureboard-20240601-120000.sqlite", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, counter, ok := parseName(tt.name)
			if ok != tt.wantOK || counter != tt.wantCounter {
				t.Errorf("parseName(%q) = (%d, %v), want (%d, %v)", tt.name, counter, ok, tt.wantCounter, tt.wantOK)
			}
		})
	}
}
