package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/ventureboard/internal/constants"
	"github.com/julianstephens/ventureboard/internal/models"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

// withTray points the notifier at a temp config dir with a lockfile for the
// given server and a live tray process.
func withTray(t *testing.T, server *httptest.Server, secret string) {
	t.Helper()
	configDir := t.TempDir()
	oldConfigDir, oldFind := userConfigDirFunc, findProcessFunc
	t.Cleanup(func() {
		userConfigDirFunc = oldConfigDir
		findProcessFunc = oldFind
	})
	userConfigDirFunc = func() (string, error) { return configDir, nil }
	findProcessFunc = func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: constants.TrayExecutablePrefix}, nil
	}

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	trayDir := filepath.Join(configDir, constants.TrayAppIdentifier)
	if err := os.MkdirAll(trayDir, 0755); err != nil {
		t.Fatal(err)
	}
	lock := fmt.Sprintf("%s|4242|%s", u.Port(), secret)
	if err := os.WriteFile(filepath.Join(trayDir, constants.NotifierLockfileName), []byte(lock), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestGetTrayAppConfigDir(t *testing.T) {
	configDir := t.TempDir()
	old := userConfigDirFunc
	defer func() { userConfigDirFunc = old }()
	userConfigDirFunc = func() (string, error) { return configDir, nil }

	trayDir := filepath.Join(configDir, constants.TrayAppIdentifier)
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		t.Fatalf("GetTrayAppConfigDir() error = %v", err)
	}
	if dir != trayDir {
		t.Errorf("GetTrayAppConfigDir() = %s, want %s", dir, trayDir)
	}

	if err := os.MkdirAll(trayDir, 0755); err != nil {
		t.Fatal(err)
	}
	settings := `{"settings": {"lockfile_dir": "/run/user/1000/ventureboard"}}`
	if err := os.WriteFile(filepath.Join(trayDir, "settings.json"), []byte(settings), 0644); err != nil {
		t.Fatal(err)
	}
	dir, _ = GetTrayAppConfigDir()
	if dir != "/run/user/1000/ventureboard" {
		t.Errorf("GetTrayAppConfigDir() = %s, want custom lockfile dir", dir)
	}
}

func TestParseLockfile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "old two part format", content: "8080|12345", wantErr: "malformed"},
		{name: "garbage", content: "invalid", wantErr: "malformed"},
		{name: "empty secret", content: "8080|12345|", wantErr: "secret"},
		{name: "empty port", content: "|12345|s3cret", wantErr: "port"},
		{name: "port out of range", content: "99999|12345|s3cret", wantErr: "range"},
		{name: "bad pid", content: "8080|abc|s3cret", wantErr: "process ID"},
		{name: "valid with newline", content: "8080|12345|s3cret\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep, err := parseLockfile(tt.content)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("parseLockfile() error = %v, want it to mention %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLockfile() error = %v", err)
			}
			if ep.port != 8080 || ep.pid != 12345 || ep.secret != "s3cret" {
				t.Errorf("parseLockfile() = %+v", ep)
			}
		})
	}
}

func TestFindTray(t *testing.T) {
	old := findProcessFunc
	defer func() { findProcessFunc = old }()

	lockfile := filepath.Join(t.TempDir(), constants.NotifierLockfileName)
	if _, err := findTray(lockfile); !errors.Is(err, ErrTrayNotRunning) {
		t.Errorf("findTray() without lockfile error = %v, want ErrTrayNotRunning", err)
	}

	if err := os.WriteFile(lockfile, []byte("8080|12345|s3cret"), 0600); err != nil {
		t.Fatal(err)
	}

	findProcessFunc = func(int) (ps.Process, error) { return nil, nil }
	if _, err := findTray(lockfile); !errors.Is(err, ErrTrayNotRunning) {
		t.Errorf("findTray() with dead process error = %v, want ErrTrayNotRunning", err)
	}

	findProcessFunc = func(pid int) (ps.Process, error) { return &mockProcess{pid: pid, executable: "other-app"}, nil }
	if _, err := findTray(lockfile); err == nil {
		t.Error("findTray() accepted a foreign process")
	}

	findProcessFunc = func(pid int) (ps.Process, error) { return &mockProcess{pid: pid, executable: "ventureboard-tray-x86"}, nil }
	ep, err := findTray(lockfile)
	if err != nil {
		t.Fatalf("findTray() error = %v", err)
	}
	if ep.url() != "http://127.0.0.1:8080" {
		t.Errorf("url() = %s", ep.url())
	}
}

func TestNotify(t *testing.T) {
	var got WebhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Ventureboard-Secret") != "s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	withTray(t, server, "s3cret")

	if err := New().Notify(context.Background(), "EMI due", "EMI of ₹1,000 is due today"); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if got.Title != "EMI due" || got.Text != "EMI of ₹1,000 is due today" {
		t.Errorf("payload = %+v", got)
	}
	if got.DurationMs != constants.NotificationDurationMs {
		t.Errorf("DurationMs = %d, want %d", got.DurationMs, constants.NotificationDurationMs)
	}
}

func TestNotifyRetriesThenFails(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "busy", http.StatusServiceUnavailable)
	}))
	defer server.Close()
	withTray(t, server, "s3cret")

	err := New().Notify(context.Background(), "t", "m")
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Errorf("Notify() error = %v, want status 503", err)
	}
	if int(calls.Load()) != constants.NotifyMaxRetries {
		t.Errorf("server called %d times, want %d", calls.Load(), constants.NotifyMaxRetries)
	}
}

func TestNotifyReminders(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	withTray(t, server, "s3cret")

	rs := []models.Reminder{
		{ID: "emi-1", Title: "EMI", Message: "due today", Priority: models.PriorityHigh},
		{ID: "skill-1", Title: "Practice", Message: "idle", Priority: models.PriorityMedium},
		{ID: "sip-1", Title: "SIP", Message: "soon", Priority: models.PriorityLow},
	}

	n := New()
	sent, err := n.NotifyReminders(context.Background(), rs, models.PriorityMedium, "2024-06-02")
	if err != nil {
		t.Fatalf("NotifyReminders() error = %v", err)
	}
	if sent != 2 {
		t.Errorf("sent = %d, want 2", sent)
	}

	// same day: nothing new
	sent, _ = n.NotifyReminders(context.Background(), rs, models.PriorityMedium, "2024-06-02")
	if sent != 0 {
		t.Errorf("sent again = %d, want 0", sent)
	}

	// next day: pushed again
	sent, _ = n.NotifyReminders(context.Background(), rs, models.PriorityHigh, "2024-06-03")
	if sent != 1 {
		t.Errorf("sent next day = %d, want 1", sent)
	}
	if calls.Load() != 3 {
		t.Errorf("server called %d times, want 3", calls.Load())
	}
}

func TestNotifyWithoutTray(t *testing.T) {
	old := userConfigDirFunc
	defer func() { userConfigDirFunc = old }()
	dir := t.TempDir()
	userConfigDirFunc = func() (string, error) { return dir, nil }

	if err := New().Notify(context.Background(), "t", "m"); !errors.Is(err, ErrTrayNotRunning) {
		t.Errorf("Notify() error = %v, want ErrTrayNotRunning", err)
	}
}
