// Package notifier pushes reminders to the desktop tray app. The tray
// advertises itself through a lockfile of the form "port|pid|secret".
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/ventureboard/internal/constants"
	"github.com/julianstephens/ventureboard/internal/logger"
	"github.com/julianstephens/ventureboard/internal/models"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess

	ErrTrayNotRunning = errors.New("ventureboard-tray is not running")
)

type WebhookPayload struct {
	Title      string `json:"title,omitempty"`
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

// endpoint is a validated lockfile.
type endpoint struct {
	port   int
	pid    int
	secret string
}

func (e endpoint) url() string {
	return fmt.Sprintf("http://127.0.0.1:%d", e.port)
}

type Notifier struct {
	client *http.Client

	mu   sync.Mutex
	sent map[string]string // reminder ID -> date it was pushed
}

func New() *Notifier {
	return &Notifier{
		client: &http.Client{Timeout: 5 * time.Second},
		sent:   make(map[string]string),
	}
}

// Notify sends one message to the tray app, retrying transient failures.
func (n *Notifier) Notify(ctx context.Context, title, text string) error {
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		return err
	}
	ep, err := findTray(filepath.Join(dir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	payload := WebhookPayload{Title: title, Text: text, DurationMs: constants.NotificationDurationMs}
	var lastErr error
	for attempt := 1; attempt <= constants.NotifyMaxRetries; attempt++ {
		if lastErr = n.send(ctx, ep, payload); lastErr == nil {
			return nil
		}
		logger.Debug("Notification attempt failed", "attempt", attempt, "error", lastErr)
		if attempt == constants.NotifyMaxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(constants.NotifyRetryDelay * time.Duration(attempt)):
		}
	}
	return fmt.Errorf("failed to notify after %d attempts: %w", constants.NotifyMaxRetries, lastErr)
}

// NotifyReminders pushes reminders at least as urgent as min. A reminder is
// pushed at most once per date, so repeated runs during a day stay quiet.
// It returns how many were sent.
func (n *Notifier) NotifyReminders(ctx context.Context, rs []models.Reminder, min models.Priority, date string) (int, error) {
	sent := 0
	for _, r := range rs {
		if !r.Priority.AtLeast(min) || n.alreadySent(r.ID, date) {
			continue
		}
		if err := n.Notify(ctx, r.Title, r.Message); err != nil {
			return sent, err
		}
		n.markSent(r.ID, date)
		sent++
	}
	return sent, nil
}

func (n *Notifier) alreadySent(id, date string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.sent[id] == date
}

func (n *Notifier) markSent(id, date string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent[id] = date
}

// GetTrayAppConfigDir returns the directory holding the tray lockfile. The
// tray's settings.json may point it elsewhere.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	trayDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(trayDir, "settings.json"))
	if err != nil {
		return trayDir, nil
	}
	var stored struct {
		Settings struct {
			LockfileDir string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &stored); err != nil || stored.Settings.LockfileDir == "" {
		return trayDir, nil
	}
	return stored.Settings.LockfileDir, nil
}

func parseLockfile(content string) (endpoint, error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 3 {
		return endpoint{}, errors.New("lockfile is malformed")
	}
	port, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return endpoint{}, errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return endpoint{}, fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return endpoint{}, errors.New("invalid process ID in lockfile")
	}
	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return endpoint{}, errors.New("secret in lockfile is empty")
	}
	return endpoint{port: port, pid: pid, secret: secret}, nil
}

// findTray reads the lockfile and checks that its PID still belongs to the
// tray executable.
func findTray(lockfilePath string) (endpoint, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return endpoint{}, ErrTrayNotRunning
	}
	ep, err := parseLockfile(string(content))
	if err != nil {
		return endpoint{}, err
	}
	process, err := findProcessFunc(ep.pid)
	if err != nil || process == nil {
		return endpoint{}, ErrTrayNotRunning
	}
	if !strings.HasPrefix(process.Executable(), constants.TrayExecutablePrefix) {
		return endpoint{}, fmt.Errorf("process with PID %d is not %s (is %s)", ep.pid, constants.TrayExecutablePrefix, process.Executable())
	}
	return ep, nil
}

func (n *Notifier) send(ctx context.Context, ep endpoint, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.url(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Ventureboard-Secret", ep.secret)

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}
	msg, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(msg))
}
