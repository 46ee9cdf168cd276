// Package export moves a complete copy of the user's data between stores and
// files. Snapshots are written as JSON or msgpack.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/storage"
)

var timeNow = time.Now

// SnapshotVersion is bumped whenever the snapshot layout changes incompatibly.
const SnapshotVersion = 1

type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat accepts a format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "msgpack", "mp", "mpk":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("unknown export format %q (use json or msgpack)", s)
	}
}

// FormatForPath infers the format from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mp", ".mpk":
		return FormatMsgpack
	default:
		return FormatJSON
	}
}

type Snapshot struct {
	Version              int                           `json:"version"`
	ExportedAt           time.Time                     `json:"exported_at"`
	Settings             models.Settings               `json:"settings"`
	Wallet               []models.WalletEntry          `json:"wallet"`
	Expenses             []models.Expense              `json:"expenses"`
	Income               []models.Income               `json:"income"`
	Investments          []models.Investment           `json:"investments"`
	Loans                []models.Loan                 `json:"loans"`
	Goals                []models.SavingsGoal          `json:"goals"`
	IntellectualProperty []models.IntellectualProperty `json:"intellectual_property"`
	Skills               []models.Skill                `json:"skills"`
	Tasks                []models.DailyTask            `json:"tasks"`
	DailyOverviews       []models.DailyOverview        `json:"daily_overviews"`
	WeeklyReviews        []models.WeeklyReview         `json:"weekly_reviews"`
	Productivity         []models.ProductivityEntry    `json:"productivity"`
	Pomodoros            []models.PomodoroSession      `json:"pomodoros"`
}

// Collect reads every collection from store.
func Collect(store storage.Provider, now time.Time) (*Snapshot, error) {
	snap := &Snapshot{Version: SnapshotVersion, ExportedAt: now}
	var err error
	if snap.Settings, err = store.GetSettings(); err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	if snap.Wallet, err = store.GetWalletEntries(); err != nil {
		return nil, fmt.Errorf("failed to read wallet: %w", err)
	}
	if snap.Expenses, err = store.GetAllExpenses(); err != nil {
		return nil, fmt.Errorf("failed to read expenses: %w", err)
	}
	if snap.Income, err = store.GetAllIncome(); err != nil {
		return nil, fmt.Errorf("failed to read income: %w", err)
	}
	if snap.Investments, err = store.GetAllInvestments(); err != nil {
		return nil, fmt.Errorf("failed to read investments: %w", err)
	}
	if snap.Loans, err = store.GetAllLoans(); err != nil {
		return nil, fmt.Errorf("failed to read loans: %w", err)
	}
	if snap.Goals, err = store.GetAllGoals(); err != nil {
		return nil, fmt.Errorf("failed to read goals: %w", err)
	}
	if snap.IntellectualProperty, err = store.GetAllIP(); err != nil {
		return nil, fmt.Errorf("failed to read intellectual property: %w", err)
	}
	if snap.Skills, err = store.GetAllSkills(); err != nil {
		return nil, fmt.Errorf("failed to read skills: %w", err)
	}
	if snap.Tasks, err = store.GetAllTasks(); err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}
	if snap.DailyOverviews, err = store.GetAllDailyOverviews(); err != nil {
		return nil, fmt.Errorf("failed to read daily overviews: %w", err)
	}
	if snap.WeeklyReviews, err = store.GetAllWeeklyReviews(); err != nil {
		return nil, fmt.Errorf("failed to read weekly reviews: %w", err)
	}
	if snap.Productivity, err = store.GetProductivityEntries(); err != nil {
		return nil, fmt.Errorf("failed to read productivity: %w", err)
	}
	if snap.Pomodoros, err = store.GetAllPomodoroSessions(); err != nil {
		return nil, fmt.Errorf("failed to read pomodoro sessions: %w", err)
	}
	return snap, nil
}

// Write encodes snap to w.
func Write(w io.Writer, snap *Snapshot, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		enc.UseCompactInts(true)
		return enc.Encode(snap)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// Read decodes a snapshot and rejects ones written by a newer version.
func Read(r io.Reader, format Format) (*Snapshot, error) {
	var snap Snapshot
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&snap); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot: %w", err)
		}
	case FormatMsgpack:
		dec := msgpack.NewDecoder(r)
		dec.SetCustomStructTag("json")
		if err := dec.Decode(&snap); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
	if snap.Version < 1 || snap.Version > SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d (this build reads up to %d)", snap.Version, SnapshotVersion)
	}
	return &snap, nil
}
