package export

import (
	"errors"
	"fmt"

	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/storage"
)

// Counts reports how many records Restore wrote per collection.
type Counts map[string]int

func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Restore writes snap into store. Records are matched by ID (by date or week
// start for reflections and productivity) and replaced, so importing the same
// snapshot twice leaves one copy of everything. Wallet entries and pomodoro
// sessions are append-only and only added when their ID is new.
func Restore(store storage.Provider, snap *Snapshot) (Counts, error) {
	counts := Counts{}
	if err := store.SaveSettings(snap.Settings); err != nil {
		return counts, fmt.Errorf("failed to restore settings: %w", err)
	}

	existingWallet, err := store.GetWalletEntries()
	if err != nil {
		return counts, err
	}
	walletIDs := make(map[string]bool, len(existingWallet))
	for _, e := range existingWallet {
		walletIDs[e.ID] = true
	}
	for _, e := range snap.Wallet {
		if walletIDs[e.ID] {
			continue
		}
		if err := store.AddWalletEntry(e); err != nil {
			return counts, fmt.Errorf("failed to restore wallet entry %s: %w", e.ID, err)
		}
		counts["wallet"]++
	}

	for _, e := range snap.Expenses {
		if err := upsert(store.UpdateExpense, store.AddExpense, e); err != nil {
			return counts, fmt.Errorf("failed to restore expense %s: %w", e.ID, err)
		}
		counts["expenses"]++
	}
	for _, i := range snap.Income {
		if err := replace(store.DeleteIncome, store.AddIncome, i.ID, i); err != nil {
			return counts, fmt.Errorf("failed to restore income %s: %w", i.ID, err)
		}
		counts["income"]++
	}
	for _, inv := range snap.Investments {
		if err := upsert(store.UpdateInvestment, store.AddInvestment, inv); err != nil {
			return counts, fmt.Errorf("failed to restore investment %s: %w", inv.ID, err)
		}
		counts["investments"]++
	}
	for _, l := range snap.Loans {
		if err := upsert(store.UpdateLoan, store.AddLoan, l); err != nil {
			return counts, fmt.Errorf("failed to restore loan %s: %w", l.ID, err)
		}
		counts["loans"]++
	}
	for _, g := range snap.Goals {
		if err := upsert(store.UpdateGoal, store.AddGoal, g); err != nil {
			return counts, fmt.Errorf("failed to restore goal %s: %w", g.ID, err)
		}
		counts["goals"]++
	}
	for _, ip := range snap.IntellectualProperty {
		if err := replace(store.DeleteIP, store.AddIP, ip.ID, ip); err != nil {
			return counts, fmt.Errorf("failed to restore intellectual property %s: %w", ip.ID, err)
		}
		counts["intellectual_property"]++
	}
	for _, s := range snap.Skills {
		if err := upsert(store.UpdateSkill, store.AddSkill, s); err != nil {
			return counts, fmt.Errorf("failed to restore skill %s: %w", s.ID, err)
		}
		counts["skills"]++
	}
	for _, t := range snap.Tasks {
		if err := upsert(store.UpdateTask, store.AddTask, t); err != nil {
			return counts, fmt.Errorf("failed to restore task %s: %w", t.ID, err)
		}
		counts["tasks"]++
	}
	for _, o := range snap.DailyOverviews {
		if err := store.SaveDailyOverview(o); err != nil {
			return counts, fmt.Errorf("failed to restore daily overview %s: %w", o.Date, err)
		}
		counts["daily_overviews"]++
	}
	for _, r := range snap.WeeklyReviews {
		if err := store.SaveWeeklyReview(r); err != nil {
			return counts, fmt.Errorf("failed to restore weekly review %s: %w", r.WeekStart, err)
		}
		counts["weekly_reviews"]++
	}
	for _, e := range snap.Productivity {
		if err := store.SaveProductivityEntry(e); err != nil {
			return counts, fmt.Errorf("failed to restore productivity %s: %w", e.Date, err)
		}
		counts["productivity"]++
	}

	existingSessions, err := store.GetAllPomodoroSessions()
	if err != nil {
		return counts, err
	}
	sessionIDs := make(map[string]bool, len(existingSessions))
	for _, p := range existingSessions {
		sessionIDs[p.ID] = true
	}
	for _, p := range snap.Pomodoros {
		if sessionIDs[p.ID] {
			continue
		}
		if err := store.AddPomodoroSession(p); err != nil {
			return counts, fmt.Errorf("failed to restore pomodoro session %s: %w", p.ID, err)
		}
		counts["pomodoros"]++
	}
	return counts, nil
}

// upsert tries an update and falls back to an insert when the record is new.
func upsert[T any](update, add func(T) error, v T) error {
	err := update(v)
	if errors.Is(err, models.ErrNotFound) {
		return add(v)
	}
	return err
}

// replace deletes any existing record before inserting, for collections
// without an update operation.
func replace[T any](del func(string) error, add func(T) error, id string, v T) error {
	if err := del(id); err != nil && !errors.Is(err, models.ErrNotFound) {
		return err
	}
	return add(v)
}

// Copy moves everything from src into dst.
func Copy(src, dst storage.Provider) (Counts, error) {
	snap, err := Collect(src, timeNow())
	if err != nil {
		return nil, err
	}
	return Restore(dst, snap)
}
