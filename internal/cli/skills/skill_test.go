package skills

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/ventureboard/internal/cli"
	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer, *time.Time, func()) {
	tempDir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(tempDir, "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	settings.Timezone = "UTC"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	now := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
	out := &bytes.Buffer{}
	ctx := &cli.Context{
		Store: store,
		Out:   out,
		Now:   func() time.Time { return now },
	}
	return ctx, out, &now, func() { store.Close() }
}

func onlySkill(t *testing.T, ctx *cli.Context) models.Skill {
	t.Helper()
	skills, err := ctx.Store.GetAllSkills()
	if err != nil {
		t.Fatalf("failed to get skills: %v", err)
	}
	if len(skills) != 1 {
		t.Fatalf("expected 1 skill, got %d", len(skills))
	}
	return skills[0]
}

func TestSkillAdd(t *testing.T) {
	ctx, _, _, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&SkillAddCmd{Name: "Go", Category: "programming", Level: 40}).Run(ctx); err != nil {
		t.Fatalf("skill add failed: %v", err)
	}
	skill := onlySkill(t, ctx)
	if !skill.IsCurrentlyLearning || skill.Level != 40 || skill.LastUpdated.IsZero() {
		t.Errorf("unexpected skill: %+v", skill)
	}

	if err := (&SkillAddCmd{Name: "Piano", Level: 101}).Run(ctx); err == nil {
		t.Error("expected error for level above 100")
	}
}

func TestSkillLogResetsTodayOnNewDay(t *testing.T) {
	ctx, out, now, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&SkillAddCmd{Name: "Go"}).Run(ctx); err != nil {
		t.Fatalf("skill add failed: %v", err)
	}
	id := onlySkill(t, ctx).ID

	if err := (&SkillLogCmd{ID: id, Hours: 1.5}).Run(ctx); err != nil {
		t.Fatalf("skill log failed: %v", err)
	}
	if err := (&SkillLogCmd{ID: id, Hours: 1}).Run(ctx); err != nil {
		t.Fatalf("skill log failed: %v", err)
	}
	skill := onlySkill(t, ctx)
	if skill.TimeSpentToday != 2.5 || skill.TotalHours != 2.5 {
		t.Errorf("expected 2.5h today and total, got %v and %v", skill.TimeSpentToday, skill.TotalHours)
	}

	*now = now.AddDate(0, 0, 1)
	level := 55
	if err := (&SkillLogCmd{ID: id, Hours: 2, Level: &level}).Run(ctx); err != nil {
		t.Fatalf("skill log failed: %v", err)
	}
	skill = onlySkill(t, ctx)
	if skill.TimeSpentToday != 2 || skill.TotalHours != 4.5 || skill.Level != 55 {
		t.Errorf("unexpected skill after next-day log: %+v", skill)
	}
	if !strings.Contains(out.String(), "2.0h today, 4.5h total") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	if err := (&SkillLogCmd{ID: id, Hours: 0}).Run(ctx); err == nil {
		t.Error("expected error for zero hours")
	}
}

func TestSkillEditAndList(t *testing.T) {
	ctx, out, now, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&SkillAddCmd{Name: "Go"}).Run(ctx); err != nil {
		t.Fatalf("skill add failed: %v", err)
	}
	if err := (&SkillAddCmd{Name: "Chess", NotLearning: true}).Run(ctx); err != nil {
		t.Fatalf("skill add failed: %v", err)
	}

	*now = now.AddDate(0, 0, 4)
	out.Reset()
	if err := (&SkillListCmd{}).Run(ctx); err != nil {
		t.Fatalf("skill list failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "4 days idle") {
		t.Errorf("expected idle warning for Go:\n%s", got)
	}
	if strings.Count(got, "days idle") != 1 || !strings.Contains(got, "[paused]") {
		t.Errorf("paused skills should not warn:\n%s", got)
	}

	skills, _ := ctx.Store.GetAllSkills()
	var goID string
	for _, s := range skills {
		if s.Name == "Go" {
			goID = s.ID
		}
	}
	learning := false
	if err := (&SkillEditCmd{ID: goID, Name: "Golang", Learning: &learning}).Run(ctx); err != nil {
		t.Fatalf("skill edit failed: %v", err)
	}
	edited, err := ctx.Store.GetSkill(goID)
	if err != nil {
		t.Fatalf("failed to get skill: %v", err)
	}
	if edited.Name != "Golang" || edited.IsCurrentlyLearning {
		t.Errorf("edit not applied: %+v", edited)
	}

	if err := (&SkillDeleteCmd{ID: goID}).Run(ctx); err != nil {
		t.Fatalf("skill delete failed: %v", err)
	}
	if err := (&SkillDeleteCmd{ID: goID}).Run(ctx); err == nil {
		t.Error("expected error deleting missing skill")
	}
}
