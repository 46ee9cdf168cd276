package skills

import (
	"fmt"
	"strings"

	"github.com/julianstephens/ventureboard/internal/cli"
	"github.com/julianstephens/ventureboard/internal/constants"
	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/utils"
)

type SkillCmd struct {
	Add    SkillAddCmd    `cmd:"" help:"Add a skill."`
	Log    SkillLogCmd    `cmd:"" help:"Log practice hours for a skill."`
	Edit   SkillEditCmd   `cmd:"" help:"Edit a skill."`
	List   SkillListCmd   `cmd:"" help:"List skills."`
	Delete SkillDeleteCmd `cmd:"" help:"Delete a skill."`
}

type SkillAddCmd struct {
	Name        string `arg:"" help:"Skill name."`
	Category    string `help:"Skill category."`
	Level       int    `help:"Current level (0-100)." default:"0"`
	NotLearning bool   `help:"Track the skill without inactivity reminders."`
}

func (c *SkillAddCmd) Run(ctx *cli.Context) error {
	now, err := ctx.LocalNow()
	if err != nil {
		return err
	}

	skill := models.Skill{
		ID:                  cli.NewID(),
		Name:                strings.TrimSpace(c.Name),
		Category:            c.Category,
		Level:               c.Level,
		IsCurrentlyLearning: !c.NotLearning,
		LastUpdated:         now,
	}
	if err := skill.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddSkill(skill); err != nil {
		return fmt.Errorf("failed to add skill: %w", err)
	}

	ctx.Printf("Added skill: %s (ID: %s)\n", skill.Name, skill.ID)
	return nil
}

type SkillLogCmd struct {
	ID    string  `arg:"" help:"Skill ID."`
	Hours float64 `arg:"" help:"Hours practiced."`
	Level *int    `help:"New level (0-100)."`
}

func (c *SkillLogCmd) Run(ctx *cli.Context) error {
	skill, err := ctx.Store.GetSkill(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find skill with ID %s: %w", c.ID, err)
	}
	now, err := ctx.LocalNow()
	if err != nil {
		return err
	}

	if err := skill.LogPractice(c.Hours, now); err != nil {
		return err
	}
	if c.Level != nil {
		skill.Level = *c.Level
	}
	if err := skill.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.UpdateSkill(skill); err != nil {
		return fmt.Errorf("failed to update skill: %w", err)
	}

	ctx.Printf("Logged %.1fh of %s: %.1fh today, %.1fh total\n", c.Hours, skill.Name, skill.TimeSpentToday, skill.TotalHours)
	return nil
}

type SkillEditCmd struct {
	ID       string  `arg:"" help:"Skill ID to edit."`
	Name     string  `help:"New name."`
	Category *string `help:"New category."`
	Level    *int    `help:"New level (0-100)."`
	Learning *bool   `help:"Whether the skill is actively being learned (true/false)."`
}

func (c *SkillEditCmd) Run(ctx *cli.Context) error {
	skill, err := ctx.Store.GetSkill(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find skill with ID %s: %w", c.ID, err)
	}

	if c.Name != "" {
		skill.Name = strings.TrimSpace(c.Name)
	}
	if c.Category != nil {
		skill.Category = *c.Category
	}
	if c.Level != nil {
		skill.Level = *c.Level
	}
	if c.Learning != nil {
		skill.IsCurrentlyLearning = *c.Learning
	}
	if err := skill.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.UpdateSkill(skill); err != nil {
		return fmt.Errorf("failed to update skill: %w", err)
	}

	ctx.Printf("Updated skill: %s\n", skill.Name)
	return nil
}

type SkillListCmd struct{}

func (c *SkillListCmd) Run(ctx *cli.Context) error {
	skills, err := ctx.Store.GetAllSkills()
	if err != nil {
		return fmt.Errorf("failed to load skills: %w", err)
	}
	if len(skills) == 0 {
		ctx.Println("No skills found.")
		return nil
	}
	now, err := ctx.LocalNow()
	if err != nil {
		return err
	}

	for _, s := range skills {
		last := "never"
		if !s.LastUpdated.IsZero() {
			idle := utils.DaysBetween(s.LastUpdated.In(now.Location()), now)
			last = s.LastUpdated.In(now.Location()).Format(constants.DateFormat)
			if s.IsCurrentlyLearning && idle >= constants.SkillIdleDays {
				last += fmt.Sprintf(" ⚠ %d days idle", idle)
			}
		}
		learning := ""
		if !s.IsCurrentlyLearning {
			learning = " [paused]"
		}
		ctx.Printf("%-20s level %3d  %6.1fh total  last %s%s (ID: %s)\n",
			s.Name, s.Level, s.TotalHours, last, learning, s.ID)
	}
	return nil
}

type SkillDeleteCmd struct {
	ID string `arg:"" help:"Skill ID to delete."`
}

func (c *SkillDeleteCmd) Run(ctx *cli.Context) error {
	skill, err := ctx.Store.GetSkill(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find skill with ID %s: %w", c.ID, err)
	}
	if err := ctx.Store.DeleteSkill(c.ID); err != nil {
		return fmt.Errorf("failed to delete skill: %w", err)
	}

	ctx.Printf("Deleted skill: %s (ID: %s)\n", skill.Name, c.ID)
	return nil
}
