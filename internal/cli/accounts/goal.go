package accounts

import (
	"fmt"
	"strings"

	"github.com/julianstephens/ventureboard/internal/cli"
	"github.com/julianstephens/ventureboard/internal/finance"
	"github.com/julianstephens/ventureboard/internal/models"
)

type GoalCmd struct {
	Add        GoalAddCmd        `cmd:"" help:"Add a savings goal."`
	Contribute GoalContributeCmd `cmd:"" help:"Add money towards a goal."`
	List       GoalListCmd       `cmd:"" help:"List goals and their progress."`
	Delete     GoalDeleteCmd     `cmd:"" help:"Delete a goal."`
}

type GoalAddCmd struct {
	Name     string `arg:"" help:"Goal name."`
	Target   string `arg:"" help:"Target amount."`
	Current  string `help:"Amount already saved."`
	Deadline string `help:"Deadline (YYYY-MM-DD)."`
	Category string `help:"Goal category."`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	target, err := cli.ParseAmount(c.Target)
	if err != nil {
		return fmt.Errorf("target: %w", err)
	}
	current, err := cli.ParseOptionalAmount(c.Current)
	if err != nil {
		return fmt.Errorf("current: %w", err)
	}
	deadline := ""
	if c.Deadline != "" {
		if deadline, err = ctx.ResolveDate(c.Deadline); err != nil {
			return err
		}
	}

	goal := models.SavingsGoal{
		ID:            cli.NewID(),
		Name:          strings.TrimSpace(c.Name),
		TargetAmount:  target,
		CurrentAmount: current,
		Deadline:      deadline,
		Category:      c.Category,
	}
	goal.SyncCompletion()
	if err := goal.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddGoal(goal); err != nil {
		return fmt.Errorf("failed to add goal: %w", err)
	}

	ctx.Printf("Added goal: %s, target %s (ID: %s)\n", goal.Name, ctx.Money(target), goal.ID)
	return nil
}

type GoalContributeCmd struct {
	ID     string `arg:"" help:"Goal ID."`
	Amount string `arg:"" help:"Amount to add."`
}

func (c *GoalContributeCmd) Run(ctx *cli.Context) error {
	amount, err := cli.ParseAmount(c.Amount)
	if err != nil {
		return err
	}
	goal, err := ctx.Store.GetGoal(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find goal with ID %s: %w", c.ID, err)
	}
	wasCompleted := goal.IsCompleted
	if err := goal.Contribute(amount); err != nil {
		return err
	}
	if err := ctx.Store.UpdateGoal(goal); err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}

	progress := finance.Goals([]models.SavingsGoal{goal})[0]
	ctx.Printf("Added %s to %s: %s of %s (%d%%)\n",
		ctx.Money(amount), goal.Name, ctx.Money(goal.CurrentAmount), ctx.Money(goal.TargetAmount), progress.Percent)
	if goal.IsCompleted && !wasCompleted {
		ctx.Println("✓ Goal reached!")
	}
	return nil
}

type GoalListCmd struct{}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	goals, err := ctx.Store.GetAllGoals()
	if err != nil {
		return fmt.Errorf("failed to load goals: %w", err)
	}
	if len(goals) == 0 {
		ctx.Println("No goals found.")
		return nil
	}

	for _, p := range finance.Goals(goals) {
		mark := " "
		if p.Goal.IsCompleted {
			mark = "✓"
		}
		deadline := ""
		if p.Goal.Deadline != "" {
			deadline = " by " + p.Goal.Deadline
		}
		ctx.Printf("%s %-20s %3d%%  %s / %s, %s to go%s (ID: %s)\n",
			mark, p.Goal.Name, p.Percent, ctx.Money(p.Goal.CurrentAmount), ctx.Money(p.Goal.TargetAmount),
			ctx.Money(p.Remaining), deadline, p.Goal.ID)
	}
	return nil
}

type GoalDeleteCmd struct {
	ID string `arg:"" help:"Goal ID to delete."`
}

func (c *GoalDeleteCmd) Run(ctx *cli.Context) error {
	goal, err := ctx.Store.GetGoal(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find goal with ID %s: %w", c.ID, err)
	}
	if err := ctx.Store.DeleteGoal(c.ID); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	ctx.Printf("Deleted goal: %s (ID: %s)\n", goal.Name, c.ID)
	return nil
}
