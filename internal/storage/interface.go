package storage

import "github.com/julianstephens/ventureboard/internal/models"

// Provider is the persistence boundary. Lookups of missing records return an
// error wrapping models.ErrNotFound.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Wallet entries are append-only; ResetWallet removes all of them.
	AddWalletEntry(models.WalletEntry) error
	GetWalletEntries() ([]models.WalletEntry, error)
	ResetWallet() error

	// Expenses
	AddExpense(models.Expense) error
	GetExpense(id string) (models.Expense, error)
	GetAllExpenses() ([]models.Expense, error)
	UpdateExpense(models.Expense) error
	DeleteExpense(id string) error

	// Income
	AddIncome(models.Income) error
	GetAllIncome() ([]models.Income, error)
	DeleteIncome(id string) error

	// Investments
	AddInvestment(models.Investment) error
	GetInvestment(id string) (models.Investment, error)
	GetAllInvestments() ([]models.Investment, error)
	UpdateInvestment(models.Investment) error
	DeleteInvestment(id string) error

	// Loans
	AddLoan(models.Loan) error
	GetLoan(id string) (models.Loan, error)
	GetAllLoans() ([]models.Loan, error)
	UpdateLoan(models.Loan) error
	DeleteLoan(id string) error

	// Savings goals
	AddGoal(models.SavingsGoal) error
	GetGoal(id string) (models.SavingsGoal, error)
	GetAllGoals() ([]models.SavingsGoal, error)
	UpdateGoal(models.SavingsGoal) error
	DeleteGoal(id string) error

	// Intellectual property
	AddIP(models.IntellectualProperty) error
	GetAllIP() ([]models.IntellectualProperty, error)
	DeleteIP(id string) error

	// Skills
	AddSkill(models.Skill) error
	GetSkill(id string) (models.Skill, error)
	GetAllSkills() ([]models.Skill, error)
	UpdateSkill(models.Skill) error
	DeleteSkill(id string) error

	// Daily tasks
	AddTask(models.DailyTask) error
	GetTask(id string) (models.DailyTask, error)
	GetAllTasks() ([]models.DailyTask, error)
	UpdateTask(models.DailyTask) error
	DeleteTask(id string) error

	// Reflections are upserted by date / week start.
	SaveDailyOverview(models.DailyOverview) error
	GetDailyOverview(date string) (models.DailyOverview, error)
	GetAllDailyOverviews() ([]models.DailyOverview, error)
	SaveWeeklyReview(models.WeeklyReview) error
	GetWeeklyReview(weekStart string) (models.WeeklyReview, error)
	GetAllWeeklyReviews() ([]models.WeeklyReview, error)

	// Productivity entries are a cache keyed by date, returned newest first.
	SaveProductivityEntry(models.ProductivityEntry) error
	GetProductivityEntries() ([]models.ProductivityEntry, error)

	// Pomodoro sessions
	AddPomodoroSession(models.PomodoroSession) error
	GetAllPomodoroSessions() ([]models.PomodoroSession, error)

	// Utils
	GetConfigPath() string
}
