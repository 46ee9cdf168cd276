// Package memory is a Provider kept entirely in process memory. It backs
// tests and previews; nothing survives Close.
package memory

import (
	"sort"
	"sync"

	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/storage/sqlutil"
)

type Store struct {
	mu sync.RWMutex

	settings     *models.Settings
	wallet       []models.WalletEntry
	expenses     map[string]models.Expense
	income       map[string]models.Income
	investments  map[string]models.Investment
	loans        map[string]models.Loan
	goals        map[string]models.SavingsGoal
	ip           map[string]models.IntellectualProperty
	skills       map[string]models.Skill
	tasks        map[string]models.DailyTask
	overviews    map[string]models.DailyOverview // by date
	reviews      map[string]models.WeeklyReview  // by week start
	productivity map[string]models.ProductivityEntry
	pomodoros    []models.PomodoroSession
}

func New() *Store {
	s := &Store{}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.settings = nil
	s.wallet = nil
	s.expenses = make(map[string]models.Expense)
	s.income = make(map[string]models.Income)
	s.investments = make(map[string]models.Investment)
	s.loans = make(map[string]models.Loan)
	s.goals = make(map[string]models.SavingsGoal)
	s.ip = make(map[string]models.IntellectualProperty)
	s.skills = make(map[string]models.Skill)
	s.tasks = make(map[string]models.DailyTask)
	s.overviews = make(map[string]models.DailyOverview)
	s.reviews = make(map[string]models.WeeklyReview)
	s.productivity = make(map[string]models.ProductivityEntry)
	s.pomodoros = nil
}

func (s *Store) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings := models.DefaultSettings()
	if s.settings != nil {
		settings = *s.settings
		models.ApplyDefaultSettings(&settings)
	}
	s.settings = &settings
	return nil
}

func (s *Store) Load() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings == nil {
		return models.ErrNotInitialized
	}
	return nil
}

func (s *Store) Close() error { return nil }

func (s *Store) GetConfigPath() string { return "memory" }

func (s *Store) GetSettings() (models.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings == nil {
		return models.Settings{}, models.ErrNotInitialized
	}
	return *s.settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = &settings
	return nil
}

func (s *Store) AddWalletEntry(e models.WalletEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wallet = append(s.wallet, e)
	return nil
}

// GetWalletEntries returns entries newest first, matching the SQL stores.
func (s *Store) GetWalletEntries() ([]models.WalletEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]models.WalletEntry(nil), s.wallet...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) ResetWallet() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wallet = nil
	return nil
}

func (s *Store) AddExpense(e models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses[e.ID] = e
	return nil
}

func (s *Store) GetExpense(id string) (models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.expenses[id]
	if !ok {
		return models.Expense{}, sqlutil.NotFound("expense", id)
	}
	return e, nil
}

func (s *Store) GetAllExpenses() ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Expense
	for _, v := range s.expenses {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) UpdateExpense(e models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expenses[e.ID]; !ok {
		return sqlutil.NotFound("expense", e.ID)
	}
	s.expenses[e.ID] = e
	return nil
}

func (s *Store) DeleteExpense(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expenses[id]; !ok {
		return sqlutil.NotFound("expense", id)
	}
	delete(s.expenses, id)
	return nil
}

func (s *Store) AddIncome(i models.Income) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.income[i.ID] = i
	return nil
}

func (s *Store) GetAllIncome() ([]models.Income, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Income
	for _, v := range s.income {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) DeleteIncome(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.income[id]; !ok {
		return sqlutil.NotFound("income", id)
	}
	delete(s.income, id)
	return nil
}

func (s *Store) AddInvestment(inv models.Investment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.investments[inv.ID] = inv
	return nil
}

func (s *Store) GetInvestment(id string) (models.Investment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := s.investments[id]
	if !ok {
		return models.Investment{}, sqlutil.NotFound("investment", id)
	}
	return inv, nil
}

func (s *Store) GetAllInvestments() ([]models.Investment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Investment
	for _, v := range s.investments {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) UpdateInvestment(inv models.Investment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.investments[inv.ID]
	if !ok {
		return sqlutil.NotFound("investment", inv.ID)
	}
	inv.CreatedAt = existing.CreatedAt
	s.investments[inv.ID] = inv
	return nil
}

func (s *Store) DeleteInvestment(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.investments[id]; !ok {
		return sqlutil.NotFound("investment", id)
	}
	delete(s.investments, id)
	return nil
}

func (s *Store) AddLoan(l models.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loans[l.ID] = l
	return nil
}

func (s *Store) GetLoan(id string) (models.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.loans[id]
	if !ok {
		return models.Loan{}, sqlutil.NotFound("loan", id)
	}
	return l, nil
}

func (s *Store) GetAllLoans() ([]models.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Loan
	for _, v := range s.loans {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartDate != out[j].StartDate {
			return out[i].StartDate < out[j].StartDate
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) UpdateLoan(l models.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.loans[l.ID]; !ok {
		return sqlutil.NotFound("loan", l.ID)
	}
	s.loans[l.ID] = l
	return nil
}

func (s *Store) DeleteLoan(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.loans[id]; !ok {
		return sqlutil.NotFound("loan", id)
	}
	delete(s.loans, id)
	return nil
}

func (s *Store) AddGoal(g models.SavingsGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g.SyncCompletion()
	s.goals[g.ID] = g
	return nil
}

func (s *Store) GetGoal(id string) (models.SavingsGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.goals[id]
	if !ok {
		return models.SavingsGoal{}, sqlutil.NotFound("goal", id)
	}
	return g, nil
}

func (s *Store) GetAllGoals() ([]models.SavingsGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.SavingsGoal
	for _, v := range s.goals {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsCompleted != b.IsCompleted {
			return !a.IsCompleted
		}
		if a.Deadline != b.Deadline {
			return a.Deadline < b.Deadline
		}
		return a.Name < b.Name
	})
	return out, nil
}

func (s *Store) UpdateGoal(g models.SavingsGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.goals[g.ID]; !ok {
		return sqlutil.NotFound("goal", g.ID)
	}
	g.SyncCompletion()
	s.goals[g.ID] = g
	return nil
}

func (s *Store) DeleteGoal(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.goals[id]; !ok {
		return sqlutil.NotFound("goal", id)
	}
	delete(s.goals, id)
	return nil
}

func (s *Store) AddIP(ip models.IntellectualProperty) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ip[ip.ID] = ip
	return nil
}

func (s *Store) GetAllIP() ([]models.IntellectualProperty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.IntellectualProperty
	for _, v := range s.ip {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) DeleteIP(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ip[id]; !ok {
		return sqlutil.NotFound("intellectual property", id)
	}
	delete(s.ip, id)
	return nil
}

func (s *Store) AddSkill(sk models.Skill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skills[sk.ID] = sk
	return nil
}

func (s *Store) GetSkill(id string) (models.Skill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sk, ok := s.skills[id]
	if !ok {
		return models.Skill{}, sqlutil.NotFound("skill", id)
	}
	return sk, nil
}

func (s *Store) GetAllSkills() ([]models.Skill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Skill
	for _, v := range s.skills {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) UpdateSkill(sk models.Skill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.skills[sk.ID]; !ok {
		return sqlutil.NotFound("skill", sk.ID)
	}
	s.skills[sk.ID] = sk
	return nil
}

func (s *Store) DeleteSkill(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.skills[id]; !ok {
		return sqlutil.NotFound("skill", id)
	}
	delete(s.skills, id)
	return nil
}

func (s *Store) AddTask(t models.DailyTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[t.ID] = t
	return nil
}

func (s *Store) GetTask(id string) (models.DailyTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return models.DailyTask{}, sqlutil.NotFound("task", id)
	}
	return t, nil
}

func (s *Store) GetAllTasks() ([]models.DailyTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.DailyTask
	for _, v := range s.tasks {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) UpdateTask(t models.DailyTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.tasks[t.ID]
	if !ok {
		return sqlutil.NotFound("task", t.ID)
	}
	t.CreatedAt = existing.CreatedAt
	s.tasks[t.ID] = t
	return nil
}

func (s *Store) DeleteTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return sqlutil.NotFound("task", id)
	}
	delete(s.tasks, id)
	return nil
}

func (s *Store) SaveDailyOverview(o models.DailyOverview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.overviews[o.Date]; ok {
		o.ID = existing.ID
	}
	s.overviews[o.Date] = o
	return nil
}

func (s *Store) GetDailyOverview(date string) (models.DailyOverview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.overviews[date]
	if !ok {
		return models.DailyOverview{}, sqlutil.NotFound("daily overview", date)
	}
	return o, nil
}

func (s *Store) GetAllDailyOverviews() ([]models.DailyOverview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.DailyOverview, 0, len(s.overviews))
	for _, o := range s.overviews {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (s *Store) SaveWeeklyReview(r models.WeeklyReview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.reviews[r.WeekStart]; ok {
		r.ID = existing.ID
	}
	s.reviews[r.WeekStart] = r
	return nil
}

func (s *Store) GetWeeklyReview(weekStart string) (models.WeeklyReview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reviews[weekStart]
	if !ok {
		return models.WeeklyReview{}, sqlutil.NotFound("weekly review", weekStart)
	}
	return r, nil
}

func (s *Store) GetAllWeeklyReviews() ([]models.WeeklyReview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.WeeklyReview, 0, len(s.reviews))
	for _, r := range s.reviews {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart > out[j].WeekStart })
	return out, nil
}

func (s *Store) SaveProductivityEntry(e models.ProductivityEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.productivity[e.Date] = e
	return nil
}

func (s *Store) GetProductivityEntries() ([]models.ProductivityEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ProductivityEntry, 0, len(s.productivity))
	for _, e := range s.productivity {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (s *Store) AddPomodoroSession(p models.PomodoroSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pomodoros = append(s.pomodoros, p)
	return nil
}

func (s *Store) GetAllPomodoroSessions() ([]models.PomodoroSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]models.PomodoroSession(nil), s.pomodoros...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out, nil
}
