package sqlite

import (
	"database/sql"
	"errors"

	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/storage/sqlutil"
)

func scanInvestment(row scanner) (models.Investment, error) {
	var inv models.Investment
	var kind, details, createdAt string
	if err := row.Scan(&inv.ID, &inv.Name, &kind, &details, &createdAt); err != nil {
		return models.Investment{}, err
	}
	var err error
	if inv.Asset, err = sqlutil.DecodeAsset(kind, details); err != nil {
		return models.Investment{}, err
	}
	if inv.CreatedAt, err = sqlutil.ParseTime(createdAt); err != nil {
		return models.Investment{}, err
	}
	return inv, nil
}

func (s *Store) AddInvestment(inv models.Investment) error {
	kind, details, err := sqlutil.EncodeAsset(inv.Asset)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO investments (id, name, kind, details, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		inv.ID, inv.Name, kind, details, sqlutil.FormatTime(inv.CreatedAt),
	)
	return err
}

func (s *Store) GetInvestment(id string) (models.Investment, error) {
	row := s.db.QueryRow(`SELECT id, name, kind, details, created_at FROM investments WHERE id = ?`, id)
	inv, err := scanInvestment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Investment{}, sqlutil.NotFound("investment", id)
	}
	return inv, err
}

func (s *Store) GetAllInvestments() ([]models.Investment, error) {
	rows, err := s.db.Query(`SELECT id, name, kind, details, created_at FROM investments ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var investments []models.Investment
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, err
		}
		investments = append(investments, inv)
	}
	return investments, rows.Err()
}

func (s *Store) UpdateInvestment(inv models.Investment) error {
	kind, details, err := sqlutil.EncodeAsset(inv.Asset)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`UPDATE investments SET name = ?, kind = ?, details = ? WHERE id = ?`,
		inv.Name, kind, details, inv.ID)
	if err != nil {
		return err
	}
	return sqlutil.ExpectAffected(res, "investment", inv.ID)
}

func (s *Store) DeleteInvestment(id string) error {
	res, err := s.db.Exec("DELETE FROM investments WHERE id = ?", id)
	if err != nil {
		return err
	}
	return sqlutil.ExpectAffected(res, "investment", id)
}

const loanColumns = `id, type, lender, principal, interest_rate, emi, due_date, start_date, remaining_balance, total_paid`

func scanLoan(row scanner) (models.Loan, error) {
	var l models.Loan
	err := row.Scan(&l.ID, &l.Type, &l.Lender, &l.Principal, &l.InterestRate, &l.EMI,
		&l.DueDate, &l.StartDate, &l.RemainingBalance, &l.TotalPaid)
	return l, err
}

func (s *Store) AddLoan(l models.Loan) error {
	_, err := s.db.Exec(`
		INSERT INTO loans (`+loanColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.Type, l.Lender, l.Principal, l.InterestRate, l.EMI, l.DueDate, l.StartDate,
		l.RemainingBalance, l.TotalPaid,
	)
	return err
}

func (s *Store) GetLoan(id string) (models.Loan, error) {
	l, err := scanLoan(s.db.QueryRow(`SELECT `+loanColumns+` FROM loans WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Loan{}, sqlutil.NotFound("loan", id)
	}
	return l, err
}

func (s *Store) GetAllLoans() ([]models.Loan, error) {
	rows, err := s.db.Query(`SELECT ` + loanColumns + ` FROM loans ORDER BY start_date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []models.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

func (s *Store) UpdateLoan(l models.Loan) error {
	res, err := s.db.Exec(`
		UPDATE loans
		SET type = ?, lender = ?, principal = ?, interest_rate = ?, emi = ?, due_date = ?, start_date = ?,
		    remaining_balance = ?, total_paid = ?
		WHERE id = ?`,
		l.Type, l.Lender, l.Principal, l.InterestRate, l.EMI, l.DueDate, l.StartDate,
		l.RemainingBalance, l.TotalPaid, l.ID,
	)
	if err != nil {
		return err
	}
	return sqlutil.ExpectAffected(res, "loan", l.ID)
}

func (s *Store) DeleteLoan(id string) error {
	res, err := s.db.Exec("DELETE FROM loans WHERE id = ?", id)
	if err != nil {
		return err
	}
	return sqlutil.ExpectAffected(res, "loan", id)
}

const goalColumns = `id, name, target_amount, current_amount, deadline, category, is_completed`

func scanGoal(row scanner) (models.SavingsGoal, error) {
	var g models.SavingsGoal
	err := row.Scan(&g.ID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.Deadline, &g.Category, &g.IsCompleted)
	return g, err
}

// AddGoal stores the goal with IsCompleted derived from its amounts.
func (s *Store) AddGoal(g models.SavingsGoal) error {
	g.SyncCompletion()
	_, err := s.db.Exec(`
		INSERT INTO savings_goals (`+goalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Name, g.TargetAmount, g.CurrentAmount, g.Deadline, g.Category, g.IsCompleted,
	)
	return err
}

func (s *Store) GetGoal(id string) (models.SavingsGoal, error) {
	g, err := scanGoal(s.db.QueryRow(`SELECT `+goalColumns+` FROM savings_goals WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.SavingsGoal{}, sqlutil.NotFound("goal", id)
	}
	return g, err
}

func (s *Store) GetAllGoals() ([]models.SavingsGoal, error) {
	rows, err := s.db.Query(`SELECT ` + goalColumns + ` FROM savings_goals ORDER BY is_completed, deadline, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.SavingsGoal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *Store) UpdateGoal(g models.SavingsGoal) error {
	g.SyncCompletion()
	res, err := s.db.Exec(`
		UPDATE savings_goals
		SET name = ?, target_amount = ?, current_amount = ?, deadline = ?, category = ?, is_completed = ?
		WHERE id = ?`,
		g.Name, g.TargetAmount, g.CurrentAmount, g.Deadline, g.Category, g.IsCompleted, g.ID,
	)
	if err != nil {
		return err
	}
	return sqlutil.ExpectAffected(res, "goal", g.ID)
}

func (s *Store) DeleteGoal(id string) error {
	res, err := s.db.Exec("DELETE FROM savings_goals WHERE id = ?", id)
	if err != nil {
		return err
	}
	return sqlutil.ExpectAffected(res, "goal", id)
}

func (s *Store) AddIP(ip models.IntellectualProperty) error {
	_, err := s.db.Exec(`
		INSERT INTO intellectual_property (id, name, purpose, market_value, cost_to_buy, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		ip.ID, ip.Name, ip.Purpose, ip.MarketValue, ip.CostToBuy, sqlutil.FormatTime(ip.CreatedAt),
	)
	return err
}

func (s *Store) GetAllIP() ([]models.IntellectualProperty, error) {
	rows, err := s.db.Query(`
		SELECT id, name, purpose, market_value, cost_to_buy, created_at
		FROM intellectual_property ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ips []models.IntellectualProperty
	for rows.Next() {
		var ip models.IntellectualProperty
		var createdAt string
		if err := rows.Scan(&ip.ID, &ip.Name, &ip.Purpose, &ip.MarketValue, &ip.CostToBuy, &createdAt); err != nil {
			return nil, err
		}
		if ip.CreatedAt, err = sqlutil.ParseTime(createdAt); err != nil {
			return nil, err
		}
		ips = append(ips, ip)
	}
	return ips, rows.Err()
}

func (s *Store) DeleteIP(id string) error {
	res, err := s.db.Exec("DELETE FROM intellectual_property WHERE id = ?", id)
	if err != nil {
		return err
	}
	return sqlutil.ExpectAffected(res, "intellectual property", id)
}
