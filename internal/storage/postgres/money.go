package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/storage/sqlutil"
)

func (s *Store) AddWalletEntry(entry models.WalletEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO wallet_entries (id, type, source, amount, date, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, string(entry.Type), entry.Source, entry.Amount, entry.Date, entry.Description,
		sqlutil.FormatTime(entry.CreatedAt),
	)
	return err
}

func (s *Store) GetWalletEntries() ([]models.WalletEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, type, source, amount, date, description, created_at
		FROM wallet_entries ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.WalletEntry
	for rows.Next() {
		var e models.WalletEntry
		var typ, createdAt string
		if err := rows.Scan(&e.ID, &typ, &e.Source, &e.Amount, &e.Date, &e.Description, &createdAt); err != nil {
			return nil, err
		}
		e.Type = models.WalletEntryType(typ)
		if e.CreatedAt, err = sqlutil.ParseTime(createdAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) ResetWallet() error {
	_, err := s.db.Exec("DELETE FROM wallet_entries")
	return err
}

const expenseColumns = `id, category, tags, amount, date, is_recurring, includes_gst, description`

func scanExpense(row scanner) (models.Expense, error) {
	var e models.Expense
	var tags string
	if err := row.Scan(&e.ID, &e.Category, &tags, &e.Amount, &e.Date, &e.IsRecurring, &e.IncludesGST, &e.Description); err != nil {
		return models.Expense{}, err
	}
	var err error
	if e.Tags, err = sqlutil.DecodeStrings(tags); err != nil {
		return models.Expense{}, err
	}
	return e, nil
}

func (s *Store) AddExpense(e models.Expense) error {
	tags, err := sqlutil.EncodeStrings(e.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO expenses (`+expenseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.Category, tags, e.Amount, e.Date, e.IsRecurring, e.IncludesGST, e.Description,
	)
	return err
}

func (s *Store) GetExpense(id string) (models.Expense, error) {
	row := s.db.QueryRow(`SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Expense{}, sqlutil.NotFound("expense", id)
	}
	return e, err
}

func (s *Store) GetAllExpenses() ([]models.Expense, error) {
	rows, err := s.db.Query(`SELECT ` + expenseColumns + ` FROM expenses ORDER BY date DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (s *Store) UpdateExpense(e models.Expense) error {
	tags, err := sqlutil.EncodeStrings(e.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}
	res, err := s.db.Exec(`
		UPDATE expenses
		SET category = $1, tags = $2, amount = $3, date = $4, is_recurring = $5, includes_gst = $6, description = $7
		WHERE id = $8`,
		e.Category, tags, e.Amount, e.Date, e.IsRecurring, e.IncludesGST, e.Description, e.ID,
	)
	if err != nil {
		return err
	}
	return sqlutil.ExpectAffected(res, "expense", e.ID)
}

func (s *Store) DeleteExpense(id string) error {
	res, err := s.db.Exec("DELETE FROM expenses WHERE id = $1", id)
	if err != nil {
		return err
	}
	return sqlutil.ExpectAffected(res, "expense", id)
}

func (s *Store) AddIncome(i models.Income) error {
	_, err := s.db.Exec(`
		INSERT INTO income (id, source, amount, date, is_recurring, description)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		i.ID, i.Source, i.Amount, i.Date, i.IsRecurring, i.Description,
	)
	return err
}

func (s *Store) GetAllIncome() ([]models.Income, error) {
	rows, err := s.db.Query(`
		SELECT id, source, amount, date, is_recurring, description
		FROM income ORDER BY date DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var income []models.Income
	for rows.Next() {
		var i models.Income
		if err := rows.Scan(&i.ID, &i.Source, &i.Amount, &i.Date, &i.IsRecurring, &i.Description); err != nil {
			return nil, err
		}
		income = append(income, i)
	}
	return income, rows.Err()
}

func (s *Store) DeleteIncome(id string) error {
	res, err := s.db.Exec("DELETE FROM income WHERE id = $1", id)
	if err != nil {
		return err
	}
	return sqlutil.ExpectAffected(res, "income", id)
}
