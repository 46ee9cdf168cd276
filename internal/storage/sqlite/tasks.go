package sqlite

import (
	"database/sql"
	"errors"

	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/storage/sqlutil"
)

const taskColumns = `id, title, is_everyday, date, start_date, end_date, completed, created_at`

func scanTask(row scanner) (models.DailyTask, error) {
	var t models.DailyTask
	var createdAt string
	err := row.Scan(&t.ID, &t.Title, &t.IsEveryday, &t.Date, &t.StartDate, &t.EndDate, &t.Completed, &createdAt)
	if err != nil {
		return models.DailyTask{}, err
	}
	if t.CreatedAt, err = sqlutil.ParseTime(createdAt); err != nil {
		return models.DailyTask{}, err
	}
	return t, nil
}

func (s *Store) AddTask(t models.DailyTask) error {
	_, err := s.db.Exec(`
		INSERT INTO daily_tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.IsEveryday, t.Date, t.StartDate, t.EndDate, t.Completed, sqlutil.FormatTime(t.CreatedAt),
	)
	return err
}

func (s *Store) GetTask(id string) (models.DailyTask, error) {
	t, err := scanTask(s.db.QueryRow(`SELECT `+taskColumns+` FROM daily_tasks WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.DailyTask{}, sqlutil.NotFound("task", id)
	}
	return t, err
}

func (s *Store) GetAllTasks() ([]models.DailyTask, error) {
	rows, err := s.db.Query(`SELECT ` + taskColumns + ` FROM daily_tasks ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.DailyTask
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) UpdateTask(t models.DailyTask) error {
	res, err := s.db.Exec(`
		UPDATE daily_tasks
		SET title = ?, is_everyday = ?, date = ?, start_date = ?, end_date = ?, completed = ?
		WHERE id = ?`,
		t.Title, t.IsEveryday, t.Date, t.StartDate, t.EndDate, t.Completed, t.ID,
	)
	if err != nil {
		return err
	}
	return sqlutil.ExpectAffected(res, "task", t.ID)
}

func (s *Store) DeleteTask(id string) error {
	res, err := s.db.Exec("DELETE FROM daily_tasks WHERE id = ?", id)
	if err != nil {
		return err
	}
	return sqlutil.ExpectAffected(res, "task", id)
}

func (s *Store) SaveProductivityEntry(e models.ProductivityEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO productivity_entries (date, total_tasks, completed_tasks, productivity_percentage)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (date) DO UPDATE SET
			total_tasks = excluded.total_tasks,
			completed_tasks = excluded.completed_tasks,
			productivity_percentage = excluded.productivity_percentage`,
		e.Date, e.TotalTasks, e.CompletedTasks, e.ProductivityPercentage,
	)
	return err
}

func (s *Store) GetProductivityEntries() ([]models.ProductivityEntry, error) {
	rows, err := s.db.Query(`
		SELECT date, total_tasks, completed_tasks, productivity_percentage
		FROM productivity_entries ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.ProductivityEntry
	for rows.Next() {
		var e models.ProductivityEntry
		if err := rows.Scan(&e.Date, &e.TotalTasks, &e.CompletedTasks, &e.ProductivityPercentage); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) AddPomodoroSession(p models.PomodoroSession) error {
	_, err := s.db.Exec(`
		INSERT INTO pomodoro_sessions (id, label, duration_min, started_at, completed)
		VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Label, p.DurationMin, sqlutil.FormatTime(p.StartedAt), p.Completed,
	)
	return err
}

func (s *Store) GetAllPomodoroSessions() ([]models.PomodoroSession, error) {
	rows, err := s.db.Query(`
		SELECT id, label, duration_min, started_at, completed
		FROM pomodoro_sessions ORDER BY started_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.PomodoroSession
	for rows.Next() {
		var p models.PomodoroSession
		var startedAt string
		if err := rows.Scan(&p.ID, &p.Label, &p.DurationMin, &startedAt, &p.Completed); err != nil {
			return nil, err
		}
		if p.StartedAt, err = sqlutil.ParseTime(startedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, p)
	}
	return sessions, rows.Err()
}
