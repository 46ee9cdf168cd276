package postgres

import (
	"database/sql"
	"errors"

	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/storage/sqlutil"
)

const overviewColumns = `id, date, wins, challenges, gratitude, tomorrow_focus, mood, updated_at`

func scanOverview(row scanner) (models.DailyOverview, error) {
	var o models.DailyOverview
	var updatedAt string
	err := row.Scan(&o.ID, &o.Date, &o.Wins, &o.Challenges, &o.Gratitude, &o.TomorrowFocus, &o.Mood, &updatedAt)
	if err != nil {
		return models.DailyOverview{}, err
	}
	if o.UpdatedAt, err = sqlutil.ParseTime(updatedAt); err != nil {
		return models.DailyOverview{}, err
	}
	return o, nil
}

// SaveDailyOverview inserts or replaces the overview for o.Date. The id of an
// existing row is kept.
func (s *Store) SaveDailyOverview(o models.DailyOverview) error {
	_, err := s.db.Exec(`
		INSERT INTO daily_overviews (`+overviewColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (date) DO UPDATE SET
			wins = excluded.wins,
			challenges = excluded.challenges,
			gratitude = excluded.gratitude,
			tomorrow_focus = excluded.tomorrow_focus,
			mood = excluded.mood,
			updated_at = excluded.updated_at`,
		o.ID, o.Date, o.Wins, o.Challenges, o.Gratitude, o.TomorrowFocus, o.Mood, sqlutil.FormatTime(o.UpdatedAt),
	)
	return err
}

func (s *Store) GetDailyOverview(date string) (models.DailyOverview, error) {
	o, err := scanOverview(s.db.QueryRow(`SELECT `+overviewColumns+` FROM daily_overviews WHERE date = $1`, date))
	if errors.Is(err, sql.ErrNoRows) {
		return models.DailyOverview{}, sqlutil.NotFound("daily overview", date)
	}
	return o, err
}

func (s *Store) GetAllDailyOverviews() ([]models.DailyOverview, error) {
	rows, err := s.db.Query(`SELECT ` + overviewColumns + ` FROM daily_overviews ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overviews []models.DailyOverview
	for rows.Next() {
		o, err := scanOverview(rows)
		if err != nil {
			return nil, err
		}
		overviews = append(overviews, o)
	}
	return overviews, rows.Err()
}

const reviewColumns = `id, week_start, accomplishments, lessons, next_week_goals, rating, updated_at`

func scanReview(row scanner) (models.WeeklyReview, error) {
	var r models.WeeklyReview
	var updatedAt string
	err := row.Scan(&r.ID, &r.WeekStart, &r.Accomplishments, &r.Lessons, &r.NextWeekGoals, &r.Rating, &updatedAt)
	if err != nil {
		return models.WeeklyReview{}, err
	}
	if r.UpdatedAt, err = sqlutil.ParseTime(updatedAt); err != nil {
		return models.WeeklyReview{}, err
	}
	return r, nil
}

// SaveWeeklyReview inserts or replaces the review for r.WeekStart.
func (s *Store) SaveWeeklyReview(r models.WeeklyReview) error {
	_, err := s.db.Exec(`
		INSERT INTO weekly_reviews (`+reviewColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (week_start) DO UPDATE SET
			accomplishments = excluded.accomplishments,
			lessons = excluded.lessons,
			next_week_goals = excluded.next_week_goals,
			rating = excluded.rating,
			updated_at = excluded.updated_at`,
		r.ID, r.WeekStart, r.Accomplishments, r.Lessons, r.NextWeekGoals, r.Rating, sqlutil.FormatTime(r.UpdatedAt),
	)
	return err
}

func (s *Store) GetWeeklyReview(weekStart string) (models.WeeklyReview, error) {
	r, err := scanReview(s.db.QueryRow(`SELECT `+reviewColumns+` FROM weekly_reviews WHERE week_start = $1`, weekStart))
	if errors.Is(err, sql.ErrNoRows) {
		return models.WeeklyReview{}, sqlutil.NotFound("weekly review", weekStart)
	}
	return r, err
}

func (s *Store) GetAllWeeklyReviews() ([]models.WeeklyReview, error) {
	rows, err := s.db.Query(`SELECT ` + reviewColumns + ` FROM weekly_reviews ORDER BY week_start DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.WeeklyReview
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}
