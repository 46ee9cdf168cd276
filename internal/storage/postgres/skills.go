package postgres

import (
	"database/sql"
	"errors"

	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/storage/sqlutil"
)

const skillColumns = `id, name, category, level, time_spent_today, total_hours, is_currently_learning, last_updated`

func scanSkill(row scanner) (models.Skill, error) {
	var sk models.Skill
	var lastUpdated string
	err := row.Scan(&sk.ID, &sk.Name, &sk.Category, &sk.Level, &sk.TimeSpentToday, &sk.TotalHours,
		&sk.IsCurrentlyLearning, &lastUpdated)
	if err != nil {
		return models.Skill{}, err
	}
	if sk.LastUpdated, err = sqlutil.ParseTime(lastUpdated); err != nil {
		return models.Skill{}, err
	}
	return sk, nil
}

func (s *Store) AddSkill(sk models.Skill) error {
	_, err := s.db.Exec(`
		INSERT INTO skills (`+skillColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		sk.ID, sk.Name, sk.Category, sk.Level, sk.TimeSpentToday, sk.TotalHours,
		sk.IsCurrentlyLearning, sqlutil.FormatTime(sk.LastUpdated),
	)
	return err
}

func (s *Store) GetSkill(id string) (models.Skill, error) {
	sk, err := scanSkill(s.db.QueryRow(`SELECT `+skillColumns+` FROM skills WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Skill{}, sqlutil.NotFound("skill", id)
	}
	return sk, err
}

func (s *Store) GetAllSkills() ([]models.Skill, error) {
	rows, err := s.db.Query(`SELECT ` + skillColumns + ` FROM skills ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skills []models.Skill
	for rows.Next() {
		sk, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		skills = append(skills, sk)
	}
	return skills, rows.Err()
}

func (s *Store) UpdateSkill(sk models.Skill) error {
	res, err := s.db.Exec(`
		UPDATE skills
		SET name = $1, category = $2, level = $3, time_spent_today = $4, total_hours = $5,
		    is_currently_learning = $6, last_updated = $7
		WHERE id = $8`,
		sk.Name, sk.Category, sk.Level, sk.TimeSpentToday, sk.TotalHours,
		sk.IsCurrentlyLearning, sqlutil.FormatTime(sk.LastUpdated), sk.ID,
	)
	if err != nil {
		return err
	}
	return sqlutil.ExpectAffected(res, "skill", sk.ID)
}

func (s *Store) DeleteSkill(id string) error {
	res, err := s.db.Exec("DELETE FROM skills WHERE id = $1", id)
	if err != nil {
		return err
	}
	return sqlutil.ExpectAffected(res, "skill", id)
}
