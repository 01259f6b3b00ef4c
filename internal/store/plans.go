package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/carlosvictorodrigues/Editaliza-sub011/internal/plan"
)

type planRow struct {
	ID             int64               `db:"id"`
	UserID         string              `db:"user_id"`
	Name           string              `db:"name"`
	ExamDate       string              `db:"exam_date"`
	SessionMinutes int                 `db:"session_minutes"`
	FinalStretch   bool                `db:"final_stretch"`
	Postponements  int                 `db:"postponements"`
	StudyMinutes   plan.WeekdayMinutes `db:"study_minutes"`
	Revision       plan.RevisionConfig `db:"revision_config"`
}

const planColumns = `id, user_id, name, exam_date, session_minutes, final_stretch, postponements, study_minutes, revision_config`

func (r planRow) toDomain() (plan.Plan, error) {
	exam, err := time.ParseInLocation(plan.DateLayout, r.ExamDate, time.UTC)
	if err != nil {
		return plan.Plan{}, fmt.Errorf("parse exam date %q: %w", r.ExamDate, err)
	}
	return plan.Plan{
		ID:             r.ID,
		UserID:         r.UserID,
		Name:           r.Name,
		ExamDate:       exam,
		SessionMinutes: r.SessionMinutes,
		FinalStretch:   r.FinalStretch,
		Postponements:  r.Postponements,
		StudyMinutes:   r.StudyMinutes,
		Revision:       r.Revision,
	}, nil
}

// Plan returns one plan, or ErrNotFound.
func (s *Store) Plan(ctx context.Context, id int64) (*plan.Plan, error) {
	var row planRow
	err := s.db.GetContext(ctx, &row, `SELECT `+planColumns+` FROM plans WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select plan: %w", err)
	}
	p, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Plans returns every plan, ordered by id.
func (s *Store) Plans(ctx context.Context) ([]plan.Plan, error) {
	var rows []planRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT `+planColumns+` FROM plans ORDER BY id`); err != nil {
		return nil, fmt.Errorf("select plans: %w", err)
	}
	plans := make([]plan.Plan, 0, len(rows))
	for _, r := range rows {
		p, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, nil
}

// CreatePlan inserts a plan and fills in its id.
func (s *Store) CreatePlan(ctx context.Context, p *plan.Plan) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO plans (user_id, name, exam_date, session_minutes, final_stretch, study_minutes, revision_config)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.Name, plan.DateOf(p.ExamDate).Format(plan.DateLayout),
		p.SessionMinutes, p.FinalStretch, p.StudyMinutes, p.Revision)
	if err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("plan id: %w", err)
	}
	p.ID = id
	return nil
}
