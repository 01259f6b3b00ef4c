package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/carlosvictorodrigues/Editaliza-sub011/internal/plan"
)

// Subjects returns the plan's subjects in position order.
func (s *Store) Subjects(ctx context.Context, planID int64) ([]plan.Subject, error) {
	var subjects []plan.Subject
	err := s.db.SelectContext(ctx, &subjects,
		`SELECT id, plan_id, name, weight, position FROM subjects WHERE plan_id = ? ORDER BY position, id`,
		planID)
	if err != nil {
		return nil, fmt.Errorf("select subjects: %w", err)
	}
	return subjects, nil
}

type topicRow struct {
	ID          int64            `db:"id"`
	SubjectID   int64            `db:"subject_id"`
	Description string           `db:"description"`
	Weight      int              `db:"weight"`
	Status      plan.TopicStatus `db:"status"`
	CompletedAt sql.NullString   `db:"completed_at"`
	Position    int              `db:"position"`
}

// Topics returns every topic of the plan's subjects in position order.
func (s *Store) Topics(ctx context.Context, planID int64) ([]plan.Topic, error) {
	var rows []topicRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT t.id, t.subject_id, t.description, t.weight, t.status, t.completed_at, t.position
		 FROM topics t
		 JOIN subjects s ON s.id = t.subject_id
		 WHERE s.plan_id = ?
		 ORDER BY t.position, t.id`,
		planID)
	if err != nil {
		return nil, fmt.Errorf("select topics: %w", err)
	}

	topics := make([]plan.Topic, 0, len(rows))
	for _, r := range rows {
		t := plan.Topic{
			ID:          r.ID,
			SubjectID:   r.SubjectID,
			Description: r.Description,
			Weight:      r.Weight,
			Status:      r.Status,
			Position:    r.Position,
		}
		if r.CompletedAt.Valid {
			done, err := time.ParseInLocation(plan.DateLayout, r.CompletedAt.String, time.UTC)
			if err != nil {
				return nil, fmt.Errorf("parse completed_at %q: %w", r.CompletedAt.String, err)
			}
			t.CompletedAt = &done
		}
		topics = append(topics, t)
	}
	return topics, nil
}

// CreateSubject inserts a subject and fills in its id.
func (s *Store) CreateSubject(ctx context.Context, sub *plan.Subject) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO subjects (plan_id, name, weight, position) VALUES (?, ?, ?, ?)`,
		sub.PlanID, sub.Name, sub.Weight, sub.Position)
	if err != nil {
		return fmt.Errorf("insert subject: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("subject id: %w", err)
	}
	sub.ID = id
	return nil
}

// CreateTopic inserts a topic and fills in its id.
func (s *Store) CreateTopic(ctx context.Context, t *plan.Topic) error {
	status := t.Status
	if status == "" {
		status = plan.TopicPending
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO topics (subject_id, description, weight, status, position) VALUES (?, ?, ?, ?, ?)`,
		t.SubjectID, t.Description, t.Weight, status, t.Position)
	if err != nil {
		return fmt.Errorf("insert topic: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("topic id: %w", err)
	}
	t.ID = id
	t.Status = status
	return nil
}

// CompleteTopic marks a topic completed with the given date. One-way:
// completing a topic twice is an error.
func (s *Store) CompleteTopic(ctx context.Context, topicID int64, at time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE topics SET status = ?, completed_at = ? WHERE id = ? AND status = ?`,
		plan.TopicCompleted, plan.DateOf(at).Format(plan.DateLayout), topicID, plan.TopicPending)
	if err != nil {
		return fmt.Errorf("complete topic: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("complete topic: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("topic %d: %w or already completed", topicID, ErrNotFound)
	}
	return nil
}
