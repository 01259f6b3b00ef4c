package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/carlosvictorodrigues/Editaliza-sub011/internal/plan"
)

type sessionRow struct {
	ID               int64              `db:"id"`
	PlanID           int64              `db:"plan_id"`
	TopicID          sql.NullInt64      `db:"topic_id"`
	SubjectName      string             `db:"subject_name"`
	TopicDescription string             `db:"topic_description"`
	SessionDate      string             `db:"session_date"`
	Type             plan.SessionType   `db:"session_type"`
	Cycle            string             `db:"revision_cycle"`
	Status           plan.SessionStatus `db:"status"`
	BatchID          string             `db:"batch_id"`
}

func (r sessionRow) toDomain() (plan.Session, error) {
	date, err := time.ParseInLocation(plan.DateLayout, r.SessionDate, time.UTC)
	if err != nil {
		return plan.Session{}, fmt.Errorf("parse session date %q: %w", r.SessionDate, err)
	}
	s := plan.Session{
		ID:               r.ID,
		PlanID:           r.PlanID,
		SubjectName:      r.SubjectName,
		TopicDescription: r.TopicDescription,
		Date:             date,
		Type:             r.Type,
		Cycle:            r.Cycle,
		Status:           r.Status,
		BatchID:          r.BatchID,
	}
	if r.TopicID.Valid {
		id := r.TopicID.Int64
		s.TopicID = &id
	}
	return s, nil
}

// Sessions returns every session of the plan, date ascending.
func (s *Store) Sessions(ctx context.Context, planID int64) ([]plan.Session, error) {
	var rows []sessionRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, plan_id, topic_id, subject_name, topic_description, session_date,
		        session_type, revision_cycle, status, batch_id
		 FROM sessions WHERE plan_id = ? ORDER BY session_date, id`,
		planID)
	if err != nil {
		return nil, fmt.Errorf("select sessions: %w", err)
	}

	sessions := make([]plan.Session, 0, len(rows))
	for _, r := range rows {
		sess, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, nil
}

// CommitGenerate inserts the sessions and exclusions produced by one
// Generate pass. The whole batch commits or none of it does.
func (s *Store) CommitGenerate(ctx context.Context, planID int64, sessions []plan.Session, exclusions []plan.Exclusion) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		for _, sess := range sessions {
			var topicID any
			if sess.TopicID != nil {
				topicID = *sess.TopicID
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO sessions (plan_id, topic_id, subject_name, topic_description,
				                       session_date, session_type, revision_cycle, status, batch_id)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				planID, topicID, sess.SubjectName, sess.TopicDescription,
				plan.DateOf(sess.Date).Format(plan.DateLayout), sess.Type, sess.Cycle, sess.Status, sess.BatchID)
			if err != nil {
				return fmt.Errorf("insert session: %w", err)
			}
		}
		return insertExclusions(ctx, tx, exclusions)
	})
}

// CommitReplan applies one replan pass: date updates for repositioned
// sessions, removal of sessions excluded in final-stretch mode, exclusion
// rows, and a single +1 bump of the plan's postponement counter.
func (s *Store) CommitReplan(ctx context.Context, planID int64, updated []plan.Session, removedIDs []int64, exclusions []plan.Exclusion) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		for _, sess := range updated {
			_, err := tx.ExecContext(ctx,
				`UPDATE sessions SET session_date = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND plan_id = ?`,
				plan.DateOf(sess.Date).Format(plan.DateLayout), sess.ID, planID)
			if err != nil {
				return fmt.Errorf("update session %d: %w", sess.ID, err)
			}
		}
		for _, id := range removedIDs {
			if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = ? AND plan_id = ?`, id, planID); err != nil {
				return fmt.Errorf("delete session %d: %w", id, err)
			}
		}
		if err := insertExclusions(ctx, tx, exclusions); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`UPDATE plans SET postponements = postponements + 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			planID)
		if err != nil {
			return fmt.Errorf("bump postponements: %w", err)
		}
		return nil
	})
}

func insertExclusions(ctx context.Context, tx *sqlx.Tx, exclusions []plan.Exclusion) error {
	for _, ex := range exclusions {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO exclusions (plan_id, topic_id, reason) VALUES (?, ?, ?)`,
			ex.PlanID, ex.TopicID, ex.Reason)
		if err != nil {
			return fmt.Errorf("insert exclusion: %w", err)
		}
	}
	return nil
}

// Exclusions returns the plan's exclusion records, oldest first.
func (s *Store) Exclusions(ctx context.Context, planID int64) ([]plan.Exclusion, error) {
	var out []plan.Exclusion
	err := s.db.SelectContext(ctx, &out,
		`SELECT id, plan_id, topic_id, reason FROM exclusions WHERE plan_id = ? ORDER BY id`,
		planID)
	if err != nil {
		return nil, fmt.Errorf("select exclusions: %w", err)
	}
	return out, nil
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
