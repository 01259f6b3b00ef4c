package plan

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// WeekdayMinutes maps each weekday to the study minutes available on it.
// Indexed by time.Weekday (Sunday = 0).
type WeekdayMinutes [7]int

// Minutes returns the budget for the weekday of the given date.
func (w WeekdayMinutes) Minutes(day time.Time) int {
	return w[int(day.Weekday())]
}

// IsZero reports whether every weekday has a zero budget.
func (w WeekdayMinutes) IsZero() bool {
	for _, m := range w {
		if m != 0 {
			return false
		}
	}
	return true
}

// Value implements driver.Valuer, storing the budget as a JSON array.
func (w WeekdayMinutes) Value() (driver.Value, error) {
	b, err := json.Marshal([7]int(w))
	if err != nil {
		return nil, fmt.Errorf("marshal weekday minutes: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (w *WeekdayMinutes) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case string:
		b = []byte(v)
	case []byte:
		b = v
	case nil:
		*w = WeekdayMinutes{}
		return nil
	default:
		return fmt.Errorf("scan weekday minutes: unsupported type %T", src)
	}
	return json.Unmarshal(b, (*[7]int)(w))
}

// Plan is a study plan bounded by a fixed exam date.
type Plan struct {
	ID             int64          `db:"id"`
	UserID         string         `db:"user_id"`
	Name           string         `db:"name"`
	ExamDate       time.Time      `db:"-"`
	SessionMinutes int            `db:"session_minutes"`
	FinalStretch   bool           `db:"final_stretch"`
	Postponements  int            `db:"postponements"`
	StudyMinutes   WeekdayMinutes `db:"study_minutes"`
	Revision       RevisionConfig `db:"revision_config"`
	CreatedAt      time.Time      `db:"-"`
	UpdatedAt      time.Time      `db:"-"`
}

// SessionsAllowed returns how many whole sessions fit into the budget of
// the given day. Partial sessions are never counted.
func (p *Plan) SessionsAllowed(day time.Time) int {
	if p.SessionMinutes <= 0 {
		return 0
	}
	return p.StudyMinutes.Minutes(day) / p.SessionMinutes
}

// Validate checks the plan settings the engine depends on. It mirrors the
// checks performed before any scheduling pass: a plan that fails here is
// rejected without touching the calendar.
func (p *Plan) Validate(today time.Time) error {
	if p.SessionMinutes <= 0 {
		return fmt.Errorf("session duration must be positive, got %d", p.SessionMinutes)
	}
	if p.StudyMinutes.IsZero() {
		return fmt.Errorf("weekly study budget is entirely zero")
	}
	if p.ExamDate.Before(DateOf(today)) {
		return fmt.Errorf("exam date %s is in the past", p.ExamDate.Format(DateLayout))
	}
	if err := p.Revision.Validate(); err != nil {
		return fmt.Errorf("revision config: %w", err)
	}
	return nil
}

// DateLayout is the canonical date format used across the engine and store.
const DateLayout = "2006-01-02"

// DateOf truncates a timestamp to its calendar date at UTC midnight.
// All scheduling arithmetic works on dates normalized this way.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
