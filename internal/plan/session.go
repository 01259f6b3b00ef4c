package plan

import "time"

// SessionType distinguishes first-time coverage from the revision cycles.
type SessionType string

const (
	TypeNewTopic           SessionType = "new_topic"
	TypeConsolidatedReview SessionType = "consolidated_review"
	TypeSpacedReview       SessionType = "spaced_review"
	TypeReinforcement      SessionType = "reinforcement"
)

// ValidSessionType reports whether t is one of the known session types.
func ValidSessionType(t SessionType) bool {
	switch t {
	case TypeNewTopic, TypeConsolidatedReview, TypeSpacedReview, TypeReinforcement:
		return true
	}
	return false
}

// SessionStatus is the lifecycle state of a scheduled session.
type SessionStatus string

const (
	SessionPending    SessionStatus = "pending"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
)

// Session is one dated study block. SubjectName and TopicDescription are
// copied from the subject/topic at creation time so that later edits to
// either never rewrite history.
type Session struct {
	ID               int64         `db:"id"`
	PlanID           int64         `db:"plan_id"`
	TopicID          *int64        `db:"topic_id"`
	SubjectName      string        `db:"subject_name"`
	TopicDescription string        `db:"topic_description"`
	Date             time.Time     `db:"-"`
	Type             SessionType   `db:"session_type"`
	Cycle            string        `db:"revision_cycle"`
	Status           SessionStatus `db:"status"`
	BatchID          string        `db:"batch_id"`
	CreatedAt        time.Time     `db:"-"`
	UpdatedAt        time.Time     `db:"-"`
}

// Overdue reports whether the session is pending with a date strictly
// before today.
func (s *Session) Overdue(today time.Time) bool {
	return s.Status == SessionPending && s.Date.Before(DateOf(today))
}
