package plan

import "time"

// Weight bounds for subjects and topics (5 = most important).
const (
	MinWeight = 1
	MaxWeight = 5
)

// Subject is a weighted area of study inside a plan.
type Subject struct {
	ID       int64  `db:"id"`
	PlanID   int64  `db:"plan_id"`
	Name     string `db:"name"`
	Weight   int    `db:"weight"`
	Position int    `db:"position"`
}

// TopicStatus is the lifecycle state of a topic.
type TopicStatus string

const (
	TopicPending   TopicStatus = "pending"
	TopicCompleted TopicStatus = "completed"
)

// Topic is a single unit of study content belonging to a subject.
// A topic transitions to Completed exactly once and never reverts.
type Topic struct {
	ID          int64       `db:"id"`
	SubjectID   int64       `db:"subject_id"`
	Description string      `db:"description"`
	Weight      int         `db:"weight"`
	Status      TopicStatus `db:"status"`
	CompletedAt *time.Time  `db:"-"`
	Position    int         `db:"position"`
}

// Pending reports whether the topic still needs first-time coverage.
func (t *Topic) Pending() bool {
	return t.Status == TopicPending
}
