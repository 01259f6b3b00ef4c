package plan

import "time"

// ReasonCapacityExceeded is the only exclusion reason the engine emits today.
const ReasonCapacityExceeded = "capacity-exceeded"

// Exclusion is the permanent record of a topic dropped for lack of
// capacity before the exam date. Append-only, never mutated.
type Exclusion struct {
	ID        int64     `db:"id"`
	PlanID    int64     `db:"plan_id"`
	TopicID   int64     `db:"topic_id"`
	Reason    string    `db:"reason"`
	CreatedAt time.Time `db:"-"`
}
