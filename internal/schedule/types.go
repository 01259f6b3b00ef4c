package schedule

import (
	"time"

	"github.com/carlosvictorodrigues/Editaliza-sub011/internal/plan"
)

// demandItem is one unit of work awaiting a calendar slot: either a topic
// needing first-time coverage, a derived revision pass, or an existing
// session being repositioned (SessionID > 0).
type demandItem struct {
	TopicID          int64
	SubjectName      string
	TopicDescription string
	Priority         int
	Type             plan.SessionType
	Cycle            string

	// NotBefore is the earliest legal date for the item. Zero means any
	// day. Revision items are never placed before their target date.
	NotBefore time.Time

	// SessionID links the item to an already-persisted session during
	// overdue replanning. Zero for fresh demand.
	SessionID int64
}

// placement is a demand item bound to a concrete date by the packer.
type placement struct {
	Item demandItem
	Date time.Time
}

// GenerateResult is the full output of one Generate pass: the sessions to
// insert and the exclusions recorded by the final-stretch reducer.
type GenerateResult struct {
	BatchID          string
	Sessions         []plan.Session
	Exclusions       []plan.Exclusion
	DroppedRevisions int
}

// Empty reports whether the pass produced nothing to persist.
func (r *GenerateResult) Empty() bool {
	return len(r.Sessions) == 0 && len(r.Exclusions) == 0
}

// ReplanResult is the output of one overdue-replanning pass.
type ReplanResult struct {
	RescheduledCount  int
	SessionsUpdated   []plan.Session
	RemovedSessionIDs []int64
	Exclusions        []plan.Exclusion
}

// NoOp reports whether nothing was overdue; the postponement counter is
// untouched in that case.
func (r *ReplanResult) NoOp() bool {
	return r.RescheduledCount == 0 && len(r.RemovedSessionIDs) == 0
}
