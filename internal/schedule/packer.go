package schedule

import (
	"time"

	"github.com/carlosvictorodrigues/Editaliza-sub011/internal/plan"
)

// Packer walks the calendar day by day and binds demand items to dates
// without exceeding any day's minute budget or the exam date. The walk is
// stateful: slots consumed by one Pack call stay consumed for the next,
// which is how revision demand is layered on top of new-topic demand
// inside a single operation.
type Packer struct {
	plan  *plan.Plan
	start time.Time
	used  map[time.Time]int
}

// NewPacker prepares a packing pass starting at the given date (never in
// the past relative to today). Existing sessions dated today or later
// seed the per-day ledger so a regeneration can not double-book a day
// that already holds persisted sessions.
func NewPacker(p *plan.Plan, today time.Time, existing []plan.Session) *Packer {
	start := plan.DateOf(today)
	pk := &Packer{
		plan:  p,
		start: start,
		used:  make(map[time.Time]int),
	}
	for _, s := range existing {
		d := plan.DateOf(s.Date)
		if !d.Before(start) {
			pk.used[d]++
		}
	}
	return pk
}

// freeSlots returns how many sessions can still be placed on the day.
func (pk *Packer) freeSlots(day time.Time) int {
	n := pk.plan.SessionsAllowed(day) - pk.used[day]
	if n < 0 {
		return 0
	}
	return n
}

// RemainingCapacity counts every free slot from the start date through
// the exam date.
func (pk *Packer) RemainingCapacity() int {
	total := 0
	for day := pk.start; !day.After(pk.plan.ExamDate); day = day.AddDate(0, 0, 1) {
		total += pk.freeSlots(day)
	}
	return total
}

// Pack assigns dates to as many items as fit on or before the exam date,
// preserving the sequence order. An item with a NotBefore date is skipped
// on earlier days but keeps its place in line; a day whose budget holds
// less than one session is skipped entirely. Items still unplaced once
// the walk passes the exam date come back as leftover — the only way
// infeasibility is detected.
func (pk *Packer) Pack(items []demandItem) (placed []placement, leftover []demandItem) {
	remaining := make([]demandItem, len(items))
	copy(remaining, items)

	for day := pk.start; !day.After(pk.plan.ExamDate) && len(remaining) > 0; day = day.AddDate(0, 0, 1) {
		for pk.freeSlots(day) > 0 {
			idx := -1
			for i, it := range remaining {
				if it.NotBefore.IsZero() || !day.Before(it.NotBefore) {
					idx = i
					break
				}
			}
			if idx < 0 {
				break
			}
			placed = append(placed, placement{Item: remaining[idx], Date: day})
			pk.used[day]++
			remaining = append(remaining[:idx], remaining[idx+1:]...)
		}
	}
	return placed, remaining
}
