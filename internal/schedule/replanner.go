package schedule

import (
	"sort"
	"time"

	"github.com/carlosvictorodrigues/Editaliza-sub011/internal/plan"
)

// OverdueSessions returns the pending sessions whose date has passed
// without completion, oldest first (ties by id) — the original relative
// order they were meant to run in.
func OverdueSessions(sessions []plan.Session, today time.Time) []plan.Session {
	var overdue []plan.Session
	for _, s := range sessions {
		if s.Overdue(today) {
			overdue = append(overdue, s)
		}
	}
	sort.Slice(overdue, func(i, j int) bool {
		if !overdue[i].Date.Equal(overdue[j].Date) {
			return overdue[i].Date.Before(overdue[j].Date)
		}
		return overdue[i].ID < overdue[j].ID
	})
	return overdue
}

// replanDemand turns overdue sessions into repositioning demand. The
// items carry the session identity so the packer's placements update the
// existing rows instead of inserting new ones. Overdue work is
// already-committed work, so it goes ahead of any fresh demand and
// carries no date floor: the earliest free slot from today wins.
func replanDemand(overdue []plan.Session, priorityOf map[int64]int) []demandItem {
	items := make([]demandItem, 0, len(overdue))
	for _, s := range overdue {
		it := demandItem{
			SubjectName:      s.SubjectName,
			TopicDescription: s.TopicDescription,
			Type:             s.Type,
			Cycle:            s.Cycle,
			SessionID:        s.ID,
		}
		if s.TopicID != nil {
			it.TopicID = *s.TopicID
			it.Priority = priorityOf[*s.TopicID]
		}
		items = append(items, it)
	}
	return items
}
