package schedule

import (
	"sort"
	"time"

	"github.com/carlosvictorodrigues/Editaliza-sub011/internal/plan"
)

// cycleKey identifies one revision pass over one topic. Regeneration must
// never produce two sessions for the same key.
type cycleKey struct {
	topicID int64
	cycle   string
}

// original is a new-topic study session (persisted or just placed) that
// revision cycles hang off.
type original struct {
	topicID          int64
	subjectName      string
	topicDescription string
	priority         int
	date             time.Time
}

// RevisionDemand derives follow-up demand from every new-topic session of
// the plan — the ones just placed in this pass plus the ones already
// persisted. Each configured cycle yields one item with the cycle's
// session type and a date floor of originalDate + offset; the packer may
// push it later when the exact day is full, never earlier.
//
// Cycles whose target date lands after the exam are not emitted (there is
// nothing to revise for once the exam has happened), and (topic, cycle)
// pairs that already exist as sessions are skipped so regeneration stays
// idempotent.
//
// The returned items are ordered cycle-first (earlier offsets before
// later ones), then by target date and topic id. The caller appends them
// after all new-topic demand: first-time coverage wins a capacity crunch.
func RevisionDemand(p *plan.Plan, placedNew []placement, existing []plan.Session, priorityOf map[int64]int) []demandItem {
	have := make(map[cycleKey]bool)
	for _, s := range existing {
		if s.TopicID != nil && s.Cycle != "" {
			have[cycleKey{topicID: *s.TopicID, cycle: s.Cycle}] = true
		}
	}

	var originals []original
	for _, pl := range placedNew {
		if pl.Item.Type != plan.TypeNewTopic {
			continue
		}
		originals = append(originals, original{
			topicID:          pl.Item.TopicID,
			subjectName:      pl.Item.SubjectName,
			topicDescription: pl.Item.TopicDescription,
			priority:         pl.Item.Priority,
			date:             pl.Date,
		})
	}
	for _, s := range existing {
		if s.Type != plan.TypeNewTopic || s.TopicID == nil {
			continue
		}
		originals = append(originals, original{
			topicID:          *s.TopicID,
			subjectName:      s.SubjectName,
			topicDescription: s.TopicDescription,
			priority:         priorityOf[*s.TopicID],
			date:             plan.DateOf(s.Date),
		})
	}

	type revItem struct {
		item       demandItem
		cycleIndex int
	}
	var items []revItem

	for _, o := range originals {
		for ci, cy := range p.Revision.Cycles {
			target := o.date.AddDate(0, 0, cy.OffsetDays)
			if target.After(p.ExamDate) {
				continue
			}
			key := cycleKey{topicID: o.topicID, cycle: cy.Name}
			if have[key] {
				continue
			}
			have[key] = true
			items = append(items, revItem{
				cycleIndex: ci,
				item: demandItem{
					TopicID:          o.topicID,
					SubjectName:      o.subjectName,
					TopicDescription: o.topicDescription,
					Priority:         o.priority,
					Type:             cy.Type,
					Cycle:            cy.Name,
					NotBefore:        target,
				},
			})
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].cycleIndex != items[j].cycleIndex {
			return items[i].cycleIndex < items[j].cycleIndex
		}
		if !items[i].item.NotBefore.Equal(items[j].item.NotBefore) {
			return items[i].item.NotBefore.Before(items[j].item.NotBefore)
		}
		return items[i].item.TopicID < items[j].item.TopicID
	})

	out := make([]demandItem, len(items))
	for i, it := range items {
		out[i] = it.item
	}
	return out
}
