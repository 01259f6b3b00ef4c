package schedule

import "sort"

// subjectQueue is one subject's pending topics in ranked order, plus the
// credit counter driving the round robin.
type subjectQueue struct {
	subjectID int64
	weight    int
	credits   int
	topics    []RankedTopic
}

// Sequence converts the ranked topic set into a single visiting order
// that interleaves subjects proportionally to their weight. Exhausting
// one subject before the next would starve low-weight subjects entirely
// once capacity runs out, so each subject queue carries credits equal to
// its weight: every cycle a subject pops up to that many topics, then all
// non-empty queues refill. Over any window the pick counts converge to
// the subject weight ratio, and every topic appears exactly once.
func Sequence(ranked []RankedTopic) []RankedTopic {
	queues := buildQueues(ranked)
	out := make([]RankedTopic, 0, len(ranked))

	for {
		progressed := false
		for _, q := range queues {
			for q.credits >= 1 && len(q.topics) > 0 {
				out = append(out, q.topics[0])
				q.topics = q.topics[1:]
				q.credits--
				progressed = true
			}
		}
		if !progressed {
			remaining := false
			for _, q := range queues {
				if len(q.topics) > 0 {
					q.credits = q.weight
					remaining = true
				}
			}
			if !remaining {
				return out
			}
		}
	}
}

// buildQueues groups the ranked topics by subject, preserving each
// group's internal order, and sorts the queues weight-descending with
// subject id as tiebreaker.
func buildQueues(ranked []RankedTopic) []*subjectQueue {
	index := make(map[int64]*subjectQueue)
	var queues []*subjectQueue
	for _, rt := range ranked {
		q, ok := index[rt.Subject.ID]
		if !ok {
			// A weight below 1 would refill to zero credits and stall the
			// round robin; every queue earns at least one pick per cycle.
			w := rt.Subject.Weight
			if w < 1 {
				w = 1
			}
			q = &subjectQueue{
				subjectID: rt.Subject.ID,
				weight:    w,
				credits:   w,
			}
			index[rt.Subject.ID] = q
			queues = append(queues, q)
		}
		q.topics = append(q.topics, rt)
	}

	sort.Slice(queues, func(i, j int) bool {
		if queues[i].weight != queues[j].weight {
			return queues[i].weight > queues[j].weight
		}
		return queues[i].subjectID < queues[j].subjectID
	})
	return queues
}
