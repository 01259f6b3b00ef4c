package schedule

import (
	"sort"

	"github.com/carlosvictorodrigues/Editaliza-sub011/internal/plan"
)

// subjectWeightScale keeps subject weight dominant over topic weight: the
// maximum topic-weight spread (4) can never overcome one unit of subject
// weight (10).
const subjectWeightScale = 10

// CombinedPriority is the ranking key for a topic inside its subject.
func CombinedPriority(subjectWeight, topicWeight int) int {
	return subjectWeight*subjectWeightScale + topicWeight
}

// RankedTopic is a pending topic annotated with its subject and priority.
type RankedTopic struct {
	Topic    plan.Topic
	Subject  plan.Subject
	Priority int
}

// RankTopics produces a strict total order over the pending topics of a
// plan: combined priority descending, ties broken by ascending topic id
// so regenerated plans are reproducible. Pure function, no side effects.
func RankTopics(subjects []plan.Subject, topics []plan.Topic) []RankedTopic {
	bySubject := make(map[int64]plan.Subject, len(subjects))
	for _, s := range subjects {
		bySubject[s.ID] = s
	}

	ranked := make([]RankedTopic, 0, len(topics))
	for _, t := range topics {
		if !t.Pending() {
			continue
		}
		subj, ok := bySubject[t.SubjectID]
		if !ok {
			continue
		}
		ranked = append(ranked, RankedTopic{
			Topic:    t,
			Subject:  subj,
			Priority: CombinedPriority(subj.Weight, t.Weight),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Priority != ranked[j].Priority {
			return ranked[i].Priority > ranked[j].Priority
		}
		return ranked[i].Topic.ID < ranked[j].Topic.ID
	})
	return ranked
}
