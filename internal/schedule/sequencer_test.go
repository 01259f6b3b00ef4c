package schedule

import (
	"testing"

	"github.com/carlosvictorodrigues/Editaliza-sub011/internal/plan"
)

// rankedFor builds a ranked list of n topics per subject, in priority
// order within each subject, interleaved the way RankTopics would emit
// them (priority descending overall does not matter to Sequence, only
// per-subject order does).
func rankedFor(subjects []plan.Subject, perSubject int) []RankedTopic {
	var out []RankedTopic
	id := int64(1)
	for _, s := range subjects {
		for i := 0; i < perSubject; i++ {
			out = append(out, RankedTopic{
				Topic:    plan.Topic{ID: id, SubjectID: s.ID, Weight: 3, Status: plan.TopicPending},
				Subject:  s,
				Priority: CombinedPriority(s.Weight, 3),
			})
			id++
		}
	}
	return out
}

func TestSequence_WeightRatioOverFirstCycle(t *testing.T) {
	subjects := []plan.Subject{
		{ID: 1, Weight: 5, Name: "A"},
		{ID: 2, Weight: 1, Name: "B"},
	}
	seq := Sequence(rankedFor(subjects, 10))

	if len(seq) != 20 {
		t.Fatalf("len(seq) = %d, want 20", len(seq))
	}
	// Weights 5:1 -> the first 6 picks split 5 for A, 1 for B.
	countA := 0
	for _, rt := range seq[:6] {
		if rt.Subject.ID == 1 {
			countA++
		}
	}
	if countA != 5 {
		t.Errorf("subject A picks in first 6 = %d, want 5", countA)
	}
	if seq[5].Subject.ID != 2 {
		t.Errorf("seq[5].Subject.ID = %d, want 2", seq[5].Subject.ID)
	}
}

func TestSequence_EveryTopicExactlyOnce(t *testing.T) {
	subjects := []plan.Subject{
		{ID: 1, Weight: 5},
		{ID: 2, Weight: 3},
		{ID: 3, Weight: 1},
	}
	seq := Sequence(rankedFor(subjects, 7))

	seen := make(map[int64]int)
	for _, rt := range seq {
		seen[rt.Topic.ID]++
	}
	if len(seen) != 21 {
		t.Fatalf("distinct topics = %d, want 21", len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("topic %d appeared %d times, want 1", id, n)
		}
	}
}

func TestSequence_ExhaustedSubjectDoesNotBlockOthers(t *testing.T) {
	subjects := []plan.Subject{
		{ID: 1, Weight: 5, Name: "A"},
		{ID: 2, Weight: 2, Name: "B"},
	}
	// A has only 2 topics; B has 8. Once A runs dry, B keeps refilling.
	ranked := append(rankedFor([]plan.Subject{subjects[0]}, 2), rankedFor([]plan.Subject{subjects[1]}, 8)...)
	seq := Sequence(ranked)

	if len(seq) != 10 {
		t.Fatalf("len(seq) = %d, want 10", len(seq))
	}
	countB := 0
	for _, rt := range seq {
		if rt.Subject.ID == 2 {
			countB++
		}
	}
	if countB != 8 {
		t.Errorf("subject B picks = %d, want 8", countB)
	}
}

func TestSequence_PreservesPerSubjectOrder(t *testing.T) {
	subjects := []plan.Subject{{ID: 1, Weight: 2}}
	ranked := rankedFor(subjects, 5)
	seq := Sequence(ranked)

	for i := 1; i < len(seq); i++ {
		if seq[i].Topic.ID <= seq[i-1].Topic.ID {
			t.Fatalf("per-subject order broken at %d: %d after %d", i, seq[i].Topic.ID, seq[i-1].Topic.ID)
		}
	}
}

func TestSequence_SubjectBelowMinWeightStillDrains(t *testing.T) {
	// A weight outside the 1-5 range is rejected upstream, but Sequence
	// itself must still terminate if one slips through: a zero-weight
	// queue would otherwise refill to zero credits and loop forever.
	subjects := []plan.Subject{
		{ID: 1, Weight: 0, Name: "A"},
		{ID: 2, Weight: 3, Name: "B"},
	}
	seq := Sequence(rankedFor(subjects, 4))

	if len(seq) != 8 {
		t.Fatalf("len(seq) = %d, want 8", len(seq))
	}
	countA := 0
	for _, rt := range seq {
		if rt.Subject.ID == 1 {
			countA++
		}
	}
	if countA != 4 {
		t.Errorf("zero-weight subject picks = %d, want 4", countA)
	}
}

func TestSequence_Empty(t *testing.T) {
	if got := Sequence(nil); len(got) != 0 {
		t.Errorf("Sequence(nil) returned %d items, want 0", len(got))
	}
}
