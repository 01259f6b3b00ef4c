package schedule

import (
	"testing"

	"github.com/carlosvictorodrigues/Editaliza-sub011/internal/plan"
)

func TestCombinedPriority_SubjectWeightDominates(t *testing.T) {
	// Any topic in a weight-5 subject outranks any topic in a weight-4
	// subject: 5*10+1 = 51 > 4*10+5 = 45.
	weakTopicStrongSubject := CombinedPriority(5, 1)
	strongTopicWeakSubject := CombinedPriority(4, 5)
	if weakTopicStrongSubject <= strongTopicWeakSubject {
		t.Errorf("CombinedPriority(5,1) = %d, want > CombinedPriority(4,5) = %d",
			weakTopicStrongSubject, strongTopicWeakSubject)
	}
}

func TestRankTopics_OrdersByPriorityThenID(t *testing.T) {
	subjects := []plan.Subject{
		{ID: 1, Weight: 5, Name: "Law"},
		{ID: 2, Weight: 4, Name: "IT"},
	}
	topics := []plan.Topic{
		{ID: 10, SubjectID: 2, Weight: 5, Status: plan.TopicPending},
		{ID: 11, SubjectID: 1, Weight: 1, Status: plan.TopicPending},
		{ID: 12, SubjectID: 1, Weight: 1, Status: plan.TopicPending},
	}

	ranked := RankTopics(subjects, topics)
	if len(ranked) != 3 {
		t.Fatalf("len(ranked) = %d, want 3", len(ranked))
	}
	// Both weight-5-subject topics first despite topic weight 1, tie by id.
	wantIDs := []int64{11, 12, 10}
	for i, want := range wantIDs {
		if ranked[i].Topic.ID != want {
			t.Errorf("ranked[%d].Topic.ID = %d, want %d", i, ranked[i].Topic.ID, want)
		}
	}
}

func TestRankTopics_SkipsCompleted(t *testing.T) {
	subjects := []plan.Subject{{ID: 1, Weight: 3}}
	topics := []plan.Topic{
		{ID: 1, SubjectID: 1, Weight: 5, Status: plan.TopicCompleted},
		{ID: 2, SubjectID: 1, Weight: 1, Status: plan.TopicPending},
	}

	ranked := RankTopics(subjects, topics)
	if len(ranked) != 1 {
		t.Fatalf("len(ranked) = %d, want 1", len(ranked))
	}
	if ranked[0].Topic.ID != 2 {
		t.Errorf("ranked[0].Topic.ID = %d, want 2", ranked[0].Topic.ID)
	}
}

func TestRankTopics_SkipsOrphanTopics(t *testing.T) {
	subjects := []plan.Subject{{ID: 1, Weight: 3}}
	topics := []plan.Topic{
		{ID: 1, SubjectID: 99, Weight: 5, Status: plan.TopicPending},
	}

	if got := RankTopics(subjects, topics); len(got) != 0 {
		t.Errorf("len(ranked) = %d, want 0 for topic with unknown subject", len(got))
	}
}
