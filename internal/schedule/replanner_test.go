package schedule

import (
	"testing"

	"github.com/carlosvictorodrigues/Editaliza-sub011/internal/plan"
)

func TestOverdueSessions_PendingBeforeTodayOnly(t *testing.T) {
	topicID := int64(1)
	sessions := []plan.Session{
		{ID: 1, TopicID: &topicID, Date: monday.AddDate(0, 0, -1), Status: plan.SessionPending},
		{ID: 2, TopicID: &topicID, Date: monday.AddDate(0, 0, -3), Status: plan.SessionCompleted},
		{ID: 3, TopicID: &topicID, Date: monday, Status: plan.SessionPending},
		{ID: 4, TopicID: &topicID, Date: monday.AddDate(0, 0, 2), Status: plan.SessionPending},
	}

	overdue := OverdueSessions(sessions, monday)
	if len(overdue) != 1 {
		t.Fatalf("len(overdue) = %d, want 1", len(overdue))
	}
	if overdue[0].ID != 1 {
		t.Errorf("overdue[0].ID = %d, want 1", overdue[0].ID)
	}
}

func TestOverdueSessions_OldestFirst(t *testing.T) {
	sessions := []plan.Session{
		{ID: 5, Date: monday.AddDate(0, 0, -1), Status: plan.SessionPending},
		{ID: 3, Date: monday.AddDate(0, 0, -5), Status: plan.SessionPending},
		{ID: 4, Date: monday.AddDate(0, 0, -5), Status: plan.SessionPending},
	}

	overdue := OverdueSessions(sessions, monday)
	wantIDs := []int64{3, 4, 5}
	for i, want := range wantIDs {
		if overdue[i].ID != want {
			t.Errorf("overdue[%d].ID = %d, want %d", i, overdue[i].ID, want)
		}
	}
}

func TestReplanDemand_CarriesSessionIdentity(t *testing.T) {
	topicID := int64(9)
	overdue := []plan.Session{
		{
			ID:          42,
			TopicID:     &topicID,
			SubjectName: "Law",
			Type:        plan.TypeSpacedReview,
			Cycle:       "spaced",
			Date:        monday.AddDate(0, 0, -2),
			Status:      plan.SessionPending,
		},
	}

	items := replanDemand(overdue, map[int64]int{topicID: 53})
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	it := items[0]
	if it.SessionID != 42 {
		t.Errorf("SessionID = %d, want 42", it.SessionID)
	}
	if it.TopicID != topicID || it.Priority != 53 {
		t.Errorf("topic %d priority %d, want topic %d priority 53", it.TopicID, it.Priority, topicID)
	}
	if it.Cycle != "spaced" || it.Type != plan.TypeSpacedReview {
		t.Errorf("cycle %q type %q carried wrong", it.Cycle, it.Type)
	}
	if !it.NotBefore.IsZero() {
		t.Errorf("NotBefore = %s, want zero (overdue work takes the first free slot)", it.NotBefore.Format(plan.DateLayout))
	}
}

func TestReplanDemand_SessionWithoutTopic(t *testing.T) {
	overdue := []plan.Session{
		{ID: 7, Type: plan.TypeNewTopic, Date: monday.AddDate(0, 0, -1), Status: plan.SessionPending},
	}

	items := replanDemand(overdue, nil)
	if items[0].TopicID != 0 || items[0].Priority != 0 {
		t.Errorf("topicless session mapped to topic %d priority %d, want zero values", items[0].TopicID, items[0].Priority)
	}
}
