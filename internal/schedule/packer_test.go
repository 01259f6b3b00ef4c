package schedule

import (
	"testing"
	"time"

	"github.com/carlosvictorodrigues/Editaliza-sub011/internal/plan"
)

// monday is a fixed reference date; 2026-01-05 is a Monday.
var monday = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func testPlan(examOffset int) *plan.Plan {
	return &plan.Plan{
		ID:             1,
		ExamDate:       monday.AddDate(0, 0, examOffset),
		SessionMinutes: 60,
		// 2 sessions Mon-Fri, 4 on weekends.
		StudyMinutes: plan.WeekdayMinutes{240, 120, 120, 120, 120, 120, 240},
		Revision:     plan.DefaultRevisionConfig(),
	}
}

func newItems(n int) []demandItem {
	items := make([]demandItem, n)
	for i := range items {
		items[i] = demandItem{
			TopicID:  int64(i + 1),
			Type:     plan.TypeNewTopic,
			Priority: 30,
		}
	}
	return items
}

func TestPack_RespectsDailyBudget(t *testing.T) {
	p := testPlan(13)
	pk := NewPacker(p, monday, nil)

	placed, leftover := pk.Pack(newItems(10))
	if len(leftover) != 0 {
		t.Fatalf("leftover = %d, want 0", len(leftover))
	}

	perDay := make(map[time.Time]int)
	for _, pl := range placed {
		perDay[pl.Date]++
	}
	for day, n := range perDay {
		allowed := p.SessionsAllowed(day)
		if n > allowed {
			t.Errorf("day %s has %d sessions, budget allows %d", day.Format(plan.DateLayout), n, allowed)
		}
	}
	// Monday through Friday hold 2 each.
	if perDay[monday] != 2 {
		t.Errorf("monday sessions = %d, want 2", perDay[monday])
	}
}

func TestPack_FloorsPartialSessions(t *testing.T) {
	p := testPlan(6)
	p.SessionMinutes = 90 // 120-minute weekdays floor to 1 session, 240 weekends to 2.
	pk := NewPacker(p, monday, nil)

	placed, _ := pk.Pack(newItems(3))
	perDay := make(map[time.Time]int)
	for _, pl := range placed {
		perDay[pl.Date]++
	}
	for day, n := range perDay {
		if day.Weekday() != time.Saturday && day.Weekday() != time.Sunday && n != 1 {
			t.Errorf("weekday %s got %d sessions, want 1", day.Format(plan.DateLayout), n)
		}
	}
}

func TestPack_SkipsZeroBudgetDays(t *testing.T) {
	p := testPlan(6)
	p.StudyMinutes = plan.WeekdayMinutes{0, 60, 0, 60, 0, 60, 0} // Mon, Wed, Fri only
	pk := NewPacker(p, monday, nil)

	placed, leftover := pk.Pack(newItems(3))
	if len(leftover) != 0 {
		t.Fatalf("leftover = %d, want 0", len(leftover))
	}
	wantDays := []time.Time{monday, monday.AddDate(0, 0, 2), monday.AddDate(0, 0, 4)}
	for i, pl := range placed {
		if !pl.Date.Equal(wantDays[i]) {
			t.Errorf("placed[%d].Date = %s, want %s", i, pl.Date.Format(plan.DateLayout), wantDays[i].Format(plan.DateLayout))
		}
	}
}

func TestPack_LeftoverPastExamDate(t *testing.T) {
	p := testPlan(1) // Monday and Tuesday only: 2+2 = 4 slots
	pk := NewPacker(p, monday, nil)

	placed, leftover := pk.Pack(newItems(6))
	if len(placed) != 4 {
		t.Errorf("placed = %d, want 4", len(placed))
	}
	if len(leftover) != 2 {
		t.Errorf("leftover = %d, want 2", len(leftover))
	}
	for _, pl := range placed {
		if pl.Date.After(p.ExamDate) {
			t.Errorf("session dated %s after exam %s", pl.Date.Format(plan.DateLayout), p.ExamDate.Format(plan.DateLayout))
		}
	}
}

func TestPack_NotBeforeHoldsItemForLaterDay(t *testing.T) {
	p := testPlan(13)
	pk := NewPacker(p, monday, nil)

	target := monday.AddDate(0, 0, 3)
	items := []demandItem{
		{TopicID: 1, Type: plan.TypeSpacedReview, NotBefore: target},
		{TopicID: 2, Type: plan.TypeNewTopic},
	}
	placed, leftover := pk.Pack(items)
	if len(leftover) != 0 {
		t.Fatalf("leftover = %d, want 0", len(leftover))
	}
	// The review waits for Thursday; the new topic takes Monday's slot.
	if placed[0].Item.TopicID != 2 || !placed[0].Date.Equal(monday) {
		t.Errorf("placed[0] = topic %d on %s, want topic 2 on monday", placed[0].Item.TopicID, placed[0].Date.Format(plan.DateLayout))
	}
	if placed[1].Item.TopicID != 1 || placed[1].Date.Before(target) {
		t.Errorf("review placed on %s, want on or after %s", placed[1].Date.Format(plan.DateLayout), target.Format(plan.DateLayout))
	}
}

func TestPack_NotBeforePushedLaterWhenDayFull(t *testing.T) {
	p := testPlan(13)
	target := monday.AddDate(0, 0, 1)
	// Tuesday is already fully booked.
	existing := []plan.Session{
		{ID: 1, Date: target, Status: plan.SessionPending},
		{ID: 2, Date: target, Status: plan.SessionPending},
	}
	pk := NewPacker(p, monday, existing)

	placed, _ := pk.Pack([]demandItem{{TopicID: 1, Type: plan.TypeSpacedReview, NotBefore: target}})
	if len(placed) != 1 {
		t.Fatalf("placed = %d, want 1", len(placed))
	}
	want := monday.AddDate(0, 0, 2)
	if !placed[0].Date.Equal(want) {
		t.Errorf("review placed on %s, want %s (never before the target)", placed[0].Date.Format(plan.DateLayout), want.Format(plan.DateLayout))
	}
}

func TestNewPacker_SeedsFromExistingFutureSessions(t *testing.T) {
	p := testPlan(13)
	existing := []plan.Session{
		{ID: 1, Date: monday, Status: plan.SessionPending},
		{ID: 2, Date: monday.AddDate(0, 0, -7), Status: plan.SessionPending}, // past, ignored
	}
	pk := NewPacker(p, monday, existing)

	if got := pk.freeSlots(monday); got != 1 {
		t.Errorf("freeSlots(monday) = %d, want 1", got)
	}
}

func TestRemainingCapacity(t *testing.T) {
	p := testPlan(6) // full week: 5 weekdays * 2 + 2 weekend days * 4
	pk := NewPacker(p, monday, nil)
	if got := pk.RemainingCapacity(); got != 18 {
		t.Errorf("RemainingCapacity() = %d, want 18", got)
	}
}

func TestPack_StartNeverInThePast(t *testing.T) {
	p := testPlan(13)
	pk := NewPacker(p, monday, nil)

	placed, _ := pk.Pack(newItems(1))
	if placed[0].Date.Before(monday) {
		t.Errorf("placed in the past: %s", placed[0].Date.Format(plan.DateLayout))
	}
}
