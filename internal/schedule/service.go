package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carlosvictorodrigues/Editaliza-sub011/internal/plan"
	"github.com/carlosvictorodrigues/Editaliza-sub011/internal/store"
)

// Service runs scheduling operations against the store. Operations for
// the same plan are serialized by a per-plan mutex: the packer's
// day-by-day walk is stateful, and two interleaved passes could
// double-book a day's capacity. Different plans run in parallel freely.
type Service struct {
	repo  store.Repo
	locks sync.Map // plan id -> *sync.Mutex

	// now is swappable in tests.
	now func() time.Time
}

// NewService creates a scheduling service over the given store.
func NewService(repo store.Repo) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) lock(planID int64) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(planID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Generate builds the plan's full calendar: first-time coverage for every
// pending topic, interleaved across subjects by weight, plus revision
// sessions derived from the study dates. All reads happen up front and
// all writes commit in one transaction at the end.
func (s *Service) Generate(ctx context.Context, planID int64) (*GenerateResult, error) {
	mu := s.lock(planID)
	mu.Lock()
	defer mu.Unlock()

	p, subjects, topics, sessions, err := s.load(ctx, planID)
	if err != nil {
		return nil, err
	}
	exclusions, err := s.repo.Exclusions(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("load exclusions: %w", err)
	}

	result, err := BuildGenerate(p, subjects, topics, sessions, exclusions, s.now(), uuid.NewString())
	if err != nil {
		return nil, err
	}
	if result.Empty() {
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.repo.CommitGenerate(ctx, planID, result.Sessions, result.Exclusions); err != nil {
		return nil, fmt.Errorf("commit generate: %w", err)
	}
	return result, nil
}

// Replan repairs overdue sessions by moving them to the earliest free
// slots from today on. A pass that moved at least one session bumps the
// plan's postponement counter by exactly 1; a pass with nothing overdue
// is a reported no-op and touches nothing.
func (s *Service) Replan(ctx context.Context, planID int64) (*ReplanResult, error) {
	mu := s.lock(planID)
	mu.Lock()
	defer mu.Unlock()

	p, subjects, topics, sessions, err := s.load(ctx, planID)
	if err != nil {
		return nil, err
	}

	result, err := BuildReplan(p, subjects, topics, sessions, s.now())
	if err != nil {
		return nil, err
	}
	if result.NoOp() {
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.repo.CommitReplan(ctx, planID, result.SessionsUpdated, result.RemovedSessionIDs, result.Exclusions); err != nil {
		return nil, fmt.Errorf("commit replan: %w", err)
	}
	return result, nil
}

func (s *Service) load(ctx context.Context, planID int64) (*plan.Plan, []plan.Subject, []plan.Topic, []plan.Session, error) {
	p, err := s.repo.Plan(ctx, planID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, nil, nil, fmt.Errorf("%w: id %d", ErrPlanNotFound, planID)
		}
		return nil, nil, nil, nil, fmt.Errorf("load plan: %w", err)
	}
	subjects, err := s.repo.Subjects(ctx, planID)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load subjects: %w", err)
	}
	topics, err := s.repo.Topics(ctx, planID)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load topics: %w", err)
	}
	sessions, err := s.repo.Sessions(ctx, planID)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load sessions: %w", err)
	}
	return p, subjects, topics, sessions, nil
}

// BuildGenerate is the pure core of Generate: rows in, row changes out,
// no I/O. Exposed for tests and for callers that manage their own
// persistence.
func BuildGenerate(p *plan.Plan, subjects []plan.Subject, topics []plan.Topic, existing []plan.Session, excluded []plan.Exclusion, now time.Time, batchID string) (*GenerateResult, error) {
	if err := p.Validate(now); err != nil {
		return nil, invalidConfig(err)
	}
	if err := validateWeights(subjects, topics); err != nil {
		return nil, err
	}
	today := plan.DateOf(now)

	// Topics that already have a first-time session never get another,
	// whatever their status. An exclusion is just as final: a topic
	// dropped for lack of capacity stays dropped on regeneration.
	covered := make(map[int64]bool)
	for _, s := range existing {
		if s.Type == plan.TypeNewTopic && s.TopicID != nil {
			covered[*s.TopicID] = true
		}
	}
	for _, ex := range excluded {
		covered[ex.TopicID] = true
	}

	ranked := RankTopics(subjects, topics)
	uncovered := ranked[:0:0]
	for _, rt := range ranked {
		if !covered[rt.Topic.ID] {
			uncovered = append(uncovered, rt)
		}
	}

	sequence := Sequence(uncovered)
	demand := make([]demandItem, len(sequence))
	for i, rt := range sequence {
		demand[i] = demandItem{
			TopicID:          rt.Topic.ID,
			SubjectName:      rt.Subject.Name,
			TopicDescription: rt.Topic.Description,
			Priority:         rt.Priority,
			Type:             plan.TypeNewTopic,
		}
	}

	pk := NewPacker(p, today, existing)
	result := &GenerateResult{BatchID: batchID}

	if p.FinalStretch {
		kept, removed := Reduce(demand, pk.RemainingCapacity())
		demand = kept
		for _, it := range removed {
			result.Exclusions = append(result.Exclusions, plan.Exclusion{
				PlanID:  p.ID,
				TopicID: it.TopicID,
				Reason:  plan.ReasonCapacityExceeded,
			})
		}
	}

	placed, leftover := pk.Pack(demand)
	if len(leftover) > 0 {
		if p.FinalStretch {
			// New-topic demand has no date floor, so a reduced sequence
			// always fits; reaching this means the capacity model and
			// the calendar disagree.
			return nil, invalidConfig(fmt.Errorf("reduced sequence still infeasible: %d items left", len(leftover)))
		}
		return nil, &InfeasibleError{Items: unschedulable(leftover)}
	}

	priorityOf := make(map[int64]int, len(topics))
	subjectWeight := make(map[int64]int, len(subjects))
	for _, sub := range subjects {
		subjectWeight[sub.ID] = sub.Weight
	}
	for _, t := range topics {
		priorityOf[t.ID] = CombinedPriority(subjectWeight[t.SubjectID], t.Weight)
	}

	revDemand := RevisionDemand(p, placed, existing, priorityOf)
	placedRev, leftoverRev := pk.Pack(revDemand)
	result.DroppedRevisions = len(leftoverRev)

	for _, pl := range append(placed, placedRev...) {
		topicID := pl.Item.TopicID
		result.Sessions = append(result.Sessions, plan.Session{
			PlanID:           p.ID,
			TopicID:          &topicID,
			SubjectName:      pl.Item.SubjectName,
			TopicDescription: pl.Item.TopicDescription,
			Date:             pl.Date,
			Type:             pl.Item.Type,
			Cycle:            pl.Item.Cycle,
			Status:           plan.SessionPending,
			BatchID:          batchID,
		})
	}
	return result, nil
}

// BuildReplan is the pure core of Replan. Overdue sessions keep their
// identity: placements update the date field of the existing rows.
func BuildReplan(p *plan.Plan, subjects []plan.Subject, topics []plan.Topic, existing []plan.Session, now time.Time) (*ReplanResult, error) {
	if err := p.Validate(now); err != nil {
		return nil, invalidConfig(err)
	}
	if err := validateWeights(subjects, topics); err != nil {
		return nil, err
	}
	today := plan.DateOf(now)

	overdue := OverdueSessions(existing, today)
	if len(overdue) == 0 {
		return &ReplanResult{}, nil
	}

	subjectWeight := make(map[int64]int, len(subjects))
	for _, sub := range subjects {
		subjectWeight[sub.ID] = sub.Weight
	}
	priorityOf := make(map[int64]int, len(topics))
	for _, t := range topics {
		priorityOf[t.ID] = CombinedPriority(subjectWeight[t.SubjectID], t.Weight)
	}

	pk := NewPacker(p, today, existing)
	demand := replanDemand(overdue, priorityOf)

	result := &ReplanResult{}
	capacity := pk.RemainingCapacity()
	if len(demand) > capacity {
		if !p.FinalStretch {
			return nil, &InfeasibleError{Items: unschedulable(demand[capacity:])}
		}
		kept, removed := Reduce(demand, capacity)
		demand = kept
		for _, it := range removed {
			result.RemovedSessionIDs = append(result.RemovedSessionIDs, it.SessionID)
			if it.TopicID != 0 {
				result.Exclusions = append(result.Exclusions, plan.Exclusion{
					PlanID:  p.ID,
					TopicID: it.TopicID,
					Reason:  plan.ReasonCapacityExceeded,
				})
			}
		}
	}

	placed, leftover := pk.Pack(demand)
	if len(leftover) > 0 {
		// Repositioning demand has no date floor; the capacity pre-check
		// guarantees a fit.
		return nil, invalidConfig(fmt.Errorf("replan pack left %d items unplaced", len(leftover)))
	}

	byID := make(map[int64]plan.Session, len(existing))
	for _, s := range existing {
		byID[s.ID] = s
	}
	for _, pl := range placed {
		sess := byID[pl.Item.SessionID]
		sess.Date = pl.Date
		result.SessionsUpdated = append(result.SessionsUpdated, sess)
	}
	result.RescheduledCount = len(placed)
	return result, nil
}

// validateWeights enforces the 1-5 weight bounds on everything entering
// the engine. Out-of-range rows can only come from writes that bypassed
// the importer, and a zero-weight subject would stall the sequencer.
func validateWeights(subjects []plan.Subject, topics []plan.Topic) error {
	for _, s := range subjects {
		if s.Weight < plan.MinWeight || s.Weight > plan.MaxWeight {
			return invalidConfig(fmt.Errorf("subject %q: weight %d out of range %d-%d",
				s.Name, s.Weight, plan.MinWeight, plan.MaxWeight))
		}
	}
	for _, t := range topics {
		if t.Weight < plan.MinWeight || t.Weight > plan.MaxWeight {
			return invalidConfig(fmt.Errorf("topic %d: weight %d out of range %d-%d",
				t.ID, t.Weight, plan.MinWeight, plan.MaxWeight))
		}
	}
	return nil
}

func unschedulable(items []demandItem) []UnschedulableItem {
	out := make([]UnschedulableItem, len(items))
	for i, it := range items {
		out[i] = UnschedulableItem{
			TopicID:     it.TopicID,
			Subject:     it.SubjectName,
			Description: it.TopicDescription,
			Type:        it.Type,
		}
	}
	return out
}
