package schedule

import (
	"errors"
	"fmt"

	"github.com/carlosvictorodrigues/Editaliza-sub011/internal/plan"
)

// ErrPlanNotFound indicates the plan id does not exist in the store.
var ErrPlanNotFound = errors.New("plan not found")

// ErrInvalidConfiguration indicates plan settings the engine refuses to
// schedule against: an all-zero weekly budget, a non-positive session
// duration, an exam date in the past or a malformed revision table.
// Rejected before any computation begins.
var ErrInvalidConfiguration = errors.New("invalid plan configuration")

// ErrInfeasibleSchedule is the sentinel wrapped by InfeasibleError.
var ErrInfeasibleSchedule = errors.New("schedule infeasible")

// UnschedulableItem identifies one demand item that could not be placed
// before the exam date.
type UnschedulableItem struct {
	TopicID     int64
	Subject     string
	Description string
	Type        plan.SessionType
}

// InfeasibleError reports that demand exceeds the remaining capacity
// before the exam date and final-stretch mode is off. The caller must
// increase capacity or move the exam date; the engine never resolves
// this on its own.
type InfeasibleError struct {
	Items []UnschedulableItem
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("schedule infeasible: %d items do not fit before the exam date", len(e.Items))
}

func (e *InfeasibleError) Unwrap() error { return ErrInfeasibleSchedule }

func invalidConfig(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
}
