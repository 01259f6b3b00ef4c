package store

import (
	"context"
	"errors"
	"time"

	"github.com/carlosvictorodrigues/Editaliza-sub011/internal/plan"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Repo is the persistence contract consumed by the scheduling engine, the
// importer and the CLI. The engine reads everything once at the start of
// an operation and writes everything once at the end; the two Commit
// methods are single all-or-nothing transactions.
type Repo interface {
	// Plan returns one plan, or ErrNotFound.
	Plan(ctx context.Context, id int64) (*plan.Plan, error)

	// Plans returns every plan, ordered by id.
	Plans(ctx context.Context) ([]plan.Plan, error)

	// Subjects returns the plan's subjects in position order.
	Subjects(ctx context.Context, planID int64) ([]plan.Subject, error)

	// Topics returns every topic of the plan's subjects in position order.
	Topics(ctx context.Context, planID int64) ([]plan.Topic, error)

	// Sessions returns every session of the plan, date ascending.
	Sessions(ctx context.Context, planID int64) ([]plan.Session, error)

	// Exclusions returns the plan's exclusion records, oldest first.
	Exclusions(ctx context.Context, planID int64) ([]plan.Exclusion, error)

	// CommitGenerate inserts the sessions and exclusions produced by one
	// Generate pass in a single transaction.
	CommitGenerate(ctx context.Context, planID int64, sessions []plan.Session, exclusions []plan.Exclusion) error

	// CommitReplan applies one replan pass in a single transaction:
	// session date updates, removal of sessions excluded in final-stretch
	// mode, new exclusion rows, and a +1 bump of the plan's postponement
	// counter.
	CommitReplan(ctx context.Context, planID int64, updated []plan.Session, removedIDs []int64, exclusions []plan.Exclusion) error

	// CreatePlan inserts a plan and fills in its id.
	CreatePlan(ctx context.Context, p *plan.Plan) error

	// CreateSubject inserts a subject and fills in its id.
	CreateSubject(ctx context.Context, s *plan.Subject) error

	// CreateTopic inserts a topic and fills in its id.
	CreateTopic(ctx context.Context, t *plan.Topic) error

	// CompleteTopic marks a topic completed with the given date. The
	// transition is one-way; completing an already-completed topic is an
	// error.
	CompleteTopic(ctx context.Context, topicID int64, at time.Time) error
}
