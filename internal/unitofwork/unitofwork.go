// Package unitofwork implements the transactional save-and-dispatch boundary
// for one logical write: audit stamping, soft-delete translation, atomic
// persistence and post-commit domain-event dispatch, in that order.
package unitofwork

import (
	"context"
	"time"

	"github.com/userhub/userhub/internal/database"
	"github.com/userhub/userhub/internal/kernel"
	"github.com/userhub/userhub/internal/requestctx"
)

// State tracks what should happen to a registered aggregate at save time.
type State int

const (
	// StateAdded inserts the aggregate.
	StateAdded State = iota
	// StateModified updates the aggregate.
	StateModified
	// StateRemoved soft-deletes the aggregate: the save pipeline turns the
	// removal into an update with IsDeleted set. Rows are never dropped.
	StateRemoved
)

// Store persists a single aggregate inside the ambient transaction.
// Implementations adapt a repository to the aggregate-shaped interface.
type Store interface {
	Insert(ctx context.Context, aggregate kernel.Aggregate) error
	Update(ctx context.Context, aggregate kernel.Aggregate) error
}

// UnitOfWork stages aggregate changes and saves them in one transaction.
// A unit of work serves exactly one logical operation; it is not safe for
// concurrent use.
type UnitOfWork interface {
	RegisterNew(aggregate kernel.Aggregate)
	RegisterDirty(aggregate kernel.Aggregate)
	RegisterRemoved(aggregate kernel.Aggregate)
	Save(ctx context.Context) error
}

// Factory creates a fresh unit of work per logical operation.
type Factory interface {
	New() UnitOfWork
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func() UnitOfWork

// New calls the wrapped function.
func (f FactoryFunc) New() UnitOfWork { return f() }

type entry struct {
	aggregate kernel.Aggregate
	state     State
}

type unitOfWork struct {
	txManager  database.TxManager
	store      Store
	dispatcher *kernel.Dispatcher
	now        func() time.Time
	entries    []entry
}

// Option customizes a unit of work.
type Option func(*unitOfWork)

// WithClock overrides the audit-stamp clock.
func WithClock(now func() time.Time) Option {
	return func(u *unitOfWork) { u.now = now }
}

// New creates a unit of work bound to a transaction manager, a store and
// the in-process event dispatcher.
func New(txManager database.TxManager, store Store, dispatcher *kernel.Dispatcher, opts ...Option) UnitOfWork {
	u := &unitOfWork{
		txManager:  txManager,
		store:      store,
		dispatcher: dispatcher,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// NewFactory returns a Factory producing units of work with the given
// collaborators.
func NewFactory(txManager database.TxManager, store Store, dispatcher *kernel.Dispatcher, opts ...Option) Factory {
	return FactoryFunc(func() UnitOfWork {
		return New(txManager, store, dispatcher, opts...)
	})
}

// RegisterNew stages an aggregate for insertion.
func (u *unitOfWork) RegisterNew(aggregate kernel.Aggregate) {
	u.entries = append(u.entries, entry{aggregate: aggregate, state: StateAdded})
}

// RegisterDirty stages an aggregate for update.
func (u *unitOfWork) RegisterDirty(aggregate kernel.Aggregate) {
	u.entries = append(u.entries, entry{aggregate: aggregate, state: StateModified})
}

// RegisterRemoved stages an aggregate for soft deletion.
func (u *unitOfWork) RegisterRemoved(aggregate kernel.Aggregate) {
	u.entries = append(u.entries, entry{aggregate: aggregate, state: StateRemoved})
}

// Save runs the pipeline in strict order: audit stamping, soft-delete
// translation, atomic persist, then domain-event dispatch. Events are never
// dispatched before the commit succeeds; a failed save keeps the staged
// entries and their pending events intact, so retrying the identical
// operation produces the identical outcome.
func (u *unitOfWork) Save(ctx context.Context) error {
	actor, err := requestctx.ActingUser(ctx)
	if err != nil {
		return err
	}

	now := u.now().UTC()
	for _, e := range u.entries {
		if e.state == StateAdded {
			e.aggregate.StampCreated(now, actor)
		}
		e.aggregate.StampUpdated(now, actor)

		switch e.state {
		case StateAdded:
			e.aggregate.SetDeleted(false)
		case StateRemoved:
			e.aggregate.SetDeleted(true)
		}
	}

	err = u.txManager.WithTx(ctx, func(ctx context.Context) error {
		for _, e := range u.entries {
			var err error
			switch e.state {
			case StateAdded:
				err = u.store.Insert(ctx, e.aggregate)
			case StateModified, StateRemoved:
				err = u.store.Update(ctx, e.aggregate)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// The commit succeeded: ownership of the pending events moves from each
	// aggregate to the dispatch pipeline, exactly once per save.
	var events []kernel.DomainEvent
	for _, e := range u.entries {
		events = append(events, e.aggregate.PullEvents()...)
	}
	u.entries = nil

	for _, event := range events {
		if err := u.dispatcher.Dispatch(ctx, event); err != nil {
			return err
		}
	}

	return nil
}
