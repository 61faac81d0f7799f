package goal

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryRepository keeps goals in process. Each goal has its own mutex so
// Modify calls on different goals never contend.
type memoryRepository struct {
	mu    sync.RWMutex
	goals map[uuid.UUID]*Goal
	locks map[uuid.UUID]*sync.Mutex
}

func NewMemoryRepository() Repository {
	return &memoryRepository{
		goals: make(map[uuid.UUID]*Goal),
		locks: make(map[uuid.UUID]*sync.Mutex),
	}
}

func (r *memoryRepository) lockFor(id uuid.UUID) (*sync.Mutex, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.locks[id]
	return l, ok
}

func (r *memoryRepository) Create(_ context.Context, goal *Goal) error {
	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}
	now := time.Now().UTC()
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = now
	}
	goal.UpdatedAt = now
	if err := checkBounds(goal); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.goals[goal.ID] = goal.clone()
	r.locks[goal.ID] = &sync.Mutex{}
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id uuid.UUID) (*Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.goals[id]
	if !ok {
		return nil, ErrGoalNotFound
	}
	return g.clone(), nil
}

func (r *memoryRepository) ListByOwner(_ context.Context, userID uuid.UUID) ([]Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	goals := make([]Goal, 0)
	for _, g := range r.goals {
		if g.UserID == userID {
			goals = append(goals, *g.clone())
		}
	}
	sort.Slice(goals, func(i, j int) bool {
		return goals[i].CreatedAt.Before(goals[j].CreatedAt)
	})
	return goals, nil
}

func (r *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	l, ok := r.lockFor(id)
	if !ok {
		return ErrGoalNotFound
	}
	l.Lock()
	defer l.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.goals[id]; !ok {
		return ErrGoalNotFound
	}
	delete(r.goals, id)
	delete(r.locks, id)
	return nil
}

func (r *memoryRepository) Modify(_ context.Context, id uuid.UUID, fn Mutator) (*Goal, error) {
	l, ok := r.lockFor(id)
	if !ok {
		return nil, ErrGoalNotFound
	}
	l.Lock()
	defer l.Unlock()

	// A concurrent Delete may have won the lock first.
	goal, err := r.FindByID(context.Background(), id)
	if err != nil {
		return nil, err
	}
	ownerID := goal.UserID

	contribution, err := fn(goal)
	if err != nil {
		return nil, err
	}
	goal.ID, goal.UserID = id, ownerID
	if contribution != nil {
		if contribution.ID == uuid.Nil {
			contribution.ID = uuid.New()
		}
		contribution.GoalID = id
		goal.Contributions = append(goal.Contributions, *contribution)
	}
	if err := checkBounds(goal); err != nil {
		return nil, err
	}
	goal.UpdatedAt = time.Now().UTC()

	r.mu.Lock()
	r.goals[id] = goal.clone()
	r.mu.Unlock()
	return goal, nil
}

// checkBounds mirrors the database CHECK constraints and requires the
// stored balance to equal the replayed ledger.
func checkBounds(g *Goal) error {
	if g.TargetValue < 0 {
		return ErrNegativeTarget
	}
	if g.CurrentValue < 0 || g.CurrentValue > g.TargetValue {
		return ErrBalanceOutOfBounds
	}
	if g.Balance() != g.CurrentValue {
		return ErrLedgerMismatch
	}
	return nil
}
