package goal

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockRepository is a testify mock of Repository. Modify runs the mutator
// against the goal supplied to the expectation.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, goal *Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*Goal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Goal), args.Error(1)
}

func (m *MockRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]Goal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Goal), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) Modify(ctx context.Context, id uuid.UUID, fn Mutator) (*Goal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	goal := args.Get(0).(*Goal).clone()
	c, err := fn(goal)
	if err != nil {
		return nil, err
	}
	if c != nil {
		goal.Contributions = append(goal.Contributions, *c)
	}
	return goal, nil
}

func TestServiceWithMockRepository(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	storeDown := errors.New("connection refused")

	t.Run("CreatePropagatesStoreFailure", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", ctx, mock.AnythingOfType("*goal.Goal")).Return(storeDown)

		_, err := NewService(repo).Create(ctx, owner, CreateGoalDTO{Name: "Bike", TargetValue: 300})

		assert.ErrorIs(t, err, storeDown)
		repo.AssertExpectations(t)
	})

	t.Run("CreatePersistsZeroBalance", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", ctx, mock.MatchedBy(func(g *Goal) bool {
			return g.UserID == owner && g.CurrentValue == 0 && !g.Completed && len(g.Contributions) == 0
		})).Return(nil)

		_, err := NewService(repo).Create(ctx, owner, CreateGoalDTO{Name: "Bike", TargetValue: 300})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("EmptyPatchNeverReachesStore", func(t *testing.T) {
		repo := new(MockRepository)

		_, err := NewService(repo).Update(ctx, uuid.New(), owner, UpdateGoalDTO{})

		assert.ErrorIs(t, err, ErrEmptyPatch)
		repo.AssertNotCalled(t, "Modify", mock.Anything, mock.Anything)
	})

	t.Run("DeleteChecksOwnerBeforeDeleting", func(t *testing.T) {
		id := uuid.New()
		repo := new(MockRepository)
		repo.On("FindByID", ctx, id).Return(&Goal{ID: id, UserID: uuid.New()}, nil)

		err := NewService(repo).Delete(ctx, id, owner)

		assert.ErrorIs(t, err, ErrForbidden)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("ContributionStampsServerTime", func(t *testing.T) {
		id := uuid.New()
		repo := new(MockRepository)
		repo.On("Modify", ctx, id).Return(&Goal{ID: id, UserID: owner, TargetValue: 100}, nil)

		svc := NewService(repo).(*service)
		fixed := svc.now()
		svc.now = func() time.Time { return fixed }

		got, err := svc.PostContribution(ctx, id, owner, deposit(25))

		require.NoError(t, err)
		require.Len(t, got.Contributions, 1)
		assert.Equal(t, fixed, got.Contributions[0].Timestamp)
		assert.Equal(t, int64(25), got.CurrentValue)
	})
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))
	assert.ErrorIs(t, translateError(gorm.ErrRecordNotFound), ErrGoalNotFound)

	checkViolation := &pgconn.PgError{Code: pgCheckViolation, ConstraintName: "goals_balance_in_bounds"}
	err := translateError(fmt.Errorf("update goal: %w", checkViolation))
	assert.ErrorIs(t, err, ErrBalanceOutOfBounds)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	other := errors.New("boom")
	assert.Equal(t, other, translateError(other))
}
