package goal

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newTestService() (Service, Repository) {
	repo := NewMemoryRepository()
	return NewService(repo), repo
}

func createGoal(t *testing.T, svc Service, owner uuid.UUID, target int64) *GoalResponse {
	t.Helper()
	g, err := svc.Create(context.Background(), owner, CreateGoalDTO{
		Name:        "Holiday",
		Description: "Trip to Lisbon",
		Category:    "travel",
		Colour:      "#ff9900",
		TargetValue: target,
	})
	require.NoError(t, err)
	return g
}

func deposit(amount int64) ContributionDTO {
	return ContributionDTO{Amount: amount, Type: ContributionDeposit}
}

func withdraw(amount int64) ContributionDTO {
	return ContributionDTO{Amount: amount, Type: ContributionWithdrawal}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	owner := uuid.New()

	t.Run("StartsEmpty", func(t *testing.T) {
		g := createGoal(t, svc, owner, 100)

		assert.NotEqual(t, uuid.Nil, g.ID)
		assert.Equal(t, owner, g.UserID)
		assert.Equal(t, int64(0), g.CurrentValue)
		assert.False(t, g.Completed)
		assert.Empty(t, g.Contributions)
		assert.NotNil(t, g.Contributions, "contributions serialize as [] rather than null")
	})

	t.Run("RequiresName", func(t *testing.T) {
		_, err := svc.Create(ctx, owner, CreateGoalDTO{Name: "  ", TargetValue: 10})
		assert.ErrorIs(t, err, ErrNameRequired)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("RejectsNegativeTarget", func(t *testing.T) {
		_, err := svc.Create(ctx, owner, CreateGoalDTO{Name: "Car", TargetValue: -1})
		assert.ErrorIs(t, err, ErrNegativeTarget)
	})

	t.Run("RequiresIdentity", func(t *testing.T) {
		_, err := svc.Create(ctx, uuid.Nil, CreateGoalDTO{Name: "Car", TargetValue: 1})
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestLedgerScenario(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	owner := uuid.New()
	g := createGoal(t, svc, owner, 100)

	got, err := svc.PostContribution(ctx, g.ID, owner, deposit(40))
	require.NoError(t, err)
	assert.Equal(t, int64(40), got.CurrentValue)
	require.Len(t, got.Contributions, 1)
	assert.Equal(t, ContributionDeposit, got.Contributions[0].Type)
	assert.Equal(t, int64(40), got.Contributions[0].Amount)
	assert.False(t, got.Contributions[0].Timestamp.IsZero())

	_, err = svc.PostContribution(ctx, g.ID, owner, deposit(70))
	assert.ErrorIs(t, err, ErrDepositExceedsTarget)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.PostContribution(ctx, g.ID, owner, withdraw(100))
	assert.ErrorIs(t, err, ErrWithdrawalExceedsBalance)

	current, err := svc.Get(ctx, g.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(40), current.CurrentValue)
	assert.Len(t, current.Contributions, 1)

	got, err = svc.PostContribution(ctx, g.ID, owner, withdraw(40))
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.CurrentValue)
	require.Len(t, got.Contributions, 2)
	assert.Equal(t, ContributionWithdrawal, got.Contributions[1].Type)
}

func TestPostContributionValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	owner := uuid.New()
	g := createGoal(t, svc, owner, 100)

	tests := []struct {
		name string
		dto  ContributionDTO
		want error
	}{
		{"ZeroAmount", ContributionDTO{Amount: 0, Type: ContributionDeposit}, ErrInvalidAmount},
		{"NegativeAmount", ContributionDTO{Amount: -5, Type: ContributionDeposit}, ErrInvalidAmount},
		{"UnknownType", ContributionDTO{Amount: 5, Type: "transfer"}, ErrInvalidContributionType},
		{"EmptyType", ContributionDTO{Amount: 5}, ErrInvalidContributionType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.PostContribution(ctx, g.ID, owner, tt.dto)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}

	t.Run("DepositExactlyToTarget", func(t *testing.T) {
		got, err := svc.PostContribution(ctx, g.ID, owner, deposit(100))
		require.NoError(t, err)
		assert.Equal(t, int64(100), got.CurrentValue)
	})

	t.Run("HugeDepositExceedsTarget", func(t *testing.T) {
		h := createGoal(t, svc, owner, 100)
		_, err := svc.PostContribution(ctx, h.ID, owner, deposit(40))
		require.NoError(t, err)

		_, err = svc.PostContribution(ctx, h.ID, owner, deposit(math.MaxInt64))
		assert.ErrorIs(t, err, ErrDepositExceedsTarget)

		got, err := svc.Get(ctx, h.ID, owner)
		require.NoError(t, err)
		assert.Equal(t, int64(40), got.CurrentValue)
		assert.Len(t, got.Contributions, 1)
	})

	t.Run("HugeDepositOnMaxTarget", func(t *testing.T) {
		h := createGoal(t, svc, owner, math.MaxInt64)
		_, err := svc.PostContribution(ctx, h.ID, owner, deposit(1))
		require.NoError(t, err)

		_, err = svc.PostContribution(ctx, h.ID, owner, deposit(math.MaxInt64))
		assert.ErrorIs(t, err, ErrDepositExceedsTarget)
	})

	t.Run("HugeWithdrawal", func(t *testing.T) {
		h := createGoal(t, svc, owner, 100)
		_, err := svc.PostContribution(ctx, h.ID, owner, ContributionDTO{Amount: math.MaxInt64, Type: ContributionWithdrawal})
		assert.ErrorIs(t, err, ErrWithdrawalExceedsBalance)
	})

	t.Run("NotFoundBeforeValidation", func(t *testing.T) {
		_, err := svc.PostContribution(ctx, uuid.New(), owner, ContributionDTO{Amount: -1})
		assert.ErrorIs(t, err, ErrGoalNotFound)
	})

	t.Run("ForbiddenBeforeValidation", func(t *testing.T) {
		_, err := svc.PostContribution(ctx, g.ID, uuid.New(), ContributionDTO{Amount: -1})
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestOwnershipIsEnforced(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	owner, intruder := uuid.New(), uuid.New()
	g := createGoal(t, svc, owner, 100)
	_, err := svc.PostContribution(ctx, g.ID, owner, deposit(10))
	require.NoError(t, err)

	name := "Hijacked"

	_, err = svc.Get(ctx, g.ID, intruder)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Update(ctx, g.ID, intruder, UpdateGoalDTO{Name: &name})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Complete(ctx, g.ID, intruder)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.PostContribution(ctx, g.ID, intruder, deposit(10))
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.Delete(ctx, g.ID, intruder)
	assert.ErrorIs(t, err, ErrForbidden)

	list, err := svc.List(ctx, intruder)
	require.NoError(t, err)
	assert.Empty(t, list)

	after, err := svc.Get(ctx, g.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "Holiday", after.Name)
	assert.Equal(t, int64(10), after.CurrentValue)
	assert.False(t, after.Completed)
	assert.Len(t, after.Contributions, 1)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	owner := uuid.New()
	g := createGoal(t, svc, owner, 100)
	_, err := svc.PostContribution(ctx, g.ID, owner, deposit(50))
	require.NoError(t, err)

	t.Run("EmptyPatch", func(t *testing.T) {
		_, err := svc.Update(ctx, g.ID, owner, UpdateGoalDTO{})
		assert.ErrorIs(t, err, ErrEmptyPatch)
	})

	t.Run("SparsePatch", func(t *testing.T) {
		colour := "#00ff00"
		target := int64(200)
		got, err := svc.Update(ctx, g.ID, owner, UpdateGoalDTO{Colour: &colour, TargetValue: &target})
		require.NoError(t, err)

		assert.Equal(t, colour, got.Colour)
		assert.Equal(t, target, got.TargetValue)
		assert.Equal(t, "Holiday", got.Name)
		assert.Equal(t, "travel", got.Category)
		assert.Equal(t, int64(50), got.CurrentValue)
		assert.Len(t, got.Contributions, 1)
	})

	t.Run("TargetBelowBalance", func(t *testing.T) {
		target := int64(49)
		_, err := svc.Update(ctx, g.ID, owner, UpdateGoalDTO{TargetValue: &target})
		assert.ErrorIs(t, err, ErrTargetBelowBalance)
	})

	t.Run("NegativeTarget", func(t *testing.T) {
		target := int64(-1)
		_, err := svc.Update(ctx, g.ID, owner, UpdateGoalDTO{TargetValue: &target})
		assert.ErrorIs(t, err, ErrNegativeTarget)
	})

	t.Run("BlankName", func(t *testing.T) {
		name := ""
		_, err := svc.Update(ctx, g.ID, owner, UpdateGoalDTO{Name: &name})
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("CompletedFlag", func(t *testing.T) {
		done := true
		got, err := svc.Update(ctx, g.ID, owner, UpdateGoalDTO{Completed: &done})
		require.NoError(t, err)
		assert.True(t, got.Completed)
	})

	t.Run("MissingGoal", func(t *testing.T) {
		name := "x"
		_, err := svc.Update(ctx, uuid.New(), owner, UpdateGoalDTO{Name: &name})
		assert.ErrorIs(t, err, ErrGoalNotFound)
	})
}

func TestCompleteLeavesLedgerAlone(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	owner := uuid.New()
	g := createGoal(t, svc, owner, 100)
	_, err := svc.PostContribution(ctx, g.ID, owner, deposit(30))
	require.NoError(t, err)
	before, err := svc.Get(ctx, g.ID, owner)
	require.NoError(t, err)

	got, err := svc.Complete(ctx, g.ID, owner)
	require.NoError(t, err)

	assert.True(t, got.Completed)
	assert.Equal(t, before.CurrentValue, got.CurrentValue)
	assert.Equal(t, before.Contributions, got.Contributions)

	// Completing twice is harmless.
	again, err := svc.Complete(ctx, g.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, before.Contributions, again.Contributions)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	owner := uuid.New()
	g := createGoal(t, svc, owner, 100)

	require.NoError(t, svc.Delete(ctx, g.ID, owner))

	_, err := svc.Get(ctx, g.ID, owner)
	assert.ErrorIs(t, err, ErrGoalNotFound)

	err = svc.Delete(ctx, g.ID, owner)
	assert.ErrorIs(t, err, ErrGoalNotFound)

	_, err = svc.PostContribution(ctx, g.ID, owner, deposit(1))
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestListIsScopedToOwner(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	alice, bob := uuid.New(), uuid.New()

	createGoal(t, svc, alice, 10)
	createGoal(t, svc, alice, 20)
	createGoal(t, svc, bob, 30)

	goals, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	for _, g := range goals {
		assert.Equal(t, alice, g.UserID)
	}
}

func TestRandomContributionSequences(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 20; run++ {
		svc, repo := newTestService()
		owner := uuid.New()
		target := int64(rng.Intn(500))
		g := createGoal(t, svc, owner, target)

		var deposits, withdrawals int64
		for step := 0; step < 100; step++ {
			dto := ContributionDTO{Amount: int64(rng.Intn(120) + 1), Type: ContributionDeposit}
			if rng.Intn(2) == 0 {
				dto.Type = ContributionWithdrawal
			}

			before, err := repo.FindByID(ctx, g.ID)
			require.NoError(t, err)

			_, err = svc.PostContribution(ctx, g.ID, owner, dto)
			after, findErr := repo.FindByID(ctx, g.ID)
			require.NoError(t, findErr)

			if err != nil {
				require.ErrorIs(t, err, ErrInvalidArgument)
				assert.Equal(t, before.CurrentValue, after.CurrentValue)
				assert.Len(t, after.Contributions, len(before.Contributions))
				continue
			}
			if dto.Type == ContributionDeposit {
				deposits += dto.Amount
			} else {
				withdrawals += dto.Amount
			}

			assert.Equal(t, deposits-withdrawals, after.CurrentValue)
			assert.Equal(t, after.Balance(), after.CurrentValue)
			assert.GreaterOrEqual(t, after.CurrentValue, int64(0))
			assert.LessOrEqual(t, after.CurrentValue, target)
		}
	}
}

func TestConcurrentDepositsRespectTarget(t *testing.T) {
	ctx := context.Background()

	t.Run("TwoDepositsOfSixty", func(t *testing.T) {
		svc, repo := newTestService()
		owner := uuid.New()
		g := createGoal(t, svc, owner, 100)

		results := make([]error, 2)
		start := make(chan struct{})
		var eg errgroup.Group
		for i := range results {
			eg.Go(func() error {
				<-start
				_, results[i] = svc.PostContribution(ctx, g.ID, owner, deposit(60))
				return nil
			})
		}
		close(start)
		require.NoError(t, eg.Wait())

		var ok, rejected int
		for _, err := range results {
			if err == nil {
				ok++
			} else if assert.ErrorIs(t, err, ErrDepositExceedsTarget) {
				rejected++
			}
		}
		assert.Equal(t, 1, ok)
		assert.Equal(t, 1, rejected)

		final, err := repo.FindByID(ctx, g.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(60), final.CurrentValue)
		assert.Len(t, final.Contributions, 1)
	})

	t.Run("ManySmallDeposits", func(t *testing.T) {
		svc, repo := newTestService()
		owner := uuid.New()
		g := createGoal(t, svc, owner, 100)

		var mu sync.Mutex
		succeeded := 0
		var eg errgroup.Group
		for i := 0; i < 50; i++ {
			eg.Go(func() error {
				if _, err := svc.PostContribution(ctx, g.ID, owner, deposit(10)); err == nil {
					mu.Lock()
					succeeded++
					mu.Unlock()
				}
				return nil
			})
		}
		require.NoError(t, eg.Wait())

		assert.Equal(t, 10, succeeded)
		final, err := repo.FindByID(ctx, g.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(100), final.CurrentValue)
		assert.Equal(t, final.Balance(), final.CurrentValue)
	})
}
