package goal

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const pgCheckViolation = "23514"

// Mutator changes a locked goal in place and may return a contribution to append.
type Mutator func(g *Goal) (*Contribution, error)

type Repository interface {
	Create(ctx context.Context, goal *Goal) error
	FindByID(ctx context.Context, id uuid.UUID) (*Goal, error)
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]Goal, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Modify runs fn with the goal locked against concurrent Modify calls and
	// persists the result atomically. Errors from fn abort without changes.
	Modify(ctx context.Context, id uuid.UUID, fn Mutator) (*Goal, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func orderedContributions(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

func (r *gormRepository) Create(ctx context.Context, goal *Goal) error {
	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(goal).Error)
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Goal, error) {
	var goal Goal
	err := r.db.WithContext(ctx).
		Preload("Contributions", orderedContributions).
		First(&goal, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &goal, nil
}

func (r *gormRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]Goal, error) {
	var goals []Goal
	err := r.db.WithContext(ctx).
		Preload("Contributions", orderedContributions).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&goals).Error
	if err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Goal{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrGoalNotFound
	}
	return nil
}

// Modify holds SELECT ... FOR UPDATE on the goal row for the whole transaction,
// so concurrent contributions to the same goal are validated one at a time.
func (r *gormRepository) Modify(ctx context.Context, id uuid.UUID, fn Mutator) (*Goal, error) {
	var result *Goal

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var goal Goal
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&goal, "id = ?", id).Error; err != nil {
			return err
		}
		if err := orderedContributions(tx).Where("goal_id = ?", goal.ID).Find(&goal.Contributions).Error; err != nil {
			return err
		}

		contribution, err := fn(&goal)
		if err != nil {
			return err
		}

		goal.UpdatedAt = time.Now().UTC()
		err = tx.Model(&Goal{}).Where("id = ?", goal.ID).Updates(map[string]interface{}{
			"name":          goal.Name,
			"description":   goal.Description,
			"category":      goal.Category,
			"colour":        goal.Colour,
			"target_value":  goal.TargetValue,
			"current_value": goal.CurrentValue,
			"completed":     goal.Completed,
			"updated_at":    goal.UpdatedAt,
		}).Error
		if err != nil {
			return err
		}

		if contribution != nil {
			if contribution.ID == uuid.Nil {
				contribution.ID = uuid.New()
			}
			contribution.GoalID = goal.ID
			if err := tx.Create(contribution).Error; err != nil {
				return err
			}
			goal.Contributions = append(goal.Contributions, *contribution)
		}

		result = &goal
		return nil
	})
	if err != nil {
		return nil, translateError(err)
	}
	return result, nil
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrGoalNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgCheckViolation {
		return ErrBalanceOutOfBounds
	}
	return err
}
