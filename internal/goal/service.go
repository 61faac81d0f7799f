package goal

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/goalie-lambda/internal/config"
	"github.com/sirupsen/logrus"
)

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, dto CreateGoalDTO) (*GoalResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]GoalResponse, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*GoalResponse, error)
	Update(ctx context.Context, id, userID uuid.UUID, dto UpdateGoalDTO) (*GoalResponse, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	Complete(ctx context.Context, id, userID uuid.UUID) (*GoalResponse, error)
	PostContribution(ctx context.Context, id, userID uuid.UUID, dto ContributionDTO) (*GoalResponse, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// authorize is the single ownership guard for every goal addressed by id.
func authorize(goal *Goal, requester uuid.UUID) error {
	if requester == uuid.Nil {
		return ErrUnauthorized
	}
	if goal.UserID != requester {
		return ErrForbidden
	}
	return nil
}

func (s *service) logRejection(log logrus.FieldLogger, err error, id, userID uuid.UUID, action string) {
	fields := logrus.Fields{"goal_id": id, "user_id": userID}
	switch {
	case errors.Is(err, ErrGoalNotFound):
		log.WithFields(fields).Warnf("Goal not found to %s", action)
	case errors.Is(err, ErrForbidden):
		log.WithFields(fields).Warnf("Attempt to %s a goal owned by another user", action)
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrUnauthorized):
		log.WithError(err).WithFields(fields).Warnf("Rejected request to %s goal", action)
	default:
		log.WithError(err).WithFields(fields).Errorf("Failed to %s goal", action)
	}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, dto CreateGoalDTO) (*GoalResponse, error) {
	log := config.WithContext(ctx)
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if err := dto.Validate(); err != nil {
		log.WithError(err).Warn("Invalid goal payload")
		return nil, err
	}

	goal := Goal{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          strings.TrimSpace(dto.Name),
		Description:   dto.Description,
		Category:      dto.Category,
		Colour:        dto.Colour,
		TargetValue:   dto.TargetValue,
		CurrentValue:  0,
		Completed:     false,
		Contributions: []Contribution{},
	}

	if err := s.repo.Create(ctx, &goal); err != nil {
		log.WithError(err).Error("Failed to create goal")
		return nil, err
	}

	log.WithField("goal_id", goal.ID).Info("Goal created successfully")
	return toResponse(&goal), nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]GoalResponse, error) {
	log := config.WithContext(ctx)
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	goals, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to list goals")
		return nil, err
	}

	responses := make([]GoalResponse, 0, len(goals))
	for i := range goals {
		responses = append(responses, *toResponse(&goals[i]))
	}
	return responses, nil
}

func (s *service) Get(ctx context.Context, id, userID uuid.UUID) (*GoalResponse, error) {
	log := config.WithContext(ctx)

	goal, err := s.repo.FindByID(ctx, id)
	if err == nil {
		err = authorize(goal, userID)
	}
	if err != nil {
		s.logRejection(log, err, id, userID, "read")
		return nil, err
	}
	return toResponse(goal), nil
}

func (s *service) Update(ctx context.Context, id, userID uuid.UUID, dto UpdateGoalDTO) (*GoalResponse, error) {
	log := config.WithContext(ctx)

	if dto.IsEmpty() {
		s.logRejection(log, ErrEmptyPatch, id, userID, "update")
		return nil, ErrEmptyPatch
	}

	goal, err := s.repo.Modify(ctx, id, func(g *Goal) (*Contribution, error) {
		if err := authorize(g, userID); err != nil {
			return nil, err
		}
		if err := dto.Validate(); err != nil {
			return nil, err
		}
		return nil, dto.apply(g)
	})
	if err != nil {
		s.logRejection(log, err, id, userID, "update")
		return nil, err
	}

	log.WithField("goal_id", id).Info("Goal updated successfully")
	return toResponse(goal), nil
}

func (s *service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	log := config.WithContext(ctx)

	goal, err := s.repo.FindByID(ctx, id)
	if err == nil {
		err = authorize(goal, userID)
	}
	if err == nil {
		err = s.repo.Delete(ctx, id)
	}
	if err != nil {
		s.logRejection(log, err, id, userID, "delete")
		return err
	}

	log.WithField("goal_id", id).Info("Goal deleted successfully")
	return nil
}

// Complete flags the goal as done; balance and ledger are left as they are.
func (s *service) Complete(ctx context.Context, id, userID uuid.UUID) (*GoalResponse, error) {
	log := config.WithContext(ctx)

	goal, err := s.repo.Modify(ctx, id, func(g *Goal) (*Contribution, error) {
		if err := authorize(g, userID); err != nil {
			return nil, err
		}
		g.Completed = true
		return nil, nil
	})
	if err != nil {
		s.logRejection(log, err, id, userID, "complete")
		return nil, err
	}

	log.WithField("goal_id", id).Info("Goal marked as completed")
	return toResponse(goal), nil
}

// PostContribution validates and applies a deposit or withdrawal inside the
// goal's critical section, so the bounds check always sees the live balance.
func (s *service) PostContribution(ctx context.Context, id, userID uuid.UUID, dto ContributionDTO) (*GoalResponse, error) {
	log := config.WithContext(ctx)

	goal, err := s.repo.Modify(ctx, id, func(g *Goal) (*Contribution, error) {
		if err := authorize(g, userID); err != nil {
			return nil, err
		}
		if err := dto.Validate(); err != nil {
			return nil, err
		}

		// Compare against the remaining headroom so large amounts cannot overflow.
		switch dto.Type {
		case ContributionDeposit:
			if dto.Amount > g.TargetValue-g.CurrentValue {
				return nil, ErrDepositExceedsTarget
			}
		case ContributionWithdrawal:
			if dto.Amount > g.CurrentValue {
				return nil, ErrWithdrawalExceedsBalance
			}
		}

		g.CurrentValue += dto.Delta()
		return &Contribution{
			Amount:    dto.Amount,
			Type:      dto.Type,
			CreatedAt: s.now(),
		}, nil
	})
	if err != nil {
		s.logRejection(log, err, id, userID, "contribute to")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"goal_id":       id,
		"type":          dto.Type,
		"amount":        dto.Amount,
		"current_value": goal.CurrentValue,
	}).Info("Contribution posted")
	return toResponse(goal), nil
}
