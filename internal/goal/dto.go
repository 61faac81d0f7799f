package goal

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateGoalDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Colour      string `json:"colour"`
	TargetValue int64  `json:"targetValue"`
}

func (d CreateGoalDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrNameRequired
	}
	if d.TargetValue < 0 {
		return ErrNegativeTarget
	}
	return nil
}

// UpdateGoalDTO is a sparse patch; nil fields are left untouched.
// currentValue is deliberately absent: only contributions move the balance.
type UpdateGoalDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Colour      *string `json:"colour"`
	TargetValue *int64  `json:"targetValue"`
	Completed   *bool   `json:"completed"`
}

func (d UpdateGoalDTO) IsEmpty() bool {
	return d.Name == nil && d.Description == nil && d.Category == nil &&
		d.Colour == nil && d.TargetValue == nil && d.Completed == nil
}

func (d UpdateGoalDTO) Validate() error {
	if d.IsEmpty() {
		return ErrEmptyPatch
	}
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return ErrNameRequired
	}
	if d.TargetValue != nil && *d.TargetValue < 0 {
		return ErrNegativeTarget
	}
	return nil
}

func (d UpdateGoalDTO) apply(g *Goal) error {
	if d.TargetValue != nil && *d.TargetValue < g.CurrentValue {
		return ErrTargetBelowBalance
	}
	if d.Name != nil {
		g.Name = strings.TrimSpace(*d.Name)
	}
	if d.Description != nil {
		g.Description = *d.Description
	}
	if d.Category != nil {
		g.Category = *d.Category
	}
	if d.Colour != nil {
		g.Colour = *d.Colour
	}
	if d.TargetValue != nil {
		g.TargetValue = *d.TargetValue
	}
	if d.Completed != nil {
		g.Completed = *d.Completed
	}
	return nil
}

type ContributionDTO struct {
	Amount int64            `json:"amount"`
	Type   ContributionType `json:"type"`
}

func (d ContributionDTO) Validate() error {
	if d.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !d.Type.Valid() {
		return ErrInvalidContributionType
	}
	return nil
}

// Delta is the signed change the contribution applies to the balance.
func (d ContributionDTO) Delta() int64 {
	return d.Type.Sign() * d.Amount
}

type ContributionResponse struct {
	ID        uuid.UUID        `json:"id"`
	Amount    int64            `json:"amount"`
	Type      ContributionType `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
}

type GoalResponse struct {
	ID            uuid.UUID              `json:"id"`
	UserID        uuid.UUID              `json:"userId"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	Category      string                 `json:"category"`
	Colour        string                 `json:"colour"`
	TargetValue   int64                  `json:"targetValue"`
	CurrentValue  int64                  `json:"currentValue"`
	Completed     bool                   `json:"completed"`
	Contributions []ContributionResponse `json:"contributions"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

func toResponse(g *Goal) *GoalResponse {
	contributions := make([]ContributionResponse, 0, len(g.Contributions))
	for _, c := range g.Contributions {
		contributions = append(contributions, ContributionResponse{
			ID:        c.ID,
			Amount:    c.Amount,
			Type:      c.Type,
			Timestamp: c.CreatedAt,
		})
	}
	return &GoalResponse{
		ID:            g.ID,
		UserID:        g.UserID,
		Name:          g.Name,
		Description:   g.Description,
		Category:      g.Category,
		Colour:        g.Colour,
		TargetValue:   g.TargetValue,
		CurrentValue:  g.CurrentValue,
		Completed:     g.Completed,
		Contributions: contributions,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}
