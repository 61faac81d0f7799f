package goal

import (
	"time"

	"github.com/google/uuid"
)

type Goal struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index"`
	Name          string         `gorm:"not null"`
	Description   string
	Category      string
	Colour        string
	TargetValue   int64          `gorm:"not null"`
	CurrentValue  int64          `gorm:"not null;default:0"`
	Completed     bool           `gorm:"not null;default:false"`
	Contributions []Contribution `gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Contribution is an append-only ledger entry; CreatedAt is its timestamp.
type Contribution struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey"`
	GoalID    uuid.UUID        `gorm:"column:goal_id;type:uuid;not null;index"`
	Amount    int64            `gorm:"not null"`
	Type      ContributionType `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (Contribution) TableName() string {
	return "goal_contributions"
}

// Balance replays the ledger.
func (g *Goal) Balance() int64 {
	var total int64
	for _, c := range g.Contributions {
		total += c.Type.Sign() * c.Amount
	}
	return total
}

func (g *Goal) clone() *Goal {
	cp := *g
	cp.Contributions = append([]Contribution(nil), g.Contributions...)
	return &cp
}
