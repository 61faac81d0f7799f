package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email                       string    `gorm:"uniqueIndex;not null" json:"email"`
	Name                        string    `json:"name"`
	GoogleID                    string    `gorm:"column:google_id;uniqueIndex;not null" json:"-"`
	EncryptedGoogleRefreshToken string    `gorm:"column:encrypted_google_refresh_token" json:"-"`
	CreatedAt                   time.Time `json:"created_at"`
	UpdatedAt                   time.Time `json:"updated_at"`
}

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}
