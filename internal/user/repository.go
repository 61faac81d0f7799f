package user

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	// Upsert creates the user or refreshes the Google-sourced fields of the
	// account with the same email.
	Upsert(ctx context.Context, u *User) (*User, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) UserRepository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) Upsert(ctx context.Context, u *User) (*User, error) {
	u.Email = normalizeEmail(u.Email)

	var result *User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing User
		err := tx.First(&existing, "email = ?", u.Email).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if u.ID == uuid.Nil {
				u.ID = uuid.New()
			}
			if err := tx.Create(u).Error; err != nil {
				return err
			}
			result = u
			return nil
		}
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"name":      u.Name,
			"google_id": u.GoogleID,
		}
		if u.EncryptedGoogleRefreshToken != "" {
			updates["encrypted_google_refresh_token"] = u.EncryptedGoogleRefreshToken
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}
		result = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type memoryRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*User
}

func NewMemoryRepository() UserRepository {
	return &memoryRepository{users: make(map[uuid.UUID]*User)}
}

func (r *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memoryRepository) Upsert(_ context.Context, u *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email := normalizeEmail(u.Email)
	for _, existing := range r.users {
		if existing.Email == email {
			existing.Name = u.Name
			existing.GoogleID = u.GoogleID
			if u.EncryptedGoogleRefreshToken != "" {
				existing.EncryptedGoogleRefreshToken = u.EncryptedGoogleRefreshToken
			}
			cp := *existing
			return &cp, nil
		}
	}

	stored := *u
	stored.Email = email
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	r.users[stored.ID] = &stored
	cp := stored
	return &cp, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
