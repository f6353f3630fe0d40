// Package users provides database operations for user accounts.
package users

import (
	"errors"

	"gorm.io/gorm"

	"github.com/libruary/libruary/internal/entities"
)

var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrNotFound      = errors.New("user not found")
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user with an already-hashed password. The unique index
// on username is the final arbiter for duplicates; a constraint violation is
// reported as ErrUsernameTaken.
func (r *Repository) Create(username, passwordHash string) (*entities.User, error) {
	user := &entities.User{
		Username:     username,
		PasswordHash: passwordHash,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return user, nil
}

// GetByID retrieves a user by primary key.
func (r *Repository) GetByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user by their unique username.
func (r *Repository) GetByUsername(username string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
