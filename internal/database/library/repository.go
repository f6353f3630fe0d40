// Package library provides database operations for per-user reading lists.
package library

import (
	"errors"

	"gorm.io/gorm"

	"github.com/libruary/libruary/internal/entities"
)

var (
	ErrAlreadyInLibrary = errors.New("book already added to user library")
	ErrNotInLibrary     = errors.New("book not found in user library")
)

// Repository handles all reading-list database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new library repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Add creates a reading-list entry with read=false. The composite unique
// index on (user_id, book_id) backstops the existence pre-check, so two
// concurrent adds cannot both succeed.
func (r *Repository) Add(userID, bookID uint) (*entities.LibraryEntry, error) {
	entry := &entities.LibraryEntry{
		UserID: userID,
		BookID: bookID,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing entities.LibraryEntry
		err := tx.Where("user_id = ? AND book_id = ?", userID, bookID).First(&existing).Error
		if err == nil {
			return ErrAlreadyInLibrary
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyInLibrary
		}
		return nil, err
	}

	return entry, nil
}

// MarkRead flags an entry as read. Idempotent: marking an already-read entry
// succeeds without change.
func (r *Repository) MarkRead(userID, bookID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.LibraryEntry{}).
			Where("user_id = ? AND book_id = ?", userID, bookID).
			Update("read", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Distinguish "absent" from "already read": an update on a read
			// row still reports one affected row under sqlite.
			var count int64
			if err := tx.Model(&entities.LibraryEntry{}).
				Where("user_id = ? AND book_id = ?", userID, bookID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrNotInLibrary
			}
		}
		return nil
	})
}

// Remove deletes the entry for the given pair.
func (r *Repository) Remove(userID, bookID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND book_id = ?", userID, bookID).
			Delete(&entities.LibraryEntry{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotInLibrary
		}
		return nil
	})
}

// ListByUser partitions a user's entries by the read flag, each with the
// joined book loaded for title/author/cover display.
func (r *Repository) ListByUser(userID uint) (toRead, read []entities.LibraryEntry, err error) {
	err = r.db.Preload("Book").
		Where("user_id = ? AND read = ?", userID, false).
		Order("id ASC").
		Find(&toRead).Error
	if err != nil {
		return nil, nil, err
	}

	err = r.db.Preload("Book").
		Where("user_id = ? AND read = ?", userID, true).
		Order("id ASC").
		Find(&read).Error
	if err != nil {
		return nil, nil, err
	}

	return toRead, read, nil
}
