// Package reviews provides database operations for book reviews and ratings.
package reviews

import (
	"errors"

	"gorm.io/gorm"

	"github.com/libruary/libruary/internal/entities"
)

// Ratings are integer stars from 1 to 5 inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

var ErrInvalidRating = errors.New("rating must be an integer between 1 and 5")

// Repository handles all review database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reviews repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert stores a user's review of a book. A second submission for the same
// (user, book) pair overwrites the existing text and rating. Returns whether
// an existing review was updated, which drives the response wording.
func (r *Repository) Upsert(userID, bookID uint, text string, rating int) (updated bool, err error) {
	if rating < MinRating || rating > MaxRating {
		return false, ErrInvalidRating
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		var existing entities.Review
		err := tx.Where("user_id = ? AND book_id = ?", userID, bookID).First(&existing).Error
		if err == nil {
			updated = true
			return tx.Model(&existing).Updates(map[string]any{
				"review": text,
				"rating": rating,
			}).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		review := &entities.Review{
			UserID: userID,
			BookID: bookID,
			Review: text,
			Rating: rating,
		}
		return tx.Create(review).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// A concurrent submission won the first-insert race. The pair exists
		// now, so take the update path like any resubmission.
		updated = true
		err = r.db.Transaction(func(tx *gorm.DB) error {
			return tx.Model(&entities.Review{}).
				Where("user_id = ? AND book_id = ?", userID, bookID).
				Updates(map[string]any{
					"review": text,
					"rating": rating,
				}).Error
		})
	}
	if err != nil {
		return false, err
	}
	return updated, nil
}

// ListByUser returns all reviews written by a user, oldest first.
func (r *Repository) ListByUser(userID uint) ([]entities.Review, error) {
	var reviews []entities.Review
	err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&reviews).Error
	return reviews, err
}

// ListByBook returns one page of a book's reviews ordered by review ID
// ascending, each with the reviewer loaded for the username join. Also
// reports the total review count and the number of pages at this page size.
func (r *Repository) ListByBook(bookID uint, page, perPage int) ([]entities.Review, int64, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 5
	}

	var total int64
	err := r.db.Model(&entities.Review{}).Where("book_id = ?", bookID).Count(&total).Error
	if err != nil {
		return nil, 0, 0, err
	}

	var reviews []entities.Review
	err = r.db.Preload("User").
		Where("book_id = ?", bookID).
		Order("id ASC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, 0, err
	}

	pages := int((total + int64(perPage) - 1) / int64(perPage))
	return reviews, total, pages, nil
}
