// Package books provides database operations for the shared book catalog.
package books

import (
	"errors"

	"gorm.io/gorm"

	"github.com/libruary/libruary/internal/entities"
)

var (
	ErrNotFound      = errors.New("book not found")
	ErrDuplicateISBN = errors.New("book with this ISBN already exists")
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves a book by primary key.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

// GetByISBN retrieves a book by its unique ISBN.
func (r *Repository) GetByISBN(isbn string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("isbn = ?", isbn).First(&book).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

// GetAll returns every book in the catalog ordered by insertion.
func (r *Repository) GetAll() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Order("id ASC").Find(&books).Error
	return books, err
}

// Create persists a new catalog entry. When a concurrent insert for the same
// ISBN wins the race, the unique index rejects this one and the caller is told
// via ErrDuplicateISBN so it can re-read the existing row.
func (r *Repository) Create(book *entities.Book) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(book).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateISBN
		}
		return err
	}
	return nil
}
