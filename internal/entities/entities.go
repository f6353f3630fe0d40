package entities

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// Book rows are created lazily the first time an ISBN is requested and the
// catalog lookup succeeds. The unique index on ISBN is the authoritative
// de-duplication mechanism for concurrent lookups.
type Book struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ISBN          string    `gorm:"uniqueIndex;size:13;not null" json:"isbn"`
	Title         string    `gorm:"size:100" json:"title"`
	Author        string    `gorm:"size:100" json:"author"` // comma-joined when the catalog lists several
	PublishedDate time.Time `json:"published_date"`
	Language      string    `gorm:"size:50" json:"language"`
	Image         string    `gorm:"size:255" json:"image"`
	Pages         int       `json:"pages"`
	Publisher     string    `gorm:"size:100" json:"publisher"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Book) TableName() string {
	return "books"
}

// LibraryEntry associates a user with a book in their reading list.
// At most one entry may exist per (user, book) pair.
type LibraryEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_book" json:"user_id"`
	BookID    uint      `gorm:"not null;uniqueIndex:idx_user_book" json:"book_id"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	Book      Book      `gorm:"foreignKey:BookID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (LibraryEntry) TableName() string {
	return "user_books"
}

// Review holds a user's review of a book. A second submission for the same
// (user, book) pair overwrites the first instead of creating a duplicate.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookID    uint      `gorm:"not null;uniqueIndex:idx_review_pair" json:"book_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_review_pair" json:"user_id"`
	Review    string    `gorm:"type:text;not null" json:"review"`
	Rating    int       `gorm:"not null" json:"rating"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}
