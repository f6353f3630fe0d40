// Command generate_demo creates a demo database with sample accounts, books
// and reviews from public domain titles.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/libruary/libruary/internal/auth"
	"github.com/libruary/libruary/internal/database"
	"github.com/libruary/libruary/internal/database/books"
	"github.com/libruary/libruary/internal/database/library"
	"github.com/libruary/libruary/internal/database/reviews"
	"github.com/libruary/libruary/internal/database/users"
	"github.com/libruary/libruary/internal/entities"
)

const defaultDemoDatabasePath = "./demo/demo.db"

// demoPassword is shared by every generated account so the demo is easy to
// log into.
const demoPassword = "demo1234"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	usersRepo := users.NewRepository(db.DB)
	booksRepo := books.NewRepository(db.DB)
	libraryRepo := library.NewRepository(db.DB)
	reviewsRepo := reviews.NewRepository(db.DB)

	accounts := createAccounts(usersRepo)

	for _, book := range publicDomainBooks() {
		stored := book
		if err := booksRepo.Create(&stored); err != nil {
			log.Printf("Failed to save book %s: %v", book.Title, err)
			continue
		}
		log.Printf("Saved: %s by %s", stored.Title, stored.Author)

		for _, user := range accounts {
			if _, err := libraryRepo.Add(user.ID, stored.ID); err != nil {
				log.Printf("Failed to add %s to %s's library: %v", stored.Title, user.Username, err)
			}
		}
	}

	addReviews(booksRepo, reviewsRepo, accounts)

	log.Println("Demo database generated successfully!")
	log.Printf("Demo accounts use password %q", demoPassword)
}

func createAccounts(repo *users.Repository) []*entities.User {
	hash, err := auth.HashPassword(demoPassword, 10)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	usernames := []string{"alice", "bob", "carol"}

	accounts := make([]*entities.User, 0, len(usernames))
	for _, name := range usernames {
		user, err := repo.Create(name, hash)
		if err != nil {
			log.Printf("Failed to create account %s: %v", name, err)
			continue
		}
		accounts = append(accounts, user)
	}
	return accounts
}

func publicDomainBooks() []entities.Book {
	return []entities.Book{
		{
			ISBN:          "9780140449334",
			Title:         "Meditations",
			Author:        "Marcus Aurelius",
			Language:      "en",
			Publisher:     "Penguin Classics",
			Pages:         254,
			PublishedDate: time.Date(2006, time.April, 25, 0, 0, 0, 0, time.UTC),
		},
		{
			ISBN:          "9780140449136",
			Title:         "The Odyssey",
			Author:        "Homer",
			Language:      "en",
			Publisher:     "Penguin Classics",
			Pages:         541,
			PublishedDate: time.Date(1996, time.November, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ISBN:          "9780141439518",
			Title:         "Pride and Prejudice",
			Author:        "Jane Austen",
			Language:      "en",
			Publisher:     "Penguin Classics",
			Pages:         480,
			PublishedDate: time.Date(2002, time.December, 31, 0, 0, 0, 0, time.UTC),
		},
	}
}

func addReviews(booksRepo *books.Repository, reviewsRepo *reviews.Repository, accounts []*entities.User) {
	type seed struct {
		isbn   string
		text   string
		rating int
	}

	seeds := map[string][]seed{
		"alice": {
			{"9780140449334", "Still the best bedside book there is.", 5},
			{"9780140449136", "The Fagles translation reads like a thriller.", 5},
		},
		"bob": {
			{"9780140449136", "Long, but the storm scenes are worth it.", 4},
			{"9780141439518", "Funnier than I expected.", 4},
		},
		"carol": {
			{"9780141439518", "Reread it every year.", 5},
		},
	}

	for _, user := range accounts {
		for _, s := range seeds[user.Username] {
			book, err := booksRepo.GetByISBN(s.isbn)
			if err != nil {
				log.Printf("Failed to look up %s for review: %v", s.isbn, err)
				continue
			}
			if _, err := reviewsRepo.Upsert(user.ID, book.ID, s.text, s.rating); err != nil {
				log.Printf("Failed to add %s's review of %s: %v", user.Username, book.Title, err)
			}
		}
	}
}
