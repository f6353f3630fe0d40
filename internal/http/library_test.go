package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libruary/libruary/internal/database"
	"github.com/libruary/libruary/internal/entities"
)

// seedLibrary creates a book and puts it on a user's reading list.
func seedLibrary(t *testing.T, db *database.Database, userID uint, isbn, title string, read bool) *entities.Book {
	t.Helper()
	book := &entities.Book{ISBN: isbn, Title: title, Author: "Homer"}
	require.NoError(t, db.DB.Create(book).Error)
	entry := &entities.LibraryEntry{UserID: userID, BookID: book.ID, Read: read}
	require.NoError(t, db.DB.Create(entry).Error)
	return book
}

func TestMarkBookAsRead(t *testing.T) {
	router, db, cleanup := setupTestRouter(t, "")
	defer cleanup()

	userID, token := registerAndLogin(t, router, "alice", "pw1")
	book := seedLibrary(t, db, userID, "9780140449136", "The Odyssey", false)

	w := doJSON(t, router, http.MethodPost, "/mark_book_as_read", token, gin.H{"book_id": book.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Book marked as read successfully!", decodeBody(t, w)["message"])

	var entry entities.LibraryEntry
	require.NoError(t, db.DB.Where("user_id = ? AND book_id = ?", userID, book.ID).First(&entry).Error)
	assert.True(t, entry.Read)
}

func TestMarkBookAsRead_NotInLibrary(t *testing.T) {
	router, _, cleanup := setupTestRouter(t, "")
	defer cleanup()

	_, token := registerAndLogin(t, router, "alice", "pw1")

	w := doJSON(t, router, http.MethodPost, "/mark_book_as_read", token, gin.H{"book_id": 42})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Book not found in user library", decodeBody(t, w)["message"])
}

func TestMarkBookAsRead_MissingBookID(t *testing.T) {
	router, _, cleanup := setupTestRouter(t, "")
	defer cleanup()

	_, token := registerAndLogin(t, router, "alice", "pw1")

	w := doJSON(t, router, http.MethodPost, "/mark_book_as_read", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Book ID is required", decodeBody(t, w)["message"])
}

func TestRemoveBook(t *testing.T) {
	router, db, cleanup := setupTestRouter(t, "")
	defer cleanup()

	userID, token := registerAndLogin(t, router, "alice", "pw1")
	book := seedLibrary(t, db, userID, "9780140449136", "The Odyssey", false)

	w := doJSON(t, router, http.MethodPost, "/remove_book", token, gin.H{
		"book_id": book.ID,
		"action":  "delete",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Book removed from user library successfully!", decodeBody(t, w)["message"])

	var count int64
	require.NoError(t, db.DB.Model(&entities.LibraryEntry{}).
		Where("user_id = ? AND book_id = ?", userID, book.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRemoveBook_RequiresDeleteAction(t *testing.T) {
	router, db, cleanup := setupTestRouter(t, "")
	defer cleanup()

	userID, token := registerAndLogin(t, router, "alice", "pw1")
	book := seedLibrary(t, db, userID, "9780140449136", "The Odyssey", false)

	w := doJSON(t, router, http.MethodPost, "/remove_book", token, gin.H{
		"book_id": book.ID,
		"action":  "archive",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid action", decodeBody(t, w)["message"])
}

func TestRemoveBook_NotInLibrary(t *testing.T) {
	router, _, cleanup := setupTestRouter(t, "")
	defer cleanup()

	_, token := registerAndLogin(t, router, "alice", "pw1")

	w := doJSON(t, router, http.MethodPost, "/remove_book", token, gin.H{
		"book_id": 42,
		"action":  "delete",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Book not found in user library", decodeBody(t, w)["message"])
}

func TestGetUserBooks_PartitionsByReadFlag(t *testing.T) {
	router, db, cleanup := setupTestRouter(t, "")
	defer cleanup()

	userID, token := registerAndLogin(t, router, "alice", "pw1")
	seedLibrary(t, db, userID, "9780140449136", "The Odyssey", false)
	seedLibrary(t, db, userID, "9780140449181", "The Iliad", true)

	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/user_books/%d", userID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)

	toRead := body["books_to_read"].([]any)
	read := body["books_read"].([]any)
	require.Len(t, toRead, 1)
	require.Len(t, read, 1)
	assert.Equal(t, "The Odyssey", toRead[0].(map[string]any)["title"])
	assert.Equal(t, "The Iliad", read[0].(map[string]any)["title"])
}

func TestGetUserBooks_OtherUserForbidden(t *testing.T) {
	router, _, cleanup := setupTestRouter(t, "")
	defer cleanup()

	aliceID, _ := registerAndLogin(t, router, "alice", "pw1")
	_, bobToken := registerAndLogin(t, router, "bob", "pw2")

	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/user_books/%d", aliceID), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Unauthorized", decodeBody(t, w)["message"])
}
