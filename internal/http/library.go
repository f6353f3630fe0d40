package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/libruary/libruary/internal/auth"
	"github.com/libruary/libruary/internal/database/library"
	"github.com/libruary/libruary/internal/entities"
)

// LibraryController serves the authenticated reading-list endpoints.
type LibraryController struct {
	library *library.Repository
}

func NewLibraryController(lib *library.Repository) *LibraryController {
	return &LibraryController{library: lib}
}

type markReadRequest struct {
	BookID uint `json:"book_id"`
}

func (controller *LibraryController) MarkBookAsRead(c *gin.Context) {
	var req markReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "No data provided")
		return
	}
	if req.BookID == 0 {
		respondMessage(c, http.StatusBadRequest, "Book ID is required")
		return
	}

	err := controller.library.MarkRead(auth.GetUserID(c), req.BookID)
	if err != nil {
		if errors.Is(err, library.ErrNotInLibrary) {
			respondMessage(c, http.StatusNotFound, "Book not found in user library")
			return
		}
		respondInternalError(c, err, "mark book as read")
		return
	}

	respondMessage(c, http.StatusOK, "Book marked as read successfully!")
}

type removeBookRequest struct {
	BookID uint   `json:"book_id"`
	Action string `json:"action"`
}

func (controller *LibraryController) RemoveBook(c *gin.Context) {
	var req removeBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "No data provided")
		return
	}
	if req.Action != "delete" {
		respondMessage(c, http.StatusBadRequest, "Invalid action")
		return
	}
	if req.BookID == 0 {
		respondMessage(c, http.StatusBadRequest, "Book ID is required")
		return
	}

	err := controller.library.Remove(auth.GetUserID(c), req.BookID)
	if err != nil {
		if errors.Is(err, library.ErrNotInLibrary) {
			respondMessage(c, http.StatusNotFound, "Book not found in user library")
			return
		}
		respondInternalError(c, err, "remove book")
		return
	}

	respondMessage(c, http.StatusOK, "Book removed from user library successfully!")
}

// userBookItem is the wire shape of one reading-list entry.
type userBookItem struct {
	BookID uint   `json:"book_id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Image  string `json:"image"`
}

func toUserBookItems(entries []entities.LibraryEntry) []userBookItem {
	items := make([]userBookItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, userBookItem{
			BookID: entry.Book.ID,
			Title:  entry.Book.Title,
			Author: entry.Book.Author,
			Image:  entry.Book.Image,
		})
	}
	return items
}

func (controller *LibraryController) GetUserBooks(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	// Reading lists are private: only their owner may fetch them.
	if userID != auth.GetUserID(c) {
		respondMessage(c, http.StatusForbidden, "Unauthorized")
		return
	}

	toRead, read, err := controller.library.ListByUser(userID)
	if err != nil {
		respondInternalError(c, err, "list user books")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"books_to_read": toUserBookItems(toRead),
		"books_read":    toUserBookItems(read),
	})
}
