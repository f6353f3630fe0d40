package http

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/libruary/libruary/internal/entities"
)

// MessageResponse is the standard body for status-only endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// --- Response Helpers ---

// respondMessage sends a response with just a message field.
func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, MessageResponse{Message: message})
}

// respondInternalError logs the error and sends a 500 with a generic message.
// The underlying error is logged but never exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Internal server error"})
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL
// parameters. Responds with a 400 error and returns false on failure.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		label := strings.ReplaceAll(paramName, "_id", " ID")
		respondMessage(c, http.StatusBadRequest, "Invalid "+label)
		return 0, false
	}
	return uint(id), true
}

// --- Serialization ---

// bookResponse is the wire shape of a catalog book. Dates go out as
// YYYY-MM-DD rather than full timestamps.
type bookResponse struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	PublishedDate string `json:"published_date"`
	ISBN          string `json:"isbn"`
	Language      string `json:"language"`
	Image         string `json:"image"`
	Pages         int    `json:"pages"`
	Publisher     string `json:"publisher"`
}

func newBookResponse(book entities.Book) bookResponse {
	return bookResponse{
		ID:            book.ID,
		Title:         book.Title,
		Author:        book.Author,
		PublishedDate: book.PublishedDate.Format("2006-01-02"),
		ISBN:          book.ISBN,
		Language:      book.Language,
		Image:         book.Image,
		Pages:         book.Pages,
		Publisher:     book.Publisher,
	}
}
