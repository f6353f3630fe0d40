package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/libruary/libruary/internal/catalog"
	"github.com/libruary/libruary/internal/database/books"
	"github.com/libruary/libruary/internal/database/library"
)

// BooksController serves the public catalog and the authenticated add-book
// flow (ISBN resolution plus reading-list insertion).
type BooksController struct {
	books    *books.Repository
	resolver *catalog.Resolver
	library  *library.Repository
}

func NewBooksController(repo *books.Repository, resolver *catalog.Resolver, lib *library.Repository) *BooksController {
	return &BooksController{
		books:    repo,
		resolver: resolver,
		library:  lib,
	}
}

func (controller *BooksController) GetAllBooks(c *gin.Context) {
	all, err := controller.books.GetAll()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	output := make([]bookResponse, 0, len(all))
	for _, book := range all {
		output = append(output, newBookResponse(book))
	}
	c.JSON(http.StatusOK, gin.H{"books": output})
}

func (controller *BooksController) GetBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	book, err := controller.books.GetByID(bookID)
	if err != nil {
		if errors.Is(err, books.ErrNotFound) {
			respondMessage(c, http.StatusNotFound, "Book not found")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}

	c.JSON(http.StatusOK, gin.H{"book": newBookResponse(*book)})
}

type addBookRequest struct {
	ISBN   string `json:"isbn"`
	UserID uint   `json:"user_id"`
}

func (controller *BooksController) AddBook(c *gin.Context) {
	var req addBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "No data provided")
		return
	}
	if req.ISBN == "" || req.UserID == 0 {
		respondMessage(c, http.StatusBadRequest, "ISBN and user ID are required")
		return
	}

	book, err := controller.resolver.ResolveByISBN(c.Request.Context(), req.ISBN)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidISBN):
			respondMessage(c, http.StatusBadRequest, "Invalid ISBN")
		case errors.Is(err, catalog.ErrCatalogMiss):
			respondMessage(c, http.StatusNotFound, "Book not found in Google Books API")
		default:
			log.Printf("Catalog resolution failed for ISBN %s: %v", req.ISBN, err)
			respondMessage(c, http.StatusInternalServerError, "Error fetching book data from Google Books API")
		}
		return
	}

	if _, err := controller.library.Add(req.UserID, book.ID); err != nil {
		if errors.Is(err, library.ErrAlreadyInLibrary) {
			respondMessage(c, http.StatusBadRequest, "Book already added to user library")
			return
		}
		respondInternalError(c, err, "add book to library")
		return
	}

	respondMessage(c, http.StatusOK, "Book added to user library successfully!")
}
