package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/libruary/libruary/internal/auth"
	"github.com/libruary/libruary/internal/catalog"
	"github.com/libruary/libruary/internal/database"
	"github.com/libruary/libruary/internal/database/books"
	"github.com/libruary/libruary/internal/database/library"
	"github.com/libruary/libruary/internal/database/reviews"
)

// RouterConfig carries every dependency the router needs, keeping NewRouter's
// signature stable as endpoints grow.
type RouterConfig struct {
	Database       *database.Database
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	Books          *books.Repository
	Library        *library.Repository
	Reviews        *reviews.Repository
	Resolver       *catalog.Resolver
	Version        string
}

// NewRouter creates and configures the HTTP router with all endpoints.
// Registration, login, token validation and catalog reads are public; every
// per-user operation sits behind the token gate.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	authController := NewAuthController(cfg.AuthService)
	booksController := NewBooksController(cfg.Books, cfg.Resolver, cfg.Library)
	libraryController := NewLibraryController(cfg.Library)
	reviewsController := NewReviewsController(cfg.Reviews, cfg.AuthService)
	healthController := NewHealthController(cfg.Database, cfg.Version)

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to libruary API!")
	})
	router.GET("/health", healthController.Health)

	router.POST("/register", authController.Register)
	router.POST("/login", authController.Login)
	router.POST("/validateToken", authController.ValidateToken)

	router.GET("/books", booksController.GetAllBooks)
	router.GET("/book/:book_id", booksController.GetBook)

	protected := router.Group("/", cfg.AuthMiddleware.RequireToken())
	protected.POST("/review", reviewsController.PostReview)
	protected.GET("/profile/:user_id", reviewsController.GetProfile)
	protected.POST("/add_book", booksController.AddBook)
	protected.POST("/mark_book_as_read", libraryController.MarkBookAsRead)
	protected.POST("/remove_book", libraryController.RemoveBook)
	protected.GET("/book_reviews/:book_id", reviewsController.GetBookReviews)
	protected.GET("/user_books/:user_id", libraryController.GetUserBooks)

	return router
}
