package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/libruary/libruary/internal/auth"
	"github.com/libruary/libruary/internal/database/reviews"
)

// defaultReviewsPerPage matches the page size clients get when per_page is
// absent from the query string.
const defaultReviewsPerPage = 5

// ReviewsController serves review submission, per-book review pages and the
// user profile.
type ReviewsController struct {
	reviews *reviews.Repository
	service *auth.Service
}

func NewReviewsController(repo *reviews.Repository, service *auth.Service) *ReviewsController {
	return &ReviewsController{
		reviews: repo,
		service: service,
	}
}

type reviewRequest struct {
	BookID     uint   `json:"book_id"`
	ReviewText string `json:"review_text"`
	Rating     *int   `json:"rating"` // pointer so an absent rating is not a zero rating
}

func (controller *ReviewsController) PostReview(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "No data provided")
		return
	}
	if req.BookID == 0 || req.ReviewText == "" || req.Rating == nil {
		respondMessage(c, http.StatusBadRequest, "Book ID, Review text, and Rating are required")
		return
	}

	updated, err := controller.reviews.Upsert(auth.GetUserID(c), req.BookID, req.ReviewText, *req.Rating)
	if err != nil {
		if errors.Is(err, reviews.ErrInvalidRating) {
			respondMessage(c, http.StatusBadRequest, "Rating must be an integer between 1 and 5")
			return
		}
		respondInternalError(c, err, "upsert review")
		return
	}

	if updated {
		respondMessage(c, http.StatusOK, "Review updated successfully!")
		return
	}
	respondMessage(c, http.StatusOK, "Review added successfully!")
}

// profileReview is the wire shape of a review on the profile page.
type profileReview struct {
	BookID uint   `json:"book_id"`
	Review string `json:"review"`
	Rating int    `json:"rating"`
}

func (controller *ReviewsController) GetProfile(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	// Profiles are private: only their owner may fetch them.
	if userID != auth.GetUserID(c) {
		respondMessage(c, http.StatusForbidden, "Unauthorized")
		return
	}

	user, err := controller.service.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			respondMessage(c, http.StatusNotFound, "User not found")
			return
		}
		respondInternalError(c, err, "get profile")
		return
	}

	userReviews, err := controller.reviews.ListByUser(userID)
	if err != nil {
		respondInternalError(c, err, "list user reviews")
		return
	}

	reviewList := make([]profileReview, 0, len(userReviews))
	for _, review := range userReviews {
		reviewList = append(reviewList, profileReview{
			BookID: review.BookID,
			Review: review.Review,
			Rating: review.Rating,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"username": user.Username,
		"reviews":  reviewList,
	})
}

// bookReview is the wire shape of a review on a book's review page.
type bookReview struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Review   string `json:"review"`
	Rating   int    `json:"rating"`
}

func (controller *ReviewsController) GetBookReviews(c *gin.Context) {
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	page := parsePositiveQueryInt(c, "page", 1)
	perPage := parsePositiveQueryInt(c, "per_page", defaultReviewsPerPage)

	pageReviews, total, pages, err := controller.reviews.ListByBook(bookID, page, perPage)
	if err != nil {
		respondInternalError(c, err, "list book reviews")
		return
	}

	reviewList := make([]bookReview, 0, len(pageReviews))
	for _, review := range pageReviews {
		reviewList = append(reviewList, bookReview{
			ID:       review.ID,
			Username: review.User.Username,
			Review:   review.Review,
			Rating:   review.Rating,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews":       reviewList,
		"total_reviews": total,
		"page":          page,
		"pages":         pages,
	})
}

// parsePositiveQueryInt reads a positive integer query parameter, falling
// back to the default on absence or garbage.
func parsePositiveQueryInt(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
