package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/libruary/libruary/internal/auth"
)

// AuthController serves registration, login and token validation.
type AuthController struct {
	service *auth.Service
}

func NewAuthController(service *auth.Service) *AuthController {
	return &AuthController{service: service}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (controller *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "No data provided")
		return
	}

	_, err := controller.service.Register(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			respondMessage(c, http.StatusBadRequest, "Username and password are required")
		case errors.Is(err, auth.ErrUserExists):
			respondMessage(c, http.StatusBadRequest, "Username already exists")
		default:
			respondInternalError(c, err, "register")
		}
		return
	}

	respondMessage(c, http.StatusOK, "Registered successfully!")
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (controller *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "No data provided")
		return
	}

	user, token, err := controller.service.Authenticate(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			respondMessage(c, http.StatusBadRequest, "Username and password are required")
		case errors.Is(err, auth.ErrLoginFailed):
			// Unknown username and wrong password answer identically.
			respondMessage(c, http.StatusUnauthorized, "Login failed!")
		default:
			respondInternalError(c, err, "login")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in successfully!",
		"token":   token,
		"user_id": user.ID,
	})
}

type validateTokenRequest struct {
	Token string `json:"token"`
}

func (controller *AuthController) ValidateToken(c *gin.Context) {
	var req validateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "No data provided")
		return
	}
	if req.Token == "" {
		respondMessage(c, http.StatusBadRequest, "Token is missing")
		return
	}

	_, err := controller.service.Tokens().Validate(req.Token)
	if err != nil {
		message := "Invalid token"
		if errors.Is(err, auth.ErrTokenExpired) {
			message = "Token has expired"
		}
		c.JSON(http.StatusUnauthorized, gin.H{"is_valid": false, "message": message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_valid": true, "message": "Token is valid"})
}
