// Package auth handles registration, credential checks and session tokens.
package auth

import (
	"errors"
	"fmt"

	"github.com/libruary/libruary/internal/config"
	"github.com/libruary/libruary/internal/database/users"
	"github.com/libruary/libruary/internal/entities"
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrUserExists         = errors.New("username already exists")
	ErrLoginFailed        = errors.New("login failed")
	ErrUserNotFound       = errors.New("user not found")
)

// dummyHash is compared against when the username is unknown so that a failed
// login costs the same whether the user exists or not.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// Service handles user registration and authentication.
type Service struct {
	users  *users.Repository
	tokens *TokenService
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(repo *users.Repository, tokens *TokenService, cfg config.Auth) *Service {
	return &Service{
		users:  repo,
		tokens: tokens,
		config: cfg,
	}
}

// Register creates a new user account. Duplicate usernames are rejected with
// ErrUserExists whether caught by the pre-insert check or by the unique index.
func (s *Service) Register(username, password string) (*entities.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	passwordHash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(username, passwordHash)
	if err != nil {
		if errors.Is(err, users.ErrUsernameTaken) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate checks credentials and issues a session token. Unknown
// usernames and wrong passwords both return ErrLoginFailed so the response
// never reveals which credential was wrong.
func (s *Service) Authenticate(username, password string) (*entities.User, string, error) {
	if username == "" || password == "" {
		return nil, "", ErrMissingCredentials
	}

	user, err := s.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			// Burn a comparison anyway to keep the timing uniform.
			_ = CheckPassword(password, dummyHash)
			return nil, "", ErrLoginFailed
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		return nil, "", ErrLoginFailed
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// ResolveToken validates a token and loads the user it belongs to. A token
// whose user no longer exists is reported as ErrInvalidToken.
func (s *Service) ResolveToken(token string) (*entities.User, error) {
	userID, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *Service) GetUserByID(id uint) (*entities.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Tokens exposes the token service for endpoints that validate raw tokens.
func (s *Service) Tokens() *TokenService {
	return s.tokens
}
