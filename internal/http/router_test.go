package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/libruary/libruary/internal/auth"
	"github.com/libruary/libruary/internal/catalog"
	"github.com/libruary/libruary/internal/config"
	"github.com/libruary/libruary/internal/database"
	"github.com/libruary/libruary/internal/database/books"
	"github.com/libruary/libruary/internal/database/library"
	"github.com/libruary/libruary/internal/database/reviews"
	"github.com/libruary/libruary/internal/database/users"
)

// setupTestRouter wires a full router against a throwaway database.
// catalogURL points at a stub Google Books server; pass "" for tests that
// never resolve an ISBN.
func setupTestRouter(t *testing.T, catalogURL string) (*gin.Engine, *database.Database, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cfg := config.Auth{
		Secret:     "test-secret",
		TokenTTL:   time.Hour,
		BcryptCost: 4, // keep the tests fast
	}

	usersRepo := users.NewRepository(db.DB)
	booksRepo := books.NewRepository(db.DB)
	libraryRepo := library.NewRepository(db.DB)
	reviewsRepo := reviews.NewRepository(db.DB)

	tokens := auth.NewTokenService(cfg.Secret, cfg.TokenTTL)
	authService := auth.NewService(usersRepo, tokens, cfg)
	authMiddleware := auth.NewMiddleware(authService)

	client := catalog.NewClient(catalogURL, 5*time.Second)
	resolver := catalog.NewResolver(client, booksRepo)

	router := NewRouter(RouterConfig{
		Database:       db,
		AuthService:    authService,
		AuthMiddleware: authMiddleware,
		Books:          booksRepo,
		Library:        libraryRepo,
		Reviews:        reviewsRepo,
		Resolver:       resolver,
		Version:        "test",
	})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return router, db, cleanup
}

// doJSON performs a request with an optional JSON body and session token.
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(auth.TokenHeader, token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a recorded JSON response.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// registerAndLogin creates an account and returns its ID and session token.
func registerAndLogin(t *testing.T, router *gin.Engine, username, password string) (uint, string) {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/register", "", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, "register failed: %s", w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/login", "", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	userID, ok := body["user_id"].(float64)
	require.True(t, ok, "login response missing user_id")

	return uint(userID), token
}
