package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/libruary/libruary/internal/auth"
	"github.com/libruary/libruary/internal/catalog"
	"github.com/libruary/libruary/internal/config"
	"github.com/libruary/libruary/internal/database"
	"github.com/libruary/libruary/internal/database/books"
	"github.com/libruary/libruary/internal/database/library"
	"github.com/libruary/libruary/internal/database/reviews"
	"github.com/libruary/libruary/internal/database/users"
	http_controllers "github.com/libruary/libruary/internal/http"
)

func Serve(router *gin.Engine, cfg *config.Config) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting libruary v%s", version)

	if cfg.Auth.Secret == "" {
		log.Fatalf("AUTH_SECRET is not set; refusing to sign tokens with an empty secret")
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	usersRepo := users.NewRepository(db.DB)
	booksRepo := books.NewRepository(db.DB)
	libraryRepo := library.NewRepository(db.DB)
	reviewsRepo := reviews.NewRepository(db.DB)

	tokenService := auth.NewTokenService(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	authService := auth.NewService(usersRepo, tokenService, cfg.Auth)
	authMiddleware := auth.NewMiddleware(authService)

	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)
	resolver := catalog.NewResolver(catalogClient, booksRepo)

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:       db,
		AuthService:    authService,
		AuthMiddleware: authMiddleware,
		Books:          booksRepo,
		Library:        libraryRepo,
		Reviews:        reviewsRepo,
		Resolver:       resolver,
		Version:        version,
	})

	Serve(router, cfg)
}
