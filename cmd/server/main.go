package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/reelworthy/reelworthy-core/internal/auth"
	"github.com/reelworthy/reelworthy-core/internal/comments"
	"github.com/reelworthy/reelworthy-core/internal/config"
	"github.com/reelworthy/reelworthy-core/internal/database"
	"github.com/reelworthy/reelworthy-core/internal/mail"
	"github.com/reelworthy/reelworthy-core/internal/movies"
	"github.com/reelworthy/reelworthy-core/internal/ratings"
	"github.com/reelworthy/reelworthy-core/internal/tmdb"
	"github.com/reelworthy/reelworthy-core/internal/users"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded, continuing with environment variables")
	}

	cfg := config.Load()
	if cfg.Production() && cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set in production")
	}

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// run migrations to create tables
	err := database.Migrate(database.DB,
		&users.User{},
		&comments.Comment{},
		&comments.CommentLike{},
		&ratings.Rating{},
	)
	if err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	tokens := auth.NewTokenService(cfg)
	mailer := mail.NewMailer(cfg)

	authHandler := auth.NewHandler(database.DB, tokens, mailer)
	commentHandler := comments.NewHandler(database.DB)
	ratingHandler := ratings.NewHandler(database.DB)
	movieHandler := movies.NewHandler(tmdb.NewClient(cfg.TMDBAPIKey))

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.RegisterHandler)
	authGroup.POST("/login", authHandler.LoginHandler)
	authGroup.GET("/verify-email/:token", authHandler.VerifyEmailHandler)
	authGroup.POST("/forgot-password", authHandler.ForgotPasswordHandler)
	authGroup.POST("/reset-password/:token", authHandler.ResetPasswordHandler)
	authGroup.GET("/me", auth.RequireAuth(tokens), authHandler.MeHandler)
	authGroup.PUT("/profile", auth.RequireAuth(tokens), authHandler.UpdateProfileHandler)
	authGroup.PUT("/change-password", auth.RequireAuth(tokens), authHandler.ChangePasswordHandler)
	authGroup.DELETE("/me", auth.RequireAuth(tokens), authHandler.DeleteAccountHandler)

	// Comments on a movie
	api.GET("/movie/:movieId/comments", commentHandler.ListHandler)
	api.POST("/movie/:movieId/comments", auth.RequireAuth(tokens), commentHandler.CreateHandler)
	api.PUT("/user/:userId/comments/:commentId", auth.RequireAuth(tokens), auth.RequireSelf(), commentHandler.UpdateHandler)
	api.DELETE("/user/:userId/comments/:commentId", auth.RequireAuth(tokens), auth.RequireSelf(), commentHandler.DeleteHandler)
	api.PUT("/user/:userId/comments/:commentId/like", auth.RequireAuth(tokens), commentHandler.LikeHandler)

	// Ratings
	api.POST("/user/:userId/ratings", auth.RequireAuth(tokens), auth.RequireSelf(), ratingHandler.UpsertHandler)
	api.GET("/user/:userId/ratings", ratingHandler.ForUserHandler)
	api.GET("/movie/:movieId/ratings", ratingHandler.ForMovieHandler)
	api.GET("/movie/:movieId/ratings/me", auth.RequireAuth(tokens), ratingHandler.MineForMovieHandler)
	api.GET("/ratings/top", ratingHandler.TopHandler)
	api.DELETE("/user/:userId/ratings/:movieId", auth.RequireAuth(tokens), auth.RequireSelf(), ratingHandler.DeleteHandler)

	// Catalog proxy
	api.GET("/movies/search", movieHandler.SearchHandler)
	api.GET("/movies/genres", movieHandler.GenresHandler)
	api.GET("/movies/:tmdbId", movieHandler.DetailsHandler)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
