package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"photoshare/internal/adapter/cloudinary"
	"photoshare/internal/config"
	"photoshare/internal/database"
	"photoshare/internal/middleware"
	"photoshare/internal/modules/auth"
	"photoshare/internal/modules/comments"
	"photoshare/internal/modules/images"
	"photoshare/internal/modules/ratings"
	jwtsvc "photoshare/internal/pkg/jwt"
	"photoshare/internal/pkg/publicid"
	"photoshare/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	imageRepo := repository.NewImageRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	engine := cloudinary.New(cfg.Cloudinary)
	limiter := middleware.NewRateLimiter()

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	imageService := images.NewService(imageRepo, userRepo, engine, publicid.Random{})
	imageHandler := images.NewHandler(imageService)

	ratingService := ratings.NewService(ratingRepo, imageRepo)
	ratingHandler := ratings.NewHandler(ratingService)

	commentService := comments.NewService(commentRepo, imageRepo)
	commentHandler := comments.NewHandler(commentService)

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(gin.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			imageHandler.RegisterRoutes(protected, limiter)
			ratingHandler.RegisterRoutes(protected, limiter)
			commentHandler.RegisterRoutes(protected, limiter)
		}
	}

	log.Printf("listening on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal(err)
	}
}
