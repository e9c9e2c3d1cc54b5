package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/jxnhiro/blog-api/internal/auth"
	"github.com/jxnhiro/blog-api/internal/config"
	"github.com/jxnhiro/blog-api/internal/db"
	"github.com/jxnhiro/blog-api/internal/graph"
	"github.com/jxnhiro/blog-api/internal/handler"
	"github.com/jxnhiro/blog-api/internal/repository"
	"github.com/jxnhiro/blog-api/internal/router"
	"github.com/jxnhiro/blog-api/internal/service"
	"github.com/jxnhiro/blog-api/internal/storage"
)

func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	database, err := db.NewMongo(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	imageStore, err := storage.NewDiskStore(cfg.ImageDir)
	if err != nil {
		log.Fatalf("image store init: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(database)
	postRepo := repository.NewPostRepository(database)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	feedService := service.NewFeedService(postRepo, userRepo, imageStore)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	feedHandler := handler.NewFeedHandler(feedService, imageStore)

	schema, err := graph.NewSchema(authService, feedService)
	if err != nil {
		log.Fatalf("graphql schema init: %v", err)
	}
	graphqlHandler := handler.NewGraphQLHandler(schema)

	// Register routes
	router.Register(e, cfg, jwtService, authHandler, feedHandler, graphqlHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
