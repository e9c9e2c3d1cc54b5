package main

import (
	"bytes"
	"context"
	"log"
	"time"

	"github.com/jxnhiro/blog-api/internal/auth"
	"github.com/jxnhiro/blog-api/internal/config"
	"github.com/jxnhiro/blog-api/internal/db"
	apperrors "github.com/jxnhiro/blog-api/internal/errors"
	"github.com/jxnhiro/blog-api/internal/repository"
	"github.com/jxnhiro/blog-api/internal/service"
	"github.com/jxnhiro/blog-api/internal/storage"
)

const (
	seedEmail    = "author@example.com"
	seedPassword = "pw12345"
	seedName     = "Seed Author"
)

// pngPixel is a 1x1 transparent PNG used as the seed image.
var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

var seedPosts = []struct {
	title   string
	content string
}{
	{"Hello World", "The very first post on this feed."},
	{"Second Post", "Pagination needs more than one page of content."},
	{"Third Post", "Three posts make two pages at two posts per page."},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	database, err := db.NewMongo(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	imageStore, err := storage.NewDiskStore(cfg.ImageDir)
	if err != nil {
		log.Fatalf("Failed to init image store: %v", err)
	}

	userRepo := repository.NewUserRepository(database)
	postRepo := repository.NewPostRepository(database)
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	authService := service.NewAuthService(userRepo, jwtService)
	feedService := service.NewFeedService(postRepo, userRepo, imageStore)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := authService.Signup(ctx, seedEmail, seedPassword, seedName)
	if err != nil {
		if !apperrors.IsKind(err, apperrors.Conflict) {
			log.Fatalf("Failed to create seed user: %v", err)
		}
		log.Printf("Seed user %s already exists, skipping", seedEmail)
		return
	}

	for _, p := range seedPosts {
		imagePath, err := imageStore.Store(bytes.NewReader(pngPixel))
		if err != nil {
			log.Fatalf("Failed to store seed image: %v", err)
		}
		post, _, err := feedService.CreatePost(ctx, user.ID.Hex(), p.title, p.content, imagePath)
		if err != nil {
			log.Fatalf("Failed to create seed post %q: %v", p.title, err)
		}
		log.Printf("Created post %s (%s)", post.ID.Hex(), post.Title)
	}

	log.Printf("Seed complete: user %s with %d posts", user.ID.Hex(), len(seedPosts))
}
