package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"travelreview/internal/handler"
	"travelreview/internal/middleware"
	"travelreview/internal/mongo"
	"travelreview/internal/repository"
	"travelreview/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}

	applyMigrations(db)

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	mongoDB := os.Getenv("MONGO_DB")
	if mongoDB == "" {
		mongoDB = "travelreview"
	}
	mongoClient := mongo.NewClient(mongoURI)

	userRepo := repository.NewUserRepository(db)
	destinationRepo := repository.NewDestinationRepository(db)
	placeRepo := repository.NewPlaceRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	tripRepo := repository.NewTripRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	photoStore := repository.NewPhotoStore(mongoClient, mongoDB)

	userSvc := service.NewUserService(userRepo)
	placeSvc := service.NewPlaceService(placeRepo, destinationRepo, photoRepo)
	reviewSvc := service.NewReviewService(db, reviewRepo, historyRepo, placeRepo, userRepo)
	tripSvc := service.NewTripService(tripRepo, placeRepo, userRepo)
	statsSvc := service.NewStatsService(statsRepo, destinationRepo)
	photoSvc := service.NewPhotoService(photoStore, photoRepo, placeRepo, userRepo)

	userHandler := handler.NewUserHandler(userSvc)
	placeHandler := handler.NewPlaceHandler(placeSvc)
	reviewHandler := handler.NewReviewHandler(reviewSvc)
	tripHandler := handler.NewTripHandler(tripSvc)
	statsHandler := handler.NewStatsHandler(statsSvc)
	photoHandler := handler.NewPhotoHandler(photoSvc)

	r := gin.Default()
	api := r.Group("/api")

	// Open routes.
	api.POST("/users", userHandler.Register)
	api.GET("/users/:id", userHandler.GetUser)
	api.GET("/destinations", placeHandler.ListDestinations)
	api.GET("/destinations/:id/rating", statsHandler.DestinationRating)
	api.GET("/places", placeHandler.SearchPlaces)
	api.GET("/places/:id", placeHandler.GetPlace)
	api.GET("/places/:id/reviews", reviewHandler.GetReviews)
	api.GET("/places/:id/history", reviewHandler.GetHistory)
	api.GET("/stats/places", statsHandler.PlaceStats)
	api.GET("/trips/:id/places", tripHandler.Itinerary)
	api.GET("/photos/:id", photoHandler.Download)

	// Authenticated routes.
	protected := api.Group("/")
	protected.Use(middleware.Authenticate())
	{
		protected.PUT("/users/:id", userHandler.UpdateProfile)
		protected.POST("/places", placeHandler.CreatePlace)
		protected.POST("/places/:id/reviews", reviewHandler.CreateReview)
		protected.PUT("/reviews/:id", reviewHandler.UpdateReview)
		protected.DELETE("/reviews/:id", reviewHandler.DeleteReview)
		protected.POST("/trips", tripHandler.CreateTrip)
		protected.POST("/trips/:id/places", tripHandler.AddPlace)
		protected.DELETE("/trips/:id/places/:placeId", tripHandler.RemovePlace)
		protected.POST("/places/:id/photos", photoHandler.Upload)
	}

	// Moderation routes.
	admin := api.Group("/")
	admin.Use(middleware.AdminOnly())
	{
		admin.POST("/destinations", placeHandler.CreateDestination)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("travel review service running on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// applyMigrations runs every migrations/*.sql file in its own transaction.
func applyMigrations(db *sqlx.DB) {
	files, err := filepath.Glob("migrations/*.sql")
	if err != nil {
		return
	}
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			log.Printf("migration %s: read failed: %v", file, err)
			continue
		}
		tx, err := db.Begin()
		if err != nil {
			log.Printf("migration %s: begin failed: %v", file, err)
			continue
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			log.Printf("migration %s failed: %v", file, err)
			continue
		}
		if err := tx.Commit(); err != nil {
			log.Printf("migration %s: commit failed: %v", file, err)
			continue
		}
		log.Printf("migration %s applied", file)
	}
}
