package main

import (
	"log"

	"quizdesk/config"
	"quizdesk/handlers"
	"quizdesk/models"
	"quizdesk/routes"
	"quizdesk/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.Examinee{},
		&models.Quiz{},
		&models.Question{},
		&models.Answer{},
		&models.ExamineeAnswer{},
		&models.TakenQuiz{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis (token revocation)
	redisClient := config.InitRedis(cfg)

	// Initialize services
	authService := services.NewAuthService(db, redisClient, cfg.JWTSecret)
	quizService := services.NewQuizService(db)
	progressionService := services.NewProgressionService(db)
	profileService := services.NewProfileService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	quizHandler := handlers.NewQuizHandler(quizService)
	takeHandler := handlers.NewTakeHandler(progressionService, quizService)
	profileHandler := handlers.NewProfileHandler(profileService)

	// Setup Gin router
	router := gin.Default()
	router.Use(cors.Default())

	// Setup routes
	routes.SetupRoutes(router, authService, authHandler, quizHandler, takeHandler, profileHandler)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
