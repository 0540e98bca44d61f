package routes

import (
	"net/http"

	"quizdesk/handlers"
	"quizdesk/middleware"
	"quizdesk/models"
	"quizdesk/services"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	quizHandler *handlers.QuizHandler,
	takeHandler *handlers.TakeHandler,
	profileHandler *handlers.ProfileHandler,
) {
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.JWTAuth(authService))
		{
			protected.POST("/auth/logout", authHandler.Logout)
			protected.GET("/auth/profile", authHandler.GetProfile)

			protected.GET("/profiles/:username", profileHandler.GetByUsername)
			protected.PUT("/profile", profileHandler.UpdateProfile)

			// Authoring routes (teachers only)
			quizzes := protected.Group("/quizzes")
			quizzes.Use(middleware.RequireRole(models.RoleTeacher))
			{
				quizzes.GET("", quizHandler.ListQuizzes)
				quizzes.POST("", quizHandler.CreateQuiz)
				quizzes.GET("/:id", quizHandler.GetQuiz)
				quizzes.PUT("/:id", quizHandler.UpdateQuiz)
				quizzes.DELETE("/:id", quizHandler.DeleteQuiz)
			}

			// Quiz-taking routes (examinees only)
			take := protected.Group("/take")
			take.Use(middleware.RequireRole(models.RoleExaminee))
			{
				take.GET("/quizzes", takeHandler.AvailableQuizzes)
				take.GET("/taken", takeHandler.TakenQuizzes)
				take.GET("/:id", takeHandler.CurrentQuestion)
				take.POST("/:id/answer", takeHandler.SubmitAnswer)
			}
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
