package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskpilot/taskpilot-api/internal/config"
	"github.com/taskpilot/taskpilot-api/internal/database"
	"github.com/taskpilot/taskpilot-api/internal/handlers"
	"github.com/taskpilot/taskpilot-api/internal/middleware"
	"github.com/taskpilot/taskpilot-api/internal/repository"
	"github.com/taskpilot/taskpilot-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)

	// Initialize services
	tokenService := services.NewTokenService(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, tokenService)
	taskService := services.NewTaskService(taskRepo)
	adviceService := services.NewAdviceService(interactionRepo, rand.New(rand.NewSource(time.Now().UnixNano())))

	// Start the interaction retention sweep
	retentionService := services.NewRetentionService(interactionRepo)
	if err := retentionService.Start(); err != nil {
		log.Fatalf("Failed to start retention sweep: %v", err)
	}
	defer retentionService.Stop()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	aiHandler := handlers.NewAIHandler(adviceService, taskService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "TaskPilot API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.RequireAuth(tokenService), authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(tokenService), authHandler.GetCurrentUser)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(tokenService))
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/stats/overview", taskHandler.GetStats)
			tasks.GET("/stats/analytics", taskHandler.GetAnalytics)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.POST("/:id/complete", taskHandler.CompleteTask)
			tasks.POST("/:id/subtasks", taskHandler.AddSubtask)
			tasks.POST("/:id/notes", taskHandler.AddNote)
		}

		// Assistant routes (protected)
		ai := api.Group("/ai")
		ai.Use(middleware.RequireAuth(tokenService))
		{
			ai.POST("/chat", aiHandler.Chat)
			ai.POST("/suggestions", aiHandler.Suggestions)
			ai.POST("/insights", aiHandler.Insights)
			ai.POST("/feedback", aiHandler.Feedback)
			ai.GET("/history", aiHandler.History)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
