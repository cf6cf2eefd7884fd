package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/yuhcee/trivia-api/internal/database"
	"github.com/yuhcee/trivia-api/internal/handler"
	"github.com/yuhcee/trivia-api/internal/repository/postgres"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Initialize database connection
	pool, err := database.ConnectPostgres(database.NewPostgresConfig())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Initialize repositories
	questionRepo := postgres.NewQuestionRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)

	// Initialize handlers
	questionHandler := handler.NewQuestionHandler(questionRepo, categoryRepo)
	categoryHandler := handler.NewCategoryHandler(categoryRepo, questionRepo)
	quizHandler := handler.NewQuizHandler(questionRepo)

	// Initialize Echo
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.JSONErrorHandler

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodPatch, http.MethodPost, http.MethodDelete, http.MethodOptions},
		ExposeHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	// Routes
	questionHandler.Register(e)
	categoryHandler.Register(e)
	quizHandler.Register(e)

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start server
	go func() {
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}
