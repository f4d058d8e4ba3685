package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	assistantmodels "classroom-qa-demo/backend/assistant/models"
	forummodels "classroom-qa-demo/backend/forum/models"
	"classroom-qa-demo/backend/pkg/config"
	"classroom-qa-demo/backend/pkg/di"
	"classroom-qa-demo/backend/pkg/logger"
	"classroom-qa-demo/backend/pkg/router"
	usermodels "classroom-qa-demo/backend/user/models"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.New()

	// Initialize structured logger
	logConfig := logger.DefaultConfig()
	logConfig.Level = cfg.Logging.Level
	logConfig.JSON = cfg.Logging.Format != "text"

	appLog := logger.New(logConfig)
	logger.SetGlobal(appLog)

	appLog.Info("starting application", "version", os.Getenv("APP_VERSION"))

	// Initialize database
	db, err := config.NewDB()
	if err != nil {
		appLog.LogError(err, "failed to initialize database")
		os.Exit(1)
	}

	// Auto-migrate the schema
	if err := db.AutoMigrate(
		&usermodels.User{},
		&forummodels.Question{},
		&forummodels.Comment{},
		&forummodels.QuestionReaction{},
		&forummodels.CommentReaction{},
		&assistantmodels.ChatSession{},
		&assistantmodels.ChatMessage{},
	); err != nil {
		appLog.LogError(err, "failed to migrate database")
		os.Exit(1)
	}

	// Toggle lookups and tallies scan reactions by target
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_question_reactions_target_user ON question_reactions(question_id, user_id)").Error; err != nil {
		appLog.LogError(err, "failed to create reaction index", "index", "idx_question_reactions_target_user")
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_comment_reactions_target_user ON comment_reactions(comment_id, user_id)").Error; err != nil {
		appLog.LogError(err, "failed to create reaction index", "index", "idx_comment_reactions_target_user")
	}

	// Initialize dependency injection container
	container, err := di.New(db, cfg, appLog)
	if err != nil {
		appLog.LogError(err, "failed to initialize dependency container")
		os.Exit(1)
	}

	// Initialize and setup router
	r := router.New(container)
	r.SetupRoutes()

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r.Engine,
	}

	// Start the server in a goroutine
	go func() {
		appLog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.LogError(err, "server failed to start")
			os.Exit(1)
		}
	}()

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLog.LogError(err, "server forced to shutdown")
	}

	appLog.Info("server exited gracefully")
}
