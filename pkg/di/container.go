package di

import (
	"context"

	"classroom-qa-demo/backend/ai"
	assistantrepo "classroom-qa-demo/backend/assistant/repository"
	assistantservice "classroom-qa-demo/backend/assistant/service"
	forumrepo "classroom-qa-demo/backend/forum/repository"
	forumservice "classroom-qa-demo/backend/forum/service"
	"classroom-qa-demo/backend/pkg/config"
	"classroom-qa-demo/backend/pkg/logger"
	"classroom-qa-demo/backend/pkg/middleware"
	userrepo "classroom-qa-demo/backend/user/repository"
	userservice "classroom-qa-demo/backend/user/service"

	"gorm.io/gorm"
)

// Container holds all the dependencies for the application
type Container struct {
	DB              *gorm.DB
	Logger          *logger.Logger
	Metrics         *middleware.Metrics
	ModelClient     ai.Client
	UserService     *userservice.UserService
	ForumService    *forumservice.ForumService
	SnapshotBuilder *forumservice.SnapshotBuilder
	ChatService     *assistantservice.ChatService
}

// New wires repositories, services and the model client together. When no
// Gemini API key is configured the model client stays nil and chat
// endpoints answer 503 while the forum keeps working.
func New(db *gorm.DB, cfg *config.Config, log *logger.Logger) (*Container, error) {
	users := userservice.NewUserService(userrepo.NewGormUserRepository(db))

	questionRepo := forumrepo.NewGormQuestionRepository(db)
	forum := forumservice.NewForumService(
		questionRepo,
		forumrepo.NewGormCommentRepository(db),
		forumrepo.NewGormQuestionReactionStore(db),
		forumrepo.NewGormCommentReactionStore(db),
		users,
		log,
	)
	snapshot := forumservice.NewSnapshotBuilder(questionRepo)

	var modelClient ai.Client
	if cfg.AI.GeminiAPIKey != "" {
		client, err := ai.NewGeminiClient(context.Background(), ai.Config{
			APIKey:  cfg.AI.GeminiAPIKey,
			Model:   cfg.AI.Model,
			Timeout: cfg.AI.Timeout,
		})
		if err != nil {
			return nil, err
		}
		modelClient = client
	} else {
		log.Warn("GEMINI_API_KEY not set, assistant endpoints will return 503")
	}

	transcript := assistantservice.NewTranscriptService(
		assistantrepo.NewGormSessionRepository(db),
		assistantrepo.NewGormMessageRepository(db),
	)
	assembler := assistantservice.NewContextAssembler(
		transcript,
		snapshot,
		cfg.Features.ChatSnapshotLimit,
		cfg.Features.InsightSnapshotLimit,
	)
	chat := assistantservice.NewChatService(assembler, transcript, modelClient, log)

	return &Container{
		DB:              db,
		Logger:          log,
		Metrics:         middleware.NewMetrics(),
		ModelClient:     modelClient,
		UserService:     users,
		ForumService:    forum,
		SnapshotBuilder: snapshot,
		ChatService:     chat,
	}, nil
}
