package router

import (
	assistantapi "classroom-qa-demo/backend/assistant/api"
	forumapi "classroom-qa-demo/backend/forum/api"
	"classroom-qa-demo/backend/pkg/config"
	"classroom-qa-demo/backend/pkg/di"
	"classroom-qa-demo/backend/pkg/errors"
	"classroom-qa-demo/backend/pkg/logger"
	userapi "classroom-qa-demo/backend/user/api"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Router is the main router for the application
type Router struct {
	Engine    *gin.Engine
	Container *di.Container
	Logger    *logger.Logger
	Config    *config.Config
}

// New creates a new router with the given container
func New(container *di.Container) *Router {
	logger.SetGlobal(container.Logger)
	cfg := config.Get()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Logger middleware first so every request gets a scoped logger
	engine.Use(logger.Middleware(container.Logger))
	engine.Use(errors.ErrorHandler())
	engine.Use(errors.RecoveryWithLogger())
	engine.Use(container.Metrics.Middleware())

	corsConfig := cors.DefaultConfig()
	if len(cfg.Security.AllowedOrigins) == 1 && cfg.Security.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.Security.AllowedOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "X-Request-ID")
	engine.Use(cors.New(corsConfig))

	return &Router{
		Engine:    engine,
		Container: container,
		Logger:    container.Logger,
		Config:    cfg,
	}
}

// SetupRoutes registers all application routes
func (r *Router) SetupRoutes() {
	userHandler := userapi.NewUserHandler(r.Container.UserService)
	forumHandler := forumapi.NewForumHandler(r.Container.ForumService)
	chatHandler := assistantapi.NewChatHandler(r.Container.ChatService)

	r.setupHealthRoutes()
	r.Engine.GET("/metrics", r.Container.Metrics.Handler())

	// API version 1 routes
	v1 := r.Engine.Group("/api/v1")
	registerRoutes(v1, userHandler, forumHandler, chatHandler)

	// Legacy unversioned routes kept for the existing frontend
	registerRoutes(r.Engine.Group("/"), userHandler, forumHandler, chatHandler)
}

func registerRoutes(g *gin.RouterGroup, userHandler *userapi.UserHandler, forumHandler *forumapi.ForumHandler, chatHandler *assistantapi.ChatHandler) {
	g.POST("/login", userHandler.Login)

	chat := g.Group("/chat")
	{
		chat.POST("", chatHandler.PostMessage)
		chat.GET("/history", chatHandler.GetHistory)
		chat.POST("/insight", chatHandler.Insight)
	}

	questions := g.Group("/questions")
	{
		questions.GET("", forumHandler.ListQuestions)
		questions.POST("", forumHandler.CreateQuestion)
		questions.PUT("/:id", forumHandler.UpdateQuestion)
		questions.PUT("/:id/resolve", forumHandler.ResolveQuestion)
		questions.DELETE("/:id", forumHandler.DeleteQuestion)
		questions.POST("/:id/react", forumHandler.ReactToQuestion)
		questions.GET("/:id/comments", forumHandler.ListComments)
		questions.POST("/:id/comments", forumHandler.CreateComment)
	}

	comments := g.Group("/comments")
	{
		comments.PUT("/:id", forumHandler.UpdateComment)
		comments.DELETE("/:id", forumHandler.DeleteComment)
		comments.POST("/:id/react", forumHandler.ReactToComment)
	}
}
