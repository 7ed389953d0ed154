package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emilythestrangee/quora-clone/backend/internal/config"
	"github.com/emilythestrangee/quora-clone/backend/internal/handlers"
	"github.com/emilythestrangee/quora-clone/backend/internal/middleware"
)

// Store is everything the routes need from the data layer.
type Store interface {
	handlers.Store
	Health(ctx context.Context) map[string]string
}

type Server struct {
	cfg     config.Config
	log     *zap.Logger
	store   Store
	handler *handlers.Handler
}

func New(cfg config.Config, store Store, log *zap.Logger) *Server {
	return &Server{
		cfg:     cfg,
		log:     log,
		store:   store,
		handler: handlers.NewHandler(store),
	}
}

// NewServer creates and configures a new server
func NewServer(cfg config.Config, store Store, log *zap.Logger) *http.Server {
	s := New(cfg, store, log)

	return &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	if s.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	logCauses := !s.cfg.IsProduction()

	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(s.log),
		middleware.CORS(s.cfg.CORSOrigins),
		middleware.Recovery(s.log, logCauses),
		middleware.ErrorHandler(s.log, logCauses),
	)
	r.NoRoute(middleware.NotFound)

	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "msg": "Server API is working 🚀"})
	})
	r.GET("/health", s.health)

	questions := r.Group("/questions")
	{
		questions.POST("", s.handler.Question.CreateQuestion)
		questions.GET("", s.handler.Question.GetQuestions)
		questions.GET("/search", s.handler.Question.SearchQuestions)
		questions.GET("/:questionId", s.handler.Question.GetQuestion)
		questions.PUT("/:questionId", s.handler.Question.UpdateQuestion)
		questions.DELETE("/:questionId", s.handler.Question.DeleteQuestion)
		questions.POST("/:questionId/vote", s.handler.Question.VoteQuestion)

		questions.POST("/:questionId/answers", s.handler.Answer.CreateAnswer)
		questions.GET("/:questionId/answers", s.handler.Answer.GetAnswers)
		questions.DELETE("/:questionId/answers", s.handler.Answer.DeleteAnswers)
	}

	r.POST("/answers/:answerId/vote", s.handler.Answer.VoteAnswer)

	return r
}

func (s *Server) health(c *gin.Context) {
	stats := s.store.Health(c.Request.Context())
	status := http.StatusOK
	if stats["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, stats)
}
