package handlers

import (
	"context"

	"github.com/emilythestrangee/quora-clone/backend/internal/models"
)

// QuestionStore is the data access the question operations need.
type QuestionStore interface {
	CreateQuestion(ctx context.Context, q *models.Question) error
	ListQuestions(ctx context.Context) ([]models.QuestionWithVotes, error)
	GetQuestion(ctx context.Context, id int64) (*models.QuestionWithVotes, error)
	SearchQuestions(ctx context.Context, f models.QuestionFilter) ([]models.QuestionWithVotes, error)
	QuestionExists(ctx context.Context, id int64) (bool, error)
	UpdateQuestion(ctx context.Context, id int64, p models.QuestionPatch) error
	DeleteQuestion(ctx context.Context, id int64) error
	AddQuestionVote(ctx context.Context, questionID int64, vote int16) error
}

// AnswerStore is the data access the answer operations need. Answers are
// scoped to a question, so it also checks question existence.
type AnswerStore interface {
	QuestionExists(ctx context.Context, id int64) (bool, error)
	CreateAnswer(ctx context.Context, a *models.Answer) error
	ListAnswers(ctx context.Context, questionID int64) ([]models.AnswerWithVotes, error)
	DeleteAnswers(ctx context.Context, questionID int64) (int64, error)
	AnswerExists(ctx context.Context, id int64) (bool, error)
	AddAnswerVote(ctx context.Context, answerID int64, vote int16) error
}

type Store interface {
	QuestionStore
	AnswerStore
}

// Handler combines all handler types
type Handler struct {
	Question *QuestionHandler
	Answer   *AnswerHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(store Store) *Handler {
	return &Handler{
		Question: NewQuestionHandler(store),
		Answer:   NewAnswerHandler(store),
	}
}
