package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/emilythestrangee/quora-clone/backend/internal/models"
)

// ErrNotFound is returned when a statement matched no row.
var ErrNotFound = errors.New("record not found")

const questionColumns = `questions.id, questions.title, questions.description, questions.category,
	COALESCE(SUM(question_votes.vote), 0) AS total_votes`

// questionsWithVotes is the shared aggregation: every question left-joined
// to its votes, one row per question.
func (s *Store) questionsWithVotes(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&models.Question{}).
		Select(questionColumns).
		Joins("LEFT JOIN question_votes ON question_votes.question_id = questions.id").
		Group("questions.id, questions.title, questions.description, questions.category")
}

func (s *Store) CreateQuestion(ctx context.Context, q *models.Question) error {
	if err := s.db.WithContext(ctx).Create(q).Error; err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	return nil
}

func (s *Store) ListQuestions(ctx context.Context) ([]models.QuestionWithVotes, error) {
	questions := []models.QuestionWithVotes{}
	if err := s.questionsWithVotes(ctx).Order("questions.id ASC").Scan(&questions).Error; err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

func (s *Store) GetQuestion(ctx context.Context, id int64) (*models.QuestionWithVotes, error) {
	var questions []models.QuestionWithVotes
	err := s.questionsWithVotes(ctx).
		Where("questions.id = ?", id).
		Limit(1).
		Scan(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("get question %d: %w", id, err)
	}
	if len(questions) == 0 {
		return nil, ErrNotFound
	}
	return &questions[0], nil
}

// SearchQuestions matches each non-empty filter field as a case-insensitive
// substring, all fields combined with AND. LIKE wildcards in the filter are
// passed through.
func (s *Store) SearchQuestions(ctx context.Context, f models.QuestionFilter) ([]models.QuestionWithVotes, error) {
	query := s.questionsWithVotes(ctx)
	if f.Title != "" {
		query = query.Where("LOWER(questions.title) LIKE ?", "%"+strings.ToLower(f.Title)+"%")
	}
	if f.Category != "" {
		query = query.Where("LOWER(questions.category) LIKE ?", "%"+strings.ToLower(f.Category)+"%")
	}

	questions := []models.QuestionWithVotes{}
	if err := query.Order("questions.id ASC").Scan(&questions).Error; err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	return questions, nil
}

func (s *Store) QuestionExists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Question{}).Where("id = ?", id).Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check question %d: %w", id, err)
	}
	return n > 0, nil
}

// UpdateQuestion replaces only the non-nil fields of p. It returns
// ErrNotFound when no question has the id.
func (s *Store) UpdateQuestion(ctx context.Context, id int64, p models.QuestionPatch) error {
	res := s.db.WithContext(ctx).Exec(`
		UPDATE questions
		SET
			title = COALESCE(?, title),
			description = COALESCE(?, description),
			category = COALESCE(?, category)
		WHERE id = ?`,
		p.Title, p.Description, p.Category, id)
	if res.Error != nil {
		return fmt.Errorf("update question %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteQuestion removes the question row only; answers and votes stay.
func (s *Store) DeleteQuestion(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&models.Question{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete question %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) AddQuestionVote(ctx context.Context, questionID int64, vote int16) error {
	v := models.QuestionVote{QuestionID: questionID, Vote: vote}
	if err := s.db.WithContext(ctx).Create(&v).Error; err != nil {
		return fmt.Errorf("insert question vote: %w", err)
	}
	return nil
}
