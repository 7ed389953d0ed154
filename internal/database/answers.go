package database

import (
	"context"
	"fmt"

	"github.com/emilythestrangee/quora-clone/backend/internal/models"
)

func (s *Store) CreateAnswer(ctx context.Context, a *models.Answer) error {
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("insert answer: %w", err)
	}
	return nil
}

func (s *Store) ListAnswers(ctx context.Context, questionID int64) ([]models.AnswerWithVotes, error) {
	answers := []models.AnswerWithVotes{}
	err := s.db.WithContext(ctx).
		Model(&models.Answer{}).
		Select("answers.id, answers.content, COALESCE(SUM(answer_votes.vote), 0) AS total_votes").
		Joins("LEFT JOIN answer_votes ON answer_votes.answer_id = answers.id").
		Where("answers.question_id = ?", questionID).
		Group("answers.id, answers.content").
		Order("answers.id ASC").
		Scan(&answers).Error
	if err != nil {
		return nil, fmt.Errorf("list answers for question %d: %w", questionID, err)
	}
	return answers, nil
}

// DeleteAnswers removes every answer of a question and reports how many
// went. Votes on those answers are left in place.
func (s *Store) DeleteAnswers(ctx context.Context, questionID int64) (int64, error) {
	res := s.db.WithContext(ctx).Where("question_id = ?", questionID).Delete(&models.Answer{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete answers for question %d: %w", questionID, res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Store) AnswerExists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Answer{}).Where("id = ?", id).Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check answer %d: %w", id, err)
	}
	return n > 0, nil
}

func (s *Store) AddAnswerVote(ctx context.Context, answerID int64, vote int16) error {
	v := models.AnswerVote{AnswerID: answerID, Vote: vote}
	if err := s.db.WithContext(ctx).Create(&v).Error; err != nil {
		return fmt.Errorf("insert answer vote: %w", err)
	}
	return nil
}
