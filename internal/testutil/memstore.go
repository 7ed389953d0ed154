// Package testutil provides test doubles and fixtures shared by the
// package tests.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/emilythestrangee/quora-clone/backend/internal/database"
	"github.com/emilythestrangee/quora-clone/backend/internal/models"
)

// MemStore is an in-memory stand-in for database.Store with the same
// observable behaviour: ids start at 1, votes are summed on read and
// nothing cascades. Setting Err makes every call fail with it.
type MemStore struct {
	mu sync.Mutex

	Err error

	questions     map[int64]models.Question
	answers       map[int64]models.Answer
	questionVotes []models.QuestionVote
	answerVotes   []models.AnswerVote
	nextQuestion  int64
	nextAnswer    int64
}

func NewMemStore() *MemStore {
	return &MemStore{
		questions: make(map[int64]models.Question),
		answers:   make(map[int64]models.Answer),
	}
}

func (m *MemStore) CreateQuestion(_ context.Context, q *models.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.nextQuestion++
	q.ID = m.nextQuestion
	m.questions[q.ID] = *q
	return nil
}

func (m *MemStore) questionRow(q models.Question) models.QuestionWithVotes {
	row := models.QuestionWithVotes{ID: q.ID, Title: q.Title, Description: q.Description, Category: q.Category}
	for _, v := range m.questionVotes {
		if v.QuestionID == q.ID {
			row.TotalVotes += int64(v.Vote)
		}
	}
	return row
}

func (m *MemStore) filterQuestions(keep func(models.Question) bool) []models.QuestionWithVotes {
	rows := []models.QuestionWithVotes{}
	for _, q := range m.questions {
		if keep(q) {
			rows = append(rows, m.questionRow(q))
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}

func (m *MemStore) ListQuestions(_ context.Context) ([]models.QuestionWithVotes, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.filterQuestions(func(models.Question) bool { return true }), nil
}

func (m *MemStore) GetQuestion(_ context.Context, id int64) (*models.QuestionWithVotes, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	q, ok := m.questions[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	row := m.questionRow(q)
	return &row, nil
}

func (m *MemStore) SearchQuestions(_ context.Context, f models.QuestionFilter) ([]models.QuestionWithVotes, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	contains := func(field *string, want string) bool {
		if want == "" {
			return true
		}
		return field != nil && strings.Contains(strings.ToLower(*field), strings.ToLower(want))
	}
	return m.filterQuestions(func(q models.Question) bool {
		return contains(&q.Title, f.Title) && contains(q.Category, f.Category)
	}), nil
}

func (m *MemStore) QuestionExists(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	_, ok := m.questions[id]
	return ok, nil
}

func (m *MemStore) UpdateQuestion(_ context.Context, id int64, p models.QuestionPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	q, ok := m.questions[id]
	if !ok {
		return database.ErrNotFound
	}
	if p.Title != nil {
		q.Title = *p.Title
	}
	if p.Description != nil {
		q.Description = p.Description
	}
	if p.Category != nil {
		q.Category = p.Category
	}
	m.questions[id] = q
	return nil
}

func (m *MemStore) DeleteQuestion(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.questions[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.questions, id)
	return nil
}

func (m *MemStore) AddQuestionVote(_ context.Context, questionID int64, vote int16) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.questionVotes = append(m.questionVotes, models.QuestionVote{
		ID:         int64(len(m.questionVotes) + 1),
		QuestionID: questionID,
		Vote:       vote,
	})
	return nil
}

func (m *MemStore) CreateAnswer(_ context.Context, a *models.Answer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.nextAnswer++
	a.ID = m.nextAnswer
	m.answers[a.ID] = *a
	return nil
}

func (m *MemStore) ListAnswers(_ context.Context, questionID int64) ([]models.AnswerWithVotes, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	rows := []models.AnswerWithVotes{}
	for _, a := range m.answers {
		if a.QuestionID != questionID {
			continue
		}
		row := models.AnswerWithVotes{ID: a.ID, Content: a.Content}
		for _, v := range m.answerVotes {
			if v.AnswerID == a.ID {
				row.TotalVotes += int64(v.Vote)
			}
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows, nil
}

func (m *MemStore) DeleteAnswers(_ context.Context, questionID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	var n int64
	for id, a := range m.answers {
		if a.QuestionID == questionID {
			delete(m.answers, id)
			n++
		}
	}
	return n, nil
}

func (m *MemStore) AnswerExists(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	_, ok := m.answers[id]
	return ok, nil
}

func (m *MemStore) AddAnswerVote(_ context.Context, answerID int64, vote int16) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.answerVotes = append(m.answerVotes, models.AnswerVote{
		ID:       int64(len(m.answerVotes) + 1),
		AnswerID: answerID,
		Vote:     vote,
	})
	return nil
}

// AnswerVoteCount reports how many vote rows exist for an answer, whether
// or not the answer itself still exists.
func (m *MemStore) AnswerVoteCount(answerID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, v := range m.answerVotes {
		if v.AnswerID == answerID {
			n++
		}
	}
	return n
}

func (m *MemStore) Health(_ context.Context) map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return map[string]string{"status": "down", "error": m.Err.Error()}
	}
	return map[string]string{"status": "up"}
}

// SetErr makes subsequent calls fail with err, or succeed again when nil.
func (m *MemStore) SetErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Err = err
}
