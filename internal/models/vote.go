package models

import (
	"encoding/json"
	"math"
)

const (
	Upvote   = 1
	Downvote = -1
)

// QuestionVote is one append-only vote on a question.
type QuestionVote struct {
	ID         int64 `gorm:"primaryKey" json:"id"`
	QuestionID int64 `gorm:"not null;index" json:"question_id"`
	Vote       int16 `gorm:"not null;check:vote IN (-1, 1)" json:"vote"`
}

// AnswerVote is one append-only vote on an answer.
type AnswerVote struct {
	ID       int64 `gorm:"primaryKey" json:"id"`
	AnswerID int64 `gorm:"not null;index" json:"answer_id"`
	Vote     int16 `gorm:"not null;check:vote IN (-1, 1)" json:"vote"`
}

type VoteRequest struct {
	Vote json.RawMessage `json:"vote"`
}

// Value reports the vote as +1 or -1. Anything other than the JSON
// numbers 1 and -1 (strings, booleans, 2, 0.5, null) is rejected.
func (r VoteRequest) Value() (int16, bool) {
	if len(r.Vote) == 0 {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(r.Vote, &n); err != nil {
		return 0, false
	}
	if math.IsNaN(n) {
		return 0, false
	}
	switch n {
	case Upvote:
		return Upvote, true
	case Downvote:
		return Downvote, true
	}
	return 0, false
}
