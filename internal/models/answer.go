package models

// Answer is a row of the answers table. QuestionID is indexed but carries
// no foreign key, so removing a question leaves its answers in place.
type Answer struct {
	ID         int64  `gorm:"primaryKey" json:"id"`
	QuestionID int64  `gorm:"not null;index" json:"question_id"`
	Content    string `gorm:"type:text;not null" json:"content"`
}

// AnswerWithVotes is the listing shape of an answer.
type AnswerWithVotes struct {
	ID         int64  `json:"id"`
	Content    string `json:"content"`
	TotalVotes int64  `json:"total_votes"`
}

type CreateAnswerRequest struct {
	Content OptionalString `json:"content"`
}
