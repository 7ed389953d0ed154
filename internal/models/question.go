package models

// Question is a row of the questions table.
type Question struct {
	ID          int64   `gorm:"primaryKey" json:"id"`
	Title       string  `gorm:"type:text;not null" json:"title"`
	Description *string `gorm:"type:text" json:"description"`
	Category    *string `gorm:"type:text" json:"category"`
}

// QuestionWithVotes is a question annotated with the sum of its votes.
type QuestionWithVotes struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	TotalVotes  int64   `json:"total_votes"`
}

// QuestionPatch holds the fields of a partial update. Nil fields keep
// their stored value.
type QuestionPatch struct {
	Title       *string
	Description *string
	Category    *string
}

// QuestionFilter selects questions by case-insensitive substring. Empty
// fields are not applied.
type QuestionFilter struct {
	Title    string
	Category string
}

type CreateQuestionRequest struct {
	Title       OptionalString `json:"title"`
	Description OptionalString `json:"description"`
	Category    OptionalString `json:"category"`
}

type UpdateQuestionRequest struct {
	Title       OptionalString `json:"title"`
	Description OptionalString `json:"description"`
	Category    OptionalString `json:"category"`
}
