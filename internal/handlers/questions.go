package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/quora-clone/backend/internal/apperror"
	"github.com/emilythestrangee/quora-clone/backend/internal/database"
	"github.com/emilythestrangee/quora-clone/backend/internal/models"
)

const invalidQuestionID = "Invalid question id."

type QuestionHandler struct {
	store QuestionStore
}

func NewQuestionHandler(store QuestionStore) *QuestionHandler {
	return &QuestionHandler{store: store}
}

// CreateQuestion handles POST /questions
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var input models.CreateQuestionRequest
	if err := bindBody(c, &input); err != nil {
		fail(c, err)
		return
	}

	if !input.Title.Set || !isNonBlank(input.Title.Value) {
		fail(c, apperror.Validation("Title is required."))
		return
	}
	if err := validateOptionalFields(input.Description, input.Category); err != nil {
		fail(c, err)
		return
	}

	question := models.Question{
		Title:       strings.TrimSpace(input.Title.Value),
		Description: input.Description.Ptr(),
		Category:    input.Category.Ptr(),
	}
	if err := h.store.CreateQuestion(c.Request.Context(), &question); err != nil {
		fail(c, apperror.Internal("Unable to create question.", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Question created successfully.",
		"id":      question.ID,
	})
}

// GetQuestions handles GET /questions
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	questions, err := h.store.ListQuestions(c.Request.Context())
	if err != nil {
		fail(c, apperror.Internal("Unable to fetch questions.", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": questions})
}

// GetQuestion handles GET /questions/:questionId
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, err := pathID(c, "questionId", invalidQuestionID)
	if err != nil {
		fail(c, err)
		return
	}

	question, err := h.store.GetQuestion(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		fail(c, apperror.NotFound("Question not found."))
		return
	}
	if err != nil {
		fail(c, apperror.Internal("Unable to fetch question.", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": question})
}

// UpdateQuestion handles PUT /questions/:questionId. Only the fields sent
// with a non-null value change.
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id, err := pathID(c, "questionId", invalidQuestionID)
	if err != nil {
		fail(c, err)
		return
	}

	var input models.UpdateQuestionRequest
	if err := bindBody(c, &input); err != nil {
		fail(c, err)
		return
	}

	if input.Title.Invalid || (input.Title.Set && !isNonBlank(input.Title.Value)) {
		fail(c, apperror.Validation("Title must be a non-empty string."))
		return
	}
	if err := validateOptionalFields(input.Description, input.Category); err != nil {
		fail(c, err)
		return
	}

	patch := models.QuestionPatch{
		Description: input.Description.Ptr(),
		Category:    input.Category.Ptr(),
	}
	if input.Title.Set {
		title := strings.TrimSpace(input.Title.Value)
		patch.Title = &title
	}

	err = h.store.UpdateQuestion(c.Request.Context(), id, patch)
	if errors.Is(err, database.ErrNotFound) {
		fail(c, apperror.NotFound("Question not found."))
		return
	}
	if err != nil {
		fail(c, apperror.Internal("Unable to update question.", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question updated successfully."})
}

// DeleteQuestion handles DELETE /questions/:questionId
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id, err := pathID(c, "questionId", invalidQuestionID)
	if err != nil {
		fail(c, err)
		return
	}

	err = h.store.DeleteQuestion(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		fail(c, apperror.NotFound("Question not found."))
		return
	}
	if err != nil {
		fail(c, apperror.Internal("Unable to delete question.", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question post has been deleted successfully."})
}

// SearchQuestions handles GET /questions/search?title=&category=
func (h *QuestionHandler) SearchQuestions(c *gin.Context) {
	filter := models.QuestionFilter{
		Title:    c.Query("title"),
		Category: c.Query("category"),
	}
	if filter.Title == "" && filter.Category == "" {
		fail(c, apperror.Validation("Invalid search parameters."))
		return
	}

	questions, err := h.store.SearchQuestions(c.Request.Context(), filter)
	if err != nil {
		fail(c, apperror.Internal("Unable to search questions.", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": questions})
}

// VoteQuestion handles POST /questions/:questionId/vote
func (h *QuestionHandler) VoteQuestion(c *gin.Context) {
	id, err := pathID(c, "questionId", invalidQuestionID)
	if err != nil {
		fail(c, err)
		return
	}

	var input models.VoteRequest
	if err := bindBody(c, &input); err != nil {
		fail(c, err)
		return
	}
	vote, ok := input.Value()
	if !ok {
		fail(c, apperror.Validation("Invalid vote value."))
		return
	}

	ctx := c.Request.Context()
	exists, err := h.store.QuestionExists(ctx, id)
	if err != nil {
		fail(c, apperror.Internal("Unable to vote question.", err))
		return
	}
	if !exists {
		fail(c, apperror.NotFound("Question not found."))
		return
	}

	if err := h.store.AddQuestionVote(ctx, id, vote); err != nil {
		fail(c, apperror.Internal("Unable to vote question.", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vote on the question has been recorded successfully."})
}

func validateOptionalFields(description, category models.OptionalString) error {
	if description.Invalid {
		return apperror.Validation("Description must be a string.")
	}
	if category.Invalid {
		return apperror.Validation("Category must be a string.")
	}
	return nil
}
