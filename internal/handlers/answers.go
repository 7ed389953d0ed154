package handlers

import (
	"context"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/quora-clone/backend/internal/apperror"
	"github.com/emilythestrangee/quora-clone/backend/internal/models"
)

type AnswerHandler struct {
	store AnswerStore
}

func NewAnswerHandler(store AnswerStore) *AnswerHandler {
	return &AnswerHandler{store: store}
}

// requireQuestion fails with NotFound when the question is absent. msg is
// the message used if the lookup itself fails.
func (h *AnswerHandler) requireQuestion(ctx context.Context, id int64, msg string) error {
	exists, err := h.store.QuestionExists(ctx, id)
	if err != nil {
		return apperror.Internal(msg, err)
	}
	if !exists {
		return apperror.NotFound("Question not found.")
	}
	return nil
}

// CreateAnswer handles POST /questions/:questionId/answers
func (h *AnswerHandler) CreateAnswer(c *gin.Context) {
	questionID, err := pathID(c, "questionId", invalidQuestionID)
	if err != nil {
		fail(c, err)
		return
	}

	var input models.CreateAnswerRequest
	if err := bindBody(c, &input); err != nil {
		fail(c, err)
		return
	}

	if !input.Content.Set || !isNonBlank(input.Content.Value) {
		fail(c, apperror.Validation("Content is required."))
		return
	}
	if utf8.RuneCountInString(input.Content.Value) > maxAnswerLength {
		fail(c, apperror.Validation("Content must be at most 300 characters."))
		return
	}

	const failMsg = "Unable to create answers."
	ctx := c.Request.Context()
	if err := h.requireQuestion(ctx, questionID, failMsg); err != nil {
		fail(c, err)
		return
	}

	answer := models.Answer{
		QuestionID: questionID,
		Content:    strings.TrimSpace(input.Content.Value),
	}
	if err := h.store.CreateAnswer(ctx, &answer); err != nil {
		fail(c, apperror.Internal(failMsg, err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Answer created successfully.",
		"id":      answer.ID,
	})
}

// GetAnswers handles GET /questions/:questionId/answers
func (h *AnswerHandler) GetAnswers(c *gin.Context) {
	questionID, err := pathID(c, "questionId", invalidQuestionID)
	if err != nil {
		fail(c, err)
		return
	}

	const failMsg = "Unable to fetch answers."
	ctx := c.Request.Context()
	if err := h.requireQuestion(ctx, questionID, failMsg); err != nil {
		fail(c, err)
		return
	}

	answers, err := h.store.ListAnswers(ctx, questionID)
	if err != nil {
		fail(c, apperror.Internal(failMsg, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": answers})
}

// DeleteAnswers handles DELETE /questions/:questionId/answers. Votes on the
// removed answers are kept.
func (h *AnswerHandler) DeleteAnswers(c *gin.Context) {
	questionID, err := pathID(c, "questionId", invalidQuestionID)
	if err != nil {
		fail(c, err)
		return
	}

	const failMsg = "Unable to delete answers."
	ctx := c.Request.Context()
	if err := h.requireQuestion(ctx, questionID, failMsg); err != nil {
		fail(c, err)
		return
	}

	if _, err := h.store.DeleteAnswers(ctx, questionID); err != nil {
		fail(c, apperror.Internal(failMsg, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All answers for the question have been deleted successfully."})
}

// VoteAnswer handles POST /answers/:answerId/vote
func (h *AnswerHandler) VoteAnswer(c *gin.Context) {
	answerID, err := pathID(c, "answerId", "Invalid answer id.")
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

	const failMsg = "Unable to vote answer."
	ctx := c.Request.Context()
	exists, err := h.store.AnswerExists(ctx, answerID)
	if err != nil {
		fail(c, apperror.Internal(failMsg, err))
		return
	}
	if !exists {
		fail(c, apperror.NotFound("Answer not found."))
		return
	}

	if err := h.store.AddAnswerVote(ctx, answerID, vote); err != nil {
		fail(c, apperror.Internal(failMsg, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vote on the answer has been recorded successfully."})
}
