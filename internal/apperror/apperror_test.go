package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{"validation", Validation("bad"), http.StatusBadRequest},
		{"not found", NotFound("missing"), http.StatusNotFound},
		{"internal", Internal("boom", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Status())
		})
	}
}

func TestFrom(t *testing.T) {
	t.Run("wrapped app error is found", func(t *testing.T) {
		wrapped := fmt.Errorf("handler: %w", NotFound("Question not found."))
		got := From(wrapped)
		assert.Equal(t, KindNotFound, got.Kind)
		assert.Equal(t, "Question not found.", got.Message)
	})

	t.Run("foreign error becomes generic internal", func(t *testing.T) {
		cause := errors.New("connection refused")
		got := From(cause)
		assert.Equal(t, KindInternal, got.Kind)
		assert.Equal(t, "Internal server error.", got.Message)
		assert.ErrorIs(t, got, cause)
	})
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "Unable to vote question.: timeout", Internal("Unable to vote question.", errors.New("timeout")).Error())
	assert.Equal(t, "Invalid vote value.", Validation("Invalid vote value.").Error())
}
