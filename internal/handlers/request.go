package handlers

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/emilythestrangee/quora-clone/backend/internal/apperror"
)

const maxAnswerLength = 300

// fail records err for the error middleware and stops the chain.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// parseID accepts a positive integer written in decimal, including forms
// like "7.0" or "1e2" that denote an integer. Anything else, including
// values beyond int64, is rejected.
func parseID(raw string) (int64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.ContainsAny(s, "xXpP_") {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, n > 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f != math.Trunc(f) || f <= 0 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func pathID(c *gin.Context, name, message string) (int64, error) {
	id, ok := parseID(c.Param(name))
	if !ok {
		return 0, apperror.Validation(message)
	}
	return id, nil
}

// bindBody decodes a JSON body into dst. An empty body leaves dst as is,
// the same as an empty object.
func bindBody(c *gin.Context, dst any) error {
	body, err := c.GetRawData()
	if err != nil {
		return apperror.Validation("Invalid JSON body.")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := binding.JSON.BindBody(body, dst); err != nil {
		return apperror.Validation("Invalid JSON body.")
	}
	return nil
}

func isNonBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}
