package error

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	notFound := NotFound("missing", POST_NOT_FOUND)
	wrapped := fmt.Errorf("service: %w", notFound)

	got := From(wrapped)
	assert.Equal(t, http.StatusNotFound, got.HttpCode())
	assert.Equal(t, POST_NOT_FOUND, got.ErrorCode())
	assert.Equal(t, "missing", got.ErrorDesc())

	plain := From(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, plain.HttpCode())
	assert.True(t, plain.IsServerError())
}

func TestMapHttpStatusToError(t *testing.T) {
	cases := map[int]int{
		http.StatusBadRequest:          BAD_REQUEST_BODY,
		http.StatusUnauthorized:        UNAUTHORIZED,
		http.StatusForbidden:           FORBIDDEN,
		http.StatusNotFound:            NOT_FOUND,
		http.StatusTooManyRequests:     RATE_LIMIT_EXCEEDED,
		http.StatusInternalServerError: INTERNAL_ERROR,
		http.StatusTeapot:              INTERNAL_ERROR,
	}
	for status, code := range cases {
		assert.Equal(t, code, MapHttpStatusToError(status, "x").ErrorCode(), "status %d", status)
	}
}
