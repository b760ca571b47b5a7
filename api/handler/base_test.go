package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fastygo/dashboard/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   domain.ErrorCode
	}{
		{domain.ErrTaskNotFound, http.StatusNotFound, domain.ErrCodeNotFound},
		{fmt.Errorf("wrapped: %w", domain.ErrEmailTaken), http.StatusConflict, domain.ErrCodeConflict},
		{domain.ErrBadCredentials, http.StatusUnauthorized, domain.ErrCodeUnauthorized},
		{domain.ErrInvalidPayload, http.StatusBadRequest, domain.ErrCodeInvalid},
		{domain.ErrTooManyRequests, http.StatusTooManyRequests, domain.ErrCodeRateLimited},
		{domain.NewError(domain.ErrCodeForbidden, "no"), http.StatusForbidden, domain.ErrCodeForbidden},
		{errors.New("connection reset"), http.StatusInternalServerError, domain.ErrCodeInternal},
	}
	for _, tt := range tests {
		status, code := mapError(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.code, code, tt.err.Error())
	}
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 3, parseInt("3", 1))
	assert.Equal(t, 1, parseInt("", 1))
	assert.Equal(t, 10, parseInt("ten", 10))
	assert.Equal(t, -2, parseInt("-2", 1))
}
