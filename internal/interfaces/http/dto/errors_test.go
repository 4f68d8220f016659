package dto

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flower8718/backend/internal/domain/shared"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeInsufficientStock, http.StatusUnprocessableEntity},
		{ErrCodeInsufficientLotStock, http.StatusUnprocessableEntity},
		{ErrCodeNoTransfersInPeriod, http.StatusUnprocessableEntity},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestFromError(t *testing.T) {
	t.Run("domain error keeps its code", func(t *testing.T) {
		status, code, msg := FromError(shared.ErrInsufficientStock)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Equal(t, ErrCodeInsufficientStock, code)
		assert.Equal(t, "Insufficient stock available", msg)
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		status, code, msg := FromError(errors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, ErrCodeInternal, code)
		assert.Equal(t, "Internal server error", msg)
	})
}
