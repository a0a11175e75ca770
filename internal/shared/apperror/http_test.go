package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-absensi/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps code and status", func(t *testing.T) {
		err := apperror.New(apperror.CodeConflict, "already exists", http.StatusConflict)

		got := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusConflict, got.Status)
		assert.Equal(t, apperror.CodeConflict, got.Code)
		assert.Equal(t, "already exists", got.Message)
		assert.Nil(t, got.Details)
	})

	t.Run("wrapped app error exposes cause as details", func(t *testing.T) {
		cause := errors.New("store offline")
		err := apperror.Wrap(cause, apperror.CodeServiceUnavailable, "cannot save", http.StatusServiceUnavailable)

		got := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusServiceUnavailable, got.Status)
		assert.Equal(t, "store offline", got.Details)
	})

	t.Run("plain error becomes internal error", func(t *testing.T) {
		got := apperror.ToHTTP(errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, apperror.CodeInternalError, got.Code)
		assert.NotContains(t, got.Message, "boom")
	})
}

func TestRequiredField(t *testing.T) {
	err := apperror.RequiredField("Keterangan Izin")

	assert.Equal(t, apperror.CodeInvalidInput, err.Code)
	assert.Equal(t, "Keterangan Izin wajib diisi.", err.Message)
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", apperror.ErrForbidden)

	got, ok := apperror.As(wrapped)
	assert.True(t, ok)
	assert.Same(t, apperror.ErrForbidden, got)

	_, ok = apperror.As(errors.New("plain"))
	assert.False(t, ok)
}
