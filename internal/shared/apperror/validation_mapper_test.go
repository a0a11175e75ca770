package apperror_test

import (
	"errors"
	"net/http"
	"testing"

	"go-absensi/internal/shared/apperror"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

type submitPayload struct {
	Keterangan     string `json:"keterangan" binding:"omitempty,oneof=Hadir Izin Sakit"`
	KeteranganIzin string `json:"keterangan_izin" binding:"required,notblank"`
	Password       string `json:"password" binding:"omitempty,min=6"`
	Email          string `json:"email" binding:"omitempty,email"`
}

func TestMapValidationError(t *testing.T) {
	apperror.Init()

	cases := []struct {
		name    string
		payload submitPayload
		message string
	}{
		{"required uses json field name", submitPayload{}, "Keterangan Izin wajib diisi."},
		{"blank string is required", submitPayload{KeteranganIzin: "   "}, "Keterangan Izin wajib diisi."},
		{"oneof lists options", submitPayload{Keterangan: "Cuti", KeteranganIzin: "x"}, "Keterangan harus salah satu dari: Hadir, Izin, Sakit."},
		{"min reports length", submitPayload{KeteranganIzin: "x", Password: "123"}, "Password minimal 6 karakter."},
		{"email", submitPayload{KeteranganIzin: "x", Email: "bukan-email"}, "Email bukan alamat email yang valid."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tc.payload)
			assert.Error(t, err)

			appErr, ok := apperror.As(apperror.MapValidationError(err))
			assert.True(t, ok)
			assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
			assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
			assert.Equal(t, tc.message, appErr.Message)
		})
	}

	t.Run("valid payload passes", func(t *testing.T) {
		assert.NoError(t, binding.Validator.ValidateStruct(submitPayload{Keterangan: "Izin", KeteranganIzin: "rapat dinas"}))
	})

	t.Run("non validation error", func(t *testing.T) {
		appErr, ok := apperror.As(apperror.MapValidationError(errors.New("unexpected EOF")))
		assert.True(t, ok)
		assert.Equal(t, "Format permintaan tidak valid.", appErr.Message)
	})
}
