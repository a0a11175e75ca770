package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var fieldCaser = cases.Title(language.Indonesian)

// keterangan_izin -> Keterangan Izin
func formatFieldName(s string) string {
	return fieldCaser.String(strings.ReplaceAll(s, "_", " "))
}

// MapValidationError mengubah error binding gin menjadi AppError 400. Hanya pelanggaran
// pertama yang dilaporkan; error non-validasi (JSON rusak) menjadi pesan umum.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return New(CodeInvalidInput, "Format permintaan tidak valid.", http.StatusBadRequest)
	}

	e := errs[0]
	field := formatFieldName(e.Field())

	switch e.Tag() {
	case "required", "notblank", "required_without":
		return RequiredField(field)
	case "min":
		return invalidInput("%s minimal %s karakter.", field, e.Param())
	case "max":
		return invalidInput("%s maksimal %s karakter.", field, e.Param())
	case "oneof":
		return invalidInput("%s harus salah satu dari: %s.", field, strings.Join(strings.Fields(e.Param()), ", "))
	case "email":
		return invalidInput("%s bukan alamat email yang valid.", field)
	case "uuid", "uuid4":
		return New(CodeInvalidUserID, fmt.Sprintf("%s tidak valid.", field), http.StatusBadRequest)
	default:
		return InvalidField(field)
	}
}

func invalidInput(format string, args ...any) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf(format, args...), http.StatusBadRequest)
}
