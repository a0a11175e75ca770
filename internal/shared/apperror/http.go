package apperror

import (
	"fmt"
	"net/http"
)

// HTTPError adalah bentuk error yang siap dikirim lewat response.Error
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP memetakan error apa pun ke HTTPError.
// Error yang bukan *AppError dianggap internal error dan pesannya tidak dibocorkan.
func ToHTTP(err error) HTTPError {
	if appErr, ok := As(err); ok {
		var details any
		if appErr.Err != nil {
			details = appErr.Err.Error()
		}
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: details,
		}
	}

	return HTTPError{
		Status:  ErrInternal.HTTPStatus,
		Code:    ErrInternal.Code,
		Message: ErrInternal.Message,
	}
}

func RequiredField(field string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("%s wajib diisi.", field), http.StatusBadRequest)
}

func InvalidField(field string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("%s tidak valid.", field), http.StatusBadRequest)
}
