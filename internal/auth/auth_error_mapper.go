package auth

import (
	"errors"
	"strings"

	usererrors "go-absensi/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapCreateUserError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return usererrors.ErrDuplicateUser
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "idx_users_name_role") {
		return usererrors.ErrDuplicateUser
	}
	return err
}
