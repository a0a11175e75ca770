package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-absensi/internal/auth"
	autherrors "go-absensi/internal/auth/errors"
	authMock "go-absensi/internal/auth/mock"
	"go-absensi/internal/events"
	"go-absensi/internal/messaging/kafka"
	kafkaMock "go-absensi/internal/messaging/kafka/mock"
	"go-absensi/internal/user"
	usererrors "go-absensi/internal/user/errors"
	userMock "go-absensi/internal/user/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func setupService(t *testing.T) (auth.Service, *userMock.MockRepository, *authMock.MockRepository) {
	ctrl := gomock.NewController(t)
	users := userMock.NewMockRepository(ctrl)
	tokens := authMock.NewMockRepository(ctrl)
	return auth.NewService(users, tokens, testSecret), users, tokens
}

func hashed(t *testing.T, password string) string {
	pw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(pw)
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) { return []byte(testSecret), nil })
	assert.NoError(t, err)
	return parsed.Claims.(jwt.MapClaims)
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("teacher success carries profile claims", func(t *testing.T) {
		svc, users, _ := setupService(t)
		u := &user.User{
			ID:        uuid.New(),
			Name:      "Budi Guru",
			Password:  hashed(t, "password123"),
			Role:      user.RoleTeacher,
			JenisGTK:  "Guru Mata Pelajaran",
			StatusGTK: "PNS (Pegawai Negeri Sipil)",
		}
		users.EXPECT().FindByNameAndRole(ctx, "Budi Guru", user.RoleTeacher).Return(u, nil)

		access, refresh, resp, err := svc.Login(ctx, " Budi Guru ", "password123", user.RoleTeacher)

		assert.NoError(t, err)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, u.ID.String(), resp.ID)
		claims := parseClaims(t, access)
		assert.Equal(t, auth.TokenTypeAccess, claims["type"])
		assert.Equal(t, "Budi Guru", claims["name"])
		assert.Equal(t, "PNS (Pegawai Negeri Sipil)", claims["status_gtk"])
		assert.Equal(t, auth.TokenTypeRefresh, parseClaims(t, refresh)["type"])
	})

	t.Run("admin name is case-insensitive", func(t *testing.T) {
		svc, users, _ := setupService(t)
		admin := &user.User{ID: uuid.New(), Name: "admin", Password: hashed(t, "smkn1indramakmu"), Role: user.RoleAdmin}
		users.EXPECT().FindFirstByRole(ctx, user.RoleAdmin).Return(admin, nil)

		_, _, resp, err := svc.Login(ctx, "ADMIN", "smkn1indramakmu", user.RoleAdmin)

		assert.NoError(t, err)
		assert.Equal(t, user.RoleAdmin, resp.Role)
	})

	t.Run("admin with other name rejected", func(t *testing.T) {
		svc, users, _ := setupService(t)
		admin := &user.User{ID: uuid.New(), Name: "admin", Password: hashed(t, "smkn1indramakmu"), Role: user.RoleAdmin}
		users.EXPECT().FindFirstByRole(ctx, user.RoleAdmin).Return(admin, nil)

		_, _, _, err := svc.Login(ctx, "Budi Guru", "smkn1indramakmu", user.RoleAdmin)
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, users, _ := setupService(t)
		u := &user.User{ID: uuid.New(), Name: "Budi Guru", Password: hashed(t, "password123"), Role: user.RoleTeacher}
		users.EXPECT().FindByNameAndRole(ctx, "Budi Guru", user.RoleTeacher).Return(u, nil)

		_, _, _, err := svc.Login(ctx, "Budi Guru", "salah", user.RoleTeacher)
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown teacher", func(t *testing.T) {
		svc, users, _ := setupService(t)
		users.EXPECT().FindByNameAndRole(ctx, "Siapa", user.RoleTeacher).Return(nil, gorm.ErrRecordNotFound)

		_, _, _, err := svc.Login(ctx, "Siapa", "x", user.RoleTeacher)
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown role", func(t *testing.T) {
		svc, _, _ := setupService(t)
		_, _, _, err := svc.Login(ctx, "Budi Guru", "x", "STAFF")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	validReq := auth.RegisterRequest{
		Name:            "Siti Aminah",
		Email:           "siti@smkn1.id",
		Password:        "rahasia",
		ConfirmPassword: "rahasia",
		JenisGTK:        "Guru Kelas",
		StatusGTK:       "Honorer",
	}

	t.Run("success", func(t *testing.T) {
		svc, users, _ := setupService(t)
		users.EXPECT().ExistsTeacherName(ctx, "Siti Aminah").Return(false, nil)
		users.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, u *user.User) error {
				assert.Equal(t, user.RoleTeacher, u.Role)
				assert.NotEqual(t, "rahasia", u.Password)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("rahasia")))
				assert.Equal(t, "siti@smkn1.id", *u.Email)
				return nil
			})

		resp, err := svc.Register(ctx, validReq)

		assert.NoError(t, err)
		assert.Equal(t, "Siti Aminah", resp.Name)
		assert.Equal(t, user.RoleTeacher, resp.Role)
	})

	t.Run("writes user registered event in the same transaction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := userMock.NewMockRepository(ctrl)
		tokens := authMock.NewMockRepository(ctrl)
		outbox := kafkaMock.NewMockOutboxRepository(ctrl)
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		svc := auth.NewServiceWithOutbox(db, users, tokens, outbox, testSecret)

		var created *user.User
		mock.ExpectBegin()
		users.EXPECT().ExistsTeacherName(ctx, "Siti Aminah").Return(false, nil)
		users.EXPECT().WithTx(gomock.Any()).Return(users)
		users.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *user.User) error {
			created = u
			return nil
		})
		outbox.EXPECT().WithTx(gomock.Any()).Return(outbox)
		outbox.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
			assert.Equal(t, events.UserRegisteredTopic, e.Topic)
			assert.Equal(t, "user_registered", e.EventType)
			assert.Equal(t, created.ID.String(), e.AggregateID)
			var payload events.UserRegisteredEvent
			assert.NoError(t, json.Unmarshal(e.Payload, &payload))
			assert.Equal(t, "Siti Aminah", payload.Name)
			return nil
		})
		mock.ExpectCommit()

		resp, err := svc.Register(ctx, validReq)

		assert.NoError(t, err)
		assert.Equal(t, created.ID.String(), resp.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("outbox failure rolls back registration", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := userMock.NewMockRepository(ctrl)
		outbox := kafkaMock.NewMockOutboxRepository(ctrl)
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		svc := auth.NewServiceWithOutbox(db, users, authMock.NewMockRepository(ctrl), outbox, testSecret)

		mock.ExpectBegin()
		users.EXPECT().ExistsTeacherName(ctx, "Siti Aminah").Return(false, nil)
		users.EXPECT().WithTx(gomock.Any()).Return(users)
		users.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		outbox.EXPECT().WithTx(gomock.Any()).Return(outbox)
		outbox.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("db down"))
		mock.ExpectRollback()

		_, err = svc.Register(ctx, validReq)

		assert.EqualError(t, err, "db down")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate name", func(t *testing.T) {
		svc, users, _ := setupService(t)
		users.EXPECT().ExistsTeacherName(ctx, "Siti Aminah").Return(true, nil)

		_, err := svc.Register(ctx, validReq)
		assert.ErrorIs(t, err, usererrors.ErrDuplicateUser)
	})

	t.Run("unique violation on insert", func(t *testing.T) {
		svc, users, _ := setupService(t)
		users.EXPECT().ExistsTeacherName(ctx, "Siti Aminah").Return(false, nil)
		users.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_name_role"})

		_, err := svc.Register(ctx, validReq)
		assert.ErrorIs(t, err, usererrors.ErrDuplicateUser)
	})

	t.Run("password confirmation mismatch", func(t *testing.T) {
		svc, _, _ := setupService(t)
		req := validReq
		req.ConfirmPassword = "beda"

		_, err := svc.Register(ctx, req)
		assert.ErrorIs(t, err, autherrors.ErrPasswordMismatch)
	})

	t.Run("invalid jenis gtk", func(t *testing.T) {
		svc, _, _ := setupService(t)
		req := validReq
		req.JenisGTK = "Satpam"

		_, err := svc.Register(ctx, req)
		assert.ErrorIs(t, err, usererrors.ErrInvalidJenisGTK)
	})
}

func TestService_ResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, users, _ := setupService(t)
		u := &user.User{ID: uuid.New(), Name: "Budi Guru", Role: user.RoleTeacher}
		users.EXPECT().FindByNameAndRole(ctx, "Budi Guru", user.RoleTeacher).Return(u, nil)
		users.EXPECT().
			UpdatePassword(ctx, u.ID.String(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, id, hash string) error {
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("baru123")))
				return nil
			})

		err := svc.ResetPassword(ctx, auth.ResetPasswordRequest{Name: "Budi Guru", NewPassword: "baru123", ConfirmPassword: "baru123"})
		assert.NoError(t, err)
	})

	t.Run("unknown teacher", func(t *testing.T) {
		svc, users, _ := setupService(t)
		users.EXPECT().FindByNameAndRole(ctx, "admin", user.RoleTeacher).Return(nil, gorm.ErrRecordNotFound)

		err := svc.ResetPassword(ctx, auth.ResetPasswordRequest{Name: "admin", NewPassword: "baru123", ConfirmPassword: "baru123"})
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}

func TestService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	u := &user.User{ID: uuid.New(), Name: "Budi Guru", Password: "", Role: user.RoleTeacher}

	login := func(t *testing.T, svc auth.Service, users *userMock.MockRepository) string {
		u.Password = hashed(t, "password123")
		users.EXPECT().FindByNameAndRole(ctx, "Budi Guru", user.RoleTeacher).Return(u, nil)
		_, refresh, _, err := svc.Login(ctx, "Budi Guru", "password123", user.RoleTeacher)
		assert.NoError(t, err)
		return refresh
	}

	t.Run("rotates and revokes old token", func(t *testing.T) {
		svc, users, tokens := setupService(t)
		refresh := login(t, svc, users)
		jti := parseClaims(t, refresh)["jti"].(string)

		tokens.EXPECT().IsRevoked(ctx, jti).Return(false, nil)
		users.EXPECT().FindByID(ctx, u.ID.String()).Return(u, nil)
		tokens.EXPECT().
			Revoke(ctx, jti, gomock.Any()).
			DoAndReturn(func(ctx context.Context, jti string, ttl time.Duration) error {
				assert.Greater(t, ttl, 6*24*time.Hour)
				return nil
			})

		access, newRefresh, resp, err := svc.RefreshToken(ctx, refresh)

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEqual(t, refresh, newRefresh)
		assert.Equal(t, u.ID.String(), resp.ID)
	})

	t.Run("revoked token rejected", func(t *testing.T) {
		svc, users, tokens := setupService(t)
		refresh := login(t, svc, users)
		tokens.EXPECT().IsRevoked(ctx, gomock.Any()).Return(true, nil)

		_, _, _, err := svc.RefreshToken(ctx, refresh)
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("access token cannot refresh", func(t *testing.T) {
		svc, users, _ := setupService(t)
		u.Password = hashed(t, "password123")
		users.EXPECT().FindByNameAndRole(ctx, "Budi Guru", user.RoleTeacher).Return(u, nil)
		access, _, _, err := svc.Login(ctx, "Budi Guru", "password123", user.RoleTeacher)
		assert.NoError(t, err)

		_, _, _, err = svc.RefreshToken(ctx, access)
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc, _, _ := setupService(t)
		_, _, _, err := svc.RefreshToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("empty token is a no-op", func(t *testing.T) {
		svc, _, _ := setupService(t)
		assert.NoError(t, svc.Logout(ctx, ""))
	})

	t.Run("revokes refresh token", func(t *testing.T) {
		svc, users, tokens := setupService(t)
		u := &user.User{ID: uuid.New(), Name: "Budi Guru", Password: hashed(t, "password123"), Role: user.RoleTeacher}
		users.EXPECT().FindByNameAndRole(ctx, "Budi Guru", user.RoleTeacher).Return(u, nil)
		_, refresh, _, err := svc.Login(ctx, "Budi Guru", "password123", user.RoleTeacher)
		assert.NoError(t, err)

		tokens.EXPECT().Revoke(ctx, parseClaims(t, refresh)["jti"], gomock.Any()).Return(errors.New("redis down"))

		assert.EqualError(t, svc.Logout(ctx, refresh), "redis down")
	})
}

func TestService_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid id", func(t *testing.T) {
		svc, _, _ := setupService(t)
		_, err := svc.GetMe(ctx, "abc")
		assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
	})

	t.Run("success", func(t *testing.T) {
		svc, users, _ := setupService(t)
		u := &user.User{ID: uuid.New(), Name: "Budi Guru", Role: user.RoleTeacher}
		users.EXPECT().FindByID(ctx, u.ID.String()).Return(u, nil)

		resp, err := svc.GetMe(ctx, u.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, "Budi Guru", resp.Name)
	})
}
