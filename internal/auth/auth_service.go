package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	autherrors "go-absensi/internal/auth/errors"
	"go-absensi/internal/events"
	"go-absensi/internal/messaging/kafka"
	"go-absensi/internal/shared/apperror"
	"go-absensi/internal/shared/contextutil"
	"go-absensi/internal/user"
	usererrors "go-absensi/internal/user/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, name, password, role string) (accessToken, refreshToken string, resp AuthResponse, err error)

	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)

	GetMe(ctx context.Context, userID string) (*AuthResponse, error)

	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)

	// ResetPassword hanya berlaku untuk akun guru.
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error

	Logout(ctx context.Context, refreshToken string) error
}

type service struct {
	db     *sql.DB
	users  user.Repository
	tokens Repository
	outbox kafka.OutboxRepository
	secret []byte
	now    func() time.Time
	logger *zap.Logger
}

func NewService(users user.Repository, tokens Repository, secret string, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(nil, users, tokens, nil, secret, logger...)
}

// NewServiceWithOutbox: pendaftaran guru menulis event user.registered dalam transaksi
// yang sama dengan insert user, supaya cache rekap bulanan di-invalidate.
func NewServiceWithOutbox(
	db *sql.DB,
	users user.Repository,
	tokens Repository,
	outboxRepo kafka.OutboxRepository,
	secret string,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		db:     db,
		users:  users,
		tokens: tokens,
		outbox: outboxRepo,
		secret: []byte(secret),
		now:    time.Now,
		logger: l,
	}
}

func (s *service) Login(ctx context.Context, name, password, role string) (string, string, AuthResponse, error) {
	name = strings.TrimSpace(name)

	var (
		u   *user.User
		err error
	)
	switch role {
	case user.RoleAdmin:
		// username admin tidak case-sensitive
		u, err = s.users.FindFirstByRole(ctx, user.RoleAdmin)
		if err == nil && !strings.EqualFold(u.Name, name) {
			err = gorm.ErrRecordNotFound
		}
	case user.RoleTeacher:
		u, err = s.users.FindByNameAndRole(ctx, name, user.RoleTeacher)
	default:
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("login lookup failed", zap.String("role", role), zap.Error(err))
			return "", "", AuthResponse{}, err
		}
		s.logger.Warn("login rejected: unknown user", zap.String("name", name), zap.String("role", role))
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		s.logger.Warn("login rejected: wrong password", zap.String("user_id", u.ID.String()))
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	access, refresh, err := s.issueTokens(principalFromUser(u))
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	s.logger.Info("login success", zap.String("user_id", u.ID.String()), zap.String("role", u.Role))
	return access, refresh, toAuthResponse(u), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	claims, err := s.parse(refreshToken)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}
	if tokenType, _ := claims["type"].(string); tokenType != TokenTypeRefresh {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	jti, _ := claims["jti"].(string)
	if s.tokens != nil && jti != "" {
		revoked, err := s.tokens.IsRevoked(ctx, jti)
		if err != nil {
			return "", "", AuthResponse{}, err
		}
		if revoked {
			s.logger.Warn("refresh rejected: token revoked", zap.String("jti", jti))
			return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
		}
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}
	if _, err := uuid.Parse(userIDStr); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidUserID
	}

	u, err := s.users.FindByID(ctx, userIDStr)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrUserNotFound
	}

	// rotasi: refresh token lama tidak bisa dipakai lagi
	if err := s.revoke(ctx, claims); err != nil {
		return "", "", AuthResponse{}, err
	}

	access, refresh, err := s.issueTokens(principalFromUser(u))
	if err != nil {
		return "", "", AuthResponse{}, err
	}
	return access, refresh, toAuthResponse(u), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	resp := toAuthResponse(u)
	return &resp, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return AuthResponse{}, apperror.RequiredField("name")
	}
	if req.Password != req.ConfirmPassword {
		return AuthResponse{}, autherrors.ErrPasswordMismatch
	}
	if !user.ValidJenisGTK(req.JenisGTK) {
		return AuthResponse{}, usererrors.ErrInvalidJenisGTK
	}
	if !user.ValidStatusGTK(req.StatusGTK) {
		return AuthResponse{}, usererrors.ErrInvalidStatusGTK
	}

	exists, err := s.users.ExistsTeacherName(ctx, name)
	if err != nil {
		return AuthResponse{}, err
	}
	if exists {
		s.logger.Warn("register rejected: duplicate name", zap.String("name", name))
		return AuthResponse{}, usererrors.ErrDuplicateUser
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	u := &user.User{
		ID:        uuid.New(),
		Name:      name,
		Password:  string(hashed),
		Role:      user.RoleTeacher,
		JenisGTK:  req.JenisGTK,
		StatusGTK: req.StatusGTK,
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		u.Email = &email
	}

	if err := s.createTeacher(ctx, u); err != nil {
		mapped := mapCreateUserError(err)
		if mapped == err {
			s.logger.Error("register failed", zap.Error(err))
		}
		return AuthResponse{}, mapped
	}

	s.logger.Info("teacher registered", zap.String("user_id", u.ID.String()))
	return toAuthResponse(u), nil
}

func (s *service) createTeacher(ctx context.Context, u *user.User) error {
	if s.db == nil || s.outbox == nil {
		return s.users.Create(ctx, u)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.users.WithTx(tx).Create(ctx, u); err != nil {
		return err
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.UserRegisteredEvent{
		EventType:  "user_registered",
		RequestID:  rid,
		UserID:     u.ID.String(),
		Name:       u.Name,
		OccurredAt: s.now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, kafka.NewOutboxEvent(rid, "user", event.UserID, event.EventType, events.UserRegisteredTopic, payload)); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return autherrors.ErrPasswordMismatch
	}

	u, err := s.users.FindByNameAndRole(ctx, strings.TrimSpace(req.Name), user.RoleTeacher)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usererrors.ErrUserNotFound
		}
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, u.ID.String(), string(hashed)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usererrors.ErrUserNotFound
		}
		return err
	}

	s.logger.Info("password reset", zap.String("user_id", u.ID.String()))
	return nil
}

func (s *service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := s.parse(refreshToken)
	if err != nil {
		// token rusak / kedaluwarsa: tidak ada yang perlu dicabut
		return nil
	}
	return s.revoke(ctx, claims)
}

func (s *service) revoke(ctx context.Context, claims jwt.MapClaims) error {
	if s.tokens == nil {
		return nil
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	return s.tokens.Revoke(ctx, jti, exp.Sub(s.now()))
}

func (s *service) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, autherrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, autherrors.ErrInvalidToken
	}
	return claims, nil
}

func (s *service) issueTokens(p Principal) (string, string, error) {
	now := s.now()
	access, err := s.generateToken(p.claims(TokenTypeAccess, uuid.NewString(), now, AccessTokenTTL))
	if err != nil {
		return "", "", autherrors.ErrTokenGenerationFailed
	}
	refresh, err := s.generateToken(p.claims(TokenTypeRefresh, uuid.NewString(), now, RefreshTokenTTL))
	if err != nil {
		return "", "", autherrors.ErrTokenGenerationFailed
	}
	return access, refresh, nil
}

// reusable token generator
func (s *service) generateToken(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func toAuthResponse(u *user.User) AuthResponse {
	return AuthResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		JenisGTK:  u.JenisGTK,
		StatusGTK: u.StatusGTK,
	}
}
