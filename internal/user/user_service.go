package user

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-absensi/internal/attendance"
	"go-absensi/internal/bootstrap"
	"go-absensi/internal/events"
	"go-absensi/internal/messaging/kafka"
	"go-absensi/internal/shared/contextutil"
	usererrors "go-absensi/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	demoTeacherName     = "Budi Guru"
	demoTeacherEmail    = "budi@smkn1.id"
	demoTeacherPassword = "password123"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	ListTeachers(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	// Delete menghapus user beserta seluruh record absensinya dalam satu transaksi.
	Delete(ctx context.Context, id string) (DeleteUserResponse, error)
	EnsureSeed(ctx context.Context, opts SeedOptions) error
}

type SeedOptions struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
	DemoTeacher   bool
}

type service struct {
	db             *sql.DB
	repo           Repository
	attendanceRepo attendance.Repository
	outbox         kafka.OutboxRepository
	audit          bootstrap.AuditLogger
	logger         *zap.Logger
}

func NewService(db *sql.DB, repo Repository, attendanceRepo attendance.Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, attendanceRepo, nil, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	attendanceRepo attendance.Repository,
	outboxRepo kafka.OutboxRepository,
	audit bootstrap.AuditLogger,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{
		db:             db,
		repo:           repo,
		attendanceRepo: attendanceRepo,
		outbox:         outboxRepo,
		audit:          audit,
		logger:         l,
	}
}

func (s *service) ListTeachers(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.ListTeachers(ctx)
	if err != nil {
		s.logger.Error("list teachers failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(users), nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return MapToResponse(*u), nil
}

func (s *service) Delete(ctx context.Context, id string) (DeleteUserResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete user requested", zap.String("request_id", rid), zap.String("user_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return DeleteUserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DeleteUserResponse{}, mapRepositoryError(err)
	}
	if u.IsAdmin() {
		s.logger.Warn("delete admin rejected", zap.String("request_id", rid), zap.String("user_id", id))
		return DeleteUserResponse{}, usererrors.ErrCannotDeleteAdmin
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DeleteUserResponse{}, err
	}
	defer tx.Rollback()

	recordsDeleted, err := s.attendanceRepo.WithTx(tx).DeleteByUser(ctx, id)
	if err != nil {
		s.logger.Error("delete user attendance failed", zap.String("request_id", rid), zap.Error(err))
		return DeleteUserResponse{}, usererrors.ErrDeleteFailed
	}

	affected, err := s.repo.WithTx(tx).Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete user failed", zap.String("request_id", rid), zap.Error(err))
		return DeleteUserResponse{}, usererrors.ErrDeleteFailed
	}
	if affected == 0 {
		return DeleteUserResponse{}, usererrors.ErrUserNotFound
	}

	if s.outbox != nil {
		event := events.UserDeletedEvent{
			EventType:      "user_deleted",
			RequestID:      rid,
			UserID:         id,
			RecordsDeleted: recordsDeleted,
			OccurredAt:     time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return DeleteUserResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.NewOutboxEvent(rid, "user", id, event.EventType, events.UserDeletedTopic, payload)); err != nil {
			s.logger.Error("write user deleted outbox failed", zap.String("request_id", rid), zap.Error(err))
			return DeleteUserResponse{}, usererrors.ErrDeleteFailed
		}
	}

	if err := tx.Commit(); err != nil {
		return DeleteUserResponse{}, err
	}

	if s.audit != nil {
		s.audit.Log(ctx, bootstrap.AuditLog{
			Action:  "USER_DELETED",
			Message: "User and attendance records deleted",
			Meta: map[string]any{
				"request_id":      rid,
				"user_id":         id,
				"name":            u.Name,
				"records_deleted": recordsDeleted,
			},
		})
	}

	s.logger.Info("user deleted",
		zap.String("request_id", rid),
		zap.String("user_id", id),
		zap.Int64("records_deleted", recordsDeleted),
	)
	return DeleteUserResponse{ID: id, RecordsDeleted: recordsDeleted}, nil
}

// EnsureSeed membuat akun admin bila belum ada, dan guru demo bila diminta.
func (s *service) EnsureSeed(ctx context.Context, opts SeedOptions) error {
	admins, err := s.repo.CountByRole(ctx, RoleAdmin)
	if err != nil {
		return err
	}
	if admins == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := &User{
			ID:       uuid.New(),
			Name:     strings.TrimSpace(opts.AdminName),
			Password: string(hashed),
			Role:     RoleAdmin,
		}
		if email := strings.TrimSpace(opts.AdminEmail); email != "" {
			admin.Email = &email
		}
		if err := s.repo.Create(ctx, admin); err != nil {
			return err
		}
		s.logger.Info("admin account seeded", zap.String("name", admin.Name))
	}

	if !opts.DemoTeacher {
		return nil
	}
	exists, err := s.repo.ExistsTeacherName(ctx, demoTeacherName)
	if err != nil || exists {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(demoTeacherPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	email := demoTeacherEmail
	if err := s.repo.Create(ctx, &User{
		ID:        uuid.New(),
		Name:      demoTeacherName,
		Email:     &email,
		Password:  string(hashed),
		Role:      RoleTeacher,
		JenisGTK:  JenisGTKOptions[0],
		StatusGTK: StatusGTKOptions[0],
	}); err != nil {
		return err
	}
	s.logger.Info("demo teacher seeded", zap.String("name", demoTeacherName))
	return nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}
	return err
}
