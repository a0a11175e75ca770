package user_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	attendanceMock "go-absensi/internal/attendance/mock"
	"go-absensi/internal/bootstrap"
	"go-absensi/internal/events"
	"go-absensi/internal/messaging/kafka"
	kafkaMock "go-absensi/internal/messaging/kafka/mock"
	"go-absensi/internal/shared/contextutil"
	"go-absensi/internal/user"
	usererrors "go-absensi/internal/user/errors"
	userMock "go-absensi/internal/user/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type recordingAudit struct {
	logs []bootstrap.AuditLog
}

func (r *recordingAudit) Log(_ context.Context, entry bootstrap.AuditLog) {
	r.logs = append(r.logs, entry)
}

type serviceDeps struct {
	db         *sql.DB
	sqlMock    sqlmock.Sqlmock
	service    user.Service
	repo       *userMock.MockRepository
	attendance *attendanceMock.MockRepository
	outbox     *kafkaMock.MockOutboxRepository
	audit      *recordingAudit
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	t.Cleanup(func() { db.Close() })

	repo := userMock.NewMockRepository(ctrl)
	attRepo := attendanceMock.NewMockRepository(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)
	audit := &recordingAudit{}

	return &serviceDeps{
		db:         db,
		sqlMock:    sqlMock,
		service:    user.NewServiceWithOutbox(db, repo, attRepo, outboxRepo, audit),
		repo:       repo,
		attendance: attRepo,
		outbox:     outboxRepo,
		audit:      audit,
	}
}

func teacher(name string) user.User {
	return user.User{
		ID:        uuid.New(),
		Name:      name,
		Role:      user.RoleTeacher,
		JenisGTK:  "Guru Kelas",
		StatusGTK: "Honorer",
		CreatedAt: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestService_ListTeachers(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().ListTeachers(gomock.Any()).Return([]user.User{teacher("Ani"), teacher("Budi Guru")}, nil)

		resp, err := deps.service.ListTeachers(context.Background())

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "Ani", resp[0].Name)
		assert.Equal(t, user.RoleTeacher, resp[1].Role)
		assert.Equal(t, "2025-03-01 08:00:00", resp[0].CreatedAt)
	})

	t.Run("repo error", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().ListTeachers(gomock.Any()).Return(nil, errors.New("db down"))

		_, err := deps.service.ListTeachers(context.Background())
		assert.EqualError(t, err, "db down")
	})
}

func TestService_GetByID(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.GetByID(context.Background(), "bukan-uuid")
		assert.ErrorIs(t, err, usererrors.ErrInvalidUserID)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()
		deps.repo.EXPECT().FindByID(gomock.Any(), id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		u := teacher("Siti Aminah")
		deps.repo.EXPECT().FindByID(gomock.Any(), u.ID.String()).Return(&u, nil)

		resp, err := deps.service.GetByID(context.Background(), u.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, u.ID.String(), resp.ID)
		assert.Equal(t, "Honorer", resp.StatusGTK)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("success - cascades attendance and writes outbox", func(t *testing.T) {
		deps := setupServiceTest(t)
		u := teacher("Budi Guru")
		id := u.ID.String()
		ctx := contextutil.WithRequestID(context.Background(), "req-del")

		deps.repo.EXPECT().FindByID(gomock.Any(), id).Return(&u, nil)
		deps.sqlMock.ExpectBegin()
		deps.attendance.EXPECT().WithTx(gomock.Any()).Return(deps.attendance)
		deps.attendance.EXPECT().DeleteByUser(gomock.Any(), id).Return(int64(12), nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Delete(gomock.Any(), id).Return(int64(1), nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, ev kafka.OutboxEvent) error {
				assert.Equal(t, events.UserDeletedTopic, ev.Topic)
				assert.Equal(t, "user", ev.AggregateType)
				assert.Equal(t, id, ev.AggregateID)
				assert.Equal(t, kafka.OutboxStatusPending, ev.Status)

				var payload events.UserDeletedEvent
				assert.NoError(t, json.Unmarshal(ev.Payload, &payload))
				assert.Equal(t, "req-del", payload.RequestID)
				assert.Equal(t, int64(12), payload.RecordsDeleted)
				return nil
			})
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Delete(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, id, resp.ID)
		assert.Equal(t, int64(12), resp.RecordsDeleted)
		assert.Len(t, deps.audit.logs, 1)
		assert.Equal(t, "USER_DELETED", deps.audit.logs[0].Action)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("admin cannot be deleted", func(t *testing.T) {
		deps := setupServiceTest(t)
		admin := user.User{ID: uuid.New(), Name: "admin", Role: user.RoleAdmin}
		deps.repo.EXPECT().FindByID(gomock.Any(), admin.ID.String()).Return(&admin, nil)

		_, err := deps.service.Delete(context.Background(), admin.ID.String())
		assert.ErrorIs(t, err, usererrors.ErrCannotDeleteAdmin)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()
		deps.repo.EXPECT().FindByID(gomock.Any(), id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Delete(context.Background(), id)
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})

	t.Run("attendance cascade failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		u := teacher("Budi Guru")
		id := u.ID.String()

		deps.repo.EXPECT().FindByID(gomock.Any(), id).Return(&u, nil)
		deps.sqlMock.ExpectBegin()
		deps.attendance.EXPECT().WithTx(gomock.Any()).Return(deps.attendance)
		deps.attendance.EXPECT().DeleteByUser(gomock.Any(), id).Return(int64(0), errors.New("lock timeout"))
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Delete(context.Background(), id)

		assert.ErrorIs(t, err, usererrors.ErrDeleteFailed)
		assert.Empty(t, deps.audit.logs)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestService_EnsureSeed(t *testing.T) {
	opts := user.SeedOptions{
		AdminName:     "admin",
		AdminEmail:    "admin@smkn1.id",
		AdminPassword: "smkn1indramakmu",
		DemoTeacher:   true,
	}

	t.Run("fresh database seeds admin and demo teacher", func(t *testing.T) {
		deps := setupServiceTest(t)
		var created []*user.User

		deps.repo.EXPECT().CountByRole(gomock.Any(), user.RoleAdmin).Return(int64(0), nil)
		deps.repo.EXPECT().ExistsTeacherName(gomock.Any(), "Budi Guru").Return(false, nil)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, u *user.User) error {
				created = append(created, u)
				return nil
			}).Times(2)

		err := deps.service.EnsureSeed(context.Background(), opts)

		assert.NoError(t, err)
		assert.Len(t, created, 2)
		assert.Equal(t, user.RoleAdmin, created[0].Role)
		assert.Equal(t, "admin@smkn1.id", *created[0].Email)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created[0].Password), []byte("smkn1indramakmu")))
		assert.Equal(t, "Budi Guru", created[1].Name)
		assert.Equal(t, user.RoleTeacher, created[1].Role)
		assert.Equal(t, "Guru Mata Pelajaran", created[1].JenisGTK)
	})

	t.Run("existing admin and teacher are left alone", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().CountByRole(gomock.Any(), user.RoleAdmin).Return(int64(1), nil)
		deps.repo.EXPECT().ExistsTeacherName(gomock.Any(), "Budi Guru").Return(true, nil)

		assert.NoError(t, deps.service.EnsureSeed(context.Background(), opts))
	})

	t.Run("demo teacher disabled", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().CountByRole(gomock.Any(), user.RoleAdmin).Return(int64(1), nil)

		noDemo := opts
		noDemo.DemoTeacher = false
		assert.NoError(t, deps.service.EnsureSeed(context.Background(), noDemo))
	})
}
