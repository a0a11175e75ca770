package attendance

import (
	"context"
	"database/sql"

	"go-absensi/internal/shared/txutil"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// Append tidak menolak duplikat; aturan sekali datang/pulang per hari dijaga di Start.
	// Insert ulang dengan id yang sama diabaikan.
	Append(ctx context.Context, rec *Record) error
	ListByUser(ctx context.Context, userID string) ([]Record, error)
	ListAll(ctx context.Context) ([]Record, error)
	// ListBetween: from dan to epoch ms inklusif; userID kosong berarti semua user.
	ListBetween(ctx context.Context, from, to int64, userID string) ([]Record, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: txutil.BindGORM(r.db, tx)}
}

func (r *repository) Append(ctx context.Context, rec *Record) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(rec).Error
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]Record, error) {
	var rows []Record
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListAll(ctx context.Context) ([]Record, error) {
	var rows []Record
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListBetween(ctx context.Context, from, to int64, userID string) ([]Record, error) {
	var rows []Record
	q := r.db.WithContext(ctx).
		Where("timestamp >= ? AND timestamp <= ?", from, to)
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	err := q.Order("timestamp DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&Record{})
	return res.RowsAffected, res.Error
}
