package user

import (
	"context"
	"database/sql"

	"go-absensi/internal/shared/txutil"

	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByNameAndRole(ctx context.Context, name, role string) (*User, error)
	FindFirstByRole(ctx context.Context, role string) (*User, error)
	ExistsTeacherName(ctx context.Context, name string) (bool, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	ListTeachers(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, id string) (int64, error)
	CountByRole(ctx context.Context, role string) (int64, error)
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

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) FindByNameAndRole(ctx context.Context, name, role string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Where("name = ? AND role = ?", name, role).
		First(&u).Error
	return &u, err
}

func (r *repository) FindFirstByRole(ctx context.Context, role string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("created_at ASC").
		First(&u).Error
	return &u, err
}

func (r *repository) ExistsTeacherName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Where("name = ? AND role = ?", name, RoleTeacher).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Update("password", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) ListTeachers(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Where("role = ?", RoleTeacher).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&User{})
	return res.RowsAffected, res.Error
}

func (r *repository) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Where("role = ?", role).
		Count(&count).Error
	return count, err
}
