package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/meridiancrm/meridian/internal/user/domain"
	"github.com/meridiancrm/meridian/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, user *domain.SysUser) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.SysUser, error) {
	var user domain.SysUser
	err := db.WithContext(ctx).
		Where("id = ? AND sys_deleted_at IS NULL", id).
		First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repo) FindByUsername(ctx context.Context, db *gorm.DB, username string) (*domain.SysUser, error) {
	var user domain.SysUser
	err := db.WithContext(ctx).
		Where("username = ? AND sys_deleted_at IS NULL", username).
		First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByUsernameOrEmail backs the uniqueness check. Soft-deleted rows do not
// count, so a deleted user's username or email may be reused.
func (r *repo) FindByUsernameOrEmail(ctx context.Context, db *gorm.DB, username, email string) (*domain.SysUser, error) {
	var user domain.SysUser
	err := db.WithContext(ctx).
		Where("(username = ? OR email = ?) AND sys_deleted_at IS NULL", username, email).
		First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*domain.SysUser, int64, error) {
	var total int64
	stmt := db.WithContext(ctx).
		Model(&domain.SysUser{}).
		Where("sys_deleted_at IS NULL")
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*domain.SysUser
	err := stmt.
		Order("id").
		Offset(page.Offset()).
		Limit(page.Normalize().Limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, user *domain.SysUser) error {
	return db.WithContext(ctx).Save(user).Error
}
