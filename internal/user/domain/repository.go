package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/meridiancrm/meridian/pkg/db/pagination"
	"gorm.io/gorm"
)

// Repository reads and writes sys_users rows. Every read is scoped to
// non-soft-deleted rows.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, user *SysUser) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*SysUser, error)
	FindByUsername(ctx context.Context, db *gorm.DB, username string) (*SysUser, error)
	FindByUsernameOrEmail(ctx context.Context, db *gorm.DB, username, email string) (*SysUser, error)
	List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*SysUser, int64, error)
	Save(ctx context.Context, db *gorm.DB, user *SysUser) error
}
