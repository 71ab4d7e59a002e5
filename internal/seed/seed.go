// Package seed bootstraps the admin user on first start.
package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/meridiancrm/meridian/internal/auth/password"
	"github.com/meridiancrm/meridian/internal/config"
	userdomain "github.com/meridiancrm/meridian/internal/user/domain"
	"gorm.io/gorm"
)

// EnsureAdmin creates the bootstrap admin user when one is configured and
// no live user with that username exists yet. Idempotent across restarts.
func EnsureAdmin(db *gorm.DB, node *snowflake.Node, cfg config.Config) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	username := strings.TrimSpace(cfg.BootstrapAdminUsername)
	if username == "" {
		return nil
	}
	if cfg.BootstrapAdminPassword == "" {
		return errors.New("bootstrap admin password is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&userdomain.SysUser{}).
			Where("username = ? AND sys_deleted_at IS NULL", username).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		hash, err := password.Hash(cfg.BootstrapAdminPassword)
		if err != nil {
			return err
		}

		admin := userdomain.SysUser{
			ID:           node.Generate(),
			Username:     username,
			Email:        username + "@localhost",
			PasswordHash: hash,
		}
		admin.StampCreated(ctx, time.Now())
		return tx.Create(&admin).Error
	})
}
