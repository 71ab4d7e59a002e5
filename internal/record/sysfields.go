// Package record holds the audit fragment embedded by every persisted model.
package record

import (
	"context"
	"time"

	"github.com/meridiancrm/meridian/internal/actorctx"
)

// SysFields carries the audit and soft-delete columns shared by all tables.
// The application layer populates every field; clients never supply them.
type SysFields struct {
	SysCreatedAt time.Time  `gorm:"column:sys_created_at;not null" json:"sys_created_at"`
	SysCreatedBy string     `gorm:"column:sys_created_by;type:text" json:"sys_created_by"`
	SysUpdatedAt *time.Time `gorm:"column:sys_updated_at" json:"sys_updated_at,omitempty"`
	SysUpdatedBy *string    `gorm:"column:sys_updated_by;type:text" json:"sys_updated_by,omitempty"`
	SysDeletedAt *time.Time `gorm:"column:sys_deleted_at;index" json:"sys_deleted_at,omitempty"`
	SysDeletedBy *string    `gorm:"column:sys_deleted_by;type:text" json:"sys_deleted_by,omitempty"`
}

// StampCreated sets the creation audit pair from the request actor.
func (f *SysFields) StampCreated(ctx context.Context, now time.Time) {
	f.SysCreatedAt = now.UTC()
	f.SysCreatedBy = actorctx.Username(ctx)
}

// StampUpdated sets the update audit pair from the request actor.
func (f *SysFields) StampUpdated(ctx context.Context, now time.Time) {
	at := now.UTC()
	by := actorctx.Username(ctx)
	f.SysUpdatedAt = &at
	f.SysUpdatedBy = &by
}

// StampDeleted marks the row logically deleted. Reads must filter on
// sys_deleted_at IS NULL.
func (f *SysFields) StampDeleted(ctx context.Context, now time.Time) {
	at := now.UTC()
	by := actorctx.Username(ctx)
	f.SysDeletedAt = &at
	f.SysDeletedBy = &by
}

// Deleted reports whether the row has been soft-deleted.
func (f *SysFields) Deleted() bool {
	return f.SysDeletedAt != nil
}
