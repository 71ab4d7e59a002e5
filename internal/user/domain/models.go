// Package domain contains the system user model and service contract.
package domain

import (
	"github.com/bwmarrin/snowflake"
	"github.com/meridiancrm/meridian/internal/record"
)

// SysUser is an operator account able to authenticate against the API.
type SysUser struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Username     string       `gorm:"type:text;not null" json:"username"`
	Email        string       `gorm:"type:text;not null" json:"email"`
	PasswordHash string       `gorm:"type:text;not null" json:"-"`
	FirstName    string       `gorm:"type:text" json:"first_name"`
	LastName     string       `gorm:"type:text" json:"last_name"`

	record.SysFields
}

// TableName sets the database table name.
func (SysUser) TableName() string { return "sys_users" }
