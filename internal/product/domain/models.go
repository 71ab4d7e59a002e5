// Package domain contains the product catalog model.
package domain

import (
	"github.com/bwmarrin/snowflake"
	"github.com/meridiancrm/meridian/internal/record"
)

// Product is a sellable catalog item. Code is unique among live rows.
type Product struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Code        string       `gorm:"type:text;not null" json:"code"`
	Name        *string      `gorm:"type:text" json:"name,omitempty"`
	Terms       *string      `gorm:"type:text" json:"terms,omitempty"`
	Description *string      `gorm:"type:text" json:"description,omitempty"`

	record.SysFields
}

func (Product) TableName() string { return "pm_products" }
