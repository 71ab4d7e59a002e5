// Package domain contains price list models. A price list groups product
// prices under a validity window; items hold one price per product.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/meridiancrm/meridian/internal/record"
	"github.com/shopspring/decimal"
)

type PriceList struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:text;not null" json:"name"`
	Description *string      `gorm:"type:text" json:"description,omitempty"`
	StartOn     time.Time    `gorm:"type:date;not null" json:"start_on"`
	EndOn       time.Time    `gorm:"type:date;not null" json:"end_on"`

	record.SysFields
}

func (PriceList) TableName() string { return "pm_product_lists" }

// Covers reports whether the list window includes the given day.
func (l PriceList) Covers(day time.Time) bool {
	return !day.Before(l.StartOn) && !day.After(l.EndOn)
}

// PriceListItem prices one product on one list. A live (list, product)
// pair is unique; the migration backs this with a partial unique index.
type PriceListItem struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	PriceListID snowflake.ID    `gorm:"not null;index" json:"price_list_id"`
	ProductID   snowflake.ID    `gorm:"not null;index" json:"product_id"`
	Price       decimal.Decimal `gorm:"type:numeric(19,4);not null" json:"price"`

	record.SysFields
}

func (PriceListItem) TableName() string { return "pm_product_list_items" }
