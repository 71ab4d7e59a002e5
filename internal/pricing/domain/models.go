// Package domain contains the account restriction links and the resolved
// price view. An account buys a product only through a linked price list
// or a direct product override.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/meridiancrm/meridian/internal/record"
	"github.com/shopspring/decimal"
)

// AccountList links an account to a price list for a window.
type AccountList struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	AccountID   snowflake.ID `gorm:"not null;index" json:"account_id"`
	PriceListID snowflake.ID `gorm:"not null;index" json:"price_list_id"`
	StartOn     *time.Time   `gorm:"type:date" json:"start_on,omitempty"`
	EndOn       *time.Time   `gorm:"type:date" json:"end_on,omitempty"`

	record.SysFields
}

func (AccountList) TableName() string { return "acc_account_lists" }

// Covers reports whether the link window includes the given day. A nil
// bound is open on that side.
func (l AccountList) Covers(day time.Time) bool {
	return windowCovers(l.StartOn, l.EndOn, day)
}

// WindowSpan measures the link window in days for narrowest-window
// precedence. Open-ended windows sort last.
func (l AccountList) WindowSpan() time.Duration {
	if l.StartOn == nil || l.EndOn == nil {
		return time.Duration(1<<63 - 1)
	}
	return l.EndOn.Sub(*l.StartOn)
}

// AccountProduct grants an account direct access to one product,
// bypassing list membership checks for its window.
type AccountProduct struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	AccountID snowflake.ID `gorm:"not null;index" json:"account_id"`
	ProductID snowflake.ID `gorm:"not null;index" json:"product_id"`
	StartOn   *time.Time   `gorm:"type:date" json:"start_on,omitempty"`
	EndOn     *time.Time   `gorm:"type:date" json:"end_on,omitempty"`

	record.SysFields
}

func (AccountProduct) TableName() string { return "acc_account_products" }

func (p AccountProduct) Covers(day time.Time) bool {
	return windowCovers(p.StartOn, p.EndOn, day)
}

func windowCovers(start, end *time.Time, day time.Time) bool {
	if start != nil && day.Before(*start) {
		return false
	}
	if end != nil && day.After(*end) {
		return false
	}
	return true
}

// Resolution is the outcome of a successful price lookup.
type Resolution struct {
	PriceListID     snowflake.ID    `json:"price_list_id"`
	PriceListItemID snowflake.ID    `json:"price_list_item_id"`
	Price           decimal.Decimal `json:"price"`
}
