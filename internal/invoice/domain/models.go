// Package domain contains persistence models for invoicing. An invoice is
// minted from an approved order; its items are value copies and never
// change afterward.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/meridiancrm/meridian/internal/record"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type InvoiceStatus string

const (
	InvoiceStatusOpen     InvoiceStatus = "open"
	InvoiceStatusPaid     InvoiceStatus = "paid"
	InvoiceStatusCanceled InvoiceStatus = "canceled"
)

type Invoice struct {
	ID           snowflake.ID  `gorm:"primaryKey" json:"id"`
	OrderID      snowflake.ID  `gorm:"not null;index" json:"order_id"`
	AccountID    snowflake.ID  `gorm:"not null;index" json:"account_id"`
	Status       InvoiceStatus `gorm:"type:text;not null" json:"status"`
	TransactedOn *time.Time    `gorm:"type:date" json:"transacted_on,omitempty"`
	PostedOn     *time.Time    `json:"posted_on,omitempty"`
	PaidOn       *time.Time    `json:"paid_on,omitempty"`

	record.SysFields
}

func (Invoice) TableName() string { return "om_invoices" }

// Live reports whether the invoice still binds its order: open or paid,
// not canceled, not soft-deleted.
func (i Invoice) Live() bool {
	return i.Status != InvoiceStatusCanceled && !i.Deleted()
}

// InvoiceItem is the frozen copy of one order line at minting time.
type InvoiceItem struct {
	ID              snowflake.ID      `gorm:"primaryKey" json:"id"`
	InvoiceID       snowflake.ID      `gorm:"not null;index" json:"invoice_id"`
	OrderItemID     snowflake.ID      `gorm:"not null" json:"order_item_id"`
	ProductID       snowflake.ID      `gorm:"not null" json:"product_id"`
	PriceListItemID snowflake.ID      `gorm:"not null" json:"price_list_item_id"`
	Quantity        int64             `gorm:"not null" json:"quantity"`
	Price           decimal.Decimal   `gorm:"type:numeric(19,4);not null" json:"price"`
	AdjustmentType  string            `gorm:"type:text;not null" json:"adjustment_type"`
	AdjustmentValue decimal.Decimal   `gorm:"type:numeric(19,4);not null" json:"adjustment_value"`
	Amount          decimal.Decimal   `gorm:"type:numeric(19,4);not null" json:"amount"`
	Description     *string           `gorm:"type:text" json:"description,omitempty"`
	Metadata        datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`

	record.SysFields
}

func (InvoiceItem) TableName() string { return "om_invoice_items" }
