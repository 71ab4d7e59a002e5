// Package domain contains sales order models and the order state machine.
// Orders move draft -> approved -> invoiced; items only change while the
// order is draft.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/meridiancrm/meridian/internal/record"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusDraft    OrderStatus = "draft"
	OrderStatusApproved OrderStatus = "approved"
	OrderStatusInvoiced OrderStatus = "invoiced"
)

type Order struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	AccountID    snowflake.ID `gorm:"not null;index" json:"account_id"`
	Status       OrderStatus  `gorm:"type:text;not null" json:"status"`
	Owner        string       `gorm:"type:text;not null" json:"owner"`
	ApprovedBy   *string      `gorm:"type:text" json:"approved_by,omitempty"`
	ApprovedOn   *time.Time   `json:"approved_on,omitempty"`
	TransactedOn *time.Time   `gorm:"type:date" json:"transacted_on,omitempty"`

	record.SysFields
}

func (Order) TableName() string { return "om_sales_orders" }

// Editable reports whether items and order fields may still change.
func (o Order) Editable() bool { return o.Status == OrderStatusDraft }

type AdjustmentType string

const (
	AdjustmentDollar     AdjustmentType = "dollar"
	AdjustmentPercentage AdjustmentType = "percentage"
)

func (t AdjustmentType) Valid() bool {
	return t == AdjustmentDollar || t == AdjustmentPercentage
}

// OrderItem carries the price captured at add time plus a per-line
// adjustment. Amount is computed, never supplied.
type OrderItem struct {
	ID              snowflake.ID    `gorm:"primaryKey" json:"id"`
	OrderID         snowflake.ID    `gorm:"not null;index" json:"order_id"`
	ProductID       snowflake.ID    `gorm:"not null;index" json:"product_id"`
	PriceListItemID snowflake.ID    `gorm:"not null" json:"price_list_item_id"`
	Quantity        int64           `gorm:"not null" json:"quantity"`
	Price           decimal.Decimal `gorm:"type:numeric(19,4);not null" json:"price"`
	AdjustmentType  AdjustmentType  `gorm:"type:text;not null" json:"adjustment_type"`
	AdjustmentValue decimal.Decimal `gorm:"type:numeric(19,4);not null" json:"adjustment_value"`
	Amount          decimal.Decimal `gorm:"type:numeric(19,4);not null" json:"amount"`
	Description     *string         `gorm:"type:text" json:"description,omitempty"`

	record.SysFields
}

func (OrderItem) TableName() string { return "om_order_items" }

// ComputeAmount applies the line adjustment to the captured price and
// extends by quantity, rounding half-even at the given scale.
func ComputeAmount(price decimal.Decimal, adjType AdjustmentType, adjValue decimal.Decimal, quantity int64, places int32) decimal.Decimal {
	unit := price
	switch adjType {
	case AdjustmentDollar:
		unit = price.Add(adjValue)
	case AdjustmentPercentage:
		unit = price.Mul(decimal.NewFromInt(1).Add(adjValue.Div(decimal.NewFromInt(100))))
	}
	return unit.Mul(decimal.NewFromInt(quantity)).RoundBank(places)
}
