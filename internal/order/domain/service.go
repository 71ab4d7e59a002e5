package domain

import (
	"context"
	"errors"
	"time"

	"github.com/meridiancrm/meridian/pkg/db/pagination"
	"github.com/shopspring/decimal"
)

type CreateOrderRequest struct {
	AccountID    string
	TransactedOn *time.Time
}

type UpdateOrderRequest struct {
	ID           string
	TransactedOn *time.Time
}

type ListOrderRequest struct {
	Page pagination.Pagination
}

// OrderView bundles an order with its items and running total.
type OrderView struct {
	Order
	Items []OrderItem     `json:"items"`
	Total decimal.Decimal `json:"total"`
}

type ListOrderResponse struct {
	pagination.PageInfo
	Orders []Order `json:"orders"`
}

type SaveItemRequest struct {
	OrderID         string
	ItemID          string // empty on create
	ProductID       string
	Quantity        *int64
	AdjustmentType  *string
	AdjustmentValue *decimal.Decimal
	Description     *string
}

type Service interface {
	Create(ctx context.Context, req CreateOrderRequest) (OrderView, error)
	GetByID(ctx context.Context, id string) (OrderView, error)
	List(ctx context.Context, req ListOrderRequest) (ListOrderResponse, error)
	Update(ctx context.Context, req UpdateOrderRequest) (OrderView, error)
	Delete(ctx context.Context, id string) error

	AddItem(ctx context.Context, req SaveItemRequest) (OrderItem, error)
	UpdateItem(ctx context.Context, req SaveItemRequest) (OrderItem, error)
	RemoveItem(ctx context.Context, orderID, itemID string) error

	Approve(ctx context.Context, id string) (OrderView, error)
}

var (
	ErrNotFound          = errors.New("order_not_exist")
	ErrInvalidID         = errors.New("invalid_order_id")
	ErrNotEditable       = errors.New("order_not_editable")
	ErrInvalidState      = errors.New("invalid_order_state")
	ErrItemNotFound      = errors.New("order_item_not_exist")
	ErrInvalidQuantity   = errors.New("invalid_quantity")
	ErrInvalidAdjustment = errors.New("invalid_adjustment_type")
)
