package domain

import (
	"context"
	"errors"
	"time"

	"github.com/meridiancrm/meridian/pkg/db/pagination"
	"github.com/shopspring/decimal"
)

type CreatePriceListRequest struct {
	Name        *string
	Description *string
	StartOn     *time.Time
	EndOn       *time.Time
}

type UpdatePriceListRequest struct {
	ID          string
	Name        *string
	Description *string
	StartOn     *time.Time
	EndOn       *time.Time
}

type ListPriceListRequest struct {
	Page pagination.Pagination
}

type ListPriceListResponse struct {
	pagination.PageInfo
	PriceLists []PriceList `json:"price_lists"`
}

type SaveItemRequest struct {
	PriceListID string
	ItemID      string // empty on create
	ProductID   string
	Price       *decimal.Decimal
}

type Service interface {
	Create(ctx context.Context, req CreatePriceListRequest) (PriceList, error)
	GetByID(ctx context.Context, id string) (PriceList, error)
	List(ctx context.Context, req ListPriceListRequest) (ListPriceListResponse, error)
	Update(ctx context.Context, req UpdatePriceListRequest) (PriceList, error)
	Delete(ctx context.Context, id string) error

	AddItem(ctx context.Context, req SaveItemRequest) (PriceListItem, error)
	GetItem(ctx context.Context, listID, itemID string) (PriceListItem, error)
	ListItems(ctx context.Context, listID string) ([]PriceListItem, error)
	UpdateItem(ctx context.Context, req SaveItemRequest) (PriceListItem, error)
	RemoveItem(ctx context.Context, listID, itemID string) error
}

var (
	ErrNotFound         = errors.New("product_list_not_exist")
	ErrInvalidID        = errors.New("invalid_product_list_id")
	ErrInvalidName      = errors.New("invalid_product_list_name")
	ErrInvalidDateRange = errors.New("invalid_product_list_dates")
	ErrItemNotFound     = errors.New("product_list_item_not_exist")
	ErrItemExists       = errors.New("product_list_item_exists")
	ErrInvalidPrice     = errors.New("invalid_price")
)
