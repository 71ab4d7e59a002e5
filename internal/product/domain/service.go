package domain

import (
	"context"
	"errors"

	"github.com/meridiancrm/meridian/pkg/db/pagination"
)

type CreateProductRequest struct {
	Code        string
	Name        *string
	Terms       *string
	Description *string
}

type UpdateProductRequest struct {
	ID          string
	Name        *string
	Terms       *string
	Description *string
}

type ListProductRequest struct {
	Page pagination.Pagination
}

type ListProductResponse struct {
	pagination.PageInfo
	Products []Product `json:"products"`
}

type Service interface {
	Create(ctx context.Context, req CreateProductRequest) (Product, error)
	GetByID(ctx context.Context, id string) (Product, error)
	List(ctx context.Context, req ListProductRequest) (ListProductResponse, error)
	Update(ctx context.Context, req UpdateProductRequest) (Product, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrNotFound    = errors.New("product_not_exist")
	ErrExists      = errors.New("product_exists")
	ErrInvalidID   = errors.New("invalid_product_id")
	ErrInvalidCode = errors.New("invalid_product_code")
)
