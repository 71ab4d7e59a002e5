package domain

import (
	"context"
	"errors"

	"github.com/meridiancrm/meridian/pkg/db/pagination"
	"github.com/shopspring/decimal"
)

type ListInvoiceRequest struct {
	Page pagination.Pagination
}

// InvoiceView bundles an invoice with its frozen items and total.
type InvoiceView struct {
	Invoice
	Items []InvoiceItem   `json:"items"`
	Total decimal.Decimal `json:"total"`
}

type ListInvoiceResponse struct {
	pagination.PageInfo
	Invoices []Invoice `json:"invoices"`
}

type Service interface {
	// CreateFromOrder mints an invoice from an approved order, copying
	// every order line by value and moving the order to invoiced.
	CreateFromOrder(ctx context.Context, orderID string) (InvoiceView, error)
	GetByID(ctx context.Context, id string) (InvoiceView, error)
	List(ctx context.Context, req ListInvoiceRequest) (ListInvoiceResponse, error)
	MarkPaid(ctx context.Context, id string) (InvoiceView, error)
	// Cancel voids an open invoice and reopens its order to draft.
	Cancel(ctx context.Context, id string) (InvoiceView, error)
}

var (
	ErrNotFound     = errors.New("invoice_not_exist")
	ErrInvalidID    = errors.New("invalid_invoice_id")
	ErrExists       = errors.New("invoice_exists")
	ErrInvalidState = errors.New("invalid_invoice_state")
)
