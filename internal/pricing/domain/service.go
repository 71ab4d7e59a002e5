package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type LinkInput struct {
	AccountID string
	TargetID  string // price list or product, per operation
	StartOn   *time.Time
	EndOn     *time.Time
}

type Service interface {
	AttachList(ctx context.Context, input LinkInput) (AccountList, error)
	ListLists(ctx context.Context, accountID string) ([]AccountList, error)
	DetachList(ctx context.Context, accountID, linkID string) error

	AttachProduct(ctx context.Context, input LinkInput) (AccountProduct, error)
	ListProducts(ctx context.Context, accountID string) ([]AccountProduct, error)
	DetachProduct(ctx context.Context, accountID, linkID string) error

	// Resolve finds the price an account pays for a product on a given day,
	// or ErrNotAuthorized when no link grants access.
	Resolve(ctx context.Context, accountID, productID snowflake.ID, asOf time.Time) (Resolution, error)
}

var (
	ErrNotAuthorized       = errors.New("product_not_authorized_for_account")
	ErrListLinkNotFound    = errors.New("account_list_not_exist")
	ErrListLinkExists      = errors.New("account_list_exists")
	ErrProductLinkNotFound = errors.New("account_product_not_exist")
	ErrProductLinkExists   = errors.New("account_product_exists")
)
