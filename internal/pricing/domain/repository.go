package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertListLink(ctx context.Context, db *gorm.DB, link *AccountList) error
	FindListLink(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*AccountList, error)
	FindListLinkByPair(ctx context.Context, db *gorm.DB, accountID, priceListID snowflake.ID) (*AccountList, error)
	ListListLinks(ctx context.Context, db *gorm.DB, accountID snowflake.ID) ([]AccountList, error)
	SaveListLink(ctx context.Context, db *gorm.DB, link *AccountList) error

	InsertProductLink(ctx context.Context, db *gorm.DB, link *AccountProduct) error
	FindProductLink(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*AccountProduct, error)
	FindProductLinkByPair(ctx context.Context, db *gorm.DB, accountID, productID snowflake.ID) (*AccountProduct, error)
	ListProductLinks(ctx context.Context, db *gorm.DB, accountID snowflake.ID) ([]AccountProduct, error)
	SaveProductLink(ctx context.Context, db *gorm.DB, link *AccountProduct) error
}
