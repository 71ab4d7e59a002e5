package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/meridiancrm/meridian/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, list *PriceList) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PriceList, error)
	List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*PriceList, int64, error)
	Save(ctx context.Context, db *gorm.DB, list *PriceList) error

	InsertItem(ctx context.Context, db *gorm.DB, item *PriceListItem) error
	FindItem(ctx context.Context, db *gorm.DB, listID, id snowflake.ID) (*PriceListItem, error)
	FindItemByProduct(ctx context.Context, db *gorm.DB, listID, productID snowflake.ID) (*PriceListItem, error)
	ListItems(ctx context.Context, db *gorm.DB, listID snowflake.ID) ([]PriceListItem, error)
	ListItemsByProduct(ctx context.Context, db *gorm.DB, productID snowflake.ID) ([]PriceListItem, error)
	SaveItem(ctx context.Context, db *gorm.DB, item *PriceListItem) error
}
