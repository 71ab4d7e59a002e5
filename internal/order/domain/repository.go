package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/meridiancrm/meridian/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, order *Order) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Order, error)
	List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*Order, int64, error)
	Save(ctx context.Context, db *gorm.DB, order *Order) error

	InsertItem(ctx context.Context, db *gorm.DB, item *OrderItem) error
	FindItem(ctx context.Context, db *gorm.DB, orderID, id snowflake.ID) (*OrderItem, error)
	ListItems(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]OrderItem, error)
	SaveItem(ctx context.Context, db *gorm.DB, item *OrderItem) error
}
