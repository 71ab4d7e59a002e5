package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/meridiancrm/meridian/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	FindLiveByOrder(ctx context.Context, db *gorm.DB, orderID snowflake.ID) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*Invoice, int64, error)
	Save(ctx context.Context, db *gorm.DB, invoice *Invoice) error

	InsertItem(ctx context.Context, db *gorm.DB, item *InvoiceItem) error
	ListItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]InvoiceItem, error)
}
