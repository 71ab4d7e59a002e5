package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/meridiancrm/meridian/pkg/db/pagination"
	"gorm.io/gorm"
)

// Repository reads and writes entity rows and their contact channels.
// Every read filters soft-deleted rows.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, entity *Entity) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Entity, error)
	List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*Entity, int64, error)
	Save(ctx context.Context, db *gorm.DB, entity *Entity) error

	InsertAddress(ctx context.Context, db *gorm.DB, address *Address) error
	FindAddress(ctx context.Context, db *gorm.DB, parentID, id snowflake.ID) (*Address, error)
	ListAddresses(ctx context.Context, db *gorm.DB, parentID snowflake.ID, parent AddressParent) ([]Address, error)
	SaveAddress(ctx context.Context, db *gorm.DB, address *Address) error

	InsertEmail(ctx context.Context, db *gorm.DB, email *Email) error
	FindEmail(ctx context.Context, db *gorm.DB, entityID, id snowflake.ID) (*Email, error)
	ListEmails(ctx context.Context, db *gorm.DB, entityID snowflake.ID) ([]Email, error)
	SaveEmail(ctx context.Context, db *gorm.DB, email *Email) error

	InsertNumber(ctx context.Context, db *gorm.DB, number *PhoneNumber) error
	FindNumber(ctx context.Context, db *gorm.DB, entityID, id snowflake.ID) (*PhoneNumber, error)
	ListNumbers(ctx context.Context, db *gorm.DB, entityID snowflake.ID) ([]PhoneNumber, error)
	SaveNumber(ctx context.Context, db *gorm.DB, number *PhoneNumber) error

	InsertWebsite(ctx context.Context, db *gorm.DB, website *Website) error
	FindWebsite(ctx context.Context, db *gorm.DB, entityID, id snowflake.ID) (*Website, error)
	ListWebsites(ctx context.Context, db *gorm.DB, entityID snowflake.ID) ([]Website, error)
	SaveWebsite(ctx context.Context, db *gorm.DB, website *Website) error
}
