package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/meridiancrm/meridian/pkg/db/pagination"
	"gorm.io/gorm"
)

// Repository reads and writes account rows, entity relationships, and
// contracts. Every read filters soft-deleted rows.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, account *Account) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Account, error)
	List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*Account, int64, error)
	Save(ctx context.Context, db *gorm.DB, account *Account) error

	InsertRelationship(ctx context.Context, db *gorm.DB, rel *EntityAccount) error
	FindRelationship(ctx context.Context, db *gorm.DB, id snowflake.ID) (*EntityAccount, error)
	FindRelationshipByPair(ctx context.Context, db *gorm.DB, entityID, accountID snowflake.ID, relType RelationshipType) (*EntityAccount, error)
	ListByAccount(ctx context.Context, db *gorm.DB, accountID snowflake.ID) ([]EntityAccount, error)
	ListByEntity(ctx context.Context, db *gorm.DB, entityID snowflake.ID) ([]EntityAccount, error)
	SaveRelationship(ctx context.Context, db *gorm.DB, rel *EntityAccount) error

	InsertContract(ctx context.Context, db *gorm.DB, contract *AccountContract) error
	FindContract(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*AccountContract, error)
	FindContractByName(ctx context.Context, db *gorm.DB, accountID snowflake.ID, name string) (*AccountContract, error)
	ListContracts(ctx context.Context, db *gorm.DB, accountID snowflake.ID) ([]AccountContract, error)
	SaveContract(ctx context.Context, db *gorm.DB, contract *AccountContract) error
}
