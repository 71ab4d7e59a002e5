package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/meridiancrm/meridian/internal/account/domain"
	"github.com/meridiancrm/meridian/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, account *domain.Account) error {
	return db.WithContext(ctx).Create(account).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Account, error) {
	var account domain.Account
	err := db.WithContext(ctx).
		Where("id = ? AND sys_deleted_at IS NULL", id).
		First(&account).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*domain.Account, int64, error) {
	var total int64
	stmt := db.WithContext(ctx).
		Model(&domain.Account{}).
		Where("sys_deleted_at IS NULL")
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var accounts []*domain.Account
	err := stmt.
		Order("id").
		Offset(page.Offset()).
		Limit(page.Normalize().Limit).
		Find(&accounts).Error
	if err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, account *domain.Account) error {
	return db.WithContext(ctx).Save(account).Error
}

func (r *repo) InsertRelationship(ctx context.Context, db *gorm.DB, rel *domain.EntityAccount) error {
	return db.WithContext(ctx).Create(rel).Error
}

func (r *repo) FindRelationship(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.EntityAccount, error) {
	var rel domain.EntityAccount
	err := db.WithContext(ctx).
		Where("id = ? AND sys_deleted_at IS NULL", id).
		First(&rel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rel, nil
}

func (r *repo) FindRelationshipByPair(ctx context.Context, db *gorm.DB, entityID, accountID snowflake.ID, relType domain.RelationshipType) (*domain.EntityAccount, error) {
	var rel domain.EntityAccount
	err := db.WithContext(ctx).
		Where("entity_id = ? AND account_id = ? AND relationship_type = ? AND sys_deleted_at IS NULL",
			entityID, accountID, relType).
		First(&rel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rel, nil
}

func (r *repo) ListByAccount(ctx context.Context, db *gorm.DB, accountID snowflake.ID) ([]domain.EntityAccount, error) {
	var rels []domain.EntityAccount
	err := db.WithContext(ctx).
		Where("account_id = ? AND sys_deleted_at IS NULL", accountID).
		Order("id").
		Find(&rels).Error
	if err != nil {
		return nil, err
	}
	return rels, nil
}

func (r *repo) ListByEntity(ctx context.Context, db *gorm.DB, entityID snowflake.ID) ([]domain.EntityAccount, error) {
	var rels []domain.EntityAccount
	err := db.WithContext(ctx).
		Where("entity_id = ? AND sys_deleted_at IS NULL", entityID).
		Order("id").
		Find(&rels).Error
	if err != nil {
		return nil, err
	}
	return rels, nil
}

func (r *repo) SaveRelationship(ctx context.Context, db *gorm.DB, rel *domain.EntityAccount) error {
	return db.WithContext(ctx).Save(rel).Error
}

func (r *repo) InsertContract(ctx context.Context, db *gorm.DB, contract *domain.AccountContract) error {
	return db.WithContext(ctx).Create(contract).Error
}

func (r *repo) FindContract(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*domain.AccountContract, error) {
	var contract domain.AccountContract
	err := db.WithContext(ctx).
		Where("account_id = ? AND id = ? AND sys_deleted_at IS NULL", accountID, id).
		First(&contract).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &contract, nil
}

func (r *repo) FindContractByName(ctx context.Context, db *gorm.DB, accountID snowflake.ID, name string) (*domain.AccountContract, error) {
	var contract domain.AccountContract
	err := db.WithContext(ctx).
		Where("account_id = ? AND name = ? AND sys_deleted_at IS NULL", accountID, name).
		First(&contract).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &contract, nil
}

func (r *repo) ListContracts(ctx context.Context, db *gorm.DB, accountID snowflake.ID) ([]domain.AccountContract, error) {
	var contracts []domain.AccountContract
	err := db.WithContext(ctx).
		Where("account_id = ? AND sys_deleted_at IS NULL", accountID).
		Order("id").
		Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *repo) SaveContract(ctx context.Context, db *gorm.DB, contract *domain.AccountContract) error {
	return db.WithContext(ctx).Save(contract).Error
}
