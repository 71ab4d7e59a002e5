package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/meridiancrm/meridian/internal/pricing/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertListLink(ctx context.Context, db *gorm.DB, link *domain.AccountList) error {
	return db.WithContext(ctx).Create(link).Error
}

func (r *repo) FindListLink(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*domain.AccountList, error) {
	var link domain.AccountList
	err := db.WithContext(ctx).
		Where("account_id = ? AND id = ? AND sys_deleted_at IS NULL", accountID, id).
		First(&link).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (r *repo) FindListLinkByPair(ctx context.Context, db *gorm.DB, accountID, priceListID snowflake.ID) (*domain.AccountList, error) {
	var link domain.AccountList
	err := db.WithContext(ctx).
		Where("account_id = ? AND price_list_id = ? AND sys_deleted_at IS NULL", accountID, priceListID).
		First(&link).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (r *repo) ListListLinks(ctx context.Context, db *gorm.DB, accountID snowflake.ID) ([]domain.AccountList, error) {
	var links []domain.AccountList
	err := db.WithContext(ctx).
		Where("account_id = ? AND sys_deleted_at IS NULL", accountID).
		Order("id").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *repo) SaveListLink(ctx context.Context, db *gorm.DB, link *domain.AccountList) error {
	return db.WithContext(ctx).Save(link).Error
}

func (r *repo) InsertProductLink(ctx context.Context, db *gorm.DB, link *domain.AccountProduct) error {
	return db.WithContext(ctx).Create(link).Error
}

func (r *repo) FindProductLink(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*domain.AccountProduct, error) {
	var link domain.AccountProduct
	err := db.WithContext(ctx).
		Where("account_id = ? AND id = ? AND sys_deleted_at IS NULL", accountID, id).
		First(&link).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (r *repo) FindProductLinkByPair(ctx context.Context, db *gorm.DB, accountID, productID snowflake.ID) (*domain.AccountProduct, error) {
	var link domain.AccountProduct
	err := db.WithContext(ctx).
		Where("account_id = ? AND product_id = ? AND sys_deleted_at IS NULL", accountID, productID).
		First(&link).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (r *repo) ListProductLinks(ctx context.Context, db *gorm.DB, accountID snowflake.ID) ([]domain.AccountProduct, error) {
	var links []domain.AccountProduct
	err := db.WithContext(ctx).
		Where("account_id = ? AND sys_deleted_at IS NULL", accountID).
		Order("id").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *repo) SaveProductLink(ctx context.Context, db *gorm.DB, link *domain.AccountProduct) error {
	return db.WithContext(ctx).Save(link).Error
}
