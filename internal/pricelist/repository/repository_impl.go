package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/meridiancrm/meridian/internal/pricelist/domain"
	"github.com/meridiancrm/meridian/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, list *domain.PriceList) error {
	return db.WithContext(ctx).Create(list).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.PriceList, error) {
	var list domain.PriceList
	err := db.WithContext(ctx).
		Where("id = ? AND sys_deleted_at IS NULL", id).
		First(&list).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &list, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*domain.PriceList, int64, error) {
	var total int64
	stmt := db.WithContext(ctx).
		Model(&domain.PriceList{}).
		Where("sys_deleted_at IS NULL")
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var lists []*domain.PriceList
	err := stmt.
		Order("id").
		Offset(page.Offset()).
		Limit(page.Normalize().Limit).
		Find(&lists).Error
	if err != nil {
		return nil, 0, err
	}
	return lists, total, nil
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, list *domain.PriceList) error {
	return db.WithContext(ctx).Save(list).Error
}

func (r *repo) InsertItem(ctx context.Context, db *gorm.DB, item *domain.PriceListItem) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *repo) FindItem(ctx context.Context, db *gorm.DB, listID, id snowflake.ID) (*domain.PriceListItem, error) {
	var item domain.PriceListItem
	err := db.WithContext(ctx).
		Where("price_list_id = ? AND id = ? AND sys_deleted_at IS NULL", listID, id).
		First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *repo) FindItemByProduct(ctx context.Context, db *gorm.DB, listID, productID snowflake.ID) (*domain.PriceListItem, error) {
	var item domain.PriceListItem
	err := db.WithContext(ctx).
		Where("price_list_id = ? AND product_id = ? AND sys_deleted_at IS NULL", listID, productID).
		First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *repo) ListItems(ctx context.Context, db *gorm.DB, listID snowflake.ID) ([]domain.PriceListItem, error) {
	var items []domain.PriceListItem
	err := db.WithContext(ctx).
		Where("price_list_id = ? AND sys_deleted_at IS NULL", listID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListItemsByProduct(ctx context.Context, db *gorm.DB, productID snowflake.ID) ([]domain.PriceListItem, error) {
	var items []domain.PriceListItem
	err := db.WithContext(ctx).
		Where("product_id = ? AND sys_deleted_at IS NULL", productID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) SaveItem(ctx context.Context, db *gorm.DB, item *domain.PriceListItem) error {
	return db.WithContext(ctx).Save(item).Error
}
