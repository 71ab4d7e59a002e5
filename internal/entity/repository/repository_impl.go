package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/meridiancrm/meridian/internal/entity/domain"
	"github.com/meridiancrm/meridian/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, entity *domain.Entity) error {
	return db.WithContext(ctx).Create(entity).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Entity, error) {
	var entity domain.Entity
	err := db.WithContext(ctx).
		Where("id = ? AND sys_deleted_at IS NULL", id).
		First(&entity).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*domain.Entity, int64, error) {
	var total int64
	stmt := db.WithContext(ctx).
		Model(&domain.Entity{}).
		Where("sys_deleted_at IS NULL")
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entities []*domain.Entity
	err := stmt.
		Order("id").
		Offset(page.Offset()).
		Limit(page.Normalize().Limit).
		Find(&entities).Error
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, entity *domain.Entity) error {
	return db.WithContext(ctx).Save(entity).Error
}

func (r *repo) InsertAddress(ctx context.Context, db *gorm.DB, address *domain.Address) error {
	return db.WithContext(ctx).Create(address).Error
}

func (r *repo) FindAddress(ctx context.Context, db *gorm.DB, parentID, id snowflake.ID) (*domain.Address, error) {
	var address domain.Address
	err := db.WithContext(ctx).
		Where("parent_id = ? AND id = ? AND sys_deleted_at IS NULL", parentID, id).
		First(&address).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}

func (r *repo) ListAddresses(ctx context.Context, db *gorm.DB, parentID snowflake.ID, parent domain.AddressParent) ([]domain.Address, error) {
	var addresses []domain.Address
	err := db.WithContext(ctx).
		Where("parent_id = ? AND parent_table = ? AND sys_deleted_at IS NULL", parentID, parent).
		Order("id").
		Find(&addresses).Error
	if err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *repo) SaveAddress(ctx context.Context, db *gorm.DB, address *domain.Address) error {
	return db.WithContext(ctx).Save(address).Error
}

func (r *repo) InsertEmail(ctx context.Context, db *gorm.DB, email *domain.Email) error {
	return db.WithContext(ctx).Create(email).Error
}

func (r *repo) FindEmail(ctx context.Context, db *gorm.DB, entityID, id snowflake.ID) (*domain.Email, error) {
	var email domain.Email
	err := db.WithContext(ctx).
		Where("entity_id = ? AND id = ? AND sys_deleted_at IS NULL", entityID, id).
		First(&email).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &email, nil
}

func (r *repo) ListEmails(ctx context.Context, db *gorm.DB, entityID snowflake.ID) ([]domain.Email, error) {
	var emails []domain.Email
	err := db.WithContext(ctx).
		Where("entity_id = ? AND sys_deleted_at IS NULL", entityID).
		Order("id").
		Find(&emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}

func (r *repo) SaveEmail(ctx context.Context, db *gorm.DB, email *domain.Email) error {
	return db.WithContext(ctx).Save(email).Error
}

func (r *repo) InsertNumber(ctx context.Context, db *gorm.DB, number *domain.PhoneNumber) error {
	return db.WithContext(ctx).Create(number).Error
}

func (r *repo) FindNumber(ctx context.Context, db *gorm.DB, entityID, id snowflake.ID) (*domain.PhoneNumber, error) {
	var number domain.PhoneNumber
	err := db.WithContext(ctx).
		Where("entity_id = ? AND id = ? AND sys_deleted_at IS NULL", entityID, id).
		First(&number).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &number, nil
}

func (r *repo) ListNumbers(ctx context.Context, db *gorm.DB, entityID snowflake.ID) ([]domain.PhoneNumber, error) {
	var numbers []domain.PhoneNumber
	err := db.WithContext(ctx).
		Where("entity_id = ? AND sys_deleted_at IS NULL", entityID).
		Order("id").
		Find(&numbers).Error
	if err != nil {
		return nil, err
	}
	return numbers, nil
}

func (r *repo) SaveNumber(ctx context.Context, db *gorm.DB, number *domain.PhoneNumber) error {
	return db.WithContext(ctx).Save(number).Error
}

func (r *repo) InsertWebsite(ctx context.Context, db *gorm.DB, website *domain.Website) error {
	return db.WithContext(ctx).Create(website).Error
}

func (r *repo) FindWebsite(ctx context.Context, db *gorm.DB, entityID, id snowflake.ID) (*domain.Website, error) {
	var website domain.Website
	err := db.WithContext(ctx).
		Where("entity_id = ? AND id = ? AND sys_deleted_at IS NULL", entityID, id).
		First(&website).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &website, nil
}

func (r *repo) ListWebsites(ctx context.Context, db *gorm.DB, entityID snowflake.ID) ([]domain.Website, error) {
	var websites []domain.Website
	err := db.WithContext(ctx).
		Where("entity_id = ? AND sys_deleted_at IS NULL", entityID).
		Order("id").
		Find(&websites).Error
	if err != nil {
		return nil, err
	}
	return websites, nil
}

func (r *repo) SaveWebsite(ctx context.Context, db *gorm.DB, website *domain.Website) error {
	return db.WithContext(ctx).Save(website).Error
}
