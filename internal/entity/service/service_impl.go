package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/meridiancrm/meridian/internal/entity/domain"
	"github.com/meridiancrm/meridian/pkg/db/pagination"
	"github.com/meridiancrm/meridian/pkg/nullable"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("entity.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateEntityRequest) (domain.Entity, error) {
	entityType := domain.EntityType(strings.TrimSpace(req.Type))
	if !entityType.Valid() {
		return domain.Entity{}, domain.ErrInvalidType
	}

	entity := domain.Entity{
		ID:   s.genID.Generate(),
		Type: entityType,
		TIN:  nullable.Apply(nil, req.TIN),
	}

	switch entityType {
	case domain.EntityTypeIndividual:
		entity.FirstName = nullable.Apply(nil, req.FirstName)
		entity.LastName = nullable.Apply(nil, req.LastName)
		if entity.FirstName == nil || entity.LastName == nil {
			return domain.Entity{}, domain.ErrInvalidName
		}
	case domain.EntityTypeNonIndividual:
		entity.CompanyName = nullable.Apply(nil, req.CompanyName)
		if entity.CompanyName == nil {
			return domain.Entity{}, domain.ErrInvalidName
		}
	}
	entity.StampCreated(ctx, time.Now())

	if err := s.repo.Insert(ctx, s.db, &entity); err != nil {
		return domain.Entity{}, err
	}
	return entity, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Entity, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.Entity{}, err
	}
	return s.requireEntity(ctx, parsed)
}

func (s *Service) List(ctx context.Context, req domain.ListEntityRequest) (domain.ListEntityResponse, error) {
	items, total, err := s.repo.List(ctx, s.db, req.Page)
	if err != nil {
		return domain.ListEntityResponse{}, err
	}

	entities := make([]domain.Entity, 0, len(items))
	for _, item := range items {
		entities = append(entities, *item)
	}

	return domain.ListEntityResponse{
		PageInfo: pagination.BuildPageInfo(total, req.Page),
		Entities: entities,
	}, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateEntityRequest) (domain.Entity, error) {
	parsed, err := s.parseID(req.ID)
	if err != nil {
		return domain.Entity{}, err
	}

	entity, err := s.requireEntity(ctx, parsed)
	if err != nil {
		return domain.Entity{}, err
	}

	switch entity.Type {
	case domain.EntityTypeIndividual:
		if req.CompanyName != nil {
			return domain.Entity{}, domain.ErrTypeImmutable
		}
		firstName := nullable.Apply(entity.FirstName, req.FirstName)
		lastName := nullable.Apply(entity.LastName, req.LastName)
		if firstName == nil || lastName == nil {
			return domain.Entity{}, domain.ErrInvalidName
		}
		entity.FirstName = firstName
		entity.LastName = lastName
	case domain.EntityTypeNonIndividual:
		if req.FirstName != nil || req.LastName != nil {
			return domain.Entity{}, domain.ErrTypeImmutable
		}
		companyName := nullable.Apply(entity.CompanyName, req.CompanyName)
		if companyName == nil {
			return domain.Entity{}, domain.ErrInvalidName
		}
		entity.CompanyName = companyName
	}
	entity.TIN = nullable.Apply(entity.TIN, req.TIN)
	entity.StampUpdated(ctx, time.Now())

	if err := s.repo.Save(ctx, s.db, &entity); err != nil {
		return domain.Entity{}, err
	}
	return entity, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := s.parseID(id)
	if err != nil {
		return err
	}

	entity, err := s.requireEntity(ctx, parsed)
	if err != nil {
		return err
	}

	entity.StampDeleted(ctx, time.Now())
	return s.repo.Save(ctx, s.db, &entity)
}

func (s *Service) requireEntity(ctx context.Context, id snowflake.ID) (domain.Entity, error) {
	entity, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Entity{}, err
	}
	if entity == nil {
		return domain.Entity{}, domain.ErrNotFound
	}
	return *entity, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
