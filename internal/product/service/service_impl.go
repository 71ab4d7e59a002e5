package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/meridiancrm/meridian/internal/product/domain"
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
		log:   p.Log.Named("product.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateProductRequest) (domain.Product, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return domain.Product{}, domain.ErrInvalidCode
	}

	existing, err := s.repo.FindByCode(ctx, s.db, code)
	if err != nil {
		return domain.Product{}, err
	}
	if existing != nil {
		return domain.Product{}, domain.ErrExists
	}

	product := domain.Product{
		ID:          s.genID.Generate(),
		Code:        code,
		Name:        nullable.Apply(nil, req.Name),
		Terms:       nullable.Apply(nil, req.Terms),
		Description: nullable.Apply(nil, req.Description),
	}
	product.StampCreated(ctx, time.Now())

	if err := s.repo.Insert(ctx, s.db, &product); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Product, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.Product{}, err
	}
	return s.requireProduct(ctx, parsed)
}

func (s *Service) List(ctx context.Context, req domain.ListProductRequest) (domain.ListProductResponse, error) {
	items, total, err := s.repo.List(ctx, s.db, req.Page)
	if err != nil {
		return domain.ListProductResponse{}, err
	}

	products := make([]domain.Product, 0, len(items))
	for _, item := range items {
		products = append(products, *item)
	}

	return domain.ListProductResponse{
		PageInfo: pagination.BuildPageInfo(total, req.Page),
		Products: products,
	}, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateProductRequest) (domain.Product, error) {
	parsed, err := s.parseID(req.ID)
	if err != nil {
		return domain.Product{}, err
	}

	product, err := s.requireProduct(ctx, parsed)
	if err != nil {
		return domain.Product{}, err
	}

	product.Name = nullable.Apply(product.Name, req.Name)
	product.Terms = nullable.Apply(product.Terms, req.Terms)
	product.Description = nullable.Apply(product.Description, req.Description)
	product.StampUpdated(ctx, time.Now())

	if err := s.repo.Save(ctx, s.db, &product); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := s.parseID(id)
	if err != nil {
		return err
	}

	product, err := s.requireProduct(ctx, parsed)
	if err != nil {
		return err
	}

	product.StampDeleted(ctx, time.Now())
	return s.repo.Save(ctx, s.db, &product)
}

func (s *Service) requireProduct(ctx context.Context, id snowflake.ID) (domain.Product, error) {
	product, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Product{}, err
	}
	if product == nil {
		return domain.Product{}, domain.ErrNotFound
	}
	return *product, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
