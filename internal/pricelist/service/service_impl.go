package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/meridiancrm/meridian/internal/pricelist/domain"
	productdomain "github.com/meridiancrm/meridian/internal/product/domain"
	"github.com/meridiancrm/meridian/pkg/db"
	"github.com/meridiancrm/meridian/pkg/db/pagination"
	"github.com/meridiancrm/meridian/pkg/nullable"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	ProductRepo productdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	productRepo productdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("pricelist.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		productRepo: p.ProductRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreatePriceListRequest) (domain.PriceList, error) {
	name := ""
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
	}
	if name == "" {
		return domain.PriceList{}, domain.ErrInvalidName
	}
	if req.StartOn == nil || req.EndOn == nil || req.EndOn.Before(*req.StartOn) {
		return domain.PriceList{}, domain.ErrInvalidDateRange
	}

	list := domain.PriceList{
		ID:          s.genID.Generate(),
		Name:        name,
		Description: nullable.Apply(nil, req.Description),
		StartOn:     *req.StartOn,
		EndOn:       *req.EndOn,
	}
	list.StampCreated(ctx, time.Now())

	if err := s.repo.Insert(ctx, s.db, &list); err != nil {
		return domain.PriceList{}, err
	}
	return list, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.PriceList, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.PriceList{}, err
	}
	return s.requireList(ctx, parsed)
}

func (s *Service) List(ctx context.Context, req domain.ListPriceListRequest) (domain.ListPriceListResponse, error) {
	items, total, err := s.repo.List(ctx, s.db, req.Page)
	if err != nil {
		return domain.ListPriceListResponse{}, err
	}

	lists := make([]domain.PriceList, 0, len(items))
	for _, item := range items {
		lists = append(lists, *item)
	}

	return domain.ListPriceListResponse{
		PageInfo:   pagination.BuildPageInfo(total, req.Page),
		PriceLists: lists,
	}, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdatePriceListRequest) (domain.PriceList, error) {
	parsed, err := s.parseID(req.ID)
	if err != nil {
		return domain.PriceList{}, err
	}

	list, err := s.requireList(ctx, parsed)
	if err != nil {
		return domain.PriceList{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.PriceList{}, domain.ErrInvalidName
		}
		list.Name = name
	}
	list.Description = nullable.Apply(list.Description, req.Description)
	if req.StartOn != nil {
		list.StartOn = *req.StartOn
	}
	if req.EndOn != nil {
		list.EndOn = *req.EndOn
	}
	if list.EndOn.Before(list.StartOn) {
		return domain.PriceList{}, domain.ErrInvalidDateRange
	}
	list.StampUpdated(ctx, time.Now())

	if err := s.repo.Save(ctx, s.db, &list); err != nil {
		return domain.PriceList{}, err
	}
	return list, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := s.parseID(id)
	if err != nil {
		return err
	}

	list, err := s.requireList(ctx, parsed)
	if err != nil {
		return err
	}

	list.StampDeleted(ctx, time.Now())
	return s.repo.Save(ctx, s.db, &list)
}

func (s *Service) AddItem(ctx context.Context, req domain.SaveItemRequest) (domain.PriceListItem, error) {
	listID, err := s.parseID(req.PriceListID)
	if err != nil {
		return domain.PriceListItem{}, err
	}
	if _, err := s.requireList(ctx, listID); err != nil {
		return domain.PriceListItem{}, err
	}

	productID, err := snowflake.ParseString(strings.TrimSpace(req.ProductID))
	if err != nil || productID == 0 {
		return domain.PriceListItem{}, productdomain.ErrNotFound
	}
	product, err := s.productRepo.FindByID(ctx, s.db, productID)
	if err != nil {
		return domain.PriceListItem{}, err
	}
	if product == nil {
		return domain.PriceListItem{}, productdomain.ErrNotFound
	}

	if req.Price == nil || req.Price.IsNegative() {
		return domain.PriceListItem{}, domain.ErrInvalidPrice
	}

	existing, err := s.repo.FindItemByProduct(ctx, s.db, listID, productID)
	if err != nil {
		return domain.PriceListItem{}, err
	}
	if existing != nil {
		return domain.PriceListItem{}, domain.ErrItemExists
	}

	item := domain.PriceListItem{
		ID:          s.genID.Generate(),
		PriceListID: listID,
		ProductID:   productID,
		Price:       *req.Price,
	}
	item.StampCreated(ctx, time.Now())

	if err := s.repo.InsertItem(ctx, s.db, &item); err != nil {
		// Partial unique index on live (list, product) pairs closes the
		// race the existence check cannot.
		if db.IsDuplicateKeyErr(err) {
			return domain.PriceListItem{}, domain.ErrItemExists
		}
		return domain.PriceListItem{}, err
	}
	return item, nil
}

func (s *Service) GetItem(ctx context.Context, listID, itemID string) (domain.PriceListItem, error) {
	parsed, err := s.parseID(listID)
	if err != nil {
		return domain.PriceListItem{}, err
	}
	return s.requireItem(ctx, parsed, itemID)
}

func (s *Service) ListItems(ctx context.Context, listID string) ([]domain.PriceListItem, error) {
	parsed, err := s.parseID(listID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireList(ctx, parsed); err != nil {
		return nil, err
	}
	return s.repo.ListItems(ctx, s.db, parsed)
}

func (s *Service) UpdateItem(ctx context.Context, req domain.SaveItemRequest) (domain.PriceListItem, error) {
	listID, err := s.parseID(req.PriceListID)
	if err != nil {
		return domain.PriceListItem{}, err
	}

	item, err := s.requireItem(ctx, listID, req.ItemID)
	if err != nil {
		return domain.PriceListItem{}, err
	}

	if req.Price == nil || req.Price.IsNegative() {
		return domain.PriceListItem{}, domain.ErrInvalidPrice
	}
	item.Price = *req.Price
	item.StampUpdated(ctx, time.Now())

	if err := s.repo.SaveItem(ctx, s.db, &item); err != nil {
		return domain.PriceListItem{}, err
	}
	return item, nil
}

func (s *Service) RemoveItem(ctx context.Context, listID, itemID string) error {
	parsed, err := s.parseID(listID)
	if err != nil {
		return err
	}

	item, err := s.requireItem(ctx, parsed, itemID)
	if err != nil {
		return err
	}

	item.StampDeleted(ctx, time.Now())
	return s.repo.SaveItem(ctx, s.db, &item)
}

func (s *Service) requireList(ctx context.Context, id snowflake.ID) (domain.PriceList, error) {
	list, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.PriceList{}, err
	}
	if list == nil {
		return domain.PriceList{}, domain.ErrNotFound
	}
	return *list, nil
}

func (s *Service) requireItem(ctx context.Context, listID snowflake.ID, itemID string) (domain.PriceListItem, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(itemID))
	if err != nil || id == 0 {
		return domain.PriceListItem{}, domain.ErrItemNotFound
	}
	item, err := s.repo.FindItem(ctx, s.db, listID, id)
	if err != nil {
		return domain.PriceListItem{}, err
	}
	if item == nil {
		return domain.PriceListItem{}, domain.ErrItemNotFound
	}
	return *item, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
