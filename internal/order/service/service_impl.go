package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/meridiancrm/meridian/internal/account/domain"
	"github.com/meridiancrm/meridian/internal/actorctx"
	"github.com/meridiancrm/meridian/internal/config"
	"github.com/meridiancrm/meridian/internal/order/domain"
	pricingdomain "github.com/meridiancrm/meridian/internal/pricing/domain"
	productdomain "github.com/meridiancrm/meridian/internal/product/domain"
	"github.com/meridiancrm/meridian/pkg/db/pagination"
	"github.com/meridiancrm/meridian/pkg/nullable"
	"github.com/shopspring/decimal"
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
	AccountRepo accountdomain.Repository
	ProductRepo productdomain.Repository
	Pricing     pricingdomain.Service
	Policy      *config.PricingPolicyHolder
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	accountRepo accountdomain.Repository
	productRepo productdomain.Repository
	pricing     pricingdomain.Service
	policy      *config.PricingPolicyHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("order.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		accountRepo: p.AccountRepo,
		productRepo: p.ProductRepo,
		pricing:     p.Pricing,
		policy:      p.Policy,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateOrderRequest) (domain.OrderView, error) {
	accountID, err := snowflake.ParseString(strings.TrimSpace(req.AccountID))
	if err != nil || accountID == 0 {
		return domain.OrderView{}, accountdomain.ErrInvalidID
	}
	account, err := s.accountRepo.FindByID(ctx, s.db, accountID)
	if err != nil {
		return domain.OrderView{}, err
	}
	if account == nil {
		return domain.OrderView{}, accountdomain.ErrNotFound
	}

	order := domain.Order{
		ID:           s.genID.Generate(),
		AccountID:    accountID,
		Status:       domain.OrderStatusDraft,
		Owner:        actorctx.Username(ctx),
		TransactedOn: req.TransactedOn,
	}
	order.StampCreated(ctx, time.Now())

	if err := s.repo.Insert(ctx, s.db, &order); err != nil {
		return domain.OrderView{}, err
	}
	return domain.OrderView{Order: order, Items: []domain.OrderItem{}, Total: decimal.Zero}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.OrderView, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.OrderView{}, err
	}
	order, err := s.requireOrder(ctx, parsed)
	if err != nil {
		return domain.OrderView{}, err
	}
	return s.view(ctx, order)
}

func (s *Service) List(ctx context.Context, req domain.ListOrderRequest) (domain.ListOrderResponse, error) {
	items, total, err := s.repo.List(ctx, s.db, req.Page)
	if err != nil {
		return domain.ListOrderResponse{}, err
	}

	orders := make([]domain.Order, 0, len(items))
	for _, item := range items {
		orders = append(orders, *item)
	}

	return domain.ListOrderResponse{
		PageInfo: pagination.BuildPageInfo(total, req.Page),
		Orders:   orders,
	}, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateOrderRequest) (domain.OrderView, error) {
	parsed, err := s.parseID(req.ID)
	if err != nil {
		return domain.OrderView{}, err
	}

	order, err := s.requireOrder(ctx, parsed)
	if err != nil {
		return domain.OrderView{}, err
	}
	if !order.Editable() {
		return domain.OrderView{}, domain.ErrNotEditable
	}

	if req.TransactedOn != nil {
		order.TransactedOn = req.TransactedOn
	}
	order.StampUpdated(ctx, time.Now())

	if err := s.repo.Save(ctx, s.db, &order); err != nil {
		return domain.OrderView{}, err
	}
	return s.view(ctx, order)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := s.parseID(id)
	if err != nil {
		return err
	}

	order, err := s.requireOrder(ctx, parsed)
	if err != nil {
		return err
	}
	if !order.Editable() {
		return domain.ErrNotEditable
	}

	order.StampDeleted(ctx, time.Now())
	return s.repo.Save(ctx, s.db, &order)
}

func (s *Service) AddItem(ctx context.Context, req domain.SaveItemRequest) (domain.OrderItem, error) {
	orderID, err := s.parseID(req.OrderID)
	if err != nil {
		return domain.OrderItem{}, err
	}
	order, err := s.requireOrder(ctx, orderID)
	if err != nil {
		return domain.OrderItem{}, err
	}
	if !order.Editable() {
		return domain.OrderItem{}, domain.ErrNotEditable
	}

	productID, err := snowflake.ParseString(strings.TrimSpace(req.ProductID))
	if err != nil || productID == 0 {
		return domain.OrderItem{}, productdomain.ErrNotFound
	}
	product, err := s.productRepo.FindByID(ctx, s.db, productID)
	if err != nil {
		return domain.OrderItem{}, err
	}
	if product == nil {
		return domain.OrderItem{}, productdomain.ErrNotFound
	}

	quantity, adjType, adjValue, err := itemInputs(req)
	if err != nil {
		return domain.OrderItem{}, err
	}

	resolved, err := s.pricing.Resolve(ctx, order.AccountID, productID, s.asOf(order))
	if err != nil {
		return domain.OrderItem{}, err
	}

	item := domain.OrderItem{
		ID:              s.genID.Generate(),
		OrderID:         orderID,
		ProductID:       productID,
		PriceListItemID: resolved.PriceListItemID,
		Quantity:        quantity,
		Price:           resolved.Price,
		AdjustmentType:  adjType,
		AdjustmentValue: adjValue,
		Amount:          domain.ComputeAmount(resolved.Price, adjType, adjValue, quantity, s.policy.Get().RoundingPlaces),
		Description:     nullable.Apply(nil, req.Description),
	}
	item.StampCreated(ctx, time.Now())

	if err := s.repo.InsertItem(ctx, s.db, &item); err != nil {
		return domain.OrderItem{}, err
	}
	return item, nil
}

func (s *Service) UpdateItem(ctx context.Context, req domain.SaveItemRequest) (domain.OrderItem, error) {
	orderID, err := s.parseID(req.OrderID)
	if err != nil {
		return domain.OrderItem{}, err
	}
	order, err := s.requireOrder(ctx, orderID)
	if err != nil {
		return domain.OrderItem{}, err
	}
	if !order.Editable() {
		return domain.OrderItem{}, domain.ErrNotEditable
	}

	item, err := s.requireItem(ctx, orderID, req.ItemID)
	if err != nil {
		return domain.OrderItem{}, err
	}

	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return domain.OrderItem{}, domain.ErrInvalidQuantity
		}
		item.Quantity = *req.Quantity
	}
	if req.AdjustmentType != nil {
		adjType := domain.AdjustmentType(strings.TrimSpace(*req.AdjustmentType))
		if !adjType.Valid() {
			return domain.OrderItem{}, domain.ErrInvalidAdjustment
		}
		item.AdjustmentType = adjType
	}
	if req.AdjustmentValue != nil {
		item.AdjustmentValue = *req.AdjustmentValue
	}
	item.Description = nullable.Apply(item.Description, req.Description)
	item.Amount = domain.ComputeAmount(item.Price, item.AdjustmentType, item.AdjustmentValue, item.Quantity, s.policy.Get().RoundingPlaces)
	item.StampUpdated(ctx, time.Now())

	if err := s.repo.SaveItem(ctx, s.db, &item); err != nil {
		return domain.OrderItem{}, err
	}
	return item, nil
}

func (s *Service) RemoveItem(ctx context.Context, orderID, itemID string) error {
	parsed, err := s.parseID(orderID)
	if err != nil {
		return err
	}
	order, err := s.requireOrder(ctx, parsed)
	if err != nil {
		return err
	}
	if !order.Editable() {
		return domain.ErrNotEditable
	}

	item, err := s.requireItem(ctx, parsed, itemID)
	if err != nil {
		return err
	}

	item.StampDeleted(ctx, time.Now())
	return s.repo.SaveItem(ctx, s.db, &item)
}

func (s *Service) Approve(ctx context.Context, id string) (domain.OrderView, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.OrderView{}, err
	}

	order, err := s.requireOrder(ctx, parsed)
	if err != nil {
		return domain.OrderView{}, err
	}
	if order.Status != domain.OrderStatusDraft {
		return domain.OrderView{}, domain.ErrInvalidState
	}

	now := time.Now()
	approver := actorctx.Username(ctx)
	order.Status = domain.OrderStatusApproved
	order.ApprovedBy = &approver
	order.ApprovedOn = &now
	order.StampUpdated(ctx, now)

	if err := s.repo.Save(ctx, s.db, &order); err != nil {
		return domain.OrderView{}, err
	}
	return s.view(ctx, order)
}

func itemInputs(req domain.SaveItemRequest) (int64, domain.AdjustmentType, decimal.Decimal, error) {
	if req.Quantity == nil || *req.Quantity <= 0 {
		return 0, "", decimal.Zero, domain.ErrInvalidQuantity
	}

	adjType := domain.AdjustmentDollar
	if req.AdjustmentType != nil {
		adjType = domain.AdjustmentType(strings.TrimSpace(*req.AdjustmentType))
		if !adjType.Valid() {
			return 0, "", decimal.Zero, domain.ErrInvalidAdjustment
		}
	}

	adjValue := decimal.Zero
	if req.AdjustmentValue != nil {
		adjValue = *req.AdjustmentValue
	}
	return *req.Quantity, adjType, adjValue, nil
}

// asOf picks the pricing day: the order's transaction date when set,
// otherwise today.
func (s *Service) asOf(order domain.Order) time.Time {
	if order.TransactedOn != nil {
		return *order.TransactedOn
	}
	return time.Now()
}

func (s *Service) view(ctx context.Context, order domain.Order) (domain.OrderView, error) {
	items, err := s.repo.ListItems(ctx, s.db, order.ID)
	if err != nil {
		return domain.OrderView{}, err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}

	return domain.OrderView{Order: order, Items: items, Total: total}, nil
}

func (s *Service) requireOrder(ctx context.Context, id snowflake.ID) (domain.Order, error) {
	order, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Order{}, err
	}
	if order == nil {
		return domain.Order{}, domain.ErrNotFound
	}
	return *order, nil
}

func (s *Service) requireItem(ctx context.Context, orderID snowflake.ID, itemID string) (domain.OrderItem, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(itemID))
	if err != nil || id == 0 {
		return domain.OrderItem{}, domain.ErrItemNotFound
	}
	item, err := s.repo.FindItem(ctx, s.db, orderID, id)
	if err != nil {
		return domain.OrderItem{}, err
	}
	if item == nil {
		return domain.OrderItem{}, domain.ErrItemNotFound
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
