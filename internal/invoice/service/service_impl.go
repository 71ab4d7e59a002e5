package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/meridiancrm/meridian/internal/invoice/domain"
	orderdomain "github.com/meridiancrm/meridian/internal/order/domain"
	"github.com/meridiancrm/meridian/pkg/db/pagination"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	OrderRepo orderdomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	orderRepo orderdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("invoice.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		orderRepo: p.OrderRepo,
	}
}

func (s *Service) CreateFromOrder(ctx context.Context, orderID string) (domain.InvoiceView, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(orderID))
	if err != nil || parsed == 0 {
		return domain.InvoiceView{}, orderdomain.ErrInvalidID
	}

	order, err := s.orderRepo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.InvoiceView{}, err
	}
	if order == nil {
		return domain.InvoiceView{}, orderdomain.ErrNotFound
	}
	if order.Status != orderdomain.OrderStatusApproved {
		return domain.InvoiceView{}, orderdomain.ErrInvalidState
	}

	live, err := s.repo.FindLiveByOrder(ctx, s.db, parsed)
	if err != nil {
		return domain.InvoiceView{}, err
	}
	if live != nil {
		return domain.InvoiceView{}, domain.ErrExists
	}

	orderItems, err := s.orderRepo.ListItems(ctx, s.db, parsed)
	if err != nil {
		return domain.InvoiceView{}, err
	}

	now := time.Now()
	invoice := domain.Invoice{
		ID:           s.genID.Generate(),
		OrderID:      order.ID,
		AccountID:    order.AccountID,
		Status:       domain.InvoiceStatusOpen,
		TransactedOn: order.TransactedOn,
		PostedOn:     &now,
	}
	invoice.StampCreated(ctx, now)

	items := make([]domain.InvoiceItem, 0, len(orderItems))
	for _, line := range orderItems {
		item := domain.InvoiceItem{
			ID:              s.genID.Generate(),
			InvoiceID:       invoice.ID,
			OrderItemID:     line.ID,
			ProductID:       line.ProductID,
			PriceListItemID: line.PriceListItemID,
			Quantity:        line.Quantity,
			Price:           line.Price,
			AdjustmentType:  string(line.AdjustmentType),
			AdjustmentValue: line.AdjustmentValue,
			Amount:          line.Amount,
			Description:     line.Description,
			Metadata: datatypes.JSONMap{
				"order_id":      order.ID.String(),
				"order_item_id": line.ID.String(),
				"captured_at":   now.UTC().Format(time.RFC3339),
			},
		}
		item.StampCreated(ctx, now)
		items = append(items, item)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &invoice); err != nil {
			return err
		}
		for i := range items {
			if err := s.repo.InsertItem(ctx, tx, &items[i]); err != nil {
				return err
			}
		}
		order.Status = orderdomain.OrderStatusInvoiced
		order.StampUpdated(ctx, now)
		return s.orderRepo.Save(ctx, tx, order)
	})
	if err != nil {
		return domain.InvoiceView{}, err
	}

	return domain.InvoiceView{Invoice: invoice, Items: items, Total: total(items)}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.InvoiceView, error) {
	invoice, err := s.requireInvoice(ctx, id)
	if err != nil {
		return domain.InvoiceView{}, err
	}
	return s.view(ctx, invoice)
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) (domain.ListInvoiceResponse, error) {
	items, count, err := s.repo.List(ctx, s.db, req.Page)
	if err != nil {
		return domain.ListInvoiceResponse{}, err
	}

	invoices := make([]domain.Invoice, 0, len(items))
	for _, item := range items {
		invoices = append(invoices, *item)
	}

	return domain.ListInvoiceResponse{
		PageInfo: pagination.BuildPageInfo(count, req.Page),
		Invoices: invoices,
	}, nil
}

func (s *Service) MarkPaid(ctx context.Context, id string) (domain.InvoiceView, error) {
	invoice, err := s.requireInvoice(ctx, id)
	if err != nil {
		return domain.InvoiceView{}, err
	}
	if invoice.Status != domain.InvoiceStatusOpen {
		return domain.InvoiceView{}, domain.ErrInvalidState
	}

	now := time.Now()
	invoice.Status = domain.InvoiceStatusPaid
	invoice.PaidOn = &now
	invoice.StampUpdated(ctx, now)

	if err := s.repo.Save(ctx, s.db, &invoice); err != nil {
		return domain.InvoiceView{}, err
	}
	return s.view(ctx, invoice)
}

func (s *Service) Cancel(ctx context.Context, id string) (domain.InvoiceView, error) {
	invoice, err := s.requireInvoice(ctx, id)
	if err != nil {
		return domain.InvoiceView{}, err
	}
	if invoice.Status != domain.InvoiceStatusOpen {
		return domain.InvoiceView{}, domain.ErrInvalidState
	}

	order, err := s.orderRepo.FindByID(ctx, s.db, invoice.OrderID)
	if err != nil {
		return domain.InvoiceView{}, err
	}

	now := time.Now()
	invoice.Status = domain.InvoiceStatusCanceled
	invoice.StampUpdated(ctx, now)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Save(ctx, tx, &invoice); err != nil {
			return err
		}
		if order == nil {
			return nil
		}
		order.Status = orderdomain.OrderStatusDraft
		order.ApprovedBy = nil
		order.ApprovedOn = nil
		order.StampUpdated(ctx, now)
		return s.orderRepo.Save(ctx, tx, order)
	})
	if err != nil {
		return domain.InvoiceView{}, err
	}
	return s.view(ctx, invoice)
}

func (s *Service) view(ctx context.Context, invoice domain.Invoice) (domain.InvoiceView, error) {
	items, err := s.repo.ListItems(ctx, s.db, invoice.ID)
	if err != nil {
		return domain.InvoiceView{}, err
	}
	return domain.InvoiceView{Invoice: invoice, Items: items, Total: total(items)}, nil
}

func (s *Service) requireInvoice(ctx context.Context, id string) (domain.Invoice, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.Invoice{}, domain.ErrInvalidID
	}
	invoice, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}
	return *invoice, nil
}

func total(items []domain.InvoiceItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Amount)
	}
	return sum
}
