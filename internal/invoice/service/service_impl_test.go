package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/meridiancrm/meridian/internal/invoice/domain"
	"github.com/meridiancrm/meridian/internal/invoice/repository"
	orderdomain "github.com/meridiancrm/meridian/internal/order/domain"
	orderrepository "github.com/meridiancrm/meridian/internal/order/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type invoiceFixture struct {
	svc  domain.Service
	db   *gorm.DB
	node *snowflake.Node
}

func setupInvoiceService(t *testing.T) invoiceFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
		&domain.Invoice{},
		&domain.InvoiceItem{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Repo:      repository.Provide(),
		OrderRepo: orderrepository.Provide(),
	})
	return invoiceFixture{svc: svc, db: db, node: node}
}

func (f invoiceFixture) seedOrder(t *testing.T, status orderdomain.OrderStatus, amounts ...string) orderdomain.Order {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	order := orderdomain.Order{
		ID:        f.node.Generate(),
		AccountID: f.node.Generate(),
		Status:    status,
		Owner:     "sales",
	}
	order.StampCreated(ctx, now)
	require.NoError(t, f.db.Create(&order).Error)

	for _, amount := range amounts {
		item := orderdomain.OrderItem{
			ID:              f.node.Generate(),
			OrderID:         order.ID,
			ProductID:       f.node.Generate(),
			PriceListItemID: f.node.Generate(),
			Quantity:        1,
			Price:           decimal.RequireFromString(amount),
			AdjustmentType:  orderdomain.AdjustmentDollar,
			AdjustmentValue: decimal.Zero,
			Amount:          decimal.RequireFromString(amount),
		}
		item.StampCreated(ctx, now)
		require.NoError(t, f.db.Create(&item).Error)
	}
	return order
}

func TestInvoiceRequiresApprovedOrder(t *testing.T) {
	f := setupInvoiceService(t)
	ctx := context.Background()

	draft := f.seedOrder(t, orderdomain.OrderStatusDraft, "10.00")
	_, err := f.svc.CreateFromOrder(ctx, draft.ID.String())
	assert.ErrorIs(t, err, orderdomain.ErrInvalidState)

	invoiced := f.seedOrder(t, orderdomain.OrderStatusInvoiced, "10.00")
	_, err = f.svc.CreateFromOrder(ctx, invoiced.ID.String())
	assert.ErrorIs(t, err, orderdomain.ErrInvalidState)
}

func TestInvoiceMintFreezesOrderLines(t *testing.T) {
	f := setupInvoiceService(t)
	ctx := context.Background()

	order := f.seedOrder(t, orderdomain.OrderStatusApproved, "69.00", "31.00")

	view, err := f.svc.CreateFromOrder(ctx, order.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusOpen, view.Status)
	assert.Equal(t, order.ID, view.OrderID)
	assert.Equal(t, order.AccountID, view.AccountID)
	assert.NotNil(t, view.PostedOn)
	require.Len(t, view.Items, 2)
	assert.Equal(t, "100.00", view.Total.StringFixed(2))

	// Lines carry provenance back to the order.
	assert.Equal(t, order.ID.String(), view.Items[0].Metadata["order_id"])
	assert.NotEmpty(t, view.Items[0].Metadata["captured_at"])

	// The order is consumed.
	var stored orderdomain.Order
	require.NoError(t, f.db.Where("id = ?", order.ID).First(&stored).Error)
	assert.Equal(t, orderdomain.OrderStatusInvoiced, stored.Status)

	// Amending the order afterward does not touch the invoice copy.
	require.NoError(t, f.db.Model(&orderdomain.OrderItem{}).
		Where("order_id = ?", order.ID).
		Update("amount", decimal.RequireFromString("1.00")).Error)

	reread, err := f.svc.GetByID(ctx, view.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "100.00", reread.Total.StringFixed(2))
}

func TestInvoiceOnePerOrderWhileLive(t *testing.T) {
	f := setupInvoiceService(t)
	ctx := context.Background()

	order := f.seedOrder(t, orderdomain.OrderStatusApproved, "10.00")
	first, err := f.svc.CreateFromOrder(ctx, order.ID.String())
	require.NoError(t, err)

	// Force the order back to approved; the live invoice still blocks.
	require.NoError(t, f.db.Model(&orderdomain.Order{}).
		Where("id = ?", order.ID).
		Update("status", orderdomain.OrderStatusApproved).Error)

	_, err = f.svc.CreateFromOrder(ctx, order.ID.String())
	assert.ErrorIs(t, err, domain.ErrExists)

	// A canceled invoice no longer binds the order.
	_, err = f.svc.Cancel(ctx, first.ID.String())
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&orderdomain.Order{}).
		Where("id = ?", order.ID).
		Update("status", orderdomain.OrderStatusApproved).Error)

	_, err = f.svc.CreateFromOrder(ctx, order.ID.String())
	require.NoError(t, err)
}

func TestInvoiceCancelReopensOrder(t *testing.T) {
	f := setupInvoiceService(t)
	ctx := context.Background()

	order := f.seedOrder(t, orderdomain.OrderStatusApproved, "10.00")
	view, err := f.svc.CreateFromOrder(ctx, order.ID.String())
	require.NoError(t, err)

	canceled, err := f.svc.Cancel(ctx, view.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusCanceled, canceled.Status)

	var stored orderdomain.Order
	require.NoError(t, f.db.Where("id = ?", order.ID).First(&stored).Error)
	assert.Equal(t, orderdomain.OrderStatusDraft, stored.Status)
	assert.Nil(t, stored.ApprovedBy)
	assert.Nil(t, stored.ApprovedOn)

	// A canceled invoice is settled; no further transitions.
	_, err = f.svc.MarkPaid(ctx, view.ID.String())
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = f.svc.Cancel(ctx, view.ID.String())
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestInvoicePaidIsFinal(t *testing.T) {
	f := setupInvoiceService(t)
	ctx := context.Background()

	order := f.seedOrder(t, orderdomain.OrderStatusApproved, "10.00")
	view, err := f.svc.CreateFromOrder(ctx, order.ID.String())
	require.NoError(t, err)

	paid, err := f.svc.MarkPaid(ctx, view.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, paid.Status)
	assert.NotNil(t, paid.PaidOn)

	_, err = f.svc.Cancel(ctx, view.ID.String())
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = f.svc.MarkPaid(ctx, view.ID.String())
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
