package migration

import (
	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/meridiancrm/meridian/internal/account/domain"
	"github.com/meridiancrm/meridian/internal/config"
	entitydomain "github.com/meridiancrm/meridian/internal/entity/domain"
	invoicedomain "github.com/meridiancrm/meridian/internal/invoice/domain"
	orderdomain "github.com/meridiancrm/meridian/internal/order/domain"
	pricelistdomain "github.com/meridiancrm/meridian/internal/pricelist/domain"
	pricingdomain "github.com/meridiancrm/meridian/internal/pricing/domain"
	productdomain "github.com/meridiancrm/meridian/internal/product/domain"
	"github.com/meridiancrm/meridian/internal/seed"
	userdomain "github.com/meridiancrm/meridian/internal/user/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, node *snowflake.Node, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// Non-postgres databases (sqlite for local development) fall
			// back to schema sync from the models.
			if err := conn.AutoMigrate(
				&userdomain.SysUser{},
				&entitydomain.Entity{},
				&entitydomain.Address{},
				&entitydomain.Email{},
				&entitydomain.PhoneNumber{},
				&entitydomain.Website{},
				&accountdomain.Account{},
				&accountdomain.EntityAccount{},
				&accountdomain.AccountContract{},
				&productdomain.Product{},
				&pricelistdomain.PriceList{},
				&pricelistdomain.PriceListItem{},
				&pricingdomain.AccountList{},
				&pricingdomain.AccountProduct{},
				&orderdomain.Order{},
				&orderdomain.OrderItem{},
				&invoicedomain.Invoice{},
				&invoicedomain.InvoiceItem{},
			); err != nil {
				return err
			}
		}

		return seed.EnsureAdmin(conn, node, cfg)
	}),
)
