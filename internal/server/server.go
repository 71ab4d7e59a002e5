package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meridiancrm/meridian/internal/account"
	accountdomain "github.com/meridiancrm/meridian/internal/account/domain"
	"github.com/meridiancrm/meridian/internal/auth"
	"github.com/meridiancrm/meridian/internal/auth/session"
	"github.com/meridiancrm/meridian/internal/auth/token"
	"github.com/meridiancrm/meridian/internal/config"
	"github.com/meridiancrm/meridian/internal/entity"
	entitydomain "github.com/meridiancrm/meridian/internal/entity/domain"
	"github.com/meridiancrm/meridian/internal/invoice"
	invoicedomain "github.com/meridiancrm/meridian/internal/invoice/domain"
	obslogger "github.com/meridiancrm/meridian/internal/observability/logger"
	obsmetrics "github.com/meridiancrm/meridian/internal/observability/metrics"
	"github.com/meridiancrm/meridian/internal/order"
	orderdomain "github.com/meridiancrm/meridian/internal/order/domain"
	"github.com/meridiancrm/meridian/internal/pricelist"
	pricelistdomain "github.com/meridiancrm/meridian/internal/pricelist/domain"
	"github.com/meridiancrm/meridian/internal/pricing"
	pricingdomain "github.com/meridiancrm/meridian/internal/pricing/domain"
	"github.com/meridiancrm/meridian/internal/product"
	productdomain "github.com/meridiancrm/meridian/internal/product/domain"
	"github.com/meridiancrm/meridian/internal/user"
	userdomain "github.com/meridiancrm/meridian/internal/user/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	auth.Module,
	user.Module,
	entity.Module,
	account.Module,
	product.Module,
	pricelist.Module,
	pricing.Module,
	order.Module,
	invoice.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if !cfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log, obslogger.MiddlewareConfig{
		Debug:           cfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	sessions     *session.Manager
	issuer       *token.Issuer
	userSvc      userdomain.Service
	entitySvc    entitydomain.Service
	accountSvc   accountdomain.Service
	productSvc   productdomain.Service
	priceListSvc pricelistdomain.Service
	pricingSvc   pricingdomain.Service
	orderSvc     orderdomain.Service
	invoiceSvc   invoicedomain.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	Sessions     *session.Manager
	Issuer       *token.Issuer
	UserSvc      userdomain.Service
	EntitySvc    entitydomain.Service
	AccountSvc   accountdomain.Service
	ProductSvc   productdomain.Service
	PriceListSvc pricelistdomain.Service
	PricingSvc   pricingdomain.Service
	OrderSvc     orderdomain.Service
	InvoiceSvc   invoicedomain.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		sessions:     p.Sessions,
		issuer:       p.Issuer,
		userSvc:      p.UserSvc,
		entitySvc:    p.EntitySvc,
		accountSvc:   p.AccountSvc,
		productSvc:   p.ProductSvc,
		priceListSvc: p.PriceListSvc,
		pricingSvc:   p.PricingSvc,
		orderSvc:     p.OrderSvc,
		invoiceSvc:   p.InvoiceSvc,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func registerRoutes(s *Server) {
	s.registerAuthRoutes()
	s.registerAPIRoutes()
}

func (s *Server) registerAuthRoutes() {
	authGroup := s.engine.Group("/auth")

	authGroup.POST("/login", s.Login)
	authGroup.POST("/logout", s.Logout)
	authGroup.GET("/me", s.RequireAuth(), s.Me)
	if s.cfg.AllowSignup {
		authGroup.POST("/signup", s.Signup)
	}
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.RequireAuth())

	// -------- Users --------
	api.GET("/users", s.ListUsers)
	api.POST("/users", s.CreateUser)
	api.GET("/users/:id", s.GetUserByID)
	api.PATCH("/users/:id", s.UpdateUser)
	api.DELETE("/users/:id", s.DeleteUser)

	// -------- Entities --------
	api.GET("/entities", s.ListEntities)
	api.POST("/entities", s.CreateEntity)
	api.GET("/entities/:id", s.GetEntityByID)
	api.PATCH("/entities/:id", s.UpdateEntity)
	api.DELETE("/entities/:id", s.DeleteEntity)
	api.GET("/entities/:id/accounts", s.ListEntityAccounts)

	api.GET("/entities/:id/addresses", s.ListEntityAddresses)
	api.POST("/entities/:id/addresses", s.CreateEntityAddress)
	api.GET("/entities/:id/addresses/:addressId", s.GetEntityAddress)
	api.PATCH("/entities/:id/addresses/:addressId", s.UpdateEntityAddress)
	api.DELETE("/entities/:id/addresses/:addressId", s.DeleteEntityAddress)

	api.GET("/entities/:id/emails", s.ListEntityEmails)
	api.POST("/entities/:id/emails", s.CreateEntityEmail)
	api.GET("/entities/:id/emails/:emailId", s.GetEntityEmail)
	api.PATCH("/entities/:id/emails/:emailId", s.UpdateEntityEmail)
	api.DELETE("/entities/:id/emails/:emailId", s.DeleteEntityEmail)

	api.GET("/entities/:id/numbers", s.ListEntityNumbers)
	api.POST("/entities/:id/numbers", s.CreateEntityNumber)
	api.GET("/entities/:id/numbers/:numberId", s.GetEntityNumber)
	api.PATCH("/entities/:id/numbers/:numberId", s.UpdateEntityNumber)
	api.DELETE("/entities/:id/numbers/:numberId", s.DeleteEntityNumber)

	api.GET("/entities/:id/websites", s.ListEntityWebsites)
	api.POST("/entities/:id/websites", s.CreateEntityWebsite)
	api.GET("/entities/:id/websites/:websiteId", s.GetEntityWebsite)
	api.PATCH("/entities/:id/websites/:websiteId", s.UpdateEntityWebsite)
	api.DELETE("/entities/:id/websites/:websiteId", s.DeleteEntityWebsite)

	// -------- Accounts --------
	api.GET("/accounts", s.ListAccounts)
	api.POST("/accounts", s.CreateAccount)
	api.GET("/accounts/:id", s.GetAccountByID)
	api.PATCH("/accounts/:id", s.UpdateAccount)
	api.DELETE("/accounts/:id", s.DeleteAccount)

	api.GET("/accounts/:id/entities", s.ListAccountEntities)
	api.POST("/accounts/:id/entities", s.AttachAccountEntity)
	api.DELETE("/accounts/:id/entities/:relationshipId", s.DetachAccountEntity)

	api.GET("/accounts/:id/addresses", s.ListAccountAddresses)
	api.POST("/accounts/:id/addresses", s.CreateAccountAddress)
	api.GET("/accounts/:id/addresses/:addressId", s.GetAccountAddress)
	api.PATCH("/accounts/:id/addresses/:addressId", s.UpdateAccountAddress)
	api.DELETE("/accounts/:id/addresses/:addressId", s.DeleteAccountAddress)

	api.GET("/accounts/:id/contracts", s.ListAccountContracts)
	api.POST("/accounts/:id/contracts", s.AttachAccountContract)
	api.GET("/accounts/:id/contracts/:contractId", s.GetAccountContract)
	api.PATCH("/accounts/:id/contracts/:contractId", s.UpdateAccountContract)
	api.DELETE("/accounts/:id/contracts/:contractId", s.DetachAccountContract)

	// -------- Restrictions --------
	api.GET("/accounts/:id/lists", s.ListAccountLists)
	api.POST("/accounts/:id/lists", s.AttachAccountList)
	api.DELETE("/accounts/:id/lists/:linkId", s.DetachAccountList)

	api.GET("/accounts/:id/products", s.ListAccountProducts)
	api.POST("/accounts/:id/products", s.AttachAccountProduct)
	api.DELETE("/accounts/:id/products/:linkId", s.DetachAccountProduct)

	api.GET("/accounts/:id/resolve-price", s.ResolvePrice)

	// -------- Products --------
	api.GET("/products", s.ListProducts)
	api.POST("/products", s.CreateProduct)
	api.GET("/products/:id", s.GetProductByID)
	api.PATCH("/products/:id", s.UpdateProduct)
	api.DELETE("/products/:id", s.DeleteProduct)

	// -------- Price Lists --------
	api.GET("/price-lists", s.ListPriceLists)
	api.POST("/price-lists", s.CreatePriceList)
	api.GET("/price-lists/:id", s.GetPriceListByID)
	api.PATCH("/price-lists/:id", s.UpdatePriceList)
	api.DELETE("/price-lists/:id", s.DeletePriceList)

	api.GET("/price-lists/:id/items", s.ListPriceListItems)
	api.POST("/price-lists/:id/items", s.AddPriceListItem)
	api.GET("/price-lists/:id/items/:itemId", s.GetPriceListItem)
	api.PATCH("/price-lists/:id/items/:itemId", s.UpdatePriceListItem)
	api.DELETE("/price-lists/:id/items/:itemId", s.RemovePriceListItem)

	// -------- Orders --------
	api.GET("/orders", s.ListOrders)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrderByID)
	api.PATCH("/orders/:id", s.UpdateOrder)
	api.DELETE("/orders/:id", s.DeleteOrder)
	api.POST("/orders/:id/approve", s.ApproveOrder)
	api.POST("/orders/:id/invoice", s.InvoiceOrder)

	api.POST("/orders/:id/items", s.AddOrderItem)
	api.PATCH("/orders/:id/items/:itemId", s.UpdateOrderItem)
	api.DELETE("/orders/:id/items/:itemId", s.RemoveOrderItem)

	// -------- Invoices --------
	api.GET("/invoices", s.ListInvoices)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.POST("/invoices/:id/pay", s.MarkInvoicePaid)
	api.POST("/invoices/:id/cancel", s.CancelInvoice)
}

func run(lc fx.Lifecycle, s *Server, log *zap.Logger) {
	srv := &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", s.cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
