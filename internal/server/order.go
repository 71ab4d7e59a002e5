package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	orderdomain "github.com/meridiancrm/meridian/internal/order/domain"
	"github.com/shopspring/decimal"
)

type createOrderRequest struct {
	AccountID    string  `json:"account_id"`
	TransactedOn *string `json:"transacted_on"`
}

func (s *Server) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	transactedOn, err := parseOptionalDate(req.TransactedOn)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.orderSvc.Create(c.Request.Context(), orderdomain.CreateOrderRequest{
		AccountID:    req.AccountID,
		TransactedOn: transactedOn,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListOrders(c *gin.Context) {
	page, err := bindPagination(c)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.orderSvc.List(c.Request.Context(), orderdomain.ListOrderRequest{Page: page})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOrderByID(c *gin.Context) {
	resp, err := s.orderSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateOrderRequest struct {
	TransactedOn *string `json:"transacted_on"`
}

func (s *Server) UpdateOrder(c *gin.Context) {
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	transactedOn, err := parseOptionalDate(req.TransactedOn)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.orderSvc.Update(c.Request.Context(), orderdomain.UpdateOrderRequest{
		ID:           c.Param("id"),
		TransactedOn: transactedOn,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteOrder(c *gin.Context) {
	if err := s.orderSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) ApproveOrder(c *gin.Context) {
	resp, err := s.orderSvc.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) InvoiceOrder(c *gin.Context) {
	resp, err := s.invoiceSvc.CreateFromOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type saveOrderItemRequest struct {
	ProductID       string           `json:"product_id"`
	Quantity        *int64           `json:"quantity"`
	AdjustmentType  *string          `json:"adjustment_type"`
	AdjustmentValue *decimal.Decimal `json:"adjustment_value"`
	Description     *string          `json:"description"`
}

func (s *Server) AddOrderItem(c *gin.Context) {
	var req saveOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.orderSvc.AddItem(c.Request.Context(), orderdomain.SaveItemRequest{
		OrderID:         c.Param("id"),
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		AdjustmentType:  req.AdjustmentType,
		AdjustmentValue: req.AdjustmentValue,
		Description:     req.Description,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateOrderItem(c *gin.Context) {
	var req saveOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.orderSvc.UpdateItem(c.Request.Context(), orderdomain.SaveItemRequest{
		OrderID:         c.Param("id"),
		ItemID:          c.Param("itemId"),
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		AdjustmentType:  req.AdjustmentType,
		AdjustmentValue: req.AdjustmentValue,
		Description:     req.Description,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RemoveOrderItem(c *gin.Context) {
	if err := s.orderSvc.RemoveItem(c.Request.Context(), c.Param("id"), c.Param("itemId")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
