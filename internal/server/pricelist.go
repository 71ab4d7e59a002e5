package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	pricelistdomain "github.com/meridiancrm/meridian/internal/pricelist/domain"
	"github.com/shopspring/decimal"
)

type savePriceListRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	StartOn     *string `json:"start_on"`
	EndOn       *string `json:"end_on"`
}

func (s *Server) CreatePriceList(c *gin.Context) {
	var req savePriceListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	startOn, err := parseOptionalDate(req.StartOn)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	endOn, err := parseOptionalDate(req.EndOn)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.priceListSvc.Create(c.Request.Context(), pricelistdomain.CreatePriceListRequest{
		Name:        req.Name,
		Description: req.Description,
		StartOn:     startOn,
		EndOn:       endOn,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPriceLists(c *gin.Context) {
	page, err := bindPagination(c)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.priceListSvc.List(c.Request.Context(), pricelistdomain.ListPriceListRequest{Page: page})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPriceListByID(c *gin.Context) {
	resp, err := s.priceListSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdatePriceList(c *gin.Context) {
	var req savePriceListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	startOn, err := parseOptionalDate(req.StartOn)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	endOn, err := parseOptionalDate(req.EndOn)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.priceListSvc.Update(c.Request.Context(), pricelistdomain.UpdatePriceListRequest{
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		StartOn:     startOn,
		EndOn:       endOn,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeletePriceList(c *gin.Context) {
	if err := s.priceListSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type savePriceListItemRequest struct {
	ProductID string           `json:"product_id"`
	Price     *decimal.Decimal `json:"price"`
}

func (s *Server) AddPriceListItem(c *gin.Context) {
	var req savePriceListItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.priceListSvc.AddItem(c.Request.Context(), pricelistdomain.SaveItemRequest{
		PriceListID: c.Param("id"),
		ProductID:   req.ProductID,
		Price:       req.Price,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPriceListItems(c *gin.Context) {
	resp, err := s.priceListSvc.ListItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPriceListItem(c *gin.Context) {
	resp, err := s.priceListSvc.GetItem(c.Request.Context(), c.Param("id"), c.Param("itemId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdatePriceListItem(c *gin.Context) {
	var req savePriceListItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.priceListSvc.UpdateItem(c.Request.Context(), pricelistdomain.SaveItemRequest{
		PriceListID: c.Param("id"),
		ItemID:      c.Param("itemId"),
		ProductID:   req.ProductID,
		Price:       req.Price,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RemovePriceListItem(c *gin.Context) {
	if err := s.priceListSvc.RemoveItem(c.Request.Context(), c.Param("id"), c.Param("itemId")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
