package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	accountdomain "github.com/meridiancrm/meridian/internal/account/domain"
	pricingdomain "github.com/meridiancrm/meridian/internal/pricing/domain"
	productdomain "github.com/meridiancrm/meridian/internal/product/domain"
)

type linkRequest struct {
	PriceListID *string `json:"price_list_id"`
	ProductID   *string `json:"product_id"`
	StartOn     *string `json:"start_on"`
	EndOn       *string `json:"end_on"`
}

func (r linkRequest) toDomain(accountID, targetID string) (pricingdomain.LinkInput, error) {
	startOn, err := parseOptionalDate(r.StartOn)
	if err != nil {
		return pricingdomain.LinkInput{}, err
	}
	endOn, err := parseOptionalDate(r.EndOn)
	if err != nil {
		return pricingdomain.LinkInput{}, err
	}

	return pricingdomain.LinkInput{
		AccountID: accountID,
		TargetID:  targetID,
		StartOn:   startOn,
		EndOn:     endOn,
	}, nil
}

func (s *Server) AttachAccountList(c *gin.Context) {
	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if req.PriceListID == nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	input, err := req.toDomain(c.Param("id"), *req.PriceListID)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.pricingSvc.AttachList(c.Request.Context(), input)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAccountLists(c *gin.Context) {
	resp, err := s.pricingSvc.ListLists(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DetachAccountList(c *gin.Context) {
	if err := s.pricingSvc.DetachList(c.Request.Context(), c.Param("id"), c.Param("linkId")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) AttachAccountProduct(c *gin.Context) {
	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if req.ProductID == nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	input, err := req.toDomain(c.Param("id"), *req.ProductID)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.pricingSvc.AttachProduct(c.Request.Context(), input)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAccountProducts(c *gin.Context) {
	resp, err := s.pricingSvc.ListProducts(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DetachAccountProduct(c *gin.Context) {
	if err := s.pricingSvc.DetachProduct(c.Request.Context(), c.Param("id"), c.Param("linkId")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ResolvePrice answers what an account pays for a product on a given day.
// as_of defaults to today.
func (s *Server) ResolvePrice(c *gin.Context) {
	accountID, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil || accountID == 0 {
		AbortWithError(c, accountdomain.ErrInvalidID)
		return
	}

	productID, err := snowflake.ParseString(strings.TrimSpace(c.Query("product_id")))
	if err != nil || productID == 0 {
		AbortWithError(c, productdomain.ErrInvalidID)
		return
	}

	asOf := time.Now()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		asOf = parsed
	}

	resp, err := s.pricingSvc.Resolve(c.Request.Context(), accountID, productID, asOf)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
