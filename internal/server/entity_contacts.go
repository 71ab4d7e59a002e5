package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	entitydomain "github.com/meridiancrm/meridian/internal/entity/domain"
)

type saveAddressRequest struct {
	AddressLine1 *string `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Country      *string `json:"country"`
	Zip          *string `json:"zip"`
}

func (r saveAddressRequest) toDomain(parentID, addressID string) entitydomain.SaveAddressRequest {
	return entitydomain.SaveAddressRequest{
		ParentID:     parentID,
		AddressID:    addressID,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		City:         r.City,
		State:        r.State,
		Country:      r.Country,
		Zip:          r.Zip,
	}
}

func (s *Server) CreateEntityAddress(c *gin.Context) {
	s.createAddress(c, entitydomain.AddressParentEntity)
}

func (s *Server) createAddress(c *gin.Context, parent entitydomain.AddressParent) {
	var req saveAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.entitySvc.CreateAddress(c.Request.Context(), parent, req.toDomain(c.Param("id"), ""))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListEntityAddresses(c *gin.Context) {
	resp, err := s.entitySvc.ListAddresses(c.Request.Context(), entitydomain.AddressParentEntity, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetEntityAddress(c *gin.Context) {
	resp, err := s.entitySvc.GetAddress(c.Request.Context(), c.Param("id"), c.Param("addressId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateEntityAddress(c *gin.Context) {
	var req saveAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.entitySvc.UpdateAddress(c.Request.Context(), req.toDomain(c.Param("id"), c.Param("addressId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteEntityAddress(c *gin.Context) {
	if err := s.entitySvc.DeleteAddress(c.Request.Context(), c.Param("id"), c.Param("addressId")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type saveEmailRequest struct {
	Email *string `json:"email"`
}

func (s *Server) CreateEntityEmail(c *gin.Context) {
	var req saveEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.entitySvc.CreateEmail(c.Request.Context(), entitydomain.SaveEmailRequest{
		EntityID: c.Param("id"),
		Email:    req.Email,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListEntityEmails(c *gin.Context) {
	resp, err := s.entitySvc.ListEmails(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetEntityEmail(c *gin.Context) {
	resp, err := s.entitySvc.GetEmail(c.Request.Context(), c.Param("id"), c.Param("emailId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateEntityEmail(c *gin.Context) {
	var req saveEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.entitySvc.UpdateEmail(c.Request.Context(), entitydomain.SaveEmailRequest{
		EntityID: c.Param("id"),
		EmailID:  c.Param("emailId"),
		Email:    req.Email,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteEntityEmail(c *gin.Context) {
	if err := s.entitySvc.DeleteEmail(c.Request.Context(), c.Param("id"), c.Param("emailId")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type saveNumberRequest struct {
	CountryCode *string `json:"country_code"`
	AreaCode    *string `json:"area_code"`
	LineNumber  *string `json:"line_number"`
	Extension   *string `json:"extension"`
}

func (s *Server) CreateEntityNumber(c *gin.Context) {
	var req saveNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.entitySvc.CreateNumber(c.Request.Context(), entitydomain.SaveNumberRequest{
		EntityID:    c.Param("id"),
		CountryCode: req.CountryCode,
		AreaCode:    req.AreaCode,
		LineNumber:  req.LineNumber,
		Extension:   req.Extension,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListEntityNumbers(c *gin.Context) {
	resp, err := s.entitySvc.ListNumbers(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetEntityNumber(c *gin.Context) {
	resp, err := s.entitySvc.GetNumber(c.Request.Context(), c.Param("id"), c.Param("numberId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateEntityNumber(c *gin.Context) {
	var req saveNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.entitySvc.UpdateNumber(c.Request.Context(), entitydomain.SaveNumberRequest{
		EntityID:    c.Param("id"),
		NumberID:    c.Param("numberId"),
		CountryCode: req.CountryCode,
		AreaCode:    req.AreaCode,
		LineNumber:  req.LineNumber,
		Extension:   req.Extension,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteEntityNumber(c *gin.Context) {
	if err := s.entitySvc.DeleteNumber(c.Request.Context(), c.Param("id"), c.Param("numberId")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type saveWebsiteRequest struct {
	URL         *string `json:"url"`
	Description *string `json:"description"`
}

func (s *Server) CreateEntityWebsite(c *gin.Context) {
	var req saveWebsiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.entitySvc.CreateWebsite(c.Request.Context(), entitydomain.SaveWebsiteRequest{
		EntityID:    c.Param("id"),
		URL:         req.URL,
		Description: req.Description,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListEntityWebsites(c *gin.Context) {
	resp, err := s.entitySvc.ListWebsites(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetEntityWebsite(c *gin.Context) {
	resp, err := s.entitySvc.GetWebsite(c.Request.Context(), c.Param("id"), c.Param("websiteId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateEntityWebsite(c *gin.Context) {
	var req saveWebsiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.entitySvc.UpdateWebsite(c.Request.Context(), entitydomain.SaveWebsiteRequest{
		EntityID:    c.Param("id"),
		WebsiteID:   c.Param("websiteId"),
		URL:         req.URL,
		Description: req.Description,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteEntityWebsite(c *gin.Context) {
	if err := s.entitySvc.DeleteWebsite(c.Request.Context(), c.Param("id"), c.Param("websiteId")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
