package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	accountdomain "github.com/meridiancrm/meridian/internal/account/domain"
	entitydomain "github.com/meridiancrm/meridian/internal/entity/domain"
)

type relationshipInput struct {
	EntityID         string  `json:"entity_id"`
	RelationshipType string  `json:"relationship_type"`
	StartOn          *string `json:"start_on"`
	EndOn            *string `json:"end_on"`
}

func (r relationshipInput) toDomain() (accountdomain.RelationshipInput, error) {
	startOn, err := parseOptionalDate(r.StartOn)
	if err != nil {
		return accountdomain.RelationshipInput{}, err
	}
	endOn, err := parseOptionalDate(r.EndOn)
	if err != nil {
		return accountdomain.RelationshipInput{}, err
	}

	return accountdomain.RelationshipInput{
		EntityID:         r.EntityID,
		RelationshipType: r.RelationshipType,
		StartOn:          startOn,
		EndOn:            endOn,
	}, nil
}

type createAccountRequest struct {
	Name          *string             `json:"name"`
	StartOn       *string             `json:"start_on"`
	EndOn         *string             `json:"end_on"`
	Relationships []relationshipInput `json:"relationships"`
}

func (s *Server) CreateAccount(c *gin.Context) {
	var req createAccountRequest
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

	rels := make([]accountdomain.RelationshipInput, 0, len(req.Relationships))
	for _, in := range req.Relationships {
		rel, err := in.toDomain()
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		rels = append(rels, rel)
	}

	resp, err := s.accountSvc.Create(c.Request.Context(), accountdomain.CreateAccountRequest{
		Name:          req.Name,
		StartOn:       startOn,
		EndOn:         endOn,
		Relationships: rels,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAccounts(c *gin.Context) {
	page, err := bindPagination(c)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.accountSvc.List(c.Request.Context(), accountdomain.ListAccountRequest{Page: page})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetAccountByID(c *gin.Context) {
	resp, err := s.accountSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateAccountRequest struct {
	Name    *string `json:"name"`
	StartOn *string `json:"start_on"`
	EndOn   *string `json:"end_on"`
}

func (s *Server) UpdateAccount(c *gin.Context) {
	var req updateAccountRequest
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

	resp, err := s.accountSvc.Update(c.Request.Context(), accountdomain.UpdateAccountRequest{
		ID:         c.Param("id"),
		Name:       req.Name,
		StartOn:    startOn,
		EndOn:      endOn,
		ClearEndOn: clearRequested(req.EndOn),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteAccount(c *gin.Context) {
	if err := s.accountSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) ListAccountEntities(c *gin.Context) {
	resp, err := s.accountSvc.ListEntities(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AttachAccountEntity(c *gin.Context) {
	var req relationshipInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	rel, err := req.toDomain()
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.accountSvc.AttachEntity(c.Request.Context(), c.Param("id"), rel)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DetachAccountEntity(c *gin.Context) {
	if err := s.accountSvc.DetachEntity(c.Request.Context(), c.Param("id"), c.Param("relationshipId")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Account addresses reuse the shared contact store with an account parent.
// The parent row is validated here since the contact service only checks
// entity parents.

func (s *Server) CreateAccountAddress(c *gin.Context) {
	if _, err := s.accountSvc.GetByID(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	s.createAddress(c, entitydomain.AddressParentAccount)
}

func (s *Server) ListAccountAddresses(c *gin.Context) {
	if _, err := s.accountSvc.GetByID(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.entitySvc.ListAddresses(c.Request.Context(), entitydomain.AddressParentAccount, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetAccountAddress(c *gin.Context) {
	s.GetEntityAddress(c)
}

func (s *Server) UpdateAccountAddress(c *gin.Context) {
	s.UpdateEntityAddress(c)
}

func (s *Server) DeleteAccountAddress(c *gin.Context) {
	s.DeleteEntityAddress(c)
}

type saveContractRequest struct {
	Name             *string `json:"name"`
	StartOn          *string `json:"start_on"`
	EndOn            *string `json:"end_on"`
	NotificationDays *int    `json:"notification_days"`
	Status           *string `json:"status"`
}

func (r saveContractRequest) toDomain(accountID, contractID string) (accountdomain.SaveContractRequest, error) {
	startOn, err := parseOptionalDate(r.StartOn)
	if err != nil {
		return accountdomain.SaveContractRequest{}, err
	}
	endOn, err := parseOptionalDate(r.EndOn)
	if err != nil {
		return accountdomain.SaveContractRequest{}, err
	}

	return accountdomain.SaveContractRequest{
		AccountID:        accountID,
		ContractID:       contractID,
		Name:             r.Name,
		StartOn:          startOn,
		EndOn:            endOn,
		NotificationDays: r.NotificationDays,
		Status:           r.Status,
	}, nil
}

func (s *Server) AttachAccountContract(c *gin.Context) {
	var req saveContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	dreq, err := req.toDomain(c.Param("id"), "")
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.accountSvc.AttachContract(c.Request.Context(), dreq)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAccountContracts(c *gin.Context) {
	resp, err := s.accountSvc.ListContracts(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetAccountContract(c *gin.Context) {
	resp, err := s.accountSvc.GetContract(c.Request.Context(), c.Param("id"), c.Param("contractId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateAccountContract(c *gin.Context) {
	var req saveContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	dreq, err := req.toDomain(c.Param("id"), c.Param("contractId"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.accountSvc.UpdateContract(c.Request.Context(), dreq)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DetachAccountContract(c *gin.Context) {
	if err := s.accountSvc.DetachContract(c.Request.Context(), c.Param("id"), c.Param("contractId")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
