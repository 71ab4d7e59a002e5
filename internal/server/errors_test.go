package server

import (
	"errors"
	"net/http"
	"testing"

	accountdomain "github.com/meridiancrm/meridian/internal/account/domain"
	"github.com/meridiancrm/meridian/internal/auth/token"
	entitydomain "github.com/meridiancrm/meridian/internal/entity/domain"
	invoicedomain "github.com/meridiancrm/meridian/internal/invoice/domain"
	orderdomain "github.com/meridiancrm/meridian/internal/order/domain"
	pricingdomain "github.com/meridiancrm/meridian/internal/pricing/domain"
	userdomain "github.com/meridiancrm/meridian/internal/user/domain"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"bad credentials", userdomain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{"stale token", token.ErrInvalidToken, http.StatusUnauthorized, "invalid_credentials"},
		{"missing cookie", ErrUnauthorized, http.StatusUnauthorized, "invalid_credentials"},
		{"malformed body", ErrInvalidRequest, http.StatusBadRequest, "invalid_request"},
		{"entity missing", entitydomain.ErrNotFound, http.StatusBadRequest, "entity_not_exist"},
		{"account missing", accountdomain.ErrNotFound, http.StatusBadRequest, "account_not_exist"},
		{"relationship duplicate", accountdomain.ErrRelationshipExists, http.StatusBadRequest, "entity_account_exists"},
		{"product not granted", pricingdomain.ErrNotAuthorized, http.StatusBadRequest, "product_not_authorized_for_account"},
		{"order locked", orderdomain.ErrNotEditable, http.StatusBadRequest, "order_not_editable"},
		{"invoice duplicate", invoicedomain.ErrExists, http.StatusBadRequest, "invoice_exists"},
		{"database down", errors.New("pq: connection refused"), http.StatusInternalServerError, "unhandled_exception"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := mapError(tc.err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantCode, payload.ErrorCode)
			assert.NotEmpty(t, payload.Message)
		})
	}
}

func TestMapErrorNeverEchoesUnknownErrors(t *testing.T) {
	_, payload := mapError(errors.New("secret dsn user=admin password=hunter2"))
	assert.Equal(t, "unhandled_exception", payload.ErrorCode)
	assert.NotContains(t, payload.Message, "hunter2")
}

func TestClassifyErrorForLog(t *testing.T) {
	class, code := classifyErrorForLog(userdomain.ErrInvalidCredentials)
	assert.Equal(t, "auth_error", class)
	assert.Equal(t, "invalid_credentials", code)

	class, code = classifyErrorForLog(orderdomain.ErrInvalidState)
	assert.Equal(t, "domain_error", class)
	assert.Equal(t, "invalid_order_state", code)

	class, code = classifyErrorForLog(errors.New("boom"))
	assert.Equal(t, "internal_error", class)
	assert.Equal(t, "unhandled_exception", code)
}
