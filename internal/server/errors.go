package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	accountdomain "github.com/meridiancrm/meridian/internal/account/domain"
	"github.com/meridiancrm/meridian/internal/auth/token"
	entitydomain "github.com/meridiancrm/meridian/internal/entity/domain"
	invoicedomain "github.com/meridiancrm/meridian/internal/invoice/domain"
	orderdomain "github.com/meridiancrm/meridian/internal/order/domain"
	pricelistdomain "github.com/meridiancrm/meridian/internal/pricelist/domain"
	pricingdomain "github.com/meridiancrm/meridian/internal/pricing/domain"
	productdomain "github.com/meridiancrm/meridian/internal/product/domain"
	userdomain "github.com/meridiancrm/meridian/internal/user/domain"
)

// errorResponse is the uniform envelope every failed request returns.
type errorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid_request")
)

// ErrorHandlingMiddleware turns the last recorded error into the uniform
// envelope after handler execution.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, payload)
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

// mapError classifies an error into a status and stable code. Known domain
// errors stay 400 even when the subject does not exist; only credential
// failures produce 401. Anything unrecognized normalizes to a 500 with no
// internal detail.
func mapError(err error) (int, errorResponse) {
	switch {
	case isAuthError(err):
		return http.StatusUnauthorized, errorResponse{
			ErrorCode: "invalid_credentials",
			Message:   "invalid credentials",
		}
	case isDomainError(err):
		return http.StatusBadRequest, errorResponse{
			ErrorCode: err.Error(),
			Message:   domainErrorMessage(err.Error()),
		}
	default:
		return http.StatusInternalServerError, errorResponse{
			ErrorCode: "unhandled_exception",
			Message:   "unhandled exception",
		}
	}
}

func isAuthError(err error) bool {
	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, token.ErrInvalidToken),
		errors.Is(err, userdomain.ErrInvalidCredentials):
		return true
	default:
		return false
	}
}

func isDomainError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case isUserError(err),
		isEntityError(err),
		isAccountError(err),
		isProductError(err),
		isPriceListError(err),
		isPricingError(err),
		isOrderError(err),
		isInvoiceError(err):
		return true
	default:
		return false
	}
}

func isUserError(err error) bool {
	switch {
	case errors.Is(err, userdomain.ErrNotFound),
		errors.Is(err, userdomain.ErrExists),
		errors.Is(err, userdomain.ErrInvalidID),
		errors.Is(err, userdomain.ErrInvalidUsername),
		errors.Is(err, userdomain.ErrInvalidEmail),
		errors.Is(err, userdomain.ErrInvalidPassword):
		return true
	default:
		return false
	}
}

func isEntityError(err error) bool {
	switch {
	case errors.Is(err, entitydomain.ErrNotFound),
		errors.Is(err, entitydomain.ErrInvalidID),
		errors.Is(err, entitydomain.ErrInvalidType),
		errors.Is(err, entitydomain.ErrTypeImmutable),
		errors.Is(err, entitydomain.ErrInvalidName),
		errors.Is(err, entitydomain.ErrAddressNotFound),
		errors.Is(err, entitydomain.ErrEmailNotFound),
		errors.Is(err, entitydomain.ErrInvalidEmail),
		errors.Is(err, entitydomain.ErrNumberNotFound),
		errors.Is(err, entitydomain.ErrWebsiteNotFound),
		errors.Is(err, entitydomain.ErrInvalidURL):
		return true
	default:
		return false
	}
}

func isAccountError(err error) bool {
	switch {
	case errors.Is(err, accountdomain.ErrNotFound),
		errors.Is(err, accountdomain.ErrInvalidID),
		errors.Is(err, accountdomain.ErrRequiresEntity),
		errors.Is(err, accountdomain.ErrInvalidRelationship),
		errors.Is(err, accountdomain.ErrRelationshipNotFound),
		errors.Is(err, accountdomain.ErrRelationshipExists),
		errors.Is(err, accountdomain.ErrContractNotFound),
		errors.Is(err, accountdomain.ErrContractExists),
		errors.Is(err, accountdomain.ErrInvalidContractName):
		return true
	default:
		return false
	}
}

func isProductError(err error) bool {
	switch {
	case errors.Is(err, productdomain.ErrNotFound),
		errors.Is(err, productdomain.ErrExists),
		errors.Is(err, productdomain.ErrInvalidID),
		errors.Is(err, productdomain.ErrInvalidCode):
		return true
	default:
		return false
	}
}

func isPriceListError(err error) bool {
	switch {
	case errors.Is(err, pricelistdomain.ErrNotFound),
		errors.Is(err, pricelistdomain.ErrInvalidID),
		errors.Is(err, pricelistdomain.ErrInvalidName),
		errors.Is(err, pricelistdomain.ErrInvalidDateRange),
		errors.Is(err, pricelistdomain.ErrItemNotFound),
		errors.Is(err, pricelistdomain.ErrItemExists),
		errors.Is(err, pricelistdomain.ErrInvalidPrice):
		return true
	default:
		return false
	}
}

func isPricingError(err error) bool {
	switch {
	case errors.Is(err, pricingdomain.ErrNotAuthorized),
		errors.Is(err, pricingdomain.ErrListLinkNotFound),
		errors.Is(err, pricingdomain.ErrListLinkExists),
		errors.Is(err, pricingdomain.ErrProductLinkNotFound),
		errors.Is(err, pricingdomain.ErrProductLinkExists):
		return true
	default:
		return false
	}
}

func isOrderError(err error) bool {
	switch {
	case errors.Is(err, orderdomain.ErrNotFound),
		errors.Is(err, orderdomain.ErrInvalidID),
		errors.Is(err, orderdomain.ErrNotEditable),
		errors.Is(err, orderdomain.ErrInvalidState),
		errors.Is(err, orderdomain.ErrItemNotFound),
		errors.Is(err, orderdomain.ErrInvalidQuantity),
		errors.Is(err, orderdomain.ErrInvalidAdjustment):
		return true
	default:
		return false
	}
}

func isInvoiceError(err error) bool {
	switch {
	case errors.Is(err, invoicedomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrInvalidID),
		errors.Is(err, invoicedomain.ErrExists),
		errors.Is(err, invoicedomain.ErrInvalidState):
		return true
	default:
		return false
	}
}

func domainErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "request could not be processed"
	}
}

// classifyErrorForLog feeds the request logger a coarse class without
// leaking internals.
func classifyErrorForLog(err error) (string, string) {
	switch {
	case isAuthError(err):
		return "auth_error", "invalid_credentials"
	case isDomainError(err):
		return "domain_error", err.Error()
	default:
		return "internal_error", "unhandled_exception"
	}
}
