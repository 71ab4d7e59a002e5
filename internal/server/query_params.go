package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meridiancrm/meridian/pkg/db/pagination"
)

const dateLayout = "2006-01-02"

func bindPagination(c *gin.Context) (pagination.Pagination, error) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		return pagination.Pagination{}, ErrInvalidRequest
	}
	return page.Normalize(), nil
}

// parseOptionalDate accepts nil or a YYYY-MM-DD string.
func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, trimmed)
	if err != nil {
		return nil, ErrInvalidRequest
	}
	return &parsed, nil
}

// clearRequested reports whether the client sent an explicit empty string,
// which nulls the stored date.
func clearRequested(value *string) bool {
	return value != nil && strings.TrimSpace(*value) == ""
}
