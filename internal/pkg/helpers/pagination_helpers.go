package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ogzkr/campushub/internal/app/models/dto"
)

const (
	DefaultLimit  = 10
	MaxLimit      = 100
	DefaultOffset = 0
)

// NormalizeOffsetLimit clamps raw offset/limit values to the supported
// window. A non-positive limit falls back to the default, anything above
// MaxLimit is capped, a negative offset becomes zero.
func NormalizeOffsetLimit(offset, limit int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = DefaultOffset
	}
	return offset, limit
}

// NewPagination creates a standard Pagination DTO. total always reflects
// the full filtered count, independent of the requested window.
func NewPagination(total int64, offset, limit int) dto.Pagination {
	offset, limit = NormalizeOffsetLimit(offset, limit)
	return dto.Pagination{
		Total:  total,
		Offset: offset,
		Limit:  limit,
	}
}

// ParseOffsetLimitParams extracts offset/limit query parameters from the request
func ParseOffsetLimitParams(c *gin.Context) (offset, limit int) {
	offsetStr := c.DefaultQuery("offset", "0")
	offset, err := strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		offset = DefaultOffset
	}

	limitStr := c.DefaultQuery("limit", "10")
	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return offset, limit
}
