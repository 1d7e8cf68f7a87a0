package utils

import (
	"decide-backend/internal/models"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

// ParsePage reads the 1-based "page" query parameter.
func ParsePage(c *gin.Context) (int, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 0, models.ErrInvalidPage
	}
	return page, nil
}

// ParseIDParam reads a positive numeric path parameter.
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// ParseLimit reads the "limit" query parameter of administrative listings.
func ParseLimit(c *gin.Context, def, max int) (int, error) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(def)))
	if err != nil || limit < 1 {
		return 0, errors.Wrap(models.BadParameterError, "invalid limit number")
	}
	if limit > max {
		limit = max
	}
	return limit, nil
}
