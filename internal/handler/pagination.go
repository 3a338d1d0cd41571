package handler

import (
	"strconv"

	"fiyo/backend/internal/relation"

	"github.com/gin-gonic/gin"
)

// pageParams reads limit/offset query parameters, clamped to the engine's
// page size bounds. Invalid values fall back rather than failing the request.
func pageParams(c *gin.Context) (limit, offset int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(relation.DefaultListLimit)))
	if err != nil || limit < 1 {
		limit = relation.DefaultListLimit
	}
	if limit > relation.MaxListLimit {
		limit = relation.MaxListLimit
	}

	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
