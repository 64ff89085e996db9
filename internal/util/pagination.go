package util

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

const maxPageSize = 100

// ParsePagination reads limit/offset query parameters. An absent limit
// falls back to defaultLimit; negative values and limits above the cap
// are rejected.
func ParsePagination(c *gin.Context, defaultLimit int) (limit, offset int, err error) {
	limit = defaultLimit
	if limit <= 0 || limit > maxPageSize {
		limit = 20
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return 0, 0, fmt.Errorf("invalid limit %q", raw)
		}
		if limit > maxPageSize {
			limit = maxPageSize
		}
	}

	if raw := c.Query("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset %q", raw)
		}
	}

	return limit, offset, nil
}
