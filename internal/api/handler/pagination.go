package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/foodgram-backend/pkg/response"
)

// pageParams reads ?page= and ?limit=, falling back to the configured
// default page size.
func (h *Handler) pageParams(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.defaultPageSize)))
	if limit < 1 {
		limit = h.defaultPageSize
	}
	return page, limit, (page - 1) * limit
}

// paginated wraps results in the {count,next,previous,results} envelope,
// deriving the next/previous URLs from the current request.
func paginated(c *gin.Context, count int64, page, limit int, results any) response.Paginated {
	makeURL := func(p int) *string {
		u := *c.Request.URL
		q := u.Query()
		q.Set("page", strconv.Itoa(p))
		u.RawQuery = q.Encode()
		s := u.String()
		return &s
	}

	var next, prev *string
	if int64(page*limit) < count {
		next = makeURL(page + 1)
	}
	if page > 1 {
		prev = makeURL(page - 1)
	}
	return response.Paginated{Count: count, Next: next, Previous: prev, Results: results}
}

// uintParam parses a numeric path segment; 0 means malformed.
func uintParam(c *gin.Context, name string) uint {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}
