package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/groomer-manager/internal/httperr"
	"github.com/BruksfildServices01/groomer-manager/internal/timezone"
)

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return false
	}
	return true
}

// dateRange reads startDate and endDate. Both or neither must be given;
// ok is false once an error response has been written.
func dateRange(c *gin.Context) (start, end *time.Time, ok bool) {
	rawStart, rawEnd := c.Query("startDate"), c.Query("endDate")
	if rawStart == "" && rawEnd == "" {
		return nil, nil, true
	}
	if rawStart == "" || rawEnd == "" {
		httperr.BadRequest(c, "invalid_range", "startDate and endDate go together")
		return nil, nil, false
	}

	s, err := timezone.ParseDate(rawStart)
	if err != nil {
		httperr.BadRequest(c, "invalid_range", "startDate must be YYYY-MM-DD")
		return nil, nil, false
	}
	e, err := timezone.ParseDate(rawEnd)
	if err != nil {
		httperr.BadRequest(c, "invalid_range", "endDate must be YYYY-MM-DD")
		return nil, nil, false
	}
	return &s, &e, true
}

func queryInt(c *gin.Context, key string, def int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", key+" must be an integer")
		return 0, false
	}
	return n, true
}
