package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/daily-planner-api/internal/errors"
	"github.com/yukikurage/daily-planner-api/internal/utils"
)

// ParseIDParam reads a numeric path parameter. On failure it writes a 400
// naming the resource and returns false.
func ParseIDParam(c *gin.Context, name, resource string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid "+resource+" ID")
		return 0, false
	}
	return id, true
}

// ParseDateParam reads a YYYY-MM-DD path parameter.
func ParseDateParam(c *gin.Context, name string) (time.Time, bool) {
	date, err := utils.ParseDate(c.Param(name))
	if err != nil {
		apierrors.BadRequest(c, "Invalid date format. Use YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}

// ParseDateQuery reads an optional YYYY-MM-DD query parameter. A missing
// parameter yields nil and true.
func ParseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	date, err := utils.ParseDate(raw)
	if err != nil {
		apierrors.ValidationFailed(c, "", map[string]string{name: "Invalid date format. Use YYYY-MM-DD"})
		return nil, false
	}
	return &date, true
}
