package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-admin/internal/httperr"
)

// ListQuery carries the sort parameters every list endpoint accepts.
type ListQuery struct {
	SortField string `form:"sortField"`
	SortOrder string `form:"sortOrder"`
}

func (q ListQuery) Desc() bool {
	return strings.EqualFold(q.SortOrder, "desc")
}

// orderBy maps the requested sortField through columns; unknown fields fall back
// to primary key order.
func (q ListQuery) orderBy(columns map[string]string, fallback string) clause.OrderByColumn {
	if col, ok := columns[q.SortField]; ok {
		return clause.OrderByColumn{Column: clause.Column{Name: col, Raw: true}, Desc: q.Desc()}
	}
	return clause.OrderByColumn{Column: clause.Column{Name: fallback, Raw: true}}
}

// idParam parses the ":id" path segment, writing a 400 when it is not numeric.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Validation failed (numeric string is expected)")
		return 0, false
	}
	return uint(id), true
}
