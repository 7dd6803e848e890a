package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"rentflow/internal/apperr"
	"rentflow/internal/models"
)

// parseDatePtr accepts either a bare date or a full RFC 3339 timestamp.
func parseDatePtr(s *string, field string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, *s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, apperr.Validationf(field, "invalid date %q", *s)
	}
	return &t, nil
}

// orgFromQuery resolves the organization scope: explicit query param first,
// then the authenticated token's claim, then the single-tenant default.
func orgFromQuery(c *gin.Context) string {
	if org := c.Query("organizationId"); org != "" {
		return org
	}
	if v, ok := c.Get("organization_id"); ok {
		if org, ok := v.(string); ok && org != "" {
			return org
		}
	}
	return models.DefaultOrganizationID
}

// orgFromBody applies the same resolution for a body-supplied value.
func orgFromBody(c *gin.Context, bodyOrg string) string {
	if bodyOrg != "" {
		return bodyOrg
	}
	return orgFromQuery(c)
}

func pagination(c *gin.Context) (limit, offset int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "100"))
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 100
	}
	return size, (page - 1) * size
}

// respondError maps the service error taxonomy onto the HTTP contract:
// validation -> 400, missing entity -> 404, everything else -> generic 500
// (the service already logged the detail).
func respondError(c *gin.Context, err error) {
	switch {
	case apperr.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperr.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
