package tenant

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/pkg/config"
)

const (
	InstitutionHeader  = "X-Institution-ID"
	AcademicYearHeader = "X-Academic-Year-ID"
	contextKey         = "tenant"
)

// Middleware resolves the institution and academic year a request operates on.
// Headers win over configured defaults; nothing is stored when either id is
// missing or malformed, and handlers reject the request with INVALID_TENANT.
func Middleware(defaults config.TenantConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		institutionID := resolve(c.GetHeader(InstitutionHeader), defaults.DefaultInstitutionID)
		academicYearID := resolve(c.GetHeader(AcademicYearHeader), defaults.DefaultAcademicYearID)

		scope := models.TenantContext{InstitutionID: institutionID, AcademicYearID: academicYearID}
		if scope.Valid() {
			c.Set(contextKey, scope)
		}
		c.Next()
	}
}

// Value returns the tenant stored on the Gin context.
func Value(c *gin.Context) (models.TenantContext, bool) {
	if v, exists := c.Get(contextKey); exists {
		if scope, ok := v.(models.TenantContext); ok {
			return scope, true
		}
	}
	return models.TenantContext{}, false
}

func resolve(raw string, fallback int64) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}
