package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/service"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
	"github.com/noah-isme/school-admin-api/pkg/middleware/tenant"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

const noChangesMessage = "no changes detected"

// tenantScope returns the tenant resolved by the tenant middleware or writes
// INVALID_TENANT.
func tenantScope(c *gin.Context) (models.TenantContext, bool) {
	scope, ok := tenant.Value(c)
	if !ok || !scope.Valid() {
		response.Error(c, appErrors.ErrInvalidTenant)
		return models.TenantContext{}, false
	}
	return scope, true
}

// pathID parses a positive integer path parameter. Anything else is reported
// with the entity's INVALID_*_ID code.
func pathID(c *gin.Context, name string, invalid *appErrors.Error) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, invalid)
		return 0, false
	}
	return id, true
}

// pageRequest reads page and limit. Unparseable values fall back to the defaults
// and the service clamps the rest.
func pageRequest(c *gin.Context) models.PageRequest {
	var req models.PageRequest
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		req.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(models.DefaultPageLimit))); err == nil {
		req.Limit = limit
	}
	return req
}

// activeFilter parses the optional active query parameter.
func activeFilter(c *gin.Context) (*bool, bool) {
	raw := strings.TrimSpace(c.Query("active"))
	if raw == "" {
		return nil, true
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		response.Error(c, appErrors.WithField(appErrors.ErrInvalidField, "active", "active must be true or false"))
		return nil, false
	}
	return &val, true
}

// bindJSON decodes the request body into dst, reporting malformed bodies as
// VALIDATION_ERROR and wrongly typed fields as INVALID_FIELD.
func bindJSON(c *gin.Context, dst interface{}, what string) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		response.Error(c, appErrors.WithField(appErrors.ErrInvalidField, typeErr.Field, typeErr.Field+" has the wrong type"))
		return false
	}
	response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid "+what+" payload"))
	return false
}

// respondUpdate writes the outcome of a partial update. A patch that matched the
// stored row still succeeds but says so.
func respondUpdate[T any](c *gin.Context, result *service.UpdateResult[T]) {
	if !result.HasChanges() {
		response.Message(c, http.StatusOK, result.Data, noChangesMessage)
		return
	}
	response.JSON(c, http.StatusOK, result.Data, nil, map[string]interface{}{"changed": result.Changed})
}
