package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/service"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

type subjectService interface {
	List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, *models.Pagination, error)
	Search(ctx context.Context, term string, page models.PageRequest) ([]models.Subject, *models.Pagination, error)
	Get(ctx context.Context, id int64) (*models.Subject, error)
	Create(ctx context.Context, req service.CreateSubjectRequest) (*models.Subject, error)
	Update(ctx context.Context, id int64, p service.SubjectPatch) (*service.UpdateResult[*models.Subject], error)
	Deactivate(ctx context.Context, id int64) error
}

// SubjectHandler handles subject endpoints. Subjects form a catalog shared by
// every institution, so these routes do not need tenant headers.
type SubjectHandler struct {
	service subjectService
}

// NewSubjectHandler constructs a subject handler.
func NewSubjectHandler(svc subjectService) *SubjectHandler {
	return &SubjectHandler{service: svc}
}

// List godoc
// @Summary List subjects
// @Tags Subjects
// @Produce json
// @Param search query string false "Accent-insensitive match on name or code"
// @Param active query bool false "Filter by active status"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} response.Envelope
// @Router /subjects [get]
func (h *SubjectHandler) List(c *gin.Context) {
	active, ok := activeFilter(c)
	if !ok {
		return
	}
	filter := models.SubjectFilter{
		Search:      strings.TrimSpace(c.Query("search")),
		Active:      active,
		PageRequest: pageRequest(c),
	}
	subjects, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, pagination)
}

// Search godoc
// @Summary Search subjects
// @Tags Subjects
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {object} response.Envelope
// @Router /subjects/search [get]
func (h *SubjectHandler) Search(c *gin.Context) {
	subjects, pagination, err := h.service.Search(c.Request.Context(), c.Query("q"), pageRequest(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, pagination)
}

// Get godoc
// @Summary Get subject
// @Tags Subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /subjects/{id} [get]
func (h *SubjectHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", appErrors.ErrInvalidSubjectID)
	if !ok {
		return
	}
	subject, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subject, nil)
}

// Create godoc
// @Summary Create subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param payload body service.CreateSubjectRequest true "Subject payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /subjects [post]
func (h *SubjectHandler) Create(c *gin.Context) {
	var req service.CreateSubjectRequest
	if !bindJSON(c, &req, "subject") {
		return
	}
	subject, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, subject)
}

// Update godoc
// @Summary Partially update subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param id path int true "Subject ID"
// @Param payload body service.SubjectPatch true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /subjects/{id} [patch]
func (h *SubjectHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", appErrors.ErrInvalidSubjectID)
	if !ok {
		return
	}
	var p service.SubjectPatch
	if !bindJSON(c, &p, "subject") {
		return
	}
	result, err := h.service.Update(c.Request.Context(), id, p)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondUpdate(c, result)
}

// Delete godoc
// @Summary Deactivate subject
// @Tags Subjects
// @Param id path int true "Subject ID"
// @Success 204
// @Router /subjects/{id} [delete]
func (h *SubjectHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", appErrors.ErrInvalidSubjectID)
	if !ok {
		return
	}
	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
