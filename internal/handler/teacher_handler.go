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

type teacherService interface {
	List(ctx context.Context, tenant models.TenantContext, filter models.TeacherFilter) ([]models.Teacher, *models.Pagination, error)
	Search(ctx context.Context, tenant models.TenantContext, term string, page models.PageRequest) ([]models.Teacher, *models.Pagination, error)
	Get(ctx context.Context, tenant models.TenantContext, id int64) (*models.Teacher, error)
	Create(ctx context.Context, tenant models.TenantContext, req service.CreateTeacherRequest) (*models.Teacher, error)
	Update(ctx context.Context, tenant models.TenantContext, id int64, p service.TeacherPatch) (*service.UpdateResult[*models.Teacher], error)
	Deactivate(ctx context.Context, tenant models.TenantContext, id int64) (*models.TeacherDeactivation, error)
}

type teacherAssignmentLister interface {
	ListByTeacher(ctx context.Context, tenant models.TenantContext, teacherID int64) ([]models.TeacherAssignmentDetail, error)
}

// TeacherHandler wires teacher services to HTTP routes.
type TeacherHandler struct {
	teachers    teacherService
	assignments teacherAssignmentLister
}

// NewTeacherHandler constructs a new TeacherHandler.
func NewTeacherHandler(teachers teacherService, assignments teacherAssignmentLister) *TeacherHandler {
	return &TeacherHandler{teachers: teachers, assignments: assignments}
}

// List godoc
// @Summary List teachers
// @Tags Teachers
// @Produce json
// @Param search query string false "Accent-insensitive match on name, id number or email"
// @Param active query bool false "Filter by active status"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /teachers [get]
func (h *TeacherHandler) List(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}
	active, ok := activeFilter(c)
	if !ok {
		return
	}
	filter := models.TeacherFilter{
		Search:      strings.TrimSpace(c.Query("search")),
		Active:      active,
		PageRequest: pageRequest(c),
	}

	teachers, pagination, err := h.teachers.List(c.Request.Context(), scope, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teachers, pagination)
}

// Search godoc
// @Summary Search teachers
// @Tags Teachers
// @Produce json
// @Param q query string true "Search term"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /teachers/search [get]
func (h *TeacherHandler) Search(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}
	teachers, pagination, err := h.teachers.Search(c.Request.Context(), scope, c.Query("q"), pageRequest(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teachers, pagination)
}

// Get godoc
// @Summary Get teacher detail
// @Tags Teachers
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /teachers/{id} [get]
func (h *TeacherHandler) Get(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", appErrors.ErrInvalidTeacherID)
	if !ok {
		return
	}
	teacher, err := h.teachers.Get(c.Request.Context(), scope, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher, nil)
}

// Create godoc
// @Summary Create teacher
// @Description Optionally assigns the new teacher as tutor of a classroom and to a course subject in the same transaction.
// @Tags Teachers
// @Accept json
// @Produce json
// @Param payload body service.CreateTeacherRequest true "Teacher payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /teachers [post]
func (h *TeacherHandler) Create(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}
	var req service.CreateTeacherRequest
	if !bindJSON(c, &req, "teacher") {
		return
	}
	teacher, err := h.teachers.Create(c.Request.Context(), scope, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, teacher)
}

// Update godoc
// @Summary Partially update teacher
// @Description Only fields present in the body are considered; fields equal to the stored value are skipped.
// @Tags Teachers
// @Accept json
// @Produce json
// @Param id path int true "Teacher ID"
// @Param payload body service.TeacherPatch true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /teachers/{id} [patch]
func (h *TeacherHandler) Update(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", appErrors.ErrInvalidTeacherID)
	if !ok {
		return
	}
	var p service.TeacherPatch
	if !bindJSON(c, &p, "teacher") {
		return
	}
	result, err := h.teachers.Update(c.Request.Context(), scope, id, p)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondUpdate(c, result)
}

// Delete godoc
// @Summary Deactivate teacher
// @Description Deactivates the teacher together with every active tutorship and subject assignment.
// @Tags Teachers
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /teachers/{id} [delete]
func (h *TeacherHandler) Delete(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", appErrors.ErrInvalidTeacherID)
	if !ok {
		return
	}
	result, err := h.teachers.Deactivate(c.Request.Context(), scope, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, result, "teacher deactivated")
}

// ListAssignments godoc
// @Summary List teacher assignments
// @Tags Teacher Assignments
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/assignments [get]
func (h *TeacherHandler) ListAssignments(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", appErrors.ErrInvalidTeacherID)
	if !ok {
		return
	}
	assignments, err := h.assignments.ListByTeacher(c.Request.Context(), scope, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignments, nil)
}
