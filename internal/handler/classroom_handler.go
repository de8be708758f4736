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

type classroomService interface {
	List(ctx context.Context, tenant models.TenantContext, filter models.ClassroomFilter) ([]models.Classroom, *models.Pagination, error)
	Search(ctx context.Context, tenant models.TenantContext, term string, page models.PageRequest) ([]models.Classroom, *models.Pagination, error)
	Get(ctx context.Context, tenant models.TenantContext, id int64) (*models.Classroom, error)
	Create(ctx context.Context, tenant models.TenantContext, req service.CreateClassroomRequest) (*models.Classroom, error)
	Update(ctx context.Context, tenant models.TenantContext, id int64, p service.ClassroomPatch) (*service.UpdateResult[*models.Classroom], error)
	Deactivate(ctx context.Context, tenant models.TenantContext, id int64) error
}

type classroomTutorLister interface {
	ListByClassroom(ctx context.Context, tenant models.TenantContext, classroomID int64) ([]models.ClassroomTutorDetail, error)
}

type courseSubjectLister interface {
	ListByClassroom(ctx context.Context, tenant models.TenantContext, classroomID int64) ([]models.CourseSubjectDetail, error)
}

// ClassroomHandler exposes classroom CRUD endpoints and the classroom's tutors and
// subjects.
type ClassroomHandler struct {
	classrooms classroomService
	tutors     classroomTutorLister
	subjects   courseSubjectLister
}

// NewClassroomHandler constructs a classroom handler.
func NewClassroomHandler(classrooms classroomService, tutors classroomTutorLister, subjects courseSubjectLister) *ClassroomHandler {
	return &ClassroomHandler{classrooms: classrooms, tutors: tutors, subjects: subjects}
}

// List godoc
// @Summary List classrooms of the academic year
// @Tags Classrooms
// @Produce json
// @Param search query string false "Accent-insensitive match on name or location"
// @Param schedule query string false "MORNING, AFTERNOON or EVENING"
// @Param active query bool false "Filter by active status"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} response.Envelope
// @Router /classrooms [get]
func (h *ClassroomHandler) List(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}
	active, ok := activeFilter(c)
	if !ok {
		return
	}
	filter := models.ClassroomFilter{
		Search:      strings.TrimSpace(c.Query("search")),
		Schedule:    models.Schedule(strings.TrimSpace(c.Query("schedule"))),
		Active:      active,
		PageRequest: pageRequest(c),
	}
	classrooms, pagination, err := h.classrooms.List(c.Request.Context(), scope, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classrooms, pagination)
}

// Search godoc
// @Summary Search classrooms
// @Tags Classrooms
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {object} response.Envelope
// @Router /classrooms/search [get]
func (h *ClassroomHandler) Search(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}
	classrooms, pagination, err := h.classrooms.Search(c.Request.Context(), scope, c.Query("q"), pageRequest(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classrooms, pagination)
}

// Get godoc
// @Summary Get classroom
// @Tags Classrooms
// @Produce json
// @Param id path int true "Classroom ID"
// @Success 200 {object} response.Envelope
// @Router /classrooms/{id} [get]
func (h *ClassroomHandler) Get(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", appErrors.ErrInvalidClassroomID)
	if !ok {
		return
	}
	classroom, err := h.classrooms.Get(c.Request.Context(), scope, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classroom, nil)
}

// Create godoc
// @Summary Create classroom
// @Tags Classrooms
// @Accept json
// @Produce json
// @Param payload body service.CreateClassroomRequest true "Classroom payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /classrooms [post]
func (h *ClassroomHandler) Create(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}
	var req service.CreateClassroomRequest
	if !bindJSON(c, &req, "classroom") {
		return
	}
	classroom, err := h.classrooms.Create(c.Request.Context(), scope, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, classroom)
}

// Update godoc
// @Summary Partially update classroom
// @Tags Classrooms
// @Accept json
// @Produce json
// @Param id path int true "Classroom ID"
// @Param payload body service.ClassroomPatch true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /classrooms/{id} [patch]
func (h *ClassroomHandler) Update(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", appErrors.ErrInvalidClassroomID)
	if !ok {
		return
	}
	var p service.ClassroomPatch
	if !bindJSON(c, &p, "classroom") {
		return
	}
	result, err := h.classrooms.Update(c.Request.Context(), scope, id, p)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondUpdate(c, result)
}

// Delete godoc
// @Summary Deactivate classroom
// @Tags Classrooms
// @Param id path int true "Classroom ID"
// @Success 204
// @Router /classrooms/{id} [delete]
func (h *ClassroomHandler) Delete(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", appErrors.ErrInvalidClassroomID)
	if !ok {
		return
	}
	if err := h.classrooms.Deactivate(c.Request.Context(), scope, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListTutors godoc
// @Summary List the classroom's tutors
// @Tags Classroom Tutors
// @Produce json
// @Param id path int true "Classroom ID"
// @Success 200 {object} response.Envelope
// @Router /classrooms/{id}/tutors [get]
func (h *ClassroomHandler) ListTutors(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", appErrors.ErrInvalidClassroomID)
	if !ok {
		return
	}
	tutors, err := h.tutors.ListByClassroom(c.Request.Context(), scope, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tutors, nil)
}

// ListSubjects godoc
// @Summary List the subjects taught in the classroom
// @Tags Course Subjects
// @Produce json
// @Param id path int true "Classroom ID"
// @Success 200 {object} response.Envelope
// @Router /classrooms/{id}/subjects [get]
func (h *ClassroomHandler) ListSubjects(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", appErrors.ErrInvalidClassroomID)
	if !ok {
		return
	}
	subjects, err := h.subjects.ListByClassroom(c.Request.Context(), scope, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}
