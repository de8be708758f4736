package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/service"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

type classroomTutorService interface {
	Assign(ctx context.Context, tenant models.TenantContext, req service.AssignTutorRequest) (*models.ClassroomTutor, error)
	Deactivate(ctx context.Context, tenant models.TenantContext, id int64) error
}

type teacherAssignmentService interface {
	Assign(ctx context.Context, tenant models.TenantContext, req service.AssignTeacherRequest) (*models.TeacherAssignment, error)
	Deactivate(ctx context.Context, tenant models.TenantContext, id int64) error
}

type courseSubjectService interface {
	Create(ctx context.Context, tenant models.TenantContext, req service.CreateCourseSubjectRequest) (*models.CourseSubject, error)
	Update(ctx context.Context, tenant models.TenantContext, id int64, p service.CourseSubjectPatch) (*service.UpdateResult[*models.CourseSubject], error)
	Delete(ctx context.Context, tenant models.TenantContext, id int64) error
}

// AssignmentHandler exposes the links between teachers, classrooms and subjects:
// classroom tutors, teacher assignments and course subjects.
type AssignmentHandler struct {
	tutors         classroomTutorService
	assignments    teacherAssignmentService
	courseSubjects courseSubjectService
}

// NewAssignmentHandler constructs an AssignmentHandler.
func NewAssignmentHandler(tutors classroomTutorService, assignments teacherAssignmentService, courseSubjects courseSubjectService) *AssignmentHandler {
	return &AssignmentHandler{tutors: tutors, assignments: assignments, courseSubjects: courseSubjects}
}

// AssignTutor godoc
// @Summary Assign a classroom tutor
// @Description A classroom holds at most one active tutor per academic year.
// @Tags Classroom Tutors
// @Accept json
// @Produce json
// @Param payload body service.AssignTutorRequest true "Tutor payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /classroom-tutors [post]
func (h *AssignmentHandler) AssignTutor(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}
	var req service.AssignTutorRequest
	if !bindJSON(c, &req, "classroom tutor") {
		return
	}
	tutor, err := h.tutors.Assign(c.Request.Context(), scope, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tutor)
}

// DeactivateTutor godoc
// @Summary Deactivate a classroom tutor
// @Tags Classroom Tutors
// @Param id path int true "Classroom tutor ID"
// @Success 204
// @Router /classroom-tutors/{id} [delete]
func (h *AssignmentHandler) DeactivateTutor(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", appErrors.ErrInvalidTutorID)
	if !ok {
		return
	}
	if err := h.tutors.Deactivate(c.Request.Context(), scope, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AssignTeacher godoc
// @Summary Assign a teacher to a course subject
// @Description A teacher holds at most one active assignment per course subject and academic year.
// @Tags Teacher Assignments
// @Accept json
// @Produce json
// @Param payload body service.AssignTeacherRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /teacher-assignments [post]
func (h *AssignmentHandler) AssignTeacher(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}
	var req service.AssignTeacherRequest
	if !bindJSON(c, &req, "assignment") {
		return
	}
	assignment, err := h.assignments.Assign(c.Request.Context(), scope, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// DeactivateAssignment godoc
// @Summary Deactivate a teacher assignment
// @Tags Teacher Assignments
// @Param id path int true "Assignment ID"
// @Success 204
// @Router /teacher-assignments/{id} [delete]
func (h *AssignmentHandler) DeactivateAssignment(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", appErrors.ErrInvalidAssignmentID)
	if !ok {
		return
	}
	if err := h.assignments.Deactivate(c.Request.Context(), scope, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// CreateCourseSubject godoc
// @Summary Add a subject to a classroom
// @Tags Course Subjects
// @Accept json
// @Produce json
// @Param payload body service.CreateCourseSubjectRequest true "Course subject payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /course-subjects [post]
func (h *AssignmentHandler) CreateCourseSubject(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}
	var req service.CreateCourseSubjectRequest
	if !bindJSON(c, &req, "course subject") {
		return
	}
	courseSubject, err := h.courseSubjects.Create(c.Request.Context(), scope, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, courseSubject)
}

// UpdateCourseSubject godoc
// @Summary Partially update a course subject
// @Tags Course Subjects
// @Accept json
// @Produce json
// @Param id path int true "Course subject ID"
// @Param payload body service.CourseSubjectPatch true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /course-subjects/{id} [patch]
func (h *AssignmentHandler) UpdateCourseSubject(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", appErrors.ErrInvalidCourseSubject)
	if !ok {
		return
	}
	var p service.CourseSubjectPatch
	if !bindJSON(c, &p, "course subject") {
		return
	}
	result, err := h.courseSubjects.Update(c.Request.Context(), scope, id, p)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondUpdate(c, result)
}

// DeleteCourseSubject godoc
// @Summary Remove a subject from a classroom
// @Description Refused while the course subject still has active teacher assignments.
// @Tags Course Subjects
// @Param id path int true "Course subject ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /course-subjects/{id} [delete]
func (h *AssignmentHandler) DeleteCourseSubject(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", appErrors.ErrInvalidCourseSubject)
	if !ok {
		return
	}
	if err := h.courseSubjects.Delete(c.Request.Context(), scope, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
