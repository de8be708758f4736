package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/middleware"
	"github.com/noah-isme/school-admin-api/internal/models"
)

// Handlers groups every API handler mounted under the versioned prefix.
type Handlers struct {
	Teachers    *TeacherHandler
	Roster      *TeacherRosterHandler
	Classrooms  *ClassroomHandler
	Subjects    *SubjectHandler
	Assignments *AssignmentHandler
}

// Register mounts the API routes on group. authenticate runs on every route;
// mutations additionally require an ADMIN or SUPERADMIN role.
func Register(group *gin.RouterGroup, authenticate gin.HandlerFunc, h Handlers) {
	api := group.Group("")
	if authenticate != nil {
		api.Use(authenticate)
	}
	admin := middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin)

	teachers := api.Group("/teachers")
	teachers.GET("", h.Teachers.List)
	teachers.GET("/search", h.Teachers.Search)
	teachers.GET("/export", h.Roster.Export)
	teachers.GET("/import/template", h.Roster.Template)
	teachers.POST("/import", admin, h.Roster.Import)
	teachers.GET("/import/:batchId", h.Roster.Report)
	teachers.GET("/:id", h.Teachers.Get)
	teachers.POST("", admin, h.Teachers.Create)
	teachers.PATCH("/:id", admin, h.Teachers.Update)
	teachers.DELETE("/:id", admin, h.Teachers.Delete)
	teachers.GET("/:id/assignments", h.Teachers.ListAssignments)

	api.POST("/teacher-assignments", admin, h.Assignments.AssignTeacher)
	api.DELETE("/teacher-assignments/:id", admin, h.Assignments.DeactivateAssignment)

	classrooms := api.Group("/classrooms")
	classrooms.GET("", h.Classrooms.List)
	classrooms.GET("/search", h.Classrooms.Search)
	classrooms.GET("/:id", h.Classrooms.Get)
	classrooms.POST("", admin, h.Classrooms.Create)
	classrooms.PATCH("/:id", admin, h.Classrooms.Update)
	classrooms.DELETE("/:id", admin, h.Classrooms.Delete)
	classrooms.GET("/:id/tutors", h.Classrooms.ListTutors)
	classrooms.GET("/:id/subjects", h.Classrooms.ListSubjects)

	api.POST("/classroom-tutors", admin, h.Assignments.AssignTutor)
	api.DELETE("/classroom-tutors/:id", admin, h.Assignments.DeactivateTutor)

	subjects := api.Group("/subjects")
	subjects.GET("", h.Subjects.List)
	subjects.GET("/search", h.Subjects.Search)
	subjects.GET("/:id", h.Subjects.Get)
	subjects.POST("", admin, h.Subjects.Create)
	subjects.PATCH("/:id", admin, h.Subjects.Update)
	subjects.DELETE("/:id", admin, h.Subjects.Delete)

	api.POST("/course-subjects", admin, h.Assignments.CreateCourseSubject)
	api.PATCH("/course-subjects/:id", admin, h.Assignments.UpdateCourseSubject)
	api.DELETE("/course-subjects/:id", admin, h.Assignments.DeleteCourseSubject)
}
