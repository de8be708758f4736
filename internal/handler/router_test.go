package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalmiddleware "github.com/noah-isme/school-admin-api/internal/middleware"
	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/pkg/config"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
	"github.com/noah-isme/school-admin-api/pkg/middleware/tenant"
)

// roleTokens treats the bearer token as the caller's role.
type roleTokens struct{}

func (roleTokens) ValidateToken(token string) (*models.JWTClaims, error) {
	switch models.UserRole(token) {
	case models.RoleAdmin, models.RoleSuperAdmin, models.RoleTeacher:
		return &models.JWTClaims{UserID: "test-user", Role: models.UserRole(token)}, nil
	}
	return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
}

type routerFixture struct {
	router   *gin.Engine
	teachers *teacherServiceMock
	subjects *subjectServiceMock
	tutors   *tutorServiceMock
}

func buildRouter(defaults config.TenantConfig) *routerFixture {
	gin.SetMode(gin.TestMode)
	f := &routerFixture{
		router:   gin.New(),
		teachers: &teacherServiceMock{listResp: []models.Teacher{}, listPage: models.NewPagination(models.PageRequest{}, 0)},
		subjects: &subjectServiceMock{},
		tutors:   &tutorServiceMock{},
	}
	f.router.Use(tenant.Middleware(defaults))

	Register(f.router.Group("/api/v1"), internalmiddleware.JWT(roleTokens{}), Handlers{
		Teachers:    NewTeacherHandler(f.teachers, &assignmentListerMock{}),
		Roster:      NewTeacherRosterHandler(&importerMock{}, &exporterMock{}, 1<<20),
		Classrooms:  NewClassroomHandler(&classroomServiceMock{}, &classroomListsMock{}, &courseSubjectListMock{}),
		Subjects:    NewSubjectHandler(f.subjects),
		Assignments: NewAssignmentHandler(f.tutors, &teacherAssignmentServiceMock{}, &courseSubjectServiceMock{}),
	})
	return f
}

func performRequest(router *gin.Engine, method, target, role, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(tenant.InstitutionHeader, "1")
	req.Header.Set(tenant.AcademicYearHeader, "2024")
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+role)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRoutesIntegration(t *testing.T) {
	f := buildRouter(config.TenantConfig{})
	admin := string(models.RoleAdmin)
	teacher := string(models.RoleTeacher)

	t.Run("missing token", func(t *testing.T) {
		resp := performRequest(f.router, http.MethodGet, "/api/v1/teachers", "", "")
		require.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.Contains(t, resp.Body.String(), `"code":"UNAUTHORIZED"`)
	})

	t.Run("invalid token", func(t *testing.T) {
		resp := performRequest(f.router, http.MethodGet, "/api/v1/teachers", "garbage", "")
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("reads open to any role", func(t *testing.T) {
		for _, path := range []string{
			"/api/v1/teachers",
			"/api/v1/teachers/search?q=ana",
			"/api/v1/teachers/7",
			"/api/v1/teachers/7/assignments",
			"/api/v1/teachers/export",
			"/api/v1/teachers/import/template",
			"/api/v1/teachers/import/batch-1",
			"/api/v1/classrooms",
			"/api/v1/classrooms/3/tutors",
			"/api/v1/classrooms/3/subjects",
			"/api/v1/subjects/4",
		} {
			resp := performRequest(f.router, http.MethodGet, path, teacher, "")
			assert.Equal(t, http.StatusOK, resp.Code, path)
		}
	})

	t.Run("mutations forbidden for teachers", func(t *testing.T) {
		resp := performRequest(f.router, http.MethodPost, "/api/v1/classroom-tutors", teacher, `{"classroom_id":3,"teacher_id":7,"start_date":"2024-06-01"}`)
		require.Equal(t, http.StatusForbidden, resp.Code)
		assert.Zero(t, f.tutors.lastReq.ClassroomID)

		resp = performRequest(f.router, http.MethodDelete, "/api/v1/teachers/7", teacher, "")
		require.Equal(t, http.StatusForbidden, resp.Code)
		assert.False(t, f.teachers.deleteCalled)
	})

	t.Run("mutations allowed for admins", func(t *testing.T) {
		resp := performRequest(f.router, http.MethodPost, "/api/v1/classroom-tutors", admin, `{"classroom_id":3,"teacher_id":7,"start_date":"2024-06-01"}`)
		require.Equal(t, http.StatusCreated, resp.Code)
		assert.Equal(t, int64(3), f.tutors.lastReq.ClassroomID)

		resp = performRequest(f.router, http.MethodPost, "/api/v1/subjects", string(models.RoleSuperAdmin), `{"name":"Física","code":"FIS101"}`)
		require.Equal(t, http.StatusCreated, resp.Code)
	})

	t.Run("tenant applies to scoped routes", func(t *testing.T) {
		resp := performRequest(f.router, http.MethodGet, "/api/v1/teachers?page=2", admin, "")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, testScope, f.teachers.lastTenant)
	})
}

func TestRoutesRejectMissingTenant(t *testing.T) {
	f := buildRouter(config.TenantConfig{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/teachers", nil)
	req.Header.Set("Authorization", "Bearer "+string(models.RoleAdmin))
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"INVALID_TENANT"`)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/subjects", nil)
	req.Header.Set("Authorization", "Bearer "+string(models.RoleAdmin))
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutesFallBackToConfiguredTenant(t *testing.T) {
	f := buildRouter(config.TenantConfig{DefaultInstitutionID: 5, DefaultAcademicYearID: 2025})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/teachers", nil)
	req.Header.Set("Authorization", "Bearer "+string(models.RoleAdmin))
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.TenantContext{InstitutionID: 5, AcademicYearID: 2025}, f.teachers.lastTenant)
}
