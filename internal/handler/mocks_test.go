package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/service"
	"github.com/noah-isme/school-admin-api/pkg/config"
	"github.com/noah-isme/school-admin-api/pkg/middleware/tenant"
)

type envelope struct {
	Success    bool                   `json:"success"`
	Data       json.RawMessage        `json:"data"`
	Message    string                 `json:"message"`
	Error      string                 `json:"error"`
	Code       string                 `json:"code"`
	Field      string                 `json:"field"`
	Pagination *models.Pagination     `json:"pagination"`
	Meta       map[string]interface{} `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

// newTestContext builds a request context scoped to institution 1, year 2024.
func newTestContext(method, target string, body io.Reader) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(tenant.InstitutionHeader, "1")
	req.Header.Set(tenant.AcademicYearHeader, "2024")
	c.Request = req
	tenant.Middleware(config.TenantConfig{})(c)
	return c, w
}

func withID(c *gin.Context, value string) {
	c.Params = append(c.Params, gin.Param{Key: "id", Value: value})
}

var testScope = models.TenantContext{InstitutionID: 1, AcademicYearID: 2024}

type teacherServiceMock struct {
	listResp     []models.Teacher
	listPage     *models.Pagination
	err          error
	lastTenant   models.TenantContext
	lastFilter   models.TeacherFilter
	lastTerm     string
	lastID       int64
	lastCreate   service.CreateTeacherRequest
	lastPatch    service.TeacherPatch
	updateResp   *service.UpdateResult[*models.Teacher]
	deactivation *models.TeacherDeactivation
	createCalled bool
	updateCalled bool
	searchCalled bool
	deleteCalled bool
}

func (m *teacherServiceMock) List(ctx context.Context, scope models.TenantContext, filter models.TeacherFilter) ([]models.Teacher, *models.Pagination, error) {
	m.lastTenant = scope
	m.lastFilter = filter
	return m.listResp, m.listPage, m.err
}

func (m *teacherServiceMock) Search(ctx context.Context, scope models.TenantContext, term string, page models.PageRequest) ([]models.Teacher, *models.Pagination, error) {
	m.searchCalled = true
	m.lastTerm = term
	return m.listResp, m.listPage, m.err
}

func (m *teacherServiceMock) Get(ctx context.Context, scope models.TenantContext, id int64) (*models.Teacher, error) {
	m.lastID = id
	if m.err != nil {
		return nil, m.err
	}
	return &models.Teacher{ID: id, InstitutionID: scope.InstitutionID, FirstName: "Ana", Active: true}, nil
}

func (m *teacherServiceMock) Create(ctx context.Context, scope models.TenantContext, req service.CreateTeacherRequest) (*models.Teacher, error) {
	m.createCalled = true
	m.lastTenant = scope
	m.lastCreate = req
	if m.err != nil {
		return nil, m.err
	}
	return &models.Teacher{ID: 1, IDNumber: req.IDNumber, Email: req.Email, Active: true}, nil
}

func (m *teacherServiceMock) Update(ctx context.Context, scope models.TenantContext, id int64, p service.TeacherPatch) (*service.UpdateResult[*models.Teacher], error) {
	m.updateCalled = true
	m.lastID = id
	m.lastPatch = p
	return m.updateResp, m.err
}

func (m *teacherServiceMock) Deactivate(ctx context.Context, scope models.TenantContext, id int64) (*models.TeacherDeactivation, error) {
	m.deleteCalled = true
	m.lastID = id
	return m.deactivation, m.err
}

type assignmentListerMock struct {
	resp   []models.TeacherAssignmentDetail
	err    error
	lastID int64
}

func (m *assignmentListerMock) ListByTeacher(ctx context.Context, scope models.TenantContext, teacherID int64) ([]models.TeacherAssignmentDetail, error) {
	m.lastID = teacherID
	return m.resp, m.err
}

type classroomServiceMock struct {
	err        error
	lastFilter models.ClassroomFilter
	lastCreate service.CreateClassroomRequest
	updateResp *service.UpdateResult[*models.Classroom]
	lastID     int64
}

func (m *classroomServiceMock) List(ctx context.Context, scope models.TenantContext, filter models.ClassroomFilter) ([]models.Classroom, *models.Pagination, error) {
	m.lastFilter = filter
	return []models.Classroom{}, models.NewPagination(filter.PageRequest, 0), m.err
}

func (m *classroomServiceMock) Search(ctx context.Context, scope models.TenantContext, term string, page models.PageRequest) ([]models.Classroom, *models.Pagination, error) {
	return []models.Classroom{}, models.NewPagination(page, 0), m.err
}

func (m *classroomServiceMock) Get(ctx context.Context, scope models.TenantContext, id int64) (*models.Classroom, error) {
	m.lastID = id
	if m.err != nil {
		return nil, m.err
	}
	return &models.Classroom{ID: id, Grade: "8", Parallel: "A"}, nil
}

func (m *classroomServiceMock) Create(ctx context.Context, scope models.TenantContext, req service.CreateClassroomRequest) (*models.Classroom, error) {
	m.lastCreate = req
	if m.err != nil {
		return nil, m.err
	}
	return &models.Classroom{ID: 3, Grade: req.Grade, Parallel: req.Parallel, Capacity: int(req.Capacity)}, nil
}

func (m *classroomServiceMock) Update(ctx context.Context, scope models.TenantContext, id int64, p service.ClassroomPatch) (*service.UpdateResult[*models.Classroom], error) {
	m.lastID = id
	return m.updateResp, m.err
}

func (m *classroomServiceMock) Deactivate(ctx context.Context, scope models.TenantContext, id int64) error {
	m.lastID = id
	return m.err
}

type classroomListsMock struct {
	err    error
	lastID int64
}

func (m *classroomListsMock) ListByClassroom(ctx context.Context, scope models.TenantContext, classroomID int64) ([]models.ClassroomTutorDetail, error) {
	m.lastID = classroomID
	return []models.ClassroomTutorDetail{}, m.err
}

type courseSubjectListMock struct {
	err    error
	lastID int64
}

func (m *courseSubjectListMock) ListByClassroom(ctx context.Context, scope models.TenantContext, classroomID int64) ([]models.CourseSubjectDetail, error) {
	m.lastID = classroomID
	return []models.CourseSubjectDetail{}, m.err
}

type subjectServiceMock struct {
	err        error
	lastFilter models.SubjectFilter
	lastTerm   string
	lastID     int64
	updateResp *service.UpdateResult[*models.Subject]
}

func (m *subjectServiceMock) List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, *models.Pagination, error) {
	m.lastFilter = filter
	return []models.Subject{}, models.NewPagination(filter.PageRequest, 0), m.err
}

func (m *subjectServiceMock) Search(ctx context.Context, term string, page models.PageRequest) ([]models.Subject, *models.Pagination, error) {
	m.lastTerm = term
	return []models.Subject{}, models.NewPagination(page, 0), m.err
}

func (m *subjectServiceMock) Get(ctx context.Context, id int64) (*models.Subject, error) {
	m.lastID = id
	if m.err != nil {
		return nil, m.err
	}
	return &models.Subject{ID: id, Name: "Física", Code: "FIS101", Active: true}, nil
}

func (m *subjectServiceMock) Create(ctx context.Context, req service.CreateSubjectRequest) (*models.Subject, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.Subject{ID: 1, Name: req.Name, Code: req.Code, Active: true}, nil
}

func (m *subjectServiceMock) Update(ctx context.Context, id int64, p service.SubjectPatch) (*service.UpdateResult[*models.Subject], error) {
	m.lastID = id
	return m.updateResp, m.err
}

func (m *subjectServiceMock) Deactivate(ctx context.Context, id int64) error {
	m.lastID = id
	return m.err
}

type tutorServiceMock struct {
	err     error
	lastReq service.AssignTutorRequest
	lastID  int64
}

func (m *tutorServiceMock) Assign(ctx context.Context, scope models.TenantContext, req service.AssignTutorRequest) (*models.ClassroomTutor, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &models.ClassroomTutor{ID: 5, ClassroomID: req.ClassroomID, TeacherID: req.TeacherID, Active: true}, nil
}

func (m *tutorServiceMock) Deactivate(ctx context.Context, scope models.TenantContext, id int64) error {
	m.lastID = id
	return m.err
}

type teacherAssignmentServiceMock struct {
	err     error
	lastReq service.AssignTeacherRequest
	lastID  int64
}

func (m *teacherAssignmentServiceMock) Assign(ctx context.Context, scope models.TenantContext, req service.AssignTeacherRequest) (*models.TeacherAssignment, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &models.TeacherAssignment{ID: 9, TeacherID: req.TeacherID, CourseSubjectID: req.CourseSubjectID, Active: true}, nil
}

func (m *teacherAssignmentServiceMock) Deactivate(ctx context.Context, scope models.TenantContext, id int64) error {
	m.lastID = id
	return m.err
}

type courseSubjectServiceMock struct {
	err        error
	lastReq    service.CreateCourseSubjectRequest
	lastID     int64
	updateResp *service.UpdateResult[*models.CourseSubject]
}

func (m *courseSubjectServiceMock) Create(ctx context.Context, scope models.TenantContext, req service.CreateCourseSubjectRequest) (*models.CourseSubject, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &models.CourseSubject{ID: 11, ClassroomID: req.ClassroomID, SubjectID: req.SubjectID, WeeklyHours: int(req.WeeklyHours), Active: true}, nil
}

func (m *courseSubjectServiceMock) Update(ctx context.Context, scope models.TenantContext, id int64, p service.CourseSubjectPatch) (*service.UpdateResult[*models.CourseSubject], error) {
	m.lastID = id
	return m.updateResp, m.err
}

func (m *courseSubjectServiceMock) Delete(ctx context.Context, scope models.TenantContext, id int64) error {
	m.lastID = id
	return m.err
}

type importerMock struct {
	err          error
	lastFileName string
	lastBody     []byte
	report       *models.ImportReport
}

func (m *importerMock) Template() ([]byte, error) {
	return []byte("xlsx-bytes"), m.err
}

func (m *importerMock) Import(ctx context.Context, scope models.TenantContext, fileName string, r io.Reader) (*models.ImportReport, error) {
	m.lastFileName = fileName
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m.lastBody = body
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

func (m *importerMock) Report(ctx context.Context, batchID string) (*models.ImportReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.ImportReport{BatchID: batchID}, nil
}

type exporterMock struct {
	err        error
	lastFormat service.ExportFormat
	lastActive bool
}

func (m *exporterMock) Export(ctx context.Context, scope models.TenantContext, format service.ExportFormat, activeOnly bool) (*service.ExportFile, error) {
	m.lastFormat = format
	m.lastActive = activeOnly
	if m.err != nil {
		return nil, m.err
	}
	return &service.ExportFile{FileName: "teachers_1.csv", ContentType: "text/csv; charset=utf-8", Data: []byte("ID Number\n")}, nil
}
