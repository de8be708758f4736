package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/validation"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

var (
	testNow    = time.Date(2024, time.June, 14, 10, 30, 0, 0, time.UTC)
	testTenant = models.TenantContext{InstitutionID: 1, AcademicYearID: 2024}
)

func testValidator() *validation.Validator {
	return validation.New(validation.WithClock(func() time.Time { return testNow }))
}

// env wires every service over one fake store.
type env struct {
	db          *fakeDB
	teachers    *TeacherService
	classrooms  *ClassroomService
	subjects    *SubjectService
	courses     *CourseSubjectService
	tutors      *ClassroomTutorService
	assignments *TeacherAssignmentService
	metrics     *MetricsService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := newFakeDB()
	db.years[2024] = &models.AcademicYear{ID: 2024, InstitutionID: 1, Name: "2024-2025", Active: true}
	v := testValidator()
	metrics := NewMetricsService()

	teachers := NewTeacherService(fakeTeacherRepo{db}, fakeClassroomRepo{db}, fakeCourseSubjectRepo{db}, fakeTutorRepo{db}, v, nil, metrics)
	teachers.now = func() time.Time { return testNow }

	return &env{
		db:          db,
		teachers:    teachers,
		classrooms:  NewClassroomService(fakeClassroomRepo{db}, v, nil, metrics),
		subjects:    NewSubjectService(fakeSubjectRepo{db}, v, nil, metrics),
		courses:     NewCourseSubjectService(fakeCourseSubjectRepo{db}, fakeClassroomRepo{db}, fakeSubjectRepo{db}, v, nil, metrics),
		tutors:      NewClassroomTutorService(fakeTutorRepo{db}, fakeClassroomRepo{db}, fakeTeacherRepo{db}, v, nil, metrics),
		assignments: NewTeacherAssignmentService(fakeAssignmentRepo{db}, fakeTeacherRepo{db}, fakeCourseSubjectRepo{db}, fakeYearRepo{db}, v, nil, metrics),
		metrics:     metrics,
	}
}

func (e *env) teacher(id int64, idNumber, email string) *models.Teacher {
	return e.db.addTeacher(models.Teacher{
		ID:            id,
		InstitutionID: testTenant.InstitutionID,
		IDNumber:      idNumber,
		FirstName:     "Teacher",
		LastName:      idNumber,
		Email:         email,
		Active:        true,
	})
}

func (e *env) classroom(id int64, grade, parallel string) *models.Classroom {
	return e.db.addClassroom(models.Classroom{
		ID:             id,
		InstitutionID:  testTenant.InstitutionID,
		AcademicYearID: testTenant.AcademicYearID,
		Grade:          grade,
		Parallel:       parallel,
		Schedule:       models.ScheduleMorning,
		Capacity:       30,
		Active:         true,
	})
}

func requireCode(t *testing.T, err error, want *appErrors.Error) *appErrors.Error {
	t.Helper()
	require.Error(t, err)
	var typed *appErrors.Error
	require.True(t, errors.As(err, &typed), "expected typed error, got %v", err)
	require.Equal(t, want.Code, typed.Code, typed.Message)
	return typed
}

func strPtr(v string) *string { return &v }
