package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/patch"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

func TestClassroomServiceCreate(t *testing.T) {
	e := newEnv(t)

	var req CreateClassroomRequest
	require.NoError(t, json.Unmarshal([]byte(`{"grade":"8","parallel":"a","schedule":"morning","capacity":"30","location":" Bloque B "}`), &req))

	classroom, err := e.classrooms.Create(context.Background(), testTenant, req)
	require.NoError(t, err)
	assert.Equal(t, "A", classroom.Parallel)
	assert.Equal(t, models.ScheduleMorning, classroom.Schedule)
	assert.Equal(t, 30, classroom.Capacity)
	assert.Equal(t, "Bloque B", *classroom.Location)
	assert.Equal(t, testTenant.AcademicYearID, classroom.AcademicYearID)

	_, err = e.classrooms.Create(context.Background(), testTenant, CreateClassroomRequest{Grade: "8", Parallel: "A", Schedule: "EVENING", Capacity: 20})
	requireCode(t, err, appErrors.ErrClassroomAlreadyExists)

	other := models.TenantContext{InstitutionID: 1, AcademicYearID: 2025}
	_, err = e.classrooms.Create(context.Background(), other, CreateClassroomRequest{Grade: "8", Parallel: "A", Schedule: "EVENING", Capacity: 20})
	require.NoError(t, err)
}

func TestClassroomServiceCreateValidation(t *testing.T) {
	e := newEnv(t)

	_, err := e.classrooms.Create(context.Background(), testTenant, CreateClassroomRequest{Grade: "8", Parallel: "A", Schedule: "MORNING", Capacity: 51})
	typed := requireCode(t, err, appErrors.ErrInvalidField)
	assert.Equal(t, "Capacity must be at most 50", typed.Message)

	_, err = e.classrooms.Create(context.Background(), testTenant, CreateClassroomRequest{Grade: "8", Parallel: "A", Schedule: "NIGHT", Capacity: 20})
	typed = requireCode(t, err, appErrors.ErrInvalidField)
	assert.Equal(t, "Schedule must be one of MORNING, AFTERNOON, EVENING", typed.Message)

	_, err = e.classrooms.Create(context.Background(), testTenant, CreateClassroomRequest{Grade: "8"})
	typed = requireCode(t, err, appErrors.ErrMissingRequired)
	assert.Equal(t, "Missing required fields: capacity, parallel, schedule", typed.Message)
}

func TestClassroomServiceUpdateCoercesCapacity(t *testing.T) {
	e := newEnv(t)
	classroom := e.classroom(0, "8", "A")
	writes := e.db.writes

	var p ClassroomPatch
	require.NoError(t, json.Unmarshal([]byte(`{"capacity":"30","active":1,"parallel":"a"}`), &p))
	result, err := e.classrooms.Update(context.Background(), testTenant, classroom.ID, p)
	require.NoError(t, err)
	assert.False(t, result.HasChanges())
	assert.Equal(t, writes, e.db.writes)

	var next ClassroomPatch
	require.NoError(t, json.Unmarshal([]byte(`{"capacity":"35"}`), &next))
	result, err = e.classrooms.Update(context.Background(), testTenant, classroom.ID, next)
	require.NoError(t, err)
	assert.Equal(t, []string{"capacity"}, result.Changed)
	assert.Equal(t, 35, result.Data.Capacity)
}

func TestClassroomServiceUpdateRejections(t *testing.T) {
	e := newEnv(t)
	e.classroom(0, "8", "B")
	classroom := e.classroom(0, "8", "A")

	_, err := e.classrooms.Update(context.Background(), testTenant, classroom.ID, ClassroomPatch{Capacity: patch.Of(patch.Int(0))})
	requireCode(t, err, appErrors.ErrInvalidField)

	_, err = e.classrooms.Update(context.Background(), testTenant, classroom.ID, ClassroomPatch{Capacity: patch.Null[patch.Int]()})
	typed := requireCode(t, err, appErrors.ErrInvalidField)
	assert.Equal(t, "capacity", typed.Field)

	_, err = e.classrooms.Update(context.Background(), testTenant, classroom.ID, ClassroomPatch{Parallel: patch.Of("b")})
	requireCode(t, err, appErrors.ErrClassroomAlreadyExists)

	_, err = e.classrooms.Update(context.Background(), models.TenantContext{InstitutionID: 2, AcademicYearID: 2024}, classroom.ID, ClassroomPatch{Parallel: patch.Of("C")})
	requireCode(t, err, appErrors.ErrClassroomNotFound)
}

func TestClassroomServiceListFilters(t *testing.T) {
	e := newEnv(t)
	e.classroom(0, "8", "A")
	evening := e.db.addClassroom(models.Classroom{InstitutionID: 1, AcademicYearID: 2024, Grade: "9", Parallel: "B", Schedule: models.ScheduleEvening, Capacity: 25, Location: strPtr("Pabellón Ñandú"), Active: true})

	items, pagination, err := e.classrooms.List(context.Background(), testTenant, models.ClassroomFilter{Schedule: "evening"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, evening.ID, items[0].ID)
	assert.Equal(t, 1, pagination.Total)

	items, _, err = e.classrooms.Search(context.Background(), testTenant, "pabellon nandu", models.PageRequest{})
	require.NoError(t, err)
	require.Len(t, items, 1)

	_, _, err = e.classrooms.List(context.Background(), testTenant, models.ClassroomFilter{Schedule: "NIGHT"})
	requireCode(t, err, appErrors.ErrInvalidField)
}

func TestClassroomServiceDeactivate(t *testing.T) {
	e := newEnv(t)
	classroom := e.classroom(0, "8", "A")

	require.NoError(t, e.classrooms.Deactivate(context.Background(), testTenant, classroom.ID))
	err := e.classrooms.Deactivate(context.Background(), testTenant, classroom.ID)
	requireCode(t, err, appErrors.ErrAlreadyInactive)

	_, err = e.classrooms.Create(context.Background(), testTenant, CreateClassroomRequest{Grade: "8", Parallel: "A", Schedule: "MORNING", Capacity: 30})
	require.NoError(t, err)
}
