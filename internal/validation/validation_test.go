package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

type teacherInput struct {
	IDNumber  string  `json:"id_number" validate:"required,digits10"`
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Email     string  `json:"email" validate:"required,email_tld"`
	Phone     *string `json:"phone" validate:"omitempty,digits10"`
}

type classroomInput struct {
	Schedule string `json:"schedule" validate:"required,schedule"`
	Capacity int    `json:"capacity" validate:"required,min=1,max=50"`
}

func fixedClock() time.Time {
	return time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
}

func TestStructReportsEveryMissingField(t *testing.T) {
	v := New()
	err := v.Struct(teacherInput{IDNumber: "0102030405"})
	require.Error(t, err)

	var typed *appErrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, "MISSING_REQUIRED_FIELDS", typed.Code)
	assert.Equal(t, "Missing required fields: email, first_name, last_name", typed.Message)
}

func TestStructFormatFailures(t *testing.T) {
	v := New()
	phone := "12345"
	base := teacherInput{IDNumber: "0102030405", FirstName: "Ana", LastName: "Paz", Email: "ana@school.edu"}

	bad := base
	bad.IDNumber = "12AB"
	err := v.Struct(bad)
	var typed *appErrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, "INVALID_FIELD", typed.Code)
	assert.Equal(t, "id_number", typed.Field)
	assert.Equal(t, "ID number must be exactly 10 digits", typed.Message)

	bad = base
	bad.Email = "ana@school"
	require.ErrorAs(t, v.Struct(bad), &typed)
	assert.Equal(t, "email", typed.Field)

	bad = base
	bad.Phone = &phone
	require.ErrorAs(t, v.Struct(bad), &typed)
	assert.Equal(t, "phone", typed.Field)

	assert.NoError(t, v.Struct(base))
}

func TestClassroomRules(t *testing.T) {
	v := New()
	var typed *appErrors.Error

	require.ErrorAs(t, v.Struct(classroomInput{Schedule: "NIGHT", Capacity: 20}), &typed)
	assert.Equal(t, "Schedule must be one of MORNING, AFTERNOON, EVENING", typed.Message)

	require.ErrorAs(t, v.Struct(classroomInput{Schedule: "MORNING", Capacity: 51}), &typed)
	assert.Equal(t, "Capacity must be at most 50", typed.Message)

	assert.NoError(t, v.Struct(classroomInput{Schedule: "EVENING", Capacity: 50}))
}

func TestVarUsesProvidedFieldName(t *testing.T) {
	v := New()
	err := v.Var("code", "FI", "min=3")

	var typed *appErrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, "INVALID_FIELD", typed.Code)
	assert.Equal(t, "code", typed.Field)
	assert.Equal(t, "Code must be at least 3 characters", typed.Message)

	assert.NoError(t, v.Var("code", "FIS101", "min=3"))
}

func TestID(t *testing.T) {
	assert.NoError(t, ID(3, appErrors.ErrInvalidClassroomID))
	err := ID(0, appErrors.ErrInvalidClassroomID)
	assert.ErrorIs(t, err, appErrors.ErrInvalidClassroomID)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("start_date", "2024-02-01")
	require.NoError(t, err)
	assert.Equal(t, time.February, d.Month())

	_, err = ParseDate("start_date", "01/02/2024")
	assert.ErrorIs(t, err, appErrors.ErrInvalidField)
}

func TestDateRange(t *testing.T) {
	v := New(WithClock(fixedClock))

	start := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, v.DateRange(start, nil))
	assert.NoError(t, v.DateRange(fixedClock(), nil), "today is not in the future")

	future := time.Date(2024, time.March, 16, 0, 0, 0, 0, time.UTC)
	assert.ErrorIs(t, v.DateRange(future, nil), appErrors.ErrValidation)

	before := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.ErrorIs(t, v.DateRange(start, &before), appErrors.ErrValidation)

	end := time.Date(2024, time.December, 20, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, v.DateRange(start, &end))
}

func TestDateRangePastEndDateToggle(t *testing.T) {
	start := time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, time.December, 20, 0, 0, 0, 0, time.UTC)

	strict := New(WithClock(fixedClock))
	err := strict.DateRange(start, &end)
	var typed *appErrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, "End date cannot be before today", typed.Message)

	lenient := New(WithClock(fixedClock), WithRejectPastEndDate(false))
	assert.NoError(t, lenient.DateRange(start, &end))
}
