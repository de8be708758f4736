package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/patch"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

func TestConstraintOf(t *testing.T) {
	name, ok := ConstraintOf(&pq.Error{Code: "23505", Constraint: ConstraintSubjectCode})
	assert.True(t, ok)
	assert.Equal(t, ConstraintSubjectCode, name)

	_, ok = ConstraintOf(&pq.Error{Code: "23503", Constraint: "fk_course_subjects_subject"})
	assert.False(t, ok)

	_, ok = ConstraintOf(errors.New("boom"))
	assert.False(t, ok)
}

func TestBuildUpdate(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	query, args, err := buildUpdate("classrooms", classroomUpdatable,
		patch.Changes{{Column: "capacity", Value: 35}, {Column: "location", Value: nil}}, now,
		condition{"id", int64(3)}, condition{"institution_id", int64(1)})
	require.NoError(t, err)
	assert.Equal(t, "UPDATE classrooms SET capacity = $1, location = $2, updated_at = $3 WHERE id = $4 AND institution_id = $5", query)
	assert.Equal(t, []interface{}{35, nil, now, int64(3), int64(1)}, args)

	_, _, err = buildUpdate("classrooms", classroomUpdatable, nil, now, condition{"id", int64(3)})
	assert.Error(t, err)
}

func TestImportReportRepositoryWithoutRedis(t *testing.T) {
	repo := NewImportReportRepository(nil, nil)

	require.NoError(t, repo.Save(context.Background(), &models.ImportReport{BatchID: "b1"}, time.Minute))
	_, err := repo.Get(context.Background(), "b1")
	assert.ErrorIs(t, err, appErrors.ErrCacheMiss)
}
