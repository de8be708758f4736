package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/patch"
	"github.com/noah-isme/school-admin-api/internal/search"
)

const classroomColumns = "id, institution_id, academic_year_id, grade, parallel, schedule, capacity, location, active, created_at, updated_at"

var classroomUpdatable = columnSet("grade", "parallel", "schedule", "capacity", "location", "active")

// ClassroomRepository manages persistence for classrooms.
type ClassroomRepository struct {
	db *sqlx.DB
}

// NewClassroomRepository constructs a ClassroomRepository.
func NewClassroomRepository(db *sqlx.DB) *ClassroomRepository {
	return &ClassroomRepository{db: db}
}

// List returns the tenant's classrooms matching filter along with the total count.
func (r *ClassroomRepository) List(ctx context.Context, tenant models.TenantContext, filter models.ClassroomFilter) ([]models.Classroom, int, error) {
	base := "FROM classrooms WHERE institution_id = $1 AND academic_year_id = $2"
	args := []interface{}{tenant.InstitutionID, tenant.AcademicYearID}

	if filter.Active != nil {
		args = append(args, *filter.Active)
		base += fmt.Sprintf(" AND active = $%d", len(args))
	}
	if filter.Schedule != "" {
		args = append(args, string(filter.Schedule))
		base += fmt.Sprintf(" AND schedule = $%d", len(args))
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		args = append(args, search.Pattern(search.Fold(term)))
		base += " AND " + search.Predicate(fmt.Sprintf("$%d", len(args)), "grade || ' ' || parallel", "COALESCE(location, '')")
	}

	page := filter.PageRequest.Normalize()
	query := fmt.Sprintf("SELECT %s %s ORDER BY grade ASC, parallel ASC, id ASC LIMIT %d OFFSET %d", classroomColumns, base, page.Limit, page.Offset())
	countQuery := "SELECT COUNT(*) " + base

	classrooms, total, err := selectPage[models.Classroom](ctx, r.db, query, countQuery, args)
	if err != nil {
		return nil, 0, fmt.Errorf("list classrooms: %w", err)
	}
	return classrooms, total, nil
}

// FindByID fetches a classroom belonging to the tenant's institution.
func (r *ClassroomRepository) FindByID(ctx context.Context, institutionID, id int64) (*models.Classroom, error) {
	query := fmt.Sprintf("SELECT %s FROM classrooms WHERE id = $1 AND institution_id = $2", classroomColumns)
	var classroom models.Classroom
	if err := r.db.GetContext(ctx, &classroom, query, id, institutionID); err != nil {
		return nil, err
	}
	return &classroom, nil
}

// ExistsActiveKey checks whether another active classroom of the tenant uses the
// same grade and parallel.
func (r *ClassroomRepository) ExistsActiveKey(ctx context.Context, tenant models.TenantContext, grade, parallel string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM classrooms WHERE institution_id = $1 AND academic_year_id = $2 AND active AND UPPER(grade) = UPPER($3) AND UPPER(parallel) = UPPER($4)"
	args := []interface{}{tenant.InstitutionID, tenant.AcademicYearID, grade, parallel}
	if excludeID > 0 {
		query += " AND id <> $5"
		args = append(args, excludeID)
	}
	found, err := exists(ctx, r.db, query, args...)
	if err != nil {
		return false, fmt.Errorf("check classroom key: %w", err)
	}
	return found, nil
}

// Create inserts a new classroom.
func (r *ClassroomRepository) Create(ctx context.Context, classroom *models.Classroom) error {
	const query = `INSERT INTO classrooms (institution_id, academic_year_id, grade, parallel, schedule, capacity, location, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowxContext(ctx, query,
		classroom.InstitutionID,
		classroom.AcademicYearID,
		classroom.Grade,
		classroom.Parallel,
		string(classroom.Schedule),
		classroom.Capacity,
		classroom.Location,
		classroom.Active,
	).Scan(&classroom.ID, &classroom.CreatedAt, &classroom.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create classroom: %w", err)
	}
	return nil
}

// UpdateFields writes only the changed columns of a classroom.
func (r *ClassroomRepository) UpdateFields(ctx context.Context, institutionID, id int64, changes patch.Changes) error {
	query, args, err := buildUpdate("classrooms", classroomUpdatable, changes, time.Now().UTC(),
		condition{"id", id}, condition{"institution_id", institutionID})
	if err != nil {
		return err
	}
	if err := execAffectingOne(ctx, r.db, query, args...); err != nil {
		return fmt.Errorf("update classroom: %w", err)
	}
	return nil
}

// Deactivate soft-deletes an active classroom. ErrInactive is returned when no
// active row matched.
func (r *ClassroomRepository) Deactivate(ctx context.Context, institutionID, id int64) error {
	const query = `UPDATE classrooms SET active = FALSE, updated_at = $3 WHERE id = $1 AND institution_id = $2 AND active`
	return deactivateOne(ctx, r.db, "classroom", query, id, institutionID, time.Now().UTC())
}
