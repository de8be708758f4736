package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-admin-api/internal/models"
)

const classroomTutorColumns = "ct.id, ct.classroom_id, ct.teacher_id, ct.academic_year_id, ct.start_date, ct.end_date, ct.notes, ct.active, ct.created_at, ct.updated_at"

// ClassroomTutorRepository persists tutorships. The partial unique index
// uq_classroom_tutors_active keeps one active tutor per classroom and year.
type ClassroomTutorRepository struct {
	db *sqlx.DB
}

// NewClassroomTutorRepository constructs the repository.
func NewClassroomTutorRepository(db *sqlx.DB) *ClassroomTutorRepository {
	return &ClassroomTutorRepository{db: db}
}

// ListByClassroom returns the tutorship history of a classroom for a year, active first.
func (r *ClassroomTutorRepository) ListByClassroom(ctx context.Context, classroomID, academicYearID int64) ([]models.ClassroomTutorDetail, error) {
	query := fmt.Sprintf(`
SELECT %s, t.first_name || ' ' || t.last_name AS teacher_name, c.grade AS classroom_grade, c.parallel AS classroom_parallel
FROM classroom_tutors ct
JOIN teachers t ON t.id = ct.teacher_id
JOIN classrooms c ON c.id = ct.classroom_id
WHERE ct.classroom_id = $1 AND ct.academic_year_id = $2
ORDER BY ct.active DESC, ct.start_date DESC, ct.id DESC`, classroomTutorColumns)
	items := []models.ClassroomTutorDetail{}
	if err := r.db.SelectContext(ctx, &items, query, classroomID, academicYearID); err != nil {
		return nil, fmt.Errorf("list classroom tutors: %w", err)
	}
	return items, nil
}

// FindByID fetches a tutorship whose classroom belongs to the institution.
func (r *ClassroomTutorRepository) FindByID(ctx context.Context, institutionID, id int64) (*models.ClassroomTutor, error) {
	query := fmt.Sprintf(`SELECT %s FROM classroom_tutors ct
JOIN classrooms c ON c.id = ct.classroom_id
WHERE ct.id = $1 AND c.institution_id = $2`, classroomTutorColumns)
	var tutor models.ClassroomTutor
	if err := r.db.GetContext(ctx, &tutor, query, id, institutionID); err != nil {
		return nil, err
	}
	return &tutor, nil
}

// HasActive reports whether the classroom already has an active tutor for the year.
func (r *ClassroomTutorRepository) HasActive(ctx context.Context, classroomID, academicYearID int64) (bool, error) {
	found, err := exists(ctx, r.db, "SELECT 1 FROM classroom_tutors WHERE classroom_id = $1 AND academic_year_id = $2 AND active", classroomID, academicYearID)
	if err != nil {
		return false, fmt.Errorf("check active tutor: %w", err)
	}
	return found, nil
}

// Create inserts an active tutorship. A concurrent second holder surfaces as a
// unique violation on ConstraintClassroomTutor.
func (r *ClassroomTutorRepository) Create(ctx context.Context, tutor *models.ClassroomTutor) error {
	if err := insertClassroomTutor(ctx, r.db, tutor); err != nil {
		return fmt.Errorf("create classroom tutor: %w", err)
	}
	return nil
}

// Deactivate flips exactly one active tutorship to inactive.
func (r *ClassroomTutorRepository) Deactivate(ctx context.Context, id int64) error {
	const query = `UPDATE classroom_tutors SET active = FALSE, updated_at = $2 WHERE id = $1 AND active`
	return deactivateOne(ctx, r.db, "classroom tutor", query, id, time.Now().UTC())
}

func insertClassroomTutor(ctx context.Context, q sqlx.QueryerContext, tutor *models.ClassroomTutor) error {
	const query = `INSERT INTO classroom_tutors (classroom_id, teacher_id, academic_year_id, start_date, end_date, notes, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	return q.QueryRowxContext(ctx, query,
		tutor.ClassroomID,
		tutor.TeacherID,
		tutor.AcademicYearID,
		tutor.StartDate,
		tutor.EndDate,
		tutor.Notes,
		tutor.Active,
	).Scan(&tutor.ID, &tutor.CreatedAt, &tutor.UpdatedAt)
}
