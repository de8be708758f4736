package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-admin-api/internal/models"
)

const teacherAssignmentColumns = "ta.id, ta.teacher_id, ta.course_subject_id, ta.academic_year_id, ta.start_date, ta.end_date, ta.active, ta.created_at, ta.updated_at"

// TeacherAssignmentRepository persists teacher x course subject assignments. The
// partial unique index uq_teacher_assignments_active keeps one active row per
// teacher, course subject and year.
type TeacherAssignmentRepository struct {
	db *sqlx.DB
}

// NewTeacherAssignmentRepository constructs the repository.
func NewTeacherAssignmentRepository(db *sqlx.DB) *TeacherAssignmentRepository {
	return &TeacherAssignmentRepository{db: db}
}

// ListByTeacher returns a teacher's assignments for a year.
func (r *TeacherAssignmentRepository) ListByTeacher(ctx context.Context, teacherID, academicYearID int64) ([]models.TeacherAssignmentDetail, error) {
	query := fmt.Sprintf(`
SELECT %s, s.name AS subject_name, c.grade AS classroom_grade, c.parallel AS classroom_parallel
FROM teacher_assignments ta
JOIN course_subjects cs ON cs.id = ta.course_subject_id
JOIN subjects s ON s.id = cs.subject_id
JOIN classrooms c ON c.id = cs.classroom_id
WHERE ta.teacher_id = $1 AND ta.academic_year_id = $2
ORDER BY ta.active DESC, c.grade ASC, c.parallel ASC, s.name ASC`, teacherAssignmentColumns)
	items := []models.TeacherAssignmentDetail{}
	if err := r.db.SelectContext(ctx, &items, query, teacherID, academicYearID); err != nil {
		return nil, fmt.Errorf("list teacher assignments: %w", err)
	}
	return items, nil
}

// FindByID fetches an assignment whose teacher belongs to the institution.
func (r *TeacherAssignmentRepository) FindByID(ctx context.Context, institutionID, id int64) (*models.TeacherAssignment, error) {
	query := fmt.Sprintf(`SELECT %s FROM teacher_assignments ta
JOIN teachers t ON t.id = ta.teacher_id
WHERE ta.id = $1 AND t.institution_id = $2`, teacherAssignmentColumns)
	var assignment models.TeacherAssignment
	if err := r.db.GetContext(ctx, &assignment, query, id, institutionID); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// HasActive reports whether the teacher already holds the course subject for the year.
func (r *TeacherAssignmentRepository) HasActive(ctx context.Context, teacherID, courseSubjectID, academicYearID int64) (bool, error) {
	found, err := exists(ctx, r.db,
		"SELECT 1 FROM teacher_assignments WHERE teacher_id = $1 AND course_subject_id = $2 AND academic_year_id = $3 AND active",
		teacherID, courseSubjectID, academicYearID)
	if err != nil {
		return false, fmt.Errorf("check active assignment: %w", err)
	}
	return found, nil
}

// Create inserts an active assignment.
func (r *TeacherAssignmentRepository) Create(ctx context.Context, assignment *models.TeacherAssignment) error {
	if err := insertTeacherAssignment(ctx, r.db, assignment); err != nil {
		return fmt.Errorf("create teacher assignment: %w", err)
	}
	return nil
}

// Deactivate flips exactly one active assignment to inactive.
func (r *TeacherAssignmentRepository) Deactivate(ctx context.Context, id int64) error {
	const query = `UPDATE teacher_assignments SET active = FALSE, updated_at = $2 WHERE id = $1 AND active`
	return deactivateOne(ctx, r.db, "teacher assignment", query, id, time.Now().UTC())
}

func insertTeacherAssignment(ctx context.Context, q sqlx.QueryerContext, assignment *models.TeacherAssignment) error {
	const query = `INSERT INTO teacher_assignments (teacher_id, course_subject_id, academic_year_id, start_date, end_date, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	return q.QueryRowxContext(ctx, query,
		assignment.TeacherID,
		assignment.CourseSubjectID,
		assignment.AcademicYearID,
		assignment.StartDate,
		assignment.EndDate,
		assignment.Active,
	).Scan(&assignment.ID, &assignment.CreatedAt, &assignment.UpdatedAt)
}
