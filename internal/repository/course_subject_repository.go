package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/patch"
)

const courseSubjectColumns = "cs.id, cs.classroom_id, cs.subject_id, cs.weekly_hours, cs.active, cs.created_at, cs.updated_at"

var courseSubjectUpdatable = columnSet("weekly_hours", "active")

// CourseSubjectRepository manages classroom x subject mappings.
type CourseSubjectRepository struct {
	db *sqlx.DB
}

// NewCourseSubjectRepository creates a new repository.
func NewCourseSubjectRepository(db *sqlx.DB) *CourseSubjectRepository {
	return &CourseSubjectRepository{db: db}
}

// ListByClassroom returns the subjects taught in a classroom.
func (r *CourseSubjectRepository) ListByClassroom(ctx context.Context, classroomID int64) ([]models.CourseSubjectDetail, error) {
	query := fmt.Sprintf(`
SELECT %s, s.name AS subject_name, s.code AS subject_code
FROM course_subjects cs
JOIN subjects s ON s.id = cs.subject_id
WHERE cs.classroom_id = $1
ORDER BY s.name ASC, cs.id ASC`, courseSubjectColumns)
	items := []models.CourseSubjectDetail{}
	if err := r.db.SelectContext(ctx, &items, query, classroomID); err != nil {
		return nil, fmt.Errorf("list course subjects: %w", err)
	}
	return items, nil
}

// FindByID fetches a course subject whose classroom belongs to the institution.
func (r *CourseSubjectRepository) FindByID(ctx context.Context, institutionID, id int64) (*models.CourseSubject, error) {
	query := fmt.Sprintf(`SELECT %s FROM course_subjects cs
JOIN classrooms c ON c.id = cs.classroom_id
WHERE cs.id = $1 AND c.institution_id = $2`, courseSubjectColumns)
	var item models.CourseSubject
	if err := r.db.GetContext(ctx, &item, query, id, institutionID); err != nil {
		return nil, err
	}
	return &item, nil
}

// ExistsActive checks whether the classroom already has the subject active.
func (r *CourseSubjectRepository) ExistsActive(ctx context.Context, classroomID, subjectID, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM course_subjects WHERE classroom_id = $1 AND subject_id = $2 AND active"
	args := []interface{}{classroomID, subjectID}
	if excludeID > 0 {
		query += " AND id <> $3"
		args = append(args, excludeID)
	}
	found, err := exists(ctx, r.db, query, args...)
	if err != nil {
		return false, fmt.Errorf("check course subject: %w", err)
	}
	return found, nil
}

// Create inserts a course subject.
func (r *CourseSubjectRepository) Create(ctx context.Context, item *models.CourseSubject) error {
	const query = `INSERT INTO course_subjects (classroom_id, subject_id, weekly_hours, active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowxContext(ctx, query, item.ClassroomID, item.SubjectID, item.WeeklyHours, item.Active).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create course subject: %w", err)
	}
	return nil
}

// UpdateFields writes only the changed columns of a course subject.
func (r *CourseSubjectRepository) UpdateFields(ctx context.Context, id int64, changes patch.Changes) error {
	query, args, err := buildUpdate("course_subjects", courseSubjectUpdatable, changes, time.Now().UTC(), condition{"id", id})
	if err != nil {
		return err
	}
	if err := execAffectingOne(ctx, r.db, query, args...); err != nil {
		return fmt.Errorf("update course subject: %w", err)
	}
	return nil
}

// Delete removes the mapping row outright. Inactive assignments referencing it
// are removed by the ON DELETE CASCADE foreign key.
func (r *CourseSubjectRepository) Delete(ctx context.Context, id int64) error {
	if err := execAffectingOne(ctx, r.db, `DELETE FROM course_subjects WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete course subject: %w", err)
	}
	return nil
}

// CountActiveAssignments counts active teacher assignments on the course subject.
func (r *CourseSubjectRepository) CountActiveAssignments(ctx context.Context, id int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM teacher_assignments WHERE course_subject_id = $1 AND active`, id); err != nil {
		return 0, fmt.Errorf("count course subject assignments: %w", err)
	}
	return count, nil
}
