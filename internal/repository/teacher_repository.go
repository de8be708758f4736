package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/patch"
	"github.com/noah-isme/school-admin-api/internal/search"
	"github.com/noah-isme/school-admin-api/pkg/database"
)

const teacherColumns = "id, institution_id, id_number, first_name, last_name, email, phone, secondary_phone, active, created_at, updated_at"

var teacherUpdatable = columnSet("id_number", "first_name", "last_name", "email", "phone", "secondary_phone", "active")

// TeacherRepository manages persistence for teachers.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// List returns the institution's teachers matching filter along with the total count.
func (r *TeacherRepository) List(ctx context.Context, institutionID int64, filter models.TeacherFilter) ([]models.Teacher, int, error) {
	base := "FROM teachers WHERE institution_id = $1"
	args := []interface{}{institutionID}

	if filter.Active != nil {
		args = append(args, *filter.Active)
		base += fmt.Sprintf(" AND active = $%d", len(args))
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		args = append(args, search.Pattern(search.Fold(term)))
		base += " AND " + search.Predicate(fmt.Sprintf("$%d", len(args)), "first_name || ' ' || last_name", "id_number", "email")
	}

	page := filter.PageRequest.Normalize()
	query := fmt.Sprintf("SELECT %s %s ORDER BY last_name ASC, first_name ASC, id ASC LIMIT %d OFFSET %d", teacherColumns, base, page.Limit, page.Offset())
	countQuery := "SELECT COUNT(*) " + base

	teachers, total, err := selectPage[models.Teacher](ctx, r.db, query, countQuery, args)
	if err != nil {
		return nil, 0, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, total, nil
}

// ListAll returns every teacher of the institution, used for roster exports.
func (r *TeacherRepository) ListAll(ctx context.Context, institutionID int64, activeOnly bool) ([]models.Teacher, error) {
	query := fmt.Sprintf("SELECT %s FROM teachers WHERE institution_id = $1", teacherColumns)
	if activeOnly {
		query += " AND active"
	}
	query += " ORDER BY last_name ASC, first_name ASC, id ASC"

	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, query, institutionID); err != nil {
		return nil, fmt.Errorf("list all teachers: %w", err)
	}
	return teachers, nil
}

// FindByID fetches a teacher of the institution.
func (r *TeacherRepository) FindByID(ctx context.Context, institutionID, id int64) (*models.Teacher, error) {
	query := fmt.Sprintf("SELECT %s FROM teachers WHERE id = $1 AND institution_id = $2", teacherColumns)
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, id, institutionID); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// ExistsActiveByEmail checks whether another active teacher uses email.
func (r *TeacherRepository) ExistsActiveByEmail(ctx context.Context, institutionID int64, email string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM teachers WHERE institution_id = $1 AND active AND LOWER(email) = LOWER($2)"
	args := []interface{}{institutionID, email}
	if excludeID > 0 {
		query += " AND id <> $3"
		args = append(args, excludeID)
	}
	found, err := exists(ctx, r.db, query, args...)
	if err != nil {
		return false, fmt.Errorf("check teacher email: %w", err)
	}
	return found, nil
}

// ExistsActiveByIDNumber checks whether another active teacher uses idNumber.
func (r *TeacherRepository) ExistsActiveByIDNumber(ctx context.Context, institutionID int64, idNumber string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM teachers WHERE institution_id = $1 AND active AND id_number = $2"
	args := []interface{}{institutionID, idNumber}
	if excludeID > 0 {
		query += " AND id <> $3"
		args = append(args, excludeID)
	}
	found, err := exists(ctx, r.db, query, args...)
	if err != nil {
		return false, fmt.Errorf("check teacher id number: %w", err)
	}
	return found, nil
}

// Create inserts a new teacher record.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	if err := insertTeacher(ctx, r.db, teacher); err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	return nil
}

// CreateWithAssignments inserts the teacher and, when given, its tutorship and
// subject assignment in one transaction. Any failure rolls back every insert.
func (r *TeacherRepository) CreateWithAssignments(ctx context.Context, teacher *models.Teacher, tutor *models.ClassroomTutor, assignment *models.TeacherAssignment) error {
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := insertTeacher(ctx, tx, teacher); err != nil {
			return fmt.Errorf("create teacher: %w", err)
		}
		if tutor != nil {
			tutor.TeacherID = teacher.ID
			if err := insertClassroomTutor(ctx, tx, tutor); err != nil {
				return fmt.Errorf("create classroom tutor: %w", err)
			}
		}
		if assignment != nil {
			assignment.TeacherID = teacher.ID
			if err := insertTeacherAssignment(ctx, tx, assignment); err != nil {
				return fmt.Errorf("create teacher assignment: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		teacher.ID = 0
	}
	return err
}

// UpdateFields writes only the changed columns of a teacher.
func (r *TeacherRepository) UpdateFields(ctx context.Context, institutionID, id int64, changes patch.Changes) error {
	query, args, err := buildUpdate("teachers", teacherUpdatable, changes, time.Now().UTC(),
		condition{"id", id}, condition{"institution_id", institutionID})
	if err != nil {
		return err
	}
	if err := execAffectingOne(ctx, r.db, query, args...); err != nil {
		return fmt.Errorf("update teacher: %w", err)
	}
	return nil
}

// DeactivateCascade flips the teacher and every active tutorship and subject
// assignment it owns to inactive in one transaction.
func (r *TeacherRepository) DeactivateCascade(ctx context.Context, institutionID, id int64) (*models.TeacherDeactivation, error) {
	result := &models.TeacherDeactivation{TeacherID: id}
	now := time.Now().UTC()

	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var active bool
		if err := tx.GetContext(ctx, &active, `SELECT active FROM teachers WHERE id = $1 AND institution_id = $2 FOR UPDATE`, id, institutionID); err != nil {
			return err
		}
		if !active {
			return ErrInactive
		}

		res, err := tx.ExecContext(ctx, `UPDATE classroom_tutors SET active = FALSE, updated_at = $2 WHERE teacher_id = $1 AND active`, id, now)
		if err != nil {
			return fmt.Errorf("deactivate tutorships: %w", err)
		}
		if result.TutorshipsClosed, err = res.RowsAffected(); err != nil {
			return err
		}

		res, err = tx.ExecContext(ctx, `UPDATE teacher_assignments SET active = FALSE, updated_at = $2 WHERE teacher_id = $1 AND active`, id, now)
		if err != nil {
			return fmt.Errorf("deactivate assignments: %w", err)
		}
		if result.AssignmentsClosed, err = res.RowsAffected(); err != nil {
			return err
		}

		if err := execAffectingOne(ctx, tx, `UPDATE teachers SET active = FALSE, updated_at = $3 WHERE id = $1 AND institution_id = $2 AND active`, id, institutionID, now); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrInactive
			}
			return fmt.Errorf("deactivate teacher: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func insertTeacher(ctx context.Context, q sqlx.QueryerContext, teacher *models.Teacher) error {
	const query = `INSERT INTO teachers (institution_id, id_number, first_name, last_name, email, phone, secondary_phone, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	return q.QueryRowxContext(ctx, query,
		teacher.InstitutionID,
		teacher.IDNumber,
		teacher.FirstName,
		teacher.LastName,
		teacher.Email,
		teacher.Phone,
		teacher.SecondaryPhone,
		teacher.Active,
	).Scan(&teacher.ID, &teacher.CreatedAt, &teacher.UpdatedAt)
}
