package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/school-admin-api/internal/patch"
)

// Partial unique indexes declared in migrations/0001_init.sql. Postgres reports the
// index name as the violated constraint.
const (
	ConstraintTeacherEmail      = "uq_teachers_active_email"
	ConstraintTeacherIDNumber   = "uq_teachers_active_id_number"
	ConstraintClassroomKey      = "uq_classrooms_active_key"
	ConstraintSubjectName       = "uq_subjects_active_name"
	ConstraintSubjectCode       = "uq_subjects_active_code"
	ConstraintCourseSubject     = "uq_course_subjects_active"
	ConstraintClassroomTutor    = "uq_classroom_tutors_active"
	ConstraintTeacherAssignment = "uq_teacher_assignments_active"
)

const uniqueViolation = pq.ErrorCode("23505")

// ErrInactive is returned when a deactivation targets a row that is already inactive.
var ErrInactive = errors.New("row already inactive")

// ConstraintOf returns the name of the unique constraint err violated.
func ConstraintOf(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	_, ok := ConstraintOf(err)
	return ok
}

type condition struct {
	column string
	value  interface{}
}

// buildUpdate renders a single UPDATE touching only the changed columns plus
// updated_at. Columns outside allowed are refused.
func buildUpdate(table string, allowed map[string]struct{}, changes patch.Changes, now time.Time, where ...condition) (string, []interface{}, error) {
	if !changes.HasChanges() {
		return "", nil, fmt.Errorf("update %s: no changes", table)
	}
	sets := make([]string, 0, len(changes)+1)
	args := make([]interface{}, 0, len(changes)+1+len(where))
	for _, ch := range changes {
		if _, ok := allowed[ch.Column]; !ok {
			return "", nil, fmt.Errorf("update %s: column %q is not updatable", table, ch.Column)
		}
		args = append(args, ch.Value)
		sets = append(sets, fmt.Sprintf("%s = $%d", ch.Column, len(args)))
	}
	args = append(args, now)
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)))

	conds := make([]string, 0, len(where))
	for _, w := range where {
		args = append(args, w.value)
		conds = append(conds, fmt.Sprintf("%s = $%d", w.column, len(args)))
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s", table, strings.Join(sets, ", "), strings.Join(conds, " AND "))
	return query, args, nil
}

func columnSet(cols ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		set[c] = struct{}{}
	}
	return set
}

// execAffectingOne runs a statement and maps zero affected rows to sql.ErrNoRows.
func execAffectingOne(ctx context.Context, exec sqlx.ExecerContext, query string, args ...interface{}) error {
	res, err := exec.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// selectPage runs the page query and the count query concurrently.
func selectPage[T any](ctx context.Context, db *sqlx.DB, query, countQuery string, args []interface{}) ([]T, int, error) {
	var (
		items []T
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return db.SelectContext(gctx, &items, query, args...)
	})
	g.Go(func() error {
		return db.GetContext(gctx, &total, countQuery, args...)
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []T{}
	}
	return items, total, nil
}

func exists(ctx context.Context, q sqlx.QueryerContext, query string, args ...interface{}) (bool, error) {
	var one int
	if err := sqlx.GetContext(ctx, q, &one, query+" LIMIT 1", args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// deactivateOne runs a guarded "SET active = FALSE ... AND active" statement.
func deactivateOne(ctx context.Context, exec sqlx.ExecerContext, entity, query string, args ...interface{}) error {
	if err := execAffectingOne(ctx, exec, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInactive
		}
		return fmt.Errorf("deactivate %s: %w", entity, err)
	}
	return nil
}
