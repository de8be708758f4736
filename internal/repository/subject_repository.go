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

const subjectColumns = "id, name, code, description, active, created_at, updated_at"

var subjectUpdatable = columnSet("name", "code", "description", "active")

// SubjectRepository provides persistence for subjects.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository constructs a SubjectRepository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// List returns subjects matching filter along with the total count.
func (r *SubjectRepository) List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, int, error) {
	base := "FROM subjects WHERE 1=1"
	var args []interface{}

	if filter.Active != nil {
		args = append(args, *filter.Active)
		base += fmt.Sprintf(" AND active = $%d", len(args))
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		args = append(args, search.Pattern(search.Fold(term)))
		base += " AND " + search.Predicate(fmt.Sprintf("$%d", len(args)), "name", "code")
	}

	page := filter.PageRequest.Normalize()
	query := fmt.Sprintf("SELECT %s %s ORDER BY name ASC, id ASC LIMIT %d OFFSET %d", subjectColumns, base, page.Limit, page.Offset())
	countQuery := "SELECT COUNT(*) " + base

	subjects, total, err := selectPage[models.Subject](ctx, r.db, query, countQuery, args)
	if err != nil {
		return nil, 0, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, total, nil
}

// FindByID fetches a subject.
func (r *SubjectRepository) FindByID(ctx context.Context, id int64) (*models.Subject, error) {
	query := fmt.Sprintf("SELECT %s FROM subjects WHERE id = $1", subjectColumns)
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, id); err != nil {
		return nil, err
	}
	return &subject, nil
}

// ExistsActiveByName checks whether another active subject carries name.
func (r *SubjectRepository) ExistsActiveByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM subjects WHERE active AND UPPER(name) = UPPER($1)"
	args := []interface{}{name}
	if excludeID > 0 {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	found, err := exists(ctx, r.db, query, args...)
	if err != nil {
		return false, fmt.Errorf("check subject name: %w", err)
	}
	return found, nil
}

// ExistsActiveByCode checks whether another active subject carries code.
func (r *SubjectRepository) ExistsActiveByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM subjects WHERE active AND code = $1"
	args := []interface{}{code}
	if excludeID > 0 {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	found, err := exists(ctx, r.db, query, args...)
	if err != nil {
		return false, fmt.Errorf("check subject code: %w", err)
	}
	return found, nil
}

// Create inserts a new subject.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	const query = `INSERT INTO subjects (name, code, description, active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowxContext(ctx, query, subject.Name, subject.Code, subject.Description, subject.Active).
		Scan(&subject.ID, &subject.CreatedAt, &subject.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create subject: %w", err)
	}
	return nil
}

// UpdateFields writes only the changed columns of a subject.
func (r *SubjectRepository) UpdateFields(ctx context.Context, id int64, changes patch.Changes) error {
	query, args, err := buildUpdate("subjects", subjectUpdatable, changes, time.Now().UTC(), condition{"id", id})
	if err != nil {
		return err
	}
	if err := execAffectingOne(ctx, r.db, query, args...); err != nil {
		return fmt.Errorf("update subject: %w", err)
	}
	return nil
}

// Deactivate soft-deletes an active subject.
func (r *SubjectRepository) Deactivate(ctx context.Context, id int64) error {
	const query = `UPDATE subjects SET active = FALSE, updated_at = $2 WHERE id = $1 AND active`
	return deactivateOne(ctx, r.db, "subject", query, id, time.Now().UTC())
}
