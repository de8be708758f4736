package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-admin-api/internal/models"
)

// AcademicYearRepository reads academic years.
type AcademicYearRepository struct {
	db *sqlx.DB
}

// NewAcademicYearRepository constructs the repository.
func NewAcademicYearRepository(db *sqlx.DB) *AcademicYearRepository {
	return &AcademicYearRepository{db: db}
}

// FindByID fetches an academic year of the institution.
func (r *AcademicYearRepository) FindByID(ctx context.Context, institutionID, id int64) (*models.AcademicYear, error) {
	const query = `SELECT id, institution_id, name, start_date, end_date, active FROM academic_years WHERE id = $1 AND institution_id = $2`
	var year models.AcademicYear
	if err := r.db.GetContext(ctx, &year, query, id, institutionID); err != nil {
		return nil, err
	}
	return &year, nil
}
