package models

import "time"

// AcademicYear models a school year within an institution calendar.
type AcademicYear struct {
	ID            int64     `db:"id" json:"id"`
	InstitutionID int64     `db:"institution_id" json:"institution_id"`
	Name          string    `db:"name" json:"name"`
	StartDate     time.Time `db:"start_date" json:"start_date"`
	EndDate       time.Time `db:"end_date" json:"end_date"`
	Active        bool      `db:"active" json:"active"`
}
