package models

import "time"

// CourseSubject maps a subject onto a classroom with its weekly hour load.
type CourseSubject struct {
	ID          int64     `db:"id" json:"id"`
	ClassroomID int64     `db:"classroom_id" json:"classroom_id"`
	SubjectID   int64     `db:"subject_id" json:"subject_id"`
	WeeklyHours int       `db:"weekly_hours" json:"weekly_hours"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// CourseSubjectDetail includes subject info for responses.
type CourseSubjectDetail struct {
	CourseSubject
	SubjectName string `db:"subject_name" json:"subject_name"`
	SubjectCode string `db:"subject_code" json:"subject_code"`
}
