package models

import "time"

// ClassroomTutor records the teacher responsible for a classroom during an
// academic year. At most one row per (classroom, academic year) is active.
type ClassroomTutor struct {
	ID             int64      `db:"id" json:"id"`
	ClassroomID    int64      `db:"classroom_id" json:"classroom_id"`
	TeacherID      int64      `db:"teacher_id" json:"teacher_id"`
	AcademicYearID int64      `db:"academic_year_id" json:"academic_year_id"`
	StartDate      time.Time  `db:"start_date" json:"start_date"`
	EndDate        *time.Time `db:"end_date" json:"end_date,omitempty"`
	Notes          *string    `db:"notes" json:"notes,omitempty"`
	Active         bool       `db:"active" json:"active"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// ClassroomTutorDetail enriches a tutorship with display names.
type ClassroomTutorDetail struct {
	ClassroomTutor
	TeacherName       string `db:"teacher_name" json:"teacher_name"`
	ClassroomGrade    string `db:"classroom_grade" json:"classroom_grade"`
	ClassroomParallel string `db:"classroom_parallel" json:"classroom_parallel"`
}
