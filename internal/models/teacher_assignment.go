package models

import "time"

// TeacherAssignment links a teacher to a course subject for an academic year.
// At most one row per (teacher, course subject, academic year) is active.
type TeacherAssignment struct {
	ID              int64      `db:"id" json:"id"`
	TeacherID       int64      `db:"teacher_id" json:"teacher_id"`
	CourseSubjectID int64      `db:"course_subject_id" json:"course_subject_id"`
	AcademicYearID  int64      `db:"academic_year_id" json:"academic_year_id"`
	StartDate       time.Time  `db:"start_date" json:"start_date"`
	EndDate         *time.Time `db:"end_date" json:"end_date,omitempty"`
	Active          bool       `db:"active" json:"active"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// TeacherAssignmentDetail enriches assignments with descriptive fields.
type TeacherAssignmentDetail struct {
	TeacherAssignment
	SubjectName       string `db:"subject_name" json:"subject_name"`
	ClassroomGrade    string `db:"classroom_grade" json:"classroom_grade"`
	ClassroomParallel string `db:"classroom_parallel" json:"classroom_parallel"`
}
