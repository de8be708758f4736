package models

import "time"

// Teacher represents an instructor record.
type Teacher struct {
	ID             int64     `db:"id" json:"id"`
	InstitutionID  int64     `db:"institution_id" json:"institution_id"`
	IDNumber       string    `db:"id_number" json:"id_number"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	Email          string    `db:"email" json:"email"`
	Phone          *string   `db:"phone" json:"phone,omitempty"`
	SecondaryPhone *string   `db:"secondary_phone" json:"secondary_phone,omitempty"`
	Active         bool      `db:"active" json:"active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// FullName joins first and last names.
func (t Teacher) FullName() string {
	return t.FirstName + " " + t.LastName
}

// TeacherFilter captures filtering options for listing teachers.
type TeacherFilter struct {
	Search string
	Active *bool
	PageRequest
}

// TeacherDeactivation reports how many dependent rows a cascading deactivation flipped.
type TeacherDeactivation struct {
	TeacherID         int64 `json:"teacher_id"`
	TutorshipsClosed  int64 `json:"tutorships_closed"`
	AssignmentsClosed int64 `json:"assignments_closed"`
}
