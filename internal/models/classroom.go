package models

import "time"

// Schedule is the shift a classroom attends.
type Schedule string

const (
	ScheduleMorning   Schedule = "MORNING"
	ScheduleAfternoon Schedule = "AFTERNOON"
	ScheduleEvening   Schedule = "EVENING"
)

// Schedules lists every accepted shift.
var Schedules = []Schedule{ScheduleMorning, ScheduleAfternoon, ScheduleEvening}

// Classroom is one grade/parallel section within an institution and academic year.
type Classroom struct {
	ID             int64     `db:"id" json:"id"`
	InstitutionID  int64     `db:"institution_id" json:"institution_id"`
	AcademicYearID int64     `db:"academic_year_id" json:"academic_year_id"`
	Grade          string    `db:"grade" json:"grade"`
	Parallel       string    `db:"parallel" json:"parallel"`
	Schedule       Schedule  `db:"schedule" json:"schedule"`
	Capacity       int       `db:"capacity" json:"capacity"`
	Location       *string   `db:"location" json:"location,omitempty"`
	Active         bool      `db:"active" json:"active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Name renders the display name, e.g. "8 A".
func (c Classroom) Name() string {
	return c.Grade + " " + c.Parallel
}

// ClassroomFilter defines filter criteria for listing classrooms.
type ClassroomFilter struct {
	Search   string
	Schedule Schedule
	Active   *bool
	PageRequest
}

// Valid reports whether s is one of the accepted shifts.
func (s Schedule) Valid() bool {
	for _, candidate := range Schedules {
		if s == candidate {
			return true
		}
	}
	return false
}

// ScheduleNames returns the accepted shifts as strings.
func ScheduleNames() []string {
	names := make([]string, len(Schedules))
	for i, s := range Schedules {
		names[i] = string(s)
	}
	return names
}
