package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors sharing the same code so callers can use errors.Is against the
// predefined values below even after Clone or WithField.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Input validation.
var (
	ErrValidation           = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrMissingRequired      = New("MISSING_REQUIRED_FIELDS", http.StatusBadRequest, "missing required fields")
	ErrInvalidField         = New("INVALID_FIELD", http.StatusBadRequest, "invalid field")
	ErrInvalidTenant        = New("INVALID_TENANT", http.StatusBadRequest, "institution and academic year are required")
	ErrInvalidTeacherID     = New("INVALID_TEACHER_ID", http.StatusBadRequest, "teacher id must be a positive integer")
	ErrInvalidClassroomID   = New("INVALID_CLASSROOM_ID", http.StatusBadRequest, "classroom id must be a positive integer")
	ErrInvalidSubjectID     = New("INVALID_SUBJECT_ID", http.StatusBadRequest, "subject id must be a positive integer")
	ErrInvalidCourseSubject = New("INVALID_COURSE_SUBJECT_ID", http.StatusBadRequest, "course subject id must be a positive integer")
	ErrInvalidTutorID       = New("INVALID_CLASSROOM_TUTOR_ID", http.StatusBadRequest, "classroom tutor id must be a positive integer")
	ErrInvalidAssignmentID  = New("INVALID_ASSIGNMENT_ID", http.StatusBadRequest, "assignment id must be a positive integer")
)

// Conflicts.
var (
	ErrDuplicateEmail           = New("DUPLICATE_EMAIL", http.StatusConflict, "email already registered to another active teacher")
	ErrDuplicateIDNumber        = New("DUPLICATE_ID_NUMBER", http.StatusConflict, "id number already registered to another active teacher")
	ErrCodeAlreadyExists        = New("CODE_ALREADY_EXISTS", http.StatusConflict, "a subject with this code already exists")
	ErrNameAlreadyExists        = New("NAME_ALREADY_EXISTS", http.StatusConflict, "a subject with this name already exists")
	ErrClassroomAlreadyExists   = New("CLASSROOM_ALREADY_EXISTS", http.StatusConflict, "a classroom with this grade and parallel already exists")
	ErrCourseSubjectExists      = New("COURSE_SUBJECT_ALREADY_EXISTS", http.StatusConflict, "subject already assigned to this classroom")
	ErrClassroomAlreadyHasTutor = New("CLASSROOM_ALREADY_HAS_TUTOR", http.StatusConflict, "classroom already has an active tutor for this academic year")
	ErrTeacherAlreadyAssigned   = New("TEACHER_ALREADY_ASSIGNED", http.StatusConflict, "teacher already assigned to this course subject for this academic year")
	ErrAlreadyInactive          = New("ALREADY_INACTIVE", http.StatusConflict, "record is already inactive")
	ErrTeacherInactive          = New("TEACHER_INACTIVE", http.StatusConflict, "teacher is inactive")
	ErrCourseSubjectInUse       = New("COURSE_SUBJECT_IN_USE", http.StatusConflict, "course subject still has active teacher assignments")
)

// Not found.
var (
	ErrNotFound              = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrTeacherNotFound       = New("TEACHER_NOT_FOUND", http.StatusNotFound, "teacher not found")
	ErrClassroomNotFound     = New("CLASSROOM_NOT_FOUND", http.StatusNotFound, "classroom not found")
	ErrSubjectNotFound       = New("SUBJECT_NOT_FOUND", http.StatusNotFound, "subject not found")
	ErrCourseSubjectNotFound = New("COURSE_SUBJECT_NOT_FOUND", http.StatusNotFound, "course subject not found")
	ErrTutorNotFound         = New("CLASSROOM_TUTOR_NOT_FOUND", http.StatusNotFound, "classroom tutor not found")
	ErrAssignmentNotFound    = New("ASSIGNMENT_NOT_FOUND", http.StatusNotFound, "teacher assignment not found")
	ErrAcademicYearNotFound  = New("ACADEMIC_YEAR_NOT_FOUND", http.StatusNotFound, "academic year not found")
	ErrImportNotFound        = New("IMPORT_NOT_FOUND", http.StatusNotFound, "import report not found or expired")
)

// Access and infrastructure.
var (
	ErrUnauthorized = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrForbidden    = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrModel        = New("MODEL_ERROR", http.StatusInternalServerError, "the data store could not complete the operation")
	ErrService      = New("SERVICE_ERROR", http.StatusInternalServerError, "the operation could not be completed")
	ErrDatabase     = New("DATABASE_ERROR", http.StatusInternalServerError, "the database is unavailable")
	ErrCacheMiss    = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// StatusFor maps a taxonomy code to its HTTP status.
func StatusFor(code string) int {
	switch {
	case code == "":
		return http.StatusInternalServerError
	case code == "UNAUTHORIZED":
		return http.StatusUnauthorized
	case code == "FORBIDDEN":
		return http.StatusForbidden
	case code == "NOT_FOUND", strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasPrefix(code, "DUPLICATE_"),
		strings.HasSuffix(code, "_ALREADY_EXISTS"),
		code == "CLASSROOM_ALREADY_HAS_TUTOR",
		code == "TEACHER_ALREADY_ASSIGNED",
		code == "ALREADY_INACTIVE",
		code == "TEACHER_INACTIVE",
		strings.HasSuffix(code, "_IN_USE"):
		return http.StatusConflict
	case code == "VALIDATION_ERROR",
		code == "MISSING_REQUIRED_FIELDS",
		strings.HasPrefix(code, "INVALID_"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// FromError normalises any error into an *Error. Anything that is not already typed
// becomes a SERVICE_ERROR so raw driver messages never reach a response.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Status == 0 {
			clone := *e
			clone.Status = StatusFor(e.Code)
			return &clone
		}
		return e
	}
	return Wrap(err, ErrService.Code, ErrService.Status, ErrService.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// WithField returns a copy of err naming the offending field.
func WithField(err *Error, field, message string) *Error {
	clone := Clone(err, message)
	if clone != nil {
		clone.Field = field
	}
	return clone
}

// Model wraps a storage failure.
func Model(err error, message string) *Error {
	return Wrap(err, ErrModel.Code, ErrModel.Status, message)
}

// Service wraps an orchestration failure.
func Service(err error, message string) *Error {
	return Wrap(err, ErrService.Code, ErrService.Status, message)
}

// CodeOf returns the taxonomy code carried by err, or "" when err is untyped.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
