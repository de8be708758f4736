package service

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/patch"
	"github.com/noah-isme/school-admin-api/internal/repository"
	"github.com/noah-isme/school-admin-api/internal/validation"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

var uniqueViolations = map[string]*appErrors.Error{
	repository.ConstraintTeacherEmail:      appErrors.ErrDuplicateEmail,
	repository.ConstraintTeacherIDNumber:   appErrors.ErrDuplicateIDNumber,
	repository.ConstraintClassroomKey:      appErrors.ErrClassroomAlreadyExists,
	repository.ConstraintSubjectName:       appErrors.ErrNameAlreadyExists,
	repository.ConstraintSubjectCode:       appErrors.ErrCodeAlreadyExists,
	repository.ConstraintCourseSubject:     appErrors.ErrCourseSubjectExists,
	repository.ConstraintClassroomTutor:    appErrors.ErrClassroomAlreadyHasTutor,
	repository.ConstraintTeacherAssignment: appErrors.ErrTeacherAlreadyAssigned,
}

var uniqueFields = map[string]string{
	repository.ConstraintTeacherEmail:    "email",
	repository.ConstraintTeacherIDNumber: "id_number",
	repository.ConstraintSubjectName:     "name",
	repository.ConstraintSubjectCode:     "code",
}

// UpdateResult is returned by partial updates. Changed is empty when the patch
// matched the stored row and nothing was written.
type UpdateResult[T any] struct {
	Data    T
	Changed []string
}

// HasChanges reports whether the update wrote anything.
func (r UpdateResult[T]) HasChanges() bool {
	return len(r.Changed) > 0
}

// translateUnique turns a unique index violation into its domain conflict.
func translateUnique(err error) (*appErrors.Error, bool) {
	constraint, ok := repository.ConstraintOf(err)
	if !ok {
		return nil, false
	}
	conflict, known := uniqueViolations[constraint]
	if !known {
		return nil, false
	}
	return appErrors.WithField(conflict, uniqueFields[constraint], ""), true
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// storageError logs err and returns the sanitized error callers may display.
// Lost connections surface as DATABASE_ERROR, everything else as MODEL_ERROR.
func storageError(logger *zap.Logger, err error, message string, fields ...zap.Field) error {
	logger.Error(message, append(fields, zap.Error(err))...)
	if unavailable(err) {
		return appErrors.Wrap(err, appErrors.ErrDatabase.Code, appErrors.ErrDatabase.Status, appErrors.ErrDatabase.Message)
	}
	return appErrors.Model(err, message)
}

func unavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// writeError translates a failed insert or update: unique violations become
// domain conflicts, anything else is a storage error.
func writeError(logger *zap.Logger, err error, message string, fields ...zap.Field) error {
	if conflict, ok := translateUnique(err); ok {
		logger.Info("unique constraint rejected write", append(fields, zap.String("code", conflict.Code))...)
		return conflict
	}
	return storageError(logger, err, message, fields...)
}

// validateChanges runs per-column rules over the changed, non-null values.
func validateChanges(v *validation.Validator, changes patch.Changes, rules map[string]string) error {
	for _, ch := range changes {
		rule, ok := rules[ch.Column]
		if !ok || ch.Value == nil {
			continue
		}
		if err := v.Var(ch.Column, ch.Value, rule); err != nil {
			return err
		}
	}
	return nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
