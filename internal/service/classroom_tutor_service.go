package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/repository"
	"github.com/noah-isme/school-admin-api/internal/validation"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

type classroomTutorRepository interface {
	ListByClassroom(ctx context.Context, classroomID, academicYearID int64) ([]models.ClassroomTutorDetail, error)
	FindByID(ctx context.Context, institutionID, id int64) (*models.ClassroomTutor, error)
	HasActive(ctx context.Context, classroomID, academicYearID int64) (bool, error)
	Create(ctx context.Context, tutor *models.ClassroomTutor) error
	Deactivate(ctx context.Context, id int64) error
}

type teacherReader interface {
	FindByID(ctx context.Context, institutionID, id int64) (*models.Teacher, error)
}

// AssignTutorRequest makes a teacher the tutor of a classroom.
type AssignTutorRequest struct {
	ClassroomID int64   `json:"classroom_id"`
	TeacherID   int64   `json:"teacher_id"`
	StartDate   string  `json:"start_date" validate:"required"`
	EndDate     *string `json:"end_date"`
	Notes       *string `json:"notes" validate:"omitempty,max=500"`
}

// ClassroomTutorService keeps at most one active tutor per classroom and academic
// year. The repository's unique index settles concurrent assignments.
type ClassroomTutorService struct {
	repo       classroomTutorRepository
	classrooms classroomReader
	teachers   teacherReader
	validator  *validation.Validator
	logger     *zap.Logger
	metrics    *MetricsService
}

// NewClassroomTutorService constructs a ClassroomTutorService.
func NewClassroomTutorService(repo classroomTutorRepository, classrooms classroomReader, teachers teacherReader, validate *validation.Validator, logger *zap.Logger, metrics *MetricsService) *ClassroomTutorService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassroomTutorService{repo: repo, classrooms: classrooms, teachers: teachers, validator: validate, logger: logger, metrics: metrics}
}

// ListByClassroom returns the tutorships of a classroom for its academic year.
func (s *ClassroomTutorService) ListByClassroom(ctx context.Context, tenant models.TenantContext, classroomID int64) ([]models.ClassroomTutorDetail, error) {
	if !tenant.Valid() {
		return nil, appErrors.ErrInvalidTenant
	}
	if err := validation.ID(classroomID, appErrors.ErrInvalidClassroomID); err != nil {
		return nil, err
	}
	classroom, err := loadClassroom(ctx, s.classrooms, s.logger, tenant.InstitutionID, classroomID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListByClassroom(ctx, classroom.ID, classroom.AcademicYearID)
	if err != nil {
		return nil, storageError(s.logger, err, "failed to list classroom tutors", zap.Int64("classroom_id", classroomID))
	}
	return items, nil
}

// Assign makes the teacher the active tutor of the classroom for the classroom's
// academic year. A second active tutor is rejected with CLASSROOM_ALREADY_HAS_TUTOR.
func (s *ClassroomTutorService) Assign(ctx context.Context, tenant models.TenantContext, req AssignTutorRequest) (*models.ClassroomTutor, error) {
	if !tenant.Valid() {
		return nil, appErrors.ErrInvalidTenant
	}
	if err := validation.ID(req.ClassroomID, appErrors.ErrInvalidClassroomID); err != nil {
		return nil, err
	}
	if err := validation.ID(req.TeacherID, appErrors.ErrInvalidTeacherID); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	start, end, err := parseRange(s.validator, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	classroom, err := loadClassroom(ctx, s.classrooms, s.logger, tenant.InstitutionID, req.ClassroomID)
	if err != nil {
		return nil, err
	}
	if !classroom.Active {
		return nil, appErrors.Clone(appErrors.ErrClassroomNotFound, "classroom is inactive")
	}
	if _, err := loadActiveTeacher(ctx, s.teachers, s.logger, tenant.InstitutionID, req.TeacherID); err != nil {
		return nil, err
	}

	taken, err := s.repo.HasActive(ctx, classroom.ID, classroom.AcademicYearID)
	if err != nil {
		return nil, storageError(s.logger, err, "failed to check classroom tutor", zap.Int64("classroom_id", classroom.ID))
	}
	if taken {
		s.metrics.RecordConflict(appErrors.ErrClassroomAlreadyHasTutor.Code)
		return nil, appErrors.ErrClassroomAlreadyHasTutor
	}

	tutor := &models.ClassroomTutor{
		ClassroomID:    classroom.ID,
		TeacherID:      req.TeacherID,
		AcademicYearID: classroom.AcademicYearID,
		StartDate:      start,
		EndDate:        end,
		Notes:          trimOptional(req.Notes),
		Active:         true,
	}
	if err := s.repo.Create(ctx, tutor); err != nil {
		werr := writeError(s.logger, err, "failed to assign classroom tutor",
			zap.Int64("classroom_id", classroom.ID), zap.Int64("teacher_id", req.TeacherID))
		s.metrics.RecordConflict(appErrors.CodeOf(werr))
		return nil, werr
	}

	s.logger.Info("classroom tutor assigned",
		zap.Int64("classroom_tutor_id", tutor.ID),
		zap.Int64("classroom_id", classroom.ID),
		zap.Int64("teacher_id", req.TeacherID))
	return tutor, nil
}

// Deactivate ends a tutorship. Deactivating an inactive tutorship is ALREADY_INACTIVE.
func (s *ClassroomTutorService) Deactivate(ctx context.Context, tenant models.TenantContext, id int64) error {
	if !tenant.Valid() {
		return appErrors.ErrInvalidTenant
	}
	if err := validation.ID(id, appErrors.ErrInvalidTutorID); err != nil {
		return err
	}
	tutor, err := s.repo.FindByID(ctx, tenant.InstitutionID, id)
	if err != nil {
		if isNotFound(err) {
			return appErrors.ErrTutorNotFound
		}
		return storageError(s.logger, err, "failed to load classroom tutor", zap.Int64("classroom_tutor_id", id))
	}
	if !tutor.Active {
		return appErrors.Clone(appErrors.ErrAlreadyInactive, "classroom tutor is already inactive")
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrInactive) {
			return appErrors.Clone(appErrors.ErrAlreadyInactive, "classroom tutor is already inactive")
		}
		return storageError(s.logger, err, "failed to deactivate classroom tutor", zap.Int64("classroom_tutor_id", id))
	}
	s.metrics.RecordDeactivation("classroom_tutor", 1)
	return nil
}

func loadClassroom(ctx context.Context, repo classroomReader, logger *zap.Logger, institutionID, id int64) (*models.Classroom, error) {
	classroom, err := repo.FindByID(ctx, institutionID, id)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.ErrClassroomNotFound
		}
		return nil, storageError(logger, err, "failed to load classroom", zap.Int64("classroom_id", id))
	}
	return classroom, nil
}

func loadActiveTeacher(ctx context.Context, repo teacherReader, logger *zap.Logger, institutionID, id int64) (*models.Teacher, error) {
	teacher, err := repo.FindByID(ctx, institutionID, id)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.ErrTeacherNotFound
		}
		return nil, storageError(logger, err, "failed to load teacher", zap.Int64("teacher_id", id))
	}
	if !teacher.Active {
		return nil, appErrors.ErrTeacherInactive
	}
	return teacher, nil
}

// parseRange parses and checks a start date and optional end date.
func parseRange(v *validation.Validator, rawStart string, rawEnd *string) (time.Time, *time.Time, error) {
	start, err := validation.ParseDate("start_date", rawStart)
	if err != nil {
		return time.Time{}, nil, err
	}
	var end *time.Time
	if trimmed := trimOptional(rawEnd); trimmed != nil {
		parsed, err := validation.ParseDate("end_date", *trimmed)
		if err != nil {
			return time.Time{}, nil, err
		}
		end = &parsed
	}
	if err := v.DateRange(start, end); err != nil {
		return time.Time{}, nil, err
	}
	return start, end, nil
}
