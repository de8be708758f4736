package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/repository"
	"github.com/noah-isme/school-admin-api/internal/validation"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

type teacherAssignmentRepository interface {
	ListByTeacher(ctx context.Context, teacherID, academicYearID int64) ([]models.TeacherAssignmentDetail, error)
	FindByID(ctx context.Context, institutionID, id int64) (*models.TeacherAssignment, error)
	HasActive(ctx context.Context, teacherID, courseSubjectID, academicYearID int64) (bool, error)
	Create(ctx context.Context, assignment *models.TeacherAssignment) error
	Deactivate(ctx context.Context, id int64) error
}

type academicYearReader interface {
	FindByID(ctx context.Context, institutionID, id int64) (*models.AcademicYear, error)
}

// AssignTeacherRequest makes a teacher responsible for a course subject.
type AssignTeacherRequest struct {
	TeacherID       int64   `json:"teacher_id"`
	CourseSubjectID int64   `json:"course_subject_id"`
	StartDate       string  `json:"start_date" validate:"required"`
	EndDate         *string `json:"end_date"`
}

// TeacherAssignmentService keeps at most one active assignment per teacher,
// course subject and academic year.
type TeacherAssignmentService struct {
	repo           teacherAssignmentRepository
	teachers       teacherReader
	courseSubjects courseSubjectReader
	years          academicYearReader
	validator      *validation.Validator
	logger         *zap.Logger
	metrics        *MetricsService
}

// NewTeacherAssignmentService constructs a TeacherAssignmentService.
func NewTeacherAssignmentService(repo teacherAssignmentRepository, teachers teacherReader, courseSubjects courseSubjectReader, years academicYearReader, validate *validation.Validator, logger *zap.Logger, metrics *MetricsService) *TeacherAssignmentService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherAssignmentService{
		repo:           repo,
		teachers:       teachers,
		courseSubjects: courseSubjects,
		years:          years,
		validator:      validate,
		logger:         logger,
		metrics:        metrics,
	}
}

// ListByTeacher returns the teacher's assignments in the tenant's academic year.
func (s *TeacherAssignmentService) ListByTeacher(ctx context.Context, tenant models.TenantContext, teacherID int64) ([]models.TeacherAssignmentDetail, error) {
	if !tenant.Valid() {
		return nil, appErrors.ErrInvalidTenant
	}
	if err := validation.ID(teacherID, appErrors.ErrInvalidTeacherID); err != nil {
		return nil, err
	}
	if _, err := s.teachers.FindByID(ctx, tenant.InstitutionID, teacherID); err != nil {
		if isNotFound(err) {
			return nil, appErrors.ErrTeacherNotFound
		}
		return nil, storageError(s.logger, err, "failed to load teacher", zap.Int64("teacher_id", teacherID))
	}
	items, err := s.repo.ListByTeacher(ctx, teacherID, tenant.AcademicYearID)
	if err != nil {
		return nil, storageError(s.logger, err, "failed to list teacher assignments", zap.Int64("teacher_id", teacherID))
	}
	return items, nil
}

// Assign links the teacher to the course subject for the tenant's academic year.
// A duplicate active link is rejected with TEACHER_ALREADY_ASSIGNED.
func (s *TeacherAssignmentService) Assign(ctx context.Context, tenant models.TenantContext, req AssignTeacherRequest) (*models.TeacherAssignment, error) {
	if !tenant.Valid() {
		return nil, appErrors.ErrInvalidTenant
	}
	if err := validation.ID(req.TeacherID, appErrors.ErrInvalidTeacherID); err != nil {
		return nil, err
	}
	if err := validation.ID(req.CourseSubjectID, appErrors.ErrInvalidCourseSubject); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	start, end, err := parseRange(s.validator, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	if _, err := loadActiveTeacher(ctx, s.teachers, s.logger, tenant.InstitutionID, req.TeacherID); err != nil {
		return nil, err
	}
	cs, err := s.courseSubjects.FindByID(ctx, tenant.InstitutionID, req.CourseSubjectID)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.ErrCourseSubjectNotFound
		}
		return nil, storageError(s.logger, err, "failed to load course subject", zap.Int64("course_subject_id", req.CourseSubjectID))
	}
	if !cs.Active {
		return nil, appErrors.Clone(appErrors.ErrCourseSubjectNotFound, "course subject is inactive")
	}
	if _, err := s.years.FindByID(ctx, tenant.InstitutionID, tenant.AcademicYearID); err != nil {
		if isNotFound(err) {
			return nil, appErrors.ErrAcademicYearNotFound
		}
		return nil, storageError(s.logger, err, "failed to load academic year", zap.Int64("academic_year_id", tenant.AcademicYearID))
	}

	taken, err := s.repo.HasActive(ctx, req.TeacherID, req.CourseSubjectID, tenant.AcademicYearID)
	if err != nil {
		return nil, storageError(s.logger, err, "failed to check teacher assignment", zap.Int64("teacher_id", req.TeacherID))
	}
	if taken {
		s.metrics.RecordConflict(appErrors.ErrTeacherAlreadyAssigned.Code)
		return nil, appErrors.ErrTeacherAlreadyAssigned
	}

	assignment := &models.TeacherAssignment{
		TeacherID:       req.TeacherID,
		CourseSubjectID: req.CourseSubjectID,
		AcademicYearID:  tenant.AcademicYearID,
		StartDate:       start,
		EndDate:         end,
		Active:          true,
	}
	if err := s.repo.Create(ctx, assignment); err != nil {
		werr := writeError(s.logger, err, "failed to assign teacher",
			zap.Int64("teacher_id", req.TeacherID), zap.Int64("course_subject_id", req.CourseSubjectID))
		s.metrics.RecordConflict(appErrors.CodeOf(werr))
		return nil, werr
	}

	s.logger.Info("teacher assigned",
		zap.Int64("assignment_id", assignment.ID),
		zap.Int64("teacher_id", req.TeacherID),
		zap.Int64("course_subject_id", req.CourseSubjectID))
	return assignment, nil
}

// Deactivate ends an assignment.
func (s *TeacherAssignmentService) Deactivate(ctx context.Context, tenant models.TenantContext, id int64) error {
	if !tenant.Valid() {
		return appErrors.ErrInvalidTenant
	}
	if err := validation.ID(id, appErrors.ErrInvalidAssignmentID); err != nil {
		return err
	}
	assignment, err := s.repo.FindByID(ctx, tenant.InstitutionID, id)
	if err != nil {
		if isNotFound(err) {
			return appErrors.ErrAssignmentNotFound
		}
		return storageError(s.logger, err, "failed to load teacher assignment", zap.Int64("assignment_id", id))
	}
	if !assignment.Active {
		return appErrors.Clone(appErrors.ErrAlreadyInactive, "teacher assignment is already inactive")
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrInactive) {
			return appErrors.Clone(appErrors.ErrAlreadyInactive, "teacher assignment is already inactive")
		}
		return storageError(s.logger, err, "failed to deactivate teacher assignment", zap.Int64("assignment_id", id))
	}
	s.metrics.RecordDeactivation("teacher_assignment", 1)
	return nil
}
