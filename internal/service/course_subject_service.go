package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/patch"
	"github.com/noah-isme/school-admin-api/internal/validation"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

type courseSubjectRepository interface {
	ListByClassroom(ctx context.Context, classroomID int64) ([]models.CourseSubjectDetail, error)
	FindByID(ctx context.Context, institutionID, id int64) (*models.CourseSubject, error)
	ExistsActive(ctx context.Context, classroomID, subjectID, excludeID int64) (bool, error)
	Create(ctx context.Context, item *models.CourseSubject) error
	UpdateFields(ctx context.Context, id int64, changes patch.Changes) error
	Delete(ctx context.Context, id int64) error
	CountActiveAssignments(ctx context.Context, id int64) (int, error)
}

type subjectReader interface {
	FindByID(ctx context.Context, id int64) (*models.Subject, error)
}

// CreateCourseSubjectRequest maps a subject onto a classroom.
type CreateCourseSubjectRequest struct {
	ClassroomID int64     `json:"classroom_id"`
	SubjectID   int64     `json:"subject_id"`
	WeeklyHours patch.Int `json:"weekly_hours" validate:"required,min=1,max=40" swaggertype:"integer"`
}

// CourseSubjectPatch is a partial update; omitted fields are left untouched.
type CourseSubjectPatch struct {
	WeeklyHours patch.Field[patch.Int]  `json:"weekly_hours" swaggertype:"integer"`
	Active      patch.Field[patch.Bool] `json:"active" swaggertype:"boolean"`
}

var courseSubjectRules = map[string]string{
	"weekly_hours": "min=1,max=40",
}

// CourseSubjectService manages the subjects taught in each classroom. Removal is a
// hard delete, unlike the soft deletes used for the other entities.
type CourseSubjectService struct {
	repo       courseSubjectRepository
	classrooms classroomReader
	subjects   subjectReader
	validator  *validation.Validator
	logger     *zap.Logger
	metrics    *MetricsService
}

// NewCourseSubjectService constructs a CourseSubjectService.
func NewCourseSubjectService(repo courseSubjectRepository, classrooms classroomReader, subjects subjectReader, validate *validation.Validator, logger *zap.Logger, metrics *MetricsService) *CourseSubjectService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseSubjectService{repo: repo, classrooms: classrooms, subjects: subjects, validator: validate, logger: logger, metrics: metrics}
}

// ListByClassroom returns the subjects taught in a classroom.
func (s *CourseSubjectService) ListByClassroom(ctx context.Context, tenant models.TenantContext, classroomID int64) ([]models.CourseSubjectDetail, error) {
	if !tenant.Valid() {
		return nil, appErrors.ErrInvalidTenant
	}
	if err := validation.ID(classroomID, appErrors.ErrInvalidClassroomID); err != nil {
		return nil, err
	}
	if _, err := s.classroom(ctx, tenant, classroomID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByClassroom(ctx, classroomID)
	if err != nil {
		return nil, storageError(s.logger, err, "failed to list course subjects", zap.Int64("classroom_id", classroomID))
	}
	return items, nil
}

// Create maps a subject onto a classroom.
func (s *CourseSubjectService) Create(ctx context.Context, tenant models.TenantContext, req CreateCourseSubjectRequest) (*models.CourseSubject, error) {
	if !tenant.Valid() {
		return nil, appErrors.ErrInvalidTenant
	}
	if err := validation.ID(req.ClassroomID, appErrors.ErrInvalidClassroomID); err != nil {
		return nil, err
	}
	if err := validation.ID(req.SubjectID, appErrors.ErrInvalidSubjectID); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	classroom, err := s.classroom(ctx, tenant, req.ClassroomID)
	if err != nil {
		return nil, err
	}
	if !classroom.Active {
		return nil, appErrors.Clone(appErrors.ErrClassroomNotFound, "classroom is inactive")
	}
	subject, err := s.subjects.FindByID(ctx, req.SubjectID)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.ErrSubjectNotFound
		}
		return nil, storageError(s.logger, err, "failed to load subject", zap.Int64("subject_id", req.SubjectID))
	}
	if !subject.Active {
		return nil, appErrors.Clone(appErrors.ErrSubjectNotFound, "subject is inactive")
	}

	taken, err := s.repo.ExistsActive(ctx, req.ClassroomID, req.SubjectID, 0)
	if err != nil {
		return nil, storageError(s.logger, err, "failed to check course subject", zap.Int64("classroom_id", req.ClassroomID))
	}
	if taken {
		s.metrics.RecordConflict(appErrors.ErrCourseSubjectExists.Code)
		return nil, appErrors.ErrCourseSubjectExists
	}

	item := &models.CourseSubject{
		ClassroomID: req.ClassroomID,
		SubjectID:   req.SubjectID,
		WeeklyHours: int(req.WeeklyHours),
		Active:      true,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		werr := writeError(s.logger, err, "failed to create course subject", zap.Int64("classroom_id", req.ClassroomID), zap.Int64("subject_id", req.SubjectID))
		s.metrics.RecordConflict(appErrors.CodeOf(werr))
		return nil, werr
	}
	return item, nil
}

// Update applies a partial patch to a course subject.
func (s *CourseSubjectService) Update(ctx context.Context, tenant models.TenantContext, id int64, p CourseSubjectPatch) (*UpdateResult[*models.CourseSubject], error) {
	if !tenant.Valid() {
		return nil, appErrors.ErrInvalidTenant
	}
	if err := validation.ID(id, appErrors.ErrInvalidCourseSubject); err != nil {
		return nil, err
	}
	current, err := s.load(ctx, tenant.InstitutionID, id)
	if err != nil {
		return nil, err
	}

	changes, err := patch.NewDiff().
		Int("weekly_hours", current.WeeklyHours, p.WeeklyHours).
		Bool("active", current.Active, p.Active).
		Result()
	if err != nil {
		return nil, err
	}
	if !changes.HasChanges() {
		s.metrics.RecordUpdate("course_subject", false)
		return &UpdateResult[*models.CourseSubject]{Data: current}, nil
	}
	if err := validateChanges(s.validator, changes, courseSubjectRules); err != nil {
		return nil, err
	}
	if v, ok := changes.Value("active"); ok && v == true {
		taken, err := s.repo.ExistsActive(ctx, current.ClassroomID, current.SubjectID, id)
		if err != nil {
			return nil, storageError(s.logger, err, "failed to check course subject", zap.Int64("course_subject_id", id))
		}
		if taken {
			s.metrics.RecordConflict(appErrors.ErrCourseSubjectExists.Code)
			return nil, appErrors.ErrCourseSubjectExists
		}
	}

	if err := s.repo.UpdateFields(ctx, id, changes); err != nil {
		if isNotFound(err) {
			return nil, appErrors.ErrCourseSubjectNotFound
		}
		werr := writeError(s.logger, err, "failed to update course subject", zap.Int64("course_subject_id", id))
		s.metrics.RecordConflict(appErrors.CodeOf(werr))
		return nil, werr
	}
	s.metrics.RecordUpdate("course_subject", true)

	updated, err := s.load(ctx, tenant.InstitutionID, id)
	if err != nil {
		return nil, err
	}
	return &UpdateResult[*models.CourseSubject]{Data: updated, Changed: changes.Columns()}, nil
}

// Delete removes a course subject outright. It is refused while active teacher
// assignments still reference it.
func (s *CourseSubjectService) Delete(ctx context.Context, tenant models.TenantContext, id int64) error {
	if !tenant.Valid() {
		return appErrors.ErrInvalidTenant
	}
	if err := validation.ID(id, appErrors.ErrInvalidCourseSubject); err != nil {
		return err
	}
	if _, err := s.load(ctx, tenant.InstitutionID, id); err != nil {
		return err
	}

	count, err := s.repo.CountActiveAssignments(ctx, id)
	if err != nil {
		return storageError(s.logger, err, "failed to check course subject assignments", zap.Int64("course_subject_id", id))
	}
	if count > 0 {
		s.metrics.RecordConflict(appErrors.ErrCourseSubjectInUse.Code)
		return appErrors.ErrCourseSubjectInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return appErrors.ErrCourseSubjectNotFound
		}
		return storageError(s.logger, err, "failed to delete course subject", zap.Int64("course_subject_id", id))
	}
	s.logger.Info("course subject deleted", zap.Int64("course_subject_id", id))
	return nil
}

func (s *CourseSubjectService) load(ctx context.Context, institutionID, id int64) (*models.CourseSubject, error) {
	item, err := s.repo.FindByID(ctx, institutionID, id)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.ErrCourseSubjectNotFound
		}
		return nil, storageError(s.logger, err, "failed to load course subject", zap.Int64("course_subject_id", id))
	}
	return item, nil
}

func (s *CourseSubjectService) classroom(ctx context.Context, tenant models.TenantContext, id int64) (*models.Classroom, error) {
	classroom, err := s.classrooms.FindByID(ctx, tenant.InstitutionID, id)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.ErrClassroomNotFound
		}
		return nil, storageError(s.logger, err, "failed to load classroom", zap.Int64("classroom_id", id))
	}
	return classroom, nil
}
