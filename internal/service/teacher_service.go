package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/patch"
	"github.com/noah-isme/school-admin-api/internal/repository"
	"github.com/noah-isme/school-admin-api/internal/search"
	"github.com/noah-isme/school-admin-api/internal/validation"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

type teacherRepository interface {
	List(ctx context.Context, institutionID int64, filter models.TeacherFilter) ([]models.Teacher, int, error)
	FindByID(ctx context.Context, institutionID, id int64) (*models.Teacher, error)
	ExistsActiveByEmail(ctx context.Context, institutionID int64, email string, excludeID int64) (bool, error)
	ExistsActiveByIDNumber(ctx context.Context, institutionID int64, idNumber string, excludeID int64) (bool, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	CreateWithAssignments(ctx context.Context, teacher *models.Teacher, tutor *models.ClassroomTutor, assignment *models.TeacherAssignment) error
	UpdateFields(ctx context.Context, institutionID, id int64, changes patch.Changes) error
	DeactivateCascade(ctx context.Context, institutionID, id int64) (*models.TeacherDeactivation, error)
}

type classroomReader interface {
	FindByID(ctx context.Context, institutionID, id int64) (*models.Classroom, error)
}

type courseSubjectReader interface {
	FindByID(ctx context.Context, institutionID, id int64) (*models.CourseSubject, error)
}

type activeTutorChecker interface {
	HasActive(ctx context.Context, classroomID, academicYearID int64) (bool, error)
}

// CreateTeacherRequest captures fields for creating teachers. TutorClassroomID and
// CourseSubjectID optionally assign the new teacher in the same transaction.
type CreateTeacherRequest struct {
	IDNumber         string  `json:"id_number" validate:"required,digits10"`
	FirstName        string  `json:"first_name" validate:"required,max=100"`
	LastName         string  `json:"last_name" validate:"required,max=100"`
	Email            string  `json:"email" validate:"required,email_tld,max=150"`
	Phone            *string `json:"phone" validate:"omitempty,digits10"`
	SecondaryPhone   *string `json:"secondary_phone" validate:"omitempty,digits10"`
	TutorClassroomID *int64  `json:"tutor_classroom_id,omitempty"`
	CourseSubjectID  *int64  `json:"course_subject_id,omitempty"`
	StartDate        string  `json:"start_date,omitempty"`
}

func (r *CreateTeacherRequest) normalize() {
	r.IDNumber = strings.TrimSpace(r.IDNumber)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = trimOptional(r.Phone)
	r.SecondaryPhone = trimOptional(r.SecondaryPhone)
}

// TeacherPatch is a partial update; omitted fields are left untouched.
type TeacherPatch struct {
	IDNumber       patch.Field[string]     `json:"id_number" swaggertype:"string"`
	FirstName      patch.Field[string]     `json:"first_name" swaggertype:"string"`
	LastName       patch.Field[string]     `json:"last_name" swaggertype:"string"`
	Email          patch.Field[string]     `json:"email" swaggertype:"string"`
	Phone          patch.Field[string]     `json:"phone" swaggertype:"string"`
	SecondaryPhone patch.Field[string]     `json:"secondary_phone" swaggertype:"string"`
	Active         patch.Field[patch.Bool] `json:"active" swaggertype:"boolean"`
}

var teacherRules = map[string]string{
	"id_number":       "digits10",
	"first_name":      "max=100",
	"last_name":       "max=100",
	"email":           "email_tld,max=150",
	"phone":           "digits10",
	"secondary_phone": "digits10",
}

// TeacherService handles teacher domain workflows.
type TeacherService struct {
	repo           teacherRepository
	classrooms     classroomReader
	courseSubjects courseSubjectReader
	tutors         activeTutorChecker
	validator      *validation.Validator
	logger         *zap.Logger
	metrics        *MetricsService
	now            func() time.Time
}

// NewTeacherService creates a new teacher service.
func NewTeacherService(repo teacherRepository, classrooms classroomReader, courseSubjects courseSubjectReader, tutors activeTutorChecker, validate *validation.Validator, logger *zap.Logger, metrics *MetricsService) *TeacherService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{
		repo:           repo,
		classrooms:     classrooms,
		courseSubjects: courseSubjects,
		tutors:         tutors,
		validator:      validate,
		logger:         logger,
		metrics:        metrics,
		now:            time.Now,
	}
}

// List returns paginated teachers of the tenant's institution.
func (s *TeacherService) List(ctx context.Context, tenant models.TenantContext, filter models.TeacherFilter) ([]models.Teacher, *models.Pagination, error) {
	if !tenant.Valid() {
		return nil, nil, appErrors.ErrInvalidTenant
	}
	filter.PageRequest = filter.PageRequest.Normalize()
	teachers, total, err := s.repo.List(ctx, tenant.InstitutionID, filter)
	if err != nil {
		return nil, nil, storageError(s.logger, err, "failed to list teachers", zap.Int64("institution_id", tenant.InstitutionID))
	}
	return teachers, models.NewPagination(filter.PageRequest, total), nil
}

// Search lists teachers whose name, id number or email contains term, ignoring
// case and accents. Blank terms are rejected.
func (s *TeacherService) Search(ctx context.Context, tenant models.TenantContext, term string, page models.PageRequest) ([]models.Teacher, *models.Pagination, error) {
	if _, err := search.Term(term); err != nil {
		return nil, nil, err
	}
	return s.List(ctx, tenant, models.TeacherFilter{Search: term, PageRequest: page})
}

// Get returns a teacher by identifier.
func (s *TeacherService) Get(ctx context.Context, tenant models.TenantContext, id int64) (*models.Teacher, error) {
	if !tenant.Valid() {
		return nil, appErrors.ErrInvalidTenant
	}
	if err := validation.ID(id, appErrors.ErrInvalidTeacherID); err != nil {
		return nil, err
	}
	return s.load(ctx, tenant.InstitutionID, id)
}

// Create registers a teacher, optionally as classroom tutor and course subject
// teacher. All inserts share one transaction.
func (s *TeacherService) Create(ctx context.Context, tenant models.TenantContext, req CreateTeacherRequest) (*models.Teacher, error) {
	if !tenant.Valid() {
		return nil, appErrors.ErrInvalidTenant
	}
	req.normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueIdentity(ctx, tenant.InstitutionID, req.Email, req.IDNumber, 0); err != nil {
		return nil, err
	}

	teacher := &models.Teacher{
		InstitutionID:  tenant.InstitutionID,
		IDNumber:       req.IDNumber,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		SecondaryPhone: req.SecondaryPhone,
		Active:         true,
	}

	tutor, assignment, err := s.buildInitialAssignments(ctx, tenant, req)
	if err != nil {
		return nil, err
	}

	if tutor == nil && assignment == nil {
		err = s.repo.Create(ctx, teacher)
	} else {
		err = s.repo.CreateWithAssignments(ctx, teacher, tutor, assignment)
	}
	if err != nil {
		werr := writeError(s.logger, err, "failed to create teacher", zap.String("id_number", req.IDNumber))
		s.metrics.RecordConflict(appErrors.CodeOf(werr))
		return nil, werr
	}

	s.logger.Info("teacher created",
		zap.Int64("teacher_id", teacher.ID),
		zap.Bool("tutor_assigned", tutor != nil),
		zap.Bool("subject_assigned", assignment != nil))
	return teacher, nil
}

// Update applies a partial patch. Only columns whose value differs are written;
// when nothing differs the stored teacher is returned untouched.
func (s *TeacherService) Update(ctx context.Context, tenant models.TenantContext, id int64, p TeacherPatch) (*UpdateResult[*models.Teacher], error) {
	if !tenant.Valid() {
		return nil, appErrors.ErrInvalidTenant
	}
	if err := validation.ID(id, appErrors.ErrInvalidTeacherID); err != nil {
		return nil, err
	}
	current, err := s.load(ctx, tenant.InstitutionID, id)
	if err != nil {
		return nil, err
	}

	changes, err := patch.NewDiff().
		String("id_number", current.IDNumber, p.IDNumber).
		String("first_name", current.FirstName, p.FirstName).
		String("last_name", current.LastName, p.LastName).
		String("email", current.Email, p.Email, patch.Lower).
		OptionalString("phone", current.Phone, p.Phone).
		OptionalString("secondary_phone", current.SecondaryPhone, p.SecondaryPhone).
		Bool("active", current.Active, p.Active).
		Result()
	if err != nil {
		return nil, err
	}
	if !changes.HasChanges() {
		s.metrics.RecordUpdate("teacher", false)
		return &UpdateResult[*models.Teacher]{Data: current}, nil
	}
	// Deactivation must close tutorships and assignments in the same transaction.
	if active, ok := changes.Value("active"); ok && active == any(false) {
		return nil, appErrors.WithField(appErrors.ErrInvalidField, "active",
			"Teachers are deactivated with DELETE /teachers/{id}, which also closes their assignments")
	}
	if err := validateChanges(s.validator, changes, teacherRules); err != nil {
		return nil, err
	}

	if err := s.checkIdentityChanges(ctx, current, changes); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateFields(ctx, tenant.InstitutionID, id, changes); err != nil {
		if isNotFound(err) {
			return nil, appErrors.ErrTeacherNotFound
		}
		werr := writeError(s.logger, err, "failed to update teacher", zap.Int64("teacher_id", id))
		s.metrics.RecordConflict(appErrors.CodeOf(werr))
		return nil, werr
	}
	s.metrics.RecordUpdate("teacher", true)

	updated, err := s.load(ctx, tenant.InstitutionID, id)
	if err != nil {
		return nil, err
	}
	return &UpdateResult[*models.Teacher]{Data: updated, Changed: changes.Columns()}, nil
}

// Deactivate soft-deletes a teacher and every active tutorship and subject
// assignment it owns, atomically.
func (s *TeacherService) Deactivate(ctx context.Context, tenant models.TenantContext, id int64) (*models.TeacherDeactivation, error) {
	if !tenant.Valid() {
		return nil, appErrors.ErrInvalidTenant
	}
	if err := validation.ID(id, appErrors.ErrInvalidTeacherID); err != nil {
		return nil, err
	}
	teacher, err := s.load(ctx, tenant.InstitutionID, id)
	if err != nil {
		return nil, err
	}
	if !teacher.Active {
		return nil, appErrors.Clone(appErrors.ErrAlreadyInactive, "teacher is already inactive")
	}

	result, err := s.repo.DeactivateCascade(ctx, tenant.InstitutionID, id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInactive):
			return nil, appErrors.Clone(appErrors.ErrAlreadyInactive, "teacher is already inactive")
		case isNotFound(err):
			return nil, appErrors.ErrTeacherNotFound
		}
		return nil, storageError(s.logger, err, "failed to deactivate teacher", zap.Int64("teacher_id", id))
	}

	s.metrics.RecordDeactivation("teacher", 1)
	s.metrics.RecordDeactivation("classroom_tutor", result.TutorshipsClosed)
	s.metrics.RecordDeactivation("teacher_assignment", result.AssignmentsClosed)
	s.logger.Info("teacher deactivated",
		zap.Int64("teacher_id", id),
		zap.Int64("tutorships_closed", result.TutorshipsClosed),
		zap.Int64("assignments_closed", result.AssignmentsClosed))
	return result, nil
}

func (s *TeacherService) load(ctx context.Context, institutionID, id int64) (*models.Teacher, error) {
	teacher, err := s.repo.FindByID(ctx, institutionID, id)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.ErrTeacherNotFound
		}
		return nil, storageError(s.logger, err, "failed to load teacher", zap.Int64("teacher_id", id))
	}
	return teacher, nil
}

func (s *TeacherService) ensureUniqueIdentity(ctx context.Context, institutionID int64, email, idNumber string, excludeID int64) error {
	if email != "" {
		taken, err := s.repo.ExistsActiveByEmail(ctx, institutionID, email, excludeID)
		if err != nil {
			return storageError(s.logger, err, "failed to check teacher email", zap.Int64("teacher_id", excludeID))
		}
		if taken {
			s.metrics.RecordConflict(appErrors.ErrDuplicateEmail.Code)
			return appErrors.WithField(appErrors.ErrDuplicateEmail, "email", "")
		}
	}
	if idNumber != "" {
		taken, err := s.repo.ExistsActiveByIDNumber(ctx, institutionID, idNumber, excludeID)
		if err != nil {
			return storageError(s.logger, err, "failed to check teacher id number", zap.Int64("teacher_id", excludeID))
		}
		if taken {
			s.metrics.RecordConflict(appErrors.ErrDuplicateIDNumber.Code)
			return appErrors.WithField(appErrors.ErrDuplicateIDNumber, "id_number", "")
		}
	}
	return nil
}

// checkIdentityChanges re-checks uniqueness for changed identity columns. A
// reactivation re-checks both, since the row re-enters the active set.
func (s *TeacherService) checkIdentityChanges(ctx context.Context, current *models.Teacher, changes patch.Changes) error {
	reactivating := false
	if v, ok := changes.Value("active"); ok {
		reactivating = v == true
	}
	willBeActive := current.Active || reactivating
	if !willBeActive {
		return nil
	}

	var email, idNumber string
	if v, ok := changes.Value("email"); ok {
		email = v.(string)
	} else if reactivating {
		email = current.Email
	}
	if v, ok := changes.Value("id_number"); ok {
		idNumber = v.(string)
	} else if reactivating {
		idNumber = current.IDNumber
	}
	return s.ensureUniqueIdentity(ctx, current.InstitutionID, email, idNumber, current.ID)
}

func (s *TeacherService) buildInitialAssignments(ctx context.Context, tenant models.TenantContext, req CreateTeacherRequest) (*models.ClassroomTutor, *models.TeacherAssignment, error) {
	if req.TutorClassroomID == nil && req.CourseSubjectID == nil {
		return nil, nil, nil
	}

	start := dateOnly(s.now())
	if strings.TrimSpace(req.StartDate) != "" {
		parsed, err := validation.ParseDate("start_date", req.StartDate)
		if err != nil {
			return nil, nil, err
		}
		start = parsed
	}
	if err := s.validator.StartDate(start); err != nil {
		return nil, nil, err
	}

	var tutor *models.ClassroomTutor
	if req.TutorClassroomID != nil {
		classroomID := *req.TutorClassroomID
		if err := validation.ID(classroomID, appErrors.ErrInvalidClassroomID); err != nil {
			return nil, nil, err
		}
		classroom, err := s.classrooms.FindByID(ctx, tenant.InstitutionID, classroomID)
		if err != nil {
			if isNotFound(err) {
				return nil, nil, appErrors.ErrClassroomNotFound
			}
			return nil, nil, storageError(s.logger, err, "failed to load classroom", zap.Int64("classroom_id", classroomID))
		}
		if !classroom.Active {
			return nil, nil, appErrors.Clone(appErrors.ErrClassroomNotFound, "classroom is inactive")
		}
		taken, err := s.tutors.HasActive(ctx, classroom.ID, classroom.AcademicYearID)
		if err != nil {
			return nil, nil, storageError(s.logger, err, "failed to check classroom tutor", zap.Int64("classroom_id", classroomID))
		}
		if taken {
			s.metrics.RecordConflict(appErrors.ErrClassroomAlreadyHasTutor.Code)
			return nil, nil, appErrors.ErrClassroomAlreadyHasTutor
		}
		tutor = &models.ClassroomTutor{
			ClassroomID:    classroom.ID,
			AcademicYearID: classroom.AcademicYearID,
			StartDate:      start,
			Active:         true,
		}
	}

	var assignment *models.TeacherAssignment
	if req.CourseSubjectID != nil {
		courseSubjectID := *req.CourseSubjectID
		if err := validation.ID(courseSubjectID, appErrors.ErrInvalidCourseSubject); err != nil {
			return nil, nil, err
		}
		cs, err := s.courseSubjects.FindByID(ctx, tenant.InstitutionID, courseSubjectID)
		if err != nil {
			if isNotFound(err) {
				return nil, nil, appErrors.ErrCourseSubjectNotFound
			}
			return nil, nil, storageError(s.logger, err, "failed to load course subject", zap.Int64("course_subject_id", courseSubjectID))
		}
		if !cs.Active {
			return nil, nil, appErrors.Clone(appErrors.ErrCourseSubjectNotFound, "course subject is inactive")
		}
		assignment = &models.TeacherAssignment{
			CourseSubjectID: cs.ID,
			AcademicYearID:  tenant.AcademicYearID,
			StartDate:       start,
			Active:          true,
		}
	}
	return tutor, assignment, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
