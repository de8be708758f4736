package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/patch"
	"github.com/noah-isme/school-admin-api/internal/repository"
	"github.com/noah-isme/school-admin-api/internal/search"
	"github.com/noah-isme/school-admin-api/internal/validation"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

type classroomRepository interface {
	List(ctx context.Context, tenant models.TenantContext, filter models.ClassroomFilter) ([]models.Classroom, int, error)
	FindByID(ctx context.Context, institutionID, id int64) (*models.Classroom, error)
	ExistsActiveKey(ctx context.Context, tenant models.TenantContext, grade, parallel string, excludeID int64) (bool, error)
	Create(ctx context.Context, classroom *models.Classroom) error
	UpdateFields(ctx context.Context, institutionID, id int64, changes patch.Changes) error
	Deactivate(ctx context.Context, institutionID, id int64) error
}

// CreateClassroomRequest captures fields for creating classrooms.
type CreateClassroomRequest struct {
	Grade    string    `json:"grade" validate:"required,max=20"`
	Parallel string    `json:"parallel" validate:"required,max=5"`
	Schedule string    `json:"schedule" validate:"required,schedule"`
	Capacity patch.Int `json:"capacity" validate:"required,min=1,max=50" swaggertype:"integer"`
	Location *string   `json:"location" validate:"omitempty,max=100"`
}

// ClassroomPatch is a partial update; omitted fields are left untouched.
type ClassroomPatch struct {
	Grade    patch.Field[string]     `json:"grade" swaggertype:"string"`
	Parallel patch.Field[string]     `json:"parallel" swaggertype:"string"`
	Schedule patch.Field[string]     `json:"schedule" swaggertype:"string"`
	Capacity patch.Field[patch.Int]  `json:"capacity" swaggertype:"integer"`
	Location patch.Field[string]     `json:"location" swaggertype:"string"`
	Active   patch.Field[patch.Bool] `json:"active" swaggertype:"boolean"`
}

var classroomRules = map[string]string{
	"grade":    "max=20",
	"parallel": "max=5",
	"schedule": "schedule",
	"capacity": "min=1,max=50",
	"location": "max=100",
}

// ClassroomService manages classroom workflows.
type ClassroomService struct {
	repo      classroomRepository
	validator *validation.Validator
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewClassroomService constructs a ClassroomService.
func NewClassroomService(repo classroomRepository, validate *validation.Validator, logger *zap.Logger, metrics *MetricsService) *ClassroomService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassroomService{repo: repo, validator: validate, logger: logger, metrics: metrics}
}

// List returns paginated classrooms of the tenant's academic year.
func (s *ClassroomService) List(ctx context.Context, tenant models.TenantContext, filter models.ClassroomFilter) ([]models.Classroom, *models.Pagination, error) {
	if !tenant.Valid() {
		return nil, nil, appErrors.ErrInvalidTenant
	}
	if filter.Schedule != "" {
		filter.Schedule = models.Schedule(strings.ToUpper(string(filter.Schedule)))
		if !filter.Schedule.Valid() {
			return nil, nil, s.validator.Var("schedule", string(filter.Schedule), "schedule")
		}
	}
	filter.PageRequest = filter.PageRequest.Normalize()
	classrooms, total, err := s.repo.List(ctx, tenant, filter)
	if err != nil {
		return nil, nil, storageError(s.logger, err, "failed to list classrooms", zap.Int64("institution_id", tenant.InstitutionID))
	}
	return classrooms, models.NewPagination(filter.PageRequest, total), nil
}

// Search lists classrooms whose name or location contains term, ignoring case
// and accents.
func (s *ClassroomService) Search(ctx context.Context, tenant models.TenantContext, term string, page models.PageRequest) ([]models.Classroom, *models.Pagination, error) {
	if _, err := search.Term(term); err != nil {
		return nil, nil, err
	}
	return s.List(ctx, tenant, models.ClassroomFilter{Search: term, PageRequest: page})
}

// Get returns a classroom by identifier.
func (s *ClassroomService) Get(ctx context.Context, tenant models.TenantContext, id int64) (*models.Classroom, error) {
	if !tenant.Valid() {
		return nil, appErrors.ErrInvalidTenant
	}
	if err := validation.ID(id, appErrors.ErrInvalidClassroomID); err != nil {
		return nil, err
	}
	return s.load(ctx, tenant.InstitutionID, id)
}

// Create adds a classroom to the tenant's academic year.
func (s *ClassroomService) Create(ctx context.Context, tenant models.TenantContext, req CreateClassroomRequest) (*models.Classroom, error) {
	if !tenant.Valid() {
		return nil, appErrors.ErrInvalidTenant
	}
	req.Grade = strings.TrimSpace(req.Grade)
	req.Parallel = strings.ToUpper(strings.TrimSpace(req.Parallel))
	req.Schedule = strings.ToUpper(strings.TrimSpace(req.Schedule))
	req.Location = trimOptional(req.Location)
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsActiveKey(ctx, tenant, req.Grade, req.Parallel, 0)
	if err != nil {
		return nil, storageError(s.logger, err, "failed to check classroom key")
	}
	if taken {
		s.metrics.RecordConflict(appErrors.ErrClassroomAlreadyExists.Code)
		return nil, appErrors.ErrClassroomAlreadyExists
	}

	classroom := &models.Classroom{
		InstitutionID:  tenant.InstitutionID,
		AcademicYearID: tenant.AcademicYearID,
		Grade:          req.Grade,
		Parallel:       req.Parallel,
		Schedule:       models.Schedule(req.Schedule),
		Capacity:       int(req.Capacity),
		Location:       req.Location,
		Active:         true,
	}
	if err := s.repo.Create(ctx, classroom); err != nil {
		werr := writeError(s.logger, err, "failed to create classroom", zap.String("grade", req.Grade), zap.String("parallel", req.Parallel))
		s.metrics.RecordConflict(appErrors.CodeOf(werr))
		return nil, werr
	}
	return classroom, nil
}

// Update applies a partial patch to a classroom.
func (s *ClassroomService) Update(ctx context.Context, tenant models.TenantContext, id int64, p ClassroomPatch) (*UpdateResult[*models.Classroom], error) {
	if !tenant.Valid() {
		return nil, appErrors.ErrInvalidTenant
	}
	if err := validation.ID(id, appErrors.ErrInvalidClassroomID); err != nil {
		return nil, err
	}
	current, err := s.load(ctx, tenant.InstitutionID, id)
	if err != nil {
		return nil, err
	}

	changes, err := patch.NewDiff().
		String("grade", current.Grade, p.Grade).
		String("parallel", current.Parallel, p.Parallel, patch.Upper).
		String("schedule", string(current.Schedule), p.Schedule, patch.Upper).
		Int("capacity", current.Capacity, p.Capacity).
		OptionalString("location", current.Location, p.Location).
		Bool("active", current.Active, p.Active).
		Result()
	if err != nil {
		return nil, err
	}
	if !changes.HasChanges() {
		s.metrics.RecordUpdate("classroom", false)
		return &UpdateResult[*models.Classroom]{Data: current}, nil
	}
	if err := validateChanges(s.validator, changes, classroomRules); err != nil {
		return nil, err
	}
	if err := s.checkKeyChange(ctx, current, changes); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateFields(ctx, tenant.InstitutionID, id, changes); err != nil {
		if isNotFound(err) {
			return nil, appErrors.ErrClassroomNotFound
		}
		werr := writeError(s.logger, err, "failed to update classroom", zap.Int64("classroom_id", id))
		s.metrics.RecordConflict(appErrors.CodeOf(werr))
		return nil, werr
	}
	s.metrics.RecordUpdate("classroom", true)

	updated, err := s.load(ctx, tenant.InstitutionID, id)
	if err != nil {
		return nil, err
	}
	return &UpdateResult[*models.Classroom]{Data: updated, Changed: changes.Columns()}, nil
}

// Deactivate soft-deletes a classroom.
func (s *ClassroomService) Deactivate(ctx context.Context, tenant models.TenantContext, id int64) error {
	if !tenant.Valid() {
		return appErrors.ErrInvalidTenant
	}
	if err := validation.ID(id, appErrors.ErrInvalidClassroomID); err != nil {
		return err
	}
	classroom, err := s.load(ctx, tenant.InstitutionID, id)
	if err != nil {
		return err
	}
	if !classroom.Active {
		return appErrors.Clone(appErrors.ErrAlreadyInactive, "classroom is already inactive")
	}
	if err := s.repo.Deactivate(ctx, tenant.InstitutionID, id); err != nil {
		if errors.Is(err, repository.ErrInactive) {
			return appErrors.Clone(appErrors.ErrAlreadyInactive, "classroom is already inactive")
		}
		return storageError(s.logger, err, "failed to deactivate classroom", zap.Int64("classroom_id", id))
	}
	s.metrics.RecordDeactivation("classroom", 1)
	return nil
}

func (s *ClassroomService) load(ctx context.Context, institutionID, id int64) (*models.Classroom, error) {
	classroom, err := s.repo.FindByID(ctx, institutionID, id)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.ErrClassroomNotFound
		}
		return nil, storageError(s.logger, err, "failed to load classroom", zap.Int64("classroom_id", id))
	}
	return classroom, nil
}

// checkKeyChange re-checks the (grade, parallel) key when it changes or when the
// classroom is reactivated.
func (s *ClassroomService) checkKeyChange(ctx context.Context, current *models.Classroom, changes patch.Changes) error {
	reactivating := false
	if v, ok := changes.Value("active"); ok {
		reactivating = v == true
	}
	if !reactivating && !changes.Touches("grade") && !changes.Touches("parallel") {
		return nil
	}
	if !current.Active && !reactivating {
		return nil
	}

	grade, parallel := current.Grade, current.Parallel
	if v, ok := changes.Value("grade"); ok {
		grade = v.(string)
	}
	if v, ok := changes.Value("parallel"); ok {
		parallel = v.(string)
	}
	tenant := models.TenantContext{InstitutionID: current.InstitutionID, AcademicYearID: current.AcademicYearID}
	taken, err := s.repo.ExistsActiveKey(ctx, tenant, grade, parallel, current.ID)
	if err != nil {
		return storageError(s.logger, err, "failed to check classroom key", zap.Int64("classroom_id", current.ID))
	}
	if taken {
		s.metrics.RecordConflict(appErrors.ErrClassroomAlreadyExists.Code)
		return appErrors.ErrClassroomAlreadyExists
	}
	return nil
}
