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

type subjectRepository interface {
	List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, int, error)
	FindByID(ctx context.Context, id int64) (*models.Subject, error)
	ExistsActiveByName(ctx context.Context, name string, excludeID int64) (bool, error)
	ExistsActiveByCode(ctx context.Context, code string, excludeID int64) (bool, error)
	Create(ctx context.Context, subject *models.Subject) error
	UpdateFields(ctx context.Context, id int64, changes patch.Changes) error
	Deactivate(ctx context.Context, id int64) error
}

// CreateSubjectRequest captures fields for creating subjects.
type CreateSubjectRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Code        string  `json:"code" validate:"required,min=3,max=20"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// SubjectPatch is a partial update; omitted fields are left untouched.
type SubjectPatch struct {
	Name        patch.Field[string]     `json:"name" swaggertype:"string"`
	Code        patch.Field[string]     `json:"code" swaggertype:"string"`
	Description patch.Field[string]     `json:"description" swaggertype:"string"`
	Active      patch.Field[patch.Bool] `json:"active" swaggertype:"boolean"`
}

var subjectRules = map[string]string{
	"name":        "max=100",
	"code":        "min=3,max=20",
	"description": "max=500",
}

// SubjectService handles subject domain workflows.
type SubjectService struct {
	repo      subjectRepository
	validator *validation.Validator
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewSubjectService creates a new subject service.
func NewSubjectService(repo subjectRepository, validate *validation.Validator, logger *zap.Logger, metrics *MetricsService) *SubjectService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{repo: repo, validator: validate, logger: logger, metrics: metrics}
}

// List returns paginated subjects.
func (s *SubjectService) List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, *models.Pagination, error) {
	filter.PageRequest = filter.PageRequest.Normalize()
	subjects, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, storageError(s.logger, err, "failed to list subjects")
	}
	return subjects, models.NewPagination(filter.PageRequest, total), nil
}

// Search lists subjects whose name or code contains term, ignoring case and accents.
func (s *SubjectService) Search(ctx context.Context, term string, page models.PageRequest) ([]models.Subject, *models.Pagination, error) {
	if _, err := search.Term(term); err != nil {
		return nil, nil, err
	}
	return s.List(ctx, models.SubjectFilter{Search: term, PageRequest: page})
}

// Get returns subject by identifier.
func (s *SubjectService) Get(ctx context.Context, id int64) (*models.Subject, error) {
	if err := validation.ID(id, appErrors.ErrInvalidSubjectID); err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

// Create adds a new subject ensuring name and code uniqueness among active subjects.
func (s *SubjectService) Create(ctx context.Context, req CreateSubjectRequest) (*models.Subject, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	req.Description = trimOptional(req.Description)
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, req.Name, req.Code, 0); err != nil {
		return nil, err
	}

	subject := &models.Subject{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Active:      true,
	}
	if err := s.repo.Create(ctx, subject); err != nil {
		werr := writeError(s.logger, err, "failed to create subject", zap.String("code", req.Code))
		s.metrics.RecordConflict(appErrors.CodeOf(werr))
		return nil, werr
	}
	return subject, nil
}

// Update applies a partial patch to a subject.
func (s *SubjectService) Update(ctx context.Context, id int64, p SubjectPatch) (*UpdateResult[*models.Subject], error) {
	if err := validation.ID(id, appErrors.ErrInvalidSubjectID); err != nil {
		return nil, err
	}
	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	changes, err := patch.NewDiff().
		String("name", current.Name, p.Name).
		String("code", current.Code, p.Code, patch.Upper).
		OptionalString("description", current.Description, p.Description).
		Bool("active", current.Active, p.Active).
		Result()
	if err != nil {
		return nil, err
	}
	if !changes.HasChanges() {
		s.metrics.RecordUpdate("subject", false)
		return &UpdateResult[*models.Subject]{Data: current}, nil
	}
	if err := validateChanges(s.validator, changes, subjectRules); err != nil {
		return nil, err
	}

	reactivating := false
	if v, ok := changes.Value("active"); ok {
		reactivating = v == true
	}
	if current.Active || reactivating {
		var name, code string
		if v, ok := changes.Value("name"); ok {
			name = v.(string)
		} else if reactivating {
			name = current.Name
		}
		if v, ok := changes.Value("code"); ok {
			code = v.(string)
		} else if reactivating {
			code = current.Code
		}
		if err := s.ensureUnique(ctx, name, code, id); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateFields(ctx, id, changes); err != nil {
		if isNotFound(err) {
			return nil, appErrors.ErrSubjectNotFound
		}
		werr := writeError(s.logger, err, "failed to update subject", zap.Int64("subject_id", id))
		s.metrics.RecordConflict(appErrors.CodeOf(werr))
		return nil, werr
	}
	s.metrics.RecordUpdate("subject", true)

	updated, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &UpdateResult[*models.Subject]{Data: updated, Changed: changes.Columns()}, nil
}

// Deactivate soft-deletes a subject.
func (s *SubjectService) Deactivate(ctx context.Context, id int64) error {
	if err := validation.ID(id, appErrors.ErrInvalidSubjectID); err != nil {
		return err
	}
	subject, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !subject.Active {
		return appErrors.Clone(appErrors.ErrAlreadyInactive, "subject is already inactive")
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrInactive) {
			return appErrors.Clone(appErrors.ErrAlreadyInactive, "subject is already inactive")
		}
		return storageError(s.logger, err, "failed to deactivate subject", zap.Int64("subject_id", id))
	}
	s.metrics.RecordDeactivation("subject", 1)
	return nil
}

func (s *SubjectService) load(ctx context.Context, id int64) (*models.Subject, error) {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.ErrSubjectNotFound
		}
		return nil, storageError(s.logger, err, "failed to load subject", zap.Int64("subject_id", id))
	}
	return subject, nil
}

func (s *SubjectService) ensureUnique(ctx context.Context, name, code string, excludeID int64) error {
	if code != "" {
		taken, err := s.repo.ExistsActiveByCode(ctx, code, excludeID)
		if err != nil {
			return storageError(s.logger, err, "failed to check subject code")
		}
		if taken {
			s.metrics.RecordConflict(appErrors.ErrCodeAlreadyExists.Code)
			return appErrors.WithField(appErrors.ErrCodeAlreadyExists, "code", "")
		}
	}
	if name != "" {
		taken, err := s.repo.ExistsActiveByName(ctx, name, excludeID)
		if err != nil {
			return storageError(s.logger, err, "failed to check subject name")
		}
		if taken {
			s.metrics.RecordConflict(appErrors.ErrNameAlreadyExists.Code)
			return appErrors.WithField(appErrors.ErrNameAlreadyExists, "name", "")
		}
	}
	return nil
}
