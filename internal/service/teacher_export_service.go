package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/pkg/export"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

// ExportFormat selects the roster rendering.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

type teacherLister interface {
	ListAll(ctx context.Context, institutionID int64, activeOnly bool) ([]models.Teacher, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportFile is a rendered roster ready to be sent as an attachment.
type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

var rosterHeaders = []string{"ID Number", "First Name", "Last Name", "Email", "Phone", "Secondary Phone", "Active"}

// TeacherExportService renders the institution's teacher roster.
type TeacherExportService struct {
	teachers teacherLister
	csv      csvRenderer
	pdf      pdfRenderer
	logger   *zap.Logger
	now      func() time.Time
}

// NewTeacherExportService constructs a TeacherExportService. Nil renderers fall
// back to the package exporters.
func NewTeacherExportService(teachers teacherLister, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *TeacherExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &TeacherExportService{teachers: teachers, csv: csv, pdf: pdf, logger: logger, now: time.Now}
}

// ParseExportFormat accepts csv or pdf in any case.
func ParseExportFormat(raw string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case ExportFormatCSV, "":
		return ExportFormatCSV, nil
	case ExportFormatPDF:
		return ExportFormatPDF, nil
	}
	return "", appErrors.WithField(appErrors.ErrInvalidField, "format", "Format must be one of csv, pdf")
}

// Export renders the roster of the tenant's institution.
func (s *TeacherExportService) Export(ctx context.Context, tenant models.TenantContext, format ExportFormat, activeOnly bool) (*ExportFile, error) {
	if !tenant.Valid() {
		return nil, appErrors.ErrInvalidTenant
	}
	teachers, err := s.teachers.ListAll(ctx, tenant.InstitutionID, activeOnly)
	if err != nil {
		return nil, storageError(s.logger, err, "failed to load teacher roster", zap.Int64("institution_id", tenant.InstitutionID))
	}

	dataset := rosterDataset(teachers)
	stamp := s.now().UTC().Format("20060102_150405")
	file := &ExportFile{}

	switch format {
	case ExportFormatCSV:
		file.Data, err = s.csv.Render(dataset)
		file.ContentType = "text/csv; charset=utf-8"
	case ExportFormatPDF:
		file.Data, err = s.pdf.Render(dataset, "Teacher roster")
		file.ContentType = "application/pdf"
	default:
		return nil, appErrors.WithField(appErrors.ErrInvalidField, "format", "Format must be one of csv, pdf")
	}
	if err != nil {
		s.logger.Error("failed to render teacher roster", zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Service(err, "failed to render teacher roster")
	}
	file.FileName = fmt.Sprintf("teachers_%d_%s.%s", tenant.InstitutionID, stamp, format)
	return file, nil
}

func rosterDataset(teachers []models.Teacher) export.Dataset {
	rows := make([]map[string]string, 0, len(teachers))
	for _, t := range teachers {
		active := "no"
		if t.Active {
			active = "yes"
		}
		rows = append(rows, map[string]string{
			"ID Number":       t.IDNumber,
			"First Name":      t.FirstName,
			"Last Name":       t.LastName,
			"Email":           t.Email,
			"Phone":           deref(t.Phone),
			"Secondary Phone": deref(t.SecondaryPhone),
			"Active":          active,
		})
	}
	return export.Dataset{Headers: rosterHeaders, Rows: rows}
}

func deref(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}
