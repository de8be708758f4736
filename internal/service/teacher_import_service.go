package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/pkg/export"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

// ImportColumns is the header row of the teacher import workbook.
var ImportColumns = []string{"id_number", "first_name", "last_name", "email", "phone", "secondary_phone"}

var requiredImportColumns = []string{"id_number", "first_name", "last_name", "email"}

var importHeaderAliases = map[string]string{
	"idnumber":       "id_number",
	"id":             "id_number",
	"firstname":      "first_name",
	"first":          "first_name",
	"lastname":       "last_name",
	"last":           "last_name",
	"e_mail":         "email",
	"mail":           "email",
	"phone_number":   "phone",
	"secondaryphone": "secondary_phone",
	"phone_2":        "secondary_phone",
}

type teacherCreator interface {
	Create(ctx context.Context, tenant models.TenantContext, req CreateTeacherRequest) (*models.Teacher, error)
}

type importReportStore interface {
	Save(ctx context.Context, report *models.ImportReport, ttl time.Duration) error
	Get(ctx context.Context, batchID string) (*models.ImportReport, error)
}

// ImportConfig bounds a single import.
type ImportConfig struct {
	MaxRows   int
	ReportTTL time.Duration
}

// TeacherImportService bulk-creates teachers from an Excel workbook. Each row is
// created on its own, so one bad row never blocks the others.
type TeacherImportService struct {
	teachers teacherCreator
	reports  importReportStore
	xlsx     *export.XLSXExporter
	cfg      ImportConfig
	logger   *zap.Logger
	metrics  *MetricsService
	now      func() time.Time
}

// NewTeacherImportService constructs a TeacherImportService.
func NewTeacherImportService(teachers teacherCreator, reports importReportStore, cfg ImportConfig, logger *zap.Logger, metrics *MetricsService) *TeacherImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = 500
	}
	if cfg.ReportTTL <= 0 {
		cfg.ReportTTL = 24 * time.Hour
	}
	return &TeacherImportService{
		teachers: teachers,
		reports:  reports,
		xlsx:     export.NewXLSXExporter(),
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics,
		now:      time.Now,
	}
}

// Template renders an empty workbook carrying only the header row.
func (s *TeacherImportService) Template() ([]byte, error) {
	data, err := s.xlsx.Render(export.Dataset{Headers: ImportColumns}, "Teachers")
	if err != nil {
		return nil, appErrors.Service(err, "failed to render import template")
	}
	return data, nil
}

// Import reads the first sheet of the workbook and creates one teacher per data
// row. The returned report lists imported and failed rows; rows are numbered as
// the spreadsheet shows them, so the first data row is 2.
func (s *TeacherImportService) Import(ctx context.Context, tenant models.TenantContext, fileName string, r io.Reader) (*models.ImportReport, error) {
	if !tenant.Valid() {
		return nil, appErrors.ErrInvalidTenant
	}

	rows, err := readFirstSheet(r)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, appErrors.WithField(appErrors.ErrValidation, "file", "the workbook has no data rows")
	}
	columns, err := mapImportHeader(rows[0])
	if err != nil {
		return nil, err
	}
	data := rows[1:]
	if len(data) > s.cfg.MaxRows {
		return nil, appErrors.WithField(appErrors.ErrValidation, "file",
			fmt.Sprintf("the workbook has %d rows, the limit is %d", len(data), s.cfg.MaxRows))
	}

	report := &models.ImportReport{
		BatchID:   uuid.NewString(),
		FileName:  fileName,
		Imported:  []models.ImportedRow{},
		Failed:    []models.FailedRow{},
		CreatedAt: s.now().UTC(),
	}
	seenEmail := make(map[string]int)
	seenIDNumber := make(map[string]int)

	for i, cells := range data {
		if err := ctx.Err(); err != nil {
			return nil, appErrors.Service(err, "import cancelled")
		}
		rowNumber := i + 2
		req, blank := rowRequest(columns, cells)
		if blank {
			continue
		}
		report.TotalRows++
		req.normalize()

		if first, dup := seenIDNumber[req.IDNumber]; dup && req.IDNumber != "" {
			report.Failed = append(report.Failed, failedRow(rowNumber, appErrors.WithField(appErrors.ErrDuplicateIDNumber, "id_number",
				fmt.Sprintf("id number repeats row %d of the file", first))))
			continue
		}
		if first, dup := seenEmail[req.Email]; dup && req.Email != "" {
			report.Failed = append(report.Failed, failedRow(rowNumber, appErrors.WithField(appErrors.ErrDuplicateEmail, "email",
				fmt.Sprintf("email repeats row %d of the file", first))))
			continue
		}
		if req.IDNumber != "" {
			seenIDNumber[req.IDNumber] = rowNumber
		}
		if req.Email != "" {
			seenEmail[req.Email] = rowNumber
		}

		teacher, err := s.teachers.Create(ctx, tenant, req)
		if err != nil {
			report.Failed = append(report.Failed, failedRow(rowNumber, err))
			continue
		}
		report.Imported = append(report.Imported, models.ImportedRow{
			Row:       rowNumber,
			TeacherID: teacher.ID,
			IDNumber:  teacher.IDNumber,
			FullName:  teacher.FullName(),
		})
	}

	if err := s.reports.Save(ctx, report, s.cfg.ReportTTL); err != nil {
		s.logger.Warn("failed to store import report", zap.String("batch_id", report.BatchID), zap.Error(err))
	}
	s.metrics.RecordImportRows(len(report.Imported), len(report.Failed))
	s.logger.Info("teacher import finished",
		zap.String("batch_id", report.BatchID),
		zap.String("file_name", fileName),
		zap.Int("total_rows", report.TotalRows),
		zap.Int("imported", len(report.Imported)),
		zap.Int("failed", len(report.Failed)))
	return report, nil
}

// Report returns a stored import report.
func (s *TeacherImportService) Report(ctx context.Context, batchID string) (*models.ImportReport, error) {
	if _, err := uuid.Parse(batchID); err != nil {
		return nil, appErrors.ErrImportNotFound
	}
	report, err := s.reports.Get(ctx, batchID)
	if err != nil {
		if errors.Is(err, appErrors.ErrCacheMiss) {
			return nil, appErrors.ErrImportNotFound
		}
		return nil, storageError(s.logger, err, "failed to load import report", zap.String("batch_id", batchID))
	}
	return report, nil
}

func readFirstSheet(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, appErrors.WithField(appErrors.ErrValidation, "file", "the file is not a readable Excel workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, appErrors.WithField(appErrors.ErrValidation, "file", "the workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, appErrors.WithField(appErrors.ErrValidation, "file", "the first sheet could not be read")
	}
	return rows, nil
}

// mapImportHeader returns the column index of every known header.
func mapImportHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(ImportColumns))
	for i, raw := range header {
		name := normalizeHeader(raw)
		if alias, ok := importHeaderAliases[name]; ok {
			name = alias
		}
		if _, known := columns[name]; !known {
			columns[name] = i
		}
	}

	var missing []string
	for _, col := range requiredImportColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, appErrors.WithField(appErrors.ErrValidation, "file",
			"the header row is missing columns: "+strings.Join(missing, ", "))
	}
	return columns, nil
}

func normalizeHeader(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	name = strings.NewReplacer(" ", "_", "-", "_", ".", "").Replace(name)
	return name
}

// rowRequest builds a create request from a data row. blank is true when every
// mapped cell is empty.
func rowRequest(columns map[string]int, cells []string) (CreateTeacherRequest, bool) {
	cell := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[idx])
	}
	optional := func(name string) *string {
		v := restoreLeadingZero(cell(name))
		if v == "" {
			return nil
		}
		return &v
	}

	req := CreateTeacherRequest{
		IDNumber:       restoreLeadingZero(cell("id_number")),
		FirstName:      cell("first_name"),
		LastName:       cell("last_name"),
		Email:          cell("email"),
		Phone:          optional("phone"),
		SecondaryPhone: optional("secondary_phone"),
	}
	blank := req.IDNumber == "" && req.FirstName == "" && req.LastName == "" &&
		req.Email == "" && req.Phone == nil && req.SecondaryPhone == nil
	return req, blank
}

// restoreLeadingZero puts back the zero Excel strips from numeric cells such as
// 0102030405.
func restoreLeadingZero(v string) string {
	if len(v) != 9 {
		return v
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return v
		}
	}
	return "0" + v
}

func failedRow(row int, err error) models.FailedRow {
	typed := appErrors.FromError(err)
	return models.FailedRow{
		Row:   row,
		Code:  typed.Code,
		Field: typed.Field,
		Error: typed.Message,
	}
}
