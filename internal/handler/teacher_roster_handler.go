package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/service"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type teacherImporter interface {
	Template() ([]byte, error)
	Import(ctx context.Context, tenant models.TenantContext, fileName string, r io.Reader) (*models.ImportReport, error)
	Report(ctx context.Context, batchID string) (*models.ImportReport, error)
}

type teacherExporter interface {
	Export(ctx context.Context, tenant models.TenantContext, format service.ExportFormat, activeOnly bool) (*service.ExportFile, error)
}

// TeacherRosterHandler serves the spreadsheet import and the roster export.
type TeacherRosterHandler struct {
	importer    teacherImporter
	exporter    teacherExporter
	maxFileSize int64
}

// NewTeacherRosterHandler constructs a TeacherRosterHandler. maxFileSize caps the
// uploaded workbook in bytes; zero disables the cap.
func NewTeacherRosterHandler(importer teacherImporter, exporter teacherExporter, maxFileSize int64) *TeacherRosterHandler {
	return &TeacherRosterHandler{importer: importer, exporter: exporter, maxFileSize: maxFileSize}
}

// Import godoc
// @Summary Import teachers from Excel
// @Description Rows are validated like a single create; valid rows are inserted and failed rows are reported.
// @Tags Teacher Import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "XLSX workbook"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /teachers/import [post]
func (h *TeacherRosterHandler) Import(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}
	if h.maxFileSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxFileSize)
	}

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, appErrors.WithField(appErrors.ErrValidation, "file", fmt.Sprintf("the file exceeds %d bytes", h.maxFileSize)))
			return
		}
		response.Error(c, appErrors.WithField(appErrors.ErrValidation, "file", "a workbook must be uploaded in the file field"))
		return
	}
	file, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.WithField(appErrors.ErrValidation, "file", "the uploaded file could not be read"))
		return
	}
	defer file.Close()

	report, err := h.importer.Import(c.Request.Context(), scope, header.Filename, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil, map[string]interface{}{
		"imported": len(report.Imported),
		"failed":   len(report.Failed),
	})
}

// Report godoc
// @Summary Get a teacher import report
// @Tags Teacher Import
// @Produce json
// @Param batchId path string true "Import batch ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /teachers/import/{batchId} [get]
func (h *TeacherRosterHandler) Report(c *gin.Context) {
	report, err := h.importer.Report(c.Request.Context(), c.Param("batchId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// Template godoc
// @Summary Download the teacher import template
// @Tags Teacher Import
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /teachers/import/template [get]
func (h *TeacherRosterHandler) Template(c *gin.Context) {
	data, err := h.importer.Template()
	if err != nil {
		response.Error(c, err)
		return
	}
	attachment(c, "teachers_import_template.xlsx", xlsxContentType, data)
}

// Export godoc
// @Summary Export the teacher roster
// @Tags Teachers
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Param active query bool false "Only active teachers"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /teachers/export [get]
func (h *TeacherRosterHandler) Export(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	active, ok := activeFilter(c)
	if !ok {
		return
	}

	file, err := h.exporter.Export(c.Request.Context(), scope, format, active != nil && *active)
	if err != nil {
		response.Error(c, err)
		return
	}
	attachment(c, file.FileName, file.ContentType, file.Data)
}

func attachment(c *gin.Context, name, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, contentType, data)
}
