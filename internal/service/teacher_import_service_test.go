package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

func workbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func newImportService(e *env, store *fakeReportStore, maxRows int) *TeacherImportService {
	return NewTeacherImportService(e.teachers, store, ImportConfig{MaxRows: maxRows}, nil, e.metrics)
}

func TestTeacherImportServiceMixedRows(t *testing.T) {
	e := newEnv(t)
	e.teacher(0, "5555555555", "taken@school.edu")
	store := &fakeReportStore{}
	svc := newImportService(e, store, 50)

	file := workbook(t, [][]interface{}{
		{"ID Number", "First Name", "Last Name", "Email", "Phone"},
		{"0102030405", "José", "Núñez", "jose@school.edu", "0991234567"},
		{102030406, "Ana", "Paz", "ana@school.edu", ""},
		{"0102030405", "Repeat", "Row", "repeat@school.edu", ""},
		{},
		{"1234", "Bad", "Id", "bad@school.edu", ""},
		{"0102030499", "", "Missing", "missing@school.edu", ""},
		{"0102030498", "Dup", "Db", "TAKEN@school.edu", ""},
	})

	report, err := svc.Import(context.Background(), testTenant, "teachers.xlsx", file)
	require.NoError(t, err)
	assert.Equal(t, 6, report.TotalRows)
	require.Len(t, report.Imported, 2)
	assert.Equal(t, 2, report.Imported[0].Row)
	assert.Equal(t, "José Núñez", report.Imported[0].FullName)
	assert.Equal(t, "0102030406", report.Imported[1].IDNumber)

	require.Len(t, report.Failed, 4)
	byRow := map[int]string{}
	for _, failed := range report.Failed {
		byRow[failed.Row] = failed.Code
		assert.NotEmpty(t, failed.Error)
	}
	assert.Equal(t, appErrors.ErrDuplicateIDNumber.Code, byRow[4])
	assert.Equal(t, appErrors.ErrInvalidField.Code, byRow[6])
	assert.Equal(t, appErrors.ErrMissingRequired.Code, byRow[7])
	assert.Equal(t, appErrors.ErrDuplicateEmail.Code, byRow[8])

	stored, err := svc.Report(context.Background(), report.BatchID)
	require.NoError(t, err)
	assert.Equal(t, report, stored)
}

func TestTeacherImportServiceRejectsUnusableFiles(t *testing.T) {
	e := newEnv(t)
	svc := newImportService(e, &fakeReportStore{}, 2)
	ctx := context.Background()

	_, err := svc.Import(ctx, testTenant, "notes.txt", bytes.NewReader([]byte("not a workbook")))
	requireCode(t, err, appErrors.ErrValidation)

	_, err = svc.Import(ctx, testTenant, "empty.xlsx", workbook(t, [][]interface{}{{"id_number", "first_name", "last_name", "email"}}))
	typed := requireCode(t, err, appErrors.ErrValidation)
	assert.Equal(t, "the workbook has no data rows", typed.Message)

	_, err = svc.Import(ctx, testTenant, "short.xlsx", workbook(t, [][]interface{}{{"id_number", "first_name"}, {"0102030405", "Ana"}}))
	typed = requireCode(t, err, appErrors.ErrValidation)
	assert.Contains(t, typed.Message, "last_name, email")

	_, err = svc.Import(ctx, testTenant, "big.xlsx", workbook(t, [][]interface{}{
		{"id_number", "first_name", "last_name", "email"},
		{"0102030401", "A", "A", "a@school.edu"},
		{"0102030402", "B", "B", "b@school.edu"},
		{"0102030403", "C", "C", "c@school.edu"},
	}))
	typed = requireCode(t, err, appErrors.ErrValidation)
	assert.Contains(t, typed.Message, "limit is 2")
	assert.Zero(t, e.db.writes)
}

func TestTeacherImportServiceReportStoreFailureIsNotFatal(t *testing.T) {
	e := newEnv(t)
	svc := newImportService(e, &fakeReportStore{saveErr: errors.New("redis down")}, 10)

	report, err := svc.Import(context.Background(), testTenant, "t.xlsx", workbook(t, [][]interface{}{
		{"id_number", "first_name", "last_name", "email"},
		{"0102030401", "Ana", "Paz", "ana@school.edu"},
	}))
	require.NoError(t, err)
	assert.Len(t, report.Imported, 1)

	_, err = svc.Report(context.Background(), report.BatchID)
	requireCode(t, err, appErrors.ErrImportNotFound)
	_, err = svc.Report(context.Background(), "../../etc")
	requireCode(t, err, appErrors.ErrImportNotFound)
}

func TestTeacherImportServiceTemplate(t *testing.T) {
	e := newEnv(t)
	svc := newImportService(e, &fakeReportStore{}, 10)

	data, err := svc.Template()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Teachers")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, ImportColumns, rows[0])
}
