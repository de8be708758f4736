package models

import "time"

// ImportReport summarises an Excel bulk import. It is the one place where a
// mutation reports partial success.
type ImportReport struct {
	BatchID   string        `json:"batch_id"`
	FileName  string        `json:"file_name"`
	TotalRows int           `json:"total_rows"`
	Imported  []ImportedRow `json:"imported"`
	Failed    []FailedRow   `json:"failed"`
	CreatedAt time.Time     `json:"created_at"`
}

// ImportedRow identifies a spreadsheet row that became a teacher.
type ImportedRow struct {
	Row       int    `json:"row"`
	TeacherID int64  `json:"teacher_id"`
	IDNumber  string `json:"id_number"`
	FullName  string `json:"full_name"`
}

// FailedRow explains why a spreadsheet row was skipped.
type FailedRow struct {
	Row   int    `json:"row"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
	Error string `json:"error"`
}
