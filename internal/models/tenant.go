package models

// TenantContext scopes an operation to one institution and academic year. It is
// resolved by the caller and passed explicitly into every scoped operation.
type TenantContext struct {
	InstitutionID  int64 `json:"institution_id"`
	AcademicYearID int64 `json:"academic_year_id"`
}

// Valid reports whether both identifiers are positive.
func (t TenantContext) Valid() bool {
	return t.InstitutionID > 0 && t.AcademicYearID > 0
}
