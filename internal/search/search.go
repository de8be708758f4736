// Package search folds free-text terms so that matching is case and accent
// insensitive, and builds the SQL expression that folds stored columns the same way.
package search

import (
	"fmt"
	"strings"

	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

const (
	accented = "ÁÉÍÓÚÑáéíóúñ"
	plain    = "AEIOUNAEIOUN"
)

var (
	folder = strings.NewReplacer(
		"Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U", "Ñ", "N",
		"á", "A", "é", "E", "í", "I", "ó", "O", "ú", "U", "ñ", "N",
	)
	likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)
)

// Fold upper-cases s and folds the accented letters to their base letter.
func Fold(s string) string {
	return folder.Replace(strings.ToUpper(s))
}

// Term validates and folds a raw search term. Blank terms are rejected.
func Term(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", appErrors.WithField(appErrors.ErrValidation, "search", "Search term cannot be empty")
	}
	return Fold(trimmed), nil
}

// Pattern turns a folded term into a LIKE substring pattern.
func Pattern(folded string) string {
	return "%" + likeEscaper.Replace(folded) + "%"
}

// Column wraps a SQL expression with the folding applied to search terms.
func Column(expr string) string {
	return fmt.Sprintf("TRANSLATE(UPPER(%s), '%s', '%s')", expr, accented, plain)
}

// Predicate matches any of the column expressions against the placeholder.
func Predicate(placeholder string, exprs ...string) string {
	parts := make([]string, len(exprs))
	for i, expr := range exprs {
		parts[i] = fmt.Sprintf("%s LIKE %s", Column(expr), placeholder)
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}
