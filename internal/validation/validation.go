// Package validation wraps go-playground/validator with the domain rules of the
// school administration core and translates failures into the error taxonomy.
package validation

import (
	stdErrors "errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

// DateLayout is the wire format of start and end dates.
const DateLayout = "2006-01-02"

var (
	digits10Pattern = regexp.MustCompile(`^[0-9]{10}$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

var labels = map[string]string{
	"id_number":          "ID number",
	"email":              "Email",
	"phone":              "Phone",
	"secondary_phone":    "Secondary phone",
	"weekly_hours":       "Weekly hours",
	"classroom_id":       "Classroom ID",
	"subject_id":         "Subject ID",
	"teacher_id":         "Teacher ID",
	"course_subject_id":  "Course subject ID",
	"tutor_classroom_id": "Tutor classroom ID",
}

// Option customises a Validator.
type Option func(*Validator)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// WithRejectPastEndDate toggles the rule that an end date may not lie before today.
func WithRejectPastEndDate(reject bool) Option {
	return func(v *Validator) {
		v.rejectPastEnd = reject
	}
}

// Validator enforces field-level rules and date ordering.
type Validator struct {
	engine        *validator.Validate
	now           func() time.Time
	rejectPastEnd bool
}

// New builds a Validator with the custom tags registered.
func New(opts ...Option) *Validator {
	engine := validator.New()
	engine.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = engine.RegisterValidation("digits10", func(fl validator.FieldLevel) bool {
		return digits10Pattern.MatchString(fl.Field().String())
	})
	_ = engine.RegisterValidation("email_tld", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = engine.RegisterValidation("schedule", func(fl validator.FieldLevel) bool {
		return models.Schedule(fl.Field().String()).Valid()
	})

	v := &Validator{engine: engine, now: time.Now, rejectPastEnd: true}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Struct validates a request struct. Every missing required field is reported at
// once; otherwise the first format failure is returned.
func (v *Validator) Struct(s interface{}) error {
	return translate(v.engine.Struct(s), "")
}

// Var validates a single value against tag, reporting failures against field.
func (v *Validator) Var(field string, value interface{}, tag string) error {
	return translate(v.engine.Var(value, tag), field)
}

// ID rejects non-positive identifiers with the entity specific code.
func ID(id int64, invalid *appErrors.Error) error {
	if id <= 0 {
		return appErrors.Clone(invalid, "")
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD value.
func ParseDate(field, raw string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, appErrors.WithField(appErrors.ErrInvalidField, field, fmt.Sprintf("%s must be a date in YYYY-MM-DD format", label(field)))
	}
	return t, nil
}

// StartDate rejects start dates later than today.
func (v *Validator) StartDate(start time.Time) error {
	if dateOnly(start).After(v.today()) {
		return appErrors.WithField(appErrors.ErrValidation, "start_date", "Start date cannot be in the future")
	}
	return nil
}

// DateRange checks start <= end and, when enabled, that end is not before today.
func (v *Validator) DateRange(start time.Time, end *time.Time) error {
	if err := v.StartDate(start); err != nil {
		return err
	}
	if end == nil {
		return nil
	}
	if dateOnly(*end).Before(dateOnly(start)) {
		return appErrors.WithField(appErrors.ErrValidation, "end_date", "End date cannot be before start date")
	}
	if v.rejectPastEnd && dateOnly(*end).Before(v.today()) {
		return appErrors.WithField(appErrors.ErrValidation, "end_date", "End date cannot be before today")
	}
	return nil
}

func (v *Validator) today() time.Time {
	return dateOnly(v.now())
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func translate(err error, field string) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !stdErrors.As(err, &verrs) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	var missing []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fieldName(fe, field))
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		msg := fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", "))
		return appErrors.WithField(appErrors.ErrMissingRequired, strings.Join(missing, ","), msg)
	}

	fe := verrs[0]
	name := fieldName(fe, field)
	return appErrors.WithField(appErrors.ErrInvalidField, name, message(fe, name))
}

func fieldName(fe validator.FieldError, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return fe.Field()
}

func message(fe validator.FieldError, field string) string {
	name := label(field)
	text := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "min", "gte":
		if text {
			return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max", "lte":
		if text {
			return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	case "digits10":
		return fmt.Sprintf("%s must be exactly 10 digits", name)
	case "email_tld", "email":
		return fmt.Sprintf("%s must be a valid email address", name)
	case "schedule":
		return fmt.Sprintf("%s must be one of %s", name, strings.Join(models.ScheduleNames(), ", "))
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", name)
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}

func label(field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	words := strings.Split(field, "_")
	if len(words) > 0 && words[0] != "" {
		words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	}
	return strings.Join(words, " ")
}
