// Package validation checks raw report submissions against the accepted
// schema and converts them into domain types. Validation is a pure function
// of the body bytes: it either yields a validated report or the full list of
// violations found in one pass.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator"

	"github.com/femiolade/student-report-gateway/internal/domain"
)

// ErrInvalidJSON reports a body that is not syntactically valid JSON.
var ErrInvalidJSON = errors.New("invalid JSON input")

// Violation rule identifiers.
const (
	RuleTypeMismatch = "type_mismatch"
	RuleOutOfRange   = "out_of_range"
	RuleInvalidValue = "invalid_value"
	RuleMissingField = "missing_field"
)

// Violation names one schema non-conformance: the offending field path in
// JSON notation and the rule it broke.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type reportPayload struct {
	Result []studentPayload `json:"result" validate:"required,dive"`
}

type studentPayload struct {
	Name       *string         `json:"name" validate:"required"`
	Subject    *subjectPayload `json:"subject" validate:"required"`
	Attendance *float64        `json:"attendance" validate:"required,gte=0,lte=100"`
}

type subjectPayload struct {
	Science *float64 `json:"science" validate:"required,gte=0,lte=100"`
	Maths   *float64 `json:"maths" validate:"required,gte=0,lte=100"`
	Result  *string  `json:"result" validate:"required,oneof=pass fail"`
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	// Report violations against the JSON field names, not the Go ones.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateReport parses and validates a report body. It returns exactly one
// of: a validated report, a non-empty violation list, or ErrInvalidJSON for
// a body that is not JSON at all.
func ValidateReport(body []byte) (*domain.StudentReport, []Violation, error) {
	var payload reportPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field := typeErr.Field
			if field == "" {
				field = "(body)"
			}
			return nil, []Violation{{
				Field:   field,
				Rule:    RuleTypeMismatch,
				Message: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
			}}, nil
		}
		return nil, nil, ErrInvalidJSON
	}

	if err := validate.Struct(payload); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, nil, err
		}
		violations := make([]Violation, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			violations = append(violations, toViolation(fe))
		}
		return nil, violations, nil
	}

	return toDomain(payload), nil, nil
}

func toViolation(fe validator.FieldError) Violation {
	// Namespace is "reportPayload.result[0].subject.science"; drop the
	// struct name so the path matches the submitted JSON.
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return Violation{
			Field:   field,
			Rule:    RuleMissingField,
			Message: fmt.Sprintf("%s is required", field),
		}
	case "gte", "lte":
		return Violation{
			Field:   field,
			Rule:    RuleOutOfRange,
			Message: fmt.Sprintf("%s must be between 0 and 100", field),
		}
	case "oneof":
		return Violation{
			Field:   field,
			Rule:    RuleInvalidValue,
			Message: fmt.Sprintf("%s must be one of [%s]", field, fe.Param()),
		}
	default:
		return Violation{
			Field:   field,
			Rule:    RuleInvalidValue,
			Message: fmt.Sprintf("%s failed validation %q", field, fe.Tag()),
		}
	}
}

func toDomain(p reportPayload) *domain.StudentReport {
	students := make([]domain.StudentRecord, 0, len(p.Result))
	for _, s := range p.Result {
		students = append(students, domain.StudentRecord{
			Name: *s.Name,
			Subject: domain.Subject{
				Science: *s.Subject.Science,
				Maths:   *s.Subject.Maths,
				Result:  domain.SubjectResult(*s.Subject.Result),
			},
			Attendance: *s.Attendance,
		})
	}
	return &domain.StudentReport{Students: students}
}
