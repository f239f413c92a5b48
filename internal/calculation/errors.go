package calculation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rpgo/withholding-calculator/internal/domain"
)

// Failure kinds. Every calculator error wraps exactly one of these, so callers
// can branch with errors.Is. None of them is transient.
var (
	ErrInvalidPeriod     = errors.New("invalid period")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidBranchCode = errors.New("invalid branch code")
	ErrMalformedDate     = errors.New("malformed date")
)

// CalculationError describes a rejected request.
type CalculationError struct {
	Kind     error
	Scenario domain.ScenarioKind
	Field    string
	Detail   string
}

func (e *CalculationError) Error() string {
	parts := make([]string, 0, 3)
	if e.Scenario != "" {
		parts = append(parts, string(e.Scenario))
	}
	parts = append(parts, e.Kind.Error())
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	msg := strings.Join(parts, ": ")
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *CalculationError) Unwrap() error { return e.Kind }

func newError(kind error, scenario domain.ScenarioKind, field, format string, args ...any) *CalculationError {
	return &CalculationError{
		Kind:     kind,
		Scenario: scenario,
		Field:    field,
		Detail:   fmt.Sprintf(format, args...),
	}
}
