package domain

import (
	"fmt"
	"strings"
)

// CaseInfo identifies the legal case a calculation belongs to.
// The engine never interprets these strings; they are copied into results as-is.
type CaseInfo struct {
	CaseNumber string `yaml:"case_number" json:"case_number"`
	Claimant   string `yaml:"claimant" json:"claimant"`
	Respondent string `yaml:"respondent" json:"respondent"`
}

// ScenarioKind tags the payout scenario of a calculation.
type ScenarioKind string

const (
	// ScenarioFees is a single-period professional fee payment.
	ScenarioFees ScenarioKind = "honorarios"
	// ScenarioAmortized is a lump sum taxed as the average over a number of months.
	ScenarioAmortized ScenarioKind = "rra"
	// ScenarioPeriod is a lump sum spread over a competence period with a secondary contribution.
	ScenarioPeriod ScenarioKind = "fepa"
	// ScenarioFlatRate is corporate flat-rate withholding.
	ScenarioFlatRate ScenarioKind = "pj"
)

// ScenarioKinds lists every supported scenario tag.
func ScenarioKinds() []ScenarioKind {
	return []ScenarioKind{ScenarioFees, ScenarioAmortized, ScenarioPeriod, ScenarioFlatRate}
}

// ParseScenarioKind resolves a scenario tag case-insensitively.
func ParseScenarioKind(value string) (ScenarioKind, error) {
	v := ScenarioKind(strings.ToLower(strings.TrimSpace(value)))
	for _, k := range ScenarioKinds() {
		if k == v {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown scenario %q", value)
}

// Description returns a short human-readable label.
func (k ScenarioKind) Description() string {
	switch k {
	case ScenarioFees:
		return "Professional fees"
	case ScenarioAmortized:
		return "Cumulative income (amortized)"
	case ScenarioPeriod:
		return "Period payment with contribution"
	case ScenarioFlatRate:
		return "Corporate withholding"
	}
	return string(k)
}

// BranchCode is the activity branch of a corporate payee. The set is closed.
type BranchCode string

const (
	BranchGeneral           BranchCode = "1"
	BranchLiberalProfession BranchCode = "2"
	BranchLaborAssignment   BranchCode = "3"
)

// BranchCodes lists every known activity branch.
func BranchCodes() []BranchCode {
	return []BranchCode{BranchGeneral, BranchLiberalProfession, BranchLaborAssignment}
}
