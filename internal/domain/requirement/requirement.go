package requirement

import (
	"github.com/juggajay/risksure-backend/internal/domain/certificate"
	"github.com/juggajay/risksure-backend/internal/domain/values"
)

// LimitBasis is the basis on which a minimum limit must be written.
type LimitBasis string

const (
	BasisPerOccurrence LimitBasis = "per_occurrence"
	BasisAggregate     LimitBasis = "aggregate"
)

// InsuranceRequirement is one contractual minimum for one coverage type,
// supplied by the requirement store per contract/project.
type InsuranceRequirement struct {
	CoverageType certificate.CoverageType `json:"coverage_type"`
	MinimumLimit values.Money             `json:"minimum_limit"`
	LimitBasis   LimitBasis               `json:"limit_basis"`
	// MaximumExcess caps the deductible the counterparty may carry; nil
	// means the contract imposes no cap.
	MaximumExcess *values.Money `json:"maximum_excess,omitempty"`

	RequirePrincipalIndemnity  bool `json:"require_principal_indemnity"`
	RequireCrossLiability      bool `json:"require_cross_liability"`
	RequireWaiverOfSubrogation bool `json:"require_waiver_of_subrogation"`

	// RequiredNaming is the weakest naming tier that satisfies the contract;
	// NamingNone means naming is not required.
	RequiredNaming certificate.NamingTier `json:"required_naming"`
}
