package verification

import (
	"time"

	"github.com/google/uuid"
)

// CheckStatus is the outcome of one rule check.
type CheckStatus string

const (
	StatusPass    CheckStatus = "pass"
	StatusWarning CheckStatus = "warning"
	StatusFail    CheckStatus = "fail"
	StatusInfo    CheckStatus = "info"
)

// RiskLevel grades an aggregate fraud risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Severity tiers a coverage deficiency.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
)

// Status is the overall verdict of a compliance verification or the final
// combined decision.
type Status string

const (
	VerificationPass   Status = "pass"
	VerificationFail   Status = "fail"
	VerificationReview Status = "review"
)

// CheckType identifies which rule produced a check result.
type CheckType string

const (
	CheckABNChecksum          CheckType = "abn_checksum"
	CheckDateLogic            CheckType = "date_logic"
	CheckCoverageLimit        CheckType = "coverage_limit"
	CheckMetadataModification CheckType = "metadata_modification"
	CheckMetadataSoftware     CheckType = "metadata_software"
	CheckTemplateMatch        CheckType = "template_match"
	CheckPolicyNumberFormat   CheckType = "policy_number_format"
	CheckTemplateElements     CheckType = "template_elements"
	CheckDuplicateSubmission  CheckType = "duplicate_submission"
	CheckDateManipulation     CheckType = "date_manipulation"

	CheckMissingCoverage CheckType = "missing_coverage"
	CheckMinimumLimit    CheckType = "minimum_limit"
	CheckMaximumExcess   CheckType = "maximum_excess"
	CheckEndorsement     CheckType = "endorsement"
	CheckPrincipalNaming CheckType = "principal_naming"
	CheckJurisdiction    CheckType = "jurisdiction"
	CheckPolicyValidity  CheckType = "policy_validity"
	CheckProjectPeriod   CheckType = "project_period"
	CheckInsurerLicence  CheckType = "insurer_licence"
	CheckIdentifierMatch CheckType = "identifier_match"
	CheckConfidence      CheckType = "confidence_check"
	CheckFraudDetected   CheckType = "fraud_detected"
)

// DeficiencyType classifies one unmet contractual requirement.
type DeficiencyType string

const (
	DeficiencyMissingCoverage     DeficiencyType = "missing_coverage"
	DeficiencyInsufficientLimit   DeficiencyType = "insufficient_limit"
	DeficiencyExcessTooHigh       DeficiencyType = "excess_too_high"
	DeficiencyMissingEndorsement  DeficiencyType = "missing_endorsement"
	DeficiencyInadequateNaming    DeficiencyType = "inadequate_principal_naming"
	DeficiencyJurisdiction        DeficiencyType = "jurisdiction_mismatch"
	DeficiencyPolicyExpired       DeficiencyType = "policy_expired"
	DeficiencyProjectPeriodGap    DeficiencyType = "project_period_gap"
	DeficiencyUnlicensedInsurer   DeficiencyType = "unlicensed_insurer"
	DeficiencyIdentifierMismatch  DeficiencyType = "identifier_mismatch"
	DeficiencyFraudDetected       DeficiencyType = "fraud_detected"
)

// MaxRiskScore bounds every individual and aggregate fraud risk score.
const MaxRiskScore = 100

// FraudCheckResult is one fraud rule's finding. Scores are integers in
// [0,100]; the aggregate only ever reads this uniform shape.
type FraudCheckResult struct {
	Type      CheckType   `json:"type"`
	Label     string      `json:"label"`
	Status    CheckStatus `json:"status"`
	RiskScore int         `json:"risk_score"`
	Detail    string      `json:"detail"`
	Evidence  string      `json:"evidence,omitempty"`
}

// FraudAnalysisResult is the aggregate fraud verdict for one document.
type FraudAnalysisResult struct {
	OverallRiskScore int                `json:"overall_risk_score"`
	RiskLevel        RiskLevel          `json:"risk_level"`
	Blocked          bool               `json:"is_blocked"`
	Recommendation   string             `json:"recommendation"`
	Checks           []FraudCheckResult `json:"checks"`
	EvidenceSummary  []string           `json:"evidence_summary"`
}

// CoverageDeficiency is one unmet requirement with its severity tier.
type CoverageDeficiency struct {
	Type        DeficiencyType `json:"type"`
	Severity    Severity       `json:"severity"`
	Description string         `json:"description"`
	Required    string         `json:"required,omitempty"`
	Actual      string         `json:"actual,omitempty"`
}

// CheckEntry is one compliance check line in a verification result.
type CheckEntry struct {
	Type        CheckType   `json:"type"`
	Description string      `json:"description"`
	Status      CheckStatus `json:"status"`
	Detail      string      `json:"detail,omitempty"`
}

// VerificationResult is the aggregate compliance verdict.
type VerificationResult struct {
	Status       Status               `json:"status"`
	Checks       []CheckEntry         `json:"checks"`
	Deficiencies []CoverageDeficiency `json:"deficiencies"`
	Confidence   float64              `json:"confidence"`
}

// HasCriticalDeficiency reports whether any deficiency is critical severity.
func (r *VerificationResult) HasCriticalDeficiency() bool {
	for _, d := range r.Deficiencies {
		if d.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// FinalVerdict is the combined fraud + compliance decision handed to the
// decision sink.
type FinalVerdict struct {
	ID           uuid.UUID            `json:"id"`
	Status       Status               `json:"status"`
	Checks       []CheckEntry         `json:"checks"`
	Deficiencies []CoverageDeficiency `json:"deficiencies"`
	Evidence     []string             `json:"evidence"`
	Confidence   float64              `json:"confidence"`

	FraudRiskScore int       `json:"fraud_risk_score"`
	FraudRiskLevel RiskLevel `json:"fraud_risk_level"`

	EvaluatedAt time.Time `json:"evaluated_at"`
}
