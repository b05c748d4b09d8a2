package fraud

import (
	"fmt"

	"github.com/juggajay/risksure-backend/internal/domain/certificate"
	"github.com/juggajay/risksure-backend/internal/domain/errors"
	"github.com/juggajay/risksure-backend/internal/domain/values"
	"github.com/juggajay/risksure-backend/internal/domain/verification"
)

// Input carries one document's evaluation inputs. Certificate is required;
// every other field is an independent capability flag that gates exactly one
// group of checks (metadata gates the metadata checks, history gates the
// duplicate check).
type Input struct {
	Certificate *certificate.ExtractedCertificate
	Metadata    *certificate.DocumentMetadata
	Filename    string
	Fingerprint values.Fingerprint
	History     []certificate.SubmissionHistoryEntry
}

// Service runs the fraud rule set over extracted certificate data. It holds
// no mutable state: every evaluation is a pure function of its input, so one
// Service is safe for concurrent use across documents.
type Service struct{}

// NewService creates a fraud analysis service.
func NewService() *Service {
	return &Service{}
}

// Evaluate runs every fraud rule that its inputs enable and aggregates the
// findings into a single graded risk assessment. Rule outcomes are results,
// never errors: the only error is a nil certificate.
func (s *Service) Evaluate(in Input) (*verification.FraudAnalysisResult, error) {
	if in.Certificate == nil {
		return nil, errors.ErrCertificateRequired
	}

	var checks []verification.FraudCheckResult

	if in.Metadata != nil {
		checks = append(checks, analyzeMetadata(in.Metadata)...)
	}

	checks = append(checks, matchTemplate(
		in.Certificate.InsurerName,
		in.Certificate.PolicyNumber,
		in.Certificate.Elements,
	)...)

	checks = append(checks, validateDataLogic(in.Certificate)...)

	if len(in.History) > 0 {
		checks = append(checks, detectDuplicate(
			in.Fingerprint,
			in.Filename,
			in.Certificate.PolicyNumber,
			in.Certificate.PeriodEnd,
			in.History,
		))
	}

	return aggregate(checks), nil
}

// aggregate composes individual findings into the overall verdict:
// max-score base, cumulative-warning bonus, graded level, and the blocking
// decision. Blocking triggers on either a critical level or two failed
// checks with no dominant score.
func aggregate(checks []verification.FraudCheckResult) *verification.FraudAnalysisResult {
	overall := 0
	warnings := 0
	failures := 0

	for _, c := range checks {
		if c.RiskScore > overall {
			overall = c.RiskScore
		}
		switch c.Status {
		case verification.StatusWarning:
			warnings++
		case verification.StatusFail:
			failures++
		}
	}

	if warnings > warningBonusThreshold {
		overall += (warnings - warningBonusThreshold) * warningBonusPerExtra
	}
	if overall > verification.MaxRiskScore {
		overall = verification.MaxRiskScore
	}

	level := riskLevelFor(overall)
	blocked := level == verification.RiskCritical || failures >= blockingFailCount

	return &verification.FraudAnalysisResult{
		OverallRiskScore: overall,
		RiskLevel:        level,
		Blocked:          blocked,
		Recommendation:   recommend(overall, level, blocked),
		Checks:           checks,
		EvidenceSummary:  collectEvidence(checks),
	}
}

func riskLevelFor(score int) verification.RiskLevel {
	switch {
	case score >= riskLevelCritical:
		return verification.RiskCritical
	case score >= riskLevelHigh:
		return verification.RiskHigh
	case score >= riskLevelMedium:
		return verification.RiskMedium
	default:
		return verification.RiskLow
	}
}

func recommend(score int, level verification.RiskLevel, blocked bool) string {
	switch {
	case blocked:
		return fmt.Sprintf("BLOCK: fraud risk score %d (%s). Do not accept this certificate without manual investigation.", score, level)
	case level == verification.RiskHigh:
		return fmt.Sprintf("REVIEW: fraud risk score %d (%s). Route to manual review before acceptance.", score, level)
	default:
		return fmt.Sprintf("ACCEPT: fraud risk score %d (%s). No blocking fraud indicators.", score, level)
	}
}

// collectEvidence gathers the detail and evidence strings of every non-pass
// check, preserving check order.
func collectEvidence(checks []verification.FraudCheckResult) []string {
	var summary []string
	for _, c := range checks {
		if c.Status == verification.StatusPass {
			continue
		}
		summary = append(summary, c.Detail)
		if c.Evidence != "" {
			summary = append(summary, c.Evidence)
		}
	}
	return summary
}
