package verdict

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/juggajay/risksure-backend/internal/domain/verification"
)

// Combine merges the compliance result and the fraud analysis into the final
// decision. Compliance sets the baseline status; fraud can only make it
// worse. A blocked fraud verdict forces a failure with a critical deficiency,
// and a high (but not blocking) fraud risk downgrades an otherwise clean
// compliance pass to review.
func Combine(
	compliance *verification.VerificationResult,
	fraud *verification.FraudAnalysisResult,
	now time.Time,
) *verification.FinalVerdict {
	final := &verification.FinalVerdict{
		ID:           uuid.New(),
		Status:       compliance.Status,
		Checks:       append([]verification.CheckEntry(nil), compliance.Checks...),
		Deficiencies: append([]verification.CoverageDeficiency(nil), compliance.Deficiencies...),
		Evidence:     append([]string(nil), fraud.EvidenceSummary...),
		Confidence:   compliance.Confidence,

		FraudRiskScore: fraud.OverallRiskScore,
		FraudRiskLevel: fraud.RiskLevel,

		EvaluatedAt: now,
	}

	switch {
	case fraud.Blocked:
		final.Status = verification.VerificationFail
		final.Deficiencies = append(final.Deficiencies, verification.CoverageDeficiency{
			Type:     verification.DeficiencyFraudDetected,
			Severity: verification.SeverityCritical,
			Description: fmt.Sprintf("fraud analysis blocked this submission: risk score %d (%s)",
				fraud.OverallRiskScore, fraud.RiskLevel),
			Actual: fraud.Recommendation,
		})
		for _, c := range fraud.Checks {
			if c.Status != verification.StatusFail {
				continue
			}
			final.Checks = append(final.Checks, verification.CheckEntry{
				Type:        c.Type,
				Description: c.Label,
				Status:      verification.StatusFail,
				Detail:      c.Detail,
			})
		}

	case fraud.RiskLevel == verification.RiskHigh && final.Status == verification.VerificationPass:
		final.Status = verification.VerificationReview
		final.Checks = append(final.Checks, verification.CheckEntry{
			Type:        verification.CheckFraudDetected,
			Description: "fraud risk",
			Status:      verification.StatusWarning,
			Detail: fmt.Sprintf("elevated fraud risk score %d (%s) requires manual review",
				fraud.OverallRiskScore, fraud.RiskLevel),
		})
	}

	return final
}
