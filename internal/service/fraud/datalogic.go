package fraud

import (
	"fmt"

	"github.com/juggajay/risksure-backend/internal/domain/certificate"
	"github.com/juggajay/risksure-backend/internal/domain/values"
	"github.com/juggajay/risksure-backend/internal/domain/verification"
)

// lowLiabilityThreshold is the minimum recommended limit for liability
// covers. Limits below it on public or products liability draw a warning;
// other coverage types are deliberately excluded from the low-limit check.
var lowLiabilityThreshold = values.AUDFromFloat(5_000_000)

// validateDataLogic runs internal-consistency checks over the already
// extracted fields: identifier checksum, date-range sanity and coverage
// limit sanity. It never re-extracts anything.
func validateDataLogic(cert *certificate.ExtractedCertificate) []verification.FraudCheckResult {
	results := []verification.FraudCheckResult{
		checkABN(cert.InsuredABN),
		checkDateLogic(cert),
	}
	results = append(results, checkCoverageLimits(cert.Coverages)...)
	return results
}

func checkABN(raw string) verification.FraudCheckResult {
	result := verification.FraudCheckResult{
		Type:  verification.CheckABNChecksum,
		Label: "ABN checksum",
	}

	validation := values.ValidateABN(raw)
	if validation.Valid {
		result.Status = verification.StatusPass
		result.RiskScore = 0
		result.Detail = "insured party ABN passes checksum"
		return result
	}

	result.Status = verification.StatusFail
	result.RiskScore = ScoreInvalidABN
	result.Detail = "insured party ABN is invalid: " + validation.Reason
	result.Evidence = "extracted ABN: " + raw
	return result
}

func checkDateLogic(cert *certificate.ExtractedCertificate) verification.FraudCheckResult {
	result := verification.FraudCheckResult{
		Type:  verification.CheckDateLogic,
		Label: "Coverage period dates",
	}

	start, end := cert.PeriodStart, cert.PeriodEnd

	if !end.After(start) {
		result.Status = verification.StatusFail
		result.RiskScore = ScoreInvertedDates
		result.Detail = "coverage period ends on or before it starts"
		result.Evidence = fmt.Sprintf("period %s to %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
		return result
	}

	spanDays := int(end.Sub(start).Hours() / 24)
	switch {
	case spanDays > longPolicyPeriodDays:
		result.Status = verification.StatusWarning
		result.RiskScore = ScoreLongPolicyPeriod
		result.Detail = fmt.Sprintf("coverage period spans %d days, beyond a standard annual policy", spanDays)
	case spanDays < shortPolicyPeriodDays:
		result.Status = verification.StatusWarning
		result.RiskScore = ScoreShortPolicyPeriod
		result.Detail = fmt.Sprintf("coverage period spans only %d days", spanDays)
	default:
		result.Status = verification.StatusPass
		result.RiskScore = 0
		result.Detail = fmt.Sprintf("coverage period spans %d days", spanDays)
	}
	return result
}

// checkCoverageLimits emits one result per coverage that fails a sanity
// test. Low limits only draw a warning on the liability covers; a low limit
// on any other coverage type is a policy exclusion, not an oversight.
func checkCoverageLimits(coverages []certificate.Coverage) []verification.FraudCheckResult {
	var results []verification.FraudCheckResult

	for _, cov := range coverages {
		if !cov.Limit.IsPositive() {
			results = append(results, verification.FraudCheckResult{
				Type:      verification.CheckCoverageLimit,
				Label:     "Coverage limit",
				Status:    verification.StatusFail,
				RiskScore: ScoreNonPositiveLimit,
				Detail:    fmt.Sprintf("%s limit is not a positive amount", cov.Type),
				Evidence:  fmt.Sprintf("%s limit: %s", cov.Type, cov.Limit.StringWithCode()),
			})
			continue
		}

		if isLiabilityCover(cov.Type) && cov.Limit.LessThan(lowLiabilityThreshold) {
			results = append(results, verification.FraudCheckResult{
				Type:      verification.CheckCoverageLimit,
				Label:     "Coverage limit",
				Status:    verification.StatusWarning,
				RiskScore: ScoreLowLiabilityLimit,
				Detail: fmt.Sprintf("%s limit %s is below the recommended minimum %s",
					cov.Type, cov.Limit.String(), lowLiabilityThreshold.String()),
			})
		}
	}

	return results
}

func isLiabilityCover(ct certificate.CoverageType) bool {
	return ct == certificate.CoveragePublicLiability || ct == certificate.CoverageProductsLiability
}
