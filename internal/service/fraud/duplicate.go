package fraud

import (
	"fmt"
	"time"

	"github.com/juggajay/risksure-backend/internal/domain/certificate"
	"github.com/juggajay/risksure-backend/internal/domain/values"
	"github.com/juggajay/risksure-backend/internal/domain/verification"
)

// detectDuplicate compares the current document against the submission
// history for the same relationship. A byte-identical resubmission is
// informational and short-circuits: the same document cannot also be a
// manipulation of itself. The signal this rule guards against is the silent
// expiry-date edit, where a previously seen policy number reappears with a
// different coverage end.
func detectDuplicate(
	fingerprint values.Fingerprint,
	filename string,
	policyNumber string,
	periodEnd time.Time,
	history []certificate.SubmissionHistoryEntry,
) verification.FraudCheckResult {
	result := verification.FraudCheckResult{
		Type:  verification.CheckDuplicateSubmission,
		Label: "Duplicate submission",
	}

	for _, prior := range history {
		if !fingerprint.IsEmpty() && fingerprint.Equal(prior.Fingerprint) {
			result.Status = verification.StatusInfo
			result.RiskScore = ScoreIdenticalResubmission
			result.Detail = fmt.Sprintf("%s is an identical resubmission of %s, first uploaded %s",
				filename, prior.Filename, prior.UploadedAt.Format("2006-01-02"))
			return result
		}
	}

	for _, prior := range history {
		if prior.PolicyNumber == "" || prior.PolicyNumber != policyNumber {
			continue
		}
		if !prior.PeriodEnd.Equal(periodEnd) {
			result.Type = verification.CheckDateManipulation
			result.Label = "Date manipulation"
			result.Status = verification.StatusFail
			result.RiskScore = ScoreDateManipulation
			result.Detail = fmt.Sprintf("policy %s resubmitted with a changed coverage end date", policyNumber)
			result.Evidence = fmt.Sprintf("previous end date %s, current end date %s",
				prior.PeriodEnd.Format("2006-01-02"), periodEnd.Format("2006-01-02"))
			return result
		}
	}

	result.Status = verification.StatusPass
	result.RiskScore = 0
	result.Detail = "no prior submission conflicts with this document"
	return result
}
