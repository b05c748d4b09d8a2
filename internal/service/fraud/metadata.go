package fraud

import (
	"fmt"
	"math"
	"strings"

	"github.com/juggajay/risksure-backend/internal/domain/certificate"
	"github.com/juggajay/risksure-backend/internal/domain/verification"
)

// analyzeMetadata scores file-level provenance signals: the gap between
// creation and modification timestamps, and the tool that produced the
// document. Returns one result per sub-check; callers skip it entirely when
// no metadata was supplied.
func analyzeMetadata(meta *certificate.DocumentMetadata) []verification.FraudCheckResult {
	return []verification.FraudCheckResult{
		checkModificationGap(meta),
		checkAuthoringSoftware(meta.Producer),
	}
}

func checkModificationGap(meta *certificate.DocumentMetadata) verification.FraudCheckResult {
	result := verification.FraudCheckResult{
		Type:  verification.CheckMetadataModification,
		Label: "Document modification",
	}

	if meta.ModifiedAt.Equal(meta.CreatedAt) {
		result.Status = verification.StatusPass
		result.RiskScore = 0
		result.Detail = "document has not been modified since creation"
		return result
	}

	gapDays := math.Abs(meta.ModifiedAt.Sub(meta.CreatedAt).Hours()) / 24
	score := int(gapDays * modificationScalePerDay)
	if score > ScoreModificationCap {
		score = ScoreModificationCap
	}

	result.Status = verification.StatusWarning
	result.RiskScore = score
	result.Detail = fmt.Sprintf("document modified %.0f day(s) after creation", gapDays)
	result.Evidence = fmt.Sprintf("created %s, modified %s",
		meta.CreatedAt.Format("2006-01-02 15:04:05"),
		meta.ModifiedAt.Format("2006-01-02 15:04:05"))
	return result
}

func checkAuthoringSoftware(producer string) verification.FraudCheckResult {
	result := verification.FraudCheckResult{
		Type:  verification.CheckMetadataSoftware,
		Label: "Authoring software",
	}

	name := strings.ToLower(strings.TrimSpace(producer))

	// Deny list first: an image-editor hit outranks any allow-list match.
	for _, denied := range softwareDenyList {
		if strings.Contains(name, denied) {
			result.Status = verification.StatusFail
			result.RiskScore = ScoreDeniedSoftware
			result.Detail = fmt.Sprintf("document produced by image editing software %q", producer)
			result.Evidence = "producer: " + producer
			return result
		}
	}

	for _, allowed := range softwareAllowList {
		if strings.Contains(name, allowed) {
			result.Status = verification.StatusPass
			result.RiskScore = 0
			result.Detail = fmt.Sprintf("document produced by recognized software %q", producer)
			return result
		}
	}

	result.Status = verification.StatusWarning
	result.RiskScore = ScoreUnknownSoftware
	result.Detail = fmt.Sprintf("document produced by unrecognized software %q", producer)
	result.Evidence = "producer: " + producer
	return result
}
