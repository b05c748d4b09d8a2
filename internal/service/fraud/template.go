package fraud

import (
	"fmt"
	"strings"

	"github.com/juggajay/risksure-backend/internal/domain/verification"
)

// matchTemplate validates a document against the issuing insurer's known
// conventions. An insurer without a template on file degrades to a single
// warning rather than an error: the remaining fraud checks still run.
func matchTemplate(insurerName, policyNumber string, elements []string) []verification.FraudCheckResult {
	tmpl := lookupTemplate(insurerName)
	if tmpl == nil {
		return []verification.FraudCheckResult{{
			Type:      verification.CheckTemplateMatch,
			Label:     "Template match",
			Status:    verification.StatusWarning,
			RiskScore: ScoreUnknownTemplate,
			Detail:    fmt.Sprintf("unrecognized template: no format on file for insurer %q", insurerName),
		}}
	}

	results := []verification.FraudCheckResult{{
		Type:      verification.CheckTemplateMatch,
		Label:     "Template match",
		Status:    verification.StatusPass,
		RiskScore: 0,
		Detail:    fmt.Sprintf("insurer %q matched template %q", insurerName, tmpl.key),
	}}

	results = append(results, checkPolicyNumberFormat(tmpl, policyNumber))
	results = append(results, checkTemplateElements(tmpl, elements))
	return results
}

func lookupTemplate(insurerName string) *insurerTemplate {
	name := strings.ToLower(insurerName)
	for i := range insurerTemplates {
		if strings.Contains(name, insurerTemplates[i].key) {
			return &insurerTemplates[i]
		}
	}
	return nil
}

func checkPolicyNumberFormat(tmpl *insurerTemplate, policyNumber string) verification.FraudCheckResult {
	result := verification.FraudCheckResult{
		Type:  verification.CheckPolicyNumberFormat,
		Label: "Policy number format",
	}

	if tmpl.policyNumber.MatchString(strings.TrimSpace(policyNumber)) {
		result.Status = verification.StatusPass
		result.RiskScore = 0
		result.Detail = fmt.Sprintf("policy number %q matches the %s format", policyNumber, tmpl.key)
		return result
	}

	result.Status = verification.StatusFail
	result.RiskScore = ScorePolicyNumberMismatch
	result.Detail = fmt.Sprintf("policy number %q does not match the %s format", policyNumber, tmpl.key)
	result.Evidence = fmt.Sprintf("policy number: %s, expected pattern: %s", policyNumber, tmpl.policyNumber.String())
	return result
}

func checkTemplateElements(tmpl *insurerTemplate, elements []string) verification.FraudCheckResult {
	result := verification.FraudCheckResult{
		Type:  verification.CheckTemplateElements,
		Label: "Template elements",
	}

	present := make(map[string]bool, len(elements))
	for _, el := range elements {
		present[strings.ToLower(strings.TrimSpace(el))] = true
	}

	var missing []string
	for _, expected := range tmpl.expectedElements {
		if !present[expected] {
			missing = append(missing, expected)
		}
	}

	if len(missing) == 0 {
		result.Status = verification.StatusPass
		result.RiskScore = 0
		result.Detail = "all expected structural elements detected"
		return result
	}

	score := len(missing) * ScorePerMissingElement
	if score > ScoreMissingElementCap {
		score = ScoreMissingElementCap
	}

	result.Status = verification.StatusWarning
	result.RiskScore = score
	result.Detail = fmt.Sprintf("%d expected structural element(s) missing", len(missing))
	result.Evidence = "missing elements: " + strings.Join(missing, ", ")
	return result
}
