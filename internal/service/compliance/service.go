package compliance

import (
	"fmt"
	"strings"
	"time"

	"github.com/juggajay/risksure-backend/internal/domain/certificate"
	"github.com/juggajay/risksure-backend/internal/domain/errors"
	"github.com/juggajay/risksure-backend/internal/domain/requirement"
	"github.com/juggajay/risksure-backend/internal/domain/values"
	"github.com/juggajay/risksure-backend/internal/domain/verification"
)

// Options are the optional project-level inputs. Each field independently
// gates exactly one cross-cutting check: a nil project end date skips the
// project-period check, an empty jurisdiction skips the workers-comp
// jurisdiction check, an empty counterparty ABN skips the identifier match.
type Options struct {
	ProjectEndDate          *time.Time
	ProjectJurisdiction     string
	ExpectedCounterpartyABN string
}

// Service checks extracted coverage terms against contractual requirements.
// It holds no mutable state and is safe for concurrent use.
type Service struct{}

// NewService creates a compliance verification service.
func NewService() *Service {
	return &Service{}
}

// Evaluate verifies the certificate against every requirement plus the
// cross-cutting policy checks, as of the supplied instant. Unmet
// requirements become severity-classified deficiencies; nothing inside the
// rule set returns an error.
func (s *Service) Evaluate(
	cert *certificate.ExtractedCertificate,
	requirements []requirement.InsuranceRequirement,
	opts Options,
	now time.Time,
) (*verification.VerificationResult, error) {
	if cert == nil {
		return nil, errors.ErrCertificateRequired
	}

	result := &verification.VerificationResult{
		Confidence: cert.Confidence.Score(),
	}

	for _, req := range requirements {
		verifyRequirement(result, cert, req, opts.ProjectJurisdiction)
	}

	checkPolicyValidity(result, cert, now)
	if opts.ProjectEndDate != nil {
		checkProjectPeriod(result, cert, *opts.ProjectEndDate)
	}
	checkInsurerLicence(result, cert.InsurerName)
	if opts.ExpectedCounterpartyABN != "" {
		checkIdentifierMatch(result, cert.InsuredABN, opts.ExpectedCounterpartyABN)
	}
	checkExtractionConfidence(result, cert.Confidence)

	result.Status = overallStatus(result)
	return result, nil
}

// verifyRequirement appends the per-requirement checks and deficiencies for
// one contractual line of cover.
func verifyRequirement(
	result *verification.VerificationResult,
	cert *certificate.ExtractedCertificate,
	req requirement.InsuranceRequirement,
	projectJurisdiction string,
) {
	cov := cert.FindCoverage(req.CoverageType)
	if cov == nil {
		addFailure(result, verification.CheckMissingCoverage,
			fmt.Sprintf("%s coverage", req.CoverageType),
			fmt.Sprintf("certificate carries no %s coverage", req.CoverageType),
			verification.CoverageDeficiency{
				Type:        verification.DeficiencyMissingCoverage,
				Severity:    verification.SeverityCritical,
				Description: fmt.Sprintf("required %s coverage is missing", req.CoverageType),
				Required:    fmt.Sprintf("%s at %s", req.CoverageType, req.MinimumLimit.String()),
				Actual:      "not on certificate",
			})
		return
	}

	checkMinimumLimit(result, cov, req)
	checkMaximumExcess(result, cov, req)
	checkEndorsements(result, cov, req)
	checkPrincipalNaming(result, cov, req)

	if req.CoverageType == certificate.CoverageWorkersCompensation && projectJurisdiction != "" {
		checkJurisdiction(result, cov, projectJurisdiction)
	}
}

func checkMinimumLimit(result *verification.VerificationResult, cov *certificate.Coverage, req requirement.InsuranceRequirement) {
	desc := fmt.Sprintf("%s minimum limit", req.CoverageType)

	if cov.Limit.LessThan(req.MinimumLimit) {
		addFailure(result, verification.CheckMinimumLimit, desc,
			fmt.Sprintf("limit %s is below the required %s (%s)",
				cov.Limit.String(), req.MinimumLimit.String(), req.LimitBasis),
			verification.CoverageDeficiency{
				Type:        verification.DeficiencyInsufficientLimit,
				Severity:    verification.SeverityMajor,
				Description: fmt.Sprintf("%s limit does not meet the contractual minimum", req.CoverageType),
				Required:    req.MinimumLimit.String(),
				Actual:      cov.Limit.String(),
			})
		return
	}

	addPass(result, verification.CheckMinimumLimit, desc,
		fmt.Sprintf("limit %s meets the required %s", cov.Limit.String(), req.MinimumLimit.String()))
}

func checkMaximumExcess(result *verification.VerificationResult, cov *certificate.Coverage, req requirement.InsuranceRequirement) {
	if req.MaximumExcess == nil {
		return
	}
	desc := fmt.Sprintf("%s maximum excess", req.CoverageType)

	if cov.Excess.GreaterThan(*req.MaximumExcess) {
		addFailure(result, verification.CheckMaximumExcess, desc,
			fmt.Sprintf("excess %s exceeds the permitted %s",
				cov.Excess.String(), req.MaximumExcess.String()),
			verification.CoverageDeficiency{
				Type:        verification.DeficiencyExcessTooHigh,
				Severity:    verification.SeverityMinor,
				Description: fmt.Sprintf("%s excess exceeds the contractual cap", req.CoverageType),
				Required:    "at most " + req.MaximumExcess.String(),
				Actual:      cov.Excess.String(),
			})
		return
	}

	addPass(result, verification.CheckMaximumExcess, desc,
		fmt.Sprintf("excess %s is within the permitted %s", cov.Excess.String(), req.MaximumExcess.String()))
}

func checkEndorsements(result *verification.VerificationResult, cov *certificate.Coverage, req requirement.InsuranceRequirement) {
	endorsements := []struct {
		name     string
		required bool
		present  bool
	}{
		{"principal indemnity", req.RequirePrincipalIndemnity, cov.PrincipalIndemnity},
		{"cross liability", req.RequireCrossLiability, cov.CrossLiability},
		{"waiver of subrogation", req.RequireWaiverOfSubrogation, cov.WaiverOfSubrogation},
	}

	for _, e := range endorsements {
		if !e.required {
			continue
		}
		desc := fmt.Sprintf("%s %s endorsement", req.CoverageType, e.name)

		if !e.present {
			addFailure(result, verification.CheckEndorsement, desc,
				fmt.Sprintf("required %s endorsement is not noted on the certificate", e.name),
				verification.CoverageDeficiency{
					Type:        verification.DeficiencyMissingEndorsement,
					Severity:    verification.SeverityMajor,
					Description: fmt.Sprintf("%s coverage lacks the required %s endorsement", req.CoverageType, e.name),
					Required:    e.name + " endorsement",
					Actual:      "not noted",
				})
			continue
		}

		addPass(result, verification.CheckEndorsement, desc, e.name+" endorsement noted")
	}
}

// checkPrincipalNaming applies the three-way tier comparison. Interested
// party status grants notice rights only, not principal protection, so it
// never satisfies a principal_named requirement even though both tiers are
// "some" naming.
func checkPrincipalNaming(result *verification.VerificationResult, cov *certificate.Coverage, req requirement.InsuranceRequirement) {
	if req.RequiredNaming == "" || req.RequiredNaming == certificate.NamingNone {
		return
	}
	desc := fmt.Sprintf("%s principal naming", req.CoverageType)

	actual := cov.Naming
	if actual == "" {
		actual = certificate.NamingNone
	}

	switch {
	case actual == certificate.NamingNone:
		severity := verification.SeverityMinor
		if req.RequiredNaming == certificate.NamingPrincipalNamed {
			severity = verification.SeverityMajor
		}
		addFailure(result, verification.CheckPrincipalNaming, desc,
			fmt.Sprintf("required naming tier %s, none noted", req.RequiredNaming),
			verification.CoverageDeficiency{
				Type:        verification.DeficiencyInadequateNaming,
				Severity:    severity,
				Description: fmt.Sprintf("%s coverage does not name the principal", req.CoverageType),
				Required:    string(req.RequiredNaming),
				Actual:      string(certificate.NamingNone),
			})

	case req.RequiredNaming == certificate.NamingPrincipalNamed && actual == certificate.NamingInterestedParty:
		addFailure(result, verification.CheckPrincipalNaming, desc,
			"interested party status provides weaker protection than the required principal naming",
			verification.CoverageDeficiency{
				Type:        verification.DeficiencyInadequateNaming,
				Severity:    verification.SeverityMajor,
				Description: fmt.Sprintf("%s coverage notes the principal as interested party only", req.CoverageType),
				Required:    string(certificate.NamingPrincipalNamed),
				Actual:      string(certificate.NamingInterestedParty),
			})

	default:
		// Exact match, or the stronger tier satisfying the weaker one.
		addPass(result, verification.CheckPrincipalNaming, desc,
			fmt.Sprintf("naming tier %s satisfies the required %s", actual, req.RequiredNaming))
	}
}

func checkJurisdiction(result *verification.VerificationResult, cov *certificate.Coverage, projectJurisdiction string) {
	desc := "workers compensation jurisdiction"

	if strings.EqualFold(strings.TrimSpace(cov.Jurisdiction), strings.TrimSpace(projectJurisdiction)) {
		addPass(result, verification.CheckJurisdiction, desc,
			fmt.Sprintf("policy is written for %s", projectJurisdiction))
		return
	}

	addFailure(result, verification.CheckJurisdiction, desc,
		fmt.Sprintf("policy jurisdiction %q does not cover the project jurisdiction %q",
			cov.Jurisdiction, projectJurisdiction),
		verification.CoverageDeficiency{
			Type:        verification.DeficiencyJurisdiction,
			Severity:    verification.SeverityCritical,
			Description: "workers compensation policy does not cover the project jurisdiction",
			Required:    projectJurisdiction,
			Actual:      cov.Jurisdiction,
		})
}

func checkPolicyValidity(result *verification.VerificationResult, cert *certificate.ExtractedCertificate, now time.Time) {
	desc := "policy validity"

	switch {
	case cert.PeriodEnd.Before(now):
		addFailure(result, verification.CheckPolicyValidity, desc,
			fmt.Sprintf("policy expired on %s", cert.PeriodEnd.Format("2006-01-02")),
			verification.CoverageDeficiency{
				Type:        verification.DeficiencyPolicyExpired,
				Severity:    verification.SeverityCritical,
				Description: "certificate attests to a policy that is no longer in force",
				Required:    "in force as at " + now.Format("2006-01-02"),
				Actual:      "expired " + cert.PeriodEnd.Format("2006-01-02"),
			})

	case cert.PeriodEnd.Sub(now) <= expiryWarningWindow:
		addWarning(result, verification.CheckPolicyValidity, desc,
			fmt.Sprintf("policy expires %s, within 30 days", cert.PeriodEnd.Format("2006-01-02")))

	default:
		addPass(result, verification.CheckPolicyValidity, desc,
			fmt.Sprintf("policy in force until %s", cert.PeriodEnd.Format("2006-01-02")))
	}
}

func checkProjectPeriod(result *verification.VerificationResult, cert *certificate.ExtractedCertificate, projectEnd time.Time) {
	desc := "project period coverage"

	if cert.PeriodEnd.Before(projectEnd) {
		addFailure(result, verification.CheckProjectPeriod, desc,
			fmt.Sprintf("policy ends %s, before the contractual project end %s",
				cert.PeriodEnd.Format("2006-01-02"), projectEnd.Format("2006-01-02")),
			verification.CoverageDeficiency{
				Type:        verification.DeficiencyProjectPeriodGap,
				Severity:    verification.SeverityMajor,
				Description: "coverage lapses before the project completes",
				Required:    "in force until " + projectEnd.Format("2006-01-02"),
				Actual:      "in force until " + cert.PeriodEnd.Format("2006-01-02"),
			})
		return
	}

	addPass(result, verification.CheckProjectPeriod, desc,
		"policy covers the full contractual project period")
}

func checkInsurerLicence(result *verification.VerificationResult, insurerName string) {
	desc := "insurer licensing"
	name := strings.ToLower(insurerName)

	for _, licensed := range licensedInsurers {
		if strings.Contains(name, licensed) {
			addPass(result, verification.CheckInsurerLicence, desc,
				fmt.Sprintf("%q is a licensed insurer", insurerName))
			return
		}
	}

	addFailure(result, verification.CheckInsurerLicence, desc,
		fmt.Sprintf("%q is not on the licensed insurer list", insurerName),
		verification.CoverageDeficiency{
			Type:        verification.DeficiencyUnlicensedInsurer,
			Severity:    verification.SeverityCritical,
			Description: "certificate names an insurer that is not licensed",
			Required:    "a licensed insurer",
			Actual:      insurerName,
		})
}

func checkIdentifierMatch(result *verification.VerificationResult, insuredABN, expectedABN string) {
	desc := "insured identifier match"

	if normalizeABN(insuredABN) == normalizeABN(expectedABN) {
		addPass(result, verification.CheckIdentifierMatch, desc,
			"certificate identifies the expected counterparty")
		return
	}

	addFailure(result, verification.CheckIdentifierMatch, desc,
		fmt.Sprintf("insured ABN %s does not match the expected counterparty ABN %s",
			insuredABN, expectedABN),
		verification.CoverageDeficiency{
			Type:        verification.DeficiencyIdentifierMismatch,
			Severity:    verification.SeverityCritical,
			Description: "certificate does not identify the expected counterparty",
			Required:    expectedABN,
			Actual:      insuredABN,
		})
}

// checkExtractionConfidence forces human review when the extraction itself
// is not trustworthy enough, even if every rule passed.
func checkExtractionConfidence(result *verification.VerificationResult, confidence values.Confidence) {
	if !confidence.RequiresReview() {
		return
	}

	addWarning(result, verification.CheckConfidence, "extraction confidence",
		fmt.Sprintf("extraction confidence %s is below the %.2f review floor",
			confidence.String(), values.ReviewConfidenceFloor))
}

func overallStatus(result *verification.VerificationResult) verification.Status {
	hasFail := false
	hasWarning := false
	for _, c := range result.Checks {
		switch c.Status {
		case verification.StatusFail:
			hasFail = true
		case verification.StatusWarning:
			hasWarning = true
		}
	}

	switch {
	case hasFail || result.HasCriticalDeficiency():
		return verification.VerificationFail
	case hasWarning || result.Confidence < values.ReviewConfidenceFloor:
		return verification.VerificationReview
	default:
		return verification.VerificationPass
	}
}

func addPass(result *verification.VerificationResult, ct verification.CheckType, desc, detail string) {
	result.Checks = append(result.Checks, verification.CheckEntry{
		Type:        ct,
		Description: desc,
		Status:      verification.StatusPass,
		Detail:      detail,
	})
}

func addWarning(result *verification.VerificationResult, ct verification.CheckType, desc, detail string) {
	result.Checks = append(result.Checks, verification.CheckEntry{
		Type:        ct,
		Description: desc,
		Status:      verification.StatusWarning,
		Detail:      detail,
	})
}

func addFailure(result *verification.VerificationResult, ct verification.CheckType, desc, detail string, deficiency verification.CoverageDeficiency) {
	result.Checks = append(result.Checks, verification.CheckEntry{
		Type:        ct,
		Description: desc,
		Status:      verification.StatusFail,
		Detail:      detail,
	})
	result.Deficiencies = append(result.Deficiencies, deficiency)
}

func normalizeABN(abn string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, abn)
}
