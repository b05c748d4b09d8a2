package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juggajay/risksure-backend/internal/domain/certificate"
	"github.com/juggajay/risksure-backend/internal/domain/requirement"
	"github.com/juggajay/risksure-backend/internal/domain/values"
	"github.com/juggajay/risksure-backend/internal/domain/verification"
	"github.com/juggajay/risksure-backend/internal/testutil/fixtures"
)

func TestService_Evaluate_NilCertificate(t *testing.T) {
	svc := NewService()

	_, err := svc.Evaluate(nil, nil, Options{}, fixtures.Now)
	require.Error(t, err)
}

func TestService_Evaluate_CleanCertificatePasses(t *testing.T) {
	svc := NewService()
	cert := fixtures.NewCertificateBuilder().Build()
	reqs := []requirement.InsuranceRequirement{fixtures.NewRequirementBuilder().Build()}

	result, err := svc.Evaluate(cert, reqs, Options{}, fixtures.Now)

	require.NoError(t, err)
	assert.Equal(t, verification.VerificationPass, result.Status)
	assert.Empty(t, result.Deficiencies)
	for _, c := range result.Checks {
		assert.Equal(t, verification.StatusPass, c.Status, "check %s", c.Type)
	}
}

func TestService_Evaluate_MissingCoverage(t *testing.T) {
	svc := NewService()
	cert := fixtures.NewCertificateBuilder().Build() // public liability only
	reqs := []requirement.InsuranceRequirement{
		fixtures.NewRequirementBuilder().
			WithCoverageType(certificate.CoverageProfessionalIndemnity).
			Build(),
	}

	result, err := svc.Evaluate(cert, reqs, Options{}, fixtures.Now)

	require.NoError(t, err)
	assert.Equal(t, verification.VerificationFail, result.Status)
	require.Len(t, result.Deficiencies, 1)
	assert.Equal(t, verification.DeficiencyMissingCoverage, result.Deficiencies[0].Type)
	assert.Equal(t, verification.SeverityCritical, result.Deficiencies[0].Severity)
}

func TestService_Evaluate_InsufficientLimit(t *testing.T) {
	svc := NewService()
	cert := fixtures.NewCertificateBuilder().
		WithCoverages(fixtures.PublicLiabilityCoverage(50_000)).
		Build()
	reqs := []requirement.InsuranceRequirement{
		fixtures.NewRequirementBuilder().WithMinimumLimit(10_000_000).Build(),
	}

	result, err := svc.Evaluate(cert, reqs, Options{}, fixtures.Now)

	require.NoError(t, err)
	assert.Equal(t, verification.VerificationFail, result.Status)

	deficiency := findDeficiency(t, result, verification.DeficiencyInsufficientLimit)
	assert.Equal(t, verification.SeverityMajor, deficiency.Severity)
	assert.Equal(t, "$10000000.00", deficiency.Required)
	assert.Equal(t, "$50000.00", deficiency.Actual)
}

func TestService_Evaluate_ExcessAboveCap(t *testing.T) {
	svc := NewService()
	cov := fixtures.PublicLiabilityCoverage(20_000_000)
	cov.Excess = values.AUDFromFloat(250_000)
	cert := fixtures.NewCertificateBuilder().WithCoverages(cov).Build()
	reqs := []requirement.InsuranceRequirement{
		fixtures.NewRequirementBuilder().WithMaximumExcess(10_000).Build(),
	}

	result, err := svc.Evaluate(cert, reqs, Options{}, fixtures.Now)

	require.NoError(t, err)
	assert.Equal(t, verification.VerificationFail, result.Status)
	deficiency := findDeficiency(t, result, verification.DeficiencyExcessTooHigh)
	assert.Equal(t, verification.SeverityMinor, deficiency.Severity)
}

func TestService_Evaluate_ExcessCapNotRequired(t *testing.T) {
	svc := NewService()
	cov := fixtures.PublicLiabilityCoverage(20_000_000)
	cov.Excess = values.AUDFromFloat(250_000)
	cert := fixtures.NewCertificateBuilder().WithCoverages(cov).Build()
	reqs := []requirement.InsuranceRequirement{
		fixtures.NewRequirementBuilder().WithoutExcessCap().Build(),
	}

	result, err := svc.Evaluate(cert, reqs, Options{}, fixtures.Now)

	require.NoError(t, err)
	assert.Equal(t, verification.VerificationPass, result.Status)
}

func TestService_Evaluate_MissingEndorsements(t *testing.T) {
	svc := NewService()
	cov := fixtures.PublicLiabilityCoverage(20_000_000)
	cov.CrossLiability = false
	cov.WaiverOfSubrogation = false
	cert := fixtures.NewCertificateBuilder().WithCoverages(cov).Build()
	reqs := []requirement.InsuranceRequirement{fixtures.NewRequirementBuilder().Build()}

	result, err := svc.Evaluate(cert, reqs, Options{}, fixtures.Now)

	require.NoError(t, err)
	assert.Equal(t, verification.VerificationFail, result.Status)

	var missing []verification.CoverageDeficiency
	for _, d := range result.Deficiencies {
		if d.Type == verification.DeficiencyMissingEndorsement {
			missing = append(missing, d)
		}
	}
	require.Len(t, missing, 2)
	for _, d := range missing {
		assert.Equal(t, verification.SeverityMajor, d.Severity)
	}
}

func TestService_Evaluate_PrincipalNaming(t *testing.T) {
	tests := []struct {
		name         string
		required     certificate.NamingTier
		actual       certificate.NamingTier
		wantStatus   verification.Status
		wantSeverity verification.Severity
	}{
		{
			name:       "exact principal naming match passes",
			required:   certificate.NamingPrincipalNamed,
			actual:     certificate.NamingPrincipalNamed,
			wantStatus: verification.VerificationPass,
		},
		{
			name:       "stronger tier satisfies weaker requirement",
			required:   certificate.NamingInterestedParty,
			actual:     certificate.NamingPrincipalNamed,
			wantStatus: verification.VerificationPass,
		},
		{
			name:         "interested party never satisfies principal naming",
			required:     certificate.NamingPrincipalNamed,
			actual:       certificate.NamingInterestedParty,
			wantStatus:   verification.VerificationFail,
			wantSeverity: verification.SeverityMajor,
		},
		{
			name:         "no naming fails a principal naming requirement as major",
			required:     certificate.NamingPrincipalNamed,
			actual:       certificate.NamingNone,
			wantStatus:   verification.VerificationFail,
			wantSeverity: verification.SeverityMajor,
		},
		{
			name:         "no naming fails an interested party requirement as minor",
			required:     certificate.NamingInterestedParty,
			actual:       certificate.NamingNone,
			wantStatus:   verification.VerificationFail,
			wantSeverity: verification.SeverityMinor,
		},
		{
			name:       "no naming requirement skips the check",
			required:   certificate.NamingNone,
			actual:     certificate.NamingNone,
			wantStatus: verification.VerificationPass,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService()
			cov := fixtures.PublicLiabilityCoverage(20_000_000)
			cov.Naming = tt.actual
			cert := fixtures.NewCertificateBuilder().WithCoverages(cov).Build()
			reqs := []requirement.InsuranceRequirement{
				fixtures.NewRequirementBuilder().WithRequiredNaming(tt.required).Build(),
			}

			result, err := svc.Evaluate(cert, reqs, Options{}, fixtures.Now)

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, result.Status)
			if tt.wantStatus == verification.VerificationFail {
				deficiency := findDeficiency(t, result, verification.DeficiencyInadequateNaming)
				assert.Equal(t, tt.wantSeverity, deficiency.Severity)
			}
		})
	}
}

func TestService_Evaluate_WorkersCompJurisdiction(t *testing.T) {
	svc := NewService()
	cert := fixtures.NewCertificateBuilder().
		WithCoverages(
			fixtures.PublicLiabilityCoverage(20_000_000),
			fixtures.WorkersCompCoverage("VIC"),
		).
		Build()
	reqs := []requirement.InsuranceRequirement{
		fixtures.NewRequirementBuilder().Build(),
		fixtures.NewRequirementBuilder().
			WithCoverageType(certificate.CoverageWorkersCompensation).
			WithMinimumLimit(1_000_000).
			WithoutExcessCap().
			WithEndorsements(false, false, false).
			WithRequiredNaming(certificate.NamingNone).
			Build(),
	}

	t.Run("matching jurisdiction passes", func(t *testing.T) {
		result, err := svc.Evaluate(cert, reqs, Options{ProjectJurisdiction: "vic"}, fixtures.Now)
		require.NoError(t, err)
		assert.Equal(t, verification.VerificationPass, result.Status)
	})

	t.Run("mismatched jurisdiction fails as critical", func(t *testing.T) {
		result, err := svc.Evaluate(cert, reqs, Options{ProjectJurisdiction: "NSW"}, fixtures.Now)
		require.NoError(t, err)
		assert.Equal(t, verification.VerificationFail, result.Status)
		deficiency := findDeficiency(t, result, verification.DeficiencyJurisdiction)
		assert.Equal(t, verification.SeverityCritical, deficiency.Severity)
	})

	t.Run("jurisdiction check is gated on the project jurisdiction being supplied", func(t *testing.T) {
		result, err := svc.Evaluate(cert, reqs, Options{}, fixtures.Now)
		require.NoError(t, err)
		assert.NotContains(t, checkEntryTypes(result), verification.CheckJurisdiction)
	})
}

func TestService_Evaluate_PolicyValidity(t *testing.T) {
	svc := NewService()

	t.Run("expired policy fails", func(t *testing.T) {
		cert := fixtures.NewCertificateBuilder().
			WithPeriod(fixtures.Now.AddDate(-1, 0, 0), fixtures.Now.AddDate(0, -1, 0)).
			Build()

		result, err := svc.Evaluate(cert, nil, Options{}, fixtures.Now)

		require.NoError(t, err)
		assert.Equal(t, verification.VerificationFail, result.Status)
		deficiency := findDeficiency(t, result, verification.DeficiencyPolicyExpired)
		assert.Equal(t, verification.SeverityCritical, deficiency.Severity)
	})

	t.Run("policy expiring within 30 days forces review", func(t *testing.T) {
		cert := fixtures.NewCertificateBuilder().
			WithPeriod(fixtures.Now.AddDate(-1, 0, 0), fixtures.Now.AddDate(0, 0, 10)).
			Build()

		result, err := svc.Evaluate(cert, nil, Options{}, fixtures.Now)

		require.NoError(t, err)
		assert.Equal(t, verification.VerificationReview, result.Status)
		assert.Empty(t, result.Deficiencies)
	})
}

func TestService_Evaluate_ProjectPeriod(t *testing.T) {
	svc := NewService()
	cert := fixtures.NewCertificateBuilder().Build() // ends 2024-12-31

	t.Run("policy ending before the project end fails", func(t *testing.T) {
		projectEnd := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

		result, err := svc.Evaluate(cert, nil, Options{ProjectEndDate: &projectEnd}, fixtures.Now)

		require.NoError(t, err)
		assert.Equal(t, verification.VerificationFail, result.Status)
		deficiency := findDeficiency(t, result, verification.DeficiencyProjectPeriodGap)
		assert.Equal(t, verification.SeverityMajor, deficiency.Severity)
	})

	t.Run("check is gated on the project end date being supplied", func(t *testing.T) {
		result, err := svc.Evaluate(cert, nil, Options{}, fixtures.Now)
		require.NoError(t, err)
		assert.NotContains(t, checkEntryTypes(result), verification.CheckProjectPeriod)
	})
}

func TestService_Evaluate_InsurerLicence(t *testing.T) {
	svc := NewService()

	t.Run("unlicensed insurer fails as critical", func(t *testing.T) {
		cert := fixtures.NewCertificateBuilder().
			WithInsurer("Backyard Underwriters Pty Ltd").
			Build()

		result, err := svc.Evaluate(cert, nil, Options{}, fixtures.Now)

		require.NoError(t, err)
		assert.Equal(t, verification.VerificationFail, result.Status)
		deficiency := findDeficiency(t, result, verification.DeficiencyUnlicensedInsurer)
		assert.Equal(t, verification.SeverityCritical, deficiency.Severity)
	})

	t.Run("lookup is case insensitive on the full legal name", func(t *testing.T) {
		cert := fixtures.NewCertificateBuilder().
			WithInsurer("ZURICH AUSTRALIAN INSURANCE LIMITED").
			WithPolicyNumber("ZU12345678").
			Build()

		result, err := svc.Evaluate(cert, nil, Options{}, fixtures.Now)

		require.NoError(t, err)
		assert.Equal(t, verification.VerificationPass, result.Status)
	})
}

func TestService_Evaluate_IdentifierMatch(t *testing.T) {
	svc := NewService()
	cert := fixtures.NewCertificateBuilder().Build() // ABN 51824753556

	t.Run("matching identifier passes regardless of formatting", func(t *testing.T) {
		result, err := svc.Evaluate(cert, nil, Options{ExpectedCounterpartyABN: "51 824 753 556"}, fixtures.Now)
		require.NoError(t, err)
		assert.Equal(t, verification.VerificationPass, result.Status)
	})

	t.Run("mismatched identifier fails as critical", func(t *testing.T) {
		result, err := svc.Evaluate(cert, nil, Options{ExpectedCounterpartyABN: "33102417032"}, fixtures.Now)
		require.NoError(t, err)
		assert.Equal(t, verification.VerificationFail, result.Status)
		deficiency := findDeficiency(t, result, verification.DeficiencyIdentifierMismatch)
		assert.Equal(t, verification.SeverityCritical, deficiency.Severity)
	})

	t.Run("check is gated on an expected identifier being supplied", func(t *testing.T) {
		result, err := svc.Evaluate(cert, nil, Options{}, fixtures.Now)
		require.NoError(t, err)
		assert.NotContains(t, checkEntryTypes(result), verification.CheckIdentifierMatch)
	})
}

func TestService_Evaluate_ConfidenceFloor(t *testing.T) {
	svc := NewService()
	cert := fixtures.NewCertificateBuilder().WithConfidence(0.5).Build()
	reqs := []requirement.InsuranceRequirement{fixtures.NewRequirementBuilder().Build()}

	result, err := svc.Evaluate(cert, reqs, Options{}, fixtures.Now)

	require.NoError(t, err)

	// Every rule passes, yet the low extraction confidence forces review.
	assert.Equal(t, verification.VerificationReview, result.Status)
	assert.Empty(t, result.Deficiencies)

	var confidenceEntry *verification.CheckEntry
	for i := range result.Checks {
		if result.Checks[i].Type == verification.CheckConfidence {
			confidenceEntry = &result.Checks[i]
		}
	}
	require.NotNil(t, confidenceEntry)
	assert.Equal(t, verification.StatusWarning, confidenceEntry.Status)
}

func findDeficiency(t *testing.T, result *verification.VerificationResult, dt verification.DeficiencyType) verification.CoverageDeficiency {
	t.Helper()
	for _, d := range result.Deficiencies {
		if d.Type == dt {
			return d
		}
	}
	t.Fatalf("deficiency %s not found in %+v", dt, result.Deficiencies)
	return verification.CoverageDeficiency{}
}

func checkEntryTypes(result *verification.VerificationResult) []verification.CheckType {
	types := make([]verification.CheckType, 0, len(result.Checks))
	for _, c := range result.Checks {
		types = append(types, c.Type)
	}
	return types
}
