package fixtures

import (
	"time"

	"github.com/juggajay/risksure-backend/internal/domain/certificate"
	"github.com/juggajay/risksure-backend/internal/domain/values"
)

// Reference instant used across tests so every evaluation is deterministic.
var Now = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

// CertificateBuilder builds test ExtractedCertificate values. Defaults are a
// clean, currently-in-force QBE public liability certificate that passes
// every fraud and compliance rule.
type CertificateBuilder struct {
	cert certificate.ExtractedCertificate
}

// NewCertificateBuilder creates a builder with passing defaults.
func NewCertificateBuilder() *CertificateBuilder {
	return &CertificateBuilder{
		cert: certificate.ExtractedCertificate{
			InsuredABN:   "51824753556",
			InsuredName:  "Example Contracting Pty Ltd",
			InsurerName:  "QBE Insurance",
			PolicyNumber: "QBEPL12345678",
			PeriodStart:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			PeriodEnd:    time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			Confidence:   values.MustNewConfidence(0.92),
			Elements: []string{
				"insurer_letterhead",
				"policy_schedule",
				"period_of_insurance",
				"insured_details",
				"signature_block",
			},
			Coverages: []certificate.Coverage{
				{
					Type:                certificate.CoveragePublicLiability,
					Limit:               values.AUDFromFloat(20_000_000),
					Excess:              values.AUDFromFloat(1_000),
					PrincipalIndemnity:  true,
					CrossLiability:      true,
					WaiverOfSubrogation: true,
					Naming:              certificate.NamingPrincipalNamed,
				},
			},
		},
	}
}

func (b *CertificateBuilder) WithABN(abn string) *CertificateBuilder {
	b.cert.InsuredABN = abn
	return b
}

func (b *CertificateBuilder) WithInsurer(name string) *CertificateBuilder {
	b.cert.InsurerName = name
	return b
}

func (b *CertificateBuilder) WithPolicyNumber(number string) *CertificateBuilder {
	b.cert.PolicyNumber = number
	return b
}

func (b *CertificateBuilder) WithPeriod(start, end time.Time) *CertificateBuilder {
	b.cert.PeriodStart = start
	b.cert.PeriodEnd = end
	return b
}

func (b *CertificateBuilder) WithConfidence(score float64) *CertificateBuilder {
	b.cert.Confidence = values.MustNewConfidence(score)
	return b
}

func (b *CertificateBuilder) WithElements(elements ...string) *CertificateBuilder {
	b.cert.Elements = elements
	return b
}

func (b *CertificateBuilder) WithCoverages(coverages ...certificate.Coverage) *CertificateBuilder {
	b.cert.Coverages = coverages
	return b
}

func (b *CertificateBuilder) Build() *certificate.ExtractedCertificate {
	copied := b.cert
	copied.Coverages = append([]certificate.Coverage(nil), b.cert.Coverages...)
	copied.Elements = append([]string(nil), b.cert.Elements...)
	return &copied
}

// PublicLiabilityCoverage returns a liability coverage with the given limit.
func PublicLiabilityCoverage(limit float64) certificate.Coverage {
	return certificate.Coverage{
		Type:                certificate.CoveragePublicLiability,
		Limit:               values.AUDFromFloat(limit),
		Excess:              values.AUDFromFloat(1_000),
		PrincipalIndemnity:  true,
		CrossLiability:      true,
		WaiverOfSubrogation: true,
		Naming:              certificate.NamingPrincipalNamed,
	}
}

// WorkersCompCoverage returns a workers compensation coverage for the given
// jurisdiction.
func WorkersCompCoverage(jurisdiction string) certificate.Coverage {
	return certificate.Coverage{
		Type:         certificate.CoverageWorkersCompensation,
		Limit:        values.AUDFromFloat(50_000_000),
		Excess:       values.Zero(values.AUD),
		Jurisdiction: jurisdiction,
	}
}

// Metadata returns document metadata with the given creation/modification
// gap and producer.
func Metadata(created time.Time, gap time.Duration, producer string) *certificate.DocumentMetadata {
	return &certificate.DocumentMetadata{
		CreatedAt:  created,
		ModifiedAt: created.Add(gap),
		Producer:   producer,
	}
}

// DocumentFingerprint hashes arbitrary content into a Fingerprint.
func DocumentFingerprint(content string) values.Fingerprint {
	f, err := values.ComputeFingerprint([]byte(content))
	if err != nil {
		panic(err)
	}
	return f
}

// HistoryEntry returns one prior submission.
func HistoryEntry(fingerprint values.Fingerprint, policyNumber string, periodEnd time.Time) certificate.SubmissionHistoryEntry {
	return certificate.SubmissionHistoryEntry{
		Fingerprint:  fingerprint,
		Filename:     "previous-certificate.pdf",
		UploadedAt:   Now.AddDate(0, -3, 0),
		PolicyNumber: policyNumber,
		PeriodEnd:    periodEnd,
	}
}
