package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/juggajay/risksure-backend/internal/domain/certificate"
	"github.com/juggajay/risksure-backend/internal/domain/values"
	"github.com/juggajay/risksure-backend/internal/service/verdict"
)

// SubmitVerificationRequest is the payload the extraction service posts for
// one certificate. Amounts are decimal strings to avoid float drift in
// transit.
type SubmitVerificationRequest struct {
	ProjectID     uuid.UUID `json:"project_id" validate:"required"`
	ContractorABN string    `json:"contractor_abn" validate:"required"`

	Filename    string `json:"filename" validate:"required"`
	Fingerprint string `json:"fingerprint" validate:"required,len=64,hexadecimal"`

	Certificate CertificatePayload `json:"certificate" validate:"required"`
	Metadata    *MetadataPayload   `json:"metadata,omitempty"`

	ProjectEndDate      *time.Time `json:"project_end_date,omitempty"`
	ProjectJurisdiction string     `json:"project_jurisdiction,omitempty"`
}

// CertificatePayload mirrors the extraction service's output for one
// certificate of currency.
type CertificatePayload struct {
	InsuredABN   string    `json:"insured_abn" validate:"required"`
	InsuredName  string    `json:"insured_name"`
	InsurerName  string    `json:"insurer_name" validate:"required"`
	PolicyNumber string    `json:"policy_number" validate:"required"`
	PeriodStart  time.Time `json:"period_start" validate:"required"`
	PeriodEnd    time.Time `json:"period_end" validate:"required"`

	Confidence float64  `json:"confidence" validate:"gte=0,lte=1"`
	Elements   []string `json:"elements,omitempty"`

	Coverages []CoveragePayload `json:"coverages" validate:"required,min=1,dive"`
}

// CoveragePayload is one line of cover on the certificate.
type CoveragePayload struct {
	Type     string `json:"type" validate:"required"`
	Limit    string `json:"limit" validate:"required"`
	Excess   string `json:"excess,omitempty"`
	Currency string `json:"currency,omitempty"`

	PrincipalIndemnity  bool `json:"principal_indemnity"`
	CrossLiability      bool `json:"cross_liability"`
	WaiverOfSubrogation bool `json:"waiver_of_subrogation"`

	Naming       string `json:"naming,omitempty" validate:"omitempty,oneof=none interested_party principal_named"`
	Jurisdiction string `json:"jurisdiction,omitempty"`
}

// MetadataPayload carries the document's PDF metadata when the uploader
// could extract it.
type MetadataPayload struct {
	CreatedAt  time.Time `json:"created_at" validate:"required"`
	ModifiedAt time.Time `json:"modified_at" validate:"required"`
	Producer   string    `json:"producer,omitempty"`
}

// toRequest converts the validated payload into a pipeline request.
func (r *SubmitVerificationRequest) toRequest() (verdict.Request, error) {
	fp, err := values.NewFingerprint(r.Fingerprint)
	if err != nil {
		return verdict.Request{}, err
	}

	cert := &certificate.ExtractedCertificate{
		InsuredABN:   r.Certificate.InsuredABN,
		InsuredName:  r.Certificate.InsuredName,
		InsurerName:  r.Certificate.InsurerName,
		PolicyNumber: r.Certificate.PolicyNumber,
		PeriodStart:  r.Certificate.PeriodStart,
		PeriodEnd:    r.Certificate.PeriodEnd,
		Elements:     r.Certificate.Elements,
	}

	confidence, err := values.NewConfidence(r.Certificate.Confidence)
	if err != nil {
		return verdict.Request{}, err
	}
	cert.Confidence = confidence

	for _, c := range r.Certificate.Coverages {
		currency := c.Currency
		if currency == "" {
			currency = values.AUD
		}

		limit, err := values.NewMoneyFromString(c.Limit, currency)
		if err != nil {
			return verdict.Request{}, err
		}

		excess := values.Zero(currency)
		if c.Excess != "" {
			excess, err = values.NewMoneyFromString(c.Excess, currency)
			if err != nil {
				return verdict.Request{}, err
			}
		}

		naming := certificate.NamingTier(c.Naming)
		if c.Naming == "" {
			naming = certificate.NamingNone
		}

		cert.Coverages = append(cert.Coverages, certificate.Coverage{
			Type:                certificate.CoverageType(c.Type),
			Limit:               limit,
			Excess:              excess,
			PrincipalIndemnity:  c.PrincipalIndemnity,
			CrossLiability:      c.CrossLiability,
			WaiverOfSubrogation: c.WaiverOfSubrogation,
			Naming:              naming,
			Jurisdiction:        c.Jurisdiction,
		})
	}

	req := verdict.Request{
		ProjectID:           r.ProjectID,
		ContractorABN:       r.ContractorABN,
		Certificate:         cert,
		Filename:            r.Filename,
		Fingerprint:         fp,
		ProjectEndDate:      r.ProjectEndDate,
		ProjectJurisdiction: r.ProjectJurisdiction,
	}

	if r.Metadata != nil {
		req.Metadata = &certificate.DocumentMetadata{
			CreatedAt:  r.Metadata.CreatedAt,
			ModifiedAt: r.Metadata.ModifiedAt,
			Producer:   r.Metadata.Producer,
		}
	}

	return req, nil
}

// errorResponse is the uniform error envelope.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
