package certificate

import (
	"time"

	"github.com/juggajay/risksure-backend/internal/domain/values"
)

// CoverageType identifies a class of insurance cover on a certificate.
type CoverageType string

const (
	CoveragePublicLiability       CoverageType = "public_liability"
	CoverageProductsLiability     CoverageType = "products_liability"
	CoverageProfessionalIndemnity CoverageType = "professional_indemnity"
	CoverageWorkersCompensation   CoverageType = "workers_compensation"
	CoverageContractWorks         CoverageType = "contract_works"
	CoverageMotorVehicle          CoverageType = "motor_vehicle"
	CoveragePlantAndEquipment     CoverageType = "plant_and_equipment"
)

// NamingTier is the strength of principal naming on a coverage. PrincipalNamed
// grants full principal protection; InterestedParty grants notice rights only
// and never satisfies a PrincipalNamed requirement.
type NamingTier string

const (
	NamingNone            NamingTier = "none"
	NamingInterestedParty NamingTier = "interested_party"
	NamingPrincipalNamed  NamingTier = "principal_named"
)

// Coverage is one line of cover read off a Certificate of Currency.
type Coverage struct {
	Type               CoverageType `json:"type"`
	Limit              values.Money `json:"limit"`
	Excess             values.Money `json:"excess"`
	PrincipalIndemnity bool         `json:"principal_indemnity"`
	CrossLiability     bool         `json:"cross_liability"`
	WaiverOfSubrogation bool        `json:"waiver_of_subrogation"`
	Naming             NamingTier   `json:"naming"`
	// Jurisdiction applies to statutory covers (workers compensation) and
	// names the state/territory scheme the policy is written under.
	Jurisdiction string `json:"jurisdiction,omitempty"`
}

// ExtractedCertificate is the structured field set the extraction service
// read from one certificate document. It is an immutable input to the
// verification engine; the engine never writes to it.
type ExtractedCertificate struct {
	InsuredABN   string            `json:"insured_abn"`
	InsuredName  string            `json:"insured_name"`
	InsurerName  string            `json:"insurer_name"`
	PolicyNumber string            `json:"policy_number"`
	PeriodStart  time.Time         `json:"period_start"`
	PeriodEnd    time.Time         `json:"period_end"`
	Coverages    []Coverage        `json:"coverages"`
	Confidence   values.Confidence `json:"confidence"`
	// Elements lists the structural features the extractor detected in the
	// document (letterhead, schedule table, signature block, ...), used by
	// template matching.
	Elements []string `json:"elements,omitempty"`
}

// FindCoverage returns the first coverage of the given type, or nil.
func (c *ExtractedCertificate) FindCoverage(ct CoverageType) *Coverage {
	for i := range c.Coverages {
		if c.Coverages[i].Type == ct {
			return &c.Coverages[i]
		}
	}
	return nil
}

// DocumentMetadata carries file-level provenance signals supplied alongside
// the extracted fields. Optional: absence skips the metadata checks.
type DocumentMetadata struct {
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
	Producer   string    `json:"producer"`
}

// SubmissionHistoryEntry records one prior submission for the same
// counterparty relationship. The caller appends an entry after each
// verification; this engine only reads them.
type SubmissionHistoryEntry struct {
	Fingerprint  values.Fingerprint `json:"fingerprint"`
	Filename     string             `json:"filename"`
	UploadedAt   time.Time          `json:"uploaded_at"`
	PolicyNumber string             `json:"policy_number"`
	PeriodEnd    time.Time          `json:"period_end"`
}
