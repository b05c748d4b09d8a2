package verdict

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/juggajay/risksure-backend/internal/domain/certificate"
	"github.com/juggajay/risksure-backend/internal/domain/requirement"
	"github.com/juggajay/risksure-backend/internal/domain/values"
	"github.com/juggajay/risksure-backend/internal/domain/verification"
)

// RequirementStore supplies the contractual insurance requirements the
// certificate is verified against.
type RequirementStore interface {
	// ListByProject returns every insurance requirement attached to the
	// project's contract. An empty slice means only the cross-cutting
	// checks apply.
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]requirement.InsuranceRequirement, error)
}

// SubmissionHistoryStore supplies and records prior submissions by the same
// contractor on the same project, keyed for duplicate and date-manipulation
// detection.
type SubmissionHistoryStore interface {
	ListByContractor(ctx context.Context, projectID uuid.UUID, contractorABN string) ([]certificate.SubmissionHistoryEntry, error)
	Record(ctx context.Context, projectID uuid.UUID, contractorABN string, entry certificate.SubmissionHistoryEntry) error
}

// DecisionSink receives each final verdict for persistence and downstream
// notification.
type DecisionSink interface {
	Save(ctx context.Context, projectID uuid.UUID, verdict *verification.FinalVerdict) error
}

// Request is one certificate submission to verify.
type Request struct {
	ProjectID     uuid.UUID
	ContractorABN string

	Certificate *certificate.ExtractedCertificate
	Metadata    *certificate.DocumentMetadata
	Filename    string
	Fingerprint values.Fingerprint

	ProjectEndDate      *time.Time
	ProjectJurisdiction string
}
