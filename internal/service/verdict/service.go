package verdict

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/juggajay/risksure-backend/internal/domain/certificate"
	"github.com/juggajay/risksure-backend/internal/domain/errors"
	"github.com/juggajay/risksure-backend/internal/domain/verification"
	"github.com/juggajay/risksure-backend/internal/metrics"
	"github.com/juggajay/risksure-backend/internal/service/compliance"
	"github.com/juggajay/risksure-backend/internal/service/fraud"
)

// Service orchestrates one submission end to end: it loads the project's
// requirements and the contractor's submission history, runs the fraud and
// compliance engines, combines the results, records the submission, and
// hands the final verdict to the decision sink.
type Service struct {
	fraud        *fraud.Service
	compliance   *compliance.Service
	requirements RequirementStore
	history      SubmissionHistoryStore
	sink         DecisionSink

	logger *slog.Logger
	tracer trace.Tracer
	clock  func() time.Time
}

// NewService wires the orchestrator. The clock defaults to time.Now; tests
// override it with SetClock for deterministic date judgments.
func NewService(
	requirements RequirementStore,
	history SubmissionHistoryStore,
	sink DecisionSink,
	logger *slog.Logger,
) *Service {
	return &Service{
		fraud:        fraud.NewService(),
		compliance:   compliance.NewService(),
		requirements: requirements,
		history:      history,
		sink:         sink,
		logger:       logger,
		tracer:       otel.Tracer("service.verdict"),
		clock:        time.Now,
	}
}

// SetClock overrides the evaluation instant source.
func (s *Service) SetClock(clock func() time.Time) {
	s.clock = clock
}

// Evaluate runs the full verification pipeline for one submission.
func (s *Service) Evaluate(ctx context.Context, req Request) (*verification.FinalVerdict, error) {
	ctx, span := s.tracer.Start(ctx, "verdict.evaluate",
		trace.WithAttributes(
			attribute.String("project.id", req.ProjectID.String()),
			attribute.String("contractor.abn", req.ContractorABN),
		))
	defer span.End()

	if req.Certificate == nil {
		return nil, errors.ErrCertificateRequired
	}

	now := s.clock()
	started := time.Now()

	reqs, err := s.requirements.ListByProject(ctx, req.ProjectID)
	if err != nil {
		return nil, errors.NewInternalError("failed to load insurance requirements").WithCause(err)
	}

	history, err := s.history.ListByContractor(ctx, req.ProjectID, req.ContractorABN)
	if err != nil {
		return nil, errors.NewInternalError("failed to load submission history").WithCause(err)
	}

	fraudResult, err := s.fraud.Evaluate(fraud.Input{
		Certificate: req.Certificate,
		Metadata:    req.Metadata,
		Filename:    req.Filename,
		Fingerprint: req.Fingerprint,
		History:     history,
	})
	if err != nil {
		return nil, err
	}

	complianceResult, err := s.compliance.Evaluate(req.Certificate, reqs, compliance.Options{
		ProjectEndDate:          req.ProjectEndDate,
		ProjectJurisdiction:     req.ProjectJurisdiction,
		ExpectedCounterpartyABN: req.ContractorABN,
	}, now)
	if err != nil {
		return nil, err
	}

	final := Combine(complianceResult, fraudResult, now)
	span.SetAttributes(
		attribute.String("verdict.status", string(final.Status)),
		attribute.Int("fraud.risk_score", final.FraudRiskScore),
		attribute.Bool("fraud.blocked", fraudResult.Blocked),
	)

	entry := certificate.SubmissionHistoryEntry{
		Fingerprint:  req.Fingerprint,
		Filename:     req.Filename,
		UploadedAt:   now,
		PolicyNumber: req.Certificate.PolicyNumber,
		PeriodEnd:    req.Certificate.PeriodEnd,
	}
	if err := s.history.Record(ctx, req.ProjectID, req.ContractorABN, entry); err != nil {
		return nil, errors.NewInternalError("failed to record submission").WithCause(err)
	}

	if err := s.sink.Save(ctx, req.ProjectID, final); err != nil {
		return nil, errors.NewInternalError("failed to persist verdict").WithCause(err)
	}

	metrics.ObserveVerdict(string(final.Status), final.FraudRiskScore, fraudResult.Blocked, time.Since(started))
	for _, d := range final.Deficiencies {
		metrics.DeficienciesTotal.WithLabelValues(string(d.Severity)).Inc()
	}

	s.logger.InfoContext(ctx, "verification complete",
		"verdict_id", final.ID,
		"project_id", req.ProjectID,
		"status", final.Status,
		"fraud_risk_score", final.FraudRiskScore,
		"fraud_risk_level", final.FraudRiskLevel,
		"deficiencies", len(final.Deficiencies),
	)

	return final, nil
}
