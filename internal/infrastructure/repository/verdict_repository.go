package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domainerrors "github.com/juggajay/risksure-backend/internal/domain/errors"
	"github.com/juggajay/risksure-backend/internal/domain/verification"
)

// VerdictRepository persists final verdicts and serves the read side of the
// verification API.
type VerdictRepository struct {
	db *pgxpool.Pool
}

// NewVerdictRepository creates a verdict repository.
func NewVerdictRepository(db *pgxpool.Pool) *VerdictRepository {
	return &VerdictRepository{db: db}
}

// Save stores the verdict. Checks, deficiencies, and evidence are stored as
// JSONB alongside the queryable columns.
func (r *VerdictRepository) Save(ctx context.Context, projectID uuid.UUID, v *verification.FinalVerdict) error {
	checks, err := json.Marshal(v.Checks)
	if err != nil {
		return fmt.Errorf("failed to marshal checks: %w", err)
	}
	deficiencies, err := json.Marshal(v.Deficiencies)
	if err != nil {
		return fmt.Errorf("failed to marshal deficiencies: %w", err)
	}
	evidence, err := json.Marshal(v.Evidence)
	if err != nil {
		return fmt.Errorf("failed to marshal evidence: %w", err)
	}

	query := `
		INSERT INTO verdicts (
			id, project_id, status, checks, deficiencies, evidence,
			confidence, fraud_risk_score, fraud_risk_level, evaluated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = r.db.Exec(ctx, query,
		v.ID, projectID, string(v.Status), checks, deficiencies, evidence,
		v.Confidence, v.FraudRiskScore, string(v.FraudRiskLevel), v.EvaluatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save verdict: %w", err)
	}

	return nil
}

// GetByID loads one verdict.
func (r *VerdictRepository) GetByID(ctx context.Context, id uuid.UUID) (*verification.FinalVerdict, error) {
	query := `
		SELECT id, status, checks, deficiencies, evidence,
			confidence, fraud_risk_score, fraud_risk_level, evaluated_at
		FROM verdicts
		WHERE id = $1
	`

	var (
		v            verification.FinalVerdict
		status       string
		riskLevel    string
		checks       []byte
		deficiencies []byte
		evidence     []byte
	)

	err := r.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &status, &checks, &deficiencies, &evidence,
		&v.Confidence, &v.FraudRiskScore, &riskLevel, &v.EvaluatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domainerrors.ErrVerificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load verdict: %w", err)
	}

	v.Status = verification.Status(status)
	v.FraudRiskLevel = verification.RiskLevel(riskLevel)

	if err := json.Unmarshal(checks, &v.Checks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checks: %w", err)
	}
	if err := json.Unmarshal(deficiencies, &v.Deficiencies); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deficiencies: %w", err)
	}
	if err := json.Unmarshal(evidence, &v.Evidence); err != nil {
		return nil, fmt.Errorf("failed to unmarshal evidence: %w", err)
	}

	return &v, nil
}
