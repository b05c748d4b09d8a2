// Package repository holds the PostgreSQL implementations of the verdict
// service's collaborator interfaces.
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/juggajay/risksure-backend/internal/domain/certificate"
	"github.com/juggajay/risksure-backend/internal/domain/requirement"
	"github.com/juggajay/risksure-backend/internal/domain/values"
)

// RequirementRepository loads contractual insurance requirements.
type RequirementRepository struct {
	db *pgxpool.Pool
}

// NewRequirementRepository creates a requirement repository.
func NewRequirementRepository(db *pgxpool.Pool) *RequirementRepository {
	return &RequirementRepository{db: db}
}

// ListByProject returns every insurance requirement attached to the project.
func (r *RequirementRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]requirement.InsuranceRequirement, error) {
	query := `
		SELECT
			coverage_type, minimum_limit, limit_basis, maximum_excess,
			require_principal_indemnity, require_cross_liability,
			require_waiver_of_subrogation, required_naming
		FROM insurance_requirements
		WHERE project_id = $1
		ORDER BY coverage_type
	`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query insurance requirements: %w", err)
	}
	defer rows.Close()

	var reqs []requirement.InsuranceRequirement
	for rows.Next() {
		var (
			req           requirement.InsuranceRequirement
			coverageType  string
			minimumLimit  float64
			limitBasis    string
			maximumExcess *float64
			naming        string
		)

		if err := rows.Scan(
			&coverageType, &minimumLimit, &limitBasis, &maximumExcess,
			&req.RequirePrincipalIndemnity, &req.RequireCrossLiability,
			&req.RequireWaiverOfSubrogation, &naming,
		); err != nil {
			return nil, fmt.Errorf("failed to scan insurance requirement: %w", err)
		}

		req.CoverageType = certificate.CoverageType(coverageType)
		req.MinimumLimit = values.AUDFromFloat(minimumLimit)
		req.LimitBasis = requirement.LimitBasis(limitBasis)
		req.RequiredNaming = certificate.NamingTier(naming)
		if maximumExcess != nil {
			m := values.AUDFromFloat(*maximumExcess)
			req.MaximumExcess = &m
		}

		reqs = append(reqs, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read insurance requirements: %w", err)
	}

	return reqs, nil
}
