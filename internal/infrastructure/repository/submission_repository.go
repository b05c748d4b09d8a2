package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/juggajay/risksure-backend/internal/domain/certificate"
	"github.com/juggajay/risksure-backend/internal/domain/values"
)

// SubmissionRepository records and lists certificate submissions per
// contractor, feeding the duplicate and date-manipulation checks.
type SubmissionRepository struct {
	db *pgxpool.Pool

	// maxEntries bounds how much history the fraud engine is fed.
	maxEntries int
}

// NewSubmissionRepository creates a submission history repository.
func NewSubmissionRepository(db *pgxpool.Pool, maxEntries int) *SubmissionRepository {
	if maxEntries <= 0 {
		maxEntries = 50
	}
	return &SubmissionRepository{db: db, maxEntries: maxEntries}
}

// ListByContractor returns the contractor's most recent submissions on the
// project, newest first.
func (r *SubmissionRepository) ListByContractor(ctx context.Context, projectID uuid.UUID, contractorABN string) ([]certificate.SubmissionHistoryEntry, error) {
	query := `
		SELECT fingerprint, filename, uploaded_at, policy_number, period_end
		FROM certificate_submissions
		WHERE project_id = $1 AND contractor_abn = $2
		ORDER BY uploaded_at DESC
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, projectID, contractorABN, r.maxEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to query submission history: %w", err)
	}
	defer rows.Close()

	var entries []certificate.SubmissionHistoryEntry
	for rows.Next() {
		var (
			entry certificate.SubmissionHistoryEntry
			hash  string
		)
		if err := rows.Scan(&hash, &entry.Filename, &entry.UploadedAt, &entry.PolicyNumber, &entry.PeriodEnd); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}

		fp, err := values.NewFingerprint(hash)
		if err != nil {
			return nil, fmt.Errorf("stored fingerprint is invalid: %w", err)
		}
		entry.Fingerprint = fp

		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read submission history: %w", err)
	}

	return entries, nil
}

// Record persists one submission.
func (r *SubmissionRepository) Record(ctx context.Context, projectID uuid.UUID, contractorABN string, entry certificate.SubmissionHistoryEntry) error {
	query := `
		INSERT INTO certificate_submissions (
			id, project_id, contractor_abn, fingerprint,
			filename, uploaded_at, policy_number, period_end
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		uuid.New(), projectID, contractorABN, entry.Fingerprint.String(),
		entry.Filename, entry.UploadedAt, entry.PolicyNumber, entry.PeriodEnd,
	)
	if err != nil {
		return fmt.Errorf("failed to record submission: %w", err)
	}

	return nil
}
