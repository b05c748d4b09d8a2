package fixtures

import (
	"github.com/juggajay/risksure-backend/internal/domain/certificate"
	"github.com/juggajay/risksure-backend/internal/domain/requirement"
	"github.com/juggajay/risksure-backend/internal/domain/values"
)

// RequirementBuilder builds test InsuranceRequirement values. Defaults match
// the CertificateBuilder defaults, so an unmodified pair verifies clean.
type RequirementBuilder struct {
	req requirement.InsuranceRequirement
}

// NewRequirementBuilder creates a builder for a $10M public liability
// requirement with all endorsements and full principal naming.
func NewRequirementBuilder() *RequirementBuilder {
	maxExcess := values.AUDFromFloat(10_000)
	return &RequirementBuilder{
		req: requirement.InsuranceRequirement{
			CoverageType:               certificate.CoveragePublicLiability,
			MinimumLimit:               values.AUDFromFloat(10_000_000),
			LimitBasis:                 requirement.BasisPerOccurrence,
			MaximumExcess:              &maxExcess,
			RequirePrincipalIndemnity:  true,
			RequireCrossLiability:      true,
			RequireWaiverOfSubrogation: true,
			RequiredNaming:             certificate.NamingPrincipalNamed,
		},
	}
}

func (b *RequirementBuilder) WithCoverageType(ct certificate.CoverageType) *RequirementBuilder {
	b.req.CoverageType = ct
	return b
}

func (b *RequirementBuilder) WithMinimumLimit(limit float64) *RequirementBuilder {
	b.req.MinimumLimit = values.AUDFromFloat(limit)
	return b
}

func (b *RequirementBuilder) WithMaximumExcess(excess float64) *RequirementBuilder {
	m := values.AUDFromFloat(excess)
	b.req.MaximumExcess = &m
	return b
}

func (b *RequirementBuilder) WithoutExcessCap() *RequirementBuilder {
	b.req.MaximumExcess = nil
	return b
}

func (b *RequirementBuilder) WithEndorsements(principalIndemnity, crossLiability, waiver bool) *RequirementBuilder {
	b.req.RequirePrincipalIndemnity = principalIndemnity
	b.req.RequireCrossLiability = crossLiability
	b.req.RequireWaiverOfSubrogation = waiver
	return b
}

func (b *RequirementBuilder) WithRequiredNaming(tier certificate.NamingTier) *RequirementBuilder {
	b.req.RequiredNaming = tier
	return b
}

func (b *RequirementBuilder) Build() requirement.InsuranceRequirement {
	return b.req
}
