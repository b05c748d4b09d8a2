package fraud

import "regexp"

// Per-check risk scores. Every score is an integer in [0,100]; the aggregate
// takes the maximum and applies the cumulative-warning bonus.
const (
	// ScoreModificationCap saturates the modification-gap score.
	ScoreModificationCap = 60

	// modificationScalePerDay maps the creation-to-modification gap in days
	// onto a score. Chosen so a two-week gap scores in the mid-teens and a
	// year-long gap hits the cap.
	modificationScalePerDay = 1.2

	// ScoreDeniedSoftware is the score for documents produced by a raster or
	// image editor. A text certificate authored in an image editor is a
	// strong forgery indicator.
	ScoreDeniedSoftware = 70

	// ScoreUnknownSoftware is the score for authoring tools on neither list.
	ScoreUnknownSoftware = 30

	// ScoreUnknownTemplate is the score when the insurer has no template on
	// file, so format and element checks cannot run.
	ScoreUnknownTemplate = 20

	// ScorePolicyNumberMismatch is the score when a known insurer's document
	// number does not match that insurer's format.
	ScorePolicyNumberMismatch = 65

	// ScorePerMissingElement scales the element-check score by how many of
	// the insurer's expected structural elements are absent.
	ScorePerMissingElement = 15
	ScoreMissingElementCap = 60

	// ScoreInvalidABN is the score for a failed identifier checksum.
	ScoreInvalidABN = 80

	// ScoreInvertedDates is the score when the coverage period ends on or
	// before it starts.
	ScoreInvertedDates = 90

	// ScoreLongPolicyPeriod / ScoreShortPolicyPeriod flag implausible spans.
	ScoreLongPolicyPeriod  = 25
	ScoreShortPolicyPeriod = 20
	longPolicyPeriodDays   = 400
	shortPolicyPeriodDays  = 30

	// ScoreNonPositiveLimit / ScoreLowLiabilityLimit flag limit-sanity
	// failures on extracted coverages.
	ScoreNonPositiveLimit  = 70
	ScoreLowLiabilityLimit = 40

	// ScoreIdenticalResubmission is informational: the same bytes were seen
	// before, nothing further to analyze.
	ScoreIdenticalResubmission = 10

	// ScoreDateManipulation is the score for a silent expiry-date edit on a
	// previously seen policy number, the canonical forged-renewal pattern.
	ScoreDateManipulation = 95
)

// Risk level thresholds over the aggregate score.
const (
	riskLevelCritical = 80
	riskLevelHigh     = 60
	riskLevelMedium   = 30
)

// Aggregation policy.
const (
	// warningBonusThreshold is the warning count above which otherwise
	// individually tolerable warnings escalate the aggregate score.
	warningBonusThreshold = 2
	warningBonusPerExtra  = 5

	// blockingFailCount blocks a document on this many failed checks even
	// when no single score reaches the critical threshold.
	blockingFailCount = 2
)

// softwareDenyList names raster/image editing tools. Matched first: a deny
// hit outranks any allow-list hit ("Adobe Photoshop" must not pass on
// "adobe").
var softwareDenyList = []string{
	"photoshop",
	"gimp",
	"canva",
	"illustrator",
	"inkscape",
	"paint.net",
	"affinity photo",
	"pixlr",
	"procreate",
}

// softwareAllowList names office, PDF and insurance ERP tooling that
// legitimately produces certificates.
var softwareAllowList = []string{
	"microsoft word",
	"microsoft excel",
	"microsoft office",
	"adobe acrobat",
	"adobe pdf library",
	"adobe livecycle",
	"libreoffice",
	"openoffice",
	"itext",
	"pdfbox",
	"wkhtmltopdf",
	"prince",
	"guidewire",
	"duck creek",
	"sap",
	"oracle",
	"crystal reports",
}

// insurerTemplate holds one issuer's document conventions: the shape of its
// policy/document numbers and the structural elements its certificates
// always carry.
type insurerTemplate struct {
	key              string
	policyNumber     *regexp.Regexp
	expectedElements []string
}

// standardElements are expected on every certificate regardless of issuer;
// individual templates extend them.
var standardElements = []string{
	"insurer_letterhead",
	"policy_schedule",
	"period_of_insurance",
	"insured_details",
	"signature_block",
}

// insurerTemplates is the fixed per-insurer format table. Lookup is by
// case-insensitive substring of the extracted insurer name, so "QBE
// Insurance (Australia) Limited" resolves to the QBE entry. New issuers are
// added here, not in code.
var insurerTemplates = []insurerTemplate{
	{
		key:              "qbe",
		policyNumber:     regexp.MustCompile(`^QBE[A-Z]{2}\d{8}$`),
		expectedElements: standardElements,
	},
	{
		key:              "allianz",
		policyNumber:     regexp.MustCompile(`^(?:ALZ|AW)\d{8,10}$`),
		expectedElements: standardElements,
	},
	{
		key:              "cgu",
		policyNumber:     regexp.MustCompile(`^\d{2}[A-Z]{3}\d{7}$`),
		expectedElements: standardElements,
	},
	{
		key:              "zurich",
		policyNumber:     regexp.MustCompile(`^ZU[A-Z]?\d{8}$`),
		expectedElements: standardElements,
	},
	{
		key:              "vero",
		policyNumber:     regexp.MustCompile(`^V[A-Z]{2}\d{7,9}$`),
		expectedElements: standardElements,
	},
	{
		key:              "chubb",
		policyNumber:     regexp.MustCompile(`^(?:CH|93)\d{8}$`),
		expectedElements: standardElements,
	},
	{
		key:              "hollard",
		policyNumber:     regexp.MustCompile(`^HOL\d{9}$`),
		expectedElements: standardElements,
	},
	{
		key:              "icare",
		policyNumber:     regexp.MustCompile(`^\d{9}$`),
		expectedElements: append([]string{"scheme_agent"}, standardElements...),
	},
}
