package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/juggajay/risksure-backend/internal/domain/errors"
	"github.com/juggajay/risksure-backend/internal/domain/verification"
	"github.com/juggajay/risksure-backend/internal/infrastructure/config"
	"github.com/juggajay/risksure-backend/internal/service/verdict"
	"github.com/juggajay/risksure-backend/internal/testutil/fixtures"
)

type fakeVerifier struct {
	got     verdict.Request
	verdict *verification.FinalVerdict
	err     error
}

func (f *fakeVerifier) Evaluate(_ context.Context, req verdict.Request) (*verification.FinalVerdict, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return f.verdict, nil
}

type fakeReader struct {
	verdict *verification.FinalVerdict
	err     error
}

func (f *fakeReader) GetByID(_ context.Context, _ uuid.UUID) (*verification.FinalVerdict, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.verdict, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func passVerdict() *verification.FinalVerdict {
	return &verification.FinalVerdict{
		ID:             uuid.New(),
		Status:         verification.VerificationPass,
		Confidence:     0.92,
		FraudRiskScore: 0,
		FraudRiskLevel: verification.RiskLow,
		EvaluatedAt:    fixtures.Now,
	}
}

func validPayload() SubmitVerificationRequest {
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	return SubmitVerificationRequest{
		ProjectID:     uuid.New(),
		ContractorABN: "51824753556",
		Filename:      "certificate-of-currency.pdf",
		Fingerprint:   strings.Repeat("ab", 32),
		Certificate: CertificatePayload{
			InsuredABN:   "51824753556",
			InsuredName:  "Example Contracting Pty Ltd",
			InsurerName:  "QBE Insurance",
			PolicyNumber: "QBEPL12345678",
			PeriodStart:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			PeriodEnd:    time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			Confidence:   0.92,
			Coverages: []CoveragePayload{
				{
					Type:                "public_liability",
					Limit:               "20000000",
					Excess:              "1000",
					PrincipalIndemnity:  true,
					CrossLiability:      true,
					WaiverOfSubrogation: true,
					Naming:              "principal_named",
				},
			},
		},
		ProjectEndDate: &end,
	}
}

func postVerification(t *testing.T, h *Handler, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/verifications", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.SubmitVerification(rec, req)
	return rec
}

func TestSubmitVerification_Success(t *testing.T) {
	verifier := &fakeVerifier{verdict: passVerdict()}
	h := NewHandler(verifier, &fakeReader{}, testLogger())
	payload := validPayload()

	rec := postVerification(t, h, payload)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got verification.FinalVerdict
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, verification.VerificationPass, got.Status)

	// The handler must pass the decoded domain request through untouched.
	assert.Equal(t, payload.ProjectID, verifier.got.ProjectID)
	assert.Equal(t, payload.ContractorABN, verifier.got.ContractorABN)
	require.NotNil(t, verifier.got.Certificate)
	assert.Equal(t, "QBEPL12345678", verifier.got.Certificate.PolicyNumber)
	require.Len(t, verifier.got.Certificate.Coverages, 1)
	assert.Equal(t, "$20000000.00", verifier.got.Certificate.Coverages[0].Limit.String())
	require.NotNil(t, verifier.got.ProjectEndDate)
}

func TestSubmitVerification_InvalidJSON(t *testing.T) {
	h := NewHandler(&fakeVerifier{}, &fakeReader{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/verifications", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.SubmitVerification(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_JSON")
}

func TestSubmitVerification_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SubmitVerificationRequest)
	}{
		{"missing contractor abn", func(r *SubmitVerificationRequest) { r.ContractorABN = "" }},
		{"missing filename", func(r *SubmitVerificationRequest) { r.Filename = "" }},
		{"short fingerprint", func(r *SubmitVerificationRequest) { r.Fingerprint = "abc123" }},
		{"no coverages", func(r *SubmitVerificationRequest) { r.Certificate.Coverages = nil }},
		{"confidence above one", func(r *SubmitVerificationRequest) { r.Certificate.Confidence = 1.5 }},
		{"bad naming tier", func(r *SubmitVerificationRequest) { r.Certificate.Coverages[0].Naming = "casually_mentioned" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeVerifier{}, &fakeReader{}, testLogger())
			payload := validPayload()
			tt.mutate(&payload)

			rec := postVerification(t, h, payload)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "INVALID_REQUEST")
		})
	}
}

func TestSubmitVerification_BadMoneyAmount(t *testing.T) {
	h := NewHandler(&fakeVerifier{}, &fakeReader{}, testLogger())
	payload := validPayload()
	payload.Certificate.Coverages[0].Limit = "twenty million"

	rec := postVerification(t, h, payload)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitVerification_PipelineError(t *testing.T) {
	verifier := &fakeVerifier{err: domainerrors.NewInternalError("storage down")}
	h := NewHandler(verifier, &fakeReader{}, testLogger())

	rec := postVerification(t, h, validPayload())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}

func TestGetVerification(t *testing.T) {
	t.Run("returns the verdict", func(t *testing.T) {
		stored := passVerdict()
		h := NewHandler(&fakeVerifier{}, &fakeReader{verdict: stored}, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/verifications/"+stored.ID.String(), nil)
		req.SetPathValue("id", stored.ID.String())
		rec := httptest.NewRecorder()
		h.GetVerification(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got verification.FinalVerdict
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, stored.ID, got.ID)
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		h := NewHandler(&fakeVerifier{}, &fakeReader{err: domainerrors.ErrVerificationNotFound}, testLogger())

		id := uuid.New().String()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/verifications/"+id, nil)
		req.SetPathValue("id", id)
		rec := httptest.NewRecorder()
		h.GetVerification(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		h := NewHandler(&fakeVerifier{}, &fakeReader{}, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/verifications/not-a-uuid", nil)
		req.SetPathValue("id", "not-a-uuid")
		rec := httptest.NewRecorder()
		h.GetVerification(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_Auth(t *testing.T) {
	secret := "test-secret"
	securityCfg := config.SecurityConfig{
		JWTSecret: secret,
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 100, BurstSize: 100},
	}
	h := NewHandler(&fakeVerifier{verdict: passVerdict()}, &fakeReader{}, testLogger())
	router := NewRouter(h, securityCfg, testLogger())

	body, err := json.Marshal(validPayload())
	require.NoError(t, err)

	t.Run("missing token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/verifications", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/verifications", bytes.NewReader(body))
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token is accepted", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "extraction-service",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte(secret))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/verifications", bytes.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("healthz bypasses auth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	handler := rateLimitMiddleware(1, 2)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)

	// A different client has its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
