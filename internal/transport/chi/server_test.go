package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ghwns6404/ondongne/internal/domain"
	analysisuc "github.com/ghwns6404/ondongne/internal/usecase/analysis"
	healthuc "github.com/ghwns6404/ondongne/internal/usecase/health"
	moderationuc "github.com/ghwns6404/ondongne/internal/usecase/moderation"
	recommenduc "github.com/ghwns6404/ondongne/internal/usecase/recommend"
	searchuc "github.com/ghwns6404/ondongne/internal/usecase/search"
)

// --- Mocks ---

type mockSearcher struct {
	result searchuc.Result
	err    error
	query  string
}

func (m *mockSearcher) Search(_ context.Context, query string) (searchuc.Result, error) {
	m.query = query
	return m.result, m.err
}

type mockRecommender struct {
	result recommenduc.Result
	err    error
	userID string
	limit  int
}

func (m *mockRecommender) Recommend(_ context.Context, userID string, limit int) (recommenduc.Result, error) {
	m.userID, m.limit = userID, limit
	return m.result, m.err
}

type mockModerator struct {
	result moderationuc.CheckResult
	err    error
}

func (m *mockModerator) Check(_ context.Context, _ string) (moderationuc.CheckResult, error) {
	return m.result, m.err
}

type mockAnalyzer struct {
	result analysisuc.Suggestion
	err    error
}

func (m *mockAnalyzer) AnalyzeImage(_ context.Context, _ string) (analysisuc.Suggestion, error) {
	return m.result, m.err
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report {
	return m.report
}

type testServer struct {
	*Server
	search    *mockSearcher
	recommend *mockRecommender
	moderate  *mockModerator
	analyze   *mockAnalyzer
	health    *mockHealth
	router    chirouter.Router
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		search:    &mockSearcher{},
		recommend: &mockRecommender{},
		moderate:  &mockModerator{},
		analyze:   &mockAnalyzer{},
		health:    &mockHealth{report: healthuc.Report{Status: healthuc.Healthy}},
	}
	ts.Server = NewServer(ts.search, ts.recommend, ts.moderate, ts.analyze, ts.health, zap.NewNop())
	ts.router = chirouter.NewRouter()
	ts.Server.Register(ts.router)
	return ts
}

func doJSON(t *testing.T, router chirouter.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error body not JSON: %v (%s)", err, rec.Body.String())
	}
	return resp
}

// --- Tests ---

func TestHandleSearch_Success(t *testing.T) {
	ts := newTestServer(t)
	ts.search.result = searchuc.Result{
		Message:  "2개 찾았어요",
		Results:  []domain.ScoredResult{{ID: "p1", Kind: domain.KindProduct, MatchScore: 4}},
		Keywords: []string{"자전거"},
	}

	rec := doJSON(t, ts.router, http.MethodPost, "/search", `{"query": "자전거"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if ts.search.query != "자전거" {
		t.Errorf("query not forwarded: %q", ts.search.query)
	}

	var resp searchuc.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if resp.Message != "2개 찾았어요" || len(resp.Results) != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHandleSearch_InvalidBody(t *testing.T) {
	ts := newTestServer(t)

	rec := doJSON(t, ts.router, http.MethodPost, "/search", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != CodeInvalidArgument {
		t.Errorf("unexpected code: %s", resp.Code)
	}
}

func TestHandleSearch_EmptyQuery(t *testing.T) {
	ts := newTestServer(t)
	ts.search.err = domain.ErrInvalidQuery

	rec := doJSON(t, ts.router, http.MethodPost, "/search", `{"query": ""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != CodeInvalidArgument {
		t.Errorf("unexpected code: %s", resp.Code)
	}
}

func TestHandleSearch_StoreErrorIsInternal(t *testing.T) {
	ts := newTestServer(t)
	ts.search.err = errors.New("connection refused")

	rec := doJSON(t, ts.router, http.MethodPost, "/search", `{"query": "자전거"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	resp := decodeError(t, rec)
	if resp.Code != CodeInternal {
		t.Errorf("unexpected code: %s", resp.Code)
	}
	// Internal details must not leak to the client.
	if strings.Contains(resp.Message, "connection refused") {
		t.Errorf("internal detail leaked: %q", resp.Message)
	}
}

func TestHandleRecommend_Success(t *testing.T) {
	ts := newTestServer(t)
	ts.recommend.result = recommenduc.Result{
		Recommendations: []domain.Candidate{{ID: "c1", Reason: "취향 저격"}},
		UserPreference:  &recommenduc.Preference{TopCategories: []string{"디지털기기"}, AvgPrice: 50000},
	}

	rec := doJSON(t, ts.router, http.MethodPost, "/recommendations", `{"userId": "u1", "limit": 3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if ts.recommend.userID != "u1" || ts.recommend.limit != 3 {
		t.Errorf("request not forwarded: %q/%d", ts.recommend.userID, ts.recommend.limit)
	}
}

func TestHandleRecommend_InvalidUser(t *testing.T) {
	ts := newTestServer(t)
	ts.recommend.err = domain.ErrInvalidUser

	rec := doJSON(t, ts.router, http.MethodPost, "/recommendations", `{"userId": ""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleModerationCheck(t *testing.T) {
	ts := newTestServer(t)
	ts.moderate.result = moderationuc.CheckResult{IsClean: false, Reason: "욕설 포함"}

	rec := doJSON(t, ts.router, http.MethodPost, "/moderation/check", `{"text": "검사 대상"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp moderationuc.CheckResult
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if resp.IsClean || resp.Reason != "욕설 포함" {
		t.Errorf("unexpected verdict: %+v", resp)
	}
}

func TestHandleAnalyzeListing_ProhibitedItem(t *testing.T) {
	ts := newTestServer(t)
	ts.analyze.err = domain.ErrProhibitedItem

	rec := doJSON(t, ts.router, http.MethodPost, "/listings/analyze", `{"imageBase64": "aGVsbG8="}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != CodeProhibitedItem {
		t.Errorf("unexpected code: %s", resp.Code)
	}
}

func TestHandleAnalyzeListing_ProviderError(t *testing.T) {
	ts := newTestServer(t)
	ts.analyze.err = domain.ErrCompletionProvider

	rec := doJSON(t, ts.router, http.MethodPost, "/listings/analyze", `{"imageBase64": "aGVsbG8="}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != CodeProviderError {
		t.Errorf("unexpected code: %s", resp.Code)
	}
}

func TestHandleDomainError_LogsOncePerOutcome(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	srv := NewServer(&mockSearcher{}, &mockRecommender{}, &mockModerator{}, &mockAnalyzer{}, &mockHealth{}, zap.New(core))

	srv.handleDomainError(httptest.NewRecorder(), errors.New("connection refused"))
	entries := logs.TakeAll()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry for an internal error, got %d", len(entries))
	}
	if entries[0].Level != zapcore.ErrorLevel {
		t.Errorf("expected Error level, got %s", entries[0].Level)
	}

	srv.handleDomainError(httptest.NewRecorder(), domain.ErrInvalidQuery)
	entries = logs.TakeAll()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry for a mapped error, got %d", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Errorf("expected Warn level, got %s", entries[0].Level)
	}
}

func TestHandleHealth_Healthy(t *testing.T) {
	ts := newTestServer(t)
	ts.health.report = healthuc.Report{
		Status: healthuc.Healthy,
		Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK},
	}

	rec := doJSON(t, ts.router, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHandleHealth_Degraded(t *testing.T) {
	ts := newTestServer(t)
	ts.health.report = healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckError},
	}

	rec := doJSON(t, ts.router, http.MethodGet, "/health", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
