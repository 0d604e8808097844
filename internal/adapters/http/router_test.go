package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/greenloop/ecoai-commerce/internal/core/domain"
	"github.com/greenloop/ecoai-commerce/internal/core/ports"
	"github.com/greenloop/ecoai-commerce/internal/core/usecase"
	"github.com/greenloop/ecoai-commerce/internal/observability/metrics"
)

type completerFake struct {
	response string
	err      error
	calls    int
}

func (f *completerFake) Complete(context.Context, ports.CompletionRequest) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type storeFake struct {
	collections []string
	pingErr     error
}

func (f *storeFake) InsertOne(_ context.Context, collection string, _ any) error {
	f.collections = append(f.collections, collection)
	return nil
}

func (f *storeFake) Ping(context.Context) error { return f.pingErr }

func newTestRouter(completer *completerFake, store *storeFake) http.Handler {
	return NewRouter(
		"EcoAI Commerce Engine",
		usecase.NewAutoCategoryUseCase(completer, store),
		usecase.NewB2BProposalUseCase(completer, store),
		store,
		metrics.NewServerMetrics("test"),
	).Handler()
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	return res
}

func TestAutoCategoryEndToEnd(t *testing.T) {
	completer := &completerFake{
		response: `{"primary_category":"Personal Care","sub_category":"Oral Care","seo_tags":["eco","bamboo"],"sustainability_filters":["biodegradable","plastic-free"]}`,
	}
	store := &storeFake{}
	handler := newTestRouter(completer, store)

	res := postJSON(t, handler, "/api/v1/ai/auto-category", map[string]any{
		"title":       "Bamboo Toothbrush",
		"description": "A biodegradable toothbrush with bamboo handle.",
	})
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	var body domain.AutoCategoryResult
	if err := json.Unmarshal(res.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.PrimaryCategory != "Personal Care" || body.SubCategory != "Oral Care" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if !reflect.DeepEqual(body.SEOTags, []string{"eco", "bamboo"}) {
		t.Fatalf("unexpected tags: %v", body.SEOTags)
	}
	if !reflect.DeepEqual(store.collections, []string{domain.CollectionPromptLogs, domain.CollectionAutoCategories}) {
		t.Fatalf("expected exactly audit + domain writes, got %v", store.collections)
	}
}

func TestAutoCategoryUnsupportedFilterEndToEnd(t *testing.T) {
	completer := &completerFake{
		response: `{"primary_category":"Personal Care","sub_category":"Oral Care","seo_tags":["eco"],"sustainability_filters":["biodegradable","unicorn-dust"]}`,
	}
	store := &storeFake{}
	handler := newTestRouter(completer, store)

	res := postJSON(t, handler, "/api/v1/ai/auto-category", map[string]any{
		"title":       "Bamboo Toothbrush",
		"description": "A biodegradable toothbrush with bamboo handle.",
	})
	if res.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", res.Code)
	}

	var envelope map[string]any
	if err := json.Unmarshal(res.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope["error"] != "AIServiceError" {
		t.Fatalf("expected AIServiceError tag, got %v", envelope["error"])
	}
	details, _ := envelope["details"].(string)
	if !bytes.Contains([]byte(details), []byte("unicorn-dust")) {
		t.Fatalf("expected offending filter in details, got %q", details)
	}
	// No domain record after failed validation.
	if !reflect.DeepEqual(store.collections, []string{domain.CollectionPromptLogs}) {
		t.Fatalf("expected only audit write, got %v", store.collections)
	}
}

func TestAutoCategoryProviderDownEndToEnd(t *testing.T) {
	completer := &completerFake{err: errors.New("dial tcp: connection refused")}
	store := &storeFake{}
	handler := newTestRouter(completer, store)

	res := postJSON(t, handler, "/api/v1/ai/auto-category", map[string]any{
		"title":       "Bamboo Toothbrush",
		"description": "A biodegradable toothbrush with bamboo handle.",
	})
	if res.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", res.Code)
	}
	if len(store.collections) != 0 {
		t.Fatalf("expected no documents written, got %v", store.collections)
	}
}

func TestAutoCategoryRequestValidation(t *testing.T) {
	completer := &completerFake{}
	handler := newTestRouter(completer, &storeFake{})

	res := postJSON(t, handler, "/api/v1/ai/auto-category", map[string]any{
		"title":       "ab",
		"description": "too short",
	})
	if res.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", res.Code)
	}

	var envelope struct {
		Error   string       `json:"error"`
		Details []fieldError `json:"details"`
		Path    string       `json:"path"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Error != "ValidationError" {
		t.Fatalf("expected ValidationError tag, got %q", envelope.Error)
	}
	if len(envelope.Details) != 2 {
		t.Fatalf("expected both fields reported, got %+v", envelope.Details)
	}
	if envelope.Path != "/api/v1/ai/auto-category" {
		t.Fatalf("expected request path in envelope, got %q", envelope.Path)
	}
	if completer.calls != 0 {
		t.Fatalf("provider must not be called for invalid input")
	}
}

func TestAutoCategoryMalformedBody(t *testing.T) {
	handler := newTestRouter(&completerFake{}, &storeFake{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ai/auto-category", bytes.NewReader([]byte("{not json")))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", res.Code)
	}
}

func TestB2BProposalEndToEnd(t *testing.T) {
	completer := &completerFake{
		response: `{
  "product_mix": [{"product_name":"Compostable Cups","quantity":40,"unit_cost":2.5,"total_cost":100.0}],
  "budget_breakdown": {"total_allocated":100.0,"remaining_budget":900.0},
  "impact_summary": "Eliminates plastic cups."
}`,
	}
	store := &storeFake{}
	handler := newTestRouter(completer, store)

	res := postJSON(t, handler, "/api/v1/ai/b2b-proposal", map[string]any{
		"budget":   1000.0,
		"industry": "hospitality",
	})
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	var body domain.B2BProposalResult
	if err := json.Unmarshal(res.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.BudgetBreakdown.TotalAllocated != 100.0 || body.BudgetBreakdown.RemainingBudget != 900.0 {
		t.Fatalf("unexpected breakdown: %+v", body.BudgetBreakdown)
	}
	if !reflect.DeepEqual(store.collections, []string{domain.CollectionPromptLogs, domain.CollectionB2BProposals}) {
		t.Fatalf("expected audit + domain writes, got %v", store.collections)
	}
}

func TestB2BProposalRequestValidation(t *testing.T) {
	handler := newTestRouter(&completerFake{}, &storeFake{})

	res := postJSON(t, handler, "/api/v1/ai/b2b-proposal", map[string]any{
		"budget":   0,
		"industry": "x",
	})
	if res.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", res.Code)
	}
}

func TestHealthOK(t *testing.T) {
	handler := newTestRouter(&completerFake{}, &storeFake{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(res.Body.Bytes(), &body)
	if body["status"] != "ok" || body["database"] != "connected" {
		t.Fatalf("unexpected health body: %v", body)
	}
	if body["service"] != "EcoAI Commerce Engine" {
		t.Fatalf("expected service name, got %v", body["service"])
	}
}

func TestHealthDegradedStillHTTP200(t *testing.T) {
	handler := newTestRouter(&completerFake{}, &storeFake{pingErr: errors.New("no reachable servers")})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("degraded health must still be 200, got %d", res.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(res.Body.Bytes(), &body)
	if body["status"] != "degraded" || body["database"] != "unhealthy" {
		t.Fatalf("unexpected health body: %v", body)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	handler := newTestRouter(&completerFake{}, &storeFake{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ai/auto-category", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", res.Code)
	}
}

func TestRequestIDHeaderEchoed(t *testing.T) {
	handler := newTestRouter(&completerFake{}, &storeFake{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set(requestIDHeader, "req-123")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if got := res.Header().Get(requestIDHeader); got != "req-123" {
		t.Fatalf("expected request id echoed, got %q", got)
	}
}
