package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/greenloop/ecoai-commerce/internal/core/domain"
	"github.com/greenloop/ecoai-commerce/internal/core/ports"
	"github.com/greenloop/ecoai-commerce/internal/observability/metrics"
)

type Router struct {
	appName    string
	categoryUC ports.AutoCategoryGenerator
	proposalUC ports.B2BProposalGenerator
	store      ports.RecordStore
	metrics    *metrics.ServerMetrics
}

func NewRouter(
	appName string,
	categoryUC ports.AutoCategoryGenerator,
	proposalUC ports.B2BProposalGenerator,
	store ports.RecordStore,
	serverMetrics *metrics.ServerMetrics,
) *Router {
	return &Router{
		appName:    appName,
		categoryUC: categoryUC,
		proposalUC: proposalUC,
		store:      store,
		metrics:    serverMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", rt.root)
	mux.HandleFunc("/api/v1/health", rt.health)
	mux.HandleFunc("/api/v1/ai/auto-category", rt.autoCategory)
	mux.HandleFunc("/api/v1/ai/b2b-proposal", rt.b2bProposal)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}
	return requestIDMiddleware(accessLogMiddleware(rt.metrics.Middleware(mux)))
}

func (rt *Router) root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, r, http.StatusNotFound, "NotFound", "resource not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": rt.appName + " API"})
}

func (rt *Router) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "MethodNotAllowed", "method not allowed")
		return
	}

	dbState := "connected"
	if err := rt.store.Ping(r.Context()); err != nil {
		dbState = "unhealthy"
	}
	status := "ok"
	if dbState != "connected" {
		status = "degraded"
	}

	// A degraded dependency is reported, not treated as a request failure.
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    status,
		"service":   rt.appName,
		"database":  dbState,
		"timestamp": time.Now().UTC(),
	})
}

func (rt *Router) autoCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, "MethodNotAllowed", "method not allowed")
		return
	}

	var req autoCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "ValidationError", "invalid JSON body")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeError(w, r, http.StatusUnprocessableEntity, "ValidationError", errs)
		return
	}

	start := time.Now()
	result, err := rt.categoryUC.Generate(r.Context(), domain.AutoCategoryInput{
		Title:       req.Title,
		Description: req.Description,
	})
	rt.metrics.RecordGeneration(domain.ModuleAutoCategory, outcomeLabel(err), time.Since(start))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) b2bProposal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, "MethodNotAllowed", "method not allowed")
		return
	}

	var req b2bProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "ValidationError", "invalid JSON body")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeError(w, r, http.StatusUnprocessableEntity, "ValidationError", errs)
		return
	}

	start := time.Now()
	result, err := rt.proposalUC.Generate(r.Context(), domain.B2BProposalInput{
		Budget:   req.Budget,
		Industry: req.Industry,
	})
	rt.metrics.RecordGeneration(domain.ModuleB2BProposal, outcomeLabel(err), time.Since(start))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
