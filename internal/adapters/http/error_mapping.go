package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/greenloop/ecoai-commerce/internal/core/domain"
)

// writeDomainError maps error kinds onto the externally visible classes:
// request validation 422, generation (provider or response validation) 502,
// persistence 503, everything else 500. The triggering error's message is
// preserved in the detail; stack traces and internals are not.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		writeError(w, r, http.StatusUnprocessableEntity, "ValidationError", err.Error())
	case domain.IsKind(err, domain.ErrPersistenceFailure):
		writeError(w, r, http.StatusServiceUnavailable, "DatabaseError", err.Error())
	case domain.IsGenerationFailure(err):
		writeError(w, r, http.StatusBadGateway, "AIServiceError", err.Error())
	default:
		slog.Error("unhandled_error", "request_id", requestIDFromContext(r.Context()), "path", r.URL.Path, "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalServerError", "Unexpected server error")
	}
}

// outcomeLabel classifies an operation result for generation metrics.
func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case domain.IsKind(err, domain.ErrProviderFailure):
		return "provider_error"
	case domain.IsKind(err, domain.ErrPersistenceFailure):
		return "persistence_error"
	case domain.IsGenerationFailure(err):
		return "validation_error"
	default:
		return "internal_error"
	}
}
