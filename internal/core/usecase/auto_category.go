package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/greenloop/ecoai-commerce/internal/core/domain"
	"github.com/greenloop/ecoai-commerce/internal/core/ports"
	"github.com/greenloop/ecoai-commerce/internal/core/prompt"
)

// AutoCategoryUseCase orchestrates one categorization: prompt, provider call,
// audit write, validation, domain write. No retries anywhere in this path.
type AutoCategoryUseCase struct {
	completer ports.ChatCompleter
	store     ports.RecordStore
	now       func() time.Time
}

func NewAutoCategoryUseCase(completer ports.ChatCompleter, store ports.RecordStore) *AutoCategoryUseCase {
	return &AutoCategoryUseCase{
		completer: completer,
		store:     store,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (uc *AutoCategoryUseCase) Generate(ctx context.Context, in domain.AutoCategoryInput) (*domain.AutoCategoryResult, error) {
	p := prompt.AutoCategory(in)

	raw, err := uc.completer.Complete(ctx, ports.CompletionRequest{System: p.System, User: p.User})
	if err != nil {
		if domain.IsKind(err, domain.ErrProviderFailure) {
			return nil, err
		}
		return nil, domain.WrapError(domain.ErrProviderFailure, "auto category completion", err)
	}

	// Audit first: the exact prompt/response pair is recorded even when the
	// response later fails validation. A failed audit write aborts the operation.
	audit := domain.PromptLogRecord{
		Module:       domain.ModuleAutoCategory,
		InputPayload: in,
		Prompt:       p.User,
		RawResponse:  raw,
		Timestamp:    uc.now(),
	}
	if err := uc.store.InsertOne(ctx, domain.CollectionPromptLogs, audit); err != nil {
		return nil, domain.WrapError(domain.ErrPersistenceFailure, "record prompt log", err)
	}

	payload, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	result, err := validateAutoCategory(payload)
	if err != nil {
		return nil, err
	}

	record := domain.AutoCategoryRecord{
		Title:                 in.Title,
		Description:           in.Description,
		PrimaryCategory:       result.PrimaryCategory,
		SubCategory:           result.SubCategory,
		SEOTags:               result.SEOTags,
		SustainabilityFilters: result.SustainabilityFilters,
		Timestamp:             uc.now(),
	}
	if err := uc.store.InsertOne(ctx, domain.CollectionAutoCategories, record); err != nil {
		return nil, domain.WrapError(domain.ErrPersistenceFailure, "record auto category result", err)
	}

	return result, nil
}

// validateAutoCategory narrows the untyped response tree into a validated
// result: required keys, vocabulary membership, cleaned non-empty lists.
// List ordering from the provider is preserved.
func validateAutoCategory(payload map[string]any) (*domain.AutoCategoryResult, error) {
	const op = "auto category response"

	if missing := missingKeys(payload, "primary_category", "sub_category", "seo_tags", "sustainability_filters"); len(missing) > 0 {
		return nil, domain.WrapError(domain.ErrMissingField, op,
			fmt.Errorf("missing response fields: %v", missing))
	}

	primary := strings.TrimSpace(stringOf(payload["primary_category"]))
	if !domain.IsAllowedCategory(primary) {
		return nil, domain.WrapError(domain.ErrUnsupportedValue, op,
			fmt.Errorf("unsupported primary_category: %q", primary))
	}

	sub := strings.TrimSpace(stringOf(payload["sub_category"]))
	if sub == "" {
		return nil, domain.WrapError(domain.ErrEmptyField, op, fmt.Errorf("empty sub_category"))
	}

	rawTags, ok := payload["seo_tags"].([]any)
	if !ok || len(rawTags) == 0 {
		return nil, domain.WrapError(domain.ErrEmptyField, op, fmt.Errorf("empty seo_tags"))
	}
	tags := cleanStringList(rawTags)
	if len(tags) == 0 {
		return nil, domain.WrapError(domain.ErrEmptyField, op, fmt.Errorf("seo_tags contain no usable values"))
	}

	rawFilters, ok := payload["sustainability_filters"].([]any)
	if !ok || len(rawFilters) == 0 {
		return nil, domain.WrapError(domain.ErrEmptyField, op, fmt.Errorf("empty sustainability_filters"))
	}
	filters := cleanStringList(rawFilters)
	if len(filters) == 0 {
		return nil, domain.WrapError(domain.ErrEmptyField, op, fmt.Errorf("sustainability_filters contain no usable values"))
	}
	var invalid []string
	for _, f := range filters {
		if !domain.IsAllowedSustainabilityFilter(f) {
			invalid = append(invalid, f)
		}
	}
	if len(invalid) > 0 {
		return nil, domain.WrapError(domain.ErrUnsupportedValue, op,
			fmt.Errorf("unsupported sustainability_filters: %v", invalid))
	}

	return &domain.AutoCategoryResult{
		PrimaryCategory:       primary,
		SubCategory:           sub,
		SEOTags:               tags,
		SustainabilityFilters: filters,
	}, nil
}
