package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenloop/ecoai-commerce/internal/core/domain"
	"github.com/greenloop/ecoai-commerce/internal/core/ports"
	"github.com/greenloop/ecoai-commerce/internal/core/prompt"
)

var moneyTolerance = decimal.NewFromFloat(domain.MoneyTolerance)

// B2BProposalUseCase orchestrates one proposal generation with the same
// sequence as categorization, plus budget cross-checks against the request.
type B2BProposalUseCase struct {
	completer ports.ChatCompleter
	store     ports.RecordStore
	now       func() time.Time
}

func NewB2BProposalUseCase(completer ports.ChatCompleter, store ports.RecordStore) *B2BProposalUseCase {
	return &B2BProposalUseCase{
		completer: completer,
		store:     store,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (uc *B2BProposalUseCase) Generate(ctx context.Context, in domain.B2BProposalInput) (*domain.B2BProposalResult, error) {
	p := prompt.B2BProposal(in)

	raw, err := uc.completer.Complete(ctx, ports.CompletionRequest{System: p.System, User: p.User})
	if err != nil {
		if domain.IsKind(err, domain.ErrProviderFailure) {
			return nil, err
		}
		return nil, domain.WrapError(domain.ErrProviderFailure, "b2b proposal completion", err)
	}

	audit := domain.PromptLogRecord{
		Module:       domain.ModuleB2BProposal,
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

	result, err := validateB2BProposal(payload, in.Budget)
	if err != nil {
		return nil, err
	}

	record := domain.B2BProposalRecord{
		OriginalBudget:   domain.RoundMoney(in.Budget),
		OriginalIndustry: in.Industry,
		ProductMix:       result.ProductMix,
		BudgetBreakdown:  result.BudgetBreakdown,
		ImpactSummary:    result.ImpactSummary,
		Timestamp:        uc.now(),
	}
	if err := uc.store.InsertOne(ctx, domain.CollectionB2BProposals, record); err != nil {
		return nil, domain.WrapError(domain.ErrPersistenceFailure, "record b2b proposal result", err)
	}

	return result, nil
}

// validateB2BProposal checks structure, per-item arithmetic and the budget
// invariants. The returned breakdown carries figures recomputed from the
// accepted product mix; provider-echoed totals are only used for the
// consistency checks.
func validateB2BProposal(payload map[string]any, budget float64) (*domain.B2BProposalResult, error) {
	const op = "b2b proposal response"

	if missing := missingKeys(payload, "product_mix", "budget_breakdown", "impact_summary"); len(missing) > 0 {
		return nil, domain.WrapError(domain.ErrMissingField, op,
			fmt.Errorf("missing response fields: %v", missing))
	}

	rawMix, ok := payload["product_mix"].([]any)
	if !ok || len(rawMix) == 0 {
		return nil, domain.WrapError(domain.ErrEmptyField, op, fmt.Errorf("empty product_mix"))
	}
	breakdown, ok := payload["budget_breakdown"].(map[string]any)
	if !ok {
		return nil, domain.WrapError(domain.ErrInvalidResponseFormat, op,
			fmt.Errorf("budget_breakdown must be an object"))
	}
	impact := strings.TrimSpace(stringOf(payload["impact_summary"]))
	if impact == "" {
		return nil, domain.WrapError(domain.ErrEmptyField, op, fmt.Errorf("empty impact_summary"))
	}

	mix := make([]domain.ProductItem, 0, len(rawMix))
	// Running sum is re-rounded after every addition to avoid drift.
	calculated := decimal.Zero
	for i, rawItem := range rawMix {
		item, ok := rawItem.(map[string]any)
		if !ok {
			return nil, domain.WrapError(domain.ErrInvalidResponseFormat, op,
				fmt.Errorf("product_mix[%d] must be an object", i))
		}
		for _, key := range []string{"product_name", "quantity", "unit_cost", "total_cost"} {
			if _, ok := item[key]; !ok {
				return nil, domain.WrapError(domain.ErrMissingField, op,
					fmt.Errorf("product_mix[%d] missing %s", i, key))
			}
		}

		name := strings.TrimSpace(stringOf(item["product_name"]))
		if name == "" {
			return nil, domain.WrapError(domain.ErrEmptyField, op,
				fmt.Errorf("product_mix[%d] has empty product_name", i))
		}

		quantity, err := toQuantity(item["quantity"])
		if err != nil {
			return nil, domain.WrapError(domain.ErrInvalidValue, op,
				fmt.Errorf("product_mix[%d] quantity: %w", i, err))
		}
		if quantity <= 0 {
			return nil, domain.WrapError(domain.ErrInvalidValue, op,
				fmt.Errorf("product_mix[%d] has non-positive quantity %d", i, quantity))
		}

		unitCost, err := toMoney(item["unit_cost"])
		if err != nil {
			return nil, domain.WrapError(domain.ErrInvalidValue, op,
				fmt.Errorf("product_mix[%d] unit_cost: %w", i, err))
		}
		totalCost, err := toMoney(item["total_cost"])
		if err != nil {
			return nil, domain.WrapError(domain.ErrInvalidValue, op,
				fmt.Errorf("product_mix[%d] total_cost: %w", i, err))
		}
		if unitCost.IsNegative() || totalCost.IsNegative() {
			return nil, domain.WrapError(domain.ErrInvalidValue, op,
				fmt.Errorf("product_mix[%d] has negative cost", i))
		}

		expected := unitCost.Mul(decimal.NewFromInt(quantity)).Round(2)
		if totalCost.Sub(expected).Abs().GreaterThan(moneyTolerance) {
			return nil, domain.WrapError(domain.ErrArithmeticMismatch, op,
				fmt.Errorf("product_mix[%d] total_cost %s does not equal quantity*unit_cost %s", i, totalCost, expected))
		}

		calculated = calculated.Add(totalCost).Round(2)
		mix = append(mix, domain.ProductItem{
			ProductName: name,
			Quantity:    quantity,
			UnitCost:    unitCost.InexactFloat64(),
			TotalCost:   totalCost.InexactFloat64(),
		})
	}

	if missing := missingKeys(breakdown, "total_allocated", "remaining_budget"); len(missing) > 0 {
		return nil, domain.WrapError(domain.ErrMissingField, op,
			fmt.Errorf("missing budget_breakdown fields: %v", missing))
	}
	totalAllocated, err := toMoney(breakdown["total_allocated"])
	if err != nil {
		return nil, domain.WrapError(domain.ErrInvalidValue, op, fmt.Errorf("total_allocated: %w", err))
	}
	remaining, err := toMoney(breakdown["remaining_budget"])
	if err != nil {
		return nil, domain.WrapError(domain.ErrInvalidValue, op, fmt.Errorf("remaining_budget: %w", err))
	}

	normBudget := decimal.NewFromFloat(budget).Round(2)

	if totalAllocated.Sub(calculated).Abs().GreaterThan(moneyTolerance) {
		return nil, domain.WrapError(domain.ErrArithmeticMismatch, op,
			fmt.Errorf("total_allocated %s does not match sum of product costs %s", totalAllocated, calculated))
	}
	if totalAllocated.Sub(normBudget).GreaterThan(moneyTolerance) {
		return nil, domain.WrapError(domain.ErrBudgetExceeded, op,
			fmt.Errorf("total_allocated %s exceeds budget %s", totalAllocated, normBudget))
	}
	expectedRemaining := normBudget.Sub(totalAllocated).Round(2)
	if remaining.Sub(expectedRemaining).Abs().GreaterThan(moneyTolerance) {
		return nil, domain.WrapError(domain.ErrArithmeticMismatch, op,
			fmt.Errorf("remaining_budget %s does not equal budget minus total_allocated %s", remaining, expectedRemaining))
	}

	return &domain.B2BProposalResult{
		ProductMix: mix,
		BudgetBreakdown: domain.BudgetBreakdown{
			TotalAllocated:  calculated.InexactFloat64(),
			RemainingBudget: normBudget.Sub(calculated).Round(2).InexactFloat64(),
		},
		ImpactSummary: impact,
	}, nil
}
