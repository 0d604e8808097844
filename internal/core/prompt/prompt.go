// Package prompt builds the deterministic system+user prompt pairs sent to
// the provider. The user prompt is a serialized structured payload; struct
// field order keeps the serialization stable across calls.
package prompt

import (
	"encoding/json"

	"github.com/greenloop/ecoai-commerce/internal/core/domain"
)

type Prompt struct {
	System string
	User   string
}

const (
	autoCategorySystem = "You are an AI for sustainable commerce metadata generation. " +
		"Return strictly valid JSON only. No explanations. No markdown. No extra text."

	b2bProposalSystem = "You are an AI assistant for sustainable B2B commerce planning. " +
		"Return strictly valid JSON only. No explanations. No markdown. No extra text."
)

type autoCategoryPayload struct {
	Task                         string         `json:"task"`
	Title                        string         `json:"title"`
	Description                  string         `json:"description"`
	AllowedPrimaryCategories     []string       `json:"allowed_primary_categories"`
	AllowedSustainabilityFilters []string       `json:"allowed_sustainability_filters"`
	RequiredOutputSchema         map[string]any `json:"required_output_schema"`
	Constraints                  []string       `json:"constraints"`
}

func AutoCategory(in domain.AutoCategoryInput) Prompt {
	payload := autoCategoryPayload{
		Task:                         "Generate category and tags for the product.",
		Title:                        in.Title,
		Description:                  in.Description,
		AllowedPrimaryCategories:     domain.AllowedCategories,
		AllowedSustainabilityFilters: domain.AllowedSustainabilityFilters,
		RequiredOutputSchema: map[string]any{
			"primary_category":       "string",
			"sub_category":           "string",
			"seo_tags":               []string{"string"},
			"sustainability_filters": []string{"string"},
		},
		Constraints: []string{
			"primary_category must be one of allowed_primary_categories",
			"sustainability_filters must contain only allowed_sustainability_filters values",
			"seo_tags and sustainability_filters must be non-empty arrays",
		},
	}
	return Prompt{System: autoCategorySystem, User: mustMarshal(payload)}
}

type b2bProposalPayload struct {
	Task                 string         `json:"task"`
	Budget               float64        `json:"budget"`
	Industry             string         `json:"industry"`
	RequiredOutputSchema map[string]any `json:"required_output_schema"`
	Rules                []string       `json:"rules"`
}

func B2BProposal(in domain.B2BProposalInput) Prompt {
	payload := b2bProposalPayload{
		Task:     "Generate a sustainable B2B product proposal within budget.",
		Budget:   in.Budget,
		Industry: in.Industry,
		RequiredOutputSchema: map[string]any{
			"product_mix": []map[string]string{{
				"product_name": "string",
				"quantity":     "integer",
				"unit_cost":    "float",
				"total_cost":   "float",
			}},
			"budget_breakdown": map[string]string{
				"total_allocated":  "float",
				"remaining_budget": "float",
			},
			"impact_summary": "string",
		},
		Rules: []string{
			"total_cost must equal quantity * unit_cost",
			"budget_breakdown.total_allocated must equal sum(product_mix.total_cost)",
			"budget_breakdown.total_allocated must be <= budget",
			"budget_breakdown.remaining_budget must equal budget - total_allocated",
		},
	}
	return Prompt{System: b2bProposalSystem, User: mustMarshal(payload)}
}

// mustMarshal never fails here: payload structs contain only marshalable fields.
func mustMarshal(payload any) string {
	body, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	return string(body)
}
