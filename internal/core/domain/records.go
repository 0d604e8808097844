package domain

import "time"

// Logical document-store collections. Each is an append-only insert target.
const (
	CollectionPromptLogs     = "prompt_logs"
	CollectionAutoCategories = "auto_categories"
	CollectionB2BProposals   = "b2b_proposals"
)

// Module names stamped onto audit records.
const (
	ModuleAutoCategory = "auto_category"
	ModuleB2BProposal  = "b2b_proposal"
)

// PromptLogRecord is the write-only audit trail entry: the exact prompt sent
// and raw response received, kept independent of domain-result validity.
type PromptLogRecord struct {
	Module       string    `json:"module"`
	InputPayload any       `json:"input_payload"`
	Prompt       string    `json:"prompt"`
	RawResponse  string    `json:"raw_response"`
	Timestamp    time.Time `json:"timestamp"`
}

// AutoCategoryRecord is the persisted domain result for catalog workflows.
type AutoCategoryRecord struct {
	Title                 string    `json:"title"`
	Description           string    `json:"description"`
	PrimaryCategory       string    `json:"primary_category"`
	SubCategory           string    `json:"sub_category"`
	SEOTags               []string  `json:"seo_tags"`
	SustainabilityFilters []string  `json:"sustainability_filters"`
	Timestamp             time.Time `json:"timestamp"`
}

// B2BProposalRecord is the persisted domain result plus the original request inputs.
type B2BProposalRecord struct {
	OriginalBudget   float64         `json:"original_budget"`
	OriginalIndustry string          `json:"original_industry"`
	ProductMix       []ProductItem   `json:"product_mix"`
	BudgetBreakdown  BudgetBreakdown `json:"budget_breakdown"`
	ImpactSummary    string          `json:"impact_summary"`
	Timestamp        time.Time       `json:"timestamp"`
}
