package domain

// B2BProposalInput carries the caller-validated fields of a proposal request.
type B2BProposalInput struct {
	Budget   float64 `json:"budget"`
	Industry string  `json:"industry"`
}

// ProductItem is one accepted line of a proposal's product mix.
// Invariant: TotalCost == RoundMoney(Quantity * UnitCost) within MoneyTolerance.
type ProductItem struct {
	ProductName string  `json:"product_name"`
	Quantity    int64   `json:"quantity"`
	UnitCost    float64 `json:"unit_cost"`
	TotalCost   float64 `json:"total_cost"`
}

// BudgetBreakdown holds the trusted figures recomputed from the accepted
// product mix, not the provider-echoed ones.
type BudgetBreakdown struct {
	TotalAllocated  float64 `json:"total_allocated"`
	RemainingBudget float64 `json:"remaining_budget"`
}

type B2BProposalResult struct {
	ProductMix      []ProductItem   `json:"product_mix"`
	BudgetBreakdown BudgetBreakdown `json:"budget_breakdown"`
	ImpactSummary   string          `json:"impact_summary"`
}
