package ports

import (
	"context"

	"github.com/greenloop/ecoai-commerce/internal/core/domain"
)

// AutoCategoryGenerator is the inbound contract for catalog metadata generation.
type AutoCategoryGenerator interface {
	Generate(ctx context.Context, in domain.AutoCategoryInput) (*domain.AutoCategoryResult, error)
}

// B2BProposalGenerator is the inbound contract for budget-constrained proposals.
type B2BProposalGenerator interface {
	Generate(ctx context.Context, in domain.B2BProposalInput) (*domain.B2BProposalResult, error)
}
