package sheets

import (
	"context"

	"conti/internal/core"
)

// Ports for the ledger mirror the export worker writes to.
type (
	// LedgerWriter appends one transaction to the external ledger.
	LedgerWriter interface {
		Append(ctx context.Context, t core.Transaction) (rowRef string, err error)
	}

	// TaxonomyReader lists the category taxonomy kept alongside the ledger.
	TaxonomyReader interface {
		List(ctx context.Context) (categories []string, subcategories []string, err error)
	}
)
