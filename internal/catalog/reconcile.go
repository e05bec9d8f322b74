package catalog

import (
	"strings"
	"time"

	"github.com/Saiganesh18787/catalog-management-system/internal/domain"

	"github.com/google/uuid"
)

// ImportReport counts the outcome of a catalog import.
type ImportReport struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// Reconcile merges a batch of incoming product records into an existing
// catalog, one decision per record, in order:
//
//   - A record whose id matches an existing product updates that product in
//     place: incoming fields win, the original createdAt is kept, updatedAt
//     is stamped and the margin recomputed. An id match always takes
//     precedence over a name collision.
//   - Otherwise a record whose name matches (case-insensitively) any product
//     already in the catalog, or one added earlier in this batch, is skipped
//     entirely. This guards against duplicate-name pollution from repeated
//     imports that regenerate ids. Records without a name never participate
//     in the name check.
//   - Otherwise the record is appended: a fresh id is assigned only when the
//     record carries none, createdAt is stamped when absent, and the margin
//     is computed from its prices.
//
// The existing slice is not mutated; the merged catalog preserves the
// existing insertion order with additions appended.
func Reconcile(existing []domain.Product, incoming []domain.ProductPatch, now time.Time) ([]domain.Product, ImportReport) {
	var report ImportReport
	if len(incoming) == 0 {
		return existing, report
	}

	merged := make([]domain.Product, len(existing))
	copy(merged, existing)

	index := make(map[string]int, len(merged))
	seenNames := make(map[string]struct{}, len(merged))
	for i, p := range merged {
		index[p.ID] = i
		if p.Name != "" {
			seenNames[strings.ToLower(p.Name)] = struct{}{}
		}
	}

	for _, patch := range incoming {
		if patch.ID != "" {
			if i, ok := index[patch.ID]; ok {
				p := merged[i]
				p.Apply(patch)
				p.ProfitMargin = Margin(p.SellPrice, p.BuyPrice)
				updatedAt := now
				p.UpdatedAt = &updatedAt
				merged[i] = p
				report.Updated++
				continue
			}
		}

		var name string
		if patch.Name != nil {
			name = strings.ToLower(*patch.Name)
		}
		if name != "" {
			if _, dup := seenNames[name]; dup {
				report.Skipped++
				continue
			}
		}

		p := domain.Product{ID: patch.ID, CreatedAt: now}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if patch.CreatedAt != nil {
			p.CreatedAt = *patch.CreatedAt
		}
		p.Apply(patch)
		p.ProfitMargin = Margin(p.SellPrice, p.BuyPrice)
		if name != "" {
			seenNames[name] = struct{}{}
		}
		index[p.ID] = len(merged)
		merged = append(merged, p)
		report.Added++
	}

	return merged, report
}
