package store

import (
	"context"
	"encoding/json"
)

// CollectionUsage describes one collection's footprint: the byte length of
// its serialized JSON snapshot and the number of items it holds.
type CollectionUsage struct {
	Size  int `json:"size"`
	Count int `json:"count"`
}

// UsageReport is the per-collection storage breakdown plus the total size.
type UsageReport struct {
	Collections map[string]CollectionUsage `json:"collections"`
	Total       int                        `json:"total"`
}

// Usage computes the storage footprint of every collection. A missing or
// corrupt collection is reported as empty (size 0, count 0) rather than
// failing the whole report.
func (s *Store) Usage(ctx context.Context) UsageReport {
	report := UsageReport{Collections: make(map[string]CollectionUsage, len(Collections()))}

	for _, collection := range Collections() {
		usage := s.collectionUsage(ctx, collection)
		report.Collections[collection] = usage
		report.Total += usage.Size
	}
	return report
}

func (s *Store) collectionUsage(ctx context.Context, collection string) CollectionUsage {
	if err := ctx.Err(); err != nil {
		return CollectionUsage{}
	}

	data, err := s.raw(collection)
	if err != nil || data == nil {
		return CollectionUsage{}
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return CollectionUsage{}
	}

	count := 0
	switch items := v.(type) {
	case []interface{}:
		count = len(items)
	case map[string]interface{}:
		if collection == CollectionSettings {
			// The settings singleton counts as one item, not one per field.
			count = 1
		} else {
			count = len(items)
		}
	default:
		count = 1
	}

	return CollectionUsage{Size: len(data), Count: count}
}
