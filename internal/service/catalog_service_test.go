package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Saiganesh18787/catalog-management-system/internal/domain"
	"github.com/Saiganesh18787/catalog-management-system/internal/store"

	"go.uber.org/zap"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.db")
	st, err := store.Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func newTestCatalogService(t *testing.T) (*CatalogService, *store.Store) {
	t.Helper()

	st := newTestStore(t)
	return NewCatalogService(context.Background(), st, zap.NewNop()), st
}

func TestCatalogService_AddAssignsIdentityAndMargin(t *testing.T) {
	svc, _ := newTestCatalogService(t)
	ctx := context.Background()

	product := svc.Add(ctx, domain.ProductPatch{
		Name:      strPtr("Pen"),
		BuyPrice:  floatPtr(10),
		SellPrice: floatPtr(15),
	})

	if product.ID == "" {
		t.Error("expected id assigned")
	}
	if product.CreatedAt.IsZero() {
		t.Error("expected createdAt stamped")
	}
	if product.ProfitMargin != 50 {
		t.Errorf("expected margin 50, got %v", product.ProfitMargin)
	}
	if len(svc.List()) != 1 {
		t.Errorf("expected 1 product in catalog")
	}
}

func TestCatalogService_AddPersistsSnapshot(t *testing.T) {
	svc, st := newTestCatalogService(t)
	ctx := context.Background()

	svc.Add(ctx, domain.ProductPatch{Name: strPtr("Pen"), BuyPrice: floatPtr(10), SellPrice: floatPtr(15)})

	// A fresh service loading from the same store must see the product.
	reloaded := NewCatalogService(ctx, st, zap.NewNop())
	if len(reloaded.List()) != 1 {
		t.Error("expected product visible after reload")
	}
}

func TestCatalogService_UpdateRecomputesMargin(t *testing.T) {
	svc, _ := newTestCatalogService(t)
	ctx := context.Background()

	product := svc.Add(ctx, domain.ProductPatch{Name: strPtr("Pen"), BuyPrice: floatPtr(10), SellPrice: floatPtr(15)})

	updated, err := svc.Update(ctx, product.ID, domain.ProductPatch{SellPrice: floatPtr(20)})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.ProfitMargin != 100 {
		t.Errorf("expected margin recomputed to 100, got %v", updated.ProfitMargin)
	}
	if updated.UpdatedAt == nil {
		t.Error("expected updatedAt stamped")
	}
	if updated.Name != "Pen" {
		t.Errorf("expected untouched fields preserved, got %q", updated.Name)
	}
}

func TestCatalogService_UpdateWithoutPriceKeepsMargin(t *testing.T) {
	svc, _ := newTestCatalogService(t)
	ctx := context.Background()

	product := svc.Add(ctx, domain.ProductPatch{Name: strPtr("Pen"), BuyPrice: floatPtr(10), SellPrice: floatPtr(15)})

	updated, err := svc.Update(ctx, product.ID, domain.ProductPatch{Description: strPtr("Blue ink")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.ProfitMargin != 50 {
		t.Errorf("expected margin unchanged, got %v", updated.ProfitMargin)
	}
}

func TestCatalogService_UpdateNotFound(t *testing.T) {
	svc, _ := newTestCatalogService(t)

	_, err := svc.Update(context.Background(), "missing", domain.ProductPatch{})
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCatalogService_Delete(t *testing.T) {
	svc, _ := newTestCatalogService(t)
	ctx := context.Background()

	product := svc.Add(ctx, domain.ProductPatch{Name: strPtr("Pen"), BuyPrice: floatPtr(10), SellPrice: floatPtr(15)})

	if err := svc.Delete(ctx, product.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(svc.List()) != 0 {
		t.Error("expected empty catalog after delete")
	}
	if err := svc.Delete(ctx, product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCatalogService_ImportMalformedPayloadLeavesCatalogUntouched(t *testing.T) {
	svc, _ := newTestCatalogService(t)
	ctx := context.Background()

	svc.Add(ctx, domain.ProductPatch{Name: strPtr("Pen"), BuyPrice: floatPtr(10), SellPrice: floatPtr(15)})

	for _, payload := range []string{
		`{"name":"not an array"}`,
		`"plain string"`,
		`[{"buyPrice":"ten"}]`,
		`not json at all`,
		`null`,
	} {
		_, err := svc.Import(ctx, []byte(payload))
		if !errors.Is(err, ErrMalformedPayload) {
			t.Errorf("payload %q: expected ErrMalformedPayload, got %v", payload, err)
		}
	}

	if len(svc.List()) != 1 {
		t.Error("expected catalog unchanged after rejected imports")
	}
}

func TestCatalogService_ImportReportsCounts(t *testing.T) {
	svc, _ := newTestCatalogService(t)
	ctx := context.Background()

	existing := svc.Add(ctx, domain.ProductPatch{Name: strPtr("Pen"), BuyPrice: floatPtr(10), SellPrice: floatPtr(15)})

	payload := `[
		{"id":"` + existing.ID + `","name":"Pen","buyPrice":10,"sellPrice":20},
		{"name":"Notebook","buyPrice":20,"sellPrice":30},
		{"name":"pen","buyPrice":1,"sellPrice":2}
	]`

	report, err := svc.Import(ctx, []byte(payload))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if report.Added != 1 || report.Updated != 1 || report.Skipped != 1 {
		t.Errorf("expected {1,1,1}, got %+v", report)
	}

	updated, err := svc.Get(existing.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if updated.SellPrice != 20 || updated.ProfitMargin != 100 {
		t.Errorf("expected updated product with margin 100, got %+v", updated)
	}
}

func TestCatalogService_ExportImportRoundTrip(t *testing.T) {
	svc, _ := newTestCatalogService(t)
	ctx := context.Background()

	first := svc.Add(ctx, domain.ProductPatch{Name: strPtr("Pen"), BuyPrice: floatPtr(10), SellPrice: floatPtr(15)})
	second := svc.Add(ctx, domain.ProductPatch{Name: strPtr("Notebook"), BuyPrice: floatPtr(20), SellPrice: floatPtr(30)})

	exported, err := svc.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	fresh, _ := newTestCatalogService(t)
	report, err := fresh.Import(ctx, exported)
	if err != nil {
		t.Fatalf("Import of exported catalog failed: %v", err)
	}
	if report.Added != 2 || report.Updated != 0 || report.Skipped != 0 {
		t.Errorf("expected everything added, got %+v", report)
	}

	restored := fresh.List()
	if len(restored) != 2 {
		t.Fatalf("expected 2 products, got %d", len(restored))
	}
	if restored[0].ID != first.ID || restored[0].BuyPrice != first.BuyPrice || restored[0].SellPrice != first.SellPrice {
		t.Errorf("expected first product reproduced, got %+v", restored[0])
	}
	if restored[1].ID != second.ID || restored[1].SellPrice != second.SellPrice {
		t.Errorf("expected second product reproduced, got %+v", restored[1])
	}
}

func TestCatalogService_ClearPersists(t *testing.T) {
	svc, st := newTestCatalogService(t)
	ctx := context.Background()

	svc.Add(ctx, domain.ProductPatch{Name: strPtr("Pen"), BuyPrice: floatPtr(10), SellPrice: floatPtr(15)})
	svc.Clear(ctx)

	if len(svc.List()) != 0 {
		t.Error("expected empty catalog after clear")
	}
	if len(st.Products(ctx)) != 0 {
		t.Error("expected clear persisted to the store")
	}
}
