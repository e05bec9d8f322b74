package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Saiganesh18787/catalog-management-system/internal/catalog"
	"github.com/Saiganesh18787/catalog-management-system/internal/domain"
	"github.com/Saiganesh18787/catalog-management-system/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrProductNotFound = errors.New("product not found")

	// ErrMalformedPayload marks an import body that is not a JSON array of
	// product records. The catalog is left unmodified when it is returned.
	ErrMalformedPayload = errors.New("import payload must be a JSON array of products")
)

// CatalogService owns the in-memory product catalog and is its only writer.
// Every operation takes the mutex for its whole read-modify-write span, so
// two imports can never interleave reads of a stale snapshot. The in-memory
// state is applied first and the durable write requested after; a failed
// write is logged and the in-memory state kept (last write wins on the next
// save).
type CatalogService struct {
	store  *store.Store
	logger *zap.Logger

	mu       sync.Mutex
	products []domain.Product
}

// NewCatalogService loads the catalog snapshot and returns the service.
func NewCatalogService(ctx context.Context, st *store.Store, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		store:    st,
		logger:   logger,
		products: st.Products(ctx),
	}
}

// List returns a copy of the catalog in insertion order.
func (s *CatalogService) List() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Get returns the product with the given id.
func (s *CatalogService) Get(id string) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, ErrProductNotFound
}

// Add creates a product from the given fields. The id and createdAt are
// assigned here; the margin is computed from the prices.
func (s *CatalogService) Add(ctx context.Context, patch domain.ProductPatch) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := domain.Product{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
	product.Apply(patch)
	product.ProfitMargin = catalog.Margin(product.SellPrice, product.BuyPrice)

	s.products = append(s.products, product)
	s.persist(ctx)
	return product
}

// Update merges the patch into an existing product, recomputes the margin
// when either price changed and stamps updatedAt.
func (s *CatalogService) Update(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.ID != id {
			continue
		}
		p.Apply(patch)
		if patch.HasPriceChange() {
			p.ProfitMargin = catalog.Margin(p.SellPrice, p.BuyPrice)
		}
		updatedAt := time.Now().UTC()
		p.UpdatedAt = &updatedAt
		s.products[i] = p
		s.persist(ctx)
		return p, nil
	}
	return domain.Product{}, ErrProductNotFound
}

// Delete removes a product from the catalog.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			s.persist(ctx)
			return nil
		}
	}
	return ErrProductNotFound
}

// Import reconciles a JSON array of product records into the catalog and
// writes the merged catalog back as one snapshot. A body that is not an
// array of records returns ErrMalformedPayload and leaves the catalog
// untouched.
func (s *CatalogService) Import(ctx context.Context, raw []byte) (catalog.ImportReport, error) {
	var incoming []domain.ProductPatch
	if err := json.Unmarshal(raw, &incoming); err != nil {
		return catalog.ImportReport{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	// A JSON null unmarshals into a nil slice with no error; it is not an
	// array and must not pass as an empty import.
	if incoming == nil {
		return catalog.ImportReport{}, fmt.Errorf("%w: payload is null", ErrMalformedPayload)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged, report := catalog.Reconcile(s.products, incoming, time.Now().UTC())
	s.products = merged
	s.persist(ctx)

	s.logger.Info("Catalog import reconciled",
		zap.Int("added", report.Added),
		zap.Int("updated", report.Updated),
		zap.Int("skipped", report.Skipped),
	)
	return report, nil
}

// Export serializes the catalog as a pretty-printed JSON array, the exact
// payload the UI offers for download and Import accepts back.
func (s *CatalogService) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.products, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize catalog: %w", err)
	}
	return data, nil
}

// Clear resets the catalog to empty.
func (s *CatalogService) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = []domain.Product{}
	s.persist(ctx)
}

// persist writes the current catalog snapshot. Callers hold the mutex. A
// failed write is logged, not surfaced; the in-memory state stays ahead of
// storage until the next successful save.
func (s *CatalogService) persist(ctx context.Context) {
	if err := s.store.SaveProducts(ctx, s.products); err != nil {
		s.logger.Error("Failed to persist product catalog", zap.Error(err))
	}
}
