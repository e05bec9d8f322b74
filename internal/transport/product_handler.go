package transport

import (
	"errors"
	"io"
	"net/http"

	"github.com/Saiganesh18787/catalog-management-system/internal/domain"
	"github.com/Saiganesh18787/catalog-management-system/internal/middleware"
	"github.com/Saiganesh18787/catalog-management-system/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateProductRequest is the payload for adding a product. Prices are
// pointers so a legitimate 0 passes the required check.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	BuyPrice    *float64 `json:"buyPrice" validate:"required,gte=0"`
	SellPrice   *float64 `json:"sellPrice" validate:"required,gte=0"`
	Image       string   `json:"image"`
}

// UpdateProductRequest is the partial-update payload; absent fields are left
// untouched.
type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	BuyPrice    *float64 `json:"buyPrice" validate:"omitempty,gte=0"`
	SellPrice   *float64 `json:"sellPrice" validate:"omitempty,gte=0"`
	Image       *string  `json:"image"`
}

// ImportResponse wraps the reconciliation report for the UI.
type ImportResponse struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// ProductHandler handles HTTP requests for catalog operations
type ProductHandler struct {
	catalog *service.CatalogService
	auth    *service.AuthService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalog *service.CatalogService, auth *service.AuthService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		auth:    auth,
		logger:  logger,
	}
}

// RegisterRoutes registers all catalog routes
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Delete("/", h.Clear)
		r.Post("/import", h.Import)
		r.Get("/export", h.Export)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List returns the whole catalog
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.catalog.List())
}

// Get returns a single product
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Create adds a new product
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product := h.catalog.Add(r.Context(), domain.ProductPatch{
		Name:        &req.Name,
		Category:    &req.Category,
		Description: &req.Description,
		BuyPrice:    req.BuyPrice,
		SellPrice:   req.SellPrice,
		Image:       &req.Image,
	})

	h.logger.Info("Product created", zap.String("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Update applies a partial update to a product
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalog.Update(r.Context(), chi.URLParam(r, "id"), domain.ProductPatch{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		BuyPrice:    req.BuyPrice,
		SellPrice:   req.SellPrice,
		Image:       req.Image,
	})
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete removes a product
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Import reconciles a JSON array of products into the catalog
func (h *ProductHandler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	report, err := h.catalog.Import(r.Context(), body)
	if err != nil {
		if errors.Is(err, service.ErrMalformedPayload) {
			middleware.RespondWithError(w, http.StatusBadRequest, "import payload must be a JSON array of products")
			return
		}
		h.logger.Error("Catalog import failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to import catalog")
		return
	}

	h.recordAccess(r, "Imported product catalog")
	middleware.RespondWithJSON(w, http.StatusOK, ImportResponse(report))
}

// Export streams the catalog as a pretty-printed JSON download
func (h *ProductHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.catalog.Export()
	if err != nil {
		h.logger.Error("Catalog export failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to export catalog")
		return
	}

	h.recordAccess(r, "Exported product catalog")

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="catalog.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Clear empties the catalog. Destructive, so it is gated on the admin role.
func (h *ProductHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if role, ok := middleware.GetUserRole(r.Context()); !ok || role != "admin" {
		middleware.RespondWithError(w, http.StatusForbidden, "admin role required")
		return
	}

	h.catalog.Clear(r.Context())
	h.recordAccess(r, "Cleared product catalog")
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) recordAccess(r *http.Request, details string) {
	if username, ok := middleware.GetUsername(r.Context()); ok {
		h.auth.Record(r.Context(), domain.AccessTypeAccess, username, details)
	}
}
