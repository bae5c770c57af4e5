package httphandler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
)

// A CatalogBrowser serves catalog reads for the HTTP surface.
type CatalogBrowser interface {
	Browse(ctx context.Context, q service.BrowseQuery) (service.BrowseResult, error)
	ProductBySlug(ctx context.Context, slug string) (domain.Product, bool, error)
	Categories(ctx context.Context) ([]domain.Category, error)
}

type CatalogHandler struct {
	catalog CatalogBrowser
}

func RegisterCatalog(mux *http.ServeMux, catalog CatalogBrowser) {
	h := CatalogHandler{catalog}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/{slug}", h.GetProductBySlug)
	mux.HandleFunc("GET /v1/categories", h.GetCategories)
}

func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProducts"
	log := slog.With("op", op)

	q := h.parseBrowseQuery(r)

	result, err := h.catalog.Browse(r.Context(), q)
	if err != nil {
		http.Error(w, "failed to load products", http.StatusServiceUnavailable)
		log.Error("failed to browse catalog", "err", err)
		return
	}

	page := ProductsPage{
		Products:   make([]Product, 0, len(result.Products)),
		Page:       q.Page,
		TotalPages: result.TotalPages,
	}
	for _, p := range result.Products {
		page.Products = append(page.Products, toProductDTO(p))
	}

	writeJSON(w, http.StatusOK, page)
}

func (h CatalogHandler) GetProductBySlug(
	w http.ResponseWriter, r *http.Request,
) {
	const op = "CatalogHandler.GetProductBySlug"
	log := slog.With("op", op)

	slug := r.PathValue("slug")

	p, ok, err := h.catalog.ProductBySlug(r.Context(), slug)
	if err != nil {
		http.Error(w, "failed to load product", http.StatusServiceUnavailable)
		log.Error("failed to load product", "slug", slug, "err", err)
		return
	}
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, toProductDTO(p))
}

func (h CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetCategories"
	log := slog.With("op", op)

	cs, err := h.catalog.Categories(r.Context())
	if err != nil {
		http.Error(w, "failed to load categories", http.StatusServiceUnavailable)
		log.Error("failed to load categories", "err", err)
		return
	}

	dtos := make([]Category, 0, len(cs))
	for _, c := range cs {
		dtos = append(dtos, Category{
			CategoryID:  c.CategoryID,
			Name:        c.Name,
			Slug:        c.Slug,
			Description: c.Description,
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// parseBrowseQuery is permissive: malformed numeric values act as
// unset, unknown sort values act as relevance.
func (h CatalogHandler) parseBrowseQuery(r *http.Request) service.BrowseQuery {
	params := r.URL.Query()

	q := service.BrowseQuery{
		Category: params.Get("category"),
		Search:   params.Get("search"),
		Sort:     domain.SortOption(params.Get("sort")),
		Page:     1,
		PageSize: service.DefaultPageSize,
	}

	if v, err := strconv.ParseFloat(params.Get("min_price"), 64); err == nil {
		q.Filter.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(params.Get("max_price"), 64); err == nil {
		q.Filter.MaxPrice = &v
	}
	if v, err := strconv.ParseFloat(params.Get("min_rating"), 64); err == nil {
		q.Filter.MinRating = &v
	}
	if v, err := strconv.ParseBool(params.Get("in_stock")); err == nil {
		q.Filter.InStock = v
	}
	if v, err := strconv.Atoi(params.Get("page")); err == nil && v > 0 {
		q.Page = v
	}
	if v, err := strconv.Atoi(params.Get("page_size")); err == nil && v > 0 {
		q.PageSize = v
	}
	return q
}
