package catalog

import (
	"net/http"
	"strconv"

	"github.com/mytheresa/storefront/app/api"
	"github.com/mytheresa/storefront/session"
)

type Response struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

type Product struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Brand           string  `json:"brand"`
	Price           float64 `json:"price"`
	OriginalPrice   float64 `json:"original_price"`
	DiscountPercent int     `json:"discount_percent"`
	Rating          float64 `json:"rating"`
	RatingCount     int     `json:"rating_count"`
	Image           string  `json:"image,omitempty"`
	Category        string  `json:"category"`
}

// NewProduct maps an engine product onto its JSON form.
func NewProduct(p session.Product) Product {
	return Product{
		ID:              int64(p.ID),
		Name:            p.Name,
		Brand:           p.Brand,
		Price:           p.Price.InexactFloat64(),
		OriginalPrice:   p.OriginalPrice.InexactFloat64(),
		DiscountPercent: p.Discount(),
		Rating:          p.Rating,
		RatingCount:     p.RatingCount,
		Image:           p.Image,
		Category:        p.Category.String(),
	}
}

type ProductProvider interface {
	FilterByCategory(category session.Category) []session.Product
	Lookup(id session.ProductID) (session.Product, bool)
}

type CatalogHandler struct {
	products ProductProvider
}

func NewCatalogHandler(p ProductProvider) *CatalogHandler {
	return &CatalogHandler{
		products: p,
	}
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	// Parse pagination query params
	offset := 0
	limit := 10

	if oStr := r.URL.Query().Get("offset"); oStr != "" {
		if o, err := strconv.Atoi(oStr); err == nil && o >= 0 {
			offset = o
		}
	}

	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			if l < 1 {
				limit = 1
			} else if l > 100 {
				limit = 100
			} else {
				limit = l
			}
		}
	}

	category := session.CategoryAll
	if cStr := r.URL.Query().Get("category"); cStr != "" {
		c, err := session.ParseCategory(cStr)
		if err != nil {
			api.ErrorResponse(w, http.StatusBadRequest, "Invalid category")
			return
		}
		category = c
	}

	res := h.products.FilterByCategory(category)
	total := len(res)

	start := min(offset, total)
	end := start + min(limit, total-start)

	products := make([]Product, 0, end-start)
	for _, p := range res[start:end] {
		products = append(products, NewProduct(p))
	}

	api.OKResponse(w, Response{
		Total:    total,
		Products: products,
	})
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, ok := h.products.Lookup(session.ProductID(id))
	if !ok {
		api.ErrorResponse(w, http.StatusNotFound, "Product not found")
		return
	}

	api.OKResponse(w, NewProduct(product))
}
