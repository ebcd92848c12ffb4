package categories

import (
	"cmp"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/mytheresa/storefront/app/api"
	"github.com/mytheresa/storefront/models"
	"github.com/mytheresa/storefront/session"
)

type CategoryResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// allCategory is the filter sentinel; it has no stored row.
var allCategory = CategoryResponse{Code: "all", Name: session.CategoryAll.String()}

type CategoryProvider interface {
	GetAllCategories() ([]models.Category, error)
	CreateCategory(category *models.Category) error
}

type CategoryHandler struct {
	repo CategoryProvider
}

func NewCategoryHandler(r CategoryProvider) *CategoryHandler {
	return &CategoryHandler{repo: r}
}

// HandleGetAll lists every department the engine accepts, All first. Stored
// rows supply the code and navigation position; departments without a row
// fall back to the default code and their place in the enumeration.
func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	stored, err := h.repo.GetAllCategories()
	if err != nil {
		api.ErrorResponse(w, http.StatusInternalServerError, "failed to fetch categories")
		return
	}

	rows := make(map[string]models.Category, len(stored))
	for _, c := range models.DefaultCategories() {
		rows[c.Name] = c
	}
	for _, c := range stored {
		rows[c.Name] = c
	}

	departments := session.Categories()[1:]
	slices.SortStableFunc(departments, func(a, b session.Category) int {
		return cmp.Compare(rows[a.String()].Position, rows[b.String()].Position)
	})

	response := make([]CategoryResponse, 0, len(departments)+1)
	response = append(response, allCategory)
	for _, c := range departments {
		response = append(response, CategoryResponse{
			Code: rows[c.String()].Code,
			Name: c.String(),
		})
	}

	api.OKResponse(w, response)
}

// HandleCreate stores a row for one of the known departments. The set of
// departments itself is fixed, so unknown names are rejected.
func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Code     string `json:"code"`
		Name     string `json:"name"`
		Position int    `json:"position"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	input.Code = strings.TrimSpace(input.Code)
	if input.Code == "" || input.Name == "" {
		api.ErrorResponse(w, http.StatusBadRequest, "Missing code or name")
		return
	}

	name, err := session.ParseCategory(input.Name)
	if err != nil || name.IsAll() {
		api.ErrorResponse(w, http.StatusBadRequest, "Unknown category name")
		return
	}

	category := &models.Category{
		Code:     input.Code,
		Name:     name.String(),
		Position: input.Position,
	}

	if err := h.repo.CreateCategory(category); err != nil {
		if errors.Is(err, models.ErrCategoryExists) {
			api.ErrorResponse(w, http.StatusConflict, "Category already exists")
			return
		}
		api.ErrorResponse(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	api.JSONResponse(w, http.StatusCreated, map[string]string{
		"message": "Category created successfully",
	})
}
