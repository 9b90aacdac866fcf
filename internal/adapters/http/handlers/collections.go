package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/domain"
)

// ListCategories handles GET /api/v1/categories.
// Pinned categories come first and Other is always last.
func (h *VaultHandler) ListCategories(c *gin.Context) {
	summaries := h.vault.CategorySummaries()

	out := make([]dto.CategoryResponse, len(summaries))
	for i, s := range summaries {
		out[i] = dto.NewCategoryResponse(s)
	}

	c.JSON(http.StatusOK, items(out))
}

// CreateCategory handles POST /api/v1/categories.
// An existing name (ignoring case) answers 200 with that category.
func (h *VaultHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, created, err := h.vault.AddCategory(c.Request.Context(), req.Name)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	respondCreated(c, created, dto.NewCategoryResponseFromDomain(category))
}

// DeleteCategory handles DELETE /api/v1/categories/:id.
// Its collections move to Other. Other itself cannot be deleted.
func (h *VaultHandler) DeleteCategory(c *gin.Context) {
	respondMutation(c, h.vault.DeleteCategory(c.Request.Context(), c.Param("id")))
}

// TogglePin handles POST /api/v1/categories/:id/pin.
func (h *VaultHandler) TogglePin(c *gin.Context) {
	respondMutation(c, h.vault.TogglePinCategory(c.Request.Context(), c.Param("id")))
}

// ListCategoryCollections handles GET /api/v1/categories/:id/collections.
func (h *VaultHandler) ListCategoryCollections(c *gin.Context) {
	c.JSON(http.StatusOK, items(dto.NewCollectionResponses(h.vault.CollectionsByCategory(c.Param("id")))))
}

// ListCollections handles GET /api/v1/collections with cursor pagination,
// newest first.
func (h *VaultHandler) ListCollections(c *gin.Context) {
	var page dto.PageRequest
	if !bindQuery(c, &page) {
		return
	}

	cursor, err := page.Position()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeBadRequest, err.Error()).WithTraceID(dto.GetTraceID(c)))
		return
	}

	c.JSON(http.StatusOK, dto.Paginate(h.vault.Collections(), cursor, page.Size()))
}

// CreateCollection handles POST /api/v1/collections.
// A body with sourceLink is an accepted extraction; its quotes carry the link.
// Replaying a known id answers 200 with the stored collection.
func (h *VaultHandler) CreateCollection(c *gin.Context) {
	var req dto.CreateCollectionRequest
	if !bindJSON(c, &req) {
		return
	}

	var (
		collection domain.Collection
		created    bool
		err        error
	)

	if req.SourceLink != "" {
		collection, created, err = h.vault.AcceptExtraction(c.Request.Context(), req.ID, domain.ExtractionResult{
			CategoryID: req.CategoryID,
			Title:      req.Title,
			Quotes:     req.Quotes,
		}, req.SourceLink)
	} else {
		collection, created, err = h.vault.AddCollection(c.Request.Context(), app.NewCollection{
			ID:         req.ID,
			Title:      req.Title,
			CategoryID: req.CategoryID,
			Quotes:     req.Quotes,
		})
	}

	if err != nil {
		dto.HandleError(c, err)
		return
	}

	respondCreated(c, created, dto.NewCollectionResponse(collection))
}

// GetCollection handles GET /api/v1/collections/:id.
func (h *VaultHandler) GetCollection(c *gin.Context) {
	collection, err := h.vault.Collection(c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCollectionResponse(collection))
}

// UpdateCollection handles PATCH /api/v1/collections/:id.
func (h *VaultHandler) UpdateCollection(c *gin.Context) {
	var req dto.UpdateCollectionRequest
	if !bindJSON(c, &req) {
		return
	}

	respondMutation(c, h.vault.UpdateCollection(c.Request.Context(), c.Param("id"), req.Patch()))
}

// DeleteCollection handles DELETE /api/v1/collections/:id.
func (h *VaultHandler) DeleteCollection(c *gin.Context) {
	respondMutation(c, h.vault.DeleteCollection(c.Request.Context(), c.Param("id")))
}

// AddQuote handles POST /api/v1/collections/:id/quotes.
// An unknown collection answers 204 with nothing stored.
func (h *VaultHandler) AddQuote(c *gin.Context) {
	var req dto.QuoteTextRequest
	if !bindJSON(c, &req) {
		return
	}

	quote, created, err := h.vault.AddQuote(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if !created {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuoteResponse(quote))
}

// UpdateQuote handles PATCH /api/v1/collections/:id/quotes/:quoteId.
func (h *VaultHandler) UpdateQuote(c *gin.Context) {
	var req dto.QuoteTextRequest
	if !bindJSON(c, &req) {
		return
	}

	respondMutation(c, h.vault.UpdateQuote(c.Request.Context(), c.Param("id"), c.Param("quoteId"), req.Text))
}

// DeleteQuote handles DELETE /api/v1/collections/:id/quotes/:quoteId.
// Removing the last quote removes the collection too.
func (h *VaultHandler) DeleteQuote(c *gin.Context) {
	respondMutation(c, h.vault.DeleteQuote(c.Request.Context(), c.Param("id"), c.Param("quoteId")))
}
