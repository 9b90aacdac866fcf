package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
)

// RecentQuotes handles GET /api/v1/quotes/recent?limit=.
func (h *VaultHandler) RecentQuotes(c *gin.Context) {
	var req dto.RecentQuotesRequest
	if !bindQuery(c, &req) {
		return
	}

	c.JSON(http.StatusOK, items(dto.NewQuoteRefResponses(h.vault.RecentQuotes(req.Limit))))
}

// Search handles GET /api/v1/search?q=, a case-insensitive substring match
// over collection titles and quote text.
func (h *VaultHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if !bindQuery(c, &req) {
		return
	}

	c.JSON(http.StatusOK, items(dto.NewQuoteRefResponses(h.vault.SearchQuotes(req.Query))))
}

// SearchByIntent handles GET /api/v1/search/intent?q=. Classifier failures
// yield an empty list, not an error.
func (h *VaultHandler) SearchByIntent(c *gin.Context) {
	var req dto.SearchRequest
	if !bindQuery(c, &req) {
		return
	}

	c.JSON(http.StatusOK, items(dto.NewQuoteRefResponses(h.vault.SearchByIntent(c.Request.Context(), req.Query))))
}

// SearchAll handles GET /api/v1/search/all?q= and runs both searches concurrently.
func (h *VaultHandler) SearchAll(c *gin.Context) {
	var req dto.SearchRequest
	if !bindQuery(c, &req) {
		return
	}

	results := h.vault.Search(c.Request.Context(), req.Query)

	c.JSON(http.StatusOK, dto.CombinedSearchResponse{
		Keyword: dto.NewQuoteRefResponses(results.Keyword),
		Intent:  dto.NewQuoteRefResponses(results.Intent),
	})
}
