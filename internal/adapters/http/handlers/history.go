package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
)

// ListHistory handles GET /api/v1/history?platform=&range=, newest first.
func (h *VaultHandler) ListHistory(c *gin.Context) {
	var req dto.HistoryRequest
	if !bindQuery(c, &req) {
		return
	}

	c.JSON(http.StatusOK, items(dto.NewHistoryResponses(h.vault.History(req.Filter()))))
}

// AddLink handles POST /api/v1/history.
func (h *VaultHandler) AddLink(c *gin.Context) {
	var req dto.LinkRequest
	if !bindJSON(c, &req) {
		return
	}

	item, created, err := h.vault.AddLink(c.Request.Context(), req.URL)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	respondCreated(c, created, dto.NewHistoryItemResponse(item))
}

// DeleteLink handles DELETE /api/v1/history/:id.
func (h *VaultHandler) DeleteLink(c *gin.Context) {
	respondMutation(c, h.vault.DeleteLink(c.Request.Context(), c.Param("id")))
}
