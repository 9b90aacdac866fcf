package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
)

// GetAccount handles GET /api/v1/account.
func (h *VaultHandler) GetAccount(c *gin.Context) {
	c.JSON(http.StatusOK, h.accountResponse())
}

// ClaimDailyReward handles POST /api/v1/account/daily-reward.
// A second claim on the same calendar day answers 409 ALREADY_CLAIMED.
func (h *VaultHandler) ClaimDailyReward(c *gin.Context) {
	account, err := h.vault.ClaimDailyReward(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	resp := claimResponse{Credits: account.Credits, Streak: account.Streak}
	if account.LastDailyClaim != nil {
		resp.ClaimedAt = *account.LastDailyClaim
	}

	c.JSON(http.StatusOK, resp)
}

// Upgrade handles POST /api/v1/account/upgrade. Upgrading twice is harmless.
func (h *VaultHandler) Upgrade(c *gin.Context) {
	if err := h.vault.UpgradeToPro(c.Request.Context()); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.accountResponse())
}

func (h *VaultHandler) accountResponse() dto.AccountResponse {
	return dto.NewAccountResponse(h.vault.Account(), h.vault.QuotaStatus(), h.vault.CanClaimDailyReward())
}
