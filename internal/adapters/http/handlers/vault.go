package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
)

// VaultHandler serves the /api/v1 resources backed by the vault.
type VaultHandler struct {
	vault *app.Vault

	// maxImageBytes bounds a single uploaded screenshot.
	maxImageBytes int64
}

// DefaultMaxImageBytes bounds one uploaded screenshot.
const DefaultMaxImageBytes = 8 << 20

// NewVaultHandler creates a handler over vault.
func NewVaultHandler(vault *app.Vault) *VaultHandler {
	return &VaultHandler{vault: vault, maxImageBytes: DefaultMaxImageBytes}
}

// RegisterRoutes registers every vault route on rg.
func (h *VaultHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	categories.GET("", h.ListCategories)
	categories.POST("", h.CreateCategory)
	categories.DELETE("/:id", h.DeleteCategory)
	categories.POST("/:id/pin", h.TogglePin)
	categories.GET("/:id/collections", h.ListCategoryCollections)

	collections := rg.Group("/collections")
	collections.GET("", h.ListCollections)
	collections.POST("", h.CreateCollection)
	collections.GET("/:id", h.GetCollection)
	collections.PATCH("/:id", h.UpdateCollection)
	collections.DELETE("/:id", h.DeleteCollection)
	collections.POST("/:id/quotes", h.AddQuote)
	collections.PATCH("/:id/quotes/:quoteId", h.UpdateQuote)
	collections.DELETE("/:id/quotes/:quoteId", h.DeleteQuote)

	rg.GET("/quotes/recent", h.RecentQuotes)

	search := rg.Group("/search")
	search.GET("", h.Search)
	search.GET("/intent", h.SearchByIntent)
	search.GET("/all", h.SearchAll)

	account := rg.Group("/account")
	account.GET("", h.GetAccount)
	account.POST("/daily-reward", h.ClaimDailyReward)
	account.POST("/upgrade", h.Upgrade)

	history := rg.Group("/history")
	history.GET("", h.ListHistory)
	history.POST("", h.AddLink)
	history.DELETE("/:id", h.DeleteLink)

	importsGroup := rg.Group("/imports")
	importsGroup.POST("/images", h.ExtractFromImages)
	importsGroup.POST("/link", h.ImportLink)
}

// bindJSON decodes and validates the body. On failure it writes the
// response and returns false.
func bindJSON(c *gin.Context, v any) bool {
	return respondBindError(c, dto.BindAndValidate(c, v))
}

func bindQuery(c *gin.Context, v any) bool {
	return respondBindError(c, dto.BindQueryAndValidate(c, v))
}

func respondBindError(c *gin.Context, err error) bool {
	if err == nil {
		return true
	}

	var resp *dto.ErrorResponse

	switch {
	case dto.IsValidationError(err):
		resp = dto.NewErrorResponseWithDetails(dto.ErrorCodeValidation, "request validation failed", dto.ValidationErrors(err))
	case errors.Is(err, dto.ErrBinding):
		resp = dto.NewErrorResponse(dto.ErrorCodeBadRequest, "malformed request")
	default:
		resp = dto.NewErrorResponse(dto.ErrorCodeBadRequest, err.Error())
	}

	logging.FromContext(c.Request.Context()).DebugContext(c.Request.Context(), "request rejected", "error", err.Error())
	c.JSON(http.StatusBadRequest, resp.WithTraceID(dto.GetTraceID(c)))

	return false
}

// respondMutation answers a mutation that returns no body. Stale ids are
// no-ops in the vault, so success is always 204.
func respondMutation(c *gin.Context, err error) {
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// respondCreated answers 201 for a new entity and 200 when the call was
// absorbed by an existing one.
func respondCreated(c *gin.Context, created bool, body any) {
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	c.JSON(status, body)
}

// itemsResponse wraps list results so the envelope can grow.
type itemsResponse[T any] struct {
	Items []T `json:"items"`
}

func items[T any](list []T) itemsResponse[T] {
	if list == nil {
		list = []T{}
	}

	return itemsResponse[T]{Items: list}
}

// claimResponse is returned by a successful daily reward claim.
type claimResponse struct {
	Credits   int       `json:"credits"`
	Streak    int       `json:"streak"`
	ClaimedAt time.Time `json:"claimedAt"`
}
