package dto

import (
	"time"

	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/domain"
)

// CreateCategoryRequest is the body of POST /categories.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,notempty,max=40"`
}

// CategoryResponse is a category with its resolved icon and collection count.
type CategoryResponse struct {
	ID              string `json:"id"`
	Label           string `json:"label"`
	Theme           string `json:"theme"`
	Icon            string `json:"icon"`
	IsPinned        bool   `json:"isPinned"`
	IsDefault       bool   `json:"isDefault"`
	CollectionCount int    `json:"collectionCount"`
}

// NewCategoryResponse converts a summary.
func NewCategoryResponse(s app.CategorySummary) CategoryResponse {
	return CategoryResponse{
		ID:              s.ID,
		Label:           s.Label,
		Theme:           s.Theme,
		Icon:            s.Icon,
		IsPinned:        s.IsPinned,
		IsDefault:       s.IsDefault,
		CollectionCount: s.CollectionCount,
	}
}

// NewCategoryResponseFromDomain converts a freshly created category, which
// has no collections yet.
func NewCategoryResponseFromDomain(c domain.Category) CategoryResponse {
	return NewCategoryResponse(app.CategorySummary{Category: c, Icon: c.ResolveIcon()})
}

// CreateCollectionRequest is the body of POST /collections. ID is an
// optional client-generated UUID that makes a retried submission safe.
type CreateCollectionRequest struct {
	ID         string   `json:"id"         validate:"omitempty,uuid"`
	Title      string   `json:"title"      validate:"required,notempty,max=200"`
	CategoryID string   `json:"categoryId" validate:"omitempty,max=40"`
	Quotes     []string `json:"quotes"     validate:"required,min=1,max=200,dive,notempty"`
	SourceLink string   `json:"sourceLink" validate:"omitempty,weblink,max=2048"`
}

// UpdateCollectionRequest is the body of PATCH /collections/:id.
type UpdateCollectionRequest struct {
	Title      *string `json:"title"      validate:"omitempty,notempty,max=200"`
	CategoryID *string `json:"categoryId" validate:"omitempty,notempty,max=40"`
}

// Patch converts the request to a vault patch.
func (r *UpdateCollectionRequest) Patch() app.CollectionPatch {
	return app.CollectionPatch{Title: r.Title, CategoryID: r.CategoryID}
}

// QuoteTextRequest is the body of quote create and update calls.
type QuoteTextRequest struct {
	Text string `json:"text" validate:"required,notempty,max=2000"`
}

// QuoteResponse is a stored quote.
type QuoteResponse struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	SourceLink string    `json:"sourceLink,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewQuoteResponse converts a quote.
func NewQuoteResponse(q domain.Quote) QuoteResponse {
	return QuoteResponse{ID: q.ID, Text: q.Text, SourceLink: q.SourceLink, CreatedAt: q.CreatedAt}
}

// CollectionResponse is a collection with its quotes, newest first.
type CollectionResponse struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	CategoryID string          `json:"categoryId"`
	Quotes     []QuoteResponse `json:"quotes"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// NewCollectionResponse converts a collection.
func NewCollectionResponse(c domain.Collection) CollectionResponse {
	quotes := make([]QuoteResponse, len(c.Quotes))
	for i, q := range c.Quotes {
		quotes[i] = NewQuoteResponse(q)
	}

	return CollectionResponse{
		ID:         c.ID,
		Title:      c.Title,
		CategoryID: c.CategoryID,
		Quotes:     quotes,
		CreatedAt:  c.CreatedAt,
	}
}

// NewCollectionResponses converts a list, keeping order.
func NewCollectionResponses(cs []domain.Collection) []CollectionResponse {
	out := make([]CollectionResponse, len(cs))
	for i, c := range cs {
		out[i] = NewCollectionResponse(c)
	}

	return out
}

// QuoteRefResponse is a quote with the collection that owns it.
type QuoteRefResponse struct {
	QuoteResponse

	CollectionID    string `json:"collectionId"`
	CollectionTitle string `json:"collectionTitle"`
	CategoryID      string `json:"categoryId"`
}

// NewQuoteRefResponses converts a list, keeping order. The result is never nil.
func NewQuoteRefResponses(refs []domain.QuoteRef) []QuoteRefResponse {
	out := make([]QuoteRefResponse, len(refs))
	for i, r := range refs {
		out[i] = QuoteRefResponse{
			QuoteResponse:   NewQuoteResponse(r.Quote),
			CollectionID:    r.CollectionID,
			CollectionTitle: r.CollectionTitle,
			CategoryID:      r.CategoryID,
		}
	}

	return out
}

// RecentQuotesRequest is the query of GET /quotes/recent.
type RecentQuotesRequest struct {
	Limit int `form:"limit" validate:"omitempty,gte=1,lte=100"`
}

// SearchRequest is the query of the search endpoints.
type SearchRequest struct {
	Query string `form:"q" validate:"max=500"`
}

// CombinedSearchResponse carries both rankings side by side.
type CombinedSearchResponse struct {
	Keyword []QuoteRefResponse `json:"keyword"`
	Intent  []QuoteRefResponse `json:"intent"`
}

// QuotaResponse summarizes free-tier usage. Remaining is -1 for premium accounts.
type QuotaResponse struct {
	Used      int  `json:"used"`
	Limit     int  `json:"limit"`
	Remaining int  `json:"remaining"`
	Premium   bool `json:"premium"`
}

// AccountResponse is the account with its quota and reward state.
type AccountResponse struct {
	Credits             int           `json:"credits"`
	Streak              int           `json:"streak"`
	IsPremium           bool          `json:"isPremium"`
	LastDailyClaim      *time.Time    `json:"lastDailyClaim"`
	CanClaimDailyReward bool          `json:"canClaimDailyReward"`
	Quota               QuotaResponse `json:"quota"`
}

// NewAccountResponse combines the account record with derived state.
func NewAccountResponse(a domain.UserAccount, q domain.QuotaStatus, canClaim bool) AccountResponse {
	return AccountResponse{
		Credits:             a.Credits,
		Streak:              a.Streak,
		IsPremium:           a.IsPremium,
		LastDailyClaim:      a.LastDailyClaim,
		CanClaimDailyReward: canClaim,
		Quota: QuotaResponse{
			Used:      q.Used,
			Limit:     q.Limit,
			Remaining: q.Remaining,
			Premium:   q.Premium,
		},
	}
}

// HistoryRequest is the query of GET /history.
type HistoryRequest struct {
	Platform string `form:"platform" validate:"omitempty,oneof=all tiktok instagram other"`
	Range    string `form:"range"    validate:"omitempty,oneof=all today week"`
}

// Filter converts the query. Values were validated by tag.
func (r *HistoryRequest) Filter() domain.HistoryFilter {
	platform, _ := domain.ParsePlatform(r.Platform)
	dateRange, _ := domain.ParseDateRange(r.Range)

	return domain.HistoryFilter{Platform: platform, Range: dateRange}
}

// LinkRequest is the body of POST /history and POST /imports/link.
type LinkRequest struct {
	URL string `json:"url" validate:"required,weblink,max=2048"`
}

// HistoryItemResponse is one submitted link.
type HistoryItemResponse struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Platform  string    `json:"platform"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewHistoryItemResponse converts a history item.
func NewHistoryItemResponse(h domain.LinkHistoryItem) HistoryItemResponse {
	return HistoryItemResponse{ID: h.ID, URL: h.URL, Platform: string(h.Platform), CreatedAt: h.CreatedAt}
}

// NewHistoryResponses converts a list, keeping order.
func NewHistoryResponses(items []domain.LinkHistoryItem) []HistoryItemResponse {
	out := make([]HistoryItemResponse, len(items))
	for i, h := range items {
		out[i] = NewHistoryItemResponse(h)
	}

	return out
}

// ExtractionResponse is a proposed collection awaiting acceptance.
type ExtractionResponse struct {
	CategoryID string   `json:"categoryId"`
	Title      string   `json:"title"`
	Quotes     []string `json:"quotes"`
}

// NewExtractionResponse converts an extraction result.
func NewExtractionResponse(r domain.ExtractionResult) ExtractionResponse {
	return ExtractionResponse{CategoryID: r.CategoryID, Title: r.Title, Quotes: r.Quotes}
}
