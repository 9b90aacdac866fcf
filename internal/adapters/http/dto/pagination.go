package dto

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

// Page size bounds for GET /collections.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ErrInvalidCursor is returned for a cursor this server did not issue.
var ErrInvalidCursor = errors.New("invalid cursor")

// PageRequest carries the query parameters of a paged listing.
type PageRequest struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" validate:"omitempty,gte=1,lte=100"`
}

// Size returns the requested page size, or DefaultPageSize when none was
// given. Limits above MaxPageSize never get here: validation rejects them.
func (p *PageRequest) Size() int {
	if p.Limit <= 0 {
		return DefaultPageSize
	}

	return p.Limit
}

// Position decodes the cursor. A request without one starts at the newest
// collection and yields nil.
func (p *PageRequest) Position() (*Cursor, error) {
	if p.Cursor == "" {
		return nil, nil
	}

	return DecodeCursor(p.Cursor)
}

// Cursor marks the last collection a client has seen. Collections are listed
// newest first, so the timestamp lets a page resume even after that
// collection is deleted.
type Cursor struct {
	CreatedAt time.Time `json:"t"`
	ID        string    `json:"id"`
}

// Encode renders the cursor as an opaque URL-safe token.
func (c Cursor) Encode() string {
	raw, err := json.Marshal(c)
	if err != nil {
		return ""
	}

	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor parses a token produced by Cursor.Encode.
func DecodeCursor(token string) (*Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrInvalidCursor
	}

	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil || c.ID == "" || c.CreatedAt.IsZero() {
		return nil, ErrInvalidCursor
	}

	return &c, nil
}

// CollectionPage is one page of GET /collections.
type CollectionPage struct {
	Items      []CollectionResponse `json:"items"`
	NextCursor string               `json:"nextCursor,omitempty"`
	HasMore    bool                 `json:"hasMore"`
}

// PageAfter returns the newest-first collections that follow the cursor. If
// the cursor's collection is gone, listing resumes at the first collection
// created before it.
func PageAfter(all []domain.Collection, cursor *Cursor) []domain.Collection {
	if cursor == nil {
		return all
	}

	for i, c := range all {
		if c.ID == cursor.ID {
			return all[i+1:]
		}
	}

	for i, c := range all {
		if c.CreatedAt.Before(cursor.CreatedAt) {
			return all[i:]
		}
	}

	return nil
}

// Paginate cuts the page of size that follows cursor out of all.
func Paginate(all []domain.Collection, cursor *Cursor, size int) CollectionPage {
	rest := PageAfter(all, cursor)

	page := CollectionPage{HasMore: len(rest) > size}
	if page.HasMore {
		rest = rest[:size]
	}

	page.Items = NewCollectionResponses(rest)

	if page.HasMore {
		last := rest[len(rest)-1]
		page.NextCursor = Cursor{CreatedAt: last.CreatedAt, ID: last.ID}.Encode()
	}

	return page
}
