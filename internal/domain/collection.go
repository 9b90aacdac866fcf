package domain

import (
	"slices"
	"time"
)

// Quote is a single stored quotation. It belongs to exactly one Collection.
type Quote struct {
	ID         string
	Text       string
	SourceLink string
	CreatedAt  time.Time
}

// Collection is a named group of quotes sharing one category and one creation event.
// Quotes are ordered newest first.
type Collection struct {
	ID         string
	Title      string
	CategoryID string
	Quotes     []Quote
	CreatedAt  time.Time
}

// Clone returns a deep copy so callers cannot mutate store state.
func (c Collection) Clone() Collection {
	c.Quotes = slices.Clone(c.Quotes)

	return c
}

// QuoteIndex returns the position of the quote with id, or -1.
func (c Collection) QuoteIndex(id string) int {
	return slices.IndexFunc(c.Quotes, func(q Quote) bool { return q.ID == id })
}

// CountQuotes returns the total number of quotes across collections.
func CountQuotes(collections []Collection) int {
	total := 0
	for _, c := range collections {
		total += len(c.Quotes)
	}

	return total
}

// QuoteRef is a quote together with the collection that owns it.
type QuoteRef struct {
	Quote           Quote
	CollectionID    string
	CollectionTitle string
	CategoryID      string
}
