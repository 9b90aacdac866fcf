package app

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

// NewCollection describes a collection to create. ID is optional; when set
// and a collection with that id exists, creation is skipped and the
// existing collection is returned, which makes retried submissions safe.
type NewCollection struct {
	ID         string
	Title      string
	CategoryID string
	Quotes     []string
	SourceLink string
}

// CollectionPatch holds the header fields to change. Nil fields are kept.
type CollectionPatch struct {
	Title      *string
	CategoryID *string
}

func collectionIndex(collections []domain.Collection, id string) int {
	return slices.IndexFunc(collections, func(c domain.Collection) bool { return c.ID == id })
}

func trimmedNonEmpty(texts []string) []string {
	out := make([]string, 0, len(texts))

	for _, t := range texts {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}

	return out
}

// Collections returns every collection, newest first.
func (v *Vault) Collections() []domain.Collection {
	return v.filterCollections(func(domain.Collection) bool { return true })
}

// CollectionsByCategory returns the collections filed under categoryID.
func (v *Vault) CollectionsByCategory(categoryID string) []domain.Collection {
	return v.filterCollections(func(c domain.Collection) bool { return domain.SameID(c.CategoryID, categoryID) })
}

func (v *Vault) filterCollections(keep func(domain.Collection) bool) []domain.Collection {
	out := []domain.Collection{}

	v.read(func(s *state) {
		for _, c := range s.collections {
			if keep(c) {
				out = append(out, c.Clone())
			}
		}
	})

	return out
}

// Collection returns one collection.
func (v *Vault) Collection(id string) (domain.Collection, error) {
	var (
		found domain.Collection
		ok    bool
	)

	v.read(func(s *state) {
		if i := collectionIndex(s.collections, id); i >= 0 {
			found, ok = s.collections[i].Clone(), true
		}
	})

	if !ok {
		return domain.Collection{}, domain.NewNotFoundError("collection", id)
	}

	return found, nil
}

// AddCollection creates a collection at the front of the list. A blank
// title or no non-blank quotes is a no-op. The quotes count against the
// quota; unknown categories are filed under Other.
func (v *Vault) AddCollection(ctx context.Context, in NewCollection) (domain.Collection, bool, error) {
	title := strings.TrimSpace(in.Title)
	texts := trimmedNonEmpty(in.Quotes)

	if title == "" || len(texts) == 0 {
		return domain.Collection{}, false, nil
	}

	var (
		result  domain.Collection
		created bool
	)

	err := v.mutate(ctx, "add_collection", func(s *state) (bool, error) {
		if in.ID != "" {
			if i := collectionIndex(s.collections, in.ID); i >= 0 {
				result = s.collections[i].Clone()

				return false, nil
			}
		}

		if err := v.checkQuota(s, len(texts)); err != nil {
			return false, err
		}

		now := v.timestamp()
		quotes := make([]domain.Quote, len(texts))

		for i, text := range texts {
			quotes[i] = domain.Quote{
				ID:         v.newID(),
				Text:       text,
				SourceLink: strings.TrimSpace(in.SourceLink),
				CreatedAt:  now,
			}
		}

		id := in.ID
		if id == "" {
			id = v.newID()
		}

		result = domain.Collection{
			ID:         id,
			Title:      title,
			CategoryID: resolveCategory(s.categories, in.CategoryID),
			Quotes:     quotes,
			CreatedAt:  now,
		}
		s.collections = slices.Insert(s.collections, 0, result.Clone())
		created = true

		return true, nil
	})
	if err != nil {
		if domain.IsQuotaExceeded(err) {
			v.logger.InfoContext(ctx, "collection refused by quota", slog.Int("quotes", len(texts)))
		}

		return domain.Collection{}, false, err
	}

	if created {
		v.logger.InfoContext(ctx, "collection added",
			slog.String("collection_id", result.ID),
			slog.String("category", result.CategoryID),
			slog.Int("quotes", len(result.Quotes)),
		)
	}

	return result, created, nil
}

// UpdateCollection merges patch into the collection header. Blank titles
// are ignored and unknown categories resolve to Other.
func (v *Vault) UpdateCollection(ctx context.Context, id string, patch CollectionPatch) error {
	return v.mutate(ctx, "update_collection", func(s *state) (bool, error) {
		i := collectionIndex(s.collections, id)
		if i < 0 {
			return false, nil
		}

		c := &s.collections[i]
		changed := false

		if patch.Title != nil {
			if title := strings.TrimSpace(*patch.Title); title != "" && title != c.Title {
				c.Title = title
				changed = true
			}
		}

		if patch.CategoryID != nil {
			if category := resolveCategory(s.categories, *patch.CategoryID); category != c.CategoryID {
				c.CategoryID = category
				changed = true
			}
		}

		return changed, nil
	})
}

// DeleteCollection removes a collection and all its quotes.
func (v *Vault) DeleteCollection(ctx context.Context, id string) error {
	return v.mutate(ctx, "delete_collection", func(s *state) (bool, error) {
		i := collectionIndex(s.collections, id)
		if i < 0 {
			return false, nil
		}

		s.collections = slices.Delete(s.collections, i, i+1)

		return true, nil
	})
}

// AddQuote prepends a quote to a collection. It reports added=false for a
// blank text or an unknown collection, and returns a quota error when the
// free tier is full.
func (v *Vault) AddQuote(ctx context.Context, collectionID, text string) (domain.Quote, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Quote{}, false, nil
	}

	var (
		quote domain.Quote
		added bool
	)

	err := v.mutate(ctx, "add_quote", func(s *state) (bool, error) {
		i := collectionIndex(s.collections, collectionID)
		if i < 0 {
			return false, nil
		}

		if err := v.checkQuota(s, 1); err != nil {
			return false, err
		}

		quote = domain.Quote{ID: v.newID(), Text: text, CreatedAt: v.timestamp()}
		s.collections[i].Quotes = slices.Insert(s.collections[i].Quotes, 0, quote)
		added = true

		return true, nil
	})
	if err != nil {
		return domain.Quote{}, false, err
	}

	return quote, added, nil
}

// UpdateQuote replaces a quote's text. Blank text or unknown ids are a no-op.
func (v *Vault) UpdateQuote(ctx context.Context, collectionID, quoteID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	return v.mutate(ctx, "update_quote", func(s *state) (bool, error) {
		i := collectionIndex(s.collections, collectionID)
		if i < 0 {
			return false, nil
		}

		j := s.collections[i].QuoteIndex(quoteID)
		if j < 0 || s.collections[i].Quotes[j].Text == text {
			return false, nil
		}

		s.collections[i].Quotes[j].Text = text

		return true, nil
	})
}

// DeleteQuote removes a quote. A collection left without quotes is removed
// in the same flush.
func (v *Vault) DeleteQuote(ctx context.Context, collectionID, quoteID string) error {
	removedCollection := false

	err := v.mutate(ctx, "delete_quote", func(s *state) (bool, error) {
		i := collectionIndex(s.collections, collectionID)
		if i < 0 {
			return false, nil
		}

		j := s.collections[i].QuoteIndex(quoteID)
		if j < 0 {
			return false, nil
		}

		s.collections[i].Quotes = slices.Delete(s.collections[i].Quotes, j, j+1)

		if len(s.collections[i].Quotes) == 0 {
			s.collections = slices.Delete(s.collections, i, i+1)
			removedCollection = true
		}

		return true, nil
	})
	if err == nil && removedCollection {
		v.logger.InfoContext(ctx, "empty collection removed", slog.String("collection_id", collectionID))
	}

	return err
}

// RecentQuotes returns up to limit quotes across all collections, newest
// first. A limit of zero or less uses the configured default.
func (v *Vault) RecentQuotes(limit int) []domain.QuoteRef {
	if limit <= 0 {
		limit = v.recentLimit
	}

	var refs []domain.QuoteRef

	v.read(func(s *state) { refs = flatten(s.collections) })

	slices.SortStableFunc(refs, func(a, b domain.QuoteRef) int {
		return cmp.Compare(b.Quote.CreatedAt.UnixMilli(), a.Quote.CreatedAt.UnixMilli())
	})

	return refs[:min(limit, len(refs))]
}

// flatten lists every quote with its owning collection, in natural order.
func flatten(collections []domain.Collection) []domain.QuoteRef {
	refs := make([]domain.QuoteRef, 0, domain.CountQuotes(collections))

	for _, c := range collections {
		for _, q := range c.Quotes {
			refs = append(refs, domain.QuoteRef{
				Quote:           q,
				CollectionID:    c.ID,
				CollectionTitle: c.Title,
				CategoryID:      c.CategoryID,
			})
		}
	}

	return refs
}
