package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

// SearchResults combines both search paths for one query.
type SearchResults struct {
	Keyword []domain.QuoteRef
	Intent  []domain.QuoteRef
}

// SearchQuotes matches query case-insensitively against quote text and
// collection titles. A blank query matches nothing.
func (v *Vault) SearchQuotes(query string) []domain.QuoteRef {
	out := []domain.QuoteRef{}

	if strings.TrimSpace(query) == "" {
		return out
	}

	needle := strings.ToLower(query)

	v.read(func(s *state) {
		for _, c := range s.collections {
			titleHit := strings.Contains(strings.ToLower(c.Title), needle)

			for _, q := range c.Quotes {
				if titleHit || strings.Contains(strings.ToLower(q.Text), needle) {
					out = append(out, domain.QuoteRef{
						Quote:           q,
						CollectionID:    c.ID,
						CollectionTitle: c.Title,
						CategoryID:      c.CategoryID,
					})
				}
			}
		}
	})

	return out
}

// SearchByIntent asks the classifier to rank every stored quote against
// query and returns the matches in ranked order. Classifier failures yield
// an empty result.
func (v *Vault) SearchByIntent(ctx context.Context, query string) []domain.QuoteRef {
	out := []domain.QuoteRef{}

	if strings.TrimSpace(query) == "" {
		return out
	}

	var refs []domain.QuoteRef

	v.read(func(s *state) { refs = flatten(s.collections) })

	if len(refs) == 0 {
		return out
	}

	byID := make(map[string]domain.QuoteRef, len(refs))
	candidates := make([]domain.RankCandidate, len(refs))

	for i, ref := range refs {
		byID[ref.Quote.ID] = ref
		candidates[i] = domain.RankCandidate{ID: ref.Quote.ID, Text: ref.Quote.Text}
	}

	ranked, err := v.classifier.RankByIntent(ctx, query, candidates)
	if err != nil {
		v.logger.WarnContext(ctx, "intent ranking failed", slog.Any("error", err))

		return out
	}

	seen := make(map[string]struct{}, len(ranked))

	for _, id := range ranked {
		ref, ok := byID[id]
		if !ok {
			continue
		}

		if _, dup := seen[id]; dup {
			continue
		}

		seen[id] = struct{}{}
		out = append(out, ref)
	}

	return out
}

// Search runs the keyword and intent paths concurrently.
func (v *Vault) Search(ctx context.Context, query string) SearchResults {
	keyword, intent, _ := Parallel2(ctx,
		func(context.Context) ([]domain.QuoteRef, error) { return v.SearchQuotes(query), nil },
		func(ctx context.Context) ([]domain.QuoteRef, error) { return v.SearchByIntent(ctx, query), nil },
	)

	return SearchResults{Keyword: keyword, Intent: intent}
}
