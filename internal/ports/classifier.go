package ports

import (
	"context"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

// Classifier is the AI collaborator that extracts, ranks, and suggests.
// Implementations must translate their failures into errors; the vault
// decides which failures are fatal and which fall back to defaults.
type Classifier interface {
	// ClassifyAndExtract reads quotes from images and proposes a category
	// from categoryIDs plus a short title.
	// Returns an error if no valid structured output can be produced.
	ClassifyAndExtract(ctx context.Context, images []domain.Image, categoryIDs []string) (*domain.ExtractionResult, error)

	// RankByIntent returns quote ids best-first. The result may be empty.
	RankByIntent(ctx context.Context, query string, quotes []domain.RankCandidate) ([]string, error)

	// SuggestIcon picks one icon id from icons for a category name.
	SuggestIcon(ctx context.Context, name string, icons []string) (string, error)
}
