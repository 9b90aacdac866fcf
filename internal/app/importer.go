package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

// MaxTitleWords caps the length of extracted collection titles.
const MaxTitleWords = 5

var errNoQuotes = errors.New("no quotes extracted")

// ExtractFromImages sends screenshots to the classifier and returns a
// cleaned proposal for a new collection. Nothing is stored. Invalid input
// fails with a validation error; every classifier or output failure is an
// extraction error, except that context cancellation and deadlines are
// returned as they are.
func (v *Vault) ExtractFromImages(ctx context.Context, images []domain.Image) (domain.ExtractionResult, error) {
	var categoryIDs []string

	op := Operation[[]domain.Image, *domain.ExtractionResult, domain.ExtractionResult, domain.ExtractionResult]{
		Name:     "extract_from_images",
		Validate: v.validateImages,
		Perform: func(ctx context.Context, images []domain.Image) (*domain.ExtractionResult, error) {
			for _, c := range v.Categories() {
				categoryIDs = append(categoryIDs, c.ID)
			}

			return v.classifier.ClassifyAndExtract(ctx, images, categoryIDs)
		},
		Verify: func(_ context.Context, _ []domain.Image, raw *domain.ExtractionResult) (domain.ExtractionResult, error) {
			return v.cleanExtraction(raw)
		},
		Respond: func(_ context.Context, _ []domain.Image, result domain.ExtractionResult) (domain.ExtractionResult, error) {
			return result, nil
		},
	}

	result, err := Execute(ctx, v.executor, op, images)
	if err != nil {
		if step, _ := FailedStep(err); step == StepValidate {
			return domain.ExtractionResult{}, errors.Unwrap(err)
		}

		// A cancelled or timed-out request is not the model's failure.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.ExtractionResult{}, ctxErr
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return domain.ExtractionResult{}, errors.Unwrap(err)
		}

		return domain.ExtractionResult{}, domain.NewExtractionError(err)
	}

	return result, nil
}

func (v *Vault) validateImages(_ context.Context, images []domain.Image) error {
	if len(images) == 0 {
		return domain.NewValidationError("images", "at least one image is required")
	}

	if len(images) > v.maxImages {
		return domain.NewValidationErrorWithValue("images",
			fmt.Sprintf("at most %d images are allowed", v.maxImages), len(images))
	}

	for i, img := range images {
		field := fmt.Sprintf("images[%d]", i)

		if !strings.HasPrefix(img.MIMEType, "image/") {
			return domain.NewValidationErrorWithValue(field, "must be an image", img.MIMEType)
		}

		if len(img.Data) == 0 {
			return domain.NewValidationError(field, "is empty")
		}
	}

	return nil
}

// cleanExtraction trims quotes, caps the title and maps the category onto
// the registry. A result without quotes is rejected.
func (v *Vault) cleanExtraction(raw *domain.ExtractionResult) (domain.ExtractionResult, error) {
	if raw == nil {
		return domain.ExtractionResult{}, errNoQuotes
	}

	quotes := trimmedNonEmpty(raw.Quotes)
	if len(quotes) == 0 {
		return domain.ExtractionResult{}, errNoQuotes
	}

	var category domain.Category

	v.read(func(s *state) {
		id := resolveCategory(s.categories, raw.CategoryID)
		category = s.categories[categoryIndex(s.categories, id)]
	})

	title := capWords(raw.Title, MaxTitleWords)
	if title == "" {
		title = category.Label
	}

	return domain.ExtractionResult{CategoryID: category.ID, Title: title, Quotes: quotes}, nil
}

func capWords(s string, n int) string {
	words := strings.Fields(s)

	return strings.Join(words[:min(n, len(words))], " ")
}

// ImportLink records a submitted source link in the history.
func (v *Vault) ImportLink(ctx context.Context, url string) (domain.LinkHistoryItem, bool, error) {
	return v.AddLink(ctx, url)
}

// AcceptExtraction stores an extraction as a new collection whose quotes
// carry sourceLink. id is optional and makes the call idempotent.
func (v *Vault) AcceptExtraction(ctx context.Context, id string, result domain.ExtractionResult, sourceLink string) (domain.Collection, bool, error) {
	return v.AddCollection(ctx, NewCollection{
		ID:         id,
		Title:      result.Title,
		CategoryID: result.CategoryID,
		Quotes:     result.Quotes,
		SourceLink: sourceLink,
	})
}
