package app

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

// CategorySummary is a category with the number of collections filed under it.
type CategorySummary struct {
	domain.Category
	Icon            string
	CollectionCount int
}

func categoryIndex(categories []domain.Category, id string) int {
	return slices.IndexFunc(categories, func(c domain.Category) bool { return domain.SameID(c.ID, id) })
}

// resolveCategory maps id onto a registered category id, or Other.
func resolveCategory(categories []domain.Category, id string) string {
	if i := categoryIndex(categories, id); i >= 0 {
		return categories[i].ID
	}

	return domain.OtherCategoryID
}

// sortedCategories orders pinned first, then unpinned, Other last. Ties
// keep stored order.
func sortedCategories(categories []domain.Category) []domain.Category {
	out := slices.Clone(categories)

	rank := func(c domain.Category) int {
		switch {
		case c.IsOther():
			return 2
		case c.IsPinned:
			return 0
		default:
			return 1
		}
	}

	slices.SortStableFunc(out, func(a, b domain.Category) int { return rank(a) - rank(b) })

	return out
}

// Categories returns the registry in display order.
func (v *Vault) Categories() []domain.Category {
	var out []domain.Category

	v.read(func(s *state) { out = sortedCategories(s.categories) })

	return out
}

// CategorySummaries returns the registry in display order with resolved
// icons and collection counts.
func (v *Vault) CategorySummaries() []CategorySummary {
	var out []CategorySummary

	v.read(func(s *state) {
		counts := make(map[string]int)
		for _, c := range s.collections {
			counts[strings.ToLower(c.CategoryID)]++
		}

		for _, c := range sortedCategories(s.categories) {
			out = append(out, CategorySummary{
				Category:        c,
				Icon:            c.ResolveIcon(),
				CollectionCount: counts[strings.ToLower(c.ID)],
			})
		}
	})

	return out
}

// AddCategory registers a new category named name. A blank name or one that
// already exists ignoring case is a no-op and reports created=false with the
// existing category, if any. The icon comes from the classifier and falls
// back to the default icon on any failure.
func (v *Vault) AddCategory(ctx context.Context, name string) (domain.Category, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, false, nil
	}

	if existing, ok := v.findCategory(name); ok {
		return existing, false, nil
	}

	icon := v.suggestIcon(ctx, name)

	category := domain.Category{
		ID:    name,
		Label: name,
		Theme: domain.ThemePalette[v.randIntN(len(domain.ThemePalette))],
		Icon:  icon,
	}

	var (
		result  domain.Category
		created bool
	)

	err := v.mutate(ctx, "add_category", func(s *state) (bool, error) {
		if i := categoryIndex(s.categories, name); i >= 0 {
			result = s.categories[i]

			return false, nil
		}

		at := categoryIndex(s.categories, domain.OtherCategoryID)
		if at < 0 {
			at = len(s.categories)
		}

		s.categories = slices.Insert(s.categories, at, category)
		result, created = category, true

		return true, nil
	})
	if err != nil {
		return domain.Category{}, false, err
	}

	if created {
		v.logger.InfoContext(ctx, "category added",
			slog.String("category", category.ID),
			slog.String("icon", category.Icon),
		)
	}

	return result, created, nil
}

func (v *Vault) findCategory(id string) (domain.Category, bool) {
	var (
		found domain.Category
		ok    bool
	)

	v.read(func(s *state) {
		if i := categoryIndex(s.categories, id); i >= 0 {
			found, ok = s.categories[i], true
		}
	})

	return found, ok
}

func (v *Vault) suggestIcon(ctx context.Context, name string) string {
	icon, err := v.classifier.SuggestIcon(ctx, name, domain.AvailableIcons)
	if err != nil {
		v.logger.WarnContext(ctx, "icon suggestion failed, using default",
			slog.String("category", name),
			slog.Any("error", err),
		)

		return domain.DefaultIcon
	}

	if !domain.IsAvailableIcon(icon) {
		v.logger.WarnContext(ctx, "icon suggestion not in icon set, using default",
			slog.String("category", name),
			slog.String("icon", icon),
		)

		return domain.DefaultIcon
	}

	return icon
}

// DeleteCategory removes a category and files its collections under Other
// in the same flush. Deleting Other or an unknown id is a no-op.
func (v *Vault) DeleteCategory(ctx context.Context, id string) error {
	if domain.IsOtherCategory(id) {
		return nil
	}

	var (
		deleted    bool
		reassigned int
	)

	err := v.mutate(ctx, "delete_category", func(s *state) (bool, error) {
		i := categoryIndex(s.categories, id)
		if i < 0 {
			return false, nil
		}

		deleted = true

		removed := s.categories[i].ID
		s.categories = slices.Delete(s.categories, i, i+1)

		for j := range s.collections {
			if domain.SameID(s.collections[j].CategoryID, removed) {
				s.collections[j].CategoryID = domain.OtherCategoryID
				reassigned++
			}
		}

		return true, nil
	})
	if err != nil || !deleted {
		return err
	}

	v.logger.InfoContext(ctx, "category deleted",
		slog.String("category", id),
		slog.Int("reassigned", reassigned),
	)

	return nil
}

// TogglePinCategory flips the pinned flag. Unknown ids are a no-op.
func (v *Vault) TogglePinCategory(ctx context.Context, id string) error {
	return v.mutate(ctx, "toggle_pin", func(s *state) (bool, error) {
		i := categoryIndex(s.categories, id)
		if i < 0 {
			return false, nil
		}

		s.categories[i].IsPinned = !s.categories[i].IsPinned

		return true, nil
	})
}
