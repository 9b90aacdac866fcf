package app

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

// AddLink prepends url to the link history. A blank url is a no-op and
// reports added=false.
func (v *Vault) AddLink(ctx context.Context, url string) (domain.LinkHistoryItem, bool, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return domain.LinkHistoryItem{}, false, nil
	}

	item := domain.LinkHistoryItem{
		ID:        v.newID(),
		URL:       url,
		Platform:  domain.DetectPlatform(url),
		CreatedAt: v.timestamp(),
	}

	err := v.mutate(ctx, "add_link", func(s *state) (bool, error) {
		s.history = slices.Insert(s.history, 0, item)

		return true, nil
	})
	if err != nil {
		return domain.LinkHistoryItem{}, false, err
	}

	return item, true, nil
}

// DeleteLink removes a history entry.
func (v *Vault) DeleteLink(ctx context.Context, id string) error {
	return v.mutate(ctx, "delete_link", func(s *state) (bool, error) {
		n := len(s.history)
		s.history = slices.DeleteFunc(s.history, func(item domain.LinkHistoryItem) bool { return item.ID == id })

		return len(s.history) != n, nil
	})
}

// History returns the entries matching filter, newest first.
func (v *Vault) History(filter domain.HistoryFilter) []domain.LinkHistoryItem {
	since := v.rangeStart(filter.Range)
	out := []domain.LinkHistoryItem{}

	v.read(func(s *state) {
		for _, item := range s.history {
			if filter.Platform != "" && item.Platform != filter.Platform {
				continue
			}

			if item.CreatedAt.Before(since) {
				continue
			}

			out = append(out, item)
		}
	})

	return out
}

func (v *Vault) rangeStart(r domain.DateRange) time.Time {
	now := v.now()

	switch r {
	case domain.RangeToday:
		y, m, d := now.In(v.loc).Date()

		return time.Date(y, m, d, 0, 0, 0, 0, v.loc)
	case domain.RangeWeek:
		return now.Add(-7 * 24 * time.Hour)
	default:
		return time.Time{}
	}
}
