package app

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// Persisted records. Field names and millisecond timestamps match the
// blobs written by earlier versions of the app, so existing data loads.

type quoteRecord struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	SourceLink string `json:"sourceLink,omitempty"`
	CreatedAt  int64  `json:"createdAt"`
}

type collectionRecord struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	CategoryID string        `json:"categoryId"`
	Quotes     []quoteRecord `json:"quotes"`
	CreatedAt  int64         `json:"createdAt"`
}

type accountRecord struct {
	Credits        int    `json:"credits"`
	LastDailyClaim *int64 `json:"lastDailyClaim"`
	Streak         int    `json:"streak"`
	IsPremium      bool   `json:"isPremium"`
}

type historyRecord struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Platform  string `json:"platform"`
	CreatedAt int64  `json:"createdAt"`
}

type categoryRecord struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Theme     string `json:"theme"`
	Icon      string `json:"icon,omitempty"`
	IsPinned  bool   `json:"isPinned"`
	IsDefault bool   `json:"isDefault"`
}

func encodeState(s *state) (map[ports.Partition][]byte, error) {
	collections := make([]collectionRecord, len(s.collections))
	for i, c := range s.collections {
		quotes := make([]quoteRecord, len(c.Quotes))
		for j, q := range c.Quotes {
			quotes[j] = quoteRecord{ID: q.ID, Text: q.Text, SourceLink: q.SourceLink, CreatedAt: q.CreatedAt.UnixMilli()}
		}

		collections[i] = collectionRecord{
			ID:         c.ID,
			Title:      c.Title,
			CategoryID: c.CategoryID,
			Quotes:     quotes,
			CreatedAt:  c.CreatedAt.UnixMilli(),
		}
	}

	account := accountRecord{
		Credits:   s.account.Credits,
		Streak:    s.account.Streak,
		IsPremium: s.account.IsPremium,
	}
	if s.account.LastDailyClaim != nil {
		ms := s.account.LastDailyClaim.UnixMilli()
		account.LastDailyClaim = &ms
	}

	history := make([]historyRecord, len(s.history))
	for i, h := range s.history {
		history[i] = historyRecord{ID: h.ID, URL: h.URL, Platform: string(h.Platform), CreatedAt: h.CreatedAt.UnixMilli()}
	}

	categories := make([]categoryRecord, len(s.categories))
	for i, c := range s.categories {
		categories[i] = categoryRecord(c)
	}

	records := map[ports.Partition]any{
		ports.PartitionCollections: collections,
		ports.PartitionAccount:     account,
		ports.PartitionHistory:     history,
		ports.PartitionCategories:  categories,
	}

	out := make(map[ports.Partition][]byte, len(records))

	for p, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", p, err)
		}

		out[p] = data
	}

	return out, nil
}

// decodeState builds a state from raw blobs. Missing partitions decode to
// empty values; categories stays nil so the caller can seed defaults.
func decodeState(raw map[ports.Partition][]byte) (*state, error) {
	var (
		collections []collectionRecord
		account     accountRecord
		history     []historyRecord
		categories  []categoryRecord
	)

	targets := map[ports.Partition]any{
		ports.PartitionCollections: &collections,
		ports.PartitionAccount:     &account,
		ports.PartitionHistory:     &history,
		ports.PartitionCategories:  &categories,
	}

	for p, target := range targets {
		data, ok := raw[p]
		if !ok {
			continue
		}

		if err := json.Unmarshal(data, target); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", p, err)
		}
	}

	s := &state{
		collections: make([]domain.Collection, 0, len(collections)),
		history:     make([]domain.LinkHistoryItem, 0, len(history)),
		account: domain.UserAccount{
			Credits:   account.Credits,
			Streak:    account.Streak,
			IsPremium: account.IsPremium,
		},
	}

	if account.LastDailyClaim != nil {
		last := time.UnixMilli(*account.LastDailyClaim)
		s.account.LastDailyClaim = &last
	}

	for _, c := range collections {
		quotes := make([]domain.Quote, len(c.Quotes))
		for j, q := range c.Quotes {
			quotes[j] = domain.Quote{ID: q.ID, Text: q.Text, SourceLink: q.SourceLink, CreatedAt: time.UnixMilli(q.CreatedAt)}
		}

		s.collections = append(s.collections, domain.Collection{
			ID:         c.ID,
			Title:      c.Title,
			CategoryID: c.CategoryID,
			Quotes:     quotes,
			CreatedAt:  time.UnixMilli(c.CreatedAt),
		})
	}

	for _, h := range history {
		s.history = append(s.history, domain.LinkHistoryItem{
			ID:        h.ID,
			URL:       h.URL,
			Platform:  domain.Platform(h.Platform),
			CreatedAt: time.UnixMilli(h.CreatedAt),
		})
	}

	if _, ok := raw[ports.PartitionCategories]; ok {
		s.categories = make([]domain.Category, len(categories))
		for i, c := range categories {
			s.categories[i] = domain.Category(c)
		}
	}

	return s, nil
}
