package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

func historyURLs(items []domain.LinkHistoryItem) []string {
	urls := make([]string, len(items))
	for i, item := range items {
		urls[i] = item.URL
	}

	return urls
}

func TestVault_AddLink(t *testing.T) {
	ctx := context.Background()
	tv := newTestVault(t)

	item, added, err := tv.AddLink(ctx, "  https://www.tiktok.com/@coach/video/1 ")
	require.NoError(t, err)
	require.True(t, added)
	assert.Equal(t, "https://www.tiktok.com/@coach/video/1", item.URL)
	assert.Equal(t, domain.PlatformTikTok, item.Platform)
	assert.NotEmpty(t, item.ID)

	_, added, err = tv.AddLink(ctx, "   ")
	require.NoError(t, err)
	assert.False(t, added)

	tv.advance(time.Minute)
	_, _, err = tv.AddLink(ctx, "https://www.instagram.com/reel/xyz")
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"https://www.instagram.com/reel/xyz", "https://www.tiktok.com/@coach/video/1"},
		historyURLs(tv.History(domain.HistoryFilter{})),
	)
}

func TestVault_ImportLink(t *testing.T) {
	tv := newTestVault(t)

	item, added, err := tv.ImportLink(context.Background(), "https://blog.example.com/post")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, domain.PlatformOther, item.Platform)
	assert.Len(t, tv.History(domain.HistoryFilter{}), 1)
}

func TestVault_DeleteLink(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	tv := newTestVault(t, withStore(store))

	item, _, err := tv.AddLink(ctx, "https://example.com")
	require.NoError(t, err)

	require.NoError(t, tv.DeleteLink(ctx, item.ID))
	assert.Empty(t, tv.History(domain.HistoryFilter{}))

	store.reset()
	require.NoError(t, tv.DeleteLink(ctx, item.ID))
	assert.Empty(t, store.saves)
}

func TestVault_History_Filters(t *testing.T) {
	ctx := context.Background()
	tv := newTestVault(t)

	// Start: 2026-03-14 09:00 UTC.
	add := func(url string) {
		t.Helper()

		_, _, err := tv.AddLink(ctx, url)
		require.NoError(t, err)
	}

	add("https://www.tiktok.com/a")
	tv.advance(3 * 24 * time.Hour)
	add("https://www.instagram.com/b")
	tv.advance(5 * 24 * time.Hour)
	add("https://www.tiktok.com/c")
	tv.advance(12 * time.Hour)
	add("https://example.com/d")

	// Now: 2026-03-22 21:00 UTC.
	tests := []struct {
		name   string
		filter domain.HistoryFilter
		want   []string
	}{
		{
			name:   "all",
			filter: domain.HistoryFilter{Range: domain.RangeAll},
			want: []string{
				"https://example.com/d",
				"https://www.tiktok.com/c",
				"https://www.instagram.com/b",
				"https://www.tiktok.com/a",
			},
		},
		{
			name:   "tiktok",
			filter: domain.HistoryFilter{Platform: domain.PlatformTikTok},
			want:   []string{"https://www.tiktok.com/c", "https://www.tiktok.com/a"},
		},
		{
			name:   "today",
			filter: domain.HistoryFilter{Range: domain.RangeToday},
			want:   []string{"https://example.com/d", "https://www.tiktok.com/c"},
		},
		{
			name:   "week",
			filter: domain.HistoryFilter{Range: domain.RangeWeek},
			want:   []string{"https://example.com/d", "https://www.tiktok.com/c", "https://www.instagram.com/b"},
		},
		{
			name:   "instagram today",
			filter: domain.HistoryFilter{Platform: domain.PlatformInstagram, Range: domain.RangeToday},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, historyURLs(tv.History(tt.filter)))
		})
	}
}

func TestVault_History_TodayUsesLocation(t *testing.T) {
	ctx := context.Background()
	newYork := time.FixedZone("EST", -5*60*60)

	// 09:00 UTC is 04:00 in New York.
	tv := newTestVault(t, withLocation(newYork))

	_, _, err := tv.AddLink(ctx, "https://example.com/early")
	require.NoError(t, err)

	tv.advance(-5 * time.Hour)
	_, _, err = tv.AddLink(ctx, "https://example.com/yesterday-local")
	require.NoError(t, err)

	tv.advance(5 * time.Hour)

	assert.Equal(t,
		[]string{"https://example.com/early"},
		historyURLs(tv.History(domain.HistoryFilter{Range: domain.RangeToday})),
	)
}
