package domain

import (
	"strings"
	"time"
)

// Platform identifies where a submitted link came from.
type Platform string

// Known platforms.
const (
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformOther     Platform = "other"
)

// DetectPlatform classifies a URL by substring. TikTok is checked first.
func DetectPlatform(url string) Platform {
	switch {
	case strings.Contains(url, "tiktok.com"):
		return PlatformTikTok
	case strings.Contains(url, "instagram.com"):
		return PlatformInstagram
	default:
		return PlatformOther
	}
}

// ParsePlatform parses a platform filter value. Empty and "all" yield "".
func ParsePlatform(s string) (Platform, bool) {
	switch p := Platform(strings.ToLower(strings.TrimSpace(s))); p {
	case "", "all":
		return "", true
	case PlatformTikTok, PlatformInstagram, PlatformOther:
		return p, true
	default:
		return "", false
	}
}

// LinkHistoryItem records a submitted source link.
type LinkHistoryItem struct {
	ID        string
	URL       string
	Platform  Platform
	CreatedAt time.Time
}

// DateRange restricts history queries.
type DateRange string

// Supported history ranges.
const (
	RangeAll   DateRange = "all"
	RangeToday DateRange = "today"
	RangeWeek  DateRange = "week"
)

// ParseDateRange parses a range filter value. Empty yields RangeAll.
func ParseDateRange(s string) (DateRange, bool) {
	switch r := DateRange(strings.ToLower(strings.TrimSpace(s))); r {
	case "":
		return RangeAll, true
	case RangeAll, RangeToday, RangeWeek:
		return r, true
	default:
		return "", false
	}
}

// HistoryFilter is a read-only projection over link history.
type HistoryFilter struct {
	// Platform is empty for all platforms.
	Platform Platform
	Range    DateRange
}
