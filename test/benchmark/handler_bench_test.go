package benchmark

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotevault/internal/adapters/persistence"
	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

func init() {
	// Set Gin to release mode for accurate benchmarks
	gin.SetMode(gin.ReleaseMode)
}

// nopClassifier never ranks anything, so intent search measures only the
// vault side.
type nopClassifier struct{}

func (nopClassifier) ClassifyAndExtract(context.Context, []domain.Image, []string) (*domain.ExtractionResult, error) {
	return nil, domain.NewUnavailableError("benchmark", "disabled")
}

func (nopClassifier) RankByIntent(_ context.Context, _ string, quotes []domain.RankCandidate) ([]string, error) {
	ids := make([]string, 0, 5)
	for _, q := range quotes[:min(5, len(quotes))] {
		ids = append(ids, q.ID)
	}

	return ids, nil
}

func (nopClassifier) SuggestIcon(context.Context, string, []string) (string, error) {
	return "Star", nil
}

// newVault returns a premium vault seeded with n collections of three quotes.
func newVault(b *testing.B, n int) *app.Vault {
	b.Helper()

	ctx := context.Background()
	vault := app.NewVault(&app.VaultConfig{
		Store:      persistence.NewMemoryStore(),
		Classifier: nopClassifier{},
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	if err := vault.UpgradeToPro(ctx); err != nil {
		b.Fatal(err)
	}

	categories := []string{"Flirty", "Motivation", "Relationships", "Confidence", "Mindset"}

	for i := range n {
		_, _, err := vault.AddCollection(ctx, app.NewCollection{
			Title:      fmt.Sprintf("Collection %d", i),
			CategoryID: categories[i%len(categories)],
			Quotes: []string{
				fmt.Sprintf("Quote %d about discipline.", i),
				fmt.Sprintf("Quote %d about patience.", i),
				fmt.Sprintf("Quote %d about courage.", i),
			},
		})
		if err != nil {
			b.Fatal(err)
		}
	}

	return vault
}

// newRouter mounts the vault routes the way the service does.
func newRouter(vault *app.Vault) *gin.Engine {
	engine := gin.New()
	handlers.NewVaultHandler(vault).RegisterRoutes(engine.Group("/api/v1"))

	return engine
}

func serve(b *testing.B, router http.Handler, method, path string, body []byte, want int) {
	b.Helper()

	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != want {
		b.Errorf("%s %s: status %d, want %d: %s", method, path, w.Code, want, w.Body.String())
	}
}

// BenchmarkLivenessHandler measures the liveness probe, which must stay cheap.
func BenchmarkLivenessHandler(b *testing.B) {
	handler := handlers.NewHealthHandler(ports.NewHealthRegistry(), handlers.NewBuildInfo("1.0.0", "abc123", "2026-01-01T00:00:00Z"))
	req := httptest.NewRequest(http.MethodGet, "/-/live", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = req
		handler.Liveness(c)
	}
}

// BenchmarkListCollections measures a paginated listing over a large vault.
func BenchmarkListCollections(b *testing.B) {
	router := newRouter(newVault(b, 500))

	b.ReportAllocs()

	for b.Loop() {
		serve(b, router, http.MethodGet, "/api/v1/collections?limit=20", nil, http.StatusOK)
	}
}

// BenchmarkRecentQuotes measures the flatten and sort behind the home feed.
func BenchmarkRecentQuotes(b *testing.B) {
	for _, size := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("collections=%d", size), func(b *testing.B) {
			router := newRouter(newVault(b, size))

			b.ReportAllocs()

			for b.Loop() {
				serve(b, router, http.MethodGet, "/api/v1/quotes/recent", nil, http.StatusOK)
			}
		})
	}
}

// BenchmarkSearch compares the keyword path with the combined search.
func BenchmarkSearch(b *testing.B) {
	router := newRouter(newVault(b, 500))

	b.Run("keyword", func(b *testing.B) {
		b.ReportAllocs()

		for b.Loop() {
			serve(b, router, http.MethodGet, "/api/v1/search?q=PATIENCE", nil, http.StatusOK)
		}
	})

	b.Run("all", func(b *testing.B) {
		b.ReportAllocs()

		for b.Loop() {
			serve(b, router, http.MethodGet, "/api/v1/search/all?q=courage", nil, http.StatusOK)
		}
	})
}

// BenchmarkAddQuote measures a mutation including the clone and flush.
func BenchmarkAddQuote(b *testing.B) {
	vault := newVault(b, 200)
	router := newRouter(vault)
	target := vault.Collections()[0].ID
	body := []byte(`{"text":"One more."}`)

	b.ReportAllocs()

	for b.Loop() {
		serve(b, router, http.MethodPost, "/api/v1/collections/"+target+"/quotes", body, http.StatusCreated)
	}
}

// BenchmarkParallelReads measures read throughput under concurrent access.
func BenchmarkParallelReads(b *testing.B) {
	router := newRouter(newVault(b, 200))

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			serve(b, router, http.MethodGet, "/api/v1/categories", nil, http.StatusOK)
		}
	})
}
