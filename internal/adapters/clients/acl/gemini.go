package acl

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/jsamuelsen/quotevault/internal/adapters/clients"
	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// APIKeyHeader carries the API key on every request.
const APIKeyHeader = "x-goog-api-key"

// ErrNoAPIKey is reported by Check and every call when no key is configured.
var ErrNoAPIKey = errors.New("api key not configured")

// GeminiConfig configures a GeminiClassifier. APIKey only decides
// availability; the key itself travels through the client's AuthFunc.
type GeminiConfig struct {
	Client *clients.Client
	Model  string
	APIKey string
	Logger *slog.Logger
}

// GeminiClassifier implements ports.Classifier on the generateContent
// endpoint with structured JSON output.
type GeminiClassifier struct {
	BaseAdapter
	model     string
	hasKey    bool
	validator *SchemaValidator
	logger    *slog.Logger
}

var (
	_ ports.Classifier    = (*GeminiClassifier)(nil)
	_ ports.HealthChecker = (*GeminiClassifier)(nil)
)

// NewGeminiClassifier returns a classifier using cfg.Client. The client's
// AuthFunc is expected to set APIKeyHeader; see APIKeyAuth.
func NewGeminiClassifier(cfg GeminiConfig) *GeminiClassifier {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &GeminiClassifier{
		BaseAdapter: NewBaseAdapter(cfg.Client, cfg.Client.ServiceName()),
		model:       cfg.Model,
		hasKey:      cfg.APIKey != "",
		validator:   NewSchemaValidator(),
		logger:      logger.With(slog.String("component", "acl.GeminiClassifier")),
	}
}

// APIKeyAuth returns a clients.Config AuthFunc that sets the key header.
func APIKeyAuth(key string) func(r *http.Request) {
	return func(r *http.Request) { r.Header.Set(APIKeyHeader, key) }
}

// Name implements ports.HealthChecker.
func (g *GeminiClassifier) Name() string { return g.ServiceName() }

// Check reports the classifier unusable without a key or while the circuit
// is open. It does not call the API.
func (g *GeminiClassifier) Check(_ context.Context) error {
	if !g.hasKey {
		return ErrNoAPIKey
	}

	if g.client.CircuitState() == clients.StateOpen {
		return clients.ErrCircuitOpen
	}

	return nil
}

// Wire types.

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType"`
	ResponseSchema   map[string]any `json:"responseSchema"`
	Temperature      *float64       `json:"temperature,omitempty"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

type extractionOutput struct {
	Category         string   `json:"category"`
	SubCategoryTitle string   `json:"subCategoryTitle"`
	Quotes           []string `json:"quotes"`
}

type iconOutput struct {
	Icon string `json:"icon"`
}

// generate sends parts with a structured output schema and returns the
// validated JSON text of the first candidate.
func (g *GeminiClassifier) generate(ctx context.Context, operation string, parts []part, schema *Schema) ([]byte, error) {
	if !g.hasKey {
		return nil, domain.NewUnavailableError(g.ServiceName(), ErrNoAPIKey.Error())
	}

	req := generateRequest{
		Contents: []content{{Role: "user", Parts: parts}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   schema.ResponseSchema(),
		},
	}

	path := "/v1beta/models/" + url.PathEscape(g.model) + ":generateContent"

	resp, err := PostJSON[generateResponse](ctx, &g.BaseAdapter, path, req, operation)
	if err != nil {
		return nil, err
	}

	text, err := firstCandidateText(resp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	if err := g.validator.Validate(schema, text); err != nil {
		g.logger.WarnContext(ctx, "model output rejected",
			slog.String("operation", operation),
			slog.Any("error", err),
		)

		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	return text, nil
}

func firstCandidateText(resp *generateResponse) ([]byte, error) {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("%w: prompt blocked: %s", ErrInvalidOutput, resp.PromptFeedback.BlockReason)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidates", ErrInvalidOutput)
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return nil, fmt.Errorf("%w: empty answer (finish reason %s)", ErrInvalidOutput, resp.Candidates[0].FinishReason)
	}

	return []byte(text), nil
}

// ClassifyAndExtract implements ports.Classifier.
func (g *GeminiClassifier) ClassifyAndExtract(ctx context.Context, images []domain.Image, categoryIDs []string) (*domain.ExtractionResult, error) {
	parts := make([]part, 0, len(images)+1)
	for _, img := range images {
		parts = append(parts, part{InlineData: &inlineData{
			MimeType: img.MIMEType,
			Data:     base64.StdEncoding.EncodeToString(img.Data),
		}})
	}

	parts = append(parts, part{Text: extractionPrompt(categoryIDs)})

	schema := Object(map[string]*Schema{
		"category":         String(categoryIDs...),
		"subCategoryTitle": String(),
		"quotes":           Array(String()),
	}, "category", "subCategoryTitle", "quotes")

	text, err := g.generate(ctx, "classify and extract", parts, schema)
	if err != nil {
		return nil, err
	}

	var out extractionOutput
	if err := json.Unmarshal(text, &out); err != nil {
		return nil, fmt.Errorf("classify and extract: %w: %v", ErrInvalidOutput, err)
	}

	return &domain.ExtractionResult{
		CategoryID: out.Category,
		Title:      out.SubCategoryTitle,
		Quotes:     out.Quotes,
	}, nil
}

// RankByIntent implements ports.Classifier.
func (g *GeminiClassifier) RankByIntent(ctx context.Context, query string, quotes []domain.RankCandidate) ([]string, error) {
	type candidate struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	}

	list := make([]candidate, len(quotes))
	for i, q := range quotes {
		list[i] = candidate{ID: q.ID, Text: q.Text}
	}

	corpus, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("rank by intent: encoding quotes: %w", err)
	}

	text, err := g.generate(ctx, "rank by intent", []part{{Text: rankPrompt(query, corpus)}}, Array(String()))
	if err != nil {
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal(text, &ids); err != nil {
		return nil, fmt.Errorf("rank by intent: %w: %v", ErrInvalidOutput, err)
	}

	return ids, nil
}

// SuggestIcon implements ports.Classifier.
func (g *GeminiClassifier) SuggestIcon(ctx context.Context, name string, icons []string) (string, error) {
	schema := Object(map[string]*Schema{"icon": String(icons...)}, "icon")

	text, err := g.generate(ctx, "suggest icon", []part{{Text: iconPrompt(name, icons)}}, schema)
	if err != nil {
		return "", err
	}

	var out iconOutput
	if err := json.Unmarshal(text, &out); err != nil {
		return "", fmt.Errorf("suggest icon: %w: %v", ErrInvalidOutput, err)
	}

	return out.Icon, nil
}

func extractionPrompt(categoryIDs []string) string {
	return fmt.Sprintf(`These images are screenshots of a social media quote carousel.
1. Extract every legible quote, aphorism or meaningful statement. Skip interface text such as clocks, battery, icons, navigation, captions, comments and watermarks.
2. Pick exactly one category for the overall theme from: %s. Use the closest match, or Other.
3. Write a short title of at most 5 words capturing the mood of the set.
Answer in JSON.`, strings.Join(categoryIDs, ", "))
}

func rankPrompt(query string, corpus []byte) string {
	return fmt.Sprintf(`The user describes a situation or intent: %q

From the quotes below, choose the 3 to 5 that fit this situation best, whether relevant, witty or helpful.
Answer with a JSON array of their ids, best match first.

Quotes:
%s`, query, corpus)
}

func iconPrompt(name string, icons []string) string {
	return fmt.Sprintf(`Choose the icon that best represents a category named %q from this list:
%s

Answer in JSON with the exact icon name.`, name, strings.Join(icons, ", "))
}
