// Package curator talks to the generative curation service.
//
// The service is a black box behind a request/response contract: it receives a
// bounded candidate pool with exact count requirements and returns a curated
// reading list in a fixed JSON schema. It also answers cover-match
// verification queries for user-uploaded images.
package curator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/readquest/readquest-server/internal/domain"
)

// Client is a Gemini-backed curation client.
type Client struct {
	apiKey      string
	model       string
	visionModel string
	logger      *slog.Logger
}

// NewClient creates a curation client. The API key may be empty, in which
// case every request fails with a descriptive error.
func NewClient(apiKey, model, visionModel string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if visionModel == "" {
		visionModel = model
	}
	return &Client{
		apiKey:      apiKey,
		model:       model,
		visionModel: visionModel,
		logger:      logger,
	}
}

// CurationRequest carries everything the oracle needs for one curation run.
type CurationRequest struct {
	Candidates  []domain.Book
	Total       int
	MustRead    int
	Recommended int
	Grade       string
	Theme       string
	Month       string
	Query       string
}

// Curate submits the candidate pool and returns the parsed curated list.
// Transport failures and schema violations surface as errors; the caller
// decides whether to retry (it does not).
func (c *Client) Curate(ctx context.Context, req CurationRequest) (*domain.RecommendationResult, error) {
	prompt, err := buildCurationPrompt(req)
	if err != nil {
		return nil, fmt.Errorf("build curation prompt: %w", err)
	}

	text, err := c.generate(ctx, c.model, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	result, err := parseCuration(text)
	if err != nil {
		return nil, fmt.Errorf("parse curation response: %w", err)
	}

	c.logger.Debug("curation response parsed",
		"requested", req.Total,
		"returned", len(result.Books),
	)

	return result, nil
}

// VerifyCover asks the oracle whether the image matches the claimed title and
// author. This operation is fail-closed: any service or parse failure yields a
// negative verdict with a generic reason instead of an error, because a
// failure must never silently accept an unverified image.
func (c *Client) VerifyCover(ctx context.Context, image []byte, format, title, author string) (bool, string) {
	prompt := buildVerificationPrompt(title, author)

	text, err := c.generate(ctx, c.visionModel, genai.ImageData(format, image), genai.Text(prompt))
	if err != nil {
		c.logger.Warn("cover verification request failed", "error", err)
		return false, "Could not verify the cover against the catalog. Please try again."
	}

	match, reason, err := parseVerification(text)
	if err != nil {
		c.logger.Warn("cover verification response unparseable", "error", err)
		return false, "Could not verify the cover against the catalog. Please try again."
	}

	return match, reason
}

// generate runs a single content generation round trip against the given model.
func (c *Client) generate(ctx context.Context, model string, parts ...genai.Part) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return "", fmt.Errorf("create gemini client: %w", err)
	}
	defer client.Close()

	gm := client.GenerativeModel(model)
	gm.ResponseMIMEType = "application/json"

	resp, err := gm.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("empty content returned")
	}

	if txt, ok := candidate.Content.Parts[0].(genai.Text); ok {
		return string(txt), nil
	}

	return "", fmt.Errorf("unexpected response format")
}
