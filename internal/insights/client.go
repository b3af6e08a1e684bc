package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.5-flash"
)

// Fallbacks used whenever the text service is unreachable, misconfigured or
// returns something unusable. Callers never see an error.
const (
	FallbackDescription = "Deliciously prepared with fresh ingredients."
	FallbackFunFact     = "Best enjoyed while it's hot!"
	FallbackSuggestion  = "How about a refreshing cold drink?"
	FallbackAreaText    = "We're currently expanding! Check back soon for delivery in your area."
)

type FoodInsight struct {
	Description string `json:"description"`
	FunFact     string `json:"funFact"`
}

type AreaLink struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type AreaCheck struct {
	Text  string     `json:"text"`
	Links []AreaLink `json:"links"`
}

type Client struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   defaultModel,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// DescribeFood returns display copy for a menu item.
func (c *Client) DescribeFood(ctx context.Context, name string) FoodInsight {
	fallback := FoodInsight{Description: FallbackDescription, FunFact: FallbackFunFact}

	prompt := fmt.Sprintf(
		`Provide a short, 2-sentence mouth-watering description and some fun nutritional facts for %s. Respond with JSON only: {"description": "...", "funFact": "..."}`,
		name,
	)
	text, err := c.generate(ctx, prompt)
	if err != nil {
		return fallback
	}

	var insight FoodInsight
	if err := json.Unmarshal([]byte(stripFences(text)), &insight); err != nil {
		return fallback
	}
	if insight.Description == "" || insight.FunFact == "" {
		return fallback
	}
	return insight
}

// PolishText rewrites a review to be more descriptive; on any failure the
// input comes back unchanged.
func (c *Client) PolishText(ctx context.Context, raw string) string {
	prompt := fmt.Sprintf(
		`Rewrite the following food review to be more descriptive and enthusiastic, but keep it brief: %q`,
		raw,
	)
	text, err := c.generate(ctx, prompt)
	if err != nil || strings.TrimSpace(text) == "" {
		return raw
	}
	return strings.TrimSpace(text)
}

// SuggestPairing proposes one more item for the given cart contents.
func (c *Client) SuggestPairing(ctx context.Context, items []string) string {
	prompt := fmt.Sprintf(
		"Based on these items in the cart: %s, suggest one more item or drink that would pair perfectly with them. Keep it very brief.",
		strings.Join(items, ", "),
	)
	text, err := c.generate(ctx, prompt)
	if err != nil || strings.TrimSpace(text) == "" {
		return FallbackSuggestion
	}
	return strings.TrimSpace(text)
}

// CheckDeliveryArea produces the delivery-availability copy for the footer
// widget, with optional map links.
func (c *Client) CheckDeliveryArea(ctx context.Context, query string) AreaCheck {
	fallback := AreaCheck{Text: FallbackAreaText, Links: []AreaLink{}}

	prompt := fmt.Sprintf(
		`Is delivery available in %s? Provide a brief confirmation and mention well-known landmarks nearby. Respond with JSON only: {"text": "...", "links": [{"title": "...", "uri": "..."}]}`,
		query,
	)
	text, err := c.generate(ctx, prompt)
	if err != nil {
		return fallback
	}

	var check AreaCheck
	if err := json.Unmarshal([]byte(stripFences(text)), &check); err != nil {
		return fallback
	}
	if check.Text == "" {
		return fallback
	}
	if check.Links == nil {
		check.Links = []AreaLink{}
	}
	return check
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("api key not configured")
	}

	reqBody := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call text service: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("text service returned %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// stripFences unwraps ```json ... ``` blocks some models insist on.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
