package mealplan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gourmetgo/internal/model"

	"github.com/rs/zerolog"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// GeminiPlanner calls the Generative Language REST API and asks the model for
// a JSON array of item names.
type GeminiPlanner struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// NewGeminiPlanner creates a planner for the given API key and model name.
func NewGeminiPlanner(apiKey, modelName string, logger zerolog.Logger) *GeminiPlanner {
	return &GeminiPlanner{
		apiKey:  apiKey,
		model:   modelName,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger.With().Str("gateway", "gemini").Logger(),
	}
}

// request/response shapes for the generateContent endpoint, reduced to the
// fields this gateway uses.
type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType"`
	Temperature      float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Recommend asks the model for a budget-bounded meal plan and returns the
// recommended item names in the model's order.
func (p *GeminiPlanner) Recommend(ctx context.Context, preferredItemNames []string, menu []model.MenuItem, budget float64) ([]string, error) {
	reqBody, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(preferredItemNames, menu, budget)}}}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			Temperature:      0.5,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", p.baseURL, p.model, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach recommendation gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recommendation gateway returned status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		p.logger.Warn().Msg("gateway returned no candidates")
		return nil, nil
	}

	text := strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		p.logger.Warn().Msg("gateway returned an empty meal plan")
		return nil, nil
	}

	var names []any
	if err := json.Unmarshal([]byte(text), &names); err != nil {
		return nil, fmt.Errorf("failed to parse meal plan: %w", err)
	}
	recommended := make([]string, 0, len(names))
	for _, n := range names {
		if s, ok := n.(string); ok {
			recommended = append(recommended, s)
		}
	}
	return recommended, nil
}

// buildPrompt renders the meal-planning prompt. The menu is listed with
// prices so the model can respect the budget.
func buildPrompt(preferredItemNames []string, menu []model.MenuItem, budget float64) string {
	var menuLines strings.Builder
	for _, item := range menu {
		fmt.Fprintf(&menuLines, "- %s: PKR %.2f\n", item.Name, item.Price)
	}

	return fmt.Sprintf(`You are a sophisticated meal planning assistant for a premium catering service called GourmetGo. Your goal is to create a personalized, budget-conscious meal plan for a user.

Analyze the user's favorite items and past orders provided in the 'User's Preferred Items' list to understand their taste profile.

Your main task is to create an optimized and balanced meal plan from the 'Full Menu'. A balanced meal plan should ideally include a variety of courses (e.g., an appetizer, a main course, a dessert, and a beverage), but you have flexibility.

The total cost of all items in your recommended plan MUST NOT exceed the user's budget of PKR %.2f. Try to get as close to the budget as possible to provide the best value without going over.

Do not recommend any items that are already in the 'User's Preferred Items' list, unless it's necessary to meet the budget and preferences.

User's Preferred Items:
- %s

Full Menu (with prices):
%s
User's Budget: PKR %.2f

Return your answer *only* as a JSON array of strings, where each string is the exact name of a recommended menu item from the "Full Menu". The response should contain nothing but the JSON array. The order of items in the array matters, try to order them by course (appetizer, main, etc.).
Example response: ["Bruschetta", "Spaghetti Carbonara", "Tiramisu", "Espresso"]`,
		budget,
		strings.Join(preferredItemNames, "\n- "),
		menuLines.String(),
		budget,
	)
}
