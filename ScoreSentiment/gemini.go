package ScoreSentiment

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

//go:embed prompt.txt
var promptContext string

// contentGenerator is the part of genai.Models the scorer needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiScorer asks a Gemini model for a compound score.
type GeminiScorer struct {
	models contentGenerator
	model  string
}

func NewGeminiScorer(ctx context.Context, apiKey string, model string) (*GeminiScorer, error) {
	genAiClient, genAiError := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if genAiError != nil {
		return nil, fmt.Errorf("create genai client: %w", genAiError)
	}
	return newGeminiScorer(genAiClient.Models, model), nil
}

func newGeminiScorer(models contentGenerator, model string) *GeminiScorer {
	return &GeminiScorer{models: models, model: model}
}

func cleanJSON(input string) string {
	input = strings.TrimSpace(input)

	// Remove ```json and ``` if present
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")

	return strings.TrimSpace(input)
}

func buildPrompt(text string) string {
	return fmt.Sprintf("Message:\n%q\n\n%s", text, promptContext)
}

func (g *GeminiScorer) Score(ctx context.Context, text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, ErrUnscorable
	}

	// ask the model for a single compound score
	genAiResult, genAiGenerateContentError := g.models.GenerateContent(ctx, g.model, genai.Text(buildPrompt(text)), nil)
	if genAiGenerateContentError != nil {
		return 0, fmt.Errorf("gemini generate content: %w", genAiGenerateContentError)
	}

	if genAiResult == nil || len(genAiResult.Candidates) == 0 || genAiResult.Candidates[0].Content == nil {
		return 0, errors.New("gemini returned no candidates")
	}

	// the answer may be split over several parts of the first candidate
	var answer strings.Builder
	for _, part := range genAiResult.Candidates[0].Content.Parts {
		if part != nil {
			answer.WriteString(part.Text)
		}
	}

	var data struct {
		Compound *float64 `json:"compound"`
	}
	jsonUnmarshallError := json.Unmarshal([]byte(cleanJSON(answer.String())), &data)
	if jsonUnmarshallError != nil {
		return 0, fmt.Errorf("unmarshal gemini answer: %w", jsonUnmarshallError)
	}
	if data.Compound == nil {
		return 0, errors.New("gemini answer has no compound field")
	}
	rangeError := checkRange(*data.Compound)
	if rangeError != nil {
		return 0, fmt.Errorf("gemini answer %v: %w", *data.Compound, rangeError)
	}
	return *data.Compound, nil
}
