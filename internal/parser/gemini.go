package parser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"cashmate/internal/logging"
)

// GeminiOracle implements Oracle on top of Google's Gemini API.
type GeminiOracle struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
	logger  logging.Logger
}

// NewGeminiOracle creates a Gemini-backed oracle. The API key must be
// non-empty; modelName defaults to gemini-2.0-flash when blank.
func NewGeminiOracle(ctx context.Context, apiKey, modelName string, timeout time.Duration, logger logging.Logger) (*GeminiOracle, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is not set")
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	logger.WithField("model", modelName).Debug("Initialized Gemini oracle")

	return &GeminiOracle{
		client:  client,
		model:   client.GenerativeModel(modelName),
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Generate sends a single prompt to the model and returns the concatenated
// text parts of the first candidate.
func (o *GeminiOracle) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini returned no text content")
	}

	return sb.String(), nil
}

// Close releases the underlying client.
func (o *GeminiOracle) Close() error {
	return o.client.Close()
}
