package parser

import "context"

// Oracle is the text-completion backend behind the model-based parser.
// Implementations send a single prompt and return the raw response text.
type Oracle interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
