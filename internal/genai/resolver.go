package genai

import (
	"context"
	"fmt"
	"strings"

	"github.com/papermind/docstudio/pkg/utils"
	"go.uber.org/zap"
)

// minAPIKeyLength is the shortest credential considered syntactically plausible.
const minAPIKeyLength = 10

// probeMaxTokens keeps discovery probes minimal.
const probeMaxTokens = 5

// ValidateAPIKey fails fast on credentials that cannot possibly work, before
// any network use.
func ValidateAPIKey(apiKey string) error {
	if len(strings.TrimSpace(apiKey)) < minAPIKeyLength {
		return fmt.Errorf("invalid API key format")
	}
	return nil
}

// Resolve probes preferred model identifiers with a minimal generation call and
// returns the first that produces non-empty text. If none work it falls back to
// listing all models the credential can access, filtering to those that support
// text generation, and probing each. The two-phase probe keeps the common case
// to one call while surviving deprecated identifiers and restricted accounts.
func Resolve(ctx context.Context, client *Client, preferred []string, logger *zap.Logger) (string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var lastErr error
	for _, model := range preferred {
		err := probe(ctx, client, model)
		if err == nil {
			logger.Info("model resolved", zap.String("model", model))
			return model, nil
		}
		lastErr = err
	}

	models, err := client.ListModels(ctx)
	if err != nil {
		if lastErr == nil {
			lastErr = err
		}
		return "", fmt.Errorf("model discovery failed: %s", utils.Truncate(lastErr.Error(), 120))
	}

	var available []string
	for _, m := range models {
		if m.SupportsGeneration() {
			available = append(available, m.ShortName())
		}
	}
	for _, name := range available {
		if probe(ctx, client, name) == nil {
			logger.Info("model resolved via discovery", zap.String("model", name))
			return name, nil
		}
	}

	if len(available) > 0 {
		if len(available) > 3 {
			available = available[:3]
		}
		return "", fmt.Errorf("no working model. Available: %s", strings.Join(available, ", "))
	}
	return "", fmt.Errorf("no text generation models available for this API key")
}

// probe issues a minimal generation call. A nil return means the model
// produced text; otherwise the error carries the remote cause.
func probe(ctx context.Context, client *Client, model string) error {
	text, err := client.GenerateContent(ctx, model, "test", &GenerationConfig{MaxOutputTokens: probeMaxTokens})
	if err != nil {
		return fmt.Errorf("probe %s: %w", model, err)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("probe %s: empty response", model)
	}
	return nil
}
