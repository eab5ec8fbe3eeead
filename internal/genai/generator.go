package genai

import (
	"context"
	"strings"
	"time"

	"github.com/papermind/docstudio/internal/config"
	"github.com/papermind/docstudio/pkg/utils"
	"go.uber.org/zap"
)

// Terminal messages the generator returns instead of raising. The boundary with
// the orchestration layer is string-in, string-out, always-succeeds.
const (
	msgNoText    = "Model did not return any text."
	msgBlocked   = "Response blocked by safety filters."
	msgExhausted = "Failed after multiple attempts."
)

// errTruncateLen caps how much of a remote error reaches the user.
const errTruncateLen = 200

// Generator wraps a resolved model with retry-on-rate-limit, safety-block
// detection, and response-text extraction. Generate never returns an error:
// every failure mode becomes a displayable string.
type Generator struct {
	client   *Client
	model    string
	cfg      GenerationConfig
	attempts int
	sleep    func(time.Duration)
	logger   *zap.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithSleep overrides the backoff sleep (tests verify retry without waiting).
func WithSleep(sleep func(time.Duration)) GeneratorOption {
	return func(g *Generator) { g.sleep = sleep }
}

// WithGeneratorLogger sets a logger for retry events.
func WithGeneratorLogger(l *zap.Logger) GeneratorOption {
	return func(g *Generator) { g.logger = l }
}

// NewGenerator creates a generator for the resolved model using cfg's sampling
// and retry settings.
func NewGenerator(client *Client, model string, cfg *config.GeminiConfig, opts ...GeneratorOption) *Generator {
	g := &Generator{
		client: client,
		model:  model,
		cfg: GenerationConfig{
			Temperature:     cfg.Temperature,
			TopP:            cfg.TopP,
			MaxOutputTokens: cfg.MaxOutputTokens,
		},
		attempts: cfg.Attempts,
		sleep:    time.Sleep,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Model returns the resolved model identifier.
func (g *Generator) Model() string { return g.model }

// Generate issues the generation call with up to the configured number of
// attempts. Rate limiting, quota exhaustion, and timeouts back off for
// 1+attempt seconds and retry; safety blocks return a fixed message
// immediately; any other error on the final attempt is returned truncated.
func (g *Generator) Generate(ctx context.Context, prompt string) string {
	for attempt := 0; attempt < g.attempts; attempt++ {
		text, err := g.client.GenerateContent(ctx, g.model, prompt, &g.cfg)
		if err == nil {
			if strings.TrimSpace(text) != "" {
				return text
			}
			return msgNoText
		}
		if IsSafetyBlocked(err) {
			g.logger.Warn("generation blocked by safety filters", zap.Error(err))
			return msgBlocked
		}
		if IsRetryable(err) {
			g.logger.Debug("generation rate limited, backing off",
				zap.Int("attempt", attempt), zap.Error(err))
			g.sleep(time.Duration(1+attempt) * time.Second)
			continue
		}
		if attempt == g.attempts-1 {
			return "Error from model: " + utils.Truncate(err.Error(), errTruncateLen)
		}
		g.sleep(time.Second)
	}
	return msgExhausted
}
