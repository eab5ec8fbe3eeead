package embedding

import (
	"context"

	"go.uber.org/zap"
)

// Fallback wraps an Embedder with the degrade-not-fail policy: on any failure
// it returns a zero vector of the expected dimensionality instead of an error,
// so one bad chunk does not abort a whole document's ingestion. Zero embeddings
// simply fail to match anything at query time.
type Fallback struct {
	inner  Embedder
	logger *zap.Logger
}

// NewFallback wraps inner with zero-vector fallback. logger may be nil.
func NewFallback(inner Embedder, logger *zap.Logger) *Fallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fallback{inner: inner, logger: logger}
}

// Embed returns the inner embedding, or a zero vector if the inner call fails.
func (f *Fallback) Embed(ctx context.Context, text string, task Task) ([]float32, error) {
	vec, err := f.inner.Embed(ctx, text, task)
	if err != nil {
		f.logger.Warn("embedding failed, using zero vector", zap.Error(err))
		return make([]float32, f.inner.Dimensions()), nil
	}
	return vec, nil
}

// Dimensions returns the inner embedder's dimension.
func (f *Fallback) Dimensions() int {
	return f.inner.Dimensions()
}
