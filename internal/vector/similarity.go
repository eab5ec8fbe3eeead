// Package vector similarity helpers.
package vector

import "math"

// CosineSimilarity returns the cosine similarity of two vectors.
// Mismatched or empty vectors yield 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i] * b[i])
		normA += float64(a[i] * a[i])
		normB += float64(b[i] * b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// CosineDistance returns 1 - cosine similarity: 0 is identical, higher is farther.
func CosineDistance(a, b []float32) float64 {
	return 1 - CosineSimilarity(a, b)
}
