package domain

import "context"

// VectorEncoder turns text into embedding vectors for the passage index.
type VectorEncoder interface {
	Encode(ctx context.Context, texts []string) ([][]float32, error)
	Version() string
}
