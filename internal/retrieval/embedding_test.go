package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateEmbedding(t *testing.T) {
	v := SimulateEmbedding("Tell me about your GraphRAG experience")
	require.Len(t, v, EmbeddingDimensions)
	for _, x := range v {
		assert.GreaterOrEqual(t, x, 0.0)
		assert.LessOrEqual(t, x, 1.0)
	}
	assert.Equal(t, v, SimulateEmbedding("Tell me about your GraphRAG experience"))
	assert.NotEqual(t, v, SimulateEmbedding("Tell me about your education"))
}

func TestSimulateEmbedding_KnownValues(t *testing.T) {
	assert.Equal(t, make([]float64, EmbeddingDimensions), SimulateEmbedding(""))

	// hash("a") == 97
	want := []float64{97, 48, 24, 12, 6, 3, 1, 0}
	v := SimulateEmbedding("a")
	for i := range v {
		assert.InDelta(t, want[i%8]/255, v[i], 1e-12, "index %d", i)
	}
}
