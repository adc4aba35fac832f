package retrieval

import "unicode/utf16"

// EmbeddingDimensions is the length of the visualization vector
const EmbeddingDimensions = 16

// SimulateEmbedding derives a deterministic 16-element vector from a 32-bit string hash of
// text. It only feeds the client-side visualization and carries no semantic meaning.
func SimulateEmbedding(text string) []float64 {
	var hash int32
	for _, unit := range utf16.Encode([]rune(text)) {
		hash = (hash << 5) - hash + int32(unit)
	}

	vector := make([]float64, EmbeddingDimensions)
	for i := range vector {
		vector[i] = float64((hash>>uint(i%8))&0xff) / 255
	}
	return vector
}
