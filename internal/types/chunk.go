package types

// Chunk is a short, self-contained piece of profile text used as retrieval context
type Chunk struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Source string `json:"source"`
}

// ScoredChunk pairs a chunk with its relevance score for a single question
type ScoredChunk struct {
	Chunk Chunk
	Score int
}
