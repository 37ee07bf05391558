// Package dataset assembles resolved snippets and selected queries into the
// relational eval dataset and persists it as a single JSON artifact.
package dataset

// Chunk is a resolved, non-empty code snippet tied to exactly one query.
// IDs are stable for the lifetime of one run: q_<queryIndex>_c<sequence>.
type Chunk struct {
	ID            string
	QueryID       string
	Relevance     int
	SourceLocator string
	Code          string
}

// EvalQuery ties a selected query to its resolved chunks and ground truth.
// RelevantIDs is always a subset of ChunkIDs.
type EvalQuery struct {
	ID              string
	Query           string
	RelevantIDs     []string
	RelevanceScores map[string]int
	ChunkIDs        []string
}

// EmbeddedChunk is the serialized chunk shape. The source locator is kept
// out of the artifact; only the resolved code travels downstream.
type EmbeddedChunk struct {
	ID        string    `json:"id"`
	QueryID   string    `json:"query_id"`
	Relevance int       `json:"relevance"`
	Code      string    `json:"code"`
	Embedding []float32 `json:"embedding"`
}

// EmbeddedQuery is the serialized query shape.
type EmbeddedQuery struct {
	ID              string         `json:"id"`
	Query           string         `json:"query"`
	RelevantIDs     []string       `json:"relevantIds"`
	RelevanceScores map[string]int `json:"relevanceScores"`
	ChunkIDs        []string       `json:"chunkIds"`
	Embedding       []float32      `json:"embedding"`
}

// Dataset is the persisted artifact.
type Dataset struct {
	Model       string          `json:"model"`
	Dims        int             `json:"dims"`
	GeneratedAt string          `json:"generatedAt"`
	Dataset     string          `json:"dataset"`
	DatasetURL  string          `json:"datasetUrl"`
	QueryCount  int             `json:"queryCount"`
	ChunkCount  int             `json:"chunkCount"`
	Chunks      []EmbeddedChunk `json:"chunks"`
	Queries     []EmbeddedQuery `json:"queries"`
}
