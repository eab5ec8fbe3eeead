package models

// ChunkMeta is the metadata stored alongside each indexed chunk.
// Page is kept as a string to match what citations display.
type ChunkMeta struct {
	DocID string `json:"doc_id"`
	Page  string `json:"page"`
	File  string `json:"file"`
}

// SearchResult is a single retrieval hit. Ephemeral, produced per query.
// Distance is cosine distance: lower is closer.
type SearchResult struct {
	Text     string    `json:"text"`
	Meta     ChunkMeta `json:"meta"`
	Distance float64   `json:"distance"`
}

// Source is a deduplicated file+page citation attached to an answer.
type Source struct {
	File string `json:"file"`
	Page string `json:"page"`
}

// Answer is the strict-mode result: an answer grounded only in supplied context.
type Answer struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// SmartAnswer is the hybrid-mode result. HasDocs reports whether retrieval
// found anything; DocCount is the number of retrieved passages.
type SmartAnswer struct {
	Answer   string   `json:"answer"`
	Sources  []Source `json:"sources"`
	HasDocs  bool     `json:"has_docs"`
	DocCount int      `json:"doc_count"`
}
