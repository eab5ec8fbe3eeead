package models

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is one entry in a session's chat history. Append-only per
// session; cleared wholesale on reset.
type ConversationTurn struct {
	Role     string   `json:"role"`
	Content  string   `json:"content"`
	Sources  []Source `json:"sources,omitempty"`
	HasDocs  bool     `json:"has_docs,omitempty"`
	DocCount int      `json:"doc_count,omitempty"`
}
