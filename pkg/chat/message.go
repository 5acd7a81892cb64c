// Package chat provides internal representations of chat-completion API
// requests and responses, plus the HTTP client that speaks to the hosted
// completion provider.
package chat

// Roles a message may carry. The endpoint only ever accepts user and
// assistant turns from callers; system is reserved for the persona prompt.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    string `json:"role"`    // "system", "user", "assistant"
	Content string `json:"content"` // The message content
}

// ValidRole reports whether role is one a caller may supply in history.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAssistant
}
