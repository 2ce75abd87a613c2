// Package assistant sends prompts to Kagi Assistant and folds its
// "tag:payload" stream into the thread and reply.
package assistant

// Thread is the conversation a prompt belongs to.
type Thread struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	ExpiresAt string `json:"expires_at"`
	Saved     bool   `json:"saved"`
	Shared    bool   `json:"shared"`
}

// Message is one prompt and its reply. Reply holds HTML and MD markdown;
// either may be absent while the message is still generating.
type Message struct {
	ID        string  `json:"id"`
	CreatedAt string  `json:"created_at"`
	State     string  `json:"state"`
	Prompt    string  `json:"prompt"`
	Reply     *string `json:"reply"`
	MD        *string `json:"md"`
}

// Result is the outcome of one prompt.
type Result struct {
	Thread  Thread  `json:"thread"`
	Message Message `json:"message"`
}

// tokens is the payload of a tokens.json record. Text is the whole reply so
// far, not a delta.
type tokens struct {
	Text string `json:"text"`
	ID   string `json:"id"`
}
