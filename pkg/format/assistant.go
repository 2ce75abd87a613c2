package format

import (
	"github.com/papercomputeco/kagi/pkg/assistant"
	"github.com/papercomputeco/kagi/pkg/htmltext"
)

// Response extracts the answer of r without the reasoning block. The
// markdown reply is preferred; the HTML reply is stripped to text.
func Response(r *assistant.Result) string {
	m := r.Message
	if m.MD != nil && *m.MD != "" {
		return htmltext.StripDetails(*m.MD)
	}
	if m.Reply != nil && *m.Reply != "" {
		return htmltext.StripTags(htmltext.StripDetails(*m.Reply))
	}
	return ""
}

type answer struct {
	*assistant.Result
	Response string `json:"response"`
}

// Assistant renders r in f.
func Assistant(f Format, r *assistant.Result) (string, error) {
	switch f {
	case JSON:
		return AssistantJSON(r)
	case MD:
		return AssistantMarkdown(r), nil
	case CSV:
		return AssistantCSV(r)
	default:
		return "", unsupported(f)
	}
}

// AssistantJSON renders the raw thread and message plus the extracted
// response.
func AssistantJSON(r *assistant.Result) (string, error) {
	return toJSON(answer{Result: r, Response: Response(r)})
}

// AssistantMarkdown is the extracted response, or nothing when the message
// carries no reply.
func AssistantMarkdown(r *assistant.Result) string {
	if resp := Response(r); resp != "" {
		return resp + "\n"
	}
	return ""
}

// AssistantCSV renders one row of thread, message, prompt, and response.
func AssistantCSV(r *assistant.Result) (string, error) {
	return csvRows(
		[]string{"thread_id", "message_id", "prompt", "response"},
		[][]string{{r.Thread.ID, r.Message.ID, r.Message.Prompt, Response(r)}},
	)
}
