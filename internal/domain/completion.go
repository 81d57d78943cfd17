package domain

import "strings"

// CompletionRequest describes one call to the language-completion service.
// ImageURL, when set, attaches an image part to the user message (vision
// prompts). JSONMode asks the provider to emit a JSON object. Operation
// names the pipeline stage for logs and metrics.
type CompletionRequest struct {
	Operation    string
	SystemPrompt string
	UserPrompt   string
	ImageURL     string
	Temperature  float32
	MaxTokens    int
	JSONMode     bool
}

// StripCodeFences removes markdown code-fence wrapping (``` or ```json)
// from completion output. Providers add it even when asked not to, so every
// parse site strips before unmarshaling.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
