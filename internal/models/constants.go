package models

// Upstream completion API parameters. The model and sampling values are
// fixed: the proxy always forwards the same configuration.
const (
	DefaultUpstreamURL = "https://openrouter.ai/api/v1/chat/completions"
	DefaultModel       = "allenai/molmo-2-8b:free"
	MaxTokens          = 2048
	Temperature        = 0.3
)

// MaxImageBytes is the size limit for attached screenshots (10 MiB)
const MaxImageBytes = 10 * 1024 * 1024

// NoResponseFallback is rendered when the upstream reply carries no
// message content. A permissive default, not an error.
const NoResponseFallback = "No response received."

// DefaultEndpoint is the proxy base URL the client talks to
const DefaultEndpoint = "http://localhost:8080"
