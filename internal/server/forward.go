package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/tmaia/bugreport/internal/models"
)

// incomingMessage is one message as received from the client. Content
// stays raw: only well-formedness is validated here, never a schema.
type incomingMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

// ChatRequest is the request body for POST /api/chat.
type ChatRequest struct {
	Messages []incomingMessage `json:"messages"`
}

// ErrorResponse is the error body returned for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// upstreamMessage is one message in the composed upstream payload
type upstreamMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

// completionRequest is the composed upstream payload with the fixed
// model and sampling parameters attached.
type completionRequest struct {
	Model       string            `json:"model"`
	Messages    []upstreamMessage `json:"messages"`
	MaxTokens   int               `json:"max_tokens"`
	Temperature float64           `json:"temperature"`
}

// handleChat forwards the conversation to the upstream completion
// endpoint with the secret credential attached, and relays the upstream
// body verbatim on success. No retries, no caching: at-most-once from
// the proxy's perspective.
func (s *Server) handleChat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON in request body"})
	}

	if len(req.Messages) == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No messages provided in request"})
	}

	apiKey := s.credential()
	if apiKey == "" {
		s.logger.Error("upstream credential missing")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "API key not configured. Please set OPENROUTER_API_KEY environment variable.",
		})
	}

	payload, err := json.Marshal(composePayload(req.Messages))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}

	upstreamReq, err := http.NewRequestWithContext(
		c.Request().Context(), http.MethodPost, s.config.UpstreamURL, bytes.NewReader(payload))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
	upstreamReq.Header.Set("Content-Type", "application/json")
	upstreamReq.Header.Set("Authorization", "Bearer "+apiKey)
	upstreamReq.Header.Set("HTTP-Referer", s.config.SiteURL)
	upstreamReq.Header.Set("X-Title", s.config.AppTitle)

	resp, err := s.httpClient.Do(upstreamReq)
	if err != nil {
		if isTimeout(err) {
			s.logger.Warn("upstream request timed out")
			return c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "Request to AI service timed out"})
		}
		s.logger.Warn("upstream request failed", zap.Error(err))
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Failed to connect to AI service"})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Warn("reading upstream response failed", zap.Error(err))
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Invalid response from AI service"})
	}

	if resp.StatusCode != http.StatusOK {
		detail := upstreamErrorDetail(body)
		s.logger.Warn("upstream error",
			zap.Int("status", resp.StatusCode),
			zap.String("detail", detail),
		)
		return c.JSON(resp.StatusCode, ErrorResponse{
			Error: fmt.Sprintf("AI service error: %s", detail),
		})
	}

	if !json.Valid(body) {
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Invalid response from AI service"})
	}

	// Relay the upstream body verbatim
	return c.JSONBlob(http.StatusOK, body)
}

// composePayload prepends the system instruction and normalizes each
// message so content is always an ordered part array on the wire.
func composePayload(messages []incomingMessage) completionRequest {
	system, _ := json.Marshal(systemPrompt)

	out := make([]upstreamMessage, 0, len(messages)+1)
	out = append(out, upstreamMessage{
		Role:    models.RoleSystem,
		Content: system,
	})

	for _, msg := range messages {
		role := msg.Role
		if role == "" {
			role = models.RoleUser
		}
		out = append(out, upstreamMessage{
			Role:    role,
			Content: normalizeContent(msg.Content),
		})
	}

	return completionRequest{
		Model:       models.DefaultModel,
		Messages:    out,
		MaxTokens:   models.MaxTokens,
		Temperature: models.Temperature,
	}
}

// normalizeContent keeps part arrays as-is and wraps anything else
// (typically a bare string) into a single text part.
func normalizeContent(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return raw
	}

	var text string
	if err := json.Unmarshal(trimmed, &text); err != nil {
		text = string(trimmed)
	}

	wrapped, _ := json.Marshal([]models.ContentPart{models.NewTextPart(text)})
	return wrapped
}

// upstreamErrorDetail extracts a human-readable error from an upstream
// failure body.
func upstreamErrorDetail(body []byte) string {
	if msg := gjson.GetBytes(body, "error.message").String(); msg != "" {
		return msg
	}
	if msg := gjson.GetBytes(body, "error").String(); msg != "" {
		return msg
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return "No error details"
	}
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}

// isTimeout reports whether err is a deadline-style failure
func isTimeout(err error) bool {
	type timeout interface{ Timeout() bool }

	for e := err; e != nil; e = unwrap(e) {
		if t, ok := e.(timeout); ok && t.Timeout() {
			return true
		}
	}
	return strings.Contains(err.Error(), "context deadline exceeded")
}

func unwrap(err error) error {
	u, ok := err.(interface{ Unwrap() error })
	if !ok {
		return nil
	}
	return u.Unwrap()
}
