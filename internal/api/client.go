// Package api implements the HTTP client the chat UI uses to talk to
// the proxy.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/tidwall/gjson"

	apierrors "github.com/tmaia/bugreport/internal/errors"
	"github.com/tmaia/bugreport/internal/models"
)

// Client is the interface the TUI depends on for sending conversations
type Client interface {
	Send(history []models.ConversationEntry) (string, error)
}

// ProxyClient sends the accumulated conversation to the proxy and
// extracts the assistant reply. It is stateless between calls; the
// in-flight gate lives in the chat controller, not here.
type ProxyClient struct {
	httpClient tls_client.HttpClient
	endpoint   string
}

// ClientOption is a function that configures the client
type ClientOption func(*clientSettings)

type clientSettings struct {
	timeoutSeconds int
}

// WithTimeout sets the transport timeout in seconds
func WithTimeout(seconds int) ClientOption {
	return func(s *clientSettings) {
		s.timeoutSeconds = seconds
	}
}

// NewClient creates a new ProxyClient for the given proxy base URL
func NewClient(endpoint string, opts ...ClientOption) (*ProxyClient, error) {
	if endpoint == "" {
		endpoint = models.DefaultEndpoint
	}

	settings := &clientSettings{timeoutSeconds: 300}
	for _, opt := range opts {
		opt(settings)
	}

	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(settings.timeoutSeconds),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithNotFollowRedirects(),
	}

	httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	return &ProxyClient{
		httpClient: httpClient,
		endpoint:   strings.TrimRight(endpoint, "/"),
	}, nil
}

// Endpoint returns the proxy base URL
func (c *ProxyClient) Endpoint() string {
	return c.endpoint
}

// Send posts the full conversation history to the proxy and returns the
// assistant reply text. Non-2xx responses surface as UpstreamError with
// the message taken from the body's error field; network failures
// surface as TransportError. A 2xx response with no message content
// yields the literal fallback text, never an error.
func (c *ProxyClient) Send(history []models.ConversationEntry) (string, error) {
	payload, err := json.Marshal(models.ChatRequest{Messages: history})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := fhttp.NewRequest(fhttp.MethodPost, c.endpoint+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apierrors.NewTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apierrors.NewTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apierrors.NewUpstreamError(resp.StatusCode, errorMessage(body, resp.StatusCode))
	}

	content := gjson.GetBytes(body, "choices.0.message.content").String()
	if content == "" {
		return models.NoResponseFallback, nil
	}
	return content, nil
}

// errorMessage extracts the error field from a proxy error body, with a
// generic fallback when the body is not usable.
func errorMessage(body []byte, status int) string {
	if msg := gjson.GetBytes(body, "error").String(); msg != "" {
		return msg
	}
	return fmt.Sprintf("request failed with status %d", status)
}
