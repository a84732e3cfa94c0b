// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package vectorize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jeranaias/vectorize-tui/internal/logging"
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// DefaultEndpoint is the hosted vectorization service.
const DefaultEndpoint = "https://zucchini-truth-production.up.railway.app/vectorize"

// Response headers read opportunistically on success.
const (
	ImageTokenHeader = "X-Image-Token"
	EditorURLHeader  = "X-Editor-URL"
)

// ClientConfig holds configuration options for the conversion client.
type ClientConfig struct {
	// Endpoint is the full URL requests are POSTed to.
	Endpoint string

	// Timeout for the whole request (0 = rely on transport defaults).
	Timeout time.Duration

	// MaxResponseBytes caps the SVG body size (default: 32 MiB).
	MaxResponseBytes int64

	// Parameters are sent verbatim with every request.
	Parameters Parameters

	// Opener reads image bytes (default: FileOpener).
	Opener ImageOpener

	// Logger receives request lifecycle events (default: discard).
	Logger *logging.Logger
}

// DefaultClientConfig returns the default client configuration.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		Endpoint:         DefaultEndpoint,
		MaxResponseBytes: 32 << 20,
		Parameters:       DefaultParameters(),
		Opener:           FileOpener{},
		Logger:           logging.Nop(),
	}
}

// ConversionResult is a validated SVG returned by the service.
type ConversionResult struct {
	SVG        string
	ImageToken string // empty when the header was absent
	EditorURL  string // empty when the header was absent
}

// =============================================================================
// CLIENT
// =============================================================================

// Client uploads images to the vectorization service.
// It holds no per-request state; concurrent calls are independent and
// preventing overlapping conversions is the Controller's job.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	log        *logging.Logger

	mu       sync.RWMutex
	endpoint string
}

// NewClient creates a client, filling zero fields from DefaultClientConfig.
func NewClient(config *ClientConfig) *Client {
	defaults := DefaultClientConfig()
	if config == nil {
		config = defaults
	}
	if config.Endpoint == "" {
		config.Endpoint = defaults.Endpoint
	}
	if config.MaxResponseBytes <= 0 {
		config.MaxResponseBytes = defaults.MaxResponseBytes
	}
	if config.Parameters == (Parameters{}) {
		config.Parameters = defaults.Parameters
	}
	if config.Opener == nil {
		config.Opener = defaults.Opener
	}
	if config.Logger == nil {
		config.Logger = defaults.Logger
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		log:        config.Logger.WithOperation("convert"),
		endpoint:   config.Endpoint,
	}
}

// Endpoint returns the current endpoint.
func (c *Client) Endpoint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.endpoint
}

// SetEndpoint changes the endpoint used by subsequent conversions.
func (c *Client) SetEndpoint(endpoint string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endpoint = endpoint
}

// Convert uploads img and returns the SVG. Every error is a *ConversionError.
func (c *Client) Convert(ctx context.Context, img SelectedImage) (*ConversionResult, error) {
	endpoint := c.Endpoint()

	req, err := BuildRequest(ctx, endpoint, img, c.config.Parameters, c.config.Opener)
	if err != nil {
		if errors.Is(err, ErrInvalidEndpoint) {
			return nil, transportError(err)
		}
		return nil, imageReadError(err)
	}

	log := c.log.WithRequest(req.Header.Get(RequestIDHeader))
	log.Info().
		Str("endpoint", endpoint).
		Str("file", img.Name).
		Str("mime", img.MIMEType).
		Msg("sending conversion request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("conversion request failed")
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	body, err := c.readBody(resp.Body)
	if errors.Is(err, ErrResponseTooLarge) {
		log.Warn().Err(err).Int("status", resp.StatusCode).Msg("response rejected")
		return nil, &ConversionError{Kind: KindInvalidPayload, Message: err.Error(), StatusCode: resp.StatusCode, Cause: err}
	}
	if err != nil {
		log.Error().Err(err).Int("status", resp.StatusCode).Msg("failed to read response")
		return nil, transportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := serverErrorMessage(resp.StatusCode, body)
		log.Warn().
			Int("status", resp.StatusCode).
			Str("body", truncate(string(body), 512)).
			Msg("service returned error")
		return nil, &ConversionError{Kind: KindServer, Message: msg, StatusCode: resp.StatusCode}
	}

	svg := string(body)
	if !IsSVG(svg) {
		log.Warn().Int("status", resp.StatusCode).Int("bytes", len(body)).Msg("response is not SVG")
		return nil, &ConversionError{Kind: KindInvalidPayload, Message: InvalidSVGMessage, StatusCode: resp.StatusCode}
	}

	result := &ConversionResult{
		SVG:        svg,
		ImageToken: resp.Header.Get(ImageTokenHeader),
		EditorURL:  resp.Header.Get(EditorURLHeader),
	}
	log.Info().
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Bool("token", result.ImageToken != "").
		Dur("elapsed", time.Since(start)).
		Msg("conversion successful")
	return result, nil
}

func (c *Client) readBody(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, c.config.MaxResponseBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > c.config.MaxResponseBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, c.config.MaxResponseBytes)
	}
	return body, nil
}

// =============================================================================
// RESPONSE INTERPRETATION
// =============================================================================

// IsSVG reports whether content carries an SVG root element marker.
func IsSVG(content string) bool {
	return strings.Contains(content, "<svg")
}

// serverErrorMessage picks the display message for a non-2xx response:
// JSON message, then JSON error, then the raw body, then "Error <status>".
// A JSON body with neither field yields a generic message.
func serverErrorMessage(status int, body []byte) string {
	if json.Valid(body) {
		var payload map[string]interface{}
		if err := json.Unmarshal(body, &payload); err == nil {
			for _, key := range []string{"message", "error"} {
				if text, ok := displayValue(payload[key]); ok {
					return text
				}
			}
		}
		return "Conversion failed"
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fmt.Sprintf("Error %d", status)
}

// displayValue renders a JSON message field. Empty strings, zero, false and
// null count as absent.
func displayValue(v interface{}) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, val != ""
	case bool:
		return "true", val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), val != 0
	default:
		return fmt.Sprint(val), true
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
