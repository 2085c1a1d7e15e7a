package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"ppttheme/internal/models"
)

// SettingsPath is the endpoint path that receives presentation documents
const SettingsPath = "/api/ppttheme/settings"

// DefaultGatewayTimeout bounds a single save
const DefaultGatewayTimeout = 30 * time.Second

// SettingsGateway sends a validated document to the remote settings endpoint
type SettingsGateway interface {
	SaveSettings(ctx context.Context, doc *models.PresentationSettings) (*models.APIResponse, error)
}

// HTTPGateway posts documents to the settings endpoint over HTTP. Only one
// save may be in flight at a time; saves are never retried.
type HTTPGateway struct {
	client   *http.Client
	endpoint string
	timeout  time.Duration
	inFlight atomic.Bool
	logger   *zap.Logger
}

// NewHTTPGateway creates a gateway for the service at baseURL. Cookies set by
// the service are kept and sent back on later saves.
func NewHTTPGateway(baseURL string, timeout time.Duration, logger *zap.Logger) (*HTTPGateway, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("gateway base URL is required")
	}
	if timeout <= 0 {
		timeout = DefaultGatewayTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &HTTPGateway{
		client:   &http.Client{Jar: jar},
		endpoint: strings.TrimRight(baseURL, "/") + SettingsPath,
		timeout:  timeout,
		logger:   logger,
	}, nil
}

// InFlight reports whether a save is running
func (g *HTTPGateway) InFlight() bool {
	return g.inFlight.Load()
}

// SaveSettings validates doc and posts it. A *ValidationError is returned
// without contacting the endpoint; transport failures and non-2xx answers
// are returned as *TransportError.
func (g *HTTPGateway) SaveSettings(ctx context.Context, doc *models.PresentationSettings) (*models.APIResponse, error) {
	if err := ValidateSettings(doc); err != nil {
		return nil, err
	}
	if !g.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSaveInFlight
	}
	defer g.inFlight.Store(false)

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warn("Settings save failed", zap.String("endpoint", g.endpoint), zap.Error(err))
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.logger.Warn("Settings save rejected", zap.String("endpoint", g.endpoint), zap.Int("status", resp.StatusCode))
		return nil, &TransportError{StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to read response: %w", err)}
	}
	if !json.Valid(raw) {
		return nil, &TransportError{Err: errors.New("response is not valid JSON")}
	}

	// The acknowledgment shape is expected but not enforced.
	var ack models.APIResponse
	if err := json.Unmarshal(raw, &ack); err != nil {
		ack = models.APIResponse{Success: true, Data: raw}
	}

	g.logger.Info("Settings saved", zap.String("endpoint", g.endpoint), zap.Int("slides", len(doc.Slides)))
	return &ack, nil
}
