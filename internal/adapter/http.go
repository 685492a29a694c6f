package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
	"github.com/go-resty/resty/v2"
)

const healthPath = "/api/health"

type httpGateway struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	now    func() time.Time
	logger *logger.Logger
}

// NewHTTPGateway constructs an HTTP/REST implementation of [Gateway].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and
// request timeout. A token from configuration is installed right away.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPGateway(adapterCfg config.Adapter, logger *logger.Logger) (Gateway, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	g := &httpGateway{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		now:    time.Now,
		logger: logger,
	}
	g.SetToken(adapterCfg.Token)

	return g, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (g *httpGateway) SetToken(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.token = strings.TrimSpace(token)
}

func (g *httpGateway) Token() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.token
}

// Get implements [Gateway].
func (g *httpGateway) Get(ctx context.Context, path string, query url.Values) (models.GetResponse, error) {
	req, err := g.authedRequest(ctx)
	if err != nil {
		return models.GetResponse{}, err
	}
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}

	resp, err := req.Get(path)
	if err != nil {
		return models.GetResponse{}, fmt.Errorf("get %s: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.GetResponse{}, err
	}

	var out models.GetResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return models.GetResponse{}, fmt.Errorf("%w: get %s: %v", ErrDecodeResponse, path, err)
	}

	return out, nil
}

// Post implements [Gateway].
func (g *httpGateway) Post(ctx context.Context, path string, body any) (models.PostResponse, error) {
	req, err := g.authedRequest(ctx)
	if err != nil {
		return models.PostResponse{}, err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(path)
	if err != nil {
		return models.PostResponse{}, fmt.Errorf("post %s: %w", path, err)
	}

	return decodePost(resp, path)
}

// UploadFile implements [Gateway].
func (g *httpGateway) UploadFile(ctx context.Context, path, filePath string, fields map[string]string) (models.PostResponse, error) {
	req, err := g.authedRequest(ctx)
	if err != nil {
		return models.PostResponse{}, err
	}

	resp, err := req.
		SetFile("file", filePath).
		SetFormData(fields).
		Post(path)
	if err != nil {
		return models.PostResponse{}, fmt.Errorf("upload %s: %w", filePath, err)
	}

	return decodePost(resp, path)
}

// Ping implements [Gateway]. The health endpoint is unauthenticated.
func (g *httpGateway) Ping(ctx context.Context) error {
	resp, err := g.client.R().SetContext(ctx).Get(healthPath)
	if err != nil {
		g.logger.Debug().Err(err).Msg("remote api unreachable")
		return fmt.Errorf("ping: %w", err)
	}

	return mapHTTPError(resp)
}

func (g *httpGateway) authedRequest(ctx context.Context) (*resty.Request, error) {
	req := g.client.R().SetContext(ctx)

	token := g.Token()
	if token == "" {
		return req, nil
	}
	if utils.TokenExpired(token, g.now()) {
		return nil, ErrTokenExpired
	}

	return req.SetAuthToken(token), nil
}

func decodePost(resp *resty.Response, path string) (models.PostResponse, error) {
	if err := mapHTTPError(resp); err != nil {
		return models.PostResponse{}, err
	}

	var out models.PostResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return models.PostResponse{}, fmt.Errorf("%w: post %s: %v", ErrDecodeResponse, path, err)
	}

	return out, nil
}
