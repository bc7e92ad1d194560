package astroApi

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"
)

const (
	GetDailySky     = "data/sky/daily"
	GetNatalChart   = "charts/natal"
	GetTransits     = "charts/transits"
	GetLunarReturn  = "charts/lunar-return"
	GetSolarReturn  = "charts/solar-return"
	defaultTimeout  = 30 * time.Second
	defaultCountry  = "US"
	bodyPreviewSize = 200
)

// APIError ответ API со статусом, отличным от 200, или status != success
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("astro API error [status=%d]: %s", e.StatusCode, e.Message)
}

// truncateString обрезает строку до указанной длины
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Client - клиент для работы с астрологическим API
type Client struct {
	cfg        *Config
	HTTPClient *http.Client
	Log        *slog.Logger
}

// NewClient создаёт новый клиент для работы с астро-API
func NewClient(cfg *Config, log *slog.Logger) *Client {
	transport := &http.Transport{}

	if cfg.ShouldSkipSSL() {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		cfg: cfg,
		HTTPClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		Log: log,
	}
}

// DefaultCountry код страны для места рождения, где он не указан
func (c *Client) DefaultCountry() string {
	if code := strings.ToUpper(strings.TrimSpace(c.cfg.DefaultCountry)); code != "" {
		return code
	}
	return defaultCountry
}

// buildURL собирает полный URL из BaseURL, ApiVersion и endpoint
func (c *Client) buildURL(endpoint string) string {
	baseURL := strings.TrimSuffix(c.cfg.BaseURL, "/")
	return baseURL + "/" + path.Join(c.cfg.ApiVersion, endpoint)
}

// setHeaders устанавливает стандартные заголовки для запросов к API
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.cfg.ApiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.ApiKey)
	}
}

func (c *Client) GetDailySky(ctx context.Context, req DailySkyRequest) (*DailySkyData, error) {
	return post[DailySkyData](ctx, c, GetDailySky, req)
}

func (c *Client) GetTransits(ctx context.Context, req TransitsRequest) (*TransitsData, error) {
	return post[TransitsData](ctx, c, GetTransits, req)
}

func (c *Client) GetNatalChart(ctx context.Context, req NatalChartRequest) (*ChartData, error) {
	return post[ChartData](ctx, c, GetNatalChart, req)
}

func (c *Client) GetLunarReturn(ctx context.Context, req ReturnRequest) (*ChartData, error) {
	return post[ChartData](ctx, c, GetLunarReturn, req)
}

func (c *Client) GetSolarReturn(ctx context.Context, req ReturnRequest) (*ChartData, error) {
	return post[ChartData](ctx, c, GetSolarReturn, req)
}

// post отправляет JSON и разбирает конверт ответа.
// Не-200 и status != success возвращаются как *APIError.
func post[T any](ctx context.Context, c *Client, endpoint string, payload any) (*T, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", endpoint, err)
	}

	url := c.buildURL(endpoint)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", endpoint, err)
	}

	c.setHeaders(httpReq)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do %s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}

	rawJSON := string(body)

	// Ошибка внешнего API - Debug, решение о логировании выше
	if resp.StatusCode != http.StatusOK {
		c.Log.Debug("astro API returned non-200 status",
			"endpoint", endpoint,
			"status_code", resp.StatusCode,
			"body_preview", truncateString(rawJSON, bodyPreviewSize),
		)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: truncateString(rawJSON, 500)}
	}

	var envelope Envelope[T]
	if err := json.Unmarshal(body, &envelope); err != nil {
		c.Log.Debug("failed to unmarshal astro API response",
			"endpoint", endpoint,
			"error", err,
			"body_preview", truncateString(rawJSON, bodyPreviewSize),
		)
		return nil, fmt.Errorf("astro API unmarshal failed [endpoint=%s]: %w", endpoint, err)
	}

	if envelope.Status != "" && envelope.Status != "success" {
		return nil, &APIError{
			StatusCode: envelope.Code,
			Message:    fmt.Sprintf("status=%s message=%s request_id=%s", envelope.Status, envelope.Message, envelope.RequestID),
		}
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("astro API returned empty data [endpoint=%s]", endpoint)
	}

	return envelope.Data, nil
}
