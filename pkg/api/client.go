// Package api provides a reusable SDK for the dealer portal admin REST API.
//
// Architecture:
//
// This is an **API SDK**, not just a "dumb" HTTP client. It provides:
//   - HTTP client with retry (idempotent GET only), rate limiting, and error classification
//   - Session handling through a cookie jar (backend auth is cookie-based)
//   - Structured decoding of the portal's error envelope into *APIError
//   - Multipart upload and binary (xlsx) download helpers
//
// Usage pattern:
//   - pkg/api - reusable SDK (can be used in any project)
//   - pkg/query - generic list/detail resource layer on top of the SDK
//   - internal/ui - TUI screens driving both
//
// Design rationale:
// Mutations (POST/PUT/PATCH/DELETE) are never auto-retried: a failed
// create/update must be resubmitted explicitly by the operator. Only GET
// requests go through the retry loop.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/ilkoid/partsdesk/pkg/config"
	"golang.org/x/time/rate"
)

// HTTPClient интерфейс для выполнения HTTP запросов.
//
// Позволяет мокировать HTTP клиент в тестах (Rule 9).
// Стандартный *http.Client реализует этот интерфейс.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	baseURL       string
	httpClient    HTTPClient // Интерфейс вместо конкретного типа для testability
	retryAttempts int        // Количество retry попыток (только GET)
	rateLimit     int        // Запросов в минуту
	burst         int

	mu       sync.RWMutex
	limiters map[string]*rate.Limiter // endpoint ID → limiter
}

// NewFromConfig создает новый клиент из конфигурации.
//
// Параметры:
//   - cfg: Конфигурация API с настройками timeout/retry/rate limit
//
// Реальный http.Client получает cookie jar — backend авторизует по
// session cookie, который выставляется при логине.
// Поля с нулевыми значениями используют дефолтные значения через GetDefaults().
func NewFromConfig(cfg config.APIConfig) (*Client, error) {
	cfg = cfg.GetDefaults()

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("api.base_url is required")
	}

	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid api.timeout format: %w", err)
	}

	// Cookie jar для session cookie
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	return &Client{
		baseURL:       cfg.BaseURL,
		retryAttempts: cfg.RetryAttempts,
		rateLimit:     cfg.RateLimit,
		burst:         cfg.BurstLimit,
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		limiters: make(map[string]*rate.Limiter),
	}, nil
}

// NewWithHTTPClient создает клиент с кастомным HTTPClient (для тестов).
func NewWithHTTPClient(baseURL string, httpClient HTTPClient) *Client {
	return &Client{
		baseURL:       baseURL,
		retryAttempts: 1,
		rateLimit:     6000, // тесты не должны упираться в limiter
		burst:         100,
		httpClient:    httpClient,
		limiters:      make(map[string]*rate.Limiter),
	}
}

// BaseURL возвращает базовый URL API.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// getOrCreateLimiter возвращает существующий limiter для endpointID или создаёт новый.
func (c *Client) getOrCreateLimiter(endpointID string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if limiter, exists := c.limiters[endpointID]; exists {
		return limiter
	}

	// rateLimit в запросах/минуту → rate.Limit в запросах/секунду
	ratePerSec := float64(c.rateLimit) / 60.0
	limiter := rate.NewLimiter(rate.Limit(ratePerSec), c.burst)
	c.limiters[endpointID] = limiter

	return limiter
}

// httpRequest описывает параметры HTTP запроса.
type httpRequest struct {
	method      string
	url         string
	body        []byte
	contentType string
}

// doRequest выполняет HTTP запрос с rate limiting и (для GET) retry логикой.
//
// Любой не-2xx ответ декодируется в *APIError; если тело не парсится
// (прокси, HTML страница ошибки), возвращается APIError только со статусом —
// unknown коды всегда имеют безопасный fallback.
func (c *Client) doRequest(ctx context.Context, endpointID string, req httpRequest, dest interface{}) error {
	limiter := c.getOrCreateLimiter(endpointID)

	attempts := 1
	if req.method == http.MethodGet {
		attempts = c.retryAttempts
	}

	var lastErr error

	for i := 0; i < attempts; i++ {
		// Ждем разрешения от лимитера (блокирует горутину, если превысили лимит)
		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait: %w", err)
		}

		var bodyReader io.Reader
		if req.body != nil {
			bodyReader = bytes.NewReader(req.body)
		}

		httpReq, err := http.NewRequestWithContext(ctx, req.method, req.url, bodyReader)
		if err != nil {
			return err
		}

		httpReq.Header.Set("Accept", "application/json")
		if req.contentType != "" {
			httpReq.Header.Set("Content-Type", req.contentType)
		}

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			lastErr = err
			if req.method == http.MethodGet {
				continue // Сетевая ошибка, пробуем еще (только GET)
			}
			return fmt.Errorf("http request failed: %w", err)
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		// Обработка 429 (Too Many Requests)
		if resp.StatusCode == http.StatusTooManyRequests && i < attempts-1 {
			retryAfter := 1 * time.Second // Дефолт
			if s := resp.Header.Get("Retry-After"); s != "" {
				if sec, err := strconv.Atoi(s); err == nil {
					retryAfter = time.Duration(sec) * time.Second
				}
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryAfter):
				continue
			}
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return decodeAPIError(resp.StatusCode, body)
		}

		if dest == nil {
			return nil // Вызывающему тело не нужно (delete)
		}

		if err := json.Unmarshal(body, dest); err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return nil // Успех
	}

	return fmt.Errorf("max retries exceeded, last error: %v", lastErr)
}

// decodeAPIError парсит тело ошибки backend в *APIError.
func decodeAPIError(status int, body []byte) error {
	apiErr := &APIError{Status: status}
	if len(body) > 0 {
		// Тело может быть не-JSON (HTML от прокси) — тогда оставляем пустой APIError
		_ = json.Unmarshal(body, apiErr)
	}
	return apiErr
}

// buildURL собирает полный URL из path и query параметров.
func (c *Client) buildURL(path string, params url.Values) (string, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}
	if params != nil {
		u.RawQuery = params.Encode()
	}
	return u.String(), nil
}

// Get выполняет GET запрос с поддержкой Rate Limit и Retries.
//
// Параметры:
//   - ctx: контекст для отмены
//   - endpointID: идентификатор endpoint для выбора limiter (например, "dealers_list")
//   - path: путь к endpoint (например, "/user/dealer")
//   - params: query параметры (может быть nil)
//   - dest: указатель на структуру для unmarshal результата
func (c *Client) Get(ctx context.Context, endpointID string, path string, params url.Values, dest interface{}) error {
	u, err := c.buildURL(path, params)
	if err != nil {
		return err
	}

	return c.doRequest(ctx, endpointID, httpRequest{
		method: http.MethodGet,
		url:    u,
	}, dest)
}

// Post выполняет POST запрос (без retry — мутации не повторяются автоматически).
func (c *Client) Post(ctx context.Context, endpointID string, path string, body interface{}, dest interface{}) error {
	return c.sendJSON(ctx, endpointID, http.MethodPost, path, body, dest)
}

// Put выполняет PUT запрос (без retry).
func (c *Client) Put(ctx context.Context, endpointID string, path string, body interface{}, dest interface{}) error {
	return c.sendJSON(ctx, endpointID, http.MethodPut, path, body, dest)
}

// Patch выполняет PATCH запрос (без retry).
func (c *Client) Patch(ctx context.Context, endpointID string, path string, body interface{}, dest interface{}) error {
	return c.sendJSON(ctx, endpointID, http.MethodPatch, path, body, dest)
}

// Delete выполняет DELETE запрос (без retry).
func (c *Client) Delete(ctx context.Context, endpointID string, path string) error {
	u, err := c.buildURL(path, nil)
	if err != nil {
		return err
	}

	return c.doRequest(ctx, endpointID, httpRequest{
		method: http.MethodDelete,
		url:    u,
	}, nil)
}

// sendJSON сериализует body и выполняет запрос с JSON телом.
func (c *Client) sendJSON(ctx context.Context, endpointID string, method string, path string, body interface{}, dest interface{}) error {
	u, err := c.buildURL(path, nil)
	if err != nil {
		return err
	}

	var bodyJSON []byte
	if body != nil {
		bodyJSON, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
	}

	return c.doRequest(ctx, endpointID, httpRequest{
		method:      method,
		url:         u,
		body:        bodyJSON,
		contentType: "application/json",
	}, dest)
}

// Blob — скачанный бинарный файл (xlsx экспорт).
type Blob struct {
	Data     []byte
	Filename string // Из Content-Disposition, может быть ""
}

// GetBlob скачивает бинарный ответ (экспорт заказов, ошибок импорта).
//
// Blob endpoints не ретраятся: это дорогие запросы, генерирующие файл
// на стороне backend.
func (c *Client) GetBlob(ctx context.Context, endpointID string, path string, params url.Values) (*Blob, error) {
	u, err := c.buildURL(path, params)
	if err != nil {
		return nil, err
	}
	return c.fetchBlob(ctx, endpointID, http.MethodGet, u, nil, "")
}

// PostBlob выполняет POST и скачивает бинарный ответ (шаблон импорта).
func (c *Client) PostBlob(ctx context.Context, endpointID string, path string, body interface{}) (*Blob, error) {
	u, err := c.buildURL(path, nil)
	if err != nil {
		return nil, err
	}

	var bodyJSON []byte
	if body != nil {
		bodyJSON, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
	}

	return c.fetchBlob(ctx, endpointID, http.MethodPost, u, bodyJSON, "application/json")
}

// fetchBlob — общий код скачивания бинарного ответа.
func (c *Client) fetchBlob(ctx context.Context, endpointID string, method string, u string, body []byte, contentType string) (*Blob, error) {
	limiter := c.getOrCreateLimiter(endpointID)
	if err := limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp.StatusCode, data)
	}

	return &Blob{
		Data:     data,
		Filename: filenameFromDisposition(resp.Header.Get("Content-Disposition")),
	}, nil
}

// filenameFromDisposition достает имя файла из Content-Disposition заголовка.
func filenameFromDisposition(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}

// PostMultipart загружает файл через multipart/form-data.
//
// Параметры:
//   - endpointID: идентификатор endpoint для limiter
//   - path: путь к endpoint (например, "/import/dealers" или "/azure/upload")
//   - fieldName: имя поля формы (backend ожидает "file")
//   - filename: имя отправляемого файла
//   - data: содержимое файла
//   - dest: указатель на структуру для unmarshal результата
func (c *Client) PostMultipart(ctx context.Context, endpointID string, path string, fieldName string, filename string, data []byte, dest interface{}) error {
	u, err := c.buildURL(path, nil)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(fieldName, filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	return c.doRequest(ctx, endpointID, httpRequest{
		method:      http.MethodPost,
		url:         u,
		body:        buf.Bytes(),
		contentType: writer.FormDataContentType(),
	}, dest)
}
