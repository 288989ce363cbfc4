package property_api_client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"property-client/internal/adapters/metrics"
	"property-client/internal/contextkeys"
	"property-client/internal/contracts"
	"property-client/internal/core/domain"
	"property-client/internal/core/port"
)

// ErrContractViolation - ответ бэкенда не соответствует JSON-схеме
var ErrContractViolation = errors.New("property api response violates contract")

var _ port.PropertyAPIPort = (*Client)(nil)

// Client - HTTP-клиент REST API объектов недвижимости
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Collector
}

// NewClient: baseURL - адрес коллекции, например http://localhost:8080/api/properties.
// collector может быть nil.
func NewClient(baseURL string, timeout time.Duration, collector *metrics.Collector) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		metrics:    collector,
	}
}

// doRequest выполняет запрос и возвращает статус и тело ответа.
// Статус вне 2xx превращается в *domain.APIError.
func (c *Client) doRequest(ctx context.Context, operation, method, rawURL string, payload any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordBackendRequest(operation, "error", time.Since(started))
		return 0, nil, fmt.Errorf("property api %s: %w", operation, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	c.metrics.RecordBackendRequest(operation, strconv.Itoa(resp.StatusCode), time.Since(started))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("property api %s: failed to read response: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, respBody, &domain.APIError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}
	return resp.StatusCode, respBody, nil
}

func (c *Client) clientLogger(ctx context.Context, method string) port.LoggerPort {
	return contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PropertyApiClient",
		"method":    method,
	})
}

func (c *Client) itemURL(id int64) string {
	return fmt.Sprintf("%s/%d", c.baseURL, id)
}

// listValues - параметры запроса списка; пустые фильтры не передаются
func listValues(query domain.ListQuery) url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(query.Page))
	values.Set("size", strconv.Itoa(query.Size))

	filters := query.Filters
	if address := filters.NormalizedAddress(); address != "" {
		values.Set("address", address)
	}
	setBound := func(key string, v *float64) {
		if v != nil {
			values.Set(key, strconv.FormatFloat(*v, 'f', -1, 64))
		}
	}
	setBound("minPrice", filters.MinPrice)
	setBound("maxPrice", filters.MaxPrice)
	setBound("minSize", filters.MinSize)
	setBound("maxSize", filters.MaxSize)
	return values
}

func (c *Client) List(ctx context.Context, query domain.ListQuery) (*domain.PageResult, error) {
	logger := c.clientLogger(ctx, "List")
	if query.Size <= 0 {
		query.Size = domain.PageSize
	}

	requestURL := c.baseURL + "?" + listValues(query).Encode()
	logger.Debug("Sending request to property api", port.Fields{"url": requestURL})

	status, body, err := c.doRequest(ctx, "list", http.MethodGet, requestURL, nil)
	if err != nil {
		logger.Error("Property api request failed", err, port.Fields{"status_code": status})
		return nil, err
	}

	var page PropertyPageResponse
	if err := decodeValidated(contracts.PropertyPageSchema, body, &page); err != nil {
		logger.Error("Invalid list response from property api", err, nil)
		return nil, err
	}

	logger.Debug("Received properties page", port.Fields{
		"page":        page.Number,
		"total_pages": page.TotalPages,
		"items":       len(page.Content),
	})
	return page.toDomain(), nil
}

func (c *Client) Get(ctx context.Context, id int64) (*domain.Property, error) {
	logger := c.clientLogger(ctx, "Get").WithFields(port.Fields{"property_id": id})

	status, body, err := c.doRequest(ctx, "get", http.MethodGet, c.itemURL(id), nil)
	if err != nil {
		logger.Error("Property api request failed", err, port.Fields{"status_code": status})
		return nil, err
	}

	var dto PropertyResponse
	if err := decodeValidated(contracts.PropertySchema, body, &dto); err != nil {
		logger.Error("Invalid property response from property api", err, nil)
		return nil, err
	}

	property := dto.toDomain()
	return &property, nil
}

func (c *Client) Create(ctx context.Context, input domain.PropertyInput) (*domain.Property, error) {
	return c.save(ctx, "create", http.MethodPost, c.baseURL, 0, input)
}

func (c *Client) Update(ctx context.Context, id int64, input domain.PropertyInput) (*domain.Property, error) {
	return c.save(ctx, "update", http.MethodPut, c.itemURL(id), id, input)
}

// save отправляет POST/PUT. Пустое тело успешного ответа допустимо:
// тогда возвращаются отправленные данные.
func (c *Client) save(ctx context.Context, operation, method, requestURL string, id int64, input domain.PropertyInput) (*domain.Property, error) {
	logger := c.clientLogger(ctx, operation)

	status, body, err := c.doRequest(ctx, operation, method, requestURL, newPropertyRequest(input))
	if err != nil {
		logger.Error("Property api request failed", err, port.Fields{"status_code": status})
		return nil, err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return &domain.Property{
			ID:          id,
			Address:     input.Address,
			Price:       input.Price,
			Size:        input.Size,
			Description: input.Description,
		}, nil
	}

	var dto PropertyResponse
	if err := decodeValidated(contracts.PropertySchema, body, &dto); err != nil {
		logger.Error("Invalid property response from property api", err, nil)
		return nil, err
	}

	property := dto.toDomain()
	logger.Debug("Property saved by property api", port.Fields{"property_id": property.ID, "status_code": status})
	return &property, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	logger := c.clientLogger(ctx, "Delete").WithFields(port.Fields{"property_id": id})

	status, _, err := c.doRequest(ctx, "delete", http.MethodDelete, c.itemURL(id), nil)
	if err != nil {
		logger.Error("Property api request failed", err, port.Fields{"status_code": status})
		return err
	}
	return nil
}

func decodeValidated(schema string, body []byte, target any) error {
	if err := contracts.ValidateResponse(schema, body); err != nil {
		return fmt.Errorf("%w: %v", ErrContractViolation, err)
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
