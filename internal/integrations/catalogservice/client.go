package catalogservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент каталога услуг платформы
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetService получает услугу по ID
func (c *Client) GetService(ctx context.Context, serviceID int64) (*Service, error) {
	url := fmt.Sprintf("%s/internal/services/%d", c.baseURL, serviceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid service ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrServiceNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var service Service
	if err := json.NewDecoder(resp.Body).Decode(&service); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &service, nil
}

// ListServices получает список активных услуг
func (c *Client) ListServices(ctx context.Context) ([]*Service, error) {
	url := fmt.Sprintf("%s/internal/services?active=true", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var services []*Service
	if err := json.NewDecoder(resp.Body).Decode(&services); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return services, nil
}

// GetServiceWithGracefulDegradation получает услугу с graceful degradation
// При недоступности каталога возвращает ErrServiceDegraded, чтобы вызывающий
// мог отличить "услуги нет" от "каталог лежит"
func (c *Client) GetServiceWithGracefulDegradation(ctx context.Context, serviceID int64) (*Service, error) {
	c.log.Info("Fetching service id=%d from catalog", serviceID)

	service, err := c.GetService(ctx, serviceID)
	if err != nil {
		// Бизнес-ошибку пробрасываем как есть
		if errors.Is(err, ErrServiceNotFound) {
			c.log.Warn("Service id=%d not found in catalog", serviceID)
			return nil, err
		}

		// Для остальных ошибок (недоступность, timeout, ошибки парсинга)
		// применяем graceful degradation
		c.log.Error("Catalog unavailable, applying graceful degradation for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: service_id=%d, error=%v", ErrServiceDegraded, serviceID, err)
	}

	c.log.Info("Successfully fetched service id=%d, duration=%d min", serviceID, service.DurationMinutes)
	return service, nil
}
