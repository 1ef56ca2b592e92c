package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/qaforum/internal/models"
	"github.com/iudanet/qaforum/pkg/api"
)

const (
	defaultTimeout = 30 * time.Second
	apiPrefix      = "/api/v1"
)

// TokenSource returns the current bearer token, or "" when signed out
type TokenSource func() string

// Option настраивает Client
type Option func(*Client)

// WithTimeout overrides the per-request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithTokenSource attaches an Authorization header to every request
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// WithLogger logs every round trip
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.httpClient.Transport = NewLoggingTransport(c.httpClient.Transport, logger)
	}
}

// Client представляет HTTP клиент для взаимодействия с API форума
type Client struct {
	httpClient *http.Client
	tokens     TokenSource
	baseURL    string
}

var _ ClientAPI = (*Client)(nil)

// NewClient создает новый API клиент
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Vote отправляет голос за вопрос или ответ
func (c *Client) Vote(ctx context.Context, kind models.EntityKind, id string, voteType models.VoteState) (*api.VoteResponse, error) {
	if !voteType.IsDirection() {
		return nil, fmt.Errorf("vote request: %w: invalid vote type %q", ErrServerRejected, voteType)
	}

	var resp api.VoteResponse
	path := fmt.Sprintf("%s/%s/%s/vote", apiPrefix, kind.Plural(), url.PathEscape(id))
	req := api.VoteRequest{VoteType: voteType.String()}
	if err := c.doRequest(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, fmt.Errorf("vote request failed: %w", err)
	}
	return &resp, nil
}

// RemoveVote снимает голос текущего пользователя
func (c *Client) RemoveVote(ctx context.Context, kind models.EntityKind, id string) error {
	path := fmt.Sprintf("%s/%s/%s/vote", apiPrefix, kind.Plural(), url.PathEscape(id))
	if err := c.doRequest(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("remove vote request failed: %w", err)
	}
	return nil
}

// GetVotable загружает вопрос или ответ
func (c *Client) GetVotable(ctx context.Context, kind models.EntityKind, id string) (*api.VotableResponse, error) {
	var resp api.VotableResponse
	path := fmt.Sprintf("%s/%s/%s", apiPrefix, kind.Plural(), url.PathEscape(id))
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("get %s request failed: %w", kind, err)
	}
	return &resp, nil
}

// UpdateNotification выполняет PATCH уведомления
func (c *Client) UpdateNotification(ctx context.Context, id string, req api.NotificationUpdateRequest) error {
	path := fmt.Sprintf("%s/notifications/%s", apiPrefix, url.PathEscape(id))
	if err := c.doRequest(ctx, http.MethodPatch, path, req, nil); err != nil {
		return fmt.Errorf("update notification request failed: %w", err)
	}
	return nil
}

// DeleteNotification удаляет уведомление
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	path := fmt.Sprintf("%s/notifications/%s", apiPrefix, url.PathEscape(id))
	if err := c.doRequest(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete notification request failed: %w", err)
	}
	return nil
}

// MarkNotificationsRead отмечает уведомления прочитанными.
// Тело - JSON массив id; без тела сервер отмечает все.
func (c *Client) MarkNotificationsRead(ctx context.Context, ids []string) error {
	path := apiPrefix + "/notifications/mark-read"
	var body any
	if len(ids) > 0 {
		body = ids
	}
	if err := c.doRequest(ctx, http.MethodPost, path, body, nil); err != nil {
		return fmt.Errorf("mark read request failed: %w", err)
	}
	return nil
}

// ListNotifications получает страницу уведомлений
func (c *Client) ListNotifications(ctx context.Context, filter models.NotificationFilter) (*api.NotificationListResponse, error) {
	var resp api.NotificationListResponse
	path := apiPrefix + "/notifications"
	if q := filterQuery(filter).Encode(); q != "" {
		path += "?" + q
	}
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list notifications request failed: %w", err)
	}
	return &resp, nil
}

// CountNotifications получает счётчики уведомлений
func (c *Client) CountNotifications(ctx context.Context) (*api.NotificationCountResponse, error) {
	var resp api.NotificationCountResponse
	if err := c.doRequest(ctx, http.MethodGet, apiPrefix+"/notifications/count", nil, &resp); err != nil {
		return nil, fmt.Errorf("count notifications request failed: %w", err)
	}
	return &resp, nil
}

func filterQuery(filter models.NotificationFilter) url.Values {
	q := url.Values{}
	if filter.Type != "" {
		q.Set("type", string(filter.Type))
	}
	if filter.Priority != "" {
		q.Set("priority", string(filter.Priority))
	}
	if filter.IsRead != nil {
		q.Set("is_read", strconv.FormatBool(*filter.IsRead))
	}
	if filter.IsArchived != nil {
		q.Set("is_archived", strconv.FormatBool(*filter.IsArchived))
	}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}
	return q
}

// doRequest выполняет HTTP запрос и приводит ошибки к таксономии согласования
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	if c.tokens != nil {
		if token := c.tokens(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetworkFailure, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %w", ErrNetworkFailure, err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Text() != "" {
			return newStatusError(resp.StatusCode, errResp.Text())
		}
		return newStatusError(resp.StatusCode, string(bytes.TrimSpace(respBody)))
	}

	// Декодируем успешный ответ
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("%w: failed to decode response: %w", ErrServerRejected, err)
		}
	}

	return nil
}
