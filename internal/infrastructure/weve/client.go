package weve

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/aguulga/backend/internal/domain/weve"
)

const (
	// maxResponseSize limits the response body size to prevent memory exhaustion
	maxResponseSize = 10 * 1024 * 1024 // 10MB max response

	// loginSource identifies requests originating from the aguulga3 system
	loginSource = "aguulga3"
)

// TokenProvider supplies the current bearer token, or "" when logged out
type TokenProvider interface {
	Token() string
}

// HTTPClient implements the weve.Client port against the real Weve REST API.
// It is stateless besides configuration: the bearer token comes from the
// injected TokenProvider on every call, and no call is ever retried.
type HTTPClient struct {
	config     *Config
	httpClient *http.Client
	tokens     TokenProvider
}

// NewHTTPClient creates a new Weve HTTP client with the given configuration
func NewHTTPClient(config *Config, tokens TokenProvider) (*HTTPClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &HTTPClient{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutMillis) * time.Millisecond,
		},
		tokens: tokens,
	}, nil
}

// Login authenticates the aguulga3 operator against Weve
func (c *HTTPClient) Login(ctx context.Context, creds weve.Credentials) (*weve.LoginSession, error) {
	body := loginRequest{
		Username: creds.Username,
		Password: creds.Password,
		Source:   loginSource,
	}

	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, "", &resp); err != nil {
		return nil, err
	}

	return &weve.LoginSession{
		Token:        resp.Token,
		RefreshToken: resp.RefreshToken,
		UserID:       resp.UserID,
		UserName:     resp.UserName,
		ExpiresIn:    resp.ExpiresIn,
	}, nil
}

// Logout invalidates the given token on Weve
func (c *HTTPClient) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, struct{}{}, token, nil)
}

// Refresh exchanges a refresh token for a new access token
func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*weve.RefreshedToken, error) {
	var resp refreshResponse
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, refreshRequest{RefreshToken: refreshToken}, "", &resp); err != nil {
		return nil, err
	}
	return &weve.RefreshedToken{Token: resp.Token, ExpiresIn: resp.ExpiresIn}, nil
}

// ValidateCredentials probes the credentials without creating a session
func (c *HTTPClient) ValidateCredentials(ctx context.Context, creds weve.Credentials) error {
	body := validateRequest{Username: creds.Username, Password: creds.Password}
	return c.do(ctx, http.MethodPost, "/auth/validate", nil, body, "", nil)
}

// FetchProducts retrieves one page of the Weve catalog
func (c *HTTPClient) FetchProducts(ctx context.Context, query weve.ProductQuery) (*weve.ProductPage, error) {
	params := url.Values{}
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 100
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
	if query.CategoryID != nil {
		params.Set("categoryId", strconv.FormatInt(*query.CategoryID, 10))
	}
	if query.ActiveOnly != nil {
		params.Set("isActive", strconv.FormatBool(*query.ActiveOnly))
	}

	var resp productsResponse
	if err := c.do(ctx, http.MethodGet, "/products", params, nil, "", &resp); err != nil {
		return nil, err
	}

	pageResult := &weve.ProductPage{
		Products: make([]weve.RemoteProduct, 0, len(resp.Products)),
		Total:    resp.Total,
	}
	for i := range resp.Products {
		pageResult.Products = append(pageResult.Products, resp.Products[i].toDomain())
	}
	return pageResult, nil
}

// PushOrder submits the order projection and returns the Weve order id
func (c *HTTPClient) PushOrder(ctx context.Context, order *weve.OutboundOrder) (string, error) {
	var resp pushOrderResponse
	if err := c.do(ctx, http.MethodPost, "/orders", nil, order, "", &resp); err != nil {
		return "", err
	}
	return resp.WeveOrderID, nil
}

// do performs one HTTP round trip. bearerOverride takes precedence over the
// token provider; when both are empty no Authorization header is sent.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any, bearerOverride string, out any) error {
	endpoint := c.config.APIBaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("weve: failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("weve: failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("X-API-Key", c.config.APIKey)
	}
	if token := c.bearer(bearerOverride); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", weve.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: %v", weve.ErrRemoteUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		remoteErr := &weve.RemoteError{StatusCode: resp.StatusCode}
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil {
			remoteErr.Message = errResp.Message
			remoteErr.Code = errResp.ErrorCode
		}
		return remoteErr
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%w: %v", weve.ErrInvalidResponse, err)
		}
	}
	return nil
}

func (c *HTTPClient) bearer(override string) string {
	if override != "" {
		return override
	}
	if c.tokens != nil {
		return c.tokens.Token()
	}
	return ""
}

// Ensure HTTPClient implements the Client port
var _ weve.Client = (*HTTPClient)(nil)
