package weve

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aguulga/backend/internal/domain/weve"
)

// ---------------------------------------------------------------------------
// Config Tests
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr error
	}{
		{
			name:   "valid config",
			config: &Config{APIBaseURL: "https://api.weve.mn/api"},
		},
		{
			name:   "defaults applied when empty",
			config: &Config{},
		},
		{
			name:   "simulation mode needs no URL",
			config: &Config{Simulation: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.True(t, tt.config.TimeoutMillis > 0)
			assert.True(t, tt.config.SimulatedSessionTTLSeconds > 0)
		})
	}
}

func TestNewConfig(t *testing.T) {
	config := NewConfig("https://weve.example/api", "key-123")
	assert.Equal(t, "https://weve.example/api", config.APIBaseURL)
	assert.Equal(t, "key-123", config.APIKey)
	assert.Equal(t, DefaultTimeoutMillis, config.TimeoutMillis)
}

// ---------------------------------------------------------------------------
// Client Tests
// ---------------------------------------------------------------------------

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.HandlerFunc, tokens TokenProvider) *HTTPClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(&Config{
		APIBaseURL:    server.URL,
		APIKey:        "test-api-key",
		TimeoutMillis: 2000,
	}, tokens)
	require.NoError(t, err)
	return client
}

func TestHTTPClient_Login(t *testing.T) {
	t.Run("successful login", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/auth/login", r.URL.Path)
			assert.Equal(t, "test-api-key", r.Header.Get("X-API-Key"))

			var req loginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "tuya", req.Username)
			assert.Equal(t, "aguulga3", req.Source)

			_ = json.NewEncoder(w).Encode(loginResponse{
				Token:        "tok-abc",
				RefreshToken: "ref-abc",
				UserID:       12,
				UserName:     "tuya",
				ExpiresIn:    3600,
			})
		}, nil)

		session, err := client.Login(context.Background(), weve.Credentials{Username: "tuya", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, "tok-abc", session.Token)
		assert.Equal(t, "ref-abc", session.RefreshToken)
		assert.Equal(t, int64(12), session.UserID)
		assert.Equal(t, int64(3600), session.ExpiresIn)
	})

	t.Run("rejected login carries platform message", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(errorResponse{Message: "Invalid credentials", ErrorCode: "AUTH_FAILED"})
		}, nil)

		session, err := client.Login(context.Background(), weve.Credentials{Username: "x", Password: "y"})
		assert.Nil(t, session)

		remoteErr, ok := weve.AsRemoteError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, remoteErr.StatusCode)
		assert.Equal(t, "Invalid credentials", remoteErr.Message)
		assert.Equal(t, "AUTH_FAILED", remoteErr.Code)
	})

	t.Run("transport failure", func(t *testing.T) {
		client, err := NewHTTPClient(&Config{
			APIBaseURL:    "http://127.0.0.1:1",
			TimeoutMillis: 200,
		}, nil)
		require.NoError(t, err)

		_, err = client.Login(context.Background(), weve.Credentials{Username: "x", Password: "y"})
		assert.ErrorIs(t, err, weve.ErrRemoteUnavailable)
	})
}

func TestHTTPClient_Logout(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}, staticTokens("provider-token"))

	// Logout uses the explicit session token, not the provider
	err := client.Logout(context.Background(), "session-token")
	require.NoError(t, err)
	assert.Equal(t, "Bearer session-token", gotAuth)
}

func TestHTTPClient_Refresh(t *testing.T) {
	t.Run("successful refresh", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			var req refreshRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "ref-abc", req.RefreshToken)
			_ = json.NewEncoder(w).Encode(refreshResponse{Token: "tok-new", ExpiresIn: 7200})
		}, nil)

		refreshed, err := client.Refresh(context.Background(), "ref-abc")
		require.NoError(t, err)
		assert.Equal(t, "tok-new", refreshed.Token)
		assert.Equal(t, int64(7200), refreshed.ExpiresIn)
	})

	t.Run("rejected refresh", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(errorResponse{Message: "Refresh token expired"})
		}, nil)

		_, err := client.Refresh(context.Background(), "stale")
		remoteErr, ok := weve.AsRemoteError(err)
		require.True(t, ok)
		assert.Equal(t, "Refresh token expired", remoteErr.Message)
	})
}

func TestHTTPClient_ValidateCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/validate", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}, nil)

	err := client.ValidateCredentials(context.Background(), weve.Credentials{Username: "tuya", Password: "secret"})
	assert.NoError(t, err)
}

func TestHTTPClient_FetchProducts(t *testing.T) {
	t.Run("query parameters and bearer token", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/products", r.URL.Path)
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Equal(t, "100", r.URL.Query().Get("limit"))
			assert.Equal(t, "7", r.URL.Query().Get("categoryId"))
			assert.Equal(t, "true", r.URL.Query().Get("isActive"))
			assert.Equal(t, "Bearer provider-token", r.Header.Get("Authorization"))

			_ = json.NewEncoder(w).Encode(productsResponse{
				Products: []wireProduct{
					{
						ID:            101,
						Name:          "Milk 1L",
						NameMongolian: "Сүү 1л",
						ProductCode:   "MLK-001",
						Barcode:       "6291041500213",
						Price:         decimal.NewFromInt(4500),
						StockQuantity: decimal.NewFromInt(24),
						IsActive:      true,
					},
				},
				Total: 250,
			})
		}, staticTokens("provider-token"))

		categoryID := int64(7)
		activeOnly := true
		page, err := client.FetchProducts(context.Background(), weve.ProductQuery{
			Page:       2,
			Limit:      100,
			CategoryID: &categoryID,
			ActiveOnly: &activeOnly,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(250), page.Total)
		require.Len(t, page.Products, 1)
		assert.Equal(t, int64(101), page.Products[0].ID)
		assert.Equal(t, "Сүү 1л", page.Products[0].NameMongolian)
		assert.True(t, page.Products[0].Price.Equal(decimal.NewFromInt(4500)))
	})

	t.Run("defaults page and limit", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "1", r.URL.Query().Get("page"))
			assert.Equal(t, "100", r.URL.Query().Get("limit"))
			assert.Empty(t, r.URL.Query().Get("categoryId"))
			_ = json.NewEncoder(w).Encode(productsResponse{Total: 0})
		}, nil)

		page, err := client.FetchProducts(context.Background(), weve.ProductQuery{})
		require.NoError(t, err)
		assert.Empty(t, page.Products)
	})

	t.Run("page fetch rejection", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_ = json.NewEncoder(w).Encode(errorResponse{Message: "upstream down"})
		}, nil)

		_, err := client.FetchProducts(context.Background(), weve.ProductQuery{Page: 1, Limit: 100})
		remoteErr, ok := weve.AsRemoteError(err)
		require.True(t, ok)
		assert.Equal(t, "upstream down", remoteErr.Message)
	})
}

func TestHTTPClient_PushOrder(t *testing.T) {
	t.Run("successful push", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/orders", r.URL.Path)

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ORD-1001", body["orderNumber"])

			_ = json.NewEncoder(w).Encode(pushOrderResponse{WeveOrderID: "WV-555"})
		}, nil)

		orderID, err := client.PushOrder(context.Background(), &weve.OutboundOrder{
			OrderNumber: "ORD-1001",
			TotalAmount: decimal.NewFromInt(5000),
		})
		require.NoError(t, err)
		assert.Equal(t, "WV-555", orderID)
	})

	t.Run("remote rejection passes message through", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(errorResponse{Message: "Order number already exists"})
		}, nil)

		_, err := client.PushOrder(context.Background(), &weve.OutboundOrder{OrderNumber: "ORD-1001"})
		remoteErr, ok := weve.AsRemoteError(err)
		require.True(t, ok)
		assert.Equal(t, "Order number already exists", remoteErr.Message)
	})
}

// ---------------------------------------------------------------------------
// Simulator Tests
// ---------------------------------------------------------------------------

func TestSimulator(t *testing.T) {
	sim := NewSimulator(1800)
	ctx := context.Background()

	t.Run("login always succeeds", func(t *testing.T) {
		session, err := sim.Login(ctx, weve.Credentials{Username: "tuya", Password: "ignored"})
		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
		assert.Equal(t, "tuya", session.UserName)
		assert.Equal(t, int64(1800), session.ExpiresIn)
	})

	t.Run("tokens are unique per login", func(t *testing.T) {
		first, err := sim.Login(ctx, weve.Credentials{Username: "a"})
		require.NoError(t, err)
		second, err := sim.Login(ctx, weve.Credentials{Username: "a"})
		require.NoError(t, err)
		assert.NotEqual(t, first.Token, second.Token)
	})

	t.Run("fetch returns empty catalog", func(t *testing.T) {
		page, err := sim.FetchProducts(ctx, weve.ProductQuery{Page: 1, Limit: 100})
		require.NoError(t, err)
		assert.Empty(t, page.Products)
		assert.Zero(t, page.Total)
	})

	t.Run("push returns synthetic id", func(t *testing.T) {
		orderID, err := sim.PushOrder(ctx, &weve.OutboundOrder{OrderNumber: "ORD-1"})
		require.NoError(t, err)
		assert.Contains(t, orderID, "SIM-")
	})

	t.Run("logout validate and refresh succeed", func(t *testing.T) {
		assert.NoError(t, sim.Logout(ctx, "any"))
		assert.NoError(t, sim.ValidateCredentials(ctx, weve.Credentials{}))
		refreshed, err := sim.Refresh(ctx, "any")
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.Token)
	})

	t.Run("zero ttl falls back to default", func(t *testing.T) {
		fallback := NewSimulator(0)
		session, err := fallback.Login(ctx, weve.Credentials{Username: "x"})
		require.NoError(t, err)
		assert.Equal(t, int64(DefaultSimulatedSessionTTLSeconds), session.ExpiresIn)
	})
}
