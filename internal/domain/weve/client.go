package weve

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

var (
	// ErrNotLoggedIn indicates an operation required an active session.
	// An expired session is treated identically to no session.
	ErrNotLoggedIn = errors.New("weve: not logged in")
	// ErrNoRefreshToken indicates the session has no refresh token to use
	ErrNoRefreshToken = errors.New("weve: session has no refresh token")
	// ErrRemoteUnavailable indicates a transport-level failure (timeout, connection)
	ErrRemoteUnavailable = errors.New("weve: platform unavailable")
	// ErrInvalidResponse indicates the platform returned an unparsable body
	ErrInvalidResponse = errors.New("weve: invalid platform response")
)

// RemoteError is a well-formed error response from the Weve platform.
// The platform's message is carried verbatim for direct display.
type RemoteError struct {
	StatusCode int
	Code       string
	Message    string
}

// Error implements the error interface
func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("weve: request rejected with status %d", e.StatusCode)
}

// AsRemoteError returns the RemoteError wrapped in err, if any
func AsRemoteError(err error) (*RemoteError, bool) {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr, true
	}
	return nil, false
}

// ---------------------------------------------------------------------------
// Value Objects
// ---------------------------------------------------------------------------

// Credentials are the aguulga3 operator credentials used against Weve
type Credentials struct {
	Username string
	Password string
}

// LoginSession is the platform's answer to a successful login
type LoginSession struct {
	Token        string
	RefreshToken string
	UserID       int64
	UserName     string
	// ExpiresIn is the token lifetime in seconds
	ExpiresIn int64
}

// RefreshedToken is the platform's answer to a successful token refresh
type RefreshedToken struct {
	Token string
	// ExpiresIn is the new token lifetime in seconds
	ExpiresIn int64
}

// RemoteProduct is a product record as listed on Weve
type RemoteProduct struct {
	ID            int64
	Name          string
	NameMongolian string
	NameEnglish   string
	ProductCode   string
	Barcode       string
	Price         decimal.Decimal
	StockQuantity decimal.Decimal
	IsActive      bool
}

// LocalName returns the Mongolian name, falling back to the plain name
func (p *RemoteProduct) LocalName() string {
	if p.NameMongolian != "" {
		return p.NameMongolian
	}
	return p.Name
}

// ProductQuery selects a page of the Weve catalog
type ProductQuery struct {
	// Page is 1-indexed
	Page  int
	Limit int
	// CategoryID restricts the query to one Weve category when set
	CategoryID *int64
	// ActiveOnly restricts the query to listed products when set
	ActiveOnly *bool
}

// ProductPage is one page of the remote catalog with the platform-declared total
type ProductPage struct {
	Products []RemoteProduct
	Total    int64
}

// OutboundOrderItem is a line item in the wire projection of a local order
type OutboundOrderItem struct {
	ProductID   string          `json:"productId"`
	ProductCode string          `json:"productCode,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// OutboundOrder is the wire projection of a local order pushed to Weve.
// It is derived fresh per push attempt and never persisted.
type OutboundOrder struct {
	OrderNumber     string              `json:"orderNumber"`
	CustomerID      *int64              `json:"customerId,omitempty"`
	CustomerName    string              `json:"customerName,omitempty"`
	CustomerPhone   string              `json:"customerPhone,omitempty"`
	CustomerAddress string              `json:"customerAddress,omitempty"`
	Items           []OutboundOrderItem `json:"items"`
	SubtotalAmount  decimal.Decimal     `json:"subtotalAmount"`
	VATAmount       decimal.Decimal     `json:"vatAmount"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
	OrderDate       time.Time           `json:"orderDate"`
	Status          string              `json:"status,omitempty"`
}

// ---------------------------------------------------------------------------
// Client Port Interface
// ---------------------------------------------------------------------------

// Client defines the port interface for the Weve platform API.
// Implementations are stateless apart from configuration; they never retry,
// and they distinguish three outcome classes: success, *RemoteError for a
// structured rejection, and ErrRemoteUnavailable for transport failures.
type Client interface {
	// Login authenticates the aguulga3 operator against Weve
	Login(ctx context.Context, creds Credentials) (*LoginSession, error)

	// Logout invalidates the given token on Weve
	Logout(ctx context.Context, token string) error

	// Refresh exchanges a refresh token for a new access token
	Refresh(ctx context.Context, refreshToken string) (*RefreshedToken, error)

	// ValidateCredentials probes the credentials without creating a session
	ValidateCredentials(ctx context.Context, creds Credentials) error

	// FetchProducts retrieves one page of the Weve catalog
	FetchProducts(ctx context.Context, query ProductQuery) (*ProductPage, error)

	// PushOrder submits the order projection and returns the Weve order id
	PushOrder(ctx context.Context, order *OutboundOrder) (string, error)
}
