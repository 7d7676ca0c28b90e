package weve

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/aguulga/backend/internal/domain/catalog"
	"github.com/aguulga/backend/internal/domain/trade"
	"github.com/aguulga/backend/internal/domain/weve"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) Login(ctx context.Context, creds weve.Credentials) (*weve.LoginSession, error) {
	args := m.Called(ctx, creds)
	if session := args.Get(0); session != nil {
		return session.(*weve.LoginSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockClient) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockClient) Refresh(ctx context.Context, refreshToken string) (*weve.RefreshedToken, error) {
	args := m.Called(ctx, refreshToken)
	if refreshed := args.Get(0); refreshed != nil {
		return refreshed.(*weve.RefreshedToken), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockClient) ValidateCredentials(ctx context.Context, creds weve.Credentials) error {
	args := m.Called(ctx, creds)
	return args.Error(0)
}

func (m *mockClient) FetchProducts(ctx context.Context, query weve.ProductQuery) (*weve.ProductPage, error) {
	args := m.Called(ctx, query)
	if page := args.Get(0); page != nil {
		return page.(*weve.ProductPage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockClient) PushOrder(ctx context.Context, order *weve.OutboundOrder) (string, error) {
	args := m.Called(ctx, order)
	return args.String(0), args.Error(1)
}

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) FindByCodeOrBarcode(ctx context.Context, productCode, barcode string) (*catalog.Product, error) {
	args := m.Called(ctx, productCode, barcode)
	if product := args.Get(0); product != nil {
		return product.(*catalog.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if order := args.Get(0); order != nil {
		return order.(*trade.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

// activeSession installs a usable session directly into the store
func activeSession(store *weve.SessionStore) weve.Session {
	session := weve.Session{
		Token:        "tok-test",
		RefreshToken: "ref-test",
		UserID:       7,
		UserName:     "tuya",
		ExpiresAt:    farFuture(),
		IsActive:     true,
	}
	store.Put(session)
	return session
}

func farFuture() time.Time {
	return time.Now().Add(24 * time.Hour)
}
