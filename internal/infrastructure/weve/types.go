package weve

import (
	"github.com/shopspring/decimal"

	"github.com/aguulga/backend/internal/domain/weve"
)

// Wire types for the Weve REST API. Field names follow the platform contract.

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	// Source identifies the calling system to Weve
	Source string `json:"source"`
}

type loginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
	UserID       int64  `json:"userId"`
	UserName     string `json:"userName"`
	ExpiresIn    int64  `json:"expiresIn"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

type validateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type errorResponse struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode,omitempty"`
}

type wireProduct struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	NameMongolian string          `json:"nameMongolian,omitempty"`
	NameEnglish   string          `json:"nameEnglish,omitempty"`
	ProductCode   string          `json:"productCode,omitempty"`
	Barcode       string          `json:"barcode,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity decimal.Decimal `json:"stockQuantity"`
	IsActive      bool            `json:"isActive"`
}

func (p *wireProduct) toDomain() weve.RemoteProduct {
	return weve.RemoteProduct{
		ID:            p.ID,
		Name:          p.Name,
		NameMongolian: p.NameMongolian,
		NameEnglish:   p.NameEnglish,
		ProductCode:   p.ProductCode,
		Barcode:       p.Barcode,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		IsActive:      p.IsActive,
	}
}

type productsResponse struct {
	Products []wireProduct `json:"products"`
	Total    int64         `json:"total"`
}

type pushOrderResponse struct {
	WeveOrderID string `json:"weveOrderId,omitempty"`
	Message     string `json:"message,omitempty"`
}
