package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appweve "github.com/aguulga/backend/internal/application/weve"
	"github.com/aguulga/backend/internal/domain/weve"
	"github.com/aguulga/backend/internal/interfaces/http/dto"
)

// WeveHandler handles Weve integration HTTP requests
type WeveHandler struct {
	BaseHandler
	sessions *appweve.SessionService
	sync     *appweve.SyncService
	orders   *appweve.OrderService
}

// NewWeveHandler creates a new Weve handler
func NewWeveHandler(sessions *appweve.SessionService, sync *appweve.SyncService, orders *appweve.OrderService) *WeveHandler {
	return &WeveHandler{
		sessions: sessions,
		sync:     sync,
		orders:   orders,
	}
}

// RegisterRoutes registers the Weve integration routes
func (h *WeveHandler) RegisterRoutes(rg *gin.RouterGroup) {
	weveGroup := rg.Group("/weve")
	{
		weveGroup.POST("/login", h.Login)
		weveGroup.POST("/logout", h.Logout)
		weveGroup.GET("/session", h.SessionStatus)
		weveGroup.POST("/refresh", h.Refresh)
		weveGroup.POST("/validate-credentials", h.ValidateCredentials)
		weveGroup.POST("/sync/products", h.SyncProducts)
		weveGroup.POST("/sync/categories/:categoryId", h.SyncCategory)
		weveGroup.GET("/sync/status", h.SyncStatus)
		weveGroup.POST("/orders/:id/push", h.PushOrder)
	}
}

// Login authenticates the operator against the Weve platform
func (h *WeveHandler) Login(c *gin.Context) {
	var req WeveLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.sessions.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.handleWeveError(c, err)
		return
	}

	h.Success(c, WeveSessionResponse{
		LoggedIn:  true,
		UserID:    session.UserID,
		UserName:  session.UserName,
		ExpiresAt: &session.ExpiresAt,
	})
}

// Logout clears the Weve session
func (h *WeveHandler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Request.Context()); err != nil {
		h.handleWeveError(c, err)
		return
	}
	h.Success(c, gin.H{"loggedOut": true})
}

// SessionStatus reports the current Weve session, if any
func (h *WeveHandler) SessionStatus(c *gin.Context) {
	session, ok := h.sessions.Session()
	if !ok {
		h.Success(c, WeveSessionResponse{LoggedIn: false})
		return
	}
	h.Success(c, WeveSessionResponse{
		LoggedIn:  true,
		UserID:    session.UserID,
		UserName:  session.UserName,
		ExpiresAt: &session.ExpiresAt,
	})
}

// Refresh exchanges the session's refresh token for a new access token
func (h *WeveHandler) Refresh(c *gin.Context) {
	if _, err := h.sessions.Refresh(c.Request.Context()); err != nil {
		h.handleWeveError(c, err)
		return
	}

	session, ok := h.sessions.Session()
	if !ok {
		h.Unauthorized(c, "Not logged in to Weve")
		return
	}
	h.Success(c, WeveSessionResponse{
		LoggedIn:  true,
		UserID:    session.UserID,
		UserName:  session.UserName,
		ExpiresAt: &session.ExpiresAt,
	})
}

// ValidateCredentials probes credentials against Weve without creating a session
func (h *WeveHandler) ValidateCredentials(c *gin.Context) {
	var req WeveValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.sessions.ValidateCredentials(c.Request.Context(), req.Username, req.Password); err != nil {
		if remoteErr, ok := weve.AsRemoteError(err); ok {
			h.Success(c, WeveValidateResponse{Valid: false, Message: remoteErr.Message})
			return
		}
		h.handleWeveError(c, err)
		return
	}
	h.Success(c, WeveValidateResponse{Valid: true})
}

// SyncProducts triggers a full catalog reconciliation
func (h *WeveHandler) SyncProducts(c *gin.Context) {
	result := h.sync.SyncProducts(c.Request.Context())
	if result.AlreadyRunning {
		h.Conflict(c, dto.ErrCodeSyncInProgress, result.Message)
		return
	}
	h.Success(c, result)
}

// SyncCategory triggers a single-page reconciliation scoped to one Weve category
func (h *WeveHandler) SyncCategory(c *gin.Context) {
	var uri struct {
		CategoryID int64 `uri:"categoryId" binding:"required"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid category id")
		return
	}

	result := h.sync.SyncProductsByCategory(c.Request.Context(), uri.CategoryID)
	h.Success(c, result)
}

// SyncStatus reports the reconciliation state
func (h *WeveHandler) SyncStatus(c *gin.Context) {
	h.Success(c, h.sync.Status())
}

// PushOrder forwards a local order to Weve
func (h *WeveHandler) PushOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}

	result, err := h.orders.PushOrder(c.Request.Context(), orderID)
	if err != nil {
		h.handleWeveError(c, err)
		return
	}
	h.Success(c, result)
}

// handleWeveError maps integration errors to HTTP responses. Structured
// platform rejections keep their status code and message.
func (h *WeveHandler) handleWeveError(c *gin.Context, err error) {
	if remoteErr, ok := weve.AsRemoteError(err); ok {
		status := remoteErr.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		h.Error(c, status, dto.ErrCodeWeveRejected, remoteErr.Error())
		return
	}

	switch {
	case errors.Is(err, weve.ErrNotLoggedIn):
		h.Unauthorized(c, "Not logged in to Weve")
	case errors.Is(err, weve.ErrNoRefreshToken):
		h.BadRequest(c, "Session has no refresh token")
	case errors.Is(err, weve.ErrRemoteUnavailable):
		h.Error(c, http.StatusBadGateway, dto.ErrCodeWeveUnavailable, "Weve platform is unavailable")
	case errors.Is(err, weve.ErrInvalidResponse):
		h.Error(c, http.StatusBadGateway, dto.ErrCodeWeveRejected, "Weve platform returned an invalid response")
	default:
		h.HandleDomainError(c, err)
	}
}
