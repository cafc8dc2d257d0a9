package handler

import (
	"encoding/base64"

	"custody-broker/internal/adapter/http/dto"
	"custody-broker/internal/adapter/http/middleware"
	"custody-broker/internal/core/domain"
	"custody-broker/internal/core/ports"
	"custody-broker/pkg/apperror"
	"custody-broker/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ConnectionHandler handles connection lifecycle endpoints.
type ConnectionHandler struct {
	registry ports.ConnectionRegistry
}

// NewConnectionHandler creates a new ConnectionHandler.
func NewConnectionHandler(registry ports.ConnectionRegistry) *ConnectionHandler {
	return &ConnectionHandler{registry: registry}
}

// Create handles POST /api/v1/connections.
func (h *ConnectionHandler) Create(c *gin.Context) {
	clientID := clientIDFrom(c)

	var req dto.CreateConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	conn, err := h.registry.Create(c.Request.Context(), ports.CreateConnectionParams{
		ClientID: clientID,
		Provider: domain.Provider(req.Provider),
		Label:    req.Label,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toConnectionResponse(conn))
}

// Activate handles POST /api/v1/connections/:id/activate.
func (h *ConnectionHandler) Activate(c *gin.Context) {
	clientID := clientIDFrom(c)
	connID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("connection id must be a UUID"))
		return
	}

	var req dto.ActivateConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	sealed, err := base64.StdEncoding.DecodeString(req.SealedCredentials)
	if err != nil {
		response.Error(c, apperror.Validation("sealed_credentials must be base64"))
		return
	}

	conn, err := h.registry.Activate(c.Request.Context(), ports.ActivateConnectionParams{
		ClientID:          clientID,
		ConnectionID:      connID,
		URL:               req.URL,
		SealedCredentials: sealed,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toConnectionResponse(conn))
}

// Revoke handles POST /api/v1/connections/:id/revoke.
func (h *ConnectionHandler) Revoke(c *gin.Context) {
	clientID := clientIDFrom(c)
	connID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("connection id must be a UUID"))
		return
	}

	conn, err := h.registry.Revoke(c.Request.Context(), clientID, connID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toConnectionResponse(conn))
}

// List handles GET /api/v1/connections.
func (h *ConnectionHandler) List(c *gin.Context) {
	clientID := clientIDFrom(c)

	conns, err := h.registry.List(c.Request.Context(), clientID)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.ConnectionResponse, 0, len(conns))
	for i := range conns {
		out = append(out, toConnectionResponse(&conns[i]))
	}
	response.OK(c, out)
}

func toConnectionResponse(conn *domain.Connection) dto.ConnectionResponse {
	return dto.ConnectionResponse{
		ID:        conn.ID.String(),
		Provider:  string(conn.Provider),
		Status:    string(conn.Status),
		URL:       conn.URL,
		Label:     conn.Label,
		PublicKey: conn.PublicKey,
		CreatedAt: conn.CreatedAt,
		UpdatedAt: conn.UpdatedAt,
		RevokedAt: conn.RevokedAt,
	}
}

// clientIDFrom reads the authenticated client id set by middleware.ClientAuth.
func clientIDFrom(c *gin.Context) uuid.UUID {
	v, _ := c.Get(middleware.CtxClientID)
	id, _ := v.(uuid.UUID)
	return id
}
