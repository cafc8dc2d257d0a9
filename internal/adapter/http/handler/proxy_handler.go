package handler

import (
	"io"
	"net/http"

	"custody-broker/internal/core/ports"
	"custody-broker/pkg/apperror"
	"custody-broker/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProxyHandler forwards arbitrary requests to the connection's provider.
type ProxyHandler struct {
	proxySvc ports.ProxyService
}

// NewProxyHandler creates a new ProxyHandler.
func NewProxyHandler(proxySvc ports.ProxyService) *ProxyHandler {
	return &ProxyHandler{proxySvc: proxySvc}
}

// Forward handles any method on /api/v1/connections/:id/proxy/*path.
// The provider's status code and body come back untouched.
func (h *ProxyHandler) Forward(c *gin.Context) {
	clientID := clientIDFrom(c)
	connID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("connection id must be a UUID"))
		return
	}

	var body []byte
	if c.Request.Body != nil {
		body, err = io.ReadAll(c.Request.Body)
		if err != nil {
			response.Error(c, apperror.Validation("cannot read request body"))
			return
		}
	}

	resp, err := h.proxySvc.Forward(c.Request.Context(), clientID, connID, ports.ProxyRequest{
		Method: c.Request.Method,
		Path:   c.Param("path"),
		Query:  c.Request.URL.RawQuery,
		Body:   body,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(resp.StatusCode, "application/json", resp.Body)
}

// HealthCheck reports dependency health. Any failing dependency degrades
// the overall status to 503.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
