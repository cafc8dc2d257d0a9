package handler

import (
	"custody-broker/internal/adapter/http/dto"
	"custody-broker/internal/core/domain"
	"custody-broker/internal/core/ports"
	"custody-broker/pkg/apperror"
	"custody-broker/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SyncHandler handles reconciliation and known-destination endpoints.
type SyncHandler struct {
	syncSvc ports.SyncService
	destSvc ports.KnownDestinationService
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(syncSvc ports.SyncService, destSvc ports.KnownDestinationService) *SyncHandler {
	return &SyncHandler{syncSvc: syncSvc, destSvc: destSvc}
}

// Run handles POST /api/v1/connections/:id/sync.
func (h *SyncHandler) Run(c *gin.Context) {
	clientID := clientIDFrom(c)
	connID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("connection id must be a UUID"))
		return
	}

	result, err := h.syncSvc.Run(c.Request.Context(), clientID, connID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toSyncResultResponse(result))
}

// ListKnownDestinations handles GET /api/v1/connections/:id/known-destinations.
func (h *SyncHandler) ListKnownDestinations(c *gin.Context) {
	clientID := clientIDFrom(c)
	connID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("connection id must be a UUID"))
		return
	}

	dests, err := h.destSvc.FindAll(c.Request.Context(), clientID, connID)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.KnownDestinationResponse, 0, len(dests))
	for _, d := range dests {
		out = append(out, dto.KnownDestinationResponse{
			ExternalID:     d.ExternalID,
			Address:        d.Address,
			Classification: d.ExternalClassification,
			AssetID:        d.AssetID,
			NetworkID:      d.NetworkID,
			Label:          d.Label,
		})
	}
	response.OK(c, out)
}

func toSyncResultResponse(result *domain.SyncResult) dto.SyncResultResponse {
	return dto.SyncResultResponse{
		Mutations:         result.Mutations(),
		Wallets:           toSyncOpDTOs(result.Wallets),
		Accounts:          toSyncOpDTOs(result.Accounts),
		Addresses:         toSyncOpDTOs(result.Addresses),
		KnownDestinations: toSyncOpDTOs(result.KnownDestinations),
	}
}

func toSyncOpDTOs[E any](ops []domain.SyncOperation[E]) []dto.SyncOperationDTO {
	out := make([]dto.SyncOperationDTO, 0, len(ops))
	for _, op := range ops {
		d := dto.SyncOperationDTO{
			Type:       string(op.Type),
			ExternalID: op.ExternalID,
			Message:    op.Message,
			Context:    op.Context,
		}
		if op.EntityID != uuid.Nil {
			d.EntityID = op.EntityID.String()
		}
		out = append(out, d)
	}
	return out
}
