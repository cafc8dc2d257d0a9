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

// TransferHandler handles transfer endpoints.
type TransferHandler struct {
	transferSvc ports.TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferSvc ports.TransferService) *TransferHandler {
	return &TransferHandler{transferSvc: transferSvc}
}

// Send handles POST /api/v1/connections/:id/transfers.
func (h *TransferHandler) Send(c *gin.Context) {
	clientID := clientIDFrom(c)
	connID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("connection id must be a UUID"))
		return
	}

	var req dto.SendTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	source, err := toTransferParty(req.Source)
	if err != nil {
		response.Error(c, err)
		return
	}
	destination, err := toTransferParty(req.Destination)
	if err != nil {
		response.Error(c, err)
		return
	}

	transfer, err := h.transferSvc.Send(c.Request.Context(), clientID, connID, ports.SendTransferRequest{
		IdempotenceKey: req.IdempotenceKey,
		Source:         source,
		Destination:    destination,
		AssetID:        req.AssetID,
		NetworkID:      req.NetworkID,
		GrossAmount:    req.GrossAmount,
		FeeAttribution: domain.NetworkFeeAttribution(req.FeeAttribution),
		Memo:           req.Memo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toTransferResponse(transfer))
}

// Get handles GET /api/v1/connections/:id/transfers/:transferId.
func (h *TransferHandler) Get(c *gin.Context) {
	clientID := clientIDFrom(c)
	connID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("connection id must be a UUID"))
		return
	}
	transferID, err := uuid.Parse(c.Param("transferId"))
	if err != nil {
		response.Error(c, apperror.Validation("transfer id must be a UUID"))
		return
	}

	resolved, err := h.transferSvc.FindByID(c.Request.Context(), clientID, connID, transferID)
	if err != nil {
		response.Error(c, err)
		return
	}

	fees := make([]dto.TransferFeeDTO, 0, len(resolved.Fees))
	for _, f := range resolved.Fees {
		fees = append(fees, dto.TransferFeeDTO{Type: f.Type, AssetID: f.AssetID, Amount: f.Amount})
	}
	response.OK(c, dto.ResolvedTransferResponse{
		TransferResponse: toTransferResponse(&resolved.Transfer),
		Status:           string(resolved.Status),
		Fees:             fees,
	})
}

func toTransferParty(p dto.TransferPartyDTO) (domain.TransferParty, error) {
	party := domain.TransferParty{
		Type:    domain.TransferPartyType(p.Type),
		Address: p.Address,
	}
	if p.ID != "" {
		id, err := uuid.Parse(p.ID)
		if err != nil {
			return domain.TransferParty{}, apperror.Validation("party id must be a UUID")
		}
		party.ID = id
	}
	return party, nil
}

func toTransferResponse(t *domain.Transfer) dto.TransferResponse {
	return dto.TransferResponse{
		ID:             t.ID.String(),
		ConnectionID:   t.ConnectionID.String(),
		Provider:       string(t.Provider),
		ExternalID:     t.ExternalID,
		IdempotenceKey: t.IdempotenceKey,
		Source:         toPartyDTO(t.Source),
		Destination:    toPartyDTO(t.Destination),
		AssetID:        t.AssetID,
		NetworkID:      t.NetworkID,
		GrossAmount:    t.GrossAmount,
		FeeAttribution: string(t.FeeAttribution),
		Memo:           t.Memo,
		CreatedAt:      t.CreatedAt,
	}
}

func toPartyDTO(p domain.TransferParty) dto.TransferPartyDTO {
	out := dto.TransferPartyDTO{Type: string(p.Type), Address: p.Address}
	if p.ID != uuid.Nil {
		out.ID = p.ID.String()
	}
	return out
}
