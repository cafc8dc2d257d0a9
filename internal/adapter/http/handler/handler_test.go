package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"custody-broker/internal/adapter/http/dto"
	"custody-broker/internal/adapter/http/middleware"
	"custody-broker/internal/core/domain"
	"custody-broker/internal/core/ports"
	"custody-broker/internal/core/ports/mocks"
	"custody-broker/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(t *testing.T, w *httptest.ResponseRecorder, clientID uuid.UUID, method, target string, body []byte) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.CtxClientID, clientID)
	return c
}

func responseData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %s", w.Body.String())
	return data
}

// --- Connection Handler ---

func TestConnectionHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := mocks.NewMockConnectionRegistry(ctrl)
	h := NewConnectionHandler(registry)

	clientID := uuid.New()
	conn := &domain.Connection{
		ID:        uuid.New(),
		ClientID:  clientID,
		Provider:  domain.ProviderAnchorage,
		Status:    domain.ConnectionStatusPending,
		Label:     "prod",
		PublicKey: "cHVi",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	registry.EXPECT().Create(gomock.Any(), ports.CreateConnectionParams{
		ClientID: clientID,
		Provider: domain.ProviderAnchorage,
		Label:    "prod",
	}).Return(conn, nil)

	body, _ := json.Marshal(dto.CreateConnectionRequest{Provider: "ANCHORAGE", Label: "prod"})
	w := httptest.NewRecorder()
	c := testContext(t, w, clientID, http.MethodPost, "/api/v1/connections", body)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := responseData(t, w)
	assert.Equal(t, conn.ID.String(), data["id"])
	assert.Equal(t, "PENDING", data["status"])
	assert.Equal(t, "cHVi", data["public_key"])
}

func TestConnectionHandler_Create_UnknownProvider(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := mocks.NewMockConnectionRegistry(ctrl)
	h := NewConnectionHandler(registry)

	registry.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(nil, apperror.Validation("unknown provider"))

	body, _ := json.Marshal(dto.CreateConnectionRequest{Provider: "KRAKEN"})
	w := httptest.NewRecorder()
	c := testContext(t, w, uuid.New(), http.MethodPost, "/api/v1/connections", body)

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VAL_001")
}

func TestConnectionHandler_Activate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := mocks.NewMockConnectionRegistry(ctrl)
	h := NewConnectionHandler(registry)

	clientID := uuid.New()
	connID := uuid.New()
	sealed := []byte("sealed-credential-blob")

	registry.EXPECT().Activate(gomock.Any(), ports.ActivateConnectionParams{
		ClientID:          clientID,
		ConnectionID:      connID,
		URL:               "https://api.anchorage.com",
		SealedCredentials: sealed,
	}).Return(&domain.Connection{
		ID:       connID,
		ClientID: clientID,
		Provider: domain.ProviderAnchorage,
		Status:   domain.ConnectionStatusActive,
		URL:      "https://api.anchorage.com",
	}, nil)

	body, _ := json.Marshal(dto.ActivateConnectionRequest{
		URL:               "https://api.anchorage.com",
		SealedCredentials: base64.StdEncoding.EncodeToString(sealed),
	})
	w := httptest.NewRecorder()
	c := testContext(t, w, clientID, http.MethodPost, "/api/v1/connections/"+connID.String()+"/activate", body)
	c.Params = gin.Params{{Key: "id", Value: connID.String()}}

	h.Activate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := responseData(t, w)
	assert.Equal(t, "ACTIVE", data["status"])
	assert.NotContains(t, data, "public_key", "active connections do not expose the sealing key")
}

func TestConnectionHandler_Activate_BadBase64(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := mocks.NewMockConnectionRegistry(ctrl)
	h := NewConnectionHandler(registry)

	connID := uuid.New()
	body, _ := json.Marshal(dto.ActivateConnectionRequest{
		URL:               "https://api.anchorage.com",
		SealedCredentials: "not-base64!!!",
	})
	w := httptest.NewRecorder()
	c := testContext(t, w, uuid.New(), http.MethodPost, "/api/v1/connections/"+connID.String()+"/activate", body)
	c.Params = gin.Params{{Key: "id", Value: connID.String()}}

	h.Activate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConnectionHandler_Revoke_IllegalTransition(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := mocks.NewMockConnectionRegistry(ctrl)
	h := NewConnectionHandler(registry)

	connID := uuid.New()
	clientID := uuid.New()
	registry.EXPECT().Revoke(gomock.Any(), clientID, connID).
		Return(nil, apperror.ErrConnectionInvalidStatus(clientID.String(), connID.String(), "PENDING", "REVOKED"))

	w := httptest.NewRecorder()
	c := testContext(t, w, clientID, http.MethodPost, "/api/v1/connections/"+connID.String()+"/revoke", nil)
	c.Params = gin.Params{{Key: "id", Value: connID.String()}}

	h.Revoke(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "CON_002")
}

// --- Transfer Handler ---

func TestTransferHandler_Send(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transferSvc := mocks.NewMockTransferService(ctrl)
	h := NewTransferHandler(transferSvc)

	clientID := uuid.New()
	connID := uuid.New()
	sourceID := uuid.New()

	transferSvc.EXPECT().Send(gomock.Any(), clientID, connID, ports.SendTransferRequest{
		IdempotenceKey: "idem-1",
		Source:         domain.TransferParty{Type: domain.PartyTypeAccount, ID: sourceID},
		Destination:    domain.TransferParty{Address: "0xdest"},
		AssetID:        "ETH",
		GrossAmount:    "1.5",
		FeeAttribution: domain.FeeDeduct,
	}).Return(&domain.Transfer{
		ID:             uuid.New(),
		ClientID:       clientID,
		ConnectionID:   connID,
		Provider:       domain.ProviderFireblocks,
		ExternalID:     "tx-9",
		IdempotenceKey: "idem-1",
		Source:         domain.TransferParty{Type: domain.PartyTypeAccount, ID: sourceID},
		Destination:    domain.TransferParty{Address: "0xdest"},
		AssetID:        "ETH",
		GrossAmount:    "1.5",
		FeeAttribution: domain.FeeDeduct,
		CreatedAt:      time.Now().UTC(),
	}, nil)

	body, _ := json.Marshal(dto.SendTransferRequest{
		IdempotenceKey: "idem-1",
		Source:         dto.TransferPartyDTO{Type: "ACCOUNT", ID: sourceID.String()},
		Destination:    dto.TransferPartyDTO{Address: "0xdest"},
		AssetID:        "ETH",
		GrossAmount:    "1.5",
		FeeAttribution: "DEDUCT",
	})
	w := httptest.NewRecorder()
	c := testContext(t, w, clientID, http.MethodPost, "/api/v1/connections/"+connID.String()+"/transfers", body)
	c.Params = gin.Params{{Key: "id", Value: connID.String()}}

	h.Send(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := responseData(t, w)
	assert.Equal(t, "tx-9", data["external_id"])
	assert.Equal(t, "DEDUCT", data["network_fee_attribution"])
	assert.NotContains(t, data, "status", "submit responses never carry a status")
}

func TestTransferHandler_Send_IdempotenceConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transferSvc := mocks.NewMockTransferService(ctrl)
	h := NewTransferHandler(transferSvc)

	connID := uuid.New()
	transferSvc.EXPECT().Send(gomock.Any(), gomock.Any(), connID, gomock.Any()).
		Return(nil, apperror.ErrIdempotenceConflict("idem-1"))

	body, _ := json.Marshal(dto.SendTransferRequest{
		IdempotenceKey: "idem-1",
		Source:         dto.TransferPartyDTO{Type: "ACCOUNT", ID: uuid.New().String()},
		Destination:    dto.TransferPartyDTO{Address: "0xdest"},
		AssetID:        "ETH",
		GrossAmount:    "1.5",
	})
	w := httptest.NewRecorder()
	c := testContext(t, w, uuid.New(), http.MethodPost, "/api/v1/connections/"+connID.String()+"/transfers", body)
	c.Params = gin.Params{{Key: "id", Value: connID.String()}}

	h.Send(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "TRF_001")
}

func TestTransferHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transferSvc := mocks.NewMockTransferService(ctrl)
	h := NewTransferHandler(transferSvc)

	clientID := uuid.New()
	connID := uuid.New()
	transferID := uuid.New()

	transferSvc.EXPECT().FindByID(gomock.Any(), clientID, connID, transferID).
		Return(&domain.ResolvedTransfer{
			Transfer: domain.Transfer{
				ID:           transferID,
				ConnectionID: connID,
				Provider:     domain.ProviderBitGo,
				ExternalID:   "w-1:btc:t-7",
				GrossAmount:  "0.5",
			},
			Status: domain.TransferStatusProcessing,
			Fees:   []domain.TransferFee{{Type: "NETWORK", Amount: "0.0001"}},
		}, nil)

	w := httptest.NewRecorder()
	c := testContext(t, w, clientID, http.MethodGet, "/api/v1/connections/"+connID.String()+"/transfers/"+transferID.String(), nil)
	c.Params = gin.Params{
		{Key: "id", Value: connID.String()},
		{Key: "transferId", Value: transferID.String()},
	}

	h.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := responseData(t, w)
	assert.Equal(t, "PROCESSING", data["status"])
	fees := data["fees"].([]interface{})
	require.Len(t, fees, 1)
}

// --- Sync Handler ---

func TestSyncHandler_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	syncSvc := mocks.NewMockSyncService(ctrl)
	destSvc := mocks.NewMockKnownDestinationService(ctrl)
	h := NewSyncHandler(syncSvc, destSvc)

	clientID := uuid.New()
	connID := uuid.New()
	walletID := uuid.New()

	syncSvc.EXPECT().Run(gomock.Any(), clientID, connID).Return(&domain.SyncResult{
		Wallets: []domain.SyncOperation[domain.Wallet]{
			{Type: domain.SyncOpCreate, Create: &domain.Wallet{ID: walletID, ExternalID: "v-1"}},
		},
		Accounts: []domain.SyncOperation[domain.Account]{
			{Type: domain.SyncOpSkip, ExternalID: "a-orphan", Message: "parent wallet not found"},
		},
	}, nil)

	w := httptest.NewRecorder()
	c := testContext(t, w, clientID, http.MethodPost, "/api/v1/connections/"+connID.String()+"/sync", nil)
	c.Params = gin.Params{{Key: "id", Value: connID.String()}}

	h.Run(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := responseData(t, w)
	assert.Equal(t, float64(1), data["mutations"])
	accounts := data["accounts"].([]interface{})
	require.Len(t, accounts, 1)
	skip := accounts[0].(map[string]interface{})
	assert.Equal(t, "SKIP", skip["type"])
	assert.Equal(t, "a-orphan", skip["external_id"])
}

func TestSyncHandler_ListKnownDestinations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	syncSvc := mocks.NewMockSyncService(ctrl)
	destSvc := mocks.NewMockKnownDestinationService(ctrl)
	h := NewSyncHandler(syncSvc, destSvc)

	clientID := uuid.New()
	connID := uuid.New()
	destSvc.EXPECT().FindAll(gomock.Any(), clientID, connID).Return([]domain.KnownDestination{
		{ExternalID: "td-1", Address: "0xcafe", ExternalClassification: "trusted"},
	}, nil)

	w := httptest.NewRecorder()
	c := testContext(t, w, clientID, http.MethodGet, "/api/v1/connections/"+connID.String()+"/known-destinations", nil)
	c.Params = gin.Params{{Key: "id", Value: connID.String()}}

	h.ListKnownDestinations(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "0xcafe")
}

// --- Proxy Handler ---

func TestProxyHandler_Forward(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	proxySvc := mocks.NewMockProxyService(ctrl)
	h := NewProxyHandler(proxySvc)

	clientID := uuid.New()
	connID := uuid.New()
	proxySvc.EXPECT().Forward(gomock.Any(), clientID, connID, ports.ProxyRequest{
		Method: http.MethodGet,
		Path:   "/v2/vaults",
		Query:  "limit=5",
		Body:   []byte{},
	}).Return(&ports.ProxyResponse{StatusCode: 200, Body: []byte(`{"vaults":[]}`)}, nil)

	w := httptest.NewRecorder()
	c := testContext(t, w, clientID, http.MethodGet, "/api/v1/connections/"+connID.String()+"/proxy/v2/vaults?limit=5", nil)
	c.Params = gin.Params{
		{Key: "id", Value: connID.String()},
		{Key: "path", Value: "/v2/vaults"},
	}

	h.Forward(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"vaults":[]}`, w.Body.String())
}

func TestProxyHandler_Forward_Unsupported(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	proxySvc := mocks.NewMockProxyService(ctrl)
	h := NewProxyHandler(proxySvc)

	connID := uuid.New()
	proxySvc.EXPECT().Forward(gomock.Any(), gomock.Any(), connID, gomock.Any()).
		Return(nil, apperror.ErrProxyNotSupported("BITGO"))

	w := httptest.NewRecorder()
	c := testContext(t, w, uuid.New(), http.MethodGet, "/api/v1/connections/"+connID.String()+"/proxy/api/v2/wallets", nil)
	c.Params = gin.Params{
		{Key: "id", Value: connID.String()},
		{Key: "path", Value: "/api/v2/wallets"},
	}

	h.Forward(c)

	assert.Equal(t, http.StatusNotImplemented, w.Code)
	assert.Contains(t, w.Body.String(), "PRV_003")
}
