package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clientbook/client_records_app/internal/apperrors"
	"github.com/clientbook/client_records_app/internal/core/domain"
	portssvc "github.com/clientbook/client_records_app/internal/core/ports/services"
	"github.com/clientbook/client_records_app/internal/dto"
	"github.com/clientbook/client_records_app/internal/handlers"
	"github.com/clientbook/client_records_app/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ClientService ---
type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) CreateClient(ctx context.Context, req dto.CreateClientRequest) (*domain.Client, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest) (*domain.Client, error) {
	args := m.Called(ctx, clientID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) SetTransactionCount(ctx context.Context, clientID string, count int64) (*domain.Client, error) {
	args := m.Called(ctx, clientID, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) SearchClientsByName(ctx context.Context, nameSubstring string) ([]domain.Client, error) {
	args := m.Called(ctx, nameSubstring)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientService) DeleteClient(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.ClientSvcFacade = (*MockClientService)(nil)

// --- Mock Reconciler ---
type MockReconcilerService struct {
	mock.Mock
}

func (m *MockReconcilerService) Reconcile(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

func (m *MockReconcilerService) Sweep(ctx context.Context, clientIDs []string) portssvc.SweepResult {
	args := m.Called(ctx, clientIDs)
	return args.Get(0).(portssvc.SweepResult)
}

var _ portssvc.ReconcilerSvc = (*MockReconcilerService)(nil)

// --- Test Suite Setup ---

type ClientHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockClientSvc  *MockClientService
	mockRecordSvc  *MockRecordService
	mockReconciler *MockReconcilerService
}

func (suite *ClientHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockClientSvc = new(MockClientService)
	suite.mockRecordSvc = new(MockRecordService)
	suite.mockReconciler = new(MockReconcilerService)

	suite.router = gin.New()
	cfg := &config.Config{
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		RateLimit:          "100-M",
	}
	handlers.RegisterRoutes(suite.router, cfg, suite.mockClientSvc, suite.mockRecordSvc, suite.mockReconciler)
}

// performJSONRequest serves a request with a JSON body against the
// given router and returns the recorder.
func performJSONRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ClientHandlerTestSuite) TestCreateClient_Created() {
	client := &domain.Client{
		ClientID:      uuid.NewString(),
		ClientName:    "Jane Doe",
		ContactNumber: "555-1111",
		AccountStatus: domain.ClientStatusActive,
	}
	suite.mockClientSvc.On("CreateClient", mock.Anything, dto.CreateClientRequest{
		ClientName:    "Jane Doe",
		ContactNumber: "555-1111",
	}).Return(client, nil).Once()

	w := performJSONRequest(suite.router, http.MethodPost, "/api/v1/clients", gin.H{
		"client_name":    "Jane Doe",
		"contact_number": "555-1111",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ClientResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(client.ClientID, resp.ClientID)
	suite.Equal("Active", resp.AccountStatus)
	suite.mockClientSvc.AssertExpectations(suite.T())
}

func (suite *ClientHandlerTestSuite) TestCreateClient_Conflict() {
	suite.mockClientSvc.On("CreateClient", mock.Anything, mock.AnythingOfType("dto.CreateClientRequest")).
		Return(nil, apperrors.ErrDuplicate).Once()

	w := performJSONRequest(suite.router, http.MethodPost, "/api/v1/clients", gin.H{
		"client_name":    "Acme",
		"contact_number": "555-2222",
	})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *ClientHandlerTestSuite) TestCreateClient_MissingFields() {
	w := performJSONRequest(suite.router, http.MethodPost, "/api/v1/clients", gin.H{
		"client_name": "Acme",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockClientSvc.AssertNotCalled(suite.T(), "CreateClient", mock.Anything, mock.Anything)
}

func (suite *ClientHandlerTestSuite) TestSearchClients_UnsupportedColumn() {
	w := performJSONRequest(suite.router, http.MethodGet, "/api/v1/clients/search?col=contact_number&val=555", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockClientSvc.AssertNotCalled(suite.T(), "SearchClientsByName", mock.Anything, mock.Anything)
}

func (suite *ClientHandlerTestSuite) TestSearchClients_ByName() {
	clients := []domain.Client{{ClientID: uuid.NewString(), ClientName: "Jane Doe"}}
	suite.mockClientSvc.On("SearchClientsByName", mock.Anything, "jan").Return(clients, nil).Once()

	w := performJSONRequest(suite.router, http.MethodGet, "/api/v1/clients/search?col=client_name&val=jan", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListClientsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Clients, 1)
}

func (suite *ClientHandlerTestSuite) TestGetClient_NotFound() {
	clientID := uuid.NewString()
	suite.mockClientSvc.On("GetClientByID", mock.Anything, clientID).Return(nil, apperrors.ErrNotFound).Once()

	w := performJSONRequest(suite.router, http.MethodGet, "/api/v1/clients/"+clientID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ClientHandlerTestSuite) TestDeleteClient_NoContent() {
	clientID := uuid.NewString()
	suite.mockClientSvc.On("DeleteClient", mock.Anything, clientID).Return(nil).Once()

	w := performJSONRequest(suite.router, http.MethodDelete, "/api/v1/clients/"+clientID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *ClientHandlerTestSuite) TestSetTransactionCount_OK() {
	clientID := uuid.NewString()
	client := &domain.Client{ClientID: clientID, NoOfTransactions: 5, AccountStatus: domain.ClientStatusActive}
	suite.mockClientSvc.On("SetTransactionCount", mock.Anything, clientID, int64(5)).Return(client, nil).Once()

	w := performJSONRequest(suite.router, http.MethodPut, "/api/v1/clients/"+clientID+"/transaction-count", gin.H{
		"no_of_transactions": 5,
	})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ClientResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(5), resp.NoOfTransactions)
}

func (suite *ClientHandlerTestSuite) TestListClients_WithReconcileSweep() {
	clientID := uuid.NewString()
	clients := []domain.Client{{ClientID: clientID, ClientName: "Jane Doe", AccountStatus: domain.ClientStatusActive}}

	// Listed twice: once to collect ids for the sweep, once for the response.
	suite.mockClientSvc.On("ListClients", mock.Anything).Return(clients, nil).Twice()
	suite.mockReconciler.On("Sweep", mock.Anything, []string{clientID}).
		Return(portssvc.SweepResult{Reconciled: 1, Failed: map[string]error{}}).Once()

	w := performJSONRequest(suite.router, http.MethodGet, "/api/v1/clients?reconcile=true", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockReconciler.AssertExpectations(suite.T())
	suite.mockClientSvc.AssertExpectations(suite.T())
}

func (suite *ClientHandlerTestSuite) TestListClients_NoSweepByDefault() {
	suite.mockClientSvc.On("ListClients", mock.Anything).Return([]domain.Client{}, nil).Once()

	w := performJSONRequest(suite.router, http.MethodGet, "/api/v1/clients", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockReconciler.AssertNotCalled(suite.T(), "Sweep", mock.Anything, mock.Anything)
}

func TestClientHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ClientHandlerTestSuite))
}
