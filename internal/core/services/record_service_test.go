package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/clientbook/client_records_app/internal/apperrors"
	"github.com/clientbook/client_records_app/internal/core/domain"
	portssvc "github.com/clientbook/client_records_app/internal/core/ports/services"
	"github.com/clientbook/client_records_app/internal/core/services"
	"github.com/clientbook/client_records_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockRecordRepository is a mock type for the RecordRepositoryFacade interface
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) FindRecordByID(ctx context.Context, recordID string) (*domain.Record, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Record), args.Error(1)
}

func (m *MockRecordRepository) FindRecordsByClientID(ctx context.Context, clientID string) ([]domain.Record, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

func (m *MockRecordRepository) SearchRecordsByTransaction(ctx context.Context, transactionSubstring string) ([]domain.Record, error) {
	args := m.Called(ctx, transactionSubstring)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

func (m *MockRecordRepository) CountActiveRecords(ctx context.Context, clientID string) (int64, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecordRepository) CountActiveRecordsForClients(ctx context.Context, clientIDs []string) (map[string]int64, error) {
	args := m.Called(ctx, clientIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockRecordRepository) SaveRecord(ctx context.Context, record domain.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRecordRepository) MarkRecordDeleted(ctx context.Context, recordID string, deletedAt time.Time) error {
	args := m.Called(ctx, recordID, deletedAt)
	return args.Error(0)
}

// MockReconciler is a mock type for the ReconcilerSvc interface
type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) Reconcile(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

func (m *MockReconciler) Sweep(ctx context.Context, clientIDs []string) portssvc.SweepResult {
	args := m.Called(ctx, clientIDs)
	return args.Get(0).(portssvc.SweepResult)
}

// --- Test Suite Setup ---

type RecordServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockRecordRepository
	mockReconciler *MockReconciler
	service        *services.RecordService
}

func (suite *RecordServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockRecordRepository)
	suite.mockReconciler = new(MockReconciler)
	suite.service = services.NewRecordService(suite.mockRepo, suite.mockReconciler)
}

// --- Test Cases ---

func (suite *RecordServiceTestSuite) TestCreateRecord_Success() {
	ctx := context.Background()
	clientID := uuid.NewString()
	req := dto.CreateRecordRequest{
		ClientID:    clientID,
		Date:        "2024-03-15",
		Transaction: "Monthly retainer",
		Payments:    decimal.NewFromInt(100),
		Expenses:    decimal.NewFromInt(25),
		Remarks:     "paid in cash",
	}

	suite.mockRepo.On("SaveRecord", ctx, mock.AnythingOfType("domain.Record")).Return(nil).Once()
	suite.mockReconciler.On("Reconcile", ctx, clientID).Return(nil).Once()

	record, err := suite.service.CreateRecord(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(record)
	suite.NotEmpty(record.RecordID)
	suite.Equal(clientID, record.ClientID)
	suite.Equal(domain.RecordStatusActive, record.RecordStatus)
	suite.True(record.TotalAmount.Equal(decimal.NewFromInt(75)), "total must be payments minus expenses")
	suite.Equal(2024, record.Date.Year())

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockReconciler.AssertExpectations(suite.T())
}

func (suite *RecordServiceTestSuite) TestCreateRecord_InvalidDate() {
	ctx := context.Background()
	req := dto.CreateRecordRequest{
		ClientID:    uuid.NewString(),
		Date:        "15/03/2024",
		Transaction: "Monthly retainer",
	}

	record, err := suite.service.CreateRecord(ctx, req)

	suite.Require().Error(err)
	suite.Nil(record)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveRecord", mock.Anything, mock.Anything)
	suite.mockReconciler.AssertNotCalled(suite.T(), "Reconcile", mock.Anything, mock.Anything)
}

func (suite *RecordServiceTestSuite) TestCreateRecord_ReconcileFailureDoesNotFailCreate() {
	ctx := context.Background()
	clientID := uuid.NewString()
	req := dto.CreateRecordRequest{
		ClientID:    clientID,
		Date:        "2024-03-15",
		Transaction: "Monthly retainer",
		Payments:    decimal.NewFromInt(100),
	}

	suite.mockRepo.On("SaveRecord", ctx, mock.AnythingOfType("domain.Record")).Return(nil).Once()
	// Reconciliation is best-effort: its failure leaves the counter stale
	// but the create itself must succeed.
	suite.mockReconciler.On("Reconcile", ctx, clientID).Return(assert.AnError).Once()

	record, err := suite.service.CreateRecord(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(record)
	suite.mockReconciler.AssertExpectations(suite.T())
}

func (suite *RecordServiceTestSuite) TestCreateRecord_SaveErrorSkipsReconcile() {
	ctx := context.Background()
	req := dto.CreateRecordRequest{
		ClientID:    uuid.NewString(),
		Date:        "2024-03-15",
		Transaction: "Monthly retainer",
	}

	suite.mockRepo.On("SaveRecord", ctx, mock.AnythingOfType("domain.Record")).Return(assert.AnError).Once()

	record, err := suite.service.CreateRecord(ctx, req)

	suite.Require().Error(err)
	suite.Nil(record)
	suite.mockReconciler.AssertNotCalled(suite.T(), "Reconcile", mock.Anything, mock.Anything)
}

func (suite *RecordServiceTestSuite) TestDeleteRecord_Success() {
	ctx := context.Background()
	clientID := uuid.NewString()
	recordID := uuid.NewString()
	existing := &domain.Record{
		RecordID:     recordID,
		ClientID:     clientID,
		RecordStatus: domain.RecordStatusActive,
	}

	suite.mockRepo.On("FindRecordByID", ctx, recordID).Return(existing, nil).Once()
	suite.mockRepo.On("MarkRecordDeleted", ctx, recordID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockReconciler.On("Reconcile", ctx, clientID).Return(nil).Once()

	err := suite.service.DeleteRecord(ctx, recordID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockReconciler.AssertExpectations(suite.T())
}

func (suite *RecordServiceTestSuite) TestDeleteRecord_NotFound() {
	ctx := context.Background()
	recordID := uuid.NewString()

	suite.mockRepo.On("FindRecordByID", ctx, recordID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteRecord(ctx, recordID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkRecordDeleted", mock.Anything, mock.Anything, mock.Anything)
	suite.mockReconciler.AssertNotCalled(suite.T(), "Reconcile", mock.Anything, mock.Anything)
}

func (suite *RecordServiceTestSuite) TestDeleteRecord_ReconcileFailureDoesNotFailDelete() {
	ctx := context.Background()
	clientID := uuid.NewString()
	recordID := uuid.NewString()
	existing := &domain.Record{
		RecordID:     recordID,
		ClientID:     clientID,
		RecordStatus: domain.RecordStatusActive,
	}

	suite.mockRepo.On("FindRecordByID", ctx, recordID).Return(existing, nil).Once()
	suite.mockRepo.On("MarkRecordDeleted", ctx, recordID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockReconciler.On("Reconcile", ctx, clientID).Return(assert.AnError).Once()

	err := suite.service.DeleteRecord(ctx, recordID)

	suite.Require().NoError(err)
	suite.mockReconciler.AssertExpectations(suite.T())
}

func (suite *RecordServiceTestSuite) TestCountActiveRecords() {
	ctx := context.Background()
	clientIDs := []string{"a", "b"}
	expected := map[string]int64{"a": 3}

	suite.mockRepo.On("CountActiveRecordsForClients", ctx, clientIDs).Return(expected, nil).Once()

	counts, err := suite.service.CountActiveRecords(ctx, clientIDs)

	suite.Require().NoError(err)
	suite.Equal(expected, counts)
}

func TestRecordServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecordServiceTestSuite))
}
