package service

import (
	"context"
	"time"

	"viralcast/events"
	"viralcast/models"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetEligibleAccounts(ctx context.Context, platform models.Platform) ([]*models.Account, error) {
	args := m.Called(ctx, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetAll(ctx context.Context) ([]*models.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplySuccess(ctx context.Context, accountID int64) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAccountRepository) ApplyFailure(ctx context.Context, accountID int64, errorMessage string) (int, error) {
	args := m.Called(ctx, accountID, errorMessage)
	return args.Int(0), args.Error(1)
}

// MockContentRepository is a mock implementation of ContentRepository
type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) GetByID(ctx context.Context, id string) (*models.Content, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Content), args.Error(1)
}

func (m *MockContentRepository) SetStatus(ctx context.Context, id string, status models.ContentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockContentRepository) GetDueScheduled(ctx context.Context, now time.Time, limit int) ([]*models.Content, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Content), args.Error(1)
}

// MockAttemptRepository is a mock implementation of AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Create(ctx context.Context, attempt *models.PostingAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) GetSince(ctx context.Context, since time.Time) ([]*models.PostingAttempt, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PostingAttempt), args.Error(1)
}

// MockActivityLogRepository is a mock implementation of ActivityLogRepository
type MockActivityLogRepository struct {
	mock.Mock
}

func (m *MockActivityLogRepository) Record(ctx context.Context, entry *models.ActivityLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

// MockDeliveryAdapter is a mock implementation of DeliveryAdapter
type MockDeliveryAdapter struct {
	mock.Mock
}

func (m *MockDeliveryAdapter) Platform() models.Platform {
	args := m.Called()
	return args.Get(0).(models.Platform)
}

func (m *MockDeliveryAdapter) Deliver(ctx context.Context, account *models.Account, payload *models.PostPayload) (*DeliveryResult, error) {
	args := m.Called(ctx, account, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DeliveryResult), args.Error(1)
}

// MockAdapterRegistry is a mock implementation of AdapterRegistry
type MockAdapterRegistry struct {
	mock.Mock
}

func (m *MockAdapterRegistry) Get(platform models.Platform) (DeliveryAdapter, bool) {
	args := m.Called(platform)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(DeliveryAdapter), args.Bool(1)
}

// MockAccountSelector is a mock implementation of AccountSelector
type MockAccountSelector struct {
	mock.Mock
}

func (m *MockAccountSelector) SelectAccount(ctx context.Context, criteria SelectionCriteria) (*models.Account, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

// MockPostingService is a mock implementation of PostingService
type MockPostingService struct {
	mock.Mock
}

func (m *MockPostingService) PostWithRotation(ctx context.Context, content *models.Content, platform models.Platform, payload *models.PostPayload) (*models.PostingResult, error) {
	args := m.Called(ctx, content, platform, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PostingResult), args.Error(1)
}
