package service

import (
	"context"
	"time"

	"diamondbot/events"
	"diamondbot/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Get(ctx context.Context, key models.AccountKey) (*models.Account, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetForUpdate(ctx context.Context, key models.AccountKey) (*models.Account, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) Ensure(ctx context.Context, key models.AccountKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockAccountRepository) AddBalance(ctx context.Context, key models.AccountKey, amount int64) error {
	args := m.Called(ctx, key, amount)
	return args.Error(0)
}

func (m *MockAccountRepository) DeductBalance(ctx context.Context, key models.AccountKey, amount int64) error {
	args := m.Called(ctx, key, amount)
	return args.Error(0)
}

func (m *MockAccountRepository) SetDailyClaim(ctx context.Context, key models.AccountKey, claimedAt time.Time, streak int) error {
	args := m.Called(ctx, key, claimedAt, streak)
	return args.Error(0)
}

func (m *MockAccountRepository) GetTopBalances(ctx context.Context, guildID int64, limit int) ([]*models.Account, error) {
	args := m.Called(ctx, guildID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}

// MockGiftCardRepository is a mock implementation of GiftCardRepository
type MockGiftCardRepository struct {
	mock.Mock
}

func (m *MockGiftCardRepository) Get(ctx context.Context, key models.AccountKey) (*models.GiftCardAccount, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GiftCardAccount), args.Error(1)
}

func (m *MockGiftCardRepository) AddBalance(ctx context.Context, key models.AccountKey, amount decimal.Decimal) error {
	args := m.Called(ctx, key, amount)
	return args.Error(0)
}

func (m *MockGiftCardRepository) DeductBalance(ctx context.Context, key models.AccountKey, amount decimal.Decimal) error {
	args := m.Called(ctx, key, amount)
	return args.Error(0)
}

// MockBalanceHistoryRepository is a mock implementation of BalanceHistoryRepository
type MockBalanceHistoryRepository struct {
	mock.Mock
}

func (m *MockBalanceHistoryRepository) Record(ctx context.Context, history *models.BalanceHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MockBalanceHistoryRepository) GetByAccount(ctx context.Context, key models.AccountKey, limit int) ([]*models.BalanceHistory, error) {
	args := m.Called(ctx, key, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BalanceHistory), args.Error(1)
}

// capturingPublisher records published events for assertions
type capturingPublisher struct {
	published []events.Event
}

func (p *capturingPublisher) Publish(e events.Event) {
	p.published = append(p.published, e)
}

// MockUnitOfWork is a mock implementation of UnitOfWork backed by the
// repository mocks above
type MockUnitOfWork struct {
	mock.Mock
	accountRepo  AccountRepository
	giftCardRepo GiftCardRepository
	historyRepo  BalanceHistoryRepository
	eventBus     *capturingPublisher
}

// SetRepositories wires the repository mocks into the unit of work
func (m *MockUnitOfWork) SetRepositories(accounts AccountRepository, giftCards GiftCardRepository, history BalanceHistoryRepository) {
	m.accountRepo = accounts
	m.giftCardRepo = giftCards
	m.historyRepo = history
	m.eventBus = &capturingPublisher{}
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) AccountRepository() AccountRepository {
	return m.accountRepo
}

func (m *MockUnitOfWork) GiftCardRepository() GiftCardRepository {
	return m.giftCardRepo
}

func (m *MockUnitOfWork) BalanceHistoryRepository() BalanceHistoryRepository {
	return m.historyRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
