package service

import (
	"time"

	"diamondbot/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// anyCtx matches the context argument in repository expectations
var anyCtx = mock.Anything

// serviceMocks bundles a unit of work factory wired with mock repositories
type serviceMocks struct {
	factory   *MockUnitOfWorkFactory
	uow       *MockUnitOfWork
	accounts  *MockAccountRepository
	giftCards *MockGiftCardRepository
	history   *MockBalanceHistoryRepository
}

func setupMocks() *serviceMocks {
	accounts := &MockAccountRepository{}
	giftCards := &MockGiftCardRepository{}
	history := &MockBalanceHistoryRepository{}

	uow := &MockUnitOfWork{}
	uow.SetRepositories(accounts, giftCards, history)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit").Return(nil)
	uow.On("Rollback").Return(nil)

	factory := &MockUnitOfWorkFactory{}
	factory.On("Create").Return(uow)

	return &serviceMocks{
		factory:   factory,
		uow:       uow,
		accounts:  accounts,
		giftCards: giftCards,
		history:   history,
	}
}

func testAccount(key models.AccountKey, balance int64) *models.Account {
	return &models.Account{
		UserID:     key.UserID,
		GuildID:    key.GuildID,
		Balance:    balance,
		Multiplier: decimal.NewFromInt(1),
	}
}

func testAccountWithDaily(key models.AccountKey, balance int64, lastDaily time.Time, streak int) *models.Account {
	account := testAccount(key, balance)
	account.LastDaily = &lastDaily
	account.DailyStreak = streak
	return account
}

func historyOfType(txType models.TransactionType) any {
	return mock.MatchedBy(func(h *models.BalanceHistory) bool {
		return h.TransactionType == txType
	})
}

func decimalEqual(expected decimal.Decimal) any {
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(expected)
	})
}
