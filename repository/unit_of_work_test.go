package repository

import (
	"context"
	"testing"
	"time"

	"diamondbot/events"
	"diamondbot/models"
	"diamondbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_CommitPersistsAndFlushesEvents(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	bus := events.NewBus()
	received := make(chan events.Event, 1)
	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) {
		received <- event
	})

	factory := NewUnitOfWorkFactory(testDB.DB, bus)
	ctx := context.Background()
	key := testutil.TestKey(1)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	require.NoError(t, uow.AccountRepository().AddBalance(ctx, key, 500))
	uow.EventBus().Publish(events.BalanceChangeEvent{
		UserID:       key.UserID,
		GuildID:      key.GuildID,
		NewBalance:   500,
		ChangeAmount: 500,
	})

	require.NoError(t, uow.Commit())

	// The write is visible outside the transaction
	account, err := NewAccountRepository(testDB.DB).Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(500), account.Balance)

	// The staged event reached the main bus
	select {
	case event := <-received:
		change, ok := event.(events.BalanceChangeEvent)
		require.True(t, ok)
		assert.Equal(t, int64(500), change.ChangeAmount)
	case <-time.After(2 * time.Second):
		t.Fatal("expected balance change event after commit")
	}
}

func TestUnitOfWork_RollbackDiscardsWritesAndEvents(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	bus := events.NewBus()
	received := make(chan events.Event, 1)
	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) {
		received <- event
	})

	factory := NewUnitOfWorkFactory(testDB.DB, bus)
	ctx := context.Background()
	key := testutil.TestKey(2)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	require.NoError(t, uow.AccountRepository().AddBalance(ctx, key, 500))
	uow.EventBus().Publish(events.BalanceChangeEvent{
		UserID:  key.UserID,
		GuildID: key.GuildID,
	})

	require.NoError(t, uow.Rollback())

	account, err := NewAccountRepository(testDB.DB).Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(0), account.Balance)

	select {
	case <-received:
		t.Fatal("no event should be emitted after rollback")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestUnitOfWork_RepositoriesShareTheTransaction(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	factory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())
	ctx := context.Background()
	key := testutil.TestKey(3)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	require.NoError(t, uow.AccountRepository().AddBalance(ctx, key, 250))
	require.NoError(t, uow.BalanceHistoryRepository().Record(ctx, &models.BalanceHistory{
		UserID:          key.UserID,
		GuildID:         key.GuildID,
		BalanceBefore:   0,
		BalanceAfter:    250,
		ChangeAmount:    250,
		TransactionType: models.TransactionTypeAdjustUp,
	}))

	// Uncommitted writes are visible inside the unit of work
	account, err := uow.AccountRepository().Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(250), account.Balance)

	// And invisible outside it
	outside, err := NewAccountRepository(testDB.DB).Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(0), outside.Balance)

	require.NoError(t, uow.Commit())

	entries, err := NewBalanceHistoryRepository(testDB.DB).GetByAccount(ctx, key, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.TransactionTypeAdjustUp, entries[0].TransactionType)
}

func TestUnitOfWork_BeginTwiceFails(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	factory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())
	ctx := context.Background()

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	assert.Error(t, uow.Begin(ctx))
}
