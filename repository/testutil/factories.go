package testutil

import (
	"diamondbot/models"
)

// TestKey builds an account key in a fixed test guild
func TestKey(userID int64) models.AccountKey {
	return models.AccountKey{UserID: userID, GuildID: 900100}
}

// CreateTestHistory builds a balance history entry ready to be recorded
func CreateTestHistory(key models.AccountKey, txType models.TransactionType) *models.BalanceHistory {
	return &models.BalanceHistory{
		UserID:          key.UserID,
		GuildID:         key.GuildID,
		BalanceBefore:   1000,
		BalanceAfter:    1100,
		ChangeAmount:    100,
		TransactionType: txType,
	}
}
