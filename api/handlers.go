package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"diamondbot/models"
	"diamondbot/service"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

type handlers struct {
	balanceService    service.BalanceService
	conversionService service.ConversionService
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("Failed to marshal JSON response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrUnsupportedCurrency):
		statusCode = http.StatusBadRequest
		message = err.Error()
	default:
		log.Errorf("Unhandled service error: %v", err)
	}

	respondWithJSON(w, statusCode, map[string]string{"error": message})
}

func accountKeyFromRequest(r *http.Request) (models.AccountKey, bool) {
	guildID, err := strconv.ParseInt(chi.URLParam(r, "guildID"), 10, 64)
	if err != nil {
		return models.AccountKey{}, false
	}
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		return models.AccountKey{}, false
	}
	return models.AccountKey{UserID: userID, GuildID: guildID}, true
}

// GET /guilds/{guildID}/users/{userID}/balances
func (h *handlers) getBalances(w http.ResponseWriter, r *http.Request) {
	key, ok := accountKeyFromRequest(r)
	if !ok {
		respondWithJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid guild or user id"})
		return
	}

	balances, err := h.balanceService.GetBalances(r.Context(), key)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"user_id":      key.UserID,
		"guild_id":     key.GuildID,
		"diamonds":     balances.Primary,
		"gift_card":    balances.GiftCard,
		"total_earned": balances.TotalEarned,
		"daily_streak": balances.DailyStreak,
		"multiplier":   balances.Multiplier,
		"last_daily":   balances.LastDaily,
	})
}

// GET /guilds/{guildID}/users/{userID}/simulate?currency=USD
func (h *handlers) simulateCurrency(w http.ResponseWriter, r *http.Request) {
	key, ok := accountKeyFromRequest(r)
	if !ok {
		respondWithJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid guild or user id"})
		return
	}

	currency := r.URL.Query().Get("currency")
	if currency == "" {
		respondWithJSON(w, http.StatusBadRequest, map[string]string{"error": "currency is required"})
		return
	}

	sim, err := h.conversionService.Simulate(r.Context(), key, currency)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"currency":        sim.Currency,
		"rate":            sim.Rate,
		"diamond_balance": sim.DiamondBalance,
		"rupee_value":     sim.RupeeValue,
		"converted_value": sim.ConvertedValue,
	})
}

// GET /guilds/{guildID}/leaderboard?limit=10
func (h *handlers) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	guildID, err := strconv.ParseInt(chi.URLParam(r, "guildID"), 10, 64)
	if err != nil {
		respondWithJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid guild id"})
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 10
	}

	accounts, err := h.balanceService.GetTopBalances(r.Context(), guildID, limit)
	if err != nil {
		respondWithError(w, err)
		return
	}

	type entry struct {
		UserID  int64 `json:"user_id"`
		Balance int64 `json:"balance"`
	}

	entries := make([]entry, 0, len(accounts))
	for _, account := range accounts {
		entries = append(entries, entry{UserID: account.UserID, Balance: account.Balance})
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"guild_id": guildID,
		"entries":  entries,
	})
}
