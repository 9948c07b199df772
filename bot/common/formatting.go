package common

import (
	"fmt"
	"strings"
	"time"
)

// FormatDiamonds formats a Diamond amount with thousand separators
func FormatDiamonds(amount int64) string {
	str := fmt.Sprintf("%d", amount)

	n := len(str)
	if n <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatGameResult formats the outcome of a stake game
func FormatGameResult(won bool, betAmount, winAmount, newBalance int64) string {
	if won {
		return fmt.Sprintf("🎉 **You won!** You gained **%s 💎**. New balance: **%s 💎**",
			FormatDiamonds(winAmount), FormatDiamonds(newBalance))
	}
	return fmt.Sprintf("😔 **You lost!** You lost **%s 💎**. New balance: **%s 💎**",
		FormatDiamonds(betAmount), FormatDiamonds(newBalance))
}

// FormatCooldown renders a remaining cooldown as h/m for Discord messages
func FormatCooldown(remaining time.Duration) string {
	remaining = remaining.Round(time.Minute)
	hours := int(remaining.Hours())
	minutes := int(remaining.Minutes()) % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}
