package chatbot

import (
	"strings"
	"unicode"
)

// containsAny reports whether any of the words appears as a substring of
// text. Callers pass text already lower-cased.
func containsAny(text string, words []string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

func hasDigit(text string) bool {
	for _, r := range text {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// IsFinancialQuestion classifies a free-text message as finance-related.
// Non-financial keywords take precedence over everything else, so a message
// can be rejected even when it also carries financial vocabulary. Beyond the
// financial keyword list, a message with a digit plus both a savings-context
// and an income-context word counts as financial; that catches numeric
// goal-planning questions ("I get 600 every two weeks and want 5000 saved")
// that name no financial term.
func IsFinancialQuestion(input string) bool {
	text := strings.ToLower(input)

	if containsAny(text, nonFinancialKeywords) {
		return false
	}
	if containsAny(text, financialKeywords) {
		return true
	}
	return hasDigit(text) &&
		containsAny(text, savingsContextWords) &&
		containsAny(text, incomeContextWords)
}
