package chatbot

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var numberPattern = regexp.MustCompile(`[0-9][0-9,]*(?:\.[0-9]+)?`)

// savingsClarification is returned verbatim when the message does not carry
// both an income figure and a goal figure.
const savingsClarification = "I'd love to help you build a savings plan! To run the numbers I need two figures: " +
	"how much you earn per paycheck, and how much you want to save. " +
	"For example: \"I make $600 every two weeks and want to save $5000 by December.\""

const overstretchWarning = "Heads up: that's more than 20% of each paycheck, which is an ambitious rate. " +
	"You may want to extend your deadline or adjust the goal."

// savingsPlan computes a per-paycheck savings target from the first two
// numbers in the message, read as (income per paycheck, goal). A "k" or
// "thousand" immediately after the goal figure scales it. The deadline is
// fixed at the next December 31; remaining months convert to biweekly pay
// periods via ceil(months*30/14).
func savingsPlan(input string, now time.Time) string {
	text := strings.ToLower(input)

	locs := numberPattern.FindAllStringIndex(text, -1)
	if len(locs) < 2 {
		return savingsClarification
	}

	income := parseNumber(text[locs[0][0]:locs[0][1]])
	goal := parseNumber(text[locs[1][0]:locs[1][1]])
	goal *= trailingMagnitude(text[locs[1][1]:])

	if income <= 0 || goal <= 0 {
		return savingsClarification
	}

	months := monthsUntilDecember(now)
	periods := int(math.Ceil(float64(months) * 30 / 14))
	// Round up to whole cents so the plan never undershoots the goal
	perPaycheck := math.Ceil(goal/float64(periods)*100) / 100
	percent := perPaycheck / income * 100

	response := fmt.Sprintf(
		"Here's your savings plan: to reach $%.0f by December 31st you have about %d biweekly paychecks left. "+
			"That means setting aside $%.2f per paycheck, which is %.1f%% of your $%.0f income.",
		goal, periods, perPaycheck, percent, income)

	if percent > 20 {
		response += " " + overstretchWarning
	}
	return response
}

func parseNumber(s string) float64 {
	value, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return value
}

// trailingMagnitude returns the multiplier for a magnitude word immediately
// following a number ("5k", "5 thousand"). Only the goal figure gets this
// treatment; paycheck incomes are written in full.
func trailingMagnitude(rest string) float64 {
	rest = strings.TrimLeft(rest, " ")
	if strings.HasPrefix(rest, "thousand") {
		return 1_000
	}
	if strings.HasPrefix(rest, "k") {
		// "k" must end the word: "5k" yes, "5kg" no
		if len(rest) == 1 || !isWordChar(rest[1]) {
			return 1_000
		}
	}
	return 1
}

func isWordChar(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// monthsUntilDecember counts calendar months from now through December of
// the current year, December itself included. In December the deadline is
// weeks away, so the count bottoms out at one month.
func monthsUntilDecember(now time.Time) int {
	return 13 - int(now.Month())
}
