package chatbot

import (
	"regexp"
	"strconv"
	"strings"

	"finpulse/models"
)

// amountPattern captures an optional dollar sign, a number with optional
// thousands separators and decimals, and an optional magnitude suffix.
var amountPattern = regexp.MustCompile(`\$?\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*(thousand|million|billion|k|m|b)?\b`)

func magnitudeMultiplier(suffix string) float64 {
	switch suffix {
	case "thousand", "k":
		return 1_000
	case "million", "m":
		return 1_000_000
	case "billion", "b":
		return 1_000_000_000
	default:
		return 1
	}
}

func parseAmount(number, suffix string) float64 {
	value, err := strconv.ParseFloat(strings.ReplaceAll(number, ",", ""), 64)
	if err != nil {
		return 0
	}
	return value * magnitudeMultiplier(suffix)
}

// ExtractInvestmentContext pulls a best-effort structured intent out of a
// chat message. Every field has a default, so the result is usable even for
// messages that name no amount; callers treat Amount == 0 as "none found".
func ExtractInvestmentContext(input string) models.InvestmentContext {
	text := strings.ToLower(input)

	result := models.InvestmentContext{
		TimeHorizon:   models.TimeHorizonMedium,
		Goal:          "general investment",
		RiskTolerance: models.RiskToleranceMedium,
	}

	if match := amountPattern.FindStringSubmatch(text); match != nil {
		result.Amount = parseAmount(match[1], match[2])
	}

	if containsAny(text, longHorizonWords) {
		result.TimeHorizon = models.TimeHorizonLong
	} else if containsAny(text, shortHorizonWords) {
		result.TimeHorizon = models.TimeHorizonShort
	}

	result.Goal = inferGoal(text)

	if containsAny(text, lowRiskWords) {
		result.RiskTolerance = models.RiskToleranceLow
	} else if containsAny(text, highRiskWords) {
		result.RiskTolerance = models.RiskToleranceHigh
	}

	return result
}

// inferGoal maps the message onto a goal bucket. Travel requires both a
// travel word and a spending word so that a passing mention of a destination
// does not set the goal.
func inferGoal(text string) string {
	switch {
	case containsAny(text, retirementWords):
		return "retirement"
	case containsAny(text, travelWords) && containsAny(text, spendingWords):
		return "travel"
	case containsAny(text, homeWords):
		return "home purchase"
	case containsAny(text, educationWords):
		return "education"
	default:
		return "general investment"
	}
}
