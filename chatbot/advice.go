package chatbot

import (
	"context"
	"fmt"
	"strings"

	"finpulse/models"
	"finpulse/observability"
)

// smallTravelThreshold: below this, travel money stays in cash instead of
// being invested.
const smallTravelThreshold = 2000

// allocation is one slice of a model portfolio
type allocation struct {
	label   string
	percent int
}

// modelAllocations are the three fixed splits keyed by risk tolerance
var modelAllocations = map[models.RiskTolerance][]allocation{
	models.RiskToleranceLow: {
		{"bond funds (e.g. BND)", 40},
		{"broad stock index funds (e.g. VTI)", 40},
		{"high-yield savings / cash", 20},
	},
	models.RiskToleranceMedium: {
		{"broad stock index funds (e.g. VTI, VOO)", 60},
		{"bond funds (e.g. BND)", 30},
		{"high-yield savings / cash", 10},
	},
	models.RiskToleranceHigh: {
		{"broad stock index funds", 50},
		{"individual growth stocks", 40},
		{"high-yield savings / cash", 10},
	},
}

const shortTermCashResponse = "Since you're looking at under $%.0f for a trip, I'd keep that money out of the market. " +
	"A few months isn't long enough to ride out a downturn, and you don't want your travel fund down 15%% the week you book. " +
	"Park it in a high-yield savings account or a short-term treasury fund; it stays safe, earns a little interest, " +
	"and is there the day you need it."

const adviceDisclaimer = "This is general education, not personalized financial advice. " +
	"Consider your full financial picture, and consult a licensed advisor for decisions involving significant sums."

const recommendationApology = "I'm sorry, I wasn't able to pull stock ideas for you just now. " +
	"The general allocation guidance above still applies; ask me again in a moment for specific names."

// GenerateInvestmentAdvice renders an allocation-plus-recommendations reply
// for an extracted intent. Small near-term travel sums get cash-management
// guidance instead of an allocation. A recommendation lookup failure degrades
// to an apology appended in place of the stock list; the caller always gets a
// usable string back.
func (s *Service) GenerateInvestmentAdvice(ctx context.Context, investCtx models.InvestmentContext) string {
	if investCtx.Amount < smallTravelThreshold && investCtx.Goal == "travel" {
		return fmt.Sprintf(shortTermCashResponse, float64(smallTravelThreshold))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "For $%.0f toward %s with a %s risk tolerance, here's a starting allocation:\n",
		investCtx.Amount, investCtx.Goal, investCtx.RiskTolerance)

	for _, slice := range modelAllocations[investCtx.RiskTolerance] {
		fmt.Fprintf(&b, "- %d%% in %s\n", slice.percent, slice.label)
	}

	recs, err := s.recommendations.Recommendations(ctx, investCtx.RiskTolerance, s.cfg.MaxRecommendations)
	if err != nil {
		observability.Warn("recommendation lookup failed",
			"source", s.recommendations.Name(),
			"error", err)
		b.WriteString("\n" + recommendationApology)
		return b.String()
	}

	if len(recs) > 0 {
		fmt.Fprintf(&b, "\nA few %s-risk names to research:\n", investCtx.RiskTolerance)
		for _, rec := range recs {
			fmt.Fprintf(&b, "- %s (%s): %s\n", rec.Symbol, rec.CompanyName, rec.Reason)
		}
	}

	b.WriteString("\n" + adviceDisclaimer)
	return b.String()
}
