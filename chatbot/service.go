package chatbot

import (
	"context"
	"strings"
	"time"

	"finpulse/config"
	"finpulse/observability"
	"finpulse/services"
)

// redirectResponse is the fixed reply for anything classified non-financial
const redirectResponse = "I'm a financial assistant, so that one's outside my lane! " +
	"I'm happy to help with investing, savings goals, budgeting, retirement accounts, or understanding market terms."

// Service is the rule-based financial chatbot. It is stateless between
// calls; construct one per process and share it freely. nowFunc exists so
// tests can pin the savings calculator's December deadline.
type Service struct {
	cfg             config.ChatbotConfig
	recommendations services.RecommendationSource
	nowFunc         func() time.Time
}

// NewService creates a chatbot backed by the given recommendation source. A
// nil source falls back to the static table.
func NewService(cfg config.ChatbotConfig, recommendations services.RecommendationSource) *Service {
	if recommendations == nil {
		recommendations = services.NewStaticRecommendationSource()
	}
	return &Service{
		cfg:             cfg,
		recommendations: recommendations,
		nowFunc:         time.Now,
	}
}

// ProcessUserInput is the chatbot's single entry point. Dispatch runs in
// strict priority order: non-financial redirect, savings calculator,
// investment advice, then the topic responder. Every path terminates in a
// response string; this method does not fail.
func (s *Service) ProcessUserInput(ctx context.Context, input string) string {
	start := time.Now()
	response, category := s.respond(ctx, input)
	observability.GetMetrics().RecordChatRequest(category, time.Since(start))

	observability.Debug("chat request handled",
		"category", category,
		"input_len", len(input))
	return response
}

func (s *Service) respond(ctx context.Context, input string) (string, string) {
	if !IsFinancialQuestion(input) {
		return redirectResponse, "redirect"
	}

	text := strings.ToLower(input)
	if containsAny(text, savingsContextWords) && containsAny(text, incomeContextWords) {
		return savingsPlan(input, s.nowFunc()), "savings_plan"
	}

	investCtx := ExtractInvestmentContext(input)
	if investCtx.Amount > 0 && containsAny(text, investmentDomainWords) {
		return s.GenerateInvestmentAdvice(ctx, investCtx), "investment_advice"
	}

	return topicResponse(input)
}
