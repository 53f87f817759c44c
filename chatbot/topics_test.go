package chatbot

import (
	"strings"
	"testing"
)

func TestTopicResponse_MatchesKnownTopics(t *testing.T) {
	tests := []struct {
		input        string
		wantCategory string
	}{
		{"what is an etf?", "etf"},
		{"explain index funds to me", "index_funds"},
		{"should I open a roth ira", "ira"},
		{"how does compound interest work", "compound_interest"},
		{"why does diversification matter", "diversification"},
		{"what's a p/e ratio", "pe_ratio"},
		{"how do dividends get paid", "dividends"},
		{"what does expense ratio mean", "expense_ratio"},
		{"how big should my emergency fund be", "emergency_fund"},
		{"what is dollar cost averaging", "dollar_cost_averaging"},
		{"how do I analyze a company's fundamentals", "stock_analysis"},
	}
	for _, tt := range tests {
		response, category := topicResponse(tt.input)
		if category != tt.wantCategory {
			t.Errorf("topicResponse(%q) category = %q, want %q", tt.input, category, tt.wantCategory)
		}
		if response == "" {
			t.Errorf("topicResponse(%q) returned empty response", tt.input)
		}
	}
}

func TestTopicResponse_FirstMatchWins(t *testing.T) {
	// etf sits above index_funds in the table; a message naming both gets
	// the etf response.
	_, category := topicResponse("etf or index fund?")
	if category != "etf" {
		t.Errorf("category = %q, want %q (table order)", category, "etf")
	}
}

func TestTopicResponse_Comparative(t *testing.T) {
	response, category := topicResponse("renting vs owning, which wins?")
	if category != "comparison" {
		t.Errorf("category = %q, want %q", category, "comparison")
	}
	if !strings.Contains(response, "criteria") {
		t.Errorf("unexpected comparative response: %q", response)
	}
}

func TestTopicResponse_PurchaseDecision(t *testing.T) {
	_, category := topicResponse("should i buy a boat")
	if category != "purchase_decision" {
		t.Errorf("category = %q, want %q", category, "purchase_decision")
	}
}

func TestTopicResponse_Fallback(t *testing.T) {
	response, category := topicResponse("mumble mumble")
	if category != "fallback" {
		t.Errorf("category = %q, want %q", category, "fallback")
	}
	if response != fallbackResponse {
		t.Errorf("fallback response = %q, want the canonical fallback", response)
	}
}
