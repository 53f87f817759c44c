package chatbot

import (
	"math"
	"strings"
	"testing"
	"time"
)

func august(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
}

func TestSavingsPlan_MeetsGoal(t *testing.T) {
	now := august(t)
	got := savingsPlan("I make $600 every two weeks and want to save $5000 by December", now)

	// August through December is 5 months -> ceil(5*30/14) = 11 paychecks
	if !strings.Contains(got, "11 biweekly paychecks") {
		t.Errorf("response missing period count: %q", got)
	}

	// The quoted per-paycheck figure times the period count must cover the
	// goal.
	periods := 11.0
	perPaycheck := math.Ceil(5000/periods*100) / 100
	if perPaycheck*periods < 5000 {
		t.Errorf("perPaycheck %v * periods %v = %v, want >= 5000", perPaycheck, periods, perPaycheck*periods)
	}
	if !strings.Contains(got, "454.55") {
		t.Errorf("response missing per-paycheck figure 454.55: %q", got)
	}
}

func TestSavingsPlan_WarnsOverTwentyPercent(t *testing.T) {
	// 454.55 out of a 600 paycheck is far past the 20% line
	got := savingsPlan("I make $600 every two weeks and want to save $5000 by December", august(t))
	if !strings.Contains(got, overstretchWarning) {
		t.Errorf("expected overstretch warning in %q", got)
	}

	// 5000 out of a 5000 paycheck stays well under it
	calm := savingsPlan("I make $5000 every two weeks and want to save $5000 by December", august(t))
	if strings.Contains(calm, overstretchWarning) {
		t.Errorf("unexpected overstretch warning in %q", calm)
	}
}

func TestSavingsPlan_GoalMagnitudeSuffix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"I make $900 per week and want to save 5k by December", "$5000 by"},
		{"I make $900 per week and want to save 5 thousand by December", "$5000 by"},
		{"I make $900 per week and want to save 5 by December", "$5 by"},
	}
	for _, tt := range tests {
		got := savingsPlan(tt.input, august(t))
		if !strings.Contains(got, tt.want) {
			t.Errorf("savingsPlan(%q) = %q, want goal %q", tt.input, got, tt.want)
		}
	}
}

func TestSavingsPlan_FewerThanTwoNumbers(t *testing.T) {
	inputs := []string{
		"help me save some money from my paycheck",
		"I make $600 every two weeks, how much should I save?",
	}
	for _, input := range inputs {
		got := savingsPlan(input, august(t))
		if got != savingsClarification {
			t.Errorf("savingsPlan(%q) = %q, want the clarification verbatim", input, got)
		}
	}
}

func TestMonthsUntilDecember(t *testing.T) {
	tests := []struct {
		month time.Month
		want  int
	}{
		{time.January, 12},
		{time.August, 5},
		{time.November, 2},
		{time.December, 1},
	}
	for _, tt := range tests {
		now := time.Date(2026, tt.month, 10, 0, 0, 0, 0, time.UTC)
		if got := monthsUntilDecember(now); got != tt.want {
			t.Errorf("monthsUntilDecember(%v) = %d, want %d", tt.month, got, tt.want)
		}
	}
}

func TestTrailingMagnitude(t *testing.T) {
	tests := []struct {
		rest string
		want float64
	}{
		{"k by december", 1000},
		{" thousand", 1000},
		{"kg of rice", 1},
		{" by december", 1},
		{"", 1},
	}
	for _, tt := range tests {
		if got := trailingMagnitude(tt.rest); got != tt.want {
			t.Errorf("trailingMagnitude(%q) = %v, want %v", tt.rest, got, tt.want)
		}
	}
}
