package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatRole identifies the author of a chat message
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is a single turn in a chat session. History is owned by the
// caller; the chatbot only ever consumes the current input string.
type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewChatMessage creates a message with a fresh id and timestamp
func NewChatMessage(role ChatRole, content string) *ChatMessage {
	return &ChatMessage{
		ID:        uuid.New(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// TimeHorizon is the inferred investment time frame
type TimeHorizon string

const (
	TimeHorizonShort  TimeHorizon = "short"
	TimeHorizonMedium TimeHorizon = "medium"
	TimeHorizonLong   TimeHorizon = "long"
)

// RiskTolerance is the inferred appetite for risk
type RiskTolerance string

const (
	RiskToleranceLow    RiskTolerance = "low"
	RiskToleranceMedium RiskTolerance = "medium"
	RiskToleranceHigh   RiskTolerance = "high"
)

// InvestmentContext is the structured intent extracted from a single chat
// message. It is derived per message and never persisted across turns.
type InvestmentContext struct {
	Amount        float64       `json:"amount"`
	TimeHorizon   TimeHorizon   `json:"time_horizon"`
	Goal          string        `json:"goal"`
	RiskTolerance RiskTolerance `json:"risk_tolerance"`
}

// StockRecommendation is one entry in a risk-filtered recommendation list
type StockRecommendation struct {
	Symbol      string        `json:"symbol"`
	CompanyName string        `json:"company_name"`
	Reason      string        `json:"reason"`
	RiskLevel   RiskTolerance `json:"risk_level"`
}
