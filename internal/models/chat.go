// Package models defines data structures for the portfolio chat service
package models

// IntentAction labels the classified goal of a user message.
type IntentAction string

const (
	ActionShowPortfolio IntentAction = "show_portfolio"
	ActionAddAlert      IntentAction = "add_alert"
	ActionCompareStocks IntentAction = "compare_stocks"
	ActionSimulate      IntentAction = "simulate"
	ActionAddHolding    IntentAction = "add_holding"
	ActionStockPrice    IntentAction = "stock_price"
)

// Entities holds the structured tokens extracted from free text.
// A field is omitted from the wire format when nothing was extracted.
type Entities struct {
	Symbols   []string  `json:"symbols,omitempty"`
	Numbers   []float64 `json:"numbers,omitempty"`
	Condition string    `json:"condition,omitempty"`
}

// Intent is the interpreted goal of a single user message.
type Intent struct {
	Action     IntentAction `json:"action"`
	Entities   Entities     `json:"entities"`
	Confidence float64      `json:"confidence"`
}

// ChatRequest is an inbound chat message.
type ChatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// Envelope is the uniform wrapper returned for every chat interaction.
// Response is one of: *ValuationReport, ComparisonResponse,
// SimulationResponse, QuoteResponse, MessageResponse or ErrorResponse.
type Envelope struct {
	Intent   Intent `json:"intent"`
	Response any    `json:"response"`
}

// MessageResponse carries user-facing guidance or confirmation text.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries a response-level error converted from a
// collaborator fault.
type ErrorResponse struct {
	Error string `json:"error"`
}

// QuoteResponse wraps a quote for the stock_price intent.
type QuoteResponse struct {
	StockInfo *Quote `json:"stock_info"`
}

// ComparisonResponse wraps a comparison report.
type ComparisonResponse struct {
	Comparison []*Quote `json:"comparison"`
}

// SimulationResponse wraps a purchase simulation.
type SimulationResponse struct {
	Simulation *SimulationReport `json:"simulation"`
}
