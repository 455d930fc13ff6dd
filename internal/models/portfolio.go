package models

import "time"

// AlertCondition is the direction a price alert fires on.
type AlertCondition string

const (
	AlertAbove AlertCondition = "above"
	AlertBelow AlertCondition = "below"
)

// TransactionBuy is the only transaction action the service records;
// selling is not supported.
const TransactionBuy = "BUY"

// Holding is a user's recorded position in one ticker symbol.
// At most one holding exists per (user, symbol): a repeat purchase
// replaces the stored quantity/price/date rather than averaging in.
type Holding struct {
	UserID   string    `json:"user_id"`
	Symbol   string    `json:"symbol"`
	Quantity float64   `json:"quantity"`
	BuyPrice float64   `json:"buy_price"`
	BuyDate  time.Time `json:"buy_date"`
}

// Alert is a stored price alert. Alerts are recorded but never
// evaluated against live prices.
type Alert struct {
	UserID      string         `json:"user_id"`
	Symbol      string         `json:"symbol"`
	Condition   AlertCondition `json:"condition"`
	Price       float64        `json:"price"`
	Active      bool           `json:"active"`
	CreatedDate time.Time      `json:"created_date"`
}

// Transaction is an immutable audit record, appended once per
// add-holding call.
type Transaction struct {
	UserID   string    `json:"user_id"`
	Symbol   string    `json:"symbol"`
	Action   string    `json:"action"`
	Quantity float64   `json:"quantity"`
	Price    float64   `json:"price"`
	Date     time.Time `json:"date"`
}

// HoldingValue is a single priced holding within a valuation report.
type HoldingValue struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Quantity      float64 `json:"quantity"`
	BuyPrice      float64 `json:"buy_price"`
	CurrentPrice  float64 `json:"current_price"`
	CurrentValue  float64 `json:"current_value"`
	CostBasis     float64 `json:"cost_basis"`
	ProfitLoss    float64 `json:"profit_loss"`
	ProfitLossPct float64 `json:"profit_loss_pct"`
}

// ValuationReport summarises the current value of a user's portfolio.
// Holdings whose quote lookup failed are absent from both the detail
// list and the totals. Empty marks the explicit no-holdings outcome and
// is rendered as a message by the callers rather than serialized.
type ValuationReport struct {
	Empty              bool           `json:"-"`
	TotalValue         float64        `json:"total_value"`
	TotalCost          float64        `json:"total_cost"`
	TotalProfitLoss    float64        `json:"total_profit_loss"`
	TotalProfitLossPct float64        `json:"total_profit_loss_pct"`
	Holdings           []HoldingValue `json:"holdings"`
}

// SimulationReport is a what-if purchase projection. It is never
// persisted and implies no store write.
type SimulationReport struct {
	Symbol                string  `json:"symbol"`
	Quantity              float64 `json:"quantity"`
	PricePerShare         float64 `json:"price_per_share"`
	TotalCost             float64 `json:"total_cost"`
	CurrentPortfolioValue float64 `json:"current_portfolio_value"`
	NewPortfolioValue     float64 `json:"new_portfolio_value"`
}

// Allocation is a recommended quote with a target portfolio weight.
type Allocation struct {
	Quote
	Weight float64 `json:"allocation"`
}

// RecommendationReport is a fixed risk-bucket portfolio suggestion.
type RecommendationReport struct {
	RiskLevel string       `json:"risk_level"`
	Portfolio []Allocation `json:"portfolio"`
}
