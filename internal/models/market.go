package models

import "time"

// Quote is a point-in-time market snapshot for a symbol. Quotes are
// produced fresh on every lookup and never cached.
type Quote struct {
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	CurrentPrice float64 `json:"current_price"`
	Currency     string  `json:"currency"`
	Sector       string  `json:"sector"`
	MarketCap    float64 `json:"market_cap"`
	PERatio      float64 `json:"pe_ratio"`
	DayChange    float64 `json:"day_change"`
}

// Bar is a single OHLC history record.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// History is a bounded tail of recent price bars for a symbol.
type History struct {
	Symbol string `json:"symbol"`
	Period string `json:"period"`
	Data   []Bar  `json:"data"`
}
