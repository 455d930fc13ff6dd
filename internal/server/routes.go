package server

import (
	"net/http"
	"strings"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Chat
	mux.HandleFunc("/api/chat", s.handleChat)

	// Portfolio
	mux.HandleFunc("/api/portfolio/", s.handlePortfolio)
	mux.HandleFunc("/api/alerts/", s.handleAlerts)
	mux.HandleFunc("/api/transactions/", s.handleTransactions)
	mux.HandleFunc("/api/recommend", s.handleRecommend)

	// Market data
	mux.HandleFunc("/api/stock/", s.routeStock)
}

// routeStock dispatches /api/stock/{symbol} and /api/stock/{symbol}/history.
func (s *Server) routeStock(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/stock/")
	if path == "" {
		WriteError(w, http.StatusBadRequest, "symbol is required in path")
		return
	}

	if symbol, ok := strings.CutSuffix(path, "/history"); ok {
		s.handleStockHistory(w, r, symbol)
		return
	}

	if strings.Contains(path, "/") {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}

	s.handleStockQuote(w, r, path)
}
