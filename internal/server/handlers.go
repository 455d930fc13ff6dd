package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bobmcallan/chatfolio/internal/common"
	"github.com/bobmcallan/chatfolio/internal/interfaces"
	"github.com/bobmcallan/chatfolio/internal/models"
)

// defaultUserID is assumed when a chat request carries no user_id.
const defaultUserID = "default_user"

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.Build,
		"commit":  common.GitCommit,
	})
}

// --- Chat handler ---

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.ChatRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Message == "" {
		WriteError(w, http.StatusBadRequest, "message is required")
		return
	}
	if req.UserID == "" {
		req.UserID = defaultUserID
	}

	envelope := s.app.ChatService.Handle(r.Context(), req.UserID, req.Message)
	WriteJSON(w, http.StatusOK, envelope)
}

// --- Portfolio handlers ---

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	userID := PathParam(r, "/api/portfolio/", "")
	if userID == "" {
		WriteError(w, http.StatusBadRequest, "user_id is required in path")
		return
	}

	report, err := s.app.AnalyticsService.PortfolioValue(r.Context(), userID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error valuing portfolio: %v", err))
		return
	}

	if report.Empty {
		WriteJSON(w, http.StatusOK, models.MessageResponse{Message: "No holdings found in portfolio"})
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	userID := PathParam(r, "/api/alerts/", "")
	if userID == "" {
		WriteError(w, http.StatusBadRequest, "user_id is required in path")
		return
	}

	alerts, err := s.app.Storage.PortfolioStore().GetActiveAlerts(r.Context(), userID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error listing alerts: %v", err))
		return
	}
	if alerts == nil {
		alerts = []*models.Alert{}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"alerts": alerts,
	})
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	userID := PathParam(r, "/api/transactions/", "")
	if userID == "" {
		WriteError(w, http.StatusBadRequest, "user_id is required in path")
		return
	}

	txns, err := s.app.Storage.PortfolioStore().GetTransactions(r.Context(), userID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error listing transactions: %v", err))
		return
	}
	if txns == nil {
		txns = []*models.Transaction{}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": txns,
	})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	report, err := s.app.AnalyticsService.Recommend(r.Context(), req.Message)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error building recommendation: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, report)
}

// --- Market data handlers ---

func (s *Server) handleStockQuote(w http.ResponseWriter, r *http.Request, symbol string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	quote, err := s.app.MarketClient.GetQuote(r.Context(), symbol)
	if err != nil {
		if errors.Is(err, interfaces.ErrNoData) {
			WriteError(w, http.StatusNotFound, fmt.Sprintf("Could not fetch data for %s", symbol))
			return
		}
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error fetching quote: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, quote)
}

func (s *Server) handleStockHistory(w http.ResponseWriter, r *http.Request, symbol string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = "1mo"
	}

	bars, err := s.app.MarketClient.GetHistory(r.Context(), symbol, period)
	if err != nil {
		if errors.Is(err, interfaces.ErrNoData) {
			WriteError(w, http.StatusNotFound, fmt.Sprintf("Could not fetch data for %s", symbol))
			return
		}
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error fetching history: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, models.History{
		Symbol: symbol,
		Period: period,
		Data:   bars,
	})
}
