package handler

import (
	"net/http"

	"github.com/devjjun/commu/internal/domain"
	"github.com/devjjun/commu/internal/ledger"
	"github.com/devjjun/commu/internal/logger"
)

// Activity kinds accepted by the activity reward endpoint
const (
	ActivityPost    = "post"
	ActivityComment = "comment"
)

// ActivityRewardConfig holds the per-activity reward tuning
type ActivityRewardConfig struct {
	PostAmount    int
	CommentAmount int
	DailyCap      int
}

// BalanceResponse reports a user's current point balance
type BalanceResponse struct {
	UserID  string `json:"user_id"`
	Balance int    `json:"balance"`
}

// HistoryResponse is a page of ledger entries
type HistoryResponse struct {
	UserID   string               `json:"user_id"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
	Entries  []domain.LedgerEntry `json:"entries"`
}

// ActivityRewardRequest asks for an activity reward on behalf of a user.
// ReferenceID identifies the post or comment so a retried call stays idempotent.
type ActivityRewardRequest struct {
	UserID      string `json:"user_id" validate:"required"`
	Activity    string `json:"activity" validate:"required,oneof=post comment"`
	ReferenceID string `json:"reference_id" validate:"required,max=128"`
}

// ActivityRewardResponse reports the appended entry, or capped=true when the
// user has exhausted today's reward budget for that activity.
type ActivityRewardResponse struct {
	Capped bool                `json:"capped"`
	Entry  *domain.LedgerEntry `json:"entry,omitempty"`
}

// HandleGetBalance returns the user's derived balance.
// GET /api/v1/points/balance?user_id=...
func HandleGetBalance(ledgerService ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		balance, err := ledgerService.Balance(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get balance", err)
			return
		}

		respondJSON(w, http.StatusOK, BalanceResponse{UserID: userID, Balance: balance})
	}
}

// HandleGetHistory returns a page of the user's ledger, newest first.
// GET /api/v1/points/history?user_id=...&filter=all|credits|debits&page=1&page_size=20
func HandleGetHistory(ledgerService ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		filter := domain.HistoryFilter(GetOptionalQueryParam(r, "filter", string(domain.HistoryAll)))
		page := GetOptionalIntQueryParam(r, "page", 1)
		pageSize := GetOptionalIntQueryParam(r, "page_size", ledger.DefaultHistoryPageSize)

		entries, err := ledgerService.History(r.Context(), userID, filter, page, pageSize)
		if err != nil {
			respondServiceError(w, r, "Get history", err)
			return
		}

		respondJSON(w, http.StatusOK, HistoryResponse{
			UserID:   userID,
			Page:     page,
			PageSize: pageSize,
			Entries:  entries,
		})
	}
}

// HandleActivityReward awards points for writing a post or comment, capped
// per activity type per day.
// POST /api/v1/points/activity
func HandleActivityReward(ledgerService ledger.Service, cfg ActivityRewardConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ActivityRewardRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Activity reward"); err != nil {
			return
		}

		entryType := domain.EntryPostWrite
		amount := cfg.PostAmount
		description := "Post written"
		if req.Activity == ActivityComment {
			entryType = domain.EntryCommentWrite
			amount = cfg.CommentAmount
			description = "Comment written"
		}

		entry, err := ledgerService.AwardCapped(r.Context(), req.UserID, entryType, amount, description, req.ReferenceID, cfg.DailyCap)
		if err != nil {
			respondServiceError(w, r, "Activity reward", err)
			return
		}

		if entry == nil {
			respondJSON(w, http.StatusOK, ActivityRewardResponse{Capped: true})
			return
		}

		log.Info("Activity reward granted",
			"user_id", req.UserID,
			"type", entryType,
			"amount", amount,
			"reference_id", req.ReferenceID)
		respondJSON(w, http.StatusCreated, ActivityRewardResponse{Entry: entry})
	}
}
