package handler

import (
	"net/http"

	"github.com/devjjun/commu/internal/domain"
	"github.com/devjjun/commu/internal/ledger"
	"github.com/devjjun/commu/internal/logger"
)

// Upper bound on a single admin adjustment, a fat-fingered extra zero should
// not mint a fortune
const MaxAdminAdjustAmount = 10000

// AdminAdjustRequest grants or deducts points for a user with an audit reason.
type AdminAdjustRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Amount int    `json:"amount" validate:"required,gt=0"`
	Reason string `json:"reason" validate:"required,max=256"`
}

// HandleAdminGrant appends an ADMIN_GRANT credit.
// POST /api/v1/admin/points/grant
func HandleAdminGrant(ledgerService ledger.Service) http.HandlerFunc {
	return adminAdjustHandler(ledgerService, domain.EntryAdminGrant)
}

// HandleAdminPenalty appends a PENALTY debit.
// POST /api/v1/admin/points/penalty
func HandleAdminPenalty(ledgerService ledger.Service) http.HandlerFunc {
	return adminAdjustHandler(ledgerService, domain.EntryPenalty)
}

func adminAdjustHandler(ledgerService ledger.Service, entryType domain.EntryType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req AdminAdjustRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Admin adjust"); err != nil {
			return
		}

		if req.Amount > MaxAdminAdjustAmount {
			respondError(w, http.StatusBadRequest, ErrMsgAmountExceedsMax)
			return
		}

		var entry *domain.LedgerEntry
		var err error
		if entryType == domain.EntryPenalty {
			entry, err = ledgerService.Penalize(r.Context(), req.UserID, req.Amount, req.Reason, "")
		} else {
			entry, err = ledgerService.Award(r.Context(), req.UserID, entryType, req.Amount, req.Reason, "")
		}
		if err != nil {
			respondServiceError(w, r, "Admin adjust", err)
			return
		}

		log.Info("Admin adjustment applied",
			"user_id", req.UserID,
			"type", entryType,
			"amount", entry.Amount,
			"reason", req.Reason)
		respondJSON(w, http.StatusCreated, entry)
	}
}
