package handler

import (
	"net/http"

	"github.com/devjjun/commu/internal/domain"
	"github.com/devjjun/commu/internal/queue"
)

// DeadLettersResponse lists the jobs parked after exhausting delivery attempts
type DeadLettersResponse struct {
	Count int              `json:"count"`
	Jobs  []domain.MailJob `json:"jobs"`
}

// HandleListDeadLetters exposes the dead-letter queue for operators. Parked
// jobs are never retried automatically; this endpoint is the handoff point.
// GET /api/v1/admin/dlq
func HandleListDeadLetters(q queue.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobs, err := q.DeadLetters(r.Context())
		if err != nil {
			respondServiceError(w, r, "List dead letters", err)
			return
		}

		respondJSON(w, http.StatusOK, DeadLettersResponse{Count: len(jobs), Jobs: jobs})
	}
}
