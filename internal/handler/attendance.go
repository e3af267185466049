package handler

import (
	"net/http"

	"github.com/devjjun/commu/internal/attendance"
	"github.com/devjjun/commu/internal/logger"
)

// CheckInRequest represents a daily attendance check-in.
type CheckInRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// HandleCheckIn records today's attendance for a user. Repeating the call on
// the same day is a no-op and reports already_checked_in.
// POST /api/v1/attendance/check-in
func HandleCheckIn(attendanceService attendance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CheckInRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Check in"); err != nil {
			return
		}

		result, err := attendanceService.CheckIn(r.Context(), req.UserID)
		if err != nil {
			respondServiceError(w, r, "Check in", err)
			return
		}

		if result.AlreadyCheckedIn {
			log.Debug("Repeat check-in", "user_id", req.UserID)
			respondJSON(w, http.StatusOK, result)
			return
		}

		log.Info("Check-in recorded",
			"user_id", req.UserID,
			"total_awarded", result.TotalAwarded,
			"streak_days", result.StreakDays)
		respondJSON(w, http.StatusCreated, result)
	}
}
