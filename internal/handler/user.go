package handler

import (
	"net/http"

	"github.com/devjjun/commu/internal/logger"
	"github.com/devjjun/commu/internal/user"
)

// RegisterUserRequest represents the request to register a new user.
type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32,excludesall= "`
	Email    string `json:"email" validate:"omitempty,email"`
}

// HandleRegisterUser creates a new user account.
// POST /api/v1/user/register
func HandleRegisterUser(userService user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RegisterUserRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register user"); err != nil {
			return
		}

		created, err := userService.Register(r.Context(), req.Username, req.Email)
		if err != nil {
			respondServiceError(w, r, "Register user", err)
			return
		}

		log.Info("User registered", "user_id", created.ID, "username", created.Username)
		respondJSON(w, http.StatusCreated, created)
	}
}

// HandleGetProfile returns a user with their derived point balance.
// GET /api/v1/user/profile?user_id=...
func HandleGetProfile(userService user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		profile, err := userService.GetProfile(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get profile", err)
			return
		}

		respondJSON(w, http.StatusOK, profile)
	}
}
