package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devjjun/commu/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHandleAdminGrant(t *testing.T) {
	InitValidator()

	t.Run("Grant Appends Credit", func(t *testing.T) {
		mockSvc := &MockLedgerService{}
		mockSvc.On("Award", mock.Anything, "user-1", domain.EntryAdminGrant, 500, "event prize", "").
			Return(&domain.LedgerEntry{ID: 1, UserID: "user-1", Type: domain.EntryAdminGrant, Amount: 500}, nil)

		body, _ := json.Marshal(AdminAdjustRequest{UserID: "user-1", Amount: 500, Reason: "event prize"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/points/grant", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		HandleAdminGrant(mockSvc)(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"amount":500`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Amount Above Maximum Rejected", func(t *testing.T) {
		mockSvc := &MockLedgerService{}

		body, _ := json.Marshal(AdminAdjustRequest{UserID: "user-1", Amount: MaxAdminAdjustAmount + 1, Reason: "oops"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/points/grant", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		HandleAdminGrant(mockSvc)(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), ErrMsgAmountExceedsMax)
		mockSvc.AssertNotCalled(t, "Award")
	})

	t.Run("Missing Reason Rejected", func(t *testing.T) {
		mockSvc := &MockLedgerService{}

		body, _ := json.Marshal(AdminAdjustRequest{UserID: "user-1", Amount: 100})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/points/grant", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		HandleAdminGrant(mockSvc)(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockSvc.AssertNotCalled(t, "Award")
	})
}

func TestHandleAdminPenalty(t *testing.T) {
	InitValidator()

	t.Run("Penalty Appends Debit", func(t *testing.T) {
		mockSvc := &MockLedgerService{}
		mockSvc.On("Penalize", mock.Anything, "user-1", 200, "spam posting", "").
			Return(&domain.LedgerEntry{ID: 2, UserID: "user-1", Type: domain.EntryPenalty, Amount: -200}, nil)

		body, _ := json.Marshal(AdminAdjustRequest{UserID: "user-1", Amount: 200, Reason: "spam posting"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/points/penalty", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		HandleAdminPenalty(mockSvc)(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"amount":-200`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Unknown User", func(t *testing.T) {
		mockSvc := &MockLedgerService{}
		mockSvc.On("Penalize", mock.Anything, "ghost", 50, "spam", "").
			Return(nil, domain.ErrUserNotFound)

		body, _ := json.Marshal(AdminAdjustRequest{UserID: "ghost", Amount: 50, Reason: "spam"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/points/penalty", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		HandleAdminPenalty(mockSvc)(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
