package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/devjjun/commu/internal/attendance"
	"github.com/devjjun/commu/internal/concurrency"
	"github.com/devjjun/commu/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHandleCheckIn(t *testing.T) {
	InitValidator()

	today := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockAttendanceService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "First Check-In Today",
			requestBody: CheckInRequest{UserID: "user-1"},
			setupMock: func(m *MockAttendanceService) {
				m.On("CheckIn", mock.Anything, "user-1").Return(&attendance.CheckInResult{
					Date:         today,
					BaseAwarded:  10,
					TotalAwarded: 10,
					StreakDays:   1,
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"total_awarded":10`,
		},
		{
			name:        "Repeat Check-In Is A No-Op",
			requestBody: CheckInRequest{UserID: "user-1"},
			setupMock: func(m *MockAttendanceService) {
				m.On("CheckIn", mock.Anything, "user-1").Return(&attendance.CheckInResult{
					AlreadyCheckedIn: true,
					Date:             today,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"already_checked_in":true`,
		},
		{
			name:           "Missing UserID",
			requestBody:    CheckInRequest{},
			setupMock:      func(m *MockAttendanceService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestSummary,
		},
		{
			name:        "Unknown User",
			requestBody: CheckInRequest{UserID: "ghost"},
			setupMock: func(m *MockAttendanceService) {
				m.On("CheckIn", mock.Anything, "ghost").Return(nil, domain.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgUserNotFoundError,
		},
		{
			name:        "Lock Contention Maps To Retryable Conflict",
			requestBody: CheckInRequest{UserID: "user-1"},
			setupMock: func(m *MockAttendanceService) {
				m.On("CheckIn", mock.Anything, "user-1").Return(nil, concurrency.ErrLockTimeout)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgBusyError,
		},
		{
			name:        "Lock Store Outage Maps To Service Unavailable",
			requestBody: CheckInRequest{UserID: "user-1"},
			setupMock: func(m *MockAttendanceService) {
				m.On("CheckIn", mock.Anything, "user-1").Return(nil,
					fmt.Errorf("%w: connection refused", concurrency.ErrLockUnavailable))
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   ErrMsgTryAgainLaterError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockAttendanceService{}
			tt.setupMock(mockSvc)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/check-in", bytes.NewReader(body))
			rr := httptest.NewRecorder()

			HandleCheckIn(mockSvc)(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			mockSvc.AssertExpectations(t)
		})
	}
}
