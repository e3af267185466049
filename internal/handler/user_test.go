package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devjjun/commu/internal/domain"
	"github.com/devjjun/commu/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHandleRegisterUser(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockUserService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Success",
			requestBody: RegisterUserRequest{Username: "newuser", Email: "new@example.com"},
			setupMock: func(m *MockUserService) {
				m.On("Register", mock.Anything, "newuser", "new@example.com").
					Return(&domain.User{ID: "new-id", Username: "newuser", Email: "new@example.com"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"username":"newuser"`,
		},
		{
			name:           "Invalid Request - Username Too Short",
			requestBody:    RegisterUserRequest{Username: "ab"},
			setupMock:      func(m *MockUserService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestSummary,
		},
		{
			name:           "Invalid Request - Bad Email",
			requestBody:    RegisterUserRequest{Username: "newuser", Email: "not-an-email"},
			setupMock:      func(m *MockUserService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid email format",
		},
		{
			name:        "Duplicate Username",
			requestBody: RegisterUserRequest{Username: "taken", Email: ""},
			setupMock: func(m *MockUserService) {
				m.On("Register", mock.Anything, "taken", "").
					Return(nil, domain.ErrAlreadyExists)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgAlreadyExistsError,
		},
		{
			name:        "Service Error",
			requestBody: RegisterUserRequest{Username: "erroruser", Email: ""},
			setupMock: func(m *MockUserService) {
				m.On("Register", mock.Anything, "erroruser", "").
					Return(nil, domain.ErrDatabaseError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   ErrMsgGenericServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockUserService{}
			tt.setupMock(mockSvc)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/user/register", bytes.NewReader(body))
			rr := httptest.NewRecorder()

			HandleRegisterUser(mockSvc)(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestHandleGetProfile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockSvc := &MockUserService{}
		mockSvc.On("GetProfile", mock.Anything, "user-1").
			Return(&user.Profile{
				User:    domain.User{ID: "user-1", Username: "alice"},
				Balance: 120,
			}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/user/profile?user_id=user-1", nil)
		rr := httptest.NewRecorder()

		HandleGetProfile(mockSvc)(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"balance":120`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Missing user_id", func(t *testing.T) {
		mockSvc := &MockUserService{}

		req := httptest.NewRequest(http.MethodGet, "/api/v1/user/profile", nil)
		rr := httptest.NewRecorder()

		HandleGetProfile(mockSvc)(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockSvc.AssertNotCalled(t, "GetProfile")
	})

	t.Run("Unknown user", func(t *testing.T) {
		mockSvc := &MockUserService{}
		mockSvc.On("GetProfile", mock.Anything, "ghost").
			Return(nil, domain.ErrUserNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/user/profile?user_id=ghost", nil)
		rr := httptest.NewRecorder()

		HandleGetProfile(mockSvc)(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), ErrMsgUserNotFoundError)
	})
}
