package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-budget-manager/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestSetLimitHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockLimitSetter)
		expectedCode int
		expectedBody string
	}{
		{
			name: "accepts 500",
			body: `{"limit":500}`,
			mockSetup: func(m *MockLimitSetter) {
				m.EXPECT().SetLimit(gomock.Any(), userID, 500.0).Return(500.0, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"message":"Limit set successfully","limit":500}`,
		},
		{
			name: "rejects negative",
			body: `{"limit":-100}`,
			mockSetup: func(m *MockLimitSetter) {
				m.EXPECT().SetLimit(gomock.Any(), userID, -100.0).Return(0.0, services.ErrInvalidLimit)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid limit value"}`,
		},
		{
			name: "rejects zero",
			body: `{"limit":0}`,
			mockSetup: func(m *MockLimitSetter) {
				m.EXPECT().SetLimit(gomock.Any(), userID, 0.0).Return(0.0, services.ErrInvalidLimit)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid limit value"}`,
		},
		{
			name: "echoes the stored value",
			body: `{"limit":12.345}`,
			mockSetup: func(m *MockLimitSetter) {
				m.EXPECT().SetLimit(gomock.Any(), userID, 12.345).Return(12.35, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"message":"Limit set successfully","limit":12.35}`,
		},
		{
			name: "rejects sub-cent",
			body: `{"limit":0.004}`,
			mockSetup: func(m *MockLimitSetter) {
				m.EXPECT().SetLimit(gomock.Any(), userID, 0.004).Return(0.0, services.ErrInvalidLimit)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid limit value"}`,
		},
		{
			name:         "rejects non-numeric",
			body:         `{"limit":"abc"}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid limit value"}`,
		},
		{
			name:         "rejects missing",
			body:         `{}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid limit value"}`,
		},
		{
			name: "user vanished",
			body: `{"limit":500}`,
			mockSetup: func(m *MockLimitSetter) {
				m.EXPECT().SetLimit(gomock.Any(), userID, 500.0).Return(0.0, services.ErrUserDoesNotExist)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"User not found"}`,
		},
		{
			name: "store error",
			body: `{"limit":500}`,
			mockSetup: func(m *MockLimitSetter) {
				m.EXPECT().SetLimit(gomock.Any(), userID, 500.0).Return(0.0, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMockLimitSetter(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(m)
			}

			rr := httptest.NewRecorder()
			NewSetLimitHandler(m)(rr, newAuthedRequest(t, http.MethodPost, "/budgets/setLimit", tt.body, userID))

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
		})
	}
}

func TestGetLimitHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	limit := 1000.0

	tests := []struct {
		name         string
		mockSetup    func(m *MockLimitGetter)
		expectedCode int
		expectedBody string
	}{
		{
			name: "set",
			mockSetup: func(m *MockLimitGetter) {
				m.EXPECT().GetLimit(gomock.Any(), userID).Return(&limit, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"limit":1000}`,
		},
		{
			name: "unset",
			mockSetup: func(m *MockLimitGetter) {
				m.EXPECT().GetLimit(gomock.Any(), userID).Return(nil, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"limit":null}`,
		},
		{
			name: "user vanished",
			mockSetup: func(m *MockLimitGetter) {
				m.EXPECT().GetLimit(gomock.Any(), userID).Return(nil, services.ErrUserDoesNotExist)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"User not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMockLimitGetter(ctrl)
			tt.mockSetup(m)

			rr := httptest.NewRecorder()
			NewGetLimitHandler(m)(rr, newAuthedRequest(t, http.MethodGet, "/budgets/getLimit", nil, userID))

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
		})
	}
}
