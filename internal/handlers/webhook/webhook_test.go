package webhook

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/payportal/internal/settlement"
)

func TestReceive(t *testing.T) {
	payload := `{"id":"evt_1","type":"payment_intent.succeeded"}`

	tests := []struct {
		name         string
		body         string
		prepareMock  func(service *MockService)
		expectedCode int
		expectedBody string
	}{
		{
			name: "Acknowledged",
			body: payload,
			prepareMock: func(service *MockService) {
				service.EXPECT().Dispatch(gomock.Any(), []byte(payload), "t=1,v1=abc").Return(nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"received":true}`,
		},
		{
			name: "Bad signature",
			body: payload,
			prepareMock: func(service *MockService) {
				service.EXPECT().Dispatch(gomock.Any(), []byte(payload), "t=1,v1=abc").
					Return(fmt.Errorf("%w: mismatch", settlement.ErrInvalidSignature))
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"Webhook Error: invalid signature"}`,
		},
		{
			name: "Worker pool closed",
			body: payload,
			prepareMock: func(service *MockService) {
				service.EXPECT().Dispatch(gomock.Any(), []byte(payload), "t=1,v1=abc").Return(settlement.ErrPoolClosed)
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"message":"Internal server error"}`,
		},
		{
			name:         "Body too large",
			body:         strings.Repeat("x", maxBodyBytes+1),
			prepareMock:  func(service *MockService) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"Failed to read request body"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := NewMockService(ctrl)
			tt.prepareMock(service)

			req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(tt.body))
			req.Header.Set(SignatureHeader, "t=1,v1=abc")
			rr := httptest.NewRecorder()
			New(service).Receive(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
		})
	}
}

func TestReceive_UnexpectedError(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	service.EXPECT().Dispatch(gomock.Any(), gomock.Any(), "").Return(errors.New("boom"))

	rr := httptest.NewRecorder()
	New(service).Receive(rr, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{}")))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
