package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rukmini-chat/backend/internal/api"
	"rukmini-chat/backend/internal/interfaces/mocks"
	replymocks "rukmini-chat/backend/internal/reply/mocks"
	"rukmini-chat/backend/internal/service"
)

func setupRouter(t *testing.T) (http.Handler, *mocks.MockReplyService, *mocks.MockSessionProvider) {
	replySvc := mocks.NewMockReplyService(t)
	sessions := mocks.NewMockSessionProvider(t)
	r := api.NewRouter(api.NewReplyHandler(replySvc), api.NewWidgetHandler(), sessions)
	return r, replySvc, sessions
}

func TestRouter_Healthz(t *testing.T) {
	r, _, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestRouter_Chat(t *testing.T) {
	r, replySvc, _ := setupRouter(t)
	replySvc.On("Reply", mock.Anything, mock.Anything).
		Return(&service.ReplyResponse{Response: "Hello!", Timestamp: "2025-01-01T00:00:00Z"}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"hi"}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Hello!")
}

func TestRouter_WidgetRoutesUseSession(t *testing.T) {
	r, _, sessions := setupRouter(t)
	m := newTestManager(t, replymocks.NewMockClient(t))
	clientID := uuid.NewString()
	sessions.On("Get", mock.Anything, clientID).Return(m)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/widget/state", nil)
	req.Header.Set(api.ClientIDHeader, clientID)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, clientID, rr.Header().Get(api.ClientIDHeader))

	req = httptest.NewRequest(http.MethodPost, "/api/v1/widget/toggle", nil)
	req.Header.Set(api.ClientIDHeader, clientID)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"isOpen":true}`, rr.Body.String())
}

func TestRouter_UnknownMethod(t *testing.T) {
	r, _, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/chat", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
