package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/feedlink/feedlink/internal/domain"
	"github.com/feedlink/feedlink/internal/linkflow"
)

// ============================================================================
// MOCKS
// ============================================================================

type MockLinkService struct {
	mock.Mock
}

func (m *MockLinkService) StartLink(ctx context.Context, provider string, chatID int64) (*linkflow.LinkStart, error) {
	args := m.Called(ctx, provider, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*linkflow.LinkStart), args.Error(1)
}

func (m *MockLinkService) CompleteLink(ctx context.Context, code, state string) (*linkflow.LinkResult, error) {
	args := m.Called(ctx, code, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*linkflow.LinkResult), args.Error(1)
}

func (m *MockLinkService) AbortLink(ctx context.Context, state string) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *MockLinkService) Status(ctx context.Context, chatID int64) ([]domain.Binding, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Binding), args.Error(1)
}

// ============================================================================
// LOGIN TESTS
// ============================================================================

func TestHandleLogin_RedirectsToAuthorizeURL(t *testing.T) {
	svc := new(MockLinkService)
	handler := NewLinkHandlers(svc)

	start := &linkflow.LinkStart{
		Provider:     domain.ProviderTwitter,
		AuthorizeURL: "https://twitter.com/i/oauth2/authorize?state=abc",
		ExpiresIn:    300,
	}
	svc.On("StartLink", mock.Anything, domain.ProviderTwitter, int64(12345)).Return(start, nil)

	req := httptest.NewRequest(http.MethodGet, "/login?chat_id=12345&provider=twitter", nil)
	w := httptest.NewRecorder()

	handler.HandleLogin()(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, start.AuthorizeURL, w.Header().Get("Location"))

	svc.AssertExpectations(t)
}

func TestHandleLogin_DefaultsToTwitter(t *testing.T) {
	svc := new(MockLinkService)
	handler := NewLinkHandlers(svc)

	start := &linkflow.LinkStart{
		Provider:     domain.ProviderTwitter,
		AuthorizeURL: "https://twitter.com/i/oauth2/authorize?state=abc",
	}
	svc.On("StartLink", mock.Anything, domain.ProviderTwitter, int64(99)).Return(start, nil)

	req := httptest.NewRequest(http.MethodGet, "/login?chat_id=99", nil)
	w := httptest.NewRecorder()

	handler.HandleLogin()(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	svc.AssertExpectations(t)
}

func TestHandleLogin_MissingChatID(t *testing.T) {
	svc := new(MockLinkService)
	handler := NewLinkHandlers(svc)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	w := httptest.NewRecorder()

	handler.HandleLogin()(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing chat_id")
	svc.AssertNotCalled(t, "StartLink")
}

func TestHandleLogin_MalformedChatID(t *testing.T) {
	svc := new(MockLinkService)
	handler := NewLinkHandlers(svc)

	req := httptest.NewRequest(http.MethodGet, "/login?chat_id=not-a-number", nil)
	w := httptest.NewRecorder()

	handler.HandleLogin()(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgInvalidChatID)
	svc.AssertNotCalled(t, "StartLink")
}

func TestHandleLogin_UnknownProvider(t *testing.T) {
	svc := new(MockLinkService)
	handler := NewLinkHandlers(svc)

	svc.On("StartLink", mock.Anything, "myspace", int64(12345)).
		Return(nil, fmt.Errorf("%w: myspace", domain.ErrUnknownProvider))

	req := httptest.NewRequest(http.MethodGet, "/login?chat_id=12345&provider=myspace", nil)
	w := httptest.NewRecorder()

	handler.HandleLogin()(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgUnknownProviderError)
	svc.AssertExpectations(t)
}

// ============================================================================
// CALLBACK TESTS
// ============================================================================

func TestHandleCallback_Success(t *testing.T) {
	svc := new(MockLinkService)
	handler := NewLinkHandlers(svc)

	result := &linkflow.LinkResult{
		ChatID:            12345,
		Provider:          domain.ProviderTwitter,
		ExternalAccountID: "alice",
	}
	svc.On("CompleteLink", mock.Anything, "abc123", "state-xyz").Return(result, nil)

	req := httptest.NewRequest(http.MethodGet, "/callback?code=abc123&state=state-xyz", nil)
	w := httptest.NewRecorder()

	handler.HandleCallback()(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Account linked")

	svc.AssertExpectations(t)
}

func TestHandleCallback_MissingCode(t *testing.T) {
	svc := new(MockLinkService)
	handler := NewLinkHandlers(svc)

	req := httptest.NewRequest(http.MethodGet, "/callback?state=state-xyz", nil)
	w := httptest.NewRecorder()

	handler.HandleCallback()(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing code")
	svc.AssertNotCalled(t, "CompleteLink")
}

func TestHandleCallback_MissingState(t *testing.T) {
	svc := new(MockLinkService)
	handler := NewLinkHandlers(svc)

	req := httptest.NewRequest(http.MethodGet, "/callback?code=abc123", nil)
	w := httptest.NewRecorder()

	handler.HandleCallback()(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing state")
	svc.AssertNotCalled(t, "CompleteLink")
}

func TestHandleCallback_InvalidState(t *testing.T) {
	svc := new(MockLinkService)
	handler := NewLinkHandlers(svc)

	svc.On("CompleteLink", mock.Anything, "abc123", "stale").
		Return(nil, domain.ErrStateNotFound)

	req := httptest.NewRequest(http.MethodGet, "/callback?code=abc123&state=stale", nil)
	w := httptest.NewRecorder()

	handler.HandleCallback()(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgInvalidStateError)
	svc.AssertExpectations(t)
}

func TestHandleCallback_ExchangeFailed(t *testing.T) {
	svc := new(MockLinkService)
	handler := NewLinkHandlers(svc)

	svc.On("CompleteLink", mock.Anything, "abc123", "state-xyz").
		Return(nil, fmt.Errorf("%w: status 401", domain.ErrExchangeFailed))

	req := httptest.NewRequest(http.MethodGet, "/callback?code=abc123&state=state-xyz", nil)
	w := httptest.NewRecorder()

	handler.HandleCallback()(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgExchangeFailedError)
	svc.AssertExpectations(t)
}

func TestHandleCallback_StorageFailure(t *testing.T) {
	svc := new(MockLinkService)
	handler := NewLinkHandlers(svc)

	svc.On("CompleteLink", mock.Anything, "abc123", "state-xyz").
		Return(nil, fmt.Errorf("%w: connection refused", domain.ErrDatabaseError))

	req := httptest.NewRequest(http.MethodGet, "/callback?code=abc123&state=state-xyz", nil)
	w := httptest.NewRecorder()

	handler.HandleCallback()(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgGenericServerError)
	svc.AssertExpectations(t)
}

func TestHandleCallback_ProviderDenied_ConsumesState(t *testing.T) {
	svc := new(MockLinkService)
	handler := NewLinkHandlers(svc)

	svc.On("AbortLink", mock.Anything, "state-xyz").Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/callback?error=access_denied&state=state-xyz", nil)
	w := httptest.NewRecorder()

	handler.HandleCallback()(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgProviderDeniedError)
	svc.AssertExpectations(t)
	svc.AssertNotCalled(t, "CompleteLink")
}

func TestHandleCallback_ProviderDenied_NoState(t *testing.T) {
	svc := new(MockLinkService)
	handler := NewLinkHandlers(svc)

	req := httptest.NewRequest(http.MethodGet, "/callback?error=access_denied", nil)
	w := httptest.NewRecorder()

	handler.HandleCallback()(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "AbortLink")
	svc.AssertNotCalled(t, "CompleteLink")
}

// ============================================================================
// STATUS TESTS
// ============================================================================

func TestHandleStatus_Success(t *testing.T) {
	svc := new(MockLinkService)
	handler := NewLinkHandlers(svc)

	bindings := []domain.Binding{
		{ChatID: 12345, Provider: domain.ProviderGoogle, ExternalAccountID: "alice@example.com", LinkedAt: time.Now()},
		{ChatID: 12345, Provider: domain.ProviderTwitter, ExternalAccountID: "alice", LinkedAt: time.Now()},
	}
	svc.On("Status", mock.Anything, int64(12345)).Return(bindings, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/link/status?chat_id=12345", nil)
	w := httptest.NewRecorder()

	handler.HandleStatus()(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp StatusResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, int64(12345), resp.ChatID)
	assert.Equal(t, 2, len(resp.Bindings))

	svc.AssertExpectations(t)
}

func TestHandleStatus_AccessTokenNotSerialized(t *testing.T) {
	svc := new(MockLinkService)
	handler := NewLinkHandlers(svc)

	bindings := []domain.Binding{
		{ChatID: 7, Provider: domain.ProviderTwitter, ExternalAccountID: "bob", AccessToken: "tok_secret"},
	}
	svc.On("Status", mock.Anything, int64(7)).Return(bindings, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/link/status?chat_id=7", nil)
	w := httptest.NewRecorder()

	handler.HandleStatus()(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "tok_secret")
	svc.AssertExpectations(t)
}

func TestHandleStatus_MissingChatID(t *testing.T) {
	svc := new(MockLinkService)
	handler := NewLinkHandlers(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/link/status", nil)
	w := httptest.NewRecorder()

	handler.HandleStatus()(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Status")
}

func TestHandleStatus_ServiceError(t *testing.T) {
	svc := new(MockLinkService)
	handler := NewLinkHandlers(svc)

	svc.On("Status", mock.Anything, int64(12345)).
		Return(nil, fmt.Errorf("%w: connection refused", domain.ErrDatabaseError))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/link/status?chat_id=12345", nil)
	w := httptest.NewRecorder()

	handler.HandleStatus()(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	svc.AssertExpectations(t)
}
