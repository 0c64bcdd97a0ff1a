package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/marcellhenrique/LibrarySystem/internal/model"
	sharedContext "github.com/marcellhenrique/LibrarySystem/internal/shared/context"
	sharedError "github.com/marcellhenrique/LibrarySystem/internal/shared/error"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/middleware"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/ratelimit"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/testutil"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	account *model.StaffAccount
	err     error
}

func (s stubResolver) ResolveAccount(_ context.Context, _ string) (*model.StaffAccount, error) {
	return s.account, s.err
}

func protectedRouter(manager token.Manager, guards ...gin.HandlerFunc) *gin.Engine {
	r := testutil.SetupTestRouter()
	handlers := append([]gin.HandlerFunc{middleware.JWT(manager)}, guards...)
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := sharedContext.GetAccountID(c)
		c.JSON(http.StatusOK, gin.H{"account_id": id})
	})
	r.GET("/protected", handlers...)
	return r
}

func TestJWT(t *testing.T) {
	manager := testutil.NewTokenManager()
	access, err := manager.GenerateAccessToken("acc-1", "alice")
	require.NoError(t, err)
	refresh, err := manager.GenerateRefreshToken("acc-1", "alice")
	require.NoError(t, err)

	tests := []struct {
		name       string
		headers    map[string]string
		wantStatus int
		wantCode   string
	}{
		{name: "valid access token", headers: map[string]string{"Authorization": "Bearer " + access}, wantStatus: http.StatusOK},
		{name: "lowercase scheme", headers: map[string]string{"Authorization": "bearer " + access}, wantStatus: http.StatusOK},
		{name: "missing header", wantStatus: http.StatusUnauthorized, wantCode: "AUTH-000"},
		{name: "wrong scheme", headers: map[string]string{"Authorization": "Basic abc"}, wantStatus: http.StatusUnauthorized, wantCode: "AUTH-000"},
		{name: "garbage token", headers: map[string]string{"Authorization": "Bearer not-a-jwt"}, wantStatus: http.StatusUnauthorized, wantCode: "AUTH-000"},
		{name: "refresh token rejected", headers: map[string]string{"Authorization": "Bearer " + refresh}, wantStatus: http.StatusUnauthorized, wantCode: "AUTH-000"},
	}

	router := protectedRouter(manager)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.ExecuteRequest(t, router, testutil.TestRequest{
				Method:  http.MethodGet,
				URL:     "/protected",
				Headers: tt.headers,
			})

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				var resp sharedError.ErrorResponse
				testutil.ParseResponse(t, rec, &resp)
				assert.Equal(t, tt.wantCode, resp.Code)
			}
		})
	}
}

func TestJWT_ExpiredToken(t *testing.T) {
	mock := testutil.NewMockTokenManager()
	mock.ValidateTokenFunc = func(string) (*token.Claims, error) {
		return nil, token.ErrExpiredToken
	}

	rec := testutil.ExecuteRequest(t, protectedRouter(mock), testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/protected",
		Token:  "expired",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var resp sharedError.ErrorResponse
	testutil.ParseResponse(t, rec, &resp)
	assert.Equal(t, "AUTH-001", resp.Code)
}

func TestRequireStaff(t *testing.T) {
	manager := testutil.NewTokenManager()
	signed, err := manager.GenerateAccessToken("acc-1", "alice")
	require.NoError(t, err)

	tests := []struct {
		name       string
		resolver   stubResolver
		wantStatus int
	}{
		{name: "active staff", resolver: stubResolver{account: &model.StaffAccount{ID: "acc-1", IsActive: true, IsStaffMember: true}}, wantStatus: http.StatusOK},
		{name: "not staff", resolver: stubResolver{account: &model.StaffAccount{ID: "acc-1", IsActive: true}}, wantStatus: http.StatusForbidden},
		{name: "inactive", resolver: stubResolver{account: &model.StaffAccount{ID: "acc-1", IsStaffMember: true}}, wantStatus: http.StatusForbidden},
		{name: "account gone", resolver: stubResolver{err: errors.New("not found")}, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := protectedRouter(manager, middleware.RequireStaff(tt.resolver))
			rec := testutil.ExecuteRequest(t, router, testutil.TestRequest{
				Method: http.MethodGet,
				URL:    "/protected",
				Token:  signed,
			})
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	manager := testutil.NewTokenManager()
	signed, err := manager.GenerateAccessToken("acc-1", "alice")
	require.NoError(t, err)

	staffOnly := stubResolver{account: &model.StaffAccount{ID: "acc-1", IsActive: true, IsStaffMember: true}}
	admin := stubResolver{account: &model.StaffAccount{ID: "acc-1", IsActive: true, IsStaffMember: true, IsAdmin: true}}

	rec := testutil.ExecuteRequest(t, protectedRouter(manager, middleware.RequireAdmin(staffOnly)), testutil.TestRequest{
		Method: http.MethodGet, URL: "/protected", Token: signed,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = testutil.ExecuteRequest(t, protectedRouter(manager, middleware.RequireAdmin(admin)), testutil.TestRequest{
		Method: http.MethodGet, URL: "/protected", Token: signed,
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit(t *testing.T) {
	limiter := ratelimit.New(nil, ratelimit.PerMinute(2, 2))

	router := testutil.SetupTestRouter()
	router.POST("/login", middleware.RateLimit(limiter), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	for i := 0; i < 2; i++ {
		rec := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodPost, URL: "/login"})
		require.Equal(t, http.StatusNoContent, rec.Code, "attempt %d", i+1)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodPost, URL: "/login"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	var resp sharedError.ErrorResponse
	testutil.ParseResponse(t, rec, &resp)
	assert.Equal(t, "RATE-001", resp.Code)
}

func TestRequestID(t *testing.T) {
	router := testutil.SetupTestRouter()
	router.Use(middleware.RequestID())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetRequestID(c))
	})

	rec := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method:  http.MethodGet,
		URL:     "/ping",
		Headers: map[string]string{middleware.RequestIDHeader: "req-123"},
	})
	assert.Equal(t, "req-123", rec.Body.String())
	assert.Equal(t, "req-123", rec.Header().Get(middleware.RequestIDHeader))

	rec = testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/ping"})
	assert.Len(t, rec.Body.String(), 36)
}
