package auth_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/marcellhenrique/LibrarySystem/internal/account"
	"github.com/marcellhenrique/LibrarySystem/internal/auth"
	"github.com/marcellhenrique/LibrarySystem/internal/model"
	sharedError "github.com/marcellhenrique/LibrarySystem/internal/shared/error"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/middleware"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/ratelimit"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/testutil"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestEnvironment creates all dependencies needed for auth handler tests
func setupTestEnvironment(t *testing.T) (*gin.Engine, *gorm.DB, *token.JWTManager) {
	t.Helper()

	// Setup test database
	db := testutil.SetupTestDB(t)

	// Setup dependencies
	tokenManager := testutil.NewTokenManager()
	accountService := account.NewAccountService(db, account.NewAccountRepository())
	authHandler := auth.NewAuthHandler(auth.NewAuthService(accountService, tokenManager))

	router := testutil.SetupTestRouter()
	group := router.Group("/api/v1/auth")
	group.POST("/login", authHandler.Login)
	group.POST("/token/refresh", authHandler.Refresh)
	group.POST("/register", authHandler.Register)
	group.GET("/profile", middleware.JWT(tokenManager), authHandler.Profile)

	return router, db, tokenManager
}

func login(t *testing.T, router *gin.Engine, loginName, password string) *auth.LoginResponse {
	t.Helper()

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/login",
		Body:   auth.LoginRequest{Login: loginName, Password: password},
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var response auth.LoginResponse
	testutil.ParseResponse(t, recorder, &response)
	return &response
}

func TestLogin_Success(t *testing.T) {
	// Given: An active staff member
	router, db, tokenManager := setupTestEnvironment(t)
	staff := testutil.CreateStaffAccount(t, db, "librarian")

	// When: Logging in with the right password
	response := login(t, router, "librarian", testutil.TestPassword)

	// Then: Both tokens are bound to the account
	assert.Equal(t, staff.ID, response.User.ID)

	access, err := token.ValidateTokenOfType(tokenManager, response.Access, token.ACCESS)
	require.NoError(t, err)
	assert.Equal(t, staff.ID, access.AccountID)

	refresh, err := token.ValidateTokenOfType(tokenManager, response.Refresh, token.REFRESH)
	require.NoError(t, err)
	assert.Equal(t, staff.ID, refresh.AccountID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	// Given: Accounts in every state the verifier must reject
	router, db, _ := setupTestEnvironment(t)
	testutil.CreateStaffAccount(t, db, "librarian")
	testutil.CreateStaffAccount(t, db, "retired", testutil.Inactive())
	testutil.CreateStaffAccount(t, db, "visitor", testutil.NotStaffMember())

	testCases := []struct {
		name     string
		login    string
		password string
	}{
		{name: "unknown login", login: "nobody", password: testutil.TestPassword},
		{name: "wrong password", login: "librarian", password: "wrong-password"},
		{name: "inactive account", login: "retired", password: testutil.TestPassword},
		{name: "not a staff member", login: "visitor", password: testutil.TestPassword},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// When
			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
				Method: http.MethodPost,
				URL:    "/api/v1/auth/login",
				Body:   auth.LoginRequest{Login: tc.login, Password: tc.password},
			})

			// Then: The same response whatever the reason
			assert.Equal(t, http.StatusUnauthorized, recorder.Code)

			var errorResponse sharedError.ErrorResponse
			testutil.ParseResponse(t, recorder, &errorResponse)
			assert.Equal(t, "AUTH-003", errorResponse.Code)
			assert.Equal(t, "Invalid credentials.", errorResponse.Message)
		})
	}
}

func TestLogin_ValidationError(t *testing.T) {
	router, _, _ := setupTestEnvironment(t)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/login",
		Body:   map[string]string{"login": "librarian"},
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "ERROR-001", errorResponse.Code)
}

func TestLogin_MalformedBody(t *testing.T) {
	router, _, _ := setupTestEnvironment(t)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method:  http.MethodPost,
		URL:     "/api/v1/auth/login",
		RawBody: "{not json",
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "ERROR-002", errorResponse.Code)
}

func TestLogin_RateLimited(t *testing.T) {
	// Given: A login route that allows two attempts per client
	db := testutil.SetupTestDB(t)
	accountService := account.NewAccountService(db, account.NewAccountRepository())
	authHandler := auth.NewAuthHandler(auth.NewAuthService(accountService, testutil.NewTokenManager()))

	router := testutil.SetupTestRouter()
	limiter := ratelimit.New(nil, ratelimit.PerMinute(2, 2))
	router.POST("/api/v1/auth/login", middleware.RateLimit(limiter), authHandler.Login)

	request := testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/login",
		Body:   auth.LoginRequest{Login: "nobody", Password: "whatever"},
	}

	// When: Failing twice and trying again
	for i := 0; i < 2; i++ {
		recorder := testutil.ExecuteRequest(t, router, request)
		require.Equal(t, http.StatusUnauthorized, recorder.Code)
	}
	recorder := testutil.ExecuteRequest(t, router, request)

	// Then
	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get("Retry-After"))
}

func TestRefresh(t *testing.T) {
	router, db, _ := setupTestEnvironment(t)
	staff := testutil.CreateStaffAccount(t, db, "librarian")
	tokens := login(t, router, "librarian", testutil.TestPassword)

	t.Run("refresh token issues access token", func(t *testing.T) {
		recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
			Method: http.MethodPost,
			URL:    "/api/v1/auth/token/refresh",
			Body:   auth.RefreshRequest{Refresh: tokens.Refresh},
		})
		require.Equal(t, http.StatusOK, recorder.Code)

		var response auth.RefreshResponse
		testutil.ParseResponse(t, recorder, &response)
		assert.NotEmpty(t, response.Access)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
			Method: http.MethodPost,
			URL:    "/api/v1/auth/token/refresh",
			Body:   auth.RefreshRequest{Refresh: tokens.Access},
		})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("deactivated account cannot refresh", func(t *testing.T) {
		require.NoError(t, db.Model(&model.StaffAccount{}).Where("id = ?", staff.ID).Update("is_active", false).Error)

		recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
			Method: http.MethodPost,
			URL:    "/api/v1/auth/token/refresh",
			Body:   auth.RefreshRequest{Refresh: tokens.Refresh},
		})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		var errorResponse sharedError.ErrorResponse
		testutil.ParseResponse(t, recorder, &errorResponse)
		assert.Equal(t, "AUTH-002", errorResponse.Code)
	})
}

func TestRegister_CreatesLockedAccount(t *testing.T) {
	// Given
	router, db, _ := setupTestEnvironment(t)

	// When: Registering a new account
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/register",
		Body: auth.RegisterRequest{
			Login:    "newbie",
			Email:    "newbie@library.local",
			Name:     "New Person",
			Password: "password123",
		},
	})

	// Then: It exists but cannot sign in yet
	require.Equal(t, http.StatusCreated, recorder.Code)

	var response account.AccountResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.False(t, response.IsStaffMember)
	assert.True(t, response.IsActive)

	stored := testutil.Reload[model.StaffAccount](t, db, response.ID)
	assert.NotEqual(t, "password123", stored.Password)

	recorder = testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/login",
		Body:   auth.LoginRequest{Login: "newbie", Password: "password123"},
	})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRegister_DuplicateLogin(t *testing.T) {
	router, db, _ := setupTestEnvironment(t)
	testutil.CreateStaffAccount(t, db, "librarian")

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/register",
		Body: auth.RegisterRequest{
			Login:    "librarian",
			Email:    "other@library.local",
			Name:     "Other Person",
			Password: "password123",
		},
	})

	assert.Equal(t, http.StatusConflict, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "ACCOUNT-002", errorResponse.Code)
}

func TestRegister_ValidationError_PasswordTooShort(t *testing.T) {
	router, _, _ := setupTestEnvironment(t)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/register",
		Body: auth.RegisterRequest{
			Login:    "newbie",
			Email:    "newbie@library.local",
			Name:     "New Person",
			Password: "short",
		},
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.NotEmpty(t, errorResponse.Message)
}

func TestProfile(t *testing.T) {
	router, db, _ := setupTestEnvironment(t)
	staff := testutil.CreateStaffAccount(t, db, "librarian")
	tokens := login(t, router, "librarian", testutil.TestPassword)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/auth/profile",
		Token:  tokens.Access,
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var response account.AccountResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.Equal(t, staff.Login, response.Login)

	recorder = testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/auth/profile",
	})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
