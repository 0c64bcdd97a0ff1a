package member_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/marcellhenrique/LibrarySystem/internal/member"
	"github.com/marcellhenrique/LibrarySystem/internal/model"
	sharedError "github.com/marcellhenrique/LibrarySystem/internal/shared/error"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/middleware"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/pagination"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestEnvironment(t *testing.T) (*gin.Engine, *gorm.DB, string) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	tokens := testutil.NewTokenManager()
	h := member.NewMemberHandler(member.NewMemberService(db, member.NewMemberRepository()))

	router := testutil.SetupTestRouter()
	members := router.Group("/api/v1/members", middleware.JWT(tokens))
	members.GET("", h.List)
	members.POST("", h.Create)
	members.GET("/:id", h.Get)
	members.PUT("/:id", h.Update)
	members.PATCH("/:id", h.Patch)
	members.DELETE("/:id", h.Delete)

	staff := testutil.CreateStaffAccount(t, db, "librarian")
	return router, db, testutil.AccessTokenFor(t, tokens, staff)
}

func createMember(t *testing.T, router *gin.Engine, accessToken string, body member.MemberRequest) *member.MemberResponse {
	t.Helper()

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/members",
		Token:  accessToken,
		Body:   body,
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var response member.MemberResponse
	testutil.ParseResponse(t, recorder, &response)
	return &response
}

func ptr(s string) *string { return &s }

func TestCreateMember_NormalizesInput(t *testing.T) {
	// Given
	router, _, accessToken := setupTestEnvironment(t)

	// When: CPF and phone carry formatting and the email is mixed case
	response := createMember(t, router, accessToken, member.MemberRequest{
		Name:  "  Ana Lima ",
		CPF:   "123.456.789-01",
		Phone: ptr("(11) 98765-4321"),
		Email: "Ana.Lima@Example.com",
	})

	// Then
	assert.Equal(t, "Ana Lima", response.Name)
	assert.Equal(t, "12345678901", response.CPF)
	require.NotNil(t, response.Phone)
	assert.Equal(t, "11987654321", *response.Phone)
	assert.Equal(t, "ana.lima@example.com", response.Email)
}

func TestCreateMember_DuplicateCPF(t *testing.T) {
	// Given: A member with CPF 12345678901
	router, db, accessToken := setupTestEnvironment(t)
	createMember(t, router, accessToken, member.MemberRequest{
		Name:  "Ana Lima",
		CPF:   "12345678901",
		Email: "ana@example.com",
	})

	// When: Creating another member with the same CPF
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/members",
		Token:  accessToken,
		Body: member.MemberRequest{
			Name:  "Bruno Dias",
			CPF:   "12345678901",
			Email: "bruno@example.com",
		},
	})

	// Then: Conflict and nothing inserted
	assert.Equal(t, http.StatusConflict, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "MEMBER-002", errorResponse.Code)
	assert.EqualValues(t, 1, testutil.CountRows(t, db, &model.Member{}))
}

func TestCreateMember_DuplicateEmail(t *testing.T) {
	router, _, accessToken := setupTestEnvironment(t)
	createMember(t, router, accessToken, member.MemberRequest{Name: "Ana Lima", CPF: "12345678901", Email: "ana@example.com"})

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/members",
		Token:  accessToken,
		Body:   member.MemberRequest{Name: "Ana Clone", CPF: "10987654321", Email: "ANA@example.com"},
	})

	assert.Equal(t, http.StatusConflict, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "MEMBER-003", errorResponse.Code)
}

// insertBeforeMemberCreate stores other right before the next member insert, inside the
// same transaction, as if a concurrent request had committed it after the uniqueness check.
func insertBeforeMemberCreate(t *testing.T, db *gorm.DB, other *model.Member) {
	t.Helper()

	done := false
	err := db.Callback().Create().Before("gorm:create").Register("test:concurrent_member", func(tx *gorm.DB) {
		if done || tx.Statement.Table != "members" {
			return
		}
		done = true
		if err := tx.Session(&gorm.Session{NewDB: true}).Create(other).Error; err != nil {
			t.Errorf("insert concurrent member: %v", err)
		}
	})
	require.NoError(t, err)
}

func TestCreateMember_ConcurrentDuplicateNamesTheField(t *testing.T) {
	testCases := []struct {
		name  string
		other *model.Member
		code  string
	}{
		{name: "email", other: model.NewMember("Ana Clone", "10987654321", nil, "ana@example.com"), code: "MEMBER-003"},
		{name: "cpf", other: model.NewMember("Ana Clone", "12345678901", nil, "clone@example.com"), code: "MEMBER-002"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router, db, accessToken := setupTestEnvironment(t)
			insertBeforeMemberCreate(t, db, tc.other)

			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
				Method: http.MethodPost,
				URL:    "/api/v1/members",
				Token:  accessToken,
				Body:   member.MemberRequest{Name: "Ana Lima", CPF: "12345678901", Email: "ana@example.com"},
			})

			assert.Equal(t, http.StatusConflict, recorder.Code, recorder.Body.String())
			var errorResponse sharedError.ErrorResponse
			testutil.ParseResponse(t, recorder, &errorResponse)
			assert.Equal(t, tc.code, errorResponse.Code)
		})
	}
}

func TestCreateMember_ValidationErrors(t *testing.T) {
	router, db, accessToken := setupTestEnvironment(t)

	testCases := []struct {
		name string
		body map[string]any
	}{
		{name: "cpf too short", body: map[string]any{"name": "Ana Lima", "cpf": "1234567890", "email": "ana@example.com"}},
		{name: "cpf with letters", body: map[string]any{"name": "Ana Lima", "cpf": "1234567890a", "email": "ana@example.com"}},
		{name: "phone too short", body: map[string]any{"name": "Ana Lima", "cpf": "12345678901", "phone": "123456789", "email": "ana@example.com"}},
		{name: "phone too long", body: map[string]any{"name": "Ana Lima", "cpf": "12345678901", "phone": "1234567890123456", "email": "ana@example.com"}},
		{name: "invalid email", body: map[string]any{"name": "Ana Lima", "cpf": "12345678901", "email": "not-an-email"}},
		{name: "blank name", body: map[string]any{"name": "   ", "cpf": "12345678901", "email": "ana@example.com"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
				Method: http.MethodPost,
				URL:    "/api/v1/members",
				Token:  accessToken,
				Body:   tc.body,
			})

			assert.Equal(t, http.StatusBadRequest, recorder.Code)

			var errorResponse sharedError.ErrorResponse
			testutil.ParseResponse(t, recorder, &errorResponse)
			assert.Equal(t, "ERROR-001", errorResponse.Code)
		})
	}

	assert.Zero(t, testutil.CountRows(t, db, &model.Member{}))
}

func TestCreateMember_RequiresAuthentication(t *testing.T) {
	router, _, _ := setupTestEnvironment(t)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/members",
		Body:   member.MemberRequest{Name: "Ana Lima", CPF: "12345678901", Email: "ana@example.com"},
	})

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestListMembers_SearchAndOrder(t *testing.T) {
	router, db, accessToken := setupTestEnvironment(t)
	testutil.CreateMember(t, db, "Carla Souza", "11111111111", "carla@example.com")
	testutil.CreateMember(t, db, "Ana Lima", "22222222222", "ana@example.com")
	testutil.CreateMember(t, db, "Bruno Dias", "33333333333", "bruno@library.org")

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/members",
		Token:  accessToken,
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var all pagination.Result[member.MemberResponse]
	testutil.ParseResponse(t, recorder, &all)
	require.Len(t, all.Results, 3)
	assert.Equal(t, []string{"Ana Lima", "Bruno Dias", "Carla Souza"},
		[]string{all.Results[0].Name, all.Results[1].Name, all.Results[2].Name})

	recorder = testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/members?search=example.com&page_size=1&page=2",
		Token:  accessToken,
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var page pagination.Result[member.MemberResponse]
	testutil.ParseResponse(t, recorder, &page)
	assert.EqualValues(t, 2, page.Count)
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Carla Souza", page.Results[0].Name)
}

func TestUpdateMember_Put(t *testing.T) {
	router, db, accessToken := setupTestEnvironment(t)
	existing := testutil.CreateMember(t, db, "Ana Lima", "12345678901", "ana@example.com")

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPut,
		URL:    "/api/v1/members/" + existing.ID,
		Token:  accessToken,
		Body: member.MemberRequest{
			Name:  "Ana Lima Souza",
			CPF:   "12345678901",
			Phone: ptr("1133334444"),
			Email: "ana.souza@example.com",
		},
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	reloaded := testutil.Reload[model.Member](t, db, existing.ID)
	assert.Equal(t, "Ana Lima Souza", reloaded.Name)
	assert.Equal(t, "ana.souza@example.com", reloaded.Email)
	require.NotNil(t, reloaded.Phone)
	assert.Equal(t, "1133334444", *reloaded.Phone)
}

func TestUpdateMember_Patch(t *testing.T) {
	router, db, accessToken := setupTestEnvironment(t)
	existing := testutil.CreateMember(t, db, "Ana Lima", "12345678901", "ana@example.com")
	testutil.CreateMember(t, db, "Bruno Dias", "10987654321", "bruno@example.com")

	t.Run("only given fields change", func(t *testing.T) {
		recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
			Method: http.MethodPatch,
			URL:    "/api/v1/members/" + existing.ID,
			Token:  accessToken,
			Body:   map[string]string{"phone": "11 2222-3333"},
		})
		require.Equal(t, http.StatusOK, recorder.Code)

		reloaded := testutil.Reload[model.Member](t, db, existing.ID)
		assert.Equal(t, "Ana Lima", reloaded.Name)
		require.NotNil(t, reloaded.Phone)
		assert.Equal(t, "1122223333", *reloaded.Phone)
	})

	t.Run("merged record is validated", func(t *testing.T) {
		recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
			Method: http.MethodPatch,
			URL:    "/api/v1/members/" + existing.ID,
			Token:  accessToken,
			Body:   map[string]string{"cpf": "123"},
		})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("cpf of another member is rejected", func(t *testing.T) {
		recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
			Method: http.MethodPatch,
			URL:    "/api/v1/members/" + existing.ID,
			Token:  accessToken,
			Body:   map[string]string{"cpf": "109.876.543-21"},
		})
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}

func TestDeleteMember(t *testing.T) {
	router, db, accessToken := setupTestEnvironment(t)
	free := testutil.CreateMember(t, db, "Ana Lima", "12345678901", "ana@example.com")
	borrower := testutil.CreateMember(t, db, "Bruno Dias", "10987654321", "bruno@example.com")
	book := testutil.CreateBook(t, db, "Dom Casmurro", "Fiction")
	require.NoError(t, db.Create(model.NewHistoryEntry(book.ID, borrower.ID, model.HistoryActionLoaned, model.Today())).Error)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodDelete,
		URL:    "/api/v1/members/" + free.ID,
		Token:  accessToken,
	})
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodDelete,
		URL:    "/api/v1/members/" + borrower.ID,
		Token:  accessToken,
	})
	assert.Equal(t, http.StatusConflict, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "MEMBER-004", errorResponse.Code)

	recorder = testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/members/" + free.ID,
		Token:  accessToken,
	})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
