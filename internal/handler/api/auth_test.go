//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"biblio-api/internal/handler/api"
	resdto "biblio-api/internal/handler/dto/response"
	"biblio-api/internal/usecase"
	"biblio-api/internal/usecase/queries"
	"biblio-api/tests/common/builder"
	"biblio-api/tests/common/httptest"
	"biblio-api/tests/common/testutil"
	usecasemock "biblio-api/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockUseCase *usecasemock.MockAuthUseCase
	handler     *api.AuthHandler
	userID      uuid.UUID
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockUseCase = usecasemock.NewMockAuthUseCase(s.mockCtrl)
	s.handler = api.NewAuthHandler(s.mockUseCase)
	s.userID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.userID)
		c.Next()
	}

	s.router.POST("/auth/register", s.handler.Register)
	s.router.POST("/auth/login", s.handler.Login)
	s.router.GET("/auth/me", authMiddleware, s.handler.Me)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

// ================================================================================
// TestRegister
// ================================================================================

func (s *AuthHandlerTestSuite) TestRegister() {
	url := "/auth/register"
	ub := builder.NewUserBuilder()
	reqBody := ub.BuildRegisterRequestDTO()
	view := ub.BuildAuthorizedView()

	s.Run("success: returns 201 with token and profile", func() {
		s.mockUseCase.EXPECT().Register(gomock.Any(), reqBody.ToParams()).
			Return("signed-token", view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var resp resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal("signed-token", resp.AccessToken)
		s.Equal(view.Email, resp.User.Email)
		s.Equal(view.ID, resp.User.ID)
	})

	s.Run("error: email already registered returns 409", func() {
		s.mockUseCase.EXPECT().Register(gomock.Any(), reqBody.ToParams()).
			Return("", nil, usecase.ErrEmailTaken).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Email already registered")
	})

	validationCases := []struct {
		name string
		body map[string]any
	}{
		{"missing email", testutil.DtoMap(s.T(), reqBody, testutil.Field("email", nil))},
		{"malformed email", testutil.DtoMap(s.T(), reqBody, testutil.Field("email", "not-an-email"))},
		{"short password", testutil.DtoMap(s.T(), reqBody, testutil.Field("password", "short"))},
		{"missing first name", testutil.DtoMap(s.T(), reqBody, testutil.Field("first_name", nil))},
	}

	for _, c := range validationCases {
		s.Run("validation: "+c.name, func() {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, c.body, "")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
		})
	}
}

// ================================================================================
// TestLogin
// ================================================================================

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"
	ub := builder.NewUserBuilder()
	view := ub.BuildAuthorizedView()
	reqBody := map[string]any{"email": ub.Email, "password": ub.Password}

	s.Run("success: returns 200 with token", func() {
		s.mockUseCase.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return("signed-token", view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var resp resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("signed-token", resp.AccessToken)
	})

	s.Run("error: wrong password returns 401", func() {
		s.mockUseCase.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return("", nil, usecase.ErrInvalidCredentials).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid email or password")
	})

	s.Run("error: unknown email reads the same as wrong password", func() {
		s.mockUseCase.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return("", nil, usecase.ErrUserNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid email or password")
	})

	s.Run("error: deactivated account returns 403", func() {
		s.mockUseCase.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return("", nil, usecase.ErrUserInactive).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Account is inactive")
	})

	s.Run("validation: missing password returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"email": ub.Email}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})
}

// ================================================================================
// TestMe
// ================================================================================

func (s *AuthHandlerTestSuite) TestMe() {
	url := "/auth/me"

	s.Run("success: returns the authenticated profile", func() {
		view := builder.NewUserBuilder().WithID(s.userID).BuildAuthorizedView()
		s.mockUseCase.EXPECT().GetCurrentUser(gomock.Any(), s.userID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var resp queries.AuthorizedUserView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(s.userID, resp.ID)
	})

	s.Run("error: vanished account returns 404", func() {
		s.mockUseCase.EXPECT().GetCurrentUser(gomock.Any(), s.userID).
			Return(nil, usecase.ErrUserNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "User not found")
	})

	s.Run("unauthorized: missing token returns 401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}
