//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"biblio-api/internal/handler/dto/response"
	"biblio-api/internal/usecase/queries"
	"biblio-api/tests/common/authtest"
	"biblio-api/tests/common/builder"
	"biblio-api/tests/common/dbtest"
	"biblio-api/tests/common/httptest"
	"biblio-api/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	registerURL = "/api/auth/register"
	loginURL    = "/api/auth/login"
	meURL       = "/api/auth/me"
)

type AuthSuite struct {
	e2e.SharedSuite
}

func (s *AuthSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(AuthSuite))
}

// =============================================================================
// TestRegister
// =============================================================================

func (s *AuthSuite) TestRegister() {
	s.Run("Normal case: registration returns a usable token", func() {
		t := s.T()

		ub := builder.NewUserBuilder().WithEmail("newcomer@example.com")
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL,
			ub.BuildRegisterRequestDTO(), "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp response.LoginResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &resp))
		require.NotEmpty(t, resp.AccessToken)

		// The returned token must authenticate /auth/me
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, resp.AccessToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var me queries.AuthorizedUserView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &me))

		expected := &queries.AuthorizedUserView{
			FirstName:     ub.FirstName,
			LastName:      ub.LastName,
			Email:         "newcomer@example.com",
			StudentNumber: ub.StudentNumber,
			Role:          "student",
			IsActive:      true,
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(queries.AuthorizedUserView{}, "ID"),
		}
		if diff := cmp.Diff(expected, &me, opts...); diff != "" {
			t.Errorf("profile mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Error case: duplicate email is rejected", func() {
		t := s.T()

		ub := builder.NewUserBuilder().WithEmail("taken@example.com")
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL,
			ub.BuildRegisterRequestDTO(), "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL,
			ub.BuildRegisterRequestDTO(), "")
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})
}

// =============================================================================
// TestLogin
// =============================================================================

func (s *AuthSuite) TestLogin() {
	s.Run("Normal case: seeded user can log in", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "reader@example.com", "student")
		token := authtest.LoginUser(t, s.Router, "reader@example.com", "password123")
		require.NotEmpty(t, token)
	})

	s.Run("Error case: wrong password is unauthorized", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "reader@example.com", "student")
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			map[string]any{"email": "reader@example.com", "password": "wrong-password"}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	})

	s.Run("Error case: unknown email is unauthorized", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			map[string]any{"email": "ghost@example.com", "password": "password123"}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	})
}
