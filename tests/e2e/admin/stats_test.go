//go:build e2e

package admin_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"biblio-api/internal/domain/user"
	"biblio-api/internal/handler/dto/request"
	"biblio-api/internal/handler/dto/response"
	"biblio-api/internal/usecase/queries"
	"biblio-api/tests/common/authtest"
	"biblio-api/tests/common/dbtest"
	"biblio-api/tests/common/httptest"
	"biblio-api/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const statsURL = "/api/admin/stats"

type StatsSuite struct {
	e2e.SharedSuite
}

func TestStatsSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(StatsSuite))
}

// =============================================================================
// TestDashboard - aggregate counts
// =============================================================================

func (s *StatsSuite) TestDashboard() {
	s.Run("Normal case: counts reflect the loan ledger", func() {
		t := s.T()

		studentToken := authtest.CreateAndLogin(t, s.DB, s.Router, "reader@example.com", string(user.RoleStudent))
		authtest.CreateAndLogin(t, s.DB, s.Router, "dormant@example.com", string(user.RoleStudent))
		adminToken := authtest.CreateAndLogin(t, s.DB, s.Router, "admin@example.com", string(user.RoleAdmin))

		borrowedID := dbtest.CreateTestBook(t, s.DB, "Borrowed Once", 2)
		shelvedID := dbtest.CreateTestBook(t, s.DB, "Never Borrowed", 1)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/loans",
			request.CreateLoanRequest{BookID: borrowedID}, studentToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.LoanRequestedResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf("/api/loans/%s/approve", created.ID), nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		// Push the dormant reader's history outside the 30-day window
		_, err := s.DB.Exec(context.Background(),
			`INSERT INTO loans (id, user_id, book_id, status, requested_at, due_at, returned_at)
			 SELECT gen_random_uuid(), u.id, $1, 'returned',
			        now() - interval '40 days', now() - interval '26 days', now() - interval '28 days'
			 FROM users u WHERE u.email = 'dormant@example.com'`, borrowedID)
		require.NoError(t, err)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, statsURL, nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var view queries.DashboardView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &view))

		require.Equal(t, 1, view.ActiveLoans)
		require.Equal(t, 1, view.ActiveBorrowers, "borrowers outside the 30-day window must not count")

		// Books without a single loan still show up with a zero count
		countByTitle := make(map[string]int, len(view.PopularBooks))
		for _, b := range view.PopularBooks {
			countByTitle[b.Title] = b.LoanCount
		}
		require.Equal(t, 2, countByTitle["Borrowed Once"])
		count, ok := countByTitle["Never Borrowed"]
		require.True(t, ok, "never-borrowed book %s missing from popular books", shelvedID)
		require.Equal(t, 0, count)
	})

	s.Run("Authorization: students cannot read the dashboard", func() {
		t := s.T()

		studentToken := authtest.CreateAndLogin(t, s.DB, s.Router, "student@example.com", string(user.RoleStudent))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, statsURL, nil, studentToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})
}
