//go:build e2e

package loan_test

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

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	loansURL          = "/api/loans"
	pendingLoansURL   = "/api/loans/pending"
	returnRequestsURL = "/api/loans/return-requests"
	allLoansURL       = "/api/loans/all"
)

type LoanSuite struct {
	e2e.SharedSuite
}

func (s *LoanSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestLoanSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(LoanSuite))
}

func (s *LoanSuite) availableCopies(t *testing.T, bookID uuid.UUID) int {
	t.Helper()
	var available int
	err := s.DB.QueryRow(context.Background(),
		"SELECT available_copies FROM books WHERE id = $1", bookID).Scan(&available)
	require.NoError(t, err)
	return available
}

// =============================================================================
// TestLoanLifecycle - full request/approve/return round trip
// =============================================================================

func (s *LoanSuite) TestLoanLifecycle() {
	s.Run("Normal case: request, approve, return and validate", func() {
		t := s.T()

		studentToken := authtest.CreateAndLogin(t, s.DB, s.Router, "student@example.com", string(user.RoleStudent))
		adminToken := authtest.CreateAndLogin(t, s.DB, s.Router, "admin@example.com", string(user.RoleAdmin))
		bookID := dbtest.CreateTestBook(t, s.DB, "Clean Architecture", 1)

		// Student requests the book
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loansURL,
			request.CreateLoanRequest{BookID: bookID}, studentToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.LoanRequestedResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Equal(t, "pending", created.Status)
		require.Equal(t, 1, s.availableCopies(t, bookID), "pending request must not touch the inventory")

		// Admin sees it in the pending queue
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, pendingLoansURL, nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var pending []*queries.LoanView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &pending))
		require.Len(t, pending, 1)

		expected := &queries.LoanView{
			BookID:    bookID,
			BookTitle: "Clean Architecture",
			UserEmail: "student@example.com",
			Status:    "pending",
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(queries.LoanView{},
				"ID", "UserID", "BookAuthor", "UserName",
				"RequestedAt", "DueAt", "ReturnedAt", "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(expected, pending[0], opts...); diff != "" {
			t.Errorf("pending loan mismatch (-want +got):\n%s", diff)
		}

		// Approve takes a copy out of the inventory
		approveURL := fmt.Sprintf("%s/%s/approve", loansURL, created.ID)
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, approveURL, nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.Equal(t, 0, s.availableCopies(t, bookID))

		// Student asks to give it back
		returnURL := fmt.Sprintf("%s/%s/return-request", loansURL, created.ID)
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, returnURL, nil, studentToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, returnRequestsURL, nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code)
		var returnQueue []*queries.LoanView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &returnQueue))
		require.Len(t, returnQueue, 1)

		// Validation closes the loan and puts the copy back
		validateURL := fmt.Sprintf("%s/%s/validate-return", loansURL, created.ID)
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, validateURL, nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.Equal(t, 1, s.availableCopies(t, bookID))

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, loansURL, nil, studentToken)
		require.Equal(t, http.StatusOK, w.Code)
		var mine []*queries.LoanView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &mine))
		require.Len(t, mine, 1)
		require.Equal(t, "returned", mine[0].Status)
		require.NotNil(t, mine[0].ReturnedAt)
	})

	s.Run("Error case: duplicate open loan for the same book fails", func() {
		t := s.T()

		studentToken := authtest.CreateAndLogin(t, s.DB, s.Router, "student@example.com", string(user.RoleStudent))
		bookID := dbtest.CreateTestBook(t, s.DB, "The Pragmatic Programmer", 2)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loansURL,
			request.CreateLoanRequest{BookID: bookID}, studentToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, loansURL,
			request.CreateLoanRequest{BookID: bookID}, studentToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Error case: approval fails once the last copy is gone", func() {
		t := s.T()

		firstToken := authtest.CreateAndLogin(t, s.DB, s.Router, "first@example.com", string(user.RoleStudent))
		secondToken := authtest.CreateAndLogin(t, s.DB, s.Router, "second@example.com", string(user.RoleStudent))
		adminToken := authtest.CreateAndLogin(t, s.DB, s.Router, "admin@example.com", string(user.RoleAdmin))
		bookID := dbtest.CreateTestBook(t, s.DB, "Domain-Driven Design", 1)

		var loanIDs []string
		for _, token := range []string{firstToken, secondToken} {
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loansURL,
				request.CreateLoanRequest{BookID: bookID}, token)
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

			var created response.LoanRequestedResponse
			require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
			loanIDs = append(loanIDs, created.ID.String())
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/approve", loansURL, loanIDs[0]), nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/approve", loansURL, loanIDs[1]), nil, adminToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
		require.Equal(t, 0, s.availableCopies(t, bookID))
	})

	s.Run("Normal case: resizing a book keeps borrowed copies accounted for", func() {
		t := s.T()

		studentToken := authtest.CreateAndLogin(t, s.DB, s.Router, "student@example.com", string(user.RoleStudent))
		adminToken := authtest.CreateAndLogin(t, s.DB, s.Router, "admin@example.com", string(user.RoleAdmin))
		bookID := dbtest.CreateTestBook(t, s.DB, "Refactoring", 1)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loansURL,
			request.CreateLoanRequest{BookID: bookID}, studentToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.LoanRequestedResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/approve", loansURL, created.ID), nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.Equal(t, 0, s.availableCopies(t, bookID))

		// One copy is out, so growing the stock to 3 leaves 2 on the shelf
		w = httptest.PerformRequest(t, s.Router, http.MethodPut,
			fmt.Sprintf("/api/books/%s", bookID),
			request.BookRequest{Title: "Refactoring", Author: "Martin Fowler", TotalCopies: 3}, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.Equal(t, 2, s.availableCopies(t, bookID))
	})

	s.Run("Error case: sixth simultaneous loan is rejected", func() {
		t := s.T()

		studentToken := authtest.CreateAndLogin(t, s.DB, s.Router, "heavy-reader@example.com", string(user.RoleStudent))
		adminToken := authtest.CreateAndLogin(t, s.DB, s.Router, "admin@example.com", string(user.RoleAdmin))

		for i := range 5 {
			bookID := dbtest.CreateTestBook(t, s.DB, fmt.Sprintf("Volume %d", i+1), 1)

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loansURL,
				request.CreateLoanRequest{BookID: bookID}, studentToken)
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

			var created response.LoanRequestedResponse
			require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

			w = httptest.PerformRequest(t, s.Router, http.MethodPost,
				fmt.Sprintf("%s/%s/approve", loansURL, created.ID), nil, adminToken)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		}

		bookID := dbtest.CreateTestBook(t, s.DB, "Volume 6", 1)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loansURL,
			request.CreateLoanRequest{BookID: bookID}, studentToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Authorization: students cannot reach the admin queue", func() {
		t := s.T()

		studentToken := authtest.CreateAndLogin(t, s.DB, s.Router, "student@example.com", string(user.RoleStudent))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, pendingLoansURL, nil, studentToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, allLoansURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	})
}
