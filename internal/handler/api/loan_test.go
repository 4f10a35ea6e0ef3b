//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"biblio-api/internal/domain/loan"
	"biblio-api/internal/domain/user"
	"biblio-api/internal/handler/api"
	resdto "biblio-api/internal/handler/dto/response"
	"biblio-api/internal/usecase/commands"
	"biblio-api/internal/usecase/queries"
	"biblio-api/tests/common/builder"
	"biblio-api/tests/common/httptest"
	"biblio-api/tests/common/testutil"
	commandsmock "biblio-api/tests/mock/commands"
	queriesmock "biblio-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type LoanHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockLoanCommands
	mockQueries  *queriesmock.MockLoanQueries
	handler      *api.LoanHandler
	userID       uuid.UUID
}

func (s *LoanHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockLoanCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockLoanQueries(s.mockCtrl)
	s.handler = api.NewLoanHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleStudent)
		c.Next()
	}

	s.router.POST("/loans", authMiddleware, s.handler.RequestLoan)
	s.router.GET("/loans", authMiddleware, s.handler.ListMine)
	s.router.POST("/loans/:id/return-request", authMiddleware, s.handler.RequestReturn)
	s.router.GET("/loans/pending", authMiddleware, s.handler.ListPending)
	s.router.GET("/loans/return-requests", authMiddleware, s.handler.ListReturnRequests)
	s.router.GET("/loans/all", authMiddleware, s.handler.ListAll)
	s.router.POST("/loans/:id/approve", authMiddleware, s.handler.Approve)
	s.router.POST("/loans/:id/reject", authMiddleware, s.handler.Reject)
	s.router.POST("/loans/:id/validate-return", authMiddleware, s.handler.ValidateReturn)
	s.router.POST("/loans/:id/reject-return", authMiddleware, s.handler.RejectReturn)
	s.router.POST("/loans/:id/mark-overdue", authMiddleware, s.handler.MarkOverdue)
}

func (s *LoanHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestLoanHandlerSuite(t *testing.T) {
	suite.Run(t, new(LoanHandlerTestSuite))
}

// ================================================================================
// TestRequestLoan
// ================================================================================

func (s *LoanHandlerTestSuite) TestRequestLoan() {
	url := "/loans"
	lb := builder.NewLoanBuilder()
	reqBody := lb.BuildCreateRequestDTO()
	expected := &commands.RequestLoanResult{
		LoanID: lb.ID,
		Status: loan.StatusPending,
		DueAt:  lb.DueAt,
	}

	s.Run("success: returns 201 Created with the pending loan", func() {
		s.mockCommands.EXPECT().RequestLoan(gomock.Any(), s.userID, reqBody.BookID).
			Return(expected, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var resp resdto.LoanRequestedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Content-Type": "application/json; charset=utf-8"})
		s.Equal(expected.LoanID, resp.ID)
		s.Equal("pending", resp.Status)
	})

	s.Run("validation: missing book_id returns 400", func() {
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("book_id", nil))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("unauthorized: missing token returns 401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	errorCases := []struct {
		name       string
		err        error
		expectCode int
		expectMsg  string
	}{
		{"unknown book", commands.ErrBookNotFound, http.StatusNotFound, "Book not found"},
		{"no copies available", commands.ErrBookUnavailable, http.StatusConflict, "No copies available"},
		{"duplicate open loan", commands.ErrDuplicateLoan, http.StatusConflict, "open loan"},
		{"loan limit reached", commands.ErrLoanLimitExceeded, http.StatusConflict, "Loan limit reached"},
		{"unexpected failure", commands.ErrDatabaseOperationFailed, http.StatusInternalServerError, "Internal server error"},
	}

	for _, c := range errorCases {
		s.Run("error: "+c.name, func() {
			s.mockCommands.EXPECT().RequestLoan(gomock.Any(), s.userID, reqBody.BookID).
				Return(nil, c.err).Times(1)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, c.expectCode, c.expectMsg)
		})
	}
}

// ================================================================================
// TestListMine
// ================================================================================

func (s *LoanHandlerTestSuite) TestListMine() {
	url := "/loans"

	s.Run("success: returns the user's loans", func() {
		views := []*queries.LoanView{
			builder.NewLoanBuilder().WithUserID(s.userID).AsActive().BuildViewQuery(),
			builder.NewLoanBuilder().WithUserID(s.userID).BuildViewQuery(),
		}
		s.mockQueries.EXPECT().ListMine(gomock.Any(), s.userID).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var resp []*queries.LoanView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Len(resp, 2)
		s.Equal(views[0].ID, resp[0].ID)
	})

	s.Run("unauthorized: missing token returns 401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestRequestReturn
// ================================================================================

func (s *LoanHandlerTestSuite) TestRequestReturn() {
	loanID := uuid.New()
	url := "/loans/" + loanID.String() + "/return-request"

	s.Run("success: returns 200", func() {
		s.mockCommands.EXPECT().RequestReturn(gomock.Any(), loanID, s.userID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: foreign or closed loan returns 404", func() {
		s.mockCommands.EXPECT().RequestReturn(gomock.Any(), loanID, s.userID).
			Return(commands.ErrLoanNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Loan not found")
	})

	s.Run("validation: malformed loan id returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/loans/not-a-uuid/return-request", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid loan ID")
	})
}

// ================================================================================
// TestTransitions (admin endpoints share the same shape)
// ================================================================================

func (s *LoanHandlerTestSuite) TestApprove() {
	loanID := uuid.New()
	url := "/loans/" + loanID.String() + "/approve"

	s.Run("success: returns 200", func() {
		s.mockCommands.EXPECT().ApproveLoan(gomock.Any(), loanID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: loan no longer pending returns 404", func() {
		s.mockCommands.EXPECT().ApproveLoan(gomock.Any(), loanID).
			Return(commands.ErrLoanNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Loan not found")
	})

	s.Run("error: stock exhausted returns 409", func() {
		s.mockCommands.EXPECT().ApproveLoan(gomock.Any(), loanID).
			Return(commands.ErrBookOutOfStock).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "No copies available")
	})
}

func (s *LoanHandlerTestSuite) TestValidateReturn() {
	loanID := uuid.New()
	url := "/loans/" + loanID.String() + "/validate-return"

	s.Run("success: returns 200", func() {
		s.mockCommands.EXPECT().ValidateReturn(gomock.Any(), loanID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: replayed validation returns 409", func() {
		s.mockCommands.EXPECT().ValidateReturn(gomock.Any(), loanID).
			Return(commands.ErrBookFullStock).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already in stock")
	})
}

func (s *LoanHandlerTestSuite) TestRejectAndOverdue() {
	loanID := uuid.New()

	s.Run("reject pending loan", func() {
		s.mockCommands.EXPECT().RejectLoan(gomock.Any(), loanID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/loans/"+loanID.String()+"/reject", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("reject return", func() {
		s.mockCommands.EXPECT().RejectReturn(gomock.Any(), loanID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/loans/"+loanID.String()+"/reject-return", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("mark overdue", func() {
		s.mockCommands.EXPECT().MarkOverdue(gomock.Any(), loanID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/loans/"+loanID.String()+"/mark-overdue", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}

// ================================================================================
// TestListAll
// ================================================================================

func (s *LoanHandlerTestSuite) TestListAll() {
	url := "/loans/all"

	s.Run("success: defaults to page 1 limit 20", func() {
		s.mockQueries.EXPECT().ListAll(gomock.Any(), (*loan.Status)(nil), 1, 20).
			Return([]*queries.LoanView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: passes status filter and pagination through", func() {
		active := loan.StatusActive
		s.mockQueries.EXPECT().ListAll(gomock.Any(), &active, 2, 5).
			Return([]*queries.LoanView{builder.NewLoanBuilder().AsActive().BuildViewQuery()}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?status=active&page=2&limit=5", nil, "bearer-token")

		var resp []*queries.LoanView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Len(resp, 1)
	})

	s.Run("validation: unknown status returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?status=borrowed", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid status filter")
	})
}
