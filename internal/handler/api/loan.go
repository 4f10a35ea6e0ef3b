package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"biblio-api/internal/domain/loan"
	reqdto "biblio-api/internal/handler/dto/request"
	resdto "biblio-api/internal/handler/dto/response"
	"biblio-api/internal/handler/middleware"
	"biblio-api/internal/usecase/commands"
	"biblio-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LoanHandler struct {
	loanCommands commands.LoanCommands
	loanQueries  queries.LoanQueries
}

func NewLoanHandler(loanCommands commands.LoanCommands, loanQueries queries.LoanQueries) *LoanHandler {
	return &LoanHandler{
		loanCommands: loanCommands,
		loanQueries:  loanQueries,
	}
}

// @Summary Request loan
// @Description Request to borrow a book; the loan starts pending approval
// @Tags loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateLoanRequest true "Loan request"
// @Success 201 {object} resdto.LoanRequestedResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /loans [post]
func (h *LoanHandler) RequestLoan(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.loanCommands.RequestLoan(c.Request.Context(), userID, req.BookID)
	if err != nil {
		h.writeLoanError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromLoanRequestResult(result))
}

// @Summary My loans
// @Description List the authenticated user's loans
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.LoanView
// @Router /loans [get]
func (h *LoanHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	loans, err := h.loanQueries.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, loans)
}

// @Summary Request return
// @Description Hand a borrowed copy back for librarian validation
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /loans/{id}/return-request [post]
func (h *LoanHandler) RequestReturn(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid loan ID format",
		})
		return
	}

	if err := h.loanCommands.RequestReturn(c.Request.Context(), loanID, userID); err != nil {
		h.writeLoanError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Return requested"})
}

// @Summary Approve loan
// @Description Approve a pending loan and commit a copy
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /loans/{id}/approve [post]
func (h *LoanHandler) Approve(c *gin.Context) {
	h.transition(c, h.loanCommands.ApproveLoan, "Loan approved")
}

// @Summary Reject loan
// @Description Reject a pending loan request
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /loans/{id}/reject [post]
func (h *LoanHandler) Reject(c *gin.Context) {
	h.transition(c, h.loanCommands.RejectLoan, "Loan rejected")
}

// @Summary Validate return
// @Description Confirm a returned copy and put it back on the shelf
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /loans/{id}/validate-return [post]
func (h *LoanHandler) ValidateReturn(c *gin.Context) {
	h.transition(c, h.loanCommands.ValidateReturn, "Return validated")
}

// @Summary Reject return
// @Description Send a return request back to active
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /loans/{id}/reject-return [post]
func (h *LoanHandler) RejectReturn(c *gin.Context) {
	h.transition(c, h.loanCommands.RejectReturn, "Return rejected")
}

// @Summary Mark overdue
// @Description Flag an active loan past its due date
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /loans/{id}/mark-overdue [post]
func (h *LoanHandler) MarkOverdue(c *gin.Context) {
	h.transition(c, h.loanCommands.MarkOverdue, "Loan marked overdue")
}

// @Summary Pending loans
// @Description List loan requests awaiting approval
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.LoanView
// @Router /loans/pending [get]
func (h *LoanHandler) ListPending(c *gin.Context) {
	loans, err := h.loanQueries.ListPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, loans)
}

// @Summary Return requests
// @Description List loans awaiting return validation
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.LoanView
// @Router /loans/return-requests [get]
func (h *LoanHandler) ListReturnRequests(c *gin.Context) {
	loans, err := h.loanQueries.ListReturnRequests(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, loans)
}

// @Summary All loans
// @Description List all loans with optional status filter and pagination
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {array} queries.LoanView
// @Router /loans/all [get]
func (h *LoanHandler) ListAll(c *gin.Context) {
	var status *loan.Status
	if s := c.Query("status"); s != "" {
		parsed, err := loan.NewStatus(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid status filter",
			})
			return
		}
		status = &parsed
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	loans, err := h.loanQueries.ListAll(c.Request.Context(), status, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, loans)
}

func (h *LoanHandler) transition(c *gin.Context, fn func(ctx context.Context, loanID uuid.UUID) error, okMsg string) {
	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid loan ID format",
		})
		return
	}

	if err := fn(c.Request.Context(), loanID); err != nil {
		h.writeLoanError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": okMsg})
}

func (h *LoanHandler) writeLoanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrBookNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Book not found",
		})
	case errors.Is(err, commands.ErrLoanNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Loan not found",
		})
	case errors.Is(err, commands.ErrBookUnavailable):
		c.JSON(http.StatusConflict, gin.H{
			"error": "No copies available",
		})
	case errors.Is(err, commands.ErrDuplicateLoan):
		c.JSON(http.StatusConflict, gin.H{
			"error": "You already have an open loan for this book",
		})
	case errors.Is(err, commands.ErrLoanLimitExceeded):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Loan limit reached",
		})
	case errors.Is(err, commands.ErrBookOutOfStock):
		c.JSON(http.StatusConflict, gin.H{
			"error": "No copies available",
		})
	case errors.Is(err, commands.ErrBookFullStock):
		c.JSON(http.StatusConflict, gin.H{
			"error": "All copies already in stock",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
