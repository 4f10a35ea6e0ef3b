package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "biblio-api/internal/handler/dto/request"
	resdto "biblio-api/internal/handler/dto/response"
	"biblio-api/internal/infra"
	"biblio-api/internal/usecase/commands"
	"biblio-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookHandler struct {
	bookCommands commands.BookCommands
	bookQueries  queries.BookQueries
}

func NewBookHandler(bookCommands commands.BookCommands, bookQueries queries.BookQueries) *BookHandler {
	return &BookHandler{
		bookCommands: bookCommands,
		bookQueries:  bookQueries,
	}
}

// @Summary List books
// @Description Search the catalog with optional filters and pagination
// @Tags books
// @Produce json
// @Param search query string false "Free-text search over title, author and ISBN"
// @Param category_id query string false "Category filter"
// @Param author query string false "Author filter"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.BookListResponse
// @Router /books [get]
func (h *BookHandler) List(c *gin.Context) {
	filter := queries.BookFilter{}

	if s := c.Query("search"); s != "" {
		filter.Search = &s
	}
	if a := c.Query("author"); a != "" {
		filter.Author = &a
	}
	if cid := c.Query("category_id"); cid != "" {
		id, err := uuid.Parse(cid)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid category ID format",
			})
			return
		}
		filter.CategoryID = &id
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	books, pagination, err := h.bookQueries.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.BookListResponse{
		Books:      books,
		Pagination: pagination,
	})
}

// @Summary Get book
// @Description Get a single book by ID
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} queries.BookView
// @Failure 404 {object} map[string]string
// @Router /books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid book ID format",
		})
		return
	}

	book, err := h.bookQueries.Get(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Book not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, book)
}

// @Summary Create book
// @Description Add a book to the catalog
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BookRequest true "Book"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req reqdto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.bookCommands.CreateBook(c.Request.Context(), req.ToParams())
	if err != nil {
		h.writeBookError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Update book
// @Description Update catalog fields and resize the inventory
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Param request body reqdto.BookRequest true "Book"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /books/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid book ID format",
		})
		return
	}

	var req reqdto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.bookCommands.UpdateBook(c.Request.Context(), id, req.ToParams()); err != nil {
		h.writeBookError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Book updated"})
}

// @Summary Delete book
// @Description Remove a book that has no open loans
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid book ID format",
		})
		return
	}

	if err := h.bookCommands.DeleteBook(c.Request.Context(), id); err != nil {
		h.writeBookError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Book deleted"})
}

func (h *BookHandler) writeBookError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrBookNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Book not found",
		})
	case errors.Is(err, commands.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Category not found",
		})
	case errors.Is(err, commands.ErrBookHasOpenLoans):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Book still has open loans",
		})
	case errors.Is(err, commands.ErrInvalidBookData):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Invalid book data",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
