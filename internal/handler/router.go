package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"biblio-api/internal/handler/api"
	"biblio-api/internal/handler/middleware"
	"biblio-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth     *api.AuthHandler
	Book     *api.BookHandler
	Category *api.CategoryHandler
	Loan     *api.LoanHandler
	User     *api.UserHandler
	Stats    *api.StatsHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, handlers, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		books := apiGroup.Group("/books")
		{
			addRoutes(books, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Book.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Book.Get},
			})

			booksAdmin := books.Group("")
			booksAdmin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
			addRoutes(booksAdmin, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Book.Create},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Book.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Book.Delete},
			})
		}

		categories := apiGroup.Group("/categories")
		{
			addRoutes(categories, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Category.List},
			})

			categoriesAdmin := categories.Group("")
			categoriesAdmin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
			addRoutes(categoriesAdmin, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Category.Create},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Category.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Category.Delete},
			})
		}

		loans := apiGroup.Group("/loans")
		loans.Use(authMiddleware.RequireAuth())
		{
			addRoutes(loans, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Loan.RequestLoan},
				{Method: http.MethodGet, Path: "", Handler: h.Loan.ListMine},
				{Method: http.MethodPost, Path: "/:id/return-request", Handler: h.Loan.RequestReturn},
			})

			loansAdmin := loans.Group("")
			loansAdmin.Use(authMiddleware.RequireAdmin())
			addRoutes(loansAdmin, []route{
				{Method: http.MethodGet, Path: "/pending", Handler: h.Loan.ListPending},
				{Method: http.MethodGet, Path: "/return-requests", Handler: h.Loan.ListReturnRequests},
				{Method: http.MethodGet, Path: "/all", Handler: h.Loan.ListAll},
				{Method: http.MethodPost, Path: "/:id/approve", Handler: h.Loan.Approve},
				{Method: http.MethodPost, Path: "/:id/reject", Handler: h.Loan.Reject},
				{Method: http.MethodPost, Path: "/:id/validate-return", Handler: h.Loan.ValidateReturn},
				{Method: http.MethodPost, Path: "/:id/reject-return", Handler: h.Loan.RejectReturn},
				{Method: http.MethodPost, Path: "/:id/mark-overdue", Handler: h.Loan.MarkOverdue},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/users", Handler: h.User.List},
				{Method: http.MethodGet, Path: "/users/:id", Handler: h.User.Get},
				{Method: http.MethodPost, Path: "/users", Handler: h.User.Create},
				{Method: http.MethodPut, Path: "/users/:id", Handler: h.User.Update},
				{Method: http.MethodDelete, Path: "/users/:id", Handler: h.User.Delete},
				{Method: http.MethodGet, Path: "/stats", Handler: h.Stats.Dashboard},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
