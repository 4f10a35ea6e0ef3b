package components

import (
	"biblio-api/internal/handler"
	"biblio-api/internal/handler/api"
	"biblio-api/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBookHandler,
		api.NewCategoryHandler,
		api.NewLoanHandler,
		api.NewUserHandler,
		api.NewStatsHandler,
		middleware.NewAuthMiddleware,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(
	auth *api.AuthHandler,
	book *api.BookHandler,
	category *api.CategoryHandler,
	loan *api.LoanHandler,
	user *api.UserHandler,
	stats *api.StatsHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:     auth,
		Book:     book,
		Category: category,
		Loan:     loan,
		User:     user,
		Stats:    stats,
	}
}
