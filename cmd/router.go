package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/sbilibin2017/gw-budget-manager/internal/handlers"
	"github.com/sbilibin2017/gw-budget-manager/internal/middlewares"
	"github.com/sbilibin2017/gw-budget-manager/internal/services"
)

const welcomeMessage = "Welcome to Budget Manager API"

// routerDeps groups everything the HTTP layer is built from.
type routerDeps struct {
	db             *sqlx.DB
	tokener        middlewares.Tokener
	authService    *services.AuthService
	budgetService  *services.BudgetService
	summaryService *services.SummaryService
	allowedOrigins []string
}

// newRouter mounts the budget API under /budgets.
// Routes that write to Postgres run inside a request-scoped transaction.
func newRouter(deps routerDeps) http.Handler {
	authMiddleware := middlewares.AuthMiddleware(deps.tokener)
	txMiddleware := middlewares.TxMiddleware(deps.db)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)
	r.Use(middlewares.CORSMiddleware(deps.allowedOrigins))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(welcomeMessage))
	})

	r.Route("/budgets", func(r chi.Router) {
		// Public routes
		r.With(txMiddleware).Post("/register", handlers.NewRegisterHandler(deps.authService))
		r.Post("/login", handlers.NewLoginHandler(deps.authService))
		r.Post("/recover-password", handlers.NewRecoverPasswordHandler(deps.authService))
		// No transaction: the reset token is restored when the single UPDATE fails.
		r.Post("/reset-password", handlers.NewResetPasswordHandler(deps.authService))

		// Protected routes with JWT middleware
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)

			r.Get("/", handlers.NewListBudgetsHandler(deps.budgetService))
			r.Get("/getLimit", handlers.NewGetLimitHandler(deps.budgetService))
			r.Get("/verify-user", handlers.NewVerifyUserHandler(deps.authService))
			r.Get("/summary", handlers.NewSummaryHandler(deps.summaryService))

			r.Group(func(r chi.Router) {
				r.Use(txMiddleware)

				r.Post("/add", handlers.NewAddBudgetHandler(deps.budgetService))
				r.Put("/{id}", handlers.NewUpdateBudgetHandler(deps.budgetService))
				r.Delete("/{id}", handlers.NewDeleteBudgetHandler(deps.budgetService))
				r.Post("/setLimit", handlers.NewSetLimitHandler(deps.budgetService))
			})
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}
