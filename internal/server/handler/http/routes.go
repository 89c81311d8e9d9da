package http

import (
	"net/http"

	"github.com/atinyakov/taskmaster/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns the HTTP handler that serves the
// task manager API. It applies JSON content-type enforcement and request
// logging, keeps the auth endpoints public, and guards everything else with
// the active-session middleware.
//
// Routes (all under /api):
//
//	POST   /login, /signup, /question, /reset          — auth flow (public)
//	GET    /session         DELETE /session            — session state / sign out
//	DELETE /account                                    — delete the signed-in account
//	GET    /tasks           POST   /tasks              — list (?view=&date=) / create
//	PUT    /tasks/{id}      DELETE /tasks/{id}         — rename / delete
//	POST   /tasks/{id}/toggle, /tasks/{id}/important   — flag flips
//	POST   /tasks/{id}/subtasks                        — add sub-task
//	POST   /tasks/{id}/subtasks/{subID}/toggle         — toggle sub-task
//	DELETE /tasks/{id}/subtasks/{subID}                — remove sub-task
//	GET    /stats                                      — overview numbers (?view=&date=)
//	GET    /profile         PUT    /profile            — profile read / edit
//	GET    /theme           PUT    /theme              — color scheme
func NewRouter(
	authHandler *AuthHandler,
	taskHandler *TaskHandler,
	profileHandler *ProfileHandler,
	sessions middleware.SessionSource,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/login", authHandler.Login)
		r.Post("/signup", authHandler.Signup)
		r.Post("/question", authHandler.Question)
		r.Post("/reset", authHandler.Reset)

		// Protected group: requires an active session
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(sessions))

			r.Get("/session", authHandler.Session)
			r.Delete("/session", authHandler.SignOut)
			r.Delete("/account", authHandler.DeleteAccount)

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.List)
				r.Post("/", taskHandler.Create)
				r.Put("/{id}", taskHandler.Rename)
				r.Delete("/{id}", taskHandler.Delete)
				r.Post("/{id}/toggle", taskHandler.Toggle)
				r.Post("/{id}/important", taskHandler.ToggleImportant)
				r.Post("/{id}/subtasks", taskHandler.CreateSubtask)
				r.Post("/{id}/subtasks/{subID}/toggle", taskHandler.ToggleSubtask)
				r.Delete("/{id}/subtasks/{subID}", taskHandler.DeleteSubtask)
			})
			r.Get("/stats", taskHandler.Stats)

			r.Get("/profile", profileHandler.Get)
			r.Put("/profile", profileHandler.Update)
			r.Get("/theme", profileHandler.Theme)
			r.Put("/theme", profileHandler.SetTheme)
		})
	})

	return r
}
