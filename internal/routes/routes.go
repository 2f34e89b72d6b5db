package routes

import (
	"net/http"

	"github.com/stashbin/stashbin/internal/app"
	"github.com/stashbin/stashbin/internal/handler"
	"github.com/stashbin/stashbin/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	status := handler.NewAppHandler(app.DB, app.Cache, app.UserRepository, app.FileRepository)
	auth := handler.NewAuthHandler(app.AuthService)
	users := handler.NewUsersHandler(app.UserService)
	files := handler.NewFilesHandler(app.FileService)

	mux := http.NewServeMux()

	// Credential endpoints are rate limited per IP
	rateLimiter := middleware.RateLimitAuth()

	// Liveness
	mux.HandleFunc("GET /status", status.Status)
	mux.HandleFunc("GET /stats", status.Stats)

	// Sessions
	mux.HandleFunc("GET /connect", rateLimiter(auth.Connect))
	mux.HandleFunc("GET /disconnect", middleware.RequireAuth(auth.Disconnect))

	// Users
	mux.HandleFunc("POST /users", rateLimiter(users.Create))
	mux.HandleFunc("GET /users/me", middleware.RequireAuth(users.Me))

	// Files
	mux.HandleFunc("POST /files", middleware.RequireAuth(files.Create))
	mux.HandleFunc("GET /files", middleware.RequireAuth(files.Index))
	mux.HandleFunc("GET /files/{id}", middleware.RequireAuth(files.Show))
	mux.HandleFunc("PUT /files/{id}/publish", middleware.RequireAuth(files.Publish))
	mux.HandleFunc("PUT /files/{id}/unpublish", middleware.RequireAuth(files.Unpublish))

	// Content reads stay anonymous-capable: visibility is decided by the
	// file service, not the auth layer
	mux.HandleFunc("GET /files/{id}/data", files.Data)

	return middleware.Chain(mux,
		middleware.RequestLogging,
		middleware.Auth(app.AuthService),
	)
}
