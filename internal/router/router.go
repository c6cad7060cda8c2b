package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"gert-backend/internal/handlers"
	"gert-backend/internal/middleware"
	"gert-backend/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	clientHandler *handlers.ClientHandler,
	clientUserHandler *handlers.ClientUserHandler,
	employeeHandler *handlers.EmployeeHandler,
	assessmentHandler *handlers.AssessmentHandler,
	reportHandler *handlers.ReportHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/admin/login", authHandler.AdminLogin)
			r.Post("/login", authHandler.ClientLogin)
			r.Post("/refresh", authHandler.Refresh)

			// Logout requires auth
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// ──── Admin Routes ────
		r.Route("/admin/clients", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Use(middleware.RequireRole(middleware.RoleAdmin))
			r.Post("/", clientHandler.Create)
			r.Get("/", clientHandler.List)
			r.Get("/{id}", clientHandler.Get)
			r.Put("/{id}", clientHandler.Update)
			r.Put("/{id}/tokens", clientHandler.UpdateTokens)
			r.Delete("/{id}", clientHandler.Delete)
		})

		// ──── Client User Routes ────
		r.Route("/users", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Use(middleware.RequireRole(middleware.RoleClient))
			r.Post("/", clientUserHandler.Create)
			r.Get("/", clientUserHandler.List)
			r.Put("/{id}", clientUserHandler.Update)
			r.Delete("/{id}", clientUserHandler.Delete)
		})

		// ──── Employee Routes ────
		r.Route("/employees", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Use(middleware.RequireRole(middleware.RoleClient))
			r.Post("/", employeeHandler.Create)
			r.Get("/", employeeHandler.List)
			r.Get("/{id}", employeeHandler.Get)
			r.Put("/{id}", employeeHandler.Update)
			r.Delete("/{id}", employeeHandler.Delete)
		})

		// ──── Assessment Routes ────
		r.Route("/assessment", func(r chi.Router) {
			// Session creation spends a client token
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Use(middleware.RequireRole(middleware.RoleClient))
				r.Post("/sessions", assessmentHandler.CreateSession)
			})

			// Respondent-facing: the session token is the credential
			r.Get("/questions/{module}", assessmentHandler.GetQuestions)
			r.Get("/sessions/{token}", assessmentHandler.GetSession)
			r.Post("/sessions/{token}/answers", assessmentHandler.SaveAnswers)
			r.Post("/sessions/{token}/complete-module/{module}", assessmentHandler.CompleteModule)
		})

		// ──── Report Routes (report token is the credential) ────
		r.Get("/results/{report_token}", reportHandler.GetResult)
		r.Get("/public-report/{report_token}", reportHandler.PublicReport)
		r.Get("/reports/{report_token}/{kind}", reportHandler.ReportByKind)

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
