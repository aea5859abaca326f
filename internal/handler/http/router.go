package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/arketra-labs/workforce-backend-go/internal/config"
	"github.com/arketra-labs/workforce-backend-go/internal/handler/http/middleware"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	WorkSite   WorkSiteHandler
	Lead       LeadHandler
	Chat       ChatHandler
	Report     ReportHandler
	Employee   EmployeeHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workforce-backend"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))
	r.Use(middleware.Metrics)

	r.Handle("/metrics", promhttp.Handler())

	if cfg.Storage.Type == "local" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Storage.BasePath)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.Refresh)
			r.Post("/logout", h.Auth.Logout)
			r.Route("/oauth", func(r chi.Router) {
				r.Get("/google", h.Auth.LoginWithGoogle)
				r.Get("/callback/google", h.Auth.OAuthCallbackGoogle)
			})
		})

		// WebSocket clients cannot always set an Authorization header, so
		// the token may also arrive as a query parameter.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verify(jwtService.JWTAuth(), jwtauth.TokenFromQuery, jwtauth.TokenFromHeader, jwtauth.TokenFromCookie))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
			r.Get("/chat/ws", h.Chat.WebSocket)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", h.Attendance.ClockIn)
				r.Post("/clock-out", h.Attendance.ClockOut)
				r.Get("/my", h.Attendance.GetMyAttendance)
				r.Get("/{id}", h.Attendance.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", h.Attendance.List)
				})
			})

			r.Route("/work-sites", func(r chi.Router) {
				r.Get("/", h.WorkSite.List)
				r.Get("/{id}", h.WorkSite.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", h.WorkSite.Create)
					r.Put("/{id}", h.WorkSite.Replace)
					r.Delete("/{id}", h.WorkSite.Delete)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/me", h.Employee.GetMe)
				r.Get("/{id}", h.Employee.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", h.Employee.List)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Put("/{id}", h.Employee.Update)
					r.Put("/{id}/work-site", h.Employee.AssignWorkSite)
				})
			})

			r.Route("/leads", func(r chi.Router) {
				r.Post("/", h.Lead.Create)
				r.Get("/", h.Lead.List)
				r.Get("/{id}", h.Lead.Get)
				r.Put("/{id}", h.Lead.Update)
				r.Patch("/{id}/status", h.Lead.ChangeStatus)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Put("/{id}/assign", h.Lead.Assign)
					r.Delete("/{id}", h.Lead.Delete)
				})
			})

			r.Route("/chat", func(r chi.Router) {
				r.Post("/messages", h.Chat.Send)
				r.Get("/conversations", h.Chat.Conversations)
				r.Get("/unread-count", h.Chat.UnreadCount)
				r.Get("/history/{peerID}", h.Chat.History)
				r.Post("/read/{peerID}", h.Chat.MarkRead)
				r.Get("/presence/{userID}", h.Chat.Presence)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Get("/attendance", h.Report.Attendance)
				r.Get("/leads", h.Report.LeadPipeline)
			})
		})
	})

	return r
}
