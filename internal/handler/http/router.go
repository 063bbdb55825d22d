package http

import (
	"log/slog"
	"os"
	"strings"

	"github.com/cmlabs-hris/geofence-backend-go/internal/config"
	"github.com/cmlabs-hris/geofence-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/geofence-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func logLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func NewRouter(
	appCfg config.AppConfig,
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	geofenceHandler GeofenceHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(appCfg.Env == "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "geofence-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", appCfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{appCfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Retry-After"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  logLevel(appCfg.LogLevel),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/status", attendanceHandler.Status)
				r.Get("/history", attendanceHandler.History)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/history/{employeeID}", attendanceHandler.HistoryForEmployee)
					r.Put("/mode", attendanceHandler.SetMode)
					r.Get("/mode/{employeeID}", attendanceHandler.GetMode)
				})
			})

			r.Route("/zones", func(r chi.Router) {
				r.Get("/", geofenceHandler.ListZones)
				r.Get("/{id}", geofenceHandler.GetZone)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", geofenceHandler.CreateZone)
					r.Put("/{id}", geofenceHandler.UpdateZone)
					r.Delete("/{id}", geofenceHandler.DeleteZone)
					r.Post("/{id}/assignments", geofenceHandler.AssignZone)
					r.Delete("/{id}/assignments/{employeeID}", geofenceHandler.RemoveAssignment)
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/employees/{employeeID}/zones", geofenceHandler.ListEmployeeZones)
			})
		})
	})

	return r
}
