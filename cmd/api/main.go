package main

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/geofence-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/geofence-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/geofence-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/geofence-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/geofence-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/geofence-backend-go/internal/service/attendance"
	geofenceService "github.com/cmlabs-hris/geofence-backend-go/internal/service/geofence"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	zoneRepo := postgresql.NewZoneRepository(db)
	assignmentRepo := postgresql.NewAssignmentRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	modeRepo := postgresql.NewModeRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	zoneService := geofenceService.NewZoneService(db, zoneRepo, assignmentRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, modeRepo, zoneRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	geofenceHandler := appHTTP.NewGeofenceHandler(zoneService)

	router := appHTTP.NewRouter(
		cfg.App,
		JWTService,
		attendanceHandler,
		geofenceHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
