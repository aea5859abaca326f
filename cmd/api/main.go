package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arketra-labs/workforce-backend-go/internal/config"
	"github.com/arketra-labs/workforce-backend-go/internal/domain/chat"
	appHTTP "github.com/arketra-labs/workforce-backend-go/internal/handler/http"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/cron"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/database"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/jwt"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/oauth"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/storage"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/ws"
	"github.com/arketra-labs/workforce-backend-go/internal/repository/postgresql"
	attendanceService "github.com/arketra-labs/workforce-backend-go/internal/service/attendance"
	authService "github.com/arketra-labs/workforce-backend-go/internal/service/auth"
	chatService "github.com/arketra-labs/workforce-backend-go/internal/service/chat"
	employeeService "github.com/arketra-labs/workforce-backend-go/internal/service/employee"
	"github.com/arketra-labs/workforce-backend-go/internal/service/file"
	leadService "github.com/arketra-labs/workforce-backend-go/internal/service/lead"
	reportService "github.com/arketra-labs/workforce-backend-go/internal/service/report"
	worksiteService "github.com/arketra-labs/workforce-backend-go/internal/service/worksite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	workSiteRepo := postgresql.NewWorkSiteRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leadRepo := postgresql.NewLeadRepository(db)
	messageRepo := postgresql.NewMessageRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(
		cfg.OAuth2Google.ClientID,
		cfg.OAuth2Google.ClientSecret,
		cfg.OAuth2Google.RedirectURL,
		cfg.OAuth2Google.Scopes,
	)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	case "minio":
		fileStorage, err = storage.NewMinIOStorage(context.Background(), storage.MinIOOptions{
			Endpoint:  cfg.Storage.MinIOEndpoint,
			AccessKey: cfg.Storage.MinIOAccessKey,
			SecretKey: cfg.Storage.MinIOSecretKey,
			Bucket:    cfg.Storage.MinIOBucket,
			UseSSL:    cfg.Storage.MinIOUseSSL,
			PublicURL: cfg.Storage.MinIOPublicURL,
		})
		if err != nil {
			log.Fatal("Failed to initialize minio storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileSvc := file.NewFileService(fileStorage)
	authSvc := authService.NewAuthService(db, userRepo, employeeRepo, jwtService, googleService)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, workSiteRepo, fileSvc)
	workSiteSvc := worksiteService.NewWorkSiteService(workSiteRepo, cfg.Geofence.DefaultRadiusMeters)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, workSiteRepo)
	leadSvc := leadService.NewLeadService(leadRepo)
	reportSvc := reportService.NewReportService(reportRepo, leadRepo)

	// The hub and the chat service reference each other, so the heartbeat
	// callback binds the service late.
	var chatSvc chat.ChatService
	hub := ws.NewHub(func(userID string) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if chatSvc != nil {
			chatSvc.Heartbeat(ctx, userID)
		}
	})
	chatSvc = chatService.NewChatService(messageRepo, userRepo, hub)

	classificationJob := attendanceService.NewClassificationJob(attendanceRepo, employeeRepo, workSiteRepo)
	scheduler := cron.NewScheduler()
	scheduler.AddJob("attendance-classification", time.Hour, classificationJob.Run)
	scheduler.Start()
	defer scheduler.Stop()

	handlers := appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc, jwtService),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		WorkSite:   appHTTP.NewWorkSiteHandler(workSiteSvc),
		Lead:       appHTTP.NewLeadHandler(leadSvc),
		Chat:       appHTTP.NewChatHandler(chatSvc, hub),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
	}

	router := appHTTP.NewRouter(cfg, jwtService, handlers)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on :%d", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server shutdown failed:", err)
	}
}
