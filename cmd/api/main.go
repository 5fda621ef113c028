package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/simpeg-id/simpeg-backend-go/internal/config"
	appHTTP "github.com/simpeg-id/simpeg-backend-go/internal/handler/http"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/approvalchain"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/authz"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/cron"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/database"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/email"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/jwt"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/oauth"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/sse"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/storage"
	"github.com/simpeg-id/simpeg-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/simpeg-id/simpeg-backend-go/internal/service/auth"
	dashboardService "github.com/simpeg-id/simpeg-backend-go/internal/service/dashboard"
	employeeService "github.com/simpeg-id/simpeg-backend-go/internal/service/employee"
	"github.com/simpeg-id/simpeg-backend-go/internal/service/file"
	"github.com/simpeg-id/simpeg-backend-go/internal/service/leave"
	notificationService "github.com/simpeg-id/simpeg-backend-go/internal/service/notification"
	pensionService "github.com/simpeg-id/simpeg-backend-go/internal/service/pension"
	reportService "github.com/simpeg-id/simpeg-backend-go/internal/service/report"
	salaryService "github.com/simpeg-id/simpeg-backend-go/internal/service/salary"
	studyPermitService "github.com/simpeg-id/simpeg-backend-go/internal/service/studypermit"
	userService "github.com/simpeg-id/simpeg-backend-go/internal/service/user"
)

const version = "v1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveQuotaRepo := postgresql.NewLeaveQuotaRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	studyPermitRepo := postgresql.NewStudyPermitRepository(db)
	salaryIncreaseRepo := postgresql.NewSalaryIncreaseRepository(db)
	pensionRepo := postgresql.NewPensionRepository(db)
	stepRepo := postgresql.NewApprovalStepRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	txManager := postgresql.NewTxManager(db)

	chains, err := approvalchain.Load(cfg.Approval.ChainFile)
	if err != nil {
		log.Fatal("Failed to load approval chains: ", err)
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL, cfg.Storage.MaxSize)
	if err != nil {
		log.Fatal("Failed to initialize local storage: ", err)
	}
	fileService := file.NewFileService(fileStorage)

	// Email is optional; without SMTP only SSE events are delivered.
	var mailer email.EmailService
	if cfg.SMTP.Host != "" {
		mailer, err = email.NewEmailService(cfg.SMTP)
		if err != nil {
			log.Fatal("Failed to initialize email service: ", err)
		}
	}
	notifier := notificationService.NewNotificationService(notificationRepo, userRepo, sse.NewHub(), mailer, notificationService.Config{
		AppName:     cfg.App.Name,
		FrontendURL: cfg.App.FrontendURL,
	})
	defer notifier.Stop()

	authorizer, err := authz.NewAuthorizer()
	if err != nil {
		log.Fatal("Failed to initialize authorizer: ", err)
	}
	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.App.Env == "production")
	if err != nil {
		log.Fatal("Failed to initialize jwt service: ", err)
	}
	var googleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		googleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	}

	authService := serviceAuth.NewAuthService(userRepo, refreshTokenRepo, JWTService, authorizer)
	usersService := userService.NewUserService(userRepo, employeeRepo)
	employeesService := employeeService.NewEmployeeService(txManager, employeeRepo, leaveQuotaRepo)
	leaveService := leave.NewLeaveService(txManager, leaveQuotaRepo, leaveRequestRepo, stepRepo, employeeRepo, chains, fileService, notifier)
	studyPermitSvc := studyPermitService.NewStudyPermitService(txManager, studyPermitRepo, stepRepo, employeeRepo, chains, fileService, notifier)
	salarySvc := salaryService.NewSalaryIncreaseService(txManager, salaryIncreaseRepo, stepRepo, employeeRepo, chains, notifier)
	pensionSvc := pensionService.NewPensionService(txManager, pensionRepo, stepRepo, employeeRepo, chains, fileService, notifier)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo)
	reportSvc := reportService.NewReportService(leaveService, studyPermitSvc, salarySvc, pensionSvc, cfg.App.Name)

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Env:            cfg.App.Env,
		Version:        version,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		UploadsPath:    cfg.Storage.BasePath,
		LogLevel:       cfg.SlogLevel(),
	}, JWTService, authorizer, appHTTP.Handlers{
		Auth:           appHTTP.NewAuthHandler(JWTService, authService, googleService, cfg.App.FrontendURL),
		Event:          appHTTP.NewEventHandler(notifier, JWTService),
		Status:         appHTTP.NewStatusHandler(),
		Dashboard:      appHTTP.NewDashboardHandler(dashboardSvc, authorizer),
		Notification:   appHTTP.NewNotificationHandler(notifier),
		Employee:       appHTTP.NewEmployeeHandler(employeesService),
		User:           appHTTP.NewUserHandler(usersService),
		Leave:          appHTTP.NewLeaveHandler(leaveService, reportSvc, authorizer),
		StudyPermit:    appHTTP.NewStudyPermitHandler(studyPermitSvc, reportSvc, authorizer),
		SalaryIncrease: appHTTP.NewSalaryIncreaseHandler(salarySvc, reportSvc, authorizer),
		Pension:        appHTTP.NewPensionHandler(pensionSvc, reportSvc, authorizer),
	})

	scheduler := cron.NewScheduler()
	cron.RegisterLeaveJobs(scheduler, leaveService, cfg.Approval.LeaveJobInterval)
	cron.RegisterAuthJobs(scheduler, refreshTokenRepo, 0)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	// Event streams never finish on their own, so their contexts end when shutdown starts.
	streamCtx, cancelStreams := context.WithCancel(context.Background())
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return streamCtx },
	}
	server.RegisterOnShutdown(cancelStreams)

	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
