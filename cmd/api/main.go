package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exellar/payroll-backend-go/internal/config"
	"github.com/exellar/payroll-backend-go/internal/fixtures"
	appHTTP "github.com/exellar/payroll-backend-go/internal/handler/http"
	"github.com/exellar/payroll-backend-go/internal/pkg/database"
	"github.com/exellar/payroll-backend-go/internal/pkg/email"
	"github.com/exellar/payroll-backend-go/internal/pkg/jwt"
	"github.com/exellar/payroll-backend-go/internal/pkg/oauth"
	"github.com/exellar/payroll-backend-go/internal/pkg/ratelimit"
	"github.com/exellar/payroll-backend-go/internal/pkg/storage"
	"github.com/exellar/payroll-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/exellar/payroll-backend-go/internal/service/auth"
	dashboardService "github.com/exellar/payroll-backend-go/internal/service/dashboard"
	documentService "github.com/exellar/payroll-backend-go/internal/service/document"
	employeeService "github.com/exellar/payroll-backend-go/internal/service/employee"
	"github.com/exellar/payroll-backend-go/internal/service/file"
	leaveService "github.com/exellar/payroll-backend-go/internal/service/leave"
	"github.com/exellar/payroll-backend-go/internal/service/master"
	paymentInfoService "github.com/exellar/payroll-backend-go/internal/service/paymentinfo"
	payrollService "github.com/exellar/payroll-backend-go/internal/service/payroll"
	salaryComponentService "github.com/exellar/payroll-backend-go/internal/service/salarycomponent"
	"github.com/go-chi/httplog/v3"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(!cfg.App.IsProduction())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.App.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "exellar-payroll"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if cfg.Bootstrap.RunMigrations {
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	designationRepo := postgresql.NewDesignationRepository(db)
	workLocationRepo := postgresql.NewWorkLocationRepository(db)
	salaryComponentRepo := postgresql.NewSalaryComponentRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	paymentInfoRepo := postgresql.NewPaymentInfoRepository(db)
	documentRepo := postgresql.NewDocumentRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	if cfg.Bootstrap.SeedDefaults {
		seeder := fixtures.NewSeeder(db, departmentRepo, designationRepo, userRepo)
		admin := fixtures.Admin{Email: cfg.Bootstrap.AdminEmail, Password: cfg.Bootstrap.AdminPassword}
		if err := seeder.Seed(ctx, admin); err != nil {
			return fmt.Errorf("seed defaults: %w", err)
		}
	}

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.App.IsProduction())
	if err != nil {
		return fmt.Errorf("init jwt: %w", err)
	}
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		return fmt.Errorf("init email: %w", err)
	}
	if cfg.SMTP.Host == "" {
		slog.Warn("SMTP_HOST not set, outgoing email is disabled")
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	fileService := file.NewFileService(fileStorage)

	authService := serviceAuth.NewAuthService(db, userRepo, refreshTokenRepo, JWTService, emailService)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, payrollRepo, leaveRepo)
	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, employeeRepo, emailService, cfg.App.CompanyName)
	masterService := master.NewMasterService(departmentRepo, designationRepo, workLocationRepo)
	salaryComponentSvc := salaryComponentService.NewSalaryComponentService(salaryComponentRepo, employeeRepo)
	leaveSvc := leaveService.NewLeaveService(db, leaveRepo, employeeRepo)
	paymentInfoSvc := paymentInfoService.NewPaymentInfoService(paymentInfoRepo, employeeRepo)
	documentSvc := documentService.NewDocumentService(documentRepo, fileService)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, db)

	loginLimiter := ratelimit.NewPerMinute(cfg.Security.LoginRateLimitPerMin)
	go loginLimiter.Run(ctx, time.Minute)

	router := appHTTP.NewRouter(
		JWTService,
		appHTTP.NewAuthHandler(JWTService, authService, GoogleService, cfg.App.IsProduction()),
		appHTTP.NewDashboardHandler(dashboardSvc),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewPayrollHandler(payrollSvc),
		appHTTP.NewMasterHandler(masterService),
		appHTTP.NewSalaryComponentHandler(salaryComponentSvc),
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewPaymentInfoHandler(paymentInfoSvc),
		appHTTP.NewDocumentHandler(documentSvc),
		appHTTP.RouterOptions{
			Logger:          logger,
			LogLevel:        cfg.App.SlogLevel(),
			AllowedOrigins:  cfg.Security.CORSAllowedOrigins,
			LoginLimiter:    loginLimiter,
			StorageBasePath: cfg.Storage.BasePath,
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
