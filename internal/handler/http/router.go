package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/exellar/payroll-backend-go/internal/domain/user"
	"github.com/exellar/payroll-backend-go/internal/handler/http/middleware"
	"github.com/exellar/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger          *slog.Logger
	LogLevel        slog.Level
	AllowedOrigins  []string
	LoginLimiter    middleware.Limiter
	StorageBasePath string
}

// loginRetryAfter is the Retry-After hint, in seconds, sent with 429s from /auth/login.
const loginRetryAfter = 60

func NewRouter(
	JWTService jwt.Service,
	authHandler AuthHandler,
	dashboardHandler DashboardHandler,
	employeeHandler EmployeeHandler,
	payrollHandler PayrollHandler,
	masterHandler MasterHandler,
	salaryComponentHandler SalaryComponentHandler,
	leaveHandler LeaveHandler,
	paymentInfoHandler PaymentInfoHandler,
	documentHandler DocumentHandler,
	opts RouterOptions,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  opts.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/ping"))

	r.Get("/health", dashboardHandler.Health)

	if opts.StorageBasePath != "" {
		files := http.StripPrefix("/files/", http.FileServer(http.Dir(opts.StorageBasePath)))
		r.Get("/files/*", func(w http.ResponseWriter, r *http.Request) {
			// No directory listings.
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}
			files.ServeHTTP(w, r)
		})
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", dashboardHandler.Health)

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if opts.LoginLimiter != nil {
					r.Use(middleware.RateLimitByIP(opts.LoginLimiter, loginRetryAfter))
				}
				r.Post("/login", authHandler.Login)
			})
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Get("/google", authHandler.LoginWithGoogle)
			r.Get("/google/callback", authHandler.OAuthCallbackGoogle)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			manage := middleware.RequirePermission(user.PermissionRecordsManage)
			view := middleware.RequirePermission(user.PermissionRecordsView)
			runPayroll := middleware.RequirePermission(user.PermissionPayrollRun)

			r.Route("/dashboard", func(r chi.Router) {
				r.Use(view)
				r.Get("/stats", dashboardHandler.GetStats)
				r.Get("/detailed-stats", dashboardHandler.GetDetailedStats)
			})
			r.With(view).Get("/detailed-stats", dashboardHandler.GetDetailedStats)

			r.Route("/employees", func(r chi.Router) {
				r.Use(view)
				r.Get("/", employeeHandler.List)
				r.Get("/stats", employeeHandler.Stats)
				r.With(manage).Post("/", employeeHandler.Create)
				r.With(manage).Post("/bulk", employeeHandler.BulkCreate)
				r.With(manage).Post("/bulk_create", employeeHandler.BulkCreate)

				r.Route("/{employeeID}", func(r chi.Router) {
					r.Get("/", employeeHandler.Get)
					r.Get("/payroll-history", employeeHandler.PayrollHistory)
					r.Get("/payroll_history", employeeHandler.PayrollHistory)
					r.With(manage).Put("/", employeeHandler.Update)
					r.With(manage).Patch("/", employeeHandler.Update)
					r.With(manage).Delete("/", employeeHandler.Delete)
					r.With(manage).Post("/salary-components", salaryComponentHandler.AssignToEmployee)
					r.With(manage).Post("/add_salary_component", salaryComponentHandler.AssignToEmployee)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Use(view)
				r.Get("/", payrollHandler.List)
				r.Get("/stats", payrollHandler.Stats)
				r.Get("/employee-stats", payrollHandler.EmployeeStats)
				r.Get("/employee_stats", payrollHandler.EmployeeStats)
				r.With(runPayroll).Post("/", payrollHandler.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", payrollHandler.Get)
					r.Get("/payslip", payrollHandler.Payslip)

					r.Group(func(r chi.Router) {
						r.Use(runPayroll)
						r.Put("/", payrollHandler.Update)
						r.Patch("/", payrollHandler.Update)
						r.Delete("/", payrollHandler.Delete)
						r.Post("/process", payrollHandler.Process)
						r.Post("/mark-paid", payrollHandler.MarkPaid)
						r.Post("/mark_paid", payrollHandler.MarkPaid)
						r.Post("/recalculate", payrollHandler.Recalculate)
						r.Post("/cancel", payrollHandler.Cancel)
					})
				})
			})

			r.Route("/departments", func(r chi.Router) {
				r.Use(view)
				r.Get("/", masterHandler.ListDepartments)
				r.Get("/stats", masterHandler.DepartmentStats)
				r.Get("/{id}", masterHandler.GetDepartment)
				r.With(manage).Post("/", masterHandler.CreateDepartment)
				r.With(manage).Put("/{id}", masterHandler.UpdateDepartment)
				r.With(manage).Patch("/{id}", masterHandler.UpdateDepartment)
				r.With(manage).Delete("/{id}", masterHandler.DeleteDepartment)
			})

			r.Route("/designations", func(r chi.Router) {
				r.Use(view)
				r.Get("/", masterHandler.ListDesignations)
				r.Get("/stats", masterHandler.DesignationStats)
				r.Get("/by-name", masterHandler.GetDesignationByName)
				r.Get("/{id}", masterHandler.GetDesignation)
				r.With(manage).Post("/", masterHandler.CreateDesignation)
				r.With(manage).Put("/{id}", masterHandler.UpdateDesignation)
				r.With(manage).Patch("/{id}", masterHandler.UpdateDesignation)
				r.With(manage).Delete("/{id}", masterHandler.DeleteDesignation)
			})

			r.Route("/work-locations", func(r chi.Router) {
				r.Use(view)
				r.Get("/", masterHandler.ListWorkLocations)
				r.Get("/stats", masterHandler.WorkLocationStats)
				r.Get("/{id}", masterHandler.GetWorkLocation)
				r.With(manage).Post("/", masterHandler.CreateWorkLocation)
				r.With(manage).Put("/{id}", masterHandler.UpdateWorkLocation)
				r.With(manage).Patch("/{id}", masterHandler.UpdateWorkLocation)
				r.With(manage).Delete("/{id}", masterHandler.DeleteWorkLocation)
			})

			r.Route("/salary-components", func(r chi.Router) {
				r.Use(view)
				r.Get("/", salaryComponentHandler.List)
				r.Get("/stats", salaryComponentHandler.Stats)
				r.Get("/{id}", salaryComponentHandler.Get)
				r.With(manage).Post("/", salaryComponentHandler.Create)
				r.With(manage).Put("/{id}", salaryComponentHandler.Update)
				r.With(manage).Patch("/{id}", salaryComponentHandler.Update)
				r.With(manage).Delete("/{id}", salaryComponentHandler.Delete)
			})

			r.Route("/leave", func(r chi.Router) {
				approve := middleware.RequirePermission(user.PermissionLeaveApprove)

				r.With(view).Get("/", leaveHandler.List)
				r.With(view).Get("/stats", leaveHandler.Stats)
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", leaveHandler.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.With(view).Get("/", leaveHandler.Get)
					r.With(manage).Put("/", leaveHandler.Update)
					r.With(manage).Patch("/", leaveHandler.Update)
					r.With(manage).Delete("/", leaveHandler.Delete)
					r.With(approve).Post("/approve", leaveHandler.Approve)
					r.With(approve).Post("/reject", leaveHandler.Reject)
					r.With(approve).Post("/cancel", leaveHandler.Cancel)
				})
			})

			r.Route("/payment-information", func(r chi.Router) {
				r.Use(view)
				r.Get("/", paymentInfoHandler.List)
				r.Get("/{id}", paymentInfoHandler.Get)
				r.With(manage).Post("/", paymentInfoHandler.Create)
				r.With(manage).Put("/{id}", paymentInfoHandler.Update)
				r.With(manage).Patch("/{id}", paymentInfoHandler.Update)
				r.With(manage).Delete("/{id}", paymentInfoHandler.Delete)
			})

			r.Route("/documents", func(r chi.Router) {
				edit := middleware.RequirePermission(user.PermissionDocumentsEdit)

				r.Use(view)
				r.Get("/", documentHandler.List)
				r.Get("/{id}", documentHandler.Get)
				r.Get("/{id}/download", documentHandler.Download)
				r.With(edit).Post("/", documentHandler.Upload)
				r.With(edit).Put("/{id}", documentHandler.Update)
				r.With(edit).Patch("/{id}", documentHandler.Update)
				r.With(edit).Delete("/{id}", documentHandler.Delete)
			})
		})
	})
	return r
}
