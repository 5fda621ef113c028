package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/user"
	"github.com/simpeg-id/simpeg-backend-go/internal/handler/http/middleware"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/jwt"
)

// RouterOptions carries the deployment settings the router needs.
type RouterOptions struct {
	Env            string
	Version        string
	AllowedOrigins []string
	UploadsPath    string
	LogLevel       slog.Level
}

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Auth           AuthHandler
	Event          EventHandler
	Status         StatusHandler
	Dashboard      DashboardHandler
	Notification   NotificationHandler
	Employee       EmployeeHandler
	User           UserHandler
	Leave          LeaveHandler
	StudyPermit    StudyPermitHandler
	SalaryIncrease SalaryIncreaseHandler
	Pension        PensionHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, authz middleware.Authorizer, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "simpeg"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if opts.UploadsPath != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadsPath))))
	}

	can := func(perms ...user.Permission) func(http.Handler) http.Handler {
		return middleware.RequirePermission(authz, perms...)
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Get("/oauth/google", h.Auth.LoginWithGoogle)
			r.Get("/oauth/callback/google", h.Auth.OAuthCallbackGoogle)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService))
				r.Get("/me", h.Auth.Me)
				r.Get("/sse-token", h.Auth.SSEToken)
			})
		})

		// The stream authenticates with its own short-lived token.
		r.Get("/events/stream", h.Event.Stream)

		r.Get("/statuses", h.Status.List)
		r.Get("/statuses/classify", h.Status.Classify)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Get("/dashboard", h.Dashboard.GetDashboard)

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Post("/read", h.Notification.MarkAsRead)
				r.Post("/read-all", h.Notification.MarkAllAsRead)
				r.Delete("/{id}", h.Notification.Delete)
			})

			r.Route("/employees", func(r chi.Router) {
				r.With(can(user.PermissionProfileViewOwn)).Get("/me", h.Employee.GetProfile)
				r.With(can(user.PermissionEmployeeViewAll)).Get("/", h.Employee.ListEmployees)
				r.With(can(user.PermissionEmployeeManage)).Post("/", h.Employee.CreateEmployee)
				r.With(can(user.PermissionEmployeeViewAll)).Get("/{id}", h.Employee.GetEmployee)
				r.With(can(user.PermissionEmployeeManage)).Put("/{id}", h.Employee.UpdateEmployee)
				r.With(can(user.PermissionEmployeeManage)).Delete("/{id}", h.Employee.DeleteEmployee)
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(can(user.PermissionUserManage))
				r.Get("/", h.User.List)
				r.Post("/", h.User.Create)
				r.Get("/{id}", h.User.Get)
				r.Put("/{id}", h.User.Update)
				r.Delete("/{id}", h.User.Delete)
			})

			r.Route("/leave", func(r chi.Router) {
				r.With(can(user.PermissionLeaveViewOwn)).Get("/types", h.Leave.ListTypes)

				r.Route("/quotas", func(r chi.Router) {
					r.With(can(user.PermissionQuotaViewOwn)).Get("/my", h.Leave.GetMyQuota)
					r.With(can(user.PermissionQuotaManage)).Get("/", h.Leave.ListQuota)
					r.With(can(user.PermissionQuotaManage)).Post("/", h.Leave.CreateQuota)
					r.With(can(user.PermissionQuotaManage)).Put("/{id}", h.Leave.UpdateQuota)
				})

				r.Route("/requests", func(r chi.Router) {
					r.Use(can(user.PermissionLeaveViewOwn, user.PermissionLeaveViewAll))
					r.With(can(user.PermissionLeaveCreate)).Post("/preview", h.Leave.Preview)
					r.Get("/", h.Leave.ListRequests)
					r.With(can(user.PermissionLeaveCreate)).Post("/", h.Leave.CreateRequest)
					r.Get("/export", h.Leave.ExportRequests)
					r.Get("/{id}", h.Leave.GetRequest)
					r.Get("/{id}/export", h.Leave.ExportRequest)
					r.With(can(user.PermissionLeaveApprove)).Post("/{id}/decision", h.Leave.Decide)
					r.With(can(user.PermissionLeaveCreate)).Post("/{id}/resubmit", h.Leave.Resubmit)
					r.Post("/{id}/cancel", h.Leave.Cancel)
				})
			})

			r.Route("/study-permits", func(r chi.Router) {
				r.Use(can(user.PermissionStudyPermitViewOwn, user.PermissionStudyPermitViewAll))
				r.Get("/", h.StudyPermit.List)
				r.With(can(user.PermissionStudyPermitCreate)).Post("/", h.StudyPermit.Create)
				r.Get("/export", h.StudyPermit.Export)
				r.Get("/{id}", h.StudyPermit.Get)
				r.Get("/{id}/export", h.StudyPermit.ExportOne)
				r.With(can(user.PermissionStudyPermitApprove)).Post("/{id}/decision", h.StudyPermit.Decide)
				r.With(can(user.PermissionStudyPermitCreate)).Post("/{id}/resubmit", h.StudyPermit.Resubmit)
				r.Post("/{id}/cancel", h.StudyPermit.Cancel)
				r.With(can(user.PermissionStudyPermitComplete)).Post("/{id}/complete", h.StudyPermit.Complete)
			})

			r.Route("/salary-increases", func(r chi.Router) {
				r.Use(can(user.PermissionSalaryViewOwn, user.PermissionSalaryViewAll))
				r.Get("/", h.SalaryIncrease.List)
				r.With(can(user.PermissionSalaryCreate)).Post("/", h.SalaryIncrease.Create)
				r.Get("/export", h.SalaryIncrease.Export)
				r.Get("/{id}", h.SalaryIncrease.Get)
				r.Get("/{id}/export", h.SalaryIncrease.ExportOne)
				r.With(can(user.PermissionSalaryApprove)).Post("/{id}/decision", h.SalaryIncrease.Decide)
				r.With(can(user.PermissionSalaryCreate)).Post("/{id}/resubmit", h.SalaryIncrease.Resubmit)
				r.With(can(user.PermissionSalaryCreate)).Post("/{id}/cancel", h.SalaryIncrease.Cancel)
			})

			r.Route("/pensions", func(r chi.Router) {
				r.Use(can(user.PermissionPensionViewOwn, user.PermissionPensionViewAll))
				r.Get("/", h.Pension.List)
				r.With(can(user.PermissionPensionCreate)).Post("/", h.Pension.Create)
				r.Get("/export", h.Pension.Export)
				r.Get("/{id}", h.Pension.Get)
				r.Get("/{id}/export", h.Pension.ExportOne)
				r.With(can(user.PermissionPensionApprove)).Post("/{id}/decision", h.Pension.Decide)
				r.With(can(user.PermissionPensionCreate)).Post("/{id}/resubmit", h.Pension.Resubmit)
				r.Post("/{id}/cancel", h.Pension.Cancel)
				r.With(can(user.PermissionPensionComplete)).Post("/{id}/complete", h.Pension.Complete)
			})
		})
	})
	return r
}
