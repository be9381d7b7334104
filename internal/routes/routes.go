package routes

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-services/internal/audit"
	"github.com/BruksfildServices01/appointment-services/internal/config"
	"github.com/BruksfildServices01/appointment-services/internal/handlers"
	"github.com/BruksfildServices01/appointment-services/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/appointment-services/internal/infra/repository"
	"github.com/BruksfildServices01/appointment-services/internal/middleware"
	"github.com/BruksfildServices01/appointment-services/internal/models"
	"github.com/BruksfildServices01/appointment-services/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/appointment-services/internal/usecase/appointment"
	ucCapacity "github.com/BruksfildServices01/appointment-services/internal/usecase/capacity"
	ucCatalog "github.com/BruksfildServices01/appointment-services/internal/usecase/catalog"
	ucUser "github.com/BruksfildServices01/appointment-services/internal/usecase/user"
)

// Deps are the singletons built by main and shared by every route.
type Deps struct {
	DB        *gorm.DB
	Cache     *cache.Client
	Audit     *audit.Dispatcher
	AuditLogs *audit.Logger
	Users     *ucUser.Service
	Clock     timezone.Clock
	Config    *config.Config
	Logger    *slog.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	serviceRepo := infraRepo.NewServiceGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	limitRepo := infraRepo.NewDailyLimitGormRepository(d.DB)
	tx := infraRepo.NewGormTransactor(d.DB)

	capacityChecker := ucCapacity.NewChecker(limitRepo, appointmentRepo)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	appointments := handlers.AppointmentUseCases{
		Create:   ucAppointment.NewCreateAppointment(appointmentRepo, tx, capacityChecker, serviceRepo, userRepo, d.Audit, d.Clock),
		Get:      ucAppointment.NewGetAppointment(appointmentRepo),
		Update:   ucAppointment.NewUpdateAppointment(appointmentRepo, tx, capacityChecker, serviceRepo, d.Audit, d.Clock),
		Cancel:   ucAppointment.NewCancelAppointment(appointmentRepo, d.Audit, d.Clock),
		Confirm:  ucAppointment.NewConfirmAppointment(appointmentRepo, tx, capacityChecker, d.Audit, d.Clock),
		Complete: ucAppointment.NewCompleteAppointment(appointmentRepo, d.Audit, d.Clock),
		Delete:   ucAppointment.NewDeleteAppointment(appointmentRepo, d.Audit),
		List:     ucAppointment.NewListAppointments(appointmentRepo, d.Clock),
	}

	catalog := ucCatalog.NewService(serviceRepo, d.Cache, d.Config.CacheTTL, d.Audit)
	limits := ucCapacity.NewService(limitRepo, d.Audit)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.Users)
	meHandler := handlers.NewMeHandler(d.Users)
	userHandler := handlers.NewUserHandler(d.Users)
	appointmentHandler := handlers.NewAppointmentHandler(appointments)
	serviceHandler := handlers.NewServiceHandler(catalog)
	limitHandler := handlers.NewDailyLimitHandler(limits)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs)

	checks := map[string]handlers.Pinger{
		"database": handlers.PingFunc(func(ctx context.Context) error {
			sqlDB, err := d.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
	}
	if d.Cache != nil {
		checks["cache"] = d.Cache
	}
	health := handlers.NewHealthHandler(checks)

	loginLimiter := middleware.NewRateLimiter(
		d.Cache.Redis(),
		d.Config.LoginRateLimit,
		d.Config.LoginRateWindow,
		"ratelimit:auth",
		d.Logger,
	)

	// ======================================================
	// 🌍 PUBLIC
	// ======================================================
	r.GET("/health", health.Live)
	r.GET("/ready", health.Ready)

	api := r.Group("/api")

	auth := api.Group("/auth", loginLimiter.Middleware())
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// ======================================================
	// 🔐 AUTHENTICATED
	// ======================================================
	private := api.Group("")
	private.Use(middleware.AuthMiddleware(d.Users))

	private.GET("/me", meHandler.GetMe)
	private.PATCH("/me", meHandler.UpdateMe)

	ap := private.Group("/appointments")
	{
		ap.POST("", middleware.RequireRole(models.RoleClient), appointmentHandler.Create)
		ap.GET("", appointmentHandler.List)
		ap.GET("/:id", appointmentHandler.Get)
		ap.PUT("/:id", middleware.RequireRole(models.RoleClient), appointmentHandler.Update)
		ap.POST("/:id/cancel", appointmentHandler.Cancel)
		ap.POST("/:id/confirm", middleware.RequireRole(models.RoleAdmin), appointmentHandler.Confirm)
		ap.POST("/:id/complete", middleware.RequireRole(models.RoleAdmin), appointmentHandler.Complete)
		ap.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), appointmentHandler.Delete)
	}

	private.GET("/services", serviceHandler.List)
	private.GET("/services/:id", serviceHandler.Get)

	// ======================================================
	// 🛡️ ADMIN
	// ======================================================
	admin := private.Group("")
	admin.Use(middleware.RequireRole(models.RoleAdmin))

	admin.POST("/services", serviceHandler.Create)
	admin.PUT("/services/:id", serviceHandler.Update)
	admin.DELETE("/services/:id", serviceHandler.Delete)

	users := admin.Group("/users")
	{
		users.GET("", userHandler.List)
		users.POST("", userHandler.Create)
		users.GET("/:id", userHandler.Get)
		users.PUT("/:id", userHandler.Update)
		users.DELETE("/:id", userHandler.Delete)
	}

	dl := admin.Group("/admin-daily-limits")
	{
		dl.GET("", limitHandler.List)
		dl.POST("", limitHandler.Create)
		dl.GET("/:id", limitHandler.Get)
		dl.PUT("/:id", limitHandler.Update)
		dl.DELETE("/:id", limitHandler.Delete)
	}

	admin.GET("/audit-logs", auditLogsHandler.List)
}
