package handler

import (
	"secure-bank-console/internal/adapter/http/middleware"
	redisStore "secure-bank-console/internal/adapter/storage/redis"
	"secure-bank-console/internal/core/domain"
	"secure-bank-console/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const defaultMaxBodyBytes = 1 << 20

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Identity       ports.IdentityProvider
	WizardSvc      ports.WizardService
	CustomerSvc    ports.CustomerService
	AccountSvc     ports.AccountService
	FreezeSvc      ports.FreezeService
	ReportSvc      ports.ReportService
	AuditSvc       ports.AuditService         // nil = audit logging disabled
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	MaxBodyBytes   int64
	Mode           string
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	if deps.Mode != "" {
		gin.SetMode(deps.Mode)
	}
	r := gin.New()

	maxBody := deps.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(maxBody))

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		rule, ok := rules[group]
		if deps.RateLimitStore == nil || !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}
	role := middleware.RequireRole

	v1 := r.Group("/api/v1")

	// --- Public routes ---
	authHandler := NewAuthHandler(deps.Identity, deps.Logger)
	v1.GET("/auth/login", rl(middleware.GroupAuth), authHandler.Login)

	// --- Authenticated routes ---
	secured := v1.Group("", middleware.Authenticate(deps.Identity, deps.Logger))

	auth := secured.Group("/auth")
	{
		auth.POST("/logout", rl(middleware.GroupAuth), authHandler.Logout)
		auth.GET("/me", rl(middleware.GroupRead), authHandler.Me)
	}

	customerHandler := NewCustomerHandler(deps.CustomerSvc)
	customers := secured.Group("/customers", role(domain.RoleProfileUpdater))
	{
		customers.GET("", rl(middleware.GroupRead), customerHandler.List)
		customers.GET("/:id", rl(middleware.GroupRead), customerHandler.Get)
		customers.PUT("/:id/profile", rl(middleware.GroupMutation), customerHandler.UpdateProfile)
	}

	accountHandler := NewAccountHandler(deps.AccountSvc, deps.FreezeSvc, deps.AuditSvc)
	accounts := secured.Group("/accounts")
	{
		accounts.GET("/me", role(domain.RoleCustomerViewer), rl(middleware.GroupRead), accountHandler.Mine)
		accounts.GET("/customer/:customerId", role(domain.RoleCustomerViewer), rl(middleware.GroupRead), accountHandler.ByCustomer)
		accounts.GET("/:id", role(domain.RoleAccountFreezer), rl(middleware.GroupRead), accountHandler.Get)
		accounts.PUT("/:id/freeze", role(domain.RoleAccountFreezer), rl(middleware.GroupMutation), accountHandler.Freeze)
		if deps.AuditSvc != nil {
			accounts.GET("/:id/history", role(domain.RoleAccountFreezer), rl(middleware.GroupRead), accountHandler.History)
		}
	}

	reportHandler := NewReportHandler(deps.ReportSvc)
	secured.GET("/reports/summary", role(domain.RoleReportViewer), rl(middleware.GroupRead), reportHandler.Summary)

	secured.GET("/account-types", role(domain.RoleAccountCreator), rl(middleware.GroupRead), accountHandler.AccountTypes)

	wizardHandler := NewWizardHandler(deps.WizardSvc)
	wizards := secured.Group("/wizards", role(domain.RoleAccountCreator))
	{
		step := rl(middleware.GroupWizard)
		wizards.POST("", step, wizardHandler.Create)
		wizards.GET("/:id", step, wizardHandler.Get)
		wizards.POST("/:id/search", step, wizardHandler.Search)
		wizards.POST("/:id/reset-filters", step, wizardHandler.ResetFilters)
		wizards.POST("/:id/select", step, wizardHandler.Select)
		wizards.POST("/:id/deselect", step, wizardHandler.Deselect)
		wizards.POST("/:id/next", step, wizardHandler.Next)
		wizards.POST("/:id/back", step, wizardHandler.Back)
		wizards.POST("/:id/account-type", step, wizardHandler.ApplyAccountType)
		wizards.PUT("/:id/account", step, wizardHandler.UpdateAccount)
		wizards.POST("/:id/confirm", step, wizardHandler.Confirm)
		wizards.POST("/:id/submit", rl(middleware.GroupWizardSubmit), wizardHandler.Submit)
		wizards.POST("/:id/reset", step, wizardHandler.Reset)
	}

	return r
}
