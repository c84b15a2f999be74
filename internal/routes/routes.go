package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/groomer-manager/internal/audit"
	"github.com/BruksfildServices01/groomer-manager/internal/config"
	"github.com/BruksfildServices01/groomer-manager/internal/domain/account"
	"github.com/BruksfildServices01/groomer-manager/internal/domain/finance"
	"github.com/BruksfildServices01/groomer-manager/internal/domain/schedule"
	"github.com/BruksfildServices01/groomer-manager/internal/handlers"
	"github.com/BruksfildServices01/groomer-manager/internal/middleware"
	"github.com/BruksfildServices01/groomer-manager/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/groomer-manager/internal/usecase/appointment"
	ucAuth "github.com/BruksfildServices01/groomer-manager/internal/usecase/auth"
	ucClient "github.com/BruksfildServices01/groomer-manager/internal/usecase/client"
	ucFinance "github.com/BruksfildServices01/groomer-manager/internal/usecase/finance"
)

// Store is everything the API persists.
type Store interface {
	schedule.Repository
	finance.Repository
	account.UserStore
}

type Deps struct {
	Config *config.Config
	Log    *slog.Logger
	Store  Store
	Clock  timezone.Clock

	AuditLogs handlers.AuditLister
	Audit     *audit.Dispatcher

	// Optional
	Photos     ucClient.PhotoStore
	Limiter    middleware.Counter
	EmailCheck func(string) bool
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(middleware.RequestLog(d.Log))
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	repo := d.Store
	policy := schedule.CadencePolicy{
		DueSoonHorizonDays: d.Config.DueSoonHorizonDays,
		OverdueCeilingDays: d.Config.OverdueCeilingDays,
		LapsedAfterDays:    d.Config.LapsedAfterDays,
	}

	// ------------------------------
	// Use cases
	// ------------------------------
	authSvc := ucAuth.NewService(repo, d.Config.JWTSecret, d.Clock, d.Audit, d.EmailCheck)
	followups := ucClient.NewFollowups(repo, d.Clock, policy)
	reports := ucFinance.NewReports(repo, d.Clock, followups)

	// ------------------------------
	// Handlers
	// ------------------------------
	authHandler := handlers.NewAuthHandler(authSvc)
	meHandler := handlers.NewMeHandler(authSvc)

	clientHandler := handlers.NewClientHandler(
		ucClient.NewCreateClient(repo, d.Audit),
		ucClient.NewUpdateClient(repo, d.Audit),
		ucClient.NewDeleteClient(repo, d.Audit),
		ucClient.NewGetClient(repo, d.Clock, policy),
		ucClient.NewListClients(repo, d.Clock, policy),
		ucClient.NewClientAppointments(repo, d.Clock),
	)

	dogHandler := handlers.NewDogHandler(
		ucClient.NewCreateDog(repo, d.Audit),
		ucClient.NewUpdateDog(repo, d.Audit),
		ucClient.NewDeleteDog(repo, d.Audit),
		ucClient.NewUploadDogPhoto(repo, d.Photos, d.Audit),
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		ucAppointment.NewCreateAppointment(repo, d.Audit),
		ucAppointment.NewUpdateAppointment(repo, d.Audit),
		ucAppointment.NewDeleteAppointment(repo, d.Audit),
		ucAppointment.NewGetAppointment(repo),
		ucAppointment.NewListAppointments(repo, d.Clock),
		ucAppointment.NewConfirmAppointment(repo, d.Audit, d.Clock),
		ucAppointment.NewCompleteAppointment(repo, d.Audit, d.Clock),
		ucAppointment.NewCancelAppointment(repo, d.Audit, d.Clock),
	)

	expenditureHandler := handlers.NewExpenditureHandler(
		ucFinance.NewCreateExpenditure(repo, d.Audit),
		ucFinance.NewUpdateExpenditure(repo, d.Audit),
		ucFinance.NewDeleteExpenditure(repo, d.Audit),
		ucFinance.NewListExpenditures(repo),
	)

	summaryHandler := handlers.NewSummaryHandler(followups, reports)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs)

	// ------------------------------
	// API
	// ------------------------------
	api := r.Group("/api")
	{
		loginLimit := middleware.RateLimit(d.Limiter, "login", d.Config.LoginRateLimit, d.Config.LoginRateWindow)

		api.POST("/auth/register", loginLimit, authHandler.Register)
		api.POST("/auth/login", loginLimit, authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config.JWTSecret))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.PUT("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)
			secured.GET("/clients/:id/appointments", clientHandler.Appointments)

			secured.POST("/dogs", dogHandler.Create)
			secured.PUT("/dogs/:id", dogHandler.Update)
			secured.DELETE("/dogs/:id", dogHandler.Delete)
			secured.POST("/dogs/:id/photo", dogHandler.UploadPhoto)

			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			secured.GET("/expenditures", expenditureHandler.List)
			secured.POST("/expenditures", expenditureHandler.Create)
			secured.PUT("/expenditures/:id", expenditureHandler.Update)
			secured.DELETE("/expenditures/:id", expenditureHandler.Delete)

			summary := secured.Group("/summary")
			{
				summary.GET("/overdue-clients", summaryHandler.OverdueClients)
				summary.GET("/suggested-followups", summaryHandler.SuggestedFollowups)
				summary.GET("/lapsed-clients", summaryHandler.LapsedClients)
				summary.GET("/financials", summaryHandler.Financials)
				summary.GET("/trends", summaryHandler.Trends)
				summary.GET("/services", summaryHandler.Services)
				summary.GET("/expense-categories", summaryHandler.ExpenseCategories)
				summary.GET("/monthly", summaryHandler.Monthly)
				summary.GET("/week", summaryHandler.Week)
			}

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
