package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/tewodrosm/sera-api/docs" // Swagger docs
	"github.com/tewodrosm/sera-api/internal/authz"
	"github.com/tewodrosm/sera-api/internal/config"
	"github.com/tewodrosm/sera-api/internal/database"
	"github.com/tewodrosm/sera-api/internal/handlers"
	"github.com/tewodrosm/sera-api/internal/jobs"
	"github.com/tewodrosm/sera-api/internal/middleware"
	"github.com/tewodrosm/sera-api/internal/repository"
	"github.com/tewodrosm/sera-api/internal/services"
	"github.com/tewodrosm/sera-api/internal/storage"
	"github.com/tewodrosm/sera-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title Sera API
// @version 1.0
// @description REST API for the Sera services company back office

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	// Run migrations and seed default accounts
	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	if err := database.Seed(db); err != nil {
		logger.Error("Failed to seed default users", "error", err)
		os.Exit(1)
	}

	// Initialize storage
	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage", "path", cfg.StoragePath)

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, store, cfg)

	// Schedule recurring jobs
	scheduleJobs(worker, store)

	// Initialize handlers
	h := handlers.NewHandlers(svcs)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // Backup and export downloads can be slow
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Shutdown background worker
	worker.Shutdown()
	logger.Info("Background worker stopped")

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Redirect root to swagger
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		// Health check (public)
		api.GET("/health", h.Health.Index)

		// Authentication (public)
		api.POST("/auth/login", h.Auth.Login)

		// Protected routes (requires authentication)
		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			// Session
			protected.GET("/auth/me", h.Auth.Me)
			protected.PUT("/auth/profile", h.Auth.UpdateProfile)
			protected.POST("/auth/change-password", h.Auth.ChangePassword)

			// User management (admin only, reads included)
			users := protected.Group("/users")
			users.Use(middleware.RequireAdmin())
			{
				users.GET("", h.User.List)
				users.GET("/:id", h.User.Get)
				users.POST("", h.User.Create)
				users.PUT("/:id", h.User.Update)
				users.DELETE("/:id", h.User.Delete)
			}

			// Assets
			assets := protected.Group("/assets")
			{
				assets.GET("", h.Asset.List)
				assets.GET("/:id", h.Asset.Get)
				assets.GET("/:id/history", h.Asset.History)
				assets.GET("/:id/documents/:docId/download", h.Asset.DownloadDocument)

				assetWrites := assets.Group("")
				assetWrites.Use(middleware.RequireMutate(authz.ResourceAssets))
				{
					assetWrites.POST("", h.Asset.Create)
					assetWrites.PUT("/:id", h.Asset.Update)
					// Hard delete cascades documents and history, so only admins may do it
					assetWrites.DELETE("/:id", middleware.RequireAdmin(), h.Asset.Delete)
					assetWrites.POST("/:id/documents", h.Asset.UploadDocument)
					assetWrites.DELETE("/:id/documents/:docId", h.Asset.DeleteDocument)
				}
			}

			// Inventory
			inventory := protected.Group("/inventory")
			{
				inventory.GET("", h.Inventory.List)
				inventory.GET("/suppliers", h.Inventory.ListSuppliers)
				inventory.GET("/:id", h.Inventory.Get)
				inventory.GET("/:id/transactions", h.Inventory.ListTransactions)

				inventoryWrites := inventory.Group("")
				inventoryWrites.Use(middleware.RequireMutate(authz.ResourceInventory))
				{
					inventoryWrites.POST("", h.Inventory.Create)
					inventoryWrites.PUT("/:id", h.Inventory.Update)
					inventoryWrites.DELETE("/:id", h.Inventory.Delete)
					inventoryWrites.POST("/:id/transactions", h.Inventory.RecordTransaction)
					inventoryWrites.POST("/suppliers", h.Inventory.CreateSupplier)
					inventoryWrites.PUT("/suppliers/:id", h.Inventory.UpdateSupplier)
					inventoryWrites.DELETE("/suppliers/:id", h.Inventory.DeleteSupplier)
				}
			}

			// Employees
			employees := protected.Group("/employees")
			{
				employees.GET("", h.Employee.List)
				employees.GET("/export/csv", h.Employee.ExportCSV)
				employees.GET("/export/xlsx", h.Employee.ExportXLSX)
				employees.GET("/:id", h.Employee.Get)
				employees.GET("/:id/documents/:docId/download", h.Employee.DownloadDocument)
				employees.GET("/:id/guarantors/:guarantorId/documents/:docId/download", h.Employee.DownloadGuarantorDocument)
				employees.GET("/:id/attendance", h.Employee.ListAttendance)

				employeeWrites := employees.Group("")
				employeeWrites.Use(middleware.RequireMutate(authz.ResourceEmployees))
				{
					employeeWrites.POST("", h.Employee.Create)
					employeeWrites.PUT("/:id", h.Employee.Update)
					employeeWrites.DELETE("/:id", h.Employee.Delete)
					employeeWrites.POST("/import/csv", h.Employee.ImportCSV)
					employeeWrites.POST("/:id/documents", h.Employee.UploadDocument)
					employeeWrites.DELETE("/:id/documents/:docId", h.Employee.DeleteDocument)
					employeeWrites.POST("/:id/guarantors", h.Employee.AddGuarantor)
					employeeWrites.PUT("/:id/guarantors/:guarantorId", h.Employee.UpdateGuarantor)
					employeeWrites.POST("/:id/guarantors/:guarantorId/verify", h.Employee.VerifyGuarantor)
					employeeWrites.DELETE("/:id/guarantors/:guarantorId", h.Employee.DeleteGuarantor)
					employeeWrites.POST("/:id/guarantors/:guarantorId/documents", h.Employee.UploadGuarantorDocument)
					employeeWrites.DELETE("/:id/guarantors/:guarantorId/documents/:docId", h.Employee.DeleteGuarantorDocument)
					employeeWrites.POST("/:id/attendance", h.Employee.RecordAttendance)
				}
			}

			// Clients and service contracts
			clients := protected.Group("/clients")
			{
				clients.GET("", h.Client.List)
				clients.GET("/:id", h.Client.Get)
				clients.GET("/:id/contracts", h.Client.ListContracts)
				clients.GET("/:id/assignments", h.Client.ListAssignments)

				clientWrites := clients.Group("")
				clientWrites.Use(middleware.RequireMutate(authz.ResourceClients))
				{
					clientWrites.POST("", h.Client.Create)
					clientWrites.PUT("/:id", h.Client.Update)
					clientWrites.DELETE("/:id", h.Client.Delete)
					clientWrites.POST("/:id/contracts", h.Client.CreateContract)
					clientWrites.PUT("/:id/contracts/:contractId", h.Client.UpdateContract)
					clientWrites.DELETE("/:id/contracts/:contractId", h.Client.DeleteContract)
					clientWrites.POST("/:id/assign-employee", h.Client.AssignEmployee)
					clientWrites.DELETE("/:id/assignments/:assignmentId", h.Client.RemoveAssignment)
				}
			}

			// Rental properties and tenants
			rentals := protected.Group("/rentals")
			{
				rentals.GET("", h.Rental.ListProperties)
				rentals.GET("/tenants", h.Rental.ListTenants)
				rentals.GET("/tenants/:id", h.Rental.GetTenant)
				rentals.GET("/tenants/:id/payments", h.Rental.ListPayments)
				rentals.GET("/:id", h.Rental.GetProperty)

				rentalWrites := rentals.Group("")
				rentalWrites.Use(middleware.RequireMutate(authz.ResourceRentals))
				{
					rentalWrites.POST("", h.Rental.CreateProperty)
					rentalWrites.PUT("/:id", h.Rental.UpdateProperty)
					rentalWrites.DELETE("/:id", h.Rental.DeleteProperty)
					rentalWrites.POST("/tenants", h.Rental.CreateTenant)
					rentalWrites.PUT("/tenants/:id", h.Rental.UpdateTenant)
					rentalWrites.DELETE("/tenants/:id", h.Rental.DeleteTenant)
				}

				// Rent payments are shared with accountants
				rentals.POST("/tenants/:id/payments",
					middleware.RequireMutate(authz.ResourcePayments), h.Rental.RecordPayment)
			}

			// Reports and notifications (read-only, any authenticated user)
			reports := protected.Group("/reports")
			{
				reports.GET("/dashboard", h.Report.Dashboard)
				reports.GET("/dashboard-pdf", h.Report.DashboardPDF)
				reports.GET("/asset-utilization", h.Report.AssetUtilization)
				reports.GET("/employee-distribution", h.Report.EmployeeDistribution)
				reports.GET("/inventory-stock", h.Report.InventoryStock)
				reports.GET("/monthly-revenue", h.Report.MonthlyRevenue)
				reports.GET("/recent-activities", h.Report.RecentActivities)
				reports.GET("/notifications", h.Report.Notifications)
			}

			// Settings, backup, and audit logs (admin only)
			settings := protected.Group("/settings")
			settings.Use(middleware.RequireAdmin())
			{
				settings.GET("", h.Settings.Get)
				settings.PUT("/company", h.Settings.UpdateCompany)
				settings.PUT("/system", h.Settings.UpdateSystem)
				settings.GET("/backup", h.Settings.Backup)
				settings.POST("/clear-cache", h.Settings.ClearCache)
				settings.GET("/logs", h.Settings.Logs)
			}
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, store *storage.LocalStorage) {
	tempDir := filepath.Join(store.BasePath(), storage.DirTemp)

	// Sweep stale temp files every 6 hours
	worker.ScheduleEvery(6*time.Hour, jobs.CleanupTempFiles(tempDir, 24*time.Hour))

	logger.Info("Scheduled recurring jobs")
}
