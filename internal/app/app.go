package app

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"rentflow/internal/config"
	"rentflow/internal/db"
	"rentflow/internal/handlers"
	"rentflow/internal/integrations/stripe"
	"rentflow/internal/jobs"
	"rentflow/internal/pdf"
	"rentflow/internal/repositories"
	"rentflow/internal/routes"
	"rentflow/internal/services"
)

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

func Run() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	cfg := config.LoadConfig()

	conn, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	if err := conn.Ping(); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	if err := db.InitSchema(conn); err != nil {
		logger.Fatal("Failed to init schema", zap.Error(err))
	}

	// Repositories
	userRepo := repositories.NewUserRepository(conn)
	propertyRepo := repositories.NewPropertyRepository(conn)
	tenantRepo := repositories.NewTenantRepository(conn)
	leaseRepo := repositories.NewLeaseRepository(conn)
	scheduleRepo := repositories.NewScheduleRepository(conn)
	prorationRuleRepo := repositories.NewProrationRuleRepository(conn)
	changeRequestRepo := repositories.NewChangeRequestRepository(conn)
	dunningRepo := repositories.NewDunningRepository(conn)
	invoiceRepo := repositories.NewInvoiceRepository(conn)
	workOrderRepo := repositories.NewWorkOrderRepository(conn)
	vendorRepo := repositories.NewVendorRepository(conn)

	// Shared infrastructure
	dispatcher := services.NewDispatcher(logger)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	telegramService := services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.ManagerChatID, logger)
	stripeClient := stripe.NewClient(cfg.Stripe.BaseURL, cfg.Stripe.APIKey, logger)
	docGenerator := pdf.NewDocumentGenerator("RentFlow")

	// Services
	authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret, logger)
	propertyService := services.NewPropertyService(propertyRepo, logger)
	tenantService := services.NewTenantService(tenantRepo, logger)
	leaseService := services.NewLeaseService(leaseRepo, propertyRepo, tenantRepo, logger)
	scheduleService := services.NewScheduleService(scheduleRepo, logger)
	prorationService := services.NewProrationService(prorationRuleRepo, logger)
	changeRequestService := services.NewChangeRequestService(
		changeRequestRepo, scheduleRepo, tenantRepo, emailService, dispatcher, logger)
	dunningService := services.NewDunningService(
		dunningRepo, invoiceRepo, leaseRepo, tenantRepo, emailService, telegramService, docGenerator, logger)
	invoiceService := services.NewInvoiceService(invoiceRepo, leaseRepo, tenantRepo, docGenerator, logger)
	billingService := services.NewBillingService(invoiceRepo, leaseRepo, tenantRepo, stripeClient, logger)
	workOrderService := services.NewWorkOrderService(workOrderRepo, vendorRepo, logger)
	reportService := services.NewReportService(invoiceRepo, logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	changeRequestHandler := handlers.NewChangeRequestHandler(changeRequestService)
	paymentsHandler := handlers.NewPaymentsHandler(prorationService, dunningService)
	propertyHandler := handlers.NewPropertyHandler(propertyService)
	tenantHandler := handlers.NewTenantHandler(tenantService)
	leaseHandler := handlers.NewLeaseHandler(leaseService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, billingService)
	workOrderHandler := handlers.NewWorkOrderHandler(workOrderService)
	reportHandler := handlers.NewReportHandler(reportService)

	if cfg.Dunning.Enabled {
		dunningJob := jobs.NewDunningJob(dunningService, logger)
		if err := dunningJob.Start(cfg.Dunning.CronSpec); err != nil {
			logger.Fatal("Failed to start dunning job", zap.Error(err))
		}
		defer dunningJob.Stop()
	}

	r := gin.Default()
	r.Use(corsMiddleware())

	routes.SetupRoutes(
		r,
		[]byte(cfg.Auth.JWTSecret),
		authHandler,
		scheduleHandler,
		changeRequestHandler,
		paymentsHandler,
		propertyHandler,
		tenantHandler,
		leaseHandler,
		invoiceHandler,
		workOrderHandler,
		reportHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("Server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}

	dispatcher.Wait()
}
