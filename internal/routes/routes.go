package routes

import (
	"github.com/gin-gonic/gin"

	"rentflow/internal/authz"
	"rentflow/internal/handlers"
	"rentflow/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	jwtSecret []byte,
	authHandler *handlers.AuthHandler,
	scheduleHandler *handlers.ScheduleHandler,
	changeRequestHandler *handlers.ChangeRequestHandler,
	paymentsHandler *handlers.PaymentsHandler,
	propertyHandler *handlers.PropertyHandler,
	tenantHandler *handlers.TenantHandler,
	leaseHandler *handlers.LeaseHandler,
	invoiceHandler *handlers.InvoiceHandler,
	workOrderHandler *handlers.WorkOrderHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {

	// ---- public
	r.POST("/login", authHandler.Login)
	r.POST("/register", authHandler.Register)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	// ---- protected
	r.Use(middleware.AuthMiddleware(jwtSecret))

	// PAYMENT SCHEDULES
	schedules := r.Group("/payment-schedules")
	{
		schedules.GET("", scheduleHandler.List)
		schedules.POST("", scheduleHandler.Create)
		schedules.POST("/weekly-plan", scheduleHandler.GenerateWeeklyPlan)

		schedules.GET("/change-requests", changeRequestHandler.List)
		schedules.POST("/change-requests", changeRequestHandler.Create)
		schedules.PATCH("/change-requests/:id",
			middleware.RequireRoles(authz.RoleManager, authz.RoleAdmin),
			changeRequestHandler.Decide)
	}

	// PAYMENTS
	payments := r.Group("/payments")
	{
		payments.POST("/prorate", paymentsHandler.Prorate)
		payments.POST("/proration-rules",
			middleware.RequireRoles(authz.RoleManager, authz.RoleAdmin),
			paymentsHandler.SetProrationRule)
		payments.GET("/dunning/settings", paymentsHandler.GetDunningSettings)
		payments.POST("/dunning/settings",
			middleware.RequireRoles(authz.RoleManager, authz.RoleAdmin),
			paymentsHandler.UpdateDunningSettings)
	}

	// PROPERTIES
	properties := r.Group("/properties")
	{
		properties.POST("/", propertyHandler.Create)
		properties.GET("/", propertyHandler.List)
		properties.GET("/:id", propertyHandler.GetByID)
		properties.PUT("/:id", propertyHandler.Update)
		properties.DELETE("/:id",
			middleware.RequireRoles(authz.RoleManager, authz.RoleAdmin),
			propertyHandler.Delete)
	}

	// TENANTS
	tenants := r.Group("/tenants")
	{
		tenants.POST("/", tenantHandler.Create)
		tenants.GET("/", tenantHandler.List)
		tenants.GET("/:id", tenantHandler.GetByID)
		tenants.PUT("/:id", tenantHandler.Update)
		tenants.DELETE("/:id",
			middleware.RequireRoles(authz.RoleManager, authz.RoleAdmin),
			tenantHandler.Delete)
	}

	// LEASES
	leases := r.Group("/leases")
	{
		leases.POST("/", leaseHandler.Create)
		leases.GET("/", leaseHandler.List)
		leases.GET("/:id", leaseHandler.GetByID)
		leases.POST("/:id/status", leaseHandler.UpdateStatus)
	}

	// INVOICES
	invoices := r.Group("/invoices")
	{
		invoices.POST("/", invoiceHandler.Create)
		invoices.GET("/", invoiceHandler.List)
		invoices.GET("/:id", invoiceHandler.GetByID)
		invoices.POST("/:id/pay", invoiceHandler.MarkPaid)
		invoices.POST("/:id/payment-intent", invoiceHandler.CreatePaymentIntent)
		invoices.GET("/:id/pdf", invoiceHandler.DownloadPDF)
	}

	// WORK ORDERS
	workOrders := r.Group("/work-orders",
		middleware.RequireRoles(authz.RoleMaintenance, authz.RoleManager, authz.RoleAdmin),
	)
	{
		workOrders.POST("/", workOrderHandler.Create)
		workOrders.GET("/", workOrderHandler.List)
		workOrders.GET("/:id", workOrderHandler.GetByID)
		workOrders.POST("/:id/status", workOrderHandler.UpdateStatus)
		workOrders.POST("/:id/assign", workOrderHandler.AssignVendor)
	}

	// VENDORS
	vendors := r.Group("/vendors",
		middleware.RequireRoles(authz.RoleMaintenance, authz.RoleManager, authz.RoleAdmin),
	)
	{
		vendors.POST("/", workOrderHandler.CreateVendor)
		vendors.GET("/", workOrderHandler.ListVendors)
	}

	// REPORTS
	reports := r.Group("/reports",
		middleware.RequireRoles(authz.RoleAccounting, authz.RoleManager, authz.RoleAdmin),
	)
	{
		reports.GET("/summary", reportHandler.Summary)
		reports.GET("/ledger/export", reportHandler.ExportLedger)
	}

	return r
}
