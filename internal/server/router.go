// Package server assembles the HTTP router: services, handlers, middleware
// and the route table.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "financetracker/internal/docs" // swagger docs
	"financetracker/internal/handlers"
	"financetracker/internal/middleware"
	"financetracker/internal/respond"
	"financetracker/internal/services"
	"financetracker/internal/xero"
)

// Deps are the external collaborators the router is built from.
type Deps struct {
	DB            *gorm.DB
	Converter     services.CurrencyConverter
	InvoiceSource xero.InvoiceSource
	BaseCurrency  string
	JWTSecret     string
}

// NewRouter wires services and handlers over deps and registers every route
// under /api. Mutating routes require a bearer token.
func NewRouter(deps Deps) *gin.Engine {
	db := deps.DB

	// Services
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db, deps.Converter)
	invoiceService := services.NewInvoiceService(db, deps.BaseCurrency)
	linkService := services.NewLinkService(db)
	syncService := services.NewSyncService(db, deps.InvoiceSource, deps.BaseCurrency)
	auditService := services.NewAuditService(db)

	// Handlers
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, linkService, auditService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, linkService, syncService, auditService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"status": "ok"}, "")
	})

	requireAuth := middleware.AuthMiddleware(deps.JWTSecret)

	transactions := api.Group("/transactions")
	transactions.GET("", transactionHandler.GetAllTransactions)
	transactions.POST("", requireAuth, transactionHandler.CreateTransaction)
	transactions.GET("/balance", transactionHandler.GetCategoryBalances)
	transactions.GET("/:id/invoices", transactionHandler.GetTransactionInvoices)

	api.GET("/categories", categoryHandler.GetAllCategories)

	invoices := api.Group("/invoices")
	invoices.GET("", invoiceHandler.GetAllInvoices)
	invoices.POST("", requireAuth, invoiceHandler.CreateInvoice)
	invoices.POST("/sync", requireAuth, invoiceHandler.SyncInvoices)
	invoices.POST("/sync/:xeroId", requireAuth, invoiceHandler.SyncInvoice)
	invoices.GET("/xero/:xeroId", invoiceHandler.GetInvoiceByXeroID)
	invoices.POST("/link-transaction", requireAuth, invoiceHandler.LinkTransaction)
	invoices.DELETE("/unlink-transaction", requireAuth, invoiceHandler.UnlinkTransaction)
	invoices.GET("/:id", invoiceHandler.GetInvoiceByID)
	invoices.PUT("/:id", requireAuth, invoiceHandler.UpdateInvoice)
	invoices.DELETE("/:id", requireAuth, invoiceHandler.DeleteInvoice)
	invoices.GET("/:id/transactions", invoiceHandler.GetInvoiceTransactions)

	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
