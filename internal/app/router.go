// Package app assembles the HTTP router from services, handlers and middleware.
package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"finanmind/internal/config"
	"finanmind/internal/database"
	_ "finanmind/internal/docs" // Import swagger docs
	"finanmind/internal/handlers"
	"finanmind/internal/logger"
	"finanmind/internal/middleware"
	"finanmind/internal/period"
	"finanmind/internal/services"
	"finanmind/internal/validator"
)

// NewRouter wires every service and handler onto a Gin engine backed by db.
func NewRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	validator.Register()

	// Initialize services
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db, categoryService)
	goalService := services.NewGoalService(db, time.Now)
	reportService := services.NewReportService(db, time.Now, period.LabelerFor(cfg.ReportLocale))
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	profileHandler := handlers.NewProfileHandler(userService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	investmentHandler := handlers.NewInvestmentHandler(transactionService, reportService)
	goalHandler := handlers.NewGoalHandler(goalService, auditService)
	reportHandler := handlers.NewReportHandler(reportService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", health(db))

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	user := protected.Group("/user")
	user.GET("/profile", profileHandler.GetProfile)
	user.PUT("/profile", profileHandler.UpdateProfile)
	user.DELETE("/profile", profileHandler.DeleteProfile)
	user.PUT("/password", profileHandler.ChangePassword)

	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	transactions := protected.Group("/transactions")
	transactions.GET("", transactionHandler.GetUserTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	investments := protected.Group("/investments")
	investments.GET("", investmentHandler.GetInvestments)
	investments.GET("/summary", investmentHandler.GetInvestmentSummary)
	investments.POST("", investmentHandler.CreateInvestment)
	investments.PUT("/:id", investmentHandler.UpdateInvestment)
	investments.DELETE("/:id", investmentHandler.DeleteInvestment)

	goals := protected.Group("/goals")
	goals.GET("", goalHandler.GetUserGoals)
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("/:id", goalHandler.GetGoalByID)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	ledger := protected.Group("/goal-transactions")
	ledger.POST("", goalHandler.Contribute)
	ledger.GET("/goal/:goal_id", goalHandler.GetGoalLedger)
	ledger.GET("/report/:goal_id", goalHandler.GetGoalReport)

	protected.GET("/dashboard", reportHandler.GetDashboard)
	protected.GET("/reports", reportHandler.GetReport)

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

// health reports whether a pooled connection can reach the store.
func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := database.Ping(c.Request.Context(), db); err != nil {
			logger.With("request_id", c.GetString(middleware.RequestIDKey)).Errorw("health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
