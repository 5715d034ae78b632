package router

import (
	"net/http"

	"ledgerboard/api"
	"ledgerboard/config"
	_ "ledgerboard/docs"
	"ledgerboard/middleware"
	"ledgerboard/store"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, st *store.Store) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 写接口按客户端 IP 限流
	limit := middleware.RateLimit(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)

	v1 := r.Group("/api/v1")
	{
		accountHandler := api.NewAccountHandler(st)
		v1.GET("/accounts", accountHandler.List)
		v1.GET("/accounts/:id", accountHandler.Get)
		v1.GET("/accounts/:id/balance", accountHandler.Balance)
		v1.POST("/accounts", limit, accountHandler.Create)
		v1.PUT("/accounts/:id", limit, accountHandler.Update)
		v1.DELETE("/accounts/:id", limit, accountHandler.Delete)
		v1.GET("/balance/total", accountHandler.TotalBalance)

		categoryHandler := api.NewCategoryHandler(st)
		v1.GET("/categories", categoryHandler.List)
		v1.GET("/categories/:id", categoryHandler.Get)
		v1.GET("/categories/:id/total", categoryHandler.Total)
		v1.POST("/categories", limit, categoryHandler.Create)
		v1.PUT("/categories/:id", limit, categoryHandler.Update)
		v1.DELETE("/categories/:id", limit, categoryHandler.Delete)

		transactionHandler := api.NewTransactionHandler(st)
		v1.GET("/transactions", transactionHandler.List)
		v1.GET("/transactions/:id", transactionHandler.Get)
		v1.POST("/transactions", limit, transactionHandler.Create)
		v1.PUT("/transactions/:id", limit, transactionHandler.Update)
		v1.DELETE("/transactions/:id", limit, transactionHandler.Delete)

		budgetHandler := api.NewBudgetHandler(st)
		v1.GET("/budgets", budgetHandler.List)
		v1.GET("/budgets/progress", budgetHandler.Progress)
		v1.GET("/budgets/:id", budgetHandler.Get)
		v1.POST("/budgets", limit, budgetHandler.Create)
		v1.PUT("/budgets/:id", limit, budgetHandler.Update)
		v1.DELETE("/budgets/:id", limit, budgetHandler.Delete)

		// 报表
		reportHandler := api.NewReportHandler(st)
		reports := v1.Group("/reports")
		{
			reports.GET("/summary", reportHandler.Summary)
			reports.GET("/monthly", reportHandler.Monthly)
			reports.GET("/categories", reportHandler.Categories)
			reports.GET("/balance-evolution", reportHandler.BalanceEvolution)
		}

		v1.GET("/dashboard", api.NewDashboardHandler(st).Get)

		// 导出
		exportHandler := api.NewExportHandler(st)
		export := v1.Group("/export")
		{
			export.GET("/csv", exportHandler.ExportCSV)
			export.GET("/json", exportHandler.ExportJSON)
			export.GET("/excel", exportHandler.ExportExcel)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		snap := st.Snapshot()
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"accounts":     len(snap.Accounts),
			"categories":   len(snap.Categories),
			"transactions": len(snap.Transactions),
			"budgets":      len(snap.Budgets),
		})
	})

	return r
}

// CORSMiddleware 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
