package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rakshit-singh2/fundraising-backend/internal/config"
	"github.com/rakshit-singh2/fundraising-backend/internal/handler"
	"github.com/rakshit-singh2/fundraising-backend/internal/keystore"
	"github.com/rakshit-singh2/fundraising-backend/internal/logger"
	"github.com/rakshit-singh2/fundraising-backend/internal/metrics"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, keys keystore.Generator, cfg *config.Config) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(logger.GinMiddleware())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(cfg.Server.CORSOrigins))
	r.Use(metricsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "fundraising-backend",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	expose := cfg.Server.ExposeErrors
	api := r.Group("/api")
	{
		api.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, "Hello, World!")
		})

		// 项目相关路由
		projectHandler := handler.NewProjectHandler(db, keys, expose)
		projects := api.Group("/projects")
		{
			projects.POST("/createProject", projectHandler.CreateProject)
			projects.GET("/getProjectByName/:name", projectHandler.GetProjectByName)
			projects.GET("/getProjectByAddress/:address", projectHandler.GetProjectByAddress)
			projects.GET("/getProjectById/:id", projectHandler.GetProjectById)
			projects.GET("/getAllProjects", projectHandler.GetProjects)
			projects.POST("/assignTokenToProject", projectHandler.AssignToken)
			projects.POST("/withdraw/:projectID", projectHandler.Withdraw)
		}

		// 投资与二级市场路由
		investmentHandler := handler.NewInvestmentHandler(db, expose)
		marketHandler := handler.NewMarketHandler(db, expose)
		investments := api.Group("/investments")
		{
			investments.POST("/createInvestment", investmentHandler.CreateInvestment)
			investments.GET("/getInvestmentByProject/:projectId", investmentHandler.GetInvestmentByProject)
			investments.GET("/getInvestmentByAddress/:address", investmentHandler.GetInvestmentByAddress)
			investments.GET("/getAllInvestment", investmentHandler.GetAllInvestment)
			investments.POST("/sellStakes", marketHandler.SellStakes)
			investments.GET("/getOnSaleInvestmentByProject/:projectID", marketHandler.GetOnSaleInvestmentByProject)
			investments.POST("/buyStakes", marketHandler.BuyStakes)
		}

		returnsHandler := handler.NewReturnsHandler(db, cfg.Returns.Precision, expose)
		returns := api.Group("/returns")
		{
			returns.GET("/investorsOnProject/:projectID", returnsHandler.InvestorsOnProject)
			returns.GET("/investorsClosedProject/:projectID", returnsHandler.InvestorsOnProject)
			returns.GET("/investorsReturns/:projectID", returnsHandler.InvestorsReturns)
		}

		tokenHandler := handler.NewTokenHandler(db, expose)
		api.GET("/tokens/getTokenByAddress/:address", tokenHandler.GetTokenByAddress)
	}

	return r
}

// CORS中间件，origins 为空或包含 "*" 时允许所有来源
func corsMiddleware(origins []string) gin.HandlerFunc {
	allowAll := len(origins) == 0
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = struct{}{}
	}

	return func(c *gin.Context) {
		if allowAll {
			c.Header("Access-Control-Allow-Origin", "*")
		} else if origin := c.GetHeader("Origin"); origin != "" {
			c.Header("Vary", "Origin")
			if _, ok := allowed[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
			}
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// metricsMiddleware 按路由模板统计请求数与耗时，未匹配的路由归入 "unmatched"
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		metrics.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPLatency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
