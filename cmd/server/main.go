package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rakshit-singh2/fundraising-backend/internal/config"
	"github.com/rakshit-singh2/fundraising-backend/internal/database"
	"github.com/rakshit-singh2/fundraising-backend/internal/keystore"
	"github.com/rakshit-singh2/fundraising-backend/internal/logger"
	"github.com/rakshit-singh2/fundraising-backend/internal/logic"
	"github.com/rakshit-singh2/fundraising-backend/internal/router"
	"github.com/rakshit-singh2/fundraising-backend/internal/task"
)

func main() {
	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Log)
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	keys := keystore.NewGenerator()

	// 初始化路由
	r := router.Setup(db, keys, cfg)

	// 启动定时任务
	manager, err := task.NewManager(logic.NewProjectLogic(db, keys), cfg)
	if err != nil {
		logger.Fatal("Failed to create task manager: %v", err)
	}
	if err := manager.Start(); err != nil {
		logger.Fatal("Failed to start task manager: %v", err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 启动服务器
	go func() {
		logger.Info("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	manager.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("Server exited")
}
