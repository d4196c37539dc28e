package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/GermanFOSSIL/candapp/internal/candapp/export"
	"github.com/GermanFOSSIL/candapp/internal/candapp/handler"
	"github.com/GermanFOSSIL/candapp/internal/candapp/render"
	"github.com/GermanFOSSIL/candapp/internal/candapp/service"
	"github.com/GermanFOSSIL/candapp/internal/candapp/store"
	"github.com/GermanFOSSIL/candapp/internal/config"
	"github.com/GermanFOSSIL/candapp/internal/middleware"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting candapp service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// 打开工作簿存储
	if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
		zapLogger.Fatal("Failed to create data dir", zap.Error(err))
	}
	lockStore, err := store.OpenLockStore(cfg.Storage.LockPath())
	if err != nil {
		zapLogger.Fatal("Failed to open lock workbook", zap.Error(err))
	}
	simOpsStore, err := store.OpenSimOpsStore(cfg.Storage.SimOpsPath())
	if err != nil {
		zapLogger.Fatal("Failed to open simops workbook", zap.Error(err))
	}
	itembook := store.NewItembook()

	// 组装服务
	renderer := render.New(cfg.Assets.LogoPath, cfg.Assets.WarningIconPath)
	exporter := export.New(renderer)

	authSvc := service.NewAuthService(cfg)
	lockSvc := service.NewLockService(lockStore, renderer, exporter)
	simOpsSvc := service.NewSimOpsService(simOpsStore, exporter)
	formSvc := service.NewFormService(renderer, lockStore, cfg.Server.PublicURL)
	itrSvc := service.NewITRService(itembook, renderer)

	handlers := handler.NewHandlers(authSvc, lockSvc, simOpsSvc, formSvc, itrSvc, cfg)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// 注册路由
	registerRoutes(router, handlers, cfg)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	// 健康检查
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 版本信息
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	// API v1
	v1 := r.Group("/api/v1")
	{
		// 公开路由
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
		{
			authorized.GET("/auth/me", h.Auth.Me)

			users := authorized.Group("/users")
			users.Use(middleware.RequireRole("admin"))
			{
				users.GET("", h.Auth.ListUsers)
				users.POST("", h.Auth.CreateUser)
			}

			locks := authorized.Group("/locks")
			{
				locks.GET("", h.Lock.List)
				locks.GET("/summary", h.Lock.Summary)
				locks.GET("/export", middleware.RequireRole("admin", "operador"), h.Lock.Export)
				locks.GET("/:index", h.Lock.Get)
				locks.GET("/:index/card", h.Lock.Card)
				locks.POST("", middleware.RequireRole("admin", "operador"), h.Lock.Create)
				locks.PUT("/:index", middleware.RequireRole("admin"), h.Lock.Update)
				locks.DELETE("/:index", middleware.RequireRole("admin"), h.Lock.Delete)
			}

			simops := authorized.Group("/simops")
			{
				simops.GET("", h.SimOps.List)
				simops.GET("/export", middleware.RequireRole("admin", "operador"), h.SimOps.Export)
				simops.GET("/:index", h.SimOps.Get)
				simops.POST("", middleware.RequireRole("admin", "operador"), h.SimOps.Create)
				simops.PUT("/:index", middleware.RequireRole("admin"), h.SimOps.Update)
				simops.DELETE("/:index", middleware.RequireRole("admin"), h.SimOps.Delete)
			}

			forms := authorized.Group("/forms")
			{
				forms.GET("/schema", h.Form.Schema)
				forms.POST("/schema", h.Form.UploadSchema)
				forms.POST("/render", h.Form.Render)
				forms.POST("/register", middleware.RequireRole("admin", "operador"), h.Form.Register)
			}

			itembook := authorized.Group("/itembook")
			{
				itembook.GET("", h.ITR.List)
				itembook.POST("/:itemId/itr", h.ITR.Generate)
			}
		}
	}
}
