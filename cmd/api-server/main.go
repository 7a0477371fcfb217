package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/Alkan41/yakit-takip-api/api/swagger"
	"github.com/Alkan41/yakit-takip-api/internal/handler"
	"github.com/Alkan41/yakit-takip-api/internal/middleware"
	"github.com/Alkan41/yakit-takip-api/internal/models"
	"github.com/Alkan41/yakit-takip-api/internal/repository"
	"github.com/Alkan41/yakit-takip-api/internal/service"
	"github.com/Alkan41/yakit-takip-api/pkg/cache"
	"github.com/Alkan41/yakit-takip-api/pkg/config"
	"github.com/Alkan41/yakit-takip-api/pkg/database"
	"github.com/Alkan41/yakit-takip-api/pkg/gate"
	"github.com/Alkan41/yakit-takip-api/pkg/logger"
	corsmiddleware "github.com/Alkan41/yakit-takip-api/pkg/middleware/cors"
	reqidmiddleware "github.com/Alkan41/yakit-takip-api/pkg/middleware/requestid"
	"github.com/Alkan41/yakit-takip-api/pkg/workbook"
)

// @title Yakıt Takip API
// @version 1.0.0
// @description Fleet fuel record entry and approval backend
// @BasePath /api/v1
// @schemes http

const storeGateKey = "yakit:store-gate"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	wb, err := workbook.Open(cfg.Workbook.Path)
	if err != nil {
		logr.Fatal("failed to open workbook", zap.String("path", cfg.Workbook.Path), zap.Error(err))
	}
	defer wb.Close() //nolint:errcheck
	if err := ensureSheets(wb); err != nil {
		logr.Fatal("failed to prepare workbook sheets", zap.Error(err))
	}

	var cacheRepo repository.CacheRepository
	redisClient, err := connectRedis(cfg)
	if err != nil {
		logr.Fatal("failed to connect redis", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close() //nolint:errcheck
		if cfg.Cache.Enabled {
			cacheRepo = repository.NewCacheRepository(redisClient)
		}
	}

	var auditRepo repository.AuditRepository
	if cfg.AuditDB.Enabled {
		db, err := database.Connect(cfg.AuditDB)
		if err != nil {
			logr.Fatal("failed to connect audit database", zap.Error(err))
		}
		defer db.Close() //nolint:errcheck
		auditRepo = repository.NewAuditRepository(db)
	}

	var storeGate gate.Gate
	if cfg.Gate.UseRedis && redisClient != nil {
		storeGate = gate.NewRedis(redisClient, storeGateKey, cfg.Gate.LockTTL, cfg.Gate.AcquireTimeout)
	} else {
		storeGate = gate.NewLocal(cfg.Gate.AcquireTimeout)
	}

	registry := prometheus.NewRegistry()
	metrics := service.NewMetricsService(registry)
	httpMetrics := middleware.NewHTTPMetrics(registry)

	recordRepo := repository.NewRecordRepository(wb, logr)
	approvalRepo := repository.NewApprovalRepository(wb, logr)
	referenceRepo := repository.NewReferenceRepository(wb)

	recordSvc := service.NewRecordService(recordRepo, referenceRepo, storeGate, auditRepo, cacheRepo, metrics, logr)
	approvalSvc := service.NewApprovalService(recordRepo, approvalRepo, referenceRepo, storeGate, auditRepo, cacheRepo, metrics, logr)
	referenceSvc := service.NewReferenceService(referenceRepo, recordSvc, storeGate, auditRepo, cacheRepo, cfg.Cache.TTL, logr)
	authSvc := service.NewAuthService(referenceRepo, cfg.JWT, logr)
	exportSvc := service.NewExportService(recordSvc)

	rpcHandler := handler.NewRPCHandler(recordSvc, approvalSvc, referenceSvc, logr)
	authHandler := handler.NewAuthHandler(authSvc)
	recordHandler := handler.NewRecordHandler(recordSvc)
	approvalHandler := handler.NewApprovalHandler(approvalSvc)
	referenceHandler := handler.NewReferenceHandler(referenceSvc)
	exportHandler := handler.NewExportHandler(exportSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(httpMetrics.Handler())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/rpc", rpcHandler.Handle)
	api.POST("/auth/login", authHandler.Login)

	admin := api.Group("")
	admin.Use(middleware.JWT(authSvc))
	{
		admin.GET("/panel", referenceHandler.Panel)
		admin.PUT("/references", referenceHandler.BulkUpdate)
		admin.POST("/admins", referenceHandler.AddAdmin)
		admin.DELETE("/admins/:id", referenceHandler.DeleteAdmin)

		admin.GET("/records", recordHandler.List)
		admin.GET("/records/search", recordHandler.Search)
		admin.POST("/records", recordHandler.Create)
		admin.POST("/records/import", recordHandler.Import)
		admin.PUT("/records", recordHandler.BulkReplace)

		admin.GET("/approvals", approvalHandler.ListEditRequests)
		admin.POST("/approvals", approvalHandler.SubmitEditRequest)
		admin.POST("/approvals/:id/approve", approvalHandler.Approve)
		admin.POST("/approvals/:id/reject", approvalHandler.Reject)

		admin.GET("/personnel-approvals", approvalHandler.ListPersonnelRequests)
		admin.POST("/personnel-approvals", approvalHandler.SubmitPersonnelRequest)
		admin.POST("/personnel-approvals/:id/approve", approvalHandler.ApprovePersonnel)
		admin.POST("/personnel-approvals/:id/reject", approvalHandler.RejectPersonnel)

		if cfg.Exports.Enabled {
			admin.GET("/exports/records", exportHandler.Records)
		}
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

func connectRedis(cfg *config.Config) (*redis.Client, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}
	return cache.Connect(cfg.Redis)
}

func ensureSheets(wb *workbook.Workbook) error {
	sheets := []struct {
		name    string
		columns []string
	}{
		{repository.SheetFuelRecords, models.FuelRecordColumns()},
		{repository.SheetAircrafts, models.AircraftColumns()},
		{repository.SheetTankers, models.TankerColumns()},
		{repository.SheetPersonnel, models.PersonnelColumns()},
		{repository.SheetAirports, models.AirportColumns()},
		{repository.SheetAdmins, models.AdminColumns()},
		{repository.SheetApprovalRequests, models.ApprovalRequestColumns()},
		{repository.SheetPersonnelApprovalRequests, models.PersonnelApprovalRequestColumns()},
	}
	for _, s := range sheets {
		if err := wb.EnsureSheet(s.name, s.columns); err != nil {
			return fmt.Errorf("ensure sheet %q: %w", s.name, err)
		}
	}
	return nil
}
