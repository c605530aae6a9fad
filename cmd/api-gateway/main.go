package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/lgu-benefits-api/api/swagger"
	"github.com/noah-isme/lgu-benefits-api/internal/handler"
	"github.com/noah-isme/lgu-benefits-api/internal/middleware"
	"github.com/noah-isme/lgu-benefits-api/internal/models"
	"github.com/noah-isme/lgu-benefits-api/internal/repository"
	"github.com/noah-isme/lgu-benefits-api/internal/service"
	"github.com/noah-isme/lgu-benefits-api/pkg/cache"
	"github.com/noah-isme/lgu-benefits-api/pkg/config"
	"github.com/noah-isme/lgu-benefits-api/pkg/database"
	"github.com/noah-isme/lgu-benefits-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/lgu-benefits-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/lgu-benefits-api/pkg/middleware/requestid"
)

// @title LGU Benefits API
// @version 1.0.0
// @description Voucher issuance and release for municipal benefit programs
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	rdb, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, stats cache disabled", zap.Error(err))
	}

	r := newRouter(cfg, logr, db, rdb)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}

func newRouter(cfg *config.Config, logr *zap.Logger, db *sqlx.DB, rdb *redis.Client) *gin.Engine {
	validate := validator.New()
	metrics := service.NewMetricsService()

	voucherRepo := repository.NewVoucherRepository(db)
	benefitRepo := repository.NewBenefitRepository(db)
	personRepo := repository.NewPersonRepository(db)
	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	cacheRepo := repository.NewCacheRepository(rdb, logr)

	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Vouchers.StatsCacheTTL, logr, cfg.Vouchers.StatsCacheEnabled && rdb != nil)
	authz := service.NewAuthorizationService(benefitRepo, logr)
	tokens := service.NewTokenService(userRepo, service.TokenConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
		Expiry: cfg.JWT.Expiration,
	})
	voucherSvc := service.NewVoucherService(voucherRepo, benefitRepo, personRepo, authz, activityRepo, validate, logr,
		service.WithVoucherCache(cacheSvc, cfg.Vouchers.StatsCacheTTL),
		service.WithVoucherMetrics(metrics),
		service.WithVoucherListLimit(cfg.Vouchers.ListLimit),
		service.WithVoucherLocation(cfg.Vouchers.Location),
	)
	benefitSvc := service.NewBenefitService(benefitRepo, authz, activityRepo, validate, logr)

	deps := map[string]handler.Pinger{"postgres": db}
	if rdb != nil {
		deps["redis"] = handler.PingerFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	voucherHandler := handler.NewVoucherHandler(voucherSvc)
	benefitHandler := handler.NewBenefitHandler(benefitSvc)
	metricsHandler := handler.NewMetricsHandler(metrics, deps)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction && cfg.Docs.Enabled {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	admins := middleware.RequireRoles(models.RoleSuperuser, models.RoleDepartmentAdmin)

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(tokens))

	vouchers := api.Group("/vouchers")
	vouchers.POST("", voucherHandler.Create)
	vouchers.GET("/pending", voucherHandler.Pending)
	vouchers.GET("/issued", voucherHandler.Issued)
	vouchers.GET("/released", voucherHandler.Released)
	vouchers.POST("/:id/release", voucherHandler.Release)
	vouchers.POST("/:id/cancel", voucherHandler.Cancel)

	benefits := api.Group("/benefits")
	benefits.POST("", admins, benefitHandler.Create)
	benefits.GET("/:id", benefitHandler.Get)
	benefits.PUT("/:id", admins, benefitHandler.Update)
	benefits.POST("/:id/deactivate", admins, benefitHandler.Deactivate)
	benefits.POST("/:id/eligibility-check", voucherHandler.CheckEligibility)
	benefits.GET("/:id/vouchers", voucherHandler.ListForBenefit)
	benefits.GET("/:id/vouchers/pending-release", voucherHandler.PendingForRelease)
	benefits.GET("/:id/vouchers/stats", admins, voucherHandler.Stats)
	benefits.GET("/:id/vouchers/export", admins, voucherHandler.Export)

	api.GET("/people/:id/vouchers", voucherHandler.ListForPerson)

	return r
}
