package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
	"github.com/Abdulaziz20007/Phono-Backend/internal/config"
	httpx "github.com/Abdulaziz20007/Phono-Backend/internal/http"
	"github.com/Abdulaziz20007/Phono-Backend/internal/http/handlers"
	"github.com/Abdulaziz20007/Phono-Backend/internal/http/middleware"
	"github.com/Abdulaziz20007/Phono-Backend/internal/infrastructure/auth"
	"github.com/Abdulaziz20007/Phono-Backend/internal/infrastructure/database"
	"github.com/Abdulaziz20007/Phono-Backend/internal/infrastructure/notifications"
	"github.com/Abdulaziz20007/Phono-Backend/internal/infrastructure/repositories"
	"github.com/Abdulaziz20007/Phono-Backend/internal/logging"
	"github.com/Abdulaziz20007/Phono-Backend/internal/metrics"
	"github.com/Abdulaziz20007/Phono-Backend/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config
	Log    *zap.Logger

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	Metrics     *metrics.Metrics
	Audit       domain.AuditLogger

	// Repositories
	UserRepo  domain.UserRepository
	AdminRepo domain.AdminRepository
	OTPRepo   domain.OTPRepository
	BlockRepo domain.BlockRepository

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	OTPSvc          domain.OTPService
	AuthSvc         domain.AuthService
	AdminSvc        domain.AdminService
	BlockSvc        domain.BlockService
	PolicySvc       domain.PolicyService
	Resolver        domain.IdentityResolver

	Router *gin.Engine
}

// openDatabase is swapped in tests
var openDatabase = database.Open

// NewContainer connects to Postgres and Redis and wires everything on top.
// Whatever was opened is closed again if a later step fails.
func NewContainer(ctx context.Context, cfg *config.Config, log *zap.Logger) (_ *Container, err error) {
	var closers []func() error
	defer func() {
		if err == nil {
			return
		}
		for i := len(closers) - 1; i >= 0; i-- {
			if cerr := closers[i](); cerr != nil {
				log.Warn("cleanup after failed start", zap.Error(cerr))
			}
		}
	}()

	db, err := openDatabase(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	closers = append(closers, func() error { return closeDB(db) })
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}

	rdb, err := database.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}
	closers = append(closers, rdb.Close)

	sms, err := notifications.New(cfg.SMS, log)
	if err != nil {
		return nil, err
	}

	return NewContainerWith(cfg, log, db, rdb, sms)
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewContainerWith wires the services over already opened stores. The
// database must be migrated.
func NewContainerWith(cfg *config.Config, log *zap.Logger, db *gorm.DB, rdb *redis.Client, sms domain.NotificationService) (*Container, error) {
	c := &Container{
		Config:          cfg,
		Log:             log,
		DB:              db,
		RedisClient:     rdb,
		NotificationSvc: sms,
		Metrics:         metrics.New(),
		Audit:           logging.NewAuditLogger(log),
	}

	c.initRepositories()
	if err := c.initServices(); err != nil {
		return nil, err
	}
	if err := c.initRouter(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.AdminRepo = repositories.NewAdminRepository(c.DB)
	c.OTPRepo = repositories.NewOTPRepository(c.DB)
	c.BlockRepo = repositories.NewBlockRepository(c.DB)
}

func (c *Container) initServices() error {
	cfg := c.Config

	c.PasswordSvc = auth.NewPasswordService(cfg.BcryptCost)
	tokenSvc, err := auth.NewJWTService(auth.Secrets{
		UserAccess:   cfg.JWT.UserAccessSecret,
		UserRefresh:  cfg.JWT.UserRefreshSecret,
		AdminAccess:  cfg.JWT.AdminAccessSecret,
		AdminRefresh: cfg.JWT.AdminRefreshSecret,
	}, cfg.JWT.Issuer, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	if err != nil {
		return fmt.Errorf("token service: %w", err)
	}
	c.TokenSvc = tokenSvc

	c.OTPSvc = services.NewOTPService(c.OTPRepo, c.NotificationSvc, c.RedisClient, services.OTPConfig{
		Length:       cfg.OTP.Length,
		TTL:          cfg.OTP.TTL,
		MaxAttempts:  cfg.OTP.MaxAttempts,
		ResendWindow: cfg.OTP.ResendWindow,
	}, c.Log)

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.AdminRepo,
		c.BlockRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.OTPSvc,
		c.Audit,
		c.Metrics,
		services.AuthConfig{ReplacePending: cfg.Registration.ReplacePending},
	)
	c.AdminSvc = services.NewAdminService(c.AdminRepo, c.PasswordSvc, c.Audit)
	c.BlockSvc = services.NewBlockService(c.BlockRepo, c.UserRepo, c.Audit)

	cas, err := auth.NewCasbinService(c.DB)
	if err != nil {
		return err
	}
	c.PolicySvc = services.NewPolicyService(cas.E, cfg.Policy.StrictUndeclared, c.Log)
	c.Resolver = services.NewSessionResolver(c.TokenSvc, nil)
	return nil
}

func (c *Container) initRouter() error {
	router, err := httpx.BuildRouter(httpx.RouterDeps{
		Handlers: httpx.Handlers{
			Auth: handlers.NewAuthHandlers(c.AuthSvc, handlers.CookieConfig{
				MaxAge: c.Config.Cookie.MaxAge,
				Secure: c.Config.Cookie.Secure,
				Domain: c.Config.Cookie.Domain,
			}, c.Log),
			Admins:   handlers.NewAdminHandlers(c.AdminSvc, c.Log),
			Blocks:   handlers.NewBlockHandlers(c.BlockSvc, c.Log),
			Policies: handlers.NewPolicyHandlers(c.PolicySvc, c.Log),
		},
		Gate:           middleware.NewSessionGate(c.PolicySvc, c.Resolver, c.Audit, c.Metrics, c.Log),
		Policy:         c.PolicySvc,
		Metrics:        c.Metrics,
		Log:            c.Log,
		AllowedOrigins: c.Config.CORS.AllowedOrigins,
	})
	if err != nil {
		return fmt.Errorf("router: %w", err)
	}
	c.Router = router
	return nil
}

// Bootstrap provisions the configured creator admin, if any
func (c *Container) Bootstrap(ctx context.Context) error {
	b := c.Config.Bootstrap
	if b.CreatorPhone == "" {
		return nil
	}
	admin, err := c.AdminSvc.EnsureCreator(ctx, b.CreatorPhone, b.CreatorPassword)
	if err != nil {
		return fmt.Errorf("bootstrap creator: %w", err)
	}
	c.Log.Info("creator admin ready", zap.Uint("admin_id", admin.ID), zap.Bool("is_creator", admin.IsCreator))
	return nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		_ = c.RedisClient.Close()
	}

	if c.DB != nil {
		return closeDB(c.DB)
	}

	return nil
}
