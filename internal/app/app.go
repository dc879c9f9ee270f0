package app

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/kanishkarathore/mosspay-project/internal/config"
	"github.com/kanishkarathore/mosspay-project/internal/db"
	httpdelivery "github.com/kanishkarathore/mosspay-project/internal/delivery/http"
	"github.com/kanishkarathore/mosspay-project/internal/logging"
	"github.com/kanishkarathore/mosspay-project/internal/metrics"
	"github.com/kanishkarathore/mosspay-project/internal/refdata"
	"github.com/kanishkarathore/mosspay-project/internal/repository/memory"
	accountrepo "github.com/kanishkarathore/mosspay-project/internal/repository/postgres/account"
	authrepo "github.com/kanishkarathore/mosspay-project/internal/repository/postgres/auth"
	billrepo "github.com/kanishkarathore/mosspay-project/internal/repository/postgres/bill"
	itemrepo "github.com/kanishkarathore/mosspay-project/internal/repository/postgres/item"
)

type App struct {
	f    *fiber.App
	cfg  config.Config
	log  *zap.Logger
	pool *pgxpool.Pool
}

func New() *App {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	tables, err := refdata.Load(cfg.FootprintTablePath)
	if err != nil {
		logger.Fatal("load reference tables", zap.Error(err))
	}

	a := &App{cfg: cfg, log: logger}

	var stores httpdelivery.Stores
	switch cfg.StoreDriver {
	case config.DriverMemory:
		mem := memory.NewDB()
		if err := seedDemo(mem, tables); err != nil {
			logger.Fatal("seed demo data", zap.Error(err))
		}
		stores = memoryStores(mem)
		logger.Warn("using in-memory store; data is lost on exit")
	default:
		pool, err := db.NewPool(cfg.DatabaseURL, cfg.DBMaxConns)
		if err != nil {
			logger.Fatal("db connect failed", zap.Error(err))
		}
		if cfg.AutoMigrate {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			err := db.Migrate(ctx, pool)
			cancel()
			if err != nil {
				logger.Fatal("db migrate failed", zap.Error(err))
			}
		}
		a.pool = pool
		stores = postgresStores(pool)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a.f = httpdelivery.NewServer(httpdelivery.Deps{
		Config:   cfg,
		Log:      logger,
		Metrics:  metrics.New(reg),
		Registry: reg,
		Tables:   tables,
		Stores:   stores,
	})
	return a
}

// Logger is the process logger built from LOG_LEVEL.
func (a *App) Logger() *zap.Logger { return a.log }

func (a *App) Run() error {
	defer a.close()
	a.log.Info("listening", zap.String("port", a.cfg.Port), zap.String("store", a.cfg.StoreDriver))
	return a.f.Listen(":" + a.cfg.Port)
}

func (a *App) close() {
	if a.pool != nil {
		a.pool.Close()
	}
	_ = a.log.Sync()
}

func postgresStores(pool *pgxpool.Pool) httpdelivery.Stores {
	bills := billrepo.NewBillRepo(pool)
	return httpdelivery.Stores{
		Auth:     authrepo.NewAuthFinderAdapter(authrepo.NewPrincipalRepo(pool)),
		Catalog:  itemrepo.NewCatalogStoreAdapter(itemrepo.NewItemRepo(pool)),
		Bills:    billrepo.NewBillStoreAdapter(bills, pool),
		Claims:   billrepo.NewClaimStoreAdapter(bills),
		Accounts: accountrepo.NewAccountStoreAdapter(accountrepo.NewAccountRepo(pool)),
	}
}

func memoryStores(mem *memory.DB) httpdelivery.Stores {
	return httpdelivery.Stores{
		Auth:     memory.NewAuthStore(mem),
		Catalog:  memory.NewCatalogStore(mem),
		Bills:    memory.NewBillStore(mem),
		Claims:   memory.NewClaimStore(mem),
		Accounts: memory.NewAccountStore(mem),
	}
}
