package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"ledgerboard/aggregator"
	"ledgerboard/config"
	"ledgerboard/database"
	"ledgerboard/logger"
	"ledgerboard/models"
	"ledgerboard/router"
	"ledgerboard/service"
	"ledgerboard/store"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

// @title 账本聚合 API
// @version 1.0
// @description 个人账本服务：账户、交易、类别、预算的管理，以及余额、预算进度、报表与导出
// @host localhost:8080
// @BasePath /

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 8080 或 :8080")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Println("ledgerboard v1.0.0")
		return
	}

	// .env 中的变量作为环境变量覆盖配置，文件不存在时忽略
	_ = godotenv.Load()

	// 加载配置（内置配置 + 可选的外部配置覆盖）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Server.Mode); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.L()

	// 命令行参数覆盖端口配置
	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Infof("命令行指定端口: %s", port)
	}

	config.PrintConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Errorf("服务异常退出: %v", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.L()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	notifier, err := newNotifier(cfg)
	if err != nil {
		return err
	}
	defer notifier.Close()
	st.Subscribe(service.ChangeListener(notifier))
	alerter := service.NewBudgetAlerter(&cfg.Email)
	defer alerter.Wait()
	st.Subscribe(alerter.Listener())

	store.Init(st)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router.SetupRouter(cfg, store.Current()),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Infof("==========================================")
	log.Infof("  💰 账本服务已启动")
	log.Infof("==========================================")
	log.Infof("  Swagger:  http://localhost%s/swagger/index.html", cfg.Server.Port)
	log.Infof("  API接口:  http://localhost%s/api/v1/", cfg.Server.Port)
	log.Infof("==========================================")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("服务器启动失败: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Infof("正在关闭服务器...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// openStore 启用数据库时从 MySQL 加载，否则使用内存账本
func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	first, err := cfg.FirstWeekday()
	if err != nil {
		return nil, err
	}
	aggregator.RegisterWindowResolver(models.PeriodWeekly, aggregator.WeekWindowFrom(first))
	clock := store.WithClock(func() time.Time { return time.Now().In(loc) })

	var st *store.Store
	if cfg.Database.Enabled {
		db, err := database.Init(cfg)
		if err != nil {
			return nil, fmt.Errorf("数据库初始化失败: %w", err)
		}
		st, err = store.Open(ctx, database.NewRepository(db), clock)
		if err != nil {
			return nil, fmt.Errorf("加载账本失败: %w", err)
		}
	} else {
		st = store.New(clock)
	}

	if err := st.SeedCategories(ctx); err != nil {
		return nil, err
	}
	if cfg.Ledger.SeedDemo {
		if err := st.SeedDemo(ctx); err != nil {
			return nil, err
		}
	}
	return st, nil
}

func newNotifier(cfg *config.Config) (service.Notifier, error) {
	if !cfg.AMQP.Enabled {
		return service.NopNotifier{}, nil
	}
	n, err := service.NewAMQPNotifier(&cfg.AMQP)
	if err != nil {
		return nil, err
	}
	logger.L().Infof("变更事件将发布到 %s/%s", cfg.AMQP.Exchange, cfg.AMQP.Queue)
	return n, nil
}
