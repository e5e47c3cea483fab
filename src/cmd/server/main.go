package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"
	"github.com/morago/interpreter-ledger/src/internal/adapter/events"
	"github.com/morago/interpreter-ledger/src/internal/adapter/http/controller"
	"github.com/morago/interpreter-ledger/src/internal/adapter/http/middleware"
	"github.com/morago/interpreter-ledger/src/internal/adapter/http/router"
	"github.com/morago/interpreter-ledger/src/internal/adapter/repository/implementations"
	"github.com/morago/interpreter-ledger/src/internal/adapter/repository/memory"
	"github.com/morago/interpreter-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/morago/interpreter-ledger/src/internal/config"
	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/morago/interpreter-ledger/src/internal/logger"
	"github.com/morago/interpreter-ledger/src/internal/usecase/services"
)

type repositories struct {
	accounts     repo_interfaces.AccountRepository
	transactions repo_interfaces.TransactionRepository
	calls        repo_interfaces.CallRecordRepository
	withdrawals  repo_interfaces.WithdrawalRepository
	deposits     repo_interfaces.DepositRepository
	txManager    repo_interfaces.TxManager
	db           *sql.DB
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	if repos.db != nil {
		defer repos.db.Close()
	}

	publisher, err := newPublisher(ctx, cfg)
	if err != nil {
		log.Fatalf("configure event publisher: %v", err)
	}

	ledger := services.NewTransactionService(repos.transactions)
	accountService := services.NewAccountService(repos.accounts, repos.txManager, ledger, publisher)
	callService := services.NewCallRecordService(
		repos.calls,
		repos.accounts,
		repos.txManager,
		ledger,
		services.NewCommissionService(cfg.CommissionPercent),
		publisher,
	)
	withdrawalService := services.NewWithdrawalService(repos.withdrawals, repos.accounts, repos.txManager, ledger, publisher)
	depositService := services.NewDepositService(repos.deposits, repos.accounts, repos.txManager, ledger, publisher)

	var pinger controller.Pinger
	if repos.db != nil {
		pinger = repos.db
	}

	handler := router.New(
		controller.NewHealthController(pinger),
		middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKeyHash),
		controller.NewAccountController(accountService),
		controller.NewTransactionController(ledger),
		controller.NewCallController(callService),
		controller.NewWithdrawalController(withdrawalService),
		controller.NewDepositController(depositService),
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http server starting", logger.Fields{
			"port":    cfg.HTTPPort,
			"storage": cfg.StorageDriver,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", err, nil)
		return
	}
	logger.Info("http server stopped", nil)
}

func openRepositories(ctx context.Context, cfg config.Config) (repositories, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		store := memory.NewStore()
		return repositories{
			accounts:     memory.NewAccountRepository(store),
			transactions: memory.NewTransactionRepository(store),
			calls:        memory.NewCallRecordRepository(store),
			withdrawals:  memory.NewWithdrawalRepository(store),
			deposits:     memory.NewDepositRepository(store),
			txManager:    store,
		}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := implementations.Open(connectCtx, cfg.DatabaseDSN, implementations.PoolConfig{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxOpenConns / 2,
		ConnMaxIdleTime: 5 * time.Minute,
		ConnMaxLifetime: 30 * time.Minute,
	})
	if err != nil {
		return repositories{}, err
	}

	if err := implementations.RunMigrations(connectCtx, db, cfg.MigrationsDir); err != nil {
		_ = db.Close()
		return repositories{}, err
	}
	log.Println("migrations completed successfully")

	return repositories{
		accounts:     implementations.NewAccountRepository(db),
		transactions: implementations.NewTransactionRepository(db),
		calls:        implementations.NewCallRecordRepository(db),
		withdrawals:  implementations.NewWithdrawalRepository(db),
		deposits:     implementations.NewDepositRepository(db),
		txManager:    implementations.NewTxManager(db),
		db:           db,
	}, nil
}

// newPublisher always logs events and additionally forwards them to SQS
// when a queue is configured.
func newPublisher(ctx context.Context, cfg config.Config) (domain.EventPublisher, error) {
	sinks := []domain.EventPublisher{events.NewLogPublisher()}

	if cfg.EventsQueueURL != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, events.NewSQSPublisher(sqs.NewFromConfig(awsCfg), cfg.EventsQueueURL))
	}

	return events.NewMultiPublisher(sinks...), nil
}
