package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"quiz-service/internal/config"
	"quiz-service/internal/events"
	"quiz-service/internal/httpapi"
	"quiz-service/internal/logging"
	"quiz-service/internal/opentdb"
	"quiz-service/internal/quiz"
	"quiz-service/internal/quiz/memory"
	"quiz-service/internal/quiz/redisstore"
	"quiz-service/internal/quiz/sqlstore"
)

const (
	shutdownTimeout = 10 * time.Second
	connectTimeout  = 10 * time.Second
	defaultSQLiteDB = "quiz.db"
)

type storage struct {
	quizzes quiz.QuizStore
	answers quiz.AnswerStore
	name    string
	ping    func(ctx context.Context) error
	closer  io.Closer
}

func main() {
	cfg := config.Load()

	addr := flag.String("addr", cfg.Addr, "HTTP listen address")
	store := flag.String("store", string(cfg.StoreDriver), "storage backend: memory, sqlite, postgres or redis")
	dsn := flag.String("dsn", cfg.StoreDSN, "database DSN for the sqlite and postgres backends")
	logLevel := flag.String("log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	flag.Parse()

	cfg.Addr = *addr
	cfg.StoreDriver = config.StoreDriver(*store)
	cfg.StoreDSN = *dsn
	cfg.LogLevel = *logLevel

	logger, logCloser, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("quiz-service stopped", "error", err)
		_ = logCloser.Close()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer stores.closer.Close()
	logger.Info("storage ready", "store", stores.name)

	publishers := events.Fanout{events.NewLogPublisher(logger.With("component", "events"))}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return err
		}
		defer amqpPublisher.Close()
		publishers = append(publishers, amqpPublisher)
		logger.Info("publishing events to amqp", "exchange", amqpPublisher.Exchange())
	}

	opts := quiz.Options{
		Events:      publishers,
		OptionCount: cfg.OptionCount,
		Logger:      logger,
	}
	if cfg.ImportEnabled {
		importer := opentdb.NewClientWithURL(cfg.OpenTDBURL, &http.Client{Timeout: cfg.RequestTimeout})
		opts.Fetcher = importer.FetchQuestions
	}
	service := quiz.NewService(stores.quizzes, stores.answers, opts)

	server := &http.Server{
		Addr: cfg.Addr,
		Handler: httpapi.NewRouter(service, httpapi.Options{
			Logger:         logger,
			CORSOrigins:    cfg.CORSOrigins,
			RequestTimeout: cfg.RequestTimeout,
			StoreName:      stores.name,
			Ping:           stores.ping,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("quiz-service listening", "addr", cfg.Addr, "option_count", service.OptionCount(), "import_enabled", cfg.ImportEnabled)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

func openStorage(ctx context.Context, cfg config.Config) (storage, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	switch cfg.StoreDriver {
	case config.StoreMemory, "":
		return storage{
			quizzes: memory.NewQuizStore(),
			answers: memory.NewAnswerStore(),
			name:    string(config.StoreMemory),
			closer:  io.NopCloser(nil),
		}, nil
	case config.StoreSQLite, config.StorePostgres:
		driver := sqlstore.DriverSQLite
		dsn := cfg.StoreDSN
		if cfg.StoreDriver == config.StorePostgres {
			driver = sqlstore.DriverPostgres
			if dsn == "" {
				return storage{}, errors.New("STORE_DSN is required for the postgres store")
			}
		} else if dsn == "" {
			dsn = defaultSQLiteDB
		}
		store, err := sqlstore.Open(connectCtx, driver, dsn)
		if err != nil {
			return storage{}, err
		}
		return storage{quizzes: store, answers: store, name: store.String(), ping: store.Ping, closer: store}, nil
	case config.StoreRedis:
		store, err := redisstore.New(connectCtx, redisstore.Config{
			Addr:        cfg.RedisAddr,
			Password:    cfg.RedisPassword,
			DB:          cfg.RedisDB,
			DialTimeout: connectTimeout,
			Timeout:     cfg.RequestTimeout,
		})
		if err != nil {
			return storage{}, err
		}
		return storage{quizzes: store, answers: store, name: store.String(), ping: store.Ping, closer: store}, nil
	default:
		return storage{}, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
