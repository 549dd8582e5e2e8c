package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"accountsvc/internal/config"
	"accountsvc/internal/db"
	"accountsvc/internal/events"
	eventkafka "accountsvc/internal/events/kafka"
	"accountsvc/internal/handlers"
	"accountsvc/internal/logger"
	"accountsvc/internal/registry"
	"accountsvc/internal/services"
	"accountsvc/internal/store"
	"accountsvc/internal/store/memory"
	"accountsvc/internal/websocket"
)

type backend struct {
	accounts  services.AccountStore
	movements services.MovementStore
	ledger    services.Ledger
	close     func() error
}

func openBackend(cfg config.Config) (backend, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		st, err := memory.NewStore(cfg.SnowflakeNode)
		if err != nil {
			return backend{}, err
		}
		return backend{
			accounts:  st.Accounts(),
			movements: st.Movements(),
			ledger:    st.Ledger(),
			close:     func() error { return nil },
		}, nil
	case config.BackendPostgres:
		database, err := db.Connect(cfg.DatabaseURL, db.DefaultPoolOptions())
		if err != nil {
			return backend{}, err
		}
		txRunner := db.NewTxRunner(database)
		audit := store.NewAuditStore(database)
		return backend{
			accounts:  store.NewAccountStore(database, txRunner, audit),
			movements: store.NewMovementStore(database),
			ledger:    store.NewLedgerStore(txRunner, audit),
			close:     database.Close,
		}, nil
	default:
		return backend{}, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}

func main() {
	cfg := config.Load()
	stores, err := openBackend(cfg)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer func() { _ = stores.close() }()

	var publisher services.EventPublisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := eventkafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer func() { _ = kafkaPublisher.Close() }()
		publisher = kafkaPublisher
	}

	registryClient := registry.NewClient(registry.Options{
		BaseURL:     cfg.RegistryURL,
		Timeout:     cfg.RegistryTimeout,
		TokenSecret: cfg.RegistryTokenSecret,
		TokenTTL:    cfg.RegistryTokenTTL,
	})
	gate := registry.NewGate(registryClient)
	hub := websocket.NewHub()
	locks := services.NewKeyedLocker()

	accountService := services.NewAccountService(stores.accounts, gate, locks)
	movementService := services.NewMovementService(stores.accounts, stores.movements, stores.ledger, locks, hub, publisher)
	reportService := services.NewReportService(stores.accounts, stores.movements, registryClient)

	handler := handlers.New(cfg, accountService, movementService, reportService, hub)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("account service listening", logger.Fields{
			"addr":     server.Addr,
			"backend":  cfg.StoreBackend,
			"registry": cfg.RegistryURL,
			"env":      cfg.AppEnv,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", err, nil)
	}
}
