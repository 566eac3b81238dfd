package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"conti/internal/amqp"
	"conti/internal/cli"
	apphttp "conti/internal/http"
	"conti/internal/services"
)

func main() {
	cfg, logger := cli.Bootstrap("api")

	repo := cli.MustSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	// The API stays up without the broker; the worker's drain loop
	// recovers anything recorded while it was away.
	var publisher services.SyncPublisher
	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Warn("AMQP unavailable, transactions will sync via the drain loop", "error", err)
	} else {
		defer amqpClient.Close()
		publisher = amqpClient
	}

	txService := services.NewTransactionService(repo, publisher)
	invoiceService := services.NewInvoiceService(repo)
	reportService := services.NewReportService(repo)

	srv := apphttp.NewServer(":"+cfg.Port, repo, txService, invoiceService, reportService)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting conti server", "port", cfg.Port, "db", cfg.SQLiteDBPath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
