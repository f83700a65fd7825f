package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/txreplay/internal/adapter/csvio"
	adapterhttp "github.com/iho/txreplay/internal/adapter/http"
	"github.com/iho/txreplay/internal/adapter/http/handler"
	"github.com/iho/txreplay/internal/domain"
	"github.com/iho/txreplay/internal/infrastructure/config"
	"github.com/iho/txreplay/internal/infrastructure/logger"
	"github.com/iho/txreplay/internal/infrastructure/metrics"
	"github.com/iho/txreplay/internal/ledger"
	"github.com/iho/txreplay/internal/usecase"
)

var (
	logLevel     string
	logFormat    string
	historyScope string
	shards       int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "txreplay",
		Short:        "Transaction replay engine",
		Long:         `Replays a log of deposits, withdrawals and disputes against per-client accounts and reports the final balances.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (json, console)")

	runCmd := &cobra.Command{
		Use:   "run <input.csv>",
		Short: "Replay a transaction log and print the account summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.Context(), args[0])
		},
	}
	runCmd.Flags().StringVar(&historyScope, "history-scope", "", "History keying scope (client, global)")
	runCmd.Flags().IntVar(&shards, "shards", 0, "Number of replay shards, 1 means sequential")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ledger over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// loadConfig merges environment configuration with flag overrides and
// builds the diagnostic logger. The logger writes to stderr: stdout is
// reserved for the summary CSV.
func loadConfig() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	if historyScope != "" {
		cfg.HistoryScope = historyScope
	}
	if shards > 0 {
		cfg.Shards = shards
	}

	log := logger.New(os.Stderr, logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}).
		With().Str("run_id", ulid.Make().String()).Logger()

	return cfg, log, nil
}

func runReplay(ctx context.Context, path string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	scope, err := ledger.ParseHistoryScope(cfg.HistoryScope)
	if err != nil {
		return fmt.Errorf("history scope %q: %w", cfg.HistoryScope, err)
	}

	input, err := os.Open(path)
	if err != nil {
		return err
	}
	defer input.Close()

	m := metrics.New(nil)
	reporter := logger.NewReporter(log, m)

	var repo usecase.Ledger
	if cfg.Shards > 1 {
		engine := ledger.NewSharded(ctx, cfg.Shards,
			func(tx domain.Transaction, err error) { reporter.Reject(ctx, tx, err) },
			ledger.WithHistoryScope(scope))
		defer engine.Close()
		repo = engine
	} else {
		repo = ledger.NewStore(ledger.WithHistoryScope(scope))
	}

	uc := usecase.NewReplayUseCase(repo, csvio.NewReader(input), csvio.NewWriter(os.Stdout), reporter, m)
	summary, err := uc.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("replay failed")
		return err
	}

	log.Info().
		Int("processed", summary.Processed).
		Int("applied", summary.Applied).
		Int("rejected", summary.Rejected).
		Int("skipped", summary.Skipped).
		Int("accounts", summary.Accounts).
		Int("locked", summary.Locked).
		Dur("elapsed", summary.Elapsed).
		Msg("replay finished")

	return nil
}

func serve(ctx context.Context) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	scope, err := ledger.ParseHistoryScope(cfg.HistoryScope)
	if err != nil {
		return fmt.Errorf("history scope %q: %w", cfg.HistoryScope, err)
	}

	store := ledger.NewSyncStore(ledger.NewStore(ledger.WithHistoryScope(scope)))
	m := metrics.New(nil)

	router := adapterhttp.NewRouter(adapterhttp.RouterConfig{
		TransactionHandler: handler.NewTransactionHandler(store),
		AccountHandler:     handler.NewAccountHandler(store),
		HealthHandler:      handler.NewHealthHandler(),
		Metrics:            m,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("server stopped")
	return nil
}
