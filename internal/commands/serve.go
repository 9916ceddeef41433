package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/klabast/wb-services/ferien-checker/internal/app"
	"github.com/klabast/wb-services/ferien-checker/internal/compare"
	"github.com/klabast/wb-services/ferien-checker/internal/logging"
)

const (
	serveUsage   = "serve"
	serveShort   = "Start the comparison web service"
	serveLong    = "This command starts the HTTP service answering DE/DK holiday comparisons."
	serveExample = "ferien-checker serve --port 8080 [--edit]"

	shutdownTimeout = 10 * time.Second
)

var (
	// ServeCmd is the serve command.
	ServeCmd = &cobra.Command{
		Use:     serveUsage,
		Short:   serveShort,
		Long:    serveLong,
		Example: serveExample,
		RunE:    executeServe,
	}
	// flagPort overrides listen_port.
	flagPort int
	// flagEdit enables edit mode regardless of the config file.
	flagEdit bool
)

// nolint:gochecknoinits // cobra's standard way to initialize flags
func init() {
	ServeCmd.Flags().IntVarP(&flagPort, "port", "p", 0, "port to listen on (overrides listen_port)")
	ServeCmd.Flags().BoolVar(&flagEdit, "edit", false, "enable edit mode (default is serve mode)")
}

func executeServe(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagPort != 0 {
		cfg.ListenPort = flagPort
	}
	if flagEdit {
		cfg.EditMode = true
	}
	if cfg.EditMode && cfg.DataDir == "" {
		return errors.New("edit mode requires data_dir")
	}

	// Load and validate auth credentials (if edit mode)
	var creds *app.Credentials
	if cfg.EditMode {
		if creds, err = app.LoadCredentials(cfg.AuthFile); err != nil {
			return fmt.Errorf("failed to load auth credentials: %w", err)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	registry, loaders, store, err := loadRegistry(ctx, cfg)
	if err != nil {
		return err
	}
	source, err := buildSource(cfg, registry)
	if err != nil {
		return err
	}

	s := app.NewServer(registry, compare.New(source), app.Defaults{
		From:   cfg.DefaultFrom,
		To:     cfg.DefaultTo,
		Region: cfg.DefaultRegion,
		Year:   cfg.DefaultYear,
	})
	s.EditMode = cfg.EditMode
	s.Store = store
	s.Loaders = loaders
	s.Auth = creds

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ListenPort),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Spawn a goroutine and listen for a signal.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-signalChan
		logging.Info("received %s, shutting down", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Error("shutdown: %v", err)
		}
	}()

	mode := app.ModeServe
	if cfg.EditMode {
		mode = app.ModeEdit
	}
	logging.Info("Starting Ferien-Checker in %s mode on http://localhost:%d", mode, cfg.ListenPort)
	logging.Info("Calendar source: %s, loaded years: %v", cfg.Source, registry.Years())
	for _, l := range loaders {
		logging.Debug("dataset loader: %s", l.Name())
	}

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
