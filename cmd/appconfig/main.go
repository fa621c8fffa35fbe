package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/bigboy/appconfig/internal/application"
	"github.com/bigboy/appconfig/internal/client"
	"github.com/bigboy/appconfig/internal/config"
	"github.com/bigboy/appconfig/internal/locale"
	"github.com/bigboy/appconfig/internal/logging"
	"github.com/bigboy/appconfig/internal/storage"
	"github.com/bigboy/appconfig/internal/table"
)

var signalNotify = signal.Notify

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run parses args, executes the selected command and returns its error so
// deferred cleanup always runs before the process exits.
func run(args []string) (err error) {
	kingpinApp := kingpin.New("appconfig", "BigBoy client configuration - serves the endpoint, storage keys, label dictionaries and palette used by the mobile app")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	buildMode := kingpinApp.Flag("mode", "Build mode (development or production)").String()
	devURL := kingpinApp.Flag("dev-url", "Backend base URL for development builds").String()
	prodURL := kingpinApp.Flag("prod-url", "Backend base URL for production builds").String()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()

	serveCmd := kingpinApp.Command("serve", "Serve the configuration table over HTTP").Default()
	port := serveCmd.Flag("port", "HTTP port exposed by the service").String()
	rateLimitRPSFlag := serveCmd.Flag("rate-limit-rps", "Requests per second allowed per client (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := serveCmd.Flag("rate-limit-burst", "Burst capacity per client (set 0 to disable)").Default("-1").Int()

	showCmd := kingpinApp.Command("show", "Print the resolved configuration table")
	format := showCmd.Flag("format", "Output format").Default("yaml").Enum("yaml", "json")
	lang := showCmd.Flag("lang", "Label language").Default("vi").String()

	pingCmd := kingpinApp.Command("ping", "Check backend health at the active endpoint")
	storePath := pingCmd.Flag("store", "SQLite file holding the client session").String()
	timeout := pingCmd.Flag("timeout", "Overall request timeout").Default("10s").Duration()

	command, err := kingpinApp.Parse(args)
	if err != nil {
		return err
	}

	overrides := &config.CLIOverrides{
		ConfigFile:     *configFile,
		Port:           port,
		BuildMode:      buildMode,
		DevelopmentURL: devURL,
		ProductionURL:  prodURL,
		LogLevel:       logLevel,
		StorePath:      storePath,
	}

	if *rateLimitRPSFlag >= 0 {
		overrides.RateLimitRPS = rateLimitRPSFlag
	}

	if *rateLimitBurstFlag >= 0 {
		overrides.RateLimitBurst = rateLimitBurstFlag
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		if err != nil {
			logger.Error("command failed", zap.String("command", command), zap.Error(err))
		}
		_ = logger.Sync()
	}()

	switch command {
	case showCmd.FullCommand():
		tbl, err := cfg.Table()
		if err != nil {
			return fmt.Errorf("failed to build configuration table: %w", err)
		}
		if err := show(os.Stdout, tbl, *format, locale.Match(*lang)); err != nil {
			return fmt.Errorf("failed to print configuration: %w", err)
		}
		return nil

	case pingCmd.FullCommand():
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		defer cancel()
		if err := ping(ctx, cfg, logger); err != nil {
			return fmt.Errorf("backend health check failed: %w", err)
		}
		return nil

	default:
		app, err := application.New(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		if err := app.Start(); err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}

		shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
		return nil
	}
}

// show writes the table snapshot in the requested format.
func show(w io.Writer, tbl table.Table, format string, lang language.Tag) error {
	snap := tbl.Snapshot(lang)
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// ping calls the backend health check through the API client.
func ping(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	tbl, err := cfg.Table()
	if err != nil {
		return err
	}

	var store storage.Storage = storage.NewMemoryStorage(tbl.StorageKeys())
	if cfg.StorePath != "" {
		db, err := storage.OpenSQLite(cfg.StorePath, tbl.StorageKeys())
		if err != nil {
			return err
		}
		defer db.Close()
		store = db
	}

	c := client.New(tbl.Endpoint(), store, tbl.StorageKeys(), logger)
	hs, err := c.Health(ctx)
	if err != nil {
		return err
	}
	logger.Info("backend healthy",
		zap.String("base_url", tbl.Endpoint().BaseURL),
		zap.String("status", hs.Status),
		zap.String("version", hs.Version),
	)
	return nil
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
