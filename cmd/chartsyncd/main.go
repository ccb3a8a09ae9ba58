package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/marinerstudio/chartsync/internal/config"
	"github.com/marinerstudio/chartsync/internal/database"
	"github.com/marinerstudio/chartsync/internal/dispatcher"
	"github.com/marinerstudio/chartsync/internal/influx"
	"github.com/marinerstudio/chartsync/internal/layers"
	"github.com/marinerstudio/chartsync/internal/location"
	"github.com/marinerstudio/chartsync/internal/logging"
	"github.com/marinerstudio/chartsync/internal/model/core"
	"github.com/marinerstudio/chartsync/internal/monitor"
	"github.com/marinerstudio/chartsync/internal/overlay"
	"github.com/marinerstudio/chartsync/internal/parser"
	"github.com/marinerstudio/chartsync/internal/pins"
	"github.com/marinerstudio/chartsync/internal/reconcile"
	"github.com/marinerstudio/chartsync/internal/session"
	"github.com/marinerstudio/chartsync/internal/storage"
	"github.com/marinerstudio/chartsync/internal/tiles"
)

// ServiceVersion can be set at build time via ldflags.
var (
	ServiceVersion = "0.1.0"
	BuildDate      = "unknown"

	ServiceName = "chartsyncd"
)

var (
	Logger zerolog.Logger

	SessionStartTime = time.Now()

	dbManager       *database.Manager
	storageBackend  storage.Backend
	influxManager   *influx.Manager
	monitorService  *monitor.Service
	chartSession    *session.Session
	mapSurface      *reconcile.MemorySurface
	tileProvider    *tiles.NOAAProvider
	eventDispatcher *dispatcher.Dispatcher
	cmdParser       *parser.Parser
)

func main() {
	configDir := flag.String("config", ".", "directory containing chartsyncd.cfg.json")
	logLevel := flag.String("loglevel", "", "override the configured log level")
	flag.Parse()

	if err := config.Load(*configDir); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config, using defaults: %v\n", err)
	}
	if *logLevel != "" {
		viper.Set("logLevel", *logLevel)
	}

	if err := setupLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	Logger.Info().
		Str("version", ServiceVersion).
		Str("buildDate", BuildDate).
		Msg("Starting up...")

	if err := setupStorage(); err != nil {
		Logger.Error().Err(err).Msg("Failed to set up storage")
		os.Exit(1)
	}

	setupTelemetry(*configDir)

	if err := setupSession(); err != nil {
		Logger.Error().Err(err).Msg("Failed to set up chart session")
		os.Exit(1)
	}

	if err := setupDispatcher(); err != nil {
		Logger.Error().Err(err).Msg("Failed to set up dispatcher")
		os.Exit(1)
	}

	setupMonitor()

	Logger.Info().Msg("Chart session ready, reading commands from stdin")
	runCommandLoop(os.Stdin)

	shutdown()
}

func setupLogging() error {
	logsDir := viper.GetString("logsDir")
	if _, err := os.Stat(logsDir); os.IsNotExist(err) {
		if err := os.MkdirAll(logsDir, 0755); err != nil {
			return err
		}
	}

	graylogAddr := ""
	if viper.GetBool("graylog.enabled") {
		graylogAddr = viper.GetString("graylog.address")
	}

	logger, err := logging.New(logging.Options{
		Level:          viper.GetString("logLevel"),
		FilePath:       logging.LogFilePath(logsDir, ServiceName, SessionStartTime),
		GraylogAddress: graylogAddr,
	})
	if err != nil {
		return err
	}
	Logger = logger
	return nil
}

func setupStorage() error {
	storageCfg := config.GetStorageConfig()

	if storageCfg.Type != "memory" {
		dbManager = database.NewManager(Logger)
	}

	backend, err := storage.NewBackend(storage.Config{
		Type:        storageCfg.Type,
		SessionName: storageCfg.SessionName,
		SqlitePath:  storageCfg.SqlitePath,
	}, dbManager)
	if err != nil {
		return err
	}
	if err := backend.Init(); err != nil {
		return err
	}
	storageBackend = backend

	Logger.Info().Str("type", storageCfg.Type).Msg("Storage backend initialized")
	return nil
}

func setupTelemetry(configDir string) {
	if !viper.GetBool("influx.enabled") {
		return
	}

	backupPath := filepath.Join(configDir, "chartsync_telemetry.lp.gz")
	influxManager = influx.NewManager(Logger, backupPath)
	if err := influxManager.Connect(); err != nil {
		Logger.Warn().Err(err).Msg("Telemetry disabled")
		influxManager = nil
	}
}

func setupSession() error {
	chartCfg := config.GetChartConfig()

	mapSurface = reconcile.NewMemorySurface(core.Region{
		Center:  location.DefaultFallback,
		LatSpan: session.InitialSpan,
		LonSpan: session.InitialSpan,
	})

	reconciler, err := reconcile.New(mapSurface, logging.NewAdapter(Logger))
	if err != nil {
		return err
	}
	reconciler.NudgeAfterInstall = chartCfg.NudgeAfterInstall

	tileProvider = tiles.NewNOAAProvider()

	chartSession = session.New(session.Dependencies{
		Layers:     layers.New(chartCfg.DefaultLayers),
		Pins:       pins.NewStore(storageBackend, Logger),
		Factory:    overlay.NewFactory(chartCfg.PrimaryOpacity, chartCfg.DetailOpacity),
		Reconciler: reconciler,
		Surface:    mapSurface,
		Backend:    storageBackend,
		Logger:     Logger,
	}, chartCfg.Style, core.ContextPrimary)

	locCfg := config.GetLocationConfig()
	resolver := location.NewResolver(newLocationService(), location.Config{
		Timeout:          locCfg.Timeout,
		PollInterval:     locCfg.PollInterval,
		AdvisoryDuration: locCfg.AdvisoryDuration,
		Fallback:         locCfg.Fallback,
	}, Logger)

	if err := chartSession.Start(context.Background(), resolver); err != nil {
		return err
	}

	handle := tileProvider.CreateOverlay(chartSession.CurrentDescriptor())
	Logger.Info().
		Str("tileTemplate", handle.URLTemplate).
		Msg("Chart session started")
	return nil
}

func setupDispatcher() error {
	cmdParser = parser.New(Logger)

	d, err := dispatcher.New(logging.NewAdapter(Logger))
	if err != nil {
		return err
	}
	registerLifecycleHandlers(d)
	registerChartHandlers(d)
	eventDispatcher = d
	return nil
}

func setupMonitor() {
	if !viper.GetBool("monitor.enabled") {
		return
	}

	monitorService = monitor.NewService(monitor.Dependencies{
		Surface:     mapSurface,
		State:       chartSession,
		Logger:      Logger,
		Influx:      influxManager,
		SessionName: viper.GetString("sessionName"),
		Interval:    time.Duration(viper.GetInt("monitor.intervalMs")) * time.Millisecond,
	})
	if err := monitorService.Start(); err != nil {
		Logger.Error().Err(err).Msg("Failed to start drift monitor")
	}
}

func shutdown() {
	Logger.Info().Msg("Shutting down")

	if monitorService != nil {
		monitorService.Stop()
	}
	if storageBackend != nil {
		if err := storageBackend.Close(); err != nil {
			Logger.Error().Err(err).Msg("Error closing storage backend")
		}
	}
	if dbManager != nil {
		if err := dbManager.Close(); err != nil {
			Logger.Error().Err(err).Msg("Error closing database")
		}
	}
}
