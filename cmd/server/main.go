package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/api"
	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/config"
	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/metadata"
	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/notify"
	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/snapshot"
	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/state"
	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/storage"
	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/web"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Get the executable's directory for config resolution
	exePath, err := os.Executable()
	if err != nil {
		fmt.Printf("Failed to get executable path: %v\n", err)
		os.Exit(1)
	}
	exeDir := filepath.Dir(exePath)

	// Load YAML configuration
	configPath := filepath.Join(exeDir, "erd-visualizer.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Ensure all data directories exist
	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Printf("Failed to create directories: %v\n", err)
		os.Exit(1)
	}

	// Check if running in embedded mode (frontend built into binary)
	embeddedMode := web.HasEmbeddedFiles()

	// Initialize snapshot storage
	store, closeStore, err := newStore(cfg)
	if err != nil {
		fmt.Printf("Failed to initialize storage: %v\n", err)
		os.Exit(1)
	}
	if closeStore != nil {
		defer closeStore()
	}

	// Initialize metadata provider
	provider := newMetadataProvider(cfg)
	entities, relationships, err := provider.Metadata(context.Background())
	if err != nil {
		fmt.Printf("Failed to load entity metadata: %v\n", err)
		os.Exit(1)
	}

	// Wire up the diagram aggregate
	notifier := notify.New()
	defer notifier.Close()

	diagram := state.NewDiagram(notifier)
	diagram.SetMetadata(entities, relationships)

	// Initialize snapshot manager
	snapshotMgr := snapshot.NewManager(store, diagram, notifier, snapshot.Options{
		MaxSnapshots:  cfg.Snapshots.MaxCount,
		AutoSaveDelay: time.Duration(cfg.Snapshots.AutoSaveDelayMs) * time.Millisecond,
		ShareBaseURL:  cfg.Snapshots.ShareBaseURL,
	})

	// Initialize API handlers
	handlers := api.NewHandlers(&api.Dependencies{
		Diagram:     diagram,
		SnapshotMgr: snapshotMgr,
		Metadata:    provider,
		Version:     Version,
		Backend:     cfg.Storage.Backend,
	})

	// Push toast and state changes to connected widget tabs
	notifier.OnChange(handlers.Hub.BroadcastToast)
	diagram.OnChange(handlers.Hub.BroadcastStateChanged)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.ErrorHandler

	// Configure middleware
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			// Skip logging if disabled in config
			if !cfg.Advanced.EnableRequestLogging {
				return true
			}
			path := c.Request().URL.Path
			return path == "/health" || path == "/api/ws"
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize:         1024 * 4,
		DisablePrintStack: false,
		LogLevel:          0,
	}))

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/api/ws"
		},
	}))

	// CORS configuration
	if cfg.Server.EnableCORS {
		if embeddedMode {
			// In embedded mode, use config settings
			origins := strings.Split(cfg.Server.AllowOrigins, ",")
			for i := range origins {
				origins[i] = strings.TrimSpace(origins[i])
			}
			if len(origins) == 0 || (len(origins) == 1 && origins[0] == "") {
				origins = []string{"*"}
			}
			e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
				AllowOrigins: origins,
				AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
				AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			}))
		} else {
			// Development mode - only allow localhost
			e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
				AllowOrigins: []string{
					"http://localhost:5173", "http://127.0.0.1:5173",
					"http://localhost:3000", "http://127.0.0.1:3000",
				},
				AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
				AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
			}))
		}
	}

	// API routes
	api.RegisterRoutes(e, handlers)
	api.RegisterWebSocketRoutes(e, handlers)

	// Register embedded frontend if available
	if embeddedMode {
		if err := web.RegisterStaticRoutes(e); err != nil {
			fmt.Printf("Warning: failed to register static routes: %v\n", err)
		} else {
			fmt.Println("Serving embedded frontend from binary")
		}
	}

	// Configure server with settings from config
	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Print startup banner
	mode := "Development"
	if embeddedMode {
		mode = "Air-Gapped (Embedded)"
	}

	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           Dataverse ERD Visualizer Server                 ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:    %-45s║\n", Version)
	fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
	fmt.Printf("║  Mode:       %-45s║\n", mode)
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Config:    %-46s║\n", configPath)
	fmt.Printf("║  Listen:    http://%-38s║\n", cfg.GetServerAddr())
	fmt.Printf("║  Storage:   %-46s║\n", cfg.Storage.Backend)
	fmt.Printf("║  Entities:  %-46d║\n", len(entities))
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")

	if embeddedMode {
		fmt.Printf("Open http://localhost:%d in your browser\n\n", cfg.Server.Port)
	}

	// Run the server; shut down on SIGINT/SIGTERM so the pending auto-save
	// is flushed before the process exits.
	go func() {
		if err := e.StartServer(s); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down, flushing auto-save...")
	snapshotMgr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}

// newStore builds the configured snapshot persistence backend.
func newStore(cfg *config.AppConfig) (storage.Store, func() error, error) {
	switch cfg.Storage.Backend {
	case "duckdb":
		store, err := storage.NewDuckStore(cfg.GetDataDir())
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case "memory":
		return storage.NewMemoryStore(), nil, nil
	case "file", "":
		maxBytes := cfg.Storage.MaxDocumentKB * 1024
		if maxBytes <= 0 {
			maxBytes = storage.DefaultMaxDocumentBytes
		}
		store, err := storage.NewFileStoreWithQuota(cfg.GetDataDir(), maxBytes)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// newMetadataProvider builds the configured metadata source.
func newMetadataProvider(cfg *config.AppConfig) metadata.Provider {
	if cfg.Metadata.Source == "file" && cfg.Metadata.Path != "" {
		return metadata.NewFileProvider(cfg.Metadata.Path)
	}
	return metadata.NewSampleProvider()
}
