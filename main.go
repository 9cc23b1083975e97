package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"tradedeadline/internal/cache"
	"tradedeadline/internal/config"
	"tradedeadline/internal/debug"
	"tradedeadline/internal/geo"
	"tradedeadline/internal/mlb"
	"tradedeadline/internal/ui"
)

func main() {
	// Parse command line flags
	help := flag.Bool("h", false, "Show help message")
	configFile := flag.String("config", "", "Config file (YAML, JSON or TOML)")
	dataFile := flag.String("data", "", "Load teams and transactions from a JSON file instead of the stats API")
	cacheDir := flag.String("cache", "", "Cache directory for map and API data (default: ~/.tradedeadline/data)")
	debugLog := flag.String("d", "", "Debug log file (e.g., debug.log)")
	startDate := flag.String("start", "", "First transaction date, YYYY-MM-DD")
	endDate := flag.String("end", "", "Last transaction date, YYYY-MM-DD")
	exportPath := flag.String("export", "", "Write calibrated team coordinates here as GeoJSON")
	refresh := flag.Bool("refresh", false, "Ignore cached API responses")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("tradedeadline - Terminal map of MLB deadline trades")
		fmt.Println("\nUsage: tradedeadline [options]")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	// Set up debug logging if requested
	if *debugLog != "" {
		logFile, err := os.Create(*debugLog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to create debug log: %v\n", err)
		} else {
			defer logFile.Close()
			debug.SetOutput(logFile)
			debug.Log("tradedeadline debug log started")
			fmt.Printf("Debug logging enabled: %s\n", *debugLog)
		}
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *cacheDir != "" {
		cfg.CacheDir = *cacheDir
	}
	if *startDate != "" {
		cfg.StartDate = *startDate
	}
	if *endDate != "" {
		cfg.EndDate = *endDate
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Initialize cache manager
	fmt.Println("Initializing data cache...")
	cacheManager, err := cache.NewManager(cfg.CacheDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize cache: %v\n", err)
		os.Exit(1)
	}
	cacheManager.Refresh = *refresh

	// The backdrop is optional; a failed download leaves a bare map
	fmt.Println("Checking Natural Earth data...")
	if err := cacheManager.EnsureData(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: map data unavailable: %v\n", err)
	}

	fmt.Println("Loading geographic features...")
	features := geo.NewShapefileLoader(cacheManager.GetCacheDir()).LoadBackdrop(cfg.Projection.Bounds)

	registry := geo.NewRegistry()
	if cfg.LocationsFile != "" {
		locations, err := geo.NewLocationLoader(cfg.LocationsFile).Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to load team locations: %v\n", err)
			os.Exit(1)
		}
		registry.Apply(locations)
		fmt.Printf("Loaded %d team locations\n", len(locations))
	}

	var dataset *mlb.Dataset
	if *dataFile != "" {
		fmt.Printf("Loading trades from %s...\n", *dataFile)
		dataset, err = mlb.LoadDataset(*dataFile)
	} else {
		fmt.Printf("Fetching trades %s to %s...\n", cfg.StartDate, cfg.EndDate)
		dataset, err = mlb.NewClient(cacheManager, cfg.BaseURL).FetchDataset(ctx, cfg.StartDate, cfg.EndDate)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load trades: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d teams and %d trades\n", len(dataset.Teams), len(dataset.Transactions))

	// Create and run application
	app, err := ui.NewApp(ui.Options{
		Registry:           registry,
		Features:           features,
		Projection:         cfg.Projection,
		FitToScreen:        cfg.FitToScreen,
		Cadence:            cfg.Cadence,
		TransitionDuration: cfg.TransitionDuration,
		ExportPath:         *exportPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create application: %v\n", err)
		os.Exit(1)
	}
	app.SetData(dataset.Teams, dataset.Transactions)

	// Run with panic recovery to ensure terminal is always restored
	func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(os.Stderr, "\nPanic: %v\n", r)
			}
		}()

		if err := app.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}()

	fmt.Println("\nGoodbye!")
}
