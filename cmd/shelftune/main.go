package main

import (
	"flag"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"shelftune"
	"shelftune/internal"
)

var (
	configFile = flag.String("config", "config.json", "Path to the configuration file (optional)")
	pattern    = flag.String("pattern", "", "Path pattern, e.g. '{artist_name}/{album_name} ({release_year})/{track_num} - {track_name}.mp3'")
	library    = flag.String("library", "", "Path to the destination library")
	source     = flag.String("source", ".", "source directory, defaults to current dir")
	move       = flag.Bool("move", false, "Move files into the library instead of copying them")
	overwrite  = flag.Bool("overwrite", false, "Replace existing files at the planned path")
	dry        = flag.Bool("dry", false, "Dry run (report only, no files touched)")
	loglvl     = flag.String("log-level", "info", "The log level")

	// Watch-mode flags
	watch    = flag.Bool("watch", false, "Keep running and organize files as they land in the source directory")
	pidFile  = flag.String("pid-file", "/var/run/shelftune.pid", "PID file path (watch mode)")
	debounce = flag.Duration("debounce", 2*time.Second, "How long a file must stay quiet before it is picked up (watch mode)")
)

func main() {
	flag.Parse()

	if *library == "" {
		log.Fatal("must provide a path to the destination library")
	}
	if _, err := os.Stat(*source); err != nil {
		log.Fatalf("source directory is not usable: %v", err)
	}

	// Setup logging
	logLevel, err := log.ParseLevel(*loglvl)
	if err != nil {
		logLevel = log.InfoLevel
		log.Warnf("invalid log-level %s, set to %v", *loglvl, log.InfoLevel)
	}
	log.SetLevel(logLevel)

	// Load configuration
	config := loadConfiguration()

	log.Infof("using pattern: %s", config.Pattern.Template)

	processor := internal.NewProcessor(config, *library, *dry, shelftune.ReadRecord, log.StandardLogger(), os.Stdout)

	// Mode selection
	if *watch {
		runWatch(config, processor)
	} else {
		runOneShot(processor)
	}
}

// loadConfiguration loads and merges configuration from multiple sources
func loadConfiguration() internal.Config {
	config := internal.DefaultConfig()

	// Try to load config file if it exists
	if *configFile != "" {
		if _, err := os.Stat(*configFile); err == nil {
			loadedConfig, err := internal.LoadConfig(*configFile)
			if err != nil {
				log.Fatalf("failed to load config file %s: %v", *configFile, err)
			}
			config = loadedConfig
			log.Debugf("loaded config from %s", *configFile)
		} else {
			log.Debugf("config file %s not found, using defaults", *configFile)
		}
	}

	// CLI flags override config file
	if *pattern != "" {
		config.Pattern.Template = *pattern
		log.Debugf("using pattern from CLI: %s", *pattern)
	}
	if *move {
		config.Move = true
	}
	if *overwrite {
		config.Overwrite = true
	}

	return config
}

// runOneShot runs the batch processing mode
func runOneShot(processor *internal.Processor) {
	summary, err := processor.ProcessDirectory(*source)
	if err != nil {
		log.Fatalf("failed to process directory: %v", err)
	}

	log.Info("processing complete")

	if summary.Failed() {
		os.Exit(1)
	}
}

// runWatch runs the long-lived watch mode
func runWatch(config internal.Config, processor *internal.Processor) {
	log.Infof("starting watch mode: watching %s", *source)

	opts := DaemonOptions{
		WatchDir:      *source,
		Extension:     config.Pattern.Extension,
		PIDFile:       *pidFile,
		DebounceTime:  *debounce,
		ScanOnStartup: true,
	}
	if w := config.Watch; w != nil {
		if w.PIDFile != "" {
			opts.PIDFile = w.PIDFile
		}
		if w.DebounceTime != "" {
			d, err := time.ParseDuration(w.DebounceTime)
			if err != nil {
				log.Fatalf("invalid debounce_time %q: %v", w.DebounceTime, err)
			}
			opts.DebounceTime = d
		}
		opts.ScanOnStartup = w.ScanOnStartup
	}

	daemon, err := NewDaemon(processor, opts)
	if err != nil {
		log.Fatalf("failed to create daemon: %v", err)
	}

	if err := daemon.Start(); err != nil {
		log.Fatalf("failed to start daemon: %v", err)
	}

	if err := daemon.Run(); err != nil {
		log.Fatalf("daemon error: %v", err)
	}
}
