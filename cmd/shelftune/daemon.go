package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"shelftune/internal"
)

const statsInterval = 1 * time.Hour

// Daemon manages the watch-mode service lifecycle
type Daemon struct {
	processor  *internal.Processor
	watcher    *Watcher
	state      *internal.WatchState
	pidFile    string
	scanOnBoot bool
	shutdownCh chan os.Signal
	quitCh     chan struct{}
}

// DaemonOptions configures the daemon
type DaemonOptions struct {
	WatchDir      string
	Extension     string
	PIDFile       string
	DebounceTime  time.Duration
	ScanOnStartup bool
}

// NewDaemon creates a new daemon instance
func NewDaemon(processor *internal.Processor, opts DaemonOptions) (*Daemon, error) {
	if opts.WatchDir == "" {
		return nil, fmt.Errorf("watch directory is required")
	}
	if opts.PIDFile == "" {
		opts.PIDFile = "/var/run/shelftune.pid"
	}
	if opts.DebounceTime == 0 {
		opts.DebounceTime = 2 * time.Second
	}

	state := internal.NewWatchState()

	watcher, err := NewWatcher(processor, state, WatcherOptions{
		WatchDir:     opts.WatchDir,
		Extension:    opts.Extension,
		DebounceTime: opts.DebounceTime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	d := &Daemon{
		processor:  processor,
		watcher:    watcher,
		state:      state,
		pidFile:    opts.PIDFile,
		scanOnBoot: opts.ScanOnStartup,
		shutdownCh: make(chan os.Signal, 1),
		quitCh:     make(chan struct{}),
	}

	return d, nil
}

// Start initializes the daemon
func (d *Daemon) Start() error {
	log.Info("starting shelftune daemon")

	if err := d.writePIDFile(); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}

	signal.Notify(d.shutdownCh, syscall.SIGTERM, syscall.SIGINT)

	if err := d.watcher.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	if d.scanOnBoot {
		if err := d.watcher.ScanExisting(); err != nil {
			log.Warnf("failed to scan existing files: %v", err)
		}
	}

	log.Info("daemon started successfully")
	return nil
}

// Run blocks until a shutdown signal arrives, logging periodic stats along
// the way.
func (d *Daemon) Run() error {
	log.Info("daemon running, waiting for events")

	var group errgroup.Group

	group.Go(func() error {
		sig := <-d.shutdownCh
		log.Infof("received signal %v, shutting down", sig)
		close(d.quitCh)
		return d.Shutdown()
	})

	group.Go(func() error {
		statsTicker := time.NewTicker(statsInterval)
		defer statsTicker.Stop()

		for {
			select {
			case <-d.quitCh:
				return nil
			case <-statsTicker.C:
				stats := d.state.GetStats()
				log.Infof("daemon stats: processed=%d skipped=%d errored=%d uptime=%v",
					stats.TotalProcessed, stats.TotalSkipped, stats.TotalErrored,
					time.Since(stats.StartTime))
			}
		}
	})

	return group.Wait()
}

// Shutdown performs graceful shutdown
func (d *Daemon) Shutdown() error {
	log.Info("shutting down daemon")

	// Stop watcher (waits for the event loop to drain)
	if err := d.watcher.Stop(); err != nil {
		log.Errorf("error stopping watcher: %v", err)
	}

	stats := d.state.GetStats()
	log.Infof("session totals: processed=%d skipped=%d errored=%d",
		stats.TotalProcessed, stats.TotalSkipped, stats.TotalErrored)

	if err := d.removePIDFile(); err != nil {
		log.Errorf("failed to remove PID file: %v", err)
	}

	log.Info("daemon shutdown complete")
	return nil
}

// writePIDFile writes the process ID to a file
func (d *Daemon) writePIDFile() error {
	if data, err := os.ReadFile(d.pidFile); err == nil {
		existingPID, err := strconv.Atoi(string(data))
		if err == nil {
			if processExists(existingPID) {
				return fmt.Errorf("daemon already running with PID %d", existingPID)
			}
			log.Warnf("stale PID file found (PID %d not running), overwriting", existingPID)
		}
	}

	pid := os.Getpid()
	if err := os.WriteFile(d.pidFile, []byte(strconv.Itoa(pid)), 0644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}

	log.Infof("wrote PID %d to %s", pid, d.pidFile)
	return nil
}

// removePIDFile removes the PID file
func (d *Daemon) removePIDFile() error {
	if err := os.Remove(d.pidFile); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// processExists checks if a process with given PID exists
func processExists(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	// Signal 0 probes for existence without delivering anything
	err = process.Signal(syscall.Signal(0))
	return err == nil
}
