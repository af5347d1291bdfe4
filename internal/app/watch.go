package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/rulemine/internal/apriori"
	"github.com/blackwell-systems/rulemine/internal/output"
	"github.com/blackwell-systems/rulemine/internal/store"
	"github.com/blackwell-systems/rulemine/internal/watcher"
)

var (
	watchDaemon        bool
	watchDaemonChild   bool
	watchPIDFile       string
	watchLogFile       string
	watchStop          bool
	watchStatus        bool
	watchMinSupport    float64
	watchMinConfidence float64
	watchMaxLength     int
	watchMinLift       float64
	watchSeparator     string

	watchCmd = &cobra.Command{
		Use:   "watch <dataset>",
		Short: "Re-mine a dataset whenever it changes",
		Long: `Watch a dataset file and mine it again every time its content changes.

The dataset is mined once up front, then filesystem events drive further
runs. Bursts of writes are debounced, and rewrites that do not change the
file's content are skipped. Every mining run is saved to the database, so
'rulemine runs' shows how rules evolve as the dataset grows.

Watch modes:
  • Foreground (default): Run in current terminal with Ctrl+C to stop
  • Daemon: Run as background process
  • Stop: Stop a running daemon
  • Status: Report whether the daemon is running`,
		Example: `  # Watch in the foreground (Ctrl+C to stop)
  rulemine watch baskets.csv

  # Watch as a background daemon
  rulemine watch baskets.csv --daemon

  # Stop or inspect the daemon
  rulemine watch --stop
  rulemine watch --status

  # Watch with custom thresholds
  rulemine watch baskets.csv --min-support 0.05 --min-confidence 0.3`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWatch,
	}
)

func init() {
	watchCmd.Flags().BoolVar(&watchDaemon, "daemon", false, "run as background daemon")
	watchCmd.Flags().BoolVar(&watchDaemonChild, "daemon-child", false, "internal flag for daemon child process")
	watchCmd.Flags().StringVar(&watchPIDFile, "pid-file", "", "PID file path (default: ~/.rulemine/watch.pid)")
	watchCmd.Flags().StringVar(&watchLogFile, "log-file", "", "log file path (default: ~/.rulemine/watch.log)")
	watchCmd.Flags().BoolVar(&watchStop, "stop", false, "stop running daemon")
	watchCmd.Flags().BoolVar(&watchStatus, "status", false, "report daemon status")
	watchCmd.Flags().Float64Var(&watchMinSupport, "min-support", 0.5, "minimum itemset support, in (0, 1]")
	watchCmd.Flags().Float64Var(&watchMinConfidence, "min-confidence", 0.5, "minimum rule confidence, in (0, 1]")
	watchCmd.Flags().IntVar(&watchMaxLength, "max-length", 0, "maximum itemset length (0 = unbounded)")
	watchCmd.Flags().Float64Var(&watchMinLift, "min-lift", 0, "minimum rule lift (0 = no lift filter)")
	watchCmd.Flags().StringVar(&watchSeparator, "separator", ",", "item separator in the dataset file")

	// Hide the internal daemon-child flag from help
	watchCmd.Flags().MarkHidden("daemon-child")
}

func runWatch(cmd *cobra.Command, args []string) error {
	// Get default paths if not specified
	if watchPIDFile == "" {
		defaultPID, err := getDefaultPIDFile()
		if err != nil {
			return fmt.Errorf("failed to get default PID file path: %w", err)
		}
		watchPIDFile = defaultPID
	}

	if watchLogFile == "" {
		defaultLog, err := getDefaultLogFile()
		if err != nil {
			return fmt.Errorf("failed to get default log file path: %w", err)
		}
		watchLogFile = defaultLog
	}

	// Handle stop and status, which need no dataset argument
	if watchStop {
		return stopWatchDaemon()
	}
	if watchStatus {
		return showWatchStatus()
	}

	if len(args) != 1 {
		return fmt.Errorf("watch requires a dataset argument (or --stop/--status)")
	}
	datasetPath := args[0]

	db, _, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	w, err := watcher.New(datasetPath, func(path string) error {
		return remineDataset(db, path)
	})
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	// Daemon mode forks; the child does the initial mine.
	if watchDaemon {
		return startWatchDaemon(w, datasetPath)
	}

	// Mine once before watching; the watcher remembers this content and
	// only re-mines when it actually changes.
	if err := remineDataset(db, datasetPath); err != nil {
		return fmt.Errorf("initial mining failed: %w", err)
	}

	// Handle daemon child process
	if watchDaemonChild {
		return w.RunDaemon(watchPIDFile)
	}

	// Run in foreground
	return runWatchForeground(w, datasetPath)
}

// remineDataset mines the dataset with the watch thresholds and saves the
// run. Output is one summary line per run, suitable for the daemon log.
func remineDataset(db *store.Store, datasetPath string) error {
	src := newFileSource(datasetPath, watchSeparator)

	start := time.Now()
	table, rules, err := apriori.Run(src, apriori.Config{
		MinSupport:    watchMinSupport,
		MinConfidence: watchMinConfidence,
		MaxLength:     watchMaxLength,
		MinLift:       watchMinLift,
	})
	if err != nil {
		return fmt.Errorf("mining failed: %w", err)
	}

	run := &store.Run{
		Source:        datasetPath,
		MinSupport:    watchMinSupport,
		MinConfidence: watchMinConfidence,
		MaxLength:     watchMaxLength,
		MinLift:       watchMinLift,
	}
	if err := db.SaveRun(run, table, rules); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	fmt.Println(output.RenderRunSummary(run, time.Since(start)))
	return nil
}

func stopWatchDaemon() error {
	// Check if daemon is running
	running, err := watcher.IsDaemonRunning(watchPIDFile)
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if !running {
		fmt.Println("Daemon is not running")
		return nil
	}

	if err := watcher.StopDaemon(watchPIDFile); err != nil {
		return fmt.Errorf("failed to stop daemon: %w", err)
	}
	fmt.Println("✓ Daemon stopped")

	return nil
}

func showWatchStatus() error {
	running, err := watcher.IsDaemonRunning(watchPIDFile)
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if running {
		fmt.Printf("Daemon is running (PID file: %s)\n", watchPIDFile)
	} else {
		fmt.Println("Daemon is not running")
	}
	return nil
}

func startWatchDaemon(w *watcher.Watcher, datasetPath string) error {
	// Check if already running
	running, err := watcher.IsDaemonRunning(watchPIDFile)
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if running {
		return fmt.Errorf("daemon already running (PID file: %s)", watchPIDFile)
	}

	childArgs := []string{
		"watch", datasetPath, "--daemon-child",
		"--pid-file", watchPIDFile,
		"--log-file", watchLogFile,
		"--min-support", fmt.Sprintf("%g", watchMinSupport),
		"--min-confidence", fmt.Sprintf("%g", watchMinConfidence),
		"--max-length", fmt.Sprintf("%d", watchMaxLength),
		"--min-lift", fmt.Sprintf("%g", watchMinLift),
		"--separator", watchSeparator,
	}
	if dbPath != "" {
		childArgs = append(childArgs, "--db", dbPath)
	}

	if err := w.StartDaemon(watchPIDFile, watchLogFile, childArgs...); err != nil {
		return fmt.Errorf("failed to start daemon: %w", err)
	}

	fmt.Printf("✓ Daemon started, watching %s\n", datasetPath)
	fmt.Printf("  PID file: %s\n", watchPIDFile)
	fmt.Printf("  Log file: %s\n", watchLogFile)
	fmt.Printf("\nTo stop: rulemine watch --stop\n")

	return nil
}

func runWatchForeground(w *watcher.Watcher, datasetPath string) error {
	fmt.Printf("Watching %s (press Ctrl+C to stop)...\n\n", datasetPath)

	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	// Set up signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	// Wait for shutdown signal
	sig := <-sigCh
	fmt.Printf("\nReceived signal %v, shutting down...\n", sig)

	if err := w.Stop(); err != nil {
		return fmt.Errorf("failed to stop watcher: %w", err)
	}

	fmt.Println("Watch stopped")
	return nil
}
