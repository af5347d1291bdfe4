// Package watcher re-mines a transaction dataset whenever it changes on disk.
//
// The Watcher uses fsnotify to monitor the dataset file's directory (watching
// the directory rather than the file survives the rename-and-replace pattern
// editors and atomic writers use). Rapid bursts of write events are debounced,
// and a content hash of the file is kept so that touch-without-change events
// do not trigger redundant mining runs.
//
// Key features:
//   - Directory-level fsnotify watch (survives atomic file replacement)
//   - Debounced change handling (one re-mine per burst of writes)
//   - SHA-256 content dedup (unchanged files are skipped)
//   - Daemon mode support with PID file management
//   - Graceful shutdown with SIGTERM/SIGINT handling
//
// Example usage:
//
//	w, err := watcher.New("baskets.csv", func(path string) error {
//		fmt.Println("dataset changed:", path)
//		return nil
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Start watching in foreground
//	if err := w.Start(); err != nil {
//		log.Fatal(err)
//	}
//	defer w.Stop()
//
//	// Or start as daemon
//	if err := w.StartDaemon("/tmp/rulemine.pid", "/tmp/rulemine.log"); err != nil {
//		log.Fatal(err)
//	}
package watcher
