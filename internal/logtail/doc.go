// Package logtail reads the tail of curator's log file for the diagnostics
// view.
//
// # Reading
//
// Read uses a ring buffer to keep only the last maxLines of a file, so a
// long-lived log never has to fit in memory. A missing file is not an error;
// the log simply has not been written yet.
//
// # Parsing
//
// Curator writes logrus JSON lines. Parse splits one line into time, level,
// message and the remaining fields; anything that is not a JSON object is
// passed through as Raw so hand-edited or foreign lines still show up.
//
//	entries, err := logtail.Tail(cfg.LogPath(), 200)
//	for _, e := range entries {
//		fmt.Println(e.Format())
//	}
package logtail
