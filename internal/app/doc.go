// Package app provides the orchestration layer for curator.
//
// # Overview
//
// This package wires configuration, logging, the API client and the paging
// coordinator together, then hands the coordinator to the UI. It is the
// composition root: no other package constructs these components.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()           TOML + .env + API_KEY
//	       ├─────> logging.New()           rotated JSON log file
//	       ├─────> harvard.NewClient()     resty + breaker
//	       ├─────> state.NewCoordinator()  page cache
//	       └─────> ui.Run()                TUI (blocks)
//	                 │
//	                 ├─ start ──────> Activate() ──> Coordinator.Load()
//	                 ├─ focus ──────> Activate() ──> no-op after first load
//	                 └─ n/p/r ──────> ShowRecords() / Refresh()
//
// There is no background polling. Pages are fetched only when the user asks
// for one the cache does not hold, or refreshes.
//
// # Error Handling
//
// Fatal errors (returned from New and Run):
//   - Invalid configuration
//   - Log directory that cannot be created
//   - Unparseable base URL
//
// Recoverable errors (shown in the UI, never fatal):
//   - Failed initial load, which leaves the coordinator in Failed until the
//     user refreshes
//   - Failed page fetches, which keep the current page on screen
//
// # Non-interactive use
//
// FetchPage drives the same coordinator path for a single page and
// NewPageReport/WritePage print it as a table, JSON or YAML. The page
// command in cmd/curator is built on these.
//
// # Usage Example
//
//	if err := app.Run(ctx, app.Options{StartPage: 3}); err != nil {
//		log.Fatalf("curator failed: %v", err)
//	}
package app
