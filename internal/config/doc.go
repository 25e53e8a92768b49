// Package config handles loading and parsing the curator configuration file.
//
// # Overview
//
// Curator needs very little to start: where the art API lives, the API key,
// how long to wait for a page, and where to write its log. Everything has a
// default except the key.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. Load ./.env into the process environment (existing variables win)
//  2. If a path is explicitly provided, use it
//  3. Otherwise, use ~/.config/curator/config.toml (default)
//  4. If the config file doesn't exist, fall back to hardcoded defaults
//  5. If the file exists but fields are missing/empty, use defaults
//  6. A non-empty API_KEY environment variable replaces api_key
//
// # Default Values
//
//   - Config file: ~/.config/curator/config.toml
//   - Base URL: https://api.harvardartmuseums.org
//   - Timeout: 1000s
//   - Breaker threshold: 5 consecutive failures (0 disables)
//   - Refresh policy: replace
//   - Log directory: ~/.local/state/curator
//   - Log file: <log_dir>/curator.log
//   - Log level: info
//
// # TOML Format
//
//	base_url = "https://api.harvardartmuseums.org"
//	api_key = "..."
//	timeout = "30s"
//	breaker_threshold = 5
//	refresh_policy = "replace" # or "append"
//	log_dir = "~/.local/state/curator"
//	log_level = "debug"
//
// All fields are optional. Tilde expansion is performed on log_dir.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//   - A timeout that is not a positive Go duration
//   - A negative breaker_threshold or an unknown refresh_policy
//
// An empty API key is not an error here. The API answers such requests with
// 401, and the UI reports that like any other failed page.
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//		log.Fatalf("failed to load config: %v", err)
//	}
//	client, err := harvard.NewClient(cfg.BaseURL, cfg.APIKey,
//		harvard.WithTimeout(cfg.Timeout))
package config
