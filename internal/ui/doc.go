// Package ui provides the terminal browser for curator.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. It never talks to the API directly: every
// page change goes through a Browser (the paging coordinator) inside a
// tea.Cmd, and the result comes back as a snapshotMsg carrying a read-only
// state.Snapshot. The model renders only what the last snapshot says.
//
// # Package Structure
//
//   - app.go: Model, Update loop, key handling, commands and Run
//   - view.go: header, list, detail, diagnostics and help rendering
//   - carousel.go: image stepping for the detail view
//   - swatch.go: color palette bar drawn with lipgloss backgrounds
//   - keys.go: key bindings (bubbles/key), also feeding bubbles/help
//   - theme.go: Nightfox, Kanagawa and Slate palettes
//
// # Views
//
//   - List: titles and dates of the current page, filtered by the search box
//   - Split (default layout): list on the left, detail of the selection on
//     the right
//   - Detail: metadata, people, image carousel, color swatches, description
//   - Diagnostics: the tail of curator's own log file
//
// # Event Flow
//
//  1. Init starts the spinner and activates the coordinator (Load)
//  2. tea.FocusMsg activates again; Load is a no-op once it has run
//  3. Paging keys send ShowRecords or Refresh commands
//  4. Each command answers with a fresh snapshot
//  5. A failed fetch keeps the old page on screen and shows the error in the
//     footer with a retry hint
//
// # Key Bindings
//
//   - j/k: Move selection
//   - enter: Open detail
//   - esc: Back to list, or clear the filter
//   - n/right, p/left: Next/previous page
//   - r: Refresh the current page
//   - /: Search the current page
//   - h/l: Previous/next image
//   - L: Toggle list/split layout
//   - T: Cycle theme
//   - D: Diagnostics log
//   - ?: Help
//   - q or Ctrl+C: Quit
//
// Theme and layout changes are written back through package prefs.
package ui
