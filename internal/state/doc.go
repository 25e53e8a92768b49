// Package state holds the paging coordinator for the curator application.
//
// # Overview
//
// The Coordinator sits between UI intents and the Harvard API client. It
// caches one RecordGroup per fetched page for the whole session (no
// eviction), tracks the current and total page, and hands the UI read-only
// Snapshot copies.
//
// # Operations
//
//	ShowRecords(ctx, page)
//	  cached page  → currentPage = page, no network call
//	  unseen page  → fetch, store group keyed by the response's info.page
//
//	Refresh(ctx)
//	  always fetches currentPage (or 1 before the first load)
//	  RefreshReplace → stale group swapped in place
//	  RefreshAppend  → new group appended; lookups still hit the first match
//
//	Load(ctx)
//	  NotLoaded → Loading → Loaded | Failed
//	  any other state → no-op (failures are logged, never retried)
//
// A Failed coordinator recovers through an explicit Refresh or ShowRecords.
//
// # Concurrency Model
//
// The Coordinator uses a readers-writer lock. Fetches run without the lock,
// so two navigations can overlap; applying a result takes the write lock, so
// only one mutation is in flight at a time. A stale navigation still lands
// when it completes: last write wins on currentPage.
//
// Concurrent misses for the same unseen page are not merged. Each issues its
// own request. Under RefreshReplace the second result overwrites the first
// group; under RefreshAppend both groups are kept.
//
// # Errors
//
// Failed ShowRecords/Refresh calls return the client error unchanged and
// record it as Snapshot.LastError, leaving groups and page counters as they
// were. The next successful call clears it.
//
// # Filtering
//
// Filter applies the local search to a page of records. It never touches the
// network or the cache.
package state
