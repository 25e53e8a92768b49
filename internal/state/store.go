package state

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/curator/internal/harvard"
)

// LoadState tracks the one-shot initial load.
type LoadState int

const (
	NotLoaded LoadState = iota
	Loading
	Loaded
	Failed
)

func (s LoadState) String() string {
	switch s {
	case NotLoaded:
		return "not loaded"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("LoadState(%d)", int(s))
	}
}

// RefreshPolicy decides what happens to an existing group when the same page
// is fetched again.
type RefreshPolicy int

const (
	// RefreshReplace swaps the stale group in place.
	RefreshReplace RefreshPolicy = iota
	// RefreshAppend keeps the stale group and appends the new one; lookups
	// keep returning the first (stale) match.
	RefreshAppend
)

// ParseRefreshPolicy maps "replace" / "append" to a policy. Anything else is
// RefreshReplace.
func ParseRefreshPolicy(value string) RefreshPolicy {
	if value == "append" {
		return RefreshAppend
	}
	return RefreshReplace
}

// RecordGroup is the cached result of fetching one page.
type RecordGroup struct {
	Page    int
	Records []harvard.Object
}

// Snapshot is a read-only copy of the coordinator state.
type Snapshot struct {
	Groups      []RecordGroup // fetch order, not page order
	CurrentPage int           // 0 until the first successful fetch
	TotalPages  int
	LoadState   LoadState
	LastError   error
	LastUpdated time.Time
	Fetching    int // fetches currently running
}

// Current returns the first group whose page equals CurrentPage.
func (s Snapshot) Current() (RecordGroup, bool) {
	for _, g := range s.Groups {
		if g.Page == s.CurrentPage {
			return g, true
		}
	}
	return RecordGroup{}, false
}

// CanGoToNextPage is advisory; it gates navigation controls only.
func (s Snapshot) CanGoToNextPage() bool {
	return len(s.Groups) > 0 && s.CurrentPage < s.TotalPages
}

// CanGoToPreviousPage is advisory; it gates navigation controls only.
func (s Snapshot) CanGoToPreviousPage() bool {
	return len(s.Groups) > 0 && s.CurrentPage > 1
}

// Coordinator owns the paging state and mediates between UI intents and the
// API client. All mutations happen under mu; network calls do not.
type Coordinator struct {
	fetcher harvard.PageFetcher
	policy  RefreshPolicy
	log     logrus.FieldLogger

	mu          sync.RWMutex
	groups      []RecordGroup
	currentPage int
	totalPages  int
	loadState   LoadState
	lastError   error
	lastUpdated time.Time
	fetching    int
}

// Option customizes a Coordinator.
type Option func(*Coordinator)

// WithRefreshPolicy overrides the default RefreshReplace.
func WithRefreshPolicy(p RefreshPolicy) Option {
	return func(c *Coordinator) { c.policy = p }
}

// WithLogger sets the logger used for load failures and state changes.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.log = l
		}
	}
}

// NewCoordinator builds a coordinator that fetches pages through fetcher.
func NewCoordinator(fetcher harvard.PageFetcher, opts ...Option) *Coordinator {
	c := &Coordinator{fetcher: fetcher, policy: RefreshReplace}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		discard := logrus.New()
		discard.Out = io.Discard
		c.log = discard
	}
	c.log = c.log.WithField("component", "coordinator")
	return c
}

// Load performs the initial fetch once. It only runs from NotLoaded; every
// later call is a no-op, including after a failure. Failures are logged and
// recorded in the snapshot, never returned or retried.
func (c *Coordinator) Load(ctx context.Context) {
	c.mu.Lock()
	if c.loadState != NotLoaded {
		c.mu.Unlock()
		return
	}
	c.loadState = Loading
	page := c.pageToReload()
	c.mu.Unlock()

	if err := c.fetchRecords(ctx, page, false); err != nil {
		c.mu.Lock()
		if c.loadState == Loading {
			c.loadState = Failed
		}
		c.mu.Unlock()
		c.log.WithError(err).WithField("page", page).Error("unable to load artwork")
	}
}

// ShowRecords makes page current. A cached page is a pointer move with no
// network call; an unseen page is fetched.
func (c *Coordinator) ShowRecords(ctx context.Context, page int) error {
	c.mu.Lock()
	if c.indexOf(page) >= 0 {
		c.currentPage = page
		c.lastError = nil
		c.lastUpdated = time.Now()
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	return c.fetchRecords(ctx, page, false)
}

// Refresh refetches the current page, or page 1 before anything is loaded.
func (c *Coordinator) Refresh(ctx context.Context) error {
	c.mu.RLock()
	page := c.pageToReload()
	c.mu.RUnlock()

	return c.fetchRecords(ctx, page, true)
}

// Snapshot returns a copy of the current state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Snapshot{
		Groups:      cloneGroups(c.groups),
		CurrentPage: c.currentPage,
		TotalPages:  c.totalPages,
		LoadState:   c.loadState,
		LastError:   c.lastError,
		LastUpdated: c.lastUpdated,
		Fetching:    c.fetching,
	}
}

// CanGoToNextPage reports whether a next page exists.
func (c *Coordinator) CanGoToNextPage() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.groups) > 0 && c.currentPage < c.totalPages
}

// CanGoToPreviousPage reports whether a previous page exists.
func (c *Coordinator) CanGoToPreviousPage() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.groups) > 0 && c.currentPage > 1
}

// fetchRecords runs the network call unlocked and applies the result under
// the lock. The response's own page number keys the group and becomes
// current, even if it differs from the requested page.
func (c *Coordinator) fetchRecords(ctx context.Context, page int, refresh bool) error {
	if c.fetcher == nil {
		return fmt.Errorf("coordinator has no fetcher")
	}

	c.mu.Lock()
	c.fetching++
	c.mu.Unlock()

	resp, err := c.fetcher.FetchPage(ctx, page)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetching--

	if err != nil {
		c.lastError = err
		c.lastUpdated = time.Now()
		return err
	}

	group := RecordGroup{Page: resp.Info.CurrentPage, Records: cloneRecords(resp.Records)}
	replaced := false
	if c.policy == RefreshReplace {
		if idx := c.indexOf(group.Page); idx >= 0 {
			c.groups[idx] = group
			replaced = true
		}
	}
	if !replaced {
		c.groups = append(c.groups, group)
	}
	c.currentPage = group.Page
	c.totalPages = resp.Info.TotalPages
	c.lastError = nil
	c.lastUpdated = time.Now()
	if c.loadState != Loaded {
		c.loadState = Loaded
	}

	c.log.WithFields(logrus.Fields{
		"requested": page,
		"page":      group.Page,
		"records":   len(group.Records),
		"refresh":   refresh,
		"replaced":  replaced,
		"groups":    len(c.groups),
	}).Debug("record group stored")
	return nil
}

// pageToReload must be called with mu held.
func (c *Coordinator) pageToReload() int {
	if c.currentPage > 0 {
		return c.currentPage
	}
	return 1
}

// indexOf must be called with mu held.
func (c *Coordinator) indexOf(page int) int {
	for i, g := range c.groups {
		if g.Page == page {
			return i
		}
	}
	return -1
}

func cloneGroups(groups []RecordGroup) []RecordGroup {
	if len(groups) == 0 {
		return nil
	}
	dup := make([]RecordGroup, len(groups))
	copy(dup, groups)
	return dup
}

func cloneRecords(records []harvard.Object) []harvard.Object {
	if len(records) == 0 {
		return nil
	}
	dup := make([]harvard.Object, len(records))
	copy(dup, records)
	return dup
}
