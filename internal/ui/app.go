package ui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/curator/internal/harvard"
	"github.com/five82/curator/internal/logtail"
	"github.com/five82/curator/internal/prefs"
	"github.com/five82/curator/internal/state"
)

// Browser is the slice of the paging coordinator the UI drives.
type Browser interface {
	Load(ctx context.Context)
	ShowRecords(ctx context.Context, page int) error
	Refresh(ctx context.Context) error
	Snapshot() state.Snapshot
}

// View represents the current active view.
type View int

const (
	ViewList View = iota
	ViewDetail
	ViewLogs
)

const logTailLines = 500

// Options configures the UI.
type Options struct {
	Context context.Context
	Browser Browser
	// Activate runs on start and whenever the terminal regains focus.
	// Nil uses Browser.Load.
	Activate  func(context.Context)
	StartPage int
	LogPath   string
	ThemeName string
	Layout    string
	PrefsPath string
	Logger    logrus.FieldLogger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	browser   Browser
	activate  func(context.Context)
	startPage int
	logPath   string
	prefsPath string
	log       logrus.FieldLogger

	theme  Theme
	layout string
	keys   keyMap
	help   help.Model

	spinner   spinner.Model
	search    textinput.Model
	searching bool
	logView   viewport.Model

	view     View
	width    int
	height   int
	ready    bool
	showHelp bool
	focused  bool

	snapshot state.Snapshot
	pending  int // commands dispatched whose snapshot has not arrived
	selected int
	carousel carousel
	logErr   error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	activate := opts.Activate
	if activate == nil && opts.Browser != nil {
		activate = opts.Browser.Load
	}

	log := opts.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}

	layout := opts.Layout
	if layout != prefs.LayoutList {
		layout = prefs.LayoutSplit
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "title, date, artist..."
	search.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	return Model{
		ctx:       ctx,
		browser:   opts.Browser,
		activate:  activate,
		startPage: opts.StartPage,
		logPath:   opts.LogPath,
		prefsPath: opts.PrefsPath,
		log:       log.WithField("component", "ui"),
		theme:     GetTheme(opts.ThemeName),
		layout:    layout,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
		search:    search,
		logView:   viewport.New(0, 0),
		view:      ViewList,
		focused:   true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.activateCmd(m.startPage))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logView.Width = msg.Width
		m.logView.Height = max(m.bodyHeight(), 1)
		m.ready = true
		return m, nil

	case tea.FocusMsg:
		m.focused = true
		return m, m.dispatch(m.activateCmd(0))

	case tea.BlurMsg:
		m.focused = false
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case snapshotMsg:
		if m.pending > 0 {
			m.pending--
		}
		m.applySnapshot(msg.snapshot)
		return m, nil

	case logsMsg:
		m.logErr = msg.err
		m.logView.SetContent(m.renderLogLines(msg.entries))
		m.logView.GotoBottom()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(msg)
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Layout):
		if m.layout == prefs.LayoutList {
			m.layout = prefs.LayoutSplit
		} else {
			m.layout = prefs.LayoutList
		}
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		if m.view == ViewLogs {
			m.view = ViewList
			return m, nil
		}
		m.view = ViewLogs
		return m, loadLogsCmd(m.logPath)

	case key.Matches(msg, m.keys.Back):
		switch {
		case m.view != ViewList:
			m.view = ViewList
		case m.search.Value() != "":
			m.search.SetValue("")
			m.selected = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.dispatch(m.refreshCmd())

	case key.Matches(msg, m.keys.NextPage):
		if !m.snapshot.CanGoToNextPage() {
			return m, nil
		}
		return m, m.dispatch(m.showRecordsCmd(m.snapshot.CurrentPage + 1))

	case key.Matches(msg, m.keys.PrevPage):
		if !m.snapshot.CanGoToPreviousPage() {
			return m, nil
		}
		return m, m.dispatch(m.showRecordsCmd(m.snapshot.CurrentPage - 1))

	case key.Matches(msg, m.keys.Search):
		if m.view == ViewLogs {
			return m, nil
		}
		m.searching = true
		return m, m.search.Focus()
	}

	switch m.view {
	case ViewList:
		return m.handleListKey(msg)
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewLogs:
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.selected = 0
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.selected = 0
	m.syncCarousel()
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	records := m.visibleRecords()
	if len(records) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Open):
		m.view = ViewDetail
		m.syncCarousel()
	case m.layout == prefs.LayoutSplit && key.Matches(msg, m.keys.PrevImage):
		m.carousel = m.carousel.Prev()
	case m.layout == prefs.LayoutSplit && key.Matches(msg, m.keys.NextImage):
		m.carousel = m.carousel.Next()
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.PrevImage):
		m.carousel = m.carousel.Prev()
	case key.Matches(msg, m.keys.NextImage):
		m.carousel = m.carousel.Next()
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	}
	return m, nil
}

func (m *Model) moveSelection(delta int) {
	count := len(m.visibleRecords())
	if count == 0 {
		m.selected = 0
		return
	}
	m.selected = min(max(m.selected+delta, 0), count-1)
	m.syncCarousel()
}

// applySnapshot installs a new coordinator snapshot. Moving to another page
// resets the selection; staying on the same page keeps it in range.
func (m *Model) applySnapshot(snap state.Snapshot) {
	pageChanged := snap.CurrentPage != m.snapshot.CurrentPage
	m.snapshot = snap
	if pageChanged {
		m.selected = 0
		if m.view == ViewDetail {
			m.view = ViewList
		}
	}
	if count := len(m.visibleRecords()); m.selected >= count {
		m.selected = max(count-1, 0)
	}
	m.syncCarousel()
}

// syncCarousel rebuilds the carousel when the selected record changed.
func (m *Model) syncCarousel() {
	obj, ok := m.selectedRecord()
	if !ok {
		m.carousel = carousel{}
		return
	}
	if m.carousel.objectID != obj.ID || m.carousel.Len() != len(obj.Images) {
		m.carousel = newCarousel(obj)
	}
}

// visibleRecords returns the current page filtered by the search query.
func (m Model) visibleRecords() []harvard.Object {
	group, ok := m.snapshot.Current()
	if !ok {
		return nil
	}
	return state.Filter(group.Records, m.search.Value())
}

func (m Model) selectedRecord() (harvard.Object, bool) {
	records := m.visibleRecords()
	if m.selected < 0 || m.selected >= len(records) {
		return harvard.Object{}, false
	}
	return records[m.selected], true
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Layout: m.layout}); err != nil {
		m.log.WithError(err).Warn("unable to save preferences")
	}
}

// Messages

type snapshotMsg struct {
	snapshot state.Snapshot
}

type logsMsg struct {
	entries []logtail.Entry
	err     error
}

// Commands

// dispatch counts a coordinator command as pending until its snapshot
// arrives, so the header can show activity while the fetch runs.
func (m *Model) dispatch(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	m.pending++
	return cmd
}

// busy reports whether a fetch is running, either seen by the coordinator or
// dispatched from here and not yet answered.
func (m Model) busy() bool {
	return m.pending > 0 || m.snapshot.Fetching > 0
}

// activateCmd runs the activation hook and, on first start, jumps to the
// requested page. Load is idempotent, so focus events can call it freely.
func (m Model) activateCmd(startPage int) tea.Cmd {
	if m.browser == nil {
		return nil
	}
	ctx, browser, activate := m.ctx, m.browser, m.activate
	return func() tea.Msg {
		if activate != nil {
			activate(ctx)
		}
		if startPage > 1 {
			// Failures land in the snapshot's LastError.
			_ = browser.ShowRecords(ctx, startPage)
		}
		return snapshotMsg{snapshot: browser.Snapshot()}
	}
}

func (m Model) showRecordsCmd(page int) tea.Cmd {
	if m.browser == nil {
		return nil
	}
	ctx, browser := m.ctx, m.browser
	return func() tea.Msg {
		_ = browser.ShowRecords(ctx, page)
		return snapshotMsg{snapshot: browser.Snapshot()}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	if m.browser == nil {
		return nil
	}
	ctx, browser := m.ctx, m.browser
	return func() tea.Msg {
		_ = browser.Refresh(ctx)
		return snapshotMsg{snapshot: browser.Snapshot()}
	}
}

func loadLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		entries, err := logtail.Tail(path, logTailLines)
		return logsMsg{entries: entries, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithContext(m.ctx),
	)
	_, err := p.Run()
	return err
}

// lastUpdatedLabel renders how long ago the snapshot last changed.
func lastUpdatedLabel(snap state.Snapshot, now time.Time) string {
	if snap.LastUpdated.IsZero() {
		return ""
	}
	ago := humanizeDuration(now.Sub(snap.LastUpdated))
	if ago == "now" {
		return "updated just now"
	}
	return "updated " + ago + " ago"
}
