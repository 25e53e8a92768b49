package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/curator/internal/harvard"
	"github.com/five82/curator/internal/prefs"
	"github.com/five82/curator/internal/state"
)

type fakeBrowser struct {
	mu      sync.Mutex
	snap    state.Snapshot
	loads   int
	shown   []int
	refresh int
	onShow  func(page int) state.Snapshot
}

func (f *fakeBrowser) Load(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
}

func (f *fakeBrowser) ShowRecords(_ context.Context, page int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shown = append(f.shown, page)
	if f.onShow != nil {
		f.snap = f.onShow(page)
	}
	return nil
}

func (f *fakeBrowser) Refresh(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refresh++
	return nil
}

func (f *fakeBrowser) Snapshot() state.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func pageSnapshot(page, total int, records ...harvard.Object) state.Snapshot {
	return state.Snapshot{
		Groups:      []state.RecordGroup{{Page: page, Records: records}},
		CurrentPage: page,
		TotalPages:  total,
		LoadState:   state.Loaded,
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sized(m Model) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// deliver runs cmd and feeds its message back into the model.
func deliver(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command, got nil")
	}
	next, _ := m.Update(cmd())
	return next.(Model)
}

var artworks = []harvard.Object{
	{ID: 1, Title: "Water Lilies", Dated: "1914", Images: []harvard.Image{
		{BaseImageURL: "https://nrs.example/a", DisplayOrder: 1, Width: 800, Height: 600},
		{BaseImageURL: "https://nrs.example/b", DisplayOrder: 2, Width: 600, Height: 800},
	}},
	{ID: 2, Title: "Self-Portrait Dedicated to Paul Gauguin", Dated: "1888"},
	{ID: 3, Title: "Vase", Dated: "c. 1500"},
}

func TestActivate_LoadsAndJumpsToStartPage(t *testing.T) {
	b := &fakeBrowser{onShow: func(page int) state.Snapshot { return pageSnapshot(page, 10, artworks...) }}
	m := New(Options{Browser: b, StartPage: 4})

	m = deliver(t, m, m.activateCmd(m.startPage))

	if b.loads != 1 {
		t.Fatalf("loads = %d, want 1", b.loads)
	}
	if len(b.shown) != 1 || b.shown[0] != 4 {
		t.Fatalf("shown = %v, want [4]", b.shown)
	}
	if m.snapshot.CurrentPage != 4 {
		t.Fatalf("snapshot.CurrentPage = %d, want 4", m.snapshot.CurrentPage)
	}
}

func TestFocus_ActivatesAgain(t *testing.T) {
	b := &fakeBrowser{snap: pageSnapshot(1, 3, artworks...)}
	m := sized(New(Options{Browser: b}))

	next, _ := m.Update(tea.BlurMsg{})
	m = next.(Model)
	if m.focused {
		t.Fatalf("focused after blur = true")
	}

	next, cmd := m.Update(tea.FocusMsg{})
	m = deliver(t, next.(Model), cmd)
	if !m.focused {
		t.Fatalf("focused after focus = false")
	}
	if b.loads != 1 {
		t.Fatalf("loads = %d, want 1", b.loads)
	}
}

func TestPagingKeys_RespectPredicates(t *testing.T) {
	b := &fakeBrowser{onShow: func(page int) state.Snapshot { return pageSnapshot(page, 2, artworks...) }}
	m := sized(New(Options{Browser: b}))
	m.applySnapshot(pageSnapshot(1, 2, artworks...))

	// No previous page from page 1.
	if _, cmd := press(t, m, runes("p")); cmd != nil {
		t.Fatalf("previous page on page 1 returned a command")
	}

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = deliver(t, m, cmd)
	if len(b.shown) != 1 || b.shown[0] != 2 {
		t.Fatalf("shown = %v, want [2]", b.shown)
	}
	if m.snapshot.CurrentPage != 2 {
		t.Fatalf("CurrentPage = %d, want 2", m.snapshot.CurrentPage)
	}

	// Last page: next is a no-op.
	if _, cmd := press(t, m, runes("n")); cmd != nil {
		t.Fatalf("next page on last page returned a command")
	}
}

func TestRefreshKey_CallsRefresh(t *testing.T) {
	b := &fakeBrowser{snap: pageSnapshot(1, 2, artworks...)}
	m := sized(New(Options{Browser: b}))

	m, cmd := press(t, m, runes("r"))
	deliver(t, m, cmd)
	if b.refresh != 1 {
		t.Fatalf("refresh = %d, want 1", b.refresh)
	}
}

func TestSearch_FiltersAndClears(t *testing.T) {
	m := sized(New(Options{Browser: &fakeBrowser{}}))
	m.applySnapshot(pageSnapshot(1, 1, artworks...))

	m, _ = press(t, m, runes("/"))
	if !m.searching {
		t.Fatalf("searching = false after /")
	}
	for _, r := range "vase" {
		m, _ = press(t, m, runes(string(r)))
	}
	visible := m.visibleRecords()
	if len(visible) != 1 || visible[0].ID != 3 {
		t.Fatalf("visible = %v, want only Vase", visible)
	}

	// Enter keeps the filter, esc in the list clears it.
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.searching || len(m.visibleRecords()) != 1 {
		t.Fatalf("enter should stop editing and keep the filter")
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if len(m.visibleRecords()) != len(artworks) {
		t.Fatalf("esc should clear the filter, visible = %d", len(m.visibleRecords()))
	}
}

func TestDetail_CarouselAndPageChange(t *testing.T) {
	m := sized(New(Options{Browser: &fakeBrowser{}}))
	m.applySnapshot(pageSnapshot(1, 3, artworks...))

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.view != ViewDetail {
		t.Fatalf("view = %v, want detail", m.view)
	}
	if m.carousel.Label() != "1/2" {
		t.Fatalf("carousel = %s, want 1/2", m.carousel.Label())
	}

	m, _ = press(t, m, runes("l"))
	m, _ = press(t, m, runes("l"))
	if m.carousel.Label() != "2/2" {
		t.Fatalf("carousel after l l = %s, want 2/2", m.carousel.Label())
	}
	if !strings.Contains(m.View(), "https://nrs.example/b") {
		t.Fatalf("detail view does not show the second image")
	}

	// Moving to another record resets the carousel.
	m, _ = press(t, m, runes("j"))
	if m.selected != 1 || m.carousel.Label() != "no images" {
		t.Fatalf("selected = %d carousel = %s", m.selected, m.carousel.Label())
	}

	// A page change returns to the list.
	m.applySnapshot(pageSnapshot(2, 3, artworks[:1]...))
	if m.view != ViewList || m.selected != 0 {
		t.Fatalf("after page change view = %v selected = %d", m.view, m.selected)
	}
}

func TestThemeAndLayout_PersistPrefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m := sized(New(Options{Browser: &fakeBrowser{}, PrefsPath: path, ThemeName: "Nightfox"}))

	m, _ = press(t, m, runes("T"))
	m, _ = press(t, m, runes("L"))
	if m.theme.Name != "Kanagawa" || m.layout != prefs.LayoutList {
		t.Fatalf("theme = %q layout = %q", m.theme.Name, m.layout)
	}

	saved, err := prefs.Load(path)
	if err != nil {
		t.Fatalf("prefs.Load returned error: %v", err)
	}
	if saved.Theme != "Kanagawa" || saved.Layout != prefs.LayoutList {
		t.Fatalf("saved prefs = %+v", saved)
	}
}

func TestView_ShowsRetryHintOnError(t *testing.T) {
	m := sized(New(Options{Browser: &fakeBrowser{}}))
	snap := pageSnapshot(1, 3, artworks...)
	snap.LastError = &harvard.RequestError{Page: 2, Err: &harvard.ServerError{StatusCode: 403}}
	m.applySnapshot(snap)

	view := m.View()
	if !strings.Contains(view, "check API_KEY") || !strings.Contains(view, "press r to retry") {
		t.Fatalf("view missing error hint:\n%s", view)
	}
}

func TestView_FailedFirstLoad(t *testing.T) {
	m := sized(New(Options{Browser: &fakeBrowser{}}))
	m.applySnapshot(state.Snapshot{LoadState: state.Failed, LastError: errors.New("offline")})

	if !strings.Contains(m.View(), "Unable to load artwork.") {
		t.Fatalf("view missing failed load message")
	}
}

func TestHelp_AnyKeyCloses(t *testing.T) {
	m := sized(New(Options{Browser: &fakeBrowser{}}))
	m, _ = press(t, m, runes("?"))
	if !m.showHelp || !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help overlay not shown")
	}
	m, _ = press(t, m, runes("x"))
	if m.showHelp {
		t.Fatalf("help still shown after key")
	}
}

func TestHeader_ShowsFetchingWhileCommandPending(t *testing.T) {
	b := &fakeBrowser{onShow: func(page int) state.Snapshot { return pageSnapshot(page, 3, artworks...) }}
	m := sized(New(Options{Browser: b}))
	m.applySnapshot(pageSnapshot(1, 3, artworks...))

	if strings.Contains(m.View(), "fetching") {
		t.Fatalf("idle view shows fetching")
	}

	m, cmd := press(t, m, runes("n"))
	if m.pending != 1 || !strings.Contains(m.View(), "fetching") {
		t.Fatalf("pending = %d, view missing fetching indicator", m.pending)
	}

	m = deliver(t, m, cmd)
	if m.pending != 0 || strings.Contains(m.View(), "fetching") {
		t.Fatalf("pending = %d after snapshot, indicator still shown", m.pending)
	}
	if m.snapshot.CurrentPage != 2 {
		t.Fatalf("CurrentPage = %d, want 2", m.snapshot.CurrentPage)
	}
}
