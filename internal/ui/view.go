package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/curator/internal/harvard"
	"github.com/five82/curator/internal/logtail"
	"github.com/five82/curator/internal/prefs"
	"github.com/five82/curator/internal/state"
)

const (
	headerHeight = 1
	footerHeight = 1
	// Border plus horizontal padding of a pane.
	paneChromeWidth  = 4
	paneChromeHeight = 2
)

func (m Model) bodyHeight() int {
	return m.height - headerHeight - footerHeight
}

func (m Model) renderMain() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderBody(),
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	snap := m.snapshot

	parts := []string{styles.Logo.Render("curator")}
	if snap.TotalPages > 0 {
		parts = append(parts, styles.Text.Render(fmt.Sprintf("page %d of %d", snap.CurrentPage, snap.TotalPages)))
	}
	if group, ok := snap.Current(); ok {
		parts = append(parts, styles.MutedText.Render(fmt.Sprintf("%d records", len(group.Records))))
	}
	parts = append(parts, styles.LoadStateBadge(snap.LoadState).Render(snap.LoadState.String()))
	if m.busy() {
		parts = append(parts, styles.InfoText.Render(m.spinner.View()+" fetching"))
	}
	if label := lastUpdatedLabel(snap, time.Now()); label != "" {
		parts = append(parts, styles.FaintText.Render(label))
	}
	if !m.focused {
		parts = append(parts, styles.WarningText.Render("inactive"))
	}
	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	switch {
	case m.searching:
		return styles.Footer.Width(m.width).Render(m.search.View())
	case m.snapshot.LastError != nil:
		msg := fmt.Sprintf("%s · press r to retry", describeError(m.snapshot.LastError))
		return styles.Footer.Width(m.width).Render(styles.DangerText.Render(truncate(msg, m.width-2)))
	case m.view == ViewLogs && m.logErr != nil:
		return styles.Footer.Width(m.width).Render(styles.DangerText.Render(m.logErr.Error()))
	}

	line := m.help.ShortHelpView(m.keys.ShortHelp())
	if q := m.search.Value(); q != "" {
		line = styles.AccentText.Render("filter: "+q) + "  " + line
	}
	return styles.Footer.Width(m.width).Render(line)
}

func (m Model) renderBody() string {
	height := max(m.bodyHeight(), paneChromeHeight+1)
	styles := m.theme.Styles()

	switch m.view {
	case ViewLogs:
		return m.logView.View()
	case ViewDetail:
		inner := m.width - paneChromeWidth
		return styles.Focused.Width(m.width - 2).Height(height - paneChromeHeight).
			Render(m.renderDetail(inner, height-paneChromeHeight))
	}

	if m.layout == prefs.LayoutList || m.width < 80 {
		return styles.Focused.Width(m.width - 2).Height(height - paneChromeHeight).
			Render(m.renderList(m.width-paneChromeWidth, height-paneChromeHeight))
	}

	listWidth := m.width * 2 / 5
	detailWidth := m.width - listWidth
	list := styles.Focused.Width(listWidth - 2).Height(height - paneChromeHeight).
		Render(m.renderList(listWidth-paneChromeWidth, height-paneChromeHeight))
	detail := styles.Pane.Width(detailWidth - 2).Height(height - paneChromeHeight).
		Render(m.renderDetail(detailWidth-paneChromeWidth, height-paneChromeHeight))
	return lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
}

func (m Model) renderList(width, height int) string {
	styles := m.theme.Styles()
	records := m.visibleRecords()
	if len(records) == 0 {
		return m.renderEmpty()
	}

	start := 0
	if m.selected >= height {
		start = m.selected - height + 1
	}

	const datedWidth = 12
	titleWidth := max(width-datedWidth-1, 8)
	lines := make([]string, 0, height)
	for i := start; i < len(records) && i < start+height; i++ {
		r := records[i]
		line := padRight(truncate(r.Title, titleWidth), titleWidth) + " " + truncate(r.Dated, datedWidth)
		if i == m.selected {
			lines = append(lines, styles.Selected.Width(width).Render(line))
			continue
		}
		lines = append(lines, styles.Text.Render(line))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderEmpty() string {
	styles := m.theme.Styles()
	snap := m.snapshot
	switch {
	case snap.LoadState == state.NotLoaded || (snap.LoadState == state.Loading && len(snap.Groups) == 0):
		return styles.MutedText.Render(m.spinner.View() + " Loading artwork...")
	case snap.LoadState == state.Failed && len(snap.Groups) == 0:
		return styles.DangerText.Render("Unable to load artwork.") + "\n" +
			styles.MutedText.Render("Press r to try again.")
	case m.search.Value() != "":
		return styles.MutedText.Render(fmt.Sprintf("No records on this page match %q.", m.search.Value()))
	default:
		return styles.MutedText.Render("This page has no records.")
	}
}

func (m Model) renderDetail(width, height int) string {
	styles := m.theme.Styles()
	obj, ok := m.selectedRecord()
	if !ok {
		return styles.FaintText.Render("Select an artwork to see its details.")
	}
	wrap := lipgloss.NewStyle().Width(max(width, 1))

	var b strings.Builder
	b.WriteString(wrap.Inherit(styles.Title).Render(obj.Title))
	b.WriteString("\n\n")

	for _, person := range obj.People {
		name := strings.TrimSpace(person.PersonPrefix + " " + person.DisplayName)
		if person.Role != "" {
			name += styles.FaintText.Render(" (" + person.Role + ")")
		}
		b.WriteString(styles.AccentText.Render(name))
		b.WriteString("\n")
	}
	if len(obj.People) > 0 {
		b.WriteString("\n")
	}

	for _, f := range detailFields(obj) {
		b.WriteString(styles.Label.Render(f.label))
		b.WriteString(styles.Text.Render(truncate(f.value, width-16)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderImage(width))
	b.WriteString("\n\n")
	b.WriteString(renderSwatches(obj.Colors, width, styles.FaintText))

	if desc := strings.TrimSpace(obj.Description); desc != "" {
		b.WriteString("\n\n")
		b.WriteString(wrap.Inherit(styles.Text).Render(desc))
	}
	if prov := strings.TrimSpace(obj.Provenance); prov != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.MutedText.Render("Provenance"))
		b.WriteString("\n")
		b.WriteString(wrap.Inherit(styles.FaintText).Render(prov))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.InfoText.Render(truncate(obj.URL, width)))

	return clipLines(b.String(), height)
}

func (m Model) renderImage(width int) string {
	styles := m.theme.Styles()
	img, ok := m.carousel.Current()
	if !ok {
		return styles.FaintText.Render("Image  no images")
	}

	prev := styles.FaintText.Render("‹")
	if m.carousel.CanPrev() {
		prev = styles.AccentText.Render("‹")
	}
	next := styles.FaintText.Render("›")
	if m.carousel.CanNext() {
		next = styles.AccentText.Render("›")
	}

	lines := []string{
		fmt.Sprintf("%s %s %s %s", styles.MutedText.Render("Image"), prev, m.carousel.Label(), next),
		styles.InfoText.Render(truncate(img.BaseImageURL, width)),
		styles.FaintText.Render(fmt.Sprintf("%d×%d", img.Width, img.Height)),
	}
	if caption := firstNonEmpty(img.PublicCaption, img.AltText, img.Description); caption != "" {
		lines = append(lines, styles.Text.Render(truncate(caption, width)))
	}
	return strings.Join(lines, "\n")
}

type detailField struct {
	label string
	value string
}

// detailFields lists the populated metadata rows for an artwork.
func detailFields(obj harvard.Object) []detailField {
	candidates := []detailField{
		{"Dated", obj.Dated},
		{"Classification", obj.Classification},
		{"Culture", obj.Culture},
		{"Century", obj.Century},
		{"Period", obj.Period},
		{"Medium", obj.Medium},
		{"Technique", obj.Technique},
		{"Object number", obj.ObjectNumber},
		{"Credit line", obj.CreditLine},
		{"Copyright", obj.Copyright},
	}
	if obj.AccessionYear > 0 {
		candidates = append(candidates, detailField{"Accessioned", strconv.Itoa(obj.AccessionYear)})
	}
	if obj.TotalPageViews > 0 {
		candidates = append(candidates, detailField{"Page views", strconv.Itoa(obj.TotalPageViews)})
	}

	fields := make([]detailField, 0, len(candidates))
	for _, f := range candidates {
		if strings.TrimSpace(f.value) != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

func (m Model) renderLogLines(entries []logtail.Entry) string {
	styles := m.theme.Styles()
	if len(entries) == 0 {
		return styles.FaintText.Render("No log entries yet.")
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		style := styles.Text
		switch e.Level {
		case "error", "fatal", "panic":
			style = styles.DangerText
		case "warning", "warn":
			style = styles.WarningText
		case "debug", "trace":
			style = styles.FaintText
		}
		lines = append(lines, style.Render(e.Format()))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	content := styles.Title.Render("Keyboard Shortcuts") + "\n\n" +
		m.help.FullHelpView(m.keys.FullHelp())

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

// describeError turns a fetch error into a status line the user can act on.
func describeError(err error) string {
	var serverErr *harvard.ServerError
	switch {
	case errors.As(err, &serverErr) && (serverErr.StatusCode == 401 || serverErr.StatusCode == 403):
		return fmt.Sprintf("API rejected the key (%d); check API_KEY", serverErr.StatusCode)
	case harvard.IsServer(err):
		return "API error: " + err.Error()
	case harvard.IsTransport(err):
		return "network error: " + err.Error()
	case harvard.IsDecoding(err):
		return "unexpected response: " + err.Error()
	default:
		return err.Error()
	}
}

func clipLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
