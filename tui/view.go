package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/s0up4200/cinefeed/feed"
	"github.com/s0up4200/cinefeed/i18n"
	"github.com/s0up4200/cinefeed/prefs"
	"github.com/s0up4200/cinefeed/tmdb"
)

const (
	gridCellWidth  = 30
	rowHeight      = 3
	excerptLength  = 150
	minListHeight  = rowHeight
	selectedMarker = "▸ "
)

// View renders the current screen
func (m Model) View() string {
	if m.screen == detailScreen {
		return m.detailView()
	}

	header := m.header()
	footer := m.footer()
	body := m.body(m.visibleRows())

	height := max(minListHeight, m.height-lipgloss.Height(header)-lipgloss.Height(footer))
	body = lipgloss.NewStyle().Height(height).MaxHeight(height).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) columns() int {
	if m.prefs.ViewMode == prefs.List {
		return 1
	}
	return max(1, m.width/gridCellWidth)
}

func (m Model) visibleRows() int {
	height := m.height - lipgloss.Height(m.header()) - lipgloss.Height(m.footer())
	return max(1, height/rowHeight)
}

func (m Model) header() string {
	st := m.feed.State()

	var tabs []string
	for _, c := range feed.Categories {
		label := m.categoryLabel(c)
		if c == st.Category && !st.IsSearching() {
			tabs = append(tabs, m.styles.activeTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.tab.Render(label))
		}
	}
	if st.IsSearching() {
		tabs = append(tabs, m.styles.activeTab.Render(m.cat.T(i18n.SearchResults, st.SearchText)))
	}

	controls := m.styles.control.Render(m.controlsLabel())
	title := m.styles.title.Render("🎬 " + m.cat.T(i18n.Title))
	gap := max(1, m.width-lipgloss.Width(title)-lipgloss.Width(controls))
	lines := []string{
		title + strings.Repeat(" ", gap) + controls,
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
	}

	if m.search.Focused() || st.Searching {
		lines = append(lines, m.styles.search.Render(m.search.View()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

func (m Model) controlsLabel() string {
	lang := "EN"
	if m.prefs.Language == prefs.TraditionalChinese {
		lang = "繁中"
	}
	theme := m.cat.T(i18n.Dark)
	if m.prefs.Theme == prefs.Light {
		theme = m.cat.T(i18n.Light)
	}
	view := m.cat.T(i18n.GridView)
	if m.prefs.ViewMode == prefs.List {
		view = m.cat.T(i18n.ListView)
	}
	return fmt.Sprintf("%s · %s · %s", lang, theme, view)
}

func (m Model) categoryLabel(c feed.Category) string {
	if c == feed.TopRated {
		return m.cat.T(i18n.TopRated)
	}
	return m.cat.T(i18n.NowPlaying)
}

func (m Model) body(rows int) string {
	st := m.feed.State()
	items := m.items()

	switch {
	case st.Phase == feed.Idle || st.Phase == feed.LoadingInitial:
		return m.spinner.View() + " " + m.styles.status.Render(m.cat.T(i18n.Loading))
	case len(items) == 0 && st.Phase == feed.Errored:
		return ""
	case len(items) == 0:
		return m.styles.empty.Render(m.cat.T(i18n.NoResults))
	}

	cols := m.columns()
	first := m.offset * cols
	last := min(len(items), (m.offset+rows)*cols)

	var out []string
	for start := first; start < last; start += cols {
		end := min(last, start+cols)
		if cols == 1 {
			out = append(out, m.listRow(items[start], start == m.cursor))
			continue
		}
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cells = append(cells, m.gridCell(items[i], i == m.cursor))
		}
		out = append(out, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(out, "\n")
}

func (m Model) listRow(movie tmdb.Movie, selected bool) string {
	width := max(20, m.width-2)
	style, marker := m.styles.item, "  "
	if selected {
		style, marker = m.styles.selected, selectedMarker
	}

	title := fmt.Sprintf("%s (%s)", movie.Title, m.cat.Year(movie.Year()))
	rating := m.styles.rating.Render(fmt.Sprintf("★ %.1f", movie.VoteAverage))
	line := marker + style.Render(runewidth.Truncate(title, width-10, "…")) + "  " + rating

	overview := excerpt(movie.Overview, excerptLength)
	if overview == "" {
		overview = m.cat.T(i18n.NoOverview)
	}
	return line + "\n  " + m.styles.overview.Render(runewidth.Truncate(overview, width-2, "…")) + "\n"
}

func (m Model) gridCell(movie tmdb.Movie, selected bool) string {
	width := gridCellWidth - 2
	style, marker := m.styles.item, "  "
	if selected {
		style, marker = m.styles.selected, selectedMarker
	}

	title := marker + style.Render(runewidth.Truncate(movie.Title, width-2, "…"))
	meta := "  " + m.styles.rating.Render(fmt.Sprintf("★ %.1f", movie.VoteAverage)) +
		m.styles.meta.Render(" · "+m.cat.Year(movie.Year()))
	return lipgloss.NewStyle().Width(gridCellWidth).Render(title + "\n" + meta + "\n")
}

func (m Model) footer() string {
	st := m.feed.State()
	var lines []string

	switch {
	case st.Phase == feed.Errored:
		panel := m.styles.errorText.Render("⚠ "+m.cat.Error(st.LastError)) + "\n" +
			m.styles.status.Render("r: "+m.cat.T(i18n.TryAgain))
		lines = append(lines, m.styles.errorPanel.Render(panel))
	case st.Phase == feed.LoadingAppend:
		lines = append(lines, m.spinner.View()+" "+m.styles.status.Render(m.cat.T(i18n.LoadingMore)))
	case st.Phase == feed.Loaded && len(st.Items) > 0:
		status := m.cat.T(i18n.ResultCount, len(st.Items), st.TotalResults)
		if !st.HasMore {
			status = m.cat.T(i18n.EndOfList) + " · " + status
		}
		if m.filter != nil {
			status += " · " + m.cat.T(i18n.FilterActive, m.filter.Expression())
		}
		lines = append(lines, m.styles.status.Render(status))
	}

	if m.status != "" {
		lines = append(lines, m.styles.errorText.Render(m.status))
	}
	lines = append(lines, m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

// excerpt cuts s to n runes, marking the cut with an ellipsis
func excerpt(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "..."
}

func (m *Model) resizeViewport() {
	m.viewport.Width = max(20, m.width-4)
	m.viewport.Height = max(3, m.height-lipgloss.Height(m.detailHeader())-lipgloss.Height(m.help.View(m.keys))-1)
	m.refreshDetail()
}

func (m *Model) refreshDetail() {
	if m.loader == nil {
		return
	}
	m.viewport.SetContent(m.detailContent())
}

func (m Model) detailHeader() string {
	title := m.selected.Title
	if st := m.loader.State(); st.Record != nil {
		title = st.Record.Title
	}
	return m.styles.title.Render("← "+m.cat.T(i18n.Back)+"  ") + m.styles.label.Render(title) + "\n"
}

func (m Model) detailView() string {
	st := m.loader.State()
	var body string

	switch {
	case st.Loading:
		body = m.spinner.View() + " " + m.styles.status.Render(m.cat.T(i18n.Loading))
	case st.Err != nil:
		panel := m.styles.errorText.Render("⚠ "+m.cat.Error(st.Err)) + "\n" +
			m.styles.status.Render("r: "+m.cat.T(i18n.TryAgain))
		body = m.styles.errorPanel.Render(panel)
	default:
		body = m.styles.detailFrame.Render(m.viewport.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.detailHeader(), body, m.help.View(m.keys))
}

func (m Model) detailContent() string {
	rec := m.loader.State().Record
	if rec == nil {
		return ""
	}

	width := max(20, m.viewport.Width-2)
	wrap := lipgloss.NewStyle().Width(width)
	field := func(label, value string) string {
		return m.styles.label.Render(label+": ") + m.styles.item.Render(value)
	}

	var sb strings.Builder
	sb.WriteString(m.styles.heading.Render(fmt.Sprintf("%s (%s)", rec.Title, m.cat.Year(rec.Year()))))
	sb.WriteString("\n")

	sb.WriteString(field(m.cat.T(i18n.Rating), m.styles.rating.Render(fmt.Sprintf("★ %.1f / 10", rec.VoteAverage))))
	sb.WriteString("\n")
	sb.WriteString(field(m.cat.T(i18n.VoteCount), fmt.Sprintf("%d", rec.VoteCount)))
	sb.WriteString("\n")

	releaseDate := i18n.UnknownYear
	if t, ok := rec.Released(); ok {
		releaseDate = t.Format("2006-01-02")
	}
	sb.WriteString(field(m.cat.T(i18n.ReleaseDate), releaseDate))
	sb.WriteString("\n")

	if rec.Runtime > 0 {
		sb.WriteString(field(m.cat.T(i18n.Runtime), m.cat.T(i18n.Minutes, rec.Runtime)))
		sb.WriteString("\n")
	}
	if genres := rec.GenreNames(); len(genres) > 0 {
		sb.WriteString(field(m.cat.T(i18n.Genres), strings.Join(genres, ", ")))
		sb.WriteString("\n")
	}
	if rec.Budget > 0 {
		sb.WriteString(field(m.cat.T(i18n.Budget), fmt.Sprintf("$%d", rec.Budget)))
		sb.WriteString("\n")
	}
	if rec.Revenue > 0 {
		sb.WriteString(field(m.cat.T(i18n.Revenue), fmt.Sprintf("$%d", rec.Revenue)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.label.Render(m.cat.T(i18n.Overview)))
	sb.WriteString("\n")
	overview := strings.TrimSpace(rec.Overview)
	if overview == "" {
		overview = m.cat.T(i18n.NoOverview)
	}
	sb.WriteString(wrap.Render(m.styles.item.Render(overview)))
	sb.WriteString("\n")

	if companies := rec.CompanyNames(); len(companies) > 0 {
		sb.WriteString("\n")
		sb.WriteString(m.styles.label.Render(m.cat.T(i18n.Companies)))
		sb.WriteString("\n")
		for _, name := range companies {
			sb.WriteString("  • " + m.styles.item.Render(name) + "\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(field(m.cat.T(i18n.Poster), m.images.Poster(rec.PosterPath, tmdb.SizeLarge)))
	sb.WriteString("\n")
	sb.WriteString(field(m.cat.T(i18n.Backdrop), m.images.Backdrop(rec.BackdropPath, tmdb.SizeLarge)))
	sb.WriteString("\n")

	return sb.String()
}
