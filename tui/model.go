// Package tui is the interactive terminal front end: a home feed with tabs,
// search and infinite scroll, and a detail view per movie.
package tui

import (
	"context"
	"slices"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/s0up4200/cinefeed/detail"
	"github.com/s0up4200/cinefeed/feed"
	"github.com/s0up4200/cinefeed/filter"
	"github.com/s0up4200/cinefeed/i18n"
	"github.com/s0up4200/cinefeed/prefs"
	"github.com/s0up4200/cinefeed/tmdb"
)

type screen int

const (
	homeScreen screen = iota
	detailScreen
)

// Options configures the terminal UI
type Options struct {
	API    tmdb.API
	Images tmdb.ImageResolver
	// Prefs persists toggles. When nil, preferences live in memory only and
	// start from InitialPrefs.
	Prefs          *prefs.Store
	InitialPrefs   prefs.Prefs
	Category       feed.Category
	SentinelMargin int
	Filter         *filter.Filter
	Logger         zerolog.Logger
}

type feedResultMsg struct {
	result feed.Result
}

type detailResultMsg struct {
	result detail.Result
}

// Model is the bubbletea model of the application
type Model struct {
	ctx    context.Context
	logger zerolog.Logger

	feed     *feed.Controller
	sentinel *feed.Sentinel
	loader   *detail.Loader
	images   tmdb.ImageResolver
	filter   *filter.Filter

	store  *prefs.Store
	prefs  prefs.Prefs
	cat    *i18n.Catalog
	styles styles

	keys     keyMap
	help     help.Model
	search   textinput.Model
	spinner  spinner.Model
	viewport viewport.Model

	screen   screen
	selected tmdb.Movie
	cursor   int
	offset   int
	margin   int
	status   string
	width    int
	height   int
}

// New creates the model. Nothing is fetched until Init runs.
func New(ctx context.Context, opts Options) Model {
	p := opts.InitialPrefs
	if opts.Prefs != nil {
		p = opts.Prefs.Get()
	}
	if p.Validate() != nil {
		p = prefs.Defaults()
	}

	controller := feed.NewController(opts.API, opts.Category, opts.Logger)

	ti := textinput.New()
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "🔍 "

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:      ctx,
		logger:   opts.Logger,
		feed:     controller,
		sentinel: feed.NewSentinel(controller),
		loader:   detail.NewLoader(opts.API, opts.Logger),
		images:   opts.Images,
		filter:   opts.Filter,
		store:    opts.Prefs,
		keys:     defaultKeyMap(),
		help:     help.New(),
		search:   ti,
		spinner:  sp,
		viewport: viewport.New(80, 20),
		margin:   opts.SentinelMargin,
		width:    80,
		height:   24,
	}
	m.setPrefs(p)
	return m
}

// Init starts the first page load
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.start())
}

func (m Model) start() tea.Cmd {
	return m.fetchFeed(m.feed.Start())
}

func (m Model) fetchFeed(req feed.Request) tea.Cmd {
	ctrl, ctx := m.feed, m.ctx
	return func() tea.Msg {
		return feedResultMsg{result: ctrl.Fetch(ctx, req)}
	}
}

func (m Model) fetchDetail(req detail.Request) tea.Cmd {
	loader, ctx := m.loader, m.ctx
	return func() tea.Msg {
		return detailResultMsg{result: loader.Fetch(ctx, req)}
	}
}

// Update handles messages and user input
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.search.Width = max(10, min(60, msg.Width-10))
		m.resizeViewport()
		m.ensureVisible()
		cmd := m.observeSentinel()
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case feedResultMsg:
		if !m.feed.Apply(msg.result) {
			return m, nil
		}
		m.clampCursor()
		cmd := m.observeSentinel()
		return m, cmd

	case detailResultMsg:
		if m.loader.Apply(msg.result) {
			m.refreshDetail()
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		switch {
		case m.screen == detailScreen:
			return m.updateDetail(msg)
		case m.search.Focused():
			return m.updateSearch(msg)
		default:
			return m.updateHome(msg)
		}
	}

	if m.search.Focused() {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols := m.columns()

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-cols)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(cols)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-cols * m.visibleRows())
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(cols * m.visibleRows())
	case key.Matches(msg, m.keys.Top):
		m.moveCursor(-len(m.items()))
	case key.Matches(msg, m.keys.Bottom):
		m.moveCursor(len(m.items()))
	case key.Matches(msg, m.keys.NextTab):
		cmd = m.switchCategory(1)
		return m, cmd
	case key.Matches(msg, m.keys.PrevTab):
		cmd = m.switchCategory(-1)
		return m, cmd
	case key.Matches(msg, m.keys.Search):
		cmd = m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Back):
		cmd = m.closeSearch()
		return m, cmd
	case key.Matches(msg, m.keys.Open):
		if items := m.items(); m.cursor < len(items) {
			cmd = m.openDetail(items[m.cursor])
		}
		return m, cmd
	case key.Matches(msg, m.keys.More):
		if req, ok := m.feed.RequestMore(); ok {
			cmd = m.fetchFeed(req)
		}
		return m, cmd
	case key.Matches(msg, m.keys.Retry):
		if m.feed.State().Phase != feed.Errored {
			return m, nil
		}
		if req, ok := m.feed.Retry(); ok {
			cmd = m.fetchFeed(req)
		}
		return m, cmd
	case key.Matches(msg, m.keys.Language), key.Matches(msg, m.keys.Theme), key.Matches(msg, m.keys.View):
		cmd = m.changePrefs(togglePref(msg, m.keys))
		return m, cmd
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	default:
		return m, nil
	}
	cmd = m.observeSentinel()
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.search.Blur()
		cmd := m.closeSearch()
		return m, cmd
	}
	if key.Matches(msg, m.keys.Submit) {
		m.search.Blur()
		cmd := m.observeSentinel()
		return m, cmd
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}

	req, ok := m.feed.UpdateSearchText(m.search.Value())
	if !ok {
		return m, cmd
	}
	m.resetCursor()
	return m, tea.Batch(cmd, m.fetchFeed(req))
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.screen = homeScreen
		m.keys.detailShown = false
		m.sentinel.SetMounted(true)
		cmd = m.observeSentinel()
		return m, cmd
	case key.Matches(msg, m.keys.Retry):
		if req, ok := m.loader.Retry(); ok {
			cmd = m.fetchDetail(req)
		}
		return m, cmd
	case key.Matches(msg, m.keys.Language), key.Matches(msg, m.keys.Theme):
		cmd = m.changePrefs(togglePref(msg, m.keys))
		return m, cmd
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizeViewport()
		return m, nil
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// togglePref returns the preference change bound to msg
func togglePref(msg tea.KeyMsg, keys keyMap) func(prefs.Prefs) prefs.Prefs {
	return func(p prefs.Prefs) prefs.Prefs {
		switch {
		case key.Matches(msg, keys.Language):
			p.Language = p.Language.Next()
		case key.Matches(msg, keys.Theme):
			p.Theme = p.Theme.Toggle()
		case key.Matches(msg, keys.View):
			p.ViewMode = p.ViewMode.Toggle()
		}
		return p
	}
}

func (m *Model) switchCategory(step int) tea.Cmd {
	current := m.feed.State().Category
	i := slices.Index(feed.Categories, current)
	n := len(feed.Categories)
	next := feed.Categories[((i+step)%n+n)%n]

	m.search.Blur()
	m.search.SetValue("")
	req, ok := m.feed.SelectCategory(next)
	if !ok {
		return nil
	}
	m.resetCursor()
	return m.fetchFeed(req)
}

func (m *Model) closeSearch() tea.Cmd {
	m.search.SetValue("")
	req, ok := m.feed.CloseSearch()
	if !ok {
		return nil
	}
	m.resetCursor()
	return m.fetchFeed(req)
}

func (m *Model) openDetail(movie tmdb.Movie) tea.Cmd {
	m.screen = detailScreen
	m.keys.detailShown = true
	m.selected = movie
	m.sentinel.SetMounted(false)

	req, ok := m.loader.Enter(strconv.FormatInt(movie.ID, 10))
	m.resizeViewport()
	m.refreshDetail()
	m.viewport.GotoTop()
	if !ok {
		return nil
	}
	return m.fetchDetail(req)
}

// changePrefs applies change and persists it. A failed save keeps the new
// value for this session and reports the error in the status line.
func (m *Model) changePrefs(change func(prefs.Prefs) prefs.Prefs) tea.Cmd {
	next := change(m.prefs)
	m.status = ""
	if m.store != nil {
		if err := m.store.Update(next); err != nil {
			m.logger.Warn().Err(err).Msg("Failed to save preferences")
			m.status = err.Error()
		}
	}
	m.setPrefs(next)
	m.ensureVisible()
	return m.observeSentinel()
}

func (m *Model) setPrefs(p prefs.Prefs) {
	m.prefs = p
	m.cat = i18n.New(p.Language)
	m.styles = newStyles(p.Theme)
	m.search.Placeholder = m.cat.T(i18n.SearchPlaceholder)
	m.spinner.Style = m.styles.spinner
	m.refreshDetail()
}

// items returns the feed items that pass the display filter
func (m Model) items() []tmdb.Movie {
	return m.filter.Apply(m.feed.State().Items)
}

func (m *Model) resetCursor() {
	m.cursor = 0
	m.offset = 0
}

func (m *Model) moveCursor(delta int) {
	n := len(m.items())
	if n == 0 {
		m.resetCursor()
		return
	}
	m.cursor = max(0, min(n-1, m.cursor+delta))
	m.ensureVisible()
}

func (m *Model) clampCursor() {
	n := len(m.items())
	if m.cursor >= n {
		m.cursor = max(0, n-1)
	}
	m.ensureVisible()
}

// ensureVisible scrolls so the cursor row is on screen
func (m *Model) ensureVisible() {
	cols, rows := m.columns(), m.visibleRows()
	row := m.cursor / cols
	if row < m.offset {
		m.offset = row
	}
	if row >= m.offset+rows {
		m.offset = row - rows + 1
	}
	total := (len(m.items()) + cols - 1) / cols
	if m.offset > max(0, total-rows) {
		m.offset = max(0, total-rows)
	}
}

// sentinelVisible reports whether the end of the list is within margin rows
// of the bottom of the window
func (m Model) sentinelVisible() bool {
	cols := m.columns()
	total := (len(m.items()) + cols - 1) / cols
	return total-(m.offset+m.visibleRows()) <= m.margin
}

func (m *Model) observeSentinel() tea.Cmd {
	if m.screen != homeScreen {
		return nil
	}
	req, ok := m.sentinel.Observe(m.sentinelVisible())
	if !ok {
		return nil
	}
	return m.fetchFeed(req)
}
