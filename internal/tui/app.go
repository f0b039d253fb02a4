package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/nikbrunner/mev/internal/auth"
	"github.com/nikbrunner/mev/internal/logger"
	"github.com/nikbrunner/mev/internal/model"
	"github.com/nikbrunner/mev/internal/nav"
	"github.com/nikbrunner/mev/internal/query"
	"github.com/nikbrunner/mev/internal/search"
	"github.com/nikbrunner/mev/internal/tui/layout"
)

// resultsHeaderLines is the title and spacer above the result list.
const resultsHeaderLines = 2

// pageMsg delivers a loaded (or failed) result page.
type pageMsg struct {
	page search.Page
}

// authResultMsg delivers the outcome of an auth submit.
type authResultMsg struct {
	result auth.Result
}

// App is the main bubbletea model: a facet pane, a result list with
// infinite scroll, and the auth and profile modals.
type App struct {
	fetcher      search.Fetcher
	backend      auth.Backend
	log          *log.Logger
	copy         func(string) error
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	// Search state
	router *nav.Router
	sync   *search.Synchronizer
	feed   *search.Feed
	rows   []FacetRow

	mode     Mode
	focus    Pane
	cursor   int // selected result
	facetIdx int // selected facet row

	// For gg command
	lastKeyWasG bool

	keywordInput textinput.Model
	auth         AuthState
	profile      ProfileState
	spinner      spinner.Model

	messageText string
	messageType MessageType

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Fetcher      search.Fetcher
	Auth         auth.Backend
	Query        query.Query        // initial location
	Logger       *log.Logger        // optional, discards if nil
	Clipboard    func(string) error // optional, system clipboard if nil
	PictureLimit int64              // optional, profile.MaxPictureSize if zero
	Keys         *KeyMap            // optional, uses default if nil
	Styles       *Styles            // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	lg := params.Logger
	if lg == nil {
		lg = logger.Discard()
	}

	copyFn := params.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	router := nav.NewRouter(params.Query)
	sync := search.NewSynchronizer(router)

	return App{
		fetcher:      params.Fetcher,
		backend:      params.Auth,
		log:          lg,
		copy:         copyFn,
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutCfg,
		router:       router,
		sync:         sync,
		feed:         search.NewFeed(sync.Mode(), sync.QueryString()),
		rows:         facetRows(),
		keywordInput: newInput("keyword", layoutCfg.Input.KeywordCharLimit, layoutCfg.Input.StandardWidth),
		auth:         NewAuthState(layoutCfg),
		profile:      NewProfileState(params.PictureLimit, layoutCfg),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		width:        80,
		height:       24,
	}
}

// WithDimensions returns a copy of the App with the given terminal size.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Cursor returns the selected result index.
func (a App) Cursor() int {
	return a.cursor
}

// FacetCursor returns the selected facet row.
func (a App) FacetCursor() FacetRow {
	return a.rows[a.facetIdx]
}

// Mode returns the input mode.
func (a App) Mode() Mode {
	return a.mode
}

// Focus returns the focused pane.
func (a App) Focus() Pane {
	return a.focus
}

// Results returns the loaded results of the current location.
func (a App) Results() []model.MenuItem {
	return a.feed.Items()
}

// Loading reports whether a result page is in flight.
func (a App) Loading() bool {
	return a.feed.Loading()
}

// Location returns the committed query.
func (a App) Location() query.Query {
	return a.router.Current()
}

// Draft returns the uncommitted facet selection.
func (a App) Draft() query.Query {
	return a.sync.Draft()
}

// Auth returns the auth modal machine.
func (a App) Auth() *auth.Machine {
	return a.auth.Machine
}

// Message returns the text of the message line.
func (a App) Message() string {
	return a.messageText
}

// Init implements tea.Model. It requests the first page of the initial
// location.
func (a App) Init() tea.Cmd {
	return a.startFeed()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, a.loadMoreIfVisible()

	case pageMsg:
		return a.handlePage(msg.page)

	case authResultMsg:
		return a.handleAuthResult(msg.result)

	case spinner.TickMsg:
		if !a.busy() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		switch a.mode {
		case ModeKeyword:
			return a.handleKeywordKey(msg)
		case ModeAuth:
			return a.handleAuthKey(msg)
		case ModeProfile:
			return a.handleProfileKey(msg)
		default:
			return a.handleBrowseKey(msg)
		}
	}

	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

func (a App) busy() bool {
	return a.feed.Loading() || a.auth.Machine.Pending()
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

func (a *App) clearMessage() {
	a.messageText = ""
}

// handleBrowseKey handles keys while the panes have the keyboard.
func (a App) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.clearMessage()

	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.lastKeyWasG = false
			if a.focus == PaneFacets {
				a.facetIdx = 0
			} else {
				a.cursor = 0
			}
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if a.focus == PaneFacets {
			if a.facetIdx < len(a.rows)-1 {
				a.facetIdx++
			}
			return a, nil
		}
		if a.cursor < a.feed.Len()-1 {
			a.cursor++
		}
		return a, a.loadMoreIfVisible()

	case key.Matches(msg, a.keys.Up):
		if a.focus == PaneFacets {
			if a.facetIdx > 0 {
				a.facetIdx--
			}
			return a, nil
		}
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if a.focus == PaneFacets {
			a.facetIdx = len(a.rows) - 1
			return a, nil
		}
		if a.feed.Len() > 0 {
			a.cursor = a.feed.Len() - 1
		}
		return a, a.loadMoreIfVisible()

	case key.Matches(msg, a.keys.SwitchPane):
		if a.focus == PaneFacets {
			a.focus = PaneResults
		} else {
			a.focus = PaneFacets
		}

	case key.Matches(msg, a.keys.Toggle):
		if a.focus == PaneFacets {
			row := a.rows[a.facetIdx]
			a.sync.Toggle(row.Facet.Key, row.Option.ID)
		}

	case key.Matches(msg, a.keys.Apply):
		a.sync.Apply()
		return a, a.refresh()

	case key.Matches(msg, a.keys.Reset):
		a.sync.Reset()
		return a, a.refresh()

	case key.Matches(msg, a.keys.Back):
		if a.router.Back() {
			a.sync.Sync()
			return a, a.refresh()
		}

	case key.Matches(msg, a.keys.Forward):
		if a.router.Forward() {
			a.sync.Sync()
			return a, a.refresh()
		}

	case key.Matches(msg, a.keys.Keyword):
		a.mode = ModeKeyword
		a.keywordInput.SetValue(a.sync.Keyword())
		a.keywordInput.CursorEnd()
		a.keywordInput.Focus()

	case key.Matches(msg, a.keys.Login):
		a.auth.Machine.Open()
		a.auth.Reset()
		a.mode = ModeAuth

	case key.Matches(msg, a.keys.Profile):
		a.profile.Reset()
		a.profile.PathInput.Focus()
		a.mode = ModeProfile

	case key.Matches(msg, a.keys.Yank):
		items := a.feed.Items()
		if len(items) == 0 {
			return a, nil
		}
		item := items[a.cursor]
		a.yank(item.MenuName + " " + item.RestaurantName)
	}

	return a, nil
}

// handleKeywordKey handles the keyword input. Enter pushes a new location
// holding only the keyword.
func (a App) handleKeywordKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.mode = ModeBrowse
		a.keywordInput.Blur()
		return a, nil

	case key.Matches(msg, a.keys.Confirm):
		keyword := strings.TrimSpace(a.keywordInput.Value())
		a.mode = ModeBrowse
		a.keywordInput.Blur()
		a.router.Push(query.ForKeyword(keyword))
		a.sync.Sync()
		return a, a.refresh()
	}

	var cmd tea.Cmd
	a.keywordInput, cmd = a.keywordInput.Update(msg)
	return a, cmd
}

func (a *App) yank(text string) {
	if err := a.copy(text); err != nil {
		a.log.Warn("clipboard write failed", "err", err)
		a.setMessage(MessageError, "clipboard: "+err.Error())
		return
	}
	a.setMessage(MessageSuccess, "copied "+text)
}

// refresh starts a new feed when the location no longer matches the current
// one, or when the first page of the current one failed. Locations are keyed
// by mode and encoded query, so re-applying the same selection keeps the
// loaded results.
func (a *App) refresh() tea.Cmd {
	mode, qs := a.sync.Mode(), a.sync.QueryString()
	if a.feed.Mode() == mode && a.feed.Query() == qs && !a.firstPageFailed() {
		return nil
	}

	a.log.Info("location changed", "mode", mode, "query", qs)
	a.feed = search.NewFeed(mode, qs)
	a.cursor = 0
	return a.startFeed()
}

// firstPageFailed reports whether the feed has nothing to show and nothing
// in flight.
func (a App) firstPageFailed() bool {
	return !a.feed.Loaded() && !a.feed.Loading()
}

func (a App) startFeed() tea.Cmd {
	req, ok := a.feed.Start()
	if !ok {
		return nil
	}
	return tea.Batch(a.fetch(req), a.spinner.Tick)
}

// visibleResults returns how many results fit in the results pane.
func (a App) visibleResults() int {
	paneHeight := layout.CalculatePaneHeight(a.height, a.layoutConfig.Pane)
	return layout.CalculateVisibleHeight(paneHeight, resultsHeaderLines)
}

// loadMoreIfVisible requests the next page when the last loaded result is
// inside the rendered window.
func (a App) loadMoreIfVisible() tea.Cmd {
	n := a.feed.Len()
	if n == 0 {
		return nil
	}
	_, end := layout.CalculateVisibleListItems(a.visibleResults(), a.cursor, n)
	if end < n {
		return nil
	}

	req, ok := a.feed.LastVisible()
	if !ok {
		return nil
	}
	a.log.Debug("last result visible, loading next page", "cursor", req.Cursor)
	return tea.Batch(a.fetch(req), a.spinner.Tick)
}

func (a App) fetch(req search.Request) tea.Cmd {
	f := a.fetcher
	return func() tea.Msg {
		return pageMsg{page: search.Run(context.Background(), f, req)}
	}
}

func (a App) handlePage(p search.Page) (tea.Model, tea.Cmd) {
	if !a.feed.Resolve(p) {
		a.log.Debug("dropping stale page", "mode", p.Mode, "query", p.Query, "cursor", p.Cursor)
		return a, nil
	}

	if p.Err != nil {
		a.log.Error("search failed", "mode", p.Mode, "query", p.Query, "cursor", p.Cursor, "err", p.Err)
		a.setMessage(MessageError, "search failed: "+p.Err.Error())
		return a, nil
	}

	a.log.Debug("page loaded", "query", p.Query, "cursor", p.Cursor, "items", len(p.Items))
	return a, a.loadMoreIfVisible()
}
