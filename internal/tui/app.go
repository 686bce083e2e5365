package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/pixgrid/internal/debounce"
	"github.com/mmcdole/pixgrid/internal/domain"
	"github.com/mmcdole/pixgrid/internal/feed"
	"github.com/mmcdole/pixgrid/internal/service"
	"github.com/mmcdole/pixgrid/internal/tui/components"
	"github.com/mmcdole/pixgrid/internal/tui/layout"
	"github.com/mmcdole/pixgrid/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
)

// FocusArea is the component receiving keystrokes
type FocusArea int

const (
	FocusSearch FocusArea = iota
	FocusGrid
)

// Vertical chrome around the grid: search box (3), suggestions (1), footer (1)
const (
	SearchBarHeight   = 3
	SuggestionsHeight = 1
	FooterHeight      = 1
	ChromeHeight      = SearchBarHeight + SuggestionsHeight + FooterHeight
)

// Options configures the model
type Options struct {
	Defaults        domain.SearchParams
	InitialQuery    string
	Debounce        time.Duration
	Timeout         time.Duration
	BottomTolerance int
	MaxColumns      int
	ShowHelp        bool
	SuggestionLimit int
	StatusTimeout   time.Duration
	SpinnerInterval time.Duration
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Defaults:        domain.DefaultSearchParams(),
		Debounce:        debounce.DefaultDelay,
		Timeout:         15 * time.Second,
		BottomTolerance: layout.DefaultTolerance,
		MaxColumns:      layout.MaxColumns,
		ShowHelp:        true,
		SuggestionLimit: service.DefaultSuggestionLimit,
		StatusTimeout:   5 * time.Second,
		SpinnerInterval: 100 * time.Millisecond,
	}
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool
	Focus FocusArea

	// Services
	SearchSvc *service.SearchService
	ViewerSvc *service.ViewerService

	// Search state
	Feed  *feed.Feed
	Query *debounce.Debouncer[string]

	// UI Components
	Input textinput.Model
	Grid  components.Grid

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int
	Suggestions  []string

	opts          Options
	logger        *slog.Logger
	statusSeq     int
	suggestionIdx int
	ticking       bool
	quitting      bool

	// Shared across model copies so a later Update can cancel the request
	inflight *requestSlot
}

// requestSlot holds the cancel func of the one request allowed in flight
type requestSlot struct {
	cancel context.CancelFunc
}

// NewModel creates a new application model
func NewModel(
	searchSvc *service.SearchService,
	viewerSvc *service.ViewerService,
	opts Options,
	logger *slog.Logger,
) Model {
	def := DefaultOptions()
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	if opts.StatusTimeout <= 0 {
		opts.StatusTimeout = def.StatusTimeout
	}
	if opts.SpinnerInterval <= 0 {
		opts.SpinnerInterval = def.SpinnerInterval
	}
	if opts.SuggestionLimit <= 0 {
		opts.SuggestionLimit = def.SuggestionLimit
	}
	if opts.Defaults.PerPage <= 0 {
		opts.Defaults.PerPage = domain.DefaultPerPage
	}
	if logger == nil {
		logger = slog.Default()
	}

	initial := strings.TrimSpace(opts.InitialQuery)

	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.Prompt = "⌕ "
	ti.PromptStyle = styles.SearchPromptStyle
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.SetValue(initial)
	ti.Focus()

	return Model{
		State:     StateBrowsing,
		Focus:     FocusSearch,
		SearchSvc: searchSvc,
		ViewerSvc: viewerSvc,
		Feed:      feed.New(opts.Defaults),
		Query:     debounce.New(opts.Debounce, initial),
		Input:     ti,
		Grid:      components.NewGrid(opts.MaxColumns),
		opts:      opts,
		logger:    logger,
		inflight:  &requestSlot{},
	}
}

// Init starts the initial search for the (possibly empty) query
func (m Model) Init() tea.Cmd {
	query := m.Query.Value()
	return tea.Batch(
		tea.SetWindowTitle("pixgrid"),
		func() tea.Msg { return StartSearchMsg{Query: query} },
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, m.checkBottom()

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case debounce.SettledMsg[string]:
		term, ok := m.Query.Settle(msg)
		if !ok {
			return m, nil
		}
		return m, m.startSearch(term)

	case StartSearchMsg:
		return m, m.startSearch(msg.Query)

	case SearchResultsMsg:
		return m.handleSearchResults(msg)

	case PageLoadedMsg:
		return m.handlePageLoaded(msg)

	case ImageOpenedMsg:
		return m, m.setStatus("Opened image by "+msg.Image.User, false)

	case ErrMsg:
		m.logger.Error("error", "error", msg.Err, "context", msg.Context)
		return m, m.setStatus(msg.Error(), true)

	case TickMsg:
		m.SpinnerFrame++
		if m.Feed.Busy() {
			return m, TickCmd(m.opts.SpinnerInterval)
		}
		m.ticking = false
		return m, nil

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil
	}

	return m, nil
}

// startSearch resets the feed for term and fetches its first page.
// Any request still in flight is cancelled.
func (m *Model) startSearch(term string) tea.Cmd {
	m.cancelInflight()
	req := m.Feed.BeginSearch(term)
	m.suggestionIdx = 0
	m.logger.Info("search started", "query", term, "generation", req.Generation)
	return tea.Batch(
		SearchCmd(m.newRequestContext(), m.SearchSvc, req),
		m.startSpinner(),
	)
}

// checkBottom requests the next page when the grid is scrolled to the end
func (m *Model) checkBottom() tea.Cmd {
	if !m.Ready || m.Grid.Loading() || m.Grid.IsFiltered() {
		return nil
	}
	if !m.Grid.AtBottom(m.opts.BottomTolerance) {
		return nil
	}
	req, ok := m.Feed.BeginNextPage()
	if !ok {
		return nil
	}
	m.logger.Debug("bottom reached", "query", req.Params.Query, "page", req.Page, "generation", req.Generation)
	return tea.Batch(
		NextPageCmd(m.newRequestContext(), m.SearchSvc, req),
		m.startSpinner(),
	)
}

func (m *Model) handleSearchResults(msg SearchResultsMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if !m.Feed.Fail(msg.Request, msg.Err) {
			return m.dropStale(msg.Request, msg.Err)
		}
		m.cancelInflight()
		m.logger.Error("search failed", "query", msg.Request.Params.Query, "generation", msg.Request.Generation, "error", msg.Err)
		return *m, m.setStatus(statusForError(msg.Err), true)
	}

	if !m.Feed.CompleteFirstPage(msg.Request, msg.Page) {
		return m.dropStale(msg.Request, nil)
	}
	m.cancelInflight()

	m.Grid.SetLoading(m.Feed.Loading())
	m.Grid.SetImages(m.Feed.Results(), true)
	m.Suggestions = service.SuggestTags(m.Feed.Query(), m.Feed.Results(), m.opts.SuggestionLimit)
	m.logger.Debug("first page merged", "query", m.Feed.Query(), "results", m.Feed.Len(), "total_hits", m.Feed.TotalHits())

	// A short first page may not fill the viewport
	return *m, m.checkBottom()
}

func (m *Model) handlePageLoaded(msg PageLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if !m.Feed.Fail(msg.Request, msg.Err) {
			return m.dropStale(msg.Request, msg.Err)
		}
		m.cancelInflight()
		m.logger.Error("next page failed", "query", msg.Request.Params.Query, "page", msg.Request.Page, "error", msg.Err)
		return *m, m.setStatus(statusForError(msg.Err), true)
	}

	if !m.Feed.CompleteNextPage(msg.Request, msg.Page) {
		return m.dropStale(msg.Request, nil)
	}
	m.cancelInflight()

	m.Grid.SetImages(m.Feed.Results(), false)
	m.Suggestions = service.SuggestTags(m.Feed.Query(), m.Feed.Results(), m.opts.SuggestionLimit)
	m.logger.Debug("page appended", "page", m.Feed.Cursor(), "results", m.Feed.Len())

	return *m, m.checkBottom()
}

func (m *Model) dropStale(req feed.Request, err error) (tea.Model, tea.Cmd) {
	m.logger.Debug("dropped stale response", "generation", req.Generation, "current", m.Feed.Generation(), "page", req.Page, "error", err)
	return *m, nil
}

// newRequestContext returns a context bounded by the request timeout and
// records its cancel func in the in-flight slot
func (m *Model) newRequestContext() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), m.opts.Timeout)
	m.inflight.cancel = cancel
	return ctx
}

// cancelInflight aborts the request in flight, if any. Also called after a
// request completes to release its timer.
func (m *Model) cancelInflight() {
	if m.inflight.cancel != nil {
		m.inflight.cancel()
		m.inflight.cancel = nil
	}
}

// startSpinner arms the spinner tick unless it is already running
func (m *Model) startSpinner() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return TickCmd(m.opts.SpinnerInterval)
}

// setStatus shows a transient status line
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(m.statusSeq, m.opts.StatusTimeout)
}

// Shutdown stops the debouncer and cancels any in-flight request.
// Calling it again is a no-op.
func (m *Model) Shutdown() {
	if m.quitting {
		return
	}
	m.quitting = true
	m.Query.Stop()
	m.cancelInflight()
	m.logger.Info("shutting down")
}

// Quitting reports whether Shutdown has run
func (m Model) Quitting() bool {
	return m.quitting
}

// setFocus moves keyboard focus between the search box and the grid
func (m *Model) setFocus(f FocusArea) {
	m.Focus = f
	if f == FocusSearch {
		m.Input.Focus()
		m.Grid.SetFocused(false)
	} else {
		m.Input.Blur()
		m.Grid.SetFocused(true)
	}
}
