package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"userexplorer/internal/cache"
	"userexplorer/internal/clock"
	"userexplorer/internal/config"
	"userexplorer/internal/eventbus"
	"userexplorer/internal/query"
	"userexplorer/internal/ui/input"
	inputtypes "userexplorer/internal/ui/input/types"
	"userexplorer/internal/ui/logic"
	"userexplorer/internal/ui/views"
)

// Deps are the collaborators the model drives
type Deps struct {
	Config *config.Config
	Cache  *cache.Cache
	Clock  clock.Clock
	Bus    eventbus.EventBus
	Logger *zap.Logger
}

// Model represents the UI state
type Model struct {
	ctx        context.Context
	config     *config.Config
	cache      *cache.Cache
	controller *query.Controller
	logger     *zap.Logger

	// UI-specific state
	width       int
	height      int
	keys        KeyMap
	help        help.Model
	spinner     spinner.Model
	notice      string
	inPagerMode bool // tracks if we're currently in pager mode

	// Handlers
	inputHandler *input.Handler
	navigator    *logic.Navigator
	renderer     *views.Renderer
	pager        *Pager

	// send posts a message to the running program
	send func(tea.Msg)
}

// NewModel creates a new UI model. ctx bounds every load attempt.
func NewModel(ctx context.Context, deps Deps) *Model {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Model{
		ctx:          ctx,
		config:       cfg,
		cache:        deps.Cache,
		logger:       logger.Named("ui"),
		keys:         DefaultKeyMap(),
		help:         help.New(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		inputHandler: input.New(),
		navigator:    logic.NewNavigator(),
		renderer:     views.NewRenderer(cfg.UISettings.ShowCompany),
		pager:        NewPager(),
	}

	m.controller = query.New(m.cache, m.postFired,
		query.WithDelay(cfg.DebounceDelay.Std()),
		query.WithClock(deps.Clock),
		query.WithEventBus(deps.Bus),
		query.WithLogger(logger),
	)

	return m
}

// SetProgram sets the program reference used for timer fires and the pager
func (m *Model) SetProgram(p *tea.Program) {
	m.send = p.Send
	m.pager.SetProgram(p)
}

// Controller exposes the query pipeline
func (m *Model) Controller() *query.Controller {
	return m.controller
}

// Close stops the debounce timer and any in-flight load
func (m *Model) Close() {
	m.controller.Close()
	m.cache.Close()
}

// postFired runs on the timer goroutine
func (m *Model) postFired(f query.Fired) {
	m.post(queryFiredMsg{fired: f})
}

func (m *Model) post(msg tea.Msg) {
	if send := m.send; send != nil {
		send(msg)
	}
}

// Init starts the first load and the spinner
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.spinner.Tick)
}

// load starts a new attempt; the fetch itself runs as a command
func (m *Model) load() tea.Cmd {
	job := m.cache.Load(m.ctx)
	if job == nil {
		return nil
	}
	return func() tea.Msg {
		return fetchDoneMsg{completion: job()}
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.inputHandler.SetWidth(msg.Width)
		m.syncNavigator()
		return m, nil

	case tea.KeyMsg:
		if m.inPagerMode {
			return m, nil
		}
		actions, cmd := m.inputHandler.HandleKey(msg, m)
		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		m.syncNavigator()
		return m, tea.Batch(cmds...)

	case fetchDoneMsg:
		if m.cache.Complete(msg.completion) {
			m.navigator.Reset()
		}
		m.syncNavigator()
		return m, nil

	case queryFiredMsg:
		if m.controller.Deliver(msg.fired) {
			m.navigator.Reset()
		}
		m.syncNavigator()
		return m, nil

	case spinner.TickMsg:
		// Let the tick loop die once loading is over
		if m.inPagerMode || !m.cache.State().IsPending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pagerMsg:
		if msg.err != nil {
			m.logger.Warn("pager failed", zap.Error(msg.err))
			m.notice = fmt.Sprintf("Pager failed: %v", msg.err)
			return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearNoticeMsg{} })
		}
		return m, nil

	case clearNoticeMsg:
		m.notice = ""
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil
	}

	// Cursor blink and other text input messages
	return m, m.inputHandler.Update(msg)
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigator.Move(a.Direction)

	case inputtypes.UpdateTextAction:
		m.controller.SetQuery(a.Text)

	case inputtypes.SubmitTextAction:
		m.controller.SetQuery(a.Text)

	case inputtypes.CancelTextAction:
		m.controller.SetQuery("")

	case inputtypes.RetryAction:
		if !m.cache.State().IsFailed() {
			return nil
		}
		m.logger.Info("retrying directory load")
		return tea.Batch(m.load(), m.spinner.Tick)

	case inputtypes.OpenPagerAction:
		snap := m.controller.Snapshot()
		return m.showInPager(views.RenderRecordsPlain(snap.Filtered, snap.EffectiveQuery))

	case inputtypes.ToggleHelpAction:
		return m.showInPager(views.RenderHelpContent())

	case inputtypes.QuitAction:
		m.Close()
		return tea.Quit
	}
	return nil
}

// showInPager returns a command that hands the terminal to the pager
func (m *Model) showInPager(content string) tea.Cmd {
	return func() tea.Msg {
		m.post(pauseRenderingMsg{})
		err := m.pager.Show(content)
		m.post(resumeRenderingMsg{})
		return pagerMsg{err: err}
	}
}

// syncNavigator fits the cursor to the current result set and screen
func (m *Model) syncNavigator() {
	m.navigator.SetViewportHeight(m.renderer.VisibleCards(m.height, m.controller.IsFilteringActive()))
	m.navigator.SetTotal(m.controller.ResultCount())
}

// View renders the current state
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	snap := m.controller.Snapshot()
	searching := m.inputHandler.CurrentMode() == inputtypes.ModeSearch
	bindings := m.keys.shortHelp(searching, m.cache.State().IsFailed(), snap.ResultCount > 0, snap.RawQuery != "")

	return m.renderer.Render(views.ViewState{
		Width:           m.width,
		Height:          m.height,
		Status:          snap.Status,
		Message:         snap.Message,
		Spinner:         m.spinner.View(),
		SearchBox:       m.inputHandler.TextInput().View(),
		Records:         snap.Filtered,
		ResultCount:     snap.ResultCount,
		FilteringActive: snap.FilteringActive,
		Revision:        snap.Revision,
		Cursor:          m.navigator.GetSelectedIndex(),
		Offset:          m.navigator.GetViewportOffset(),
		SkeletonCards:   m.config.UISettings.SkeletonCards,
		HelpLine:        m.help.ShortHelpView(bindings),
		Notice:          m.notice,
	})
}

// Context implementation for the input handler

func (m *Model) CurrentIndex() int { return m.navigator.GetSelectedIndex() }

func (m *Model) TotalItems() int { return m.controller.ResultCount() }

func (m *Model) RawQuery() string { return m.controller.RawQuery() }

func (m *Model) CanRetry() bool { return m.cache.State().IsFailed() }
