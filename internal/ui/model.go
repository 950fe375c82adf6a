// Package ui is the Bubble Tea storefront: home screen, catalog search and
// the shared header and footer.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"maxgear/internal/catalog"
	"maxgear/internal/config"
	"maxgear/internal/domain"
	"maxgear/internal/eventbus"
	"maxgear/internal/search"
	"maxgear/internal/ui/input"
	inputtypes "maxgear/internal/ui/input/types"
	"maxgear/internal/ui/logic"
	"maxgear/internal/ui/state"
	"maxgear/internal/ui/views"
)

const defaultHealthTimeout = 3 * time.Second

// Option configures a Model
type Option func(*Model)

// WithEventBus publishes screen changes and health results on bus
func WithEventBus(bus eventbus.EventBus) Option {
	return func(m *Model) { m.bus = bus }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) { m.logger = logger }
}

// WithHealthChecker probes the catalog on startup
func WithHealthChecker(hc catalog.HealthChecker) Option {
	return func(m *Model) { m.health = hc }
}

// Model represents the UI state
type Model struct {
	config *config.Config
	bus    eventbus.EventBus
	logger *slog.Logger
	state  *state.AppState

	width  int
	height int

	search     search.Reader
	dispatcher *search.Dispatcher
	health     catalog.HealthChecker

	navigator    *logic.Navigator
	renderer     *views.Renderer
	inputHandler *input.Handler
	keys         input.KeyMap
	help         help.Model
	spinner      spinner.Model
	spinning     bool
	pager        *Pager
	inPagerMode  bool

	// Program reference for terminal management
	program *tea.Program
	now     func() time.Time
}

// NewModel creates a new UI model reading search state from reader and
// starting searches through dispatcher
func NewModel(cfg *config.Config, reader search.Reader, dispatcher *search.Dispatcher, opts ...Option) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	m := &Model{
		config:       cfg,
		state:        state.NewAppState(state.ParseScreen(cfg.UISettings.StartScreen)),
		search:       reader,
		dispatcher:   dispatcher,
		navigator:    logic.NewNavigator(),
		renderer:     views.NewRenderer(),
		inputHandler: input.New(),
		keys:         input.DefaultKeyMap(),
		help:         help.New(),
		spinner:      sp,
		pager:        NewPager(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.New(slog.DiscardHandler)
	}
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// State exposes the UI state for inspection
func (m *Model) State() state.AppState {
	return *m.state
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.probeHealth()}
	if m.state.Screen == state.ScreenCatalog {
		cmds = append(cmds, m.inputHandler.ChangeMode(inputtypes.ModeSearch))
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width - 4
		m.updateViewportHeight()
		return m, nil

	case tea.KeyMsg:
		if m.inPagerMode {
			return m, nil
		}

		ctx := &input.ModelContext{State: m.state, Search: m.search}
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		return m, tea.Batch(cmds...)

	case search.ResultMsg:
		return m, m.handleResult(msg)

	case spinner.TickMsg:
		if !m.search.State().IsLoading {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case healthMsg:
		detail := ""
		if msg.err != nil {
			detail = catalog.Message(msg.err)
			m.logger.Warn("catalog health probe failed", slog.Any("error", msg.err))
		}
		m.state.SetHealth(msg.err == nil, detail)
		m.publish(domain.CatalogHealthEvent{Online: msg.err == nil, Err: msg.err})
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case pagerDoneMsg:
		m.inPagerMode = false
		if msg.err != nil {
			m.logger.Error("pager failed", slog.Any("error", msg.err))
			m.state.StatusMessage = fmt.Sprintf("Pager error: %v", msg.err)
		}
		return m, nil
	}

	// Cursor blink and other text input messages
	return m, m.inputHandler.Update(msg)
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}

	var keyMap help.KeyMap = m.keys
	if m.inputHandler.CurrentMode() == inputtypes.ModeSearch {
		keyMap = input.SearchKeyMap{KeyMap: m.keys}
	}

	return m.renderer.Render(views.ViewState{
		Width:          m.width,
		Height:         m.height,
		Screen:         m.state.Screen,
		Search:         m.search.State(),
		SearchBar:      m.inputHandler.TextInput().View(),
		SearchFocused:  m.inputHandler.CurrentMode() == inputtypes.ModeSearch,
		SelectedIndex:  m.state.SelectedIndex,
		ViewportOffset: m.state.ViewportOffset,
		ViewportHeight: m.state.ViewportHeight,
		SpinnerFrame:   m.spinner.View(),
		Health:         m.state.Health,
		HealthDetail:   m.state.HealthDetail,
		StatusMessage:  m.state.StatusMessage,
		ShowHelp:       m.state.ShowHelp,
		HelpModel:      m.help,
		KeyMap:         keyMap,
		Year:           m.now().Year(),
	})
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.SwitchScreenAction:
		m.switchScreen(a.Screen)

	case inputtypes.SubmitTextAction:
		return m.submit(a.Text)

	case inputtypes.CancelTextAction:
		m.inputHandler.SetValue(m.state.LastSubmitted)

	case inputtypes.RetryAction:
		m.inputHandler.SetValue(m.state.LastSubmitted)
		return m.submit(m.state.LastSubmitted)

	case inputtypes.ToggleHelpAction:
		m.state.ShowHelp = !m.state.ShowHelp
		m.updateViewportHeight()

	case inputtypes.OpenResultsPagerAction:
		st := m.search.State()
		if len(st.Items) == 0 {
			return nil
		}
		return m.show(views.ResultsTable(st.Query, st.Items))

	case inputtypes.OpenHelpPagerAction:
		return m.show(m.helpContent())

	case inputtypes.QuitAction:
		if m.dispatcher != nil {
			m.dispatcher.Cancel()
		}
		return tea.Quit
	}
	return nil
}

// submit hands raw input to the dispatcher. Blank input only updates the status line.
func (m *Model) submit(raw string) tea.Cmd {
	if m.dispatcher == nil {
		return nil
	}

	cmd := m.dispatcher.Submit(raw)
	if cmd == nil {
		m.state.StatusMessage = "Enter a part number or brand to search"
		return nil
	}

	m.state.LastSubmitted = strings.TrimSpace(raw)
	m.state.StatusMessage = ""
	if m.state.Screen != state.ScreenCatalog {
		m.switchScreen(string(state.ScreenCatalog))
	}

	if m.spinning {
		return cmd
	}
	m.spinning = true
	return tea.Batch(cmd, m.spinner.Tick)
}

// handleResult applies a settled search. The cursor stays on the selected
// product when the new results still contain it, otherwise it resets.
func (m *Model) handleResult(msg search.ResultMsg) tea.Cmd {
	prev, hadSelection := m.selectedKey()
	if m.dispatcher == nil || !m.dispatcher.Complete(msg) {
		return nil
	}

	m.state.ResetCursor()
	if hadSelection {
		if i := views.ProjectResults(m.search.State()).IndexOf(prev); i > 0 {
			m.state.SelectedIndex = i
		}
	}
	m.syncNavigator()
	m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.Clamp()

	if msg.Err != nil {
		m.state.StatusMessage = ""
		return nil
	}
	noun := "products"
	if len(msg.Items) == 1 {
		noun = "product"
	}
	m.state.StatusMessage = fmt.Sprintf("%d %s for %q in %s", len(msg.Items), noun, msg.Query, msg.Elapsed.Round(time.Millisecond))
	return nil
}

func (m *Model) selectedKey() (domain.ProductKey, bool) {
	items := m.search.State().Items
	i := m.state.SelectedIndex
	if i < 0 || i >= len(items) {
		return domain.ProductKey{}, false
	}
	return items[i].Key(), true
}

func (m *Model) navigate(direction string) {
	if m.state.Screen != state.ScreenCatalog {
		return
	}

	m.syncNavigator()
	switch direction {
	case "up":
		m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.MoveUp()
	case "down":
		m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.MoveDown()
	case "pageup":
		m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.PageUp()
	case "pagedown":
		m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.PageDown()
	case "home":
		m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.Home()
	case "end":
		m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.End()
	}
}

func (m *Model) switchScreen(target string) {
	from := m.state.Screen
	to := state.ParseScreen(target)
	if target == "next" {
		to = state.ScreenCatalog
		if from == state.ScreenCatalog {
			to = state.ScreenHome
		}
	}
	if to == from {
		return
	}

	m.state.Screen = to
	if to == state.ScreenHome && m.inputHandler.CurrentMode() == inputtypes.ModeSearch {
		m.inputHandler.ChangeMode(inputtypes.ModeNormal)
	}
	m.publish(domain.ScreenChangedEvent{From: string(from), To: string(to)})
}

// syncNavigator updates the navigator with current model state
func (m *Model) syncNavigator() {
	m.navigator.UpdateState(
		m.state.SelectedIndex,
		m.state.ViewportOffset,
		m.state.ViewportHeight,
		len(m.search.State().Items),
	)
}

func (m *Model) updateViewportHeight() {
	if m.height > 0 {
		m.state.ViewportHeight = views.ResultsViewportHeight(m.height, m.state.ShowHelp)
	}
	m.syncNavigator()
	m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.Clamp()
}

// probeHealth checks the catalog once without blocking the UI
func (m *Model) probeHealth() tea.Cmd {
	if m.health == nil {
		return nil
	}

	checker := m.health
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), defaultHealthTimeout)
		defer cancel()
		return healthMsg{err: checker.Health(ctx)}
	}
}

func (m *Model) helpContent() string {
	k := m.keys
	return views.HelpContent(map[string][]key.Binding{
		"Screens": {k.Home, k.Catalog},
		"Search":  {k.Search, k.Submit, k.Cancel, k.Retry},
		"Results": {k.Up, k.Down, k.Page, k.Ends, k.Pager},
		"Other":   {k.Help, k.HelpPage, k.Quit},
	}, []string{"Screens", "Search", "Results", "Other"})
}

func (m *Model) publish(e domain.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(e)
	}
}
