package dashboard

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/rileyhilliard/tilemon/internal/errors"
	"github.com/rileyhilliard/tilemon/internal/grid"
	"github.com/rileyhilliard/tilemon/internal/layout"
	"github.com/rileyhilliard/tilemon/internal/logger"
	"github.com/rileyhilliard/tilemon/internal/telemetry"
)

// Screen is what the dashboard is currently showing.
type Screen int

const (
	ScreenConnect Screen = iota
	ScreenGrid
	ScreenEdit
	ScreenHidden
)

// String returns a short name for the screen.
func (s Screen) String() string {
	switch s {
	case ScreenConnect:
		return "connect"
	case ScreenGrid:
		return "grid"
	case ScreenEdit:
		return "edit"
	case ScreenHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// Header and footer rows around the tile canvas.
const (
	headerHeight = 2
	footerHeight = 2
)

// cellStep is how much + and - change the cell size.
const cellStep = 10

// EndpointStore remembers the last address that answered a poll.
type EndpointStore interface {
	Endpoint() (string, error)
	SetEndpoint(address string) error
}

// Config holds everything New needs besides the engine and endpoint store.
type Config struct {
	// Address to connect to at startup. Empty shows the connect prompt.
	Address  string
	Source   telemetry.Source
	Interval time.Duration
	Scale    grid.Scale
	Log      logger.Logger
}

// Model is the Bubble Tea model for the tile dashboard.
//
// Update is the only place the layout engine is touched: poll results, drag
// ends, form saves and hide/unhide all arrive as messages and run one at a
// time, each pass finishing its save before the next message is handled.
type Model struct {
	ctx       context.Context
	engine    *layout.Engine
	endpoints EndpointStore
	cfg       Config
	log       logger.Logger

	// Polling session. loop is nil while disconnected. gen tags the
	// channel whose updates are accepted; it changes on every connect and
	// disconnect.
	loop    *telemetry.Loop
	gen     uint64
	updates <-chan telemetry.Update
	address string
	saved   string

	status     string
	pollErr    error
	lastUpdate time.Time

	screen   Screen
	input    textinput.Model
	editing  *tileForm
	form     *huh.Form
	hiddenAt int

	selected string
	drag     grid.DragTracker
	mouse    mouseState
	// scroll is how many canvas rows are scrolled past the top. Read it
	// through offset, which clamps to the current content height.
	scroll int

	keys     KeyMap
	help     help.Model
	showHelp bool

	width    int
	height   int
	quitting bool
}

// updateMsg carries one poll result, tagged with the session gen of the
// channel it came from. closed is set once that channel has been closed.
type updateMsg struct {
	gen    uint64
	update telemetry.Update
	closed bool
}

// New creates the dashboard. engine must already be loaded.
func New(ctx context.Context, engine *layout.Engine, endpoints EndpointStore, cfg Config) Model {
	log := logger.OrDefault(cfg.Log)

	input := textinput.New()
	input.Placeholder = "192.168.1.50 or host:port"
	input.Prompt = "› "
	input.CharLimit = 253
	input.Width = 40

	saved, err := endpoints.Endpoint()
	if err != nil {
		log.Warn("read saved endpoint: %v", err)
	}
	input.SetValue(saved)
	if cfg.Address == "" {
		input.Focus()
	}

	h := help.New()
	h.ShortSeparator = " | "

	return Model{
		ctx:       ctx,
		engine:    engine,
		endpoints: endpoints,
		cfg:       cfg,
		log:       log,
		saved:     saved,
		screen:    ScreenConnect,
		input:     input,
		keys:      DefaultKeyMap,
		help:      h,
	}
}

// Init connects to the configured address, or starts the prompt's cursor.
func (m Model) Init() tea.Cmd {
	if m.cfg.Address != "" {
		return func() tea.Msg { return connectMsg{address: m.cfg.Address} }
	}
	return textinput.Blink
}

// connectMsg asks the model to start polling address.
type connectMsg struct {
	address string
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case connectMsg:
		cmd := m.connect(msg.address)
		return m, cmd

	case updateMsg:
		cmd := m.handleUpdate(msg)
		return m, cmd
	}

	switch m.screen {
	case ScreenConnect:
		return m.updateConnect(msg)
	case ScreenEdit:
		return m.updateEdit(msg)
	case ScreenHidden:
		return m.updateHidden(msg)
	default:
		return m.updateGrid(msg)
	}
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case ScreenConnect:
		return m.renderConnect()
	case ScreenEdit:
		return m.renderEdit()
	case ScreenHidden:
		return m.renderHidden()
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderDashboard()
}

// connect starts polling address. A running loop is restarted on the new
// address; otherwise a fresh loop is created for this session.
func (m *Model) connect(address string) tea.Cmd {
	if m.loop == nil {
		m.loop = telemetry.NewLoop(m.cfg.Source,
			telemetry.WithInterval(m.cfg.Interval),
			telemetry.WithLogger(m.log))
	}

	loopGen, ch, err := m.loop.Start(m.ctx, address)
	if err != nil {
		m.pollErr = err
		return nil
	}

	m.log.Info("polling %s (generation %d)", address, loopGen)
	m.gen++
	m.updates = ch
	m.address = address
	m.status = errors.StatusConnecting
	m.pollErr = nil
	m.screen = ScreenGrid
	m.input.Blur()
	return waitForUpdate(m.gen, ch)
}

// disconnect tears the polling session down for good. Reconnecting builds a
// new loop.
func (m *Model) disconnect() {
	if m.loop != nil {
		m.loop.Close()
		m.loop = nil
	}
	m.gen++
	m.updates = nil
	m.status = ""
	m.pollErr = nil
	m.drag.SetEditMode(false)
	m.mouse = mouseState{}
}

// shutdown stops polling before the program exits.
func (m *Model) shutdown() {
	if m.loop != nil {
		m.loop.Close()
		m.loop = nil
	}
}

// waitForUpdate returns a command that receives the next update from ch.
func waitForUpdate(gen uint64, ch <-chan telemetry.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return updateMsg{gen: gen, closed: true}
		}
		return updateMsg{gen: gen, update: u}
	}
}

// handleUpdate applies one poll result. Results from a replaced or closed
// poller are dropped without re-arming their channel.
func (m *Model) handleUpdate(msg updateMsg) tea.Cmd {
	if msg.gen != m.gen || m.updates == nil {
		m.log.Debug("dropping update from generation %d (current %d)", msg.gen, m.gen)
		return nil
	}
	if msg.closed {
		m.updates = nil
		return nil
	}

	u := msg.update
	if u.OK() {
		if err := m.engine.Observe(u.Readings); err != nil {
			m.log.Error("reconcile: %v", err)
		}
		m.status = telemetry.StatusConnected
		m.pollErr = nil
		m.lastUpdate = u.At
		m.rememberEndpoint()
		m.clampSelection()
	} else {
		m.status = u.Status
		m.pollErr = u.Err
	}
	return waitForUpdate(m.gen, m.updates)
}

// rememberEndpoint saves the current address once it has answered a poll.
func (m *Model) rememberEndpoint() {
	if m.address == "" || m.address == m.saved {
		return
	}
	if err := m.endpoints.SetEndpoint(m.address); err != nil {
		m.log.Error("save endpoint: %v", err)
		return
	}
	m.saved = m.address
}

// updateGrid handles input on the tile grid.
func (m Model) updateGrid(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		cmd := m.handleMouse(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleGridKey(msg)
	}
	return m, nil
}

func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp && key.Matches(msg, m.keys.Back) {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.drag.Active() {
			m.drag.Cancel()
			m.mouse = mouseState{}
		} else if m.drag.EditMode() {
			m.drag.SetEditMode(false)
		}

	case key.Matches(msg, m.keys.EditMode):
		m.drag.SetEditMode(!m.drag.EditMode())

	case key.Matches(msg, m.keys.Next):
		m.cycleSelection(1)

	case key.Matches(msg, m.keys.Prev):
		m.cycleSelection(-1)

	case key.Matches(msg, m.keys.Up):
		m.nudge(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.nudge(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.nudge(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.nudge(1, 0)

	case key.Matches(msg, m.keys.PageUp):
		_, h := m.canvasSize()
		m.scrollBy(-h)
	case key.Matches(msg, m.keys.PageDown):
		_, h := m.canvasSize()
		m.scrollBy(h)

	case key.Matches(msg, m.keys.Edit):
		if m.selected != "" {
			cmd := m.openEditor(m.selected)
			return m, cmd
		}

	case key.Matches(msg, m.keys.Hide):
		if m.drag.EditMode() && m.selected != "" {
			m.editTile(m.selected, layout.SetHidden(true))
			m.clampSelection()
		}

	case key.Matches(msg, m.keys.Hidden):
		m.screen = ScreenHidden
		m.hiddenAt = 0

	case key.Matches(msg, m.keys.Grow):
		m.setCellSize(m.engine.Display().CellSizeUnits + cellStep)

	case key.Matches(msg, m.keys.Shrink):
		m.setCellSize(m.engine.Display().CellSizeUnits - cellStep)

	case key.Matches(msg, m.keys.Blur):
		if err := m.engine.ToggleBlur(); err != nil {
			m.log.Error("toggle blur: %v", err)
		}

	case key.Matches(msg, m.keys.Endpoint):
		m.screen = ScreenConnect
		m.input.SetValue(m.address)
		m.input.CursorEnd()
		cmd := m.input.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Disconnect):
		m.disconnect()
		m.screen = ScreenConnect
		cmd := m.input.Focus()
		return m, cmd
	}
	return m, nil
}

// nudge moves the selected tile one cell in edit mode.
func (m *Model) nudge(dx, dy int) {
	if !m.drag.EditMode() || m.selected == "" {
		return
	}
	e, ok := m.engine.Entry(m.selected)
	if !ok {
		return
	}
	x, y := max(e.GridX+dx, 0), max(e.GridY+dy, 0)
	if x == e.GridX && y == e.GridY {
		return
	}
	m.editTile(m.selected, layout.Move(x, y))
	m.revealSelected()
}

func (m *Model) setCellSize(units int) {
	if err := m.engine.SetCellSize(units); err != nil {
		m.log.Error("set cell size: %v", err)
	}
}

// editTile runs one edit through the engine. Save failures stay visible via
// the engine's PersistErr.
func (m *Model) editTile(label string, fn layout.EditFunc) {
	if err := m.engine.Edit(label, fn); err != nil {
		m.log.Error("edit %s: %v", label, err)
	}
}

// cycleSelection moves the selection through the visible tiles.
func (m *Model) cycleSelection(step int) {
	tiles := m.engine.Visible()
	if len(tiles) == 0 {
		m.selected = ""
		return
	}
	idx := -1
	for i, t := range tiles {
		if t.Entry.OriginalLabel == m.selected {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && step > 0:
		idx = 0
	case idx < 0:
		idx = len(tiles) - 1
	default:
		idx = (idx + step + len(tiles)) % len(tiles)
	}
	m.selected = tiles[idx].Entry.OriginalLabel
	m.revealSelected()
}

// clampSelection clears a selection whose tile is no longer visible.
func (m *Model) clampSelection() {
	if m.selected == "" {
		return
	}
	for _, t := range m.engine.Visible() {
		if t.Entry.OriginalLabel == m.selected {
			return
		}
	}
	m.selected = ""
}

// openEditor shows the edit form for label.
func (m *Model) openEditor(label string) tea.Cmd {
	e, ok := m.engine.Entry(label)
	if !ok {
		return nil
	}
	m.editing = newTileForm(e)
	m.form = m.editing.Form()
	m.screen = ScreenEdit
	m.selected = label
	return m.form.Init()
}

// updateEdit forwards input to the edit form and saves it on completion.
func (m Model) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.screen = ScreenGrid
		return m, nil
	}

	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.saveEditor()
		m.closeEditor()
		return m, nil
	case huh.StateAborted:
		m.closeEditor()
		return m, nil
	}
	return m, cmd
}

func (m *Model) saveEditor() {
	updated, err := m.editing.Entry()
	if err != nil {
		m.log.Error("edit form: %v", err)
		return
	}
	m.editTile(m.editing.Label(), layout.Replace(updated))
	m.clampSelection()
}

func (m *Model) closeEditor() {
	m.editing = nil
	m.form = nil
	m.screen = ScreenGrid
}

// updateConnect handles the endpoint prompt.
func (m Model) updateConnect(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "ctrl+c":
			m.quitting = true
			m.shutdown()
			return m, tea.Quit
		case "esc":
			if m.loop != nil {
				m.screen = ScreenGrid
				m.input.Blur()
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		case "enter":
			address := m.input.Value()
			if address == "" {
				return m, nil
			}
			cmd := m.connect(address)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateHidden handles the hidden tile list.
func (m Model) updateHidden(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	hidden := m.engine.Hidden()

	switch {
	case k.String() == "ctrl+c":
		m.quitting = true
		m.shutdown()
		return m, tea.Quit
	case key.Matches(k, m.keys.Back), k.String() == "u", k.String() == "q":
		m.screen = ScreenGrid
	case key.Matches(k, m.keys.Up):
		if m.hiddenAt > 0 {
			m.hiddenAt--
		}
	case key.Matches(k, m.keys.Down):
		if m.hiddenAt < len(hidden)-1 {
			m.hiddenAt++
		}
	case key.Matches(k, m.keys.Edit):
		if m.hiddenAt < len(hidden) {
			m.editTile(hidden[m.hiddenAt].Entry.OriginalLabel, layout.SetHidden(false))
			if m.hiddenAt >= len(m.engine.Hidden()) && m.hiddenAt > 0 {
				m.hiddenAt--
			}
		}
		if len(m.engine.Hidden()) == 0 {
			m.screen = ScreenGrid
		}
	}
	return m, nil
}

// Screen returns the current screen.
func (m Model) Screen() Screen {
	return m.screen
}

// Status returns the connectivity token of the current session.
func (m Model) Status() string {
	return m.status
}

// Address returns the endpoint being polled.
func (m Model) Address() string {
	return m.address
}

// Generation returns the tag of the update channel currently accepted.
func (m Model) Generation() uint64 {
	return m.gen
}

// Selected returns the label of the selected tile, or "".
func (m Model) Selected() string {
	return m.selected
}

// EditMode reports whether drags and hiding are enabled.
func (m Model) EditMode() bool {
	return m.drag.EditMode()
}
