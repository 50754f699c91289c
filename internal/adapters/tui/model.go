// Package tui provides the interactive design browser: a design list with
// search and notes next to a character-cell funnel plot.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"go.trai.ch/sho/internal/adapters/export"
	"go.trai.ch/sho/internal/adapters/telemetry"
	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/core/ports"
	"go.trai.ch/sho/internal/engine/aggregator"
	"go.trai.ch/sho/internal/engine/capability"
	"go.trai.ch/sho/internal/engine/plot"
	"go.trai.ch/sho/internal/engine/selection"
)

const (
	listWidthRatio = 0.3
	minListWidth   = 20
	// listChrome is the border, margin and padding right of the design list.
	listChrome = 3
	// plotChrome is the title, x axis, axis labels and picked-model lines around the canvas.
	plotChrome  = 4
	statusLines = 1
	minPlotCols = 10
	minPlotRows = 3
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeNotes
	modeMenu
)

type menuAction uint8

const (
	actionLaunch menuAction = iota
	actionCopyPath
	actionSetRepresentative
	actionResetRepresentative
)

// menuItem is one entry of the action menu of a model.
type menuItem struct {
	Name   string
	action menuAction
	script domain.CapabilityScript
}

// Options are the collaborators and settings of the browser.
type Options struct {
	Aggregator *aggregator.Aggregator
	Loader     *aggregator.Loader
	Resolver   *capability.Resolver
	Runner     ports.ScriptRunner
	// Viewers are offered after the capability scripts in the action menu.
	Viewers []domain.CapabilityScript
	Metrics domain.MetricTable
	// Tolerance is the nearest-model radius in cells.
	Tolerance float64
	// XMetric and YMetric are the preferred axes, applied once the metrics are defined.
	XMetric string
	YMetric string
	// Jobs are the loads started before the browser opened.
	Jobs []*aggregator.Job
	// Exporter writes the selected designs. Exports are disabled without one.
	Exporter *export.Exporter
	// ExportDir is where exports are written; empty means the working directory.
	ExportDir string
	// Clipboard receives the model paths copied from the action menu. Nil
	// copies through the terminal with an OSC 52 sequence.
	Clipboard func(string)
}

// Model is the Bubble Tea model of the design browser.
type Model struct {
	ctx    context.Context //nolint:containedctx // scopes loads and launches started from the update loop
	opts   Options
	engine *selection.Engine
	mode   mode

	search  textinput.Model
	notes   textarea.Model
	spinner spinner.Model

	width, height int

	cursorCol, cursorRow int
	// pinned keeps the model chosen with tab picked while it stays under the cursor.
	pinned string

	menu       []menuItem
	menuIdx    int
	menuModel  string
	menuDesign string

	notesFor string

	status    string
	statusErr bool

	span    telemetry.SpanSummary
	hasSpan bool

	wantX, wantY string
}

// NewModel creates the browser model.
func NewModel(ctx context.Context, opts Options) *Model {
	if opts.Tolerance <= 0 {
		opts.Tolerance = domain.DefaultTolerance
	}
	if opts.Metrics == nil {
		opts.Metrics = domain.DefaultMetricTable()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = termenv.Copy
	}

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search notes"

	notes := textarea.New()
	notes.Placeholder = "Describe this design"
	notes.ShowLineNumbers = false

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = pendingStyle

	m := &Model{
		ctx:     ctx,
		opts:    opts,
		engine:  selection.New(),
		search:  search,
		notes:   notes,
		spinner: s,
		wantX:   opts.XMetric,
		wantY:   opts.YMetric,
	}
	m.refresh()
	return m
}

// Init starts the spinner and the initial loads.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, runJobs(m.opts.Loader, m.opts.Jobs))
}

// Update handles incoming messages and updates the model state.
//
//nolint:cyclop // message dispatch
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.notes.SetWidth(max(m.plotCols(), minPlotCols))
		m.notes.SetHeight(max(m.plotRows(), minPlotRows))
		m.clampCursor()
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case MsgDesignLoaded:
		return m.handleDesignLoaded(msg)
	case MsgFilesChanged:
		return m.handleFilesChanged(msg)
	case MsgSpan:
		m.span = msg.Summary
		m.hasSpan = true
		return m, nil
	case MsgScriptLaunched:
		if msg.Err != nil {
			m.setError(msg.Err)
		} else {
			m.setStatus(fmt.Sprintf("launched %s on %s", msg.Script.Name, baseName(msg.Model)))
		}
		return m, nil
	case MsgExported:
		if msg.Err != nil {
			m.setError(msg.Err)
		} else {
			m.setStatus(fmt.Sprintf("wrote %d %s to %s", msg.Count, msg.Kind, msg.Path))
		}
		return m, nil
	case MsgRepresentativeSet:
		switch {
		case msg.Err != nil:
			m.setError(msg.Err)
		case msg.Model == "":
			m.setStatus("representative of " + baseName(msg.DesignID) + " reset")
		default:
			m.setStatus(baseName(msg.Model) + " represents " + baseName(msg.DesignID))
		}
		return m, nil
	case MsgNotesSaved:
		if msg.Err != nil {
			m.setError(msg.Err)
			return m, nil
		}
		m.engine.SetNotes(msg.DesignID, msg.Notes)
		m.setStatus("notes saved")
		return m, nil
	}
	return m, nil
}

func (m *Model) handleDesignLoaded(msg MsgDesignLoaded) (tea.Model, tea.Cmd) {
	if !m.opts.Loader.Accept(msg.Result) {
		return m, nil
	}
	m.refresh()
	if msg.Result.Err != nil {
		m.setError(msg.Result.Err)
	}
	return m, nil
}

func (m *Model) handleFilesChanged(msg MsgFilesChanged) (tea.Model, tea.Cmd) {
	var dirs []string
	for _, dir := range msg.Dirs {
		if _, ok := m.opts.Aggregator.Design(dir); ok {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return m, nil
	}
	jobs, err := m.opts.Loader.Reload(m.ctx, dirs)
	if err != nil {
		m.setError(err)
		return m, nil
	}
	return m, runJobs(m.opts.Loader, jobs)
}

// refresh pulls the current designs into the selection engine.
func (m *Model) refresh() {
	if m.opts.Aggregator == nil {
		return
	}
	m.engine.SetDesigns(m.opts.Aggregator.Designs())
	m.engine.SetDefinedMetrics(m.opts.Aggregator.DefinedMetrics())

	if m.wantX != "" && m.engine.SetAxes(m.wantX, "") == nil {
		m.wantX = ""
	}
	if m.wantY != "" && m.engine.SetAxes("", m.wantY) == nil {
		m.wantY = ""
	}
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeNotes:
		return m.handleNotesKey(msg)
	case modeMenu:
		return m.handleMenuKey(msg)
	case modeBrowse:
	}

	switch msg.String() {
	case "q":
		return m.quit()
	case "j", "down":
		m.engine.SelectNext()
		m.pinned = ""
	case "k", "up":
		m.engine.SelectPrevious()
		m.pinned = ""
	case " ":
		if id := m.engine.Cursor(); id != "" {
			_ = m.engine.ToggleSelection(id)
		}
	case "/":
		m.mode = modeSearch
		return m, m.search.Focus()
	case "x":
		m.engine.CycleX()
		m.wantX = ""
	case "y":
		m.engine.CycleY()
		m.wantY = ""
	case "p":
		m.cyclePrimary()
	case "n":
		return m.openNotes()
	case "s":
		return m.export(false)
	case "S":
		return m.export(true)
	case "tab":
		m.stepModel(1)
	case "shift+tab":
		m.stepModel(-1)
	case "h", "left":
		m.moveCursor(-1, 0)
	case "l", "right":
		m.moveCursor(1, 0)
	case "K", "shift+up":
		m.moveCursor(0, -1)
	case "J", "shift+down":
		m.moveCursor(0, 1)
	case "enter":
		m.openMenu()
	case "esc":
		m.status = ""
	}
	return m, nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	if m.opts.Loader != nil {
		m.opts.Loader.Cancel()
	}
	return m, tea.Quit
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.search.Blur()
		m.mode = modeBrowse
		return m, nil
	case "esc":
		m.search.Blur()
		m.search.SetValue("")
		m.engine.SetSearch("")
		m.mode = modeBrowse
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.engine.SetSearch(m.search.Value())
	return m, cmd
}

func (m *Model) openNotes() (tea.Model, tea.Cmd) {
	id := m.engine.Cursor()
	d, ok := m.opts.Aggregator.Design(id)
	if !ok {
		m.setStatus("move to a design to edit its notes")
		return m, nil
	}
	m.notesFor = id
	m.notes.SetValue(d.Notes)
	m.mode = modeNotes
	return m, m.notes.Focus()
}

func (m *Model) handleNotesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.notes.Blur()
		m.mode = modeBrowse
		return m, nil
	case "ctrl+s":
		m.notes.Blur()
		m.mode = modeBrowse
		return m, saveNotes(m.opts.Aggregator, m.notesFor, m.notes.Value())
	}
	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	return m, cmd
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = modeBrowse
	case "j", "down":
		m.menuIdx = min(m.menuIdx+1, len(m.menu)-1)
	case "k", "up":
		m.menuIdx = max(m.menuIdx-1, 0)
	case "enter":
		m.mode = modeBrowse
		return m, m.runMenuItem(m.menu[m.menuIdx])
	}
	return m, nil
}

func (m *Model) runMenuItem(item menuItem) tea.Cmd {
	switch item.action {
	case actionLaunch:
		return launchScript(m.ctx, m.opts.Runner, item.script, m.menuModel)
	case actionCopyPath:
		m.opts.Clipboard(m.menuModel)
		m.setStatus("copied " + m.menuModel)
	case actionSetRepresentative:
		return setRepresentative(m.opts.Aggregator, m.menuDesign, m.menuModel)
	case actionResetRepresentative:
		return setRepresentative(m.opts.Aggregator, m.menuDesign, "")
	}
	return nil
}

func (m *Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeBrowse || msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress {
		return m, nil
	}
	col := msg.X - m.plotLeft()
	row := msg.Y - 1
	if col < 0 || col >= m.plotCols() || row < 0 || row >= m.plotRows() {
		return m, nil
	}
	m.cursorCol, m.cursorRow = col, row
	m.pinned = ""
	return m, nil
}

func (m *Model) openMenu() {
	p, ok := m.picked()
	if !ok {
		m.setStatus("no model under the cursor")
		return
	}
	scripts := capability.Dedup(m.opts.Resolver.Resolve(p.ModelID))
	scripts = append(scripts, m.opts.Viewers...)

	items := make([]menuItem, 0, len(scripts)+2)
	for _, script := range scripts {
		items = append(items, menuItem{Name: script.Name, action: actionLaunch, script: script})
	}
	items = append(items, menuItem{Name: "Copy path to model", action: actionCopyPath})
	if d, ok := m.opts.Aggregator.Design(p.DesignID); ok && d.IsRepresentative(p.ModelID) {
		items = append(items, menuItem{Name: "Reset representative", action: actionResetRepresentative})
	} else {
		items = append(items, menuItem{Name: "Set as representative", action: actionSetRepresentative})
	}

	m.menu = items
	m.menuIdx = 0
	m.menuModel = p.ModelID
	m.menuDesign = p.DesignID
	m.mode = modeMenu
}

// export writes the selected designs, in selection order, as a path listing
// or a funnel document.
func (m *Model) export(funnels bool) (tea.Model, tea.Cmd) {
	if m.opts.Exporter == nil {
		return m, nil
	}
	var designs []*domain.Design
	for _, id := range m.engine.Selected() {
		if d, ok := m.opts.Aggregator.Design(id); ok {
			designs = append(designs, d)
		}
	}
	if len(designs) == 0 {
		m.setStatus("select designs to export")
		return m, nil
	}

	if !funnels {
		return m, savePaths(m.opts.Exporter, filepath.Join(m.opts.ExportDir, domain.DefaultPathsExport), designs)
	}
	x, y := m.engine.Axes()
	doc := export.Document{
		Designs: designs,
		Loaded:  m.opts.Aggregator.Designs(),
		XMetric: x,
		YMetric: y,
		Metrics: m.opts.Metrics,
	}
	return m, saveFunnels(m.opts.Exporter, filepath.Join(m.opts.ExportDir, domain.DefaultFunnelsExport), doc)
}

func (m *Model) cyclePrimary() {
	defined := m.engine.DefinedMetrics()
	if len(defined) == 0 {
		return
	}
	current := m.opts.Aggregator.PrimaryMetric()
	next := defined[(slices.Index(defined, current)+1)%len(defined)]
	m.opts.Aggregator.SetPrimaryMetric(next)
	m.setStatus("ranking by " + m.opts.Metrics.Lookup(next).Title)
}

// focusDesign is the design whose models tab steps through.
func (m *Model) focusDesign() (*domain.Design, bool) {
	id := m.engine.Cursor()
	if id == "" || !m.engine.IsSelected(id) {
		selected := m.engine.Selected()
		if len(selected) == 0 {
			return nil, false
		}
		id = selected[len(selected)-1]
	}
	return m.opts.Aggregator.Design(id)
}

// stepModel moves the cursor to the next or previous model of the focused
// design, starting at its best model.
func (m *Model) stepModel(step int) {
	d, ok := m.focusDesign()
	if !ok {
		return
	}
	x, y := m.engine.Axes()
	points := plot.DesignPoints(d, x, y)
	if len(points) == 0 {
		return
	}

	i := slices.IndexFunc(points, func(p domain.Point) bool { return p.ModelID == m.pinned })
	if i < 0 {
		best, hasBest := d.Best()
		i = slices.IndexFunc(points, func(p domain.Point) bool { return hasBest && p.ModelID == best.Path })
		i = max(i, 0)
	} else {
		i = (i + step + len(points)) % len(points)
	}

	c, ok := m.canvas()
	if !ok {
		return
	}
	if col, row, in := c.locate(points[i].X, points[i].Y); in {
		m.cursorCol, m.cursorRow = col, row
	}
	m.pinned = points[i].ModelID
}

func (m *Model) moveCursor(dc, dr int) {
	m.cursorCol += dc
	m.cursorRow += dr
	m.pinned = ""
	m.clampCursor()
}

func (m *Model) clampCursor() {
	m.cursorCol = min(max(m.cursorCol, 0), m.plotCols()-1)
	m.cursorRow = min(max(m.cursorRow, 0), m.plotRows()-1)
}

// selectedPoints returns the points of the selected designs in selection order.
func (m *Model) selectedPoints() [][]domain.Point {
	x, y := m.engine.Axes()
	var out [][]domain.Point
	for _, id := range m.engine.Selected() {
		d, ok := m.opts.Aggregator.Design(id)
		if !ok {
			continue
		}
		out = append(out, plot.DesignPoints(d, x, y))
	}
	return out
}

// frame returns the shared axis limits of every loaded design.
func (m *Model) frame() (plot.Limits, plot.Limits, bool) {
	x, y := m.engine.Axes()
	if x == "" || y == "" {
		return plot.Limits{}, plot.Limits{}, false
	}
	return plot.Frame(m.opts.Aggregator.Designs(), m.opts.Metrics, x, y)
}

// canvas rasterizes the selected designs at the current size.
func (m *Model) canvas() (*canvas, bool) {
	xl, yl, ok := m.frame()
	if !ok {
		return nil, false
	}
	c := newCanvas(m.plotCols(), m.plotRows(), xl, yl)

	x, y := m.engine.Axes()
	if g := m.opts.Metrics.Lookup(x).Guide; g != nil {
		c.guideX(*g)
	}
	if g := m.opts.Metrics.Lookup(y).Guide; g != nil {
		c.guideY(*g)
	}

	for i, id := range m.engine.Selected() {
		d, found := m.opts.Aggregator.Design(id)
		if !found {
			continue
		}
		best, hasBest := d.Best()
		for _, p := range plot.DesignPoints(d, x, y) {
			c.plot(p, i, hasBest && p.ModelID == best.Path)
		}
	}
	return c, true
}

// picked returns the model under the plot cursor.
func (m *Model) picked() (domain.Point, bool) {
	c, ok := m.canvas()
	if !ok {
		return domain.Point{}, false
	}
	var points []domain.Point
	for _, ps := range m.selectedPoints() {
		points = append(points, ps...)
	}

	if m.pinned != "" {
		for _, p := range points {
			if p.ModelID != m.pinned {
				continue
			}
			if col, row, in := c.locate(p.X, p.Y); in && col == m.cursorCol && row == m.cursorRow {
				return p, true
			}
		}
	}

	vp := c.viewport
	return plot.New(points, plot.Options{Tolerance: m.opts.Tolerance, Viewport: &vp}).
		Nearest(float64(m.cursorCol), float64(m.cursorRow))
}

func (m *Model) listWidth() int {
	return max(minListWidth, int(float64(m.width)*listWidthRatio))
}

func (m *Model) plotLeft() int {
	// One extra column for the y axis.
	return m.listWidth() + listChrome + 1
}

func (m *Model) plotCols() int {
	return max(m.width-m.plotLeft(), minPlotCols)
}

func (m *Model) plotRows() int {
	return max(m.height-plotChrome-statusLines, minPlotRows)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}
