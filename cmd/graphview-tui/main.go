package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/archiveview/graphview/pkg/config"
	"github.com/archiveview/graphview/pkg/fetch"
	"github.com/archiveview/graphview/pkg/graph"
	"github.com/archiveview/graphview/pkg/logging"
	"github.com/archiveview/graphview/pkg/metrics"
	"github.com/archiveview/graphview/pkg/view"
)

const frameInterval = 50 * time.Millisecond

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4a90d9")).
			MarginLeft(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginLeft(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e8443a")).
			Bold(true).
			MarginLeft(1)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a017")).
			MarginLeft(1)

	legendStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginLeft(1)

	tooltipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#333333")).
			Padding(0, 1)
)

type keyMap struct {
	Quit     key.Binding
	Search   key.Binding
	Retry    key.Binding
	Reset    key.Binding
	Clear    key.Binding
	Select   key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	WeightUp key.Binding
	WeightDn key.Binding
	ConnUp   key.Binding
	ConnDn   key.Binding
	Category key.Binding
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Retry:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry fetch")),
	Reset:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset filters")),
	Clear:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear selection")),
	Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select at cursor")),
	ZoomIn:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
	ZoomOut:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),
	WeightUp: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "min weight +")),
	WeightDn: key.NewBinding(key.WithKeys("W"), key.WithHelp("W", "min weight -")),
	ConnUp:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "min connections +")),
	ConnDn:   key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "min connections -")),
	Category: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle category")),
}

type frameMsg time.Time
type dispatchMsg struct{ ev view.Event }
type loadedMsg struct {
	dataset *graph.Dataset
	err     error
}

type model struct {
	ctrl   *view.Controller
	canvas *cellCanvas
	loader *fetch.Loader
	events chan view.Event

	search    textinput.Model
	searching bool

	cursorX, cursorY int
	catIndex         int

	lastNav string
	zoom    float64
}

func newModel(cfg config.Config, loader *fetch.Loader, logger logging.Logger, reg *metrics.Registry) *model {
	events := make(chan view.Event, 16)
	ctrl := view.NewController(view.Options{
		Layout:    cfg.Layout,
		Seed:      cfg.Seed,
		Debounce:  cfg.Debounce(),
		Logger:    logger,
		Metrics:   reg,
		ViewportW: cfg.ViewportWidth,
		ViewportH: cfg.ViewportHeight,
		Enqueue: func(ev view.Event) {
			select {
			case events <- ev:
			default:
			}
		},
	})

	m := &model{
		ctrl:    ctrl,
		loader:  loader,
		events:  events,
		zoom:    1.0,
		cursorX: 40,
		cursorY: 12,
	}
	ctrl.SetNavigate(func(nodeID string) {
		m.lastNav = nodeID
	})

	ti := textinput.New()
	ti.Placeholder = "entity name..."
	ti.CharLimit = 64
	ti.Width = 32
	m.search = ti
	return m
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(), m.frameCmd(), m.waitEventCmd())
}

func (m *model) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		d, err := m.loader.Load(ctx)
		return loadedMsg{dataset: d, err: err}
	}
}

func (m *model) frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// waitEventCmd pumps controller loopback events (debounce expiry) into
// the bubbletea loop, keeping all state mutation on one goroutine
func (m *model) waitEventCmd() tea.Cmd {
	return func() tea.Msg {
		return dispatchMsg{ev: <-m.events}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cols := msg.Width
		rows := msg.Height - 6 // header, status, help
		if cols < 20 {
			cols = 20
		}
		if rows < 10 {
			rows = 10
		}
		st := m.ctrl.State()
		m.canvas = newCellCanvas(cols, rows, st.Camera.ViewW, st.Camera.ViewH)
		m.ctrl.AttachRenderer(m.canvas)
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.ctrl.Dispatch(view.FetchFailed{Err: msg.err})
		} else {
			m.ctrl.Dispatch(view.DatasetLoaded{Dataset: msg.dataset})
		}
		return m, nil

	case dispatchMsg:
		m.ctrl.Dispatch(msg.ev)
		return m, m.waitEventCmd()

	case frameMsg:
		m.ctrl.Frame()
		return m, m.frameCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "enter", "esc":
			m.searching = false
			m.search.Blur()
			m.ctrl.FlushPendingFilter()
			return m, nil
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			q := m.search.Value()
			m.ctrl.Dispatch(view.FilterEdit{SearchQuery: &q, Continuous: true})
			return m, cmd
		}
	}

	st := m.ctrl.State()
	switch {
	case key.Matches(msg, keys.Quit):
		m.ctrl.Close()
		return m, tea.Quit
	case key.Matches(msg, keys.Search):
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case key.Matches(msg, keys.Retry):
		if st.Phase == view.PhaseFetchFailed {
			m.ctrl.Dispatch(view.RetryRequested{})
			return m, m.fetchCmd()
		}
	case key.Matches(msg, keys.Reset):
		m.ctrl.Dispatch(view.ResetFilters{})
	case key.Matches(msg, keys.Clear):
		m.ctrl.Dispatch(view.ClearSelection{})
	case key.Matches(msg, keys.Select):
		if m.canvas != nil {
			px, py := m.canvas.pixel(m.cursorX, m.cursorY)
			m.ctrl.Dispatch(view.Clicked{X: px, Y: py})
		}
	case key.Matches(msg, keys.ZoomIn):
		m.zoom *= 1.25
		m.ctrl.Dispatch(view.ZoomChanged{Scale: m.zoom})
	case key.Matches(msg, keys.ZoomOut):
		m.zoom /= 1.25
		m.ctrl.Dispatch(view.ZoomChanged{Scale: m.zoom})
	case key.Matches(msg, keys.WeightUp):
		w := st.Filter.MinEdgeWeight + 1
		m.ctrl.Dispatch(view.FilterEdit{MinEdgeWeight: &w})
	case key.Matches(msg, keys.WeightDn):
		w := st.Filter.MinEdgeWeight - 1
		m.ctrl.Dispatch(view.FilterEdit{MinEdgeWeight: &w})
	case key.Matches(msg, keys.ConnUp):
		n := st.Filter.MinConnectionCount + 1
		m.ctrl.Dispatch(view.FilterEdit{MinConnectionCount: &n})
	case key.Matches(msg, keys.ConnDn):
		n := st.Filter.MinConnectionCount - 1
		m.ctrl.Dispatch(view.FilterEdit{MinConnectionCount: &n})
	case key.Matches(msg, keys.Category):
		if st.Dataset != nil && len(st.Dataset.Categories) > 0 {
			cat := st.Dataset.Categories[m.catIndex%len(st.Dataset.Categories)]
			m.catIndex++
			m.ctrl.Dispatch(view.FilterEdit{ToggleCategory: &cat})
		}
	default:
		m.moveCursor(msg)
	}
	return m, nil
}

func (m *model) moveCursor(msg tea.KeyMsg) {
	if m.canvas == nil {
		return
	}
	switch msg.String() {
	case "up":
		m.cursorY--
	case "down":
		m.cursorY++
	case "left":
		m.cursorX--
	case "right":
		m.cursorX++
	default:
		return
	}
	m.cursorX = clamp(m.cursorX, 0, m.canvas.cols-1)
	m.cursorY = clamp(m.cursorY, 0, m.canvas.rows-1)
	px, py := m.canvas.pixel(m.cursorX, m.cursorY)
	m.ctrl.Dispatch(view.PointerMoved{X: px, Y: py})
}

func (m *model) View() string {
	st := m.ctrl.State()
	var b strings.Builder

	b.WriteString(titleStyle.Render("graphview — entity relationship network"))
	b.WriteByte('\n')

	switch st.Phase {
	case view.PhaseLoading:
		b.WriteString(statusStyle.Render("loading dataset..."))
		b.WriteByte('\n')
		return b.String()
	case view.PhaseFetchFailed:
		b.WriteString(errorStyle.Render(fmt.Sprintf("failed to load dataset: %v", st.Err)))
		b.WriteByte('\n')
		b.WriteString(statusStyle.Render("press r to retry, q to quit"))
		b.WriteByte('\n')
		return b.String()
	}

	if m.canvas != nil {
		b.WriteString(m.canvas.View(m.cursorX, m.cursorY))
	}

	if st.Phase == view.PhaseNoResults {
		b.WriteString(emptyStyle.Render("no entities match — press R to clear filters"))
		b.WriteByte('\n')
	}

	if tip := m.ctrl.TooltipText(); tip != "" {
		b.WriteString(tooltipStyle.Render(tip))
		b.WriteByte('\n')
	}

	b.WriteString(m.statusLine(st))
	b.WriteByte('\n')
	b.WriteString(legendStyle.Render(
		"● entity  ● billionaire  · w<10  ▒ w<50  █ w≥50  | /search +/- zoom w/W weight c/C conn t category enter select esc clear R reset q quit"))
	b.WriteByte('\n')
	return b.String()
}

func (m *model) statusLine(st view.GraphViewState) string {
	visible := 0
	edges := 0
	if st.Visible != nil {
		visible = len(st.Visible.NodeIDs)
		edges = len(st.Visible.EdgeIndices)
	}
	parts := []string{
		fmt.Sprintf("zoom %.2f", st.Filter.ZoomScale),
		fmt.Sprintf("eff. min weight %d", st.Filter.EffectiveMinEdgeWeight()),
		fmt.Sprintf("visible %d nodes / %d edges", visible, edges),
	}
	if m.searching {
		parts = append(parts, "search: "+m.search.View())
	} else if st.Filter.SearchQuery != "" {
		parts = append(parts, "search: "+st.Filter.SearchQuery)
	}
	if len(st.Filter.SelectedCategories) > 0 {
		cats := make([]string, 0, len(st.Filter.SelectedCategories))
		for c := range st.Filter.SelectedCategories {
			cats = append(cats, c)
		}
		parts = append(parts, "categories: "+strings.Join(cats, ","))
	}
	if m.lastNav != "" {
		parts = append(parts, "open: "+m.lastNav)
	}
	return statusStyle.Render(strings.Join(parts, "  |  "))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func main() {
	configPath := flag.String("config", "", "YAML config file (optional)")
	srcFile := flag.String("file", "", "read dataset from this file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
	}
	if *srcFile != "" {
		cfg.Source = config.SourceConfig{Kind: "file", Path: *srcFile}
	}

	logFile, err := os.OpenFile("graphview-tui.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("opening log file: %v", err)
	}
	defer logFile.Close()
	logger := logging.NewJSONLogger(logFile, logging.ParseLevel(cfg.LogLevel))

	source, err := buildSource(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	var cache *fetch.SnapshotCache
	if cfg.Cache.Enabled {
		cache = fetch.NewSnapshotCache(cfg.Cache.Path)
	}
	reg := metrics.NewRegistry(nil)
	loader := fetch.NewLoader(source, cache, reg, logger)

	p := tea.NewProgram(newModel(cfg, loader, logger, reg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("running tui: %v", err)
	}
}

func buildSource(cfg config.Config, logger logging.Logger) (fetch.Source, error) {
	switch cfg.Source.Kind {
	case "http":
		return fetch.NewHTTPSource(cfg.Source.URL, logger), nil
	case "file":
		return fetch.NewFileSource(cfg.Source.Path), nil
	case "s3":
		return fetch.NewS3Source(context.Background(), fetch.S3Options{
			Bucket:    cfg.Source.Bucket,
			Key:       cfg.Source.Key,
			Region:    cfg.Source.Region,
			AccessKey: cfg.Source.AccessKey,
			SecretKey: cfg.Source.SecretKey,
		})
	}
	return nil, fmt.Errorf("no dataset source configured")
}
