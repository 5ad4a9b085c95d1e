package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-timestep/internal/registry"
	"github.com/vovakirdan/tui-timestep/internal/storage"
)

// runsPerDemo caps how many rows the browser loads for one demo.
const runsPerDemo = 100

var (
	runsTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	activeTabStyle = tabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	boxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	emptyStyle     = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).Padding(1, 2)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

var runColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "Mode", Width: 11},
	{Title: "Frames", Width: 8},
	{Title: "Steps", Width: 8},
	{Title: "Pos", Width: 8},
	{Title: "FPS", Width: 7},
	{Title: "Time", Width: 8},
	{Title: "Date", Width: 12},
}

// RunsKeyMap binds the runs browser keys.
type RunsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextDemo key.Binding
	PrevDemo key.Binding
	Clear    key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextDemo, k.PrevDemo, k.Clear, k.Back, k.Quit}
}

func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, k.ShortHelp()}
}

func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextDemo: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next demo")),
		PrevDemo: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev demo")),
		Clear:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "menu")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// RunsModel browses the run log one demo at a time.
type RunsModel struct {
	store   *storage.Store
	demos   []registry.DemoInfo
	current int

	runs    []storage.RunEntry
	summary storage.DemoSummary
	loadErr error

	table  table.Model
	help   help.Model
	keys   RunsKeyMap
	width  int
	height int

	quitting, goingBack bool
}

// NewRunsModel opens the browser on startDemo, or on the first demo when
// startDemo is empty or unknown. A nil store shows an empty log.
func NewRunsModel(store *storage.Store, width, height int, startDemo string) RunsModel {
	m := RunsModel{
		store:  store,
		demos:  registry.List(),
		help:   help.New(),
		keys:   DefaultRunsKeyMap(),
		width:  width,
		height: height,
	}
	for i, d := range m.demos {
		if d.ID == startDemo {
			m.current = i
		}
	}

	m.table = table.New(table.WithColumns(runColumns), table.WithFocused(true))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).BorderBottom(true).Bold(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	m.table.SetStyles(styles)
	m.fit()
	m.reload()
	return m
}

// fit sizes the table to whatever is left below the header and tabs.
func (m *RunsModel) fit() {
	m.table.SetHeight(max(m.height-11, 3))
	m.help.Width = m.width
}

func (m *RunsModel) reload() {
	id := m.CurrentDemo()
	m.runs, m.loadErr = nil, nil
	m.summary = storage.DemoSummary{DemoID: id}
	if m.store != nil && id != "" {
		m.runs, m.loadErr = m.store.RecentRuns(id, runsPerDemo)
		if m.loadErr == nil {
			m.summary, m.loadErr = m.store.Summary(id)
		}
	}

	rows := make([]table.Row, 0, len(m.runs))
	for i, r := range m.runs {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			r.Mode,
			strconv.Itoa(r.Frames),
			strconv.Itoa(r.SimSteps),
			strconv.FormatFloat(r.FinalPosition, 'f', 1, 64),
			strconv.FormatFloat(r.AvgFPS, 'f', 1, 64),
			r.Duration.Truncate(100 * time.Millisecond).String(),
			r.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *RunsModel) cycle(step int) {
	if n := len(m.demos); n > 0 {
		m.current = (m.current + step + n) % n
		m.reload()
	}
}

func (m RunsModel) Init() tea.Cmd { return nil }

func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.fit()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextDemo):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevDemo):
			m.cycle(-1)
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			if m.store != nil && m.CurrentDemo() != "" {
				if err := m.store.ClearRuns(m.CurrentDemo()); err != nil {
					m.loadErr = err
					return m, nil
				}
				m.reload()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m RunsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "RECORDED RUNS"
	if len(m.demos) > 0 {
		title += " · " + m.demos[m.current].Title
	}

	body := emptyStyle.Render("Nothing recorded for this demo yet.")
	if len(m.runs) > 0 {
		body = m.table.View()
	}

	sections := []string{
		centerText(runsTitleStyle.Render(title), m.width),
		centerText(m.summaryLine(), m.width),
		"",
		m.tabs(),
		boxStyle.Render(body),
	}
	if m.loadErr != nil {
		sections = append(sections, errorStyle.Render("run log: "+m.loadErr.Error()))
	}
	sections = append(sections, helpStyle.Render(m.help.View(m.keys)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// tabs lists every demo ID, or only the current one between arrows when
// the row would not fit.
func (m RunsModel) tabs() string {
	if len(m.demos) == 0 {
		return ""
	}
	parts := make([]string, len(m.demos))
	for i, d := range m.demos {
		style := tabStyle
		if i == m.current {
			style = activeTabStyle
		}
		parts[i] = style.Render(d.ID)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if m.width > 0 && lipgloss.Width(row) > m.width {
		return centerText(activeTabStyle.Render("◂ "+m.CurrentDemo()+" ▸"), m.width)
	}
	return row
}

func (m RunsModel) summaryLine() string {
	s := m.summary
	if s.Runs == 0 {
		return "no runs"
	}
	line := fmt.Sprintf("%d runs · %d steps · avg %.1f fps", s.Runs, s.TotalSteps, s.AvgFPS)
	if !s.LastRunAt.IsZero() {
		line += " · last " + s.LastRunAt.Format("Jan 02 15:04")
	}
	return line
}

// Rows is the number of runs shown for the current demo.
func (m RunsModel) Rows() int { return len(m.runs) }

// CurrentDemo is the ID being browsed, empty when no demos are registered.
func (m RunsModel) CurrentDemo() string {
	if len(m.demos) == 0 {
		return ""
	}
	return m.demos[m.current].ID
}

func (m RunsModel) IsGoingBack() bool { return m.goingBack }
func (m RunsModel) IsQuitting() bool  { return m.quitting }

// RunRunsBrowser shows the browser full screen. It reports whether the user
// went back to the menu rather than quitting.
func RunRunsBrowser(store *storage.Store, width, height int, startDemo string) (bool, error) {
	final, err := tea.NewProgram(NewRunsModel(store, width, height, startDemo), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(RunsModel)
	return ok && m.IsGoingBack(), nil
}
