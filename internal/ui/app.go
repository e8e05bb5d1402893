package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"gantty/internal/config"
	"gantty/internal/store"
	"gantty/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewProjects View = iota
	ViewChart
)

type App struct {
	store       *store.Store
	events      <-chan store.Event
	cfg         config.Config
	cfgPath     string
	currentView View
	projectList *views.ProjectListView
	chart       *views.GanttView
	width       int
	height      int
}

// NewApp creates the application shell. cfgPath may be empty, in which
// case the last-opened scope is not persisted.
func NewApp(st *store.Store, cfg config.Config, cfgPath string) *App {
	return &App{
		store:       st,
		events:      st.Subscribe(),
		cfg:         cfg,
		cfgPath:     cfgPath,
		currentView: ViewProjects,
		projectList: views.NewProjectListView(st),
	}
}

type storeChangedMsg struct{}
type loadFailedMsg struct{ err error }

// waitForEvent blocks on the store's change channel and re-arms itself
// after every message, so cache changes made off the UI goroutine still
// repaint the screen.
func (a *App) waitForEvent() tea.Msg {
	<-a.events
	return storeChangedMsg{}
}

func (a *App) loadStore() tea.Msg {
	if err := a.store.Load(); err != nil {
		return loadFailedMsg{err: err}
	}
	return storeChangedMsg{}
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.loadStore, a.waitForEvent, a.projectList.Init()}

	// Reopen the chart where the user left off.
	if a.cfg.LastProjectID != 0 {
		id := a.cfg.LastProjectID
		cmds = append(cmds, func() tea.Msg {
			return views.SelectedScope{Scope: store.ScopeProject(id)}
		})
	}
	return tea.Batch(cmds...)
}

func (a *App) openScope(scope store.Scope) tea.Cmd {
	a.currentView = ViewChart
	if a.chart == nil {
		a.chart = views.NewGanttView(a.store, scope)
	} else {
		a.chart.SetScope(scope)
	}

	if id, ok := scope.ProjectID(); ok {
		a.cfg.LastProjectID = id
	} else {
		a.cfg.LastProjectID = 0
	}
	a.saveConfig()

	return tea.Batch(
		a.chart.Init(),
		func() tea.Msg {
			return tea.WindowSizeMsg{Width: a.width, Height: a.height}
		},
	)
}

func (a *App) saveConfig() {
	if a.cfgPath == "" {
		return
	}
	config.Save(a.cfgPath, a.cfg)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Always update project list size since it persists
		a.projectList.Update(msg)

	case storeChangedMsg:
		// Fan the refresh out to both views and keep listening.
		a.projectList.Update(views.RefreshMsg{})
		if a.chart != nil {
			a.chart.Update(views.RefreshMsg{})
		}
		return a, a.waitForEvent

	case loadFailedMsg:
		// The store keeps the error string; views surface it.
		return a, a.waitForEvent

	case views.SelectedScope:
		return a, a.openScope(msg.Scope)

	case views.BackToProjects:
		a.currentView = ViewProjects
		a.cfg.LastProjectID = 0
		a.saveConfig()
		return a, tea.Batch(
			a.projectList.Init(),
			func() tea.Msg {
				return tea.WindowSizeMsg{Width: a.width, Height: a.height}
			},
		)
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewProjects:
		_, cmd = a.projectList.Update(msg)
	case ViewChart:
		_, cmd = a.chart.Update(msg)
	}

	return a, cmd
}

func (a *App) View() string {
	switch a.currentView {
	case ViewChart:
		if a.chart != nil {
			return a.chart.View()
		}
	}
	return a.projectList.View()
}
