package views

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gantty/internal/api"
	"gantty/internal/models"
	"gantty/internal/store"
	"gantty/internal/ui/keys"
	"gantty/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// RefreshMsg asks a view to rebuild from the store cache. The app shell
// pumps one of these for every store change event.
type RefreshMsg struct{}

// SelectedScope signals that the user chose what the chart should show.
type SelectedScope struct {
	Scope store.Scope
}

// mutationDoneMsg carries the result of a store write issued from a view.
type mutationDoneMsg struct {
	err error
}

type projectItem struct {
	all     bool
	project models.Project
}

func (i projectItem) Title() string {
	if i.all {
		return "All Projects"
	}
	return i.project.Name
}

func (i projectItem) Description() string {
	if i.all {
		return "every task on one chart"
	}
	if i.project.Description != "" {
		return i.project.Description
	}
	return fmt.Sprintf("%d tasks", len(i.project.Tasks))
}

func (i projectItem) FilterValue() string { return i.Title() }

type projectDelegate struct {
	styles *styles.Styles
	width  int
}

func (d projectDelegate) Height() int                               { return 2 }
func (d projectDelegate) Spacing() int                              { return 1 }
func (d projectDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d projectDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	p, ok := item.(projectItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	width := max(d.width-4, 20)

	var titleStyle, descStyle lipgloss.Style
	if selected {
		titleStyle = d.styles.ListSelected.Width(width)
		descStyle = d.styles.ListSelected.Foreground(styles.Current.ForegroundDim).Width(width)
	} else {
		titleStyle = d.styles.ListItem.Width(width)
		descStyle = d.styles.ListItem.Foreground(styles.Current.ForegroundDim).Width(width)
	}

	dot := " "
	if !p.all {
		dot = lipgloss.NewStyle().Foreground(lipgloss.Color(p.project.Color)).Render("●")
	}

	title := titleStyle.Render(dot + " " + p.Title())
	desc := descStyle.Render("  " + p.Description())

	fmt.Fprintf(w, "%s\n%s", title, desc)
}

// ProjectListView is the sidebar: pick a scope, create, edit, delete and
// reorder projects.
type ProjectListView struct {
	store    *store.Store
	list     list.Model
	delegate *projectDelegate
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int

	editing          bool
	editingID        int64 // 0 when creating
	confirmingDelete bool
	deleteTargetID   int64
	deleteTargetName string
	formName         textinput.Model
	formDesc         textinput.Model
	formColor        textinput.Model
	focusIdx         int // 0=name, 1=desc, 2=color, 3=confirm
}

func NewProjectListView(st *store.Store) *ProjectListView {
	s := styles.NewStyles()

	formName := textinput.New()
	formName.Placeholder = "Project name"
	formName.CharLimit = 100

	formDesc := textinput.New()
	formDesc.Placeholder = "Description (optional)"
	formDesc.CharLimit = 200

	formColor := textinput.New()
	formColor.Placeholder = models.DefaultColor
	formColor.CharLimit = 7

	delegate := &projectDelegate{styles: s, width: 80}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Projects"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)

	return &ProjectListView{
		store:     st,
		list:      l,
		delegate:  delegate,
		styles:    s,
		keys:      keys.DefaultKeyMap(),
		formName:  formName,
		formDesc:  formDesc,
		formColor: formColor,
	}
}

func (v *ProjectListView) Init() tea.Cmd {
	return func() tea.Msg { return RefreshMsg{} }
}

func (v *ProjectListView) rebuildItems() {
	projects := v.store.Projects()
	items := make([]list.Item, 0, len(projects)+1)
	items = append(items, projectItem{all: true})
	for _, p := range projects {
		items = append(items, projectItem{project: p})
	}
	v.list.SetItems(items)
}

func (v *ProjectListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, msg.Height-6)
		return v, nil

	case RefreshMsg:
		v.rebuildItems()
		return v, nil

	case mutationDoneMsg:
		v.rebuildItems()
		return v, nil

	case tea.KeyMsg:
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}

		if v.editing {
			return v.updateForm(msg)
		}

		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit

		case key.Matches(msg, v.keys.New):
			v.startForm(nil)
			return v, textinput.Blink

		case key.Matches(msg, v.keys.Edit):
			if item, ok := v.list.SelectedItem().(projectItem); ok && !item.all {
				v.startForm(&item.project)
				return v, textinput.Blink
			}

		case key.Matches(msg, v.keys.Enter):
			if item, ok := v.list.SelectedItem().(projectItem); ok {
				scope := store.ScopeAll()
				if !item.all {
					scope = store.ScopeProject(item.project.ID)
				}
				return v, func() tea.Msg { return SelectedScope{Scope: scope} }
			}

		case key.Matches(msg, v.keys.Delete):
			if item, ok := v.list.SelectedItem().(projectItem); ok && !item.all {
				v.confirmingDelete = true
				v.deleteTargetID = item.project.ID
				v.deleteTargetName = item.project.Name
				return v, nil
			}

		case msg.String() == "shift+up":
			return v, v.moveSelected(-1)

		case msg.String() == "shift+down":
			return v, v.moveSelected(1)
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// moveSelected swaps the selected project with its neighbor and commits
// the whole new sidebar sequence in one batch.
func (v *ProjectListView) moveSelected(dir int) tea.Cmd {
	item, ok := v.list.SelectedItem().(projectItem)
	if !ok || item.all {
		return nil
	}

	projects := v.store.Projects()
	idx := -1
	for i, p := range projects {
		if p.ID == item.project.ID {
			idx = i
			break
		}
	}
	target := idx + dir
	if idx < 0 || target < 0 || target >= len(projects) {
		return nil
	}

	ids := make([]int64, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	ids[idx], ids[target] = ids[target], ids[idx]

	v.list.Select(v.list.Index() + dir)
	return func() tea.Msg {
		return mutationDoneMsg{err: v.store.ReorderProjects(ids)}
	}
}

func (v *ProjectListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		id := v.deleteTargetID
		return v, func() tea.Msg {
			return mutationDoneMsg{err: v.store.DeleteProject(id)}
		}
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *ProjectListView) startForm(p *models.Project) {
	v.editing = true
	v.focusIdx = 0
	if p == nil {
		v.editingID = 0
		v.formName.Reset()
		v.formDesc.Reset()
		v.formColor.Reset()
	} else {
		v.editingID = p.ID
		v.formName.SetValue(p.Name)
		v.formDesc.SetValue(p.Description)
		v.formColor.SetValue(p.Color)
	}
	v.updateFocus()
}

func (v *ProjectListView) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case msg.String() == "ctrl+s":
		return v, v.saveForm()

	case msg.String() == "shift+tab":
		v.focusIdx = (v.focusIdx + 3) % 4
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % 4
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.focusIdx < 3 {
			v.focusIdx++
			v.updateFocus()
			return v, nil
		}
		return v, v.saveForm()
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case 0:
		v.formName, cmd = v.formName.Update(msg)
	case 1:
		v.formDesc, cmd = v.formDesc.Update(msg)
	case 2:
		v.formColor, cmd = v.formColor.Update(msg)
	}
	return v, cmd
}

func (v *ProjectListView) saveForm() tea.Cmd {
	name := strings.TrimSpace(v.formName.Value())
	if name == "" {
		return nil
	}
	desc := strings.TrimSpace(v.formDesc.Value())
	color := strings.TrimSpace(v.formColor.Value())

	v.editing = false
	if v.editingID == 0 {
		return func() tea.Msg {
			return mutationDoneMsg{err: v.store.AddProject(api.ProjectCreate{
				Name:        name,
				Description: desc,
				Color:       color,
			})}
		}
	}

	id := v.editingID
	return func() tea.Msg {
		return mutationDoneMsg{err: v.store.UpdateProject(id, api.ProjectUpdate{
			Name:        &name,
			Description: &desc,
			Color:       &color,
		})}
	}
}

func (v *ProjectListView) updateFocus() {
	v.formName.Blur()
	v.formDesc.Blur()
	v.formColor.Blur()
	switch v.focusIdx {
	case 0:
		v.formName.Focus()
	case 1:
		v.formDesc.Focus()
	case 2:
		v.formColor.Focus()
	}
}

// View renders the view
func (v *ProjectListView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	if v.editing {
		return v.renderForm()
	}

	if len(v.list.Items()) <= 1 {
		return v.renderEmpty()
	}

	content := v.list.View() + "\n" + v.renderHelp()
	if e := v.store.Err(); e != "" {
		content += "\n" + v.styles.ErrorBar.Render(e)
	}
	return styles.CenterView(content, v.width, v.height)
}

func (v *ProjectListView) renderEmpty() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render("No Projects"),
		"",
		s.TitleMuted.Render("Press 'n' to create your first project"),
		"",
		s.ButtonPrimary.Render(" New Project "),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

// renderForm draws the create/edit modal.
func (v *ProjectListView) renderForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	formTitle := "New Project"
	if v.editingID != 0 {
		formTitle = "Edit Project"
	}

	nameStyle := s.Input
	descStyle := s.Input
	colorStyle := s.Input
	btnStyle := s.Button

	switch v.focusIdx {
	case 0:
		nameStyle = s.InputFocused
	case 1:
		descStyle = s.InputFocused
	case 2:
		colorStyle = s.InputFocused
	case 3:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(formTitle),
		"",
		"Name:",
		nameStyle.Width(inputWidth).Render(v.formName.View()),
		"",
		"Description:",
		descStyle.Width(inputWidth).Render(v.formDesc.View()),
		"",
		"Color:",
		colorStyle.Width(12).Render(v.formColor.View()),
		"",
		btnStyle.Render(" Save "),
		"",
		s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ProjectListView) renderHelp() string {
	return v.styles.Help.Render(
		fmt.Sprintf("%s open • %s new • %s edit • %s del • %s reorder • %s quit",
			v.styles.HelpKey.Render("↵"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("e"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("shift+↑↓"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *ProjectListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Project?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("\"%s\" and all of its tasks will be removed.", v.deleteTargetName)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Modal.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}
