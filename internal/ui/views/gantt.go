package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gantty/internal/api"
	"gantty/internal/dateutil"
	"gantty/internal/interaction"
	"gantty/internal/models"
	"gantty/internal/store"
	"gantty/internal/timeline"
	"gantty/internal/ui/keys"
	"gantty/internal/ui/styles"
)

const (
	labelWidth = 22
	dayWidth   = 3

	// Rows above the first task row: title, month, day, weekday headers.
	chartTop = 4
)

// BackToProjects signals to go back to the sidebar.
type BackToProjects struct{}

// GanttView renders the chart for the current scope and turns mouse
// gestures on bars into date edits.
type GanttView struct {
	store  *store.Store
	scope  store.Scope
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	tasks   []models.Task
	rng     timeline.Range
	today   time.Time
	cursor  int
	scrollX int // first visible day column
	scrollY int // first visible task row

	gesture interaction.Gesture
	guard   interaction.ClickGuard

	// Edit form
	editing   bool
	editingID int64 // 0 when creating
	formName  textinput.Model
	formDesc  textinput.Model
	formStart textinput.Model
	formEnd   textinput.Model
	focusIdx  int // 0=name, 1=desc, 2=start, 3=end, 4=save
	formErr   string

	confirmingDelete bool
	deleteTargetID   int64
	deleteTargetName string

	status string
}

func NewGanttView(st *store.Store, scope store.Scope) *GanttView {
	s := styles.NewStyles()

	formName := textinput.New()
	formName.Placeholder = "Task name"
	formName.CharLimit = 200

	formDesc := textinput.New()
	formDesc.Placeholder = "Description (optional)"
	formDesc.CharLimit = 500

	formStart := textinput.New()
	formStart.Placeholder = "YYYY-MM-DD"
	formStart.CharLimit = 10

	formEnd := textinput.New()
	formEnd.Placeholder = "YYYY-MM-DD"
	formEnd.CharLimit = 10

	v := &GanttView{
		store:     st,
		scope:     scope,
		styles:    s,
		keys:      keys.DefaultKeyMap(),
		today:     dateutil.Normalize(time.Now()),
		formName:  formName,
		formDesc:  formDesc,
		formStart: formStart,
		formEnd:   formEnd,
	}
	v.reload()
	return v
}

func (v *GanttView) Init() tea.Cmd {
	return func() tea.Msg { return RefreshMsg{} }
}

// reload pulls the scoped task list from the cache and recomputes the
// visible day range around it.
func (v *GanttView) reload() {
	v.tasks = v.store.TasksForScope(v.scope)
	v.rng = timeline.Compute(v.tasks, v.today)
	if v.cursor >= len(v.tasks) {
		v.cursor = max(0, len(v.tasks)-1)
	}
	v.clampScroll()
}

func (v *GanttView) visibleDays() int {
	w := styles.ContentWidth(v.width) - labelWidth
	if w < dayWidth {
		return 1
	}
	return w / dayWidth
}

func (v *GanttView) visibleRows() int {
	h := v.height - chartTop - 3
	if h < 1 {
		return 1
	}
	return h
}

func (v *GanttView) clampScroll() {
	maxX := v.rng.Len() - v.visibleDays()
	if maxX < 0 {
		maxX = 0
	}
	v.scrollX = clamp(v.scrollX, 0, maxX)

	maxY := len(v.tasks) - v.visibleRows()
	if maxY < 0 {
		maxY = 0
	}
	v.scrollY = clamp(v.scrollY, 0, maxY)
}

func (v *GanttView) ensureCursorVisible() {
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+v.visibleRows() {
		v.scrollY = v.cursor - v.visibleRows() + 1
	}
}

// barSpan returns the inclusive column range of a task's bar, applying
// the active gesture's preview offset when the task is being edited.
func (v *GanttView) barSpan(t models.Task) (int, int) {
	start := v.rng.IndexOf(dateutil.Normalize(t.StartDate.Time))
	end := v.rng.IndexOf(dateutil.Normalize(t.EndDate.Time))

	if v.gesture.Active() && v.gesture.TaskID() == t.ID {
		off := v.gesture.Offset()
		switch v.gesture.Mode() {
		case interaction.Dragging:
			start += off
			end += off
		case interaction.Resizing:
			if v.gesture.Edge() == interaction.EdgeStart {
				start += off
				if start > end-1 {
					start = end - 1
				}
			} else {
				end += off
				if end < start+1 {
					end = start + 1
				}
			}
		}
	}
	return start, end
}

func (v *GanttView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.clampScroll()
		return v, nil

	case RefreshMsg, mutationDoneMsg:
		v.reload()
		return v, nil

	case tea.MouseMsg:
		return v.updateMouse(msg)

	case tea.KeyMsg:
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.editing {
			return v.updateForm(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

// columnAt maps a terminal cell to a day column, or -1 outside the grid.
func (v *GanttView) columnAt(x int) int {
	if x < labelWidth {
		return -1
	}
	col := (x-labelWidth)/dayWidth + v.scrollX
	if col >= v.rng.Len() {
		return -1
	}
	return col
}

// taskAt maps a terminal row to a task index, or -1 outside the rows.
func (v *GanttView) taskAt(y int) int {
	idx := y - chartTop + v.scrollY
	if idx < 0 || idx >= len(v.tasks) {
		return -1
	}
	return idx
}

func (v *GanttView) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if v.editing || v.confirmingDelete {
		return v, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return v, nil
		}
		idx := v.taskAt(msg.Y)
		col := v.columnAt(msg.X)
		if idx < 0 || col < 0 {
			return v, nil
		}
		v.cursor = idx
		t := v.tasks[idx]
		barStart, barEnd := v.barSpan(t)
		if col < barStart || col > barEnd {
			return v, nil
		}
		switch {
		case col == barStart && barEnd > barStart:
			v.gesture.BeginResize(t.ID, interaction.EdgeStart, msg.X, dayWidth)
		case col == barEnd && barEnd > barStart:
			v.gesture.BeginResize(t.ID, interaction.EdgeEnd, msg.X, dayWidth)
		default:
			v.gesture.BeginDrag(t.ID, msg.X, dayWidth)
		}
		return v, nil

	case tea.MouseActionMotion:
		if v.gesture.Active() {
			v.gesture.Move(msg.X)
		}
		return v, nil

	case tea.MouseActionRelease:
		if !v.gesture.Active() {
			return v, nil
		}
		return v, v.finishGesture(msg.X)
	}

	return v, nil
}

// finishGesture turns the gesture's commit into a store write.
func (v *GanttView) finishGesture(x int) tea.Cmd {
	c := v.gesture.End(x)
	now := time.Now()

	t, ok := v.store.GetTaskByID(c.TaskID)
	if c.Kind != interaction.CommitNone && c.Kind != interaction.CommitClick && !ok {
		return nil
	}

	switch c.Kind {
	case interaction.CommitClick:
		if v.guard.Suppressed(now) {
			return nil
		}
		if ok {
			v.startForm(&t)
			return textinput.Blink
		}
		return nil

	case interaction.CommitMove:
		v.guard.Arm(now)
		start, end := interaction.ApplyMove(t, c.Days)
		return v.commitDates(t.ID, &start, &end)

	case interaction.CommitResizeStart:
		v.guard.Arm(now)
		start := interaction.ApplyResize(t, interaction.EdgeStart, c.Days)
		return v.commitDates(t.ID, &start, nil)

	case interaction.CommitResizeEnd:
		v.guard.Arm(now)
		end := interaction.ApplyResize(t, interaction.EdgeEnd, c.Days)
		return v.commitDates(t.ID, nil, &end)
	}

	return nil
}

func (v *GanttView) commitDates(id int64, start, end *models.Date) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{err: v.store.UpdateTaskDates(id, start, end, true)}
	}
}

func (v *GanttView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v.status = ""

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		if v.gesture.Active() {
			v.gesture.Cancel()
			return v, nil
		}
		return v, func() tea.Msg { return BackToProjects{} }

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureCursorVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.tasks)-1 {
			v.cursor++
			v.ensureCursorVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Left):
		v.scrollX--
		v.clampScroll()
		return v, nil

	case key.Matches(msg, v.keys.Right):
		v.scrollX++
		v.clampScroll()
		return v, nil

	case key.Matches(msg, v.keys.Today):
		if i := v.rng.IndexOf(v.today); i >= 0 {
			v.scrollX = i - v.visibleDays()/2
			v.clampScroll()
		}
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		return v, v.cycleScope()

	case key.Matches(msg, v.keys.ShiftLeft):
		return v, v.shiftSelected(-1)

	case key.Matches(msg, v.keys.ShiftRight):
		return v, v.shiftSelected(1)

	case key.Matches(msg, v.keys.ResizeLeft):
		return v, v.resizeSelected(-1)

	case key.Matches(msg, v.keys.ResizeRight):
		return v, v.resizeSelected(1)

	case key.Matches(msg, v.keys.MoveUp):
		return v, v.reorderSelected(-1)

	case key.Matches(msg, v.keys.MoveDown):
		return v, v.reorderSelected(1)

	case key.Matches(msg, v.keys.Complete):
		return v, v.toggleCompleted()

	case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Edit):
		if t := v.selectedTask(); t != nil {
			v.startForm(t)
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		if _, ok := v.scope.ProjectID(); !ok {
			v.status = "select a project to add tasks"
			return v, nil
		}
		v.startForm(nil)
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Delete):
		if t := v.selectedTask(); t != nil {
			v.confirmingDelete = true
			v.deleteTargetID = t.ID
			v.deleteTargetName = t.Name
		}
		return v, nil
	}

	return v, nil
}

func (v *GanttView) selectedTask() *models.Task {
	if v.cursor < 0 || v.cursor >= len(v.tasks) {
		return nil
	}
	t := v.tasks[v.cursor]
	return &t
}

func (v *GanttView) shiftSelected(days int) tea.Cmd {
	t := v.selectedTask()
	if t == nil {
		return nil
	}
	start, end := interaction.ApplyMove(*t, days)
	return v.commitDates(t.ID, &start, &end)
}

func (v *GanttView) resizeSelected(days int) tea.Cmd {
	t := v.selectedTask()
	if t == nil {
		return nil
	}
	end := interaction.ApplyResize(*t, interaction.EdgeEnd, days)
	return v.commitDates(t.ID, nil, &end)
}

// reorderSelected swaps the selected task with its neighbor. Only
// meaningful inside a single project, where the row order is the task
// order.
func (v *GanttView) reorderSelected(dir int) tea.Cmd {
	projectID, ok := v.scope.ProjectID()
	if !ok {
		v.status = "reorder works inside a project"
		return nil
	}
	target := v.cursor + dir
	if v.cursor < 0 || v.cursor >= len(v.tasks) || target < 0 || target >= len(v.tasks) {
		return nil
	}

	ids := make([]int64, len(v.tasks))
	for i, t := range v.tasks {
		ids[i] = t.ID
	}
	ids[v.cursor], ids[target] = ids[target], ids[v.cursor]
	v.cursor = target
	v.ensureCursorVisible()

	return func() tea.Msg {
		return mutationDoneMsg{err: v.store.ReorderTasks(projectID, ids)}
	}
}

func (v *GanttView) toggleCompleted() tea.Cmd {
	t := v.selectedTask()
	if t == nil {
		return nil
	}
	completed := !t.Completed
	id := t.ID
	return func() tea.Msg {
		return mutationDoneMsg{err: v.store.UpdateTask(id, api.TaskUpdate{Completed: &completed})}
	}
}

// cycleScope steps All → first project → … → last project → All.
func (v *GanttView) cycleScope() tea.Cmd {
	projects := v.store.Projects()
	if len(projects) == 0 {
		return nil
	}

	next := store.ScopeAll()
	if id, ok := v.scope.ProjectID(); !ok {
		next = store.ScopeProject(projects[0].ID)
	} else {
		for i, p := range projects {
			if p.ID == id && i+1 < len(projects) {
				next = store.ScopeProject(projects[i+1].ID)
				break
			}
		}
	}

	scope := next
	return func() tea.Msg { return SelectedScope{Scope: scope} }
}

// SetScope switches what the chart shows.
func (v *GanttView) SetScope(scope store.Scope) {
	v.scope = scope
	v.cursor = 0
	v.scrollX = 0
	v.scrollY = 0
	v.reload()
}

func (v *GanttView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		id := v.deleteTargetID
		return v, func() tea.Msg {
			return mutationDoneMsg{err: v.store.DeleteTask(id)}
		}
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *GanttView) startForm(t *models.Task) {
	v.editing = true
	v.focusIdx = 0
	v.formErr = ""
	if t == nil {
		v.editingID = 0
		v.formName.Reset()
		v.formDesc.Reset()
		v.formStart.SetValue(dateutil.FormatDay(v.today))
		v.formEnd.SetValue(dateutil.FormatDay(dateutil.AddDays(v.today, 2)))
	} else {
		v.editingID = t.ID
		v.formName.SetValue(t.Name)
		v.formDesc.SetValue(t.Description)
		v.formStart.SetValue(dateutil.FormatDay(t.StartDate.Time))
		v.formEnd.SetValue(dateutil.FormatDay(t.EndDate.Time))
	}
	v.updateFormFocus()
}

func (v *GanttView) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case msg.String() == "ctrl+s":
		return v, v.saveForm()

	case msg.String() == "shift+tab":
		v.focusIdx = (v.focusIdx + 4) % 5
		v.updateFormFocus()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % 5
		v.updateFormFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.focusIdx < 4 {
			v.focusIdx++
			v.updateFormFocus()
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
		v.formStart, cmd = v.formStart.Update(msg)
	case 3:
		v.formEnd, cmd = v.formEnd.Update(msg)
	}
	return v, cmd
}

func (v *GanttView) updateFormFocus() {
	v.formName.Blur()
	v.formDesc.Blur()
	v.formStart.Blur()
	v.formEnd.Blur()
	switch v.focusIdx {
	case 0:
		v.formName.Focus()
	case 1:
		v.formDesc.Focus()
	case 2:
		v.formStart.Focus()
	case 3:
		v.formEnd.Focus()
	}
}

func (v *GanttView) saveForm() tea.Cmd {
	name := strings.TrimSpace(v.formName.Value())
	if name == "" {
		v.formErr = "name is required"
		return nil
	}

	start, err := models.ParseDate(strings.TrimSpace(v.formStart.Value()))
	if err != nil {
		v.formErr = "start date must be YYYY-MM-DD"
		return nil
	}
	end, err := models.ParseDate(strings.TrimSpace(v.formEnd.Value()))
	if err != nil {
		v.formErr = "end date must be YYYY-MM-DD"
		return nil
	}
	if end.Before(start.Time) {
		v.formErr = "end date is before start date"
		return nil
	}

	desc := strings.TrimSpace(v.formDesc.Value())
	v.editing = false
	v.formErr = ""

	if v.editingID == 0 {
		projectID, ok := v.scope.ProjectID()
		if !ok {
			return nil
		}
		return func() tea.Msg {
			return mutationDoneMsg{err: v.store.AddTask(api.TaskCreate{
				Name:        name,
				Description: desc,
				StartDate:   start,
				EndDate:     end,
				ProjectID:   projectID,
			})}
		}
	}

	id := v.editingID
	return func() tea.Msg {
		return mutationDoneMsg{err: v.store.UpdateTask(id, api.TaskUpdate{
			Name:        &name,
			Description: &desc,
			StartDate:   &start,
			EndDate:     &end,
		})}
	}
}

// View renders the view
func (v *GanttView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}
	if v.editing {
		return v.renderForm()
	}

	var b strings.Builder
	b.WriteString(v.renderTitle())
	b.WriteString("\n")
	b.WriteString(v.renderHeader())
	b.WriteString("\n")
	b.WriteString(v.renderRows())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *GanttView) renderTitle() string {
	s := v.styles

	label := "All Projects"
	if id, ok := v.scope.ProjectID(); ok {
		if p, found := v.store.GetProjectByID(id); found {
			label = p.Name
		}
	}

	title := s.Title.Render(label)
	span := s.TitleMuted.Render(fmt.Sprintf("  %s – %s",
		dateutil.FormatShort(v.rng.Start()), dateutil.FormatShort(v.rng.End())))

	line := title + span
	if e := v.store.Err(); e != "" {
		line += "  " + s.ErrorBar.Render(e)
	} else if v.status != "" {
		line += "  " + s.StatusBar.Render(v.status)
	}
	return line
}

// renderHeader draws the month, day-of-month and weekday rows.
func (v *GanttView) renderHeader() string {
	s := v.styles

	var month, day, wday strings.Builder
	month.WriteString(strings.Repeat(" ", labelWidth))
	day.WriteString(strings.Repeat(" ", labelWidth))
	wday.WriteString(strings.Repeat(" ", labelWidth))

	last := v.scrollX + v.visibleDays()
	if last > v.rng.Len() {
		last = v.rng.Len()
	}

	prevMonth := time.Month(0)
	for i := v.scrollX; i < last; i++ {
		d := v.rng.Days[i]

		cell := strings.Repeat(" ", dayWidth)
		if d.Month() != prevMonth {
			name := d.Format("Jan")
			if len(name) > dayWidth {
				name = name[:dayWidth]
			}
			cell = name + strings.Repeat(" ", dayWidth-len(name))
			prevMonth = d.Month()
		}
		month.WriteString(s.HeaderMonth.Render(cell))

		num := fmt.Sprintf("%2d ", d.Day())
		initial := fmt.Sprintf(" %s ", dateutil.Weekday(d).String()[:1])
		switch {
		case dateutil.SameDay(d, v.today):
			day.WriteString(s.HeaderToday.Render(num))
			wday.WriteString(s.HeaderToday.Render(initial))
		case dateutil.IsWeekend(d):
			day.WriteString(s.HeaderWeekend.Render(num))
			wday.WriteString(s.HeaderWeekend.Render(initial))
		default:
			day.WriteString(s.HeaderDay.Render(num))
			wday.WriteString(s.HeaderDay.Render(initial))
		}
	}

	return month.String() + "\n" + day.String() + "\n" + wday.String()
}

func (v *GanttView) renderRows() string {
	s := v.styles

	if len(v.tasks) == 0 {
		return s.TitleMuted.Render("  No tasks. Press 'n' to create one.")
	}

	last := v.scrollY + v.visibleRows()
	if last > len(v.tasks) {
		last = len(v.tasks)
	}

	rows := make([]string, 0, last-v.scrollY)
	for i := v.scrollY; i < last; i++ {
		rows = append(rows, v.renderRow(v.tasks[i], i == v.cursor))
	}
	return strings.Join(rows, "\n")
}

func (v *GanttView) renderRow(t models.Task, selected bool) string {
	s := v.styles

	name := t.Name
	if t.Completed {
		name = "✓ " + name
	}
	if len(name) > labelWidth-2 {
		name = name[:labelWidth-3] + "…"
	}
	label := fmt.Sprintf("%-*s", labelWidth, " "+name)
	if selected {
		label = s.RowLabelSel.Render(label)
	} else {
		label = s.RowLabel.Render(label)
	}

	barStart, barEnd := v.barSpan(t)

	color := t.ProjectColor
	if color == "" {
		if id, ok := v.scope.ProjectID(); ok {
			if p, found := v.store.GetProjectByID(id); found {
				color = p.Color
			}
		}
	}
	if color == "" {
		color = models.DefaultColor
	}
	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	if t.Completed {
		barStyle = s.BarDone
	}

	var row strings.Builder
	last := v.scrollX + v.visibleDays()
	if last > v.rng.Len() {
		last = v.rng.Len()
	}
	for i := v.scrollX; i < last; i++ {
		d := v.rng.Days[i]

		if i >= barStart && i <= barEnd {
			body := strings.Repeat("█", dayWidth)
			if i == barStart && barEnd > barStart {
				body = "▐" + strings.Repeat("█", dayWidth-1)
			} else if i == barEnd && barEnd > barStart {
				body = strings.Repeat("█", dayWidth-1) + "▌"
			}
			row.WriteString(barStyle.Render(body))
			continue
		}

		cell := " · "
		switch {
		case dateutil.SameDay(d, v.today):
			row.WriteString(s.GridToday.Render(cell))
		case dateutil.IsWeekend(d):
			row.WriteString(s.GridWeekend.Render(cell))
		default:
			row.WriteString(s.GridCell.Render(cell))
		}
	}

	return label + row.String()
}

func (v *GanttView) renderHelp() string {
	return v.styles.Help.Render(
		fmt.Sprintf("%s edit • %s new • %s del • %s done • %s move • %s resize • %s reorder • %s scope • %s back",
			v.styles.HelpKey.Render("↵"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("c"),
			v.styles.HelpKey.Render("h/l"),
			v.styles.HelpKey.Render("H/L"),
			v.styles.HelpKey.Render("J/K"),
			v.styles.HelpKey.Render("tab"),
			v.styles.HelpKey.Render("esc"),
		),
	)
}

func (v *GanttView) renderForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	formTitle := "New Task"
	if v.editingID != 0 {
		formTitle = "Edit Task"
	}

	nameStyle := s.Input
	descStyle := s.Input
	startStyle := s.Input
	endStyle := s.Input
	btnStyle := s.Button

	switch v.focusIdx {
	case 0:
		nameStyle = s.InputFocused
	case 1:
		descStyle = s.InputFocused
	case 2:
		startStyle = s.InputFocused
	case 3:
		endStyle = s.InputFocused
	case 4:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	errLine := ""
	if v.formErr != "" {
		errLine = s.ErrorBar.Render(v.formErr)
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(formTitle),
		"",
		"Name:",
		nameStyle.Width(inputWidth).Render(v.formName.View()),
		"",
		"Description:",
		descStyle.Width(inputWidth).Render(v.formDesc.View()),
		"",
		"Start:",
		startStyle.Width(14).Render(v.formStart.View()),
		"",
		"End:",
		endStyle.Width(14).Render(v.formEnd.View()),
		"",
		btnStyle.Render(" Save "),
		errLine,
		s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *GanttView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Task?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("\"%s\" will be removed.", v.deleteTargetName)),
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
