package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/tgienger/tm/internal/models"
	"github.com/tgienger/tm/internal/ui/keys"
	"github.com/tgienger/tm/internal/ui/styles"
)

// taskAction is an entry of the per-task context menu
type taskAction int

const (
	actionMarkCompleted taskAction = iota
	actionMarkPending
	actionDelete
)

var taskActions = []struct {
	action taskAction
	label  string
}{
	{actionMarkCompleted, "Mark as Completed"},
	{actionMarkPending, "Mark as Pending"},
	{actionDelete, "Delete Task"},
}

// TaskListView shows every task in display order
type TaskListView struct {
	store  Store
	tasks  []models.Task
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	cursor  int
	scrollY int
	loaded  bool
	err     error

	// Context menu for the selected task
	menuOpen   bool
	menuCursor int

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   int64
	deleteTargetName string

	showHelpPopup bool
}

// NewTaskListView creates a new task list view
func NewTaskListView(store Store) *TaskListView {
	return &TaskListView{
		store:  store,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
	}
}

// Init reloads the task list
func (v *TaskListView) Init() tea.Cmd {
	return v.loadTasks
}

func (v *TaskListView) loadTasks() tea.Msg {
	tasks, err := v.store.ListTasks()
	if err != nil {
		log.Error().Err(err).Msg("failed to load tasks")
		return ErrorMsg{Err: err}
	}
	return tasksLoadedMsg{tasks: DisplayOrder(tasks)}
}

// Tasks returns the tasks in the order they are displayed
func (v *TaskListView) Tasks() []models.Task {
	return v.tasks
}

// Err returns the last error shown by the view, if any
func (v *TaskListView) Err() error {
	return v.err
}

func (v *TaskListView) selected() (models.Task, bool) {
	if v.cursor < 0 || v.cursor >= len(v.tasks) {
		return models.Task{}, false
	}
	return v.tasks[v.cursor], true
}

// Update handles messages
func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tasksLoadedMsg:
		v.tasks = msg.tasks
		v.loaded = true
		if v.cursor >= len(v.tasks) {
			v.cursor = max(0, len(v.tasks)-1)
		}
		v.ensureVisible()
		return v, nil

	case ErrorMsg:
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		// Handle help popup first - any key closes it
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}

		if v.menuOpen {
			return v.updateMenu(msg)
		}

		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *TaskListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v.err = nil

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
		return v, nil

	case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Home):
		return v, navigate(ScreenHome)

	case key.Matches(msg, v.keys.AllTasks):
		return v, v.loadTasks

	case key.Matches(msg, v.keys.AddTask), key.Matches(msg, v.keys.New):
		return v, navigate(ScreenForm)

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.tasks)-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if task, ok := v.selected(); ok {
			return v, func() tea.Msg { return EditTask{ID: task.ID} }
		}
		return v, nil

	case key.Matches(msg, v.keys.Menu):
		if _, ok := v.selected(); ok {
			v.menuOpen = true
			v.menuCursor = 0
		}
		return v, nil

	case key.Matches(msg, v.keys.Complete):
		return v, v.setStatus(models.StatusCompleted)

	case key.Matches(msg, v.keys.Pending):
		return v, v.setStatus(models.StatusPending)

	case key.Matches(msg, v.keys.Delete):
		if task, ok := v.selected(); ok {
			v.confirmingDelete = true
			v.deleteTargetID = task.ID
			v.deleteTargetName = task.Title
		}
		return v, nil
	}

	return v, nil
}

func (v *TaskListView) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Menu):
		v.menuOpen = false
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.menuCursor > 0 {
			v.menuCursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.menuCursor < len(taskActions)-1 {
			v.menuCursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		v.menuOpen = false
		switch taskActions[v.menuCursor].action {
		case actionMarkCompleted:
			return v, v.setStatus(models.StatusCompleted)
		case actionMarkPending:
			return v, v.setStatus(models.StatusPending)
		case actionDelete:
			if task, ok := v.selected(); ok {
				return v, v.deleteTask(task.ID)
			}
		}
	}

	return v, nil
}

func (v *TaskListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		return v, v.deleteTask(v.deleteTargetID)
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

// setStatus is the quick action path: only the status of the selected task changes
func (v *TaskListView) setStatus(status models.Status) tea.Cmd {
	task, ok := v.selected()
	if !ok || task.Status == status {
		return nil
	}

	return func() tea.Msg {
		if err := v.store.SetTaskStatus(task.ID, status); err != nil {
			log.Error().Err(err).Int64("task_id", task.ID).Msg("failed to set task status")
			return ErrorMsg{Err: err}
		}
		return v.loadTasks()
	}
}

func (v *TaskListView) deleteTask(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := v.store.DeleteTask(id); err != nil {
			log.Error().Err(err).Int64("task_id", id).Msg("failed to delete task")
			return ErrorMsg{Err: err}
		}
		return v.loadTasks()
	}
}

// listHeight is the number of lines available for task rows
func (v *TaskListView) listHeight() int {
	return max(v.height-8, 1)
}

func (v *TaskListView) itemHeight(i int) int {
	return lipgloss.Height(v.renderTaskItem(v.tasks[i], false))
}

// ensureVisible scrolls so the whole selected row fits. Rows differ in
// height because the full body is shown.
func (v *TaskListView) ensureVisible() {
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
		return
	}
	if v.cursor >= len(v.tasks) {
		return
	}

	used := 0
	for i := v.scrollY; i <= v.cursor; i++ {
		used += v.itemHeight(i)
	}
	for used > v.listHeight() && v.scrollY < v.cursor {
		used -= v.itemHeight(v.scrollY)
		v.scrollY++
	}
}

// View renders the view
func (v *TaskListView) View() string {
	if v.showHelpPopup {
		return renderHelpPopup(v.styles, v.width, v.height, v.helpEntries())
	}

	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	if v.menuOpen {
		return v.renderMenu()
	}

	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("All Tasks"))
	b.WriteString("\n\n")
	b.WriteString(v.renderTaskList())

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Warning.Render(v.err.Error()))
	}

	b.WriteString("\n")
	b.WriteString(renderHelpBar(v.styles, v.width, []helpEntry{
		{"↵", "edit"},
		{"m", "actions"},
		{"c", "done"},
		{"p", "pending"},
		{"d", "del"},
		{"n", "new"},
		{"q", "quit"},
	}))

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *TaskListView) renderTaskList() string {
	if len(v.tasks) == 0 {
		return v.styles.TitleMuted.Render("No tasks. Press 'n' to create one.")
	}

	var items []string
	used := 0
	for i := v.scrollY; i < len(v.tasks); i++ {
		item := v.renderTaskItem(v.tasks[i], i == v.cursor)
		h := lipgloss.Height(item)
		// the first row is always drawn even if it overflows
		if used+h > v.listHeight() && len(items) > 0 {
			break
		}
		items = append(items, item)
		used += h
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *TaskListView) renderTaskItem(task models.Task, selected bool) string {
	s := v.styles
	width := max(styles.ContentWidth(v.width)-4, 20)

	title := s.TaskTitle.Render(task.Title)
	body := s.TaskBody.Render(task.Body)
	meta := s.StatusBadge(task.Status.String(), task.Completed())
	if !task.Timestamp.IsZero() {
		meta += s.TaskMeta.Render(" • " + task.Timestamp.Format(models.TimestampLayout))
	}
	if task.Completed() {
		title = s.TaskCompleted.Render(task.Title)
		body = s.TaskCompleted.Render(task.Body)
	}

	rowStyle := s.ListItem
	if selected {
		rowStyle = s.ListSelected
	}
	rowStyle = rowStyle.Width(width).MaxWidth(width)

	return lipgloss.JoinVertical(lipgloss.Left,
		rowStyle.Render(title),
		rowStyle.Render(body),
		rowStyle.Render(meta),
	) + "\n"
}

func (v *TaskListView) renderMenu() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	task, _ := v.selected()

	var items []string
	for i, a := range taskActions {
		itemStyle := s.ListItem
		if i == v.menuCursor {
			itemStyle = s.ListSelected
		}
		items = append(items, itemStyle.Render(a.label))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(task.Title),
		"",
		lipgloss.JoinVertical(lipgloss.Left, items...),
		"",
		s.TitleMuted.Render("↵: apply • Esc: close"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Popup.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Warning.Render("Delete Task?"),
		"",
		s.TitleMuted.Render(v.deleteTargetName),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) helpEntries() []helpEntry {
	return []helpEntry{
		{"↑/↓", "move"},
		{"↵", "edit task"},
		{"m", "task actions"},
		{"c", "mark as completed"},
		{"p", "mark as pending"},
		{"d", "delete task"},
		{"n", "new task"},
		{"1", "home"},
		{"esc", "back"},
		{"q", "quit"},
	}
}
