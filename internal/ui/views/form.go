package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/tgienger/tm/internal/models"
	"github.com/tgienger/tm/internal/ui/keys"
	"github.com/tgienger/tm/internal/ui/styles"
)

// EmptyFieldsWarning is shown when a save is attempted without title or body
const EmptyFieldsWarning = "Title and Body cannot be empty!"

const (
	focusTitle = iota
	focusBody
	focusStatus
	focusSave
	focusCount
)

// TaskFormView adds a new task or edits an existing one
type TaskFormView struct {
	store  Store
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	// editID is the edit session: nil while adding, the task id while editing
	editID *int64

	title    textinput.Model
	body     textarea.Model
	status   models.Status
	focusIdx int
	warning  string
}

// NewTaskFormView creates an empty form for a new task
func NewTaskFormView(store Store) *TaskFormView {
	title := textinput.New()
	title.Placeholder = "Task Title"
	// no limit: SetValue would cut longer stored titles
	title.CharLimit = 0

	body := textarea.New()
	body.Placeholder = "Task Body"
	body.CharLimit = 0
	body.MaxHeight = 0
	body.SetWidth(50)
	body.SetHeight(5)
	body.ShowLineNumbers = false

	v := &TaskFormView{
		store:  store,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
		title:  title,
		body:   body,
	}
	v.StartNew()
	return v
}

// Init starts the cursor blinking
func (v *TaskFormView) Init() tea.Cmd {
	return textinput.Blink
}

// StartNew clears the form and ends any edit session
func (v *TaskFormView) StartNew() {
	v.editID = nil
	v.title.Reset()
	v.body.Reset()
	v.status = models.StatusPending
	v.warning = ""
	v.focusIdx = focusTitle
	v.updateFocus()
}

// StartEdit loads a task into the form and opens an edit session for it
func (v *TaskFormView) StartEdit(id int64) error {
	task, err := v.store.GetTask(id)
	if err != nil {
		log.Error().Err(err).Int64("task_id", id).Msg("failed to load task for editing")
		return err
	}

	v.editID = &task.ID
	v.title.SetValue(task.Title)
	v.body.SetValue(task.Body)
	v.status = task.Status
	if !v.status.Valid() {
		v.status = models.StatusPending
	}
	v.warning = ""
	v.focusIdx = focusTitle
	v.updateFocus()
	return nil
}

// Editing returns the id being edited, if any
func (v *TaskFormView) Editing() (int64, bool) {
	if v.editID == nil {
		return 0, false
	}
	return *v.editID, true
}

// Warning returns the message currently shown under the form
func (v *TaskFormView) Warning() string {
	return v.warning
}

// Update handles messages
func (v *TaskFormView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		inputWidth := styles.Clamp(styles.ContentWidth(v.width)-10, 20, 50)
		v.body.SetWidth(inputWidth)
		return v, nil

	case tea.KeyMsg:
		return v.updateKeys(msg)
	}

	return v, nil
}

func (v *TaskFormView) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.StartNew()
		return v, func() tea.Msg { return FormCancelled{} }

	case key.Matches(msg, v.keys.Save):
		return v, v.save()

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % focusCount
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.ShiftTab):
		v.focusIdx = (v.focusIdx + focusCount - 1) % focusCount
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		switch v.focusIdx {
		case focusTitle, focusStatus:
			v.focusIdx++
			v.updateFocus()
			return v, nil
		case focusSave:
			return v, v.save()
		}
		// enter in the body is a newline
	}

	if v.focusIdx == focusStatus {
		switch {
		case key.Matches(msg, v.keys.Left), key.Matches(msg, v.keys.Right), key.Matches(msg, v.keys.Toggle):
			v.status = v.status.Toggle()
		}
		return v, nil
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case focusTitle:
		v.title, cmd = v.title.Update(msg)
	case focusBody:
		v.body, cmd = v.body.Update(msg)
	}
	return v, cmd
}

func (v *TaskFormView) updateFocus() {
	v.title.Blur()
	v.body.Blur()

	switch v.focusIdx {
	case focusTitle:
		v.title.Focus()
	case focusBody:
		v.body.Focus()
	}
}

// save writes the form through the store as typed. Blank fields never reach
// the store.
func (v *TaskFormView) save() tea.Cmd {
	title := v.title.Value()
	body := v.body.Value()
	if strings.TrimSpace(title) == "" || strings.TrimSpace(body) == "" {
		v.warning = EmptyFieldsWarning
		return nil
	}

	var err error
	if v.editID != nil {
		err = v.store.UpdateTask(*v.editID, title, body, v.status)
	} else {
		_, err = v.store.CreateTask(title, body, v.status)
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to save task")
		v.warning = err.Error()
		return nil
	}

	v.StartNew()
	return func() tea.Msg { return TaskSaved{} }
}

// View renders the view
func (v *TaskFormView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	formTitle := "Add Task"
	if v.editID != nil {
		formTitle = "Edit Task"
	}

	titleStyle := s.Input
	bodyStyle := s.Input
	btnStyle := s.Button

	switch v.focusIdx {
	case focusTitle:
		titleStyle = s.InputFocused
	case focusBody:
		bodyStyle = s.InputFocused
	case focusSave:
		btnStyle = s.ButtonFocused
	}

	inputWidth := styles.Clamp(contentWidth-6, 20, 50)

	warning := ""
	if v.warning != "" {
		warning = s.Warning.Render(v.warning)
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(formTitle),
		"",
		"Title:",
		titleStyle.Width(inputWidth).Render(v.title.View()),
		"",
		"Body:",
		bodyStyle.Render(v.body.View()),
		"",
		"Status:",
		v.renderStatusRadio(),
		"",
		btnStyle.Render(" "+formTitle+" "),
		warning,
		"",
		s.TitleMuted.Render("Tab: next • ←→/Space: status • Ctrl+S: save • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskFormView) renderStatusRadio() string {
	s := v.styles

	var options []string
	for _, status := range []models.Status{models.StatusPending, models.StatusCompleted} {
		mark := "( )"
		if v.status == status {
			mark = "(•)"
		}
		style := s.Radio
		if v.focusIdx == focusStatus && v.status == status {
			style = s.RadioFocused
		}
		options = append(options, style.Render(mark+" "+status.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, options...)
}
