package views

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tgienger/tm/internal/models"
)

// Screen identifies one of the top level screens
type Screen int

const (
	ScreenHome Screen = iota
	ScreenTasks
	ScreenForm
)

func (s Screen) String() string {
	switch s {
	case ScreenTasks:
		return "tasks"
	case ScreenForm:
		return "form"
	default:
		return "home"
	}
}

// Navigate asks the app to switch screens. Navigating to ScreenForm opens an
// empty form for a new task.
type Navigate struct {
	To Screen
}

// EditTask asks the app to open the form for an existing task
type EditTask struct {
	ID int64
}

// TaskSaved is sent by the form after a successful create or update
type TaskSaved struct{}

// FormCancelled is sent when the form is left without saving
type FormCancelled struct{}

// ErrorMsg carries a failed store call back into the view that shows it
type ErrorMsg struct {
	Err error
}

type tasksLoadedMsg struct {
	tasks []models.Task
}

type countsLoadedMsg struct {
	pending   int
	completed int
}

func navigate(to Screen) tea.Cmd {
	return func() tea.Msg { return Navigate{To: to} }
}
