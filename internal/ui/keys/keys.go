package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the views match against
type KeyMap struct {
	Quit     key.Binding
	Back     key.Binding
	Help     key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Enter    key.Binding
	Tab      key.Binding
	ShiftTab key.Binding
	Toggle   key.Binding
	Save     key.Binding

	// Navigation bar
	Home     key.Binding
	AllTasks key.Binding
	AddTask  key.Binding

	// Task actions
	New      key.Binding
	Menu     key.Binding
	Complete key.Binding
	Pending  key.Binding
	Delete   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "right")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("↵", "select")),
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		ShiftTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),

		Home:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "home")),
		AllTasks: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "all tasks")),
		AddTask:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "add task")),

		New:      key.NewBinding(key.WithKeys("n", "a"), key.WithHelp("n", "new")),
		Menu:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "actions")),
		Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "mark completed")),
		Pending:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "mark pending")),
		Delete:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	}
}
