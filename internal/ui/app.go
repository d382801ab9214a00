package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/tgienger/tm/internal/ui/styles"
	"github.com/tgienger/tm/internal/ui/views"
)

// lastViewKey remembers whether the app was left on Home or All Tasks
const lastViewKey = "last_view"

// the navigation bar is one bordered row plus a margin
const navHeight = 4

type App struct {
	store    views.Store
	current  views.Screen
	previous views.Screen
	home     *views.HomeView
	taskList *views.TaskListView
	form     *views.TaskFormView
	styles   *styles.Styles
	width    int
	height   int
}

// Creates a new application
func NewApp(store views.Store) *App {
	return &App{
		store:    store,
		current:  views.ScreenHome,
		previous: views.ScreenHome,
		home:     views.NewHomeView(store),
		taskList: views.NewTaskListView(store),
		form:     views.NewTaskFormView(store),
		styles:   styles.NewStyles(),
	}
}

// Current returns the screen being shown
func (a *App) Current() views.Screen {
	return a.current
}

func (a *App) Init() tea.Cmd {
	// Reopen the task list if that is where the last session ended
	last, err := a.store.GetSetting(lastViewKey)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read last view")
	}
	if last == views.ScreenTasks.String() {
		return a.show(views.ScreenTasks)
	}
	return a.show(views.ScreenHome)
}

func (a *App) show(screen views.Screen) tea.Cmd {
	if screen != a.current {
		a.previous = a.current
	}
	a.current = screen

	if screen != views.ScreenForm {
		if err := a.store.SetSetting(lastViewKey, screen.String()); err != nil {
			log.Warn().Err(err).Msg("failed to save last view")
		}
	}

	switch screen {
	case views.ScreenTasks:
		return a.taskList.Init()
	case views.ScreenForm:
		return a.form.Init()
	default:
		return a.home.Init()
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// every screen keeps its size so switching does not need a resize
		inner := tea.WindowSizeMsg{Width: msg.Width, Height: max(msg.Height-navHeight, 0)}
		a.home.Update(inner)
		a.taskList.Update(inner)
		a.form.Update(inner)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case views.Navigate:
		if msg.To == views.ScreenForm {
			a.form.StartNew()
		}
		return a, a.show(msg.To)

	case views.EditTask:
		if err := a.form.StartEdit(msg.ID); err != nil {
			a.taskList.Update(views.ErrorMsg{Err: err})
			return a, a.taskList.Init()
		}
		return a, a.show(views.ScreenForm)

	case views.TaskSaved:
		return a, a.show(views.ScreenTasks)

	case views.FormCancelled:
		back := a.previous
		if back == views.ScreenForm {
			back = views.ScreenHome
		}
		return a, a.show(back)
	}

	var cmd tea.Cmd
	switch a.current {
	case views.ScreenTasks:
		_, cmd = a.taskList.Update(msg)
	case views.ScreenForm:
		_, cmd = a.form.Update(msg)
	default:
		_, cmd = a.home.Update(msg)
	}

	return a, cmd
}

func (a *App) View() string {
	var content string
	switch a.current {
	case views.ScreenTasks:
		content = a.taskList.View()
	case views.ScreenForm:
		content = a.form.View()
	default:
		content = a.home.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, a.renderNav(), content)
}

func (a *App) renderNav() string {
	s := a.styles

	items := []struct {
		key    string
		label  string
		screen views.Screen
	}{
		{"1", "Home", views.ScreenHome},
		{"2", "View All Tasks", views.ScreenTasks},
		{"3", "Add Task", views.ScreenForm},
	}

	var tabs []string
	for _, item := range items {
		style := s.NavItem
		if a.current == item.screen {
			style = s.NavActive
		}
		tabs = append(tabs, style.Render(item.key+" "+item.label))
	}

	nav := s.NavBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	if a.width > styles.MaxWidth {
		return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, nav)
	}
	return nav
}
