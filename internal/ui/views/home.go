package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/tgienger/tm/internal/ui/keys"
	"github.com/tgienger/tm/internal/ui/styles"
)

// HomeView is the welcome screen
type HomeView struct {
	store  Store
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	loaded    bool
	pending   int
	completed int
	err       error

	showHelpPopup bool
}

func NewHomeView(store Store) *HomeView {
	return &HomeView{
		store:  store,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
	}
}

func (v *HomeView) Init() tea.Cmd {
	return v.loadCounts
}

func (v *HomeView) loadCounts() tea.Msg {
	pending, completed, err := v.store.CountTasks()
	if err != nil {
		log.Error().Err(err).Msg("failed to count tasks")
		return ErrorMsg{Err: err}
	}
	return countsLoadedMsg{pending: pending, completed: completed}
}

func (v *HomeView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case countsLoadedMsg:
		v.pending = msg.pending
		v.completed = msg.completed
		v.loaded = true
		v.err = nil
		return v, nil

	case ErrorMsg:
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Help):
			v.showHelpPopup = true
			return v, nil
		case key.Matches(msg, v.keys.AllTasks), key.Matches(msg, v.keys.Enter):
			return v, navigate(ScreenTasks)
		case key.Matches(msg, v.keys.AddTask), key.Matches(msg, v.keys.New):
			return v, navigate(ScreenForm)
		case key.Matches(msg, v.keys.Home):
			return v, v.loadCounts
		}
	}

	return v, nil
}

func (v *HomeView) View() string {
	s := v.styles

	if v.showHelpPopup {
		return renderHelpPopup(s, v.width, v.height, []helpEntry{
			{"1", "home"},
			{"2 / ↵", "view all tasks"},
			{"3 / n", "add task"},
			{"q", "quit"},
		})
	}

	summary := s.TitleMuted.Render("Loading...")
	switch {
	case v.err != nil:
		summary = s.Warning.Render(v.err.Error())
	case v.loaded:
		summary = fmt.Sprintf("%s pending • %s completed",
			s.StatusPending.Render(fmt.Sprint(v.pending)),
			s.StatusComplete.Render(fmt.Sprint(v.completed)),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Welcome.Render("Welcome to Task Manager"),
		"",
		summary,
		"",
		renderHelpBar(s, v.width, []helpEntry{
			{"2", "all tasks"},
			{"3", "add task"},
			{"q", "quit"},
		}),
	)

	centered := lipgloss.Place(styles.ContentWidth(v.width), v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}
