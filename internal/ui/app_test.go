package ui_test

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tgienger/tm/internal/db"
	"github.com/tgienger/tm/internal/models"
	"github.com/tgienger/tm/internal/ui"
	"github.com/tgienger/tm/internal/ui/views"
	"github.com/tgienger/tm/internal/ui/views/mocks"
)

var _ views.Store = (*db.DB)(nil)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitRestoresLastView(t *testing.T) {
	tests := []struct {
		name     string
		lastView string
		want     views.Screen
	}{
		{name: "first run", lastView: "", want: views.ScreenHome},
		{name: "left on home", lastView: "home", want: views.ScreenHome},
		{name: "left on tasks", lastView: "tasks", want: views.ScreenTasks},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mocks.NewMockStore(ctrl)

			store.EXPECT().GetSetting("last_view").Return(tt.lastView, nil)
			store.EXPECT().SetSetting("last_view", tt.want.String()).Return(nil)

			app := ui.NewApp(store)
			assert.NotNil(t, app.Init())
			assert.Equal(t, tt.want, app.Current())
		})
	}
}

func TestNavigationDoesNotRememberForm(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)

	store.EXPECT().GetSetting("last_view").Return("", nil)
	store.EXPECT().SetSetting("last_view", "home").Return(nil).Times(2)

	app := ui.NewApp(store)
	app.Init()

	_, cmd := app.Update(views.Navigate{To: views.ScreenForm})
	assert.NotNil(t, cmd)
	assert.Equal(t, views.ScreenForm, app.Current())
	assert.Contains(t, app.View(), "Add Task")

	// cancelling returns to where the form was opened from
	app.Update(views.FormCancelled{})
	assert.Equal(t, views.ScreenHome, app.Current())
}

func TestEditMissingTaskStaysOnList(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)

	store.EXPECT().GetSetting("last_view").Return("tasks", nil)
	store.EXPECT().SetSetting("last_view", "tasks").Return(nil)
	store.EXPECT().GetTask(int64(42)).Return(nil, db.ErrNotFound)

	app := ui.NewApp(store)
	app.Init()

	_, cmd := app.Update(views.EditTask{ID: 42})
	assert.NotNil(t, cmd)
	assert.Equal(t, views.ScreenTasks, app.Current())
}

func TestAddAndCompleteTask(t *testing.T) {
	store, err := db.Open(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Initialize())

	app := ui.NewApp(store)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	app.Init()

	// 3 opens the form from home
	_, cmd := app.Update(runes("3"))
	app.Update(cmd())
	require.Equal(t, views.ScreenForm, app.Current())

	app.Update(runes("Water plants"))
	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app.Update(runes("Balcony first"))

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	_, cmd = app.Update(cmd()) // TaskSaved
	assert.Equal(t, views.ScreenTasks, app.Current())
	app.Update(cmd()) // tasks loaded

	tasks, err := store.ListTasks()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Water plants", tasks[0].Title)
	assert.Equal(t, models.StatusPending, tasks[0].Status)
	assert.Contains(t, app.View(), "Water plants")

	_, cmd = app.Update(runes("c"))
	require.NotNil(t, cmd)
	app.Update(cmd())

	task, err := store.GetTask(tasks[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, task.Status)

	last, err := store.GetSetting("last_view")
	require.NoError(t, err)
	assert.Equal(t, "tasks", last)
}
