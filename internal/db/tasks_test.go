package db_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/tm/internal/db"
	"github.com/tgienger/tm/internal/models"
)

func taskIDs(tasks []models.Task) []int64 {
	ids := make([]int64, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

func TestCreateTask(t *testing.T) {
	c := newClock()
	database := openTestDB(t, c)

	c.At(10, 0)
	task, err := database.CreateTask("Buy milk", "Two litres", models.StatusPending)
	require.NoError(t, err)
	assert.NotZero(t, task.ID)

	got, err := database.GetTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "Two litres", got.Body)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.True(t, got.Timestamp.Equal(c.Now()), "timestamp %v", got.Timestamp)

	done, err := database.CreateTask("File taxes", "Before April", models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, done.Status)
	assert.NotEqual(t, task.ID, done.ID)
}

func TestCreateTaskValidation(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		body    string
		status  models.Status
		field   string
		message string
	}{
		{name: "empty title", body: "body", status: models.StatusPending, field: "title", message: "title is required"},
		{name: "empty body", title: "title", status: models.StatusPending, field: "body", message: "body is required"},
		{name: "unknown status", title: "title", body: "body", status: "Archived", field: "status", message: "status must be one of Pending Completed"},
		{name: "missing status", title: "title", body: "body", field: "status", message: "status must be one of Pending Completed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			database := openTestDB(t, newClock())

			task, err := database.CreateTask(tt.title, tt.body, tt.status)
			require.Error(t, err)
			assert.Nil(t, task)
			assert.ErrorIs(t, err, db.ErrValidation)
			assert.False(t, db.IsStorage(err))

			var verr *db.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.message, verr.Message)

			tasks, err := database.ListTasks()
			require.NoError(t, err)
			assert.Empty(t, tasks)
		})
	}
}

func TestUpdateTask(t *testing.T) {
	c := newClock()
	database := openTestDB(t, c)

	c.At(10, 0)
	task, err := database.CreateTask("Draft", "first pass", models.StatusPending)
	require.NoError(t, err)

	c.At(11, 30)
	require.NoError(t, database.UpdateTask(task.ID, "Final", "second pass", models.StatusCompleted))

	got, err := database.GetTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, "Final", got.Title)
	assert.Equal(t, "second pass", got.Body)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.True(t, got.Timestamp.Equal(c.Now()), "timestamp %v", got.Timestamp)
}

func TestUpdateTaskErrors(t *testing.T) {
	database := openTestDB(t, newClock())

	err := database.UpdateTask(42, "title", "body", models.StatusPending)
	assert.ErrorIs(t, err, db.ErrNotFound)

	task, err := database.CreateTask("title", "body", models.StatusPending)
	require.NoError(t, err)

	err = database.UpdateTask(task.ID, "", "body", models.StatusPending)
	assert.ErrorIs(t, err, db.ErrValidation)

	got, err := database.GetTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "title", got.Title)
}

func TestSetTaskStatus(t *testing.T) {
	c := newClock()
	database := openTestDB(t, c)

	c.At(10, 0)
	task, err := database.CreateTask("Call mom", "Sunday", models.StatusPending)
	require.NoError(t, err)

	c.At(12, 0)
	require.NoError(t, database.SetTaskStatus(task.ID, models.StatusCompleted))

	got, err := database.GetTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, "Call mom", got.Title)
	assert.Equal(t, "Sunday", got.Body)
	assert.True(t, got.Timestamp.Equal(c.Now()), "timestamp %v", got.Timestamp)

	assert.ErrorIs(t, database.SetTaskStatus(task.ID, "Done"), db.ErrValidation)
	assert.ErrorIs(t, database.SetTaskStatus(task.ID+100, models.StatusPending), db.ErrNotFound)
}

func TestDeleteTask(t *testing.T) {
	database := openTestDB(t, newClock())

	keep, err := database.CreateTask("keep", "me", models.StatusPending)
	require.NoError(t, err)
	drop, err := database.CreateTask("drop", "me", models.StatusPending)
	require.NoError(t, err)

	require.NoError(t, database.DeleteTask(drop.ID))

	_, err = database.GetTask(drop.ID)
	assert.ErrorIs(t, err, db.ErrNotFound)

	tasks, err := database.ListTasks()
	require.NoError(t, err)
	assert.Equal(t, []int64{keep.ID}, taskIDs(tasks))

	assert.ErrorIs(t, database.DeleteTask(drop.ID), db.ErrNotFound)
}

func TestGetTaskNotFound(t *testing.T) {
	database := openTestDB(t, newClock())

	task, err := database.GetTask(7)
	assert.Nil(t, task)
	assert.ErrorIs(t, err, db.ErrNotFound)
	assert.EqualError(t, err, "task 7: not found")
}

func TestListTasksOrder(t *testing.T) {
	c := newClock()
	database := openTestDB(t, c)

	c.At(10, 0)
	t1, err := database.CreateTask("T1", "first", models.StatusPending)
	require.NoError(t, err)
	c.At(10, 5)
	t2, err := database.CreateTask("T2", "second", models.StatusPending)
	require.NoError(t, err)
	c.At(10, 2)
	t3, err := database.CreateTask("T3", "third", models.StatusCompleted)
	require.NoError(t, err)

	tasks, err := database.ListTasks()
	require.NoError(t, err)
	assert.Equal(t, []int64{t1.ID, t2.ID, t3.ID}, taskIDs(tasks))
}

func TestListTasksGroupsByStatus(t *testing.T) {
	c := newClock()
	database := openTestDB(t, c)

	c.At(8, 0)
	oldDone, err := database.CreateTask("old done", "x", models.StatusCompleted)
	require.NoError(t, err)
	c.At(9, 0)
	p1, err := database.CreateTask("p1", "x", models.StatusPending)
	require.NoError(t, err)
	c.At(9, 30)
	newDone, err := database.CreateTask("new done", "x", models.StatusCompleted)
	require.NoError(t, err)
	p2, err := database.CreateTask("p2", "x", models.StatusPending)
	require.NoError(t, err)
	// equal timestamps fall back to insertion order
	p3, err := database.CreateTask("p3", "x", models.StatusPending)
	require.NoError(t, err)

	tasks, err := database.ListTasks()
	require.NoError(t, err)
	assert.Equal(t, []int64{p1.ID, p2.ID, p3.ID, oldDone.ID, newDone.ID}, taskIDs(tasks))

	for i, task := range tasks {
		if i > 0 && tasks[i-1].Status == task.Status {
			assert.False(t, task.Timestamp.Before(tasks[i-1].Timestamp))
		}
	}
}

func TestRoundTrip(t *testing.T) {
	c := newClock()
	database := openTestDB(t, c)

	task, err := database.CreateTask("Plan trip", "Book hotel", models.StatusPending)
	require.NoError(t, err)

	got, err := database.GetTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, *task, *got)

	c.t = c.t.Add(time.Hour)
	require.NoError(t, database.UpdateTask(task.ID, "Plan trip", "Book hotel and car", models.StatusPending))

	got, err = database.GetTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Book hotel and car", got.Body)

	require.NoError(t, database.DeleteTask(task.ID))
	tasks, err := database.ListTasks()
	require.NoError(t, err)
	assert.NotContains(t, taskIDs(tasks), task.ID)
}

func TestCountTasks(t *testing.T) {
	database := openTestDB(t, newClock())

	pending, completed, err := database.CountTasks()
	require.NoError(t, err)
	assert.Zero(t, pending)
	assert.Zero(t, completed)

	for _, s := range []models.Status{models.StatusPending, models.StatusPending, models.StatusCompleted} {
		_, err := database.CreateTask("t", "b", s)
		require.NoError(t, err)
	}

	pending, completed, err = database.CountTasks()
	require.NoError(t, err)
	assert.Equal(t, 2, pending)
	assert.Equal(t, 1, completed)
}

func TestReadsExistingRows(t *testing.T) {
	database := openTestDB(t, newClock())

	// rows written by an older build carry the same text encoding
	_, err := database.Exec(`INSERT INTO tasks (title, body, status, timestamp) VALUES (?, ?, ?, ?)`,
		"legacy", "row", "Completed", "2023-12-31 23:59:58")
	require.NoError(t, err)

	tasks, err := database.ListTasks()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "legacy", tasks[0].Title)
	want := time.Date(2023, 12, 31, 23, 59, 58, 0, time.Local)
	assert.True(t, tasks[0].Timestamp.Equal(want), "timestamp %v", tasks[0].Timestamp)
}

func TestListTasksToleratesBadTimestamps(t *testing.T) {
	c := newClock()
	database := openTestDB(t, c)

	good, err := database.CreateTask("good", "row", models.StatusPending)
	require.NoError(t, err)

	_, err = database.Exec(`INSERT INTO tasks (title, body, status) VALUES (?, ?, ?)`,
		"no stamp", "row", "Pending")
	require.NoError(t, err)
	_, err = database.Exec(`INSERT INTO tasks (title, body, status, timestamp) VALUES (?, ?, ?, ?)`,
		"bad stamp", "row", "Completed", "yesterday")
	require.NoError(t, err)

	tasks, err := database.ListTasks()
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	byTitle := make(map[string]models.Task, len(tasks))
	for _, task := range tasks {
		byTitle[task.Title] = task
	}
	assert.True(t, byTitle["good"].Timestamp.Equal(good.Timestamp))
	assert.True(t, byTitle["no stamp"].Timestamp.IsZero())
	assert.True(t, byTitle["bad stamp"].Timestamp.IsZero())

	missing, err := database.GetTask(byTitle["no stamp"].ID)
	require.NoError(t, err)
	assert.Equal(t, "no stamp", missing.Title)
}
