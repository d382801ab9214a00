package db

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/tgienger/tm/internal/models"
)

// Pending sorts before Completed; a bare ORDER BY status would not.
const orderByStatus = `CASE status WHEN 'Pending' THEN 0 ELSE 1 END`

const selectTask = `
	SELECT id, COALESCE(title, '') AS title, COALESCE(body, '') AS body,
		COALESCE(status, '') AS status, COALESCE(timestamp, '') AS timestamp
	FROM tasks`

// taskRow mirrors the tasks table; timestamp stays text until decoded
type taskRow struct {
	ID        int64  `db:"id"`
	Title     string `db:"title"`
	Body      string `db:"body"`
	Status    string `db:"status"`
	Timestamp string `db:"timestamp"`
}

// toTask decodes a row. A missing or malformed timestamp leaves the zero time
// so one bad row never hides the others.
func (r taskRow) toTask() models.Task {
	ts, err := time.ParseInLocation(models.TimestampLayout, r.Timestamp, time.Local)
	if err != nil {
		log.Warn().Err(err).Int64("task_id", r.ID).Str("timestamp", r.Timestamp).Msg("unreadable task timestamp")
		ts = time.Time{}
	}
	return models.Task{
		ID:        r.ID,
		Title:     r.Title,
		Body:      r.Body,
		Status:    models.Status(r.Status),
		Timestamp: ts,
	}
}

// CreateTask creates a new task stamped with the current time
func (db *DB) CreateTask(title, body string, status models.Status) (*models.Task, error) {
	if err := validateTask(title, body, status); err != nil {
		return nil, err
	}

	result, err := db.Exec(`
		INSERT INTO tasks (title, body, status, timestamp) VALUES (?, ?, ?, ?)
	`, title, body, string(status), db.timestamp())
	if err != nil {
		return nil, storageErr("insert task", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, storageErr("insert task", err)
	}

	log.Debug().Int64("task_id", id).Str("status", string(status)).Msg("created task")
	return db.GetTask(id)
}

// GetTask retrieves a task by ID
func (db *DB) GetTask(id int64) (*models.Task, error) {
	var row taskRow
	err := db.Get(&row, selectTask+" WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, storageErr("get task", err)
	}

	t := row.toTask()
	return &t, nil
}

// ListTasks returns every task, pending first, each group oldest first
func (db *DB) ListTasks() ([]models.Task, error) {
	var rows []taskRow
	err := db.Select(&rows, selectTask+" ORDER BY "+orderByStatus+", timestamp ASC, id ASC")
	if err != nil {
		return nil, storageErr("list tasks", err)
	}

	tasks := make([]models.Task, 0, len(rows))
	for _, r := range rows {
		tasks = append(tasks, r.toTask())
	}
	return tasks, nil
}

// UpdateTask overwrites every mutable field and refreshes the timestamp
func (db *DB) UpdateTask(id int64, title, body string, status models.Status) error {
	if err := validateTask(title, body, status); err != nil {
		return err
	}

	result, err := db.Exec(`
		UPDATE tasks SET title = ?, body = ?, status = ?, timestamp = ?
		WHERE id = ?
	`, title, body, string(status), db.timestamp(), id)
	if err != nil {
		return storageErr("update task", err)
	}
	if err := expectRow(result, id, "update task"); err != nil {
		return err
	}

	log.Debug().Int64("task_id", id).Msg("updated task")
	return nil
}

// SetTaskStatus changes only the status; the timestamp is refreshed as for any write
func (db *DB) SetTaskStatus(id int64, status models.Status) error {
	if err := validateStatus(status); err != nil {
		return err
	}

	result, err := db.Exec(`
		UPDATE tasks SET status = ?, timestamp = ? WHERE id = ?
	`, string(status), db.timestamp(), id)
	if err != nil {
		return storageErr("set task status", err)
	}
	if err := expectRow(result, id, "set task status"); err != nil {
		return err
	}

	log.Debug().Int64("task_id", id).Str("status", string(status)).Msg("set task status")
	return nil
}

// DeleteTask deletes a task. Deleting a missing id returns ErrNotFound.
func (db *DB) DeleteTask(id int64) error {
	result, err := db.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return storageErr("delete task", err)
	}
	if err := expectRow(result, id, "delete task"); err != nil {
		return err
	}

	log.Debug().Int64("task_id", id).Msg("deleted task")
	return nil
}

// CountTasks returns the number of pending and completed tasks
func (db *DB) CountTasks() (pending, completed int, err error) {
	var counts struct {
		Pending   int `db:"pending"`
		Completed int `db:"completed"`
	}
	err = db.Get(&counts, `
		SELECT
			COALESCE(SUM(status = 'Pending'), 0) AS pending,
			COALESCE(SUM(status = 'Completed'), 0) AS completed
		FROM tasks
	`)
	if err != nil {
		return 0, 0, storageErr("count tasks", err)
	}
	return counts.Pending, counts.Completed, nil
}

func expectRow(result sql.Result, id int64, op string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return storageErr(op, err)
	}
	if n == 0 {
		return notFound(id)
	}
	return nil
}
