package views

import "github.com/tgienger/tm/internal/models"

// DisplayOrder arranges tasks the way the list shows them. Each pending task
// is pushed onto the top as it is read, so the last pending task read comes
// first; completed tasks are appended in the order given.
func DisplayOrder(tasks []models.Task) []models.Task {
	var pending, completed []models.Task
	for _, t := range tasks {
		if t.Completed() {
			completed = append(completed, t)
		} else {
			pending = append(pending, t)
		}
	}

	ordered := make([]models.Task, 0, len(tasks))
	for i := len(pending) - 1; i >= 0; i-- {
		ordered = append(ordered, pending[i])
	}
	return append(ordered, completed...)
}
