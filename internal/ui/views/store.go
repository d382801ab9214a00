//go:generate go run go.uber.org/mock/mockgen -source=./store.go -destination=./mocks/store_mock.go -package=mocks
package views

import "github.com/tgienger/tm/internal/models"

// Store is the persistence the views drive. *db.DB satisfies it.
type Store interface {
	ListTasks() ([]models.Task, error)
	GetTask(id int64) (*models.Task, error)
	CreateTask(title, body string, status models.Status) (*models.Task, error)
	UpdateTask(id int64, title, body string, status models.Status) error
	SetTaskStatus(id int64, status models.Status) error
	DeleteTask(id int64) error
	CountTasks() (pending, completed int, err error)
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}
