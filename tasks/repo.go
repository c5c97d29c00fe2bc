package tasks

type TaskRepo interface {
	Upsert(task *Task) error
	GetByID(id string) (*Task, error)
	List(includeTrashed bool) ([]*Task, error)
	SetTrashed(id string, trashed bool) error
	Delete(id string) error
}
