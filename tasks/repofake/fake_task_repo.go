package faketaskrepo

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/taskhive/taskhive-server/internal/errors"
	"github.com/taskhive/taskhive-server/tasks"
)

var _ tasks.TaskRepo = (*FakeTaskRepo)(nil)

type FakeTaskRepo struct {
	tasks map[string]*tasks.Task
	lock  sync.RWMutex
}

func NewFakeTaskRepo() *FakeTaskRepo {
	return &FakeTaskRepo{tasks: make(map[string]*tasks.Task)}
}

func (tr *FakeTaskRepo) Upsert(task *tasks.Task) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	now := time.Now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	copied := *task
	tr.tasks[task.ID] = &copied
	return nil
}

func (tr *FakeTaskRepo) GetByID(id string) (*tasks.Task, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	task, ok := tr.tasks[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *task
	return &copied, nil
}

func (tr *FakeTaskRepo) List(includeTrashed bool) ([]*tasks.Task, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	all := make([]*tasks.Task, 0, len(tr.tasks))
	for _, t := range tr.tasks {
		if t.IsTrashed && !includeTrashed {
			continue
		}
		copied := *t
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return all, nil
}

func (tr *FakeTaskRepo) SetTrashed(id string, trashed bool) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	task, ok := tr.tasks[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	task.IsTrashed = trashed
	task.UpdatedAt = time.Now()
	return nil
}

func (tr *FakeTaskRepo) Delete(id string) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	if _, ok := tr.tasks[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(tr.tasks, id)
	return nil
}
