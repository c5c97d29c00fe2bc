// Package boltrepo provides a bbolt-backed task repository.
package boltrepo

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	apperrors "github.com/taskhive/taskhive-server/internal/errors"
	"github.com/taskhive/taskhive-server/tasks"
)

var tasksBucket = []byte("tasks")

// Store implements tasks.TaskRepo backed by a BBolt database.
type Store struct {
	db *bbolt.DB
}

var _ tasks.TaskRepo = (*Store)(nil)

func NewRepository(db *bbolt.DB) (*Store, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(tasksBucket)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("creating task bucket: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Upsert(task *tasks.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	now := time.Now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(task)
		if err != nil {
			return err
		}
		return tx.Bucket(tasksBucket).Put([]byte(task.ID), data)
	})
}

func (s *Store) GetByID(id string) (*tasks.Task, error) {
	var task tasks.Task
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(tasksBucket).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("task %s: %w", id, apperrors.ErrNotFound)
		}
		return json.Unmarshal(data, &task)
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *Store) List(includeTrashed bool) ([]*tasks.Task, error) {
	all := []*tasks.Task{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(tasksBucket).ForEach(func(_, data []byte) error {
			var task tasks.Task
			if err := json.Unmarshal(data, &task); err != nil {
				return err
			}
			if task.IsTrashed && !includeTrashed {
				return nil
			}
			all = append(all, &task)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

func (s *Store) SetTrashed(id string, trashed bool) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(tasksBucket)
		data := b.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("task %s: %w", id, apperrors.ErrNotFound)
		}
		var task tasks.Task
		if err := json.Unmarshal(data, &task); err != nil {
			return err
		}
		task.IsTrashed = trashed
		task.UpdatedAt = time.Now()
		updated, err := json.Marshal(&task)
		if err != nil {
			return err
		}
		return b.Put([]byte(id), updated)
	})
}

func (s *Store) Delete(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(tasksBucket)
		if b.Get([]byte(id)) == nil {
			return fmt.Errorf("task %s: %w", id, apperrors.ErrNotFound)
		}
		return b.Delete([]byte(id))
	})
}
