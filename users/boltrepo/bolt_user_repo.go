// Package boltrepo provides a bbolt-backed user repository.
package boltrepo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	apperrors "github.com/taskhive/taskhive-server/internal/errors"
	"github.com/taskhive/taskhive-server/users"
)

var (
	usersBucket      = []byte("users")
	usersEmailBucket = []byte("users_email") // email -> user id
)

// Store implements users.UserRepo backed by a BBolt database. Each user is
// stored as a JSON document keyed by ID, with a secondary email index.
type Store struct {
	db *bbolt.DB
}

var _ users.UserRepo = (*Store)(nil)

// NewRepository returns a user repository backed by the given BBolt database.
func NewRepository(db *bbolt.DB) (*Store, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{usersBucket, usersEmailBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating user buckets: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Upsert(user *users.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(usersBucket)
		idx := tx.Bucket(usersEmailBucket)

		// Drop a stale email index entry if the email changed
		if existing := b.Get([]byte(user.ID)); existing != nil {
			var prev users.User
			if err := json.Unmarshal(existing, &prev); err == nil && prev.Email != user.Email {
				if err := idx.Delete([]byte(prev.Email)); err != nil {
					return err
				}
			}
		}

		data, err := json.Marshal(storedUser(user))
		if err != nil {
			return err
		}
		if err := b.Put([]byte(user.ID), data); err != nil {
			return err
		}
		return idx.Put([]byte(user.Email), []byte(user.ID))
	})
}

func (s *Store) GetByID(id string) (*users.User, error) {
	var user *users.User
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(usersBucket).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("user %s: %w", id, apperrors.ErrNotFound)
		}
		var err error
		user, err = loadUser(data)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Store) GetByEmail(email string) (*users.User, error) {
	var user *users.User
	err := s.db.View(func(tx *bbolt.Tx) error {
		id := tx.Bucket(usersEmailBucket).Get([]byte(email))
		if id == nil {
			return fmt.Errorf("user %s: %w", email, apperrors.ErrNotFound)
		}
		data := tx.Bucket(usersBucket).Get(id)
		if data == nil {
			return fmt.Errorf("user %s: %w", email, apperrors.ErrNotFound)
		}
		var err error
		user, err = loadUser(data)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Store) List(offset, limit int) ([]*users.User, error) {
	all := []*users.User{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(usersEmailBucket).Cursor()
		i := 0
		for email, id := c.First(); email != nil; email, id = c.Next() {
			if i < offset {
				i++
				continue
			}
			if limit > 0 && len(all) >= limit {
				break
			}
			data := tx.Bucket(usersBucket).Get(id)
			if data == nil {
				continue
			}
			user, err := loadUser(data)
			if err != nil {
				return err
			}
			all = append(all, user)
			i++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

func (s *Store) SetActive(id string, active bool) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(usersBucket)
		data := b.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("user %s: %w", id, apperrors.ErrNotFound)
		}
		user, err := loadUser(data)
		if err != nil {
			return err
		}
		user.IsActive = active
		user.UpdatedAt = time.Now()
		updated, err := json.Marshal(storedUser(user))
		if err != nil {
			return err
		}
		return b.Put([]byte(id), updated)
	})
}

func (s *Store) Delete(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(usersBucket)
		data := b.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("user %s: %w", id, apperrors.ErrNotFound)
		}
		user, err := loadUser(data)
		if err != nil {
			return err
		}
		if err := tx.Bucket(usersEmailBucket).Delete([]byte(user.Email)); err != nil {
			return err
		}
		return b.Delete([]byte(id))
	})
}

// userDocument is the persisted form. users.User omits PasswordHash from
// JSON, so the document carries it in an explicit field.
type userDocument struct {
	users.User
	PasswordHash string `json:"passwordHash"`
}

func storedUser(u *users.User) *userDocument {
	return &userDocument{User: *u, PasswordHash: u.PasswordHash}
}

func loadUser(data []byte) (*users.User, error) {
	var doc userDocument
	if err := json.Unmarshal(bytes.TrimSpace(data), &doc); err != nil {
		return nil, err
	}
	user := doc.User
	user.PasswordHash = doc.PasswordHash
	return &user, nil
}
