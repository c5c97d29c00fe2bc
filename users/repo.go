package users

type UserRepo interface {
	Upsert(user *User) error
	GetByID(id string) (*User, error)
	GetByEmail(email string) (*User, error)
	List(offset, limit int) ([]*User, error)
	SetActive(id string, active bool) error
	Delete(id string) error
}
