package config

import (
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type AuthConfig interface {
	GetJWTSecret() string
	GetTokenExpiry() time.Duration
	GetBcryptCost() int
}

type Auth struct{}

var _ AuthConfig = Auth{}

// GetJWTSecret returns the token signing secret. There is deliberately no
// default: an empty secret must abort startup.
func (Auth) GetJWTSecret() string {
	return GetEnv("JWT_SECRET", "")
}

func (Auth) GetTokenExpiry() time.Duration {
	return 24 * time.Hour
}

// GetBcryptCost returns the password hashing work factor, raised via
// BCRYPT_COST as hardware gets faster.
func (Auth) GetBcryptCost() int {
	cost, err := strconv.Atoi(GetEnv("BCRYPT_COST", ""))
	if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}
