package models

import (
	"fmt"
	"time"
)

// Role is the closed set of account kinds. It is fixed at registration.
type Role string

const (
	RoleJobSeeker Role = "Job Seeker"
	RoleEmployer  Role = "Employer"
)

// ParseRole converts a raw string to a Role, returning an error for unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	switch r {
	case RoleJobSeeker, RoleEmployer:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

type User struct {
	ID           string    `json:"_id" db:"id"`
	Name         string    `json:"name" db:"name" validate:"required,min=3,max=30"`
	Email        string    `json:"email" db:"email" validate:"required,email,max=254"`
	Phone        string    `json:"phone" db:"phone" validate:"required,number,max=20"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role" validate:"required,role"`
	CreatedAt    time.Time `json:"createdAt" db:"created"`
}
