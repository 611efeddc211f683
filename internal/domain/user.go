package domain

import "time"

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// User represents a user record managed by the system.
// ID is assigned by the store and never by callers.
type User struct {
	ID        int64
	Email     string
	Name      string
	Age       int
	Sex       Sex
	Birthday  time.Time
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
