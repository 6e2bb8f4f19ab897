// Package models holds the records shared by the relational store, the
// document store and the services.
package models

import "time"

// RoleUser is the role given to every mirror created at registration.
const RoleUser = "user"

// User is the authoritative identity row in the relational store.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Active       bool
	RegisteredAt time.Time
}

// UserMirror is the denormalized copy of a User kept in the document store.
// RelationalID refers back to User.ID; the copied fields are not kept in sync
// after registration.
type UserMirror struct {
	RelationalID int64     `bson:"relational_id"`
	Username     string    `bson:"username"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	RegisteredAt time.Time `bson:"registered_at"`
	Active       bool      `bson:"active"`
	Role         string    `bson:"role"`
}

// NewUserMirror builds the mirror document for a freshly inserted user.
func NewUserMirror(u *User) *UserMirror {
	return &UserMirror{
		RelationalID: u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		RegisteredAt: u.RegisteredAt,
		Active:       u.Active,
		Role:         RoleUser,
	}
}
