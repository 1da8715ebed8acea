// Package models defines the data types exchanged with the training API
// and held in the local session.
package models

// User is the authenticated identity. A copy lives in memory while the
// session is active and a serialized copy sits in the local store so the
// session survives restarts.
//
// Email never changes for the lifetime of a session; only a full
// re-authentication can produce a session with a different email.
// Avatar holds the server-assigned file reference; empty means the
// default avatar.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// Valid reports whether the user is fully populated. A partially filled
// user must never be treated as an authenticated session.
func (u User) Valid() bool {
	return u.ID != "" && u.Email != ""
}
