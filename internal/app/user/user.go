/*
Package user contains the identity and presentation record of a chat participant.

A User is immutable once built: the id and username come from the client and the
color is picked once, at construction.
*/
package user

import "relaychat/internal/pkg/randx"

// User represents the identity information of a chat participant.
type User struct {
	// ID is the client-supplied identifier, unique within the pool.
	ID string `json:"id"`

	// Username is the display name. It is not validated for uniqueness or content.
	Username string `json:"username"`

	// Color is the display color assigned at creation.
	Color string `json:"color"`
}

// New builds a User with a freshly assigned color.
func New(id, username string) User {
	return User{
		ID:       id,
		Username: username,
		Color:    randx.Color(),
	}
}
