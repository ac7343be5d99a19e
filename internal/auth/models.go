package auth

import "time"

// Actor is the verified identity this service receives from the external
// auth system. The gallery never issues or refreshes credentials itself; it
// only consumes tokens that were already minted elsewhere.
type Actor struct {
	ID      string
	Email   string
	IsAdmin bool
}

// Claims describes the validated identity extracted from an access token.
type Claims struct {
	Subject   string
	Email     string
	IsAdmin   bool
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// Actor converts claims into the actor handed to domain services.
func (c Claims) Actor() Actor {
	return Actor{
		ID:      c.Subject,
		Email:   c.Email,
		IsAdmin: c.IsAdmin,
	}
}
