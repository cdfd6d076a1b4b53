package domain

import "time"

// Identity is the authenticated principal carts, wishlists and orders are
// scoped to. An empty UID is the anonymous identity.
type Identity struct {
	UID   string
	Email string
	Name  string

	Admin *AdminProfile
}

type AdminProfile struct {
	UID   string
	Name  string
	Email string

	CreatedAt time.Time
}

func Anonymous() Identity {
	return Identity{}
}

func (i Identity) IsAnonymous() bool {
	return i.UID == ""
}

func (i Identity) IsAdmin() bool {
	return i.Admin != nil
}

type Customer struct {
	UID   string
	Email string
	Name  string

	CreatedAt  time.Time
	LastSeenAt time.Time
}
