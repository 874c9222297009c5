// Package user manages gateway accounts. A user owns a gateway password for
// logging in plus a set of upstream reservation credentials that ride along
// in the issued token.
package user

import "time"

// User is a gateway account. PasswordHash is the bcrypt hash of the gateway
// login password; the upstream fields are the credentials forwarded to the
// reservation backend on the user's behalf.
type User struct {
	ID                  string    `json:"id"`
	Username            string    `json:"username"`
	PasswordHash        string    `json:"-"`
	UpstreamUserID      string    `json:"-"`
	UpstreamAPIPassword string    `json:"-"`
	AgencyID            string    `json:"agency_id"`
	CreatedAt           time.Time `json:"created_at"`
}
