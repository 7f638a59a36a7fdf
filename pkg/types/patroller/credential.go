package patroller

import "time"

// Credential is the identity-provider side of an account: the login email
// and password hash, keyed by the same principal id as the profile record.
// Deleting a profile record does not remove the credential.
type Credential struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}
