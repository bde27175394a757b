// Package identity resolves the anonymous per-user identity carried in the
// client's cookie. The token IS the identity: there is no server-side profile
// and no way to invalidate a token.
package identity

import "github.com/google/uuid"

// Some clients persist the literal string "None" from the pre-Go era of the
// service. Treat it as an absent identity.
const placeholderToken = "None"

// Resolution is the outcome of resolve-or-mint. When Minted is true the
// transport layer must instruct the client to persist Token (long-lived
// cookie); every lookup later in the same request uses the same token.
type Resolution struct {
	Token  string
	Minted bool
}

// Resolve returns the inbound token unchanged, or mints a fresh random one
// when the inbound token is absent or the legacy placeholder.
func Resolve(token string) Resolution {
	if token == "" || token == placeholderToken {
		return Resolution{Token: uuid.NewString(), Minted: true}
	}
	return Resolution{Token: token}
}
