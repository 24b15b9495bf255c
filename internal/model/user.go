package model

import "context"

// Identity represents an authenticated user. It is established once per
// session, by credential verification or by a federated provider, and is
// immutable afterwards.
type Identity struct {
	Username string
}

// Credential is a username/password record loaded at process start.
// The record set is read-only for the life of the process.
type Credential struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CredentialVerifier answers credential-match queries against the loaded
// record set. A mismatch is not an error.
type CredentialVerifier interface {
	Verify(username, password string) (Identity, bool)
}

// IdentityProvider authenticates a federated-login assertion and resolves
// it to an identity. Implementations may be backed by a real provider or
// a fixed test identity.
type IdentityProvider interface {
	Authenticate(ctx context.Context, assertion string) (Identity, error)
}
