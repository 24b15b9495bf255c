package model

// TokenManager issues and validates stateless session tokens. Validity is
// entirely re-derivable from the token itself: the server holds no session
// table, so a still-unexpired token cannot be revoked early.
type TokenManager interface {
	Issue(identity Identity) (string, error)
	Validate(token string) (Identity, error)
}
