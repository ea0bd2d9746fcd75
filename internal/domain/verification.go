package domain

// PendingVerification correlates a code request with its later confirmation.
// It lives only in the verification cache, keyed by the opaque request token,
// and is destroyed on successful confirmation or TTL expiry.
type PendingVerification struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// SessionPayload is the identity claim embedded in every issued session token.
// It is never stored server-side; sessions are stateless.
type SessionPayload struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}
