package domain

// TokenKind selects the lifetime policy applied when minting a credential.
type TokenKind string

const (
	// TokenKindAccess is the short-lived, stateless credential presented on
	// every request. Never stored server-side.
	TokenKindAccess TokenKind = "access"

	// TokenKindRefresh is the long-lived credential used solely to mint new
	// access tokens. Exactly one authoritative copy per subject is kept in
	// the token store.
	TokenKindRefresh TokenKind = "refresh"
)

// TokenPair carries the two credentials issued at login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
