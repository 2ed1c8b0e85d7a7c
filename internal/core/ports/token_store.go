package ports

import "context"

// TokenStore is the server-side record of each subject's currently valid
// refresh token. One record per subject; the store owns expiry enforcement.
type TokenStore interface {
	// Save upserts the record for subject and resets its TTL countdown.
	Save(ctx context.Context, subject, token string) error
	// Find returns the stored token, or domain.ErrTokenNotFound when the
	// record is absent or has expired.
	Find(ctx context.Context, subject string) (string, error)
	// Delete removes the record. Deleting an absent record is not an error.
	Delete(ctx context.Context, subject string) error
}
