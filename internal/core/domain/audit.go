package domain

import "time"

// SecurityEventKind classifies an auth-pipeline observation worth auditing.
type SecurityEventKind string

const (
	// SecurityEventRenewalMismatch is emitted when a presented refresh token
	// differs from the stored record — the session was superseded or the
	// token was stolen.
	SecurityEventRenewalMismatch SecurityEventKind = "renewal_mismatch"

	// SecurityEventRenewalRevoked is emitted when renewal is attempted for a
	// subject with no stored record.
	SecurityEventRenewalRevoked SecurityEventKind = "renewal_revoked"

	// SecurityEventRenewed is emitted when an access token is transparently
	// renewed.
	SecurityEventRenewed SecurityEventKind = "renewed"
)

// SecurityEvent is an audit-trail record produced by the renewal pipeline.
type SecurityEvent struct {
	Subject    string            `json:"subject" bson:"subject"`
	Kind       SecurityEventKind `json:"kind" bson:"kind"`
	Detail     string            `json:"detail,omitempty" bson:"detail,omitempty"`
	OccurredAt time.Time         `json:"occurred_at" bson:"occurred_at"`
}
